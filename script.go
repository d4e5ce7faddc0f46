package awesomemap

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultFrameTime is the frame length used by ScriptRunner when none is set.
const DefaultFrameTime = time.Second / 60

// scriptStep is a single action in a replay script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Dist   float64 `json:"dist,omitempty"`
	ToDist float64 `json:"toDist,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Factor float64 `json:"factor,omitempty"`
	MS     int     `json:"ms,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure of a replay script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"tap": true, "press": true, "move": true, "release": true, "hover": true,
	"drag": true, "pinch": true, "wheel": true, "wait": true,
	"pan": true, "zoom": true, "cancel": true, "snapshot": true,
}

// Snapshot is the committed map state recorded by a "snapshot" step.
type Snapshot struct {
	Label string
	Frame int
	State TransformState
}

// ScriptRunner replays a JSON script of input and programmatic actions
// against a Map without a window. Each frame it runs at most one step,
// feeds at most one injected sample to the recognizer and advances the map.
//
// Script example:
//
//	{"steps": [
//	  {"action": "drag", "fromX": 100, "fromY": 100, "toX": 160, "toY": 100, "frames": 8},
//	  {"action": "wait", "frames": 30},
//	  {"action": "snapshot", "label": "panned"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	frame     int

	m         *Map
	rec       *Recognizer
	inj       *InputInjector
	frameTime time.Duration
	snapshots []Snapshot
}

// LoadScript parses a JSON replay script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps, frameTime: DefaultFrameTime}, nil
}

// Attach binds the runner to m. Injected input goes through a recognizer
// configured from m's input settings; when the map's target implements
// Target, gesture positions resolve against it.
func (r *ScriptRunner) Attach(m *Map) {
	r.m = m
	target, _ := m.Target().(Target)
	r.rec = NewRecognizer(m, target, m.Config().Input)
	r.inj = &InputInjector{}
}

// SetFrameTime sets the simulated frame length.
func (r *ScriptRunner) SetFrameTime(d time.Duration) {
	if d > 0 {
		r.frameTime = d
	}
}

// Done reports whether every step ran and all injected input was consumed.
func (r *ScriptRunner) Done() bool { return r.done }

// Frame returns the number of frames run so far.
func (r *ScriptRunner) Frame() int { return r.frame }

// Snapshots returns the states recorded by "snapshot" steps.
func (r *ScriptRunner) Snapshots() []Snapshot { return r.snapshots }

// Step runs one frame.
func (r *ScriptRunner) Step() {
	if r.m == nil {
		contractPanic(ErrInvalidConfig, "script runner is not attached to a map")
	}
	r.frame++
	r.step()
	r.inj.Step(r.rec, r.now)
	r.m.Update(r.frameTime)
	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.inj.Pending() == 0 {
		r.done = true
	}
}

// Run steps until the script is done or maxFrames frames ran. It reports
// whether the script finished.
func (r *ScriptRunner) Run(maxFrames int) bool {
	for i := 0; i < maxFrames && !r.done; i++ {
		r.Step()
	}
	return r.done
}

func (r *ScriptRunner) now() time.Duration {
	if fs, ok := r.m.Scheduler().(*FrameScheduler); ok {
		return fs.Now()
	}
	return time.Duration(r.frame) * r.frameTime
}

// step executes the next script action unless injected input is pending or
// a wait is counting down.
func (r *ScriptRunner) step() {
	if r.done || r.inj.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	frames := st.Frames
	switch st.Action {
	case "tap":
		r.inj.InjectTap(st.X, st.Y)
	case "press":
		r.inj.InjectPress(st.X, st.Y)
	case "move":
		r.inj.InjectMove(st.X, st.Y)
	case "release":
		r.inj.InjectRelease(st.X, st.Y)
	case "hover":
		r.inj.InjectHover(st.X, st.Y)
	case "drag":
		r.inj.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "pinch":
		r.inj.InjectPinch(st.X, st.Y, st.Dist, st.ToDist, frames)
	case "wheel":
		r.inj.InjectWheel(st.X, st.Y, st.Delta)
	case "wait":
		if frames > 0 {
			r.waitCount = frames - 1 // this frame counts as one
		}
	case "pan":
		r.m.TranslateBy(st.X, st.Y, ms(st.MS))
	case "zoom":
		r.m.ZoomBy(st.Factor, Point{X: st.X, Y: st.Y}, ms(st.MS))
	case "cancel":
		r.m.CancelTransformation()
	case "snapshot":
		r.snapshots = append(r.snapshots, Snapshot{Label: st.Label, Frame: r.frame, State: r.m.State()})
	}
}
