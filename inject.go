package awesomemap

import "time"

// InputInjector queues synthetic raw samples, one consumed per frame. The
// samples are marked Simulated; their Time is stamped when they are consumed.
type InputInjector struct {
	queue []RawGesture
}

// Pending returns the number of queued samples.
func (in *InputInjector) Pending() int {
	return len(in.queue)
}

// Clear drops every queued sample.
func (in *InputInjector) Clear() {
	in.queue = in.queue[:0]
}

func (in *InputInjector) push(phase Phase, device Device, pointers ...RawPointer) {
	in.queue = append(in.queue, RawGesture{
		Phase:     phase,
		Pointers:  pointers,
		Device:    device,
		Simulated: true,
	})
}

// InjectPress queues a one-finger press at (x, y).
func (in *InputInjector) InjectPress(x, y float64) {
	in.push(PhaseStart, DeviceTouch, RawPointer{ID: 1, X: x, Y: y})
}

// InjectMove queues a move of the pressed finger to (x, y). Use this between
// InjectPress and InjectRelease to simulate a drag.
func (in *InputInjector) InjectMove(x, y float64) {
	in.push(PhaseMove, DeviceTouch, RawPointer{ID: 1, X: x, Y: y})
}

// InjectRelease queues lifting the finger at (x, y).
func (in *InputInjector) InjectRelease(x, y float64) {
	in.push(PhaseEnd, DeviceTouch, RawPointer{ID: 1, X: x, Y: y})
}

// InjectTap is a convenience that queues a press followed by a release at
// the same position. Consumes two frames.
func (in *InputInjector) InjectTap(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (in *InputInjector) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectRelease(toX, toY)
}

// InjectPinch queues a horizontal two-finger pinch centered on (cx, cy) whose
// finger distance goes from fromDist to toDist over frames frames. The first
// frame presses one finger, the second adds the other.
func (in *InputInjector) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	pair := func(d float64) []RawPointer {
		return []RawPointer{{ID: 1, X: cx - d/2, Y: cy}, {ID: 2, X: cx + d/2, Y: cy}}
	}
	start := pair(fromDist)
	in.push(PhaseStart, DeviceTouch, start[0])
	in.push(PhaseMove, DeviceTouch, start...)
	steps := frames - 3
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.push(PhaseMove, DeviceTouch, pair(fromDist+(toDist-fromDist)*t)...)
	}
	in.push(PhaseEnd, DeviceTouch, pair(toDist)...)
}

// InjectWheel queues a wheel turn of delta notches with the cursor at (x, y).
func (in *InputInjector) InjectWheel(x, y, delta float64) {
	in.queue = append(in.queue, RawGesture{
		Phase:      PhaseWheel,
		Pointers:   []RawPointer{{X: x, Y: y}},
		Device:     DeviceMouse,
		WheelDelta: delta,
		Simulated:  true,
	})
}

// InjectHover queues a mouse move with no button held.
func (in *InputInjector) InjectHover(x, y float64) {
	in.push(PhaseHover, DeviceMouse, RawPointer{X: x, Y: y})
}

// next pops the oldest queued sample.
func (in *InputInjector) next() (RawGesture, bool) {
	if len(in.queue) == 0 {
		return RawGesture{}, false
	}
	raw := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue[len(in.queue)-1] = RawGesture{}
	in.queue = in.queue[:len(in.queue)-1]
	return raw, true
}

// Step feeds the next queued sample to rec, stamped with now. It reports
// whether a sample was consumed.
func (in *InputInjector) Step(rec *Recognizer, now func() time.Duration) bool {
	raw, ok := in.next()
	if !ok {
		return false
	}
	raw.Time = now()
	rec.Feed(raw)
	return true
}
