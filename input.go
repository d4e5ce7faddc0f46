package awesomemap

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxTouches is the number of simultaneous touches tracked.
const maxTouches = 10

// EbitenInput reads mouse, touch and wheel state from ebiten once per frame
// and turns it into raw samples for a Recognizer. Samples queued on the
// embedded InputInjector take priority: while any are pending, one is fed per
// frame and device input is ignored.
type EbitenInput struct {
	*InputInjector

	rec   *Recognizer
	clock func() time.Duration

	down     bool
	last     []RawPointer
	cursor   Point
	hasHover bool

	touchBuf  []ebiten.TouchID
	touchMap  [maxTouches]ebiten.TouchID
	touchUsed [maxTouches]bool
}

// NewEbitenInput creates an input adapter feeding rec. clock stamps samples;
// pass the map scheduler's Now so timestamps follow frame time.
func NewEbitenInput(rec *Recognizer, clock func() time.Duration) *EbitenInput {
	return &EbitenInput{
		InputInjector: &InputInjector{},
		rec:           rec,
		clock:         clock,
	}
}

// Recognizer returns the recognizer samples are fed to.
func (in *EbitenInput) Recognizer() *Recognizer { return in.rec }

// Poll feeds one frame of input to the recognizer.
func (in *EbitenInput) Poll() {
	if in.InputInjector.Step(in.rec, in.clock) {
		return
	}

	pointers := in.readTouches()
	device := DeviceTouch
	mx, my := ebiten.CursorPosition()
	cursor := Point{X: float64(mx), Y: float64(my)}
	if len(pointers) == 0 && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		pointers = []RawPointer{{X: cursor.X, Y: cursor.Y}}
		device = DeviceMouse
	}
	_, wheelY := ebiten.Wheel()
	in.feedFrame(pointers, device, cursor, wheelY)
}

// feedFrame compares one frame of device state with the previous one and
// feeds the resulting samples.
func (in *EbitenInput) feedFrame(pointers []RawPointer, device Device, cursor Point, wheel float64) {
	now := in.clock()
	switch {
	case len(pointers) > 0 && !in.down:
		in.down = true
		in.rec.Feed(RawGesture{Phase: PhaseStart, Pointers: pointers, Time: now, Device: device})
	case len(pointers) > 0:
		in.rec.Feed(RawGesture{Phase: PhaseMove, Pointers: pointers, Time: now, Device: device})
	case in.down:
		// The lift is reported where the pointers were last seen.
		in.down = false
		in.rec.Feed(RawGesture{Phase: PhaseEnd, Pointers: in.last, Time: now, Device: device})
	case !in.hasHover || cursor != in.cursor:
		in.rec.Feed(RawGesture{
			Phase:    PhaseHover,
			Pointers: []RawPointer{{X: cursor.X, Y: cursor.Y}},
			Time:     now,
			Device:   DeviceMouse,
		})
	}
	in.last = append(in.last[:0], pointers...)
	in.cursor = cursor
	in.hasHover = true

	if wheel != 0 {
		in.rec.Feed(RawGesture{
			Phase:      PhaseWheel,
			Pointers:   []RawPointer{{X: cursor.X, Y: cursor.Y}},
			Time:       now,
			Device:     DeviceMouse,
			WheelDelta: wheel,
		})
	}
}

// readTouches returns the active touches ordered by slot so that a finger
// keeps its position in the pointer list across frames.
func (in *EbitenInput) readTouches() []RawPointer {
	in.touchBuf = ebiten.AppendTouchIDs(in.touchBuf[:0])

	var active [maxTouches]bool
	var pos [maxTouches]Point
	for _, tid := range in.touchBuf {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		x, y := ebiten.TouchPosition(tid)
		pos[slot] = Point{X: float64(x), Y: float64(y)}
	}

	var out []RawPointer
	for i := range maxTouches {
		if !active[i] {
			in.touchUsed[i] = false
			continue
		}
		out = append(out, RawPointer{ID: int(in.touchMap[i]), X: pos[i].X, Y: pos[i].Y})
	}
	return out
}

// touchSlot maps an ebiten.TouchID to a slot, allocating one if needed.
// Returns -1 if every slot is taken.
func (in *EbitenInput) touchSlot(tid ebiten.TouchID) int {
	for i := range maxTouches {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := range maxTouches {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}
