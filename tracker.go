package awesomemap

import (
	"math"
	"time"
)

// Phase tags a raw input sample.
type Phase uint8

const (
	PhaseStart  Phase = iota // first pointer went down
	PhaseMove                // pointers held; sent every frame, moved or not
	PhaseEnd                 // last pointer lifted
	PhaseCancel              // the platform aborted the interaction
	PhaseHover               // mouse moved with no button held
	PhaseWheel               // mouse wheel turned
)

// Device identifies the kind of input that produced a sample.
type Device uint8

const (
	DeviceMouse Device = iota
	DeviceTouch
)

// RawPointer is one contact point of a raw sample, in page coordinates.
type RawPointer struct {
	ID   int
	X, Y float64
}

// RawGesture is a platform input sample. It has not been folded into deltas
// or scale yet; pass it to a GestureTracker (or a Recognizer) rather than
// treating it as a Gesture.
type RawGesture struct {
	Phase    Phase
	Pointers []RawPointer
	// Time is the sample timestamp on the map's clock.
	Time   time.Duration
	Device Device
	// WheelDelta is the number of notches turned, positive away from the user.
	WheelDelta float64
	// Simulated marks samples that were injected rather than read from a device.
	Simulated bool
}

// centroid returns the mean position of the pointers.
func (r RawGesture) centroid() (Point, bool) {
	if len(r.Pointers) == 0 {
		return Point{}, false
	}
	var c Point
	for _, p := range r.Pointers {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(r.Pointers))
	return Point{X: c.X / n, Y: c.Y / n}, true
}

// GestureTracker folds a stream of raw samples from one interaction into
// cumulative Gestures.
type GestureTracker struct {
	target Target

	active       bool
	startTime    time.Duration
	startCenter  Point
	startDist    float64
	pointerCount int
	// scaleBase is the scale reached before the last change in pointer count.
	scaleBase float64
	last      Gesture
	lastTime  time.Duration
}

// NewGestureTracker creates a tracker whose gestures resolve positions
// against target.
func NewGestureTracker(target Target) *GestureTracker {
	return &GestureTracker{target: target}
}

// Active reports whether an interaction is being tracked.
func (t *GestureTracker) Active() bool {
	return t.active
}

// Last returns the most recent cumulative gesture.
func (t *GestureTracker) Last() Gesture {
	return t.last
}

// Reset forgets the current interaction.
func (t *GestureTracker) Reset() {
	t.active = false
	t.last = Gesture{}
}

// Track folds raw into the current interaction and returns the cumulative
// gesture. A PhaseStart sample (or any sample while idle) starts a new
// interaction; PhaseEnd and PhaseCancel finish it.
//
// When the number of pointers changes the baseline is moved so that deltas
// and scale continue from where they were instead of jumping to the new
// centroid.
func (t *GestureTracker) Track(raw RawGesture) Gesture {
	c, hasCenter := raw.centroid()
	if !hasCenter {
		c, hasCenter = t.last.Center, t.last.HasCenter
	}
	n := len(raw.Pointers)
	dist := pointerDistance(raw.Pointers)

	if raw.Phase == PhaseStart || !t.active {
		t.active = true
		t.startTime = raw.Time
		t.startCenter = c
		t.startDist = dist
		t.pointerCount = n
		t.scaleBase = 1
		t.lastTime = raw.Time
		t.last = Gesture{Center: c, HasCenter: hasCenter, Scale: 1, Target: t.target}
	} else if n > 0 && n != t.pointerCount {
		t.startCenter = Point{X: c.X - t.last.DeltaX, Y: c.Y - t.last.DeltaY}
		t.scaleBase = t.last.Scale
		t.startDist = dist
		t.pointerCount = n
	}

	g := Gesture{
		Center:    c,
		HasCenter: hasCenter,
		DeltaX:    c.X - t.startCenter.X,
		DeltaY:    c.Y - t.startCenter.Y,
		Duration:  raw.Time - t.startTime,
		Scale:     t.scaleBase,
		Source:    raw,
		Target:    t.target,
		Touches:   make([]Point, n),
	}
	for i, p := range raw.Pointers {
		g.Touches[i] = Point{X: p.X, Y: p.Y}
	}
	if n == 2 && t.startDist > 0 {
		g.Scale = t.scaleBase * dist / t.startDist
	}
	g.Angle = math.Atan2(g.DeltaY, g.DeltaX) * 180 / math.Pi
	g.Direction = directionOf(g.DeltaX, g.DeltaY)

	// Velocity only changes when the pointer moved, so a lift reported at
	// the last position keeps the speed of the final movement.
	g.VelocityX, g.VelocityY = t.last.VelocityX, t.last.VelocityY
	dx, dy := g.DeltaX-t.last.DeltaX, g.DeltaY-t.last.DeltaY
	if elapsed := float64(raw.Time-t.lastTime) / float64(time.Millisecond); elapsed > 0 && (dx != 0 || dy != 0) {
		g.VelocityX = dx / elapsed
		g.VelocityY = dy / elapsed
	}

	t.last = g
	t.lastTime = raw.Time
	if raw.Phase == PhaseEnd || raw.Phase == PhaseCancel {
		t.active = false
	}
	return g
}

// pointerDistance returns the distance between exactly two pointers, else 0.
func pointerDistance(ps []RawPointer) float64 {
	if len(ps) != 2 {
		return 0
	}
	return math.Hypot(ps[1].X-ps[0].X, ps[1].Y-ps[0].Y)
}
