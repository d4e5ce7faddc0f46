package awesomemap

import (
	"fmt"
	"math"
	"time"
)

// scaleJitterThreshold is the minimum change in two-finger distance, in
// pixels, before an iterative gesture reports a scale other than 1. Smaller
// changes are treated as sensor noise.
const scaleJitterThreshold = 2.0

// Direction is the dominant direction of a gesture's movement.
type Direction uint8

const (
	DirectionNone  Direction = iota // no movement, or not yet known
	DirectionUp                     // movement toward negative Y
	DirectionDown                   // movement toward positive Y
	DirectionLeft                   // movement toward negative X
	DirectionRight                  // movement toward positive X
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// directionOf returns the dominant axis direction of (dx, dy).
func directionOf(dx, dy float64) Direction {
	if dx == 0 && dy == 0 {
		return DirectionNone
	}
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			return DirectionLeft
		}
		return DirectionRight
	}
	if dy < 0 {
		return DirectionUp
	}
	return DirectionDown
}

// Gesture is a point-in-time snapshot of pointer or touch motion. A
// cumulative gesture is measured from the start of an interaction; an
// iterative gesture (see CreateIterativeGesture) from the previous sample.
type Gesture struct {
	// Angle of the movement in degrees. 0 points right, positive is clockwise.
	Angle float64
	// Center is the centroid of all touches in page coordinates.
	Center Point
	// HasCenter is false for gestures that carry no position at all.
	HasCenter bool
	// DeltaX and DeltaY are the offset of Center since the gesture started.
	DeltaX, DeltaY float64
	Direction      Direction
	Duration       time.Duration
	// Scale is multiplicative; 1 means no zoom.
	Scale float64
	// Source is the raw originating sample. Opaque to this package.
	Source any
	// Target is the element the gesture happened on.
	Target Target
	// Touches lists every active contact point in page coordinates.
	Touches []Point
	// VelocityX and VelocityY are in pixels per millisecond.
	VelocityX, VelocityY float64
}

// NewGesture returns a stationary gesture with unit scale.
func NewGesture() Gesture {
	return Gesture{Scale: 1}
}

// GestureFrom converts a gesture-like template into a Gesture. Raw platform
// samples are refused with ErrRawGesture: they carry per-pointer state that
// only a GestureTracker can fold into deltas and scale.
func GestureFrom(v any) (Gesture, error) {
	switch g := v.(type) {
	case Gesture:
		return g.Clone(), nil
	case *Gesture:
		if g == nil {
			return Gesture{}, fmt.Errorf("%w: nil *Gesture", ErrUnsupportedGesture)
		}
		return g.Clone(), nil
	case RawGesture, *RawGesture:
		return Gesture{}, fmt.Errorf("%w: got %T", ErrRawGesture, v)
	default:
		return Gesture{}, fmt.Errorf("%w: %T", ErrUnsupportedGesture, v)
	}
}

// Clone returns a copy of g that shares no touch storage with it.
func (g Gesture) Clone() Gesture {
	c := g
	if g.Touches != nil {
		c.Touches = make([]Point, len(g.Touches))
		copy(c.Touches, g.Touches)
	}
	return c
}

// TouchDistance returns the distance between the two touches, or 0 unless
// exactly two touches are present.
func (g Gesture) TouchDistance() float64 {
	if len(g.Touches) != 2 {
		return 0
	}
	return g.Touches[0].Distance(g.Touches[1])
}

// CreateIterativeGesture returns the change from ref to g. Deltas and
// duration are subtracted. Scale is the ratio of the two scales, but only when
// the two-finger distance moved by more than scaleJitterThreshold; otherwise
// it is forced to 1 so that noise does not register as zoom.
func (g Gesture) CreateIterativeGesture(ref Gesture) Gesture {
	it := g.Clone()
	it.DeltaX = g.DeltaX - ref.DeltaX
	it.DeltaY = g.DeltaY - ref.DeltaY
	it.Duration = g.Duration - ref.Duration

	it.Scale = 1
	if math.Abs(g.TouchDistance()-ref.TouchDistance()) > scaleJitterThreshold && ref.Scale != 0 {
		it.Scale = g.Scale / ref.Scale
	}
	return it
}

// Position returns the gesture center relative to the target's bounding box.
// The bounds are read live on every call. ok is false when either the target
// or the center is missing.
func (g Gesture) Position() (p Point, ok bool) {
	if g.Target == nil || !g.HasCenter {
		return Point{}, false
	}
	b := g.Target.Bounds()
	return Point{X: g.Center.X - b.X, Y: g.Center.Y - b.Y}, true
}
