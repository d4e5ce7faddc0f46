package awesomemap

import (
	"fmt"
	"math"
	"time"
)

// TransformState describes a translate + uniform scale transform, together
// with how long a transition to it should take.
//
// A content point c is rendered at (TranslateX + Scale*c.X, TranslateY + Scale*c.Y).
type TransformState struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
	// Duration of the transition to this state. Zero applies it immediately.
	Duration time.Duration
	Easing   Easing
}

// IdentityState returns the untransformed state.
func IdentityState() TransformState {
	return TransformState{Scale: 1}
}

// Clone returns a copy of s.
func (s TransformState) Clone() TransformState {
	return s
}

// Equals reports whether s and other describe the same transform. Timing and
// easing are ignored.
func (s TransformState) Equals(other TransformState) bool {
	return s.TranslateX == other.TranslateX &&
		s.TranslateY == other.TranslateY &&
		s.Scale == other.Scale
}

// ZoomBy multiplies the scale by factor while keeping the content point
// under (originX, originY) fixed on screen.
func (s *TransformState) ZoomBy(factor, originX, originY float64) {
	s.TranslateX = originX - (originX-s.TranslateX)*factor
	s.TranslateY = originY - (originY-s.TranslateY)*factor
	s.Scale *= factor
}

// TranslateBy offsets the translation.
func (s *TransformState) TranslateBy(dx, dy float64) {
	s.TranslateX += dx
	s.TranslateY += dy
}

// Validate returns ErrNaNState if any transform component is NaN.
func (s TransformState) Validate() error {
	if math.IsNaN(s.TranslateX) || math.IsNaN(s.TranslateY) || math.IsNaN(s.Scale) {
		return fmt.Errorf("%w: %s", ErrNaNState, s)
	}
	return nil
}

func (s TransformState) String() string {
	return fmt.Sprintf("{x:%g y:%g scale:%g duration:%v}", s.TranslateX, s.TranslateY, s.Scale, s.Duration)
}

// mustBeValid panics if s cannot be applied.
func mustBeValid(s TransformState) {
	if err := s.Validate(); err != nil {
		panic(err)
	}
}

// FromEvent derives the state an event asks for, starting from current.
// current is taken by value and never modified.
//
//   - touch, release, tap, double-tap, hold, swipe and pointer-move leave
//     the transform unchanged; interceptors are expected to act on them.
//   - drag, drag-start and drag-end add the iterative delta.
//   - transform zooms by the iterative scale around the event position and
//     pans by the iterative delta.
//   - transform-start and transform-end zoom by the cumulative scale around
//     the event position.
//   - wheel zooms by the iterative scale around the event position.
func FromEvent(ev *InteractionEvent, current TransformState) TransformState {
	target := current.Clone()
	target.Duration = ev.Duration
	target.Easing = ev.Easing

	switch ev.Type {
	case EventDrag, EventDragStart, EventDragEnd:
		target.TranslateBy(ev.Iterative.DeltaX, ev.Iterative.DeltaY)
	case EventTransform:
		a := ev.anchor(ev.Iterative)
		target.ZoomBy(scaleFactor(ev.Iterative), a.X, a.Y)
		target.TranslateBy(ev.Iterative.DeltaX, ev.Iterative.DeltaY)
	case EventTransformStart, EventTransformEnd:
		a := ev.anchor(ev.Cumulative)
		target.ZoomBy(scaleFactor(ev.Cumulative), a.X, a.Y)
	case EventWheel:
		a := ev.anchor(ev.Iterative)
		target.ZoomBy(scaleFactor(ev.Iterative), a.X, a.Y)
	}
	return target
}

// scaleFactor treats the zero value as "no zoom" so that gestures built
// without a scale do not collapse the content.
func scaleFactor(g Gesture) float64 {
	if g.Scale == 0 {
		return 1
	}
	return g.Scale
}
