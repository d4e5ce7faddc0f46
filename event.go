package awesomemap

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the semantic kind of an InteractionEvent.
type EventType uint8

const (
	EventTouch          EventType = iota // first contact of an interaction
	EventRelease                         // last contact lifted
	EventTap                             // short press without movement
	EventDoubleTap                       // two taps in quick succession at the same place
	EventHold                            // press held in place past the hold duration
	EventDrag                            // one-finger movement after the dead zone
	EventDragStart                       // movement first exceeded the dead zone
	EventDragEnd                         // pointer lifted after dragging
	EventSwipe                           // drag ended above the swipe velocity
	EventTransform                       // two-finger pinch/pan step
	EventTransformStart                  // second finger joined
	EventTransformEnd                    // two-finger gesture ended
	EventPointerMove                     // passive hover movement with no button held
	EventWheel                           // mouse wheel zoom step
)

var eventTypeNames = [...]string{
	EventTouch:          "touch",
	EventRelease:        "release",
	EventTap:            "tap",
	EventDoubleTap:      "doubletap",
	EventHold:           "hold",
	EventDrag:           "drag",
	EventDragStart:      "dragstart",
	EventDragEnd:        "dragend",
	EventSwipe:          "swipe",
	EventTransform:      "transform",
	EventTransformStart: "transformstart",
	EventTransformEnd:   "transformend",
	EventPointerMove:    "pointermove",
	EventWheel:          "wheel",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// ParseEventType returns the EventType whose String form is name.
func ParseEventType(name string) (EventType, bool) {
	for i, n := range eventTypeNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// InteractionEvent is a classified interaction carrying the cumulative and
// iterative gestures that produced it. Interceptors may set Cancelled; the
// queue fills TargetState while the event is being processed.
type InteractionEvent struct {
	ID         uuid.UUID
	Type       EventType
	Cumulative Gesture
	Iterative  Gesture

	// Cancelled stops the event before it reaches the transformation queue.
	Cancelled bool
	// Simulated marks events synthesized by code rather than real input.
	Simulated bool

	Source any
	Target Target

	// TargetState is the state the queue derived for this event. It is nil
	// until the event is processed.
	TargetState *TransformState

	// Duration and Easing are animation hints copied onto the derived state.
	Duration time.Duration
	Easing   Easing

	position    Point
	hasPosition bool
}

// NewInteractionEvent wraps a gesture pair. The position is taken from the
// iterative gesture at construction time.
func NewInteractionEvent(typ EventType, cumulative, iterative Gesture) *InteractionEvent {
	ev := &InteractionEvent{
		ID:         uuid.New(),
		Type:       typ,
		Cumulative: cumulative,
		Iterative:  iterative,
		Source:     iterative.Source,
		Target:     iterative.Target,
	}
	ev.position, ev.hasPosition = iterative.Position()
	return ev
}

// Position returns the event position relative to its target, if known.
func (e *InteractionEvent) Position() (Point, bool) {
	return e.position, e.hasPosition
}

// SetPosition overrides the event position. Used for simulated events whose
// anchor is not derived from a real target.
func (e *InteractionEvent) SetPosition(p Point) {
	e.position = p
	e.hasPosition = true
}

// anchor returns the point a zoom should preserve: the event position, then
// the given gesture's raw center, then the origin.
func (e *InteractionEvent) anchor(g Gesture) Point {
	if e.hasPosition {
		return e.position
	}
	if g.HasCenter {
		return g.Center
	}
	return Point{}
}
