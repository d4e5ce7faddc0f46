package awesomemap

import (
	"math"
	"time"
)

// defaultDragDeadZone is the movement in pixels before a press becomes a drag.
const defaultDragDeadZone = 4.0

// InteractionSink receives classified events. *Map implements it.
type InteractionSink interface {
	HandleInteraction(ev *InteractionEvent) bool
}

// Recognizer classifies raw samples into InteractionEvents.
//
// One pointer produces touch, then drag-start/drag/drag-end once it leaves
// the dead zone (plus swipe when released fast enough), or tap, double-tap
// and hold when it stays put. Two pointers produce transform-start,
// transform and transform-end. Every interaction ends with release.
//
// Each event carries the cumulative gesture and the iterative gesture
// relative to the previously emitted event. transform-start and
// transform-end report their cumulative scale relative to the last applied
// step, so deriving a state from them never re-applies zoom that transform
// events already applied.
type Recognizer struct {
	sink    InteractionSink
	tracker *GestureTracker
	cfg     InputConfig

	prev         Gesture
	dragOrigin   Point
	dragging     bool
	transforming bool
	moved        bool
	holdFired    bool

	lastTapTime time.Duration
	lastTapPos  Point
	hasLastTap  bool

	hoverOrigin  Point
	lastHover    Gesture
	hasLastHover bool
}

// NewRecognizer creates a recognizer that resolves positions against target
// and sends events to sink.
func NewRecognizer(sink InteractionSink, target Target, cfg InputConfig) *Recognizer {
	return &Recognizer{
		sink:    sink,
		tracker: NewGestureTracker(target),
		cfg:     cfg,
	}
}

// Dragging reports whether a one-finger drag is in progress.
func (r *Recognizer) Dragging() bool { return r.dragging }

// Transforming reports whether a two-finger transform is in progress.
func (r *Recognizer) Transforming() bool { return r.transforming }

// Feed processes one raw sample.
func (r *Recognizer) Feed(raw RawGesture) {
	switch raw.Phase {
	case PhaseHover:
		r.hover(raw)
	case PhaseWheel:
		r.wheel(raw)
	case PhaseStart:
		r.start(raw)
	case PhaseMove:
		if !r.tracker.Active() {
			r.start(raw)
			return
		}
		r.move(raw)
	case PhaseEnd, PhaseCancel:
		if !r.tracker.Active() {
			return
		}
		r.end(raw)
	}
}

func (r *Recognizer) start(raw RawGesture) {
	r.dragging = false
	r.transforming = false
	r.moved = false
	r.holdFired = false
	g := r.tracker.Track(raw)
	r.prev = g
	r.dragOrigin = Point{}
	r.emit(EventTouch, g, raw)
}

func (r *Recognizer) move(raw RawGesture) {
	g := r.tracker.Track(raw)

	if len(raw.Pointers) >= 2 {
		if r.dragging {
			r.dragging = false
			r.emit(EventDragEnd, g, raw)
		}
		r.moved = true
		if !r.transforming {
			r.transforming = true
			r.emitAs(EventTransformStart, r.rebased(g), g, raw)
			return
		}
		r.emit(EventTransform, g, raw)
		return
	}

	if r.transforming {
		r.transforming = false
		r.emitAs(EventTransformEnd, r.rebased(g), g, raw)
		r.dragOrigin = Point{X: g.DeltaX, Y: g.DeltaY}
		return
	}

	dist := math.Hypot(g.DeltaX-r.dragOrigin.X, g.DeltaY-r.dragOrigin.Y)
	switch {
	case r.dragging:
		r.emit(EventDrag, g, raw)
	case dist > r.cfg.DragDeadZone:
		r.dragging = true
		r.moved = true
		r.emit(EventDragStart, g, raw)
	case !r.moved && !r.holdFired && r.cfg.HoldMS > 0 && g.Duration >= ms(r.cfg.HoldMS):
		r.holdFired = true
		r.emit(EventHold, g, raw)
	}
}

func (r *Recognizer) end(raw RawGesture) {
	g := r.tracker.Track(raw)

	switch {
	case r.transforming:
		r.transforming = false
		r.emitAs(EventTransformEnd, r.rebased(g), g, raw)
	case r.dragging:
		r.dragging = false
		r.emit(EventDragEnd, g, raw)
		if math.Hypot(g.VelocityX, g.VelocityY) >= r.cfg.SwipeVelocity {
			r.emit(EventSwipe, g, raw)
		}
	case raw.Phase == PhaseEnd && !r.moved && !r.holdFired && g.Duration <= ms(r.cfg.TapMaxMS):
		r.tap(g, raw)
	}
	r.emit(EventRelease, g, raw)
	r.tracker.Reset()
}

func (r *Recognizer) tap(g Gesture, raw RawGesture) {
	r.emit(EventTap, g, raw)
	if r.hasLastTap &&
		raw.Time-r.lastTapTime <= ms(r.cfg.DoubleTapIntervalMS) &&
		g.Center.Distance(r.lastTapPos) <= r.cfg.DoubleTapDistance {
		r.hasLastTap = false
		r.emit(EventDoubleTap, g, raw)
		return
	}
	r.hasLastTap = true
	r.lastTapTime = raw.Time
	r.lastTapPos = g.Center
}

func (r *Recognizer) hover(raw RawGesture) {
	c, ok := raw.centroid()
	if !r.hasLastHover {
		r.hoverOrigin = c
		r.lastHover = Gesture{Center: c, HasCenter: ok, Scale: 1, Target: r.tracker.target}
		r.hasLastHover = true
	}
	g := Gesture{
		Center:    c,
		HasCenter: ok,
		DeltaX:    c.X - r.hoverOrigin.X,
		DeltaY:    c.Y - r.hoverOrigin.Y,
		Scale:     1,
		Source:    raw,
		Target:    r.tracker.target,
	}
	ev := NewInteractionEvent(EventPointerMove, g, g.CreateIterativeGesture(r.lastHover))
	ev.Simulated = raw.Simulated
	r.lastHover = g
	r.sink.HandleInteraction(ev)
}

func (r *Recognizer) wheel(raw RawGesture) {
	g := Gesture{Source: raw, Target: r.tracker.target}
	g.Center, g.HasCenter = raw.centroid()
	g.Scale = math.Pow(r.cfg.WheelZoomStep, raw.WheelDelta)
	ev := NewInteractionEvent(EventWheel, g, g)
	ev.Simulated = raw.Simulated
	r.sink.HandleInteraction(ev)
}

// rebased returns g with its scale expressed relative to the last emitted
// gesture.
func (r *Recognizer) rebased(g Gesture) Gesture {
	out := g.Clone()
	if r.prev.Scale != 0 {
		out.Scale = g.Scale / r.prev.Scale
	}
	return out
}

// emit sends an event built from the cumulative gesture g.
func (r *Recognizer) emit(typ EventType, g Gesture, raw RawGesture) {
	r.emitAs(typ, g, g, raw)
}

// emitAs sends an event whose cumulative gesture is cum while tracking g as
// the reference for the next iterative gesture.
func (r *Recognizer) emitAs(typ EventType, cum, g Gesture, raw RawGesture) {
	it := g.CreateIterativeGesture(r.prev)
	ev := NewInteractionEvent(typ, cum, it)
	ev.Simulated = raw.Simulated

	next := g
	if it.Scale == 1 && g.Scale != r.prev.Scale {
		// The pinch moved less than the jitter threshold. Keep the old scale
		// reference so slow pinches accumulate instead of being discarded.
		next.Scale = r.prev.Scale
		next.Touches = r.prev.Touches
	}
	r.prev = next
	r.sink.HandleInteraction(ev)
}
