package awesomemap

import (
	"math"
	"time"
)

// ScaleLimit keeps the scale within [Min, Max]. A state outside the range is
// zoomed back around the event's anchor so the content under the pointer
// stays put. Zero values fall back to the map's zoom configuration.
type ScaleLimit struct {
	Base
	Min, Max float64
}

func (l *ScaleLimit) limits() (lo, hi float64) {
	lo, hi = l.Min, l.Max
	if m := l.Map(); m != nil {
		if lo == 0 {
			lo = m.Config().Zoom.Min
		}
		if hi == 0 {
			hi = m.Config().Zoom.Max
		}
	}
	if hi == 0 {
		hi = math.Inf(1)
	}
	return lo, hi
}

// HandleTransformStarted implements TransformStartedHandler.
func (l *ScaleLimit) HandleTransformStarted(ev *InteractionEvent, s TransformState) TransformState {
	lo, hi := l.limits()
	clamped := math.Max(lo, math.Min(s.Scale, hi))
	if clamped == s.Scale || s.Scale == 0 {
		return s
	}
	a := ev.anchor(ev.Iterative)
	s.ZoomBy(clamped/s.Scale, a.X, a.Y)
	s.Scale = clamped
	return s
}

// Boundary keeps the content covering the viewport. Content smaller than the
// viewport on an axis is centered on that axis. Nothing happens until the
// map has a content size.
//
// With Elastic set, drags and pinches may leave the bounds and the content
// springs back once the gesture ends.
type Boundary struct {
	Base
	Elastic bool
}

// HandleTransformStarted implements TransformStartedHandler.
func (b *Boundary) HandleTransformStarted(ev *InteractionEvent, s TransformState) TransformState {
	m := b.Map()
	content, view := m.ContentSize(), m.ViewportSize()
	if content.Width <= 0 || content.Height <= 0 {
		return s
	}
	if b.Elastic && !ev.Simulated {
		switch ev.Type {
		case EventDrag, EventDragStart, EventTransform, EventTransformStart:
			return s
		}
	}

	out := s
	out.TranslateX = clampAxis(s.TranslateX, content.Width*s.Scale, view.Width)
	out.TranslateY = clampAxis(s.TranslateY, content.Height*s.Scale, view.Height)
	if b.Elastic && !out.Equals(s) && out.Duration == 0 {
		out.Duration = m.Config().AnimationDuration()
		out.Easing = m.Config().AnimationEasing()
	}
	return out
}

// clampAxis restricts the translation t of content of extent size so it
// covers a viewport of extent view.
func clampAxis(t, size, view float64) float64 {
	lo := view - size
	if lo > 0 {
		return lo / 2
	}
	return math.Max(lo, math.Min(t, 0))
}

// DoubleTapZoom zooms in by Factor around a double tap. A double tap that
// would exceed the map's maximum zoom returns to the minimum instead.
type DoubleTapZoom struct {
	Base
	// Factor defaults to the map's Zoom.DoubleTapFactor.
	Factor float64
	// Duration defaults to the map's animation duration.
	Duration time.Duration
}

// HandleTransformStarted implements TransformStartedHandler.
func (d *DoubleTapZoom) HandleTransformStarted(ev *InteractionEvent, s TransformState) TransformState {
	if ev.Type != EventDoubleTap || s.Scale == 0 {
		return s
	}
	cfg := d.Map().Config()
	factor := d.Factor
	if factor <= 0 {
		factor = cfg.Zoom.DoubleTapFactor
	}
	if s.Scale*factor > cfg.Zoom.Max*(1+1e-9) {
		factor = cfg.Zoom.Min / s.Scale
	}
	a := ev.anchor(ev.Iterative)
	s.ZoomBy(factor, a.X, a.Y)
	s.Duration = d.Duration
	if s.Duration == 0 {
		s.Duration = cfg.AnimationDuration()
	}
	s.Easing = cfg.AnimationEasing()
	return s
}

// defaultMomentumDecay is the time constant of the release glide.
const defaultMomentumDecay = 325 * time.Millisecond

// ReleaseMomentum continues a drag after release. The glide travels
// velocity*Decay and eases out over three time constants.
type ReleaseMomentum struct {
	Base
	Decay time.Duration
	// MinVelocity in pixels per millisecond below which no glide happens.
	MinVelocity float64
}

// HandleTransformStarted implements TransformStartedHandler.
func (r *ReleaseMomentum) HandleTransformStarted(ev *InteractionEvent, s TransformState) TransformState {
	if ev.Type != EventDragEnd || ev.Simulated {
		return s
	}
	vx, vy := ev.Cumulative.VelocityX, ev.Cumulative.VelocityY
	floor := r.MinVelocity
	if floor <= 0 {
		floor = 0.1
	}
	if math.Hypot(vx, vy) < floor {
		return s
	}
	decay := r.Decay
	if decay <= 0 {
		decay = defaultMomentumDecay
	}
	tau := float64(decay) / float64(time.Millisecond)
	s.TranslateBy(vx*tau, vy*tau)
	s.Duration = 3 * decay
	s.Easing = EaseOut
	return s
}

// SwipeNavigation pages horizontally through content laid out as pages of
// PageWidth unscaled pixels. A left swipe moves to the next page and a right
// swipe to the previous one. Pages bounds the page index when positive.
type SwipeNavigation struct {
	Base
	PageWidth float64
	Pages     int

	page    int
	changed Signal[int]
}

// Page returns the current page index.
func (n *SwipeNavigation) Page() int { return n.page }

// PageChanged fires with the new index when a swipe changes the page.
func (n *SwipeNavigation) PageChanged() *Signal[int] { return &n.changed }

// HandleTransformStarted implements TransformStartedHandler.
func (n *SwipeNavigation) HandleTransformStarted(ev *InteractionEvent, s TransformState) TransformState {
	if ev.Type != EventSwipe || n.PageWidth <= 0 || s.Scale == 0 {
		return s
	}
	page := n.page
	switch ev.Cumulative.Direction {
	case DirectionLeft:
		page++
	case DirectionRight:
		page--
	default:
		return s
	}
	page = max(page, 0)
	if n.Pages > 0 {
		page = min(page, n.Pages-1)
	}
	s.TranslateX = -float64(page) * n.PageWidth * s.Scale
	cfg := n.Map().Config()
	s.Duration = cfg.AnimationDuration()
	s.Easing = cfg.AnimationEasing()
	if page != n.page {
		n.page = page
		n.changed.Dispatch(page)
	}
	return s
}

// InputLock vetoes device input while Locked. Simulated events pass, so a
// locked map can still be moved from code.
type InputLock struct {
	Base
	Locked bool
}

// HandleInteraction implements InteractionHandler.
func (l *InputLock) HandleInteraction(ev *InteractionEvent) Propagation {
	if l.Locked && !ev.Simulated {
		return Stop
	}
	return Continue
}
