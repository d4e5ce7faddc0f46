package awesomemap

import (
	"time"

	"github.com/charmbracelet/log"
)

// TransformEvent is delivered by the TransformStarted and TransformFinished
// signals.
type TransformEvent struct {
	Event *InteractionEvent
	State TransformState
}

// ScaleChange is delivered by the ScaleChanged signal.
type ScaleChange struct {
	From, To float64
}

// TranslationChange is delivered by the TranslationChanged signal.
type TranslationChange struct {
	From, To Point
}

// frameUpdater is implemented by renderers that need a per-frame tick.
type frameUpdater interface {
	Update(dt time.Duration)
}

// Map owns a transformation plane and everything that moves it: the
// interceptor chain, the transformation queue and the committed state.
//
// A Map is not safe for concurrent use. Drive it from one goroutine, usually
// the ebiten Update loop.
type Map struct {
	target    RenderTarget
	state     TransformState
	viewport  Size
	content   Size
	cfg       Config
	logger    *log.Logger
	renderer  Renderer
	scheduler Scheduler
	queue     *TransformationQueue
	input     *EbitenInput
	disposed  bool

	interceptors     []Interceptor
	interactionChain Signal[*interactionPass]
	startedChain     Signal[*transformPass]
	finishedChain    Signal[*transformPass]

	interaction        Signal[*InteractionEvent]
	transformStarted   Signal[TransformEvent]
	transformFinished  Signal[TransformEvent]
	scaleChanged       Signal[ScaleChange]
	translationChanged Signal[TranslationChange]
	disposing          Signal[*Map]
}

// Option configures a Map.
type Option func(*Map)

// WithConfig sets the configuration. It should be valid; see Config.Validate.
func WithConfig(cfg Config) Option {
	return func(m *Map) { m.cfg = cfg }
}

// WithLogger sets the logger. The default writes warnings to stderr.
func WithLogger(l *log.Logger) Option {
	return func(m *Map) { m.logger = l }
}

// WithRenderer replaces the default TweenRenderer.
func WithRenderer(r Renderer) Option {
	return func(m *Map) { m.renderer = r }
}

// WithScheduler replaces the default FrameScheduler. A scheduler that is not
// a *FrameScheduler must be advanced by the caller.
func WithScheduler(s Scheduler) Option {
	return func(m *Map) { m.scheduler = s }
}

// WithInitialState sets the state the map starts in. It is applied to the
// target immediately.
func WithInitialState(s TransformState) Option {
	return func(m *Map) { m.state = s }
}

// NewMap creates a map drawing through target. If target also implements
// Target, its bounds size becomes the initial viewport size.
func NewMap(target RenderTarget, opts ...Option) *Map {
	m := &Map{
		target: target,
		state:  IdentityState(),
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = defaultLogger(m.cfg)
	}
	if m.renderer == nil {
		m.renderer = NewTweenRenderer()
	}
	if m.scheduler == nil {
		m.scheduler = NewFrameScheduler()
	}
	if t, ok := target.(Target); ok {
		b := t.Bounds()
		m.viewport = Size{Width: b.Width, Height: b.Height}
	}
	m.queue = NewTransformationQueue(m,
		WithTransformationFactory(NewTransformationFactory(TransformEnv{
			Renderer:  m.renderer,
			Scheduler: m.scheduler,
			Grace:     m.cfg.FallbackGrace(),
			Logger:    m.logger,
		})),
		WithQueueLogger(m.logger),
	)
	m.renderer.Apply(m.target, m.state)
	return m
}

// State returns the committed transform. While a transformation animates the
// rendered state differs; the committed one changes when it completes.
func (m *Map) State() TransformState { return m.state }

// Target returns the transformation plane.
func (m *Map) Target() RenderTarget { return m.target }

// Config returns the map's configuration.
func (m *Map) Config() Config { return m.cfg }

// Logger returns the map's logger.
func (m *Map) Logger() *log.Logger { return m.logger }

// Queue returns the map's transformation queue.
func (m *Map) Queue() *TransformationQueue { return m.queue }

// Scheduler returns the scheduler used for deferred callbacks.
func (m *Map) Scheduler() Scheduler { return m.scheduler }

// Disposed reports whether Dispose has been called.
func (m *Map) Disposed() bool { return m.disposed }

// ViewportSize returns the size of the visible area.
func (m *Map) ViewportSize() Size { return m.viewport }

// SetViewportSize updates the size of the visible area.
func (m *Map) SetViewportSize(s Size) { m.viewport = s }

// ContentSize returns the unscaled size of the content.
func (m *Map) ContentSize() Size { return m.content }

// SetContentSize updates the unscaled size of the content.
func (m *Map) SetContentSize(s Size) { m.content = s }

// Interaction fires for every event that passed the interceptor chain.
func (m *Map) Interaction() *Signal[*InteractionEvent] { return &m.interaction }

// TransformStarted fires after the interceptors adjusted a target state and
// before its transformation executes.
func (m *Map) TransformStarted() *Signal[TransformEvent] { return &m.transformStarted }

// TransformFinished fires once a transformation completed.
func (m *Map) TransformFinished() *Signal[TransformEvent] { return &m.transformFinished }

// ScaleChanged fires when a committed state changes the scale.
func (m *Map) ScaleChanged() *Signal[ScaleChange] { return &m.scaleChanged }

// TranslationChanged fires when a committed state changes the translation.
func (m *Map) TranslationChanged() *Signal[TranslationChange] { return &m.translationChanged }

// Disposing fires once, at the start of Dispose.
func (m *Map) Disposing() *Signal[*Map] { return &m.disposing }

// AddInterceptor binds i to the map. Interceptors run in the order they were
// added. It panics with ErrAlreadyRegistered if i is bound to any map or has
// been disposed. On a disposed map it does nothing.
func (m *Map) AddInterceptor(i Interceptor) {
	if m.disposed {
		return
	}
	b := i.binding()
	if b.m != nil || b.disposed {
		contractPanic(ErrAlreadyRegistered, "%T", i)
	}
	b.bind(m, i)
	m.interceptors = append(m.interceptors, i)
}

// Interceptors returns the registered interceptors in registration order.
func (m *Map) Interceptors() []Interceptor {
	out := make([]Interceptor, len(m.interceptors))
	copy(out, m.interceptors)
	return out
}

func (m *Map) forgetInterceptor(i Interceptor) {
	for k, x := range m.interceptors {
		if x == i {
			copy(m.interceptors[k:], m.interceptors[k+1:])
			m.interceptors[len(m.interceptors)-1] = nil
			m.interceptors = m.interceptors[:len(m.interceptors)-1]
			return
		}
	}
}

// HandleInteraction runs ev through the interceptor chain and, unless an
// interceptor stopped or cancelled it, queues it and processes the queue. It
// reports whether the event was queued.
func (m *Map) HandleInteraction(ev *InteractionEvent) bool {
	if m.disposed {
		return false
	}
	p := &interactionPass{event: ev}
	m.interactionChain.dispatchUntil(p, func() bool { return p.stopped || ev.Cancelled })
	if p.stopped || ev.Cancelled {
		m.logger.Debug("interaction stopped by interceptor", "type", ev.Type, "event", ev.ID)
		return false
	}
	m.interaction.Dispatch(ev)

	// A new touch takes over from a glide or spring-back that is still
	// running; its events continue from the interpolated state.
	if ev.Type == EventTouch && !ev.Simulated {
		m.CancelTransformation()
	}

	if !m.queue.Enqueue(ev, m.commit) {
		return false
	}
	m.queue.ProcessEvents()
	return true
}

// HandleTransformStarted threads state through the interceptors' started
// handlers and notifies subscribers. It is called by the queue.
func (m *Map) HandleTransformStarted(ev *InteractionEvent, state TransformState) TransformState {
	p := &transformPass{event: ev, state: state}
	m.startedChain.Dispatch(p)
	m.logger.Debug("transform started", "type", ev.Type, "event", ev.ID, "state", p.state)
	m.transformStarted.Dispatch(TransformEvent{Event: ev, State: p.state})
	return p.state
}

// HandleTransformFinished notifies the interceptors and subscribers. It is
// called by the queue.
func (m *Map) HandleTransformFinished(ev *InteractionEvent, state TransformState) {
	m.logger.Debug("transform finished", "type", ev.Type, "event", ev.ID, "state", state)
	p := &transformPass{event: ev, state: state}
	m.finishedChain.Dispatch(p)
	m.transformFinished.Dispatch(TransformEvent{Event: ev, State: state})
}

// commit records the state a transformation reached.
func (m *Map) commit(s TransformState) {
	prev := m.state
	m.state = s
	if prev.Scale != s.Scale {
		m.scaleChanged.Dispatch(ScaleChange{From: prev.Scale, To: s.Scale})
	}
	if prev.TranslateX != s.TranslateX || prev.TranslateY != s.TranslateY {
		m.translationChanged.Dispatch(TranslationChange{
			From: Point{X: prev.TranslateX, Y: prev.TranslateY},
			To:   Point{X: s.TranslateX, Y: s.TranslateY},
		})
	}
}

// CancelTransformation stops the running transformation, if any, and returns
// the state it stopped at.
func (m *Map) CancelTransformation() (TransformState, bool) {
	s, ok := m.queue.CancelCurrentTransformation()
	if ok {
		m.logger.Debug("transformation cancelled", "state", s)
	}
	return s, ok
}

// simulated builds a programmatic event carrying animation hints.
func (m *Map) simulated(typ EventType, g Gesture, d time.Duration) *InteractionEvent {
	ev := NewInteractionEvent(typ, g, g)
	ev.Simulated = true
	ev.Duration = d
	ev.Easing = m.cfg.AnimationEasing()
	return ev
}

// TranslateBy pans the content by (dx, dy) over d.
func (m *Map) TranslateBy(dx, dy float64, d time.Duration) bool {
	g := NewGesture()
	g.DeltaX, g.DeltaY = dx, dy
	return m.HandleInteraction(m.simulated(EventDrag, g, d))
}

// ZoomBy scales the content by factor around origin (viewport coordinates)
// over d.
func (m *Map) ZoomBy(factor float64, origin Point, d time.Duration) bool {
	g := NewGesture()
	g.Scale = factor
	ev := m.simulated(EventTransform, g, d)
	ev.SetPosition(origin)
	return m.HandleInteraction(ev)
}

// TransformTo moves to state over state.Duration. The move is computed
// against the state committed when TransformTo is called, so call it while
// the queue is idle for an exact result.
func (m *Map) TransformTo(state TransformState) bool {
	cur := m.state
	g := NewGesture()
	if cur.Scale != 0 {
		g.Scale = state.Scale / cur.Scale
	}
	g.DeltaX = state.TranslateX - cur.TranslateX*g.Scale
	g.DeltaY = state.TranslateY - cur.TranslateY*g.Scale
	ev := m.simulated(EventTransform, g, state.Duration)
	if state.Easing.Func != nil {
		ev.Easing = state.Easing
	}
	ev.SetPosition(Point{})
	return m.HandleInteraction(ev)
}

// AttachInput makes Update poll in for pointer input each frame.
func (m *Map) AttachInput(in *EbitenInput) {
	m.input = in
}

// Update advances the map by one frame of dt: pending input is polled, then
// animations and deferred callbacks advance.
func (m *Map) Update(dt time.Duration) {
	if m.disposed {
		return
	}
	if m.input != nil {
		m.input.Poll()
	}
	if u, ok := m.renderer.(frameUpdater); ok {
		u.Update(dt)
	}
	if fs, ok := m.scheduler.(*FrameScheduler); ok {
		fs.Advance(dt)
	}
}

// Dispose drops queued events, cancels the running transformation, disposes
// every interceptor and drops all subscribers. The map ignores input
// afterward.
func (m *Map) Dispose() {
	if m.disposed {
		return
	}
	m.disposing.Dispatch(m)
	if n := m.queue.Clear(); n > 0 {
		m.logger.Debug("dropped queued events on dispose", "count", n)
	}
	m.CancelTransformation()
	for len(m.interceptors) > 0 {
		m.interceptors[0].binding().Dispose()
	}
	m.disposed = true
	m.interaction.clear()
	m.transformStarted.clear()
	m.transformFinished.clear()
	m.scaleChanged.clear()
	m.translationChanged.clear()
	m.disposing.clear()
}
