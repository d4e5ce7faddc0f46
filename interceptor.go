package awesomemap

// Propagation is the outcome of an interaction handler.
type Propagation uint8

const (
	// Continue passes the event on to the next interceptor and, after the
	// last one, to the transformation queue.
	Continue Propagation = iota
	// Stop ends the pass. Later interceptors and the queue never see the event.
	Stop
)

// InteractionHandler inspects an event before it is queued.
type InteractionHandler interface {
	HandleInteraction(ev *InteractionEvent) Propagation
}

// TransformStartedHandler may adjust the state a transformation is about to
// move to. It owns state for the duration of the call and returns the state
// the next interceptor should receive.
type TransformStartedHandler interface {
	HandleTransformStarted(ev *InteractionEvent, state TransformState) TransformState
}

// TransformFinishedHandler observes a completed transformation.
type TransformFinishedHandler interface {
	HandleTransformFinished(ev *InteractionEvent, state TransformState)
}

// Interceptor is a policy module bound to a Map. Implement it by embedding
// Base, then implement any of InteractionHandler, TransformStartedHandler and
// TransformFinishedHandler; the map only subscribes the capabilities present.
//
//	type Logger struct{ awesomemap.Base }
//
//	func (l *Logger) HandleTransformFinished(ev *awesomemap.InteractionEvent, s awesomemap.TransformState) {
//		log.Print(ev.Type, s)
//	}
//
//	m.AddInterceptor(&Logger{})
type Interceptor interface {
	binding() *Base
}

// Base holds an interceptor's binding to its map.
type Base struct {
	m        *Map
	self     Interceptor
	subs     []Subscription
	disposed bool
}

func (b *Base) binding() *Base { return b }

// Map returns the map the interceptor is registered with, or nil.
func (b *Base) Map() *Map {
	return b.m
}

// Registered reports whether the interceptor is currently bound to a map.
func (b *Base) Registered() bool {
	return b.m != nil
}

// Disposed reports whether Dispose has been called.
func (b *Base) Disposed() bool {
	return b.disposed
}

// Dispose unsubscribes every handler and releases the map. A disposed
// interceptor cannot be registered again.
func (b *Base) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	for _, s := range b.subs {
		s.Remove()
	}
	b.subs = nil
	if b.m != nil {
		b.m.forgetInterceptor(b.self)
	}
	b.m = nil
	b.self = nil
}

// interactionPass threads a veto through the interaction chain.
type interactionPass struct {
	event   *InteractionEvent
	stopped bool
}

// transformPass threads the target state through the transform chains.
type transformPass struct {
	event *InteractionEvent
	state TransformState
}

// bind subscribes the capabilities i implements on m's chains, in the order
// they were registered.
func (b *Base) bind(m *Map, i Interceptor) {
	b.m = m
	b.self = i
	if h, ok := i.(InteractionHandler); ok {
		b.subs = append(b.subs, m.interactionChain.Subscribe(func(p *interactionPass) {
			if h.HandleInteraction(p.event) == Stop {
				p.stopped = true
			}
		}))
	}
	if h, ok := i.(TransformStartedHandler); ok {
		b.subs = append(b.subs, m.startedChain.Subscribe(func(p *transformPass) {
			p.state = h.HandleTransformStarted(p.event, p.state)
		}))
	}
	if h, ok := i.(TransformFinishedHandler); ok {
		b.subs = append(b.subs, m.finishedChain.Subscribe(func(p *transformPass) {
			h.HandleTransformFinished(p.event, p.state)
		}))
	}
}
