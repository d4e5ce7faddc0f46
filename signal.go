package awesomemap

type signalHandler[T any] struct {
	id uint32
	fn func(T)
}

// Signal is a synchronous observable. Handlers run in subscription order on
// the goroutine that calls Dispatch.
type Signal[T any] struct {
	handlers []signalHandler[T]
	nextID   uint32
}

// Subscription allows removing a handler registered on a Signal.
type Subscription struct {
	remove func()
}

// Remove unregisters the handler so it no longer fires. Removing twice, or
// removing the zero Subscription, is a no-op.
func (s Subscription) Remove() {
	if s.remove != nil {
		s.remove()
	}
}

// Subscribe registers fn and returns a handle to remove it.
func (s *Signal[T]) Subscribe(fn func(T)) Subscription {
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, signalHandler[T]{id: id, fn: fn})
	return Subscription{remove: func() { s.unsubscribe(id) }}
}

// The entry is removed from the slice to avoid nil iteration waste.
func (s *Signal[T]) unsubscribe(id uint32) {
	for i := range s.handlers {
		if s.handlers[i].id == id {
			copy(s.handlers[i:], s.handlers[i+1:])
			s.handlers[len(s.handlers)-1] = signalHandler[T]{}
			s.handlers = s.handlers[:len(s.handlers)-1]
			return
		}
	}
}

// Len returns the number of subscribed handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}

// Dispatch calls every handler with v. Handlers added or removed during the
// dispatch take effect on the next one.
func (s *Signal[T]) Dispatch(v T) {
	s.dispatchUntil(v, nil)
}

// dispatchUntil is Dispatch with an early exit: stop is checked after each
// handler.
func (s *Signal[T]) dispatchUntil(v T, stop func() bool) {
	if len(s.handlers) == 0 {
		return
	}
	handlers := make([]signalHandler[T], len(s.handlers))
	copy(handlers, s.handlers)
	for _, h := range handlers {
		h.fn(v)
		if stop != nil && stop() {
			return
		}
	}
}

// clear removes every handler.
func (s *Signal[T]) clear() {
	s.handlers = nil
}
