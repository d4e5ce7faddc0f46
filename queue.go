package awesomemap

import "github.com/charmbracelet/log"

// QueueOwner is the map a TransformationQueue works for.
type QueueOwner interface {
	// State returns the currently committed transform.
	State() TransformState
	// Target returns the plane transformations are applied to.
	Target() RenderTarget
	// HandleTransformStarted is called before a transformation executes.
	// The returned state replaces the derived one.
	HandleTransformStarted(ev *InteractionEvent, state TransformState) TransformState
	// HandleTransformFinished is called after a transformation completed.
	HandleTransformFinished(ev *InteractionEvent, state TransformState)
}

type queueItem struct {
	event *InteractionEvent
	done  func(TransformState)
}

// TransformationQueue turns queued InteractionEvents into Transformations and
// executes them one at a time, in order.
type TransformationQueue struct {
	owner   QueueOwner
	factory TransformationFactory
	logger  *log.Logger

	items      []queueItem
	processing bool
	current    Transformer

	// draining is set while drain's loop runs, waiting while a
	// transformation is in flight asynchronously.
	draining bool
	waiting  bool
}

// QueueOption configures a TransformationQueue.
type QueueOption func(*TransformationQueue)

// WithTransformationFactory replaces the factory used to build
// transformations. The default executes every state immediately.
func WithTransformationFactory(f TransformationFactory) QueueOption {
	return func(q *TransformationQueue) { q.factory = f }
}

// WithQueueLogger sets the logger for queue diagnostics.
func WithQueueLogger(l *log.Logger) QueueOption {
	return func(q *TransformationQueue) { q.logger = l }
}

// NewTransformationQueue creates an idle, empty queue for owner.
func NewTransformationQueue(owner QueueOwner, opts ...QueueOption) *TransformationQueue {
	q := &TransformationQueue{owner: owner}
	for _, opt := range opts {
		opt(q)
	}
	if q.factory == nil {
		q.factory = NewTransformationFactory(TransformEnv{})
	}
	return q
}

// Len returns the number of events waiting to be processed.
func (q *TransformationQueue) Len() int {
	return len(q.items)
}

// IsProcessing reports whether a drain is in progress.
func (q *TransformationQueue) IsProcessing() bool {
	return q.processing
}

// Clear drops every event waiting to be processed and returns how many were
// dropped. Their done callbacks are never called. The transformation in
// flight is not affected.
func (q *TransformationQueue) Clear() int {
	n := len(q.items)
	for i := range q.items {
		q.items[i] = queueItem{}
	}
	q.items = q.items[:0]
	if q.current == nil {
		q.processing = false
	}
	return n
}

// Current returns the transformation in flight, or nil.
func (q *TransformationQueue) Current() Transformer {
	return q.current
}

// Enqueue appends ev to the queue. done, if not nil, is called with the
// state reached once the event's transformation completes. Passive pointer
// moves are dropped while the queue is processing; Enqueue reports whether
// the event was queued.
func (q *TransformationQueue) Enqueue(ev *InteractionEvent, done func(TransformState)) bool {
	if q.processing && ev.Type == EventPointerMove {
		if q.logger != nil {
			q.logger.Debug("dropped passive move while processing", "event", ev.ID)
		}
		return false
	}
	q.items = append(q.items, queueItem{event: ev, done: done})
	return true
}

// ProcessEvents drains the queue. It returns false without doing anything if
// a drain is already in progress.
func (q *TransformationQueue) ProcessEvents() bool {
	if q.processing {
		return false
	}
	q.processing = true
	q.drain()
	return true
}

// CancelCurrentTransformation cancels the transformation in flight and
// returns the state it stopped at. Events still queued are processed from
// that state.
func (q *TransformationQueue) CancelCurrentTransformation() (TransformState, bool) {
	if q.current == nil {
		return TransformState{}, false
	}
	return q.current.Cancel()
}

// drain executes queued events until the queue is empty or a transformation
// completes asynchronously. Synchronous completions are handled by the loop
// rather than by recursion, so long runs of instant transforms do not grow
// the stack.
func (q *TransformationQueue) drain() {
	if q.draining {
		return
	}
	q.draining = true
	defer func() { q.draining = false }()

	for !q.waiting {
		if len(q.items) == 0 {
			q.processing = false
			return
		}
		q.processing = true

		item := q.items[0]
		q.items[0] = queueItem{}
		q.items = q.items[1:]

		from := q.owner.State()
		to := FromEvent(item.event, from)
		item.event.TargetState = &to
		to = q.owner.HandleTransformStarted(item.event, to)
		item.event.TargetState = &to

		t := q.factory(q.owner.Target(), to, from)
		q.current = t
		q.waiting = true
		t.Execute(func(final TransformState) {
			q.complete(item, final)
		})
	}
}

// complete is the single completion handler for every transformation.
func (q *TransformationQueue) complete(item queueItem, final TransformState) {
	if q.current == nil && !q.waiting {
		return
	}
	q.current = nil
	q.waiting = false
	q.processing = len(q.items) > 0

	if item.done != nil {
		item.done(final)
	}
	q.owner.HandleTransformFinished(item.event, final)

	// An asynchronous completion resumes the drain here; a synchronous one
	// returns to the loop that is still running.
	if !q.draining && q.processing {
		q.drain()
	}
}
