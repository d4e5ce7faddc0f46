package awesomemap

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// recordTarget is a RenderTarget and Target that keeps every state it was given.
type recordTarget struct {
	bounds Rect
	states []TransformState
}

func (r *recordTarget) SetTransform(s TransformState) { r.states = append(r.states, s) }
func (r *recordTarget) Bounds() Rect                  { return r.bounds }

func (r *recordTarget) last() TransformState {
	if len(r.states) == 0 {
		return TransformState{}
	}
	return r.states[len(r.states)-1]
}

// notifyTarget signals transition ends on demand.
type notifyTarget struct {
	recordTarget
	listeners map[int]func()
	nextID    int
}

func (n *notifyTarget) OnTransitionEnd(fn func()) func() {
	if n.listeners == nil {
		n.listeners = map[int]func(){}
	}
	n.nextID++
	id := n.nextID
	n.listeners[id] = fn
	return func() { delete(n.listeners, id) }
}

func (n *notifyTarget) fireTransitionEnd() {
	var fns []func()
	for _, fn := range n.listeners {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}

// stallRenderer starts animations that never finish on their own.
type stallRenderer struct {
	started int
	stopped int
}

func (r *stallRenderer) Apply(t RenderTarget, s TransformState) {
	mustBeValid(s)
	t.SetTransform(s)
}

func (r *stallRenderer) Animate(_ RenderTarget, _, from TransformState, _ func(TransformState)) Animation {
	r.started++
	return &stallAnimation{r: r, at: from}
}

type stallAnimation struct {
	r  *stallRenderer
	at TransformState
}

func (a *stallAnimation) Stop() TransformState {
	a.r.stopped++
	return a.at
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestMap(opts ...Option) (*Map, *recordTarget) {
	target := &recordTarget{bounds: Rect{Width: 500, Height: 500}}
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewMap(target, opts...), target
}

// userEvent builds a non-simulated event whose cumulative and iterative
// gestures are both g.
func userEvent(typ EventType, g Gesture) *InteractionEvent {
	return NewInteractionEvent(typ, g, g)
}

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic = %v, want error wrapping %v", r, target)
		}
	}()
	fn()
}
