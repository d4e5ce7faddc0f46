package awesomemap

// RenderTarget is the transformation plane a map draws its content through.
// How the transform is realized (GeoM, CSS, canvas) is up to the target.
type RenderTarget interface {
	SetTransform(state TransformState)
}

// TransitionNotifier is implemented by render targets that signal on their
// own when a visual transition has finished. A Transformation treats that
// signal as one of its completion sources.
type TransitionNotifier interface {
	// OnTransitionEnd registers fn and returns a function that removes it.
	OnTransitionEnd(fn func()) (remove func())
}

// Renderer applies states to a render target, either instantly or as an
// animated transition.
type Renderer interface {
	// Apply sets state on target immediately. It panics with ErrNaNState
	// before touching target if state contains NaN.
	Apply(target RenderTarget, state TransformState)

	// Animate transitions target from one state to another over
	// to.Duration and calls done with the final state when it completes on
	// its own.
	Animate(target RenderTarget, to, from TransformState, done func(TransformState)) Animation
}

// Animation is a running transition.
type Animation interface {
	// Stop halts the transition where it is and returns the state currently
	// rendered. done is not called.
	Stop() TransformState
}

// ImmediateRenderer applies every state at once, finishing animations
// synchronously. It is used for headless replay and as the queue default.
type ImmediateRenderer struct{}

// Apply sets state on target.
func (ImmediateRenderer) Apply(target RenderTarget, state TransformState) {
	mustBeValid(state)
	target.SetTransform(state)
}

// Animate applies to and calls done before returning.
func (r ImmediateRenderer) Animate(target RenderTarget, to, _ TransformState, done func(TransformState)) Animation {
	r.Apply(target, to)
	done(to)
	return finishedAnimation(to)
}

type finishedAnimation TransformState

func (a finishedAnimation) Stop() TransformState { return TransformState(a) }
