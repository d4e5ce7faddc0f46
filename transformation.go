package awesomemap

import (
	"time"

	"github.com/charmbracelet/log"
)

// defaultFallbackGrace is added to an animation's duration before the
// fallback timer forces it to complete.
const defaultFallbackGrace = 250 * time.Millisecond

// TransformEnv is what a Transformation needs from its surroundings. Zero
// fields get defaults: an ImmediateRenderer, no fallback timer and no logging.
type TransformEnv struct {
	Renderer  Renderer
	Scheduler Scheduler
	// Grace is added to the animation duration for the fallback timer.
	Grace  time.Duration
	Logger *log.Logger
}

// Transformer is the single-use command the queue executes for each event.
type Transformer interface {
	Execute(done func(TransformState))
	Cancel() (TransformState, bool)
}

// TransformationFactory builds the Transformer for one queued event.
type TransformationFactory func(target RenderTarget, to, from TransformState) Transformer

// NewTransformationFactory returns a factory producing *Transformation values
// bound to env.
func NewTransformationFactory(env TransformEnv) TransformationFactory {
	return func(target RenderTarget, to, from TransformState) Transformer {
		return NewTransformation(target, to, from, env)
	}
}

// Transformation moves a render target from one state to another, once.
type Transformation struct {
	target RenderTarget
	to     TransformState
	from   TransformState
	env    TransformEnv

	executed bool
	anim     Animation
	settle   func(TransformState)
}

// NewTransformation creates a transformation of target from -> to.
func NewTransformation(target RenderTarget, to, from TransformState, env TransformEnv) *Transformation {
	if env.Renderer == nil {
		env.Renderer = ImmediateRenderer{}
	}
	if env.Grace <= 0 {
		env.Grace = defaultFallbackGrace
	}
	return &Transformation{target: target, to: to, from: from, env: env}
}

// TargetState returns the state this transformation moves to.
func (t *Transformation) TargetState() TransformState {
	return t.to
}

// Executed reports whether Execute has been called.
func (t *Transformation) Executed() bool {
	return t.executed
}

// Animating reports whether an animated transition is still running.
func (t *Transformation) Animating() bool {
	return t.settle != nil
}

// Execute applies or animates the target state and calls done exactly once
// with the state reached. A second call only calls done with the target
// state. If the state does not change, the target is left untouched.
//
// It panics with ErrNaNState if the target state contains NaN.
func (t *Transformation) Execute(done func(TransformState)) {
	if t.executed {
		done(t.to)
		return
	}
	t.executed = true

	if t.to.Equals(t.from) {
		done(t.to)
		return
	}
	mustBeValid(t.to)

	if t.to.Duration <= 0 {
		t.env.Renderer.Apply(t.target, t.to)
		done(t.to)
		return
	}
	t.animate(done)
}

// animate runs the transition. Completion may come from the animation
// itself, the target's transition-end signal, the fallback timer or Cancel;
// the first one wins and the rest are ignored.
func (t *Transformation) animate(done func(TransformState)) {
	var (
		settled   bool
		timer     Timer
		removeEnd func()
	)
	settle := func(s TransformState) {
		if settled {
			return
		}
		settled = true
		t.anim = nil
		t.settle = nil
		if timer != nil {
			timer.Stop()
		}
		if removeEnd != nil {
			removeEnd()
		}
		done(s)
	}
	// force completes the transition from outside the animation: the target
	// is snapped to its final state.
	force := func(source string) {
		if settled {
			return
		}
		if t.anim != nil {
			t.anim.Stop()
		}
		t.env.Renderer.Apply(t.target, t.to)
		if t.env.Logger != nil {
			t.env.Logger.Debug("transformation forced to complete", "source", source, "state", t.to)
		}
		settle(t.to)
	}

	t.settle = settle
	if n, ok := t.target.(TransitionNotifier); ok {
		removeEnd = n.OnTransitionEnd(func() { force("transitionend") })
	}
	if t.env.Scheduler != nil {
		timer = t.env.Scheduler.AfterFunc(t.to.Duration+t.env.Grace, func() {
			if !settled && t.env.Logger != nil {
				t.env.Logger.Warn("animation did not signal completion, using fallback", "duration", t.to.Duration)
			}
			force("timeout")
		})
	}

	anim := t.env.Renderer.Animate(t.target, t.to, t.from, settle)
	if !settled {
		t.anim = anim
	}
}

// Cancel stops a running animation and completes the transformation with
// the state rendered at that moment, which it also returns. It reports false
// and does nothing when no animation is running.
func (t *Transformation) Cancel() (TransformState, bool) {
	if t.settle == nil || t.anim == nil {
		return TransformState{}, false
	}
	s := t.anim.Stop()
	t.settle(s)
	return s, true
}
