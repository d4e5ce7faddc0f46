package awesomemap

import (
	"time"

	"github.com/tanema/gween"
)

// TweenRenderer is a frame-driven Renderer. Each animation tweens the
// translation and scale with the target state's easing; call Update once per
// frame to advance them.
//
// There is no background goroutine; users call Update themselves (Map.Update
// does).
type TweenRenderer struct {
	active []*tweenAnimation
}

// tweenAnimation holds the three tweens for one transition.
type tweenAnimation struct {
	r       *TweenRenderer
	target  RenderTarget
	to      TransformState
	current TransformState
	tweens  [3]*gween.Tween
	done    func(TransformState)
	stopped bool
}

// NewTweenRenderer creates a renderer with no running animations.
func NewTweenRenderer() *TweenRenderer {
	return &TweenRenderer{}
}

// Apply sets state on target immediately.
func (r *TweenRenderer) Apply(target RenderTarget, state TransformState) {
	mustBeValid(state)
	target.SetTransform(state)
}

// Animate starts a transition from -> to over to.Duration.
func (r *TweenRenderer) Animate(target RenderTarget, to, from TransformState, done func(TransformState)) Animation {
	mustBeValid(to)
	mustBeValid(from)
	d := float32(to.Duration.Seconds())
	fn := to.Easing.fn()
	a := &tweenAnimation{
		r:       r,
		target:  target,
		to:      to,
		current: from,
		done:    done,
	}
	a.current.Duration = to.Duration
	a.current.Easing = to.Easing
	// gween interpolates in float32, so a stopped animation reports its
	// position with float32 precision. Completion snaps to the exact target.
	a.tweens[0] = gween.New(float32(from.TranslateX), float32(to.TranslateX), d, fn)
	a.tweens[1] = gween.New(float32(from.TranslateY), float32(to.TranslateY), d, fn)
	a.tweens[2] = gween.New(float32(from.Scale), float32(to.Scale), d, fn)
	r.active = append(r.active, a)
	return a
}

// Active returns the number of running animations.
func (r *TweenRenderer) Active() int {
	return len(r.active)
}

// Update advances every running animation by dt, writes the interpolated
// state to its target and completes the ones that reached their end.
func (r *TweenRenderer) Update(dt time.Duration) {
	if len(r.active) == 0 {
		return
	}
	step := float32(dt.Seconds())

	// Completion callbacks may start or stop animations, so run them only
	// after the active list has been rebuilt.
	var finished []*tweenAnimation
	running := r.active[:0]
	for _, a := range r.active {
		if a.stopped {
			continue
		}
		if a.advance(step) {
			finished = append(finished, a)
			continue
		}
		running = append(running, a)
	}
	for i := len(running); i < len(r.active); i++ {
		r.active[i] = nil
	}
	r.active = running

	for _, a := range finished {
		if a.stopped {
			continue
		}
		a.stopped = true
		a.done(a.to)
	}
}

// advance steps the tweens and reports whether all of them finished.
func (a *tweenAnimation) advance(dt float32) bool {
	allDone := true
	var vals [3]float64
	for i, tw := range a.tweens {
		v, finished := tw.Update(dt)
		vals[i] = float64(v)
		if !finished {
			allDone = false
		}
	}
	if allDone {
		a.current.TranslateX = a.to.TranslateX
		a.current.TranslateY = a.to.TranslateY
		a.current.Scale = a.to.Scale
	} else {
		a.current.TranslateX, a.current.TranslateY, a.current.Scale = vals[0], vals[1], vals[2]
	}
	a.target.SetTransform(a.current)
	return allDone
}

// Stop halts the animation at its current interpolated state.
func (a *tweenAnimation) Stop() TransformState {
	if !a.stopped {
		a.stopped = true
		a.r.remove(a)
	}
	return a.current
}

func (r *TweenRenderer) remove(a *tweenAnimation) {
	for i, x := range r.active {
		if x == a {
			copy(r.active[i:], r.active[i+1:])
			r.active[len(r.active)-1] = nil
			r.active = r.active[:len(r.active)-1]
			return
		}
	}
}
