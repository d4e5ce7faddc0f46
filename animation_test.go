package awesomemap

import (
	"math"
	"testing"
	"time"
)

func TestTweenRendererReachesTarget(t *testing.T) {
	r := NewTweenRenderer()
	target := &recordTarget{}
	to := TransformState{TranslateX: 100, TranslateY: 200, Scale: 3, Duration: time.Second, Easing: EaseInOut}

	var done []TransformState
	r.Animate(target, to, IdentityState(), func(s TransformState) { done = append(done, s) })
	if r.Active() != 1 {
		t.Fatalf("Active = %d, want 1", r.Active())
	}

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	r.Update(500 * time.Millisecond)
	r.Update(500 * time.Millisecond)

	if len(done) != 1 {
		t.Fatalf("done called %d times, want 1", len(done))
	}
	if !target.last().Equals(to) {
		t.Errorf("target = %v, want exactly %v", target.last(), to)
	}
	if r.Active() != 0 {
		t.Errorf("Active = %d after completion", r.Active())
	}
}

func TestTweenRendererStop(t *testing.T) {
	r := NewTweenRenderer()
	target := &recordTarget{}
	to := TransformState{TranslateX: 100, Scale: 1, Duration: 100 * time.Millisecond, Easing: EaseLinear}

	called := false
	a := r.Animate(target, to, IdentityState(), func(TransformState) { called = true })
	r.Update(30 * time.Millisecond)
	s := a.Stop()

	if math.Abs(s.TranslateX-30) > 0.01 {
		t.Errorf("stopped at X = %f, want ~30", s.TranslateX)
	}
	r.Update(time.Second)
	if called {
		t.Error("done called after Stop")
	}
	if r.Active() != 0 {
		t.Errorf("Active = %d after Stop", r.Active())
	}
}

func TestTweenRendererRejectsNaN(t *testing.T) {
	r := NewTweenRenderer()
	target := &recordTarget{}
	expectPanic(t, ErrNaNState, func() {
		r.Apply(target, TransformState{TranslateX: math.NaN(), Scale: 1})
	})
	expectPanic(t, ErrNaNState, func() {
		r.Animate(target, TransformState{Scale: math.NaN(), Duration: time.Second}, IdentityState(), func(TransformState) {})
	})
	if len(target.states) != 0 || r.Active() != 0 {
		t.Error("NaN state reached the target")
	}
}

func TestTweenRendererStopPrecision(t *testing.T) {
	r := NewTweenRenderer()
	target := &recordTarget{}
	to := TransformState{TranslateX: 1e6, Scale: 1, Duration: 100 * time.Millisecond, Easing: EaseLinear}

	a := r.Animate(target, to, IdentityState(), func(TransformState) {})
	r.Update(50 * time.Millisecond)
	s := a.Stop()

	// Interpolation runs in float32; half a million is still within a tenth
	// of a pixel.
	if !approxEqual(s.TranslateX, 5e5, 0.1) {
		t.Errorf("stopped at X = %f, want ~500000", s.TranslateX)
	}
}
