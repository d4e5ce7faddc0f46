package awesomemap

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestFromEvent_Drag(t *testing.T) {
	it := NewGesture()
	it.DeltaX, it.DeltaY = 50, -50
	ev := userEvent(EventDrag, it)

	got := FromEvent(ev, IdentityState())
	want := TransformState{TranslateX: 50, TranslateY: -50, Scale: 1}
	if !got.Equals(want) {
		t.Errorf("FromEvent = %v, want %v", got, want)
	}
}

func TestFromEvent_TransformStartAnchor(t *testing.T) {
	cum := Gesture{Scale: 0.5, Center: Point{X: 50, Y: 100}, HasCenter: true}
	ev := NewInteractionEvent(EventTransformStart, cum, NewGesture())
	current := TransformState{TranslateX: 10, TranslateY: 20, Scale: 2}

	got := FromEvent(ev, current)
	if got.Scale != 1 {
		t.Errorf("Scale = %f, want 1", got.Scale)
	}
	if !approxEqual(got.TranslateX, 30, 1e-9) || !approxEqual(got.TranslateY, 60, 1e-9) {
		t.Errorf("translate = (%f, %f), want (30, 60)", got.TranslateX, got.TranslateY)
	}
	if current.Scale != 2 || current.TranslateX != 10 {
		t.Errorf("current modified: %v", current)
	}
}

func TestFromEvent_Transform(t *testing.T) {
	it := NewGesture()
	it.Scale = 2
	it.DeltaX = 5
	ev := userEvent(EventTransform, it)
	ev.SetPosition(Point{X: 100, Y: 100})

	got := FromEvent(ev, IdentityState())
	want := TransformState{TranslateX: -95, TranslateY: -100, Scale: 2}
	if !got.Equals(want) {
		t.Errorf("FromEvent = %v, want %v", got, want)
	}
}

func TestFromEvent_Wheel(t *testing.T) {
	it := NewGesture()
	it.Scale = 1.25
	ev := userEvent(EventWheel, it)
	ev.SetPosition(Point{X: 40, Y: 0})

	got := FromEvent(ev, IdentityState())
	if got.Scale != 1.25 || got.TranslateX != -10 || got.TranslateY != 0 {
		t.Errorf("FromEvent = %v", got)
	}
}

func TestFromEvent_PassiveTypes(t *testing.T) {
	current := TransformState{TranslateX: 7, TranslateY: 8, Scale: 1.5}
	it := NewGesture()
	it.DeltaX, it.DeltaY, it.Scale = 100, 100, 3
	for _, typ := range []EventType{
		EventTouch, EventRelease, EventTap, EventDoubleTap, EventHold, EventSwipe, EventPointerMove,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			got := FromEvent(userEvent(typ, it), current)
			if !got.Equals(current) {
				t.Errorf("FromEvent = %v, want %v", got, current)
			}
		})
	}
}

func TestFromEvent_Deterministic(t *testing.T) {
	it := NewGesture()
	it.DeltaX, it.Scale = 12, 1.5
	ev := userEvent(EventTransform, it)
	current := TransformState{TranslateX: 3, TranslateY: 4, Scale: 2}

	a := FromEvent(ev, current)
	b := FromEvent(ev, current)
	if !a.Equals(b) {
		t.Errorf("FromEvent not deterministic: %v vs %v", a, b)
	}
}

func TestFromEvent_CopiesTiming(t *testing.T) {
	ev := userEvent(EventDrag, NewGesture())
	ev.Duration = 200 * time.Millisecond
	ev.Easing = EaseLinear

	got := FromEvent(ev, TransformState{Scale: 1, Duration: time.Second, Easing: EaseIn})
	if got.Duration != 200*time.Millisecond {
		t.Errorf("Duration = %v, want 200ms", got.Duration)
	}
	if got.Easing.Name != "linear" {
		t.Errorf("Easing = %q, want linear", got.Easing.Name)
	}
}

func TestFromEvent_ZeroScaleIsNoZoom(t *testing.T) {
	ev := userEvent(EventTransform, Gesture{})
	got := FromEvent(ev, TransformState{Scale: 2})
	if got.Scale != 2 {
		t.Errorf("Scale = %f, want 2", got.Scale)
	}
}

func TestZoomByKeepsAnchorFixed(t *testing.T) {
	s := TransformState{TranslateX: -40, TranslateY: 15, Scale: 1.7}
	ox, oy := 123.0, 77.0
	// Content point currently under the anchor.
	cx := (ox - s.TranslateX) / s.Scale
	cy := (oy - s.TranslateY) / s.Scale

	s.ZoomBy(2.3, ox, oy)
	sx := s.TranslateX + s.Scale*cx
	sy := s.TranslateY + s.Scale*cy
	if !approxEqual(sx, ox, 1e-9) || !approxEqual(sy, oy, 1e-9) {
		t.Errorf("anchor moved to (%f, %f), want (%f, %f)", sx, sy, ox, oy)
	}
}

func TestTransformStateValidate(t *testing.T) {
	if err := IdentityState().Validate(); err != nil {
		t.Errorf("identity: %v", err)
	}
	for _, s := range []TransformState{
		{TranslateX: math.NaN(), Scale: 1},
		{TranslateY: math.NaN(), Scale: 1},
		{Scale: math.NaN()},
	} {
		if err := s.Validate(); !errors.Is(err, ErrNaNState) {
			t.Errorf("Validate(%v) = %v, want ErrNaNState", s, err)
		}
	}
}

func TestTransformStateEqualsIgnoresTiming(t *testing.T) {
	a := TransformState{TranslateX: 1, Scale: 1}
	b := a
	b.Duration = time.Second
	b.Easing = EaseIn
	if !a.Equals(b) {
		t.Error("Equals should ignore duration and easing")
	}
	b.Scale = 1.0001
	if a.Equals(b) {
		t.Error("Equals should compare scale")
	}
}
