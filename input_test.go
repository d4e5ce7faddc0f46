package awesomemap

import (
	"testing"
	"time"
)

func TestEbitenInputFrames(t *testing.T) {
	sink := &eventSink{}
	rec := NewRecognizer(sink, nil, DefaultConfig().Input)
	var now time.Duration
	in := NewEbitenInput(rec, func() time.Duration { return now })
	if in.Recognizer() != rec {
		t.Fatal("Recognizer mismatch")
	}

	cursor := pt(5, 5)
	frame := func(wheel float64, pointers ...RawPointer) {
		in.feedFrame(pointers, DeviceMouse, cursor, wheel)
		now += DefaultFrameTime
	}

	frame(0) // first frame reports the cursor
	frame(0) // unchanged cursor, nothing
	checkTypes(t, sink, EventPointerMove)

	sink.events = nil
	frame(0, RawPointer{X: 5, Y: 5})
	frame(0, RawPointer{X: 5, Y: 5})
	frame(0)
	checkTypes(t, sink, EventTouch, EventTap, EventRelease)

	sink.events = nil
	cursor = pt(8, 9)
	frame(1)
	checkTypes(t, sink, EventPointerMove, EventWheel)
	if p, _ := sink.events[1].Cumulative.Position(); p != (Point{}) {
		t.Errorf("wheel without target has position %v", p)
	}
	if c := sink.events[1].Cumulative.Center; c != pt(8, 9) {
		t.Errorf("wheel center = %v, want cursor", c)
	}
}

func TestEbitenInputLiftUsesLastPosition(t *testing.T) {
	sink := &eventSink{}
	rec := NewRecognizer(sink, nil, DefaultConfig().Input)
	var now time.Duration
	in := NewEbitenInput(rec, func() time.Duration { return now })

	for _, x := range []float64{0, 20, 40} {
		in.feedFrame([]RawPointer{{X: x}}, DeviceTouch, Point{}, 0)
		now += DefaultFrameTime
	}
	in.feedFrame(nil, DeviceTouch, Point{}, 0)

	end := sink.ofType(EventDragEnd)
	if len(end) != 1 {
		t.Fatalf("events = %v", sink.types())
	}
	if end[0].Cumulative.DeltaX != 40 {
		t.Errorf("drag end delta = %v, want 40", end[0].Cumulative.DeltaX)
	}
}

func TestEbitenInputInjectedFirst(t *testing.T) {
	sink := &eventSink{}
	rec := NewRecognizer(sink, nil, DefaultConfig().Input)
	in := NewEbitenInput(rec, func() time.Duration { return 0 })

	in.InjectTap(3, 4)
	in.Poll()
	in.Poll()
	checkTypes(t, sink, EventTouch, EventTap, EventRelease)
	if in.Pending() != 0 {
		t.Errorf("Pending = %d", in.Pending())
	}
}

func TestMapUpdatePollsInput(t *testing.T) {
	m, target := newTestMap()
	rec := NewRecognizer(m, target, m.Config().Input)
	in := NewEbitenInput(rec, m.Scheduler().(*FrameScheduler).Now)
	m.AttachInput(in)

	in.InjectDrag(100, 100, 100, 150, 5)
	for in.Pending() > 0 {
		m.Update(DefaultFrameTime)
	}
	if s := m.State(); !approxEqual(s.TranslateY, 50, 1e-9) {
		t.Errorf("state = %v, want y 50", s)
	}
}
