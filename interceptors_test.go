package awesomemap

import (
	"testing"
	"time"
)

func TestScaleLimit(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		origin Point
		want   TransformState
	}{
		{"above max", 8, Point{X: 100, Y: 100}, TransformState{TranslateX: -300, TranslateY: -300, Scale: 4}},
		{"below min", 0.1, Point{}, TransformState{Scale: 0.5}},
		{"inside range", 2, Point{}, TransformState{Scale: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMap()
			m.AddInterceptor(&ScaleLimit{})
			m.ZoomBy(tt.factor, tt.origin, 0)
			s := m.State()
			if !approxEqual(s.Scale, tt.want.Scale, 1e-9) ||
				!approxEqual(s.TranslateX, tt.want.TranslateX, 1e-9) ||
				!approxEqual(s.TranslateY, tt.want.TranslateY, 1e-9) {
				t.Errorf("State = %v, want %v", s, tt.want)
			}
		})
	}
}

func TestScaleLimit_ExplicitRange(t *testing.T) {
	m, _ := newTestMap()
	m.AddInterceptor(&ScaleLimit{Min: 1, Max: 1.5})
	m.ZoomBy(3, Point{}, 0)
	if m.State().Scale != 1.5 {
		t.Errorf("Scale = %f, want 1.5", m.State().Scale)
	}
}

func TestBoundary(t *testing.T) {
	tests := []struct {
		name    string
		content Size
		dx, dy  float64
		wantX   float64
		wantY   float64
	}{
		{"past top-left", Size{Width: 1000, Height: 1000}, 100, 100, 0, 0},
		{"past bottom-right", Size{Width: 1000, Height: 1000}, -800, -700, -500, -500},
		{"inside", Size{Width: 1000, Height: 1000}, -200, -100, -200, -100},
		{"small content centered", Size{Width: 200, Height: 300}, 40, 40, 150, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMap()
			m.SetContentSize(tt.content)
			m.AddInterceptor(&Boundary{})
			m.TranslateBy(tt.dx, tt.dy, 0)
			s := m.State()
			if s.TranslateX != tt.wantX || s.TranslateY != tt.wantY {
				t.Errorf("translate = (%f, %f), want (%f, %f)", s.TranslateX, s.TranslateY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestBoundary_NoContentSize(t *testing.T) {
	m, _ := newTestMap()
	m.AddInterceptor(&Boundary{})
	m.TranslateBy(100, 100, 0)
	if m.State().TranslateX != 100 {
		t.Errorf("X = %f, want 100 without a content size", m.State().TranslateX)
	}
}

func TestBoundary_ElasticSpringsBack(t *testing.T) {
	m, _ := newTestMap()
	m.SetContentSize(Size{Width: 1000, Height: 1000})
	m.AddInterceptor(&Boundary{Elastic: true})

	g := NewGesture()
	g.DeltaX = 80
	m.HandleInteraction(userEvent(EventDrag, g))
	if m.State().TranslateX != 80 {
		t.Fatalf("elastic drag X = %f, want 80", m.State().TranslateX)
	}

	m.HandleInteraction(userEvent(EventRelease, NewGesture()))
	if !m.Queue().IsProcessing() {
		t.Fatal("release did not animate back")
	}
	m.Update(m.Config().AnimationDuration() + time.Millisecond)
	if m.State().TranslateX != 0 {
		t.Errorf("X = %f after spring back, want 0", m.State().TranslateX)
	}
}

func TestDoubleTapZoom(t *testing.T) {
	m, _ := newTestMap()
	m.AddInterceptor(&DoubleTapZoom{Duration: 100 * time.Millisecond})
	tap := func() {
		ev := userEvent(EventDoubleTap, NewGesture())
		ev.SetPosition(Point{X: 100, Y: 100})
		m.HandleInteraction(ev)
		m.Update(150 * time.Millisecond)
	}

	tap()
	want := TransformState{TranslateX: -100, TranslateY: -100, Scale: 2}
	if !m.State().Equals(want) {
		t.Errorf("after first double tap = %v, want %v", m.State(), want)
	}
	tap()
	if m.State().Scale != 4 {
		t.Errorf("after second double tap scale = %f, want 4", m.State().Scale)
	}
	tap()
	if m.State().Scale != 0.5 {
		t.Errorf("past max scale = %f, want reset to 0.5", m.State().Scale)
	}
}

func TestReleaseMomentum(t *testing.T) {
	m, _ := newTestMap()
	m.AddInterceptor(&ReleaseMomentum{Decay: 100 * time.Millisecond})

	g := NewGesture()
	g.VelocityX = 2
	m.HandleInteraction(userEvent(EventDragEnd, g))
	m.Update(400 * time.Millisecond)

	if !approxEqual(m.State().TranslateX, 200, 1e-3) {
		t.Errorf("X = %f, want 200", m.State().TranslateX)
	}
}

func TestReleaseMomentum_SlowRelease(t *testing.T) {
	m, _ := newTestMap()
	m.AddInterceptor(&ReleaseMomentum{})

	g := NewGesture()
	g.VelocityX = 0.05
	g.DeltaX = 3
	m.HandleInteraction(userEvent(EventDragEnd, g))
	if m.State().TranslateX != 3 || m.Queue().IsProcessing() {
		t.Errorf("slow release glided: %v", m.State())
	}
}

func TestSwipeNavigation(t *testing.T) {
	m, _ := newTestMap()
	nav := &SwipeNavigation{PageWidth: 500, Pages: 3}
	var pages []int
	nav.PageChanged().Subscribe(func(p int) { pages = append(pages, p) })
	m.AddInterceptor(nav)

	swipe := func(d Direction) {
		g := NewGesture()
		g.Direction = d
		m.HandleInteraction(userEvent(EventSwipe, g))
		m.Update(time.Second)
	}

	swipe(DirectionRight)
	if nav.Page() != 0 || len(pages) != 0 {
		t.Errorf("swipe right on first page moved to %d", nav.Page())
	}
	swipe(DirectionLeft)
	if nav.Page() != 1 || m.State().TranslateX != -500 {
		t.Errorf("page = %d, X = %f; want 1, -500", nav.Page(), m.State().TranslateX)
	}
	swipe(DirectionLeft)
	swipe(DirectionLeft)
	if nav.Page() != 2 || m.State().TranslateX != -1000 {
		t.Errorf("page = %d, X = %f; want 2, -1000", nav.Page(), m.State().TranslateX)
	}
	if len(pages) != 2 || pages[0] != 1 || pages[1] != 2 {
		t.Errorf("PageChanged = %v, want [1 2]", pages)
	}
}

func TestInputLock(t *testing.T) {
	m, _ := newTestMap()
	lock := &InputLock{Locked: true}
	m.AddInterceptor(lock)

	g := NewGesture()
	g.DeltaX = 10
	if m.HandleInteraction(userEvent(EventDrag, g)) {
		t.Error("locked map accepted device input")
	}
	if !m.TranslateBy(10, 0, 0) {
		t.Error("locked map refused simulated input")
	}
	lock.Locked = false
	if !m.HandleInteraction(userEvent(EventDrag, g)) {
		t.Error("unlocked map refused device input")
	}
	if m.State().TranslateX != 20 {
		t.Errorf("X = %f, want 20", m.State().TranslateX)
	}
}

func TestTouchStopsReleaseGlide(t *testing.T) {
	m, target := newTestMap()
	m.AddInterceptor(&ReleaseMomentum{})
	rec := NewRecognizer(m, target, m.Config().Input)
	clock := m.Scheduler().(*FrameScheduler).Now
	feed := func(phase Phase, x float64) {
		rec.Feed(touch(phase, clock(), pt(x, 100)))
		m.Update(DefaultFrameTime)
	}
	idle := func(when string) {
		t.Helper()
		if m.Queue().IsProcessing() || m.Queue().Len() != 0 {
			t.Fatalf("%s: processing = %v, queued = %d", when, m.Queue().IsProcessing(), m.Queue().Len())
		}
	}

	// Fling right at 2.4 px/ms, then let the glide run for a few frames.
	feed(PhaseStart, 100)
	feed(PhaseMove, 140)
	feed(PhaseMove, 180)
	feed(PhaseEnd, 220)
	if !m.Queue().IsProcessing() {
		t.Fatal("fling did not start a glide")
	}
	for range 5 {
		m.Update(DefaultFrameTime)
	}

	// Touching again stops the glide where it is.
	feed(PhaseStart, 300)
	idle("after touch")
	stopped := m.State().TranslateX
	if stopped <= 120 || stopped >= 120+2.4*float64(defaultMomentumDecay/time.Millisecond) {
		t.Fatalf("stopped at X = %f, want part way through the glide", stopped)
	}
	if target.last().TranslateX != stopped {
		t.Errorf("rendered X = %f, committed X = %f", target.last().TranslateX, stopped)
	}

	// Dragging left moves the content with the finger, frame by frame.
	for i, x := range []float64{288, 276, 264, 252} {
		feed(PhaseMove, x)
		idle("during drag")
		want := stopped - 12*float64(i+1)
		if !approxEqual(m.State().TranslateX, want, 1e-9) || !approxEqual(target.last().TranslateX, want, 1e-9) {
			t.Fatalf("move %d: committed X = %f, rendered X = %f, want %f",
				i, m.State().TranslateX, target.last().TranslateX, want)
		}
	}

	// Releasing at 0.72 px/ms glides further left.
	feed(PhaseEnd, 240)
	for range 10 {
		m.Update(DefaultFrameTime)
	}
	if x := target.last().TranslateX; x >= stopped-60 {
		t.Errorf("glide after release rendered X = %f, want left of %f", x, stopped-60)
	}
}
