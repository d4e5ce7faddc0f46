package awesomemap

import "testing"

func TestPlaneMapping(t *testing.T) {
	p := NewPlane(Rect{X: 10, Y: 20, Width: 200, Height: 100})
	p.SetTransform(TransformState{TranslateX: 5, TranslateY: 6, Scale: 2})

	sx, sy := p.ContentToScreen(1, 1)
	if sx != 17 || sy != 28 {
		t.Errorf("ContentToScreen(1, 1) = (%v, %v), want (17, 28)", sx, sy)
	}
	cx, cy := p.ScreenToContent(17, 28)
	if !approxEqual(cx, 1, 1e-9) || !approxEqual(cy, 1, 1e-9) {
		t.Errorf("ScreenToContent(17, 28) = (%v, %v), want (1, 1)", cx, cy)
	}

	got := p.VisibleContent()
	want := Rect{X: -2.5, Y: -3, Width: 100, Height: 50}
	if !approxEqual(got.X, want.X, 1e-9) || !approxEqual(got.Y, want.Y, 1e-9) ||
		!approxEqual(got.Width, want.Width, 1e-9) || !approxEqual(got.Height, want.Height, 1e-9) {
		t.Errorf("VisibleContent = %+v, want %+v", got, want)
	}
}

func TestPlaneTracksChanges(t *testing.T) {
	p := NewPlane(Rect{Width: 100, Height: 100})
	if x, y := p.ContentToScreen(3, 4); x != 3 || y != 4 {
		t.Errorf("identity ContentToScreen = (%v, %v)", x, y)
	}

	p.SetBounds(Rect{X: 50, Y: 50, Width: 100, Height: 100})
	if x, y := p.ContentToScreen(3, 4); x != 53 || y != 54 {
		t.Errorf("after SetBounds = (%v, %v), want (53, 54)", x, y)
	}

	p.SetTransform(TransformState{Scale: 3})
	if x, y := p.ContentToScreen(1, 1); x != 53 || y != 53 {
		t.Errorf("after SetTransform = (%v, %v), want (53, 53)", x, y)
	}
	if p.Transform().Scale != 3 {
		t.Errorf("Transform = %v", p.Transform())
	}
}

func TestPlaneAsMapTarget(t *testing.T) {
	p := NewPlane(Rect{X: 100, Y: 0, Width: 400, Height: 300})
	m := NewMap(p, WithLogger(quietLogger()))
	if got := m.ViewportSize(); got != (Size{Width: 400, Height: 300}) {
		t.Errorf("ViewportSize = %v", got)
	}

	m.ZoomBy(2, Point{X: 200, Y: 150}, 0)
	// The viewport center stays under the same content point.
	cx, cy := p.ScreenToContent(300, 150)
	if !approxEqual(cx, 200, 1e-9) || !approxEqual(cy, 150, 1e-9) {
		t.Errorf("center maps to (%v, %v), want (200, 150)", cx, cy)
	}
}
