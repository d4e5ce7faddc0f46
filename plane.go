package awesomemap

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Plane is an ebiten render target: a viewport rectangle on screen into
// which content is drawn under the current transform.
//
// The transform maps content coordinates to viewport coordinates as
// viewport = content*Scale + Translate; the viewport origin is then offset
// by the bounds position to reach screen coordinates.
type Plane struct {
	bounds Rect
	state  TransformState

	geo   ebiten.GeoM
	inv   ebiten.GeoM
	dirty bool
}

// NewPlane creates a plane occupying bounds in screen coordinates.
func NewPlane(bounds Rect) *Plane {
	return &Plane{bounds: bounds, state: IdentityState(), dirty: true}
}

// Bounds returns the on-screen viewport rectangle.
func (p *Plane) Bounds() Rect { return p.bounds }

// SetBounds moves or resizes the viewport.
func (p *Plane) SetBounds(r Rect) {
	p.bounds = r
	p.dirty = true
}

// SetTransform sets the rendered transform.
func (p *Plane) SetTransform(s TransformState) {
	p.state = s
	p.dirty = true
}

// Transform returns the rendered transform.
func (p *Plane) Transform() TransformState { return p.state }

// GeoM returns the content-to-screen matrix.
func (p *Plane) GeoM() ebiten.GeoM {
	p.compute()
	return p.geo
}

func (p *Plane) compute() {
	if !p.dirty {
		return
	}
	p.dirty = false
	p.geo.Reset()
	p.geo.Scale(p.state.Scale, p.state.Scale)
	p.geo.Translate(p.state.TranslateX+p.bounds.X, p.state.TranslateY+p.bounds.Y)
	p.inv = p.geo
	if p.inv.IsInvertible() {
		p.inv.Invert()
	}
}

// ContentToScreen converts content coordinates to screen coordinates.
func (p *Plane) ContentToScreen(cx, cy float64) (sx, sy float64) {
	p.compute()
	return p.geo.Apply(cx, cy)
}

// ScreenToContent converts screen coordinates to content coordinates.
func (p *Plane) ScreenToContent(sx, sy float64) (cx, cy float64) {
	p.compute()
	return p.inv.Apply(sx, sy)
}

// VisibleContent returns the content-space rectangle shown in the viewport.
func (p *Plane) VisibleContent() Rect {
	x0, y0 := p.ScreenToContent(p.bounds.X, p.bounds.Y)
	x1, y1 := p.ScreenToContent(p.bounds.X+p.bounds.Width, p.bounds.Y+p.bounds.Height)
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// Draw draws content onto screen under the current transform, clipped to
// the viewport.
func (p *Plane) Draw(screen, content *ebiten.Image) {
	clip := image.Rect(
		int(p.bounds.X), int(p.bounds.Y),
		int(math.Ceil(p.bounds.X+p.bounds.Width)), int(math.Ceil(p.bounds.Y+p.bounds.Height)),
	)
	dst, ok := screen.SubImage(clip).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: p.GeoM()}
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(content, op)
}
