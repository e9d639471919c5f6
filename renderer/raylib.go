package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// glowLayer is one halo ring drawn beneath a disc.
type glowLayer struct {
	extra  float32 // radius added to the disc
	weight float32 // fraction of the disc alpha
}

// RaylibSurface draws into the current raylib window.
type RaylibSurface struct {
	width, height float64
	background    rl.Color
	fill          rl.Color
	glow          rl.Color
	glowAlpha     float32
	layers        []glowLayer
}

// NewRaylibSurface wraps the open window. Returns false if no window is ready.
func NewRaylibSurface(background color.RGBA) (*RaylibSurface, bool) {
	if !rl.IsWindowReady() {
		return nil, false
	}
	return &RaylibSurface{
		width:      float64(rl.GetScreenWidth()),
		height:     float64(rl.GetScreenHeight()),
		background: toRL(background),
	}, true
}

func toRL(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (s *RaylibSurface) Width() float64  { return s.width }
func (s *RaylibSurface) Height() float64 { return s.height }

// SetSize records the drawing size and resizes the window if it differs.
func (s *RaylibSurface) SetSize(w, h float64) {
	s.width, s.height = w, h
	if int(w) != rl.GetScreenWidth() || int(h) != rl.GetScreenHeight() {
		rl.SetWindowSize(int(w), int(h))
	}
}

func (s *RaylibSurface) Clear() {
	rl.ClearBackground(s.background)
}

// ConfigurePaint sets the fill color and builds the halo layers for the blur.
func (s *RaylibSurface) ConfigurePaint(p Paint) {
	s.fill = toRL(p.Color)
	s.glow = toRL(p.BlurColor)
	s.glowAlpha = float32(p.BlurColor.A) / 255

	s.layers = s.layers[:0]
	if p.Blur <= 0 {
		return
	}
	// Outer to inner so brighter rings land on top
	blur := float32(p.Blur)
	s.layers = append(s.layers,
		glowLayer{extra: blur, weight: 0.12},
		glowLayer{extra: blur * 0.6, weight: 0.2},
		glowLayer{extra: blur * 0.3, weight: 0.35},
	)
}

func (s *RaylibSurface) DrawFilledCircle(x, y, radius, alpha float64) {
	center := rl.Vector2{X: float32(x), Y: float32(y)}
	a := float32(alpha)

	for _, layer := range s.layers {
		rl.DrawCircleV(center, float32(radius)+layer.extra, rl.Fade(s.glow, a*layer.weight*s.glowAlpha))
	}
	rl.DrawCircleV(center, float32(radius), rl.Fade(s.fill, a))
}

// Offset returns the window position on the desktop.
func (s *RaylibSurface) Offset() (float64, float64) {
	pos := rl.GetWindowPosition()
	return float64(pos.X), float64(pos.Y)
}
