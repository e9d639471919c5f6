// Package renderer draws the particle field onto host drawing surfaces.
package renderer

import "image/color"

// Paint holds the fixed paint settings configured once per surface.
type Paint struct {
	Color     color.RGBA // disc fill; per-disc opacity comes from the particle
	Blur      float64    // soft glow radius around each disc, in surface units
	BlurColor color.RGBA
}

// Surface is a full-bleed drawable area in surface-local coordinates.
type Surface interface {
	Width() float64
	Height() float64
	SetSize(w, h float64)
	Clear()
	DrawFilledCircle(x, y, radius, alpha float64)
	ConfigurePaint(p Paint)
	// Offset is the surface's on-screen position, used to convert absolute
	// pointer coordinates to surface-local ones.
	Offset() (x, y float64)
}
