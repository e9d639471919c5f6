package renderer

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Opacity thresholds for the disc glyphs.
const (
	glyphStrong = 0.6
	glyphMedium = 0.35
)

// TerminalSurface draws the field into a tcell screen. Each cell covers
// cellW x cellH surface units so the physics keeps its pixel scale.
type TerminalSurface struct {
	screen       tcell.Screen
	cellW, cellH float64

	width, height float64
	cols, rows    int

	background color.RGBA
	fill       color.RGBA
	glow       color.RGBA
	blurCells  int

	core []float64 // composited disc opacity per cell this frame
	halo []float64 // composited glow opacity per cell this frame
}

// NewTerminalSurface creates a surface on an initialized screen.
func NewTerminalSurface(screen tcell.Screen, cellW, cellH float64, background color.RGBA) *TerminalSurface {
	s := &TerminalSurface{
		screen:     screen,
		cellW:      cellW,
		cellH:      cellH,
		background: background,
	}
	cols, rows := screen.Size()
	s.SetSize(float64(cols)*cellW, float64(rows)*cellH)
	return s
}

func (s *TerminalSurface) Width() float64  { return s.width }
func (s *TerminalSurface) Height() float64 { return s.height }

// SetSize records the surface size; the terminal itself decides the cell grid.
func (s *TerminalSurface) SetSize(w, h float64) {
	s.width, s.height = w, h
	s.cols = int(math.Ceil(w / s.cellW))
	s.rows = int(math.Ceil(h / s.cellH))
	n := s.cols * s.rows
	s.core = make([]float64, n)
	s.halo = make([]float64, n)
}

func (s *TerminalSurface) Clear() {
	for i := range s.core {
		s.core[i] = 0
		s.halo[i] = 0
	}
	s.screen.Fill(' ', tcell.StyleDefault.Background(rgb(s.background)))
}

func (s *TerminalSurface) ConfigurePaint(p Paint) {
	s.fill = p.Color
	s.glow = p.BlurColor
	s.blurCells = int(math.Round(p.Blur / s.cellW))
}

// CellAt maps a surface point to its cell.
func (s *TerminalSurface) CellAt(x, y float64) (col, row int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col = int(x / s.cellW)
	row = int(y / s.cellH)
	if col >= s.cols || row >= s.rows {
		return 0, 0, false
	}
	return col, row, true
}

// DrawFilledCircle composites the disc into its cell and its glow into the
// neighbouring cells within the blur radius.
func (s *TerminalSurface) DrawFilledCircle(x, y, radius, alpha float64) {
	col, row, ok := s.CellAt(x, y)
	if !ok {
		return
	}
	i := row*s.cols + col
	s.core[i] = over(s.core[i], alpha)
	s.put(col, row)

	glowAlpha := alpha * float64(s.glow.A) / 255 * 0.35
	for dy := -s.blurCells; dy <= s.blurCells; dy++ {
		for dx := -s.blurCells; dx <= s.blurCells; dx++ {
			c, r := col+dx, row+dy
			if c < 0 || r < 0 || c >= s.cols || r >= s.rows {
				continue
			}
			j := r*s.cols + c
			s.halo[j] = over(s.halo[j], glowAlpha)
			s.put(c, r)
		}
	}
}

func (s *TerminalSurface) put(col, row int) {
	i := row*s.cols + col
	core := s.core[i]
	bg := rgb(blend(s.background, s.glow, s.halo[i]))
	style := tcell.StyleDefault.Background(bg).Foreground(rgb(blend(s.background, s.fill, math.Min(1, core*1.6))))

	glyph := ' '
	switch {
	case core >= glyphStrong:
		glyph = '●'
	case core >= glyphMedium:
		glyph = '•'
	case core > 0:
		glyph = '·'
	}
	s.screen.SetContent(col, row, glyph, nil, style)
}

// Offset is always the origin; terminal mouse events are already screen-local.
func (s *TerminalSurface) Offset() (float64, float64) {
	return 0, 0
}

// over composites opacity a over an existing opacity dst.
func over(dst, a float64) float64 {
	return 1 - (1-dst)*(1-a)
}

func blend(from, to color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return from
	}
	if t > 1 {
		t = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return color.RGBA{R: mix(from.R, to.R), G: mix(from.G, to.G), B: mix(from.B, to.B), A: 255}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
