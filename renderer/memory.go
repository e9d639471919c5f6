package renderer

// Circle is one recorded disc.
type Circle struct {
	X, Y, Radius, Alpha float64
}

// MemorySurface records draw calls instead of drawing. It backs the headless
// mode and tests.
type MemorySurface struct {
	width, height    float64
	offsetX, offsetY float64

	Paint      Paint
	PaintCalls int
	Clears     int
	Circles    []Circle // discs drawn since the last Clear
	Drawn      int      // discs drawn over the surface lifetime
}

// NewMemorySurface creates a recording surface of the given size.
func NewMemorySurface(w, h float64) *MemorySurface {
	return &MemorySurface{width: w, height: h}
}

func (m *MemorySurface) Width() float64  { return m.width }
func (m *MemorySurface) Height() float64 { return m.height }

func (m *MemorySurface) SetSize(w, h float64) {
	m.width, m.height = w, h
}

func (m *MemorySurface) Clear() {
	m.Clears++
	m.Circles = m.Circles[:0]
}

func (m *MemorySurface) DrawFilledCircle(x, y, radius, alpha float64) {
	m.Circles = append(m.Circles, Circle{X: x, Y: y, Radius: radius, Alpha: alpha})
	m.Drawn++
}

func (m *MemorySurface) ConfigurePaint(p Paint) {
	m.Paint = p
	m.PaintCalls++
}

func (m *MemorySurface) Offset() (float64, float64) {
	return m.offsetX, m.offsetY
}

// SetOffset moves the surface on screen.
func (m *MemorySurface) SetOffset(x, y float64) {
	m.offsetX, m.offsetY = x, y
}
