package quill

import "math"

// ColorFlags holds display flags of a color definition.
type ColorFlags uint8

const (
	ColorHidden ColorFlags = 1 << iota
	ColorLocked
	// ColorFillOnly draws the fill without an outline.
	ColorFillOnly
)

// ColorDef is a named stroke/fill color pair.
type ColorDef struct {
	Name      string
	Stroke    Color
	Fill      Color
	Flags     ColorFlags
	PassIndex int // matched by modifier pass-index filters
}

// Hidden reports whether strokes using the color are skipped when drawing.
func (c *ColorDef) Hidden() bool { return c.Flags&ColorHidden != 0 }

// ColorResolver maps a stroke's color name to its definition.
type ColorResolver interface {
	ResolveColor(name string) *ColorDef
}

// Palette is an ordered set of color definitions addressed by name.
type Palette struct {
	colors []*ColorDef
	active int
}

// NewPalette returns an empty palette.
func NewPalette() *Palette {
	return &Palette{active: -1}
}

// Add appends c, replacing an existing definition with the same name.
func (p *Palette) Add(c *ColorDef) *ColorDef {
	for i, old := range p.colors {
		if old.Name == c.Name {
			p.colors[i] = c
			return c
		}
	}
	p.colors = append(p.colors, c)
	if p.active < 0 {
		p.active = 0
	}
	return c
}

// ResolveColor returns the definition named name, or nil.
func (p *Palette) ResolveColor(name string) *ColorDef {
	for _, c := range p.colors {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Colors returns the palette's definitions in order.
func (p *Palette) Colors() []*ColorDef { return p.colors }

// Active returns the active color, or nil for an empty palette.
func (p *Palette) Active() *ColorDef {
	if p.active < 0 || p.active >= len(p.colors) {
		return nil
	}
	return p.colors[p.active]
}

// SetActive makes the named color active. Unknown names are ignored.
func (p *Palette) SetActive(name string) {
	for i, c := range p.colors {
		if c.Name == name {
			p.active = i
			return
		}
	}
}

// --- HSV ---

func rgbToHSV(c Color) (h, s, v float64) {
	maxc := math.Max(c.R, math.Max(c.G, c.B))
	minc := math.Min(c.R, math.Min(c.G, c.B))
	v = maxc
	d := maxc - minc
	if maxc == 0 || d == 0 {
		return 0, 0, v
	}
	s = d / maxc
	switch maxc {
	case c.R:
		h = (c.G - c.B) / d
		if h < 0 {
			h += 6
		}
	case c.G:
		h = (c.B-c.R)/d + 2
	default:
		h = (c.R-c.G)/d + 4
	}
	return h / 6, s, v
}

func hsvToRGB(h, s, v, a float64) Color {
	if s == 0 {
		return Color{v, v, v, a}
	}
	h = math.Mod(h, 1) * 6
	if h < 0 {
		h += 6
	}
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch int(i) % 6 {
	case 0:
		return Color{v, t, p, a}
	case 1:
		return Color{q, v, p, a}
	case 2:
		return Color{p, v, t, a}
	case 3:
		return Color{p, q, v, a}
	case 4:
		return Color{t, p, v, a}
	default:
		return Color{v, p, q, a}
	}
}
