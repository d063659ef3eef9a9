package quill

// Color modifiers mutate the stroke's resolved color definition in place.
// Scene.Populate gives every derived stroke a private copy first, so the
// palette entry itself is never touched there.

// TintModifier blends stroke and fill colors toward Color by Factor.
type TintModifier struct {
	ModifierBase
	Color  Color
	Factor float64
}

// NewTintModifier returns a tint toward white at half strength.
func NewTintModifier(name string) *TintModifier {
	return &TintModifier{ModifierBase: defaultBase(name), Color: Color{1, 1, 1, 1}, Factor: 0.5}
}

// DeformStroke implements StrokeModifier.
func (m *TintModifier) DeformStroke(ctx *EvalContext, l *Layer, s *Stroke) {
	if !m.affects(ctx, l, s, 1) {
		return
	}
	c := s.ResolveColor(ctx.colors())
	if c == nil {
		return
	}
	c.Stroke = tintRGB(c.Stroke, m.Color, m.Factor)
	c.Fill = tintRGB(c.Fill, m.Color, m.Factor)
}

func tintRGB(c, to Color, f float64) Color {
	return Color{
		clamp01(lerp(c.R, to.R, f)),
		clamp01(lerp(c.G, to.G, f)),
		clamp01(lerp(c.B, to.B, f)),
		c.A,
	}
}

// ColorModifier shifts hue, saturation and value. Each HSV component is
// offset by its factor minus one, so {1, 1, 1} leaves colors unchanged.
type ColorModifier struct {
	ModifierBase
	HSV [3]float64
}

// NewColorModifier returns a color modifier with no effect.
func NewColorModifier(name string) *ColorModifier {
	return &ColorModifier{ModifierBase: defaultBase(name), HSV: [3]float64{1, 1, 1}}
}

// DeformStroke implements StrokeModifier.
func (m *ColorModifier) DeformStroke(ctx *EvalContext, l *Layer, s *Stroke) {
	if !m.affects(ctx, l, s, 1) {
		return
	}
	c := s.ResolveColor(ctx.colors())
	if c == nil {
		return
	}
	c.Stroke = m.shift(c.Stroke)
	c.Fill = m.shift(c.Fill)
}

func (m *ColorModifier) shift(c Color) Color {
	h, s, v := rgbToHSV(c)
	h = clamp01(h + m.HSV[0] - 1)
	s = clamp01(s + m.HSV[1] - 1)
	v = clamp01(v + m.HSV[2] - 1)
	return hsvToRGB(h, s, v, c.A)
}

// OpacityModifier scales stroke and fill alpha by Factor. A factor below 1
// also lowers per-point strength, scaled by vertex weight.
type OpacityModifier struct {
	ModifierBase
	Factor float64
}

// NewOpacityModifier returns an opacity modifier with no effect.
func NewOpacityModifier(name string) *OpacityModifier {
	return &OpacityModifier{ModifierBase: defaultBase(name), Factor: 1}
}

// DeformStroke implements StrokeModifier.
func (m *OpacityModifier) DeformStroke(ctx *EvalContext, l *Layer, s *Stroke) {
	if !m.affects(ctx, l, s, 1) {
		return
	}
	if c := s.ResolveColor(ctx.colors()); c != nil {
		c.Stroke.A = clamp01(c.Stroke.A * m.Factor)
		c.Fill.A = clamp01(c.Fill.A * m.Factor)
	}
	if m.Factor >= 1 {
		return
	}
	group := m.groupIndex(ctx)
	for i := range s.Points {
		pt := &s.Points[i]
		weight := pointWeight(pt, m.InvertVertexGroup, group)
		if weight < 0 {
			continue
		}
		pt.Strength = clamp01(pt.Strength - (1-m.Factor)*weight)
	}
}
