package quill

// ThicknessModifier changes line width. Delta is added to each point's
// pressure, scaled by its vertex weight. With Normalize set the stroke's
// base thickness is replaced by Thickness and pressures reset to 1.
type ThicknessModifier struct {
	ModifierBase
	Delta     float64
	Normalize bool
	Thickness int
}

// NewThicknessModifier returns a thickness modifier with no effect.
func NewThicknessModifier(name string) *ThicknessModifier {
	return &ThicknessModifier{ModifierBase: defaultBase(name)}
}

// DeformStroke implements StrokeModifier.
func (m *ThicknessModifier) DeformStroke(ctx *EvalContext, l *Layer, s *Stroke) {
	if !m.affects(ctx, l, s, 1) {
		return
	}
	if m.Normalize {
		s.Thickness = m.Thickness
	}
	group := m.groupIndex(ctx)
	for i := range s.Points {
		pt := &s.Points[i]
		weight := pointWeight(pt, m.InvertVertexGroup, group)
		if weight < 0 {
			continue
		}
		if m.Normalize {
			pt.Pressure = 1
		}
		pt.Pressure = max(pt.Pressure+m.Delta*weight, 0)
	}
}
