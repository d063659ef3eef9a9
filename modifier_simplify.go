package quill

// SimplifyMode selects the simplification algorithm.
type SimplifyMode uint8

const (
	// SimplifyAdaptive runs Ramer-Douglas-Peucker with Factor as epsilon.
	SimplifyAdaptive SimplifyMode = iota
	// SimplifyFixed drops every other point, Step times.
	SimplifyFixed
)

// SimplifyModifier reduces stroke point counts.
type SimplifyModifier struct {
	ModifierBase
	Mode   SimplifyMode
	Factor float64
	Step   int
}

// NewSimplifyModifier returns an adaptive simplifier with no reduction.
func NewSimplifyModifier(name string) *SimplifyModifier {
	return &SimplifyModifier{ModifierBase: defaultBase(name), Step: 1}
}

// DeformStroke implements StrokeModifier.
func (m *SimplifyModifier) DeformStroke(ctx *EvalContext, l *Layer, s *Stroke) {
	if !m.affects(ctx, l, s, 3) {
		return
	}
	switch m.Mode {
	case SimplifyFixed:
		for range m.Step {
			SimplifyAlternate(s)
		}
	default:
		SimplifyStroke(s, m.Factor)
	}
}
