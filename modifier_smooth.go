package quill

// SmoothFlags selects what a SmoothModifier smooths.
type SmoothFlags uint8

const (
	SmoothLocation SmoothFlags = 1 << iota
	SmoothStrength
	SmoothThickness
)

// SmoothModifier averages points with their neighbours, Steps times.
type SmoothModifier struct {
	ModifierBase
	Flags  SmoothFlags
	Factor float64
	Steps  int
}

// NewSmoothModifier returns a single-pass location smoother at half
// strength.
func NewSmoothModifier(name string) *SmoothModifier {
	return &SmoothModifier{
		ModifierBase: defaultBase(name),
		Flags:        SmoothLocation,
		Factor:       0.5,
		Steps:        1,
	}
}

// DeformStroke implements StrokeModifier.
func (m *SmoothModifier) DeformStroke(ctx *EvalContext, l *Layer, s *Stroke) {
	if m.Factor <= 0 || !m.affects(ctx, l, s, 3) {
		return
	}
	group := m.groupIndex(ctx)
	for r := 0; r < m.Steps; r++ {
		for i := range s.Points {
			weight := pointWeight(&s.Points[i], m.InvertVertexGroup, group)
			if weight < 0 {
				continue
			}
			val := m.Factor * weight
			if m.Flags&SmoothLocation != 0 {
				smoothPoint(s, i, val)
			}
			if m.Flags&SmoothStrength != 0 {
				smoothScalar(s, i, val, func(p *Point) *float64 { return &p.Strength })
			}
			if m.Flags&SmoothThickness != 0 && val > 0 {
				// thickness converges slowly, so repeat it more on later passes
				for range r*10 + 1 {
					smoothScalar(s, i, val, func(p *Point) *float64 { return &p.Pressure })
				}
			}
		}
	}
	if m.Flags&SmoothLocation != 0 {
		s.MarkRecalc()
	}
}

const smoothSteps = 2

// smoothPoint blends point i toward the average of itself and its two
// neighbours on each side. Endpoints move at a tenth of the influence so
// the stroke does not shrink.
func smoothPoint(s *Stroke, i int, inf float64) {
	if inf < 0.00001 {
		return
	}
	n := len(s.Points)
	if i == 0 || i == n-1 {
		inf *= 0.1
	}
	fac := 1.0 / float64(smoothSteps*2+1)
	sum := s.Points[i].Pos.Scale(fac)
	for step := 1; step <= smoothSteps; step++ {
		before := max(i-step, 0)
		after := min(i+step, n-1)
		sum = sum.Add(s.Points[before].Pos.Scale(fac))
		sum = sum.Add(s.Points[after].Pos.Scale(fac))
	}
	s.Points[i].Pos = s.Points[i].Pos.Lerp(sum, inf)
}

// smoothScalar is smoothPoint for a per-point scalar selected by field.
func smoothScalar(s *Stroke, i int, inf float64, field func(*Point) *float64) {
	if inf < 0.00001 {
		return
	}
	n := len(s.Points)
	fac := 1.0 / float64(smoothSteps*2+1)
	sum := *field(&s.Points[i]) * fac
	for step := 1; step <= smoothSteps; step++ {
		sum += *field(&s.Points[max(i-step, 0)]) * fac
		sum += *field(&s.Points[min(i+step, n-1)]) * fac
	}
	v := field(&s.Points[i])
	*v = max(lerp(*v, sum, inf), StrengthMin)
}
