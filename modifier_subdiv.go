package quill

// SubdivModifier inserts a midpoint between every pair of points, Level
// times. Unless Simple is set each level also relaxes interior points
// toward their neighbours.
type SubdivModifier struct {
	ModifierBase
	Level  int
	Simple bool
}

// NewSubdivModifier returns a single-level simple subdivision.
func NewSubdivModifier(name string) *SubdivModifier {
	return &SubdivModifier{ModifierBase: defaultBase(name), Level: 1, Simple: true}
}

// DeformStroke implements StrokeModifier.
func (m *SubdivModifier) DeformStroke(ctx *EvalContext, l *Layer, s *Stroke) {
	if !m.affects(ctx, l, s, 3) {
		return
	}
	for range m.Level {
		SubdivideStroke(s, m.Simple)
	}
}

// SubdivideStroke performs one subdivision level on s, growing N points to
// 2N-1. Old points land on even indices; odd indices interpolate position,
// pressure, strength and time of their neighbours. Without simple, interior
// points then move to the midpoint of their neighbours; the endpoints stay.
func SubdivideStroke(s *Stroke, simple bool) {
	old := s.Points
	n := len(old)
	if n < 2 {
		return
	}

	// Build the new array from the old one; old stays untouched while read.
	pts := make([]Point, 2*n-1)
	for i := range old {
		pts[i*2] = old[i]
	}
	for i := 0; i < n-1; i++ {
		a, b := &old[i], &old[i+1]
		pts[i*2+1] = Point{
			Pos:      a.Pos.Lerp(b.Pos, 0.5),
			Pressure: lerp(a.Pressure, b.Pressure, 0.5),
			Strength: clamp(lerp(a.Strength, b.Strength, 0.5), StrengthMin, 1),
			Time:     lerp(a.Time, b.Time, 0.5),
		}
	}

	if !simple {
		snap := make([]Vec3, len(pts))
		for i := range pts {
			snap[i] = pts[i].Pos
		}
		for i := 0; i < len(pts)-2; i++ {
			pts[i+1].Pos = snap[i].Lerp(snap[i+2], 0.5)
		}
	}
	s.setPoints(pts)
}
