package quill

// OffsetModifier moves, rotates and scales affected points in place.
type OffsetModifier struct {
	ModifierBase
	Location Vec3
	Rotation Vec3 // XYZ Euler, radians
	Scale    Vec3
}

// NewOffsetModifier returns an identity offset.
func NewOffsetModifier(name string) *OffsetModifier {
	return &OffsetModifier{ModifierBase: defaultBase(name), Scale: Vec3{1, 1, 1}}
}

// DeformStroke implements StrokeModifier. Vertex weights only gate points;
// scaling the matrix by weight gives distorted results.
func (m *OffsetModifier) DeformStroke(ctx *EvalContext, l *Layer, s *Stroke) {
	if !m.affects(ctx, l, s, 1) {
		return
	}
	group := m.groupIndex(ctx)
	mat := LocEulSizeToMat4(m.Location, m.Rotation, m.Scale)
	for i := range s.Points {
		pt := &s.Points[i]
		if pointWeight(pt, m.InvertVertexGroup, group) < 0 {
			continue
		}
		pt.Pos = mat.MulPoint(pt.Pos)
	}
	s.MarkRecalc()
}
