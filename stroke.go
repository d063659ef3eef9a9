package quill

// StrokeFlags holds per-stroke state bits.
type StrokeFlags uint16

const (
	// Stroke3D marks a stroke drawn in 3D space.
	Stroke3D StrokeFlags = 1 << iota
	// Stroke2D marks a stroke drawn in screen space.
	Stroke2D
	StrokeSelected
	// StrokeCyclic closes the outline back to the first point.
	StrokeCyclic
	// StrokeRecalcCaches invalidates the stroke's triangulation.
	StrokeRecalcCaches
	// StrokeRecalcColor invalidates the stroke's cached color pointer.
	StrokeRecalcColor
)

// Triangle is one fill triangle: three point indices and their UVs.
type Triangle struct {
	Verts [3]int
	UV    [3]Vec2
}

// Stroke is one continuous drawn line.
type Stroke struct {
	Points    []Point
	Thickness int
	Flags     StrokeFlags
	InitTime  float64

	// ColorName is authoritative. Color caches its resolution and is
	// refreshed whenever StrokeRecalcColor is set.
	ColorName string
	Color     *ColorDef

	// Triangles is valid only while StrokeRecalcCaches is clear.
	Triangles    []Triangle
	TotTriangles int
}

// NewStroke creates a 3D stroke using the named color.
func NewStroke(colorName string, thickness int, pts ...Point) *Stroke {
	s := &Stroke{
		Thickness: thickness,
		Flags:     Stroke3D | StrokeRecalcCaches | StrokeRecalcColor,
		ColorName: colorName,
	}
	if len(pts) > 0 {
		s.Points = make([]Point, len(pts))
		copy(s.Points, pts)
	}
	return s
}

// Len returns the number of points.
func (s *Stroke) Len() int { return len(s.Points) }

// MarkRecalc flags the triangulation as stale. Every mutation of the point
// array must call it.
func (s *Stroke) MarkRecalc() {
	s.Flags |= StrokeRecalcCaches
}

// NeedsRecalc reports whether the triangulation must be rebuilt.
func (s *Stroke) NeedsRecalc() bool {
	return s.Flags&StrokeRecalcCaches != 0 || s.TotTriangles == 0 || s.Triangles == nil
}

// AppendPoint adds a point at the end of the stroke.
func (s *Stroke) AppendPoint(p Point) {
	s.Points = append(s.Points, p)
	s.MarkRecalc()
}

// SetWeight sets a vertex weight on point i.
func (s *Stroke) SetWeight(i, group int, factor float64) {
	s.Points[i].SetWeight(group, factor)
}

// RemoveWeight removes group from point i and invalidates derived data.
func (s *Stroke) RemoveWeight(i, group int) {
	if s.Points[i].RemoveWeight(group) {
		s.MarkRecalc()
	}
}

// SetColor changes the stroke's color name and drops the cached pointer.
func (s *Stroke) SetColor(name string) {
	s.ColorName = name
	s.Color = nil
	s.Flags |= StrokeRecalcColor
}

// ResolveColor returns the stroke's color definition, refreshing the cached
// pointer from r when it is missing or flagged stale.
func (s *Stroke) ResolveColor(r ColorResolver) *ColorDef {
	if r == nil {
		return s.Color
	}
	if s.Color == nil || s.Flags&StrokeRecalcColor != 0 {
		s.Color = r.ResolveColor(s.ColorName)
		s.Flags &^= StrokeRecalcColor
	}
	return s.Color
}

// Drawable reports whether the stroke has points and a visible color.
func (s *Stroke) Drawable() bool {
	if len(s.Points) == 0 {
		return false
	}
	return s.Color == nil || !s.Color.Hidden()
}

// Normal returns the stroke's plane normal: the cross product of the first
// segment and the vector to the point at three quarters of the stroke.
func (s *Stroke) Normal() Vec3 {
	if len(s.Points) < 3 {
		return Vec3{}
	}
	p0 := s.Points[0].Pos
	vec1 := s.Points[1].Pos.Sub(p0)
	vec2 := s.Points[int(float64(len(s.Points))*0.75)].Pos.Sub(p0)
	return vec1.Cross(vec2).Normalize()
}

// Duplicate returns a deep copy of s with its own point, weight and
// triangle arrays. The copy is flagged for recalculation.
func (s *Stroke) Duplicate() *Stroke {
	d := *s
	if s.Points != nil {
		d.Points = make([]Point, len(s.Points))
		for i := range s.Points {
			d.Points[i] = s.Points[i].clone()
		}
	}
	if s.Triangles != nil {
		d.Triangles = make([]Triangle, len(s.Triangles))
		copy(d.Triangles, s.Triangles)
	}
	d.Flags |= StrokeRecalcCaches
	return &d
}

// setPoints replaces the point array and resets the triangulation.
func (s *Stroke) setPoints(pts []Point) {
	s.Points = pts
	s.TotTriangles = 0
	s.MarkRecalc()
}
