package quill

// Triangulate rebuilds the stroke's fill triangulation: the points are
// projected onto the stroke plane, ear-clipped into len(Points)-2 triangles
// and given UVs normalized against the projected bounding box. In square
// mode both bounding box extents become the larger one so UVs are not
// stretched. Strokes with fewer than 3 points lose their triangulation.
func Triangulate(s *Stroke, square bool) {
	n := len(s.Points)
	if n < 3 {
		s.Triangles = nil
		s.TotTriangles = 0
		s.Flags &^= StrokeRecalcCaches
		return
	}

	pts, locy := flatProjection(s.Points, nil)
	// concave (-1), convex (1) or auto (0)
	direction := int(locy.Z)
	tris := polyfill(pts, direction)

	minv, maxv := boundingBox2D(pts, square)
	uv := strokeUV(pts, minv, maxv)

	if cap(s.Triangles) >= len(tris) {
		s.Triangles = s.Triangles[:len(tris)]
	} else {
		s.Triangles = make([]Triangle, len(tris))
	}
	for i, t := range tris {
		s.Triangles[i] = Triangle{
			Verts: t,
			UV:    [3]Vec2{uv[t[0]], uv[t[1]], uv[t[2]]},
		}
	}
	s.TotTriangles = len(tris)
	s.Flags &^= StrokeRecalcCaches
}

// EnsureTriangulation triangulates s when its cache is stale or missing and
// reports whether the stroke can be filled.
func EnsureTriangulation(s *Stroke, square bool) bool {
	if len(s.Points) < 3 {
		return false
	}
	if s.NeedsRecalc() {
		Triangulate(s, square)
	}
	return s.TotTriangles > 0
}

// boundingBox2D returns the min and max corners of pts. In square mode the
// smaller extent is stretched to match the larger one.
func boundingBox2D(pts []Vec2, square bool) (minv, maxv Vec2) {
	minv, maxv = pts[0], pts[0]
	for _, p := range pts[1:] {
		minv.X = min(minv.X, p.X)
		minv.Y = min(minv.Y, p.Y)
		maxv.X = max(maxv.X, p.X)
		maxv.Y = max(maxv.Y, p.Y)
	}
	if square {
		ext := max(maxv.X-minv.X, maxv.Y-minv.Y)
		maxv.X = minv.X + ext
		maxv.Y = minv.Y + ext
	}
	return minv, maxv
}

// strokeUV maps every projected point into [0,1]² against the box. A zero
// extent maps to 0 on that axis.
func strokeUV(pts []Vec2, minv, maxv Vec2) []Vec2 {
	w := maxv.X - minv.X
	h := maxv.Y - minv.Y
	uv := make([]Vec2, len(pts))
	for i, p := range pts {
		var u, v float64
		if w > 0 {
			u = clamp01((p.X - minv.X) / w)
		}
		if h > 0 {
			v = clamp01((p.Y - minv.Y) / h)
		}
		uv[i] = Vec2{u, v}
	}
	return uv
}

// --- Polyfill ---

// polyfill ear-clips a simple polygon into exactly len(pts)-2 triangles.
// The winding comes from the signed area; direction (1 counter-clockwise,
// -1 clockwise, 0 unknown) only decides outlines whose area is zero. When no
// ear is found, as happens for self-intersecting or collinear input, the
// sharpest corner is clipped anyway so the triangle count still holds.
func polyfill(pts []Vec2, direction int) [][3]int {
	n := len(pts)
	if n < 3 {
		return nil
	}
	sign := windingSign(signedArea(pts), direction)

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	tris := make([][3]int, 0, n-2)

	for len(idx) > 3 {
		m := len(idx)
		ear := -1
		for i := 0; i < m; i++ {
			a, b, c := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
			if isEar(pts, idx, a, b, c, sign) {
				ear = i
				break
			}
		}
		if ear < 0 {
			ear = fallbackEar(pts, idx, sign)
		}
		a, b, c := idx[(ear+m-1)%m], idx[ear], idx[(ear+1)%m]
		tris = append(tris, [3]int{a, b, c})
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	return tris
}

// windingSign returns the winding of a polygon with the given signed area.
// A hint that disagrees with the area is ignored: clipping against the wrong
// winding turns reflex corners into ears.
func windingSign(area float64, hint int) float64 {
	switch {
	case area > 0:
		return 1
	case area < 0:
		return -1
	case hint < 0:
		return -1
	}
	return 1
}

func signedArea(pts []Vec2) float64 {
	var area float64
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area / 2
}

func cross2(a, b, c Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func isEar(pts []Vec2, idx []int, a, b, c int, sign float64) bool {
	pa, pb, pc := pts[a], pts[b], pts[c]
	if cross2(pa, pb, pc)*sign <= 0 {
		return false
	}
	for _, k := range idx {
		if k == a || k == b || k == c {
			continue
		}
		p := pts[k]
		if p == pa || p == pb || p == pc {
			continue
		}
		if pointInTriangle(p, pa, pb, pc, sign) {
			return false
		}
	}
	return true
}

// pointInTriangle reports whether p lies inside or on the edge of abc wound
// in the sign direction.
func pointInTriangle(p, a, b, c Vec2, sign float64) bool {
	return cross2(a, b, p)*sign >= 0 &&
		cross2(b, c, p)*sign >= 0 &&
		cross2(c, a, p)*sign >= 0
}

// fallbackEar picks the corner with the largest signed turn, which is the
// least harmful vertex to clip when the polygon has no proper ear.
func fallbackEar(pts []Vec2, idx []int, sign float64) int {
	m := len(idx)
	best, bestCross := 0, 0.0
	for i := 0; i < m; i++ {
		c := cross2(pts[idx[(i+m-1)%m]], pts[idx[i]], pts[idx[(i+1)%m]]) * sign
		if i == 0 || c > bestCross {
			best, bestCross = i, c
		}
	}
	return best
}
