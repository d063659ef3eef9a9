package quill

// flatProjection projects points onto the stroke's own plane so that 2D
// algorithms are independent of the view. The X axis runs from point 0 to
// point 1; the plane normal is X crossed with the vector to the point at
// three quarters of the stroke; Y is the normal crossed with X. The
// normalized Y axis is returned too; its Z component is the winding hint.
func flatProjection(points []Point, dst []Vec2) ([]Vec2, Vec3) {
	n := len(points)
	if cap(dst) >= n {
		dst = dst[:n]
	} else {
		dst = make([]Vec2, n)
	}
	if n < 2 {
		for i := range dst {
			dst[i] = Vec2{}
		}
		return dst, Vec3{}
	}

	p0 := points[0].Pos
	locx := points[1].Pos.Sub(p0)
	loc3 := points[int(float64(n)*0.75)].Pos.Sub(p0)
	normal := locx.Cross(loc3)
	locy := normal.Cross(locx)
	locx = locx.Normalize()
	locy = locy.Normalize()

	for i := range points {
		loc := points[i].Pos.Sub(p0)
		dst[i] = Vec2{loc.Dot(locx), loc.Dot(locy)}
	}
	return dst, locy
}

// --- Ramer-Douglas-Peucker ---

// SimplifyStroke reduces the stroke's points with Ramer-Douglas-Peucker over
// its flat projection. The threshold compared against each squared distance
// is epsilon/10. The first and last points are always kept, and the vertex
// weights of removed points are discarded.
func SimplifyStroke(s *Stroke, epsilon float64) {
	n := len(s.Points)
	if n < 3 {
		return
	}
	pts, _ := flatProjection(s.Points, nil)
	marked := rdpMark(pts, epsilon)

	kept := make([]Point, 0, n)
	for i := range s.Points {
		if marked[i] || i == 0 || i == n-1 {
			kept = append(kept, s.Points[i])
		}
	}
	s.setPoints(kept)
}

// rdpMark returns which points survive simplification. Indices 1 and n-2
// seed the marked set; index 0 and n-1 are handled by the caller.
func rdpMark(pts []Vec2, epsilon float64) []bool {
	n := len(pts)
	start, end := 1, n-2
	marked := make([]bool, n)
	marked[start] = true
	marked[end] = true

	for work := true; work; {
		work = false
		ls, le := start, start+1
		for ls < end {
			maxI := 0
			maxDist := epsilon / 10

			for !marked[le] {
				le++
			}

			// perpendicular of the chord ls-le
			v1 := Vec2{pts[ls].Y - pts[le].Y, pts[le].X - pts[ls].X}

			for i := ls + 1; i < le; i++ {
				v2 := pts[i].Sub(pts[ls])
				if v2.X == 0 && v2.Y == 0 {
					continue
				}
				lenSq := v2.Dot(v2)
				mul := v1.Dot(v2) / lenSq
				dist := mul * mul * lenSq
				if dist > maxDist {
					maxDist = dist
					maxI = i
				}
			}

			if maxI != 0 {
				work = true
				marked[maxI] = true
			}
			ls = le
			le = ls + 1
		}
	}
	return marked
}

// SimplifyAlternate drops every second interior point, keeping the first
// and last points. Strokes with fewer than 5 points are left alone.
func SimplifyAlternate(s *Stroke) {
	n := len(s.Points)
	if n < 5 {
		return
	}
	kept := make([]Point, 0, (n-2+1)/2+2)
	for i := range s.Points {
		if i == 0 || i == n-1 || i%2 == 1 {
			kept = append(kept, s.Points[i])
		}
	}
	s.setPoints(kept)
}
