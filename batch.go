package quill

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices is the largest vertex count addressable by uint16
// indices.
const maxBatchVertices = math.MaxUint16 + 1

// Batch is GPU-ready triangle geometry in stroke space (X, Y; Z is
// dropped). Vertex colors are premultiplied. SrcX/SrcY carry fill UVs.
type Batch struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// Triangles returns the number of triangles in the batch.
func (b *Batch) Triangles() int {
	if b == nil {
		return 0
	}
	return len(b.Indices) / 3
}

func premultiplied(c Color, alpha float64) (r, g, b, a float32) {
	a64 := clamp01(c.A * alpha)
	return float32(c.R * a64), float32(c.G * a64), float32(c.B * a64), float32(a64)
}

// --- Outline ---

// buildStrokeBatch expands a stroke into a ribbon two vertices wide per
// point. Width is thickness*pressure; alpha is color alpha*strength. Cyclic
// strokes get a closing segment.
func buildStrokeBatch(s *Stroke, color Color, opacity float64) *Batch {
	n := len(s.Points)
	if n < 2 || n*2 > maxBatchVertices {
		return nil
	}
	cyclic := s.Flags&StrokeCyclic != 0 && n > 2
	segs := n - 1
	if cyclic {
		segs = n
	}

	pts := make([]Vec2, n)
	for i := range s.Points {
		pts[i] = Vec2{s.Points[i].Pos.X, s.Points[i].Pos.Y}
	}

	b := &Batch{
		Vertices: make([]ebiten.Vertex, n*2),
		Indices:  make([]uint16, segs*6),
	}
	for i := 0; i < n; i++ {
		var nx, ny float64
		switch {
		case i == 0 && !cyclic:
			nx, ny = perpendicular(pts[0], pts[1])
		case i == n-1 && !cyclic:
			nx, ny = perpendicular(pts[n-2], pts[n-1])
		default:
			// average of adjacent segment normals (miter)
			prev, next := pts[(i+n-1)%n], pts[(i+1)%n]
			nx0, ny0 := perpendicular(prev, pts[i])
			nx1, ny1 := perpendicular(pts[i], next)
			nx, ny = nx0+nx1, ny0+ny1
			if ln := math.Hypot(nx, ny); ln > 1e-10 {
				nx /= ln
				ny /= ln
			}
			// clamp miter extension to 2x at sharp corners
			if dot := nx0*nx + ny0*ny; dot > 0.1 {
				scale := math.Min(1/dot, 2)
				nx *= scale
				ny *= scale
			}
		}

		pt := &s.Points[i]
		halfW := float64(s.Thickness) * pt.Pressure / 2
		r, g, bl, a := premultiplied(color, opacity*pt.Strength)
		vi := i * 2
		b.Vertices[vi] = ebiten.Vertex{
			DstX: float32(pts[i].X + nx*halfW), DstY: float32(pts[i].Y + ny*halfW),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
		}
		b.Vertices[vi+1] = ebiten.Vertex{
			DstX: float32(pts[i].X - nx*halfW), DstY: float32(pts[i].Y - ny*halfW),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
		}
	}

	// two triangles per segment
	for i := 0; i < segs; i++ {
		ii := i * 6
		v := uint16(i * 2)
		w := uint16(((i + 1) % n) * 2)
		b.Indices[ii+0] = v
		b.Indices[ii+1] = v + 1
		b.Indices[ii+2] = w
		b.Indices[ii+3] = v + 1
		b.Indices[ii+4] = w + 1
		b.Indices[ii+5] = w
	}
	return b
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// --- Fill ---

// buildFillBatch turns the stroke's triangulation into a batch with one
// vertex per point. Strokes with fewer than 3 points have no fill.
func buildFillBatch(s *Stroke, color Color, opacity float64) *Batch {
	n := len(s.Points)
	if n > maxBatchVertices || !EnsureTriangulation(s, false) {
		return nil
	}
	r, g, bl, a := premultiplied(color, opacity)
	b := &Batch{
		Vertices: make([]ebiten.Vertex, n),
		Indices:  make([]uint16, 0, s.TotTriangles*3),
	}
	for i := range s.Points {
		b.Vertices[i] = ebiten.Vertex{
			DstX: float32(s.Points[i].Pos.X), DstY: float32(s.Points[i].Pos.Y),
			ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
		}
	}
	for _, t := range s.Triangles[:s.TotTriangles] {
		for k, vi := range t.Verts {
			b.Vertices[vi].SrcX = float32(t.UV[k].X)
			b.Vertices[vi].SrcY = float32(t.UV[k].Y)
			b.Indices = append(b.Indices, uint16(vi))
		}
	}
	return b
}

// --- Edit overlay ---

// editPointSize is the half size of an edit-mode point marker.
const editPointSize = 2.0

var (
	editColor     = Color{0, 0, 0, 1}
	editSelColor  = Color{1, 0.6, 0, 1}
	editLineColor = Color{0.5, 0.5, 0.5, 0.7}
)

// buildEditBatch draws a small square per point, highlighted when the point
// is selected.
func buildEditBatch(s *Stroke) *Batch {
	n := len(s.Points)
	if n == 0 || n*4 > maxBatchVertices {
		return nil
	}
	b := &Batch{
		Vertices: make([]ebiten.Vertex, 0, n*4),
		Indices:  make([]uint16, 0, n*6),
	}
	for i := range s.Points {
		pt := &s.Points[i]
		c := editColor
		if pt.Flags&PointSelected != 0 {
			c = editSelColor
		}
		r, g, bl, a := premultiplied(c, 1)
		x, y := float32(pt.Pos.X), float32(pt.Pos.Y)
		base := uint16(len(b.Vertices))
		for _, d := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			b.Vertices = append(b.Vertices, ebiten.Vertex{
				DstX: x + d[0]*editPointSize, DstY: y + d[1]*editPointSize,
				SrcX: 0.5, SrcY: 0.5,
				ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
			})
		}
		b.Indices = append(b.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return b
}

// buildEditLinesBatch draws the stroke's center line as a hairline ribbon.
func buildEditLinesBatch(s *Stroke) *Batch {
	if len(s.Points) < 2 {
		return nil
	}
	line := &Stroke{Points: s.Points, Thickness: 1, Flags: s.Flags & StrokeCyclic}
	// hairline: ignore pressure and strength
	pts := make([]Point, len(s.Points))
	for i := range s.Points {
		pts[i] = Point{Pos: s.Points[i].Pos, Pressure: 1, Strength: 1}
	}
	line.Points = pts
	return buildStrokeBatch(line, editLineColor, 1)
}
