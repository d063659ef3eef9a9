package quill

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// RasterConfig controls CPU rasterization of a frame.
type RasterConfig struct {
	Width, Height int
	// Margin is the empty border in pixels around the frame's bounds.
	Margin float64
}

// frameBounds returns the XY bounding box of every point in the frames.
func frameBounds(frames ...*Frame) (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, f := range frames {
		if f == nil {
			continue
		}
		for _, s := range f.Strokes {
			for i := range s.Points {
				p := s.Points[i].Pos
				minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
				minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
				ok = true
			}
		}
	}
	return
}

// fitTransform maps the frame's bounds into the raster.
func (cfg RasterConfig) fitTransform(f *Frame) [6]float64 {
	minX, minY, maxX, maxY, ok := frameBounds(f)
	if !ok {
		return [6]float64{1, 0, 0, -1, cfg.Margin, float64(cfg.Height) - cfg.Margin}
	}
	return viewTransform(minX, minY, maxX, maxY, cfg.Width, cfg.Height, cfg.Margin)
}

// RasterizeFill renders the fill coverage of every stroke in f with three or
// more points. The frame is scaled to fit the image.
func RasterizeFill(f *Frame, cfg RasterConfig) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, cfg.Width, cfg.Height))
	if f == nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return dst
	}
	m := cfg.fitTransform(f)
	z := vector.NewRasterizer(cfg.Width, cfg.Height)
	for _, s := range f.Strokes {
		if !fillPath(z, s, m) {
			continue
		}
		z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	}
	return dst
}

// RasterizeColor renders the fills of f in their resolved fill colors,
// in stroke order, over a transparent background.
func RasterizeColor(f *Frame, r ColorResolver, cfg RasterConfig) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	if f == nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return dst
	}
	m := cfg.fitTransform(f)
	z := vector.NewRasterizer(cfg.Width, cfg.Height)
	for _, s := range f.Strokes {
		col := s.ResolveColor(r)
		if col == nil || col.Hidden() || col.Fill.A <= 0 {
			continue
		}
		if !fillPath(z, s, m) {
			continue
		}
		src := image.NewUniform(col.Fill.NRGBA())
		z.Draw(dst, dst.Bounds(), src, image.Point{})
	}
	return dst
}

// fillPath resets z and adds one closed path per fill triangle of s.
// Triangles of one stroke share a winding, so they never cancel.
func fillPath(z *vector.Rasterizer, s *Stroke, m [6]float64) bool {
	if !EnsureTriangulation(s, false) {
		return false
	}
	size := z.Size()
	z.Reset(size.X, size.Y)
	z.DrawOp = draw.Over
	for _, t := range s.Triangles[:s.TotTriangles] {
		for k, vi := range t.Verts {
			x, y := transformPoint(m, s.Points[vi].Pos.X, s.Points[vi].Pos.Y)
			if k == 0 {
				z.MoveTo(float32(x), float32(y))
			} else {
				z.LineTo(float32(x), float32(y))
			}
		}
		z.ClosePath()
	}
	return true
}
