package quill

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image used as the source of every batch.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(Color{1, 1, 1, 1}.NRGBA())
}

// FitView returns the affine view matrix that fits the frames into a
// w×h target with margin pixels of border, Y up.
func FitView(w, h int, margin float64, frames ...*Frame) [6]float64 {
	minX, minY, maxX, maxY, _ := frameBounds(frames...)
	return viewTransform(minX, minY, maxX, maxY, w, h, margin)
}

// Drawer submits batch caches to an ebiten target. It reuses one vertex
// buffer across calls.
type Drawer struct {
	// View maps stroke space to target pixels. See FitView.
	View [6]float64
	// HideEdit skips the edit overlay even when the cache has one.
	HideEdit bool

	buf []ebiten.Vertex
}

// DrawCache draws every used slot of c: fill then outline per stroke, then
// the edit overlay on top.
func (d *Drawer) DrawCache(dst *ebiten.Image, c *BatchCache) {
	if c == nil {
		return
	}
	for i := 0; i < c.Used(); i++ {
		d.DrawBatch(dst, c.Fill[i])
		d.DrawBatch(dst, c.Stroke[i])
	}
	if d.HideEdit {
		return
	}
	for i := 0; i < c.Used(); i++ {
		d.DrawBatch(dst, c.EditLines[i])
		d.DrawBatch(dst, c.Edit[i])
	}
}

// DrawBatch draws one batch. Nil and empty batches are skipped.
func (d *Drawer) DrawBatch(dst *ebiten.Image, b *Batch) {
	if b == nil || len(b.Indices) == 0 {
		return
	}
	d.buf = append(d.buf[:0], b.Vertices...)
	for i := range d.buf {
		v := &d.buf[i]
		x, y := transformPoint(d.View, float64(v.DstX), float64(v.DstY))
		v.DstX, v.DstY = float32(x), float32(y)
		// fill UVs address a texture; the white pixel needs its center
		v.SrcX, v.SrcY = 0.5, 0.5
	}
	dst.DrawTriangles(d.buf, b.Indices, whitePixel, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}
