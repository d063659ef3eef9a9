package quill

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestFitView(t *testing.T) {
	f := newFillFrame()
	m := FitView(120, 120, 10, f)
	x, y := transformPoint(m, 0, 0)
	assertNear(t, "x", x, 10)
	assertNear(t, "y", y, 110)
	x, y = transformPoint(m, 10, 10)
	assertNear(t, "x", x, 110)
	assertNear(t, "y", y, 10)
}

func TestDrawerDrawCache(t *testing.T) {
	s, o, _ := newTestScene()
	o.Data.SetEditMode(true)
	c := s.Populate(o)

	dst := ebiten.NewImage(64, 64)
	d := &Drawer{View: FitView(64, 64, 4, o.Data.LayerByName("ink").DerivedFrame(o.ID))}
	d.DrawCache(dst, c)

	// the last batch drawn is the edit point overlay
	if len(d.buf) != len(c.Edit[0].Vertices) {
		t.Errorf("buffer = %d vertices, want %d", len(d.buf), len(c.Edit[0].Vertices))
	}
	if c.Edit[0].Vertices[0].DstX != -2 {
		t.Error("drawing must not modify cached vertices")
	}
}

func TestDrawerHideEdit(t *testing.T) {
	s, o, _ := newTestScene()
	o.Data.SetEditMode(true)
	c := s.Populate(o)

	dst := ebiten.NewImage(16, 16)
	d := &Drawer{HideEdit: true}
	d.DrawCache(dst, c)
	if len(d.buf) != len(c.Stroke[0].Vertices) {
		t.Errorf("buffer = %d vertices, want outline's %d", len(d.buf), len(c.Stroke[0].Vertices))
	}
}

func TestDrawerNilSafe(t *testing.T) {
	dst := ebiten.NewImage(4, 4)
	d := &Drawer{}
	d.DrawCache(dst, nil)
	d.DrawBatch(dst, nil)
	d.DrawBatch(dst, &Batch{})
	if len(d.buf) != 0 {
		t.Error("nothing should have been drawn")
	}
}
