package quill

import "testing"

func TestNewDatablockStartsDirty(t *testing.T) {
	d := NewDatablock("d")
	if !d.IsDirty() {
		t.Error("new datablock should be dirty")
	}
	if d.ActiveLayer() != nil {
		t.Error("new datablock should have no active layer")
	}
}

func TestAddLayerActive(t *testing.T) {
	d := NewDatablock("d")
	a := d.AddLayer("a", false)
	if d.ActiveLayer() != a {
		t.Error("first layer should become active")
	}
	b := d.AddLayer("b", false)
	if d.ActiveLayer() != a {
		t.Error("setActive=false should keep the active layer")
	}
	c := d.AddLayer("c", true)
	if d.ActiveLayer() != c {
		t.Error("setActive=true should activate the new layer")
	}
	if d.LayerByName("b") != b {
		t.Error("LayerByName(b) failed")
	}
}

func TestRemoveLayer(t *testing.T) {
	d := NewDatablock("d")
	a := d.AddLayer("a", true)
	b := d.AddLayer("b", true)
	if !d.RemoveLayer(b) {
		t.Fatal("RemoveLayer returned false")
	}
	if d.ActiveLayer() != a {
		t.Error("layer below the removed one should be active")
	}
	d.RemoveLayer(a)
	if d.ActiveLayer() != nil || len(d.Layers()) != 0 {
		t.Error("expected no layers")
	}
	if d.RemoveLayer(a) {
		t.Error("removing twice should fail")
	}
}

func TestEditModeFlag(t *testing.T) {
	d := NewDatablock("d")
	d.SetEditMode(true)
	if d.Flags&DatablockEditMode == 0 {
		t.Error("edit mode not set")
	}
	d.SetEditMode(false)
	if d.Flags&DatablockEditMode != 0 {
		t.Error("edit mode not cleared")
	}
}

// --- Colors ---

func TestPaletteAddReplaces(t *testing.T) {
	p := NewPalette()
	p.Add(&ColorDef{Name: "ink", Stroke: ColorBlack})
	red := p.Add(&ColorDef{Name: "ink", Stroke: Color{R: 1, A: 1}})
	if len(p.Colors()) != 1 {
		t.Fatalf("len(Colors) = %d, want 1", len(p.Colors()))
	}
	if p.ResolveColor("ink") != red || p.Active() != red {
		t.Error("replacement not resolved")
	}
	if p.ResolveColor("missing") != nil {
		t.Error("unknown color should resolve to nil")
	}
}

func TestRefreshColors(t *testing.T) {
	d := NewDatablock("d")
	d.Palette.Add(&ColorDef{Name: "ink", Stroke: ColorBlack})
	s := triangleStroke("ink")
	d.AddLayer("l", true).GetFrame(1, FrameAddNew).AddStroke(s)

	if s.ResolveColor(d).Stroke != ColorBlack {
		t.Fatal("initial color not resolved")
	}
	red := d.Palette.Add(&ColorDef{Name: "ink", Stroke: Color{R: 1, A: 1}})
	d.Flags &^= DatablockDirty
	d.RefreshColors()
	if s.Color != red {
		t.Error("RefreshColors should re-resolve the cached pointer")
	}
	if !d.IsDirty() {
		t.Error("RefreshColors should dirty the datablock")
	}
}

func TestStrokeResolveColorNilResolver(t *testing.T) {
	s := triangleStroke("ink")
	if s.ResolveColor(nil) != nil {
		t.Error("nil resolver on an unresolved stroke should give nil")
	}
	if !s.Drawable() {
		t.Error("stroke without a color is drawn in the default color")
	}
	s.Color = &ColorDef{Flags: ColorHidden}
	if s.Drawable() {
		t.Error("stroke with a hidden color should not be drawable")
	}
}
