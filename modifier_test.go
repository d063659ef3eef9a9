package quill

import (
	"testing"

	"github.com/tanema/gween/ease"
)

// evalFixture is one object with one layer and one frame, ready for
// modifier evaluation.
type evalFixture struct {
	obj   *Object
	layer *Layer
	frame *Frame
	ctx   *EvalContext
}

func newEvalFixture() *evalFixture {
	d := NewDatablock("d")
	d.Palette.Add(&ColorDef{Name: "ink", Stroke: ColorBlack, Fill: Color{R: 1, A: 1}})
	d.Palette.Add(&ColorDef{Name: "pass2", Stroke: ColorBlack, PassIndex: 2})
	l := d.AddLayer("ink", true)
	f := l.GetFrame(1, FrameAddNew)
	o := NewObject("o", d)
	o.AddVertexGroup("g")
	return &evalFixture{
		obj:   o,
		layer: l,
		frame: f,
		ctx:   &EvalContext{Object: o, Datablock: d, SceneFrame: 1},
	}
}

// privateColor gives s its own copy of its resolved color, as Populate does.
func (fx *evalFixture) privateColor(s *Stroke) *ColorDef {
	c := *s.ResolveColor(fx.obj.Data)
	s.Color = &c
	s.Flags &^= StrokeRecalcColor
	return s.Color
}

// --- Filters ---

func TestPointWeight(t *testing.T) {
	member := NewPoint(0, 0, 0)
	member.SetWeight(0, 0.25)
	other := NewPoint(0, 0, 0)

	tests := []struct {
		name    string
		p       *Point
		inverse bool
		group   int
		want    float64
	}{
		{"no group", &other, false, -1, 1},
		{"member", &member, false, 0, 0.25},
		{"non-member", &other, false, 0, -1},
		{"inverse member", &member, true, 0, -1},
		{"inverse non-member", &other, true, 0, 1},
	}
	for _, tt := range tests {
		if got := pointWeight(tt.p, tt.inverse, tt.group); got != tt.want {
			t.Errorf("%s: weight = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAffectsLayerFilter(t *testing.T) {
	fx := newEvalFixture()
	s := triangleStroke("ink")
	b := defaultBase("m")

	b.LayerName = "ink"
	if !b.affects(fx.ctx, fx.layer, s, 0) {
		t.Error("matching layer should be affected")
	}
	b.InvertLayer = true
	if b.affects(fx.ctx, fx.layer, s, 0) {
		t.Error("inverted matching layer should be skipped")
	}
	b.LayerName, b.InvertLayer = "other", false
	if b.affects(fx.ctx, fx.layer, s, 0) {
		t.Error("other layer should be skipped")
	}
}

func TestAffectsPassFilter(t *testing.T) {
	fx := newEvalFixture()
	b := defaultBase("m")
	b.PassIndex = 2
	if b.affects(fx.ctx, fx.layer, triangleStroke("ink"), 0) {
		t.Error("pass 0 stroke should be skipped by pass 2 filter")
	}
	if !b.affects(fx.ctx, fx.layer, triangleStroke("pass2"), 0) {
		t.Error("pass 2 stroke should be affected")
	}
	b.InvertPass = true
	if !b.affects(fx.ctx, fx.layer, triangleStroke("ink"), 0) {
		t.Error("inverted pass filter should affect other passes")
	}
}

func TestAffectsMinPoints(t *testing.T) {
	fx := newEvalFixture()
	b := defaultBase("m")
	if b.affects(fx.ctx, fx.layer, NewStroke("", 1, pts(0, 0, 1, 0)...), 3) {
		t.Error("2-point stroke should be skipped when 3 are required")
	}
}

// --- Stack ---

func TestStackEnabled(t *testing.T) {
	m := NewThicknessModifier("t")
	st := Stack{m}
	ctx := &EvalContext{}

	if !st.enabled(ctx, m) {
		t.Error("default modifier should run in realtime")
	}
	ctx.Render = true
	if !st.enabled(ctx, m) {
		t.Error("default modifier should run in render")
	}
	m.Mode = ModeRealtime
	if st.enabled(ctx, m) {
		t.Error("realtime-only modifier ran in render")
	}
	ctx.Render, ctx.EditMode = false, true
	if st.enabled(ctx, m) {
		t.Error("modifier without edit mode ran in edit mode")
	}
	m.Mode |= ModeEditMode
	if !st.enabled(ctx, m) {
		t.Error("edit-mode modifier skipped")
	}
}

func TestStackFind(t *testing.T) {
	st := Stack{NewNoiseModifier("a"), NewDupliModifier("b")}
	if st.Find("b") == nil || st.Find("c") != nil {
		t.Error("Find returned the wrong modifier")
	}
	if !st.HasFrameModifiers() {
		t.Error("dupli is a frame modifier")
	}
	if (Stack{NewNoiseModifier("a")}).HasFrameModifiers() {
		t.Error("noise is not a frame modifier")
	}
}

func TestApplyStrokesInListOrder(t *testing.T) {
	fx := newEvalFixture()
	s := fx.frame.AddStroke(triangleStroke("ink"))

	norm := NewThicknessModifier("norm")
	norm.Normalize, norm.Thickness = true, 4
	add := NewThicknessModifier("add")
	add.Delta = 0.5

	Stack{add, norm}.ApplyStrokes(fx.ctx, fx.layer, fx.frame)
	if s.Thickness != 4 {
		t.Errorf("Thickness = %d, want 4", s.Thickness)
	}
	assertNear(t, "pressure", s.Points[0].Pressure, 1)
}

// --- Noise ---

func TestNoiseAlternatingShift(t *testing.T) {
	fx := newEvalFixture()
	s := NewStroke("ink", 1, pts(0, 0, 1, 0, 2, 1, 3, 1, 4, 0)...)
	m := NewNoiseModifier("n")
	m.Flags = NoiseLocation

	m.DeformStroke(fx.ctx, fx.layer, s)

	assertVec3(t, "p0", s.Points[0].Pos, Vec3{0, 0, 0})
	assertVec3(t, "p1", s.Points[1].Pos, Vec3{1, -0.05, 0})
	assertVec3(t, "p4", s.Points[4].Pos, Vec3{4, 0, 0})
	if !s.NeedsRecalc() {
		t.Error("moved stroke should need a new triangulation")
	}
}

func TestNoiseDeterministicPerSeed(t *testing.T) {
	fx := newEvalFixture()
	src := NewStroke("ink", 1, pts(0, 0, 1, 0, 2, 1, 3, 1, 4, 0)...)
	a, b := src.Duplicate(), src.Duplicate()

	NewNoiseModifier("a").DeformStroke(fx.ctx, fx.layer, a)
	NewNoiseModifier("b").DeformStroke(fx.ctx, fx.layer, b)
	for i := range a.Points {
		if a.Points[i].Pos != b.Points[i].Pos {
			t.Fatalf("point %d differs between equal seeds", i)
		}
	}
}

func TestNoiseStableWithinStep(t *testing.T) {
	fx := newEvalFixture()
	src := NewStroke("ink", 1, pts(0, 0, 1, 0, 2, 1, 3, 1, 4, 0)...)
	m := NewNoiseModifier("n")
	m.DeformStroke(fx.ctx, fx.layer, src.Duplicate())

	a, b := src.Duplicate(), src.Duplicate()
	m.DeformStroke(fx.ctx, fx.layer, a)
	m.DeformStroke(fx.ctx, fx.layer, b)
	for i := range a.Points {
		if a.Points[i].Pos != b.Points[i].Pos {
			t.Fatalf("point %d changed within one step", i)
		}
	}
}

func TestNoiseStrengthFloor(t *testing.T) {
	fx := newEvalFixture()
	s := NewStroke("ink", 1, pts(0, 0, 1, 0, 2, 1)...)
	m := NewNoiseModifier("n")
	m.Flags = NoiseStrength | NoiseThickness | NoiseMoveExtreme
	m.Factor = 10
	m.DeformStroke(fx.ctx, fx.layer, s)
	for i, p := range s.Points {
		if p.Strength < StrengthMin || p.Pressure < StrengthMin {
			t.Errorf("point %d below floor: %+v", i, p)
		}
	}
}

// --- Subdiv ---

func TestSubdivLevels(t *testing.T) {
	fx := newEvalFixture()
	s := NewStroke("ink", 1, pts(0, 0, 2, 0, 4, 0)...)
	s.Points[0].Pressure, s.Points[1].Pressure = 0, 1
	m := NewSubdivModifier("s")
	m.DeformStroke(fx.ctx, fx.layer, s)
	if s.Len() != 5 {
		t.Fatalf("Len after 1 level = %d, want 5", s.Len())
	}
	assertNear(t, "mid x", s.Points[1].Pos.X, 1)
	assertNear(t, "mid pressure", s.Points[1].Pressure, 0.5)

	m.DeformStroke(fx.ctx, fx.layer, s)
	if s.Len() != 9 {
		t.Errorf("Len after 2 levels = %d, want 9", s.Len())
	}
}

func TestSubdivSmoothKeepsEndpoints(t *testing.T) {
	s := NewStroke("ink", 1, pts(0, 0, 1, 2, 2, 0)...)
	SubdivideStroke(s, false)
	if s.Len() != 5 {
		t.Fatalf("Len = %d, want 2N-1 = 5", s.Len())
	}
	assertVec3(t, "first", s.Points[0].Pos, Vec3{0, 0, 0})
	assertVec3(t, "last", s.Points[4].Pos, Vec3{2, 0, 0})
	// the peak is relaxed toward its neighbours' midpoints
	if s.Points[2].Pos.Y >= 2 {
		t.Errorf("peak y = %v, want below 2", s.Points[2].Pos.Y)
	}
}

// --- Simplify ---

func TestSimplifyModifierFixed(t *testing.T) {
	fx := newEvalFixture()
	s := NewStroke("ink", 1)
	for i := 0; i < 9; i++ {
		s.Points = append(s.Points, NewPoint(float64(i), 0, 0))
	}
	m := NewSimplifyModifier("s")
	m.Mode, m.Step = SimplifyFixed, 2
	m.DeformStroke(fx.ctx, fx.layer, s)
	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4", s.Len())
	}
}

// --- Dupli ---

func TestDupliOrdering(t *testing.T) {
	fx := newEvalFixture()
	s1 := fx.frame.AddStroke(NewStroke("ink", 1, pts(0, 0, 1, 0)...))
	s2 := fx.frame.AddStroke(NewStroke("ink", 1, pts(0, 5, 1, 5)...))

	m := NewDupliModifier("d")
	m.Count, m.Offset = 2, Vec3{10, 0, 0}
	m.GenerateStrokes(fx.ctx, fx.layer, fx.frame)

	if len(fx.frame.Strokes) != 6 {
		t.Fatalf("strokes = %d, want 6", len(fx.frame.Strokes))
	}
	if fx.frame.Strokes[0] != s1 || fx.frame.Strokes[1] != s2 {
		t.Error("originals must stay first")
	}
	want := []struct{ x, y float64 }{{10, 0}, {10, 5}, {20, 0}, {20, 5}}
	for i, w := range want {
		p := fx.frame.Strokes[2+i].Points[0].Pos
		if !approxEqual(p.X, w.x, 1e-9) || !approxEqual(p.Y, w.y, 1e-9) {
			t.Errorf("copy %d starts at (%v, %v), want (%v, %v)", i, p.X, p.Y, w.x, w.y)
		}
	}
	assertNear(t, "source x", s1.Points[0].Pos.X, 0)
}

func TestDupliRandomTableWraps(t *testing.T) {
	m := NewDupliModifier("d")
	first := m.nextRandom()
	for i := 0; i < dupliRandSize-2; i++ {
		m.nextRandom()
	}
	if got := m.nextRandom(); got != first {
		t.Errorf("after %d draws got %v, want wrap to %v", dupliRandSize-1, got, first)
	}
	m.Reset()
	if got := m.nextRandom(); got != first {
		t.Errorf("after Reset got %v, want %v", got, first)
	}
}

// --- Thickness ---

func TestThicknessVertexGroup(t *testing.T) {
	fx := newEvalFixture()
	s := triangleStroke("ink")
	s.SetWeight(0, 0, 1)
	s.SetWeight(1, 0, 0.5)

	m := NewThicknessModifier("t")
	m.Delta = 0.5
	m.VertexGroup = "g"
	m.DeformStroke(fx.ctx, fx.layer, s)

	assertNear(t, "p0", s.Points[0].Pressure, 1.5)
	assertNear(t, "p1", s.Points[1].Pressure, 1.25)
	assertNear(t, "p2", s.Points[2].Pressure, 1)
}

func TestThicknessNeverNegative(t *testing.T) {
	fx := newEvalFixture()
	s := triangleStroke("ink")
	m := NewThicknessModifier("t")
	m.Delta = -5
	m.DeformStroke(fx.ctx, fx.layer, s)
	assertNear(t, "pressure", s.Points[0].Pressure, 0)
}

// --- Color ---

func TestTintModifier(t *testing.T) {
	fx := newEvalFixture()
	s := triangleStroke("ink")
	c := fx.privateColor(s)

	NewTintModifier("t").DeformStroke(fx.ctx, fx.layer, s)
	if c.Stroke != (Color{0.5, 0.5, 0.5, 1}) {
		t.Errorf("tinted stroke = %+v", c.Stroke)
	}
	if c.Fill != (Color{1, 0.5, 0.5, 1}) {
		t.Errorf("tinted fill = %+v", c.Fill)
	}
	if pal := fx.obj.Data.ResolveColor("ink"); pal.Stroke != ColorBlack {
		t.Error("palette entry was modified")
	}
}

func TestColorModifier(t *testing.T) {
	fx := newEvalFixture()
	s := triangleStroke("ink")
	c := fx.privateColor(s)

	m := NewColorModifier("c")
	m.DeformStroke(fx.ctx, fx.layer, s)
	if c.Fill != (Color{1, 0, 0, 1}) {
		t.Errorf("identity HSV changed fill to %+v", c.Fill)
	}
	m.HSV = [3]float64{1, 1, 0}
	m.DeformStroke(fx.ctx, fx.layer, s)
	if c.Fill != (Color{0, 0, 0, 1}) {
		t.Errorf("zero value fill = %+v, want black", c.Fill)
	}
}

func TestOpacityModifier(t *testing.T) {
	fx := newEvalFixture()
	s := triangleStroke("ink")
	c := fx.privateColor(s)

	m := NewOpacityModifier("o")
	m.Factor = 0.5
	m.DeformStroke(fx.ctx, fx.layer, s)

	assertNear(t, "stroke alpha", c.Stroke.A, 0.5)
	assertNear(t, "fill alpha", c.Fill.A, 0.5)
	assertNear(t, "strength", s.Points[0].Strength, 0.5)
}

// --- Smooth ---

func TestSmoothLocation(t *testing.T) {
	fx := newEvalFixture()
	s := NewStroke("ink", 1, pts(0, 0, 1, 1, 2, 0)...)
	m := NewSmoothModifier("s")
	m.Factor = 1
	m.DeformStroke(fx.ctx, fx.layer, s)

	if y := s.Points[1].Pos.Y; y >= 0.5 {
		t.Errorf("peak y = %v, want below 0.5", y)
	}
	moved0 := s.Points[0].Pos.Len()
	moved1 := 1 - s.Points[1].Pos.Y
	if moved0 >= moved1 {
		t.Errorf("endpoint moved %v, interior %v; endpoints should move less", moved0, moved1)
	}
}

func TestSmoothZeroFactorNoop(t *testing.T) {
	fx := newEvalFixture()
	s := NewStroke("ink", 1, pts(0, 0, 1, 1, 2, 0)...)
	m := NewSmoothModifier("s")
	m.Factor = 0
	m.DeformStroke(fx.ctx, fx.layer, s)
	assertVec3(t, "peak", s.Points[1].Pos, Vec3{1, 1, 0})
}

// --- Offset ---

func TestOffsetModifierGroup(t *testing.T) {
	fx := newEvalFixture()
	s := triangleStroke("ink")
	s.SetWeight(1, 0, 0.1)

	m := NewOffsetModifier("o")
	m.Location = Vec3{1, 2, 0}
	m.VertexGroup = "g"
	m.DeformStroke(fx.ctx, fx.layer, s)

	assertVec3(t, "member", s.Points[1].Pos, Vec3{2, 2, 0})
	assertVec3(t, "non-member", s.Points[0].Pos, Vec3{0, 0, 0})
}

// --- Build ---

func TestBuildModifier(t *testing.T) {
	fx := newEvalFixture()
	m := NewBuildModifier("b")
	m.StartFrame, m.Length, m.Ease = 1, 10, ease.Linear

	tests := []struct {
		frame, want int
	}{
		{0, 0},
		{1, 0},
		{6, 5},
		{11, 10},
		{20, 10},
	}
	for _, tt := range tests {
		s := zigzag(10)
		fx.ctx.SceneFrame = tt.frame
		m.DeformStroke(fx.ctx, fx.layer, s)
		if s.Len() != tt.want {
			t.Errorf("frame %d: Len = %d, want %d", tt.frame, s.Len(), tt.want)
		}
	}
}

func TestBuildModifierReverse(t *testing.T) {
	fx := newEvalFixture()
	m := NewBuildModifier("b")
	m.StartFrame, m.Length, m.Reverse = 1, 10, true
	s := zigzag(10)
	fx.ctx.SceneFrame = 1
	m.DeformStroke(fx.ctx, fx.layer, s)
	if s.Len() != 10 {
		t.Errorf("reverse at start: Len = %d, want 10", s.Len())
	}
}

// --- Lattice ---

type shiftDeformer struct{ dx float64 }

func (d *shiftDeformer) Deform(p Vec3, strength float64) Vec3 {
	return Vec3{p.X + d.dx*strength, p.Y, p.Z}
}

type fakeLattices struct {
	inits, releases int
}

func (f *fakeLattices) InitDeform(lattice string, target *Object) Deformer {
	if lattice != "cage" {
		return nil
	}
	f.inits++
	return &shiftDeformer{dx: 1}
}

func (f *fakeLattices) Release(Deformer) { f.releases++ }

func TestLatticeModifier(t *testing.T) {
	fx := newEvalFixture()
	prov := &fakeLattices{}
	fx.obj.Lattices = prov

	m := NewLatticeModifier("l", "cage")
	m.Strength = 0.5
	st := Stack{m}

	s := triangleStroke("ink")
	m.DeformStroke(fx.ctx, fx.layer, s)
	assertNear(t, "uninitialized x", s.Points[0].Pos.X, 0)

	st.initLattices(fx.ctx)
	if !m.Ready() || prov.inits != 1 {
		t.Fatal("lattice cache not initialized")
	}
	m.DeformStroke(fx.ctx, fx.layer, s)
	assertNear(t, "deformed x", s.Points[0].Pos.X, 0.5)

	st.clearLattices()
	if m.Ready() || prov.releases != 1 {
		t.Error("lattice cache not released")
	}
}
