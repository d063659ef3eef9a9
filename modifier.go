package quill

// ModifierMode selects the contexts a modifier runs in.
type ModifierMode uint8

const (
	// ModeRealtime enables the modifier for interactive evaluation.
	ModeRealtime ModifierMode = 1 << iota
	// ModeRender enables the modifier for final renders.
	ModeRender
	// ModeEditMode keeps the modifier running while strokes are edited.
	ModeEditMode
)

// Modifier is one entry of a modifier stack. Concrete modifiers also
// implement StrokeModifier, FrameModifier, or both.
type Modifier interface {
	Common() *ModifierBase
}

// StrokeModifier deforms or recolors one stroke in place.
type StrokeModifier interface {
	Modifier
	DeformStroke(ctx *EvalContext, l *Layer, s *Stroke)
}

// FrameModifier generates strokes for a whole frame.
type FrameModifier interface {
	Modifier
	GenerateStrokes(ctx *EvalContext, l *Layer, f *Frame)
}

// ModifierBase holds the settings shared by every modifier: enablement and
// the stroke and point filters.
type ModifierBase struct {
	Name string
	Mode ModifierMode

	// LayerName restricts the modifier to one layer. Empty means all.
	LayerName   string
	InvertLayer bool
	// PassIndex restricts the modifier to strokes whose color has this pass
	// index. Zero disables the filter.
	PassIndex  int
	InvertPass bool
	// VertexGroup restricts and scales per-point effects by the named
	// group. Empty means every point at full weight.
	VertexGroup       string
	InvertVertexGroup bool
}

// Common returns the shared settings.
func (b *ModifierBase) Common() *ModifierBase { return b }

func defaultBase(name string) ModifierBase {
	return ModifierBase{Name: name, Mode: ModeRealtime | ModeRender}
}

// affects is the stroke affinity test. A failing test is a silent skip.
func (b *ModifierBase) affects(ctx *EvalContext, l *Layer, s *Stroke, minPoints int) bool {
	if b.LayerName != "" {
		if (l.Name == b.LayerName) == b.InvertLayer {
			return false
		}
	}
	if b.PassIndex > 0 {
		pass := 0
		if c := s.ResolveColor(ctx.colors()); c != nil {
			pass = c.PassIndex
		}
		if (pass == b.PassIndex) == b.InvertPass {
			return false
		}
	}
	if minPoints > 0 && len(s.Points) < minPoints {
		return false
	}
	return true
}

// groupIndex resolves the modifier's vertex group through the object, or
// -1 when unset or unknown.
func (b *ModifierBase) groupIndex(ctx *EvalContext) int {
	if b.VertexGroup == "" || ctx == nil || ctx.Object == nil {
		return -1
	}
	return ctx.Object.VertexGroupIndex(b.VertexGroup)
}

// pointWeight returns the effect multiplier for p, or -1 when the point is
// filtered out. Without a group every point has weight 1. With inverse set,
// members are skipped and non-members get weight 1.
func pointWeight(p *Point, inverse bool, group int) float64 {
	if group < 0 {
		return 1
	}
	w, ok := p.WeightFor(group)
	switch {
	case ok && inverse:
		return -1
	case !ok && !inverse:
		return -1
	case !ok && inverse:
		return 1
	}
	return w
}

// --- Evaluation ---

// EvalContext carries per-evaluation state to modifiers.
type EvalContext struct {
	Object     *Object
	Datablock  *Datablock
	SceneFrame int
	// Render selects render enablement instead of realtime.
	Render bool
	// EditMode skips modifiers without ModeEditMode.
	EditMode bool
}

func (ctx *EvalContext) colors() ColorResolver {
	if ctx == nil || ctx.Datablock == nil {
		return nil
	}
	return ctx.Datablock
}

// Stack is an ordered modifier list. Modifiers run in list order.
type Stack []Modifier

func (st Stack) enabled(ctx *EvalContext, m Modifier) bool {
	mode := m.Common().Mode
	if ctx.Render {
		if mode&ModeRender == 0 {
			return false
		}
	} else if mode&ModeRealtime == 0 {
		return false
	}
	return !ctx.EditMode || mode&ModeEditMode != 0
}

// ApplyStrokes runs every enabled stroke modifier over the strokes of f.
func (st Stack) ApplyStrokes(ctx *EvalContext, l *Layer, f *Frame) {
	for _, m := range st {
		sm, ok := m.(StrokeModifier)
		if !ok || !st.enabled(ctx, m) {
			continue
		}
		for _, s := range f.Strokes {
			sm.DeformStroke(ctx, l, s)
		}
	}
}

// ApplyFrame runs every enabled frame modifier over f.
func (st Stack) ApplyFrame(ctx *EvalContext, l *Layer, f *Frame) {
	for _, m := range st {
		if fm, ok := m.(FrameModifier); ok && st.enabled(ctx, m) {
			fm.GenerateStrokes(ctx, l, f)
		}
	}
}

// HasFrameModifiers reports whether any modifier generates strokes.
func (st Stack) HasFrameModifiers() bool {
	for _, m := range st {
		if _, ok := m.(FrameModifier); ok {
			return true
		}
	}
	return false
}

// Find returns the first modifier named name, or nil.
func (st Stack) Find(name string) Modifier {
	for _, m := range st {
		if m.Common().Name == name {
			return m
		}
	}
	return nil
}

// initLattices prepares every lattice modifier's deform cache.
func (st Stack) initLattices(ctx *EvalContext) {
	for _, m := range st {
		if lm, ok := m.(*LatticeModifier); ok {
			lm.initCache(ctx)
		}
	}
}

// clearLattices releases every lattice modifier's deform cache.
func (st Stack) clearLattices() {
	for _, m := range st {
		if lm, ok := m.(*LatticeModifier); ok {
			lm.clearCache()
		}
	}
}
