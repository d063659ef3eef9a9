package quill

// Deformer is an initialized lattice deform cache.
type Deformer interface {
	// Deform returns p moved through the lattice, blended by strength.
	Deform(p Vec3, strength float64) Vec3
}

// LatticeProvider builds deform caches for a lattice acting on an object.
// The returned Deformer is released with Release when evaluation ends.
type LatticeProvider interface {
	InitDeform(lattice string, target *Object) Deformer
	Release(d Deformer)
}

// LatticeModifier moves points through a lattice deform field. Lattice
// names the lattice handed to the object's LatticeProvider.
type LatticeModifier struct {
	ModifierBase
	Lattice  string
	Strength float64

	cache    Deformer
	provider LatticeProvider
}

// NewLatticeModifier returns a full-strength lattice modifier.
func NewLatticeModifier(name, lattice string) *LatticeModifier {
	return &LatticeModifier{ModifierBase: defaultBase(name), Lattice: lattice, Strength: 1}
}

// Ready reports whether a deform cache is loaded.
func (m *LatticeModifier) Ready() bool { return m.cache != nil }

// initCache (re)builds the deform cache before a frame is evaluated.
func (m *LatticeModifier) initCache(ctx *EvalContext) {
	m.clearCache()
	if ctx == nil || ctx.Object == nil || ctx.Object.Lattices == nil || m.Lattice == "" {
		return
	}
	m.provider = ctx.Object.Lattices
	m.cache = m.provider.InitDeform(m.Lattice, ctx.Object)
}

// clearCache releases the deform cache.
func (m *LatticeModifier) clearCache() {
	if m.cache != nil && m.provider != nil {
		m.provider.Release(m.cache)
	}
	m.cache = nil
	m.provider = nil
}

// DeformStroke implements StrokeModifier. Without an initialized cache it
// does nothing.
func (m *LatticeModifier) DeformStroke(ctx *EvalContext, l *Layer, s *Stroke) {
	if m.cache == nil || !m.affects(ctx, l, s, 1) {
		return
	}
	group := m.groupIndex(ctx)
	for i := range s.Points {
		pt := &s.Points[i]
		weight := pointWeight(pt, m.InvertVertexGroup, group)
		if weight < 0 {
			continue
		}
		pt.Pos = m.cache.Deform(pt.Pos, m.Strength*weight)
	}
	s.MarkRecalc()
}
