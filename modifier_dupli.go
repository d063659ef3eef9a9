package quill

import "sort"

// dupliRandSize is the length of the rolling random table. Slot 0 holds the
// read cursor, so 19 values are drawn before it wraps.
const dupliRandSize = 20

// DupliModifier appends Count transformed copies of every affected stroke.
// Copy e is offset by Offset*(e+1) and rotated and scaled by Rotation and
// Scale, optionally jittered from a rolling random table.
type DupliModifier struct {
	ModifierBase
	Count    int
	Offset   Vec3
	Rotation Vec3 // XYZ Euler, radians
	Scale    Vec3

	RandomRotation bool
	RandomSize     bool
	RandRot        float64
	RandSize       float64
	Seed           uint64

	rnd [dupliRandSize]float64
}

// NewDupliModifier returns a single copy offset one unit along X.
func NewDupliModifier(name string) *DupliModifier {
	m := &DupliModifier{
		ModifierBase: defaultBase(name),
		Count:        1,
		Offset:       Vec3{1, 0, 0},
		Scale:        Vec3{1, 1, 1},
		RandRot:      0.5,
		RandSize:     0.5,
		Seed:         1,
	}
	m.Reseed(m.Seed)
	return m
}

// Reseed refills the random table from seed and rewinds the cursor.
func (m *DupliModifier) Reseed(seed uint64) {
	m.Seed = seed
	rng := newRand(seed)
	for i := range m.rnd {
		m.rnd[i] = rng.Float64()
	}
	m.Reset()
}

// Reset rewinds the random cursor so the next evaluation repeats the
// same sequence.
func (m *DupliModifier) Reset() {
	m.rnd[0] = 1
}

// nextRandom returns the table value under the cursor and advances it,
// wrapping back to 1 after 19.
func (m *DupliModifier) nextRandom() float64 {
	ri := int(m.rnd[0])
	if ri < 1 || ri >= dupliRandSize {
		ri = 1
	}
	v := m.rnd[ri]
	ri++
	if ri > dupliRandSize-1 {
		ri = 1
	}
	m.rnd[0] = float64(ri)
	return v
}

// copyMatrix builds the transform of copy e.
func (m *DupliModifier) copyMatrix(e int) Mat4 {
	offset := m.Offset.Scale(float64(e + 1))
	r := m.nextRandom()
	rot := m.Rotation
	if m.RandomRotation {
		rot = rot.Add(rot.Scale(m.RandRot * r))
	}
	scale := m.Scale
	if m.RandomSize {
		scale = scale.Add(scale.Scale(m.RandSize * r))
	}
	return LocEulSizeToMat4(offset, rot, scale)
}

type dupliEntry struct {
	key    int
	stroke *Stroke
}

// GenerateStrokes implements FrameModifier. Copies of all strokes are
// ordered by copy index first and source stroke second, then appended
// after the originals.
func (m *DupliModifier) GenerateStrokes(ctx *EvalContext, l *Layer, f *Frame) {
	if m.Count <= 0 || len(f.Strokes) == 0 {
		return
	}
	cache := make([]dupliEntry, 0, len(f.Strokes)*m.Count)

	for ordinal, s := range f.Strokes {
		if !m.affects(ctx, l, s, 1) {
			continue
		}
		for e := 0; e < m.Count; e++ {
			dst := s.Duplicate()
			if s.Color != nil {
				c := *s.Color
				dst.Color = &c
			}
			dst.TotTriangles = 0

			mat := m.copyMatrix(e)
			for i := range dst.Points {
				dst.Points[i].Pos = mat.MulPoint(dst.Points[i].Pos)
			}
			cache = append(cache, dupliEntry{key: e*100000 + ordinal + 1, stroke: dst})
		}
	}

	sort.SliceStable(cache, func(i, j int) bool { return cache[i].key < cache[j].key })
	for _, c := range cache {
		f.Strokes = append(f.Strokes, c.stroke)
	}
}
