package quill

import (
	"math/rand/v2"
)

// NoiseFlags selects what a NoiseModifier perturbs.
type NoiseFlags uint8

const (
	NoiseLocation NoiseFlags = 1 << iota
	NoiseStrength
	NoiseThickness
	// NoiseFullStroke shifts every point of a stroke the same way instead
	// of alternating sides.
	NoiseFullStroke
	// NoiseMoveExtreme lets the first and last points move too.
	NoiseMoveExtreme
	// NoiseRandom draws magnitudes from the modifier's generator.
	NoiseRandom
)

// NoiseModifier jitters points sideways within the stroke plane and
// optionally perturbs pressure and strength.
type NoiseModifier struct {
	ModifierBase
	Flags  NoiseFlags
	Factor float64
	// Step is the number of scene frames random values stay stable for.
	Step int
	Seed uint64

	rng *rand.Rand
	// cached random draws and the frames they were drawn for
	vrand1, vrand2 float64
	gpFrame        int
	sceneFrame     int
}

// NewNoiseModifier returns a noise modifier moving locations with factor 0.5.
func NewNoiseModifier(name string) *NoiseModifier {
	return &NoiseModifier{
		ModifierBase: defaultBase(name),
		Flags:        NoiseLocation | NoiseRandom,
		Factor:       0.5,
		Step:         4,
		Seed:         1,
		gpFrame:      noFrame,
	}
}

// noFrame never matches a real frame number.
const noFrame = -999999

// Reseed resets the generator and forgets cached draws.
func (m *NoiseModifier) Reseed(seed uint64) {
	m.Seed = seed
	m.rng = nil
	m.gpFrame = noFrame
}

// draw returns the magnitude and side for point i. Random values are reused
// until the layer's active frame changes or Step scene frames have passed.
func (m *NoiseModifier) draw(ctx *EvalContext, l *Layer, s *Stroke, i int) (vran, vdir float64) {
	if m.Flags&NoiseRandom == 0 {
		m.gpFrame = noFrame
		if m.Flags&NoiseFullStroke != 0 {
			return 1, float64(len(s.Points) % 2)
		}
		return 1, float64(i % 2)
	}

	if m.rng == nil {
		m.rng = newRand(m.Seed)
	}
	sceneFrame := 0
	if ctx != nil {
		sceneFrame = ctx.SceneFrame
	}
	act := l.ActiveFrame()
	if act == nil || m.gpFrame != act.Number || absInt(m.sceneFrame-sceneFrame) >= m.Step {
		m.vrand1 = m.rng.Float64()
		m.vrand2 = m.rng.Float64()
		if act != nil {
			m.gpFrame = act.Number
		}
		m.sceneFrame = sceneFrame
		return m.vrand1, m.vrand2
	}
	if m.Flags&NoiseFullStroke != 0 {
		return m.vrand1, m.vrand2
	}
	return m.vrand1, float64((int(m.vrand2*10) + i) % 2)
}

// DeformStroke implements StrokeModifier.
func (m *NoiseModifier) DeformStroke(ctx *EvalContext, l *Layer, s *Stroke) {
	if !m.affects(ctx, l, s, 3) {
		return
	}
	group := m.groupIndex(ctx)
	normal := s.Normal()
	n := len(s.Points)
	moved := false

	for i := 0; i < n; i++ {
		if (i == 0 || i == n-1) && m.Flags&NoiseMoveExtreme == 0 {
			continue
		}
		pt := &s.Points[i]
		weight := pointWeight(pt, m.InvertVertexGroup, group)
		if weight < 0 {
			continue
		}

		a, b := i-1, i
		if i == 0 {
			a, b = 0, 1
		}
		vec1 := s.Points[b].Pos.Sub(s.Points[a].Pos)
		side := vec1.Cross(normal).Normalize()
		vran, vdir := m.draw(ctx, l, s, i)

		if m.Flags&NoiseLocation != 0 {
			// factor is too sensitive at full scale
			shift := vran * m.Factor / 10 * weight
			if vdir <= 0.5 {
				shift = -shift
			}
			pt.Pos = pt.Pos.Add(side.Scale(shift))
			moved = true
		}
		if m.Flags&NoiseThickness != 0 {
			delta := pt.Pressure * vran * m.Factor * weight
			if vdir > 0.5 {
				pt.Pressure -= delta
			} else {
				pt.Pressure += delta
			}
			pt.Pressure = max(pt.Pressure, StrengthMin)
		}
		if m.Flags&NoiseStrength != 0 {
			delta := pt.Strength * vran * m.Factor * weight
			if vdir > 0.5 {
				pt.Strength -= delta
			} else {
				pt.Strength += delta
			}
			pt.Strength = max(pt.Strength, StrengthMin)
		}
	}
	if moved {
		s.MarkRecalc()
	}
}
