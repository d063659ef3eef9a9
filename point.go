package quill

// StrengthMin is the lowest strength or pressure a modifier may leave on a
// point. Values below it make the point invisible.
const StrengthMin = 0.003

// PointFlags holds per-point state bits.
type PointFlags uint8

const (
	// PointSelected marks a point as selected in edit mode.
	PointSelected PointFlags = 1 << iota
)

// Weight is one vertex-group membership of a point.
type Weight struct {
	Group  int
	Factor float64
}

// Point is a single sample along a stroke.
type Point struct {
	Pos      Vec3
	Pressure float64 // scales thickness
	Strength float64 // scales alpha
	Time     float64 // seconds since the stroke started
	Flags    PointFlags

	// Weights is nil iff the point belongs to no vertex group.
	Weights []Weight
}

// NewPoint returns a point at pos with full pressure and strength.
func NewPoint(x, y, z float64) Point {
	return Point{Pos: Vec3{x, y, z}, Pressure: 1, Strength: 1}
}

// WeightFor returns the point's weight for group and whether it has one.
func (p *Point) WeightFor(group int) (float64, bool) {
	for _, w := range p.Weights {
		if w.Group == group {
			return w.Factor, true
		}
	}
	return 0, false
}

// SetWeight sets the weight for group, updating an existing entry in place
// or appending a new one.
func (p *Point) SetWeight(group int, factor float64) {
	for i := range p.Weights {
		if p.Weights[i].Group == group {
			p.Weights[i].Factor = factor
			return
		}
	}
	p.Weights = append(p.Weights, Weight{Group: group, Factor: factor})
}

// RemoveWeight deletes the entry for group. The array is compacted and
// released entirely once it becomes empty. Reports whether an entry was
// removed.
func (p *Point) RemoveWeight(group int) bool {
	idx := -1
	for i, w := range p.Weights {
		if w.Group == group {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	if len(p.Weights) == 1 {
		p.Weights = nil
		return true
	}
	w := make([]Weight, 0, len(p.Weights)-1)
	w = append(w, p.Weights[:idx]...)
	w = append(w, p.Weights[idx+1:]...)
	p.Weights = w
	return true
}

// copyWeights returns an independent copy of the point's weight array.
func (p *Point) copyWeights() []Weight {
	if len(p.Weights) == 0 {
		return nil
	}
	w := make([]Weight, len(p.Weights))
	copy(w, p.Weights)
	return w
}

// clone returns a deep copy of p.
func (p Point) clone() Point {
	p.Weights = p.copyWeights()
	return p
}
