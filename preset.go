package quill

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Preset is a named, reusable modifier stack stored as YAML.
//
//	version: 1
//	name: wobble
//	modifiers:
//	  - type: noise
//	    factor: 0.8
//	    flags: [location, random]
//	  - type: tint
//	    color: [1, 0, 0, 1]
type Preset struct {
	Version   int            `yaml:"version"`
	Name      string         `yaml:"name"`
	Modifiers []ModifierSpec `yaml:"modifiers"`
}

// ModifierSpec is the YAML form of one modifier. Which fields apply depends
// on Type. Unset factors keep the modifier's defaults.
type ModifierSpec struct {
	Type string `yaml:"type"`
	Name string `yaml:"name,omitempty"`
	// Mode lists the contexts the modifier runs in: realtime, render, edit.
	Mode []string `yaml:"mode,omitempty"`

	Layer             string `yaml:"layer,omitempty"`
	InvertLayer       bool   `yaml:"invertLayer,omitempty"`
	Pass              int    `yaml:"pass,omitempty"`
	InvertPass        bool   `yaml:"invertPass,omitempty"`
	VertexGroup       string `yaml:"vertexGroup,omitempty"`
	InvertVertexGroup bool   `yaml:"invertVertexGroup,omitempty"`

	Factor *float64  `yaml:"factor,omitempty"`
	Flags  []string  `yaml:"flags,omitempty"`
	Step   int       `yaml:"step,omitempty"`
	Seed   uint64    `yaml:"seed,omitempty"`
	Level  int       `yaml:"level,omitempty"`
	Simple *bool     `yaml:"simple,omitempty"`
	Fixed  bool      `yaml:"fixed,omitempty"`
	Delta  float64   `yaml:"delta,omitempty"`
	Width  int       `yaml:"width,omitempty"`
	Color  []float64 `yaml:"color,omitempty"`
	HSV    []float64 `yaml:"hsv,omitempty"`

	Lattice  string    `yaml:"lattice,omitempty"`
	Count    int       `yaml:"count,omitempty"`
	Offset   []float64 `yaml:"offset,omitempty"`
	Rotation []float64 `yaml:"rotation,omitempty"` // degrees
	Scale    []float64 `yaml:"scale,omitempty"`

	RandomRotation float64 `yaml:"randomRotation,omitempty"`
	RandomSize     float64 `yaml:"randomSize,omitempty"`

	Start   int    `yaml:"start,omitempty"`
	Length  int    `yaml:"length,omitempty"`
	Ease    string `yaml:"ease,omitempty"`
	Reverse bool   `yaml:"reverse,omitempty"`
}

func (p *Preset) normalize() {
	if p.Version == 0 {
		p.Version = 1
	}
	if p.Name == "" {
		p.Name = "preset"
	}
	for i := range p.Modifiers {
		m := &p.Modifiers[i]
		m.Type = strings.ToLower(strings.TrimSpace(m.Type))
		if m.Name == "" {
			m.Name = fmt.Sprintf("%s.%03d", m.Type, i)
		}
	}
}

// LoadPreset parses a YAML preset.
func LoadPreset(data []byte) (Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("quill: parse preset: %w", err)
	}
	p.normalize()
	if p.Version != 1 {
		return Preset{}, fmt.Errorf("quill: parse preset: unsupported version %d", p.Version)
	}
	return p, nil
}

// LoadPresetFile reads and parses a YAML preset from path.
func LoadPresetFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("quill: read preset: %w", err)
	}
	return LoadPreset(data)
}

// WritePreset encodes p as YAML with two-space indentation.
func WritePreset(w io.Writer, p Preset) error {
	p.normalize()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&p); err != nil {
		return fmt.Errorf("quill: encode preset: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("quill: close preset: %w", err)
	}
	return nil
}

// LoadStack parses a YAML preset and builds its modifier stack. When o is
// non-nil, vertex groups the object does not define are logged.
func LoadStack(data []byte, o *Object) (Stack, error) {
	p, err := LoadPreset(data)
	if err != nil {
		return nil, err
	}
	return p.Build(o)
}

// Build instantiates the preset's modifiers in order.
func (p Preset) Build(o *Object) (Stack, error) {
	st := make(Stack, 0, len(p.Modifiers))
	for i := range p.Modifiers {
		m, err := p.Modifiers[i].build()
		if err != nil {
			return nil, fmt.Errorf("quill: preset %q modifier %d: %w", p.Name, i, err)
		}
		if g := m.Common().VertexGroup; g != "" && o != nil && o.VertexGroupIndex(g) < 0 {
			log.Printf("quill: preset %q: object %q has no vertex group %q", p.Name, o.Name, g)
		}
		st = append(st, m)
	}
	return st, nil
}

func (ms *ModifierSpec) build() (Modifier, error) {
	var m Modifier
	switch ms.Type {
	case "noise":
		n := NewNoiseModifier(ms.Name)
		setFactor(&n.Factor, ms.Factor)
		if len(ms.Flags) > 0 {
			f, err := parseFlags(ms.Flags, noiseFlagNames)
			if err != nil {
				return nil, err
			}
			n.Flags = NoiseFlags(f)
		}
		if ms.Step > 0 {
			n.Step = ms.Step
		}
		if ms.Seed != 0 {
			n.Reseed(ms.Seed)
		}
		m = n
	case "subdiv":
		s := NewSubdivModifier(ms.Name)
		if ms.Level > 0 {
			s.Level = ms.Level
		}
		if ms.Simple != nil {
			s.Simple = *ms.Simple
		}
		m = s
	case "simplify":
		s := NewSimplifyModifier(ms.Name)
		setFactor(&s.Factor, ms.Factor)
		if ms.Fixed {
			s.Mode = SimplifyFixed
		}
		if ms.Step > 0 {
			s.Step = ms.Step
		}
		m = s
	case "thickness":
		t := NewThicknessModifier(ms.Name)
		t.Delta = ms.Delta
		if ms.Width > 0 {
			t.Normalize = true
			t.Thickness = ms.Width
		}
		m = t
	case "tint":
		t := NewTintModifier(ms.Name)
		setFactor(&t.Factor, ms.Factor)
		if len(ms.Color) > 0 {
			c, err := parseColor(ms.Color)
			if err != nil {
				return nil, err
			}
			t.Color = c
		}
		m = t
	case "color":
		c := NewColorModifier(ms.Name)
		if len(ms.HSV) > 0 {
			if len(ms.HSV) != 3 {
				return nil, fmt.Errorf("hsv needs 3 values, got %d", len(ms.HSV))
			}
			copy(c.HSV[:], ms.HSV)
		}
		m = c
	case "opacity":
		op := NewOpacityModifier(ms.Name)
		setFactor(&op.Factor, ms.Factor)
		m = op
	case "lattice":
		if ms.Lattice == "" {
			return nil, fmt.Errorf("lattice modifier needs a lattice name")
		}
		l := NewLatticeModifier(ms.Name, ms.Lattice)
		setFactor(&l.Strength, ms.Factor)
		m = l
	case "dupli":
		d := NewDupliModifier(ms.Name)
		if ms.Count > 0 {
			d.Count = ms.Count
		}
		var err error
		if d.Offset, err = parseVec3(ms.Offset, d.Offset); err != nil {
			return nil, fmt.Errorf("offset: %w", err)
		}
		if d.Rotation, err = parseVec3(ms.Rotation, Vec3{}); err != nil {
			return nil, fmt.Errorf("rotation: %w", err)
		}
		d.Rotation = d.Rotation.Scale(math.Pi / 180)
		if d.Scale, err = parseVec3(ms.Scale, d.Scale); err != nil {
			return nil, fmt.Errorf("scale: %w", err)
		}
		if ms.RandomRotation > 0 {
			d.RandomRotation, d.RandRot = true, ms.RandomRotation
		}
		if ms.RandomSize > 0 {
			d.RandomSize, d.RandSize = true, ms.RandomSize
		}
		if ms.Seed != 0 {
			d.Reseed(ms.Seed)
		}
		m = d
	case "smooth":
		s := NewSmoothModifier(ms.Name)
		setFactor(&s.Factor, ms.Factor)
		if len(ms.Flags) > 0 {
			f, err := parseFlags(ms.Flags, smoothFlagNames)
			if err != nil {
				return nil, err
			}
			s.Flags = SmoothFlags(f)
		}
		if ms.Step > 0 {
			s.Steps = ms.Step
		}
		m = s
	case "offset":
		o := NewOffsetModifier(ms.Name)
		var err error
		if o.Location, err = parseVec3(ms.Offset, Vec3{}); err != nil {
			return nil, fmt.Errorf("offset: %w", err)
		}
		if o.Rotation, err = parseVec3(ms.Rotation, Vec3{}); err != nil {
			return nil, fmt.Errorf("rotation: %w", err)
		}
		o.Rotation = o.Rotation.Scale(math.Pi / 180)
		if o.Scale, err = parseVec3(ms.Scale, o.Scale); err != nil {
			return nil, fmt.Errorf("scale: %w", err)
		}
		m = o
	case "build":
		b := NewBuildModifier(ms.Name)
		if ms.Start != 0 {
			b.StartFrame = ms.Start
		}
		if ms.Length > 0 {
			b.Length = ms.Length
		}
		if ms.Ease != "" {
			fn, ok := easeFuncs[ms.Ease]
			if !ok {
				return nil, fmt.Errorf("unknown ease %q", ms.Ease)
			}
			b.Ease = fn
		}
		b.Reverse = ms.Reverse
		m = b
	default:
		return nil, fmt.Errorf("unknown modifier type %q", ms.Type)
	}

	base := m.Common()
	if len(ms.Mode) > 0 {
		mode, err := parseFlags(ms.Mode, modeNames)
		if err != nil {
			return nil, err
		}
		base.Mode = ModifierMode(mode)
	}
	base.LayerName = ms.Layer
	base.InvertLayer = ms.InvertLayer
	base.PassIndex = ms.Pass
	base.InvertPass = ms.InvertPass
	base.VertexGroup = ms.VertexGroup
	base.InvertVertexGroup = ms.InvertVertexGroup
	return m, nil
}

var (
	noiseFlagNames = map[string]uint8{
		"location":    uint8(NoiseLocation),
		"strength":    uint8(NoiseStrength),
		"thickness":   uint8(NoiseThickness),
		"fullStroke":  uint8(NoiseFullStroke),
		"moveExtreme": uint8(NoiseMoveExtreme),
		"random":      uint8(NoiseRandom),
	}
	smoothFlagNames = map[string]uint8{
		"location":  uint8(SmoothLocation),
		"strength":  uint8(SmoothStrength),
		"thickness": uint8(SmoothThickness),
	}
	modeNames = map[string]uint8{
		"realtime": uint8(ModeRealtime),
		"render":   uint8(ModeRender),
		"edit":     uint8(ModeEditMode),
	}
	easeFuncs = map[string]ease.TweenFunc{
		"linear":       ease.Linear,
		"inQuad":       ease.InQuad,
		"outQuad":      ease.OutQuad,
		"inOutQuad":    ease.InOutQuad,
		"inCubic":      ease.InCubic,
		"outCubic":     ease.OutCubic,
		"inOutCubic":   ease.InOutCubic,
		"outBounce":    ease.OutBounce,
		"outElastic":   ease.OutElastic,
		"inOutSine":    ease.InOutSine,
		"outExpo":      ease.OutExpo,
		"inOutBack":    ease.InOutBack,
		"outCirc":      ease.OutCirc,
		"inOutQuart":   ease.InOutQuart,
		"inOutQuint":   ease.InOutQuint,
		"inOutBounce":  ease.InOutBounce,
		"inOutElastic": ease.InOutElastic,
	}
)

func parseFlags(names []string, table map[string]uint8) (uint8, error) {
	var f uint8
	for _, n := range names {
		v, ok := table[n]
		if !ok {
			return 0, fmt.Errorf("unknown flag %q", n)
		}
		f |= v
	}
	return f, nil
}

func setFactor(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func parseColor(v []float64) (Color, error) {
	switch len(v) {
	case 3:
		return Color{v[0], v[1], v[2], 1}.clamp(), nil
	case 4:
		return Color{v[0], v[1], v[2], v[3]}.clamp(), nil
	}
	return Color{}, fmt.Errorf("color needs 3 or 4 values, got %d", len(v))
}

func parseVec3(v []float64, def Vec3) (Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return Vec3{v[0], v[1], v[2]}, nil
	}
	return Vec3{}, fmt.Errorf("need 3 values, got %d", len(v))
}
