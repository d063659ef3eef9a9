package quill

import (
	"encoding/json"
	"fmt"
	"os"
)

// scriptStep is a single action in an edit script.
type scriptStep struct {
	Action string `json:"action"`

	Layer  string `json:"layer,omitempty"`
	Active bool   `json:"active,omitempty"`
	Frame  int    `json:"frame,omitempty"`
	// Mode is the GetFrame mode for "frame": read, new or copy.
	Mode string `json:"mode,omitempty"`

	Color     string      `json:"color,omitempty"`
	Thickness int         `json:"thickness,omitempty"`
	Cyclic    bool        `json:"cyclic,omitempty"`
	Points    [][]float64 `json:"points,omitempty"` // x, y, z[, pressure, strength]
	StrokeRGB []float64   `json:"stroke,omitempty"`
	FillRGB   []float64   `json:"fill,omitempty"`

	Stroke  int     `json:"index,omitempty"`
	Point   int     `json:"point,omitempty"`
	Group   string  `json:"group,omitempty"`
	Factor  float64 `json:"factor,omitempty"`
	Epsilon float64 `json:"epsilon,omitempty"`
	Edit    bool    `json:"edit,omitempty"`
}

// script is the top-level JSON structure of an edit script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays a recorded sequence of edits against an object:
//
//	{"steps": [
//	  {"action": "layer", "layer": "ink", "active": true},
//	  {"action": "frame", "frame": 1, "mode": "new"},
//	  {"action": "stroke", "color": "black", "thickness": 3,
//	   "points": [[0,0,0], [1,0,0], [0,1,0]]},
//	  {"action": "populate"}
//	]}
//
// Actions: layer, color, frame, stroke, weight, simplify, scene, edit,
// dirtyAll and populate.
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON edit script.
func LoadScript(jsonData []byte) (*Script, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("quill: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("quill: parse script: no steps")
	}
	return &Script{steps: sc.Steps}, nil
}

// LoadScriptFile reads and parses a JSON edit script from path.
func LoadScriptFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("quill: read script: %w", err)
	}
	return LoadScript(data)
}

// Len returns the number of steps.
func (sc *Script) Len() int { return len(sc.steps) }

// Run executes every step against o in scene s and returns the cache of the
// last populate step, or nil if there was none. Execution stops at the
// first failing step.
func (sc *Script) Run(s *Scene, o *Object) (*BatchCache, error) {
	if o.Data == nil {
		return nil, fmt.Errorf("quill: run script: object %q has no datablock", o.Name)
	}
	var cache *BatchCache
	for i := range sc.steps {
		st := &sc.steps[i]
		c, err := sc.step(s, o, st)
		if err != nil {
			return cache, fmt.Errorf("quill: script step %d (%s): %w", i, st.Action, err)
		}
		if c != nil {
			cache = c
		}
	}
	return cache, nil
}

func (sc *Script) step(s *Scene, o *Object, st *scriptStep) (*BatchCache, error) {
	d := o.Data
	switch st.Action {
	case "layer":
		l := d.LayerByName(st.Layer)
		if l == nil {
			l = d.AddLayer(st.Layer, st.Active)
		} else if st.Active {
			d.SetActiveLayer(l)
		}
	case "color":
		c := &ColorDef{Name: st.Color, Stroke: ColorBlack}
		var err error
		if len(st.StrokeRGB) > 0 {
			if c.Stroke, err = parseColor(st.StrokeRGB); err != nil {
				return nil, err
			}
		}
		if len(st.FillRGB) > 0 {
			if c.Fill, err = parseColor(st.FillRGB); err != nil {
				return nil, err
			}
		}
		d.Palette.Add(c)
		d.RefreshColors()
	case "frame":
		l, err := scriptLayer(d, st.Layer)
		if err != nil {
			return nil, err
		}
		mode, ok := frameModes[st.Mode]
		if !ok {
			return nil, fmt.Errorf("unknown frame mode %q", st.Mode)
		}
		if l.GetFrame(st.Frame, mode) == nil {
			return nil, fmt.Errorf("no frame at %d", st.Frame)
		}
		d.MarkDirty()
	case "stroke":
		f, err := scriptFrame(d, st.Layer)
		if err != nil {
			return nil, err
		}
		stroke := NewStroke(st.Color, max(st.Thickness, 1))
		if st.Cyclic {
			stroke.Flags |= StrokeCyclic
		}
		for _, v := range st.Points {
			p, err := scriptPoint(v)
			if err != nil {
				return nil, err
			}
			stroke.AppendPoint(p)
		}
		f.AddStroke(stroke)
		d.MarkDirty()
	case "weight":
		stroke, err := scriptStroke(d, st)
		if err != nil {
			return nil, err
		}
		if st.Point < 0 || st.Point >= len(stroke.Points) {
			return nil, fmt.Errorf("point %d out of range", st.Point)
		}
		g := o.AddVertexGroup(st.Group)
		if st.Factor <= 0 {
			stroke.RemoveWeight(st.Point, g)
		} else {
			stroke.SetWeight(st.Point, g, st.Factor)
		}
		d.MarkDirty()
	case "simplify":
		stroke, err := scriptStroke(d, st)
		if err != nil {
			return nil, err
		}
		SimplifyStroke(stroke, st.Epsilon)
		d.MarkDirty()
	case "scene":
		s.SetFrame(st.Frame)
	case "edit":
		d.SetEditMode(st.Edit)
	case "dirtyAll":
		s.DirtyAll()
	case "populate":
		return s.Populate(o), nil
	default:
		return nil, fmt.Errorf("unknown action")
	}
	return nil, nil
}

var frameModes = map[string]FrameMode{
	"":     FrameReadOnly,
	"read": FrameReadOnly,
	"new":  FrameAddNew,
	"copy": FrameAddCopy,
}

func scriptLayer(d *Datablock, name string) (*Layer, error) {
	if name == "" {
		if l := d.ActiveLayer(); l != nil {
			return l, nil
		}
		return nil, fmt.Errorf("no active layer")
	}
	if l := d.LayerByName(name); l != nil {
		return l, nil
	}
	return nil, fmt.Errorf("no layer %q", name)
}

func scriptFrame(d *Datablock, layer string) (*Frame, error) {
	l, err := scriptLayer(d, layer)
	if err != nil {
		return nil, err
	}
	f := l.ActiveFrame()
	if f == nil {
		return nil, fmt.Errorf("layer %q has no active frame", l.Name)
	}
	return f, nil
}

func scriptStroke(d *Datablock, st *scriptStep) (*Stroke, error) {
	f, err := scriptFrame(d, st.Layer)
	if err != nil {
		return nil, err
	}
	if st.Stroke < 0 || st.Stroke >= len(f.Strokes) {
		return nil, fmt.Errorf("stroke %d out of range", st.Stroke)
	}
	return f.Strokes[st.Stroke], nil
}

func scriptPoint(v []float64) (Point, error) {
	switch len(v) {
	case 2:
		return NewPoint(v[0], v[1], 0), nil
	case 3:
		return NewPoint(v[0], v[1], v[2]), nil
	case 5:
		p := NewPoint(v[0], v[1], v[2])
		p.Pressure, p.Strength = v[3], max(v[4], StrengthMin)
		return p, nil
	}
	return Point{}, fmt.Errorf("point needs 2, 3 or 5 values, got %d", len(v))
}
