package quill

import "github.com/google/uuid"

// DatablockFlags holds datablock state bits.
type DatablockFlags uint8

const (
	// DatablockDirty forces the batch cache to rebuild on next access.
	DatablockDirty DatablockFlags = 1 << iota
	// DatablockEditMode marks stroke edit mode. Caches are never reused
	// while it is set.
	DatablockEditMode
)

// Datablock is the top-level container of layers. It owns the derived
// batch cache, whose lifetime matches the datablock's.
type Datablock struct {
	ID      uuid.UUID
	Name    string
	Flags   DatablockFlags
	Palette *Palette

	layers      []*Layer
	activeLayer int

	cache *BatchCache
}

// NewDatablock creates an empty datablock with its own palette.
func NewDatablock(name string) *Datablock {
	return &Datablock{
		ID:          uuid.New(),
		Name:        name,
		Flags:       DatablockDirty,
		Palette:     NewPalette(),
		activeLayer: -1,
	}
}

// Layers returns the datablock's layers in draw order.
func (d *Datablock) Layers() []*Layer { return d.layers }

// AddLayer appends a new layer. When setActive is true it becomes the
// active layer.
func (d *Datablock) AddLayer(name string, setActive bool) *Layer {
	l := NewLayer(name)
	d.layers = append(d.layers, l)
	if setActive || d.activeLayer < 0 {
		d.activeLayer = len(d.layers) - 1
	}
	d.MarkDirty()
	return l
}

// RemoveLayer deletes l. If it was active, the layer below it (or the new
// first layer) becomes active.
func (d *Datablock) RemoveLayer(l *Layer) bool {
	for i, o := range d.layers {
		if o != l {
			continue
		}
		d.layers = append(d.layers[:i], d.layers[i+1:]...)
		switch {
		case len(d.layers) == 0:
			d.activeLayer = -1
		case d.activeLayer == i:
			d.activeLayer = max(i-1, 0)
		case d.activeLayer > i:
			d.activeLayer--
		}
		d.MarkDirty()
		return true
	}
	return false
}

// ActiveLayer returns the active layer, or nil.
func (d *Datablock) ActiveLayer() *Layer {
	if d.activeLayer < 0 || d.activeLayer >= len(d.layers) {
		return nil
	}
	return d.layers[d.activeLayer]
}

// SetActiveLayer makes l active. Layers not owned by d are ignored.
func (d *Datablock) SetActiveLayer(l *Layer) {
	for i, o := range d.layers {
		if o == l {
			d.activeLayer = i
			return
		}
	}
}

// LayerByName returns the first layer named name, or nil.
func (d *Datablock) LayerByName(name string) *Layer {
	for _, l := range d.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// MarkDirty invalidates the batch cache.
func (d *Datablock) MarkDirty() { d.Flags |= DatablockDirty }

// IsDirty reports whether the batch cache must be rebuilt.
func (d *Datablock) IsDirty() bool { return d.Flags&DatablockDirty != 0 }

// SetEditMode toggles stroke edit mode.
func (d *Datablock) SetEditMode(on bool) {
	if on {
		d.Flags |= DatablockEditMode
	} else {
		d.Flags &^= DatablockEditMode
	}
}

// ResolveColor implements ColorResolver through the datablock palette.
func (d *Datablock) ResolveColor(name string) *ColorDef {
	if d.Palette == nil {
		return nil
	}
	return d.Palette.ResolveColor(name)
}

// RefreshColors re-resolves every stroke's cached color pointer. Called when
// palette entries change.
func (d *Datablock) RefreshColors() {
	for _, l := range d.layers {
		for _, f := range l.frames {
			for _, s := range f.Strokes {
				s.Flags |= StrokeRecalcColor
				s.ResolveColor(d)
			}
		}
	}
	d.MarkDirty()
}
