package quill

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a cache lifecycle event.
type EventType uint8

const (
	// EventCacheRebuilt fires after Populate rebuilt an object's batches.
	EventCacheRebuilt EventType = iota
	// EventDirtyAll fires after every datablock was flagged dirty.
	EventDirtyAll
	// EventModifierAdded fires after AddModifier.
	EventModifierAdded
)

// CacheEvent carries cache lifecycle data for the optional ECS bridge.
type CacheEvent struct {
	Type      EventType
	Object    uuid.UUID
	Datablock uuid.UUID
	Frame     int
	Strokes   int // strokes processed (Populate only)
	Batches   int // batches built (Populate only)
}

// EventSink receives cache events. When set on a Scene, rebuild and
// invalidation events are forwarded to it.
type EventSink interface {
	EmitEvent(event CacheEvent)
}

// Object places a datablock in the scene and owns its modifier stack.
type Object struct {
	ID   uuid.UUID
	Name string
	Data *Datablock

	// VertexGroups names the groups that point weights refer to by index.
	VertexGroups []string
	Modifiers    Stack
	// Lattices builds deform caches for lattice modifiers. Optional.
	Lattices LatticeProvider
}

// NewObject returns an object wrapping data with a fresh ID.
func NewObject(name string, data *Datablock) *Object {
	return &Object{ID: uuid.New(), Name: name, Data: data}
}

// VertexGroupIndex returns the index of the named group, or -1.
func (o *Object) VertexGroupIndex(name string) int {
	for i, g := range o.VertexGroups {
		if g == name {
			return i
		}
	}
	return -1
}

// AddVertexGroup registers name and returns its index. Existing names
// return their current index.
func (o *Object) AddVertexGroup(name string) int {
	if i := o.VertexGroupIndex(name); i >= 0 {
		return i
	}
	o.VertexGroups = append(o.VertexGroups, name)
	return len(o.VertexGroups) - 1
}

// Scene is the evaluation context: the objects, the current scene frame
// and the render mode.
type Scene struct {
	objects []*Object
	frame   int
	render  bool
	sink    EventSink
	debug   bool
}

// NewScene creates an empty scene at frame 1.
func NewScene() *Scene {
	return &Scene{frame: 1}
}

// AddObject adds o to the scene.
func (s *Scene) AddObject(o *Object) {
	s.objects = append(s.objects, o)
}

// RemoveObject removes o and drops the derived frames it staged.
func (s *Scene) RemoveObject(o *Object) {
	for i, c := range s.objects {
		if c != o {
			continue
		}
		s.objects = append(s.objects[:i], s.objects[i+1:]...)
		if o.Data != nil {
			for _, l := range o.Data.layers {
				delete(l.derived, o.ID)
			}
		}
		return
	}
}

// Objects returns the scene's objects. The returned slice MUST NOT be mutated.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Frame returns the current scene frame.
func (s *Scene) Frame() int { return s.frame }

// SetFrame moves the scene to frame. Caches built for another frame become
// invalid on their next access.
func (s *Scene) SetFrame(frame int) { s.frame = frame }

// SetRenderMode selects render enablement of modifiers instead of realtime.
func (s *Scene) SetRenderMode(render bool) {
	if s.render != render {
		s.render = render
		s.DirtyAll()
	}
}

// SetEventSink sets the optional ECS bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables per-Populate statistics on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// AddModifier appends m to o's stack. Every cache in the scene is dirtied,
// since the stack change is not tracked per datablock.
func (s *Scene) AddModifier(o *Object, m Modifier) {
	o.Modifiers = append(o.Modifiers, m)
	s.DirtyAll()
	s.emit(CacheEvent{Type: EventModifierAdded, Object: o.ID, Frame: s.frame})
}

// DirtyAll flags the datablock of every object dirty so each cache rebuilds
// on its next access.
func (s *Scene) DirtyAll() {
	for _, o := range s.objects {
		if o.Data != nil {
			o.Data.MarkDirty()
		}
	}
	s.emit(CacheEvent{Type: EventDirtyAll, Frame: s.frame})
}

func (s *Scene) emit(e CacheEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
}

// --- Populate ---

// Populate returns o's batch cache for the current frame, rebuilding it
// when invalid. Hidden layers are skipped. Each visible layer's frame is
// copied into a derived frame keyed by o.ID, run through the frame then
// stroke modifiers, and turned into outline, fill and (in edit mode) edit
// batches.
func (s *Scene) Populate(o *Object) *BatchCache {
	d := o.Data
	if d == nil {
		return nil
	}
	c := d.BatchCache(s.frame)
	if !c.IsDirty {
		return c
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	editMode := d.Flags&DatablockEditMode != 0
	ctx := &EvalContext{
		Object:     o,
		Datablock:  d,
		SceneFrame: s.frame,
		Render:     s.render,
		EditMode:   editMode,
	}
	o.Modifiers.initLattices(ctx)
	for _, m := range o.Modifiers {
		if dm, ok := m.(*DupliModifier); ok {
			dm.Reset()
		}
	}

	for _, l := range d.layers {
		// a layer that is hidden or has no frame keeps no derived frame
		delete(l.derived, o.ID)
		if l.Hidden() {
			continue
		}
		f := l.GetFrame(s.frame, FrameReadOnly)
		if f == nil {
			continue
		}
		df := derive(d, f)
		l.SetDerivedFrame(o.ID, df)

		if s.debug {
			stats.modifierStart = time.Now()
		}
		o.Modifiers.ApplyFrame(ctx, l, df)
		o.Modifiers.ApplyStrokes(ctx, l, df)
		if s.debug {
			stats.modifierTime += time.Since(stats.modifierStart)
		}
		stats.points += df.TotalPoints()

		for _, st := range df.Strokes {
			if !st.Drawable() {
				continue
			}
			stats.strokes++
			stats.batches += populateStroke(c, l, st, editMode)
		}
	}

	o.Modifiers.clearLattices()
	c.IsDirty = false

	if s.debug {
		stats.total = time.Since(t0)
		stats.slots = c.Slots()
		stats.triangles = countTriangles(c)
		s.debugLog(o, stats)
	}
	s.emit(CacheEvent{
		Type:      EventCacheRebuilt,
		Object:    o.ID,
		Datablock: d.ID,
		Frame:     s.frame,
		Strokes:   stats.strokes,
		Batches:   stats.batches,
	})
	return c
}

// derive copies f for modifier evaluation. Every copied stroke gets a
// private copy of its resolved color, so color modifiers never touch the
// palette.
func derive(d *Datablock, f *Frame) *Frame {
	df := f.Duplicate()
	for i, st := range df.Strokes {
		if col := f.Strokes[i].ResolveColor(d); col != nil {
			cc := *col
			st.Color = &cc
		}
		st.Flags &^= StrokeRecalcColor
	}
	return df
}

// populateStroke fills the next cache slot from st and returns the number
// of batches built.
func populateStroke(c *BatchCache, l *Layer, st *Stroke, editMode bool) int {
	slot := c.nextSlot()
	strokeCol, fillCol := ColorBlack, Color{}
	fillOnly := false
	if st.Color != nil {
		strokeCol, fillCol = st.Color.Stroke, st.Color.Fill
		fillOnly = st.Color.Flags&ColorFillOnly != 0
	}
	strokeCol = layerTint(strokeCol, l)
	fillCol = layerTint(fillCol, l)

	n := 0
	if !fillOnly {
		if b := buildStrokeBatch(st, strokeCol, l.Opacity); b != nil {
			c.Stroke[slot] = b
			n++
		}
	}
	if len(st.Points) >= 3 && fillCol.A > 0 {
		if b := buildFillBatch(st, fillCol, l.Opacity); b != nil {
			c.Fill[slot] = b
			n++
		}
	}
	if editMode {
		if b := buildEditBatch(st); b != nil {
			c.Edit[slot] = b
			n++
		}
		if b := buildEditLinesBatch(st); b != nil {
			c.EditLines[slot] = b
			n++
		}
	}
	return n
}

// layerTint mixes the layer tint into c by the tint's alpha.
func layerTint(c Color, l *Layer) Color {
	if l.Tint.A <= 0 {
		return c
	}
	return Color{
		lerp(c.R, l.Tint.R, l.Tint.A),
		lerp(c.G, l.Tint.G, l.Tint.A),
		lerp(c.B, l.Tint.B, l.Tint.A),
		c.A,
	}.clamp()
}
