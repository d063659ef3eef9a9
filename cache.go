package quill

// batchSlotChunk is both the baseline slot count and the growth step of a
// BatchCache.
const batchSlotChunk = 8

// BatchCache holds the derived draw geometry of one datablock for one
// frame. Slot i of each array belongs to the i-th processed stroke. The
// draw engine reads the batches; it never mutates them.
type BatchCache struct {
	Stroke    []*Batch // outlines
	Fill      []*Batch
	Edit      []*Batch // edit-mode point overlay
	EditLines []*Batch // edit-mode line overlay

	// Frame is the scene frame the cache was built for.
	Frame int
	// IsDirty is set on (re)initialization and cleared once populated.
	IsDirty bool

	next int // first unused slot
}

// newBatchCache returns a cache with the baseline slot count.
func newBatchCache(frame int) *BatchCache {
	c := &BatchCache{}
	c.init(frame)
	return c
}

func (c *BatchCache) init(frame int) {
	c.Stroke = make([]*Batch, batchSlotChunk)
	c.Fill = make([]*Batch, batchSlotChunk)
	c.Edit = make([]*Batch, batchSlotChunk)
	c.EditLines = make([]*Batch, batchSlotChunk)
	c.next = 0
	c.Frame = frame
	c.IsDirty = true
}

// clear frees every batch handle.
func (c *BatchCache) clear() {
	c.Stroke = nil
	c.Fill = nil
	c.Edit = nil
	c.EditLines = nil
	c.next = 0
}

// Slots returns the number of slots allocated per product.
func (c *BatchCache) Slots() int { return len(c.Stroke) }

// Used returns the number of slots filled since the last rebuild.
func (c *BatchCache) Used() int { return c.next }

// nextSlot returns the index of a free slot, growing every array by a
// whole chunk when full.
func (c *BatchCache) nextSlot() int {
	if c.next >= len(c.Stroke) {
		grow := len(c.Stroke) + batchSlotChunk
		c.Stroke = growSlots(c.Stroke, grow)
		c.Fill = growSlots(c.Fill, grow)
		c.Edit = growSlots(c.Edit, grow)
		c.EditLines = growSlots(c.EditLines, grow)
	}
	i := c.next
	c.next++
	return i
}

func growSlots(s []*Batch, n int) []*Batch {
	g := make([]*Batch, n)
	copy(g, s)
	return g
}

// --- Validity ---

// cacheValid reports whether the datablock's cache may be reused for frame.
// Edit mode caches are never reused.
func (d *Datablock) cacheValid(frame int) bool {
	c := d.cache
	if c == nil {
		return false
	}
	return c.Frame == frame &&
		!d.IsDirty() &&
		d.Flags&DatablockEditMode == 0 &&
		!c.IsDirty
}

// BatchCache returns the datablock's cache for frame. An invalid cache is
// cleared and reinitialized, which also clears the datablock dirty flag;
// callers then repopulate it while IsDirty is set.
func (d *Datablock) BatchCache(frame int) *BatchCache {
	if d.cacheValid(frame) {
		return d.cache
	}
	if d.cache == nil {
		d.cache = newBatchCache(frame)
	} else {
		d.cache.clear()
		d.cache.init(frame)
	}
	d.Flags &^= DatablockDirty
	return d.cache
}

// FreeCache drops the datablock's cache entirely.
func (d *Datablock) FreeCache() {
	if d.cache != nil {
		d.cache.clear()
		d.cache = nil
	}
}
