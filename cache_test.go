package quill

import "testing"

func TestBatchCacheValidity(t *testing.T) {
	d := NewDatablock("d")
	c := d.BatchCache(1)
	if !c.IsDirty {
		t.Fatal("fresh cache should be dirty")
	}
	if d.IsDirty() {
		t.Error("reinitializing should clear the datablock dirty flag")
	}
	c.IsDirty = false

	if got := d.BatchCache(1); got != c || got.IsDirty {
		t.Error("clean cache for the same frame should be reused")
	}
	if got := d.BatchCache(2); !got.IsDirty || got.Frame != 2 {
		t.Error("another frame should reinitialize the cache")
	}
	c.IsDirty = false
	d.MarkDirty()
	if !d.BatchCache(2).IsDirty {
		t.Error("dirty datablock should reinitialize the cache")
	}
}

func TestBatchCacheEditModeNeverReused(t *testing.T) {
	d := NewDatablock("d")
	c := d.BatchCache(1)
	c.IsDirty = false
	d.SetEditMode(true)
	if !d.BatchCache(1).IsDirty {
		t.Error("edit mode cache should be rebuilt on every access")
	}
}

func TestBatchCacheGrowsByChunk(t *testing.T) {
	c := newBatchCache(1)
	if c.Slots() != batchSlotChunk {
		t.Fatalf("Slots = %d, want %d", c.Slots(), batchSlotChunk)
	}
	c.Stroke[0] = &Batch{}
	for i := 0; i < batchSlotChunk+1; i++ {
		if got := c.nextSlot(); got != i {
			t.Fatalf("nextSlot = %d, want %d", got, i)
		}
	}
	if c.Slots() != 2*batchSlotChunk {
		t.Errorf("Slots = %d, want %d", c.Slots(), 2*batchSlotChunk)
	}
	if len(c.Fill) != c.Slots() || len(c.Edit) != c.Slots() || len(c.EditLines) != c.Slots() {
		t.Error("all slot arrays should grow together")
	}
	if c.Stroke[0] == nil {
		t.Error("growth lost existing batches")
	}
	if c.Used() != batchSlotChunk+1 {
		t.Errorf("Used = %d", c.Used())
	}
}

func TestFreeCache(t *testing.T) {
	d := NewDatablock("d")
	c := d.BatchCache(1)
	d.FreeCache()
	if c.Slots() != 0 {
		t.Error("FreeCache should release the slot arrays")
	}
	if d.BatchCache(1) == c {
		t.Error("a freed cache should not be returned again")
	}
}
