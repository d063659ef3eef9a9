package quill

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-Populate timing and geometry counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	modifierStart time.Time
	modifierTime  time.Duration
	total         time.Duration
	strokes       int
	points        int
	batches       int
	triangles     int
	slots         int
}

// debugLog prints Populate stats to stderr.
func (s *Scene) debugLog(o *Object, stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[quill] populate %q frame %d | modifiers: %v | total: %v\n",
		o.Name, s.frame, stats.modifierTime, stats.total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[quill] strokes: %d | points: %d | batches: %d | triangles: %d | slots: %d\n",
		stats.strokes, stats.points, stats.batches, stats.triangles, stats.slots)
	debugCheckSlots(o, stats.slots)
}

// debugMaxSlots is the slot count above which a cache is reported as large.
const debugMaxSlots = 4096

func debugCheckSlots(o *Object, slots int) {
	if slots > debugMaxSlots {
		_, _ = fmt.Fprintf(os.Stderr, "[quill] warning: object %q uses %d cache slots (threshold %d)\n",
			o.Name, slots, debugMaxSlots)
	}
}

// countTriangles sums the triangles of every batch in the cache.
func countTriangles(c *BatchCache) int {
	n := 0
	for i := 0; i < c.Used(); i++ {
		n += c.Stroke[i].Triangles() + c.Fill[i].Triangles() +
			c.Edit[i].Triangles() + c.EditLines[i].Triangles()
	}
	return n
}
