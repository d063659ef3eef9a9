package quill

// FrameFlags holds per-frame state bits.
type FrameFlags uint8

const (
	// FramePaint is set while strokes are being drawn into the frame. A
	// layer whose active frame carries it refuses time changes.
	FramePaint FrameFlags = 1 << iota
	FrameSelected
)

// Frame holds the strokes of one layer at one integer time.
type Frame struct {
	Number  int
	Flags   FrameFlags
	Strokes []*Stroke
}

// AddStroke appends s to the frame and returns it.
func (f *Frame) AddStroke(s *Stroke) *Stroke {
	f.Strokes = append(f.Strokes, s)
	return s
}

// RemoveStroke deletes s from the frame. The frame itself is kept even when
// it becomes empty.
func (f *Frame) RemoveStroke(s *Stroke) bool {
	for i, o := range f.Strokes {
		if o == s {
			f.Strokes = append(f.Strokes[:i], f.Strokes[i+1:]...)
			return true
		}
	}
	return false
}

// Duplicate deep-copies the frame and every stroke in it. Copied strokes are
// flagged for recalculation.
func (f *Frame) Duplicate() *Frame {
	d := &Frame{Number: f.Number, Flags: f.Flags}
	if len(f.Strokes) > 0 {
		d.Strokes = make([]*Stroke, len(f.Strokes))
		for i, s := range f.Strokes {
			d.Strokes[i] = s.Duplicate()
		}
	}
	return d
}

// TotalPoints returns the number of points across all strokes.
func (f *Frame) TotalPoints() int {
	n := 0
	for _, s := range f.Strokes {
		n += len(s.Points)
	}
	return n
}
