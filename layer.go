package quill

import (
	"log"
	"sort"

	"github.com/google/uuid"
)

// LayerFlags holds per-layer state bits.
type LayerFlags uint16

const (
	LayerHidden LayerFlags = 1 << iota
	LayerLocked
	// LayerFrameLock pins the active frame regardless of the requested time.
	LayerFrameLock
	// LayerOnion enables onion skinning for the layer.
	LayerOnion
	LayerSelected
)

// FrameMode selects how GetFrame treats a time with no frame.
type FrameMode uint8

const (
	// FrameReadOnly never creates frames.
	FrameReadOnly FrameMode = iota
	// FrameAddNew creates an empty frame at the requested time.
	FrameAddNew
	// FrameAddCopy clones the nearest preceding frame to the requested time.
	FrameAddCopy
)

// Layer is an independently visible, lockable channel of frames.
type Layer struct {
	Name    string
	Flags   LayerFlags
	Opacity float64
	Tint    Color

	frames []*Frame // sorted by Number, unique
	active int      // index into frames, -1 when unset

	// derived holds per-object staging frames built by the modifier stack.
	derived map[uuid.UUID]*Frame
}

// NewLayer returns a visible, unlocked layer with full opacity.
func NewLayer(name string) *Layer {
	return &Layer{Name: name, Opacity: 1, active: -1}
}

// Frames returns the layer's frames in time order. The slice must not be
// modified.
func (l *Layer) Frames() []*Frame { return l.frames }

// ActiveFrame returns the cached active frame, or nil.
func (l *Layer) ActiveFrame() *Frame {
	if l.active < 0 || l.active >= len(l.frames) {
		return nil
	}
	return l.frames[l.active]
}

// SetActiveFrame makes f the active frame. Frames not owned by the layer
// are ignored.
func (l *Layer) SetActiveFrame(f *Frame) {
	if i := l.indexOf(f); i >= 0 {
		l.active = i
	}
}

// Hidden reports whether the layer is hidden.
func (l *Layer) Hidden() bool { return l.Flags&LayerHidden != 0 }

// Editable reports whether strokes on the layer may be edited: the layer is
// visible, unlocked and not fully transparent.
func (l *Layer) Editable() bool {
	return l.Flags&(LayerHidden|LayerLocked) == 0 && l.Opacity > 0.001
}

// FrameAt returns the frame at exactly number, or nil.
func (l *Layer) FrameAt(number int) *Frame {
	i := l.search(number)
	if i < len(l.frames) && l.frames[i].Number == number {
		return l.frames[i]
	}
	return nil
}

// search returns the index of the first frame with Number >= number.
func (l *Layer) search(number int) int {
	return sort.Search(len(l.frames), func(i int) bool {
		return l.frames[i].Number >= number
	})
}

func (l *Layer) indexOf(f *Frame) int {
	if f == nil {
		return -1
	}
	i := l.search(f.Number)
	if i < len(l.frames) && l.frames[i] == f {
		return i
	}
	return -1
}

// insert places f in time order and keeps the active index pointing at the
// same frame.
func (l *Layer) insert(f *Frame) int {
	i := l.search(f.Number)
	l.frames = append(l.frames, nil)
	copy(l.frames[i+1:], l.frames[i:])
	l.frames[i] = f
	if l.active >= i {
		l.active++
	}
	return i
}

// AddFrame creates an empty frame at number and makes it active. If a frame
// already exists there it is returned unchanged.
func (l *Layer) AddFrame(number int) *Frame {
	if f := l.FrameAt(number); f != nil {
		log.Printf("quill: frame %d already exists on layer %q, not adding", number, l.Name)
		return f
	}
	f := &Frame{Number: number}
	l.active = l.insert(f)
	return f
}

// AddCopyFrame duplicates the active frame to number and makes the copy
// active. Without an active frame it behaves like AddFrame.
func (l *Layer) AddCopyFrame(number int) *Frame {
	src := l.ActiveFrame()
	if src == nil {
		return l.AddFrame(number)
	}
	return l.copyFrame(src, number)
}

func (l *Layer) copyFrame(src *Frame, number int) *Frame {
	if f := l.FrameAt(number); f != nil {
		log.Printf("quill: frame %d already exists on layer %q, not copying", number, l.Name)
		return f
	}
	f := src.Duplicate()
	f.Number = number
	f.Flags &^= FramePaint
	l.active = l.insert(f)
	return f
}

// DeleteFrame removes f from the layer. The previous frame becomes active
// when f was active.
func (l *Layer) DeleteFrame(f *Frame) bool {
	i := l.indexOf(f)
	if i < 0 {
		return false
	}
	l.frames = append(l.frames[:i], l.frames[i+1:]...)
	switch {
	case l.active == i:
		l.active = i - 1
		if l.active < 0 && len(l.frames) > 0 {
			l.active = 0
		}
	case l.active > i:
		l.active--
	}
	return true
}

// GetFrame returns the frame to show or edit at number, updating the active
// frame.
//
// With an active frame the search walks forward from it when number is
// ahead and backward otherwise. Without one it scans from whichever end of
// the list is numerically closer. A frame-locked layer, or an active frame
// that is being painted into, is returned unchanged. In read-only mode the
// nearest frame at or before number is used; if number precedes every frame
// the first frame is returned (or nil when nothing was active).
func (l *Layer) GetFrame(number int, mode FrameMode) *Frame {
	if act := l.ActiveFrame(); act != nil {
		if l.Flags&LayerFrameLock != 0 || act.Flags&FramePaint != 0 {
			return act
		}
		var prev int
		found := false
		if act.Number < number {
			// Forward: stop on an exact match or before the first frame past number.
			prev = len(l.frames) - 1
			for i := l.active; i < len(l.frames); i++ {
				if l.frames[i].Number == number || (i+1 < len(l.frames) && l.frames[i+1].Number > number) {
					prev, found = i, true
					break
				}
			}
		} else {
			prev = 0
			for i := l.active; i >= 0; i-- {
				if l.frames[i].Number <= number {
					prev, found = i, true
					break
				}
			}
		}
		return l.resolve(number, mode, prev, found)
	}

	if len(l.frames) == 0 {
		if mode != FrameReadOnly {
			return l.AddFrame(number)
		}
		return nil
	}

	first := l.frames[0].Number
	last := l.frames[len(l.frames)-1].Number
	prev, found := -1, false
	if absInt(number-first) > absInt(number-last) {
		for i := len(l.frames) - 1; i >= 0; i-- {
			if l.frames[i].Number <= number {
				prev, found = i, true
				break
			}
		}
	} else {
		for i := 0; i < len(l.frames) && l.frames[i].Number <= number; i++ {
			prev, found = i, true
		}
	}
	if !found && mode == FrameReadOnly {
		return nil
	}
	if !found {
		return l.AddFrame(number)
	}
	return l.resolve(number, mode, prev, true)
}

// resolve applies mode to the frame found at index prev.
func (l *Layer) resolve(number int, mode FrameMode, prev int, found bool) *Frame {
	f := l.frames[prev]
	switch {
	case found && f.Number == number:
		l.active = prev
	case mode == FrameAddCopy:
		if f.Number < number {
			return l.copyFrame(f, number)
		}
		return l.AddCopyFrame(number)
	case mode == FrameAddNew:
		return l.AddFrame(number)
	default:
		l.active = prev
	}
	return l.frames[l.active]
}

// --- Derived frames ---

// DerivedFrame returns the staged frame for key, or nil.
func (l *Layer) DerivedFrame(key uuid.UUID) *Frame {
	return l.derived[key]
}

// SetDerivedFrame stores f as the staged frame for key.
func (l *Layer) SetDerivedFrame(key uuid.UUID, f *Frame) {
	if l.derived == nil {
		l.derived = make(map[uuid.UUID]*Frame)
	}
	l.derived[key] = f
}

// ClearDerived drops every staged frame.
func (l *Layer) ClearDerived() {
	clear(l.derived)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
