package quill

// OnionMode selects which neighbouring frames are ghosted.
type OnionMode uint8

const (
	// OnionAbsolute ghosts frames within Before/After scene frames.
	OnionAbsolute OnionMode = iota
	// OnionRelative ghosts the Before/After nearest keyframes.
	OnionRelative
	// OnionSelected ghosts every selected frame.
	OnionSelected
)

// onionMinAlpha is the floor of every ghost alpha.
const onionMinAlpha = 0.01

// OnionConfig configures onion skinning for a layer.
type OnionConfig struct {
	Mode   OnionMode
	Before int // frames (absolute) or keyframes (relative) before
	After  int
	// Factor shifts every ghost alpha by Factor-0.5. When NoFade is set
	// all ghosts use Factor directly. Zero defaults to 0.5.
	Factor float64
	NoFade bool
	// ColorBefore and ColorAfter tint ghosts. Zero alpha means untinted.
	ColorBefore Color
	ColorAfter  Color
}

// OnionFrame is one ghost to draw: a frame, its alpha and its tint.
type OnionFrame struct {
	Frame *Frame
	Alpha float64
	Tint  Color
}

// OnionFrames returns the ghosts around cur, nearest first: every frame
// before cur, then every frame after it. cur must belong to the layer.
func (l *Layer) OnionFrames(cur *Frame, cfg OnionConfig) []OnionFrame {
	ci := l.indexOf(cur)
	if ci < 0 {
		return nil
	}
	var out []OnionFrame
	out = l.onionWalk(out, ci, -1, cfg.Before, cfg, cfg.ColorBefore)
	out = l.onionWalk(out, ci, 1, cfg.After, cfg, cfg.ColorAfter)
	return out
}

func (l *Layer) onionWalk(out []OnionFrame, ci, dir, step int, cfg OnionConfig, tint Color) []OnionFrame {
	cur := l.frames[ci]
	idx := 0
	for i := ci + dir; i >= 0 && i < len(l.frames); i += dir {
		gf := l.frames[i]
		if cfg.Mode == OnionSelected && gf.Flags&FrameSelected == 0 {
			continue
		}
		dist := absInt(gf.Number - cur.Number)
		if cfg.Mode == OnionAbsolute && dist > step {
			break
		}
		var alpha float64
		switch cfg.Mode {
		case OnionAbsolute:
			alpha = (1 - float64(dist)/float64(step+1)) * 0.66
		case OnionRelative:
			idx++
			if idx > step {
				return out
			}
			alpha = (1 - float64(idx)/float64(step+1)) * 0.66
		default:
			idx++
			alpha = 1 - (1.1-1/float64(idx))*0.66
		}
		out = append(out, OnionFrame{Frame: gf, Alpha: onionAlpha(alpha, cfg), Tint: tint})
	}
	return out
}

func onionAlpha(alpha float64, cfg OnionConfig) float64 {
	factor := cfg.Factor
	if factor == 0 {
		factor = 0.5
	}
	if cfg.NoFade {
		alpha = factor
	} else {
		alpha += factor - 0.5
	}
	return clamp(alpha, onionMinAlpha, 1)
}

// OnionBatches builds outline batches for the ghosts of cur. Ghost strokes
// use the ghost tint when it is set, else their resolved stroke color, drawn
// at the ghost alpha times layer opacity. Ghosts skip the modifier stack.
func (l *Layer) OnionBatches(cur *Frame, cfg OnionConfig, r ColorResolver) []*Batch {
	var out []*Batch
	for _, g := range l.OnionFrames(cur, cfg) {
		for _, s := range g.Frame.Strokes {
			col := ColorBlack
			if c := s.ResolveColor(r); c != nil {
				if c.Hidden() {
					continue
				}
				col = c.Stroke
			}
			if g.Tint.A > 0 {
				col = g.Tint
			}
			col.A = 1
			if b := buildStrokeBatch(s, col, g.Alpha*l.Opacity); b != nil {
				out = append(out, b)
			}
		}
	}
	return out
}
