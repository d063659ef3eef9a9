package quill

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// BuildModifier reveals strokes point by point over a range of scene
// frames. Before StartFrame nothing is drawn; from StartFrame+Length on the
// stroke is complete. Ease shapes the reveal curve.
type BuildModifier struct {
	ModifierBase
	StartFrame int
	Length     int
	Ease       ease.TweenFunc
	// Reverse removes points from the end instead of revealing them.
	Reverse bool
}

// NewBuildModifier returns a linear 25-frame build.
func NewBuildModifier(name string) *BuildModifier {
	return &BuildModifier{
		ModifierBase: defaultBase(name),
		StartFrame:   1,
		Length:       25,
		Ease:         ease.Linear,
	}
}

// progress returns the visible fraction at sceneFrame.
func (m *BuildModifier) progress(sceneFrame int) float64 {
	if m.Length <= 0 {
		return 1
	}
	fn := m.Ease
	if fn == nil {
		fn = ease.Linear
	}
	tw := gween.New(0, 1, float32(m.Length), fn)
	v, _ := tw.Set(float32(sceneFrame - m.StartFrame))
	v = float32(math.Max(0, math.Min(1, float64(v))))
	if m.Reverse {
		return 1 - float64(v)
	}
	return float64(v)
}

// DeformStroke implements StrokeModifier.
func (m *BuildModifier) DeformStroke(ctx *EvalContext, l *Layer, s *Stroke) {
	if !m.affects(ctx, l, s, 1) {
		return
	}
	frame := 0
	if ctx != nil {
		frame = ctx.SceneFrame
	}
	n := len(s.Points)
	keep := int(math.Ceil(m.progress(frame) * float64(n)))
	if keep >= n {
		return
	}
	s.setPoints(s.Points[:keep:keep])
}
