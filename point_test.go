package quill

import "testing"

// --- Weights ---

func TestPointNoWeightsIsNil(t *testing.T) {
	p := NewPoint(0, 0, 0)
	if p.Weights != nil {
		t.Error("new point should have nil weights")
	}
	if _, ok := p.WeightFor(0); ok {
		t.Error("WeightFor on empty point should report false")
	}
}

func TestPointSetWeightUpdatesInPlace(t *testing.T) {
	p := NewPoint(0, 0, 0)
	p.SetWeight(3, 0.5)
	p.SetWeight(3, 0.8)
	if len(p.Weights) != 1 {
		t.Fatalf("len(Weights) = %d, want 1", len(p.Weights))
	}
	if w, _ := p.WeightFor(3); w != 0.8 {
		t.Errorf("weight = %v, want 0.8", w)
	}
}

func TestPointRemoveWeight(t *testing.T) {
	p := NewPoint(0, 0, 0)
	p.SetWeight(0, 0.1)
	p.SetWeight(1, 0.2)
	p.SetWeight(2, 0.3)

	if !p.RemoveWeight(1) {
		t.Fatal("RemoveWeight(1) = false")
	}
	if len(p.Weights) != 2 || p.Weights[0].Group != 0 || p.Weights[1].Group != 2 {
		t.Errorf("weights after remove = %+v", p.Weights)
	}
	if p.RemoveWeight(7) {
		t.Error("removing an absent group should report false")
	}
	p.RemoveWeight(0)
	p.RemoveWeight(2)
	if p.Weights != nil {
		t.Errorf("weights should be nil once empty, got %+v", p.Weights)
	}
}

func TestStrokeRemoveWeightMarksRecalc(t *testing.T) {
	s := triangleStroke("")
	s.SetWeight(1, 0, 1)
	Triangulate(s, false)
	if s.NeedsRecalc() {
		t.Fatal("fresh triangulation should be valid")
	}
	s.RemoveWeight(1, 0)
	if s.Flags&StrokeRecalcCaches == 0 {
		t.Error("RemoveWeight should set the recalc flag")
	}
}

func TestPointCloneOwnsWeights(t *testing.T) {
	p := NewPoint(0, 0, 0)
	p.SetWeight(0, 0.5)
	c := p.clone()
	c.SetWeight(0, 1)
	if w, _ := p.WeightFor(0); w != 0.5 {
		t.Errorf("source weight changed to %v", w)
	}
}
