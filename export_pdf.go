package quill

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// pdfPixelMM is the size of one stroke thickness unit on paper (1px at 96 DPI).
const pdfPixelMM = 25.4 / 96

// pdfMarginMM is the empty border around the exported drawing.
const pdfMarginMM = 10

// ExportPDF populates o at the current frame and writes its evaluated
// strokes to w as a one-page A4 PDF: fills first, then outlines, layer by
// layer. The drawing is scaled to fit the page.
func (s *Scene) ExportPDF(w io.Writer, o *Object) error {
	p, err := s.buildPDF(o)
	if err != nil {
		return err
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("quill: export pdf: %w", err)
	}
	return nil
}

// ExportPDFFile is ExportPDF writing to path.
func (s *Scene) ExportPDFFile(path string, o *Object) error {
	p, err := s.buildPDF(o)
	if err != nil {
		return err
	}
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("quill: export pdf: %w", err)
	}
	return nil
}

func (s *Scene) buildPDF(o *Object) (*gofpdf.Fpdf, error) {
	if o == nil || o.Data == nil {
		return nil, fmt.Errorf("quill: export pdf: object has no datablock")
	}
	s.Populate(o)

	var layers []*Layer
	var frames []*Frame
	for _, l := range o.Data.layers {
		if l.Hidden() {
			continue
		}
		if f := l.DerivedFrame(o.ID); f != nil {
			layers = append(layers, l)
			frames = append(frames, f)
		}
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle(o.Name, true)
	p.SetCreator("quill", false)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	pw, ph := p.GetPageSize()
	// empty frames yield an inverted box, which viewTransform leaves unscaled
	minX, minY, maxX, maxY, _ := frameBounds(frames...)
	m := viewTransform(minX, minY, maxX, maxY, int(pw), int(ph), pdfMarginMM)

	for i, f := range frames {
		l := layers[i]
		for _, st := range f.Strokes {
			if !st.Drawable() {
				continue
			}
			strokeCol, fillCol := ColorBlack, Color{}
			fillOnly := false
			if st.Color != nil {
				strokeCol, fillCol = st.Color.Stroke, st.Color.Fill
				fillOnly = st.Color.Flags&ColorFillOnly != 0
			}
			if len(st.Points) >= 3 && fillCol.A > 0 {
				pdfFill(p, st, layerTint(fillCol, l), l.Opacity, m)
			}
			if !fillOnly {
				pdfOutline(p, st, layerTint(strokeCol, l), l.Opacity, m)
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("quill: export pdf: %w", err)
	}
	return p, nil
}

func pdfFill(p *gofpdf.Fpdf, st *Stroke, c Color, opacity float64, m [6]float64) {
	if !EnsureTriangulation(st, false) {
		return
	}
	rgb := c.NRGBA()
	p.SetFillColor(int(rgb.R), int(rgb.G), int(rgb.B))
	p.SetAlpha(clamp01(c.A*opacity), "Normal")
	pts := make([]gofpdf.PointType, 3)
	for _, t := range st.Triangles[:st.TotTriangles] {
		for k, vi := range t.Verts {
			x, y := transformPoint(m, st.Points[vi].Pos.X, st.Points[vi].Pos.Y)
			pts[k] = gofpdf.PointType{X: x, Y: y}
		}
		p.Polygon(pts, "F")
	}
	p.SetAlpha(1, "Normal")
}

// pdfOutline draws one line per segment so pressure and strength vary
// along the stroke.
func pdfOutline(p *gofpdf.Fpdf, st *Stroke, c Color, opacity float64, m [6]float64) {
	n := len(st.Points)
	if n < 2 {
		return
	}
	rgb := c.NRGBA()
	p.SetDrawColor(int(rgb.R), int(rgb.G), int(rgb.B))
	segs := n - 1
	if st.Flags&StrokeCyclic != 0 && n > 2 {
		segs = n
	}
	for i := 0; i < segs; i++ {
		a, b := &st.Points[i], &st.Points[(i+1)%n]
		p.SetLineWidth(float64(st.Thickness) * (a.Pressure + b.Pressure) / 2 * pdfPixelMM)
		p.SetAlpha(clamp01(c.A*opacity*(a.Strength+b.Strength)/2), "Normal")
		x1, y1 := transformPoint(m, a.Pos.X, a.Pos.Y)
		x2, y2 := transformPoint(m, b.Pos.X, b.Pos.Y)
		p.Line(x1, y1, x2, y2)
	}
	p.SetAlpha(1, "Normal")
}
