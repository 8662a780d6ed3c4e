// Package alt is an alternative PDF backend, writing the frames
// directly as content streams with github.com/benoitkugler/pdf.
// Gradients are rendered with their mean color.
package alt

import (
	"image/color"
	"io"

	"github.com/benoitkugler/okavd/svgicon"
	"github.com/benoitkugler/okavd/svgpdf"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgicon.Driver  = Renderer{}
	_ svgicon.Filler  = (*filler)(nil)
	_ svgicon.Stroker = (*stroker)(nil)
)

// Renderer writes to a content stream. The opacity states
// are cached, so that each page registers each opacity once.
type Renderer struct {
	pdf                 *contentstream.Appearance
	fillOpacityStates   map[float64]*model.GraphicState
	strokeOpacityStates map[float64]*model.GraphicState
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(cs *contentstream.Appearance) Renderer {
	return Renderer{pdf: cs,
		fillOpacityStates:   make(map[float64]*model.GraphicState),
		strokeOpacityStates: make(map[float64]*model.GraphicState),
	}
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f svgicon.Filler, s svgicon.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}, useNonZeroWinding: true, states: r.fillOpacityStates}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}, states: r.strokeOpacityStates}
	}
	return f, s
}

type opKind uint8

const (
	moveTo opKind = iota
	lineTo
	quadTo
	cubicTo
	closePath
)

type pathOp struct {
	kind   opKind
	points [3][2]float64
}

// pather records the path, since a content stream
// requires the colors to be set before the path is written.
type pather struct {
	pdf     *contentstream.Appearance
	ops     []pathOp
	color   color.NRGBA
	opacity float64
}

func fixedTof(a fixed.Point26_6) [2]float64 {
	return [2]float64{float64(a.X) / 64, float64(a.Y) / 64}
}

func (p *pather) Clear() { p.ops = p.ops[:0] }

func (p *pather) Start(a fixed.Point26_6) {
	p.ops = append(p.ops, pathOp{kind: moveTo, points: [3][2]float64{fixedTof(a)}})
}

func (p *pather) Line(b fixed.Point26_6) {
	p.ops = append(p.ops, pathOp{kind: lineTo, points: [3][2]float64{fixedTof(b)}})
}

func (p *pather) QuadBezier(b, c fixed.Point26_6) {
	p.ops = append(p.ops, pathOp{kind: quadTo, points: [3][2]float64{fixedTof(b), fixedTof(c)}})
}

func (p *pather) CubeBezier(b, c, d fixed.Point26_6) {
	p.ops = append(p.ops, pathOp{kind: cubicTo, points: [3][2]float64{fixedTof(b), fixedTof(c), fixedTof(d)}})
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.ops = append(p.ops, pathOp{kind: closePath})
	}
}

func (p *pather) SetColor(pattern svgicon.Pattern, opacity float64) {
	p.color, p.opacity = svgpdf.FlatColor(pattern, opacity)
}

func (p *pather) writePath() {
	var current, start [2]float64
	for _, op := range p.ops {
		pts := op.points
		switch op.kind {
		case moveTo:
			p.pdf.Ops(contentstream.OpMoveTo{X: pts[0][0], Y: pts[0][1]})
			current, start = pts[0], pts[0]
		case lineTo:
			p.pdf.Ops(contentstream.OpLineTo{X: pts[0][0], Y: pts[0][1]})
			current = pts[0]
		case quadTo:
			// elevated to a cubic curve
			q, end := pts[0], pts[1]
			p.pdf.Ops(contentstream.OpCubicTo{
				X1: current[0] + 2./3*(q[0]-current[0]), Y1: current[1] + 2./3*(q[1]-current[1]),
				X2: end[0] + 2./3*(q[0]-end[0]), Y2: end[1] + 2./3*(q[1]-end[1]),
				X3: end[0], Y3: end[1],
			})
			current = end
		case cubicTo:
			p.pdf.Ops(contentstream.OpCubicTo{
				X1: pts[0][0], Y1: pts[0][1],
				X2: pts[1][0], Y2: pts[1][1],
				X3: pts[2][0], Y3: pts[2][1],
			})
			current = pts[2]
		case closePath:
			p.pdf.Ops(contentstream.OpClosePath{})
			current = start
		}
	}
}

// setOpacity selects an opacity state, registered once per value
func (p *pather) setOpacity(states map[float64]*model.GraphicState, stroke bool) {
	gs, ok := states[p.opacity]
	if !ok {
		gs = &model.GraphicState{BM: []model.Name{"Normal"}}
		if stroke {
			gs.CA = model.ObjFloat(p.opacity)
		} else {
			gs.Ca = model.ObjFloat(p.opacity)
		}
		states[p.opacity] = gs
	}
	name := p.pdf.AddExtGState(gs)
	p.pdf.Ops(contentstream.OpSetExtGState{Dict: name})
}

type filler struct {
	pather
	useNonZeroWinding bool
	states            map[float64]*model.GraphicState
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *filler) Draw() {
	if len(f.ops) == 0 || f.opacity == 0 {
		return
	}
	f.pdf.Ops(contentstream.OpSave{})
	f.pdf.SetColorFill(f.color)
	f.setOpacity(f.states, false)
	f.writePath()
	if f.useNonZeroWinding {
		f.pdf.Ops(contentstream.OpFill{})
	} else {
		f.pdf.Ops(contentstream.OpEOFill{})
	}
	f.pdf.Ops(contentstream.OpRestore{})
}

type stroker struct {
	pather
	options svgicon.StrokeOptions
	states  map[float64]*model.GraphicState
}

func (s *stroker) SetStrokeOptions(options svgicon.StrokeOptions) {
	s.options = options
}

func capStyle(c svgicon.CapMode) uint8 {
	switch c {
	case svgicon.RoundCap:
		return 1
	case svgicon.SquareCap:
		return 2
	default:
		return 0
	}
}

func joinStyle(j svgicon.JoinMode) uint8 {
	switch j {
	case svgicon.Round:
		return 1
	case svgicon.Bevel:
		return 2
	default:
		return 0
	}
}

func (s *stroker) Draw() {
	if len(s.ops) == 0 || s.opacity == 0 {
		return
	}
	s.pdf.Ops(contentstream.OpSave{})
	s.pdf.SetColorStroke(s.color)
	s.setOpacity(s.states, true)
	s.pdf.Ops(
		contentstream.OpSetDash{Dash: model.DashPattern{
			Array: s.options.Dash.Dash,
			Phase: s.options.Dash.DashOffset,
		}},
		contentstream.OpSetLineWidth{W: float64(s.options.LineWidth) / 64},
		contentstream.OpSetLineCap{Style: capStyle(s.options.Join.TrailLineCap)},
		contentstream.OpSetLineJoin{Style: joinStyle(s.options.Join.LineJoin)},
		contentstream.OpSetMiterLimit{Limit: float64(s.options.Join.MiterLimit) / 64},
	)
	s.writePath()
	s.pdf.Ops(contentstream.OpStroke{}, contentstream.OpRestore{})
}

// Document is a PDF whose pages are the successive frames
// of an animation.
type Document struct {
	width, height float64
	doc           model.Document
}

// NewDocument returns an empty document, whose pages
// have the given size, in points.
func NewDocument(width, height float64) *Document {
	return &Document{width: width, height: height}
}

// AddFrame draws the current state of `p` on a new page.
func (d *Document) AddFrame(p svgicon.Painter) {
	page := contentstream.NewAppearance(d.width, d.height)
	page.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, d.height}},
	)
	p.Draw(NewRenderer(&page))
	page.Ops(contentstream.OpRestore{})
	po := new(model.PageObject)
	page.ApplyToPageObject(po, true)
	d.doc.Catalog.Pages.Kids = append(d.doc.Catalog.Pages.Kids, po)
}

// PageCount returns the number of frames added.
func (d *Document) PageCount() int { return len(d.doc.Catalog.Pages.Kids) }

// WriteFile writes the document into `file`.
func (d *Document) WriteFile(file string) error {
	return d.doc.WriteFile(file, nil)
}

// RenderSVGIconToPDF reads the given icon and renders it
// into the given file, using the view box as page size.
func RenderSVGIconToPDF(icon io.Reader, file string) error {
	parsedIcon, err := svgicon.ReadIconStream(icon, svgicon.WarnErrorMode)
	if err != nil {
		return err
	}
	w, h := parsedIcon.ViewBox.W, parsedIcon.ViewBox.H
	parsedIcon.SetTarget(0, 0, w, h)
	doc := NewDocument(w, h)
	doc.AddFrame(parsedIcon.AsPainter())
	return doc.WriteFile(file)
}
