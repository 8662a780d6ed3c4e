// Implements a PDF backend to render SVG images and
// animated vector frames, by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"image/color"
	"io"

	"github.com/benoitkugler/okavd/svgicon"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgicon.Driver  = Renderer{}
	_ svgicon.Filler  = (*filler)(nil)
	_ svgicon.Stroker = (*stroker)(nil)
)

// number of segments used to flatten a curve into a clipping polygon
const flattenSteps = 8

// Renderer writes to the current page of a PDF.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f svgicon.Filler, s svgicon.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}, useNonZeroWinding: true}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}}
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
	points [3]point
}

// implements the common path commands,
// shared by the filler and the stroker.
// The operations are recorded and only written
// to the PDF when drawing, since the color is
// known after the path.
type pather struct {
	pdf *gofpdf.Fpdf

	ops         []pathOp
	a           point // current point, used to compute boundingBox
	boundingBox rect  // bouding box for the current path

	color   svgicon.Pattern
	opacity float64
}

func fixedTof(a fixed.Point26_6) point {
	return point{float64(a.X) / 64, float64(a.Y) / 64}
}

func (p *pather) Clear() {
	p.ops = p.ops[:0]
	p.boundingBox = emptyRect
	p.a = point{}
}

func (p *pather) Start(a fixed.Point26_6) {
	p.a = fixedTof(a)
	p.ops = append(p.ops, pathOp{kind: moveTo, points: [3]point{p.a}})
	if len(p.ops) == 1 {
		p.boundingBox = emptyRect
	}
	p.boundingBox = p.boundingBox.add(p.a) // degenerate case
}

func (p *pather) Line(b fixed.Point26_6) {
	pb := fixedTof(b)
	p.ops = append(p.ops, pathOp{kind: lineTo, points: [3]point{pb}})
	p.boundingBox = p.boundingBox.union(computeBoundingBox(line{p.a, pb}))
	p.a = pb
}

func (p *pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	pb, pc := fixedTof(b), fixedTof(c)
	p.ops = append(p.ops, pathOp{kind: quadTo, points: [3]point{pb, pc}})
	p.boundingBox = p.boundingBox.union(computeBoundingBox(quadBezier{p.a, pb, pc}))
	p.a = pc
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	pb, pc, pd := fixedTof(b), fixedTof(c), fixedTof(d)
	p.ops = append(p.ops, pathOp{kind: cubicTo, points: [3]point{pb, pc, pd}})
	p.boundingBox = p.boundingBox.union(computeBoundingBox(cubicBezier{p.a, pb, pc, pd}))
	p.a = pd
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.ops = append(p.ops, pathOp{kind: closePath})
	}
}

func (p *pather) SetColor(color svgicon.Pattern, opacity float64) {
	p.color = color
	p.opacity = opacity
}

// writePath sends the recorded path to the PDF
func (p *pather) writePath() {
	for _, op := range p.ops {
		switch op.kind {
		case moveTo:
			p.pdf.MoveTo(op.points[0].x, op.points[0].y)
		case lineTo:
			p.pdf.LineTo(op.points[0].x, op.points[0].y)
		case quadTo:
			p.pdf.CurveTo(op.points[0].x, op.points[0].y, op.points[1].x, op.points[1].y)
		case cubicTo:
			p.pdf.CurveBezierCubicTo(op.points[0].x, op.points[0].y,
				op.points[1].x, op.points[1].y, op.points[2].x, op.points[2].y)
		case closePath:
			p.pdf.ClosePath()
		}
	}
}

// polygon returns the flattened path, with
// every sub-path joined
func (p *pather) polygon() []gofpdf.PointType {
	var (
		points  []point
		current point
	)
	for _, op := range p.ops {
		switch op.kind {
		case moveTo:
			current = op.points[0]
			points = append(points, current)
		case lineTo:
			current = op.points[0]
			points = append(points, current)
		case quadTo:
			points = flatten(quadBezier{current, op.points[0], op.points[1]}, flattenSteps, points)
			current = op.points[1]
		case cubicTo:
			points = flatten(cubicBezier{current, op.points[0], op.points[1], op.points[2]}, flattenSteps, points)
			current = op.points[2]
		}
	}
	out := make([]gofpdf.PointType, len(points))
	for i, pt := range points {
		out[i] = gofpdf.PointType{X: pt.x, Y: pt.y}
	}
	return out
}

func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func rgb(c color.Color) (r, g, b int) {
	nc := toNRGBA(c)
	return int(nc.R), int(nc.G), int(nc.B)
}

// FlatColor returns the color and the opacity to use for
// `pattern`, approximating gradients by their mean color.
func FlatColor(pattern svgicon.Pattern, opacity float64) (color.NRGBA, float64) {
	switch pattern := pattern.(type) {
	case svgicon.PlainColor:
		return pattern.NRGBA, opacity * float64(pattern.A) / 255
	case svgicon.Gradient:
		if len(pattern.Stops) == 0 {
			return color.NRGBA{}, 0
		}
		first, last := pattern.Stops[0], pattern.Stops[len(pattern.Stops)-1]
		c1, c2 := toNRGBA(first.StopColor), toNRGBA(last.StopColor)
		mean := color.NRGBA{
			R: uint8((int(c1.R) + int(c2.R)) / 2),
			G: uint8((int(c1.G) + int(c2.G)) / 2),
			B: uint8((int(c1.B) + int(c2.B)) / 2),
			A: uint8((int(c1.A) + int(c2.A)) / 2),
		}
		return mean, opacity * (first.Opacity + last.Opacity) / 2 * float64(mean.A) / 255
	}
	return color.NRGBA{}, 0
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *filler) Draw() {
	if len(f.ops) == 0 {
		return
	}
	if grad, ok := f.color.(svgicon.Gradient); ok && len(grad.Stops) >= 2 {
		f.drawGradient(grad)
		return
	}
	c, opacity := FlatColor(f.color, f.opacity)
	f.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	f.pdf.SetAlpha(opacity, "")
	f.writePath()
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

// gradientVector maps the gradient coordinates to the unit square
// used by gofpdf, whose origin is the lower left corner of the box.
func gradientVector(grad svgicon.Gradient, x, y float64) (float64, float64) {
	x, y = grad.Matrix.Transform(x, y)
	if grad.Units == svgicon.UserSpaceOnUse && grad.Bounds.W != 0 && grad.Bounds.H != 0 {
		x = (x - grad.Bounds.X) / grad.Bounds.W
		y = (y - grad.Bounds.Y) / grad.Bounds.H
	}
	return x, 1 - y
}

// drawGradient fills the bounding box of the path with a two-stops
// gradient, clipped by the path
func (f *filler) drawGradient(grad svgicon.Gradient) {
	box := f.boundingBox
	if box.isEmpty() {
		return
	}
	first, last := grad.Stops[0], grad.Stops[len(grad.Stops)-1]
	r1, g1, b1 := rgb(first.StopColor)
	r2, g2, b2 := rgb(last.StopColor)

	f.pdf.SetAlpha(f.opacity*(first.Opacity+last.Opacity)/2, "")
	f.pdf.ClipPolygon(f.polygon(), false)
	switch dir := grad.Direction.(type) {
	case svgicon.Linear:
		x1, y1 := gradientVector(grad, dir[0], dir[1])
		x2, y2 := gradientVector(grad, dir[2], dir[3])
		f.pdf.LinearGradient(box.xMin, box.yMin, box.width(), box.height(),
			r1, g1, b1, r2, g2, b2, x1, y1, x2, y2)
	case svgicon.Radial:
		cx, cy := gradientVector(grad, dir[0], dir[1])
		fx, fy := gradientVector(grad, dir[2], dir[3])
		f.pdf.RadialGradient(box.xMin, box.yMin, box.width(), box.height(),
			r1, g1, b1, r2, g2, b2, fx, fy, cx, cy, dir[4])
	}
	f.pdf.ClipEnd()
}

// implements the stroking operation
type stroker struct {
	pather
	options svgicon.StrokeOptions
}

func (s *stroker) SetStrokeOptions(options svgicon.StrokeOptions) {
	s.options = options
}

func capStyle(c svgicon.CapMode) string {
	switch c {
	case svgicon.ButtCap, svgicon.NilCap:
		return "butt"
	case svgicon.SquareCap:
		return "square"
	default:
		return "round"
	}
}

func joinStyle(j svgicon.JoinMode) string {
	switch j {
	case svgicon.Round:
		return "round"
	case svgicon.Bevel:
		return "bevel"
	default:
		return "miter"
	}
}

func (s *stroker) Draw() {
	if len(s.ops) == 0 {
		return
	}
	c, opacity := FlatColor(s.color, s.opacity)
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetAlpha(opacity, "")
	s.pdf.SetLineWidth(float64(s.options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capStyle(s.options.Join.TrailLineCap))
	s.pdf.SetLineJoinStyle(joinStyle(s.options.Join.LineJoin))
	if len(s.options.Dash.Dash) != 0 {
		s.pdf.SetDashPattern(s.options.Dash.Dash, s.options.Dash.DashOffset)
	} else {
		s.pdf.SetDashPattern([]float64{}, 0)
	}
	s.writePath()
	s.pdf.DrawPath("D")
}

// Document is a PDF file with one page per frame.
type Document struct {
	pdf *gofpdf.Fpdf
}

// NewDocument returns an empty document whose pages
// have the given size, in points.
func NewDocument(width, height float64) *Document {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return &Document{pdf: pdf}
}

// AddFrame adds a page and paints `p` on it.
func (doc *Document) AddFrame(p svgicon.Painter) {
	doc.pdf.AddPage()
	p.Draw(NewRenderer(doc.pdf))
}

// PageCount returns the number of frames added.
func (doc *Document) PageCount() int { return doc.pdf.PageCount() }

// Output writes the document to `w`.
func (doc *Document) Output(w io.Writer) error {
	return doc.pdf.Output(w)
}

// RenderSVGIconToPDF writes the icon as a one-page PDF file,
// whose size is the one of the icon view box.
func RenderSVGIconToPDF(icon io.Reader, pdfFile string) error {
	parsedIcon, err := svgicon.ReadIconStream(icon, svgicon.IgnoreErrorMode)
	if err != nil {
		return err
	}
	vb := parsedIcon.ViewBox
	parsedIcon.SetTarget(0, 0, vb.W, vb.H)
	doc := NewDocument(vb.W, vb.H)
	doc.AddFrame(parsedIcon.AsPainter())
	return doc.pdf.OutputFileAndClose(pdfFile)
}
