package svgpdf

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benoitkugler/okavd/animatedvector"
	"github.com/benoitkugler/okavd/animator"
	"github.com/benoitkugler/okavd/svgicon"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

const gradientSVG = `<svg id="root" viewBox="0 0 40 40">
	<defs>
		<linearGradient id="shade" x1="0" y1="0" x2="1" y2="1">
			<stop offset="0" stop-color="red"/>
			<stop offset="1" stop-color="blue" stop-opacity="0.5"/>
		</linearGradient>
		<radialGradient id="glow">
			<stop offset="0" stop-color="white"/>
			<stop offset="1" stop-color="black"/>
		</radialGradient>
	</defs>
	<g id="move">
		<rect x="0" y="0" width="20" height="20" fill="url(#shade)"/>
		<circle cx="30" cy="30" r="5" fill="url(#glow)"/>
	</g>
	<path d="M0 35 Q20 25 40 35" fill="none" stroke="green" stroke-dasharray="2 1" stroke-linecap="round"/>
</svg>`

func pt(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func TestPather(t *testing.T) {
	var p pather
	p.Clear()
	p.Start(pt(0, 0))
	p.Line(pt(10, 0))
	p.QuadBezier(pt(20, 10), pt(10, 20))
	p.CubeBezier(pt(5, 30), pt(-5, 30), pt(0, 20))
	p.Stop(true)

	if len(p.ops) != 5 || p.ops[4].kind != closePath {
		t.Fatalf("unexpected operations %v", p.ops)
	}
	box := p.boundingBox
	if box.xMin > -1 || box.xMax != 15 || box.yMin != 0 || box.yMax != 27.5 {
		t.Errorf("unexpected bounding box %v", box)
	}
	if poly := p.polygon(); len(poly) != 2+2*flattenSteps {
		t.Errorf("unexpected polygon size %d", len(poly))
	}

	p.Clear()
	if len(p.ops) != 0 || !p.boundingBox.isEmpty() {
		t.Error("clear should reset the path")
	}
}

func TestSetupDrawers(t *testing.T) {
	r := NewRenderer(gofpdf.New("", "", "", ""))
	if f, s := r.SetupDrawers(false, false); f != nil || s != nil {
		t.Error("expected nil drawers")
	}
	if f, s := r.SetupDrawers(true, true); f == nil || s == nil {
		t.Error("expected drawers")
	}
}

func newDocument() *Document {
	doc := NewDocument(40, 40)
	doc.pdf.SetCompression(false)
	return doc
}

func TestDocument(t *testing.T) {
	icon, err := svgicon.ReadIconStream(strings.NewReader(gradientSVG), svgicon.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	state := animatedvector.NewState(icon)
	state.AddTargetAnimator("move", animator.NewFloat(nil, svgicon.PropTranslateX, 0, 20, time.Second))
	d := state.NewDrawable()

	doc := newDocument()
	doc.AddFrame(d)
	d.Start()
	d.Handler().DoFrame(0)
	d.Handler().DoFrame(500 * time.Millisecond)
	doc.AddFrame(d)
	d.Stop()
	doc.AddFrame(d)
	if doc.PageCount() != 3 {
		t.Errorf("expected 3 pages, got %d", doc.PageCount())
	}

	var buf bytes.Buffer
	if err = doc.Output(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-") {
		t.Fatal("invalid PDF output")
	}
	if !strings.Contains(out, " sh") {
		t.Error("gradients should be written as shadings")
	}
}

func TestRenderSVGIconToPDF(t *testing.T) {
	file := filepath.Join(t.TempDir(), "icon.pdf")
	if err := RenderSVGIconToPDF(strings.NewReader(gradientSVG), file); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		t.Error("invalid PDF file")
	}

	if err = RenderSVGIconToPDF(strings.NewReader(""), file); err == nil {
		t.Error("expected error for empty input")
	}
}
