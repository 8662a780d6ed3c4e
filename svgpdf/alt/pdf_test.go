package alt

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
	"golang.org/x/image/math/fixed"
)

const iconSVG = `<svg viewBox="0 0 40 40">
	<g id="move">
		<rect x="0" y="0" width="20" height="20" fill="red" fill-opacity="0.5"/>
		<circle cx="30" cy="30" r="5" fill="blue"/>
	</g>
	<path d="M0 35 Q20 25 40 35" fill="none" stroke="green" stroke-dasharray="2 1" stroke-linecap="round"/>
</svg>`

func pt(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func TestPather(t *testing.T) {
	var p pather
	p.Start(pt(0, 0))
	p.Line(pt(10, 0))
	p.QuadBezier(pt(20, 10), pt(10, 20))
	p.CubeBezier(pt(5, 30), pt(-5, 30), pt(0, 20))
	p.Stop(true)
	if len(p.ops) != 5 || p.ops[2].kind != quadTo || p.ops[4].kind != closePath {
		t.Fatalf("unexpected operations %v", p.ops)
	}
	if end := p.ops[3].points[2]; end != [2]float64{0, 20} {
		t.Errorf("unexpected end point %v", end)
	}
	p.Clear()
	if len(p.ops) != 0 {
		t.Error("clear should reset the path")
	}
}

func TestStyles(t *testing.T) {
	if capStyle(svgicon.RoundCap) != 1 || capStyle(svgicon.SquareCap) != 2 || capStyle(svgicon.ButtCap) != 0 {
		t.Error("unexpected cap styles")
	}
	if joinStyle(svgicon.Round) != 1 || joinStyle(svgicon.Bevel) != 2 || joinStyle(svgicon.Miter) != 0 {
		t.Error("unexpected join styles")
	}
}

func TestDocument(t *testing.T) {
	icon, err := svgicon.ReadIconStream(strings.NewReader(iconSVG), svgicon.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	state := animatedvector.NewState(icon)
	state.AddTargetAnimator("move", animator.NewFloat(nil, svgicon.PropTranslateX, 0, 20, time.Second))
	d := state.NewDrawable()

	doc := NewDocument(40, 40)
	doc.AddFrame(d)
	d.Start()
	d.Handler().DoFrame(0)
	d.Handler().DoFrame(500 * time.Millisecond)
	doc.AddFrame(d)
	d.Stop()
	if doc.PageCount() != 2 {
		t.Errorf("expected 2 pages, got %d", doc.PageCount())
	}

	file := filepath.Join(t.TempDir(), "frames.pdf")
	if err = doc.WriteFile(file); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		t.Error("invalid PDF file")
	}
}

func TestRenderSVGIconToPDF(t *testing.T) {
	file := filepath.Join(t.TempDir(), "icon.pdf")
	if err := RenderSVGIconToPDF(strings.NewReader(iconSVG), file); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatal(err)
	}
	if err := RenderSVGIconToPDF(strings.NewReader(""), file); err == nil {
		t.Error("expected error for empty input")
	}
}
