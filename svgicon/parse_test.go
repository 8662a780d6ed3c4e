package svgicon

import (
	"image/color"
	"math"
	"strings"
	"testing"
)

func parseIcon(t *testing.T, iconPath string) *SvgIcon {
	icon, errSvg := ReadIcon(iconPath, WarnErrorMode)
	if errSvg != nil {
		t.Fatal(errSvg)
	}
	return icon
}

func TestReadTree(t *testing.T) {
	icon := parseIcon(t, "testdata/arrow.svg")

	if icon.Width != 24 || icon.IntrinsicHeight() != 24 {
		t.Errorf("unexpected size %v x %v", icon.Width, icon.Height)
	}
	if !icon.AutoMirrored {
		t.Error("expected auto mirrored icon")
	}
	if len(icon.Titles) != 1 || icon.Titles[0] != "Arrow" {
		t.Errorf("unexpected titles %v", icon.Titles)
	}
	if got := strings.Join(icon.Names(), ","); got != "arrow,dot,root,rot" {
		t.Errorf("unexpected names %s", got)
	}
	if icon.TargetByName("root") != icon {
		t.Error("root name should resolve to the icon")
	}
	if icon.TargetByName("missing") != nil || icon.TargetByName("") != nil {
		t.Error("unknown names should resolve to nil")
	}
	if L := len(icon.Root.Children); L != 3 {
		t.Fatalf("expected 3 children, got %d", L)
	}

	rot := icon.FindGroup("rot")
	if rot == nil || rot.Transform.E != 1 || rot.Transform.F != 1 {
		t.Fatalf("unexpected group %v", rot)
	}
	arrow := icon.FindPath("arrow")
	if arrow == nil {
		t.Fatal("missing path")
	}
	if arrow.Style.LineWidth != 1.5 {
		t.Errorf("unexpected stroke width %v", arrow.Style.LineWidth)
	}
	if c, _ := arrow.Color(PropStrokeColor); c != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Errorf("unexpected stroke color %v", c)
	}
	rect := rot.Children[1].(*SvgPath)
	grad, ok := rect.Style.FillerColor.(Gradient)
	if !ok || len(grad.Stops) != 2 || grad.Stops[1].Opacity != 0.5 {
		t.Errorf("unexpected gradient fill %v", rect.Style.FillerColor)
	}
	if _, ok := rect.Color(PropFillColor); ok {
		t.Error("gradients have no single color")
	}

	dot := icon.FindGroup("dot")
	if dot == nil || len(dot.Children) != 1 {
		t.Fatalf("use element not expanded: %v", dot)
	}
	polygon := icon.Root.Children[2].(*SvgPath)
	if polygon.Style.FillerColor != nil || polygon.Style.LinerColor == nil {
		t.Errorf("unexpected polygon style %v", polygon.Style)
	}
}

func TestReadNested(t *testing.T) {
	icon := parseIcon(t, "testdata/nested.svg")

	if icon.ViewBox != (Bounds{10, 10, 100, 50}) {
		t.Errorf("unexpected view box %v", icon.ViewBox)
	}
	if icon.Width != 100 || icon.Height != 50 {
		t.Errorf("size should default to the view box, got %v x %v", icon.Width, icon.Height)
	}
	inner := icon.FindGroup("inner")
	if inner == nil || len(inner.Children) != 2 {
		t.Fatalf("unexpected group %v", inner)
	}
	ellipse := inner.Children[0].(*SvgPath)
	if ellipse.Style.FillOpacity != 0.5 {
		t.Errorf("opacity should be inherited, got %v", ellipse.Style.FillOpacity)
	}
	if icon.FindPath("l") == nil {
		t.Error("missing line")
	}
	outer := icon.FindGroup("outer")
	if len(outer.Children) != 2 {
		t.Errorf("unexpected children %v", outer.Children)
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := ReadIconStream(strings.NewReader(""), IgnoreErrorMode); err == nil {
		t.Error("expected error for empty input")
	}
	src := `<svg viewBox="0 0 10 10"><unknown/></svg>`
	if _, err := ReadIconStream(strings.NewReader(src), StrictErrorMode); err == nil {
		t.Error("expected error in strict mode")
	}
	if _, err := ReadIconStream(strings.NewReader(src), IgnoreErrorMode); err != nil {
		t.Error(err)
	}
	bad := `<svg viewBox="0 0 10 10"><path d="M 1 2 L 3"/></svg>`
	if _, err := ReadIconStream(strings.NewReader(bad), IgnoreErrorMode); err == nil {
		t.Error("expected error for invalid path data")
	}
	badTransform := `<svg viewBox="0 0 10 10"><g transform="rotate(1,2)"></g></svg>`
	if _, err := ReadIconStream(strings.NewReader(badTransform), IgnoreErrorMode); err == nil {
		t.Error("expected error for invalid transform")
	}
}

func TestTransforms(t *testing.T) {
	c := &iconCursor{}
	m, err := c.parseTransform("translate(10) scale(2, 3)")
	if err != nil {
		t.Fatal(err)
	}
	if x, y := m.Transform(1, 1); x != 12 || y != 3 {
		t.Errorf("unexpected point %v %v", x, y)
	}
	m, err = c.parseTransform("rotate(90, 5, 5)")
	if err != nil {
		t.Fatal(err)
	}
	if x, y := m.Transform(5, 0); math.Abs(x-10) > 1e-9 || math.Abs(y-5) > 1e-9 {
		t.Errorf("unexpected point %v %v", x, y)
	}
}

func TestParseUnits(t *testing.T) {
	c := &iconCursor{icon: newIcon()}
	c.icon.ViewBox = Bounds{W: 200, H: 100}
	for _, test := range []struct {
		in   string
		ref  percentageReference
		want float64
	}{
		{"12px", widthPercentage, 12},
		{" 3.5 ", widthPercentage, 3.5},
		{"50%", widthPercentage, 100},
		{"50%", heightPercentage, 50},
	} {
		got, err := c.parseUnit(test.in, test.ref)
		if err != nil || got != test.want {
			t.Errorf("parseUnit(%q) = %v, %v", test.in, got, err)
		}
	}
	if f, _ := readFraction("25%"); f != 0.25 {
		t.Errorf("unexpected fraction %v", f)
	}
}

func TestReadShapes(t *testing.T) {
	src := `<svg viewBox="0 0 10 10">
	<defs><line id="l" x1="0" y1="0" x2="1" y2="2" stroke="red"/></defs>
	<polyline id="pl" points="0,0 1,0 1,1" fill="none" stroke="red"/>
	<polygon id="pg" points="0,0 1,0 1,1"/>
	<polygon id="short" points="0,0 1,0"/>
	<rect id="r" x="1" y="2" width="3" height="4"/>
	<rect id="empty" width="0" height="4"/>
	<circle id="c" cx="5" cy="5" r="2" rx="3"/>
	<ellipse id="e" cx="5" cy="5" rx="3" ry="2"/>
	<use href="#l" x="3" y="4"/>
</svg>`
	icon, err := ReadIconStream(strings.NewReader(src), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	for name, expected := range map[string]string{
		"l":  "M3.000,4.000 L4.000,6.000",
		"pl": "M0.000,0.000 L1.000,0.000 L1.000,1.000",
		"pg": "M0.000,0.000 L1.000,0.000 L1.000,1.000 Z",
	} {
		p := icon.FindPath(name)
		if p == nil {
			t.Fatalf("missing path %s", name)
		}
		if got := p.Path.String(); got != expected {
			t.Errorf("%s: expected %s, got %s", name, expected, got)
		}
	}
	if icon.FindPath("short") != nil || icon.FindPath("empty") != nil {
		t.Error("degenerate shapes should not be drawn")
	}
	if icon.FindPath("r") == nil {
		t.Fatal("missing rectangle")
	}
	c, e := icon.FindPath("c"), icon.FindPath("e")
	if c == nil || e == nil || c.Path.String() != e.Path.String() {
		t.Error("rx should override r")
	}

	for _, bad := range []string{
		`<svg><polyline points="0,0 1"/></svg>`,
		`<svg><use href="l"/></svg>`,
		`<svg><use href="#missing"/></svg>`,
		`<svg><rect width="1x"/></svg>`,
		`<svg><linearGradient id=""/></svg>`,
	} {
		if _, err := ReadIconStream(strings.NewReader(bad), IgnoreErrorMode); err == nil {
			t.Errorf("%s: expected error", bad)
		}
	}
}

func TestReadRadialGradient(t *testing.T) {
	src := `<svg viewBox="0 0 10 10">
	<radialGradient id="g" cx="0.2" cy="0.3" fy="0.9" r="0.4">
		<stop offset="0.5" stop-color="red" stop-opacity="0.25"/>
	</radialGradient>
	<stop offset="1"/>
	<rect id="r" width="2" height="2" fill="url(#g)"/>
</svg>`
	icon, err := ReadIconStream(strings.NewReader(src), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	grad, ok := icon.FindPath("r").Style.FillerColor.(Gradient)
	if !ok {
		t.Fatal("expected a gradient")
	}
	if dir := grad.Direction.(Radial); dir != (Radial{0.2, 0.3, 0.2, 0.9, 0.4, 0.5}) {
		t.Errorf("unexpected direction %v", dir)
	}
	if len(grad.Stops) != 1 || grad.Stops[0].Offset != 0.5 || grad.Stops[0].Opacity != 0.25 {
		t.Errorf("unexpected stops %v", grad.Stops)
	}
}
