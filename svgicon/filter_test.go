package svgicon

import (
	"image/color"
	"strings"
	"testing"
)

func TestTintFilter(t *testing.T) {
	path := color.NRGBA{R: 0xff, G: 0x80, A: 0x80}
	tint := color.NRGBA{B: 0xff, A: 0xff}
	for _, test := range []struct {
		mode     TintMode
		expected color.NRGBA
	}{
		{SrcIn, color.NRGBA{B: 0xff, A: 0x80}},
		{Src, tint},
		{SrcAtop, color.NRGBA{B: 0xff, A: 0x80}},
		{Multiply, color.NRGBA{A: 0x80}},
	} {
		if got := (TintFilter{tint, test.mode}).Filter(path); got != test.expected {
			t.Errorf("%s: expected %v, got %v", test.mode, test.expected, got)
		}
	}

	half := TintFilter{color.NRGBA{B: 0xff, A: 0x80}, SrcAtop}
	if got := half.Filter(color.NRGBA{R: 0xff, A: 0xff}); got != (color.NRGBA{R: 0x7f, B: 0x80, A: 0xff}) {
		t.Errorf("unexpected blend %v", got)
	}
}

type grayFilter struct{}

func (grayFilter) Filter(c color.NRGBA) color.NRGBA {
	g := uint8((int(c.R) + int(c.G) + int(c.B)) / 3)
	return color.NRGBA{g, g, g, c.A}
}

func fillColors(icon *SvgIcon) []Pattern {
	var d recordDriver
	icon.Draw(&d, 1)
	return d.fill.colors
}

func TestColorFilter(t *testing.T) {
	icon := parseIcon(t, "testdata/arrow.svg")
	icon.SetTint(color.White)
	icon.SetTintMode(Multiply)
	if icon.TintMode() != Multiply {
		t.Fatal("tint mode not set")
	}
	// black multiplied by white stays black
	if c := fillColors(icon)[0]; c != (PlainColor{color.NRGBA{A: 0xff}}) {
		t.Errorf("unexpected tinted color %v", c)
	}

	icon.SetColorFilter(grayFilter{})
	if icon.ColorFilter() == nil {
		t.Fatal("missing color filter")
	}
	grad, ok := fillColors(icon)[1].(Gradient)
	if !ok {
		t.Fatal("expected a gradient")
	}
	if c := grad.Stops[0].StopColor; c != (color.NRGBA{0x55, 0x55, 0x55, 0xff}) {
		t.Errorf("color filter should take precedence over the tint, got %v", c)
	}
	if c := icon.FindPath("arrow").Style.FillerColor; c != (PlainColor{color.NRGBA{A: 0xff}}) {
		t.Errorf("filters should not modify the paths: %v", c)
	}

	icon.SetColorFilter(nil)
	icon.SetTint(nil)
	if c := fillColors(icon)[0]; c != (PlainColor{color.NRGBA{A: 0xff}}) {
		t.Errorf("unexpected color %v", c)
	}
}

func TestStateTint(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	icon := parseIcon(t, "testdata/arrow.svg")
	cb := new(invalidations)
	icon.SetCallback(cb)

	if icon.IsStateful() || icon.SetState([]string{"pressed"}) {
		t.Error("icon without tint list should not be stateful")
	}
	icon.SetTintList(&StateTint{
		Entries: []StateColor{{State: "pressed", Color: red}},
		Default: color.White,
	})
	if !icon.IsStateful() {
		t.Error("expected a stateful icon")
	}
	if icon.Tint() != red {
		t.Errorf("tint should follow the current state, got %v", icon.Tint())
	}
	if icon.SetState([]string{"pressed", "focused"}) {
		t.Error("same tint should not change the appearance")
	}
	count := cb.count
	if !icon.SetState(nil) || icon.Tint() != color.White || cb.count != count+1 {
		t.Error("state change should update the tint")
	}

	cl := icon.Clone(nil)
	cl.SetState([]string{"pressed"})
	if len(icon.State()) != 0 || cl.Tint() != red {
		t.Error("clone state should be independent")
	}

	icon.SetTint(red)
	if icon.IsStateful() {
		t.Error("plain tint should remove the tint list")
	}
}

func TestLevel(t *testing.T) {
	icon := NewIcon()
	if icon.SetLevel(5000) {
		t.Error("level should not change the drawing")
	}
	if icon.Level() != 5000 {
		t.Errorf("unexpected level %d", icon.Level())
	}
}

func TestOpacity(t *testing.T) {
	icon := parseIcon(t, "testdata/arrow.svg")
	if icon.Opacity() != Translucent {
		t.Error("expected translucent icon")
	}
	icon.SetAlpha(0)
	if icon.Opacity() != Transparent {
		t.Error("zero alpha should be transparent")
	}
	icon.SetAlpha(0xff)
	icon.SetVisible(false, false)
	if icon.Opacity() != Transparent {
		t.Error("hidden icon should be transparent")
	}

	if NewIcon().Opacity() != Transparent {
		t.Error("empty icon should be transparent")
	}
	empty, err := ReadIconStream(strings.NewReader(`<svg viewBox="0 0 4 4">
		<g><rect width="2" height="2" fill="none" stroke="none"/></g>
		<rect width="2" height="2" fill="red" fill-opacity="0"/>
	</svg>`), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Opacity() != Transparent {
		t.Error("unpainted paths should be transparent")
	}
}
