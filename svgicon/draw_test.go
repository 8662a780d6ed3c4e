package svgicon

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/math/fixed"
)

// recorder is a Filler and a Stroker storing what it receives
type recorder struct {
	starts  []fixed.Point26_6 // never cleared
	points  []fixed.Point26_6
	colors  []Pattern
	opacity []float64
	draws   int
}

func (r *recorder) Clear() { r.points = r.points[:0] }
func (r *recorder) Start(a fixed.Point26_6) {
	r.points = append(r.points, a)
	r.starts = append(r.starts, a)
}
func (r *recorder) Line(b fixed.Point26_6) { r.points = append(r.points, b) }
func (r *recorder) QuadBezier(b, c fixed.Point26_6) { r.points = append(r.points, c) }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) { r.points = append(r.points, d) }
func (r *recorder) Stop(bool) {}
func (r *recorder) SetWinding(bool) {}
func (r *recorder) SetStrokeOptions(StrokeOptions) {}
func (r *recorder) Draw() { r.draws++ }
func (r *recorder) SetColor(color Pattern, opacity float64) {
	r.colors = append(r.colors, color)
	r.opacity = append(r.opacity, opacity)
}

type recordDriver struct {
	fill, stroke recorder
}

func (d *recordDriver) SetupDrawers(willFill, willStroke bool) (f Filler, s Stroker) {
	if willFill {
		f = &d.fill
	}
	if willStroke {
		s = &d.stroke
	}
	return f, s
}

type invalidations struct {
	count     int
	scheduled int
}

func (c *invalidations) InvalidateDrawable(interface{}) { c.count++ }
func (c *invalidations) ScheduleDrawable(interface{}, Runnable, time.Duration) { c.scheduled++ }
func (c *invalidations) UnscheduleDrawable(interface{}, Runnable) { c.scheduled-- }

func TestDraw(t *testing.T) {
	icon := parseIcon(t, "testdata/arrow.svg")

	var d recordDriver
	icon.Draw(&d, 1)
	if d.fill.draws != 3 || d.stroke.draws != 2 {
		t.Errorf("unexpected draw calls: %d fills, %d strokes", d.fill.draws, d.stroke.draws)
	}

	icon.SetVisible(false, false)
	d = recordDriver{}
	icon.Draw(&d, 1)
	if d.fill.draws != 0 {
		t.Error("hidden icon should not be drawn")
	}
	icon.SetVisible(true, false)

	icon.SetTint(color.White)
	icon.SetAlpha(0x80)
	d = recordDriver{}
	icon.Draw(&d, 1)
	white := color.NRGBA{0xff, 0xff, 0xff, 0xff}
	for _, c := range d.fill.colors {
		switch c := c.(type) {
		case PlainColor:
			if c.NRGBA != white {
				t.Errorf("tint not applied: %v", c)
			}
		case Gradient:
			for _, stop := range c.Stops {
				if stop.StopColor != white {
					t.Errorf("tint not applied to gradient stop: %v", stop.StopColor)
				}
			}
		}
	}
	if op := d.fill.opacity[0]; math.Abs(op-128./255) > 1e-9 {
		t.Errorf("unexpected opacity %v", op)
	}
}

func TestGroupMatrix(t *testing.T) {
	g := newGroup("g")
	g.SetFloat(PropRotation, 90)
	g.SetFloat(PropPivotX, 12)
	g.SetFloat(PropPivotY, 12)
	x, y := g.LocalMatrix().Transform(12, 4)
	if math.Abs(x-20) > 1e-9 || math.Abs(y-12) > 1e-9 {
		t.Errorf("unexpected point %v %v", x, y)
	}

	g = newGroup("g")
	g.SetFloat(PropScaleX, 2)
	g.SetFloat(PropTranslateY, 3)
	if x, y := g.LocalMatrix().Transform(1, 1); x != 2 || y != 4 {
		t.Errorf("unexpected point %v %v", x, y)
	}
	if g.SetFloat(PropFillColor, 1) {
		t.Error("groups have no fill")
	}
	if v, ok := g.Float(PropScaleY); !ok || v != 1 {
		t.Errorf("unexpected default scale %v", v)
	}
}

func TestAnimatedDraw(t *testing.T) {
	icon := parseIcon(t, "testdata/arrow.svg")
	icon.SetBounds(image.Rect(0, 0, 48, 48))
	rot := icon.FindGroup("rot")
	rot.SetFloat(PropTranslateX, 10)

	var d recordDriver
	icon.Draw(&d, 1)
	// first point of the arrow: (12,4) translated by (1,1) and (10,0), then scaled by 2
	p := d.fill.starts[0]
	if p.X != fixed.I(46) || p.Y != fixed.I(10) {
		t.Errorf("unexpected first point %v", p)
	}
}

func TestMirror(t *testing.T) {
	icon := parseIcon(t, "testdata/arrow.svg")
	if !icon.SetLayoutDirection(RightToLeft) {
		t.Fatal("auto mirrored icon should change")
	}
	var d recordDriver
	icon.Draw(&d, 1)
	// (12,4) + (1,1) mirrored around x = 12
	if p := d.fill.starts[0]; p.X != fixed.I(11) || p.Y != fixed.I(5) {
		t.Errorf("unexpected first point %v", p)
	}
}

func TestClone(t *testing.T) {
	icon := parseIcon(t, "testdata/arrow.svg")
	cb := new(invalidations)
	icon.SetCallback(cb)
	icon.SetAlpha(10)
	if cb.count != 1 {
		t.Errorf("expected one invalidation, got %d", cb.count)
	}

	owner := new(invalidations)
	cl := icon.Clone(owner)
	if cl.Callback() != owner {
		t.Error("clone should be bound to its owner")
	}
	if cl.TargetByName("root") != cl {
		t.Error("root name should resolve to the clone")
	}
	if cl.Alpha() != 10 {
		t.Errorf("alpha not copied: %d", cl.Alpha())
	}
	cl.FindGroup("rot").SetFloat(PropRotation, 45)
	cl.FindPath("arrow").SetColor(PropFillColor, color.NRGBA{G: 0xff, A: 0xff})
	if v, _ := icon.FindGroup("rot").Float(PropRotation); v != 0 {
		t.Errorf("original modified: %v", v)
	}
	if c, _ := icon.FindPath("arrow").Color(PropFillColor); c != (color.NRGBA{A: 0xff}) {
		t.Errorf("original modified: %v", c)
	}
	if cl.FindGroup("rot").Children[0] != cl.FindPath("arrow") {
		t.Error("names should point inside the cloned tree")
	}
	cl.InvalidateSelf()
	if owner.count != 1 || cb.count != 1 {
		t.Error("clone should only notify its owner")
	}
}

func TestCloneDuplicatedNames(t *testing.T) {
	const src = `<svg id="a" viewBox="0 0 10 10">
		<g id="a">
			<g id="a"><path id="p" d="M0 0L1 1"/></g>
		</g>
		<g id="b"><path id="b" d="M0 0L1 1"/></g>
	</svg>`
	icon, err := ReadIconStream(strings.NewReader(src), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	cl := icon.Clone(nil)
	for _, ic := range []*SvgIcon{icon, cl} {
		inner, ok := ic.TargetByName("a").(*Group)
		if !ok || len(inner.Children) != 1 || inner.Children[0] != ic.TargetByName("p") {
			t.Errorf("a should resolve to the innermost group, got %v", ic.TargetByName("a"))
		}
		if _, ok := ic.TargetByName("b").(*SvgPath); !ok {
			t.Errorf("b should resolve to the path, got %v", ic.TargetByName("b"))
		}
	}
}
