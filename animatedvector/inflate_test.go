package animatedvector

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/benoitkugler/okavd/animator"
	"github.com/benoitkugler/okavd/svgicon"
)

const avdXML = `<?xml version="1.0" encoding="utf-8"?>
<animated-vector xmlns:android="http://schemas.android.com/apk/res/android"
	android:drawable="@drawable/graphic"
	android:changingConfigurations="orientation">
	<target android:name="rot" android:animation="@anim/rotation" />
	<target android:name="p" android:animation="anim/fill.xml" />
	<target android:name="nothing" />
</animated-vector>`

func testResources() Resources {
	return NewResources(fstest.MapFS{
		"drawable/graphic.svg": {Data: []byte(graphicSVG)},
		"drawable/avd.xml":     {Data: []byte(avdXML)},
		"anim/rotation.xml": {Data: []byte(`<objectAnimator android:propertyName="rotation"
			android:duration="100" android:valueFrom="0" android:valueTo="360"/>`)},
		"anim/fill.xml": {Data: []byte(`<set>
			<objectAnimator android:propertyName="fillColor" android:duration="200"
				android:valueFrom="#ff0000" android:valueTo="#0000ff"/>
		</set>`)},
		"anim/path.xml": {Data: []byte(`<objectAnimator android:propertyName="pathData"
			android:valueFrom="M0 0" android:valueTo="M1 1" android:valueType="pathType"/>`)},
		"drawable/broken.svg": {Data: []byte(`<svg><path d="M0 0 L1 1"`)},
	})
}

func TestLoad(t *testing.T) {
	d, err := Load(testResources(), "drawable/avd.xml")
	if err != nil {
		t.Fatal(err)
	}
	state := d.ConstantState()
	if names := state.TargetNames(); strings.Join(names, ",") != "rot,p" {
		t.Errorf("unexpected targets %v", names)
	}
	if state.ChangingConfigurations() != ConfigOrientation {
		t.Errorf("unexpected configurations %s", state.ChangingConfigurations())
	}
	if d.IntrinsicWidth() != 24 {
		t.Errorf("graphic not loaded")
	}

	d.Start()
	d.Handler().DoFrame(0)
	d.Handler().DoFrame(ms(100))
	assertClose(t, rotation(t, d), 360)
	d.Stop()
	if c := fill(t, d); c.B != 0xff || c.R != 0 {
		t.Errorf("unexpected fill %v", c)
	}
}

func TestInflateMissingGraphic(t *testing.T) {
	for _, src := range []string{
		`<animated-vector/>`,
		`<animated-vector drawable="@drawable/unknown"/>`,
		`<animated-vector drawable="@drawable/broken"/>`,
	} {
		res := testResources()
		res.ErrorMode = svgicon.StrictErrorMode
		d, err := Inflate(res, strings.NewReader(src))
		if err != nil {
			t.Fatalf("%s: %s", src, err)
		}
		if d.Graphic() == nil || len(d.Graphic().Root.Children) != 0 {
			t.Errorf("%s: expected an empty graphic", src)
		}
		d.Start()
		d.Stop()
	}
}

func TestInflateUnknownTarget(t *testing.T) {
	src := `<animated-vector drawable="@drawable/graphic">
		<target name="missing" animation="@anim/rotation"/>
	</animated-vector>`
	d, err := Inflate(testResources(), strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	d.Start()
	d.Stop()
	assertClose(t, rotation(t, d), 0)
}

func TestInflateErrors(t *testing.T) {
	for _, src := range []string{
		``,
		`<vector/>`,
		`<animated-vector changingConfigurations="keyboard"/>`,
		`<animated-vector><target name="rot" animation="@anim/unknown"/></animated-vector>`,
		`<animated-vector><target name="rot" animation="@color/red"/></animated-vector>`,
		`<animated-vector><target name="rot"`,
	} {
		if _, err := Inflate(testResources(), strings.NewReader(src)); err == nil {
			t.Errorf("expected error for %s", src)
		}
	}

	src := `<animated-vector><target name="p" animation="@anim/path"/></animated-vector>`
	_, err := Inflate(testResources(), strings.NewReader(src))
	if !errors.Is(err, animator.ErrUnsupportedValueType) {
		t.Errorf("expected unsupported value type, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	res := testResources()
	for _, test := range []struct {
		ref, expected string
	}{
		{"@drawable/icon", "drawable/icon.svg"},
		{"@anim/spin", "anim/spin.xml"},
		{"@animator/spin", "animator/spin.xml"},
		{"anim/spin.xml", "anim/spin.xml"},
		{"/drawable/./icon.svg", "drawable/icon.svg"},
	} {
		got, err := res.Resolve(test.ref)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.expected {
			t.Errorf("Resolve(%s) = %s, expected %s", test.ref, got, test.expected)
		}
	}
	for _, ref := range []string{"@drawable", "@drawable/", "@layout/main", "@anim/a/b", "../secret"} {
		if _, err := res.Resolve(ref); err == nil {
			t.Errorf("expected error for %s", ref)
		}
	}
}
