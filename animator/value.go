package animator

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Value is an animated value: Float, Int or Color.
type Value interface {
	// Lerp returns the value at `fraction` between v (at 0) and `end` (at 1),
	// which must have the same type as v.
	Lerp(end Value, fraction float64) Value

	// applyTo sets the property of the target, returning false
	// if the target does not support it.
	applyTo(target interface{}, property string) bool
	// readFrom reads the current value of the property,
	// with the same type as v.
	readFrom(target interface{}, property string) (Value, bool)
}

// FloatTarget is implemented by targets with numeric properties.
type FloatTarget interface {
	Float(property string) (float64, bool)
	SetFloat(property string, v float64) bool
}

// ColorTarget is implemented by targets with color properties.
type ColorTarget interface {
	Color(property string) (color.NRGBA, bool)
	SetColor(property string, c color.NRGBA) bool
}

// Float is a numeric value, evaluated linearly.
type Float float64

// Int is an integer value, evaluated linearly and truncated.
type Int int

// Color is a color value, evaluated linearly
// on each of its channels.
type Color color.NRGBA

func (v Float) Lerp(end Value, fraction float64) Value {
	e := end.(Float)
	return v + Float(fraction)*(e-v)
}

func (v Float) applyTo(target interface{}, property string) bool {
	t, ok := target.(FloatTarget)
	return ok && t.SetFloat(property, float64(v))
}

func (Float) readFrom(target interface{}, property string) (Value, bool) {
	t, ok := target.(FloatTarget)
	if !ok {
		return nil, false
	}
	f, ok := t.Float(property)
	return Float(f), ok
}

func (v Int) Lerp(end Value, fraction float64) Value {
	e := end.(Int)
	return v + Int(fraction*float64(e-v))
}

func (v Int) applyTo(target interface{}, property string) bool {
	t, ok := target.(FloatTarget)
	return ok && t.SetFloat(property, float64(v))
}

func (Int) readFrom(target interface{}, property string) (Value, bool) {
	t, ok := target.(FloatTarget)
	if !ok {
		return nil, false
	}
	f, ok := t.Float(property)
	return Int(f), ok
}

func lerpChannel(a, b uint8, fraction float64) uint8 {
	return uint8(int(a) + int(fraction*float64(int(b)-int(a))))
}

func (v Color) Lerp(end Value, fraction float64) Value {
	e := end.(Color)
	return Color{
		R: lerpChannel(v.R, e.R, fraction),
		G: lerpChannel(v.G, e.G, fraction),
		B: lerpChannel(v.B, e.B, fraction),
		A: lerpChannel(v.A, e.A, fraction),
	}
}

func (v Color) applyTo(target interface{}, property string) bool {
	t, ok := target.(ColorTarget)
	return ok && t.SetColor(property, color.NRGBA(v))
}

func (Color) readFrom(target interface{}, property string) (Value, bool) {
	t, ok := target.(ColorTarget)
	if !ok {
		return nil, false
	}
	c, ok := t.Color(property)
	return Color(c), ok
}

func (v Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", v.A, v.R, v.G, v.B)
}

// ParseColor reads a color in one of the forms #RGB, #ARGB, #RRGGBB
// or #AARRGGBB.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("invalid color %q: missing #", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3, 4:
		// expand each digit
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex = "ff" + hex
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{A: uint8(n >> 24), R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}
