package svgicon

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Pattern is either a PlainColor or a Gradient
type Pattern interface {
	isPattern()
}

// PlainColor is a uniform color
type PlainColor struct {
	color.NRGBA
}

func (PlainColor) isPattern() {}

// NewPlainColor returns a PlainColor from its components
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{color.NRGBA{R: r, G: g, B: b, A: a}}
}

// copyPattern returns a pattern not sharing memory with p
func copyPattern(p Pattern) Pattern {
	if g, ok := p.(Gradient); ok {
		g.Stops = append([]GradStop(nil), g.Stops...)
		return g
	}
	return p
}

// optionnalColor is returned by the parser, since
// "none" is valid and means no painting
type optionnalColor struct {
	valid bool
	color color.NRGBA
}

func (o optionnalColor) asPattern() Pattern {
	if !o.valid {
		return nil
	}
	return PlainColor{o.color}
}

func (o optionnalColor) asColor() color.Color {
	if !o.valid {
		return color.Transparent
	}
	return o.color
}

// parseSVGColorNum reads the SFG color string e.g. #FBD9BD
func parseSVGColorNum(colorStr string) (r, g, b uint8, err error) {
	colorStr = strings.TrimPrefix(colorStr, "#")
	var t uint64
	if len(colorStr) == 3 {
		// SVG specs say duplicate characters in case of 3 digit hex number
		colorStr = string([]byte{colorStr[0], colorStr[0],
			colorStr[1], colorStr[1], colorStr[2], colorStr[2]})
	}
	if len(colorStr) != 6 {
		return 0, 0, 0, errParamMismatch
	}
	for _, v := range []struct {
		c *uint8
		s string
	}{
		{&r, colorStr[0:2]},
		{&g, colorStr[2:4]},
		{&b, colorStr[4:6]}} {
		t, err = strconv.ParseUint(v.s, 16, 8)
		if err != nil {
			return
		}
		*v.c = uint8(t)
	}
	return
}

// parseSVGColor parses an SVG color string in all forms
// including all SVG1.1 names, obtained from the colornames package
func parseSVGColor(colorStr string) (optionnalColor, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	switch v {
	case "none", "":
		// invalid signals that the function (fill or stroke) is off;
		// not the same as black
		return optionnalColor{}, nil
	case "transparent":
		return optionnalColor{valid: true}, nil
	case "currentcolor":
		return optionnalColor{valid: true, color: color.NRGBA{A: 0xff}}, nil
	default:
		cn, ok := colornames.Map[v]
		if ok {
			r, g, b, a := cn.RGBA()
			return optionnalColor{valid: true, color: color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}}, nil
		}
	}
	for _, prefix := range [...]string{"rgba(", "rgb("} {
		cStr := strings.TrimPrefix(v, prefix)
		if cStr == v {
			continue
		}
		cStr = strings.TrimSuffix(cStr, ")")
		vals := strings.Split(cStr, ",")
		if len(vals) != 3 && len(vals) != 4 {
			return optionnalColor{}, errParamMismatch
		}
		out := color.NRGBA{A: 0xff}
		var err error
		for i, dst := range [...]*uint8{&out.R, &out.G, &out.B} {
			*dst, err = parseColorValue(vals[i])
			if err != nil {
				return optionnalColor{}, err
			}
		}
		if len(vals) == 4 {
			alpha, err := strconv.ParseFloat(strings.TrimSpace(vals[3]), 64)
			if err != nil {
				return optionnalColor{}, err
			}
			out.A = uint8(clamp01(alpha) * 0xff)
		}
		return optionnalColor{valid: true, color: out}, nil
	}
	if v[0] == '#' {
		r, g, b, err := parseSVGColorNum(v)
		if err != nil {
			return optionnalColor{}, err
		}
		return optionnalColor{valid: true, color: color.NRGBA{r, g, b, 0xFF}}, nil
	}
	return optionnalColor{}, errParamMismatch
}

func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, errParamMismatch
	}
	if v[len(v)-1] == '%' {
		n, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		if err != nil {
			return 0, err
		}
		return uint8(clamp01(n/100) * 0xFF), nil
	}
	n, err := strconv.Atoi(v)
	if n > 255 {
		n = 255
	} else if n < 0 {
		n = 0
	}
	return uint8(n), err
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
