package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/okavd/internal/logging"
	"github.com/benoitkugler/okavd/svgpath"
	"golang.org/x/image/math/fixed"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unparsed SVG elements
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for unparsed SVG elements
	WarnErrorMode
	// StrictErrorMode causes an error if an SVG element is not parsed
	StrictErrorMode
)

var (
	errParamMismatch = svgpath.ErrParamMismatch
	errZeroLengthID  = errors.New("zero length id")
)

type (
	// iconCursor is used while parsing SVG files
	iconCursor struct {
		icon       *SvgIcon
		errorMode  ErrorMode
		path       svgpath.Path // shape being read
		points     []float64
		curX, curY float64 // offset of the current <use> element

		styleStack                                      []PathStyle
		groups                                          []*Group // never empty, the root comes first
		grad                                            *Gradient
		inTitleText, inDescText, inGrad, inDefs, inRoot bool
		currentDef                                      []definition
	}

	// definition is used to store what's given in a def tag
	definition struct {
		ID, Tag string
		Attrs   []xml.Attr
	}
)

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

func (c *iconCursor) handleError(errStr string) error {
	switch c.errorMode {
	case StrictErrorMode:
		return errors.New(errStr)
	case WarnErrorMode:
		logging.Warnf("svgicon: %s", errStr)
	}
	return nil
}

func (c *iconCursor) getPoints(v string) (err error) {
	c.points, err = svgpath.ParseNumbers(v)
	return err
}

func (c *iconCursor) compilePath(d string) error {
	path, err := svgpath.Compile(d)
	if err != nil {
		return fmt.Errorf("invalid path data: %w", err)
	}
	path.AddTo(&c.path, Identity.Translate(c.curX, c.curY))
	return nil
}

func (c *iconCursor) ellipseAt(cx, cy, rx, ry float64) {
	c.path.AddEllipse(cx, cy, rx, ry)
}

func (c *iconCursor) currentGroup() *Group { return c.groups[len(c.groups)-1] }

// pushGroup opens a new group, child of the current one,
// using the transform of the current style
func (c *iconCursor) pushGroup(attrs []xml.Attr) {
	g := newGroup(readID(attrs))
	g.Transform = c.styleStack[len(c.styleStack)-1].transform
	parent := c.currentGroup()
	parent.Children = append(parent.Children, g)
	c.groups = append(c.groups, g)
	c.icon.register(g.Name, g)
}

// popGroup closes the current group, the root being never closed
func (c *iconCursor) popGroup() {
	if len(c.groups) > 1 {
		c.groups = c.groups[:len(c.groups)-1]
	}
}

func readID(attrs []xml.Attr) string {
	for _, attr := range attrs {
		if attr.Name.Local == "id" {
			return attr.Value
		}
	}
	return ""
}

func (c *iconCursor) readTransformAttr(m1 Matrix2D, k string) (Matrix2D, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0]*math.Pi/180).
				Translate(-c.points[1], -c.points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(c.points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m1 = m1.Scale(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: c.points[0],
				B: c.points[1],
				C: c.points[2],
				D: c.points[3],
				E: c.points[4],
				F: c.points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// parseTransform reads a transform attribute. The result
// is relative to the parent element: group transforms are composed
// when drawing.
func (c *iconCursor) parseTransform(v string) (Matrix2D, error) {
	ts := strings.Split(v, ")")
	m1 := Identity
	for _, t := range ts {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		err := c.getPoints(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = c.readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])))
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

func parseCap(v string) (CapMode, bool) {
	switch v {
	case "butt":
		return ButtCap, true
	case "round":
		return RoundCap, true
	case "square":
		return SquareCap, true
	case "cubic":
		return CubicCap, true
	case "quadratic":
		return QuadraticCap, true
	}
	return NilCap, false
}

func (c *iconCursor) readStyleAttr(curStyle *PathStyle, k, v string) error {
	switch k {
	case "fill":
		gradient, ok := c.readGradURL(v)
		if ok {
			curStyle.FillerColor = gradient
			break
		}
		optCol, err := parseSVGColor(v)
		curStyle.FillerColor = optCol.asPattern()
		return err
	case "stroke":
		gradient, ok := c.readGradURL(v)
		if ok {
			curStyle.LinerColor = gradient
			break
		}
		col, errc := parseSVGColor(v)
		if errc != nil {
			return errc
		}
		curStyle.LinerColor = col.asPattern()
	case "fill-rule":
		curStyle.UseNonZeroWinding = v != "evenodd"
	case "stroke-linegap":
		switch v {
		case "flat":
			curStyle.Join.LineGap = FlatGap
		case "round":
			curStyle.Join.LineGap = RoundGap
		case "cubic":
			curStyle.Join.LineGap = CubicGap
		case "quadratic":
			curStyle.Join.LineGap = QuadraticGap
		}
	case "stroke-leadlinecap":
		if cp, ok := parseCap(v); ok {
			curStyle.Join.LeadLineCap = cp
		}
	case "stroke-linecap":
		if cp, ok := parseCap(v); ok {
			curStyle.Join.TrailLineCap = cp
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			curStyle.Join.LineJoin = Miter
		case "miter-clip":
			curStyle.Join.LineJoin = MiterClip
		case "arc-clip":
			curStyle.Join.LineJoin = ArcClip
		case "round":
			curStyle.Join.LineJoin = Round
		case "arc":
			curStyle.Join.LineJoin = Arc
		case "bevel":
			curStyle.Join.LineJoin = Bevel
		}
	case "stroke-miterlimit":
		mLimit, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.Join.MiterLimit = fToFixed(mLimit)
	case "stroke-width":
		width, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.LineWidth = width
	case "stroke-dashoffset":
		dashOffset, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.Dash.DashOffset = dashOffset
	case "stroke-dasharray":
		if v == "none" {
			curStyle.Dash.Dash = nil
			break
		}
		dashes := splitOnCommaOrSpace(v)
		dList := make([]float64, len(dashes))
		for i, dstr := range dashes {
			d, err := parseBasicFloat(strings.TrimSpace(dstr))
			if err != nil {
				return err
			}
			dList[i] = d
		}
		curStyle.Dash.Dash = dList
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.FillOpacity *= op
		}
		if k != "fill-opacity" {
			curStyle.LineOpacity *= op
		}
	case "transform":
		m, err := c.parseTransform(v)
		if err != nil {
			return err
		}
		curStyle.transform = m
	}
	return nil
}

// pushStyle parses the style element, and push it on the style stack. Only color and opacity are supported
// for fill. Note that this parses both the contents of a style attribute plus
// direct fill and opacity attributes.
// Transforms are not inherited, since groups apply them.
func (c *iconCursor) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	// Make a copy of the top style
	curStyle := c.styleStack[len(c.styleStack)-1]
	curStyle.transform = Identity
	for _, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) == 2 {
			k := strings.ToLower(kv[0])
			k = strings.TrimSpace(k)
			v := strings.TrimSpace(kv[1])
			err := c.readStyleAttr(&curStyle, k, v)
			if err != nil {
				return fmt.Errorf("invalid style attribute %s: %w", k, err)
			}
		}
	}
	c.styleStack = append(c.styleStack, curStyle) // Push style onto stack
	return nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

func (c *iconCursor) readStartElement(se xml.StartElement) (err error) {
	var skipDef bool
	if se.Name.Local == "radialGradient" || se.Name.Local == "linearGradient" || c.inGrad {
		skipDef = true
	}
	if c.inDefs && !skipDef {
		ID := readID(se.Attr)
		if ID != "" && len(c.currentDef) > 0 {
			c.icon.defs[c.currentDef[0].ID] = c.currentDef
			c.currentDef = make([]definition, 0)
		}
		c.currentDef = append(c.currentDef, definition{
			ID:    ID,
			Tag:   se.Name.Local,
			Attrs: se.Attr,
		})
		return nil
	}
	df, ok := drawFuncs[se.Name.Local]
	if !ok {
		return c.handleError("Cannot process svg element " + se.Name.Local)
	}
	err = df(c, se.Attr)
	c.flushPath(se.Attr)
	return err
}

// flushPath adds the shape read by the cursor, if any,
// to the current group
func (c *iconCursor) flushPath(attrs []xml.Attr) {
	if len(c.path) == 0 {
		return
	}
	svgp := &SvgPath{
		Name:  readID(attrs),
		Path:  c.path.Copy(),
		Style: c.styleStack[len(c.styleStack)-1].copy(),
	}
	g := c.currentGroup()
	g.Children = append(g.Children, svgp)
	c.icon.register(svgp.Name, svgp)
	c.path = c.path[:0]
}

// unitSuffixes are suffixes sometimes applied to the width and height attributes
// of the svg element.
var unitSuffixes = [...]string{"cm", "mm", "px", "pt", "dp"}

// trimSuffixes removes unitSuffixes from any number that is not just numeric
func trimSuffixes(a string) (b string) {
	if a == "" || (a[len(a)-1] >= '0' && a[len(a)-1] <= '9') {
		return a
	}
	b = a
	for _, v := range unitSuffixes {
		b = strings.TrimSuffix(b, v)
	}
	return
}

// parseBasicFloat strips suffixes before passing to strconv.ParseFloat
func parseBasicFloat(s string) (float64, error) {
	return strconv.ParseFloat(trimSuffixes(strings.TrimSpace(s)), 64)
}

type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// parseUnit reads a length, resolving percentages against the view box
func (c *iconCursor) parseUnit(s string, asPerc percentageReference) (float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return parseBasicFloat(s)
	}
	value, err := parseBasicFloat(strings.TrimSuffix(s, "%"))
	if err != nil {
		return 0, err
	}
	value /= 100
	vb := c.icon.ViewBox
	switch asPerc {
	case widthPercentage:
		return value * vb.W, nil
	case heightPercentage:
		return value * vb.H, nil
	default:
		return value * math.Sqrt(vb.W*vb.W+vb.H*vb.H) / math.Sqrt2, nil
	}
}

func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = parseBasicFloat(v)
	f /= d
	return
}

// readGradURL resolves a `url(#id)` reference to a gradient,
// returning false if `v` is not a known gradient reference.
func (c *iconCursor) readGradURL(v string) (Gradient, bool) {
	if !(strings.HasPrefix(v, "url(") && strings.HasSuffix(v, ")")) {
		return Gradient{}, false
	}
	urlStr := strings.TrimSpace(v[4 : len(v)-1])
	if !strings.HasPrefix(urlStr, "#") {
		return Gradient{}, false
	}
	grad, ok := c.icon.grads[urlStr[1:]]
	if !ok {
		return Gradient{}, false
	}
	return copyPattern(*grad).(Gradient), true
}

func (c *iconCursor) readGradAttr(attr xml.Attr) (err error) {
	switch attr.Name.Local {
	case "gradientTransform":
		c.grad.Matrix, err = c.parseTransform(attr.Value)
	case "gradientUnits":
		switch strings.TrimSpace(attr.Value) {
		case "userSpaceOnUse":
			c.grad.Units = UserSpaceOnUse
		case "objectBoundingBox":
			c.grad.Units = ObjectBoundingBox
		}
	case "spreadMethod":
		switch strings.TrimSpace(attr.Value) {
		case "pad":
			c.grad.Spread = PadSpread
		case "reflect":
			c.grad.Spread = ReflectSpread
		case "repeat":
			c.grad.Spread = RepeatSpread
		}
	}
	return err
}
