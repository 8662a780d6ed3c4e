package svgicon

import (
	"encoding/xml"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"
)

func init() {
	// useF refers to drawFuncs
	drawFuncs["use"] = useF
}

type svgFunc func(c *iconCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":            svgF,
	"g":              gF,
	"line":           lineF,
	"stop":           stopF,
	"rect":           rectF,
	"circle":         circleF,
	"ellipse":        circleF,
	"polyline":       polylineF,
	"polygon":        polygonF,
	"path":           pathF,
	"desc":           descF,
	"defs":           defsF,
	"title":          titleF,
	"linearGradient": linearGradientF,
	"radialGradient": radialGradientF,
}

func svgF(c *iconCursor, attrs []xml.Attr) error {
	if c.inRoot { // nested <svg> behave as groups
		c.pushGroup(attrs)
		return nil
	}
	c.inRoot = true
	c.icon.Root.Name = readID(attrs)
	c.icon.Root.Transform = c.styleStack[len(c.styleStack)-1].transform
	c.icon.register(c.icon.Root.Name, c.icon)
	c.icon.ViewBox = Bounds{}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "viewBox":
			if err = c.getPoints(attr.Value); err == nil && len(c.points) != 4 {
				err = errParamMismatch
			}
			if err == nil {
				c.icon.ViewBox = Bounds{X: c.points[0], Y: c.points[1], W: c.points[2], H: c.points[3]}
			}
		case "width":
			c.icon.Width, err = parseBasicFloat(attr.Value)
		case "height":
			c.icon.Height, err = parseBasicFloat(attr.Value)
		case "autoMirrored":
			c.icon.AutoMirrored = strings.TrimSpace(attr.Value) == "true"
		}
		if err != nil {
			return err
		}
	}
	// without viewBox, the user space is the viewport
	if c.icon.ViewBox.W == 0 {
		c.icon.ViewBox.W = c.icon.Width
	}
	if c.icon.ViewBox.H == 0 {
		c.icon.ViewBox.H = c.icon.Height
	}
	return nil
}

// gF opens a new group, closed on the matching end element
func gF(c *iconCursor, attrs []xml.Attr) error {
	c.pushGroup(attrs)
	return nil
}

// length binds an attribute to the value it sets, with the
// reference used to resolve percentages.
type length struct {
	value *float64
	ref   percentageReference
}

// readLengths fills the lengths found in `attrs`, ignoring other attributes.
func (c *iconCursor) readLengths(attrs []xml.Attr, lengths map[string]length) error {
	for _, attr := range attrs {
		l, ok := lengths[attr.Name.Local]
		if !ok {
			continue
		}
		v, err := c.parseUnit(attr.Value, l.ref)
		if err != nil {
			return err
		}
		*l.value = v
	}
	return nil
}

// at converts user space coordinates, offset by the current <use>
// translation, to a path point.
func (c *iconCursor) at(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fToFixed(x + c.curX), Y: fToFixed(y + c.curY)}
}

func rectF(c *iconCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	err := c.readLengths(attrs, map[string]length{
		"x": {&x, widthPercentage}, "y": {&y, heightPercentage},
		"width": {&w, widthPercentage}, "height": {&h, heightPercentage},
		"rx": {&rx, widthPercentage}, "ry": {&ry, heightPercentage},
	})
	if err != nil || w == 0 || h == 0 {
		return err
	}
	x, y = x+c.curX, y+c.curY
	c.path.AddRoundRect(x, y, x+w, y+h, rx, ry, 0)
	return nil
}

// circleF handles <circle> and <ellipse>; an explicit rx or ry
// overrides r.
func circleF(c *iconCursor, attrs []xml.Attr) error {
	var cx, cy, r, rx, ry float64
	err := c.readLengths(attrs, map[string]length{
		"cx": {&cx, widthPercentage}, "cy": {&cy, heightPercentage},
		"r":  {&r, diagPercentage},
		"rx": {&rx, widthPercentage}, "ry": {&ry, heightPercentage},
	})
	if err != nil {
		return err
	}
	if rx == 0 {
		rx = r
	}
	if ry == 0 {
		ry = r
	}
	if rx == 0 || ry == 0 { // nothing to draw
		return nil
	}
	c.ellipseAt(cx+c.curX, cy+c.curY, rx, ry)
	return nil
}

func lineF(c *iconCursor, attrs []xml.Attr) error {
	var x1, x2, y1, y2 float64
	err := c.readLengths(attrs, map[string]length{
		"x1": {&x1, widthPercentage}, "y1": {&y1, heightPercentage},
		"x2": {&x2, widthPercentage}, "y2": {&y2, heightPercentage},
	})
	if err != nil {
		return err
	}
	c.path.Start(c.at(x1, y1))
	c.path.Line(c.at(x2, y2))
	return nil
}

// polylineF adds the open path through `points`; at least
// three points are required.
func polylineF(c *iconCursor, attrs []xml.Attr) error {
	c.points = c.points[:0]
	for _, attr := range attrs {
		if attr.Name.Local != "points" {
			continue
		}
		if err := c.getPoints(attr.Value); err != nil {
			return err
		}
		if len(c.points)%2 != 0 {
			return errors.New("odd number of coordinates in points")
		}
	}
	if len(c.points) <= 4 {
		return nil
	}
	c.path.Start(c.at(c.points[0], c.points[1]))
	for i := 2; i+1 < len(c.points); i += 2 {
		c.path.Line(c.at(c.points[i], c.points[i+1]))
	}
	return nil
}

func polygonF(c *iconCursor, attrs []xml.Attr) error {
	if err := polylineF(c, attrs); err != nil {
		return err
	}
	if len(c.points) > 4 {
		c.path.Stop(true)
	}
	return nil
}

func pathF(c *iconCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local == "d" {
			if err := c.compilePath(attr.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// descF and titleF start collecting the text until the end element.
func descF(c *iconCursor, _ []xml.Attr) error {
	c.inDescText = true
	c.icon.Descriptions = append(c.icon.Descriptions, "")
	return nil
}

func titleF(c *iconCursor, _ []xml.Attr) error {
	c.inTitleText = true
	c.icon.Titles = append(c.icon.Titles, "")
	return nil
}

func defsF(c *iconCursor, _ []xml.Attr) error {
	c.inDefs = true
	return nil
}

// beginGradient starts a gradient, whose stops are added by the
// following <stop> elements.
func (c *iconCursor) beginGradient(direction gradientDirecter) {
	c.inGrad = true
	c.grad = &Gradient{Direction: direction, Bounds: c.icon.ViewBox, Matrix: Identity}
}

// readGradient handles the attributes shared by both kinds of gradients,
// and the fractions listed in `coords`.
func (c *iconCursor) readGradient(attrs []xml.Attr, coords map[string]*float64) error {
	for _, attr := range attrs {
		var err error
		if dst, ok := coords[attr.Name.Local]; ok {
			*dst, err = readFraction(attr.Value)
		} else if attr.Name.Local == "id" {
			if attr.Value == "" {
				return errZeroLengthID
			}
			c.icon.grads[attr.Value] = c.grad
		} else {
			err = c.readGradAttr(attr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func linearGradientF(c *iconCursor, attrs []xml.Attr) error {
	dir := Linear{0, 0, 1, 0}
	c.beginGradient(dir)
	err := c.readGradient(attrs, map[string]*float64{
		"x1": &dir[0], "y1": &dir[1], "x2": &dir[2], "y2": &dir[3],
	})
	c.grad.Direction = dir
	return err
}

// radialGradientF reads the center, focus and radii; the focus
// defaults to the center.
func radialGradientF(c *iconCursor, attrs []xml.Attr) error {
	dir := Radial{0.5, 0.5, -1, -1, 0.5, 0.5}
	c.beginGradient(dir)
	err := c.readGradient(attrs, map[string]*float64{
		"cx": &dir[0], "cy": &dir[1], "fx": &dir[2], "fy": &dir[3],
		"r": &dir[4], "fr": &dir[5],
	})
	if !hasAttr(attrs, "fx") {
		dir[2] = dir[0]
	}
	if !hasAttr(attrs, "fy") {
		dir[3] = dir[1]
	}
	c.grad.Direction = dir
	return err
}

func hasAttr(attrs []xml.Attr, name string) bool {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return true
		}
	}
	return false
}

// stopF is ignored outside of a gradient.
func stopF(c *iconCursor, attrs []xml.Attr) error {
	if !c.inGrad {
		return nil
	}
	stop := GradStop{Opacity: 1}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "offset":
			stop.Offset, err = readFraction(attr.Value)
		case "stop-color":
			var col optionnalColor
			col, err = parseSVGColor(attr.Value)
			stop.StopColor = col.asColor()
		case "stop-opacity":
			stop.Opacity, err = parseBasicFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	c.grad.Stops = append(c.grad.Stops, stop)
	return nil
}

func useF(c *iconCursor, attrs []xml.Attr) error {
	var x, y float64
	err := c.readLengths(attrs, map[string]length{
		"x": {&x, widthPercentage}, "y": {&y, heightPercentage},
	})
	if err != nil {
		return err
	}
	var href string
	for _, attr := range attrs {
		if attr.Name.Local == "href" {
			href = attr.Value
		}
	}
	c.curX, c.curY = x, y
	defer func() { c.curX, c.curY = 0, 0 }()
	if !strings.HasPrefix(href, "#") {
		return errors.New("<use> requires a local reference, got " + strconv.Quote(href))
	}
	defs, ok := c.icon.defs[href[1:]]
	if !ok {
		return errors.New("<use> references an unknown definition " + href)
	}
	// replay the recorded elements as if they were found here
	for _, def := range defs {
		if def.Tag == "endg" {
			c.styleStack = c.styleStack[:len(c.styleStack)-1]
			c.popGroup()
			continue
		}
		df, ok := drawFuncs[def.Tag]
		if !ok {
			return c.handleError("Cannot process svg element " + def.Tag)
		}
		if err = c.pushStyle(def.Attrs); err != nil {
			return err
		}
		if err = df(c, def.Attrs); err != nil {
			return err
		}
		c.flushPath(def.Attrs)
		if def.Tag != "g" { // groups are closed by "endg"
			c.styleStack = c.styleStack[:len(c.styleStack)-1]
		}
	}
	return nil
}
