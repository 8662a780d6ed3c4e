package svgicon

import (
	"image/color"
	"math"

	"github.com/benoitkugler/okavd/svgpath"
)

// Animatable properties, named as in Android vector drawables.
const (
	PropRotation   = "rotation"
	PropPivotX     = "pivotX"
	PropPivotY     = "pivotY"
	PropScaleX     = "scaleX"
	PropScaleY     = "scaleY"
	PropTranslateX = "translateX"
	PropTranslateY = "translateY"

	PropFillColor   = "fillColor"
	PropStrokeColor = "strokeColor"
	PropFillAlpha   = "fillAlpha"
	PropStrokeAlpha = "strokeAlpha"
	PropStrokeWidth = "strokeWidth"

	PropAlpha = "alpha" // root only
)

// PathStyle holds the state of the SVG style
type PathStyle struct {
	FillOpacity, LineOpacity float64
	LineWidth                float64
	UseNonZeroWinding        bool

	Join                    JoinOptions
	Dash                    DashOptions
	FillerColor, LinerColor Pattern // either PlainColor or Gradient

	transform Matrix2D // transform of the element, relative to its group
}

// copy returns a style not sharing memory with s
func (s PathStyle) copy() PathStyle {
	s.Dash.Dash = append([]float64(nil), s.Dash.Dash...)
	s.FillerColor = copyPattern(s.FillerColor)
	s.LinerColor = copyPattern(s.LinerColor)
	return s
}

// Node is an element of the drawing tree,
// either a *Group or a *SvgPath.
type Node interface {
	draw(d Driver, opacity float64, m Matrix2D, filter ColorFilter)
	// deep copy, registering the named nodes in `names`
	clone(names map[string]interface{}) Node
}

// SvgPath binds a style to a path
type SvgPath struct {
	Name  string // id attribute, may be empty
	Path  svgpath.Path
	Style PathStyle
}

// Group is a container whose transform applies to its children.
// On top of the `transform` attribute, a group has
// Android-like transform parameters, which are the
// ones animated.
type Group struct {
	Name      string
	Transform Matrix2D // transform attribute, relative to the parent
	Children  []Node

	Rotation               float64 // in degrees
	PivotX, PivotY         float64
	ScaleX, ScaleY         float64
	TranslateX, TranslateY float64
}

func newGroup(name string) *Group {
	return &Group{Name: name, Transform: Identity, ScaleX: 1, ScaleY: 1}
}

// LocalMatrix returns the transform applied to the children,
// relative to the parent group.
func (g *Group) LocalMatrix() Matrix2D {
	return g.Transform.
		Translate(g.TranslateX+g.PivotX, g.TranslateY+g.PivotY).
		Rotate(g.Rotation*math.Pi/180).
		Scale(g.ScaleX, g.ScaleY).
		Translate(-g.PivotX, -g.PivotY)
}

// clone registers the names in document order, as the parser
// does, so that the last duplicated name still wins.
func (g *Group) clone(names map[string]interface{}) Node {
	out := *g
	if out.Name != "" {
		names[out.Name] = &out
	}
	out.Children = g.cloneChildren(names)
	return &out
}

func (g *Group) cloneChildren(names map[string]interface{}) []Node {
	out := make([]Node, len(g.Children))
	for i, child := range g.Children {
		out[i] = child.clone(names)
	}
	return out
}

func (svgp *SvgPath) clone(names map[string]interface{}) Node {
	out := &SvgPath{Name: svgp.Name, Path: svgp.Path.Copy(), Style: svgp.Style.copy()}
	if out.Name != "" {
		names[out.Name] = out
	}
	return out
}

// Float returns the current value of a numeric property.
func (g *Group) Float(prop string) (float64, bool) {
	if ptr := g.floatField(prop); ptr != nil {
		return *ptr, true
	}
	return 0, false
}

// SetFloat sets a numeric property, returning false
// if the group has no such property.
func (g *Group) SetFloat(prop string, v float64) bool {
	ptr := g.floatField(prop)
	if ptr == nil {
		return false
	}
	*ptr = v
	return true
}

func (g *Group) floatField(prop string) *float64 {
	switch prop {
	case PropRotation:
		return &g.Rotation
	case PropPivotX:
		return &g.PivotX
	case PropPivotY:
		return &g.PivotY
	case PropScaleX:
		return &g.ScaleX
	case PropScaleY:
		return &g.ScaleY
	case PropTranslateX:
		return &g.TranslateX
	case PropTranslateY:
		return &g.TranslateY
	}
	return nil
}

// Float returns the current value of a numeric property.
func (svgp *SvgPath) Float(prop string) (float64, bool) {
	switch prop {
	case PropFillAlpha:
		return svgp.Style.FillOpacity, true
	case PropStrokeAlpha:
		return svgp.Style.LineOpacity, true
	case PropStrokeWidth:
		return svgp.Style.LineWidth, true
	}
	return 0, false
}

// SetFloat sets a numeric property, returning false
// if the path has no such property.
func (svgp *SvgPath) SetFloat(prop string, v float64) bool {
	switch prop {
	case PropFillAlpha:
		svgp.Style.FillOpacity = v
	case PropStrokeAlpha:
		svgp.Style.LineOpacity = v
	case PropStrokeWidth:
		svgp.Style.LineWidth = v
	default:
		return false
	}
	return true
}

// Color returns the current value of a color property.
// Gradients have no single color and are reported as missing.
func (svgp *SvgPath) Color(prop string) (color.NRGBA, bool) {
	var pattern Pattern
	switch prop {
	case PropFillColor:
		pattern = svgp.Style.FillerColor
	case PropStrokeColor:
		pattern = svgp.Style.LinerColor
	default:
		return color.NRGBA{}, false
	}
	if c, ok := pattern.(PlainColor); ok {
		return c.NRGBA, true
	}
	return color.NRGBA{}, false
}

// SetColor sets a color property, returning false
// if the path has no such property.
func (svgp *SvgPath) SetColor(prop string, c color.NRGBA) bool {
	switch prop {
	case PropFillColor:
		svgp.Style.FillerColor = PlainColor{c}
	case PropStrokeColor:
		svgp.Style.LinerColor = PlainColor{c}
	default:
		return false
	}
	return true
}

// FindPath returns the named path, or nil.
func (s *SvgIcon) FindPath(name string) *SvgPath {
	p, _ := s.names[name].(*SvgPath)
	return p
}

// FindGroup returns the named group, or nil.
func (s *SvgIcon) FindGroup(name string) *Group {
	g, _ := s.names[name].(*Group)
	return g
}

// Float exposes the root `alpha` property.
func (s *SvgIcon) Float(prop string) (float64, bool) {
	if prop == PropAlpha {
		return s.rootAlpha, true
	}
	return 0, false
}

// SetFloat sets the root `alpha` property.
func (s *SvgIcon) SetFloat(prop string, v float64) bool {
	if prop != PropAlpha {
		return false
	}
	s.rootAlpha = v
	return true
}
