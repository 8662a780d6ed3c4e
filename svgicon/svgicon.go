// Provides parsing and rendering of SVG images.
// SVG files are parsed into an abstract tree of groups and paths,
// which can then be consumed by painting drivers
// (see for example okavd/svgraster or okavd/svgpdf).
//
// Groups and paths carrying an `id` attribute are named targets:
// their parameters (transforms, colors, opacities) may be changed
// at runtime, which is what animated vector drawables do.
package svgicon

import (
	"encoding/xml"
	"errors"
	"image"
	"io"
	"os"
	"sort"

	"github.com/benoitkugler/okavd/svgpath"
	"golang.org/x/net/html/charset"
)

// Matrix2D is the affine transform used throughout the package.
type Matrix2D = svgpath.Matrix2D

// Identity is the identity transform.
var Identity = svgpath.Identity

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// SvgIcon holds data from parsed SVGs.
// See the `Draw` methods to use it.
type SvgIcon struct {
	ViewBox      Bounds
	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here
	Root         *Group   // the <svg> element
	Transform    Matrix2D // view transform, see SetTarget

	// Width and Height are the top level width and height attributes,
	// defaulting to the view box dimensions.
	Width, Height float64

	// AutoMirrored flips the drawing horizontally when
	// the layout direction is RightToLeft.
	AutoMirrored bool

	names map[string]interface{} // *Group or *SvgPath, or the icon itself

	grads map[string]*Gradient
	defs  map[string][]definition

	drawableState
}

// newIcon returns an empty icon, with a root group.
func newIcon() *SvgIcon {
	return &SvgIcon{
		Root:          newGroup(""),
		Transform:     Identity,
		names:         make(map[string]interface{}),
		grads:         make(map[string]*Gradient),
		defs:          make(map[string][]definition),
		drawableState: defaultDrawableState(),
	}
}

// NewIcon returns an icon without content, which draws nothing.
func NewIcon() *SvgIcon { return newIcon() }

// ReadIconStream reads the Icon from the given io.Reader
// This only supports a sub-set of SVG, but
// is enough to draw many icons. errMode determines if the icon ignores, errors out, or logs a warning
// if it does not handle an element found in the icon file.
func ReadIconStream(stream io.Reader, errMode ErrorMode) (*SvgIcon, error) {
	icon := newIcon()
	cursor := &iconCursor{
		styleStack: []PathStyle{DefaultStyle},
		groups:     []*Group{icon.Root},
		icon:       icon,
		errorMode:  errMode,
	}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, errors.New("invalid svg xml icon")
				}
				break
			}
			return icon, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			// Reads all recognized style attributes from the start element
			// and places it on top of the styleStack
			err = cursor.pushStyle(se.Attr)
			if err != nil {
				return icon, err
			}
			err = cursor.readStartElement(se)
			if err != nil {
				return icon, err
			}
		case xml.EndElement:
			// pop style
			cursor.styleStack = cursor.styleStack[:len(cursor.styleStack)-1]
			switch se.Name.Local {
			case "g", "svg":
				if cursor.inDefs {
					if se.Name.Local == "g" {
						cursor.currentDef = append(cursor.currentDef, definition{
							Tag: "endg",
						})
					}
				} else {
					cursor.popGroup()
				}
			case "title":
				cursor.inTitleText = false
			case "desc":
				cursor.inDescText = false
			case "defs":
				if len(cursor.currentDef) > 0 {
					cursor.icon.defs[cursor.currentDef[0].ID] = cursor.currentDef
					cursor.currentDef = make([]definition, 0)
				}
				cursor.inDefs = false
			case "radialGradient", "linearGradient":
				cursor.inGrad = false
			}
		case xml.CharData:
			if cursor.inTitleText {
				icon.Titles[len(icon.Titles)-1] += string(se)
			}
			if cursor.inDescText {
				icon.Descriptions[len(icon.Descriptions)-1] += string(se)
			}
		}
	}
	if icon.Width == 0 {
		icon.Width = icon.ViewBox.W
	}
	if icon.Height == 0 {
		icon.Height = icon.ViewBox.H
	}
	icon.SetBounds(image.Rect(0, 0, icon.IntrinsicWidth(), icon.IntrinsicHeight()))
	return icon, nil
}

// ReadIcon reads the Icon from the named file
// This only supports a sub-set of SVG, but
// is enough to draw many icons. errMode determines if the icon ignores, errors out, or logs a warning
// if it does not handle an element found in the icon file.
func ReadIcon(iconFile string, errMode ErrorMode) (*SvgIcon, error) {
	fin, errf := os.Open(iconFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadIconStream(fin, errMode)
}

// TargetByName returns the group or path registered with the
// given name (its `id` attribute), or the icon itself when `name` is
// the id of the <svg> element. It returns nil if the name is unknown.
func (s *SvgIcon) TargetByName(name string) interface{} {
	if name == "" {
		return nil
	}
	return s.names[name]
}

// Names returns the sorted names of the targets.
func (s *SvgIcon) Names() []string {
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// register adds the named target, the last one winning
// for duplicated names.
func (s *SvgIcon) register(name string, target interface{}) {
	if name == "" {
		return
	}
	s.names[name] = target
}
