package animatedvector

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/benoitkugler/okavd/animator"
	"github.com/benoitkugler/okavd/internal/logging"
	"github.com/benoitkugler/okavd/svgicon"
	"golang.org/x/net/html/charset"
)

// Resources resolves the references found in animated-vector
// files, such as `@drawable/icon` or `@anim/rotation`.
type Resources struct {
	FS fs.FS

	// ErrorMode is used when parsing the graphics
	ErrorMode svgicon.ErrorMode
}

// NewResources returns resources reading from `fsys`.
func NewResources(fsys fs.FS) Resources {
	return Resources{FS: fsys, ErrorMode: svgicon.WarnErrorMode}
}

// Resolve maps a reference to a path in the file system:
// `@drawable/x` is `drawable/x.svg`, `@anim/x` is `anim/x.xml`
// and `@animator/x` is `animator/x.xml`. Other values
// are file paths, relative to the root of the file system.
func (r Resources) Resolve(ref string) (string, error) {
	if !strings.HasPrefix(ref, "@") {
		name := path.Clean(strings.TrimPrefix(ref, "/"))
		if !fs.ValidPath(name) {
			return "", fmt.Errorf("invalid resource path %q", ref)
		}
		return name, nil
	}
	kind, name, ok := strings.Cut(ref[1:], "/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("invalid resource reference %q", ref)
	}
	switch kind {
	case "drawable":
		return kind + "/" + name + ".svg", nil
	case "anim", "animator":
		return kind + "/" + name + ".xml", nil
	default:
		return "", fmt.Errorf("unsupported resource type in %q", ref)
	}
}

// Graphic loads the referenced vector graphic.
func (r Resources) Graphic(ref string) (*svgicon.SvgIcon, error) {
	name, err := r.Resolve(ref)
	if err != nil {
		return nil, err
	}
	f, err := r.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	icon, err := svgicon.ReadIconStream(f, r.ErrorMode)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return icon, nil
}

// Animator loads the referenced animator.
func (r Resources) Animator(ref string) (animator.Animator, error) {
	name, err := r.Resolve(ref)
	if err != nil {
		return nil, err
	}
	f, err := r.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := animator.Inflate(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return a, nil
}

func attrValue(attrs []xml.Attr, name string) (string, bool) {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// readState loads the graphic and binds the targets.
func (r Resources) readState(root xml.StartElement, decoder *xml.Decoder) (*State, error) {
	var graphic *svgicon.SvgIcon
	if ref, ok := attrValue(root.Attr, "drawable"); ok {
		var err error
		graphic, err = r.Graphic(ref)
		if err != nil {
			logging.Warnf("animatedvector: graphic %s not loaded: %s", ref, err)
			graphic = nil
		}
	}
	state := NewState(graphic)
	if v, ok := attrValue(root.Attr, "changingConfigurations"); ok {
		flags, err := ParseConfigChanges(v)
		if err != nil {
			return nil, err
		}
		state.changingConfigurations = flags
	}

	for {
		t, err := decoder.Token()
		if err == io.EOF {
			return nil, errors.New("unexpected end of file")
		}
		if err != nil {
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			if se.Name.Local != "target" {
				logging.Debugf("animatedvector: ignoring element <%s>", se.Name.Local)
				if err = decoder.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			if err = r.readTarget(state, se.Attr); err != nil {
				return nil, err
			}
			if err = decoder.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			// end of the root element
			return state, nil
		}
	}
}

func (r Resources) readTarget(state *State, attrs []xml.Attr) error {
	name, _ := attrValue(attrs, "name")
	ref, ok := attrValue(attrs, "animation")
	if !ok || ref == "" {
		logging.Debugf("animatedvector: target %q has no animation", name)
		return nil
	}
	a, err := r.Animator(ref)
	if err != nil {
		return fmt.Errorf("target %q: %w", name, err)
	}
	state.AddTargetAnimator(name, a)
	return nil
}

// InflateState reads an <animated-vector> element.
func InflateState(res Resources, src io.Reader) (*State, error) {
	decoder := xml.NewDecoder(src)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			return nil, errors.New("inflating animated vector: no root element")
		}
		if err != nil {
			return nil, fmt.Errorf("inflating animated vector: %w", err)
		}
		se, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "animated-vector" {
			return nil, fmt.Errorf("inflating animated vector: unexpected root element <%s>", se.Name.Local)
		}
		state, err := res.readState(se, decoder)
		if err != nil {
			return nil, fmt.Errorf("inflating animated vector: %w", err)
		}
		return state, nil
	}
}

// Inflate reads an <animated-vector> element and returns
// a new drawable for it.
func Inflate(res Resources, src io.Reader, opts ...Option) (*Drawable, error) {
	state, err := InflateState(res, src)
	if err != nil {
		return nil, err
	}
	return state.NewDrawable(opts...), nil
}

// Load is the same as Inflate, for the file `name`
// (a path or a `@drawable/` reference) of the resources.
func Load(res Resources, name string, opts ...Option) (*Drawable, error) {
	p, err := res.Resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := res.FS.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Inflate(res, f, opts...)
}
