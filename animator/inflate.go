package animator

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/benoitkugler/okavd/internal/logging"
	"golang.org/x/net/html/charset"
)

// ErrUnsupportedValueType is returned when inflating an animator
// whose values may not be interpolated by this package, such as path data.
var ErrUnsupportedValueType = errors.New("unsupported value type")

type valueType uint8

const (
	inferType valueType = iota // from the value string
	floatType
	intType
	colorType
)

func parseValueType(s string) (valueType, error) {
	switch s {
	case "":
		return inferType, nil
	case "floatType":
		return floatType, nil
	case "intType":
		return intType, nil
	case "colorType":
		return colorType, nil
	case "pathType":
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedValueType, s)
	default:
		return 0, fmt.Errorf("invalid valueType %q", s)
	}
}

// dimensionSuffixes are the units accepted (and ignored) after
// numerical values
var dimensionSuffixes = [...]string{"dip", "dp", "px", "sp", "pt", "in", "mm"}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, suffix := range dimensionSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}
	return strconv.ParseFloat(s, 64)
}

func parseValue(s string, vt valueType) (Value, error) {
	s = strings.TrimSpace(s)
	if vt == inferType {
		vt = floatType
		if strings.HasPrefix(s, "#") {
			vt = colorType
		}
	}
	switch vt {
	case intType:
		i, err := strconv.Atoi(s)
		if err != nil {
			// Android accepts floats for integers
			f, errF := parseFloat(s)
			if errF != nil {
				return nil, err
			}
			i = int(f)
		}
		return Int(i), nil
	case colorType:
		return ParseColor(s)
	default:
		f, err := parseFloat(s)
		return Float(f), err
	}
}

// parseMillis reads a duration in milliseconds
func parseMillis(s string) (time.Duration, error) {
	ms, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if ms < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

func parseRepeatCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "infinite" {
		return Infinite, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return Infinite, nil
	}
	return n, nil
}

// defaultDuration is used when the duration attribute is missing
const defaultDuration = 300 * time.Millisecond

func readObjectAnimator(attrs []xml.Attr) (*ObjectAnimator, error) {
	a := &ObjectAnimator{Duration: defaultDuration}
	var (
		vt       valueType
		from, to string
		err      error
	)
	// valueType is needed to read the values
	for _, attr := range attrs {
		if attr.Name.Local == "valueType" {
			if vt, err = parseValueType(attr.Value); err != nil {
				return nil, err
			}
		}
	}
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "propertyName":
			a.PropertyName = strings.TrimSpace(attr.Value)
		case "duration":
			a.Duration, err = parseMillis(attr.Value)
		case "startOffset":
			a.StartDelay, err = parseMillis(attr.Value)
		case "repeatCount":
			a.RepeatCount, err = parseRepeatCount(attr.Value)
		case "repeatMode":
			switch strings.TrimSpace(attr.Value) {
			case "restart", "1":
				a.RepeatMode = Restart
			case "reverse", "2":
				a.RepeatMode = Reverse
			default:
				err = fmt.Errorf("invalid repeatMode %q", attr.Value)
			}
		case "valueFrom":
			from = attr.Value
		case "valueTo":
			to = attr.Value
		case "interpolator":
			if !strings.HasSuffix(attr.Value, "linear_interpolator") {
				logging.Debugf("animator: interpolator %s not supported, using linear", attr.Value)
			}
		case "pathData", "propertyXName", "propertyYName":
			err = fmt.Errorf("%w: %s", ErrUnsupportedValueType, attr.Name.Local)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid attribute %s: %w", attr.Name.Local, err)
		}
	}
	if from != "" {
		if a.From, err = parseValue(from, vt); err != nil {
			return nil, fmt.Errorf("invalid attribute valueFrom: %w", err)
		}
	}
	if to != "" {
		if a.To, err = parseValue(to, vt); err != nil {
			return nil, fmt.Errorf("invalid attribute valueTo: %w", err)
		}
	}
	// a single value is the end value
	if a.To == nil {
		a.From, a.To = nil, a.From
	}
	if a.From != nil && a.To != nil && reflect.TypeOf(a.From) != reflect.TypeOf(a.To) {
		return nil, fmt.Errorf("valueFrom and valueTo have different types (%T, %T)", a.From, a.To)
	}
	return a, nil
}

func readSet(attrs []xml.Attr) (*AnimatorSet, error) {
	s := NewSet(Together)
	for _, attr := range attrs {
		if attr.Name.Local != "ordering" {
			continue
		}
		switch strings.TrimSpace(attr.Value) {
		case "together", "0":
			s.Ordering = Together
		case "sequentially", "1":
			s.Ordering = Sequentially
		default:
			return nil, fmt.Errorf("invalid ordering %q", attr.Value)
		}
	}
	return s, nil
}

// Inflate reads an animator resource: a root <objectAnimator>, <animator>
// or <set> element, sets being possibly nested.
// The returned animator has no target.
func Inflate(r io.Reader) (Animator, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		root  Animator
		stack []*AnimatorSet // opened sets
	)
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			var a Animator
			switch se.Name.Local {
			case "objectAnimator", "animator":
				a, err = readObjectAnimator(se.Attr)
			case "set":
				var s *AnimatorSet
				s, err = readSet(se.Attr)
				if err == nil {
					a = s
				}
			case "propertyValuesHolder", "keyframe":
				err = fmt.Errorf("element <%s> is not supported", se.Name.Local)
			default:
				err = fmt.Errorf("unexpected element <%s>", se.Name.Local)
			}
			if err != nil {
				return nil, fmt.Errorf("inflating animator: %w", err)
			}
			if root == nil {
				root = a
			} else if len(stack) == 0 {
				return nil, errors.New("inflating animator: multiple root elements")
			} else {
				parent := stack[len(stack)-1]
				parent.add(a)
			}
			if s, ok := a.(*AnimatorSet); ok {
				stack = append(stack, s)
			} else {
				// objectAnimator has no child: skip its content
				if err = decoder.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if se.Name.Local == "set" && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if root == nil {
		return nil, errors.New("inflating animator: no animator element")
	}
	return root, nil
}
