package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrParamMismatch is returned when a command or a shape
// does not receive the expected number of parameters.
var ErrParamMismatch = errors.New("param mismatch")

const commands = "MmLlHhVvCcSsQqTtAaZz"

// pathCursor holds the state needed while compiling
// an SVG path data string
type pathCursor struct {
	path             Path
	placeX, placeY   float64 // current point
	startX, startY   float64 // start of the current sub-path
	cntlPtX, cntlPtY float64 // last control point, for smooth curves
	lastKey          byte
}

// Compile parses the SVG path data `d` (the `d` attribute of a <path>
// element) and returns the corresponding Path, in absolute coordinates.
// On error, the commands parsed so far are returned.
func Compile(d string) (Path, error) {
	var c pathCursor
	err := c.compile(d)
	return c.path, err
}

func (c *pathCursor) compile(d string) error {
	d = strings.TrimSpace(d)
	start := -1
	var key byte
	for i := 0; i < len(d); i++ {
		if strings.IndexByte(commands, d[i]) == -1 {
			continue
		}
		if start >= 0 {
			if err := c.addSeg(key, d[start:i]); err != nil {
				return err
			}
		} else if strings.TrimSpace(d[:i]) != "" {
			return fmt.Errorf("path data must start with a command: %q", d)
		}
		key, start = d[i], i+1
	}
	if start >= 0 {
		return c.addSeg(key, d[start:])
	}
	if d != "" {
		return fmt.Errorf("path data must start with a command: %q", d)
	}
	return nil
}

func (c *pathCursor) reflectControl(onCurve bool) (x, y float64) {
	if onCurve {
		return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
	}
	return c.placeX, c.placeY
}

func (c *pathCursor) addSeg(key byte, args string) error {
	points, err := ParseNumbers(args)
	if err != nil {
		return err
	}
	l := len(points)
	k := key &^ 0x20 // upper case
	rel := key != k
	var dx, dy float64
	if rel {
		dx, dy = c.placeX, c.placeY
	}

	switch k {
	case 'Z':
		if l != 0 {
			return ErrParamMismatch
		}
		c.path.Stop(true)
		c.placeX, c.placeY = c.startX, c.startY
	case 'M':
		if l < 2 || l%2 != 0 {
			return ErrParamMismatch
		}
		c.placeX, c.placeY = points[0]+dx, points[1]+dy
		c.startX, c.startY = c.placeX, c.placeY
		c.path.Start(toFixedP(c.placeX, c.placeY))
		// implicit lineto
		for i := 2; i < l; i += 2 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.placeX, c.placeY = points[i]+dx, points[i+1]+dy
			c.path.Line(toFixedP(c.placeX, c.placeY))
		}
	case 'L':
		if l == 0 || l%2 != 0 {
			return ErrParamMismatch
		}
		for i := 0; i < l; i += 2 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.placeX, c.placeY = points[i]+dx, points[i+1]+dy
			c.path.Line(toFixedP(c.placeX, c.placeY))
		}
	case 'H':
		if l == 0 {
			return ErrParamMismatch
		}
		for _, x := range points {
			if rel {
				x += c.placeX
			}
			c.placeX = x
			c.path.Line(toFixedP(c.placeX, c.placeY))
		}
	case 'V':
		if l == 0 {
			return ErrParamMismatch
		}
		for _, y := range points {
			if rel {
				y += c.placeY
			}
			c.placeY = y
			c.path.Line(toFixedP(c.placeX, c.placeY))
		}
	case 'C':
		if l == 0 || l%6 != 0 {
			return ErrParamMismatch
		}
		for i := 0; i < l; i += 6 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.cntlPtX, c.cntlPtY = points[i+2]+dx, points[i+3]+dy
			c.path.CubeBezier(toFixedP(points[i]+dx, points[i+1]+dy),
				toFixedP(c.cntlPtX, c.cntlPtY),
				toFixedP(points[i+4]+dx, points[i+5]+dy))
			c.placeX, c.placeY = points[i+4]+dx, points[i+5]+dy
		}
	case 'S':
		if l == 0 || l%4 != 0 {
			return ErrParamMismatch
		}
		for i := 0; i < l; i += 4 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			x1, y1 := c.reflectControl(c.lastKey == 'C' || c.lastKey == 'S')
			c.cntlPtX, c.cntlPtY = points[i]+dx, points[i+1]+dy
			c.path.CubeBezier(toFixedP(x1, y1),
				toFixedP(c.cntlPtX, c.cntlPtY),
				toFixedP(points[i+2]+dx, points[i+3]+dy))
			c.placeX, c.placeY = points[i+2]+dx, points[i+3]+dy
			c.lastKey = 'S'
		}
	case 'Q':
		if l == 0 || l%4 != 0 {
			return ErrParamMismatch
		}
		for i := 0; i < l; i += 4 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.cntlPtX, c.cntlPtY = points[i]+dx, points[i+1]+dy
			c.placeX, c.placeY = points[i+2]+dx, points[i+3]+dy
			c.path.QuadBezier(toFixedP(c.cntlPtX, c.cntlPtY), toFixedP(c.placeX, c.placeY))
		}
	case 'T':
		if l == 0 || l%2 != 0 {
			return ErrParamMismatch
		}
		for i := 0; i < l; i += 2 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.cntlPtX, c.cntlPtY = c.reflectControl(c.lastKey == 'Q' || c.lastKey == 'T')
			c.placeX, c.placeY = points[i]+dx, points[i+1]+dy
			c.path.QuadBezier(toFixedP(c.cntlPtX, c.cntlPtY), toFixedP(c.placeX, c.placeY))
			c.lastKey = 'T'
		}
	case 'A':
		if l == 0 || l%7 != 0 {
			return ErrParamMismatch
		}
		for i := 0; i < l; i += 7 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			arc := append([]float64(nil), points[i:i+7]...)
			arc[0], arc[1] = math.Abs(arc[0]), math.Abs(arc[1])
			arc[5] += dx
			arc[6] += dy
			if arc[0] == 0 || arc[1] == 0 { // degenerated to a line
				c.placeX, c.placeY = arc[5], arc[6]
				c.path.Line(toFixedP(c.placeX, c.placeY))
				continue
			}
			cx, cy := findEllipseCenter(&arc[0], &arc[1], arc[2]*math.Pi/180, c.placeX, c.placeY,
				arc[5], arc[6], arc[4] != 0, arc[3] == 0)
			c.placeX, c.placeY = c.path.addArc(arc, cx, cy, c.placeX, c.placeY)
		}
	default:
		return fmt.Errorf("unknown path command %q", key)
	}
	c.lastKey = k
	return nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// scanNumber returns the end of the number starting at s[i],
// or i if there is none.
func scanNumber(s string, i int) int {
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	digits, dot := false, false
loop:
	for ; j < len(s); j++ {
		switch b := s[j]; {
		case '0' <= b && b <= '9':
			digits = true
		case b == '.' && !dot:
			dot = true
		default:
			break loop
		}
	}
	if !digits {
		return i
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		start := k
		for k < len(s) && '0' <= s[k] && s[k] <= '9' {
			k++
		}
		if k > start {
			j = k
		}
	}
	return j
}

// ParseNumbers reads a list of numbers separated by
// commas and/or whitespaces. Compact forms such as "1-2" or
// ".5.5" are accepted.
func ParseNumbers(s string) ([]float64, error) {
	var out []float64
	for i := 0; i < len(s); {
		if b := s[i]; b == ',' || isSpace(b) {
			i++
			continue
		}
		j := scanNumber(s, i)
		if j == i {
			return out, fmt.Errorf("invalid number list %q", s)
		}
		f, err := strconv.ParseFloat(s[i:j], 64)
		if err != nil {
			return out, err
		}
		out = append(out, f)
		i = j
	}
	return out, nil
}
