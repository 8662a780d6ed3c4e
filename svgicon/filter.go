package svgicon

import "image/color"

// ColorFilter modifies the colors of the paths when drawing.
type ColorFilter interface {
	Filter(c color.NRGBA) color.NRGBA
}

// TintMode is the way a tint is combined with the colors of the paths.
type TintMode uint8

const (
	SrcIn    TintMode = iota // tint color, with the alpha of the path (default)
	SrcAtop                  // tint blended over the path color
	Multiply                 // product of the channels
	Src                      // tint color only
)

func (m TintMode) String() string {
	switch m {
	case SrcIn:
		return "src_in"
	case SrcAtop:
		return "src_atop"
	case Multiply:
		return "multiply"
	case Src:
		return "src"
	default:
		return "<unknown tint mode>"
	}
}

// TintFilter is the filter applying a tint.
type TintFilter struct {
	Color color.NRGBA
	Mode  TintMode
}

func mul8(a, b uint8) uint8 { return uint8((uint16(a)*uint16(b) + 127) / 255) }

func (t TintFilter) Filter(c color.NRGBA) color.NRGBA {
	tc := t.Color
	switch t.Mode {
	case Src:
		return tc
	case SrcAtop:
		mix := func(a, b uint8) uint8 {
			return uint8((uint16(a)*uint16(tc.A) + uint16(b)*uint16(255-tc.A) + 127) / 255)
		}
		return color.NRGBA{R: mix(tc.R, c.R), G: mix(tc.G, c.G), B: mix(tc.B, c.B), A: c.A}
	case Multiply:
		return color.NRGBA{R: mul8(tc.R, c.R), G: mul8(tc.G, c.G), B: mul8(tc.B, c.B), A: mul8(tc.A, c.A)}
	default:
		tc.A = mul8(tc.A, c.A)
		return tc
	}
}

func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// filtered returns the pattern to use, given an optional filter
func filtered(p Pattern, f ColorFilter) Pattern {
	if p == nil || f == nil {
		return p
	}
	switch p := p.(type) {
	case PlainColor:
		return PlainColor{f.Filter(p.NRGBA)}
	case Gradient:
		stops := make([]GradStop, len(p.Stops))
		for i, stop := range p.Stops {
			stop.StopColor = f.Filter(toNRGBA(stop.StopColor))
			stops[i] = stop
		}
		p.Stops = stops
		return p
	}
	return p
}

// StateTint selects the tint from the state of the drawable:
// the first entry whose state is set wins, Default is used otherwise.
type StateTint struct {
	Entries []StateColor
	Default color.Color
}

type StateColor struct {
	State string // for instance "pressed" or "checked"
	Color color.Color
}

func (t *StateTint) colorFor(states []string) color.Color {
	for _, entry := range t.Entries {
		for _, s := range states {
			if s == entry.State {
				return entry.Color
			}
		}
	}
	return t.Default
}

// activeFilter returns the filter applied when drawing: the color
// filter if any, or the tint.
func (s *SvgIcon) activeFilter() ColorFilter {
	if s.colorFilter != nil {
		return s.colorFilter
	}
	if s.tint != nil {
		return TintFilter{Color: toNRGBA(s.tint), Mode: s.tintMode}
	}
	return nil
}

// SetTintMode changes the way the tint is applied.
func (s *SvgIcon) SetTintMode(mode TintMode) {
	if mode == s.tintMode {
		return
	}
	s.tintMode = mode
	s.InvalidateSelf()
}

func (s *SvgIcon) TintMode() TintMode { return s.tintMode }

// SetTintList makes the tint depend on the state of the icon.
// A nil list removes the tint.
func (s *SvgIcon) SetTintList(list *StateTint) {
	s.tintList = list
	s.tint = nil
	if list != nil {
		s.tint = list.colorFor(s.state)
	}
	s.InvalidateSelf()
}

// SetColorFilter sets a filter taking precedence over the tint.
// A nil filter restores the tint.
func (s *SvgIcon) SetColorFilter(f ColorFilter) {
	s.colorFilter = f
	s.InvalidateSelf()
}

func (s *SvgIcon) ColorFilter() ColorFilter { return s.colorFilter }

// SetState sets the current state (such as "pressed"), and returns
// true if the appearance of the icon changed.
func (s *SvgIcon) SetState(states []string) bool {
	s.state = append(s.state[:0:0], states...)
	if s.tintList == nil {
		return false
	}
	c := s.tintList.colorFor(s.state)
	if c == s.tint {
		return false
	}
	s.tint = c
	s.InvalidateSelf()
	return true
}

func (s *SvgIcon) State() []string { return s.state }

// IsStateful returns true if the appearance depends on the state.
func (s *SvgIcon) IsStateful() bool {
	return s.tintList != nil && len(s.tintList.Entries) != 0
}

// SetLevel stores the level, in [0, 10000]. The drawing of
// an icon does not depend on it, so it always returns false.
func (s *SvgIcon) SetLevel(level int) bool {
	s.level = level
	return false
}

func (s *SvgIcon) Level() int { return s.level }

// Opacity describes whether the icon paints anything.
type Opacity uint8

const (
	Translucent Opacity = iota
	Transparent
)

func (o Opacity) String() string {
	if o == Transparent {
		return "transparent"
	}
	return "translucent"
}

func paints(p Pattern, opacity float64) bool {
	if opacity <= 0 {
		return false
	}
	switch p := p.(type) {
	case PlainColor:
		return p.A != 0
	case Gradient:
		for _, stop := range p.Stops {
			if stop.Opacity > 0 && toNRGBA(stop.StopColor).A != 0 {
				return true
			}
		}
	}
	return false
}

func (g *Group) paints() bool {
	for _, child := range g.Children {
		switch child := child.(type) {
		case *Group:
			if child.paints() {
				return true
			}
		case *SvgPath:
			if paints(child.Style.FillerColor, child.Style.FillOpacity) ||
				paints(child.Style.LinerColor, child.Style.LineOpacity) {
				return true
			}
		}
	}
	return false
}

// Opacity returns Transparent when nothing would be drawn: the icon
// is hidden, its alpha is zero or none of its paths is painted.
// Otherwise it is Translucent, the paths being not assumed to cover the bounds.
func (s *SvgIcon) Opacity() Opacity {
	if !s.visible || s.rootAlpha <= 0 || !s.Root.paints() {
		return Transparent
	}
	return Translucent
}
