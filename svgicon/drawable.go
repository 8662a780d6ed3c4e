package svgicon

import (
	"image"
	"image/color"
	"time"
)

// LayoutDirection is the horizontal direction of the host layout.
type LayoutDirection uint8

const (
	LeftToRight LayoutDirection = iota
	RightToLeft
)

func (l LayoutDirection) String() string {
	if l == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Runnable is a unit of work scheduled by a drawable.
type Runnable interface {
	Run()
}

// Callback is implemented by the host of a drawable, which
// is notified when the drawable needs to be redrawn or wants to
// run code at a later time.
// `who` is the drawable issuing the request.
type Callback interface {
	InvalidateDrawable(who interface{})
	ScheduleDrawable(who interface{}, what Runnable, when time.Duration)
	UnscheduleDrawable(who interface{}, what Runnable)
}

// drawableState stores the properties shared by all drawables
// and the link to the host.
type drawableState struct {
	bounds          image.Rectangle
	rootAlpha       float64 // in [0,1]
	tint            color.Color
	tintMode        TintMode
	tintList        *StateTint
	colorFilter     ColorFilter
	state           []string
	level           int
	layoutDirection LayoutDirection
	visible         bool
	callback        Callback
}

func defaultDrawableState() drawableState {
	return drawableState{rootAlpha: 1, visible: true}
}

// SetBounds sets the area the icon is drawn into,
// and updates the view transform accordingly.
func (s *SvgIcon) SetBounds(r image.Rectangle) {
	s.bounds = r
	s.SetTarget(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
}

// Bounds returns the area the icon is drawn into.
func (s *SvgIcon) Bounds() image.Rectangle { return s.bounds }

// SetAlpha sets the global opacity, 255 being opaque.
func (s *SvgIcon) SetAlpha(alpha uint8) {
	a := float64(alpha) / 255
	if a == s.rootAlpha {
		return
	}
	s.rootAlpha = a
	s.InvalidateSelf()
}

// Alpha returns the global opacity, 255 being opaque.
func (s *SvgIcon) Alpha() uint8 {
	return uint8(clamp01(s.rootAlpha)*255 + 0.5)
}

// SetTint combines the colors of every path with `c`, according
// to the tint mode. A nil color removes the tint.
func (s *SvgIcon) SetTint(c color.Color) {
	s.tintList = nil
	s.tint = c
	s.InvalidateSelf()
}

// Tint returns the current tint, or nil.
func (s *SvgIcon) Tint() color.Color { return s.tint }

// SetLayoutDirection returns true if the direction changed
// the rendering, that is if the icon is auto mirrored.
func (s *SvgIcon) SetLayoutDirection(dir LayoutDirection) bool {
	if s.layoutDirection == dir {
		return false
	}
	s.layoutDirection = dir
	return s.AutoMirrored
}

func (s *SvgIcon) LayoutDirection() LayoutDirection { return s.layoutDirection }

// SetVisible returns true if the visibility changed.
// `restart` has no effect on a static icon.
func (s *SvgIcon) SetVisible(visible, restart bool) bool {
	changed := s.visible != visible
	s.visible = visible
	if changed {
		s.InvalidateSelf()
	}
	return changed
}

func (s *SvgIcon) IsVisible() bool { return s.visible }

// IntrinsicWidth returns the width attribute, rounded to an int.
func (s *SvgIcon) IntrinsicWidth() int { return int(s.Width + 0.5) }

// IntrinsicHeight returns the height attribute, rounded to an int.
func (s *SvgIcon) IntrinsicHeight() int { return int(s.Height + 0.5) }

// SetCallback binds the icon to a host. A nil value unbinds it.
func (s *SvgIcon) SetCallback(cb Callback) { s.callback = cb }

func (s *SvgIcon) Callback() Callback { return s.callback }

// InvalidateSelf asks the host, if any, for a redraw.
func (s *SvgIcon) InvalidateSelf() {
	if s.callback != nil {
		s.callback.InvalidateDrawable(s)
	}
}

// ScheduleSelf forwards the request to the host, if any.
func (s *SvgIcon) ScheduleSelf(what Runnable, when time.Duration) {
	if s.callback != nil {
		s.callback.ScheduleDrawable(s, what, when)
	}
}

// UnscheduleSelf forwards the request to the host, if any.
func (s *SvgIcon) UnscheduleSelf(what Runnable) {
	if s.callback != nil {
		s.callback.UnscheduleDrawable(s, what)
	}
}

// Clone returns a deep copy of the drawing tree, whose named targets
// are independent from the ones of `s`. Gradients and definitions,
// which are never mutated after parsing, are shared.
// The clone is bound to `owner`.
func (s *SvgIcon) Clone(owner Callback) *SvgIcon {
	out := *s
	out.Titles = append([]string(nil), s.Titles...)
	out.Descriptions = append([]string(nil), s.Descriptions...)
	out.state = append([]string(nil), s.state...)
	out.names = make(map[string]interface{}, len(s.names))
	// the root group is registered as the icon itself
	root := *s.Root
	if root.Name != "" {
		out.names[root.Name] = &out
	}
	root.Children = s.Root.cloneChildren(out.names)
	out.Root = &root
	out.callback = owner
	return &out
}
