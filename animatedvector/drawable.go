package animatedvector

import (
	"image"
	"image/color"
	"time"

	"github.com/benoitkugler/okavd/animator"
	"github.com/benoitkugler/okavd/svgicon"
)

// Drawable plays the animations of its state on its graphic.
//
// Its animator set is built on the first call to Start (or Reset),
// from the state at that time, and is never rebuilt: a later
// Mutate does not rebind the running animations to the new graphic.
type Drawable struct {
	state   *State
	mutated bool

	set            *animator.AnimatorSet
	hasAnimatorSet bool
	handler        *animator.Handler

	callback               svgicon.Callback // host
	owner                  *graphicCallback // installed on the cloned graphics
	changingConfigurations ConfigChanges

	animationCallbacks []AnimationCallback
	listener           *relay // nil when no callbacks are registered
}

// Option configures a Drawable.
type Option func(*Drawable)

// WithHandler sets the frame source of the animations.
// By default, each Drawable uses its own Handler.
func WithHandler(h *animator.Handler) Option {
	return func(d *Drawable) { d.handler = h }
}

// WithCallback binds the drawable to its host.
func WithCallback(cb svgicon.Callback) Option {
	return func(d *Drawable) { d.callback = cb }
}

// New returns a drawable for a graphic, without animations.
func New(graphic *svgicon.SvgIcon, opts ...Option) *Drawable {
	return NewState(graphic).NewDrawable(opts...)
}

func newDrawable(state *State, opts ...Option) *Drawable {
	if state == nil {
		state = NewState(nil)
	}
	d := &Drawable{state: state, set: animator.NewSet(animator.Together)}
	d.owner = &graphicCallback{d: d}
	for _, opt := range opts {
		opt(d)
	}
	if d.handler == nil {
		d.handler = animator.NewHandler()
	}
	d.set.SetHandler(d.handler)
	if state.graphic.Callback() == nil {
		state.graphic.SetCallback(d.owner)
	}
	return d
}

// graphicCallback relays the requests of the graphic to the host
type graphicCallback struct {
	d *Drawable
}

func (c *graphicCallback) InvalidateDrawable(interface{}) { c.d.InvalidateSelf() }

func (c *graphicCallback) ScheduleDrawable(_ interface{}, what svgicon.Runnable, when time.Duration) {
	c.d.ScheduleSelf(what, when)
}

func (c *graphicCallback) UnscheduleDrawable(_ interface{}, what svgicon.Runnable) {
	c.d.UnscheduleSelf(what)
}

// Handler returns the frame source of the animations.
func (d *Drawable) Handler() *animator.Handler { return d.handler }

// AnimatorSet returns the set playing the animations. It is empty
// until the first start.
func (d *Drawable) AnimatorSet() *animator.AnimatorSet { return d.set }

// Graphic returns the graphic currently drawn.
func (d *Drawable) Graphic() *svgicon.SvgIcon { return d.state.graphic }

func (d *Drawable) ensureAnimatorSet() {
	if !d.hasAnimatorSet {
		d.state.prepareLocalAnimators(d.set)
		d.set.SetHandler(d.handler)
		d.hasAnimatorSet = true
	}
}

// Start starts the animations. It has no effect
// if they are already started.
func (d *Drawable) Start() {
	d.ensureAnimatorSet()
	if d.set.IsStarted() {
		return
	}
	d.set.Start()
	d.InvalidateSelf()
}

// Stop ends the animations: every animated property
// jumps to its end value.
func (d *Drawable) Stop() { d.set.End() }

// Reset moves the animations back to their start values.
// It is implemented as a start immediately canceled, so that hosts
// drawing in between may see the first frame.
func (d *Drawable) Reset() {
	d.Start()
	d.set.Cancel()
}

// IsRunning returns true if one of the animations is progressing.
func (d *Drawable) IsRunning() bool { return d.set.IsRunning() }

func (d *Drawable) isStarted() bool { return d.set.IsStarted() }

// Mutate makes the state of the drawable independent of
// the other drawables created from the same state. Only the first
// call has an effect.
func (d *Drawable) Mutate() *Drawable {
	if !d.mutated {
		if shared := d.state.graphic; shared.Callback() == d.owner {
			shared.SetCallback(nil)
		}
		d.state = newState(d.state, d.owner)
		d.mutated = true
	}
	return d
}

// ClearMutated allows Mutate to copy the state again.
func (d *Drawable) ClearMutated() { d.mutated = false }

// ConstantState returns the state of the drawable, which may be
// used to create new drawables.
func (d *Drawable) ConstantState() *State {
	d.state.changingConfigurations = d.ChangingConfigurations()
	return d.state
}

// ChangingConfigurations returns the axes of the drawable and of its state.
func (d *Drawable) ChangingConfigurations() ConfigChanges {
	return d.changingConfigurations | d.state.changingConfigurations
}

func (d *Drawable) SetChangingConfigurations(c ConfigChanges) { d.changingConfigurations = c }

// Draw draws the graphic, and asks for a new frame
// while the animations are started.
func (d *Drawable) Draw(driver svgicon.Driver) {
	d.state.graphic.Draw(driver, 1)
	if d.isStarted() {
		d.InvalidateSelf()
	}
}

// SetCallback binds the drawable to a host. A nil value unbinds it.
func (d *Drawable) SetCallback(cb svgicon.Callback) { d.callback = cb }

func (d *Drawable) Callback() svgicon.Callback { return d.callback }

// InvalidateSelf asks the host, if any, for a redraw.
func (d *Drawable) InvalidateSelf() {
	if d.callback != nil {
		d.callback.InvalidateDrawable(d)
	}
}

func (d *Drawable) ScheduleSelf(what svgicon.Runnable, when time.Duration) {
	if d.callback != nil {
		d.callback.ScheduleDrawable(d, what, when)
	}
}

func (d *Drawable) UnscheduleSelf(what svgicon.Runnable) {
	if d.callback != nil {
		d.callback.UnscheduleDrawable(d, what)
	}
}

func (d *Drawable) SetBounds(r image.Rectangle) { d.state.graphic.SetBounds(r) }

func (d *Drawable) Bounds() image.Rectangle { return d.state.graphic.Bounds() }

func (d *Drawable) SetAlpha(alpha uint8) { d.state.graphic.SetAlpha(alpha) }

func (d *Drawable) Alpha() uint8 { return d.state.graphic.Alpha() }

func (d *Drawable) SetTint(c color.Color) { d.state.graphic.SetTint(c) }

func (d *Drawable) SetTintMode(mode svgicon.TintMode) { d.state.graphic.SetTintMode(mode) }

func (d *Drawable) TintMode() svgicon.TintMode { return d.state.graphic.TintMode() }

func (d *Drawable) SetTintList(list *svgicon.StateTint) { d.state.graphic.SetTintList(list) }

func (d *Drawable) SetColorFilter(f svgicon.ColorFilter) { d.state.graphic.SetColorFilter(f) }

func (d *Drawable) ColorFilter() svgicon.ColorFilter { return d.state.graphic.ColorFilter() }

// SetState returns true if the graphic changed with the new state.
func (d *Drawable) SetState(states []string) bool { return d.state.graphic.SetState(states) }

func (d *Drawable) IsStateful() bool { return d.state.graphic.IsStateful() }

func (d *Drawable) SetLevel(level int) bool { return d.state.graphic.SetLevel(level) }

func (d *Drawable) Level() int { return d.state.graphic.Level() }

func (d *Drawable) Opacity() svgicon.Opacity { return d.state.graphic.Opacity() }

// SetLayoutDirection returns true if the drawing changed.
func (d *Drawable) SetLayoutDirection(dir svgicon.LayoutDirection) bool {
	return d.state.graphic.SetLayoutDirection(dir)
}

func (d *Drawable) LayoutDirection() svgicon.LayoutDirection {
	return d.state.graphic.LayoutDirection()
}

// SetVisible returns true if the visibility changed.
func (d *Drawable) SetVisible(visible, restart bool) bool {
	return d.state.graphic.SetVisible(visible, restart)
}

func (d *Drawable) IsVisible() bool { return d.state.graphic.IsVisible() }

func (d *Drawable) IntrinsicWidth() int { return d.state.graphic.IntrinsicWidth() }

func (d *Drawable) IntrinsicHeight() int { return d.state.graphic.IntrinsicHeight() }
