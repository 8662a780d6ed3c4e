// Implements a property animation engine, modeled after
// Android's animators: an ObjectAnimator changes one property of a target
// over time, and an AnimatorSet composes animators, played together
// or one after the other.
//
// Animations are driven by a Handler, which must be fed with frames,
// either by hand (see Handler.DoFrame) or with a ticker (see Handler.Run).
// Animators are not safe for concurrent use: every call
// (including the frames) must happen on the same goroutine.
package animator

import "time"

// DurationInfinite is returned by TotalDuration for
// animations repeating forever.
const DurationInfinite time.Duration = -1

// Animator is implemented by *ObjectAnimator and *AnimatorSet.
type Animator interface {
	// Start starts the animation. The start listeners are notified
	// synchronously.
	Start()
	// End jumps to the end of the animation, notifying the end listeners.
	End()
	// Cancel stops the animation where it is, notifying the cancel,
	// then end listeners.
	Cancel()

	// IsRunning returns true if the animation is progressing,
	// that is started and past its start delay.
	IsRunning() bool
	// IsStarted returns true between Start and the end of the animation.
	IsStarted() bool

	// Clone returns a stopped copy, not bound to any parent
	// but with the same target and listeners.
	Clone() Animator
	// SetTarget sets the object whose property is animated.
	// A nil target makes the animation inert: it still runs, but
	// has no effect.
	SetTarget(target interface{})
	// SetHandler sets the frame source. If never called,
	// the package default Handler is used.
	SetHandler(h *Handler)

	AddListener(l Listener)
	RemoveListener(l Listener)
	// Listeners returns a copy of the registered listeners.
	Listeners() []Listener

	// TotalDuration returns the duration of the whole
	// animation, including delays and repetitions, or DurationInfinite.
	TotalDuration() time.Duration

	base() *baseAnimator
}

// Listener is notified of the progress of an animation.
// Implementations should be comparable (pointer types are a good fit),
// so that they may be removed.
type Listener interface {
	OnAnimationStart(a Animator)
	OnAnimationEnd(a Animator)
	OnAnimationCancel(a Animator)
	OnAnimationRepeat(a Animator)
}

// ListenerFuncs is a Listener calling its non nil fields.
// Use a pointer to it as Listener.
type ListenerFuncs struct {
	Start, End, Cancel, Repeat func(a Animator)
}

func (l *ListenerFuncs) OnAnimationStart(a Animator) {
	if l.Start != nil {
		l.Start(a)
	}
}

func (l *ListenerFuncs) OnAnimationEnd(a Animator) {
	if l.End != nil {
		l.End(a)
	}
}

func (l *ListenerFuncs) OnAnimationCancel(a Animator) {
	if l.Cancel != nil {
		l.Cancel(a)
	}
}

func (l *ListenerFuncs) OnAnimationRepeat(a Animator) {
	if l.Repeat != nil {
		l.Repeat(a)
	}
}

// baseAnimator stores the listeners and the links
// of an animator with its frame source and its parent set.
type baseAnimator struct {
	listeners []Listener
	handler   *Handler
	parent    *AnimatorSet // nil for top level animators
}

func (b *baseAnimator) base() *baseAnimator { return b }

func (b *baseAnimator) SetHandler(h *Handler) { b.handler = h }

func (b *baseAnimator) frames() *Handler {
	if b.handler == nil {
		return defaultHandler
	}
	return b.handler
}

// AddListener registers `l`. A nil listener is ignored.
func (b *baseAnimator) AddListener(l Listener) {
	if l == nil {
		return
	}
	b.listeners = append(b.listeners, l)
}

// RemoveListener removes the first occurrence of `l`, if any.
func (b *baseAnimator) RemoveListener(l Listener) {
	for i, other := range b.listeners {
		if other == l {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

func (b *baseAnimator) Listeners() []Listener {
	return append([]Listener(nil), b.listeners...)
}

// cloned returns the part of b kept by Clone: the parent link is dropped.
func (b *baseAnimator) cloned() baseAnimator {
	return baseAnimator{listeners: b.Listeners(), handler: b.handler}
}

type event uint8

const (
	eventStart event = iota
	eventEnd
	eventCancel
	eventRepeat
)

// notify calls the listeners registered when the notification starts:
// listeners may safely add or remove listeners.
func (b *baseAnimator) notify(a Animator, ev event) {
	for _, l := range b.Listeners() {
		switch ev {
		case eventStart:
			l.OnAnimationStart(a)
		case eventEnd:
			l.OnAnimationEnd(a)
		case eventCancel:
			l.OnAnimationCancel(a)
		case eventRepeat:
			l.OnAnimationRepeat(a)
		}
	}
}

// ended must be called after the end listeners
func (b *baseAnimator) ended(a Animator) {
	if b.parent != nil {
		b.parent.childEnded(a)
	}
}
