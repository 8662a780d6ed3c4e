package animator

import "time"

// Ordering defines how the children of a set are played.
type Ordering uint8

const (
	// Together starts all the children at the same time.
	Together Ordering = iota
	// Sequentially starts each child when the previous one ends.
	Sequentially
)

func (o Ordering) String() string {
	if o == Sequentially {
		return "sequentially"
	}
	return "together"
}

// AnimatorSet plays a list of animators, in the given order.
// It ends when all of its children have ended.
type AnimatorSet struct {
	baseAnimator

	Ordering Ordering
	children []Animator

	started bool
	// true while ending or canceling the children,
	// whose notifications are then ignored
	terminating bool
	current     int // index of the playing child, for Sequentially
	pending     int // number of children still playing, for Together
}

// NewSet returns an empty set.
func NewSet(ordering Ordering) *AnimatorSet {
	return &AnimatorSet{Ordering: ordering}
}

// Children returns the animators of the set.
func (s *AnimatorSet) Children() []Animator {
	return append([]Animator(nil), s.children...)
}

func (s *AnimatorSet) add(a Animator) {
	a.base().parent = s
	s.children = append(s.children, a)
}

// PlayTogether replaces the children of the set by `as`, played together.
func (s *AnimatorSet) PlayTogether(as ...Animator) {
	s.children = s.children[:0]
	s.Ordering = Together
	for _, a := range as {
		s.add(a)
	}
}

// PlaySequentially replaces the children of the set by `as`,
// played one after the other.
func (s *AnimatorSet) PlaySequentially(as ...Animator) {
	s.children = s.children[:0]
	s.Ordering = Sequentially
	for _, a := range as {
		s.add(a)
	}
}

// Builder adds animators to a set.
type Builder struct {
	set *AnimatorSet
}

// Play adds `a` to the set, which is then played together,
// and returns a Builder to add the other animators.
func (s *AnimatorSet) Play(a Animator) Builder {
	s.Ordering = Together
	s.add(a)
	return Builder{set: s}
}

// With adds `a` to the set, starting at the same time as the
// other animators.
func (b Builder) With(a Animator) Builder {
	b.set.add(a)
	return b
}

func (s *AnimatorSet) SetTarget(target interface{}) {
	for _, child := range s.children {
		child.SetTarget(target)
	}
}

// SetHandler sets the frame source of the set and of its children.
func (s *AnimatorSet) SetHandler(h *Handler) {
	s.handler = h
	for _, child := range s.children {
		child.SetHandler(h)
	}
}

func (s *AnimatorSet) IsStarted() bool { return s.started }

// IsRunning returns true if one of the children is running.
func (s *AnimatorSet) IsRunning() bool {
	if !s.started {
		return false
	}
	for _, child := range s.children {
		if child.IsRunning() {
			return true
		}
	}
	return false
}

func (s *AnimatorSet) TotalDuration() time.Duration {
	var total time.Duration
	for _, child := range s.children {
		d := child.TotalDuration()
		if d == DurationInfinite {
			return DurationInfinite
		}
		if s.Ordering == Sequentially {
			total += d
		} else if d > total {
			total = d
		}
	}
	return total
}

// Clone returns a stopped set, whose children are clones of
// the children of s.
func (s *AnimatorSet) Clone() Animator {
	out := &AnimatorSet{baseAnimator: s.baseAnimator.cloned(), Ordering: s.Ordering}
	for _, child := range s.children {
		out.add(child.Clone())
	}
	return out
}

// Start starts the children. It has no effect on a started set.
// An empty set ends immediately.
func (s *AnimatorSet) Start() {
	if s.started {
		return
	}
	s.started = true
	s.terminating = false
	if s.handler != nil {
		for _, child := range s.children {
			child.SetHandler(s.handler)
		}
	}
	s.notify(s, eventStart)
	if len(s.children) == 0 {
		s.finish(false)
		return
	}
	switch s.Ordering {
	case Sequentially:
		s.current = 0
		s.children[0].Start()
	default:
		s.pending = len(s.children)
		for _, child := range s.children {
			if !s.started { // ended by a listener
				return
			}
			child.Start()
		}
	}
}

// childEnded is called by the children of the set, after
// their own listeners.
func (s *AnimatorSet) childEnded(child Animator) {
	if s.terminating || !s.started {
		return
	}
	switch s.Ordering {
	case Sequentially:
		s.current++
		if s.current < len(s.children) {
			s.children[s.current].Start()
			return
		}
	default:
		s.pending--
		if s.pending > 0 {
			return
		}
	}
	s.finish(false)
}

func (s *AnimatorSet) finish(canceled bool) {
	s.started = false
	if canceled {
		s.notify(s, eventCancel)
	}
	s.notify(s, eventEnd)
	s.ended(s)
}

// End ends every child not already ended, so that
// their end values are applied, then notifies the end listeners.
// It has no effect on a set which is not started.
func (s *AnimatorSet) End() {
	if !s.started {
		return
	}
	s.terminating = true
	remaining := s.children
	if s.Ordering == Sequentially {
		remaining = s.children[s.current:]
	}
	for _, child := range remaining {
		if s.Ordering == Together && !child.IsStarted() {
			continue // already ended
		}
		child.End()
	}
	s.terminating = false
	s.finish(false)
}

// Cancel cancels the playing children, and notifies
// the cancel, then end listeners.
// It has no effect on a set which is not started.
func (s *AnimatorSet) Cancel() {
	if !s.started {
		return
	}
	s.terminating = true
	for _, child := range s.children {
		child.Cancel()
	}
	s.terminating = false
	s.finish(true)
}
