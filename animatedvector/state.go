// Implements animated vector drawables: a vector graphic
// whose named groups and paths are animated by property animators.
//
// A State is the constant part of a drawable, as loaded from
// resources, and may be shared by several Drawable. A Drawable
// must call Mutate before changing its graphic, so that
// the other drawables sharing its state are not affected.
package animatedvector

import (
	"github.com/benoitkugler/okavd/animator"
	"github.com/benoitkugler/okavd/internal/logging"
	"github.com/benoitkugler/okavd/svgicon"
)

// targetAnimator binds an animator template
// to the name of its target in the graphic
type targetAnimator struct {
	name     string
	template animator.Animator
}

// State stores the graphic and the animator templates,
// which are cloned by each Drawable when it first starts.
type State struct {
	changingConfigurations ConfigChanges
	graphic                *svgicon.SvgIcon
	animators              []targetAnimator
}

// NewState returns a state for the given graphic, without animators.
// A nil graphic is replaced by an empty one.
func NewState(graphic *svgicon.SvgIcon) *State {
	if graphic == nil {
		graphic = svgicon.NewIcon()
	}
	return &State{graphic: graphic}
}

// newState returns a copy of `copy`, whose graphic is independent
// and bound to `owner`. The templates are shared.
func newState(copy *State, owner svgicon.Callback) *State {
	if copy == nil {
		return NewState(nil)
	}
	return &State{
		changingConfigurations: copy.changingConfigurations,
		graphic:                copy.graphic.Clone(owner),
		animators:              append([]targetAnimator(nil), copy.animators...),
	}
}

// Clone returns an independent copy of the state, whose graphic
// is bound to `owner`.
func (s *State) Clone(owner svgicon.Callback) *State { return newState(s, owner) }

// AddTargetAnimator registers an animator template for the graphic member
// named `name`. It must only be called while loading the state,
// before any drawable using it starts.
func (s *State) AddTargetAnimator(name string, template animator.Animator) {
	s.animators = append(s.animators, targetAnimator{name: name, template: template})
}

// Graphic returns the animated graphic.
func (s *State) Graphic() *svgicon.SvgIcon { return s.graphic }

// TargetNames returns the target names, in the order of
// the templates.
func (s *State) TargetNames() []string {
	out := make([]string, len(s.animators))
	for i, ta := range s.animators {
		out[i] = ta.name
	}
	return out
}

func (s *State) ChangingConfigurations() ConfigChanges { return s.changingConfigurations }

// NewDrawable returns a drawable sharing this state.
// The requests of the shared graphic (such as the invalidation
// following SetAlpha) are relayed to the host of the first drawable
// created, whatever the drawable changing it, until that drawable
// is mutated.
func (s *State) NewDrawable(opts ...Option) *Drawable {
	return newDrawable(s, opts...)
}

// prepareLocalAnimators adds to `set` a clone of each template,
// bound to its target, all the clones being played together.
// Unknown targets are not an error: the clone is then inert.
func (s *State) prepareLocalAnimators(set *animator.AnimatorSet) {
	if len(s.animators) == 0 {
		return
	}
	builder := set.Play(s.prepareLocalAnimator(0))
	for i := 1; i < len(s.animators); i++ {
		builder = builder.With(s.prepareLocalAnimator(i))
	}
}

func (s *State) prepareLocalAnimator(index int) animator.Animator {
	ta := s.animators[index]
	local := ta.template.Clone()
	target := s.graphic.TargetByName(ta.name)
	if target == nil {
		logging.Debugf("animatedvector: no target named %q, animation is inert", ta.name)
	}
	local.SetTarget(target)
	return local
}
