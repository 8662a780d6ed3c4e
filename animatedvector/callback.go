package animatedvector

import "github.com/benoitkugler/okavd/animator"

// AnimationCallback is notified when the animations of a drawable
// start and end. Implementations must be comparable to be unregistered.
type AnimationCallback interface {
	OnAnimationStart(d *Drawable)
	OnAnimationEnd(d *Drawable)
}

// relay is the only listener registered on the animator set:
// it forwards the notifications to the callbacks.
type relay struct {
	d *Drawable
}

func (r *relay) callbacks() []AnimationCallback {
	return append([]AnimationCallback(nil), r.d.animationCallbacks...)
}

func (r *relay) OnAnimationStart(animator.Animator) {
	for _, cb := range r.callbacks() {
		cb.OnAnimationStart(r.d)
	}
}

func (r *relay) OnAnimationEnd(animator.Animator) {
	for _, cb := range r.callbacks() {
		cb.OnAnimationEnd(r.d)
	}
}

func (r *relay) OnAnimationCancel(animator.Animator) {}

func (r *relay) OnAnimationRepeat(animator.Animator) {}

// RegisterAnimationCallback adds `cb`. A nil callback is ignored.
func (d *Drawable) RegisterAnimationCallback(cb AnimationCallback) {
	if cb == nil {
		return
	}
	d.animationCallbacks = append(d.animationCallbacks, cb)
	if d.listener == nil {
		d.listener = &relay{d: d}
		d.set.AddListener(d.listener)
	}
}

// UnregisterAnimationCallback removes `cb`, returning false
// if it was not registered.
func (d *Drawable) UnregisterAnimationCallback(cb AnimationCallback) bool {
	if cb == nil {
		return false
	}
	removed := false
	for i, other := range d.animationCallbacks {
		if other == cb {
			d.animationCallbacks = append(d.animationCallbacks[:i:i], d.animationCallbacks[i+1:]...)
			removed = true
			break
		}
	}
	if len(d.animationCallbacks) == 0 {
		d.removeAnimatorSetListener()
	}
	return removed
}

// ClearAnimationCallbacks removes all the callbacks.
func (d *Drawable) ClearAnimationCallbacks() {
	d.removeAnimatorSetListener()
	d.animationCallbacks = nil
}

func (d *Drawable) removeAnimatorSetListener() {
	if d.listener != nil {
		d.set.RemoveListener(d.listener)
		d.listener = nil
	}
}
