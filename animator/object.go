package animator

import (
	"time"

	"github.com/benoitkugler/okavd/internal/logging"
)

// Infinite is the RepeatCount of animations repeating forever.
const Infinite = -1

// RepeatMode defines what happens when an animation reaches its end
// and must repeat.
type RepeatMode uint8

const (
	// Restart starts again from the beginning
	Restart RepeatMode = iota
	// Reverse plays backward, then forward, etc...
	Reverse
)

// ObjectAnimator animates one property of its target.
type ObjectAnimator struct {
	baseAnimator

	PropertyName string
	// From is the start value. If nil, the current value
	// of the target property is used when the animation starts.
	From Value
	// To is the end value, required to animate the target.
	To Value

	Duration    time.Duration
	StartDelay  time.Duration
	RepeatCount int // number of repetitions after the first run, or Infinite
	RepeatMode  RepeatMode
	// Interpolator defaults to Linear
	Interpolator Interpolator

	target interface{}

	// playing state

	started, running bool
	startTime        time.Duration // of the current run (after the delay)
	startTimeSet     bool          // false until the first frame
	iteration        int
	from, to         Value // resolved values
	fraction         float64
}

// NewFloat returns an animator of a numeric property from `from` to `to`.
func NewFloat(target interface{}, property string, from, to float64, duration time.Duration) *ObjectAnimator {
	return &ObjectAnimator{target: target, PropertyName: property, From: Float(from), To: Float(to), Duration: duration}
}

// NewColor returns an animator of a color property from `from` to `to`.
func NewColor(target interface{}, property string, from, to Color, duration time.Duration) *ObjectAnimator {
	return &ObjectAnimator{target: target, PropertyName: property, From: from, To: to, Duration: duration}
}

func (a *ObjectAnimator) SetTarget(target interface{}) {
	if a.started {
		a.Cancel()
	}
	a.target = target
}

// Target returns the animated object, or nil.
func (a *ObjectAnimator) Target() interface{} { return a.target }

func (a *ObjectAnimator) IsRunning() bool { return a.running }

func (a *ObjectAnimator) IsStarted() bool { return a.started }

// AnimatedFraction returns the fraction of the current run,
// after the interpolator and repeat mode are applied.
func (a *ObjectAnimator) AnimatedFraction() float64 { return a.fraction }

func (a *ObjectAnimator) TotalDuration() time.Duration {
	if a.RepeatCount == Infinite {
		return DurationInfinite
	}
	return a.StartDelay + a.Duration*time.Duration(a.RepeatCount+1)
}

func (a *ObjectAnimator) Clone() Animator {
	out := &ObjectAnimator{
		baseAnimator: a.baseAnimator.cloned(),
		PropertyName: a.PropertyName,
		From:         a.From,
		To:           a.To,
		Duration:     a.Duration,
		StartDelay:   a.StartDelay,
		RepeatCount:  a.RepeatCount,
		RepeatMode:   a.RepeatMode,
		Interpolator: a.Interpolator,
		target:       a.target,
	}
	return out
}

// Start registers the animation on its handler. Without start delay, the
// start value is applied immediately.
// Starting a started animation restarts it.
func (a *ObjectAnimator) Start() {
	h := a.frames()
	h.remove(a)
	a.started = true
	a.running = false
	a.startTimeSet = false
	a.iteration = 0
	h.add(a)
	a.notify(a, eventStart)
	if a.StartDelay <= 0 && a.started { // a listener may have ended the animation
		a.begin()
		a.setFraction(0)
	}
}

// begin resolves the values, once the start delay has elapsed
func (a *ObjectAnimator) begin() {
	a.running = true
	a.to = a.To
	a.from = a.From
	if a.to == nil || a.target == nil {
		return
	}
	if a.from == nil {
		if current, ok := a.to.readFrom(a.target, a.PropertyName); ok {
			a.from = current
		} else {
			a.from = a.to
		}
	}
}

func (a *ObjectAnimator) doFrame(frameTime time.Duration) {
	if !a.startTimeSet {
		a.startTime = frameTime
		a.startTimeSet = true
	}
	elapsed := frameTime - a.startTime
	if !a.running {
		if elapsed < a.StartDelay {
			return
		}
		a.startTime += a.StartDelay
		elapsed -= a.StartDelay
		a.begin()
	}
	if a.animateTo(elapsed) {
		a.finish(false)
	}
}

// animateTo applies the value at `elapsed` time since the beginning
// of the first run, returning true if the animation is over.
func (a *ObjectAnimator) animateTo(elapsed time.Duration) (done bool) {
	var (
		iteration int
		fraction  float64
	)
	if a.Duration <= 0 {
		done = true
		iteration, fraction = a.RepeatCount, 1
		if a.RepeatCount == Infinite {
			iteration = 0
		}
	} else {
		raw := float64(elapsed) / float64(a.Duration)
		if a.RepeatCount != Infinite && raw >= float64(a.RepeatCount+1) {
			done = true
			iteration, fraction = a.RepeatCount, 1
		} else {
			iteration = int(raw)
			fraction = raw - float64(iteration)
		}
		for a.iteration < iteration {
			a.iteration++
			a.notify(a, eventRepeat)
		}
	}
	if a.RepeatMode == Reverse && iteration%2 == 1 {
		fraction = 1 - fraction
	}
	a.setFraction(fraction)
	return done
}

func (a *ObjectAnimator) setFraction(fraction float64) {
	if a.Interpolator != nil {
		fraction = a.Interpolator.Interpolate(fraction)
	}
	a.fraction = fraction
	if a.target == nil || a.from == nil || a.to == nil {
		return
	}
	if !a.from.Lerp(a.to, fraction).applyTo(a.target, a.PropertyName) {
		logging.Debugf("animator: property %q not supported by %T", a.PropertyName, a.target)
	}
}

// finish unregisters the animation and notifies the listeners
func (a *ObjectAnimator) finish(canceled bool) {
	a.frames().remove(a)
	a.started, a.running = false, false
	if canceled {
		a.notify(a, eventCancel)
	}
	a.notify(a, eventEnd)
	a.ended(a)
}

// End applies the end value. If the animation was not started,
// it is started first, so that both start and end listeners are notified.
func (a *ObjectAnimator) End() {
	if !a.started {
		a.Start()
		if !a.started {
			return
		}
	}
	if !a.running {
		a.begin()
	}
	a.iteration = a.RepeatCount
	if a.RepeatCount == Infinite {
		a.iteration = 0
	}
	fraction := 1.
	if a.RepeatMode == Reverse && a.iteration%2 == 1 {
		fraction = 0
	}
	a.setFraction(fraction)
	a.finish(false)
}

// Cancel stops a started animation, leaving the target as it is.
func (a *ObjectAnimator) Cancel() {
	if !a.started {
		return
	}
	a.finish(true)
}
