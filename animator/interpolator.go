package animator

// Interpolator maps the elapsed fraction of an animation, in [0,1],
// to the fraction used to compute the animated value.
type Interpolator interface {
	Interpolate(fraction float64) float64
}

// Linear is the identity interpolator, and the default one.
type Linear struct{}

func (Linear) Interpolate(fraction float64) float64 { return fraction }
