package svgpdf

import (
	"math"
)

// compute the bounding box of a path, needed when using gradients,
// and the polygon approximating it, used as clipping path

type point struct{ x, y float64 }

// rect is a bounding box, empty when Min > Max
type rect struct {
	xMin, yMin, xMax, yMax float64
}

var emptyRect = rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}

func (r rect) isEmpty() bool { return r.xMin > r.xMax || r.yMin > r.yMax }

func (r rect) add(p point) rect {
	return rect{
		xMin: math.Min(r.xMin, p.x), yMin: math.Min(r.yMin, p.y),
		xMax: math.Max(r.xMax, p.x), yMax: math.Max(r.yMax, p.y),
	}
}

func (r rect) union(other rect) rect {
	if other.isEmpty() {
		return r
	}
	return r.add(point{other.xMin, other.yMin}).add(point{other.xMax, other.yMax})
}

func (r rect) width() float64 { return r.xMax - r.xMin }

func (r rect) height() float64 { return r.yMax - r.yMin }

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point a time t
	evaluateCurve(t float64) point
}

type line [2]point

func (l line) criticalPoints() (tX, tY []float64) {
	return nil, nil
}

func (l line) evaluateCurve(t float64) point {
	return point{bezierLine(l[0].x, l[1].x, t), bezierLine(l[0].y, l[1].y, t)}
}

func bezierLine(p0, p1, t float64) float64 {
	return (p1-p0)*t + p0
}

type quadBezier [3]point

// quadratic polinomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// derivative as at + b where a,b :
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (cu quadBezier) criticalPoints() (tX, tY []float64) {
	aX, bX := quadraticDerivative(cu[0].x, cu[1].x, cu[2].x)
	aY, bY := quadraticDerivative(cu[0].y, cu[1].y, cu[2].y)
	return linearRoots(aX, bX), linearRoots(aY, bY)
}

func (cu quadBezier) evaluateCurve(t float64) point {
	return point{
		bezierQuad(cu[0].x, cu[1].x, cu[2].x, t),
		bezierQuad(cu[0].y, cu[1].y, cu[2].y, t),
	}
}

type cubicBezier [4]point

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	aX, bX, cX := cubicDerivative(cu[0].x, cu[1].x, cu[2].x, cu[3].x)
	aY, bY, cY := cubicDerivative(cu[0].y, cu[1].y, cu[2].y, cu[3].y)
	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) point {
	return point{
		bezierSpline(cu[0].x, cu[1].x, cu[2].x, cu[3].x, t),
		bezierSpline(cu[0].y, cu[1].y, cu[2].y, cu[3].y, t),
	}
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
// taken as aX^2 + bX + c  a,b and c are:
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 { // degenerated to bX + c
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	switch {
	case d < 0:
		return nil
	case d == 0:
		return []float64{-b / (2 * a)}
	default:
		sq := math.Sqrt(d)
		return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
	}
}

func computeBoundingBox(curve bezier) rect {
	resX, resY := curve.criticalPoints()
	out := emptyRect
	// add begin and end point
	for _, t := range append(append(resX, 0, 1), resY...) {
		// filter invalid value
		if !(0 <= t && t <= 1) {
			continue
		}
		out = out.add(curve.evaluateCurve(t))
	}
	return out
}

// flatten appends to `dst` the points of `curve` at t = 1/steps, ..., 1
func flatten(curve bezier, steps int, dst []point) []point {
	for i := 1; i <= steps; i++ {
		dst = append(dst, curve.evaluateCurve(float64(i)/float64(steps)))
	}
	return dst
}
