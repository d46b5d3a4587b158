// package animator drives key-framed value animation against a shared clock.
// Anim descriptors bundle per-property tracks with a playback policy, an
// Animator owns the current and queued Anim for one target area, and a
// Registry shared across animators maps each playing area to its timing
// window so playback survives view rebuilds.
package animator

import "math"

// Ease remaps a normalized track fraction in [0, 1] before interpolation.
type Ease func(t float64) float64

// EaseLinear passes the fraction through unchanged.
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad accelerates from zero velocity.
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad decelerates to zero velocity.
func EaseOutQuad(t float64) float64 {
	return t * (2.0 - t)
}

// EaseInOutQuad accelerates through the first half and decelerates through
// the second.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2.0 * t * t
	}
	t = 2.0*t - 1.0
	return -0.5 * (t*(t-2.0) - 1.0)
}

// EaseInCubic accelerates from zero velocity, steeper than quad.
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic decelerates to zero velocity, steeper than quad.
func EaseOutCubic(t float64) float64 {
	t -= 1.0
	return t*t*t + 1.0
}

// EaseInOutCubic combines EaseInCubic and EaseOutCubic around the midpoint.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4.0 * t * t * t
	}
	t = 2.0*t - 2.0
	return 0.5*t*t*t + 1.0
}

// EasePow builds a piecewise power curve shaped by its entry and exit
// exponents. Larger begin values flatten the start of the curve, larger end
// values flatten the finish.
//
// Parameters:
//   - begin: entry steepness, clamped so begin*begin >= 1
//   - end: exit steepness, clamped so end*end >= 1
//
// Returns:
//   - Ease: the shaped easing function
func EasePow(begin, end float64) Ease {
	return func(t float64) float64 {
		if t < 0.0 {
			return 0.0
		}
		if t > 1.0 {
			return 1.0
		}
		a := -1.0 / math.Max(begin*begin, 1.0)
		b := 1.0 + 1.0/math.Max(end*end, 1.0)
		t2 := (((a-b)*t + b) * t) * t
		return math.Min(math.Max(t2, 0.0), 1.0)
	}
}

// EaseBezier builds a cubic bezier easing from two control points, matching
// the CSS cubic-bezier convention with implicit endpoints (0,0) and (1,1).
//
// Parameters:
//   - cx1: x of the first control point
//   - cy1: y of the first control point
//   - cx2: x of the second control point
//   - cy2: y of the second control point
//
// Returns:
//   - Ease: the shaped easing function
func EaseBezier(cx1, cy1, cx2, cy2 float64) Ease {
	ax := 3.0*cx1 - 3.0*cx2 + 1.0
	bx := 3.0*cx2 - 6.0*cx1
	cx := 3.0 * cx1
	ay := 3.0*cy1 - 3.0*cy2 + 1.0
	by := 3.0*cy2 - 6.0*cy1
	cy := 3.0 * cy1

	sampleX := func(u float64) float64 {
		return ((ax*u+bx)*u + cx) * u
	}
	sampleY := func(u float64) float64 {
		return ((ay*u+by)*u + cy) * u
	}
	sampleDX := func(u float64) float64 {
		return (3.0*ax*u+2.0*bx)*u + cx
	}

	return func(t float64) float64 {
		if t <= 0.0 {
			return 0.0
		}
		if t >= 1.0 {
			return 1.0
		}
		// Newton iteration, falling back to bisection when the derivative
		// flattens out.
		u := t
		for i := 0; i < 8; i++ {
			x := sampleX(u) - t
			if math.Abs(x) < 1e-6 {
				return sampleY(u)
			}
			d := sampleDX(u)
			if math.Abs(d) < 1e-6 {
				break
			}
			u -= x / d
		}
		lo, hi := 0.0, 1.0
		u = t
		for hi-lo > 1e-6 {
			if sampleX(u) < t {
				lo = u
			} else {
				hi = u
			}
			u = (lo + hi) / 2.0
		}
		return sampleY(u)
	}
}
