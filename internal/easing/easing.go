// Package easing maps normalized progress t in [0,1] to eased progress.
//
// Every function returns exactly 0 for t=0 and exactly 1 for t=1. Callers clamp
// t before calling, the functions are not defined outside that range.
package easing

import "math"

// Func is an easing curve.
type Func func(t float64) float64

func Linear(t float64) float64 {
	return t
}

// powerIn, powerOut and powerInOut are the curves of t^n.
func powerIn(t float64, n float64) float64 {
	return math.Pow(t, n)
}

func powerOut(t float64, n float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(1-t, n)
}

func powerInOut(t float64, n float64) float64 {
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return math.Pow(2, n-1) * math.Pow(t, n)
	}
	return 1 - math.Pow(-2*t+2, n)/2
}

func QuadIn(t float64) float64 { return t * t }
func QuadOut(t float64) float64 { return powerOut(t, 2) }
func QuadInOut(t float64) float64 { return powerInOut(t, 2) }

func CubicIn(t float64) float64 { return t * t * t }
func CubicOut(t float64) float64 { return powerOut(t, 3) }
func CubicInOut(t float64) float64 { return powerInOut(t, 3) }

func QuartIn(t float64) float64 { return powerIn(t, 4) }
func QuartOut(t float64) float64 { return powerOut(t, 4) }
func QuartInOut(t float64) float64 { return powerInOut(t, 4) }

// Quint is the "strong" family.
func QuintIn(t float64) float64 { return powerIn(t, 5) }
func QuintOut(t float64) float64 { return powerOut(t, 5) }
func QuintInOut(t float64) float64 { return powerInOut(t, 5) }

func SineIn(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Cos(t*math.Pi/2)
}

func SineOut(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return math.Sin(t * math.Pi / 2)
}

func SineInOut(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// BounceOut is the classic four arc bounce (https://easings.net/#easeOutBounce).
func BounceOut(t float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75

	switch {
	case t >= 1:
		return 1
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

const (
	maxBounceStrength = 0.95
	minBounceHeight   = 0.001
)

// DampedBounceOut returns a bounce whose rebound heights shrink geometrically.
// strength is the ratio between two consecutive rebound heights and is clamped
// to [0, 0.95]; zero gives a plain fall with no rebound.
func DampedBounceOut(strength float64) Func {
	strength = math.Max(0, math.Min(maxBounceStrength, strength))

	// A fall of height 1 takes time 1, a rebound of height h takes 2*sqrt(h).
	// Rebound k has height strength^(2k), so its half width is strength^k.
	halfWidths := []float64{}
	total := 1.0
	if strength > 0 {
		for w := strength; w*w > minBounceHeight; w *= strength {
			halfWidths = append(halfWidths, w)
			total += 2 * w
		}
	}

	return func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		x := t * total
		if x < 1 {
			return x * x
		}
		start := 1.0
		for _, w := range halfWidths {
			end := start + 2*w
			if x < end {
				d := (x - (start + w)) / w
				return 1 - w*w*(1-d*d)
			}
			start = end
		}
		return 1
	}
}
