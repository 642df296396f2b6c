package bezier

import (
	"math"
)

// Legendre-Gauss quadrature coefficients (weight, abscissa) on [-1,1].
var gaussLegendreCoeffs8 = [...][2]float64{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}

// Number of panels for composite quadrature over the full parameter range.
const arclenPanels = 4

// travelAccuracy is the tolerance in distance units for Travel.
const travelAccuracy = 1e-9

const maxTravelIterations = 48

// ArcLength is the length of the curve between parameters t0 and t1.
// Returns a negative length if t1 < t0.
func (c Cubic) ArcLength(t0, t1 float64) float64 {
	if t1 < t0 {
		return -c.ArcLength(t1, t0)
	}
	if t1 == t0 {
		return 0
	}
	n := int(math.Ceil((t1 - t0) * arclenPanels))
	h := (t1 - t0) / float64(n)
	var length float64
	for i := 0; i < n; i++ {
		a := t0 + float64(i)*h
		mid, half := a+h/2, h/2
		for _, coeff := range gaussLegendreCoeffs8 {
			wi, xi := coeff[0], coeff[1]
			length += wi * half * c.derivative(mid+xi*half).Length()
		}
	}
	return length
}

// Length is the arc length of the whole curve.
func (c Cubic) Length() float64 {
	return c.ArcLength(0, 1)
}

// Travel advances from parameter start by distance along the curve and
// returns the parameter reached. If the end of the curve is reached or
// passed, Travel returns exactly 1. A non-positive distance returns start.
func (c Cubic) Travel(start, distance float64) float64 {
	if distance <= 0 || math.IsNaN(distance) {
		return start
	}
	start = math.Max(0, start)
	if start >= 1 {
		return 1
	}
	remaining := c.ArcLength(start, 1)
	if remaining <= distance {
		return 1
	}
	// safeguarded Newton iteration on f(t) = arclen(start,t) - distance
	lo, hi := start, 1.0
	t := start + (1-start)*distance/remaining
	for i := 0; i < maxTravelIterations; i++ {
		f := c.ArcLength(start, t) - distance
		if math.Abs(f) <= travelAccuracy {
			return t
		}
		if f > 0 {
			hi = t
		} else {
			lo = t
		}
		next := (lo + hi) / 2
		if speed := c.derivative(t).Length(); speed > travelAccuracy {
			if n := t - f/speed; n > lo && n < hi {
				next = n
			}
		}
		t = next
	}
	tracer().Debugf("travel from %.4f by %.4f did not converge, using t=%.6f", start, distance, t)
	return t
}
