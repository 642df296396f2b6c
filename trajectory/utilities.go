package trajectory

import (
	"fmt"
	"math"

	"github.com/npillmayer/roadmark"
)

func hobbyParamsAlphaBeta(theta, phi float64) (float64, float64) {
	constA := 1.41421356     // sqrt(2) -- empiric constants, as explained by J.Hobby
	constB := 0.0625         // 1/16
	constC := 0.38196601125  // (3 - sqrt(5)) / 2
	constCC := 0.61803398875 // 1 - c

	st, ct := math.Sincos(theta) // out-angle at z.0
	sf, cf := math.Sincos(phi)   // in-angle at z.1
	alpha := constA * (st - constB*sf) * (sf - constB*st) * (ct - cf)
	beta := 1 + constCC*ct + constC*cf
	return alpha, beta
}

func hobbyParamsRhoSigma(alpha, beta float64) (float64, float64) {
	rho := (2 + alpha) / beta
	sigma := (2 - alpha) / beta
	return rho, sigma
}

// Unit vectors of the handles, relative to the chord dvec.
func cunitvecs(theta, phi float64, dvec roadmark.Pair) (roadmark.Pair, roadmark.Pair) {
	st, ct := math.Sincos(theta)
	sf, cf := math.Sincos(phi)
	dx, dy := dvec.X(), dvec.Y()
	uv1 := roadmark.P(dx*ct-dy*st, dx*st+dy*ct)
	uv2 := roadmark.P(dx*cf+dy*sf, -dx*sf+dy*cf)
	return uv1, uv2
}

// Calculate control point offsets for a segment z.0 -> z.1 = z.0 + dvec.
// The post-control of z.0 is z.0+p2, the pre-control of z.1 is z.1-p3.
func controlPoints(phi, theta, a, b float64, dvec roadmark.Pair) (roadmark.Pair, roadmark.Pair) {
	alpha, beta := hobbyParamsAlphaBeta(theta, phi)
	rho, sigma := hobbyParamsRhoSigma(alpha, beta)
	uv1, uv2 := cunitvecs(theta, phi, dvec)
	p2 := uv1.Scaled(a / 3 * rho)
	p3 := uv2.Scaled(b / 3 * sigma)
	return p2, p3
}

// Reduce an angle to fit into -pi .. pi.
func reduceAngle(a float64) float64 {
	if math.Abs(a) > math.Pi {
		if a > 0 {
			a -= 2 * math.Pi
		} else {
			a += 2 * math.Pi
		}
	}
	return a
}

// Return 1/a for a.
func recip(a float64) float64 {
	if math.IsNaN(a) || a == 0 {
		return 1.0
	}
	return 1.0 / a
}

func rad2deg(a float64) float64 {
	return a / roadmark.Deg2Rad
}

func ptstring(p roadmark.Pair) string {
	return fmt.Sprintf("(%.4f,%.4f)", round(p.X()), round(p.Y()))
}

func round(x float64) float64 {
	return math.Round(x*10000.0) / 10000.0
}
