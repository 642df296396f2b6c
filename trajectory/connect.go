package trajectory

import (
	"errors"
	"fmt"

	"github.com/npillmayer/roadmark"
	"github.com/npillmayer/roadmark/bezier"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'trajectory'
func tracer() tracing.Trace {
	return tracing.Select("trajectory")
}

var (
	// ErrInvalidKnot indicates a knot coordinate contains NaN/Inf.
	ErrInvalidKnot = errors.New("trajectory has invalid knot coordinate")
	// ErrDegenerateSegment indicates both knots collapse to one point on the ground plane.
	ErrDegenerateSegment = errors.New("trajectory has degenerate segment")
)

// Knot is an end point of a trajectory together with the direction of travel
// at that point. A null direction lets the chord decide.
type Knot struct {
	Position  roadmark.Vec3
	Direction roadmark.Vec3
}

// Tension limits, as in MetaFont. Tensions below 3/4 may produce loops.
const (
	MinTension = 0.75
	MaxTension = 4.0
)

// ClampTension adapts a tension to lie between 3/4 and 4 (absolute).
func ClampTension(tension float64) float64 {
	if tension < 0 {
		tension = -tension
	}
	if tension < MinTension {
		return MinTension
	} else if tension > MaxTension {
		return MaxTension
	}
	return tension
}

// Connect finds the cubic from knot `from` to knot `to`, leaving `from` in
// from.Direction and arriving at `to` in to.Direction. Tension is
// applied at both ends and clamped by ClampTension; 1.0 is neutral.
func Connect(from, to Knot, tension float64) (bezier.Cubic, error) {
	if !from.Position.IsFinite() || !to.Position.IsFinite() ||
		!from.Direction.IsFinite() || !to.Direction.IsFinite() {
		return bezier.Cubic{}, fmt.Errorf("%w: %s -> %s", ErrInvalidKnot, from.Position, to.Position)
	}
	z0, z1 := from.Position.XZ(), to.Position.XZ()
	dvec := z1 - z0
	if roadmark.Is0(dvec.Length()) {
		return bezier.Cubic{}, fmt.Errorf("%w between %s and %s", ErrDegenerateSegment,
			from.Position, to.Position)
	}
	theta := 0.0
	if dir := from.Direction.XZ(); !roadmark.Is0(dir.Length()) {
		theta = reduceAngle(dir.Angle() - dvec.Angle())
	}
	phi := 0.0
	if dir := to.Direction.XZ(); !roadmark.Is0(dir.Length()) {
		phi = reduceAngle(dvec.Angle() - dir.Angle())
	}
	tension = ClampTension(tension)
	a, b := recip(tension), recip(tension)
	p2, p3 := controlPoints(phi, theta, a, b, dvec)
	tracer().Debugf("θ = %.4g°, φ = %.4g°, controls %s and %s", rad2deg(theta), rad2deg(phi),
		ptstring(z0+p2), ptstring(z1-p3))
	h0, h1 := from.Position.Y, to.Position.Y
	return bezier.New(
		from.Position,
		(z0+p2).Vec3(h0+(h1-h0)/3),
		(z1-p3).Vec3(h0+2*(h1-h0)/3),
		to.Position,
	), nil
}

// Straight is the trajectory of a straight line from p to q.
func Straight(p, q roadmark.Vec3) bezier.Cubic {
	return bezier.Line(p, q)
}
