// Package bezier provides cubic Bézier curves in 3D space, the trajectories
// along which road markings are laid out.
/*
A trajectory connects two anchor points of a road intersection. Its control
points are a (start), b and c (the "handles") and d (end). Clients get
positions and tangents at curve parameter t ∈ [0,1], travel along the curve
by arc length, and split curves in halves.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package bezier

import (
	"fmt"

	"github.com/npillmayer/roadmark"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bezier'
func tracer() tracing.Trace {
	return tracing.Select("bezier")
}

// Cubic is a cubic Bézier curve. It is a value type and never changed after
// construction.
type Cubic struct {
	A, B, C, D roadmark.Vec3
}

// New creates a cubic from its four control points.
func New(a, b, c, d roadmark.Vec3) Cubic {
	return Cubic{A: a, B: b, C: c, D: d}
}

// Line creates a straight cubic from a to d. Handles are placed at 1/3 and 2/3,
// making the curve parameter proportional to arc length.
func Line(a, d roadmark.Vec3) Cubic {
	return Cubic{
		A: a,
		B: a.Lerp(d, 1.0/3.0),
		C: a.Lerp(d, 2.0/3.0),
		D: d,
	}
}

func (c Cubic) String() string {
	return fmt.Sprintf("%s .. controls %s and %s .. %s", c.A, c.B, c.C, c.D)
}

// Position evaluates the curve at parameter t.
func (c Cubic) Position(t float64) roadmark.Vec3 {
	mt := 1 - t
	a := c.A.Scaled(mt * mt * mt)
	b := c.B.Scaled(3 * mt * mt * t)
	cc := c.C.Scaled(3 * mt * t * t)
	d := c.D.Scaled(t * t * t)
	return a.Add(b).Add(cc).Add(d)
}

// derivative is the first derivative at t.
func (c Cubic) derivative(t float64) roadmark.Vec3 {
	mt := 1 - t
	d1 := c.B.Sub(c.A).Scaled(3 * mt * mt)
	d2 := c.C.Sub(c.B).Scaled(6 * mt * t)
	d3 := c.D.Sub(c.C).Scaled(3 * t * t)
	return d1.Add(d2).Add(d3)
}

// Tangent is the direction of the curve at parameter t (not normalized).
//
// If the derivative vanishes, which happens at the end points whenever a
// handle coincides with its end point, the direction towards the next distinct
// control point is used instead.
func (c Cubic) Tangent(t float64) roadmark.Vec3 {
	if tan := c.derivative(t); !tan.IsZero() {
		return tan
	}
	switch {
	case t <= 0:
		return firstNonZero(c.B.Sub(c.A), c.C.Sub(c.A), c.D.Sub(c.A))
	case t >= 1:
		return firstNonZero(c.D.Sub(c.C), c.D.Sub(c.B), c.D.Sub(c.A))
	}
	return c.D.Sub(c.A)
}

// StartDirection is the tangent direction at the start point.
func (c Cubic) StartDirection() roadmark.Vec3 {
	return firstNonZero(c.B.Sub(c.A), c.C.Sub(c.A), c.D.Sub(c.A))
}

// EndDirection is the tangent direction at the end point.
func (c Cubic) EndDirection() roadmark.Vec3 {
	return firstNonZero(c.D.Sub(c.C), c.D.Sub(c.B), c.D.Sub(c.A))
}

func firstNonZero(vs ...roadmark.Vec3) roadmark.Vec3 {
	for _, v := range vs {
		if !v.IsZero() {
			return v
		}
	}
	return roadmark.Zero
}

// DeltaAngle is the total turning angle of the curve in degrees, i.e. the
// angle between the start and end directions.
func (c Cubic) DeltaAngle() float64 {
	return roadmark.Angle(c.StartDirection(), c.EndDirection())
}

// Chord is the straight distance between start and end point.
func (c Cubic) Chord() float64 {
	return c.A.Distance(c.D)
}

// Divide splits the curve at t = 0.5, using de Casteljau. Both halves
// share the midpoint.
func (c Cubic) Divide() (Cubic, Cubic) {
	ab := c.A.Mid(c.B)
	bc := c.B.Mid(c.C)
	cd := c.C.Mid(c.D)
	abc := ab.Mid(bc)
	bcd := bc.Mid(cd)
	m := abc.Mid(bcd)
	return Cubic{c.A, ab, abc, m}, Cubic{m, bcd, cd, c.D}
}

// IsFinite is true if no control point has NaN or infinite coordinates.
func (c Cubic) IsFinite() bool {
	return c.A.IsFinite() && c.B.IsFinite() && c.C.IsFinite() && c.D.IsFinite()
}

// IsDegenerate is true for curves which cannot carry a marking: non-finite
// curves and curves collapsing to a single point.
func (c Cubic) IsDegenerate() bool {
	if !c.IsFinite() {
		return true
	}
	hull := c.A.Distance(c.B) + c.B.Distance(c.C) + c.C.Distance(c.D)
	return roadmark.Is0(hull)
}
