/*
Package roadmark implements the geometric primitives for road surface
markings: ground-plane pairs, 3D points and vectors, and affine
transformations of the ground plane.

Road geometry lives in 3D space with y pointing up. Markings are laid out
on the ground plane, spanned by x and z. Whenever a 2D view of a position is
needed, e.g. for headings or outlines, the (x,z)-part of a Vec3 is used as a
Pair.

Sub-packages build on these types: package bezier for cubic trajectories,
package style for calculating dashes from trajectories, and package xsection
for anchor points derived from lane cross sections.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package roadmark

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'roadmark'
func tracer() tracing.Trace {
	return tracing.Select("roadmark")
}

// === Numeric Helpers =======================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
const Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// RoundTo rounds n to the nearest multiple of step.
// Offsets of anchor points are kept in steps of 0.01.
func RoundTo(n, step float64) float64 {
	if step <= 0 {
		return n
	}
	return math.Round(n/step) * step
}

// IsFinite is a predicate: is n neither NaN nor ±Inf ?
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// === Pair Data Type ========================================================

// Pair is a point or vector on the ground plane.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair. For pairs derived from a Vec3 this is z.
func (p Pair) Y() float64 {
	return imag(p)
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Length is the euclidian length of p, taken as a vector.
func (p Pair) Length() float64 {
	return cmplx.Abs(p.C())
}

// Angle is the direction of p, taken as a vector, in radians.
func (p Pair) Angle() float64 {
	if cmplx.IsNaN(p.C()) {
		tracer().Errorf("angle of NaN pair")
		return 0.0
	}
	return cmplx.Phase(p.C())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Vec3 lifts a pair onto the ground plane at height y.
func (p Pair) Vec3(y float64) Vec3 {
	return V(p.X(), y, p.Y())
}

// === Affine Transformations ================================================

// AT is an affine transform of the ground plane, used for rotating
// directions and placing outlines.
type AT []float64 // a 3x3 matrix, flattened by rows

func newAT() AT {
	return make([]float64, 9)
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	return []float64{m[col], m[3+col], m[6+col]}
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by p.
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Rotation transform. Rotate a point counter-clockwise around the origin.
// Argument is in radians.
func Rotation(theta float64) AT {
	m := newAT()
	sin, cos := math.Sincos(theta)
	m.set(0, 0, cos)
	m.set(0, 1, -sin)
	m.set(1, 0, sin)
	m.set(1, 1, cos)
	m.set(2, 2, 1.0)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	return fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

func dotProd(vec1, vec2 []float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2]
}

// Combine 2 affine transformations to a new one: m is applied first, then n.
// Returns a new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

// Transform a point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	v := []float64{p.X(), p.Y(), 1.0}
	return P(dotProd(m.row(0), v), dotProd(m.row(1), v))
}
