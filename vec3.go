package roadmark

import (
	"fmt"
	"math"
)

// Vec3 is a point or vector in 3D space. Y is the height above ground.
type Vec3 struct {
	X, Y, Z float64
}

// Zero is the null vector.
var Zero = Vec3{}

// Right is the unit vector along the x-axis.
var Right = Vec3{X: 1}

// V is a quick notation for constructing a Vec3.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scaled returns v scaled by factor a.
func (v Vec3) Scaled(a float64) Vec3 {
	return Vec3{v.X * a, v.Y * a, v.Z * a}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot is the scalar product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Length is the magnitude of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Distance is the length of w - v.
func (v Vec3) Distance(w Vec3) float64 {
	return w.Sub(v).Length()
}

// Normalized returns v with unit length. The null vector stays null.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if Is0(l) {
		return Zero
	}
	return v.Scaled(1 / l)
}

// Lerp interpolates linearly between v (t=0) and w (t=1).
func (v Vec3) Lerp(w Vec3, t float64) Vec3 {
	return v.Add(w.Sub(v).Scaled(t))
}

// Mid is the midpoint between v and w.
func (v Vec3) Mid(w Vec3) Vec3 {
	return v.Lerp(w, 0.5)
}

// IsZero is a predicate: is v the null vector (up to Epsilon) ?
func (v Vec3) IsZero() bool {
	return Is0(v.X) && Is0(v.Y) && Is0(v.Z)
}

// IsFinite is true if no coordinate of v is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// Equal compares two vectors, allowing for Epsilon.
func (v Vec3) Equal(w Vec3) bool {
	return v.Sub(w).IsZero()
}

// XZ is the ground plane projection of v.
func (v Vec3) XZ() Pair {
	return P(v.X, v.Z)
}

// Heading is the angle of v on the ground plane, atan2(z, x), in radians.
func (v Vec3) Heading() float64 {
	return math.Atan2(v.Z, v.X)
}

// Angle returns the unsigned angle between v and w in degrees, in [0,180].
func Angle(v, w Vec3) float64 {
	d := math.Sqrt(v.Dot(v) * w.Dot(w))
	if Is0(d) {
		return 0
	}
	c := math.Max(-1, math.Min(1, v.Dot(w)/d))
	return math.Acos(c) / Deg2Rad
}

// Turn90 rotates v by 90° around the y-axis. Height is unchanged.
// Clockwise is meant as looking down onto the ground plane.
func (v Vec3) Turn90(clockwise bool) Vec3 {
	if clockwise {
		return Vec3{v.Z, v.Y, -v.X}
	}
	return Vec3{-v.Z, v.Y, v.X}
}

// TurnDeg rotates v by deg degrees around the y-axis. Height is unchanged.
func (v Vec3) TurnDeg(deg float64, clockwise bool) Vec3 {
	theta := deg * Deg2Rad
	if clockwise {
		theta = -theta
	}
	return Rotation(theta).Transform(v.XZ()).Vec3(v.Y)
}

// Normal returns the unit perpendicular of v on the ground plane, i.e. v turned
// clockwise by 90° and flattened. Returns Zero if v is vertical or null.
func (v Vec3) Normal() Vec3 {
	n := v.Turn90(true)
	n.Y = 0
	return n.Normalized()
}
