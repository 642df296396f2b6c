package style

import (
	"iter"

	"github.com/npillmayer/roadmark/bezier"
)

// Default subdivision thresholds.
const (
	DefaultAngleDelta = 5.0 // degrees
	DefaultMaxLength  = 10.0
	DefaultMinLength  = 1.0
	DefaultMaxDepth   = 5
)

// Subdivider splits a trajectory into pieces flat enough to be drawn as one
// solid dash each. Non-positive fields take default values. MaxDepth is
// capped at DefaultMaxDepth.
type Subdivider struct {
	AngleDelta float64 // a piece turning more than this is split (degrees)
	MaxLength  float64 // a piece with a longer chord is split
	MinLength  float64 // a piece with a shorter chord is never split
	MaxDepth   int     // recursion limit
}

// DefaultSubdivider uses the default thresholds.
var DefaultSubdivider = Subdivider{
	AngleDelta: DefaultAngleDelta,
	MaxLength:  DefaultMaxLength,
	MinLength:  DefaultMinLength,
	MaxDepth:   DefaultMaxDepth,
}

func (s Subdivider) normalized() Subdivider {
	if s.AngleDelta <= 0 {
		s.AngleDelta = DefaultAngleDelta
	}
	if s.MaxLength <= 0 {
		s.MaxLength = DefaultMaxLength
	}
	if s.MinLength <= 0 {
		s.MinLength = DefaultMinLength
	}
	if s.MaxDepth <= 0 || s.MaxDepth > DefaultMaxDepth {
		s.MaxDepth = DefaultMaxDepth
	}
	return s
}

// Leaves iterates over the pieces of c from start to end. There are at most
// 2^DefaultMaxDepth pieces.
func (s Subdivider) Leaves(c bezier.Cubic) iter.Seq[bezier.Cubic] {
	s = s.normalized()
	return func(yield func(bezier.Cubic) bool) {
		s.subdivide(c, 0, yield)
	}
}

func (s Subdivider) subdivide(c bezier.Cubic, depth int, yield func(bezier.Cubic) bool) bool {
	length := c.Chord()
	if depth < s.MaxDepth && (c.DeltaAngle() > s.AngleDelta || length > s.MaxLength) && length >= s.MinLength {
		first, second := c.Divide()
		return s.subdivide(first, depth+1, yield) && s.subdivide(second, depth+1, yield)
	}
	return yield(c)
}
