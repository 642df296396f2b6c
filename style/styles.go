package style

import (
	"fmt"
	"image/color"
	"iter"
	"slices"

	"github.com/npillmayer/roadmark/bezier"
)

// Family separates regular lines from stop lines.
type Family uint8

// Families of markings.
const (
	Regular Family = iota // line connecting anchors of different segment ends
	Stop                  // line across a single segment end
)

func (f Family) String() string {
	switch f {
	case Regular:
		return "regular"
	case Stop:
		return "stop"
	}
	return fmt.Sprintf("family(%d)", uint8(f))
}

// Kind enumerates the style variants of both families.
type Kind uint8

// Style kinds. There is no stop-line variant of SolidAndDashed.
const (
	LineSolid Kind = iota
	LineDashed
	LineDoubleSolid
	LineDoubleDashed
	LineSolidAndDashed
	StopSolid
	StopDashed
	StopDoubleSolid
	StopDoubleDashed
)

var kindNames = [...]string{
	"LineSolid", "LineDashed", "LineDoubleSolid", "LineDoubleDashed", "LineSolidAndDashed",
	"StopSolid", "StopDashed", "StopDoubleSolid", "StopDoubleDashed",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Family returns the family a kind belongs to.
func (k Kind) Family() Family {
	if k >= StopSolid {
		return Stop
	}
	return Regular
}

func (k Kind) valid() bool {
	return k <= StopDoubleDashed
}

// kindOf maps a regular kind to its counterpart in family f.
func kindOf(f Family, k Kind) Kind {
	if f == Stop && k < LineSolidAndDashed {
		return k + StopSolid
	}
	return k
}

// Base holds the parameters every style has.
type Base struct {
	Family Family
	Width  float64
	Color  color.RGBA
}

// Attributes returns b. Variants embedding Base get it promoted.
func (b Base) Attributes() Base {
	return b
}

// Style is one of Solid, DoubleSolid, Dashed, DoubleDashed and
// SolidAndDashed. Parameters beyond Base are exposed through the
// capability interfaces DashPattern, DoubleLine and AsymLine.
type Style interface {
	Kind() Kind
	Attributes() Base
	Calculate(c bezier.Cubic) iter.Seq[Dash]
	dashes(e *Engine, c bezier.Cubic, yield func(Dash) bool) bool
}

// DashPattern is implemented by styles with dashes.
type DashPattern interface {
	Pattern() (dash, space float64)
}

// DoubleLine is implemented by styles with two parallel tracks.
type DoubleLine interface {
	LineOffset() float64
}

// AsymLine is implemented by styles whose tracks differ.
type AsymLine interface {
	Inverted() bool
}

// --- Variants --------------------------------------------------------------

// Solid is a continuous line.
type Solid struct {
	Base
}

// Dashed is a line of dashes of length DashLength separated by gaps of
// length SpaceLength.
type Dashed struct {
	Base
	DashLength  float64
	SpaceLength float64
}

// DoubleSolid is a pair of continuous lines, Offset to either side of the
// trajectory.
type DoubleSolid struct {
	Base
	Offset float64
}

// DoubleDashed is a pair of dashed lines, Offset to either side of the
// trajectory.
type DoubleDashed struct {
	Base
	DashLength  float64
	SpaceLength float64
	Offset      float64
}

// SolidAndDashed is a continuous line next to a dashed one. The solid track
// lies at -Offset, the dashed track at +Offset. Invert swaps them.
type SolidAndDashed struct {
	Base
	DashLength  float64
	SpaceLength float64
	Offset      float64
	Invert      bool
}

func (s Solid) Kind() Kind { return kindOf(s.Family, LineSolid) }
func (s Dashed) Kind() Kind { return kindOf(s.Family, LineDashed) }
func (s DoubleSolid) Kind() Kind { return kindOf(s.Family, LineDoubleSolid) }
func (s DoubleDashed) Kind() Kind { return kindOf(s.Family, LineDoubleDashed) }
func (s SolidAndDashed) Kind() Kind { return LineSolidAndDashed }

func (s Dashed) Pattern() (float64, float64) { return s.DashLength, s.SpaceLength }
func (s DoubleDashed) Pattern() (float64, float64) { return s.DashLength, s.SpaceLength }
func (s SolidAndDashed) Pattern() (float64, float64) { return s.DashLength, s.SpaceLength }

func (s DoubleSolid) LineOffset() float64 { return s.Offset }
func (s DoubleDashed) LineOffset() float64 { return s.Offset }
func (s SolidAndDashed) LineOffset() float64 { return s.Offset }

func (s SolidAndDashed) Inverted() bool { return s.Invert }

// Calculate returns the dashes of s along c, using DefaultEngine.
func (s Solid) Calculate(c bezier.Cubic) iter.Seq[Dash] { return DefaultEngine.Calculate(s, c) }

// Calculate returns the dashes of s along c, using DefaultEngine.
func (s Dashed) Calculate(c bezier.Cubic) iter.Seq[Dash] { return DefaultEngine.Calculate(s, c) }

// Calculate returns the dashes of s along c, using DefaultEngine.
func (s DoubleSolid) Calculate(c bezier.Cubic) iter.Seq[Dash] { return DefaultEngine.Calculate(s, c) }

// Calculate returns the dashes of s along c, using DefaultEngine.
func (s DoubleDashed) Calculate(c bezier.Cubic) iter.Seq[Dash] { return DefaultEngine.Calculate(s, c) }

// Calculate returns the dashes of s along c, using DefaultEngine.
func (s SolidAndDashed) Calculate(c bezier.Cubic) iter.Seq[Dash] {
	return DefaultEngine.Calculate(s, c)
}

func (s Solid) dashes(e *Engine, c bezier.Cubic, yield func(Dash) bool) bool {
	return e.solid(c, s.Base, yield, 0)
}

func (s DoubleSolid) dashes(e *Engine, c bezier.Cubic, yield func(Dash) bool) bool {
	return e.solid(c, s.Base, yield, s.Offset, -s.Offset)
}

func (s Dashed) dashes(e *Engine, c bezier.Cubic, yield func(Dash) bool) bool {
	return e.dashed(c, s.DashLength, s.SpaceLength, s.Base, yield, 0)
}

func (s DoubleDashed) dashes(e *Engine, c bezier.Cubic, yield func(Dash) bool) bool {
	return e.dashed(c, s.DashLength, s.SpaceLength, s.Base, yield, s.Offset, -s.Offset)
}

func (s SolidAndDashed) dashes(e *Engine, c bezier.Cubic, yield func(Dash) bool) bool {
	o := s.Offset
	if s.Invert {
		o = -o
	}
	return e.solid(c, s.Base, yield, -o) && e.dashed(c, s.DashLength, s.SpaceLength, s.Base, yield, o)
}

// --- Engine ----------------------------------------------------------------

// Engine holds the parameters of subdivision and dash spacing shared by all
// styles. The zero value uses default parameters.
type Engine struct {
	Subdivider Subdivider
	Spacing    SpacingSolver
}

// DefaultEngine is used by the Calculate methods of the style variants.
var DefaultEngine = Engine{
	Subdivider: DefaultSubdivider,
	Spacing:    DefaultSpacing,
}

// Calculate returns the dashes of style s along trajectory c, ordered along
// c. Degenerate trajectories and a nil style yield an empty sequence.
func (e *Engine) Calculate(s Style, c bezier.Cubic) iter.Seq[Dash] {
	if e == nil {
		e = &DefaultEngine
	}
	return func(yield func(Dash) bool) {
		if s == nil {
			return
		}
		if c.IsDegenerate() {
			tracer().Errorf("%s: degenerate trajectory %s, no dashes", s.Kind(), c)
			return
		}
		s.dashes(e, c, yield)
	}
}

// Dashes collects the dashes of style s along trajectory c.
func (e *Engine) Dashes(s Style, c bezier.Cubic) []Dash {
	return slices.Collect(e.Calculate(s, c))
}

// solid emits one dash per leaf and offset.
func (e *Engine) solid(c bezier.Cubic, base Base, yield func(Dash) bool, offsets ...float64) bool {
	for leaf := range e.Subdivider.Leaves(c) {
		for _, o := range offsets {
			if !yield(SolidDash(leaf, o, base)) {
				return false
			}
		}
	}
	return true
}

// dashed emits one dash per spacing interval and offset.
func (e *Engine) dashed(c bezier.Cubic, dash, space float64, base Base, yield func(Dash) bool,
	offsets ...float64) bool {
	intervals := e.Spacing.Solve(c, dash, space)
	tracer().Debugf("%d dash intervals on %s", len(intervals), c)
	for _, iv := range intervals {
		for _, o := range offsets {
			if !yield(DashedDash(c, iv, dash, o, base)) {
				return false
			}
		}
	}
	return true
}
