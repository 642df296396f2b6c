package style

import (
	"math"

	"github.com/npillmayer/roadmark/bezier"
)

// Default parameters of the spacing solver.
const (
	DefaultSpacingPasses    = 3
	DefaultSpacingTolerance = 0.05
)

// maxStepsPerPass bounds the number of dash/space advances in one pass.
const maxStepsPerPass = 1 << 12

// Interval is a range [Start,End] of curve parameters covered by a dash.
type Interval struct {
	Start, End float64
}

// Spacing is the outcome of a spacing solve.
type Spacing struct {
	Intervals []Interval // dash intervals, ordered along the curve
	Lead      float64    // gap in front of the first dash
	Trail     float64    // gap measured at the end of the curve
	Passes    int        // number of passes run
}

// SpacingSolver places dashes along a curve of unknown arc length, keeping
// the leading and trailing gaps balanced. Non-positive fields take default
// values. Passes is capped at DefaultSpacingPasses.
type SpacingSolver struct {
	Passes    int     // maximum number of refinement passes
	Tolerance float64 // relative gap difference considered balanced
}

// DefaultSpacing uses the default parameters.
var DefaultSpacing = SpacingSolver{
	Passes:    DefaultSpacingPasses,
	Tolerance: DefaultSpacingTolerance,
}

func (s SpacingSolver) normalized() SpacingSolver {
	if s.Passes <= 0 || s.Passes > DefaultSpacingPasses {
		s.Passes = DefaultSpacingPasses
	}
	if s.Tolerance <= 0 {
		s.Tolerance = DefaultSpacingTolerance
	}
	return s
}

// Solve returns the parameter intervals of the dashes for c.
func (s SpacingSolver) Solve(c bezier.Cubic, dash, space float64) []Interval {
	return s.SolveDetail(c, dash, space).Intervals
}

// SolveDetail lays out dashes of length dash, separated by gaps of length
// space, along c.
//
// A pass starts with a gap of startSpace, then alternates dashes and gaps
// until the end of the curve is reached, and measures the gap left at the
// end. The next pass starts with the mean of both gaps. Passes end when the
// relative difference of the gaps drops below Tolerance, or after Passes
// passes. The intervals of the last pass are returned.
//
// The trailing gap is the distance from the end of the last dash to the end
// of the curve. If a pass ends right after a dash, leaving less than half a
// space, the last dash is counted as part of the gap: the trailing gap is
// measured from the start of the last dash. The next pass will then shift
// the pattern and usually drop that dash.
//
// Non-positive lengths and degenerate curves yield no intervals.
func (s SpacingSolver) SolveDetail(c bezier.Cubic, dash, space float64) Spacing {
	if !(dash > 0) || !(space > 0) || math.IsInf(dash, 0) || math.IsInf(space, 0) || c.IsDegenerate() {
		return Spacing{}
	}
	s = s.normalized()
	var (
		dashes         []Interval
		startSpace     = space / 2
		lead, endSpace float64
		pass           int
		end            = c.Position(1)
	)
	for pass < s.Passes {
		pass++
		dashes = dashes[:0]
		lead = startSpace
		isDash := false
		prevT, currentT := 0.0, 0.0
		nextT := c.Travel(currentT, startSpace)
		for steps := 0; nextT < 1; steps++ {
			if steps >= maxStepsPerPass || nextT <= currentT {
				tracer().Errorf("dash spacing stalled at t=%.4f after %d steps", currentT, steps)
				break
			}
			if isDash {
				dashes = append(dashes, Interval{Start: currentT, End: nextT})
			}
			isDash = !isDash
			prevT, currentT = currentT, nextT
			step := space
			if isDash {
				step = dash
			}
			nextT = c.Travel(currentT, step)
		}
		tail := end.Distance(c.Position(currentT))
		if isDash || tail < space/2 {
			endSpace = end.Distance(c.Position(prevT))
		} else {
			endSpace = tail
		}
		startSpace = (startSpace + endSpace) / 2
		tracer().Debugf("spacing pass %d: %d dashes, lead %.4f, trail %.4f", pass, len(dashes), lead, endSpace)
		if math.Abs(startSpace-endSpace)/(startSpace+endSpace) < s.Tolerance {
			break
		}
	}
	return Spacing{
		Intervals: dashes,
		Lead:      lead,
		Trail:     endSpace,
		Passes:    pass,
	}
}
