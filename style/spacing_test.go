package style

import (
	"math"
	"testing"

	"github.com/npillmayer/roadmark"
	"github.com/npillmayer/roadmark/bezier"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func straight(length float64) bezier.Cubic {
	return bezier.Line(roadmark.V(0, 0, 0), roadmark.V(length, 0, 0))
}

func assertIntervals(t *testing.T, length float64, expected [][2]float64, got []Interval) {
	t.Helper()
	require.Len(t, got, len(expected))
	for i, iv := range got {
		assert.InDelta(t, expected[i][0]/length, iv.Start, 1e-6, "start of dash %d", i)
		assert.InDelta(t, expected[i][1]/length, iv.End, 1e-6, "end of dash %d", i)
	}
}

func TestSpacingTenUnits(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelInfo)
	sp := DefaultSpacing.SolveDetail(straight(10), 1.5, 1.5)
	t.Logf("spacing = %+v", sp)
	assertIntervals(t, 10, [][2]float64{{1.25, 2.75}, {4.25, 5.75}, {7.25, 8.75}}, sp.Intervals)
	assert.InDelta(t, 1.25, sp.Lead, 1e-6)
	assert.InDelta(t, 1.25, sp.Trail, 1e-6)
	assert.Equal(t, 2, sp.Passes)
}

func TestSpacingBalancesGaps(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, length := range []float64{8, 9.9, 10, 23.7, 60} {
		sp := DefaultSpacing.SolveDetail(straight(length), 1.5, 1.5)
		require.NotEmpty(t, sp.Intervals, "no dashes for length %g", length)
		diff := math.Abs(sp.Lead-sp.Trail) / (sp.Lead + sp.Trail)
		assert.Less(t, diff, DefaultSpacingTolerance, "length %g: lead %g, trail %g", length, sp.Lead, sp.Trail)
	}
	assertIntervals(t, 8, [][2]float64{{1.75, 3.25}, {4.75, 6.25}},
		DefaultSpacing.Solve(straight(8), 1.5, 1.5))
	assertIntervals(t, 9.9, [][2]float64{{1.2, 2.7}, {4.2, 5.7}, {7.2, 8.7}},
		DefaultSpacing.Solve(straight(9.9), 1.5, 1.5))
}

// A pass ending less than half a space after a dash measures the trailing
// gap from the start of that dash.
func TestSpacingShortRemainderAfterDash(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := DefaultSpacing.SolveDetail(straight(8.6), 1.5, 1.5)
	t.Logf("spacing = %+v", sp)
	assertIntervals(t, 8.6, [][2]float64{{2.05, 3.55}, {5.05, 6.55}}, sp.Intervals)
	assert.InDelta(t, 2.05, sp.Lead, 1e-6)
	assert.InDelta(t, 2.05, sp.Trail, 1e-6)
	assert.Equal(t, 3, sp.Passes)
}

func TestSpacingDashLengths(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := quarter(20)
	ivs := DefaultSpacing.Solve(c, 2, 1)
	require.NotEmpty(t, ivs)
	for i, iv := range ivs {
		assert.InDelta(t, 2, c.ArcLength(iv.Start, iv.End), 1e-6, "dash %d", i)
		if i > 0 {
			assert.InDelta(t, 1, c.ArcLength(ivs[i-1].End, iv.Start), 1e-6, "gap before dash %d", i)
		}
	}
}

func TestSpacingRejectsInvalidInput(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Empty(t, DefaultSpacing.Solve(straight(10), 0, 1.5))
	assert.Empty(t, DefaultSpacing.Solve(straight(10), 1.5, -1))
	assert.Empty(t, DefaultSpacing.Solve(straight(10), math.NaN(), 1.5))
	assert.Empty(t, DefaultSpacing.Solve(straight(0), 1.5, 1.5))
	assert.Empty(t, DefaultSpacing.Solve(straight(1), 1.5, 1.5), "curve shorter than a dash")
	var zero SpacingSolver
	assert.Len(t, zero.Solve(straight(10), 1.5, 1.5), 3)
}

func TestSpacingPassesAreCapped(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	solver := SpacingSolver{Passes: 500, Tolerance: 1e-12}
	sp := solver.SolveDetail(straight(8.6), 1.5, 1.5)
	assert.LessOrEqual(t, sp.Passes, DefaultSpacingPasses)
	assert.NotEmpty(t, sp.Intervals)
}

func TestSpacingStallTerminates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// a dash too short to advance the curve parameter
	sp := DefaultSpacing.SolveDetail(straight(10), 1e-300, 1.5)
	assert.Empty(t, sp.Intervals)
	assert.LessOrEqual(t, sp.Passes, DefaultSpacingPasses)
	// more steps than a pass allows
	sp = DefaultSpacing.SolveDetail(straight(10), 1e-3, 1e-3)
	require.NotEmpty(t, sp.Intervals)
	assert.LessOrEqual(t, len(sp.Intervals), maxStepsPerPass/2)
	for i, iv := range sp.Intervals {
		assert.Less(t, iv.Start, iv.End, "dash %d", i)
		assert.LessOrEqual(t, iv.End, 1.0, "dash %d", i)
		if i > 0 {
			assert.LessOrEqual(t, sp.Intervals[i-1].End, iv.Start, "dash %d", i)
		}
	}
}
