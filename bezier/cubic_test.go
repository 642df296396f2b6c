package bezier

import (
	"math"
	"testing"

	"github.com/npillmayer/roadmark"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// quarter is an approximation of a quarter circle of radius 10 around the origin,
// running from (10,0,0) to (0,0,10).
func quarter() Cubic {
	const k = 0.5522847498 * 10
	return New(roadmark.V(10, 0, 0), roadmark.V(10, 0, k), roadmark.V(k, 0, 10), roadmark.V(0, 0, 10))
}

func TestLinePosition(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := Line(roadmark.V(0, 0, 0), roadmark.V(10, 0, 0))
	for _, tt := range []float64{0, 0.25, 0.5, 1} {
		p := c.Position(tt)
		assert.InDelta(t, 10*tt, p.X, 1e-9)
		assert.InDelta(t, 0, p.Z, 1e-9)
	}
}

func TestTangentFallback(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a, d := roadmark.V(0, 0, 0), roadmark.V(4, 0, 0)
	c := New(a, a, d, d) // handles collapsed onto end points
	if tan := c.Tangent(0); tan.IsZero() || tan.Z != 0 || tan.X <= 0 {
		t.Errorf("expected tangent at 0 along +x, is %v", tan)
	}
	if tan := c.Tangent(1); tan.IsZero() || tan.X <= 0 {
		t.Errorf("expected tangent at 1 along +x, is %v", tan)
	}
}

func TestDivideSharesMidpoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := quarter()
	left, right := c.Divide()
	assert.Equal(t, c.A, left.A)
	assert.Equal(t, c.D, right.D)
	assert.Equal(t, left.D, right.A)
	assert.True(t, left.D.Equal(c.Position(0.5)), "midpoint %v != %v", left.D, c.Position(0.5))
	assert.True(t, left.Position(0.5).Equal(c.Position(0.25)))
}

func TestDeltaAngle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.InDelta(t, 0, Line(roadmark.Zero, roadmark.V(3, 0, 4)).DeltaAngle(), 1e-9)
	assert.InDelta(t, 90, quarter().DeltaAngle(), 1e-6)
	left, _ := quarter().Divide()
	assert.InDelta(t, 45, left.DeltaAngle(), 1e-6)
}

func TestArcLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	line := Line(roadmark.Zero, roadmark.V(3, 0, 4))
	assert.InDelta(t, 5, line.Length(), 1e-9)
	assert.InDelta(t, 2.5, line.ArcLength(0.25, 0.75), 1e-9)
	assert.InDelta(t, -2.5, line.ArcLength(0.75, 0.25), 1e-9)
	// quarter circle of radius 10
	assert.InDelta(t, 5*math.Pi, quarter().Length(), 0.01)
}

func TestTravel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	line := Line(roadmark.Zero, roadmark.V(10, 0, 0))
	assert.InDelta(t, 0.15, line.Travel(0, 1.5), 1e-9)
	assert.InDelta(t, 0.65, line.Travel(0.5, 1.5), 1e-9)
	assert.Equal(t, 1.0, line.Travel(0.9, 1.5), "travel beyond the end must saturate")
	assert.Equal(t, 0.3, line.Travel(0.3, 0), "zero distance must not move")
	assert.Equal(t, 0.3, line.Travel(0.3, -1), "negative distance must not move")
	q := quarter()
	u := q.Travel(0.2, 3)
	assert.InDelta(t, 3, q.ArcLength(0.2, u), 1e-6)
}

func TestDegenerate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := roadmark.V(1, 2, 3)
	assert.True(t, New(p, p, p, p).IsDegenerate())
	assert.True(t, Line(p, roadmark.V(math.NaN(), 0, 0)).IsDegenerate())
	assert.True(t, Line(p, roadmark.V(math.Inf(1), 0, 0)).IsDegenerate())
	assert.False(t, quarter().IsDegenerate())
	assert.Equal(t, 1.0, New(p, p, p, p).Travel(0, 1))
}
