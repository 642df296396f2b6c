package style

import (
	"errors"
	"image/color"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/roadmark"
	"github.com/npillmayer/roadmark/bezier"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDefault(t *testing.T, kind Kind) Style {
	t.Helper()
	s, err := Default(kind)
	require.NoError(t, err)
	require.Equal(t, kind, s.Kind())
	return s
}

func TestDashCounts(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := straight(10)
	for kind, n := range map[Kind]int{
		LineSolid:          1,
		LineDoubleSolid:    2,
		LineDashed:         3,
		LineDoubleDashed:   6,
		LineSolidAndDashed: 4,
		StopSolid:          1,
		StopDoubleDashed:   6,
	} {
		dashes := DefaultEngine.Dashes(mustDefault(t, kind), c)
		assert.Len(t, dashes, n, "%s", kind)
	}
}

func TestSolidDashCoversCurve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	dashes := slices.Collect(Solid{Base: Base{Width: 0.2, Color: DefaultColor}}.Calculate(straight(10)))
	require.Len(t, dashes, 1)
	d := dashes[0]
	assert.True(t, d.Position.Equal(roadmark.V(5, 0, 0)), "position = %v", d.Position)
	assert.InDelta(t, 10, d.Length, 1e-9)
	assert.InDelta(t, 0, d.Angle, 1e-9)
	assert.Equal(t, 0.2, d.Width)
	assert.Equal(t, DefaultColor, d.Color)
}

func TestDashedDashGeometry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := bezier.Line(roadmark.V(0, 0, 0), roadmark.V(0, 0, 10))
	d := DashedDash(c, Interval{Start: 0.2, End: 0.35}, 1.5, 0, Base{Width: 0.15})
	assert.True(t, d.Position.Equal(roadmark.V(0, 0, 2.75)), "position = %v", d.Position)
	assert.InDelta(t, math.Pi/2, d.Angle, 1e-9)
	assert.Equal(t, 1.5, d.Length)
}

func TestOffsetSymmetry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := quarter(20)
	const o = 0.4
	for _, s := range []Style{
		DoubleSolid{Base: Base{Width: 0.1}, Offset: o},
		DoubleDashed{Base: Base{Width: 0.1}, DashLength: 2, SpaceLength: 1, Offset: o},
	} {
		center := mustDefault(t, LineSolid)
		if _, ok := s.(DashPattern); ok {
			center = Dashed{Base: Base{Width: 0.1}, DashLength: 2, SpaceLength: 1}
		}
		mid := DefaultEngine.Dashes(center, c)
		pairs := DefaultEngine.Dashes(s, c)
		require.Len(t, pairs, 2*len(mid), "%s", s.Kind())
		for i, m := range mid {
			left, right := pairs[2*i], pairs[2*i+1]
			between := left.Position.Mid(right.Position)
			assert.InDelta(t, 0, between.Distance(m.Position), 1e-9, "%s: pair %d not centered", s.Kind(), i)
			dl, dr := left.Position.Sub(m.Position), right.Position.Sub(m.Position)
			assert.InDelta(t, dl.Length(), dr.Length(), 1e-9)
			assert.Greater(t, dl.Length(), o/2)
		}
	}
}

func TestSolidAndDashedTracks(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := mustDefault(t, LineSolidAndDashed).(SolidAndDashed)
	dashes := s.Calculate(straight(10))
	var zs []float64
	for d := range dashes {
		zs = append(zs, d.Position.Z)
	}
	require.Len(t, zs, 4)
	assert.InDelta(t, s.Offset, zs[0], 1e-9, "solid track")
	for _, z := range zs[1:] {
		assert.InDelta(t, -s.Offset, z, 1e-9, "dashed track")
	}
	s.Invert = true
	first := slices.Collect(s.Calculate(straight(10)))
	assert.InDelta(t, -s.Offset, first[0].Position.Z, 1e-9)
	assert.InDelta(t, s.Offset, first[1].Position.Z, 1e-9)
}

func TestCalculateIdempotent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := bezier.New(roadmark.V(0, 1, 0), roadmark.V(8, 1, 2), roadmark.V(12, 2, 14), roadmark.V(3, 2, 25))
	for _, kind := range []Kind{LineSolid, LineDashed, LineDoubleSolid, LineDoubleDashed, LineSolidAndDashed} {
		s := mustDefault(t, kind)
		first := DefaultEngine.Dashes(s, c)
		second := DefaultEngine.Dashes(s, c)
		require.NotEmpty(t, first)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%s: dashes differ between calls (-first +second):\n%s", kind, diff)
		}
	}
}

func TestDegenerateCurves(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := roadmark.V(3, 0, 3)
	nan := roadmark.V(math.NaN(), 0, 0)
	for _, c := range []bezier.Cubic{
		bezier.New(p, p, p, p),
		bezier.Line(p, nan),
		bezier.New(p, roadmark.V(math.Inf(1), 0, 0), p, roadmark.V(4, 0, 4)),
	} {
		for kind := LineSolid; kind <= StopDoubleDashed; kind++ {
			assert.Empty(t, DefaultEngine.Dashes(mustDefault(t, kind), c), "%s on %s", kind, c)
		}
	}
	var e *Engine
	assert.Empty(t, e.Dashes(nil, straight(10)))
	assert.Len(t, e.Dashes(mustDefault(t, LineDashed), straight(10)), 3, "nil engine uses defaults")
}

func TestDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	d := mustDefault(t, LineDoubleDashed).(DoubleDashed)
	assert.Equal(t, DefaultWidth, d.Width)
	assert.Equal(t, 1.5, d.DashLength)
	assert.Equal(t, 1.5, d.SpaceLength)
	assert.Equal(t, 0.15, d.Offset)
	assert.Equal(t, color.RGBA{136, 136, 136, 224}, d.Color)
	stop := mustDefault(t, StopDoubleSolid).(DoubleSolid)
	assert.Equal(t, Stop, stop.Family)
	assert.Equal(t, 0.3, stop.Width)
	assert.Equal(t, 0.3, stop.Offset)
	_, err := Default(Kind(42))
	assert.True(t, errors.Is(err, ErrUnsupportedKind))
	for kind := LineSolid; kind <= StopDoubleDashed; kind++ {
		assert.NoError(t, Validate(mustDefault(t, kind)), "%s", kind)
	}
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	base := Base{Width: 0.15}
	for _, s := range []Style{
		nil,
		Solid{Base: Base{Width: 0}},
		Solid{Base: Base{Width: math.Inf(1)}},
		Dashed{Base: base, DashLength: 0, SpaceLength: 1},
		Dashed{Base: base, DashLength: 1, SpaceLength: -1},
		DoubleDashed{Base: base, DashLength: 1, SpaceLength: math.NaN(), Offset: 1},
		DoubleSolid{Base: base, Offset: -0.1},
	} {
		err := Validate(s)
		assert.True(t, errors.Is(err, ErrInvalidParameter), "%v: %v", s, err)
	}
	err := Validate(SolidAndDashed{Base: Base{Family: Stop, Width: 0.3}, DashLength: 1, SpaceLength: 1})
	assert.True(t, errors.Is(err, ErrUnsupportedKind), "%v", err)
	assert.NoError(t, Validate(DoubleSolid{Base: base}))
}

func TestConvert(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	red := color.RGBA{R: 255, A: 255}
	from := Dashed{Base: Base{Width: 0.2, Color: red}, DashLength: 2, SpaceLength: 3}
	s, err := Convert(from, LineDoubleDashed)
	require.NoError(t, err)
	expected := DoubleDashed{Base: Base{Width: 0.2, Color: red}, DashLength: 2, SpaceLength: 3, Offset: DefaultOffset}
	if diff := cmp.Diff(Style(expected), s); diff != "" {
		t.Errorf("unexpected conversion (-want +got):\n%s", diff)
	}
	s, err = Convert(s, LineSolidAndDashed)
	require.NoError(t, err)
	sd := s.(SolidAndDashed)
	assert.Equal(t, 2.0, sd.DashLength)
	assert.Equal(t, DefaultOffset, sd.Offset)
	assert.False(t, sd.Invert)
	s, err = Convert(SolidAndDashed{Base: Base{Width: 0.1, Color: red}, DashLength: 1, SpaceLength: 1,
		Offset: 0.5, Invert: true}, StopDoubleSolid)
	require.NoError(t, err)
	ds := s.(DoubleSolid)
	assert.Equal(t, Stop, ds.Family)
	assert.Equal(t, DefaultStopWidth, ds.Width, "width is not carried into another family")
	assert.Equal(t, red, ds.Color)
	assert.Equal(t, 0.5, ds.Offset)
	_, err = Convert(from, Kind(99))
	assert.True(t, errors.Is(err, ErrUnsupportedKind))
}
