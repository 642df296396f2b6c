package config

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/roadmark/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	conf := Default()
	require.NoError(t, conf.Validate())
	c, err := conf.Color()
	require.NoError(t, err)
	assert.Equal(t, style.DefaultColor, c)
	if diff := cmp.Diff(style.DefaultEngine, *conf.Engine()); diff != "" {
		t.Errorf("default engine differs (-want +got):\n%s", diff)
	}
	for kind := style.LineSolid; kind <= style.StopDoubleDashed; kind++ {
		s, err := conf.Style(kind)
		require.NoError(t, err)
		d, _ := style.Default(kind)
		if diff := cmp.Diff(d, s); diff != "" {
			t.Errorf("%s: default style differs (-want +got):\n%s", kind, diff)
		}
	}
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	conf, err := Load(strings.NewReader(`
subdivision:
  angle-delta: 2.5
spacing:
  passes: 2
lines:
  color: white
  dash-length: 3
  stop-width: 0.5
`))
	require.NoError(t, err)
	e := conf.Engine()
	assert.Equal(t, 2.5, e.Subdivider.AngleDelta)
	assert.Equal(t, style.DefaultMaxLength, e.Subdivider.MaxLength)
	assert.Equal(t, 2, e.Spacing.Passes)
	s, err := conf.Style(style.LineDoubleDashed)
	require.NoError(t, err)
	dd := s.(style.DoubleDashed)
	assert.Equal(t, 3.0, dd.DashLength)
	assert.Equal(t, style.DefaultSpaceLength, dd.SpaceLength)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dd.Color)
	stop, err := conf.Style(style.StopSolid)
	require.NoError(t, err)
	assert.Equal(t, 0.5, stop.Attributes().Width)

	empty, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), empty)
}

func TestLoadRejects(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, doc := range []string{
		"spacing:\n  passes: 0\n",
		"lines:\n  color: no-such-color\n",
		"lines:\n  dash-length: -1\n",
		"subdivision:\n  max-depth: 40\n",
		"subdivision:\n  max-depth: 6\n",
		"spacing:\n  passes: 4\n",
		"spacing:\n  passes: 500\n  tolerance: 0.000001\n",
		"unknown: 1\n",
		"spacing: [1, 2]\n",
	} {
		_, err := Load(strings.NewReader(doc))
		assert.True(t, errors.Is(err, ErrInvalidConfig), "%q: %v", doc, err)
	}
}

func TestParseColor(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 128, 0, 255}, c)
	c, err = ParseColor("#88888880")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{136, 136, 136, 128}, c)
	c, err = ParseColor(" Gold ")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 215, 0, 255}, c)
	_, err = ParseColor("#12345")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}
