/*
Package config reads the configuration of road markings from YAML.

	subdivision:
	  angle-delta: 5
	  max-length: 10
	spacing:
	  passes: 3
	lines:
	  color: lightgray
	  dash-length: 1.5

Missing entries take default values. Colors are given by SVG color name or
as hex string "#rrggbb" or "#rrggbbaa".

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/roadmark/style"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for configurations which cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the configuration of markings.
type Config struct {
	Subdivision Subdivision `yaml:"subdivision"`
	Spacing     Spacing     `yaml:"spacing"`
	Lines       Lines       `yaml:"lines"`
}

// Subdivision configures the subdivision of solid lines.
type Subdivision struct {
	AngleDelta float64 `yaml:"angle-delta"`
	MaxLength  float64 `yaml:"max-length"`
	MinLength  float64 `yaml:"min-length"`
	MaxDepth   int     `yaml:"max-depth"`
}

// Spacing configures the dash spacing solver.
type Spacing struct {
	Passes    int     `yaml:"passes"`
	Tolerance float64 `yaml:"tolerance"`
}

// Lines holds the default parameters of new lines.
type Lines struct {
	Color       string  `yaml:"color"`
	Width       float64 `yaml:"width"`
	DashLength  float64 `yaml:"dash-length"`
	SpaceLength float64 `yaml:"space-length"`
	Offset      float64 `yaml:"offset"`
	StopWidth   float64 `yaml:"stop-width"`
	StopOffset  float64 `yaml:"stop-offset"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Subdivision: Subdivision{
			AngleDelta: style.DefaultAngleDelta,
			MaxLength:  style.DefaultMaxLength,
			MinLength:  style.DefaultMinLength,
			MaxDepth:   style.DefaultMaxDepth,
		},
		Spacing: Spacing{
			Passes:    style.DefaultSpacingPasses,
			Tolerance: style.DefaultSpacingTolerance,
		},
		Lines: Lines{
			Color:       hexColor(style.DefaultColor),
			Width:       style.DefaultWidth,
			DashLength:  style.DefaultDashLength,
			SpaceLength: style.DefaultSpaceLength,
			Offset:      style.DefaultOffset,
			StopWidth:   style.DefaultStopWidth,
			StopOffset:  style.DefaultStopOffset,
		},
	}
}

// Load reads a configuration. Entries not present keep their default
// values, unknown entries are an error.
func Load(r io.Reader) (*Config, error) {
	conf := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks the configuration.
func (conf *Config) Validate() error {
	sub := conf.Subdivision
	if sub.AngleDelta <= 0 || sub.MaxLength <= 0 || sub.MinLength <= 0 || sub.MaxDepth <= 0 {
		return fmt.Errorf("%w: subdivision parameters must be positive", ErrInvalidConfig)
	}
	if sub.MaxDepth > style.DefaultMaxDepth {
		return fmt.Errorf("%w: subdivision depth %d exceeds %d", ErrInvalidConfig,
			sub.MaxDepth, style.DefaultMaxDepth)
	}
	if conf.Spacing.Passes <= 0 || conf.Spacing.Tolerance <= 0 {
		return fmt.Errorf("%w: spacing parameters must be positive", ErrInvalidConfig)
	}
	if conf.Spacing.Passes > style.DefaultSpacingPasses {
		return fmt.Errorf("%w: %d spacing passes exceed %d", ErrInvalidConfig,
			conf.Spacing.Passes, style.DefaultSpacingPasses)
	}
	if _, err := conf.Color(); err != nil {
		return err
	}
	for kind := style.LineSolid; kind <= style.StopDoubleDashed; kind++ {
		s, err := conf.Style(kind)
		if err != nil {
			return err
		}
		if err := style.Validate(s); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, kind, err)
		}
	}
	return nil
}

// Engine returns a dash engine with the configured parameters.
func (conf *Config) Engine() *style.Engine {
	return &style.Engine{
		Subdivider: style.Subdivider{
			AngleDelta: conf.Subdivision.AngleDelta,
			MaxLength:  conf.Subdivision.MaxLength,
			MinLength:  conf.Subdivision.MinLength,
			MaxDepth:   conf.Subdivision.MaxDepth,
		},
		Spacing: style.SpacingSolver{
			Passes:    conf.Spacing.Passes,
			Tolerance: conf.Spacing.Tolerance,
		},
	}
}

// Color returns the configured line color.
func (conf *Config) Color() (color.RGBA, error) {
	return ParseColor(conf.Lines.Color)
}

// Style returns a style of the given kind with the configured parameters.
func (conf *Config) Style(kind style.Kind) (style.Style, error) {
	s, err := style.Default(kind)
	if err != nil {
		return nil, err
	}
	c, err := conf.Color()
	if err != nil {
		return nil, err
	}
	l := conf.Lines
	base := s.Attributes()
	base.Color = c
	offset := l.Offset
	base.Width = l.Width
	if kind.Family() == style.Stop {
		base.Width, offset = l.StopWidth, l.StopOffset
	}
	switch v := s.(type) {
	case style.Solid:
		v.Base = base
		s = v
	case style.Dashed:
		v.Base, v.DashLength, v.SpaceLength = base, l.DashLength, l.SpaceLength
		s = v
	case style.DoubleSolid:
		v.Base, v.Offset = base, offset
		s = v
	case style.DoubleDashed:
		v.Base, v.DashLength, v.SpaceLength, v.Offset = base, l.DashLength, l.SpaceLength, offset
		s = v
	case style.SolidAndDashed:
		v.Base, v.DashLength, v.SpaceLength, v.Offset = base, l.DashLength, l.SpaceLength, offset
		s = v
	}
	return s, nil
}

// ParseColor reads a color given by SVG name or as hex string.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalidConfig, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalidConfig, s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
