package style

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrInvalidParameter is returned by Validate for out-of-domain parameters.
var ErrInvalidParameter = errors.New("invalid style parameter")

// ErrUnsupportedKind flags a style kind which does not exist.
var ErrUnsupportedKind = errors.New("unsupported style kind")

// Default parameters of styles.
const (
	DefaultWidth       = 0.15
	DefaultDashLength  = 1.5
	DefaultSpaceLength = 1.5
	DefaultOffset      = 0.15
	DefaultStopWidth   = 0.3
	DefaultStopOffset  = 0.3
)

// DefaultColor is a translucent gray.
var DefaultColor = color.RGBA{R: 136, G: 136, B: 136, A: 224}

// Default returns a style of the given kind with default parameters.
func Default(kind Kind) (Style, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	base := Base{Family: kind.Family(), Width: DefaultWidth, Color: DefaultColor}
	offset := DefaultOffset
	if base.Family == Stop {
		base.Width = DefaultStopWidth
		offset = DefaultStopOffset
	}
	switch kind {
	case LineSolid, StopSolid:
		return Solid{Base: base}, nil
	case LineDashed, StopDashed:
		return Dashed{Base: base, DashLength: DefaultDashLength, SpaceLength: DefaultSpaceLength}, nil
	case LineDoubleSolid, StopDoubleSolid:
		return DoubleSolid{Base: base, Offset: offset}, nil
	case LineDoubleDashed, StopDoubleDashed:
		return DoubleDashed{Base: base, DashLength: DefaultDashLength,
			SpaceLength: DefaultSpaceLength, Offset: offset}, nil
	}
	return SolidAndDashed{Base: base, DashLength: DefaultDashLength,
		SpaceLength: DefaultSpaceLength, Offset: offset}, nil
}

// Validate checks the parameters of s. Width, dash and space lengths have
// to be positive and finite, offsets must not be negative. Stop lines
// cannot be SolidAndDashed.
func Validate(s Style) error {
	if s == nil {
		return fmt.Errorf("%w: no style", ErrInvalidParameter)
	}
	base := s.Attributes()
	if base.Family != Regular && base.Family != Stop {
		return fmt.Errorf("%w: %s", ErrUnsupportedKind, base.Family)
	}
	if _, ok := s.(SolidAndDashed); ok && base.Family == Stop {
		return fmt.Errorf("%w: stop line cannot be solid-and-dashed", ErrUnsupportedKind)
	}
	if !positive(base.Width) {
		return fmt.Errorf("%w: width %g", ErrInvalidParameter, base.Width)
	}
	if p, ok := s.(DashPattern); ok {
		dash, space := p.Pattern()
		if !positive(dash) || !positive(space) {
			return fmt.Errorf("%w: dash %g, space %g", ErrInvalidParameter, dash, space)
		}
	}
	if d, ok := s.(DoubleLine); ok {
		if o := d.LineOffset(); !(o >= 0) || math.IsInf(o, 0) {
			return fmt.Errorf("%w: offset %g", ErrInvalidParameter, o)
		}
	}
	return nil
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

// Convert returns a style of the given kind, starting from the defaults of
// kind and carrying over every parameter s shares with it. Width is carried
// over only within a family, as stop lines are wider.
func Convert(s Style, kind Kind) (Style, error) {
	target, err := Default(kind)
	if err != nil || s == nil {
		return target, err
	}
	from := s.Attributes()
	base := target.Attributes()
	base.Color = from.Color
	if from.Family == base.Family {
		base.Width = from.Width
	}
	dash, space := DefaultDashLength, DefaultSpaceLength
	if p, ok := s.(DashPattern); ok {
		dash, space = p.Pattern()
	}
	offset := -1.0
	if d, ok := s.(DoubleLine); ok {
		offset = d.LineOffset()
	}
	var invert bool
	if a, ok := s.(AsymLine); ok {
		invert = a.Inverted()
	}
	switch t := target.(type) {
	case Solid:
		t.Base = base
		target = t
	case Dashed:
		t.Base, t.DashLength, t.SpaceLength = base, dash, space
		target = t
	case DoubleSolid:
		t.Base = base
		if offset >= 0 {
			t.Offset = offset
		}
		target = t
	case DoubleDashed:
		t.Base, t.DashLength, t.SpaceLength = base, dash, space
		if offset >= 0 {
			t.Offset = offset
		}
		target = t
	case SolidAndDashed:
		t.Base, t.DashLength, t.SpaceLength, t.Invert = base, dash, space, invert
		if offset >= 0 {
			t.Offset = offset
		}
		target = t
	}
	tracer().Debugf("converted %s to %s", s.Kind(), target.Kind())
	return target, nil
}
