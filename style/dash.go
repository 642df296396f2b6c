package style

import (
	"fmt"
	"image/color"

	"github.com/npillmayer/roadmark"
	"github.com/npillmayer/roadmark/bezier"
)

// Dash is a single rectangular piece of a marking, centered at Position and
// rotated by Angle (radians, heading on the ground plane).
type Dash struct {
	Position roadmark.Vec3
	Angle    float64
	Length   float64
	Width    float64
	Color    color.RGBA
}

func (d Dash) String() string {
	return fmt.Sprintf("dash@%s ∠%.4f l=%.4g w=%.4g", d.Position, d.Angle, d.Length, d.Width)
}

func newDash(start, end roadmark.Vec3, length float64, base Base) Dash {
	return Dash{
		Position: start.Mid(end),
		Angle:    end.Sub(start).Heading(),
		Length:   length,
		Width:    base.Width,
		Color:    base.Color,
	}
}

// SolidDash covers the whole of c with one dash. Its end points are the end
// points of c, each shifted by offset perpendicular to the curve direction
// at that end. The dash is as long as its shifted end points are apart.
func SolidDash(c bezier.Cubic, offset float64, base Base) Dash {
	start, end := c.A, c.D
	if offset != 0 {
		start = start.Add(c.StartDirection().Normal().Scaled(offset))
		end = end.Add(c.EndDirection().Normal().Scaled(offset))
	}
	return newDash(start, end, start.Distance(end), base)
}

// DashedDash places a dash of the given length over the parameter interval
// iv of c. End points are shifted by offset perpendicular to the tangents at
// iv.Start and iv.End.
func DashedDash(c bezier.Cubic, iv Interval, length, offset float64, base Base) Dash {
	start, end := c.Position(iv.Start), c.Position(iv.End)
	if offset != 0 {
		start = start.Add(c.Tangent(iv.Start).Normal().Scaled(offset))
		end = end.Add(c.Tangent(iv.End).Normal().Scaled(offset))
	}
	return newDash(start, end, length, base)
}
