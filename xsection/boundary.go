package xsection

import (
	"fmt"
	"math"

	"github.com/npillmayer/roadmark"
)

// BoundaryClass classifies boundaries by their neighbouring lanes.
type BoundaryClass uint8

// Boundary classes.
const (
	EdgeBoundary   BoundaryClass = iota // one lane only
	SplitBoundary                       // two lanes, far apart
	SharedBoundary                      // two lanes, close together
)

func (c BoundaryClass) String() string {
	switch c {
	case EdgeBoundary:
		return "edge"
	case SplitBoundary:
		return "split"
	case SharedBoundary:
		return "shared"
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// PointKind is the placement of an anchor point on its boundary.
type PointKind uint8

// Kinds of anchor points.
const (
	LeftEdge  PointKind = iota + 1 // on the left edge of the lane to the right
	RightEdge                      // on the right edge of the lane to the left
	Between                        // between two lanes
)

func (k PointKind) String() string {
	switch k {
	case LeftEdge:
		return "left-edge"
	case RightEdge:
		return "right-edge"
	case Between:
		return "between"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// minSine guards the edge shift against lanes running almost parallel to
// the corner.
const minSine = 1e-3

// Boundary lies between two neighbouring drive lanes of a segment end, or
// outside of an outermost lane. Left and right are as seen when driving into
// the node.
type Boundary struct {
	end   *SegmentEnd
	left  *DriveLane // nil for the left edge of the road
	right *DriveLane // nil for the right edge of the road
}

// End is the segment end the boundary belongs to.
func (b *Boundary) End() *SegmentEnd {
	return b.end
}

// Lanes returns the lanes on both sides. One of them may be nil.
func (b *Boundary) Lanes() (left, right *DriveLane) {
	return b.left, b.right
}

// IsLeftEdge is true for the boundary left of the leftmost lane.
func (b *Boundary) IsLeftEdge() bool {
	return b.left == nil
}

// IsRightEdge is true for the boundary right of the rightmost lane.
func (b *Boundary) IsRightEdge() bool {
	return b.right == nil
}

// IsEdge is true for boundaries with one lane.
func (b *Boundary) IsEdge() bool {
	return b.IsLeftEdge() != b.IsRightEdge()
}

// CenterDelta is the lateral distance between the centers of the lanes.
func (b *Boundary) CenterDelta() float64 {
	if b.IsEdge() {
		return 0
	}
	return math.Abs(b.right.Position() - b.left.Position())
}

// SideDelta is the lateral gap between the facing edges of the lanes.
func (b *Boundary) SideDelta() float64 {
	if b.IsEdge() {
		return 0
	}
	return math.Abs(b.right.LeftSidePos() - b.left.RightSidePos())
}

// Class classifies the boundary. Two lanes are split if the gap between
// them is at least the average of their half-widths.
func (b *Boundary) Class() BoundaryClass {
	if b.IsEdge() {
		return EdgeBoundary
	}
	if b.SideDelta() >= (b.right.HalfWidth()+b.left.HalfWidth())/2 {
		return SplitBoundary
	}
	return SharedBoundary
}

// Kinds lists the kinds of anchor points the boundary supports, in the
// order the points are created.
func (b *Boundary) Kinds() []PointKind {
	switch b.Class() {
	case EdgeBoundary:
		if b.IsRightEdge() {
			return []PointKind{RightEdge}
		}
		return []PointKind{LeftEdge}
	case SplitBoundary:
		return []PointKind{RightEdge, LeftEdge}
	}
	return []PointKind{Between}
}

func (b *Boundary) supports(kind PointKind) bool {
	switch kind {
	case LeftEdge:
		return b.right != nil && b.Class() != SharedBoundary
	case RightEdge:
		return b.left != nil && b.Class() != SharedBoundary
	case Between:
		return b.Class() == SharedBoundary
	}
	return false
}

// PositionAndDirection calculates the location of an anchor point of the
// given kind, shifted by offset along the corner direction. The direction
// points into the node.
//
// Asking for a kind the boundary does not support is a programming error and
// will panic.
func (b *Boundary) PositionAndDirection(kind PointKind, offset float64) (pos, dir roadmark.Vec3) {
	if !b.supports(kind) {
		panic(fmt.Sprintf("boundary %s does not support %s points", b, kind))
	}
	if kind == Between {
		return b.middle(offset)
	}
	return b.edge(kind, offset)
}

func (b *Boundary) middle(offset float64) (pos, dir roadmark.Vec3) {
	rightPos, rightDir := b.right.PositionAndDirection()
	leftPos, leftDir := b.left.PositionAndDirection()
	part := 0.5
	if d := b.CenterDelta(); !roadmark.Is0(d) {
		part = (b.right.HalfWidth() + b.SideDelta()/2) / d
	}
	pos = rightPos.Lerp(leftPos, part).Add(b.end.cornerDir.Scaled(offset))
	dir = rightDir.Add(leftDir).Scaled(0.5)
	if b.end.isStartSide {
		dir = dir.Neg()
	}
	return pos, dir.Normalized()
}

func (b *Boundary) edge(kind PointKind, offset float64) (pos, dir roadmark.Vec3) {
	var shift float64
	if kind == LeftEdge {
		pos, dir = b.right.PositionAndDirection()
		shift = -b.right.HalfWidth()
	} else {
		pos, dir = b.left.PositionAndDirection()
		shift = b.left.HalfWidth()
	}
	if b.end.isStartSide {
		dir = dir.Neg()
	}
	angle := roadmark.Angle(dir, b.end.cornerDir)
	if angle > 90 {
		angle = 180 - angle
	}
	if sin := math.Sin(angle * roadmark.Deg2Rad); sin > minSine {
		shift /= sin
	} else {
		tracer().Debugf("%s: lane runs along the corner of segment %d", kind, b.end.id)
	}
	pos = pos.Add(b.end.cornerDir.Scaled(shift + offset))
	return pos, dir.Normalized()
}

func (b *Boundary) String() string {
	return fmt.Sprintf("boundary(%s %v|%v)", b.Class(), b.left, b.right)
}
