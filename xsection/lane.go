package xsection

import (
	"fmt"
	"math"

	"github.com/npillmayer/roadmark"
)

// DriveLane is a lane at a segment end which takes part in markings.
type DriveLane struct {
	end  *SegmentEnd
	info LaneInfo
}

// ID is the lane's ID.
func (l *DriveLane) ID() LaneID {
	return l.info.ID
}

// Position is the lateral position of the lane center.
func (l *DriveLane) Position() float64 {
	return l.info.Position
}

// HalfWidth is half the lane width.
func (l *DriveLane) HalfWidth() float64 {
	return math.Abs(l.info.Width) / 2
}

// LeftSidePos is the lateral position of the lane's left edge, as seen when
// driving into the node.
func (l *DriveLane) LeftSidePos() float64 {
	if l.end.isLaneInvert {
		return l.info.Position - l.HalfWidth()
	}
	return l.info.Position + l.HalfWidth()
}

// RightSidePos is the lateral position of the lane's right edge, as seen
// when driving into the node.
func (l *DriveLane) RightSidePos() float64 {
	if l.end.isLaneInvert {
		return l.info.Position + l.HalfWidth()
	}
	return l.info.Position - l.HalfWidth()
}

// PositionAndDirection returns the lane geometry at the segment end.
func (l *DriveLane) PositionAndDirection() (pos, dir roadmark.Vec3) {
	return l.end.net.LaneGeometry(l.info.ID, l.end.param())
}

func (l *DriveLane) String() string {
	return fmt.Sprintf("lane(%d @%.2f w=%.2f)", l.info.ID, l.info.Position, l.info.Width)
}
