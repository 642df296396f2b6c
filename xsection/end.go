package xsection

import (
	"cmp"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/npillmayer/roadmark"
)

// SegmentEnd is the end of a segment at a node, together with its
// boundaries and anchor points.
type SegmentEnd struct {
	net          Network
	id           SegmentID
	node         NodeID
	isStartSide  bool
	isLaneInvert bool
	cornerAngle  float64 // degrees
	cornerDir    roadmark.Vec3
	position     roadmark.Vec3
	lanes        []*DriveLane
	boundaries   []*Boundary
	points       []*AnchorPoint
	version      atomic.Uint64
}

// NewSegmentEnd creates the end of segment at node, with anchor points
// derived from the segment's drive lanes. A segment without drive lanes
// has no anchor points.
func NewSegmentEnd(net Network, node NodeID, segment SegmentID) (*SegmentEnd, error) {
	info, err := net.Segment(segment)
	if err != nil {
		return nil, err
	}
	if info.StartNode != node && info.EndNode != node {
		return nil, fmt.Errorf("%w: segment %d, node %d", ErrNotConnected, segment, node)
	}
	end := &SegmentEnd{
		net:         net,
		id:          segment,
		node:        node,
		isStartSide: info.StartNode == node,
	}
	end.isLaneInvert = end.isStartSide != info.Invert
	end.createLanes(info.Lanes)
	end.corner(info)
	end.createPoints()
	tracer().Debugf("segment end %d@%d: %d lanes, %d anchor points", segment, node,
		len(end.lanes), len(end.points))
	return end, nil
}

func (end *SegmentEnd) createLanes(lanes []LaneInfo) {
	drive := slices.DeleteFunc(slices.Clone(lanes), func(l LaneInfo) bool { return !l.Drive })
	slices.SortStableFunc(drive, func(a, b LaneInfo) int {
		return cmp.Compare(a.Position, b.Position)
	})
	if !end.isLaneInvert {
		slices.Reverse(drive)
	}
	end.lanes = make([]*DriveLane, len(drive))
	for i, info := range drive {
		end.lanes[i] = &DriveLane{end: end, info: info}
	}
}

func (end *SegmentEnd) createPoints() {
	if len(end.lanes) == 0 {
		return
	}
	end.boundaries = make([]*Boundary, len(end.lanes)+1)
	for i := range end.boundaries {
		b := &Boundary{end: end}
		if i > 0 {
			b.left = end.lanes[i-1]
		}
		if i < len(end.lanes) {
			b.right = end.lanes[i]
		}
		end.boundaries[i] = b
	}
	var num uint8
	for _, b := range end.boundaries {
		for _, kind := range b.Kinds() {
			num++
			end.points = append(end.points, newAnchorPoint(b, num, kind))
		}
	}
}

// param is the segment parameter at the node.
func (end *SegmentEnd) param() float64 {
	if end.isStartSide {
		return 0
	}
	return 1
}

// corner derives the corner angle and direction, and the reference position
// of the segment end.
func (end *SegmentEnd) corner(info SegmentInfo) {
	angle := info.CornerAngleEnd
	if end.isStartSide {
		angle = info.CornerAngleStart
	}
	if end.isLaneInvert {
		if angle >= 180 {
			angle -= 180
		} else {
			angle += 180
		}
	}
	end.cornerAngle = angle
	end.cornerDir = roadmark.Right.TurnDeg(angle, false).Normalized()
	if len(end.lanes) > 0 {
		lane := end.lanes[0]
		pos, _ := lane.PositionAndDirection()
		lateral := lane.Position()
		if end.isLaneInvert {
			lateral = -lateral
		}
		end.position = pos.Add(end.cornerDir.Scaled(lateral))
	}
}

// Update recalculates the geometry of the segment end and of all its anchor
// points from the network. Anchor points keep their identity and offset.
// Changes of the lane layout are not picked up; they require a new
// SegmentEnd.
func (end *SegmentEnd) Update() error {
	info, err := end.net.Segment(end.id)
	if err != nil {
		return err
	}
	end.corner(info)
	for _, p := range end.points {
		p.Update()
	}
	end.version.Add(1)
	return nil
}

// ID is the ID of the segment.
func (end *SegmentEnd) ID() SegmentID {
	return end.id
}

// Node is the node the segment end belongs to.
func (end *SegmentEnd) Node() NodeID {
	return end.node
}

// IsStartSide is true if the segment starts at the node.
func (end *SegmentEnd) IsStartSide() bool {
	return end.isStartSide
}

// IsLaneInvert is true if lanes are ordered by ascending lateral position
// when driving into the node.
func (end *SegmentEnd) IsLaneInvert() bool {
	return end.isLaneInvert
}

// CornerAngle is the angle of the corner direction in degrees.
func (end *SegmentEnd) CornerAngle() float64 {
	return end.cornerAngle
}

// CornerDir is the direction along the node's border at this segment end.
func (end *SegmentEnd) CornerDir() roadmark.Vec3 {
	return end.cornerDir
}

// Position is a reference location of the segment end on the corner line.
func (end *SegmentEnd) Position() roadmark.Vec3 {
	return end.position
}

// Lanes returns the drive lanes, left to right as seen when driving into the
// node.
func (end *SegmentEnd) Lanes() []*DriveLane {
	return end.lanes
}

// Boundaries returns the boundaries, left to right.
func (end *SegmentEnd) Boundaries() []*Boundary {
	return end.boundaries
}

// Points returns the anchor points in the order of their numbers.
func (end *SegmentEnd) Points() []*AnchorPoint {
	return end.points
}

// Point returns anchor point number num.
func (end *SegmentEnd) Point(num uint8) (*AnchorPoint, bool) {
	if num < 1 || int(num) > len(end.points) {
		return nil, false
	}
	return end.points[num-1], true
}

// Version changes whenever the geometry of the segment end or the offset of
// one of its anchor points changes.
func (end *SegmentEnd) Version() uint64 {
	return end.version.Load()
}

func (end *SegmentEnd) String() string {
	return fmt.Sprintf("end(%d@%d)", end.id, end.node)
}
