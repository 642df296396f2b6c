/*
Package xsection derives the anchor points of road markings from the lane
cross sections at the ends of road segments.

Where a segment meets a node, its drive lanes are ordered left to right as
seen when driving into the node. Between every two neighbouring lanes, and
outside of the outermost lanes, lies a boundary. Boundaries yield anchor
points: edge boundaries and split boundaries (lanes far apart) yield points
on the lane edges, shared boundaries yield one point between the lanes.

Lane geometry is not owned by this package. It is queried from a Network,
which will usually be backed by the road network of a host application.
StaticNetwork is a simple in-memory implementation.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package xsection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/npillmayer/roadmark"
	"github.com/npillmayer/roadmark/bezier"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'xsection'
func tracer() tracing.Trace {
	return tracing.Select("xsection")
}

// Errors returned for network queries.
var (
	ErrUnknownSegment = errors.New("unknown segment")
	ErrUnknownNode    = errors.New("unknown node")
	ErrNotConnected   = errors.New("segment is not connected to node")
)

// SegmentID identifies a road segment.
type SegmentID uint32

// NodeID identifies a node, i.e. a junction of segments.
type NodeID uint32

// LaneID identifies a lane of a segment.
type LaneID uint32

// LaneInfo describes a lane in the cross section of its segment.
// Position is the signed lateral position of the lane center.
type LaneInfo struct {
	ID       LaneID
	Position float64
	Width    float64
	Drive    bool // lanes for vehicles; other lanes carry no markings
}

// SegmentInfo describes a segment as far as markings are concerned.
// Corner angles are in degrees.
type SegmentInfo struct {
	ID               SegmentID
	StartNode        NodeID
	EndNode          NodeID
	Invert           bool
	CornerAngleStart float64
	CornerAngleEnd   float64
	Lanes            []LaneInfo
}

// Network is the provider of road geometry.
//
// LaneGeometry returns position and direction of a lane at segment
// parameter t, with t=0 at the start node and t=1 at the end node.
type Network interface {
	Segment(id SegmentID) (SegmentInfo, error)
	LaneGeometry(id LaneID, t float64) (pos, dir roadmark.Vec3)
}

// --- Static network --------------------------------------------------------

// StaticNetwork is an in-memory Network. Lanes are cubic curves.
type StaticNetwork struct {
	segments map[SegmentID]SegmentInfo
	lanes    map[LaneID]bezier.Cubic
}

// NewStaticNetwork creates an empty network.
func NewStaticNetwork() *StaticNetwork {
	return &StaticNetwork{
		segments: make(map[SegmentID]SegmentInfo),
		lanes:    make(map[LaneID]bezier.Cubic),
	}
}

// AddSegment adds or replaces a segment, together with the curves of its
// lanes. curves[i] belongs to info.Lanes[i]. Lanes without a curve keep
// the curve they had before, if any.
func (n *StaticNetwork) AddSegment(info SegmentInfo, curves ...bezier.Cubic) {
	info.Lanes = slices.Clone(info.Lanes)
	n.segments[info.ID] = info
	for i, lane := range info.Lanes {
		if i < len(curves) {
			n.lanes[lane.ID] = curves[i]
		}
	}
}

// AddStraightSegment adds a segment running straight from `from` to `to`.
// Lanes are placed parallel to the center line, at their lateral position
// measured along the clockwise ground-plane normal.
func (n *StaticNetwork) AddStraightSegment(info SegmentInfo, from, to roadmark.Vec3) {
	n.AddSegment(info, StraightLanes(info, from, to)...)
}

// StraightLanes returns the lane curves of a straight segment.
func StraightLanes(info SegmentInfo, from, to roadmark.Vec3) []bezier.Cubic {
	normal := to.Sub(from).Normal()
	curves := make([]bezier.Cubic, len(info.Lanes))
	for i, lane := range info.Lanes {
		shift := normal.Scaled(lane.Position)
		curves[i] = bezier.Line(from.Add(shift), to.Add(shift))
	}
	return curves
}

// SetCornerAngles changes the corner angles of a segment.
func (n *StaticNetwork) SetCornerAngles(id SegmentID, start, end float64) error {
	info, ok := n.segments[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSegment, id)
	}
	info.CornerAngleStart, info.CornerAngleEnd = start, end
	n.segments[id] = info
	return nil
}

// RemoveSegment removes a segment and its lanes.
func (n *StaticNetwork) RemoveSegment(id SegmentID) {
	if info, ok := n.segments[id]; ok {
		for _, lane := range info.Lanes {
			delete(n.lanes, lane.ID)
		}
		delete(n.segments, id)
	}
}

// Segment is part of interface Network.
func (n *StaticNetwork) Segment(id SegmentID) (SegmentInfo, error) {
	info, ok := n.segments[id]
	if !ok {
		return SegmentInfo{}, fmt.Errorf("%w: %d", ErrUnknownSegment, id)
	}
	info.Lanes = slices.Clone(info.Lanes)
	return info, nil
}

// LaneGeometry is part of interface Network. Unknown lanes are located at
// the origin, without direction.
func (n *StaticNetwork) LaneGeometry(id LaneID, t float64) (pos, dir roadmark.Vec3) {
	c, ok := n.lanes[id]
	if !ok {
		tracer().Errorf("unknown lane %d", id)
		return roadmark.Zero, roadmark.Zero
	}
	return c.Position(t), c.Tangent(t).Normalized()
}

// NodeSegments returns the IDs of all segments starting or ending at node,
// in ascending order.
func (n *StaticNetwork) NodeSegments(node NodeID) ([]SegmentID, error) {
	var ids []SegmentID
	for id, info := range n.segments {
		if info.StartNode == node || info.EndNode == node {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, node)
	}
	slices.Sort(ids)
	return ids, nil
}
