/*
Package markup holds the markings of a node: its segment ends with their
anchor points, and the lines connecting anchor points.

A Node owns its anchor points. Geometry updates of the road network are
applied in place, keeping the offsets users have set on anchor points.
Changes of the lane layout require a rebuild, which carries offsets over to
anchor points with the same identity and drops lines whose anchor points
have disappeared.

Lines cache their dashes. A line recalculates its dashes when its style is
replaced, when one of its segment ends reports a new version, or when it is
invalidated explicitly.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package markup

import (
	"errors"
	"fmt"
	"slices"

	"github.com/npillmayer/roadmark/style"
	"github.com/npillmayer/roadmark/xsection"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'markup'
func tracer() tracing.Trace {
	return tracing.Select("markup")
}

// Errors of line management.
var (
	ErrUnknownPoint = errors.New("unknown anchor point")
	ErrSamePoint    = errors.New("line must connect two different anchor points")
	ErrLineExists   = errors.New("line already exists")
	ErrStyleFamily  = errors.New("style family does not fit line")
)

// Network is a road network which knows the segments of its nodes.
type Network interface {
	xsection.Network
	NodeSegments(node xsection.NodeID) ([]xsection.SegmentID, error)
}

// Node is the markup of a single node.
type Node struct {
	net    Network
	id     xsection.NodeID
	engine *style.Engine
	ends   []*xsection.SegmentEnd
	points map[xsection.AnchorID]*xsection.AnchorPoint
	lines  map[LineID]*Line
}

// NewNode creates the markup of node id, with a segment end for every
// segment of the node.
func NewNode(net Network, id xsection.NodeID) (*Node, error) {
	n := &Node{
		net:    net,
		id:     id,
		engine: &style.DefaultEngine,
		lines:  make(map[LineID]*Line),
	}
	if err := n.build(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Node) build() error {
	segments, err := n.net.NodeSegments(n.id)
	if err != nil {
		return err
	}
	ends := make([]*xsection.SegmentEnd, 0, len(segments))
	points := make(map[xsection.AnchorID]*xsection.AnchorPoint)
	for _, s := range segments {
		end, err := xsection.NewSegmentEnd(n.net, n.id, s)
		if err != nil {
			return fmt.Errorf("node %d: %w", n.id, err)
		}
		ends = append(ends, end)
		for _, p := range end.Points() {
			points[p.ID()] = p
		}
	}
	n.ends, n.points = ends, points
	return nil
}

// ID is the ID of the node.
func (n *Node) ID() xsection.NodeID {
	return n.id
}

// Ends returns the segment ends of the node, in the order the network
// reports the segments.
func (n *Node) Ends() []*xsection.SegmentEnd {
	return n.ends
}

// Point returns the anchor point with the given ID.
func (n *Node) Point(id xsection.AnchorID) (*xsection.AnchorPoint, bool) {
	p, ok := n.points[id]
	return p, ok
}

// SetEngine replaces the engine used for calculating dashes. All lines are
// invalidated. A nil engine selects style.DefaultEngine.
func (n *Node) SetEngine(e *style.Engine) {
	if e == nil {
		e = &style.DefaultEngine
	}
	n.engine = e
	for _, l := range n.lines {
		l.Invalidate()
	}
}

// Update recalculates the geometry of all segment ends, e.g. after
// construction near the node. Anchor points keep their identity and offset.
func (n *Node) Update() error {
	for _, end := range n.ends {
		if err := end.Update(); err != nil {
			return fmt.Errorf("node %d: %w", n.id, err)
		}
	}
	return nil
}

// Rebuild recreates the segment ends of the node after the lane layout has
// changed. Offsets are carried over to anchor points with the same ID.
// Lines are re-attached to their anchor points; lines whose anchor points do
// not exist any more are removed and returned.
func (n *Node) Rebuild() ([]LineID, error) {
	old := n.points
	if err := n.build(); err != nil {
		return nil, err
	}
	for id, p := range n.points {
		if q, ok := old[id]; ok && q.Offset() != 0 {
			p.SetOffset(q.Offset())
		}
	}
	var dropped []LineID
	for id, l := range n.lines {
		start, ok1 := n.points[l.start.ID()]
		end, ok2 := n.points[l.end.ID()]
		if !ok1 || !ok2 || l.isStop != (start.End() == end.End()) {
			delete(n.lines, id)
			dropped = append(dropped, id)
			continue
		}
		l.start, l.end = start, end
		l.Invalidate()
	}
	slices.SortFunc(dropped, compareLineIDs)
	tracer().Infof("node %d rebuilt: %d anchor points, %d lines, %d dropped",
		n.id, len(n.points), len(n.lines), len(dropped))
	return dropped, nil
}

// AddLine creates a line from anchor point a to anchor point b. If both
// points belong to the same segment end, the line is a stop line and its
// style must be of the stop family; otherwise it is a regular line. A nil
// style selects the solid default of the family.
func (n *Node) AddLine(a, b xsection.AnchorID, s style.Style) (*Line, error) {
	if a == b {
		return nil, fmt.Errorf("%w: %s", ErrSamePoint, a)
	}
	start, ok := n.points[a]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPoint, a)
	}
	end, ok := n.points[b]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPoint, b)
	}
	id := NewLineID(a, b)
	if _, exists := n.lines[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrLineExists, id)
	}
	l := &Line{
		node:   n,
		id:     id,
		start:  start,
		end:    end,
		isStop: start.End() == end.End(),
	}
	if s == nil {
		kind := style.LineSolid
		if l.isStop {
			kind = style.StopSolid
		}
		s, _ = style.Default(kind)
	}
	if err := l.SetStyle(s); err != nil {
		return nil, err
	}
	n.lines[id] = l
	tracer().Debugf("node %d: added %s", n.id, l)
	return l, nil
}

// Line returns the line with the given ID.
func (n *Node) Line(id LineID) (*Line, bool) {
	l, ok := n.lines[id]
	return l, ok
}

// Lines returns all lines of the node, ordered by ID.
func (n *Node) Lines() []*Line {
	lines := make([]*Line, 0, len(n.lines))
	for _, l := range n.lines {
		lines = append(lines, l)
	}
	slices.SortFunc(lines, func(l1, l2 *Line) int {
		return compareLineIDs(l1.id, l2.id)
	})
	return lines
}

// RemoveLine removes a line. Removing an unknown line is a no-op.
func (n *Node) RemoveLine(id LineID) {
	delete(n.lines, id)
}
