package xsection

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/npillmayer/roadmark"
)

// AnchorID identifies an anchor point by its segment end and its number
// within the segment end. Numbers start at 1. IDs stay stable as long as the
// lane layout of the segment is unchanged.
type AnchorID struct {
	Segment SegmentID
	Num     uint8
}

func (id AnchorID) String() string {
	return fmt.Sprintf("%d:%d", id.Segment, id.Num)
}

// AnchorPoint is a location at a segment end where marking lines may start
// or end. Its position is derived from the lane geometry plus a lateral
// offset along the corner direction. The offset is the only state of an
// anchor point which is not derived from the network; it survives updates
// of the geometry.
//
// AnchorPoints must not be copied.
type AnchorPoint struct {
	id        AnchorID
	kind      PointKind
	boundary  *Boundary
	offset    atomic.Uint64 // float64 bits
	position  roadmark.Vec3
	direction roadmark.Vec3
}

func newAnchorPoint(b *Boundary, num uint8, kind PointKind) *AnchorPoint {
	p := &AnchorPoint{
		id:       AnchorID{Segment: b.end.id, Num: num},
		kind:     kind,
		boundary: b,
	}
	p.Update()
	return p
}

// ID is the stable identity of p.
func (p *AnchorPoint) ID() AnchorID {
	return p.id
}

// Kind is the placement of p on its boundary.
func (p *AnchorPoint) Kind() PointKind {
	return p.kind
}

// Boundary is the boundary p belongs to.
func (p *AnchorPoint) Boundary() *Boundary {
	return p.boundary
}

// End is the segment end p belongs to.
func (p *AnchorPoint) End() *SegmentEnd {
	return p.boundary.end
}

// Position is the location of p, including its offset.
func (p *AnchorPoint) Position() roadmark.Vec3 {
	return p.position
}

// Direction is the direction of travel into the node at p. A marking line
// starting at p leaves in this direction.
func (p *AnchorPoint) Direction() roadmark.Vec3 {
	return p.direction
}

// Offset is the lateral displacement of p along the corner direction.
func (p *AnchorPoint) Offset() float64 {
	return math.Float64frombits(p.offset.Load())
}

// SetOffset changes the offset of p, rounded to steps of 0.01, and
// recalculates its position. Lines ending at p see the change as a new
// version of the segment end.
func (p *AnchorPoint) SetOffset(offset float64) {
	if !roadmark.IsFinite(offset) {
		tracer().Errorf("anchor %s: ignoring offset %g", p.id, offset)
		return
	}
	p.offset.Store(math.Float64bits(roadmark.RoundTo(offset, 0.01)))
	p.Update()
	p.boundary.end.version.Add(1)
}

// Update recalculates position and direction of p from the lane geometry.
func (p *AnchorPoint) Update() {
	p.position, p.direction = p.boundary.PositionAndDirection(p.kind, p.Offset())
}

func (p *AnchorPoint) String() string {
	return fmt.Sprintf("anchor(%s %s @%s)", p.id, p.kind, p.position)
}
