package markup

import (
	"cmp"
	"fmt"

	"github.com/npillmayer/roadmark/bezier"
	"github.com/npillmayer/roadmark/style"
	"github.com/npillmayer/roadmark/trajectory"
	"github.com/npillmayer/roadmark/xsection"
)

// LineID identifies a line by its anchor points, independent of direction.
type LineID struct {
	Start, End xsection.AnchorID
}

// NewLineID returns the ID of the line between a and b.
func NewLineID(a, b xsection.AnchorID) LineID {
	if compareAnchors(b, a) < 0 {
		a, b = b, a
	}
	return LineID{Start: a, End: b}
}

func (id LineID) String() string {
	return fmt.Sprintf("line(%s-%s)", id.Start, id.End)
}

func compareAnchors(a, b xsection.AnchorID) int {
	if c := cmp.Compare(a.Segment, b.Segment); c != 0 {
		return c
	}
	return cmp.Compare(a.Num, b.Num)
}

func compareLineIDs(a, b LineID) int {
	if c := compareAnchors(a.Start, b.Start); c != 0 {
		return c
	}
	return compareAnchors(a.End, b.End)
}

// Tension of regular line trajectories.
const Tension = 1.0

// Line is a marking between two anchor points of a node.
type Line struct {
	node       *Node
	id         LineID
	start, end *xsection.AnchorPoint
	isStop     bool
	style      style.Style
	// cache
	valid      bool
	versions   [2]uint64
	trajectory bezier.Cubic
	dashes     []style.Dash
}

// ID is the identity of l.
func (l *Line) ID() LineID {
	return l.id
}

// Points returns the anchor points l connects.
func (l *Line) Points() (start, end *xsection.AnchorPoint) {
	return l.start, l.end
}

// IsStop is true for lines across a single segment end.
func (l *Line) IsStop() bool {
	return l.isStop
}

// Style is the style of l.
func (l *Line) Style() style.Style {
	return l.style
}

// SetStyle replaces the style of l. The style has to be valid and of the
// family of the line.
func (l *Line) SetStyle(s style.Style) error {
	if err := style.Validate(s); err != nil {
		return err
	}
	family := style.Regular
	if l.isStop {
		family = style.Stop
	}
	if f := s.Attributes().Family; f != family {
		return fmt.Errorf("%w: %s style for %s line", ErrStyleFamily, f, family)
	}
	l.style = s
	l.Invalidate()
	return nil
}

// Invalidate drops the cached dashes.
func (l *Line) Invalidate() {
	l.valid = false
}

func (l *Line) currentVersions() [2]uint64 {
	return [2]uint64{l.start.End().Version(), l.end.End().Version()}
}

// Trajectory is the curve l runs along. Stop lines are straight, regular
// lines leave their start point in its direction into the node and arrive
// at their end point heading out of the node.
func (l *Line) Trajectory() bezier.Cubic {
	l.refresh()
	return l.trajectory
}

// Dashes returns the dashes of l. They are recalculated only if l has been
// invalidated, its style has changed, or the geometry of one of its segment
// ends has changed. The slice is shared and must not be modified.
func (l *Line) Dashes() []style.Dash {
	l.refresh()
	return l.dashes
}

func (l *Line) refresh() {
	v := l.currentVersions()
	if l.valid && v == l.versions {
		return
	}
	l.versions = v
	l.valid = true
	l.trajectory = l.calculateTrajectory()
	l.dashes = l.node.engine.Dashes(l.style, l.trajectory)
	tracer().Debugf("%s: %d dashes", l.id, len(l.dashes))
}

func (l *Line) calculateTrajectory() bezier.Cubic {
	if l.isStop {
		return trajectory.Straight(l.start.Position(), l.end.Position())
	}
	from := trajectory.Knot{Position: l.start.Position(), Direction: l.start.Direction()}
	to := trajectory.Knot{Position: l.end.Position(), Direction: l.end.Direction().Neg()}
	c, err := trajectory.Connect(from, to, Tension)
	if err != nil {
		tracer().Errorf("%s: %v", l.id, err)
		return bezier.Cubic{}
	}
	return c
}

func (l *Line) String() string {
	kind := "<none>"
	if l.style != nil {
		kind = l.style.Kind().String()
	}
	return fmt.Sprintf("%s[%s]", l.id, kind)
}
