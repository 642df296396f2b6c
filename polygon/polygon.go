/*
Package polygon builds ground-plane polygons for road markings.

Renderers draw dashes as rotated rectangles. For hit-testing, e.g. when the
user hovers over a marking, the outlines of all dashes of a line are united
into a single footprint. Polygon clipping is done by polyclip-go.

	pg := polygon.NullPolygon().Knot(roadmark.P(0, 0)).Knot(roadmark.P(1, 3)).Knot(roadmark.P(3, 0)).Cycle()

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"iter"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/roadmark"
	"github.com/npillmayer/roadmark/style"
	"github.com/npillmayer/schuko/tracing"
)

// L writes to trace with key 'polygon'
func L() tracing.Trace {
	return tracing.Select("polygon")
}

// Polygon is a closed polygon on the ground plane.
type Polygon struct {
	contour polyclip.Contour
}

// Builder collects the knots of a polygon.
type Builder struct {
	knots []roadmark.Pair
}

// NullPolygon starts an empty polygon.
func NullPolygon() *Builder {
	return &Builder{}
}

// Knot appends a knot. Knots equal to their predecessor are skipped.
func (b *Builder) Knot(p roadmark.Pair) *Builder {
	if n := len(b.knots); n > 0 && b.knots[n-1].Equal(p) {
		return b
	}
	b.knots = append(b.knots, p)
	return b
}

// Cycle closes the polygon.
func (b *Builder) Cycle() *Polygon {
	knots := b.knots
	if n := len(knots); n > 1 && knots[0].Equal(knots[n-1]) {
		knots = knots[:n-1]
	}
	pg := &Polygon{contour: make(polyclip.Contour, 0, len(knots))}
	for _, k := range knots {
		pg.contour.Add(polyclip.Point{X: k.X(), Y: k.Y()})
	}
	return pg
}

// Box creates a rectangle from two opposite corners.
func Box(a, b roadmark.Pair) *Polygon {
	return NullPolygon().Knot(a).Knot(roadmark.P(b.X(), a.Y())).Knot(b).Knot(roadmark.P(a.X(), b.Y())).Cycle()
}

// N is the number of knots.
func (pg *Polygon) N() int {
	return len(pg.contour)
}

// Pt returns knot i.
func (pg *Polygon) Pt(i int) roadmark.Pair {
	p := pg.contour[i]
	return roadmark.P(p.X, p.Y)
}

// Contains tests if p lies inside pg.
func (pg *Polygon) Contains(p roadmark.Pair) bool {
	return pg.contour.Contains(polyclip.Point{X: p.X(), Y: p.Y()})
}

// Area is the signed area of pg, positive for counter-clockwise knots.
func (pg *Polygon) Area() float64 {
	var a float64
	for i, p := range pg.contour {
		q := pg.contour[(i+1)%len(pg.contour)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// AsString returns a debug representation of a polygon.
func AsString(pg *Polygon) string {
	var sb strings.Builder
	for _, p := range pg.contour {
		fmt.Fprintf(&sb, "(%.4g,%.4g) -- ", p.X, p.Y)
	}
	sb.WriteString("cycle")
	return sb.String()
}

// DashOutline is the rectangle a dash covers on the ground plane. Corner
// coordinates within Epsilon of zero are snapped to zero.
func DashOutline(d style.Dash) *Polygon {
	l, w := d.Length/2, d.Width/2
	at := roadmark.Rotation(d.Angle).Combine(roadmark.Translation(d.Position.XZ()))
	b := NullPolygon()
	for _, corner := range []roadmark.Pair{roadmark.P(-l, -w), roadmark.P(l, -w), roadmark.P(l, w), roadmark.P(-l, w)} {
		b.Knot(at.Transform(corner).Zap())
	}
	return b.Cycle()
}

// Area is the united outline of a sequence of dashes. It may consist of
// several contours, some of which may be holes.
type Area struct {
	poly polyclip.Polygon
	box  polyclip.Rect
}

// Footprint unites the outlines of dashes. Dashes without extent are
// ignored.
func Footprint(dashes iter.Seq[style.Dash]) *Area {
	var poly polyclip.Polygon
	for d := range dashes {
		if !(d.Length > 0) || !(d.Width > 0) || !d.Position.IsFinite() {
			continue
		}
		outline := DashOutline(d)
		poly = poly.Construct(polyclip.UNION, polyclip.Polygon{outline.contour})
	}
	area := &Area{poly: poly}
	if len(poly) > 0 {
		area.box = poly.BoundingBox()
	}
	L().Debugf("footprint with %d contours, %d vertices", len(poly), poly.NumVertices())
	return area
}

// Contours is the number of contours of a.
func (a *Area) Contours() int {
	return len(a.poly)
}

// IsEmpty is true for footprints without any dash.
func (a *Area) IsEmpty() bool {
	return len(a.poly) == 0
}

// Hit tests if p lies inside footprint a. A point is inside if it is
// contained in an odd number of contours.
func Hit(a *Area, p roadmark.Pair) bool {
	if a == nil || a.IsEmpty() {
		return false
	}
	pt := polyclip.Point{X: p.X(), Y: p.Y()}
	if pt.X < a.box.Min.X || pt.X > a.box.Max.X || pt.Y < a.box.Min.Y || pt.Y > a.box.Max.Y {
		return false
	}
	inside := false
	for _, c := range a.poly {
		if c.Contains(pt) {
			inside = !inside
		}
	}
	return inside
}
