package workspace

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Geometry is the polar form of a segment: it starts at Origin, runs for Length
// and is rotated by Angle radians about Origin.
type Geometry struct {
	Origin r2.Vec
	Length float64
	Angle  float64
}

// ComputeGeometry returns the segment from s to t.
func ComputeGeometry(s, t r2.Vec) Geometry {
	d := r2.Sub(t, s)
	return Geometry{
		Origin: s,
		Length: r2.Norm(d),
		Angle:  math.Atan2(d.Y, d.X),
	}
}

// End returns the far endpoint of the segment.
func (g Geometry) End() r2.Vec {
	return r2.Add(g.Origin, r2.Vec{X: g.Length * math.Cos(g.Angle), Y: g.Length * math.Sin(g.Angle)})
}

// Degrees returns Angle in degrees.
func (g Geometry) Degrees() float64 {
	return g.Angle * 180 / math.Pi
}

// Line is an undirected connection between two elements. Both endpoints hold a
// Connection that points at the same Line.
type Line struct {
	id    NodeID
	a, b  *Element
	style LineStyle
	geom  Geometry
}

func newLine(a, b *Element, style LineStyle) *Line {
	l := &Line{id: newNodeID(), a: a, b: b, style: style}
	l.update()
	return l
}

func (l *Line) ID() NodeID { return l.id }
func (l *Line) Style() LineStyle { return l.style }
func (l *Line) Geometry() Geometry { return l.geom }
func (l *Line) Ends() (a, b *Element) { return l.a, l.b }

// Other returns the endpoint that is not e, or nil if e is not an endpoint.
func (l *Line) Other(e *Element) *Element {
	switch e {
	case l.a:
		return l.b
	case l.b:
		return l.a
	}
	return nil
}

// update re-derives the geometry from the live centers of both endpoints.
func (l *Line) update() {
	l.geom = ComputeGeometry(l.a.Center(), l.b.Center())
}

// Connection is one endpoint's view of a Line.
type Connection struct {
	Line  *Line
	Other *Element
}

// RubberBand is the temporary line that follows the pointer while a connect
// gesture is in progress. It is never hit-testable.
type RubberBand struct {
	Anchor   *Element
	Style    LineStyle
	Geometry Geometry
}

func (rb *RubberBand) follow(p r2.Vec) {
	rb.Geometry = ComputeGeometry(rb.Anchor.Center(), p)
}
