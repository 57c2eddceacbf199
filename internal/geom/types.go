package geom

import (
	"fmt"

	"geoenvelope/internal/envelope"
)

// Feature is one record of a dataset with its own envelope.
type Feature struct {
	ID         any
	Properties map[string]any
	Envelope   envelope.Envelope
}

// Layer is a decoded dataset split by geometry kind for rendering
type Layer struct {
	Points   []envelope.Point
	Lines    [][]envelope.Point
	Polygons [][][]envelope.Point // polygons with rings (first outer, following holes)
	Features []Feature
	Envelope envelope.Envelope
}

func (l *Layer) addPoint(p envelope.Point) error {
	if err := envelope.CheckPoint(p); err != nil {
		return err
	}
	l.Points = append(l.Points, p)
	l.Envelope = l.Envelope.ExpandPoint(p)
	return nil
}

func (l *Layer) addLine(ls []envelope.Point) error {
	if len(ls) == 0 {
		return nil
	}
	if err := l.expand(ls); err != nil {
		return err
	}
	l.Lines = append(l.Lines, ls)
	return nil
}

func (l *Layer) addPolygon(rings [][]envelope.Point) error {
	if len(rings) == 0 || len(rings[0]) == 0 {
		return nil
	}
	for _, ring := range rings {
		if err := l.expand(ring); err != nil {
			return err
		}
	}
	l.Polygons = append(l.Polygons, rings)
	return nil
}

// expand checks every point before touching the layer envelope, so a bad
// vertex leaves it unchanged.
func (l *Layer) expand(pts []envelope.Point) error {
	e := l.Envelope
	for _, p := range pts {
		if err := envelope.CheckPoint(p); err != nil {
			return err
		}
		e = e.ExpandPoint(p)
	}
	l.Envelope = e
	return nil
}

// Vertices returns every coordinate of the layer: points, line vertices and
// ring vertices.
func (l Layer) Vertices() []envelope.Point {
	out := append([]envelope.Point(nil), l.Points...)
	for _, ls := range l.Lines {
		out = append(out, ls...)
	}
	for _, poly := range l.Polygons {
		for _, ring := range poly {
			out = append(out, ring...)
		}
	}
	return out
}

func (l Layer) IsEmpty() bool {
	return len(l.Points) == 0 && len(l.Lines) == 0 && len(l.Polygons) == 0
}

func (l Layer) Counts() string {
	return fmt.Sprintf("pts=%d ls=%d poly=%d", len(l.Points), len(l.Lines), len(l.Polygons))
}
