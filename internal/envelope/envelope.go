// Package envelope computes axis-aligned bounding boxes ("envelopes") for 2D
// geometries and answers cheap relationship questions about them.
//
// Envelopes are values: every operation returns a new Envelope and none of
// them mutates its receiver or arguments. The zero Envelope is the empty
// envelope, which is distinct from the zero-area envelope around a point.
package envelope

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
)

// Point is an (x, y) coordinate pair. For geographic data x is the longitude
// and y the latitude, both in degrees.
type Point [2]float64

func (p Point) X() float64 { return p[0] }
func (p Point) Y() float64 { return p[1] }

// Envelope is an axis-aligned bounding box. When ok is false all four bounds
// are absent and the envelope is empty.
type Envelope struct {
	minX, minY float64
	maxX, maxY float64
	ok         bool
}

// Empty returns the empty envelope.
func Empty() Envelope { return Envelope{} }

// New returns the envelope with the given bounds.
func New(minX, minY, maxX, maxY float64) (Envelope, error) {
	for _, v := range [...]float64{minX, minY, maxX, maxY} {
		if math.IsNaN(v) {
			return Envelope{}, errors.Wrap(ErrInvalidArgument, "NaN bound")
		}
	}
	if minX > maxX || minY > maxY {
		return Envelope{}, errors.Wrapf(ErrInvalidArgument,
			"inverted bounds [%g %g, %g %g]", minX, minY, maxX, maxY)
	}
	return Envelope{minX: minX, minY: minY, maxX: maxX, maxY: maxY, ok: true}, nil
}

// FromGeo reduces g to its coordinate pairs and folds them into an envelope.
// A geometry without coordinates yields the empty envelope.
func FromGeo(g any) (Envelope, error) {
	if e, ok := g.(Envelope); ok {
		return e, nil
	}
	pts, err := Coords(g)
	if err != nil {
		return Envelope{}, err
	}
	e := Empty()
	for _, p := range pts {
		e = e.ExpandPoint(p)
	}
	return e, nil
}

// FromPointRadius returns the envelope of p grown by radius on every side.
func FromPointRadius(p Point, radius float64) (Envelope, error) {
	if err := CheckPoint(p); err != nil {
		return Envelope{}, err
	}
	return Empty().ExpandPoint(p).ExpandBy(radius)
}

// Fold expands the empty envelope by each geometry in turn.
func Fold(gs ...any) (Envelope, error) {
	e := Empty()
	for i, g := range gs {
		var err error
		if e, err = e.Expand(g); err != nil {
			return Envelope{}, errors.Wrapf(err, "geometry %d", i)
		}
	}
	return e, nil
}

// IsEmpty reports whether e is the empty envelope.
func (e Envelope) IsEmpty() bool { return !e.ok }

// Bounds returns the four bounds of e; ok is false for the empty envelope.
func (e Envelope) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	return e.minX, e.minY, e.maxX, e.maxY, e.ok
}

func (e Envelope) Min() Point { return Point{e.minX, e.minY} }
func (e Envelope) Max() Point { return Point{e.maxX, e.maxY} }

// ExpandPoint returns the smallest envelope covering e and p. p must not hold
// NaN ordinates; check it with CheckPoint or use Expand for unchecked input.
func (e Envelope) ExpandPoint(p Point) Envelope {
	if !e.ok {
		return Envelope{minX: p[0], minY: p[1], maxX: p[0], maxY: p[1], ok: true}
	}
	return Envelope{
		minX: math.Min(e.minX, p[0]),
		minY: math.Min(e.minY, p[1]),
		maxX: math.Max(e.maxX, p[0]),
		maxY: math.Max(e.maxY, p[1]),
		ok:   true,
	}
}

// ExpandEnvelope returns the smallest envelope covering e and o. The empty
// envelope is the identity on either side.
func (e Envelope) ExpandEnvelope(o Envelope) Envelope {
	switch {
	case !o.ok:
		return e
	case !e.ok:
		return o
	}
	return Envelope{
		minX: math.Min(e.minX, o.minX),
		minY: math.Min(e.minY, o.minY),
		maxX: math.Max(e.maxX, o.maxX),
		maxY: math.Max(e.maxY, o.maxY),
		ok:   true,
	}
}

// Expand returns the smallest envelope covering e and g, where g is a Point,
// an Envelope or any geometry accepted by Coords.
func (e Envelope) Expand(g any) (Envelope, error) {
	switch v := g.(type) {
	case Point:
		if err := CheckPoint(v); err != nil {
			return Envelope{}, err
		}
		return e.ExpandPoint(v), nil
	case Envelope:
		return e.ExpandEnvelope(v), nil
	}
	o, err := FromGeo(g)
	if err != nil {
		return Envelope{}, err
	}
	return e.ExpandEnvelope(o), nil
}

// ExpandBy grows every bound of e outward by radius. The empty envelope stays
// empty.
func (e Envelope) ExpandBy(radius float64) (Envelope, error) {
	if math.IsNaN(radius) || radius < 0 {
		return Envelope{}, errors.Wrapf(ErrInvalidArgument, "radius %g", radius)
	}
	if !e.ok {
		return e, nil
	}
	return Envelope{
		minX: e.minX - radius,
		minY: e.minY - radius,
		maxX: e.maxX + radius,
		maxY: e.maxY + radius,
		ok:   true,
	}, nil
}

func (e Envelope) Width() (float64, error) {
	if !e.ok {
		return 0, ErrEmptyEnvelope
	}
	return e.maxX - e.minX, nil
}

func (e Envelope) Height() (float64, error) {
	if !e.ok {
		return 0, ErrEmptyEnvelope
	}
	return e.maxY - e.minY, nil
}

func (e Envelope) Area() (float64, error) {
	if !e.ok {
		return 0, ErrEmptyEnvelope
	}
	return (e.maxX - e.minX) * (e.maxY - e.minY), nil
}

// Center returns the midpoint of e.
func (e Envelope) Center() (Point, error) {
	if !e.ok {
		return Point{}, ErrEmptyEnvelope
	}
	return Point{(e.minX + e.maxX) / 2, (e.minY + e.maxY) / 2}, nil
}

// ContainsEnvelope reports whether every bound of o lies within e. Touching
// bounds count as contained. The empty envelope is contained by every
// envelope and contains nothing but itself.
func (e Envelope) ContainsEnvelope(o Envelope) bool {
	switch {
	case !o.ok:
		return true
	case !e.ok:
		return false
	}
	return e.minX <= o.minX && e.minY <= o.minY && e.maxX >= o.maxX && e.maxY >= o.maxY
}

// ContainsPoint reports whether p lies in e or on its boundary.
func (e Envelope) ContainsPoint(p Point) bool {
	return e.ContainsEnvelope(Empty().ExpandPoint(p))
}

// WithinEnvelope is o.ContainsEnvelope(e).
func (e Envelope) WithinEnvelope(o Envelope) bool { return o.ContainsEnvelope(e) }

// IntersectsEnvelope reports whether e and o share at least one point.
// The empty envelope intersects nothing.
func (e Envelope) IntersectsEnvelope(o Envelope) bool {
	if !e.ok || !o.ok {
		return false
	}
	return !(e.minX > o.maxX || e.maxX < o.minX || e.minY > o.maxY || e.maxY < o.minY)
}

// Contains is ContainsEnvelope on the envelope of g.
func (e Envelope) Contains(g any) (bool, error) {
	o, err := FromGeo(g)
	if err != nil {
		return false, err
	}
	return e.ContainsEnvelope(o), nil
}

// Within is WithinEnvelope on the envelope of g.
func (e Envelope) Within(g any) (bool, error) {
	o, err := FromGeo(g)
	if err != nil {
		return false, err
	}
	return e.WithinEnvelope(o), nil
}

// Intersects is IntersectsEnvelope on the envelope of g.
func (e Envelope) Intersects(g any) (bool, error) {
	o, err := FromGeo(g)
	if err != nil {
		return false, err
	}
	return e.IntersectsEnvelope(o), nil
}

// Contains reports whether the envelope of a contains the envelope of b.
func Contains(a, b any) (bool, error) {
	ea, eb, err := pair(a, b)
	if err != nil {
		return false, err
	}
	return ea.ContainsEnvelope(eb), nil
}

// Within is Contains(b, a).
func Within(a, b any) (bool, error) { return Contains(b, a) }

// Intersects reports whether the envelopes of a and b intersect.
func Intersects(a, b any) (bool, error) {
	ea, eb, err := pair(a, b)
	if err != nil {
		return false, err
	}
	return ea.IntersectsEnvelope(eb), nil
}

func pair(a, b any) (Envelope, Envelope, error) {
	ea, err := FromGeo(a)
	if err != nil {
		return Envelope{}, Envelope{}, errors.Wrap(err, "first operand")
	}
	eb, err := FromGeo(b)
	if err != nil {
		return Envelope{}, Envelope{}, errors.Wrap(err, "second operand")
	}
	return ea, eb, nil
}

// Polygon returns e as a closed rectangular go-geom polygon.
func (e Envelope) Polygon() (*geom.Polygon, error) {
	if !e.ok {
		return nil, ErrEmptyEnvelope
	}
	return geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{{
		{e.minX, e.minY},
		{e.maxX, e.minY},
		{e.maxX, e.maxY},
		{e.minX, e.maxY},
		{e.minX, e.minY},
	}})
}

// Bound returns e as an orb.Bound; ok is false for the empty envelope.
func (e Envelope) Bound() (b orb.Bound, ok bool) {
	if !e.ok {
		return orb.Bound{}, false
	}
	return orb.Bound{Min: orb.Point{e.minX, e.minY}, Max: orb.Point{e.maxX, e.maxY}}, true
}

func (e Envelope) String() string {
	if !e.ok {
		return "EMPTY"
	}
	return fmt.Sprintf("[%g %g, %g %g]", e.minX, e.minY, e.maxX, e.maxY)
}

// CheckPoint fails with ErrInvalidInput when p holds a NaN ordinate. Callers
// that build points themselves run it before ExpandPoint.
func CheckPoint(p Point) error {
	if math.IsNaN(p[0]) || math.IsNaN(p[1]) {
		return errors.Wrapf(ErrInvalidInput, "NaN coordinate (%g, %g)", p[0], p[1])
	}
	return nil
}
