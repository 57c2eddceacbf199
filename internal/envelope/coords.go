package envelope

import (
	"encoding/json"
	"math"
	"reflect"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
)

// Coordinated is implemented by structured shapes that expose a coordinates
// field holding any representation Coords accepts.
type Coordinated interface {
	Coordinates() any
}

// Coords reduces a geometry representation to its coordinate pairs. Accepted
// shapes are Point, [2]float64, flat or nested float64 slices, []any trees
// decoded from JSON, map[string]any objects with a "coordinates" member,
// Envelope, go-geom geometries, orb geometries, go.geojson geometries,
// features and feature collections, and any Coordinated value. Ordinates past
// the second are ignored.
//
// A non-numeric or NaN ordinate, or an unsupported shape, fails with
// ErrInvalidInput.
func Coords(g any) ([]Point, error) {
	var c collector
	if err := c.add(g); err != nil {
		return nil, err
	}
	return c.pts, nil
}

type collector struct {
	pts []Point
}

func (c *collector) point(x, y float64) error {
	if math.IsNaN(x) || math.IsNaN(y) {
		return errors.Wrapf(ErrInvalidInput, "NaN coordinate (%g, %g)", x, y)
	}
	c.pts = append(c.pts, Point{x, y})
	return nil
}

func (c *collector) ordinates(o []float64) error {
	switch len(o) {
	case 0:
		return nil
	case 1:
		return errors.Wrapf(ErrInvalidInput, "coordinate %v has one ordinate", o)
	}
	return c.point(o[0], o[1])
}

func (c *collector) add(g any) error {
	switch v := g.(type) {
	case nil:
		return errors.Wrap(ErrInvalidInput, "nil geometry")
	case Point:
		return c.point(v[0], v[1])
	case [2]float64:
		return c.point(v[0], v[1])
	case []float64:
		return c.ordinates(v)
	case Envelope:
		if !v.ok {
			return nil
		}
		c.pts = append(c.pts, Point{v.minX, v.minY}, Point{v.maxX, v.maxY})
		return nil
	case []Point:
		for _, p := range v {
			if err := c.point(p[0], p[1]); err != nil {
				return err
			}
		}
		return nil
	case [][2]float64:
		for _, p := range v {
			if err := c.point(p[0], p[1]); err != nil {
				return err
			}
		}
		return nil
	case [][]float64:
		for _, o := range v {
			if err := c.ordinates(o); err != nil {
				return err
			}
		}
		return nil
	case [][][]float64:
		for _, ring := range v {
			if err := c.add(ring); err != nil {
				return err
			}
		}
		return nil
	case [][][][]float64:
		for _, poly := range v {
			if err := c.add(poly); err != nil {
				return err
			}
		}
		return nil
	case []any:
		return c.anySlice(v)
	case map[string]any:
		return c.object(v)
	case geom.T:
		return c.geom(v)
	case orb.Geometry:
		return c.orb(v)
	case *geojson.Geometry:
		return c.geoJSON(v)
	case *geojson.Feature:
		if v == nil {
			return nil
		}
		return c.geoJSON(v.Geometry)
	case *geojson.FeatureCollection:
		if v == nil {
			return nil
		}
		for _, f := range v.Features {
			if err := c.add(f); err != nil {
				return err
			}
		}
		return nil
	case Coordinated:
		return c.add(v.Coordinates())
	}
	return errors.Wrapf(ErrInvalidInput, "unsupported geometry %T", g)
}

// anySlice handles JSON-decoded coordinate trees. A slice whose first element
// is a scalar is a coordinate; anything else is a sequence of geometries.
func (c *collector) anySlice(v []any) error {
	if len(v) == 0 {
		return nil
	}
	if !isScalar(v[0]) {
		for _, el := range v {
			if err := c.add(el); err != nil {
				return err
			}
		}
		return nil
	}
	if len(v) < 2 {
		return errors.Wrapf(ErrInvalidInput, "coordinate %v has one ordinate", v)
	}
	x, okx := toFloat(v[0])
	y, oky := toFloat(v[1])
	if !okx || !oky {
		return errors.Wrapf(ErrInvalidInput, "non-numeric coordinate %v", v)
	}
	return c.point(x, y)
}

func (c *collector) object(m map[string]any) error {
	if coords, ok := m["coordinates"]; ok {
		if coords == nil {
			return nil
		}
		return c.add(coords)
	}
	if g, ok := m["geometry"]; ok {
		if g == nil {
			return nil
		}
		return c.add(g)
	}
	for _, key := range []string{"features", "geometries"} {
		if list, ok := m[key]; ok {
			if list == nil {
				return nil
			}
			return c.add(list)
		}
	}
	return errors.Wrap(ErrInvalidInput, "object has no coordinates")
}

// geom treats a typed nil go-geom value like a nil *geojson.Geometry: it
// contributes nothing.
func (c *collector) geom(g geom.T) error {
	if v := reflect.ValueOf(g); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	if gc, ok := g.(*geom.GeometryCollection); ok {
		for _, sub := range gc.Geoms() {
			if err := c.geom(sub); err != nil {
				return err
			}
		}
		return nil
	}
	flat, stride := g.FlatCoords(), g.Stride()
	if stride < 2 {
		return nil
	}
	for i := 0; i+1 < len(flat); i += stride {
		if err := c.point(flat[i], flat[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func (c *collector) orbPoints(ps []orb.Point) error {
	for _, p := range ps {
		if err := c.point(p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

func (c *collector) orb(g orb.Geometry) error {
	switch v := g.(type) {
	case orb.Point:
		return c.point(v[0], v[1])
	case orb.MultiPoint:
		return c.orbPoints(v)
	case orb.LineString:
		return c.orbPoints(v)
	case orb.Ring:
		return c.orbPoints(v)
	case orb.MultiLineString:
		for _, ls := range v {
			if err := c.orbPoints(ls); err != nil {
				return err
			}
		}
		return nil
	case orb.Polygon:
		for _, r := range v {
			if err := c.orbPoints(r); err != nil {
				return err
			}
		}
		return nil
	case orb.MultiPolygon:
		for _, p := range v {
			if err := c.orb(p); err != nil {
				return err
			}
		}
		return nil
	case orb.Collection:
		for _, sub := range v {
			if err := c.orb(sub); err != nil {
				return err
			}
		}
		return nil
	case orb.Bound:
		return c.orbPoints([]orb.Point{v.Min, v.Max})
	}
	return errors.Wrapf(ErrInvalidInput, "unsupported orb geometry %T", g)
}

func (c *collector) geoJSON(g *geojson.Geometry) error {
	if g == nil {
		return nil
	}
	switch g.Type {
	case geojson.GeometryPoint:
		return c.ordinates(g.Point)
	case geojson.GeometryMultiPoint:
		return c.add(g.MultiPoint)
	case geojson.GeometryLineString:
		return c.add(g.LineString)
	case geojson.GeometryMultiLineString:
		return c.add(g.MultiLineString)
	case geojson.GeometryPolygon:
		return c.add(g.Polygon)
	case geojson.GeometryMultiPolygon:
		return c.add(g.MultiPolygon)
	case geojson.GeometryCollection:
		for _, sub := range g.Geometries {
			if err := c.geoJSON(sub); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.Wrapf(ErrInvalidInput, "unsupported geojson type %q", g.Type)
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, bool, string:
		return true
	}
	_, ok := toFloat(v)
	return ok
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
