package geom

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	gogeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkt"

	"geoenvelope/internal/envelope"
)

// ParseWKT parses a WKT geometry (any type go-geom understands, including
// GEOMETRYCOLLECTION and EMPTY forms) into a single-feature Layer.
func ParseWKT(s string) (Layer, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Layer{}, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return Layer{}, errors.Wrap(err, "wkt")
	}
	return fromGeom(g)
}

func LoadWKT(path string) (Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layer{}, err
	}
	return ParseWKT(string(data))
}

// LoadWKB reads a file holding one binary WKB geometry.
func LoadWKB(path string) (Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layer{}, err
	}
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return Layer{}, errors.Wrapf(err, "wkb %s", path)
	}
	return fromGeom(g)
}

func fromGeom(g gogeom.T) (Layer, error) {
	var l Layer
	if err := l.addGeom(g); err != nil {
		return Layer{}, err
	}
	env, err := envelope.FromGeo(g)
	if err != nil {
		return Layer{}, err
	}
	l.Features = []Feature{{Envelope: env}}
	return l, nil
}

func coord(c gogeom.Coord) envelope.Point { return envelope.Point{c.X(), c.Y()} }

func coords(cs []gogeom.Coord) []envelope.Point {
	out := make([]envelope.Point, len(cs))
	for i, c := range cs {
		out[i] = coord(c)
	}
	return out
}

func coordRings(rs [][]gogeom.Coord) [][]envelope.Point {
	out := make([][]envelope.Point, len(rs))
	for i, r := range rs {
		out[i] = coords(r)
	}
	return out
}

func (l *Layer) addGeom(g gogeom.T) error {
	switch v := g.(type) {
	case *gogeom.Point:
		if v == nil || len(v.FlatCoords()) < 2 {
			return nil
		}
		return l.addPoint(coord(v.Coords()))
	case *gogeom.MultiPoint:
		if v == nil {
			return nil
		}
		for _, c := range v.Coords() {
			if err := l.addPoint(coord(c)); err != nil {
				return err
			}
		}
	case *gogeom.LineString:
		if v == nil {
			return nil
		}
		return l.addLine(coords(v.Coords()))
	case *gogeom.MultiLineString:
		if v == nil {
			return nil
		}
		for _, ls := range v.Coords() {
			if err := l.addLine(coords(ls)); err != nil {
				return err
			}
		}
	case *gogeom.Polygon:
		if v == nil {
			return nil
		}
		return l.addPolygon(coordRings(v.Coords()))
	case *gogeom.MultiPolygon:
		if v == nil {
			return nil
		}
		for _, poly := range v.Coords() {
			if err := l.addPolygon(coordRings(poly)); err != nil {
				return err
			}
		}
	case *gogeom.GeometryCollection:
		if v == nil {
			return nil
		}
		for _, sub := range v.Geoms() {
			if err := l.addGeom(sub); err != nil {
				return err
			}
		}
	default:
		return errors.Wrapf(envelope.ErrInvalidInput, "unsupported geometry %T", g)
	}
	return nil
}
