package geom

import (
	"encoding/json"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"geoenvelope/internal/envelope"
)

// LoadGeoJSON reads a GeoJSON file holding a FeatureCollection, a Feature or
// a bare geometry.
func LoadGeoJSON(path string) (Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layer{}, err
	}
	l, err := DecodeGeoJSON(data)
	if err != nil {
		return Layer{}, errors.Wrapf(err, "geojson %s", path)
	}
	return l, nil
}

// DecodeGeoJSON decodes GeoJSON text into a Layer with one Feature per
// GeoJSON feature (a bare geometry becomes a single feature).
func DecodeGeoJSON(data []byte) (Layer, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Layer{}, err
	}
	var fs []*geojson.Feature
	switch head.Type {
	case "":
		return Layer{}, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Layer{}, err
		}
		fs = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Layer{}, err
		}
		fs = []*geojson.Feature{f}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Layer{}, err
		}
		fs = []*geojson.Feature{geojson.NewFeature(g)}
	}

	var l Layer
	for i, f := range fs {
		if err := l.addGeoJSON(f.Geometry); err != nil {
			return Layer{}, errors.Wrapf(err, "feature %d", i)
		}
		env, err := envelope.FromGeo(f)
		if err != nil {
			return Layer{}, errors.Wrapf(err, "feature %d", i)
		}
		l.Features = append(l.Features, Feature{ID: f.ID, Properties: f.Properties, Envelope: env})
	}
	return l, nil
}

func (l *Layer) addGeoJSON(g *geojson.Geometry) error {
	if g == nil {
		return nil
	}
	switch g.Type {
	case geojson.GeometryPoint:
		if len(g.Point) == 0 {
			return nil
		}
		p, err := point(g.Point)
		if err != nil {
			return err
		}
		return l.addPoint(p)
	case geojson.GeometryMultiPoint:
		pts, err := points(g.MultiPoint)
		if err != nil {
			return err
		}
		for _, p := range pts {
			if err := l.addPoint(p); err != nil {
				return err
			}
		}
	case geojson.GeometryLineString:
		ls, err := points(g.LineString)
		if err != nil {
			return err
		}
		return l.addLine(ls)
	case geojson.GeometryMultiLineString:
		for _, c := range g.MultiLineString {
			ls, err := points(c)
			if err != nil {
				return err
			}
			if err := l.addLine(ls); err != nil {
				return err
			}
		}
	case geojson.GeometryPolygon:
		poly, err := rings(g.Polygon)
		if err != nil {
			return err
		}
		return l.addPolygon(poly)
	case geojson.GeometryMultiPolygon:
		for _, c := range g.MultiPolygon {
			poly, err := rings(c)
			if err != nil {
				return err
			}
			if err := l.addPolygon(poly); err != nil {
				return err
			}
		}
	case geojson.GeometryCollection:
		for _, sub := range g.Geometries {
			if err := l.addGeoJSON(sub); err != nil {
				return err
			}
		}
	default:
		return errors.Wrapf(envelope.ErrInvalidInput, "unsupported geojson type %q", g.Type)
	}
	return nil
}

func point(c []float64) (envelope.Point, error) {
	if len(c) < 2 {
		return envelope.Point{}, errors.Wrapf(envelope.ErrInvalidInput, "coordinate %v", c)
	}
	return envelope.Point{c[0], c[1]}, nil
}

func points(cs [][]float64) ([]envelope.Point, error) {
	out := make([]envelope.Point, 0, len(cs))
	for _, c := range cs {
		p, err := point(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func rings(rs [][][]float64) ([][]envelope.Point, error) {
	out := make([][]envelope.Point, 0, len(rs))
	for _, r := range rs {
		ring, err := points(r)
		if err != nil {
			return nil, err
		}
		out = append(out, ring)
	}
	return out, nil
}
