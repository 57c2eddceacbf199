package geom

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"geoenvelope/internal/envelope"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlRing struct {
	LinearRing kmlCoords `xml:"LinearRing"`
}

type kmlPolygon struct {
	Outer kmlRing   `xml:"outerBoundaryIs"`
	Inner []kmlRing `xml:"innerBoundaryIs"`
}

type kmlGeometry struct {
	Points   []kmlCoords  `xml:"Point"`
	Lines    []kmlCoords  `xml:"LineString"`
	Polygons []kmlPolygon `xml:"Polygon"`
}

type kmlPlacemark struct {
	Name  string      `xml:"name"`
	Multi kmlGeometry `xml:"MultiGeometry"`
	kmlGeometry
}

type kmlFolder struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Folders    []kmlFolder    `xml:"Folder"`
}

type kmlDoc struct {
	Document kmlFolder `xml:"Document"`
	kmlFolder
}

// LoadKML extracts Point, LineString and Polygon placemarks from a KML file,
// descending into Document, Folder and MultiGeometry elements.
// KML coordinates are "lon,lat[,alt]"; we ignore altitude.
func LoadKML(path string) (Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layer{}, err
	}
	l, err := DecodeKML(data)
	if err != nil {
		return Layer{}, errors.Wrapf(err, "kml %s", path)
	}
	return l, nil
}

func DecodeKML(data []byte) (Layer, error) {
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Layer{}, err
	}
	var l Layer
	if err := l.addKMLFolder(doc.kmlFolder); err != nil {
		return Layer{}, err
	}
	if err := l.addKMLFolder(doc.Document); err != nil {
		return Layer{}, err
	}
	return l, nil
}

func (l *Layer) addKMLFolder(f kmlFolder) error {
	for _, pm := range f.Placemarks {
		var sub Layer
		if err := sub.addKMLGeometry(pm.kmlGeometry); err != nil {
			return errors.Wrapf(err, "placemark %q", pm.Name)
		}
		if err := sub.addKMLGeometry(pm.Multi); err != nil {
			return errors.Wrapf(err, "placemark %q", pm.Name)
		}
		if sub.IsEmpty() {
			continue
		}
		l.merge(sub)
		var props map[string]any
		if pm.Name != "" {
			props = map[string]any{"name": pm.Name}
		}
		l.Features = append(l.Features, Feature{Properties: props, Envelope: sub.Envelope})
	}
	for _, sub := range f.Folders {
		if err := l.addKMLFolder(sub); err != nil {
			return err
		}
	}
	return nil
}

func (l *Layer) addKMLGeometry(g kmlGeometry) error {
	for _, p := range g.Points {
		pts, err := parseKMLCoords(p.Coordinates)
		if err != nil {
			return err
		}
		for _, pt := range pts {
			if err := l.addPoint(pt); err != nil {
				return err
			}
		}
	}
	for _, ls := range g.Lines {
		pts, err := parseKMLCoords(ls.Coordinates)
		if err != nil {
			return err
		}
		if err := l.addLine(pts); err != nil {
			return err
		}
	}
	for _, poly := range g.Polygons {
		outer, err := parseKMLCoords(poly.Outer.LinearRing.Coordinates)
		if err != nil {
			return err
		}
		rings := [][]envelope.Point{outer}
		for _, in := range poly.Inner {
			hole, err := parseKMLCoords(in.LinearRing.Coordinates)
			if err != nil {
				return err
			}
			rings = append(rings, hole)
		}
		if err := l.addPolygon(rings); err != nil {
			return err
		}
	}
	return nil
}

func (l *Layer) merge(o Layer) {
	l.Points = append(l.Points, o.Points...)
	l.Lines = append(l.Lines, o.Lines...)
	l.Polygons = append(l.Polygons, o.Polygons...)
	l.Envelope = l.Envelope.ExpandEnvelope(o.Envelope)
}

// parseKMLCoords parses whitespace separated "lon,lat[,alt]" tuples.
func parseKMLCoords(s string) ([]envelope.Point, error) {
	var out []envelope.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			return nil, errors.Wrapf(envelope.ErrInvalidInput, "kml tuple %q", tuple)
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			return nil, errors.Wrapf(envelope.ErrInvalidInput, "kml tuple %q", tuple)
		}
		out = append(out, envelope.Point{lon, lat})
	}
	return out, nil
}
