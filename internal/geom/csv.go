package geom

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"geoenvelope/internal/envelope"
)

// LoadCSV reads a CSV with latitude/longitude columns and returns points.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x (case-insensitive).
// Every other column becomes a feature property. Rows with a blank coordinate
// are skipped; a coordinate that is not a number is an error.
func LoadCSV(path string) (Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layer{}, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return Layer{}, errors.Wrapf(err, "csv %s", path)
	}
	if len(recs) == 0 {
		return Layer{}, errors.New("empty csv")
	}
	header := recs[0]
	idxLat, idxLon := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return Layer{}, errors.New("csv: latitude/longitude columns not found")
	}
	var l Layer
	for n, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lonS, latS := strings.TrimSpace(row[idxLon]), strings.TrimSpace(row[idxLat])
		if lonS == "" || latS == "" {
			continue
		}
		lon, err1 := strconv.ParseFloat(lonS, 64)
		lat, err2 := strconv.ParseFloat(latS, 64)
		if err1 != nil || err2 != nil {
			return Layer{}, errors.Wrapf(envelope.ErrInvalidInput, "csv %s row %d: (%q, %q)", path, n+2, lonS, latS)
		}
		pt := envelope.Point{lon, lat}
		if err := l.addPoint(pt); err != nil {
			return Layer{}, errors.Wrapf(err, "csv %s row %d", path, n+2)
		}
		props := make(map[string]any, len(header))
		for i, h := range header {
			if i == idxLat || i == idxLon || i >= len(row) {
				continue
			}
			props[h] = row[i]
		}
		l.Features = append(l.Features, Feature{
			ID:         n + 1,
			Properties: props,
			Envelope:   envelope.Empty().ExpandPoint(pt),
		})
	}
	return l, nil
}
