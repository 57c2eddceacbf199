package geom

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".geojson", ".json", ".wkt", ".wkb", ".kml", ".csv"}

// Supported reports whether Load understands files named like path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load decodes a file into a Layer, choosing the format by extension.
func Load(path string) (Layer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".wkt":
		return LoadWKT(path)
	case ".wkb":
		return LoadWKB(path)
	case ".kml":
		return LoadKML(path)
	case ".csv":
		return LoadCSV(path)
	}
	return Layer{}, errors.Errorf("unsupported file: %s", filepath.Base(path))
}
