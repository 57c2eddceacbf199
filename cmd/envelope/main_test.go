package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"geoenvelope/internal/envelope"
)

const (
	triangleWKT = "POLYGON ((2 -2, 20 -2, 11 11, 2 -2))"
	places      = `{"type":"FeatureCollection","features":[
 {"type":"Feature","id":"north","properties":{"name":"north"},"geometry":{"type":"Polygon","coordinates":[[[0,10],[10,10],[10,20],[0,20],[0,10]]]}},
 {"type":"Feature","properties":{"name":"south"},"geometry":{"type":"LineString","coordinates":[[0,-20],[10,-10]]}},
 {"type":"Feature","properties":{"name":"hub"},"geometry":{"type":"Point","coordinates":[5,0]}}
]}`
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBBoxText(t *testing.T) {
	tri := writeTemp(t, "tri.wkt", triangleWKT)
	out, err := run(t, "bbox", tri)
	require.NoError(t, err)
	require.Equal(t, tri+"\t[2 -2, 20 11]\twidth=18 height=13 area=234\n", out)

	out, err = run(t, "bbox", "--radius", "3", tri)
	require.NoError(t, err)
	require.Contains(t, out, "[-1 -5, 23 14]")
}

func TestBBoxTotalAndJSON(t *testing.T) {
	tri := writeTemp(t, "tri.wkt", triangleWKT)
	fc := writeTemp(t, "places.geojson", places)
	out, err := run(t, "bbox", "-f", "json", "--gc", tri, fc)
	require.NoError(t, err)

	var rows []struct {
		Name    string            `json:"name"`
		BBox    envelope.Envelope `json:"bbox"`
		Area    *float64          `json:"area"`
		WidthGC *float64          `json:"width_m"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	require.Equal(t, "total", rows[2].Name)
	require.Equal(t, "[0 -20, 20 20]", rows[2].BBox.String())
	require.NotNil(t, rows[0].WidthGC)
	require.Greater(t, *rows[0].WidthGC, 1e6)
}

func TestBBoxEmptyAndWKT(t *testing.T) {
	empty := writeTemp(t, "empty.wkt", "POLYGON EMPTY")
	out, err := run(t, "bbox", "--format", "wkt", empty)
	require.NoError(t, err)
	require.Equal(t, empty+"\tPOLYGON EMPTY\n", out)

	tri := writeTemp(t, "tri.wkt", triangleWKT)
	out, err = run(t, "bbox", "--format", "wkt", tri)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, tri+"\tPOLYGON (("), out)

	_, err = run(t, "bbox", "--format", "yaml", tri)
	require.Error(t, err)
	_, err = run(t, "bbox", "--radius", "-1", tri)
	require.ErrorIs(t, err, envelope.ErrInvalidArgument)
}

func TestBBoxRadiusFromEnvAndConfig(t *testing.T) {
	tri := writeTemp(t, "tri.wkt", triangleWKT)

	t.Setenv("ENVELOPE_BBOX_RADIUS", "1")
	out, err := run(t, "bbox", tri)
	require.NoError(t, err)
	require.Contains(t, out, "[1 -3, 21 12]")

	// flags win over the environment
	out, err = run(t, "bbox", "-r", "0", tri)
	require.NoError(t, err)
	require.Contains(t, out, "[2 -2, 20 11]")

	t.Setenv("ENVELOPE_BBOX_RADIUS", "")
	os.Unsetenv("ENVELOPE_BBOX_RADIUS")
	cfg := writeTemp(t, "envelope.yaml", "radius: 2\nformat: wkt\n")
	out, err = run(t, "bbox", "--config", cfg, tri)
	require.NoError(t, err)
	require.Contains(t, out, "POLYGON ((0 -4")
}

func TestRelate(t *testing.T) {
	out, err := run(t, "relate", "--wkt", "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))", "POINT (10 5)")
	require.NoError(t, err)
	require.Equal(t, "A\t[0 0, 10 10]\nB\t[10 5, 10 5]\ncontains\ttrue\nwithin\tfalse\nintersects\ttrue\n", out)

	a := writeTemp(t, "a.wkt", "LINESTRING (0 0, 1 1)")
	b := writeTemp(t, "b.wkt", "LINESTRING (5 5, 6 6)")
	out, err = run(t, "relate", a, b)
	require.NoError(t, err)
	require.Contains(t, out, "intersects\tfalse\n")

	_, err = run(t, "relate", a)
	require.Error(t, err)
}

func TestFilter(t *testing.T) {
	fc := writeTemp(t, "places.geojson", places)

	out, err := run(t, "filter", fc, "--bbox", "-1,-1,6,11")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "north\t[0 10, 10 20]\t"), lines[0])
	require.True(t, strings.HasPrefix(lines[1], "2\t[5 0, 5 0]\t"), lines[1])

	out, err = run(t, "filter", fc, "--point", "3,-15")
	require.NoError(t, err)
	require.Contains(t, out, `{"name":"south"}`)

	_, err = run(t, "filter", fc)
	require.Error(t, err)
	_, err = run(t, "filter", fc, "--bbox", "5,5,1,1")
	require.ErrorIs(t, err, envelope.ErrInvalidArgument)
	_, err = run(t, "filter", fc, "--point", "a,b")
	require.ErrorIs(t, err, envelope.ErrInvalidArgument)
}

func TestParseFloats(t *testing.T) {
	v, err := parseFloats(" 1, -2.5 ,3e2,4", 4)
	require.NoError(t, err)
	require.Equal(t, []float64{1, -2.5, 300, 4}, v)

	_, err = parseFloats("1,2,3", 4)
	require.ErrorIs(t, err, envelope.ErrInvalidArgument)
}
