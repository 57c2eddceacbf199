package envelope

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"geoenvelope/internal/greatcircle"
)

func mustNew(t *testing.T, minX, minY, maxX, maxY float64) Envelope {
	t.Helper()
	e, err := New(minX, minY, maxX, maxY)
	require.NoError(t, err)
	return e
}

func trianglePolygon(t *testing.T) *geom.Polygon {
	p, err := geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{
		{{2, -2}, {20, -2}, {11, 11}, {2, -2}},
	})
	require.NoError(t, err)
	return p
}

func TestEmpty(t *testing.T) {
	require.True(t, Empty().IsEmpty())
	require.True(t, Envelope{}.IsEmpty())
	require.Equal(t, "EMPTY", Empty().String())

	_, _, _, _, ok := Empty().Bounds()
	require.False(t, ok)
}

func TestPointIsNotEmpty(t *testing.T) {
	e, err := FromGeo(Point{0, 0})
	require.NoError(t, err)
	require.False(t, e.IsEmpty())

	minX, minY, maxX, maxY, ok := e.Bounds()
	require.True(t, ok)
	require.Equal(t, [4]float64{0, 0, 0, 0}, [4]float64{minX, minY, maxX, maxY})

	a, err := e.Area()
	require.NoError(t, err)
	require.Zero(t, a)
}

func TestNew(t *testing.T) {
	e, err := New(1, 2, 3, 4)
	require.NoError(t, err)
	require.Equal(t, Point{1, 2}, e.Min())
	require.Equal(t, Point{3, 4}, e.Max())

	_, err = New(3, 2, 1, 4)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = New(0, 5, 1, 4)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = New(math.NaN(), 0, 1, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFromGeoPolygon(t *testing.T) {
	want := mustNew(t, 2, -2, 20, 11)
	inputs := map[string]any{
		"go-geom": trianglePolygon(t),
		"orb":     orb.Polygon{{{2, -2}, {20, -2}, {11, 11}, {2, -2}}},
		"pairs":   [][2]float64{{2, -2}, {20, -2}, {11, 11}, {2, -2}},
		"nested":  [][][]float64{{{2, -2}, {20, -2}, {11, 11}, {2, -2}}},
		"json": map[string]any{
			"type":        "Polygon",
			"coordinates": []any{[]any{[]any{2.0, -2.0}, []any{20.0, -2.0}, []any{11.0, 11.0}, []any{2.0, -2.0}}},
		},
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			got, err := FromGeo(in)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestFromGeoEmptyPolygon(t *testing.T) {
	for name, in := range map[string]any{
		"go-geom": geom.NewPolygon(geom.XY),
		"orb":     orb.Polygon{},
		"json":    map[string]any{"type": "Polygon", "coordinates": []any{}},
		"slice":   [][2]float64{},
	} {
		t.Run(name, func(t *testing.T) {
			e, err := FromGeo(in)
			require.NoError(t, err)
			require.True(t, e.IsEmpty())
		})
	}
}

func TestFromGeoNilGeometry(t *testing.T) {
	for name, in := range map[string]any{
		"polygon":    (*geom.Polygon)(nil),
		"point":      (*geom.Point)(nil),
		"collection": (*geom.GeometryCollection)(nil),
		"linestring": (*geom.LineString)(nil),
	} {
		t.Run(name, func(t *testing.T) {
			var e Envelope
			require.NotPanics(t, func() {
				var err error
				e, err = FromGeo(in)
				require.NoError(t, err)
			})
			require.True(t, e.IsEmpty())
		})
	}
}

func TestFromGeoInvalidInput(t *testing.T) {
	for name, in := range map[string]any{
		"string ordinate": []any{"2", 3.0},
		"bool ordinate":   []any{[]any{true, 1.0}},
		"one ordinate":    []float64{1},
		"NaN":             Point{math.NaN(), 1},
		"nil":             nil,
		"unsupported":     "POINT (1 2)",
		"no coordinates":  map[string]any{"type": "Point"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := FromGeo(in)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

type station struct {
	name string
	at   [2]float64
}

func (s station) Coordinates() any { return s.at }

func TestFromGeoCoordinated(t *testing.T) {
	e, err := FromGeo(station{name: "north", at: [2]float64{5, 60}})
	require.NoError(t, err)
	require.Equal(t, mustNew(t, 5, 60, 5, 60), e)

	e, err = FromGeo([]any{station{at: [2]float64{1, 1}}, map[string]any{"coordinates": []any{-1.0, 4.0}}})
	require.NoError(t, err)
	require.Equal(t, mustNew(t, -1, 1, 1, 4), e)
}

func TestFromGeoCollections(t *testing.T) {
	gc := geom.NewGeometryCollection()
	require.NoError(t, gc.Push(
		geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{-3, 1}),
		geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{0, 0}, {4, 9}}),
	))
	e, err := FromGeo(gc)
	require.NoError(t, err)
	require.Equal(t, mustNew(t, -3, 0, 4, 9), e)

	// elevation is ignored
	e, err = FromGeo(geom.NewLineString(geom.XYZ).MustSetCoords([]geom.Coord{{0, 0, 100}, {4, 9, -200}}))
	require.NoError(t, err)
	require.Equal(t, mustNew(t, 0, 0, 4, 9), e)

	e, err = FromGeo(orb.Collection{orb.Point{1, 1}, orb.LineString{{2, 2}, {-2, 5}}})
	require.NoError(t, err)
	require.Equal(t, mustNew(t, -2, 1, 2, 5), e)
}

func TestFromPointRadius(t *testing.T) {
	e, err := FromPointRadius(Point{1, 1}, 2)
	require.NoError(t, err)
	require.Equal(t, mustNew(t, -1, -1, 3, 3), e)

	_, err = FromPointRadius(Point{1, 1}, -0.5)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestExpandPoint(t *testing.T) {
	e := Empty().ExpandPoint(Point{3, 4})
	require.Equal(t, mustNew(t, 3, 4, 3, 4), e)

	e = e.ExpandPoint(Point{-1, 10})
	require.Equal(t, mustNew(t, -1, 4, 3, 10), e)
}

func TestExpandIdentity(t *testing.T) {
	x := mustNew(t, -4, 2, 7, 9)
	require.Equal(t, x, Empty().ExpandEnvelope(x))
	require.Equal(t, x, x.ExpandEnvelope(Empty()))
	require.True(t, Empty().ExpandEnvelope(Empty()).IsEmpty())

	got, err := Empty().Expand(x)
	require.NoError(t, err)
	require.Equal(t, x, got)
}

func TestExpandCommutativeAssociative(t *testing.T) {
	a := mustNew(t, 0, 0, 1, 1)
	b := mustNew(t, -5, 3, -2, 8)
	c := mustNew(t, 10, -10, 11, 0)

	require.Equal(t, a.ExpandEnvelope(b), b.ExpandEnvelope(a))
	require.Equal(t,
		a.ExpandEnvelope(b).ExpandEnvelope(c),
		a.ExpandEnvelope(b.ExpandEnvelope(c)))
	require.Equal(t, mustNew(t, -5, -10, 11, 8), a.ExpandEnvelope(b).ExpandEnvelope(c))
}

func TestExpandDispatch(t *testing.T) {
	e := mustNew(t, 0, 0, 1, 1)

	got, err := e.Expand(Point{5, -1})
	require.NoError(t, err)
	require.Equal(t, mustNew(t, 0, -1, 5, 1), got)

	got, err = e.Expand(orb.LineString{{-2, 0}, {0, 3}})
	require.NoError(t, err)
	require.Equal(t, mustNew(t, -2, 0, 1, 3), got)

	_, err = e.Expand(Point{math.NaN(), 0})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.Expand([]any{"x", "y"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFoldMatchesFromGeo(t *testing.T) {
	pts := []Point{{2, -2}, {20, -2}, {11, 11}, {2, -2}}
	gs := make([]any, len(pts))
	for i, p := range pts {
		gs[i] = p
	}
	folded, err := Fold(gs...)
	require.NoError(t, err)

	direct, err := FromGeo(pts)
	require.NoError(t, err)
	require.Equal(t, direct, folded)

	mixed, err := Fold(Point{0, 0}, mustNew(t, 1, 1, 2, 2), orb.Point{-1, 5}, Empty())
	require.NoError(t, err)
	require.Equal(t, mustNew(t, -1, 0, 2, 5), mixed)

	_, err = Fold(Point{0, 0}, []any{true, false})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExpandBy(t *testing.T) {
	e := mustNew(t, 2, -2, 20, 11)
	got, err := e.ExpandBy(3)
	require.NoError(t, err)
	require.Equal(t, mustNew(t, -1, -5, 23, 14), got)

	got, err = e.ExpandBy(0)
	require.NoError(t, err)
	require.Equal(t, e, got)

	got, err = Empty().ExpandBy(10)
	require.NoError(t, err)
	require.True(t, got.IsEmpty())

	_, err = e.ExpandBy(-1)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = e.ExpandBy(math.NaN())
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMetrics(t *testing.T) {
	e := mustNew(t, 2, -2, 20, 11)

	w, err := e.Width()
	require.NoError(t, err)
	require.Equal(t, 18.0, w)

	h, err := e.Height()
	require.NoError(t, err)
	require.Equal(t, 13.0, h)

	a, err := e.Area()
	require.NoError(t, err)
	require.Equal(t, 234.0, a)

	c, err := e.Center()
	require.NoError(t, err)
	require.Equal(t, Point{11, 4.5}, c)
}

func TestMetricsOnEmpty(t *testing.T) {
	e := Empty()
	_, err := e.Width()
	require.ErrorIs(t, err, ErrEmptyEnvelope)
	_, err = e.Height()
	require.ErrorIs(t, err, ErrEmptyEnvelope)
	_, err = e.Area()
	require.ErrorIs(t, err, ErrEmptyEnvelope)
	_, err = e.Center()
	require.ErrorIs(t, err, ErrEmptyEnvelope)
	_, err = e.WidthGC()
	require.ErrorIs(t, err, ErrEmptyEnvelope)
	_, err = e.HeightGC()
	require.ErrorIs(t, err, ErrEmptyEnvelope)
	_, err = e.AreaGC()
	require.ErrorIs(t, err, ErrEmptyEnvelope)
}

func TestGreatCircleMetrics(t *testing.T) {
	e := mustNew(t, 0, 0, 1, 1)

	bottom := greatcircle.Distance([2]float64{0, 0}, [2]float64{1, 0})
	top := greatcircle.Distance([2]float64{0, 1}, [2]float64{1, 1})
	require.Less(t, top, bottom)

	w, err := e.WidthGC()
	require.NoError(t, err)
	require.InDelta(t, (bottom+top)/2, w, 1e-9)
	require.Less(t, w, bottom)
	require.Greater(t, w, top)

	h, err := e.HeightGC()
	require.NoError(t, err)
	require.InDelta(t, greatcircle.EarthRadius*math.Pi/180, h, 1e-6)

	a, err := e.AreaGC()
	require.NoError(t, err)
	require.InDelta(t, w*h, a, 1e-3)
}

func TestContains(t *testing.T) {
	a := mustNew(t, 0, 0, 10, 10)

	require.True(t, a.ContainsEnvelope(mustNew(t, 2, 2, 5, 5)))
	require.True(t, a.ContainsEnvelope(a), "boundaries touch")
	require.False(t, a.ContainsEnvelope(mustNew(t, 2, 2, 11, 5)))
	require.False(t, mustNew(t, 2, 2, 5, 5).ContainsEnvelope(a))

	require.True(t, a.ContainsPoint(Point{0, 10}))
	require.True(t, a.ContainsPoint(Point{5, 5}))
	require.False(t, a.ContainsPoint(Point{-0.001, 5}))

	ok, err := a.Contains(orb.LineString{{1, 1}, {9, 9}})
	require.NoError(t, err)
	require.True(t, ok)

	_, err = a.Contains([]any{"a", 1.0})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestWithinIsInverseOfContains(t *testing.T) {
	boxes := []Envelope{
		Empty(),
		mustNew(t, 0, 0, 10, 10),
		mustNew(t, 2, 2, 5, 5),
		mustNew(t, 8, 8, 12, 12),
		mustNew(t, 3, 3, 3, 3),
	}
	for _, a := range boxes {
		for _, b := range boxes {
			require.Equal(t, b.ContainsEnvelope(a), a.WithinEnvelope(b), "%v within %v", a, b)

			w, err := Within(a, b)
			require.NoError(t, err)
			c, err := Contains(b, a)
			require.NoError(t, err)
			require.Equal(t, c, w)
		}
	}
}

func TestIntersects(t *testing.T) {
	a := mustNew(t, -1, -5, 23, 14)
	require.True(t, a.IntersectsEnvelope(mustNew(t, 0, 3, 7, 4)))

	b := mustNew(t, -1, 5, 23, 14)
	require.False(t, b.IntersectsEnvelope(mustNew(t, 0, -3, 7, 4)))

	// touching edges and corners intersect
	c := mustNew(t, 0, 0, 1, 1)
	require.True(t, c.IntersectsEnvelope(mustNew(t, 1, 0, 2, 1)))
	require.True(t, c.IntersectsEnvelope(mustNew(t, 1, 1, 2, 2)))
	require.False(t, c.IntersectsEnvelope(mustNew(t, 1.5, 0, 2, 1)))

	ok, err := Intersects(orb.Point{0.5, 0.5}, [][2]float64{{0, 0}, {1, 1}})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestContainsImpliesIntersects(t *testing.T) {
	boxes := []Envelope{
		mustNew(t, 0, 0, 10, 10),
		mustNew(t, 2, 2, 5, 5),
		mustNew(t, 10, 10, 10, 10),
		mustNew(t, -3, 4, 1, 20),
	}
	for _, a := range boxes {
		for _, b := range boxes {
			if a.ContainsEnvelope(b) {
				require.True(t, a.IntersectsEnvelope(b), "%v contains %v", a, b)
			}
		}
	}
}

func TestEmptyOperandPolicy(t *testing.T) {
	a := mustNew(t, 0, 0, 1, 1)
	e := Empty()

	require.False(t, a.IntersectsEnvelope(e))
	require.False(t, e.IntersectsEnvelope(a))
	require.False(t, e.IntersectsEnvelope(e))

	require.True(t, a.ContainsEnvelope(e))
	require.True(t, e.WithinEnvelope(a))
	require.False(t, e.ContainsEnvelope(a))
	require.False(t, a.WithinEnvelope(e))
	require.True(t, e.ContainsEnvelope(e))
	require.False(t, e.ContainsPoint(Point{0, 0}))
}

func TestPolygon(t *testing.T) {
	p, err := mustNew(t, 0, 0, 2, 1).Polygon()
	require.NoError(t, err)
	require.Equal(t, 1, p.NumLinearRings())
	require.Equal(t, 5, p.LinearRing(0).NumCoords())
	require.InDelta(t, 2.0, p.Area(), 1e-12)

	_, err = Empty().Polygon()
	require.ErrorIs(t, err, ErrEmptyEnvelope)
}

func TestBound(t *testing.T) {
	b, ok := mustNew(t, -1, -2, 3, 4).Bound()
	require.True(t, ok)
	require.Equal(t, orb.Point{-1, -2}, b.Min)
	require.Equal(t, orb.Point{3, 4}, b.Max)

	_, ok = Empty().Bound()
	require.False(t, ok)
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(mustNew(t, 2, -2, 20, 11))
	require.NoError(t, err)
	require.JSONEq(t, `[2,-2,20,11]`, string(b))

	b, err = json.Marshal(Empty())
	require.NoError(t, err)
	require.Equal(t, "null", string(b))

	var e Envelope
	require.NoError(t, json.Unmarshal([]byte(`[1,2,0,3,4,9]`), &e))
	require.Equal(t, mustNew(t, 1, 2, 3, 4), e)

	require.NoError(t, json.Unmarshal([]byte(`null`), &e))
	require.True(t, e.IsEmpty())

	require.ErrorIs(t, json.Unmarshal([]byte(`[1,2,3]`), &e), ErrInvalidInput)
	require.ErrorIs(t, json.Unmarshal([]byte(`[5,0,1,1]`), &e), ErrInvalidArgument)
}
