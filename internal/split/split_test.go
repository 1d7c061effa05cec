package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	geom "github.com/twpayne/go-geom"

	"github.com/planbiir/walkmap/internal/geojson"
)

func line(t *testing.T, coords []geom.Coord, props geojson.Properties) *geojson.Feature {
	t.Helper()
	f, err := geojson.NewLine(coords, props)
	require.NoError(t, err)
	return f
}

func multi(t *testing.T, parts [][]geom.Coord, props geojson.Properties) *geojson.Feature {
	t.Helper()
	f, err := geojson.NewMultiLine(parts, props)
	require.NoError(t, err)
	return f
}

func TestPartsPassthrough(t *testing.T) {
	f := line(t, []geom.Coord{{8.1, 47.1}, {8.2, 47.2}}, geojson.Properties{GPXFile: "a.gpx"})
	out, err := Parts(f)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Same(t, f, out[0])
}

func TestPartsSplitsWithCoordTimes(t *testing.T) {
	f := multi(t, [][]geom.Coord{
		{{8.1, 47.1}, {8.2, 47.2}},
		{{8.3, 47.3}, {8.4, 47.4}, {8.5, 47.5}},
	}, geojson.Properties{
		GPXFile: "a.gpx",
		Time:    "2017-06-10T08:00:00Z",
		CoordTimes: geojson.CoordTimes{
			{"2017-06-10T08:00:00Z", "2017-06-10T08:01:00Z"},
			{"2017-06-10T14:00:00Z", "2017-06-10T14:01:00Z", "2017-06-10T14:02:00Z"},
		},
	})

	out, err := Parts(f)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.True(t, out[0].IsLine())
	assert.Equal(t, "2017-06-10T08:00:00Z", out[0].Props.Time)
	assert.Equal(t, "2017-06-10T14:00:00Z", out[1].Props.Time)
	assert.Equal(t, geojson.CoordTimes{{"2017-06-10T14:00:00Z", "2017-06-10T14:01:00Z", "2017-06-10T14:02:00Z"}}, out[1].Props.CoordTimes)
	assert.Equal(t, "a.gpx", out[1].Props.GPXFile)
}

func TestPartsOuterLengthMismatch(t *testing.T) {
	f := multi(t, [][]geom.Coord{
		{{8.1, 47.1}, {8.2, 47.2}},
		{{8.3, 47.3}, {8.4, 47.4}},
	}, geojson.Properties{
		GPXFile:    "a.gpx",
		CoordTimes: geojson.CoordTimes{{"2017-06-10T08:00:00Z", "2017-06-10T08:01:00Z"}},
	})

	_, err := Parts(f)
	require.Error(t, err)
	assert.ErrorIs(t, err, geojson.ErrLengthMismatch)
	assert.Contains(t, err.Error(), "a.gpx")
}

func TestPartsInnerLengthMismatch(t *testing.T) {
	f := multi(t, [][]geom.Coord{
		{{8.1, 47.1}, {8.2, 47.2}},
		{{8.3, 47.3}, {8.4, 47.4}},
	}, geojson.Properties{
		CoordTimes: geojson.CoordTimes{
			{"2017-06-10T08:00:00Z", "2017-06-10T08:01:00Z"},
			{"2017-06-10T14:00:00Z"},
		},
	})

	_, err := Parts(f)
	assert.ErrorIs(t, err, geojson.ErrLengthMismatch)
}

func TestPartsDeclaredTimeMismatch(t *testing.T) {
	f := multi(t, [][]geom.Coord{
		{{8.1, 47.1}, {8.2, 47.2}},
		{{8.3, 47.3}, {8.4, 47.4}},
	}, geojson.Properties{
		Time: "2017-06-10T07:00:00Z",
		CoordTimes: geojson.CoordTimes{
			{"2017-06-10T08:00:00Z", "2017-06-10T08:01:00Z"},
			{"2017-06-10T14:00:00Z", "2017-06-10T14:01:00Z"},
		},
	})

	_, err := Parts(f)
	assert.ErrorIs(t, err, geojson.ErrTimeMismatch)
}

func TestByDateSingleDay(t *testing.T) {
	f := line(t, []geom.Coord{{8.1, 47.1}, {8.2, 47.2}}, geojson.Properties{
		Time:       "2017-06-10T08:00:00Z",
		CoordTimes: geojson.CoordTimes{{"2017-06-10T08:00:00Z", "2017-06-10T08:01:00Z"}},
	})

	out, err := ByDate(f)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2017-06-10", out[0].Props.Date)
}

func TestByDateMidnightCrossing(t *testing.T) {
	f := line(t, []geom.Coord{
		{8.1, 47.1}, {8.2, 47.2}, {8.3, 47.3}, {8.4, 47.4},
	}, geojson.Properties{
		Time: "2017-06-10T23:58:00Z",
		CoordTimes: geojson.CoordTimes{{
			"2017-06-10T23:58:00Z", "2017-06-10T23:59:00Z",
			"2017-06-11T00:01:00Z", "2017-06-11T00:02:00Z",
		}},
	})

	out, err := ByDate(f)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "2017-06-10", out[0].Props.Date)
	assert.Equal(t, "2017-06-11", out[1].Props.Date)
	assert.Equal(t, "2017-06-11T00:01:00Z", out[1].Props.Time)
	require.Len(t, out[0].Parts()[0], 2)
	require.Len(t, out[1].Parts()[0], 2)
	assert.Equal(t, geom.Coord{8.3, 47.3}, out[1].Parts()[0][0])
}

func TestByDateWithoutCoordTimes(t *testing.T) {
	f := line(t, []geom.Coord{{8.1, 47.1}, {8.2, 47.2}}, geojson.Properties{
		Time: "2017-06-10T08:00:00Z",
	})

	out, err := ByDate(f)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2017-06-10", out[0].Props.Date)
}

func TestByDateFilenameFallback(t *testing.T) {
	f := line(t, []geom.Coord{{8.1, 47.1}, {8.2, 47.2}}, geojson.Properties{
		GPXFile: "2017-06-10-loop.gpx",
	})

	out, err := ByDate(f)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2017-06-10", out[0].Props.Date)
}

func TestByDateNoDateSource(t *testing.T) {
	f := line(t, []geom.Coord{{8.1, 47.1}, {8.2, 47.2}}, geojson.Properties{
		GPXFile: "loop.gpx",
	})

	out, err := ByDate(f)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Props.Date)
}

func TestByDateRejectsMultiLine(t *testing.T) {
	f := multi(t, [][]geom.Coord{
		{{8.1, 47.1}, {8.2, 47.2}},
		{{8.3, 47.3}, {8.4, 47.4}},
	}, geojson.Properties{GPXFile: "a.gpx"})

	_, err := ByDate(f)
	assert.ErrorIs(t, err, geojson.ErrShapeMismatch)
}

func TestByDateMisalignedCoordTimes(t *testing.T) {
	f := line(t, []geom.Coord{{8.1, 47.1}, {8.2, 47.2}}, geojson.Properties{
		CoordTimes: geojson.CoordTimes{{"2017-06-10T08:00:00Z"}},
	})

	_, err := ByDate(f)
	assert.ErrorIs(t, err, geojson.ErrLengthMismatch)
}
