// Package merge combines the per-day line features of a single calendar
// day into one multi-part feature.
package merge

import (
	"errors"

	geom "github.com/twpayne/go-geom"

	"github.com/planbiir/walkmap/internal/geojson"
)

// Day merges a run of same-date line features into a single feature.
// A run of one is returned unchanged. Longer runs become a multi-part
// line whose parts keep the input order, with coordTimes carried over
// when the first feature of the run has them.
func Day(run []*geojson.Feature) (*geojson.Feature, error) {
	if len(run) == 0 {
		return nil, errors.New("merging an empty run of features")
	}
	if len(run) == 1 {
		return run[0], nil
	}

	withTimes := run[0].Props.CoordTimes != nil

	parts := make([][]geom.Coord, 0, len(run))
	var times geojson.CoordTimes
	for _, f := range run {
		line, ok := f.Geometry.(*geom.LineString)
		if !ok {
			return nil, geojson.WrapSource(geojson.ErrShapeMismatch, f.Props)
		}
		coords := line.Coords()
		parts = append(parts, coords)

		if withTimes {
			ct := f.Props.CoordTimes
			if len(ct) != 1 || len(ct[0]) != len(coords) {
				return nil, geojson.WrapSource(geojson.ErrLengthMismatch, f.Props)
			}
			times = append(times, ct[0])
		}
	}

	props := run[0].Props
	props.CoordTimes = nil
	if withTimes {
		props.CoordTimes = times
		props.Time = times[0][0]
	}

	merged, err := geojson.NewMultiLine(parts, props)
	if err != nil {
		return nil, geojson.WrapSource(err, run[0].Props)
	}
	return merged, nil
}
