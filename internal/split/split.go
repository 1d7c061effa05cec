// Package split breaks raw track features into per-day line features.
// Multi-part geometries are split into one feature per part first, then
// each part is cut wherever its point timestamps cross a day boundary.
package split

import (
	geom "github.com/twpayne/go-geom"

	"github.com/planbiir/walkmap/internal/geojson"
	"github.com/planbiir/walkmap/internal/seq"
)

// Parts expands a multi-part feature into one single-part feature per
// geometry part. Single-part features pass through unchanged. When the
// feature carries coordTimes, they must line up with the geometry part
// for part and the declared time must match the first timestamp.
func Parts(f *geojson.Feature) ([]*geojson.Feature, error) {
	parts := f.Parts()
	if len(parts) <= 1 {
		return []*geojson.Feature{f}, nil
	}

	ct := f.Props.CoordTimes
	if ct != nil {
		if len(ct) != len(parts) {
			return nil, geojson.WrapSource(geojson.ErrLengthMismatch, f.Props)
		}
		if f.Props.Time != "" && f.Props.Time != ct[0][0] {
			return nil, geojson.WrapSource(geojson.ErrTimeMismatch, f.Props)
		}
	}

	out := make([]*geojson.Feature, 0, len(parts))
	for i, coords := range parts {
		props := f.Props
		props.CoordTimes = nil
		if ct != nil {
			if len(ct[i]) != len(coords) {
				return nil, geojson.WrapSource(geojson.ErrLengthMismatch, f.Props)
			}
			props.CoordTimes = geojson.CoordTimes{ct[i]}
			props.Time = ct[i][0]
		}
		part, err := geojson.NewLine(coords, props)
		if err != nil {
			return nil, geojson.WrapSource(err, f.Props)
		}
		out = append(out, part)
	}
	return out, nil
}

// ByDate cuts a single-part line feature into one feature per calendar
// day, using its coordTimes. A feature without coordTimes stays whole
// and gets its date from the declared time, or from the filename when
// no time is known.
func ByDate(f *geojson.Feature) ([]*geojson.Feature, error) {
	if _, ok := f.Geometry.(*geom.LineString); !ok {
		return nil, geojson.WrapSource(geojson.ErrShapeMismatch, f.Props)
	}

	coords := f.Parts()[0]
	ct := f.Props.CoordTimes
	if ct == nil {
		props := f.Props
		props.Date = deriveDate(props.Time, props.GPXFile)
		whole, err := geojson.NewLine(coords, props)
		if err != nil {
			return nil, geojson.WrapSource(err, f.Props)
		}
		return []*geojson.Feature{whole}, nil
	}

	if len(ct) != 1 || len(ct[0]) != len(coords) {
		return nil, geojson.WrapSource(geojson.ErrLengthMismatch, f.Props)
	}
	times := ct[0]

	sameDay := func(a, b string) bool { return dayOf(a) == dayOf(b) }
	var splitErr error
	out := seq.GroupRuns(times, sameDay, func(lo, hi int, _ []string) *geojson.Feature {
		props := f.Props
		props.CoordTimes = geojson.CoordTimes{times[lo:hi]}
		props.Time = times[lo]
		props.Date = dayOf(times[lo])
		day, err := geojson.NewLine(coords[lo:hi], props)
		if err != nil && splitErr == nil {
			splitErr = geojson.WrapSource(err, f.Props)
		}
		return day
	})
	if splitErr != nil {
		return nil, splitErr
	}
	return out, nil
}

// dayOf extracts the calendar date from an RFC 3339 timestamp.
func dayOf(ts string) string {
	if len(ts) < 10 {
		return ts
	}
	return ts[:10]
}

// deriveDate prefers the declared time and falls back to a date-prefixed
// filename such as 2017-06-10-loop.gpx.
func deriveDate(ts, gpxFile string) string {
	if ts != "" {
		return dayOf(ts)
	}
	if len(gpxFile) >= 10 && looksLikeDate(gpxFile[:10]) {
		return gpxFile[:10]
	}
	return ""
}

func looksLikeDate(s string) bool {
	for i, r := range s {
		if i == 4 || i == 7 {
			if r != '-' {
				return false
			}
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
