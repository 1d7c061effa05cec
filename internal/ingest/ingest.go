// Package ingest reads GPX files from a source directory and turns them
// into raw track features. One feature is produced per GPX track, with
// one geometry part per track segment. Waypoints become point features.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tkrajina/gpxgo/gpx"
	geom "github.com/twpayne/go-geom"

	"github.com/planbiir/walkmap/internal/geojson"
)

// ReadDir parses every .gpx file in dir, in lexical filename order, and
// returns the resulting features together with the number of files read.
func ReadDir(dir string) ([]*geojson.Feature, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("reading source directory: %w", err)
	}

	var features []*geojson.Feature
	files := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".gpx") {
			continue
		}
		fs, err := ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, 0, err
		}
		features = append(features, fs...)
		files++
	}
	return features, files, nil
}

// ReadFile parses a single GPX file into features.
func ReadFile(path string) ([]*geojson.Feature, error) {
	doc, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	name := filepath.Base(path)
	var features []*geojson.Feature

	for _, track := range doc.Tracks {
		f, err := trackFeature(name, doc, track)
		if err != nil {
			return nil, err
		}
		if f != nil {
			features = append(features, f)
		}
	}

	for _, wpt := range doc.Waypoints {
		props := geojson.Properties{GPXFile: name}
		if !wpt.Timestamp.IsZero() {
			props.Time = stamp(wpt.Timestamp)
		}
		features = append(features, geojson.NewPoint(wpt.Longitude, wpt.Latitude, props))
	}

	return features, nil
}

func trackFeature(name string, doc *gpx.GPX, track gpx.GPXTrack) (*geojson.Feature, error) {
	var parts [][]geom.Coord
	var times geojson.CoordTimes

	withEle := true
	withTimes := true
	for _, seg := range track.Segments {
		if len(seg.Points) == 0 {
			continue
		}
		for _, p := range seg.Points {
			if !p.Elevation.NotNull() {
				withEle = false
			}
			if p.Timestamp.IsZero() {
				withTimes = false
			}
		}
	}

	for _, seg := range track.Segments {
		if len(seg.Points) == 0 {
			continue
		}
		coords := make([]geom.Coord, 0, len(seg.Points))
		var segTimes []string
		for _, p := range seg.Points {
			c := geom.Coord{p.Longitude, p.Latitude}
			if withEle {
				c = append(c, p.Elevation.Value())
			}
			coords = append(coords, c)
			if withTimes {
				segTimes = append(segTimes, stamp(p.Timestamp))
			}
		}
		parts = append(parts, coords)
		if withTimes {
			times = append(times, segTimes)
		}
	}

	if len(parts) == 0 {
		return nil, nil
	}

	props := geojson.Properties{GPXFile: name}
	if withTimes {
		props.CoordTimes = times
		props.Time = times[0][0]
	} else if ts, ok := firstTimestamp(track); ok {
		props.Time = stamp(ts)
	} else if doc.Time != nil && !doc.Time.IsZero() {
		props.Time = stamp(*doc.Time)
	}

	if len(parts) == 1 {
		f, err := geojson.NewLine(parts[0], props)
		if err != nil {
			return nil, geojson.WrapSource(err, props)
		}
		return f, nil
	}
	f, err := geojson.NewMultiLine(parts, props)
	if err != nil {
		return nil, geojson.WrapSource(err, props)
	}
	return f, nil
}

func firstTimestamp(track gpx.GPXTrack) (time.Time, bool) {
	for _, seg := range track.Segments {
		for _, p := range seg.Points {
			if !p.Timestamp.IsZero() {
				return p.Timestamp, true
			}
		}
	}
	return time.Time{}, false
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
