// Package pipeline wires the whole build together: read GPX sources,
// optionally scrub teleport spikes, split tracks into per-day lines,
// merge each day into one feature and enrich the result.
package pipeline

import (
	"sort"

	geom "github.com/twpayne/go-geom"

	"github.com/planbiir/walkmap/internal/clean"
	"github.com/planbiir/walkmap/internal/geojson"
	"github.com/planbiir/walkmap/internal/ingest"
	"github.com/planbiir/walkmap/internal/merge"
	"github.com/planbiir/walkmap/internal/seq"
	"github.com/planbiir/walkmap/internal/split"
)

// Options controls optional pipeline stages.
type Options struct {
	// Clean enables the teleport spike filter.
	Clean bool
}

// Stats summarizes one build.
type Stats struct {
	Files         int
	Tracks        int
	DroppedShapes int
	RemovedPoints int
	Days          int
	TotalMeters   int64
}

// Build runs the pipeline over every GPX file in dir and returns the
// finished collection. Any assertion failure along the way aborts the
// whole build; there is no partial output.
func Build(dir string, opts Options) (*geojson.FeatureCollection, Stats, error) {
	var stats Stats

	raw, files, err := ingest.ReadDir(dir)
	if err != nil {
		return nil, stats, err
	}
	stats.Files = files

	var days []*geojson.Feature
	for _, f := range raw {
		if f.Parts() != nil {
			stats.Tracks++
		}

		if opts.Clean {
			cleaned, removed, err := clean.Feature(f)
			if err != nil {
				return nil, stats, err
			}
			stats.RemovedPoints += removed
			f = cleaned
		}

		parts, err := split.Parts(f)
		if err != nil {
			return nil, stats, err
		}
		for _, part := range parts {
			if _, ok := part.Geometry.(*geom.LineString); !ok {
				stats.DroppedShapes++
				continue
			}
			dayParts, err := split.ByDate(part)
			if err != nil {
				return nil, stats, err
			}
			days = append(days, dayParts...)
		}
	}

	// A stable order keyed on time makes the grouping below, and the
	// output as a whole, deterministic.
	sort.SliceStable(days, func(i, j int) bool {
		return sortKey(days[i]) < sortKey(days[j])
	})

	sameDate := func(a, b *geojson.Feature) bool {
		return a.Props.Date != "" && a.Props.Date == b.Props.Date
	}
	var mergeErr error
	merged := seq.GroupRuns(days, sameDate, func(lo, hi int, s []*geojson.Feature) *geojson.Feature {
		day, err := merge.Day(s[lo:hi])
		if err != nil && mergeErr == nil {
			mergeErr = err
		}
		return day
	})
	if mergeErr != nil {
		return nil, stats, mergeErr
	}

	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(merged))}
	for _, f := range merged {
		enriched := geojson.Enrich(f)
		if enriched.Props.Distance != nil {
			stats.TotalMeters += int64(*enriched.Props.Distance)
		}
		fc.Features = append(fc.Features, enriched)
	}
	stats.Days = len(fc.Features)
	return fc, stats, nil
}

func sortKey(f *geojson.Feature) string {
	if f.Props.Time != "" {
		return f.Props.Time
	}
	return f.Props.Date
}
