// Package trips loads the hand-maintained trip metadata index and
// cross-checks it against the generated track collection.
package trips

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/planbiir/walkmap/internal/geojson"
	"github.com/planbiir/walkmap/internal/seq"
)

// Trip is one day's worth of hand-written metadata.
type Trip struct {
	Date     string   `json:"-"`
	Title    string   `json:"title"`
	Distance float64  `json:"distanceKm,omitempty"`
	People   []string `json:"people,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Link     string   `json:"link,omitempty"`
}

// Index holds trips sorted by date.
type Index struct {
	trips []Trip
	dates []string
}

// Load reads a JSON file mapping ISO dates to trip metadata.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trip index: %w", err)
	}

	byDate := make(map[string]Trip)
	if err := json.Unmarshal(data, &byDate); err != nil {
		return nil, fmt.Errorf("parsing trip index: %w", err)
	}

	idx := &Index{
		trips: make([]Trip, 0, len(byDate)),
		dates: make([]string, 0, len(byDate)),
	}
	for date, trip := range byDate {
		trip.Date = date
		idx.trips = append(idx.trips, trip)
	}
	sort.Slice(idx.trips, func(i, j int) bool { return idx.trips[i].Date < idx.trips[j].Date })
	for _, trip := range idx.trips {
		idx.dates = append(idx.dates, trip.Date)
	}
	return idx, nil
}

func (idx *Index) Len() int { return len(idx.trips) }

// Lookup returns the trip recorded for date, if any.
func (idx *Index) Lookup(date string) (Trip, bool) {
	i := seq.SearchStrings(idx.dates, date)
	if i < len(idx.dates) && idx.dates[i] == date {
		return idx.trips[i], true
	}
	return Trip{}, false
}

// Coverage compares the index against a built collection. It returns
// the dates of track features without metadata and the dates of trips
// without a track.
func (idx *Index) Coverage(fc *geojson.FeatureCollection) (missingMeta, missingTracks []string) {
	seen := make(map[string]bool)
	for _, f := range fc.Features {
		date := f.Props.Date
		if date == "" || seen[date] {
			continue
		}
		seen[date] = true
		if _, ok := idx.Lookup(date); !ok {
			missingMeta = append(missingMeta, date)
		}
	}
	sort.Strings(missingMeta)

	for _, date := range idx.dates {
		if !seen[date] {
			missingTracks = append(missingTracks, date)
		}
	}
	return missingMeta, missingTracks
}
