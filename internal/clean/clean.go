// Package clean drops GPS teleport spikes from track features. A spike
// is an interior point that sits far away from both of its neighbors,
// which on walking tracks only happens when the receiver glitches.
package clean

import (
	"github.com/jftuga/geodist"
	geom "github.com/twpayne/go-geom"

	"github.com/planbiir/walkmap/internal/geojson"
)

const (
	// teleportMeters is the neighbor distance above which an interior
	// point counts as a spike. Nobody walks 200 m between track points.
	teleportMeters = 200.0

	// removedPctGuard caps how much of a part the filter may remove.
	// Crossing it means the track is genuinely sparse, not glitchy,
	// so the part is kept as is.
	removedPctGuard = 20.0
)

// Feature returns a copy of f with teleport spikes removed, along with
// the number of points dropped. Endpoints are never removed. Non-line
// features pass through unchanged.
func Feature(f *geojson.Feature) (*geojson.Feature, int, error) {
	parts := f.Parts()
	if parts == nil {
		return f, 0, nil
	}

	ct := f.Props.CoordTimes
	kept := make([][]geom.Coord, len(parts))
	var keptTimes geojson.CoordTimes
	if ct != nil {
		keptTimes = make(geojson.CoordTimes, len(parts))
	}

	removed := 0
	for i, coords := range parts {
		var times []string
		if ct != nil && i < len(ct) {
			times = ct[i]
		}
		keep := spikeMask(coords)
		dropped := len(coords) - countTrue(keep)
		if pct(dropped, len(coords)) > removedPctGuard {
			// Too many candidates means sparse sampling, not spikes.
			kept[i] = coords
			if ct != nil {
				keptTimes[i] = times
			}
			continue
		}
		removed += dropped
		kept[i] = filterCoords(coords, keep)
		if ct != nil {
			keptTimes[i] = filterStrings(times, keep)
		}
	}

	if removed == 0 {
		return f, 0, nil
	}

	props := f.Props
	props.CoordTimes = keptTimes

	var out *geojson.Feature
	var err error
	if f.IsLine() {
		out, err = geojson.NewLine(kept[0], props)
	} else {
		out, err = geojson.NewMultiLine(kept, props)
	}
	if err != nil {
		return nil, 0, geojson.WrapSource(err, f.Props)
	}
	return out, removed, nil
}

// spikeMask marks which points to keep. An interior point goes when it
// is more than teleportMeters from both neighbors.
func spikeMask(coords []geom.Coord) []bool {
	keep := make([]bool, len(coords))
	for i := range keep {
		keep[i] = true
	}
	for i := 1; i < len(coords)-1; i++ {
		toPrev := meters(coords[i-1], coords[i])
		toNext := meters(coords[i], coords[i+1])
		if toPrev > teleportMeters && toNext > teleportMeters {
			keep[i] = false
		}
	}
	return keep
}

func meters(a, b geom.Coord) float64 {
	_, km := geodist.HaversineDistance(
		geodist.Coord{Lat: a[1], Lon: a[0]},
		geodist.Coord{Lat: b[1], Lon: b[0]},
	)
	return km * 1000
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func countTrue(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}

func filterCoords(coords []geom.Coord, keep []bool) []geom.Coord {
	out := make([]geom.Coord, 0, len(coords))
	for i, c := range coords {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}

func filterStrings(s []string, keep []bool) []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s))
	for i, v := range s {
		if keep[i] {
			out = append(out, v)
		}
	}
	return out
}
