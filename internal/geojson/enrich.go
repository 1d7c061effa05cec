package geojson

import (
	"math"

	"github.com/jftuga/geodist"
	geom "github.com/twpayne/go-geom"
)

// Enrich returns a copy of f carrying its bounding box and total distance.
// Non-line features pass through unchanged, with neither attached.
func Enrich(f *Feature) *Feature {
	switch f.Geometry.(type) {
	case *geom.LineString, *geom.MultiLineString:
	default:
		return f
	}

	out := *f
	out.BBox = bbox(f.Geometry)
	d := Distance(f.Geometry)
	out.Props.Distance = &d
	return &out
}

// Distance returns the great-circle length of g in meters, rounded to the
// nearest integer. Rounding happens once, over the summed parts.
func Distance(g geom.T) int {
	return int(math.Round(Meters(g)))
}

// Meters returns the unrounded great-circle length of g: the sum of
// pairwise haversine distances between consecutive points within each part,
// summed across parts. Empty and single-point parts contribute zero, as do
// non-line geometries.
func Meters(g geom.T) float64 {
	switch t := g.(type) {
	case *geom.LineString:
		return lineMeters(t.Coords())
	case *geom.MultiLineString:
		total := 0.0
		for _, part := range t.Coords() {
			total += lineMeters(part)
		}
		return total
	}
	return 0
}

func lineMeters(coords []geom.Coord) float64 {
	total := 0.0
	for i := 1; i < len(coords); i++ {
		a := geodist.Coord{Lat: coords[i-1][1], Lon: coords[i-1][0]}
		b := geodist.Coord{Lat: coords[i][1], Lon: coords[i][0]}
		_, km := geodist.HaversineDistance(a, b)
		total += km * 1000
	}
	return total
}

// bbox returns [min…, max…] per layout dimension: [minLon, minLat, maxLon,
// maxLat] for 2-D geometries, with the altitude range spliced in for 3-D
// ones. Empty geometries carry no box.
func bbox(g geom.T) []float64 {
	if len(g.FlatCoords()) == 0 {
		return nil
	}
	bounds := g.Bounds()
	stride := g.Layout().Stride()
	out := make([]float64, 0, 2*stride)
	for dim := 0; dim < stride; dim++ {
		out = append(out, bounds.Min(dim))
	}
	for dim := 0; dim < stride; dim++ {
		out = append(out, bounds.Max(dim))
	}
	return out
}
