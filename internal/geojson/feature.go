// Package geojson defines the typed track-feature model shared by every
// pipeline stage, its validation errors, and the GeoJSON serialization of
// the finished walk index.
package geojson

import (
	"encoding/json"
	"fmt"

	geom "github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"
)

// CoordTimes holds per-point RFC 3339 timestamps, one inner slice per
// geometry part. Nil means the recording carried no usable per-point times.
// Whenever present it must stay aligned 1:1 with the coordinates of the
// corresponding part.
type CoordTimes [][]string

// Properties is the property bag attached to every feature. Optional fields
// are zero when absent; Date is assigned during the date split and Distance
// during enrichment.
type Properties struct {
	GPXFile    string
	Time       string
	Date       string
	CoordTimes CoordTimes
	Distance   *int
}

// Feature pairs a geometry with its walk properties and, once enriched, a
// bounding box. Geometry is one of *geom.Point, *geom.LineString or
// *geom.MultiLineString; the go-geom layout carries the coordinate
// dimensionality, so every coordinate of one geometry shares it.
type Feature struct {
	Geometry geom.T
	BBox     []float64
	Props    Properties
}

// FeatureCollection is the serializable result of a pipeline run.
type FeatureCollection struct {
	Features []*Feature
}

// NewLine builds a single-part line feature from coords, which must all
// share one dimensionality (2-D or 3-D).
func NewLine(coords []geom.Coord, props Properties) (*Feature, error) {
	layout, err := layoutFor(coords)
	if err != nil {
		return nil, err
	}
	ls, err := geom.NewLineString(layout).SetCoords(coords)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrDimensionMismatch)
	}
	return &Feature{Geometry: ls, Props: props}, nil
}

// NewMultiLine builds a multi-part line feature. All parts must share one
// dimensionality; recordings that disagree (say, one carries elevation and
// one does not) cannot form a single geometry.
func NewMultiLine(parts [][]geom.Coord, props Properties) (*Feature, error) {
	var layout geom.Layout
	for i, part := range parts {
		l, err := layoutFor(part)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			layout = l
			continue
		}
		if l != layout && len(part) > 0 {
			return nil, fmt.Errorf("part %d is %d-dimensional, part 0 is %d-dimensional: %w",
				i, l.Stride(), layout.Stride(), ErrDimensionMismatch)
		}
	}
	mls, err := geom.NewMultiLineString(layout).SetCoords(parts)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrDimensionMismatch)
	}
	return &Feature{Geometry: mls, Props: props}, nil
}

// NewPoint builds a 2-D point feature. Points never survive the line filter;
// they exist so dropping them is an explicit pipeline stage.
func NewPoint(lon, lat float64, props Properties) *Feature {
	pt := geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{lon, lat})
	return &Feature{Geometry: pt, Props: props}
}

// Parts returns the feature's coordinate parts: one slice for a single line,
// one per part for a multi-part line, nil for anything else.
func (f *Feature) Parts() [][]geom.Coord {
	switch g := f.Geometry.(type) {
	case *geom.LineString:
		return [][]geom.Coord{g.Coords()}
	case *geom.MultiLineString:
		return g.Coords()
	}
	return nil
}

// IsLine reports whether the feature is a single-part line.
func (f *Feature) IsLine() bool {
	_, ok := f.Geometry.(*geom.LineString)
	return ok
}

func layoutFor(coords []geom.Coord) (geom.Layout, error) {
	if len(coords) == 0 {
		return geom.XY, nil
	}
	dim := len(coords[0])
	for i, c := range coords {
		if len(c) != dim {
			return geom.NoLayout, fmt.Errorf("coordinate %d has %d dimensions, coordinate 0 has %d: %w",
				i, len(c), dim, ErrDimensionMismatch)
		}
	}
	switch dim {
	case 2:
		return geom.XY, nil
	case 3:
		return geom.XYZ, nil
	}
	return geom.NoLayout, fmt.Errorf("unsupported coordinate dimension %d: %w", dim, ErrDimensionMismatch)
}

type propertiesJSON struct {
	GPXFile    string `json:"gpxFileName,omitempty"`
	Time       string `json:"time,omitempty"`
	Date       string `json:"date,omitempty"`
	CoordTimes any    `json:"coordTimes,omitempty"`
	Distance   *int   `json:"distance,omitempty"`
}

// MarshalJSON renders the feature as a GeoJSON Feature. coordTimes keeps the
// nesting of the geometry: a flat timestamp array for a LineString, one
// array per part for a MultiLineString.
func (f *Feature) MarshalJSON() ([]byte, error) {
	rawGeom, err := geomjson.Marshal(f.Geometry)
	if err != nil {
		return nil, fmt.Errorf("failed to encode geometry: %w", err)
	}

	var coordTimes any
	if len(f.Props.CoordTimes) > 0 {
		if f.IsLine() && len(f.Props.CoordTimes) == 1 {
			coordTimes = f.Props.CoordTimes[0]
		} else {
			coordTimes = f.Props.CoordTimes
		}
	}

	return json.Marshal(struct {
		Type       string          `json:"type"`
		BBox       []float64       `json:"bbox,omitempty"`
		Geometry   json.RawMessage `json:"geometry"`
		Properties propertiesJSON  `json:"properties"`
	}{
		Type:     "Feature",
		BBox:     f.BBox,
		Geometry: rawGeom,
		Properties: propertiesJSON{
			GPXFile:    f.Props.GPXFile,
			Time:       f.Props.Time,
			Date:       f.Props.Date,
			CoordTimes: coordTimes,
			Distance:   f.Props.Distance,
		},
	})
}

// MarshalJSON renders the collection with a features array that is never
// null, so an empty source directory still produces a valid document.
func (fc *FeatureCollection) MarshalJSON() ([]byte, error) {
	features := fc.Features
	if features == nil {
		features = []*Feature{}
	}
	return json.Marshal(struct {
		Type     string     `json:"type"`
		Features []*Feature `json:"features"`
	}{Type: "FeatureCollection", Features: features})
}
