package shp2ch

import (
	"os"
	"sort"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// GeoJSONSource reads features of GeoJSON FeatureCollection.
// Whole collection is kept in memory, so reset is free.
type GeoJSONSource struct {
	*MemorySource
}

// NewGeoJSONSource reads given file
func NewGeoJSONSource(filename string) (*GeoJSONSource, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read file")
	}
	return parseGeoJSONSource(filename, data)
}

func parseGeoJSONSource(name string, data []byte) (*GeoJSONSource, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "Can't unmarshal feature collection")
	}
	columnsSeen := make(map[string]struct{})
	columns := []string{}
	features := make([]*Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		for key := range f.Properties {
			if _, ok := columnsSeen[key]; !ok {
				columnsSeen[key] = struct{}{}
				columns = append(columns, key)
			}
		}
		features = append(features, &Feature{
			Geometry:   geometryFromGeoJSON(f.Geometry),
			Properties: f.Properties,
		})
	}
	sort.Strings(columns)
	return &GeoJSONSource{
		MemorySource: NewMemorySource(name, columns, features),
	}, nil
}

// geometryFromGeoJSON converts GeoJSON geometry into orb one.
// Only lines are converted for real: anything else is kept as point or collection so the caller could report it
func geometryFromGeoJSON(g *geojson.Geometry) orb.Geometry {
	if g == nil {
		return nil
	}
	switch {
	case g.IsLineString():
		line := make(orb.LineString, 0, len(g.LineString))
		for _, pt := range g.LineString {
			if len(pt) < 2 {
				continue
			}
			line = append(line, orb.Point{pt[0], pt[1]})
		}
		return line
	case g.IsMultiLineString():
		mls := make(orb.MultiLineString, 0, len(g.MultiLineString))
		for _, part := range g.MultiLineString {
			line := make(orb.LineString, 0, len(part))
			for _, pt := range part {
				if len(pt) < 2 {
					continue
				}
				line = append(line, orb.Point{pt[0], pt[1]})
			}
			mls = append(mls, line)
		}
		return mls
	case g.IsPoint() && len(g.Point) >= 2:
		return orb.Point{g.Point[0], g.Point[1]}
	}
	return orb.Collection{}
}
