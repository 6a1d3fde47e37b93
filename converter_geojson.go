package shp2ch

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(pts []GeoPoint) (string, error) {
	pts2d := make([][]float64, len(pts))
	for i := range pts {
		pts2d[i] = []float64{pts[i].Lon, pts[i].Lat}
	}
	b, err := geojson.NewLineStringGeometry(pts2d).MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "Can't convert geometry to geojson format")
	}
	return string(b), nil
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt GeoPoint) (string, error) {
	b, err := geojson.NewPointGeometry([]float64{pt.Lon, pt.Lat}).MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "Can't convert geometry to geojson format")
	}
	return string(b), nil
}
