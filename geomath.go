package shp2ch

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// GeoPoint representation of point on Earth
type GeoPoint struct {
	Lat float64
	Lon float64
}

// String returns pretty printed value for for GeoPoint
func (gp GeoPoint) String() string {
	return fmt.Sprintf("Lon: %f | Lat: %f", gp.Lon, gp.Lat)
}

// Point returns orb representation of GeoPoint (X == Lon, Y == Lat)
func (gp GeoPoint) Point() orb.Point {
	return orb.Point{gp.Lon, gp.Lat}
}

// geoPoint32 returns point with coordinates rounded to single precision.
// Vertices are stored in single precision, so shape points are too.
func geoPoint32(pt orb.Point) GeoPoint {
	return GeoPoint{
		Lat: float64(float32(pt.Lat())),
		Lon: float64(float32(pt.Lon())),
	}
}

// sphericalLength returns length for given line (meters)
func sphericalLength(line []GeoPoint) float64 {
	totalLength := 0.0
	if len(line) < 2 {
		return totalLength
	}
	for i := 1; i < len(line); i++ {
		totalLength += geo.DistanceHaversine(line[i-1].Point(), line[i].Point())
	}
	return totalLength
}

// toLineString returns orb representation of given line
func toLineString(pts []GeoPoint) orb.LineString {
	line := make(orb.LineString, len(pts))
	for i := range pts {
		line[i] = pts[i].Point()
	}
	return line
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(pts []GeoPoint) []GeoPoint {
	inputLen := len(pts)
	output := make([]GeoPoint, inputLen)
	for i, n := range pts {
		j := inputLen - i - 1
		output[j] = n
	}
	return output
}
