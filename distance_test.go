package shp2ch

import (
	"testing"

	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
)

func TestComputeDistanceColumn(t *testing.T) {
	polyline := []GeoPoint{{Lat: 52.0, Lon: 4.0}, {Lat: 52.1, Lon: 4.0}}
	assert.InDelta(t, 0.1, computeDistance(true, 100, 0.001, polyline), 1e-12)
	assert.Equal(t, 250.0, computeDistance(true, 250, 1, polyline))
}

func TestComputeDistancePolyline(t *testing.T) {
	from := GeoPoint{Lat: 52.0, Lon: 4.0}
	mid := []GeoPoint{{Lat: 52.001, Lon: 4.001}, {Lat: 52.002, Lon: 4.001}}
	to := GeoPoint{Lat: 52.003, Lon: 4.003}
	polyline := edgePolyline(from, mid, to)
	assert.Len(t, polyline, 4)

	expected := geo.DistanceHaversine(from.Point(), mid[0].Point()) +
		geo.DistanceHaversine(mid[0].Point(), mid[1].Point()) +
		geo.DistanceHaversine(mid[1].Point(), to.Point())
	assert.InDelta(t, expected, computeDistance(false, 100, 0.001, polyline), 1e-9)

	// Straight segment is shorter than the polyline
	straight := computeDistance(false, 0, 0, edgePolyline(from, nil, to))
	assert.Less(t, straight, expected)
}

func TestHasDistanceColumn(t *testing.T) {
	assert.True(t, NewReader("F", "T", WithDistanceColumn("METERS", 1)).HasDistanceColumn())
	// Zero factor silently disables the column
	assert.False(t, NewReader("F", "T", WithDistanceColumn("METERS", 0)).HasDistanceColumn())
	assert.False(t, NewReader("F", "T", WithDistanceColumn("", 1)).HasDistanceColumn())
	assert.False(t, NewReader("F", "T").HasDistanceColumn())
}
