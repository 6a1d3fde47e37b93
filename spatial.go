package shp2ch

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/tidwall/rtree"
)

// VertexIndex is a spatial index over vertices of the graph
type VertexIndex struct {
	tree     rtree.RTreeG[uint32]
	vertices []Vertex
}

// NewVertexIndex indexes given vertices. Index of vertex in the slice is used as its identifier
func NewVertexIndex(vertices []Vertex) *VertexIndex {
	index := &VertexIndex{
		vertices: vertices,
	}
	for i, v := range vertices {
		pt := [2]float64{float64(v.Lon), float64(v.Lat)}
		index.tree.Insert(pt, pt, uint32(i))
	}
	return index
}

// Nearest returns vertex closest to given point within given radius (meters) and distance to it.
// Search box wraps around the antimeridian.
func (index *VertexIndex) Nearest(lat, lon, radiusMeters float64) (uint32, float64, bool) {
	query := orb.Point{lon, lat}
	dLat := radiusMeters / metersPerDegree
	cosLat := math.Cos(lat * math.Pi / 180.0)
	dLon := 180.0
	if cosLat > 1e-9 {
		dLon = math.Min(180.0, dLat/cosLat)
	}

	found := false
	best := uint32(0)
	bestDist := math.Inf(1)
	iter := func(_, _ [2]float64, vertex uint32) bool {
		v := index.vertices[vertex]
		dist := geo.DistanceHaversine(query, orb.Point{float64(v.Lon), float64(v.Lat)})
		if dist <= radiusMeters && (!found || dist < bestDist || (dist == bestDist && vertex < best)) {
			best = vertex
			bestDist = dist
			found = true
		}
		return true
	}
	for _, box := range lonRanges(lon-dLon, lon+dLon) {
		index.tree.Search([2]float64{box[0], lat - dLat}, [2]float64{box[1], lat + dLat}, iter)
	}
	if !found {
		return 0, 0, false
	}
	return best, bestDist, true
}

// lonRanges splits longitude range into parts lying inside [-180; 180]
func lonRanges(minLon, maxLon float64) [][2]float64 {
	if maxLon-minLon >= 360.0 {
		return [][2]float64{{-180.0, 180.0}}
	}
	switch {
	case minLon < -180.0:
		return [][2]float64{{-180.0, maxLon}, {minLon + 360.0, 180.0}}
	case maxLon > 180.0:
		return [][2]float64{{minLon, 180.0}, {-180.0, maxLon - 360.0}}
	}
	return [][2]float64{{minLon, maxLon}}
}

// Len returns number of indexed vertices
func (index *VertexIndex) Len() int {
	return index.tree.Len()
}

// metersPerDegree along a meridian
const metersPerDegree = orb.EarthRadius * math.Pi / 180.0

// VertexIndex returns spatial index over current vertices of the graph
func (graph *Graph[E]) VertexIndex() *VertexIndex {
	return NewVertexIndex(graph.vertices)
}
