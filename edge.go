package shp2ch

import (
	"github.com/paulmach/osm"
)

// EdgeInput is everything known about single line feature once both of its endpoints are resolved
type EdgeInput struct {
	From          uint32
	To            uint32
	Intermediates []GeoPoint
	// Tags which survived filtering. They are stored in the tags index
	Tags osm.Tags
	// RawTags are all attributes of the feature. Direction is resolved against them
	RawTags  osm.Tags
	Distance float64
}

// EdgeBuilder turns resolved line features into graph edges
type EdgeBuilder[E any] interface {
	AddEdge(graph *Graph[E], tagsIndex *TagsIndex, edge EdgeInput) error
}

// directionOf resolves direction using vehicle. No vehicle means both directions
func directionOf(vehicle Vehicle, tags osm.Tags) Direction {
	if vehicle == nil {
		return DIRECTION_BOTH
	}
	return vehicle.IsOneWay(tags)
}
