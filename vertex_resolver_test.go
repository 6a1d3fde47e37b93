package shp2ch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexResolver(t *testing.T) {
	graph := NewGraph[LiveEdge](nil)
	resolver := NewVertexResolver(graph.AddVertex)

	v42 := resolver.Resolve(42, GeoPoint{Lat: 52.0, Lon: 4.0})
	v43 := resolver.Resolve(43, GeoPoint{Lat: 52.1, Lon: 4.1})
	again := resolver.Resolve(42, GeoPoint{Lat: 60.0, Lon: 10.0})

	assert.Equal(t, uint32(0), v42)
	assert.Equal(t, uint32(1), v43)
	assert.Equal(t, v42, again)
	assert.Equal(t, 2, resolver.Len())
	assert.Equal(t, 2, graph.VerticesNum())

	// First occurrence wins
	lat, lon, ok := graph.GetVertex(v42)
	require.True(t, ok)
	assert.Equal(t, float32(52.0), lat)
	assert.Equal(t, float32(4.0), lon)

	vertex, ok := resolver.Lookup(43)
	assert.True(t, ok)
	assert.Equal(t, v43, vertex)
	_, ok = resolver.Lookup(44)
	assert.False(t, ok)
}

func TestVertexResolverNegativeIdentifiers(t *testing.T) {
	graph := NewGraph[CHEdge](nil)
	resolver := NewVertexResolver(graph.AddVertex)
	a := resolver.Resolve(-1, GeoPoint{})
	b := resolver.Resolve(1, GeoPoint{})
	assert.NotEqual(t, a, b)
}
