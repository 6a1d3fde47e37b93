package shp2ch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphArcs(t *testing.T) {
	graph := NewGraph[LiveEdge](NewTagsIndex())
	a := graph.AddVertex(52.0, 4.0)
	b := graph.AddVertex(52.1, 4.1)
	c := graph.AddVertex(52.2, 4.2)

	require.NoError(t, graph.AddArc(a, b, LiveEdge{Forward: true, Distance: 10}, nil))
	require.NoError(t, graph.AddArc(b, a, LiveEdge{Forward: false, Distance: 10}, nil))
	require.NoError(t, graph.AddArc(a, c, LiveEdge{Forward: true, Distance: 20}, []GeoPoint{{Lat: 52.1, Lon: 4.15}}))

	assert.Equal(t, 3, graph.VerticesNum())
	assert.Equal(t, 3, graph.ArcsNum())
	assert.Equal(t, []int{0, 2}, graph.OutArcs(a))
	assert.Equal(t, []int{1}, graph.OutArcs(b))
	assert.Empty(t, graph.OutArcs(c))
	assert.Nil(t, graph.OutArcs(100))

	// Adjacency is rebuilt after insertion
	require.NoError(t, graph.AddArc(c, a, LiveEdge{Forward: false, Distance: 20}, nil))
	assert.Equal(t, []int{3}, graph.OutArcs(c))

	err := graph.AddArc(a, 10, LiveEdge{}, nil)
	assert.Error(t, err)
	err = graph.AddArc(10, a, LiveEdge{}, nil)
	assert.Error(t, err)
	assert.Equal(t, 4, graph.ArcsNum())

	_, _, ok := graph.GetVertex(3)
	assert.False(t, ok)
	assert.NotNil(t, graph.TagsIndex())
}
