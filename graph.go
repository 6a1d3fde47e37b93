package shp2ch

import (
	"github.com/pkg/errors"
)

// Vertex is a node of routing graph
type Vertex struct {
	Lat float32
	Lon float32
}

// Arc is a directed edge of the graph.
// Shape holds intermediate points in the order they were digitized, regardless of travel direction.
type Arc[E any] struct {
	From  uint32
	To    uint32
	Data  E
	Shape []GeoPoint
}

// Graph is a directed graph with dense vertex indices
type Graph[E any] struct {
	vertices  []Vertex
	arcs      []Arc[E]
	tagsIndex *TagsIndex

	outArcs [][]int
}

// NewGraph returns empty graph which edges refer to sets of tags in given index
func NewGraph[E any](tagsIndex *TagsIndex) *Graph[E] {
	if tagsIndex == nil {
		tagsIndex = NewTagsIndex()
	}
	return &Graph[E]{
		vertices:  make([]Vertex, 0),
		arcs:      make([]Arc[E], 0),
		tagsIndex: tagsIndex,
	}
}

// AddVertex creates new vertex and returns its index
func (graph *Graph[E]) AddVertex(lat, lon float32) uint32 {
	graph.vertices = append(graph.vertices, Vertex{Lat: lat, Lon: lon})
	graph.outArcs = nil
	return uint32(len(graph.vertices) - 1)
}

// GetVertex returns coordinates of the vertex
func (graph *Graph[E]) GetVertex(vertex uint32) (float32, float32, bool) {
	if int(vertex) >= len(graph.vertices) {
		return 0, 0, false
	}
	v := graph.vertices[vertex]
	return v.Lat, v.Lon, true
}

// vertexPoint returns coordinates of existing vertex as GeoPoint
func (graph *Graph[E]) vertexPoint(vertex uint32) GeoPoint {
	v := graph.vertices[vertex]
	return GeoPoint{Lat: float64(v.Lat), Lon: float64(v.Lon)}
}

// AddArc inserts directed edge. Both vertices must exist.
func (graph *Graph[E]) AddArc(from, to uint32, data E, shape []GeoPoint) error {
	if int(from) >= len(graph.vertices) {
		return errors.Errorf("Vertex %d doesn't exist", from)
	}
	if int(to) >= len(graph.vertices) {
		return errors.Errorf("Vertex %d doesn't exist", to)
	}
	graph.arcs = append(graph.arcs, Arc[E]{
		From:  from,
		To:    to,
		Data:  data,
		Shape: shape,
	})
	graph.outArcs = nil
	return nil
}

// VerticesNum returns number of vertices
func (graph *Graph[E]) VerticesNum() int {
	return len(graph.vertices)
}

// ArcsNum returns number of directed edges
func (graph *Graph[E]) ArcsNum() int {
	return len(graph.arcs)
}

// Vertices returns all vertices. Index in the slice is the vertex index
func (graph *Graph[E]) Vertices() []Vertex {
	return graph.vertices
}

// Arcs returns all edges in order of insertion
func (graph *Graph[E]) Arcs() []Arc[E] {
	return graph.arcs
}

// OutArcs returns indices (in Arcs()) of edges starting at given vertex
func (graph *Graph[E]) OutArcs(vertex uint32) []int {
	if int(vertex) >= len(graph.vertices) {
		return nil
	}
	if graph.outArcs == nil {
		graph.outArcs = make([][]int, len(graph.vertices))
		for i, arc := range graph.arcs {
			graph.outArcs[arc.From] = append(graph.outArcs[arc.From], i)
		}
	}
	return graph.outArcs[vertex]
}

// TagsIndex returns index of tags edges refer to
func (graph *Graph[E]) TagsIndex() *TagsIndex {
	return graph.tagsIndex
}
