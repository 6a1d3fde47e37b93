package shp2ch

import (
	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// ExportToCH converts graph into contraction hierarchies graph.
// Vertex labels are dense vertex indices. Every allowed direction becomes separate edge.
// Contraction itself (PrepareContractionHierarchies) is up to the caller.
func ExportToCH(graph *Graph[CHEdge]) (*ch.Graph, error) {
	chGraph := ch.Graph{}
	for i := range graph.vertices {
		err := chGraph.CreateVertex(int64(i))
		if err != nil {
			return nil, errors.Wrapf(err, "Can't create vertex %d", i)
		}
	}
	for _, arc := range graph.arcs {
		if arc.Data.CanMoveForward() {
			err := chGraph.AddEdge(int64(arc.From), int64(arc.To), float64(arc.Data.ForwardWeight))
			if err != nil {
				return nil, errors.Wrapf(err, "Can't add edge %d -> %d", arc.From, arc.To)
			}
		}
		if arc.Data.CanMoveBackward() {
			err := chGraph.AddEdge(int64(arc.To), int64(arc.From), float64(arc.Data.BackwardWeight))
			if err != nil {
				return nil, errors.Wrapf(err, "Can't add edge %d -> %d", arc.To, arc.From)
			}
		}
	}
	return &chGraph, nil
}
