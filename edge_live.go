package shp2ch

// LiveEdge is a directed edge. Bidirectional roads are stored as two of them
type LiveEdge struct {
	// Forward is true when the edge follows digitized direction of the line
	Forward  bool
	Distance float32
	Tags     uint32
}

// LiveBuilder builds graph suited for plain traversal
type LiveBuilder struct {
	Vehicle Vehicle
}

// NewLiveBuilder returns builder. Nil vehicle makes every edge bidirectional
func NewLiveBuilder(vehicle Vehicle) *LiveBuilder {
	return &LiveBuilder{Vehicle: vehicle}
}

func (builder *LiveBuilder) AddEdge(graph *Graph[LiveEdge], tagsIndex *TagsIndex, edge EdgeInput) error {
	direction := directionOf(builder.Vehicle, edge.RawTags)
	tagsID := tagsIndex.Add(edge.Tags)
	if direction.Forward() {
		err := graph.AddArc(edge.From, edge.To, LiveEdge{
			Forward:  true,
			Distance: float32(edge.Distance),
			Tags:     tagsID,
		}, edge.Intermediates)
		if err != nil {
			return err
		}
	}
	if direction.Backward() {
		err := graph.AddArc(edge.To, edge.From, LiveEdge{
			Forward:  false,
			Distance: float32(edge.Distance),
			Tags:     tagsID,
		}, edge.Intermediates)
		if err != nil {
			return err
		}
	}
	return nil
}
