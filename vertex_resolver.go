package shp2ch

// VertexResolver maps external join identifiers onto dense vertex indices of the graph.
// The first occurrence of an identifier decides the coordinate of the vertex.
type VertexResolver struct {
	nodeToVertex map[int64]uint32
	addVertex    func(lat, lon float32) uint32
}

// NewVertexResolver returns resolver which creates vertices via given function
func NewVertexResolver(addVertex func(lat, lon float32) uint32) *VertexResolver {
	return &VertexResolver{
		nodeToVertex: make(map[int64]uint32),
		addVertex:    addVertex,
	}
}

// Resolve returns vertex for given identifier creating it at given point if the identifier hasn't been seen yet
func (resolver *VertexResolver) Resolve(externalID int64, pt GeoPoint) uint32 {
	if vertex, ok := resolver.nodeToVertex[externalID]; ok {
		return vertex
	}
	vertex := resolver.addVertex(float32(pt.Lat), float32(pt.Lon))
	resolver.nodeToVertex[externalID] = vertex
	return vertex
}

// Lookup returns vertex for given identifier without creating one
func (resolver *VertexResolver) Lookup(externalID int64) (uint32, bool) {
	vertex, ok := resolver.nodeToVertex[externalID]
	return vertex, ok
}

// Len returns number of known identifiers
func (resolver *VertexResolver) Len() int {
	return len(resolver.nodeToVertex)
}
