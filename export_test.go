package shp2ch

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTestCSV(t *testing.T, fname string) [][]string {
	t.Helper()
	file, err := os.Open(fname)
	require.NoError(t, err)
	defer file.Close()
	reader := csv.NewReader(file)
	reader.Comma = ';'
	records, err := reader.ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportLiveToCSV(t *testing.T) {
	reader := testReader(WithUsefulKeys("NAME"))
	graph, _, err := ReadGraph[LiveEdge](context.Background(), reader, sharedEndpointSources(), NewLiveBuilder(nil))
	require.NoError(t, err)

	fname := filepath.Join(t.TempDir(), "graph.csv")
	require.NoError(t, ExportToCSV(graph, fname, GEOM_WKT))

	edges := readTestCSV(t, fname)
	require.Len(t, edges, graph.ArcsNum()+1)
	assert.Equal(t, []string{"edge_id", "from_vertex_id", "to_vertex_id", "weight", "forward", "tags_id", "geom"}, edges[0])
	assert.Equal(t, "true", edges[1][4])
	assert.Equal(t, "false", edges[2][4])
	// Reversed arc is written in direction of travel
	assert.True(t, strings.HasPrefix(edges[1][6], "LINESTRING(4 52,"))
	assert.True(t, strings.HasSuffix(edges[2][6], ",4 52)"))

	vertices := readTestCSV(t, strings.TrimSuffix(fname, ".csv")+"_vertices.csv")
	assert.Len(t, vertices, graph.VerticesNum()+1)
	assert.Equal(t, "POINT(4 52)", vertices[1][3])

	tags := readTestCSV(t, strings.TrimSuffix(fname, ".csv")+"_tags.csv")
	assert.Equal(t, [][]string{{"tags_id", "key", "value"}, {"0", "NAME", "Road"}}, tags)
}

func TestExportContractedToCSV(t *testing.T) {
	reader := testReader(WithVehicle(NewCar(testOnewayRule, "")))
	graph, _, err := ReadGraph[CHEdge](context.Background(), reader, []RowSource{
		NewMemorySource("oneway", testColumns, []*Feature{
			lineFeature(1, 2, "FT", 100, pointsOf(4.0, 52.0, 4.0, 52.001)...),
		}),
	}, NewContractedBuilder(reader.Vehicle()))
	require.NoError(t, err)

	fname := filepath.Join(t.TempDir(), "graph.csv")
	require.NoError(t, ExportToCSV(graph, fname, GEOM_GEOJSON))
	edges := readTestCSV(t, fname)
	require.Len(t, edges, 2)
	assert.Equal(t, "forward_weight", edges[0][3])
	assert.Equal(t, "-1", edges[1][4])
	assert.True(t, strings.HasPrefix(edges[1][6], `{"type":"LineString"`))
}

func TestExportToCH(t *testing.T) {
	reader := testReader(WithVehicle(NewCar(testOnewayRule, "")))
	graph, _, err := ReadGraph[CHEdge](context.Background(), reader, []RowSource{
		NewMemorySource("chain", testColumns, []*Feature{
			lineFeature(1, 2, "", 100, pointsOf(4.0, 52.0, 4.0, 52.001)...),
			lineFeature(2, 3, "FT", 100, pointsOf(4.0, 52.001, 4.0, 52.002)...),
		}),
	}, NewContractedBuilder(reader.Vehicle()))
	require.NoError(t, err)

	chGraph, err := ExportToCH(graph)
	require.NoError(t, err)
	assert.Len(t, chGraph.Vertices, 3)

	chGraph.PrepareContractionHierarchies()
	cost, path := chGraph.ShortestPath(0, 2)
	assert.Equal(t, []int64{0, 1, 2}, path)
	expected := float64(graph.Arcs()[0].Data.ForwardWeight + graph.Arcs()[1].Data.ForwardWeight)
	assert.InDelta(t, expected, cost, 1e-3)

	// Second road is oneway
	_, path = chGraph.ShortestPath(2, 0)
	assert.Empty(t, path)
}
