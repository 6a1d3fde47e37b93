package shp2ch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestGeoJSON(t *testing.T, dir, name string) string {
	t.Helper()
	fc := geojson.NewFeatureCollection()
	first := geojson.NewLineStringFeature([][]float64{{4.0, 52.0}, {4.001, 52.001}, {4.002, 52.002}})
	first.SetProperty("F_JNCTID", 42)
	first.SetProperty("T_JNCTID", 43)
	first.SetProperty("ONEWAY", "FT")
	fc.AddFeature(first)
	second := geojson.NewLineStringFeature([][]float64{{4.0, 52.0}, {4.0, 52.003}})
	second.SetProperty("F_JNCTID", 42)
	second.SetProperty("T_JNCTID", 44)
	second.SetProperty("NAME", "Dorpsstraat")
	fc.AddFeature(second)
	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	fname := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fname, data, 0644))
	return fname
}

func writeTestCSV(t *testing.T, dir, name string) string {
	t.Helper()
	content := "\xEF\xBB\xBFF_JNCTID;T_JNCTID;ONEWAY;geom\n" +
		"42;43;FT;LINESTRING(4 52,4.001 52.001,4.002 52.002)\n" +
		"42;44;;LINESTRING(4 52,4 52.003)\n"
	fname := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))
	return fname
}

func TestGeoJSONSource(t *testing.T) {
	fname := writeTestGeoJSON(t, t.TempDir(), "roads.geojson")
	source, err := OpenSource(fname, DefaultSourceOptions())
	require.NoError(t, err)
	defer source.Close()

	assert.Equal(t, []string{"F_JNCTID", "NAME", "ONEWAY", "T_JNCTID"}, source.Columns())
	assert.Equal(t, 2, source.Len())

	require.True(t, source.Next())
	row := source.Row()
	line, ok := row.Geometry().(orb.LineString)
	require.True(t, ok)
	assert.Len(t, line, 3)
	value, ok := row.Value("F_JNCTID")
	require.True(t, ok)
	assert.Equal(t, 42.0, value)
	_, ok = row.Value("NAME")
	assert.False(t, ok)

	require.True(t, source.Next())
	assert.False(t, source.Next())
	require.NoError(t, source.Reset())
	assert.True(t, source.Next())
	assert.NoError(t, source.Err())
}

func TestGeoJSONGeometryKinds(t *testing.T) {
	assert.Nil(t, geometryFromGeoJSON(nil))
	assert.Equal(t, orb.Point{4, 52}, geometryFromGeoJSON(geojson.NewPointGeometry([]float64{4, 52})))
	mls := geometryFromGeoJSON(geojson.NewMultiLineStringGeometry([][]float64{{4, 52}, {5, 53}}))
	assert.IsType(t, orb.MultiLineString{}, mls)
	polygon := geometryFromGeoJSON(geojson.NewPolygonGeometry([][][]float64{{{4, 52}, {5, 53}, {4, 53}, {4, 52}}}))
	assert.Equal(t, orb.Collection{}, polygon)
}

func TestCSVSource(t *testing.T) {
	fname := writeTestCSV(t, t.TempDir(), "roads.csv")
	source, err := OpenSource(fname, DefaultSourceOptions())
	require.NoError(t, err)
	defer source.Close()

	assert.Equal(t, []string{"F_JNCTID", "T_JNCTID", "ONEWAY"}, source.Columns())
	assert.Equal(t, 2, source.Len())

	ids := []interface{}{}
	for source.Next() {
		value, ok := source.Row().Value("T_JNCTID")
		require.True(t, ok)
		ids = append(ids, value)
		_, ok = source.Row().Geometry().(orb.LineString)
		assert.True(t, ok)
	}
	require.NoError(t, source.Err())
	assert.Equal(t, []interface{}{"43", "44"}, ids)

	require.NoError(t, source.Reset())
	require.True(t, source.Next())
	value, _ := source.Row().Value("ONEWAY")
	assert.Equal(t, "FT", value)
}

func TestCSVSourceMissingGeometry(t *testing.T) {
	fname := writeTestCSV(t, t.TempDir(), "roads.csv")
	_, err := NewCSVSource(fname, SourceOptions{Delimiter: ';', GeometryColumn: "wkt"})
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "wkt", schemaErr.Column)
}

func TestCSVSourceBadWKT(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(fname, []byte("a;b;geom\n1;2;LINESTRING(oops)\n"), 0644))
	source, err := NewCSVSource(fname, DefaultSourceOptions())
	require.NoError(t, err)
	defer source.Close()
	assert.False(t, source.Next())
	assert.Error(t, source.Err())
}

func TestOpenSourceUnknownExtension(t *testing.T) {
	_, err := OpenSource("roads.shp", DefaultSourceOptions())
	assert.Error(t, err)
}

func TestReadFromPath(t *testing.T) {
	dir := t.TempDir()
	writeTestGeoJSON(t, dir, "a_nw.geojson")
	writeTestCSV(t, dir, "b_nw.csv")

	reader := testReader(WithVehicle(NewCar(testOnewayRule, "")))
	graph, stats, err := ReadLive(context.Background(), reader, dir, "*_nw.*")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 3, graph.VerticesNum())
	// Each file: oneway road (1 arc) + two-way road (2 arcs)
	assert.Equal(t, 6, graph.ArcsNum())

	contracted, _, err := ReadContracted(context.Background(), reader, dir, "*_nw.*", METRIC_DISTANCE)
	require.NoError(t, err)
	assert.Equal(t, 4, contracted.ArcsNum())
}

func TestReadFromPathEmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeTestGeoJSON(t, dir, "a_nw.geojson")
	data, err := geojson.NewFeatureCollection().MarshalJSON()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_nw.geojson"), data, 0644))

	empty, err := OpenSource(filepath.Join(dir, "b_nw.geojson"), DefaultSourceOptions())
	require.NoError(t, err)
	assert.Empty(t, empty.Columns())
	assert.Zero(t, empty.Len())
	require.NoError(t, empty.Close())

	reader := testReader(WithVehicle(NewCar(testOnewayRule, "")))
	graph, stats, err := ReadLive(context.Background(), reader, dir, "*_nw.geojson")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 3, graph.VerticesNum())
	assert.Equal(t, 3, graph.ArcsNum())
}

func TestReadEmptySourceWithSchema(t *testing.T) {
	// Header without join columns is still an error even when there are no rows
	bad := NewMemorySource("header_only", []string{"NAME"}, nil)
	_, _, err := ReadGraph[LiveEdge](context.Background(), testReader(), []RowSource{bad}, NewLiveBuilder(nil))
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "header_only", schemaErr.Source)
}
