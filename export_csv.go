package shp2ch

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

type GeomFormat uint16

const (
	GEOM_WKT = GeomFormat(iota + 1)
	GEOM_GEOJSON
)

func (iotaIdx GeomFormat) String() string {
	return [...]string{"wkt", "geojson"}[iotaIdx-1]
}

// ParseGeomFormat returns format by its name
func ParseGeomFormat(s string) (GeomFormat, error) {
	switch strings.ToLower(s) {
	case "wkt", "":
		return GEOM_WKT, nil
	case "geojson":
		return GEOM_GEOJSON, nil
	}
	return 0, errors.Errorf("Unknown geometry format '%s'. Expected values: wkt / geojson", s)
}

// CSVEdge is edge data which could be written as CSV
type CSVEdge interface {
	csvHeader() []string
	csvFields() []string
	// digitized returns true if arc goes the same way the source line has been digitized
	digitized() bool
	tagsID() uint32
}

func (edge LiveEdge) csvHeader() []string {
	return []string{"weight", "forward"}
}

func (edge LiveEdge) csvFields() []string {
	return []string{
		fmt.Sprintf("%f", edge.Distance),
		fmt.Sprintf("%t", edge.Forward),
	}
}

func (edge LiveEdge) digitized() bool {
	return edge.Forward
}

func (edge LiveEdge) tagsID() uint32 {
	return edge.Tags
}

func (edge CHEdge) csvHeader() []string {
	return []string{"forward_weight", "backward_weight"}
}

func (edge CHEdge) csvFields() []string {
	return []string{
		chWeightString(edge.ForwardWeight),
		chWeightString(edge.BackwardWeight),
	}
}

func (edge CHEdge) digitized() bool {
	return true
}

func (edge CHEdge) tagsID() uint32 {
	return edge.Tags
}

func chWeightString(weight float32) string {
	if weight == CH_NO_WEIGHT {
		return "-1"
	}
	return fmt.Sprintf("%f", weight)
}

// ExportToCSV writes graph into three files: if file name is 'map.csv' then 'map.csv' (edges),
// 'map_vertices.csv' and 'map_tags.csv' are produced
func ExportToCSV[E CSVEdge](graph *Graph[E], fname string, format GeomFormat) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameEdges := fnameParts[0] + ".csv"
	fnameVertices := fnameParts[0] + "_vertices.csv"
	fnameTags := fnameParts[0] + "_tags.csv"

	err := exportEdgesToCSV(graph, fnameEdges, format)
	if err != nil {
		return errors.Wrap(err, "Can't export edges")
	}
	err = exportVerticesToCSV(graph, fnameVertices, format)
	if err != nil {
		return errors.Wrap(err, "Can't export vertices")
	}
	err = exportTagsToCSV(graph.tagsIndex, fnameTags)
	if err != nil {
		return errors.Wrap(err, "Can't export tags")
	}
	return nil
}

// arcGeometry returns full line of the arc in direction of travel
func arcGeometry[E CSVEdge](graph *Graph[E], arc Arc[E]) []GeoPoint {
	if arc.Data.digitized() {
		return edgePolyline(graph.vertexPoint(arc.From), arc.Shape, graph.vertexPoint(arc.To))
	}
	// Shape is stored in digitized order, so the line starts at target vertex
	return reverseLine(edgePolyline(graph.vertexPoint(arc.To), arc.Shape, graph.vertexPoint(arc.From)))
}

func prepareLinestring(pts []GeoPoint, format GeomFormat) (string, error) {
	if format == GEOM_GEOJSON {
		return PrepareGeoJSONLinestring(pts)
	}
	return PrepareWKTLinestring(pts), nil
}

func preparePoint(pt GeoPoint, format GeomFormat) (string, error) {
	if format == GEOM_GEOJSON {
		return PrepareGeoJSONPoint(pt)
	}
	return PrepareWKTPoint(pt), nil
}

func exportEdgesToCSV[E CSVEdge](graph *Graph[E], fname string, format GeomFormat) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	var zero E
	header := []string{"edge_id", "from_vertex_id", "to_vertex_id"}
	header = append(header, zero.csvHeader()...)
	header = append(header, "tags_id", "geom")
	err = writer.Write(header)
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for i, arc := range graph.arcs {
		geomStr, err := prepareLinestring(arcGeometry(graph, arc), format)
		if err != nil {
			return err
		}
		record := []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", arc.From),
			fmt.Sprintf("%d", arc.To),
		}
		record = append(record, arc.Data.csvFields()...)
		record = append(record, fmt.Sprintf("%d", arc.Data.tagsID()), geomStr)
		err = writer.Write(record)
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	writer.Flush()
	return writer.Error()
}

func exportVerticesToCSV[E any](graph *Graph[E], fname string, format GeomFormat) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"vertex_id", "longitude", "latitude", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for i := range graph.vertices {
		pt := graph.vertexPoint(uint32(i))
		geomStr, err := preparePoint(pt, format)
		if err != nil {
			return err
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%f", pt.Lon),
			fmt.Sprintf("%f", pt.Lat),
			geomStr,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write vertex")
		}
	}
	writer.Flush()
	return writer.Error()
}

func exportTagsToCSV(tagsIndex *TagsIndex, fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"tags_id", "key", "value"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for id := 0; id < tagsIndex.Len(); id++ {
		tags, _ := tagsIndex.Get(uint32(id))
		for _, tag := range tags {
			err = writer.Write([]string{fmt.Sprintf("%d", id), tag.Key, tag.Value})
			if err != nil {
				return errors.Wrap(err, "Can't write tag")
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
