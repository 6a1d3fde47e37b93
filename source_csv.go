package shp2ch

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// CSVSource reads delimited text file where one column holds WKT geometry
// and every other column is an attribute.
type CSVSource struct {
	name           string
	file           *os.File
	reader         *csv.Reader
	delimiter      rune
	header         []string
	columns        []string
	columnIdx      map[string]int
	geometryColumn int
	rowsNum        int
	current        *csvRow
	line           int
	err            error
}

type csvRow struct {
	source   *CSVSource
	record   []string
	geometry orb.Geometry
}

func (row *csvRow) Geometry() orb.Geometry {
	return row.geometry
}

func (row *csvRow) Value(column string) (interface{}, bool) {
	idx, ok := row.source.columnIdx[column]
	if !ok || idx >= len(row.record) {
		return nil, false
	}
	return row.record[idx], true
}

// NewCSVSource opens given file. Header is read right away, rows are counted for progress reporting.
func NewCSVSource(filename string, options SourceOptions) (*CSVSource, error) {
	if options.Delimiter == 0 {
		options.Delimiter = DefaultSourceOptions().Delimiter
	}
	if options.GeometryColumn == "" {
		options.GeometryColumn = DefaultSourceOptions().GeometryColumn
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open file")
	}
	source := &CSVSource{
		name:           filename,
		file:           file,
		delimiter:      options.Delimiter,
		geometryColumn: -1,
		columnIdx:      make(map[string]int),
	}
	err = source.rewind()
	if err != nil {
		file.Close()
		return nil, err
	}
	for idx, column := range source.header {
		if column == options.GeometryColumn {
			source.geometryColumn = idx
			continue
		}
		source.columnIdx[column] = idx
		source.columns = append(source.columns, column)
	}
	if source.geometryColumn < 0 {
		file.Close()
		return nil, &SchemaError{Source: filename, Column: options.GeometryColumn}
	}
	// Count rows
	for {
		_, err := source.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			file.Close()
			return nil, errors.Wrap(err, "Can't read record")
		}
		source.rowsNum++
	}
	err = source.rewind()
	if err != nil {
		file.Close()
		return nil, err
	}
	return source, nil
}

// rewind seeks file to start and skips header
func (source *CSVSource) rewind() error {
	_, err := source.file.Seek(0, io.SeekStart)
	if err != nil {
		return errors.Wrap(err, "Can't repeat seeking")
	}
	source.reader = csv.NewReader(source.file)
	source.reader.Comma = source.delimiter
	source.reader.ReuseRecord = false
	header, err := source.reader.Read()
	if err != nil {
		return errors.Wrap(err, "Can't read header")
	}
	if len(header) > 0 {
		// Excel-like tools like to put BOM at the beginning
		header[0] = trimBOM(header[0])
	}
	source.header = header
	source.current = nil
	source.line = 1
	source.err = nil
	return nil
}

func trimBOM(s string) string {
	if len(s) >= 3 && s[0] == 0xEF && s[1] == 0xBB && s[2] == 0xBF {
		return s[3:]
	}
	return s
}

func (source *CSVSource) Name() string {
	return source.name
}

func (source *CSVSource) Columns() []string {
	return source.columns
}

func (source *CSVSource) Len() int {
	return source.rowsNum
}

func (source *CSVSource) Next() bool {
	if source.err != nil {
		return false
	}
	record, err := source.reader.Read()
	if err == io.EOF {
		source.current = nil
		return false
	}
	source.line++
	if err != nil {
		source.err = errors.Wrapf(err, "Can't read line %d", source.line)
		return false
	}
	var geom orb.Geometry
	if source.geometryColumn < len(record) && record[source.geometryColumn] != "" {
		geom, err = wkt.Unmarshal(record[source.geometryColumn])
		if err != nil {
			source.err = errors.Wrapf(err, "Can't parse WKT on line %d", source.line)
			return false
		}
	}
	source.current = &csvRow{source: source, record: record, geometry: geom}
	return true
}

func (source *CSVSource) Row() Row {
	if source.current == nil {
		return nil
	}
	return source.current
}

func (source *CSVSource) Reset() error {
	return source.rewind()
}

func (source *CSVSource) Err() error {
	return source.err
}

func (source *CSVSource) Close() error {
	return source.file.Close()
}
