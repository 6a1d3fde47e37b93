package shp2ch

import (
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Row is a single line feature together with its attributes
type Row interface {
	Geometry() orb.Geometry
	Value(column string) (interface{}, bool)
}

// RowSource iterates over features of single file. All rows of the source share the same schema.
type RowSource interface {
	Name() string
	// Columns returns schema of the source. It is known before any row has been read
	Columns() []string
	// Len returns number of rows (for progress reporting)
	Len() int
	Next() bool
	Row() Row
	// Reset moves the source back to its first row
	Reset() error
	Err() error
	Close() error
}

// SourceOptions controls how files are opened
type SourceOptions struct {
	// Delimiter of text files
	Delimiter rune
	// GeometryColumn is name of the column in text files holding WKT geometry
	GeometryColumn string
}

// DefaultSourceOptions returns options used when nothing has been provided
func DefaultSourceOptions() SourceOptions {
	return SourceOptions{
		Delimiter:      ';',
		GeometryColumn: "geom",
	}
}

// OpenSource opens file and prepares source for it. Implementation is picked by file extension
func OpenSource(filename string, options SourceOptions) (RowSource, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".geojson", ".json":
		return NewGeoJSONSource(filename)
	case ".csv", ".txt":
		return NewCSVSource(filename, options)
	default:
		return nil, errors.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// openSources opens every file. If any file fails then already opened sources are closed
func openSources(filenames []string, options SourceOptions) ([]RowSource, error) {
	sources := make([]RowSource, 0, len(filenames))
	for _, filename := range filenames {
		source, err := OpenSource(filename, options)
		if err != nil {
			closeSources(sources)
			return nil, errors.Wrapf(err, "Can't open source '%s'", filename)
		}
		sources = append(sources, source)
	}
	return sources, nil
}

func closeSources(sources []RowSource) error {
	var firstErr error
	for _, source := range sources {
		if err := source.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "Can't close source '%s'", source.Name())
		}
	}
	return firstErr
}

// hasColumn checks if column exists in the schema of the source
func hasColumn(source RowSource, column string) bool {
	for _, c := range source.Columns() {
		if c == column {
			return true
		}
	}
	return false
}
