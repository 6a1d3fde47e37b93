package shp2ch

import (
	"fmt"

	"github.com/paulmach/orb"
)

// SchemaError is returned when a required column is missing from the attribute schema of a source
type SchemaError struct {
	Source string
	Column string
}

func (err *SchemaError) Error() string {
	return fmt.Sprintf("No column with name '%s' found in '%s'", err.Column, err.Source)
}

// GeometryTypeError is returned when a row carries something else than a line
type GeometryTypeError struct {
	Source   string
	Row      int
	Geometry orb.Geometry
}

func (err *GeometryTypeError) Error() string {
	if err.Geometry == nil {
		return fmt.Sprintf("Row %d of '%s' has no geometry", err.Row, err.Source)
	}
	if ls, ok := err.Geometry.(orb.LineString); ok {
		return fmt.Sprintf("Row %d of '%s' has line with %d points", err.Row, err.Source, len(ls))
	}
	return fmt.Sprintf("Row %d of '%s' has geometry of type '%s', expected 'LineString'", err.Row, err.Source, err.Geometry.GeoJSONType())
}

// AttributeError is returned when an attribute value can't be interpreted (e.g. join identifier is not an integer)
type AttributeError struct {
	Source string
	Column string
	Value  interface{}
	Err    error
}

func (err *AttributeError) Error() string {
	return fmt.Sprintf("Can't parse value '%v' of column '%s' in '%s': %v", err.Value, err.Column, err.Source, err.Err)
}

func (err *AttributeError) Cause() error {
	return err.Err
}

// SpeedParseError is returned by vehicle profiles when speed can't be extracted from tags
type SpeedParseError struct {
	Key   string
	Value string
}

func (err *SpeedParseError) Error() string {
	if err.Value == "" {
		return fmt.Sprintf("No maximum speed was found at key '%s'", err.Key)
	}
	return fmt.Sprintf("Can't parse maximum speed '%s' at key '%s'", err.Value, err.Key)
}
