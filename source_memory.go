package shp2ch

import (
	"github.com/paulmach/orb"
)

// Feature is a line with attributes kept in memory
type Feature struct {
	Geometry   orb.Geometry
	Properties map[string]interface{}
}

func (f *Feature) Value(column string) (interface{}, bool) {
	v, ok := f.Properties[column]
	return v, ok
}

type featureRow struct {
	feature *Feature
}

func (row featureRow) Geometry() orb.Geometry {
	return row.feature.Geometry
}

func (row featureRow) Value(column string) (interface{}, bool) {
	return row.feature.Value(column)
}

// MemorySource serves features which are already in memory
type MemorySource struct {
	name     string
	columns  []string
	features []*Feature
	current  int
}

// NewMemorySource returns source over given features with given schema
func NewMemorySource(name string, columns []string, features []*Feature) *MemorySource {
	return &MemorySource{
		name:     name,
		columns:  columns,
		features: features,
		current:  -1,
	}
}

func (source *MemorySource) Name() string {
	return source.name
}

func (source *MemorySource) Columns() []string {
	return source.columns
}

func (source *MemorySource) Len() int {
	return len(source.features)
}

func (source *MemorySource) Next() bool {
	if source.current+1 >= len(source.features) {
		source.current = len(source.features)
		return false
	}
	source.current++
	return true
}

func (source *MemorySource) Row() Row {
	if source.current < 0 || source.current >= len(source.features) {
		return nil
	}
	return featureRow{feature: source.features[source.current]}
}

func (source *MemorySource) Reset() error {
	source.current = -1
	return nil
}

func (source *MemorySource) Err() error {
	return nil
}

func (source *MemorySource) Close() error {
	return nil
}
