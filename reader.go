package shp2ch

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Reader converts line features into routing graph in two passes: vertices first, then edges
type Reader struct {
	nodeFromColumn      string
	nodeToColumn        string
	distanceColumn      string
	distanceFactor      float64
	usefulKeys          []string
	filter              KeyFilter
	vehicle             Vehicle
	skipInvalidGeometry bool
	sourceOptions       SourceOptions
	logger              *zap.Logger
}

// BuildStats summarizes single build
type BuildStats struct {
	Files                 int
	Rows                  int
	Vertices              int
	Arcs                  int
	SkippedUnresolved     int
	SkippedGeometry       int
	SkippedNotTraversable int
	Elapsed               time.Duration
}

func (stats *BuildStats) String() string {
	return fmt.Sprintf("files: %d, rows: %d, vertices: %d, arcs: %d, skipped (unresolved: %d, geometry: %d, not traversable: %d), elapsed: %v",
		stats.Files, stats.Rows, stats.Vertices, stats.Arcs, stats.SkippedUnresolved, stats.SkippedGeometry, stats.SkippedNotTraversable, stats.Elapsed)
}

func (reader *Reader) String() string {
	vehicleName := "none"
	if reader.vehicle != nil {
		vehicleName = reader.vehicle.UniqueName()
	}
	return fmt.Sprintf(`
Shape reader parameters:
	node_from_column: '%s'
	node_to_column: '%s'
	distance_column: '%s'
	distance_factor: %f
	useful_keys: '%s'
	vehicle: '%s'
	skip invalid geometry?: %t
	`,
		reader.nodeFromColumn,
		reader.nodeToColumn,
		reader.distanceColumn,
		reader.distanceFactor,
		strings.Join(reader.usefulKeys, ","),
		vehicleName,
		reader.skipInvalidGeometry,
	)
}

// NewReader returns reader which takes join identifiers from given columns
func NewReader(nodeFromColumn, nodeToColumn string, options ...func(*Reader)) *Reader {
	reader := &Reader{
		nodeFromColumn: nodeFromColumn,
		nodeToColumn:   nodeToColumn,
		filter:         keepAllKeys,
		sourceOptions:  DefaultSourceOptions(),
		logger:         zap.NewNop(),
	}
	for _, option := range options {
		option(reader)
	}
	return reader
}

// WithDistanceColumn makes reader take distance from given column multiplied by factor (1 = meters, 1000 = kilometers).
// Zero factor disables the column.
func WithDistanceColumn(column string, factor float64) func(*Reader) {
	return func(reader *Reader) {
		reader.distanceColumn = column
		reader.distanceFactor = factor
	}
}

// WithUsefulKeys limits attributes kept as edge metadata. Empty list keeps everything
func WithUsefulKeys(keys ...string) func(*Reader) {
	return func(reader *Reader) {
		reader.usefulKeys = keys
		reader.filter = UsefulKeys(keys...)
	}
}

// WithKeyFilter sets arbitrary attribute filter
func WithKeyFilter(filter KeyFilter) func(*Reader) {
	return func(reader *Reader) {
		if filter == nil {
			filter = keepAllKeys
		}
		reader.filter = filter
	}
}

// WithVehicle sets profile used to check whether edge could be traversed at all
func WithVehicle(vehicle Vehicle) func(*Reader) {
	return func(reader *Reader) {
		reader.vehicle = vehicle
	}
}

// WithSkipInvalidGeometry makes reader skip (and count) rows which are not lines instead of failing
func WithSkipInvalidGeometry(skip bool) func(*Reader) {
	return func(reader *Reader) {
		reader.skipInvalidGeometry = skip
	}
}

// WithSourceOptions sets options used to open files
func WithSourceOptions(options SourceOptions) func(*Reader) {
	return func(reader *Reader) {
		reader.sourceOptions = options
	}
}

// WithLogger sets logger for progress reporting
func WithLogger(logger *zap.Logger) func(*Reader) {
	return func(reader *Reader) {
		if logger == nil {
			logger = zap.NewNop()
		}
		reader.logger = logger
	}
}

// NodeFromColumn returns column with identifier of the first node
func (reader *Reader) NodeFromColumn() string {
	return reader.nodeFromColumn
}

// NodeToColumn returns column with identifier of the last node
func (reader *Reader) NodeToColumn() string {
	return reader.nodeToColumn
}

// HasDistanceColumn returns true if both distance column and non-zero factor are set
func (reader *Reader) HasDistanceColumn() bool {
	return reader.distanceColumn != "" && reader.distanceFactor != 0
}

// Vehicle returns configured profile (could be nil)
func (reader *Reader) Vehicle() Vehicle {
	return reader.vehicle
}

// ReadLive discovers files and builds graph for plain traversal
func ReadLive(ctx context.Context, reader *Reader, path, searchPattern string) (*Graph[LiveEdge], *BuildStats, error) {
	return ReadGraphFromPath[LiveEdge](ctx, reader, path, searchPattern, NewLiveBuilder(reader.vehicle))
}

// ReadContracted discovers files and builds graph prepared for contraction hierarchies
func ReadContracted(ctx context.Context, reader *Reader, path, searchPattern string, metric Metric) (*Graph[CHEdge], *BuildStats, error) {
	builder := NewContractedBuilder(reader.vehicle)
	builder.Metric = metric
	return ReadGraphFromPath[CHEdge](ctx, reader, path, searchPattern, builder)
}

// ReadGraphFromPath discovers files matching the pattern, opens them and builds graph.
// Every opened file is closed on return.
func ReadGraphFromPath[E any](ctx context.Context, reader *Reader, path, searchPattern string, builder EdgeBuilder[E]) (graph *Graph[E], stats *BuildStats, err error) {
	files, err := FindFiles(path, searchPattern)
	if err != nil {
		return nil, nil, err
	}
	reader.logger.Sugar().Infof("Found %d file(s) in '%s'", len(files), path)
	sources, err := openSources(files, reader.sourceOptions)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		closeErr := closeSources(sources)
		if err == nil && closeErr != nil {
			graph, stats, err = nil, nil, closeErr
		}
	}()
	return ReadGraph[E](ctx, reader, sources, builder)
}

// ReadGraph builds graph from given sources. Sources are not closed.
func ReadGraph[E any](ctx context.Context, reader *Reader, sources []RowSource, builder EdgeBuilder[E]) (*Graph[E], *BuildStats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if builder == nil {
		return nil, nil, errors.New("Edge builder must be provided")
	}
	logger := reader.logger.Sugar()
	st := time.Now()

	err := reader.validateSchemas(sources)
	if err != nil {
		return nil, nil, err
	}

	tagsIndex := NewTagsIndex()
	graph := NewGraph[E](tagsIndex)
	resolver := NewVertexResolver(graph.AddVertex)
	stats := &BuildStats{Files: len(sources)}

	logger.Infof("Reading vertices...")
	for sourceIdx, source := range sources {
		err := reader.readVertices(ctx, sourceIdx, sources, resolver, stats)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Can't read vertices from '%s'", source.Name())
		}
	}
	logger.Infof("Done in %v. Vertices: %d", time.Since(st), graph.VerticesNum())

	est := time.Now()
	logger.Infof("Reading edges...")
	for sourceIdx, source := range sources {
		err := source.Reset()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Can't reset source '%s'", source.Name())
		}
		err = readEdges(ctx, reader, sourceIdx, sources, resolver, graph, tagsIndex, builder, stats)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "Can't read edges from '%s'", source.Name())
		}
	}
	stats.Vertices = graph.VerticesNum()
	stats.Arcs = graph.ArcsNum()
	stats.Elapsed = time.Since(st)
	logger.Infof("Done in %v. Arcs: %d, tag sets: %d", time.Since(est), graph.ArcsNum(), tagsIndex.Len())
	if stats.SkippedUnresolved > 0 {
		logger.Warnf("%d row(s) skipped since their endpoints haven't been resolved", stats.SkippedUnresolved)
	}
	if stats.SkippedGeometry > 0 {
		logger.Warnf("%d row(s) skipped since their geometry is not a line", stats.SkippedGeometry)
	}
	return graph, stats, nil
}

// validateSchemas checks that every source has required columns. It runs once per source before any row is touched.
// Empty source without schema (e.g. GeoJSON collection with no features) adds nothing and is not checked.
func (reader *Reader) validateSchemas(sources []RowSource) error {
	required := []string{reader.nodeFromColumn, reader.nodeToColumn}
	if reader.HasDistanceColumn() {
		required = append(required, reader.distanceColumn)
	}
	for _, source := range sources {
		if source.Len() == 0 && len(source.Columns()) == 0 {
			continue
		}
		for _, column := range required {
			if !hasColumn(source, column) {
				return &SchemaError{Source: source.Name(), Column: column}
			}
		}
	}
	return nil
}

func (reader *Reader) readVertices(ctx context.Context, sourceIdx int, sources []RowSource, resolver *VertexResolver, stats *BuildStats) error {
	source := sources[sourceIdx]
	prog := newProgress(reader.logger.Sugar(), "Reading vertices", sourceIdx, len(sources), source.Len())
	rowIdx := 0
	for source.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := source.Row()
		line, err := rowLine(source, row, rowIdx)
		rowIdx++
		if err != nil {
			if reader.skipInvalidGeometry {
				stats.SkippedGeometry++
				prog.step()
				continue
			}
			return err
		}
		fromID, err := rowInt64(source, row, reader.nodeFromColumn)
		if err != nil {
			return err
		}
		toID, err := rowInt64(source, row, reader.nodeToColumn)
		if err != nil {
			return err
		}
		resolver.Resolve(fromID, geoPoint32(line[0]))
		resolver.Resolve(toID, geoPoint32(line[len(line)-1]))
		stats.Rows++
		prog.step()
	}
	return source.Err()
}

// readEdges is a function (not a method) since methods can't have type parameters
func readEdges[E any](ctx context.Context, reader *Reader, sourceIdx int, sources []RowSource, resolver *VertexResolver, graph *Graph[E], tagsIndex *TagsIndex, builder EdgeBuilder[E], stats *BuildStats) error {
	source := sources[sourceIdx]
	columns := source.Columns()
	hasDistanceColumn := reader.HasDistanceColumn()
	prog := newProgress(reader.logger.Sugar(), "Reading edges", sourceIdx, len(sources), source.Len())
	rowIdx := 0
	for source.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := source.Row()
		line, err := rowLine(source, row, rowIdx)
		rowIdx++
		if err != nil {
			if reader.skipInvalidGeometry {
				// Already counted during vertices pass
				prog.step()
				continue
			}
			return err
		}
		fromID, err := rowInt64(source, row, reader.nodeFromColumn)
		if err != nil {
			return err
		}
		toID, err := rowInt64(source, row, reader.nodeToColumn)
		if err != nil {
			return err
		}
		fromVertex, okFrom := resolver.Lookup(fromID)
		toVertex, okTo := resolver.Lookup(toID)
		if !okFrom || !okTo {
			stats.SkippedUnresolved++
			prog.step()
			continue
		}

		rawTags := TagsFromRow(columns, row)
		if reader.vehicle != nil && !reader.vehicle.CanTraverse(rawTags) {
			stats.SkippedNotTraversable++
			prog.step()
			continue
		}

		intermediates := make([]GeoPoint, 0, len(line)-2)
		for idx := 1; idx < len(line)-1; idx++ {
			intermediates = append(intermediates, geoPoint32(line[idx]))
		}

		rawDistance := 0.0
		if hasDistanceColumn {
			rawDistance, err = rowFloat64(source, row, reader.distanceColumn)
			if err != nil {
				return err
			}
		}
		polyline := edgePolyline(graph.vertexPoint(fromVertex), intermediates, graph.vertexPoint(toVertex))
		distance := computeDistance(hasDistanceColumn, rawDistance, reader.distanceFactor, polyline)

		err = builder.AddEdge(graph, tagsIndex, EdgeInput{
			From:          fromVertex,
			To:            toVertex,
			Intermediates: intermediates,
			Tags:          filterTags(rawTags, reader.filter),
			RawTags:       rawTags,
			Distance:      distance,
		})
		if err != nil {
			return errors.Wrapf(err, "Can't add edge %d -> %d", fromID, toID)
		}
		prog.step()
	}
	return source.Err()
}

// rowLine returns geometry of the row if it is a line with at least two points
func rowLine(source RowSource, row Row, rowIdx int) (orb.LineString, error) {
	var geom orb.Geometry
	if row != nil {
		geom = row.Geometry()
	}
	line, ok := geom.(orb.LineString)
	if !ok || len(line) < 2 {
		return nil, &GeometryTypeError{Source: source.Name(), Row: rowIdx, Geometry: geom}
	}
	return line, nil
}

// rowInt64 reads join identifier
func rowInt64(source RowSource, row Row, column string) (int64, error) {
	value, ok := row.Value(column)
	if !ok {
		return 0, &SchemaError{Source: source.Name(), Column: column}
	}
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || math.Abs(v) >= 1<<53 {
			return 0, &AttributeError{Source: source.Name(), Column: column, Value: value, Err: errors.New("not an integer")}
		}
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, &AttributeError{Source: source.Name(), Column: column, Value: value, Err: err}
		}
		return id, nil
	}
	return 0, &AttributeError{Source: source.Name(), Column: column, Value: value, Err: errors.Errorf("unexpected type %T", value)}
}

// rowFloat64 reads numeric attribute (e.g. distance)
func rowFloat64(source RowSource, row Row, column string) (float64, error) {
	value, ok := row.Value(column)
	if !ok {
		return 0, &SchemaError{Source: source.Name(), Column: column}
	}
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, &AttributeError{Source: source.Name(), Column: column, Value: value, Err: err}
		}
		return f, nil
	}
	return 0, &AttributeError{Source: source.Name(), Column: column, Value: value, Err: errors.Errorf("unexpected type %T", value)}
}
