package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/LdDl/shp2ch"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	configFile    = flag.String("config", "", "Path to YAML configuration file (optional)")
	preset        = flag.String("preset", "", "Well-known data source defaults. Expected values: nwb / tomtom")
	path          = flag.String("path", "", "Directory with network files (searched recursively)")
	pattern       = flag.String("pattern", "", "Search pattern of network files. E.g.: '*nw.geojson'")
	nodeFrom      = flag.String("from", "", "Column with identifier of the first node")
	nodeTo        = flag.String("to", "", "Column with identifier of the last node")
	mode          = flag.String("mode", "", "Graph kind. Expected values: live / ch")
	out           = flag.String("out", "my_graph.csv", "Filename of 'Comma-Separated Values' (CSV) formatted file. E.g.: if file name is 'map.csv' then 3 files will be produced: 'map.csv' (edges), 'map_vertices.csv', 'map_tags.csv'. In 'ch' mode 'map_shortcuts.csv' is produced also")
	geomFormat    = flag.String("geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson")
	doContraction = flag.Bool("contract", true, "Prepare contraction hierarchies? (used in 'ch' mode only)")
	verbose       = flag.Bool("verbose", false, "Human readable logs with debug level")
)

func main() {
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer logger.Sync()

	err = run(logger)
	if err != nil {
		logger.Error("Can't build graph", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func prepareConfig() (*shp2ch.Config, error) {
	base := shp2ch.Config{}
	if *preset != "" {
		var err error
		base, err = shp2ch.Preset(*preset)
		if err != nil {
			return nil, err
		}
	}
	cfg, err := shp2ch.LoadConfig(*configFile, base)
	if err != nil {
		return nil, err
	}
	// Flags have the last word
	if *path != "" {
		cfg.Path = *path
	}
	if *pattern != "" {
		cfg.SearchPattern = *pattern
	}
	if *nodeFrom != "" {
		cfg.NodeFromColumn = *nodeFrom
	}
	if *nodeTo != "" {
		cfg.NodeToColumn = *nodeTo
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	return cfg, cfg.Validate()
}

func run(logger *zap.Logger) error {
	cfg, err := prepareConfig()
	if err != nil {
		return errors.Wrap(err, "Bad configuration")
	}
	format, err := shp2ch.ParseGeomFormat(*geomFormat)
	if err != nil {
		return err
	}
	reader, err := cfg.NewReader(logger)
	if err != nil {
		return err
	}
	logger.Sugar().Info(reader)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !cfg.IsContracted() {
		graph, stats, err := shp2ch.ReadLive(ctx, reader, cfg.Path, cfg.SearchPattern)
		if err != nil {
			return err
		}
		logger.Sugar().Infof("Graph is ready. %s", stats)
		return shp2ch.ExportToCSV(graph, *out, format)
	}

	metric, err := cfg.MetricKind()
	if err != nil {
		return err
	}
	graph, stats, err := shp2ch.ReadContracted(ctx, reader, cfg.Path, cfg.SearchPattern, metric)
	if err != nil {
		return err
	}
	logger.Sugar().Infof("Graph is ready. %s", stats)
	err = shp2ch.ExportToCSV(graph, *out, format)
	if err != nil {
		return err
	}
	if !*doContraction {
		return nil
	}

	chGraph, err := shp2ch.ExportToCH(graph)
	if err != nil {
		return err
	}
	logger.Info("Starting contraction process....")
	st := time.Now()
	chGraph.PrepareContractionHierarchies()
	logger.Sugar().Infof("Done contraction process in %v", time.Since(st))

	fnamePart := strings.Split(*out, ".csv")
	// 	from_vertex_id - int64, ID of source vertex
	// 	to_vertex_id - int64, ID of target vertex
	// 	weight - float64, Weight of an edge
	// 	via_vertex_id - int64, ID of vertex through which the shortcut exists
	err = chGraph.ExportShortcutsToFile(fnamePart[0] + "_shortcuts.csv")
	if err != nil {
		return errors.Wrap(err, "Can't export shortcuts")
	}
	return nil
}
