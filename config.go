package shp2ch

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config describes where the network is and how its attributes should be interpreted
type Config struct {
	Path           string   `yaml:"path"`
	SearchPattern  string   `yaml:"search_pattern"`
	NodeFromColumn string   `yaml:"node_from_column"`
	NodeToColumn   string   `yaml:"node_to_column"`
	DistanceColumn string   `yaml:"distance_column"`
	DistanceFactor float64  `yaml:"distance_factor"`
	UsefulKeys     []string `yaml:"useful_keys"`

	OnewayKey     string `yaml:"oneway_key"`
	ForwardValue  string `yaml:"forward_value"`
	BackwardValue string `yaml:"backward_value"`

	Vehicle  string `yaml:"vehicle"` // car / bike / truck
	SpeedKey string `yaml:"speed_key"`
	Mode     string `yaml:"mode"`   // live / ch
	Metric   string `yaml:"metric"` // distance / time

	SkipInvalidGeometry bool `yaml:"skip_invalid_geometry"`

	CSV struct {
		Delimiter      string `yaml:"delimiter"`
		GeometryColumn string `yaml:"geometry_column"`
	} `yaml:"csv"`
}

var presets = map[string]Config{
	// Dutch NWB (Nationaal Wegenbestand)
	"nwb": {
		SearchPattern:  "*.geojson",
		NodeFromColumn: "JTE_ID_BEG",
		NodeToColumn:   "JTE_ID_END",
		OnewayKey:      "RIJRICHTNG",
		ForwardValue:   "H",
		BackwardValue:  "T",
		Vehicle:        "car",
		Mode:           "live",
		Metric:         "distance",
	},
	// TomTom MultiNet network layer
	"tomtom": {
		SearchPattern:  "*nw.geojson",
		NodeFromColumn: "F_JNCTID",
		NodeToColumn:   "T_JNCTID",
		DistanceColumn: "METERS",
		DistanceFactor: 1.0,
		OnewayKey:      "ONEWAY",
		ForwardValue:   "FT",
		BackwardValue:  "TF",
		Vehicle:        "car",
		SpeedKey:       "KPH",
		Mode:           "live",
		Metric:         "distance",
	},
}

// Preset returns configuration for well-known data source
func Preset(name string) (Config, error) {
	cfg, ok := presets[strings.ToLower(name)]
	if !ok {
		return Config{}, errors.Errorf("Unknown preset '%s'", name)
	}
	cfg.UsefulKeys = append([]string(nil), cfg.UsefulKeys...)
	return cfg, nil
}

// LoadConfig reads YAML file on top of given base configuration. Environment overrides file values.
func LoadConfig(path string, base Config) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := base
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "Can't read config")
		}
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, errors.Wrap(err, "Can't parse config")
		}
	}

	if p := os.Getenv("SHP2CH_PATH"); p != "" {
		cfg.Path = p
	}
	if pattern := os.Getenv("SHP2CH_PATTERN"); pattern != "" {
		cfg.SearchPattern = pattern
	}
	return &cfg, nil
}

// Validate checks that configuration could be used to build graph
func (cfg *Config) Validate() error {
	if cfg.Path == "" {
		return errors.New("Path to the network must be provided")
	}
	if cfg.NodeFromColumn == "" || cfg.NodeToColumn == "" {
		return errors.New("Both node columns must be provided")
	}
	if _, err := cfg.vehicle(); err != nil {
		return err
	}
	if _, err := cfg.metric(); err != nil {
		return err
	}
	switch strings.ToLower(cfg.Mode) {
	case "", "live", "ch":
	default:
		return errors.Errorf("Unknown mode '%s'. Expected values: live / ch", cfg.Mode)
	}
	if len([]rune(cfg.CSV.Delimiter)) > 1 {
		return errors.Errorf("Delimiter must be single character, got '%s'", cfg.CSV.Delimiter)
	}
	return nil
}

// IsContracted returns true if graph for contraction hierarchies is requested
func (cfg *Config) IsContracted() bool {
	return strings.ToLower(cfg.Mode) == "ch"
}

func (cfg *Config) vehicle() (Vehicle, error) {
	return NewVehicle(cfg.Vehicle, OnewayRule{
		Key:           cfg.OnewayKey,
		ForwardValue:  cfg.ForwardValue,
		BackwardValue: cfg.BackwardValue,
	}, cfg.SpeedKey)
}

func (cfg *Config) metric() (Metric, error) {
	switch strings.ToLower(cfg.Metric) {
	case "", "distance":
		return METRIC_DISTANCE, nil
	case "time":
		return METRIC_TIME, nil
	}
	return 0, errors.Errorf("Unknown metric '%s'. Expected values: distance / time", cfg.Metric)
}

// MetricKind returns weight kind of contracted graph
func (cfg *Config) MetricKind() (Metric, error) {
	return cfg.metric()
}

// NewReader prepares reader for the configuration
func (cfg *Config) NewReader(logger *zap.Logger) (*Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	vehicle, err := cfg.vehicle()
	if err != nil {
		return nil, err
	}
	sourceOptions := DefaultSourceOptions()
	if cfg.CSV.Delimiter != "" {
		sourceOptions.Delimiter = []rune(cfg.CSV.Delimiter)[0]
	}
	if cfg.CSV.GeometryColumn != "" {
		sourceOptions.GeometryColumn = cfg.CSV.GeometryColumn
	}
	return NewReader(cfg.NodeFromColumn, cfg.NodeToColumn,
		WithDistanceColumn(cfg.DistanceColumn, cfg.DistanceFactor),
		WithUsefulKeys(cfg.UsefulKeys...),
		WithVehicle(vehicle),
		WithSkipInvalidGeometry(cfg.SkipInvalidGeometry),
		WithSourceOptions(sourceOptions),
		WithLogger(logger),
	), nil
}
