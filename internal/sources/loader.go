package sources

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoSources indicates no sources were found in the configuration.
	ErrNoSources = errors.New("no sources found in configuration")
	// ErrInvalidSourceFormat indicates the source format is invalid.
	ErrInvalidSourceFormat = errors.New("invalid source format")
)

// sourcesFile represents the structure of a sources YAML file.
type sourcesFile struct {
	Sources []map[string]any `yaml:"sources"`
}

// Loader loads and validates source configurations from a YAML file.
type Loader struct {
	configPath string
}

// NewLoader creates a new Loader for the given sources file.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// LoadSources loads and validates all sources from the configuration
// file. It returns ErrNoSources when the file declares none.
func (l *Loader) LoadSources() ([]Config, error) {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("read sources file %s: %w", l.configPath, err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", l.configPath, err)
	}

	if len(file.Sources) == 0 {
		return nil, ErrNoSources
	}

	configs := make([]Config, 0, len(file.Sources))
	for i, raw := range file.Sources {
		var cfg Config
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:     &cfg,
			DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		})
		if err != nil {
			return nil, fmt.Errorf("create decoder: %w", err)
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("%w: source %d: %v", ErrInvalidSourceFormat, i, err)
		}

		if err := Validate(&cfg); err != nil {
			return nil, fmt.Errorf("source %d (%s): %w", i, cfg.ID, err)
		}
		configs = append(configs, cfg)
	}

	return configs, nil
}

// FindByID returns the source with the given ID, or nil.
func FindByID(configs []Config, id string) *Config {
	for i := range configs {
		if configs[i].ID == id {
			return &configs[i]
		}
	}
	return nil
}
