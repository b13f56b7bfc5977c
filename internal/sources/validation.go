package sources

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrMissingRequiredField indicates a required field is missing.
var ErrMissingRequiredField = errors.New("missing required field")

// Validate checks a source configuration for the fields the engine
// cannot run without. Custom extractor names are resolved later, at
// extractor construction, where the registry is available.
func Validate(cfg *Config) error {
	if cfg.ID == "" {
		return fmt.Errorf("%w: id", ErrMissingRequiredField)
	}
	if cfg.URL == "" {
		return fmt.Errorf("%w: url", ErrMissingRequiredField)
	}
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", cfg.URL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("url %q must be absolute", cfg.URL)
	}
	if cfg.OutputPath == "" {
		return fmt.Errorf("%w: output_path", ErrMissingRequiredField)
	}
	if cfg.Rules.Items.IsZero() {
		return fmt.Errorf("%w: rules.items", ErrMissingRequiredField)
	}
	return nil
}
