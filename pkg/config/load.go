package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "FOLIO_"

// Load reads path (if it exists) and FOLIO_* variables over Default.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("%w: reading %s: %v", ErrLoad, path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: accessing %s: %v", ErrLoad, path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: env overrides: %v", ErrLoad, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return cfg, nil
}

// envKey maps FOLIO_CONTENT__BASE_URL to content.base_url.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}

	switch c.Content.Source {
	case SourceHTTP:
		if c.Content.BaseURL == "" {
			errs = append(errs, errors.New("content.base_url is required for the http source"))
		}
	case SourceStorage:
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("storage.bucket is required for the storage source"))
		}
	default:
		errs = append(errs, fmt.Errorf("content.source %q must be one of http, storage", c.Content.Source))
	}

	switch c.Content.Index {
	case IndexDocument:
	case IndexListing:
		if c.Content.ListingURL == "" {
			errs = append(errs, errors.New("content.listing_url is required for the listing index"))
		}
	default:
		errs = append(errs, fmt.Errorf("content.index %q must be one of document, listing", c.Content.Index))
	}

	if !slices.Contains([]string{StrategySuffix, StrategyHeuristic}, c.Content.Strategy) {
		errs = append(errs, fmt.Errorf("content.strategy %q must be one of suffix, heuristic", c.Content.Strategy))
	}
	if c.Content.StaleAfter <= 0 {
		errs = append(errs, errors.New("content.stale_after must be positive"))
	}
	if c.Content.RefreshInterval < 0 {
		errs = append(errs, errors.New("content.refresh_interval must not be negative"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
