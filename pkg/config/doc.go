// Package config loads the folio configuration.
//
// Values are layered: defaults from [Default], then an optional YAML file,
// then FOLIO_* environment variables. A double underscore in a variable name
// marks nesting, so FOLIO_CONTENT__BASE_URL sets content.base_url and
// FOLIO_REDIS__URL sets redis.url.
//
//	cfg, err := config.Load("folio.yaml")
//	if err != nil {
//		return err
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
package config
