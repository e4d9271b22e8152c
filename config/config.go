package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/regkit/usernamer/model"
)

var (
	// ErrMissingThreepidToUse signals that the required identifier-kind
	// selector is absent from the raw configuration.
	ErrMissingThreepidToUse = errors.New(`missing required configuration key: "threepid_to_use"`)
	// ErrInvalidThreepidToUse signals an unrecognized identifier-kind value.
	ErrInvalidThreepidToUse = errors.New(`"threepid_to_use" can only be either "email" or "msisdn"`)
)

// Config holds the operating mode of the deriver. Constructed once at
// startup and immutable afterwards.
type Config struct {
	// ThreepidToUse selects which verified identifier kind drives
	// username derivation.
	ThreepidToUse model.IdentifierKind
	// FailIfNotFound makes the absence of the configured identifier kind
	// a hard failure instead of an empty result.
	FailIfNotFound bool
	// LogLevel is the slog level for the deriver's logger.
	LogLevel int
}

// ParseConfig validates a raw configuration map and builds a Config from it.
// Keys other than the recognized options are ignored.
func ParseConfig(raw map[string]any) (*Config, error) {
	v, ok := raw["threepid_to_use"]
	if !ok {
		return nil, ErrMissingThreepidToUse
	}

	kind, ok := v.(string)
	if !ok || !model.IdentifierKind(kind).Valid() {
		return nil, ErrInvalidThreepidToUse
	}

	cfg := &Config{ThreepidToUse: model.IdentifierKind(kind)}

	if v, ok := raw["fail_if_not_found"]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf(`"fail_if_not_found" must be a boolean, got %T`, v)
		}
		cfg.FailIfNotFound = b
	}

	return cfg, nil
}

type envConfig struct {
	ThreepidToUse  string `env:"THREEPID_TO_USE"`
	FailIfNotFound bool   `env:"FAIL_IF_NOT_FOUND" envDefault:"false"`
	LogLevel       int    `env:"LOG_LEVEL" envDefault:"0"`
}

// FromEnv loads configuration from USERNAMER_-prefixed environment variables
// and runs it through the same validation as ParseConfig.
func FromEnv() (*Config, error) {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: "USERNAMER_"}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if ec.ThreepidToUse == "" {
		return nil, ErrMissingThreepidToUse
	}
	if !model.IdentifierKind(ec.ThreepidToUse).Valid() {
		return nil, ErrInvalidThreepidToUse
	}

	return &Config{
		ThreepidToUse:  model.IdentifierKind(ec.ThreepidToUse),
		FailIfNotFound: ec.FailIfNotFound,
		LogLevel:       ec.LogLevel,
	}, nil
}
