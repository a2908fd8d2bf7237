package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Validator is implemented by configuration structs that need cross-field checks
// after the environment has been parsed.
type Validator interface {
	Validate() error
}

// New reads configuration from environment variables and unmarshals them into a
// struct of type T. If T (or *T) implements Validator, it is validated before
// being returned.
func New[T any]() (T, error) {
	return NewWithEnvironment[T](nil)
}

// NewWithEnvironment is like New but reads variables from the given map instead of
// the process environment when the map is non-nil.
func NewWithEnvironment[T any](environment map[string]string) (T, error) {
	var cfg T
	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if v, ok := any(&cfg).(Validator); ok {
		if err := v.Validate(); err != nil {
			return cfg, fmt.Errorf("validate config: %w", err)
		}
	}

	return cfg, nil
}
