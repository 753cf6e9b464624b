// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Option adjusts how ParseEnv reads the environment.
type Option func(*env.Options)

// WithPrefix prepends prefix to every env tag of target.
func WithPrefix(prefix string) Option {
	return func(o *env.Options) {
		o.Prefix = prefix
	}
}

// WithEnvironment reads from values instead of the process environment.
func WithEnvironment(values map[string]string) Option {
	return func(o *env.Options) {
		o.Environment = values
	}
}

// ParseEnv loads configuration from environment variables into target, a
// pointer to a struct with env tags.
func ParseEnv(target any, opts ...Option) error {
	var options env.Options
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if err := env.ParseWithOptions(target, options); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
