// Package config loads service configuration from the environment.
// Config structs declare their variables with `env` and `envDefault`
// tags; command packages layer flag overrides on top.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from environment variables per its env tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse environment config: %w", err)
	}
	return nil
}
