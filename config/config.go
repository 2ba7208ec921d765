// Package config loads runtime settings from the environment.
package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings the command line can override.
type Config struct {
	// Seed for the outcome RNG. Nil picks a random seed; any set value,
	// zero included, is used as is.
	Seed       *int64 `env:"MIDWAY_SEED"`
	ContentDir string `env:"MIDWAY_CONTENT_DIR"`
	Player     string `env:"MIDWAY_PLAYER" envDefault:"Visitor"`
	Room       string `env:"MIDWAY_ROOM" envDefault:"midway"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveSeed returns the configured seed, drawing a fresh one when unset.
func (c Config) ResolveSeed() (int64, error) {
	if c.Seed != nil {
		return *c.Seed, nil
	}
	return NewSeed()
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
