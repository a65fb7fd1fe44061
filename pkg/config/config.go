// Package config loads the connection configuration: bus parameters plus
// the ordered list of CyTube channels this process may target.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/grobertson/kryten-cli/pkg/pubsub"
	cytube "github.com/grobertson/kryten-cli/pkg/schemas/cytube/v1"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "config.json"

var (
	ErrNotFound   = errors.New("configuration file not found")
	ErrMalformed  = errors.New("invalid JSON in configuration file")
	ErrNoChannels = errors.New("no channels configured")
)

// Config is the process-lifetime connection configuration. Bus parameters
// are passed through to the session unchanged.
type Config struct {
	Bus      pubsub.Config       `json:"bus"`
	Channels []cytube.ChannelRef `json:"channels"`
}

// fileConfig is the on-disk shape, including the legacy single-channel form.
type fileConfig struct {
	Bus      pubsub.Config       `json:"bus"`
	Channels []cytube.ChannelRef `json:"channels"`
	Cytube   *legacyCytube       `json:"cytube"`
}

type legacyCytube struct {
	Domain  string `json:"domain"`
	Channel string `json:"channel"`
}

// envOverrides take precedence over the file for bus addressing, so a
// config.json can be shared while the broker URL comes from the shell.
type envOverrides struct {
	BusURL      string `env:"KRYTEN_BUS_URL"`
	BusExchange string `env:"KRYTEN_BUS_EXCHANGE"`
}

// Load reads and normalizes the configuration at path. The legacy
// `{"cytube": {...}}` form is converted to the channels list, missing
// domains default to cytu.be, and environment variables override the bus
// address. Returns ErrNotFound, ErrMalformed, or ErrNoChannels.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var file fileConfig
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	cfg := &Config{Bus: file.Bus, Channels: file.Channels}

	if len(cfg.Channels) == 0 && file.Cytube != nil {
		cfg.Channels = []cytube.ChannelRef{{
			Domain:  file.Cytube.Domain,
			Channel: file.Cytube.Channel,
		}}
	}
	if len(cfg.Channels) == 0 {
		return nil, ErrNoChannels
	}
	for i := range cfg.Channels {
		if cfg.Channels[i].Domain == "" {
			cfg.Channels[i].Domain = cytube.DefaultDomain
		}
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if overrides.BusURL != "" {
		cfg.Bus.URL = overrides.BusURL
	}
	if overrides.BusExchange != "" {
		cfg.Bus.Exchange = overrides.BusExchange
	}
	if cfg.Bus.Exchange == "" {
		cfg.Bus.Exchange = cytube.Exchange
	}

	return cfg, nil
}
