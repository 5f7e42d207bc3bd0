// Package config handles configuration for the server,
// including defaults, JSON overlay, environment, and command-line flags.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/dmitrijs2005/matchroom/internal/common"
)

// Config holds runtime settings for the matchroom server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP/WebSocket endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required; there is no
//     default on purpose — key material must come from the environment, a
//     config file, or a flag, never from the binary.
//   - TokenValidityDuration: backstop lifetime for issued tokens.
type Config struct {
	EndpointAddr          string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
}

// LoadDefaults populates Config with development defaults. The secret key is
// deliberately left empty; Validate rejects it until one is supplied.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3003"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.TokenValidityDuration = 24 * time.Hour
}

// Validate reports configuration errors that must stop startup.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret key is required (set " + common.SecretKeyEnvName + ", -s, or secret_key in the config file)")
	}
	if c.TokenValidityDuration <= 0 {
		return errors.New("token validity duration must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func parseEnv(config *Config) {
	if v, ok := os.LookupEnv(common.SecretKeyEnvName); ok {
		config.SecretKey = v
	}
}
