package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config with pointer fields so that only variables
// actually present in the environment overlay the current values.
type envConfig struct {
	EndpointAddr                *string        `env:"ENDPOINT_ADDR"`
	DatabaseDSN                 *string        `env:"DATABASE_DSN"`
	SecretKey                   *string        `env:"SECRET_KEY"`
	AccessTokenValidityDuration *time.Duration `env:"ACCESS_TOKEN_VALIDITY_DURATION"`
	CredentialsFile             *string        `env:"CREDENTIALS_FILE"`
}

// parseEnv overlays configuration values from MAINTRACK_* environment
// variables. Malformed values panic, matching the JSON overlay.
func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.ParseWithOptions(&c, env.Options{Prefix: "MAINTRACK_"}); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = *c.AccessTokenValidityDuration
	}
	if c.CredentialsFile != nil {
		config.CredentialsFile = *c.CredentialsFile
	}
}
