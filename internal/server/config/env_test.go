package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Run("overlays set variables only", func(t *testing.T) {
		t.Setenv("MAINTRACK_ENDPOINT_ADDR", ":9999")
		t.Setenv("MAINTRACK_ACCESS_TOKEN_VALIDITY_DURATION", "45m")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, ":9999", cfg.EndpointAddr)
		assert.Equal(t, 45*time.Minute, cfg.AccessTokenValidityDuration)
		// untouched fields keep their defaults
		assert.Equal(t, "secretKey", cfg.SecretKey)
		assert.Equal(t, "credentials.json", cfg.CredentialsFile)
	})

	t.Run("malformed duration panics", func(t *testing.T) {
		t.Setenv("MAINTRACK_ACCESS_TOKEN_VALIDITY_DURATION", "not-a-duration")

		cfg := &Config{}
		cfg.LoadDefaults()
		assert.Panics(t, func() { parseEnv(cfg) })
	})
}
