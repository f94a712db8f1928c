package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		DatabaseURL: "postgres://localhost:5432/fittrack",
		JWTSecret:   strings.Repeat("s", 32),
	}
	assert.NoError(t, valid.Validate())

	t.Run("requires DATABASE_URL", func(t *testing.T) {
		cfg := valid
		cfg.DatabaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("requires JWT_SECRET", func(t *testing.T) {
		cfg := valid
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects short JWT_SECRET", func(t *testing.T) {
		cfg := valid
		cfg.JWTSecret = "too-short"
		assert.Error(t, cfg.Validate())
	})
}
