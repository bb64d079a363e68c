package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastropartner/gastropartner/pkg/config"
)

type serverConfig struct {
	Host string `env:"TEST_CFG_HOST" envDefault:"localhost"`
	Port int    `env:"TEST_CFG_PORT" envDefault:"8080"`
}

type requiredConfig struct {
	Token string `env:"TEST_CFG_REQUIRED_TOKEN,required"`
}

type cachedConfig struct {
	Value string `env:"TEST_CFG_CACHED" envDefault:"initial"`
}

func TestLoad(t *testing.T) {
	t.Run("reads environment with defaults", func(t *testing.T) {
		t.Setenv("TEST_CFG_PORT", "9090")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 9090, cfg.Port)
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer is rejected", func(t *testing.T) {
		err := config.Load[serverConfig](nil)
		require.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("result is cached per type", func(t *testing.T) {
		t.Setenv("TEST_CFG_CACHED", "first")

		var first cachedConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, "first", first.Value)

		// A later environment change must not leak into the process.
		t.Setenv("TEST_CFG_CACHED", "second")
		var second cachedConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Value)
	})
}

type mustConfig struct {
	Name string `env:"TEST_CFG_MUST_NAME,required"`
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg mustConfig
			config.MustLoad(&cfg)
		})
	})
}
