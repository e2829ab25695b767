package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/config"
)

type sampleConfig struct {
	Name    string        `env:"SAMPLE_NAME" envDefault:"fallback"`
	Timeout time.Duration `env:"SAMPLE_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Token string `env:"SAMPLE_REQUIRED_TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "from-env")

	var cfg sampleConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	// Cached per type: a later change to the environment is not observed.
	t.Setenv("SAMPLE_NAME", "changed")
	var again sampleConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "from-env", again.Name)
}

func TestLoadNilPointer(t *testing.T) {
	assert.ErrorIs(t, config.Load[sampleConfig](nil), config.ErrNilPointer)
}

func TestLoadMissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
