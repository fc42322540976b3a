package nbody

import (
	"testing"

	"github.com/MultiCoreECS/SmolNBody/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NilError(t, DefaultConfig().Validate())
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("NBODY_TICKS", "250")
	t.Setenv("NBODY_WORKERS", "8")
	cfg, err := GetConfig()
	assert.NilError(t, err)
	assert.Equal(t, 250, cfg.Ticks)
	assert.Equal(t, 8, cfg.Workers)
	// Unset values keep their defaults.
	assert.Equal(t, 10, cfg.BoundsX)
}

func TestConfigRejectsBadValues(t *testing.T) {
	t.Setenv("NBODY_WORKERS", "0")
	_, err := GetConfig()
	assert.ErrorContains(t, err, "worker count must be at least 1")

	t.Setenv("NBODY_WORKERS", "4")
	t.Setenv("NBODY_LOG_LEVEL", "shouting")
	_, err = GetConfig()
	assert.ErrorContains(t, err, "invalid log level")
}
