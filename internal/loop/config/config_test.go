package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	d := Default()
	require.NoError(t, d.Validate())
	assert.Equal(t, 3, d.InitialLives)
	assert.Equal(t, 1.0, d.AsteroidBaseSpeed)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestLoadOverridesSomeKeys(t *testing.T) {
	path := writeTuning(t, `
ship_step = 1.25
spawn_interval = 0.5
max_step = "10ms"
`)
	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1.25, got.ShipStep)
	assert.Equal(t, 0.5, got.SpawnInterval)
	assert.Equal(t, 10*time.Millisecond, got.MaxStep.Duration)
	assert.Equal(t, LaserSpeed, got.LaserSpeed, "untouched keys keep defaults")
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeTuning(t, `ship_stepp = 2`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ship_stepp")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeTuning(t, `
laser_speed = 0
initial_lives = -1
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "laser_speed")
	assert.Contains(t, err.Error(), "initial_lives")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCollisionCellSize(t *testing.T) {
	d := Default()
	assert.InDelta(t, AsteroidRadius+ShipRadius, d.CollisionCellSize(), 1e-9)
}
