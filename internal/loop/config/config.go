// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Playfield - world units, y pointing up, centered on the origin.
const (
	HalfWidth  = 12.0
	HalfHeight = 8.0
	ShipStartX = 0.0
	ShipStartY = -6.0
)

// Player
const (
	InitialLives = 3
	ShipStep     = 0.5
	ShipRadius   = 0.5
)

// Lasers
const (
	LaserSpeed  = 12.0
	LaserRadius = 0.15
)

// Asteroids
const (
	AsteroidBaseSpeed = 1.0
	AsteroidSpeedRamp = 0.5 // Added to speed per second of asteroid age
	AsteroidRadius    = 0.6
	SpawnInterval     = 1.2 // Seconds between spawns
)

// Simulation
const (
	MaxStep = time.Second / 60 // Longest single sub-step inside Session.Update
)

// Client rendering and input
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	FireInterval          = 150 * time.Millisecond
	MoveRepeat            = 60 * time.Millisecond
	MaxTermWidth          = 120
	MaxTermHeight         = 40
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Server
const (
	TopScoresCount         = 5
	ShutdownDisplaySeconds = 5.0
	ShutdownWait           = 15 * time.Second // Longest wait for clients to leave
)

// Tuning holds the gameplay parameters a session is built from.
// Zero values are never valid; start from Default and override.
type Tuning struct {
	HalfWidth  float64 `toml:"half_width"`
	HalfHeight float64 `toml:"half_height"`
	ShipStartX float64 `toml:"ship_start_x"`
	ShipStartY float64 `toml:"ship_start_y"`

	InitialLives int     `toml:"initial_lives"`
	ShipStep     float64 `toml:"ship_step"`
	ShipRadius   float64 `toml:"ship_radius"`

	LaserSpeed  float64 `toml:"laser_speed"`
	LaserRadius float64 `toml:"laser_radius"`

	AsteroidBaseSpeed float64 `toml:"asteroid_base_speed"`
	AsteroidSpeedRamp float64 `toml:"asteroid_speed_ramp"`
	AsteroidRadius    float64 `toml:"asteroid_radius"`
	SpawnInterval     float64 `toml:"spawn_interval"`

	MaxStep Duration `toml:"max_step"`
}

// Duration wraps time.Duration so it can be written as "16ms" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in tuning.
func Default() Tuning {
	return Tuning{
		HalfWidth:         HalfWidth,
		HalfHeight:        HalfHeight,
		ShipStartX:        ShipStartX,
		ShipStartY:        ShipStartY,
		InitialLives:      InitialLives,
		ShipStep:          ShipStep,
		ShipRadius:        ShipRadius,
		LaserSpeed:        LaserSpeed,
		LaserRadius:       LaserRadius,
		AsteroidBaseSpeed: AsteroidBaseSpeed,
		AsteroidSpeedRamp: AsteroidSpeedRamp,
		AsteroidRadius:    AsteroidRadius,
		SpawnInterval:     SpawnInterval,
		MaxStep:           Duration{MaxStep},
	}
}

// Load reads a TOML file on top of the defaults. Keys missing from the file
// keep their default value. An empty path returns the defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Tuning{}, fmt.Errorf("load tuning %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Tuning{}, fmt.Errorf("load tuning %s: unknown key %q", path, undecoded[0].String())
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("load tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate reports every parameter that cannot produce a playable game.
func (t Tuning) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	positive("half_width", t.HalfWidth)
	positive("half_height", t.HalfHeight)
	positive("ship_step", t.ShipStep)
	positive("ship_radius", t.ShipRadius)
	positive("laser_speed", t.LaserSpeed)
	positive("laser_radius", t.LaserRadius)
	positive("asteroid_base_speed", t.AsteroidBaseSpeed)
	positive("asteroid_speed_ramp", t.AsteroidSpeedRamp)
	positive("asteroid_radius", t.AsteroidRadius)
	positive("spawn_interval", t.SpawnInterval)
	if t.InitialLives <= 0 {
		errs = append(errs, fmt.Errorf("initial_lives must be positive, got %d", t.InitialLives))
	}
	if t.MaxStep.Duration <= 0 {
		errs = append(errs, fmt.Errorf("max_step must be positive, got %v", t.MaxStep.Duration))
	}
	return errors.Join(errs...)
}

// CollisionCellSize returns a broad-phase cell size covering the largest
// interaction distance between any two colliding entities.
func (t Tuning) CollisionCellSize() float64 {
	return t.AsteroidRadius + max(t.ShipRadius, t.LaserRadius)
}
