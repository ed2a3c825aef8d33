package object

import (
	"math/rand"

	"github.com/tomz197/laserfall/internal/physics"
)

// SpawnerOptions configures an AsteroidSpawner.
type SpawnerOptions struct {
	Bounds    physics.Rect
	Interval  float64 // Seconds between timed spawns
	Radius    float64
	BaseSpeed float64
	Ramp      float64
	Registry  Registry
	Rand      *rand.Rand // Nil uses a time-seeded source
}

// AsteroidSpawner creates asteroids on demand and on a fixed cadence.
// It keeps no reference to the asteroids it creates; the registry owns them.
type AsteroidSpawner struct {
	opts  SpawnerOptions
	rng   *rand.Rand
	timer float64 // Seconds until the next timed spawn
}

// NewAsteroidSpawner creates a spawner.
func NewAsteroidSpawner(opts SpawnerOptions) *AsteroidSpawner {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &AsteroidSpawner{
		opts:  opts,
		rng:   rng,
		timer: opts.Interval,
	}
}

// SpawnPosition returns where the next SpawnAsteroid call places its asteroid:
// a random x across the playfield on the top edge.
func (s *AsteroidSpawner) SpawnPosition() physics.Vec2 {
	b := s.opts.Bounds
	return physics.Vec2{
		X: b.Min.X + s.rng.Float64()*b.Width(),
		Y: b.Max.Y,
	}
}

// SpawnAsteroid creates and registers one asteroid at the spawn position.
func (s *AsteroidSpawner) SpawnAsteroid() *Asteroid {
	return s.SpawnAsteroidAt(s.SpawnPosition())
}

// SpawnAsteroidAt creates and registers one asteroid at pos.
func (s *AsteroidSpawner) SpawnAsteroidAt(pos physics.Vec2) *Asteroid {
	a := NewAsteroid(pos, s.opts.Radius, s.opts.BaseSpeed, s.opts.Ramp)
	if s.opts.Registry != nil {
		s.opts.Registry.Register(a)
	}
	return a
}

// Reset restarts the cadence timer.
func (s *AsteroidSpawner) Reset() {
	s.timer = s.opts.Interval
}

// Tick counts down the cadence timer and spawns one asteroid each time it elapses.
// Returns the number of asteroids spawned.
func (s *AsteroidSpawner) Tick(dt float64) int {
	if dt <= 0 || s.opts.Interval <= 0 {
		return 0
	}
	spawned := 0
	s.timer -= dt
	for s.timer <= 0 {
		s.SpawnAsteroid()
		s.timer += s.opts.Interval
		spawned++
	}
	return spawned
}
