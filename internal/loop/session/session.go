// Package session holds the state of one game: the ship, the falling
// asteroids, the lasers in flight, and the score and lives that follow from
// their collisions.
//
// A GameSession is not safe for concurrent use. The owner drives it from a
// single goroutine, issuing ship commands between calls to Update.
package session

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/laserfall/internal/loop/config"
	"github.com/tomz197/laserfall/internal/object"
	"github.com/tomz197/laserfall/internal/physics"
)

// GameSession owns every entity of one game and the score/lives bookkeeping.
type GameSession struct {
	id     string
	tuning config.Tuning
	bounds physics.Rect
	logger *log.Logger
	rng    *rand.Rand

	ship      *object.Ship
	spawner   *object.AsteroidSpawner
	asteroids []*object.Asteroid // Registration order
	lasers    []*object.Laser    // Registration order
	index     map[object.EntityID]object.Object
	nextID    object.EntityID

	// Entities registered while a tick is running join after it (see flushPending).
	updating bool
	pending  []object.Object

	score    int
	gameOver bool
	events   chan Event

	grid *physics.SpatialGrid
}

// Option configures a GameSession.
type Option func(*GameSession)

// WithLogger sets the logger; the session adds its own "session" key.
func WithLogger(l *log.Logger) Option {
	return func(s *GameSession) { s.logger = l }
}

// WithRand sets the random source used for spawn positions.
func WithRand(r *rand.Rand) Option {
	return func(s *GameSession) { s.rng = r }
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *GameSession) { s.id = id }
}

// New creates a session from t and starts a new game.
func New(t config.Tuning, opts ...Option) *GameSession {
	s := &GameSession{
		id:     uuid.NewString(),
		tuning: t,
		bounds: physics.Centered(t.HalfWidth, t.HalfHeight),
		logger: log.Default(),
		index:  make(map[object.EntityID]object.Object),
		events: make(chan Event, eventBuffer),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)
	s.grid = physics.NewSpatialGrid(s.bounds, t.CollisionCellSize())

	s.ship = object.NewShip(object.ShipOptions{
		Start:       s.shipStart(),
		Lives:       t.InitialLives,
		Step:        t.ShipStep,
		Radius:      t.ShipRadius,
		LaserSpeed:  t.LaserSpeed,
		LaserRadius: t.LaserRadius,
		Registry:    s,
		Observer:    shipObserver{s},
	})
	s.Register(s.ship)

	s.spawner = object.NewAsteroidSpawner(object.SpawnerOptions{
		Bounds:    s.bounds,
		Interval:  t.SpawnInterval,
		Radius:    t.AsteroidRadius,
		BaseSpeed: t.AsteroidBaseSpeed,
		Ramp:      t.AsteroidSpeedRamp,
		Registry:  s,
		Rand:      s.rng,
	})

	s.NewGame()
	return s
}

func (s *GameSession) shipStart() physics.Vec2 {
	return physics.Vec2{X: s.tuning.ShipStartX, Y: s.tuning.ShipStartY}
}

// NewGame resets score, lives and the game-over flag, removes every asteroid
// and laser and puts the ship back at its start position. Calling it any
// number of times, from any state, yields the same reset state.
func (s *GameSession) NewGame() {
	// Handles held from the previous game must read as gone.
	for _, a := range s.asteroids {
		a.MarkDestroyed()
	}
	for _, l := range s.lasers {
		l.MarkDestroyed()
	}
	for _, obj := range s.pending {
		if d, ok := obj.(object.Destructible); ok {
			d.MarkDestroyed()
		}
	}
	clear(s.index)
	clear(s.asteroids)
	s.asteroids = s.asteroids[:0]
	clear(s.lasers)
	s.lasers = s.lasers[:0]
	s.pending = nil

	s.score = 0
	s.gameOver = false
	s.ship.Reset(s.shipStart(), s.tuning.InitialLives)
	s.index[s.ship.ID()] = s.ship
	s.spawner.Reset()

	s.logger.Debug("new game", "lives", s.ship.Lives())
	s.emit(Event{Type: EventNewGame, Lives: s.ship.Lives()})
}

// Register assigns obj an id and adds it to the session. It implements
// object.Registry for the ship's lasers and the spawner's asteroids.
// Registering an object that already has an id is a no-op.
func (s *GameSession) Register(obj object.Object) object.EntityID {
	if id := obj.ID(); id != 0 {
		return id
	}
	s.nextID++
	id := s.nextID
	if e, ok := obj.(interface{ SetID(object.EntityID) }); ok {
		e.SetID(id)
	}
	if s.updating {
		s.pending = append(s.pending, obj)
		return id
	}
	s.add(obj)
	return id
}

func (s *GameSession) add(obj object.Object) {
	switch o := obj.(type) {
	case *object.Asteroid:
		s.asteroids = append(s.asteroids, o)
	case *object.Laser:
		s.lasers = append(s.lasers, o)
	}
	s.index[obj.ID()] = obj
}

// flushPending adds entities registered during the tick and clears the queue.
func (s *GameSession) flushPending() {
	for _, obj := range s.pending {
		s.add(obj)
	}
	clear(s.pending)
	s.pending = s.pending[:0]
}

// Update advances the game by delta. Long deltas are split into sub-steps of
// at most the configured max step, so fast lasers cannot skip over an
// asteroid. Each sub-step runs spawn, motion, collision resolution and
// removal of destroyed entities, in that order. Update does nothing while
// the game is over.
func (s *GameSession) Update(delta time.Duration) error {
	maxStep := s.tuning.MaxStep.Duration
	if maxStep <= 0 {
		maxStep = config.MaxStep
	}
	for delta > 0 && !s.gameOver {
		dt := min(delta, maxStep)
		delta -= dt
		if err := s.step(dt); err != nil {
			return err
		}
	}
	return nil
}

func (s *GameSession) step(dt time.Duration) error {
	ctx := object.UpdateContext{
		Delta:    dt,
		Bounds:   s.bounds,
		Registry: s,
	}

	s.updating = true
	s.spawner.Tick(dt.Seconds())

	var err error
	s.asteroids, err = updateAll(s, s.asteroids, ctx)
	if err == nil {
		s.lasers, err = updateAll(s, s.lasers, ctx)
	}
	s.updating = false
	s.flushPending()
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	s.ResolveCollisions()
	return nil
}

// updateAll updates every object and drops the ones that ask to be removed,
// marking them destroyed so outside handles see it.
// All objects are updated even if one fails; the first error is returned.
func updateAll[T destructibleObject](s *GameSession, objs []T, ctx object.UpdateContext) ([]T, error) {
	var firstErr error
	kept := objs[:0] // reuse backing array
	for _, obj := range objs {
		remove, err := obj.Update(ctx)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if remove {
			obj.MarkDestroyed()
			delete(s.index, obj.ID())
			continue
		}
		kept = append(kept, obj)
	}
	clear(objs[len(kept):])
	return kept, firstErr
}

// livesChanged reacts to the ship losing a life.
func (s *GameSession) livesChanged(lives int) {
	s.emit(Event{Type: EventLivesChanged, Lives: lives, Score: s.score})
	if lives > 0 || s.gameOver {
		return
	}
	s.gameOver = true
	s.logger.Debug("game over", "score", s.score)
	s.emit(Event{Type: EventGameOver, Lives: lives, Score: s.score})
}

// shipObserver forwards ship life changes to the session without exposing
// the callback on GameSession itself.
type shipObserver struct {
	s *GameSession
}

func (o shipObserver) LivesChanged(lives int) {
	o.s.livesChanged(lives)
}

func (s *GameSession) addScore(n int) {
	s.score += n
	s.emit(Event{Type: EventScoreChanged, Lives: s.ship.Lives(), Score: s.score})
}

// emit sends e without blocking; events past the buffer are dropped.
func (s *GameSession) emit(e Event) {
	select {
	case s.events <- e:
	default:
	}
}

// ID returns the session id used in logs.
func (s *GameSession) ID() string { return s.id }

// Score returns the number of asteroids destroyed by lasers this game.
func (s *GameSession) Score() int { return s.score }

// Lives returns the ship's remaining lives.
func (s *GameSession) Lives() int { return s.ship.Lives() }

// IsGameOver reports whether the ship has run out of lives.
func (s *GameSession) IsGameOver() bool { return s.gameOver }

// State returns the current game phase.
func (s *GameSession) State() State {
	if s.gameOver {
		return StateGameOver
	}
	return StateActive
}

// Ship returns the player's ship.
func (s *GameSession) Ship() *object.Ship { return s.ship }

// Spawner returns the asteroid spawner.
func (s *GameSession) Spawner() *object.AsteroidSpawner { return s.spawner }

// Bounds returns the playfield rectangle.
func (s *GameSession) Bounds() physics.Rect { return s.bounds }

// Asteroids returns the live asteroids in registration order.
func (s *GameSession) Asteroids() []*object.Asteroid {
	return slices.Clone(s.asteroids)
}

// Lasers returns the live lasers in registration order.
func (s *GameSession) Lasers() []*object.Laser {
	return slices.Clone(s.lasers)
}

// Lookup returns the live entity with the given id.
func (s *GameSession) Lookup(id object.EntityID) (object.Object, bool) {
	obj, ok := s.index[id]
	return obj, ok
}

// Events returns the channel of score, lives and phase changes.
func (s *GameSession) Events() <-chan Event { return s.events }

// LivesText returns the lives line shown on the HUD.
func (s *GameSession) LivesText() string { return FormatLives(s.ship.Lives()) }

// ScoreText returns the score line shown on the HUD.
func (s *GameSession) ScoreText() string { return FormatScore(s.score) }

// FormatLives formats a life count for display.
func FormatLives(lives int) string {
	return fmt.Sprintf("Lives: %d", lives)
}

// FormatScore formats a score for display.
func FormatScore(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// Draw plots asteroids, lasers and the ship, in that order.
func (s *GameSession) Draw(ctx object.DrawContext) error {
	for _, a := range s.asteroids {
		if err := a.Draw(ctx); err != nil {
			return err
		}
	}
	for _, l := range s.lasers {
		if err := l.Draw(ctx); err != nil {
			return err
		}
	}
	return s.ship.Draw(ctx)
}
