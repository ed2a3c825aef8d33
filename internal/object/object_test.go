package object

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/laserfall/internal/physics"
)

var testBounds = physics.Centered(12, 8)

// fakeRegistry records registrations the way the session does, minus ownership.
type fakeRegistry struct {
	objs   []Object
	nextID EntityID
}

func (r *fakeRegistry) Register(obj Object) EntityID {
	r.nextID++
	if e, ok := obj.(interface{ SetID(EntityID) }); ok {
		e.SetID(r.nextID)
	}
	r.objs = append(r.objs, obj)
	return r.nextID
}

type livesRecorder struct {
	seen []int
}

func (l *livesRecorder) LivesChanged(lives int) {
	l.seen = append(l.seen, lives)
}

func tick(d time.Duration) UpdateContext {
	return UpdateContext{Delta: d, Bounds: testBounds}
}

func TestAsteroidMovesDown(t *testing.T) {
	a := NewAsteroid(physics.Vec2{}, 0.6, 1.0, 0.5)
	prev := a.Pos.Y
	for i := 0; i < 10; i++ {
		remove, err := a.Update(tick(16 * time.Millisecond))
		require.NoError(t, err)
		require.False(t, remove)
		assert.Less(t, a.Pos.Y, prev)
		prev = a.Pos.Y
	}
	assert.Equal(t, 0.0, a.Pos.X)
}

func TestAsteroidSpeedRamps(t *testing.T) {
	a := NewAsteroid(physics.Vec2{}, 0.6, 1.0, 0.5)
	assert.Equal(t, 1.0, a.Speed())

	_, _ = a.Update(tick(100 * time.Millisecond))
	assert.Greater(t, a.Speed(), 1.0)
	assert.InDelta(t, 1.05, a.Speed(), 1e-9)
	assert.InDelta(t, 0.1, a.Age(), 1e-9)

	before := a.Speed()
	_, _ = a.Update(tick(100 * time.Millisecond))
	assert.Greater(t, a.Speed(), before)
}

func TestAsteroidIgnoresNonPositiveDelta(t *testing.T) {
	a := NewAsteroid(physics.Vec2{X: 1, Y: 2}, 0.6, 1.0, 0.5)
	_, _ = a.Update(tick(0))
	_, _ = a.Update(tick(-time.Second))
	assert.Equal(t, physics.Vec2{X: 1, Y: 2}, a.Pos)
	assert.Equal(t, 1.0, a.Speed())
}

func TestAsteroidDespawnsBelowBottom(t *testing.T) {
	a := NewAsteroid(physics.Vec2{Y: testBounds.Min.Y - 0.5}, 0.6, 1.0, 0.5)
	remove, err := a.Update(tick(200 * time.Millisecond))
	require.NoError(t, err)
	assert.True(t, remove)
}

func TestDestroyedAsteroidIsRemoved(t *testing.T) {
	a := NewAsteroid(physics.Vec2{}, 0.6, 1.0, 0.5)
	a.MarkDestroyed()
	remove, _ := a.Update(tick(time.Millisecond))
	assert.True(t, remove)
	assert.Equal(t, physics.Vec2{}, a.Pos, "destroyed asteroids do not move")
}

func TestLaserMovesUp(t *testing.T) {
	l := NewLaser(physics.Vec2{Y: -6}, 12, 0.15)
	prev := l.Pos.Y
	for i := 0; i < 5; i++ {
		remove, err := l.Update(tick(16 * time.Millisecond))
		require.NoError(t, err)
		require.False(t, remove)
		assert.Greater(t, l.Pos.Y, prev)
		prev = l.Pos.Y
	}
}

func TestLaserDespawnsAboveTop(t *testing.T) {
	l := NewLaser(physics.Vec2{Y: testBounds.Max.Y}, 12, 0.15)
	remove, _ := l.Update(tick(100 * time.Millisecond))
	assert.True(t, remove)
}

func newTestShip(reg Registry, obs LifeObserver) *Ship {
	return NewShip(ShipOptions{
		Start:       physics.Vec2{X: 0, Y: -6},
		Lives:       3,
		Step:        0.5,
		Radius:      0.5,
		LaserSpeed:  12,
		LaserRadius: 0.15,
		Registry:    reg,
		Observer:    obs,
	})
}

func TestShipMoves(t *testing.T) {
	s := newTestShip(nil, nil)

	x := s.Pos.X
	s.MoveLeft()
	assert.Less(t, s.Pos.X, x)
	x = s.Pos.X
	s.MoveRight()
	assert.Greater(t, s.Pos.X, x)

	y := s.Pos.Y
	s.MoveUp()
	assert.Greater(t, s.Pos.Y, y)
	y = s.Pos.Y
	s.MoveDown()
	assert.Less(t, s.Pos.Y, y)

	assert.Equal(t, physics.Vec2{X: 0, Y: -6}, s.Pos)
}

func TestShipIsNotClamped(t *testing.T) {
	s := newTestShip(nil, nil)
	for i := 0; i < 100; i++ {
		s.MoveLeft()
	}
	assert.Less(t, s.Pos.X, testBounds.Min.X)
}

func TestShipSpawnLaserRegisters(t *testing.T) {
	reg := &fakeRegistry{}
	s := newTestShip(reg, nil)
	s.MoveRight()

	l := s.SpawnLaser()
	require.NotNil(t, l)
	assert.Equal(t, s.Pos, l.Pos)
	assert.Equal(t, EntityID(1), l.ID())
	require.Len(t, reg.objs, 1)
	assert.Same(t, l, reg.objs[0])

	l2 := s.SpawnLaser()
	assert.NotEqual(t, l.ID(), l2.ID())
}

func TestShipSpawnLaserWithoutRegistry(t *testing.T) {
	s := newTestShip(nil, nil)
	assert.Nil(t, s.SpawnLaser())
}

func TestShipLoseLifeClampsAtZero(t *testing.T) {
	obs := &livesRecorder{}
	s := newTestShip(nil, obs)

	for i := 0; i < 5; i++ {
		s.LoseLife()
	}
	assert.Equal(t, 0, s.Lives())
	assert.Equal(t, []int{2, 1, 0}, obs.seen, "no notifications past zero")
}

func TestShipReset(t *testing.T) {
	s := newTestShip(nil, nil)
	s.MoveLeft()
	s.LoseLife()
	s.Reset(physics.Vec2{X: 0, Y: -6}, 3)
	assert.Equal(t, 3, s.Lives())
	assert.Equal(t, physics.Vec2{X: 0, Y: -6}, s.Pos)
}

func TestEntitySetIDOnlyOnce(t *testing.T) {
	var e Entity
	e.SetID(4)
	e.SetID(9)
	assert.Equal(t, EntityID(4), e.ID())
}

func newTestSpawner(reg Registry, seed int64) *AsteroidSpawner {
	return NewAsteroidSpawner(SpawnerOptions{
		Bounds:    testBounds,
		Interval:  1.0,
		Radius:    0.6,
		BaseSpeed: 1.0,
		Ramp:      0.5,
		Registry:  reg,
		Rand:      rand.New(rand.NewSource(seed)),
	})
}

func TestSpawnAsteroidOnTopEdge(t *testing.T) {
	reg := &fakeRegistry{}
	sp := newTestSpawner(reg, 7)

	for i := 0; i < 20; i++ {
		a := sp.SpawnAsteroid()
		assert.Equal(t, testBounds.Max.Y, a.Pos.Y)
		assert.GreaterOrEqual(t, a.Pos.X, testBounds.Min.X)
		assert.LessOrEqual(t, a.Pos.X, testBounds.Max.X)
		assert.Equal(t, 1.0, a.Speed())
	}
	assert.Len(t, reg.objs, 20)
}

func TestSpawnAsteroidAt(t *testing.T) {
	reg := &fakeRegistry{}
	sp := newTestSpawner(reg, 1)
	a := sp.SpawnAsteroidAt(physics.Vec2{})
	assert.Equal(t, physics.Vec2{}, a.Pos)
	assert.NotZero(t, a.ID())
}

func TestSpawnerIsDeterministicForSeed(t *testing.T) {
	a := newTestSpawner(&fakeRegistry{}, 42).SpawnAsteroid()
	b := newTestSpawner(&fakeRegistry{}, 42).SpawnAsteroid()
	assert.Equal(t, a.Pos, b.Pos)
}

func TestSpawnerCadence(t *testing.T) {
	reg := &fakeRegistry{}
	sp := newTestSpawner(reg, 3)

	assert.Equal(t, 0, sp.Tick(0.5))
	assert.Equal(t, 1, sp.Tick(0.5))
	assert.Equal(t, 0, sp.Tick(0.9))
	assert.Equal(t, 2, sp.Tick(1.5))
	assert.Len(t, reg.objs, 3)

	sp.Reset()
	assert.Equal(t, 0, sp.Tick(0.99))
	assert.Equal(t, 0, sp.Tick(0))
}
