package object

import (
	"github.com/tomz197/laserfall/internal/physics"
)

// LifeObserver is notified whenever the ship's life count changes.
type LifeObserver interface {
	LivesChanged(lives int)
}

// ShipOptions configures a new ship.
type ShipOptions struct {
	Start       physics.Vec2
	Lives       int
	Step        float64 // Distance moved per Move* call
	Radius      float64
	LaserSpeed  float64
	LaserRadius float64
	Registry    Registry     // Receives lasers from SpawnLaser
	Observer    LifeObserver // May be nil
}

// Ship is the player-controlled craft. It moves in fixed steps and fires lasers upward.
type Ship struct {
	Entity
	Step   float64
	Radius float64

	lives       int
	laserSpeed  float64
	laserRadius float64
	registry    Registry
	observer    LifeObserver
}

// NewShip creates a ship at opts.Start with opts.Lives lives.
func NewShip(opts ShipOptions) *Ship {
	return &Ship{
		Entity:      Entity{Pos: opts.Start},
		Step:        opts.Step,
		Radius:      opts.Radius,
		lives:       opts.Lives,
		laserSpeed:  opts.LaserSpeed,
		laserRadius: opts.LaserRadius,
		registry:    opts.Registry,
		observer:    opts.Observer,
	}
}

// Lives returns the remaining lives.
func (s *Ship) Lives() int {
	return s.lives
}

// MoveLeft moves the ship one step along -x.
func (s *Ship) MoveLeft() { s.move(-s.Step, 0) }

// MoveRight moves the ship one step along +x.
func (s *Ship) MoveRight() { s.move(s.Step, 0) }

// MoveUp moves the ship one step along +y.
func (s *Ship) MoveUp() { s.move(0, s.Step) }

// MoveDown moves the ship one step along -y.
func (s *Ship) MoveDown() { s.move(0, -s.Step) }

func (s *Ship) move(dx, dy float64) {
	if s.destroyed {
		return
	}
	s.Pos.X += dx
	s.Pos.Y += dy
}

// SpawnLaser fires a laser from the ship's current position and registers it.
// Returns nil if the ship is destroyed or has no registry.
func (s *Ship) SpawnLaser() *Laser {
	if s.destroyed || s.registry == nil {
		return nil
	}
	l := NewLaser(s.Pos, s.laserSpeed, s.laserRadius)
	s.registry.Register(l)
	return l
}

// LoseLife takes one life. At zero lives further calls do nothing.
func (s *Ship) LoseLife() {
	if s.destroyed || s.lives <= 0 {
		return
	}
	s.lives--
	if s.observer != nil {
		s.observer.LivesChanged(s.lives)
	}
}

// Reset puts the ship back at pos with the given lives.
func (s *Ship) Reset(pos physics.Vec2, lives int) {
	s.Pos = pos
	s.lives = lives
	s.destroyed = false
}

// Update is a no-op; the ship only moves on explicit commands.
func (s *Ship) Update(_ UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders the ship as a small arrow pointing up. Wings are drawn first
// so the nose wins when the canvas is too coarse to separate them.
func (s *Ship) Draw(ctx DrawContext) error {
	ctx.Canvas.Plot(physics.Vec2{X: s.Pos.X - s.Radius, Y: s.Pos.Y}, '/')
	ctx.Canvas.Plot(physics.Vec2{X: s.Pos.X + s.Radius, Y: s.Pos.Y}, '\\')
	ctx.Canvas.Plot(s.Pos, 'A')
	return nil
}

// GetRadius returns the ship's collision radius.
func (s *Ship) GetRadius() float64 {
	return s.Radius
}
