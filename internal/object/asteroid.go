package object

import (
	"github.com/tomz197/laserfall/internal/physics"
)

// Asteroid is a falling rock that speeds up the longer it lives.
type Asteroid struct {
	Entity
	Radius float64 // Collision/draw radius

	baseSpeed float64 // Speed at spawn
	ramp      float64 // Speed gained per second of age
	speed     float64 // Current downward speed
	age       float64 // Seconds since spawn
}

// NewAsteroid creates an asteroid at pos falling at baseSpeed, gaining ramp per second.
func NewAsteroid(pos physics.Vec2, radius, baseSpeed, ramp float64) *Asteroid {
	return &Asteroid{
		Entity:    Entity{Pos: pos},
		Radius:    radius,
		baseSpeed: baseSpeed,
		ramp:      ramp,
		speed:     baseSpeed,
	}
}

// Speed returns the current downward speed.
func (a *Asteroid) Speed() float64 {
	return a.speed
}

// Age returns the seconds elapsed since spawn.
func (a *Asteroid) Age() float64 {
	return a.age
}

// Update moves the asteroid down and ramps its speed.
// Asteroids that fall past the bottom edge are removed.
func (a *Asteroid) Update(ctx UpdateContext) (bool, error) {
	if a.destroyed {
		return true, nil
	}

	dt := ctx.Delta.Seconds()
	if dt <= 0 {
		return false, nil
	}

	a.Pos.Y -= a.speed * dt
	a.age += dt
	a.speed = a.baseSpeed + a.ramp*a.age

	if a.Pos.Y < ctx.Bounds.Min.Y-a.Radius {
		return true, nil
	}
	return false, nil
}

// Draw renders the asteroid as a blob of cells covering its radius.
func (a *Asteroid) Draw(ctx DrawContext) error {
	if a.destroyed {
		return nil
	}
	ctx.Canvas.PlotDisc(a.Pos, a.Radius, '@')
	return nil
}

// GetRadius returns the asteroid's collision radius.
func (a *Asteroid) GetRadius() float64 {
	return a.Radius
}
