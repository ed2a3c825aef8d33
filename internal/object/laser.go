package object

import (
	"github.com/tomz197/laserfall/internal/physics"
)

// Laser is a bolt fired straight up by the ship.
type Laser struct {
	Entity
	Speed  float64 // Upward speed, units per second
	Radius float64 // Collision radius
}

// NewLaser creates a laser at pos travelling up at speed.
func NewLaser(pos physics.Vec2, speed, radius float64) *Laser {
	return &Laser{
		Entity: Entity{Pos: pos},
		Speed:  speed,
		Radius: radius,
	}
}

// Update moves the laser up. Lasers that leave through the top edge are removed.
func (l *Laser) Update(ctx UpdateContext) (bool, error) {
	if l.destroyed {
		return true, nil
	}

	dt := ctx.Delta.Seconds()
	if dt <= 0 {
		return false, nil
	}

	l.Pos.Y += l.Speed * dt

	if l.Pos.Y > ctx.Bounds.Max.Y+l.Radius {
		return true, nil
	}
	return false, nil
}

// Draw renders the laser.
func (l *Laser) Draw(ctx DrawContext) error {
	if l.destroyed {
		return nil
	}
	ctx.Canvas.Plot(l.Pos, '|')
	return nil
}
