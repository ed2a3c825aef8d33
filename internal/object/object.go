package object

import (
	"time"

	"github.com/tomz197/laserfall/internal/draw"
	"github.com/tomz197/laserfall/internal/physics"
)

// EntityID identifies a registered entity within one session.
// Zero means "not registered yet".
type EntityID uint64

// Registry takes ownership of newly created entities and assigns their ids.
type Registry interface {
	Register(obj Object) EntityID
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta    time.Duration
	Bounds   physics.Rect
	Registry Registry
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
}

// Object is a drawable and updatable game entity.
type Object interface {
	// ID returns the id assigned at registration.
	ID() EntityID

	// Update advances the object by ctx.Delta. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw plots the object onto ctx.Canvas.
	Draw(ctx DrawContext) error
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Entity is the positional and lifecycle data shared by ship, asteroid and laser.
type Entity struct {
	Pos       physics.Vec2
	id        EntityID
	destroyed bool
}

// ID returns the entity's registry id.
func (e *Entity) ID() EntityID {
	return e.id
}

// SetID is called by the registry exactly once.
func (e *Entity) SetID(id EntityID) {
	if e.id == 0 {
		e.id = id
	}
}

// Position returns the entity's current position.
func (e *Entity) Position() physics.Vec2 {
	return e.Pos
}

// MarkDestroyed marks the entity for removal (implements Destructible).
func (e *Entity) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the entity is marked for destruction (implements Destructible).
func (e *Entity) IsDestroyed() bool {
	return e.destroyed
}
