package session

import (
	"github.com/tomz197/laserfall/internal/object"
	"github.com/tomz197/laserfall/internal/physics"
)

// ResolveCollisions applies laser and ship hits for the current positions
// without moving anything, then drops destroyed entities.
//
// Laser hits are resolved first, so an asteroid shot down in this pass can
// no longer cost the ship a life.
func (s *GameSession) ResolveCollisions() {
	if s.gameOver {
		return
	}
	s.checkLaserAsteroidCollisions()
	s.checkShipAsteroidCollisions()
	s.removeDestroyed()
}

// checkLaserAsteroidCollisions destroys each laser together with the
// earliest-registered asteroid it overlaps. A laser takes out at most one
// asteroid; each pair scores one point.
func (s *GameSession) checkLaserAsteroidCollisions() {
	if len(s.lasers) == 0 || len(s.asteroids) == 0 {
		return
	}

	s.grid.Clear()
	for i, a := range s.asteroids {
		if !a.IsDestroyed() {
			s.grid.Insert(a.Pos, i)
		}
	}

	for _, l := range s.lasers {
		if l.IsDestroyed() {
			continue
		}
		hit := -1
		s.grid.QueryAround(l.Pos, func(i int) bool {
			if hit >= 0 && i > hit {
				return false
			}
			a := s.asteroids[i]
			if a.IsDestroyed() {
				return false
			}
			if physics.CirclesOverlap(l.Pos, l.Radius, a.Pos, a.GetRadius()) {
				hit = i
			}
			return false
		})
		if hit < 0 {
			continue
		}
		l.MarkDestroyed()
		s.asteroids[hit].MarkDestroyed()
		s.addScore(1)
	}
}

// checkShipAsteroidCollisions destroys every asteroid touching the ship and
// takes a life for each, stopping once the game is over. The ship itself
// stays in play.
func (s *GameSession) checkShipAsteroidCollisions() {
	for _, a := range s.asteroids {
		if s.gameOver {
			return
		}
		if a.IsDestroyed() {
			continue
		}
		if physics.CirclesOverlap(s.ship.Pos, s.ship.GetRadius(), a.Pos, a.GetRadius()) {
			a.MarkDestroyed()
			s.ship.LoseLife()
		}
	}
}

// removeDestroyed drops destroyed asteroids and lasers from the session.
func (s *GameSession) removeDestroyed() {
	s.asteroids = compact(s, s.asteroids)
	s.lasers = compact(s, s.lasers)
}

type destructibleObject interface {
	object.Object
	object.Destructible
}

func compact[T destructibleObject](s *GameSession, objs []T) []T {
	kept := objs[:0]
	for _, obj := range objs {
		if obj.IsDestroyed() {
			delete(s.index, obj.ID())
			continue
		}
		kept = append(kept, obj)
	}
	clear(objs[len(kept):])
	return kept
}
