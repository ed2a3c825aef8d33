package physics

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCirclesOverlap(t *testing.T) {
	origin := Vec2{}
	assert.True(t, CirclesOverlap(origin, 0.5, origin, 0.5), "co-located circles collide")
	assert.True(t, CirclesOverlap(origin, 0.5, Vec2{X: 1}, 0.5), "touching circles collide")
	assert.False(t, CirclesOverlap(origin, 0.5, Vec2{X: 1.01}, 0.5))
	assert.True(t, CirclesOverlap(origin, 0, origin, 0), "zero radius at same point")
}

func TestPointInCircle(t *testing.T) {
	c := Vec2{X: 2, Y: -1}
	assert.True(t, PointInCircle(c, c, 0))
	assert.True(t, PointInCircle(Vec2{X: 2, Y: -0.5}, c, 0.5))
	assert.False(t, PointInCircle(Vec2{X: 2, Y: 0}, c, 0.5))
}

func TestVec2(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	assert.Equal(t, 5.0, v.Len())
	assert.Equal(t, Vec2{X: 4, Y: 3}, v.Add(Vec2{X: 1, Y: -1}))
	assert.Equal(t, Vec2{X: 6, Y: 8}, v.Scale(2))
	assert.InDelta(t, 5.0, Distance(Vec2{}, v), 1e-9)
}

func TestRect(t *testing.T) {
	r := Centered(12, 8)
	assert.Equal(t, 24.0, r.Width())
	assert.Equal(t, 16.0, r.Height())
	assert.True(t, r.Contains(Vec2{}))
	assert.True(t, r.Contains(Vec2{X: 12, Y: -8}))
	assert.False(t, r.Contains(Vec2{X: 0, Y: 8.01}))
}

func queryAll(g *SpatialGrid, p Vec2) []int {
	var got []int
	g.QueryAround(p, func(i int) bool {
		got = append(got, i)
		return false
	})
	sort.Ints(got)
	return got
}

func TestSpatialGridFindsNeighbours(t *testing.T) {
	g := NewSpatialGrid(Centered(12, 8), 2)
	g.Insert(Vec2{X: 0, Y: 0}, 0)
	g.Insert(Vec2{X: 1.5, Y: 1.5}, 1)
	g.Insert(Vec2{X: 10, Y: 7}, 2)

	assert.Equal(t, []int{0, 1}, queryAll(g, Vec2{X: 0.5, Y: 0.5}))
	assert.Equal(t, []int{2}, queryAll(g, Vec2{X: 11, Y: 7.5}))
}

func TestSpatialGridDoesNotWrap(t *testing.T) {
	g := NewSpatialGrid(Centered(12, 8), 2)
	g.Insert(Vec2{X: -11.5, Y: 0}, 0)

	assert.Empty(t, queryAll(g, Vec2{X: 11.5, Y: 0}))
}

func TestSpatialGridClampsOutOfBounds(t *testing.T) {
	g := NewSpatialGrid(Centered(12, 8), 2)
	g.Insert(Vec2{X: 0, Y: -40}, 0)

	assert.Equal(t, []int{0}, queryAll(g, Vec2{X: 0, Y: -7.9}))
}

func TestSpatialGridClearAndStop(t *testing.T) {
	g := NewSpatialGrid(Centered(4, 4), 4)
	g.Insert(Vec2{}, 0)
	g.Insert(Vec2{}, 1)

	calls := 0
	g.QueryAround(Vec2{}, func(int) bool {
		calls++
		return true
	})
	assert.Equal(t, 1, calls)

	g.Clear()
	assert.Empty(t, queryAll(g, Vec2{}))
}
