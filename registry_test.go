package collide_test

import (
	"math"
	"testing"

	"github.com/setanarut/collide"
	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIDsAndLookup(t *testing.T) {
	w, err := collide.NewWorld(nil)
	require.NoError(t, err)

	a := addBox(t, w, "a", vec.Vec2{}, 1, 1, 1)
	b := addBox(t, w, "b", vec.Vec2{X: 5}, 1, 1, 0)
	r := w.Registry()

	assert.Equal(t, uint64(1), a.ID())
	assert.Equal(t, uint64(2), b.ID())
	assert.Equal(t, uint64(1), a.Body.ID())
	assert.NotEqual(t, a.Entity.ID, b.Entity.ID)
	assert.Equal(t, 2, r.EntityCount())

	got, ok := r.Collider(2)
	require.True(t, ok)
	assert.Same(t, b, got)
	_, ok = r.Collider(9)
	assert.False(t, ok)

	body, ok := r.BodyOf(a.Entity)
	require.True(t, ok)
	assert.Same(t, a.Body, body)

	var ids []uint64
	for c := range r.Colliders() {
		ids = append(ids, c.ID())
	}
	assert.Equal(t, []uint64{1, 2}, ids)

	var bodies []*collide.RigidBody
	for b := range r.Bodies() {
		bodies = append(bodies, b)
	}
	assert.Equal(t, []*collide.RigidBody{a.Body}, bodies)

	require.NoError(t, w.RemoveCollider(a))
	assert.Error(t, w.RemoveCollider(a))
	assert.Equal(t, 2, r.EntityCount(), "the body still holds entity a")
	require.NoError(t, w.RemoveEntity(a.Entity))
	assert.Equal(t, 1, r.EntityCount())
}

func TestRegistryInGroup(t *testing.T) {
	w, err := collide.NewWorld(nil)
	require.NoError(t, err)

	a := addBox(t, w, "a", vec.Vec2{}, 1, 1, 0)
	addBox(t, w, "b", vec.Vec2{X: 5}, 1, 1, 0)
	a.Filter.Group = 4

	var found []*collide.Collider
	for c := range w.Registry().InGroup(4) {
		found = append(found, c)
	}
	assert.Equal(t, []*collide.Collider{a}, found)
}

func TestQueryPointAndBounds(t *testing.T) {
	w, err := collide.NewWorld(nil)
	require.NoError(t, err)

	crate := addBox(t, w, "crate", vec.Vec2{X: 5}, 2, 2, 0)
	e := collide.NewEntity("diamond", vec.Vec2{Y: 5})
	e.Transform.Angle = math.Pi / 4
	diamond := collide.NewBoxCollider(e, nil, 2, 2)
	require.NoError(t, w.AddCollider(diamond))
	r := w.Registry()

	var hits []*collide.Collider
	collect := func(c *collide.Collider) { hits = append(hits, c) }

	r.QueryPoint(vec.Vec2{X: 5.5, Y: 0.5}, collide.FilterAll, collect)
	assert.Equal(t, []*collide.Collider{crate}, hits)

	// inside the diamond's bounds but outside the diamond
	hits = nil
	r.QueryPoint(vec.Vec2{X: 1.1, Y: 6.1}, collide.FilterAll, collect)
	assert.Empty(t, hits)

	hits = nil
	r.QueryBounds(collide.NewBounds(vec.Vec2{X: -10, Y: -10}, vec.Vec2{X: 10, Y: 10}), collide.FilterAll, collect)
	assert.Equal(t, []*collide.Collider{crate, diamond}, hits)

	hits = nil
	r.QueryBounds(collide.NewBounds(vec.Vec2{X: -10, Y: -10}, vec.Vec2{X: 10, Y: 10}), collide.FilterNone, collect)
	assert.Empty(t, hits)
}

func TestRaycast(t *testing.T) {
	w, err := collide.NewWorld(nil)
	require.NoError(t, err)

	near := addBox(t, w, "near", vec.Vec2{X: 5}, 2, 2, 0)
	far := addBox(t, w, "far", vec.Vec2{X: 8}, 2, 2, 0)
	zone := addBox(t, w, "zone", vec.Vec2{X: 2}, 1, 1, 0)
	zone.IsTrigger = true
	r := w.Registry()

	hit, ok := r.Raycast(vec.Vec2{}, vec.Vec2{X: 10}, collide.FilterAll)
	require.True(t, ok)
	assert.Same(t, near, hit.Collider)
	assert.InDelta(t, 0.4, hit.Fraction, 1e-12)
	assert.InDelta(t, 4.0, hit.Distance, 1e-12)
	assert.Equal(t, vec.Vec2{X: -1, Y: 0}, hit.Normal)
	assert.InDelta(t, 4.0, hit.Point.X, 1e-12)

	var all []*collide.Collider
	r.RaycastAll(vec.Vec2{}, vec.Vec2{X: 10}, collide.FilterAll, func(h collide.RaycastHit) {
		all = append(all, h.Collider)
	})
	assert.Equal(t, []*collide.Collider{near, far}, all)

	_, ok = r.Raycast(vec.Vec2{Y: 3}, vec.Vec2{X: 10, Y: 3}, collide.FilterAll)
	assert.False(t, ok)
	_, ok = r.Raycast(vec.Vec2{}, vec.Vec2{X: 10}, collide.FilterNone)
	assert.False(t, ok)
}

func TestRaycastRotatedBox(t *testing.T) {
	w, err := collide.NewWorld(nil)
	require.NoError(t, err)

	e := collide.NewEntity("diamond", vec.Vec2{Y: 5})
	e.Transform.Angle = math.Pi / 4
	diamond := collide.NewBoxCollider(e, nil, 2, 2)
	require.NoError(t, w.AddCollider(diamond))

	hit, ok := w.Registry().Raycast(vec.Vec2{X: -5, Y: 5.5}, vec.Vec2{X: 5, Y: 5.5}, collide.FilterAll)
	require.True(t, ok)
	assert.InDelta(t, 0.5-math.Sqrt2, hit.Point.X, 1e-9)
	assert.InDelta(t, (5.5-math.Sqrt2)/10, hit.Fraction, 1e-9)
	assert.InDelta(t, -math.Sqrt2/2, hit.Normal.X, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, hit.Normal.Y, 1e-9)
}
