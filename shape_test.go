package collide_test

import (
	"math"
	"testing"

	"github.com/setanarut/collide"
	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolygonShapeHull(t *testing.T) {
	// clockwise square with an interior point
	shape, err := collide.NewPolygonShape([]vec.Vec2{
		{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 0},
	})
	require.NoError(t, err)
	require.Equal(t, 4, shape.Count())

	var area float64
	for i := range shape.Count() {
		a := shape.Vert((i + shape.Count() - 1) % shape.Count())
		b := shape.Vert(i)
		area += a.Cross(b)
	}
	assert.InDelta(t, 8.0, area, 1e-12, "hull must be counter-clockwise with area 4")
}

func TestNewPolygonShapeDegenerate(t *testing.T) {
	_, err := collide.NewPolygonShape([]vec.Vec2{{X: 0}, {X: 1}})
	assert.ErrorIs(t, err, collide.ErrDegenerateShape)

	_, err = collide.NewPolygonShape([]vec.Vec2{{X: 0}, {X: 1}, {X: 2}, {X: 3}})
	assert.ErrorIs(t, err, collide.ErrDegenerateShape)

	_, err = collide.NewPolygonShape([]vec.Vec2{{X: 0}, {X: 1}, {X: math.NaN(), Y: 1}})
	assert.ErrorIs(t, err, collide.ErrDegenerateShape)
}

func TestFilterReject(t *testing.T) {
	tests := []struct {
		name string
		a, b collide.Filter
		want bool
	}{
		{"all", collide.FilterAll, collide.FilterAll, false},
		{"none", collide.FilterAll, collide.FilterNone, true},
		{"same group", collide.Filter{Group: 3, Layer: 1, Mask: 1}, collide.Filter{Group: 3, Layer: 1, Mask: 1}, true},
		{"other group", collide.Filter{Group: 3, Layer: 1, Mask: 1}, collide.Filter{Group: 4, Layer: 1, Mask: 1}, false},
		{"layer not in mask", collide.Filter{Layer: 1, Mask: 2}, collide.Filter{Layer: 1, Mask: 1}, true},
		{"layers in masks", collide.Filter{Layer: 1, Mask: 2}, collide.Filter{Layer: 2, Mask: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Reject(tt.b))
			assert.Equal(t, tt.want, tt.b.Reject(tt.a), "not symmetric")
		})
	}
}

func TestColliderBoundsFollowTransform(t *testing.T) {
	e := collide.NewEntity("box", vec.Vec2{X: 10, Y: 5})
	c := collide.NewBoxCollider(e, nil, 2, 1)
	c.CenterOffset = vec.Vec2{X: 1}

	bb := c.Bounds()
	assert.Equal(t, vec.Vec2{X: 10, Y: 4.5}, bb.Min)
	assert.Equal(t, vec.Vec2{X: 12, Y: 5.5}, bb.Max)

	e.Transform.Scale = vec.Vec2{X: 2, Y: -2}
	bb = c.Bounds()
	assert.Equal(t, vec.Vec2{X: 10, Y: 4}, bb.Min)
	assert.Equal(t, vec.Vec2{X: 14, Y: 6}, bb.Max)

	e.Transform = collide.NewTransform(vec.Vec2{})
	e.Transform.Angle = math.Pi / 2
	c.CenterOffset = vec.Vec2{}
	bb = c.Bounds()
	assert.InDelta(t, -0.5, bb.Min.X, 1e-9)
	assert.InDelta(t, -1.0, bb.Min.Y, 1e-9)
	assert.InDelta(t, 0.5, bb.Max.X, 1e-9)
	assert.InDelta(t, 1.0, bb.Max.Y, 1e-9)
}

func TestColliderContainsPoint(t *testing.T) {
	e := collide.NewEntity("diamond", vec.Vec2{})
	e.Transform.Angle = math.Pi / 4
	c := collide.NewBoxCollider(e, nil, 2, 2)

	assert.True(t, c.ContainsPoint(vec.Vec2{X: 1.4}))
	assert.False(t, c.ContainsPoint(vec.Vec2{X: 0.9, Y: 0.9}))

	poly, err := collide.NewPolygonCollider(collide.NewEntity("tri", vec.Vec2{X: 5}), nil,
		[]vec.Vec2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}})
	require.NoError(t, err)
	assert.True(t, poly.ContainsPoint(vec.Vec2{X: 5.5, Y: 0.5}))
	assert.False(t, poly.ContainsPoint(vec.Vec2{X: 6.5, Y: 1.5}))
}

func TestNewBoxColliderBounds(t *testing.T) {
	e := collide.NewEntity("crate", vec.Vec2{X: 10, Y: 10})
	c := collide.NewBoxColliderBounds(e, nil, collide.NewBounds(vec.Vec2{X: 1, Y: -1}, vec.Vec2{X: 3, Y: 2}))

	assert.Equal(t, vec.Vec2{X: 2, Y: 3}, c.Size)
	assert.Equal(t, vec.Vec2{X: 2, Y: 0.5}, c.CenterOffset)
	bb := c.Bounds()
	assert.Equal(t, vec.Vec2{X: 11, Y: 9}, bb.Min)
	assert.Equal(t, vec.Vec2{X: 13, Y: 12}, bb.Max)
}

func TestColliderAreaAndMass(t *testing.T) {
	e := collide.NewEntity("slab", vec.Vec2{X: 4})
	e.Transform.Angle = 0.3
	box := collide.NewBoxCollider(e, nil, 2, 3)
	box.Material.Density = 2
	assert.InDelta(t, 6.0, box.Area(), 1e-12, "rotation and position do not change the area")
	assert.InDelta(t, 12.0, box.Mass(), 1e-12)

	e.Transform.Scale = vec.Vec2{X: -2, Y: 1}
	assert.InDelta(t, 12.0, box.Area(), 1e-12)

	tri, err := collide.NewPolygonCollider(collide.NewEntity("tri", vec.Vec2{}), nil, []vec.Vec2{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2},
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, tri.Area(), 1e-12)
	assert.InDelta(t, 2.0, tri.Mass(), 1e-12, "default density is 1")
}
