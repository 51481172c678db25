package collide_test

import (
	"math"
	"testing"

	"github.com/setanarut/collide"
	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
)

func TestTransformApplyInverse(t *testing.T) {
	tr := collide.Transform{Position: vec.Vec2{X: 3, Y: -1}, Scale: vec.Vec2{X: 2, Y: 0.5}, Angle: math.Pi / 3}
	for _, local := range []vec.Vec2{{}, {X: 1}, {X: -2, Y: 4}, {X: 0.25, Y: -0.75}} {
		back := tr.Inverse(tr.Apply(local))
		assert.InDelta(t, local.X, back.X, 1e-12)
		assert.InDelta(t, local.Y, back.Y, 1e-12)
	}

	assert.Equal(t, vec.Vec2{X: 3, Y: -1}, tr.Apply(vec.Vec2{}))
	assert.False(t, tr.IsAxisAligned())
	assert.True(t, collide.NewTransform(vec.Vec2{}).IsAxisAligned())
	assert.True(t, collide.Transform{Angle: 2 * math.Pi}.IsAxisAligned())
}

func TestTransformRotatesAfterScaling(t *testing.T) {
	tr := collide.NewTransform(vec.Vec2{})
	tr.Scale = vec.Vec2{X: 2, Y: 1}
	tr.Angle = math.Pi / 2

	p := tr.Apply(vec.Vec2{X: 1})
	assert.InDelta(t, 0.0, p.X, 1e-12)
	assert.InDelta(t, 2.0, p.Y, 1e-12)

	moved := tr.Translate(vec.Vec2{X: 1})
	assert.Equal(t, vec.Vec2{X: 1}, moved.Position)
	assert.Equal(t, vec.Vec2{}, tr.Position, "Translate returns a copy")
}

func TestEntityString(t *testing.T) {
	var e *collide.Entity
	assert.Equal(t, "<nil entity>", e.String())
	assert.Equal(t, "hero#0", collide.NewEntity("hero", vec.Vec2{}).String())
}
