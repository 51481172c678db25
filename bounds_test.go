package collide_test

import (
	"math"
	"testing"

	"github.com/setanarut/collide"
	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
)

func TestBoundsIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b collide.Bounds
		want bool
	}{
		{"overlap", collide.NewBoundsForExtents(vec.Vec2{}, 1, 1), collide.NewBoundsForExtents(vec.Vec2{X: 1.5}, 1, 1), true},
		{"touching edges", collide.NewBoundsForExtents(vec.Vec2{}, 1, 1), collide.NewBoundsForExtents(vec.Vec2{X: 2}, 1, 1), true},
		{"apart on x", collide.NewBoundsForExtents(vec.Vec2{}, 1, 1), collide.NewBoundsForExtents(vec.Vec2{X: 3}, 1, 1), false},
		{"apart on y", collide.NewBoundsForExtents(vec.Vec2{}, 1, 1), collide.NewBoundsForExtents(vec.Vec2{Y: -2.5}, 1, 1), false},
		{"contained", collide.NewBoundsForExtents(vec.Vec2{}, 5, 5), collide.NewBoundsForExtents(vec.Vec2{X: 1}, 1, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(tt.a), "not symmetric")
		})
	}
}

func TestNewBoundsOrdersCorners(t *testing.T) {
	bb := collide.NewBounds(vec.Vec2{X: 3, Y: -1}, vec.Vec2{X: -2, Y: 4})
	assert.Equal(t, vec.Vec2{X: -2, Y: -1}, bb.Min)
	assert.Equal(t, vec.Vec2{X: 3, Y: 4}, bb.Max)
	assert.Equal(t, 25.0, bb.Area())
	assert.Equal(t, vec.Vec2{X: 0.5, Y: 1.5}, bb.Center())
}

func TestBoundsOverlapAndMerge(t *testing.T) {
	a := collide.NewBounds(vec.Vec2{}, vec.Vec2{X: 2, Y: 2})
	b := collide.NewBounds(vec.Vec2{X: 1.5, Y: 1}, vec.Vec2{X: 4, Y: 5})

	assert.Equal(t, vec.Vec2{X: 0.5, Y: 1}, a.Overlap(b))
	m := a.Merge(b)
	assert.Equal(t, vec.Vec2{}, m.Min)
	assert.Equal(t, vec.Vec2{X: 4, Y: 5}, m.Max)
	assert.True(t, m.Contains(a))
	assert.True(t, m.Contains(b))
	assert.False(t, a.Contains(m))
}

func TestBoundsSegmentQuery(t *testing.T) {
	bb := collide.NewBounds(vec.Vec2{X: -1, Y: -1}, vec.Vec2{X: 1, Y: 1})

	alpha, n := bb.SegmentQuery(vec.Vec2{X: -3, Y: 0}, vec.Vec2{X: 3, Y: 0})
	assert.InDelta(t, 2.0/6.0, alpha, 1e-12)
	assert.Equal(t, vec.Vec2{X: -1, Y: 0}, n)

	alpha, n = bb.SegmentQuery(vec.Vec2{X: 0.5, Y: 4}, vec.Vec2{X: 0.5, Y: -4})
	assert.InDelta(t, 3.0/8.0, alpha, 1e-12)
	assert.Equal(t, vec.Vec2{X: 0, Y: 1}, n)

	alpha, _ = bb.SegmentQuery(vec.Vec2{X: -3, Y: 2}, vec.Vec2{X: 3, Y: 2})
	assert.Equal(t, math.MaxFloat64, alpha)
	assert.False(t, bb.IntersectsSegment(vec.Vec2{X: -3, Y: 2}, vec.Vec2{X: 3, Y: 2}))

	// starts inside
	alpha, _ = bb.SegmentQuery(vec.Vec2{}, vec.Vec2{X: 5})
	assert.Equal(t, 0.0, alpha)

	// stops short
	assert.False(t, bb.IntersectsSegment(vec.Vec2{X: -5}, vec.Vec2{X: -2}))
}
