package collide

import (
	"errors"
	"math"

	"github.com/setanarut/vec"
)

const (
	infinity     float64 = math.MaxFloat64
	magicEpsilon float64 = 1e-9
)

var (
	// ErrInvalidMass is returned when a dynamic body is given a mass that is
	// zero, negative, NaN or infinite.
	ErrInvalidMass = errors.New("collide: mass must be positive and finite")

	// ErrWorldLocked is returned when colliders or bodies are added or removed
	// while a tick is in progress. Use World.AddPostStepCallback instead.
	ErrWorldLocked = errors.New("collide: world is locked during a step")

	// ErrDetached is returned for a collider or body that has no entity.
	ErrDetached = errors.New("collide: not attached to an entity")

	// ErrBodyMismatch is returned when a collider's body belongs to another entity.
	ErrBodyMismatch = errors.New("collide: collider and body belong to different entities")

	// ErrDegenerateShape is returned for polygons without area.
	ErrDegenerateShape = errors.New("collide: degenerate shape")

	// ErrInvalidConfig is wrapped by every Config validation failure.
	ErrInvalidConfig = errors.New("collide: invalid config")

	// ErrInvalidMaterial is wrapped by every Material validation failure.
	ErrInvalidMaterial = errors.New("collide: invalid material")

	// ErrUnknownShape is returned by the narrow phase for an unknown ShapeKind.
	ErrUnknownShape = errors.New("collide: unknown shape kind")
)

var (
	zeroVec vec.Vec2
	axisX   = vec.Vec2{X: 1, Y: 0}
	axisY   = vec.Vec2{X: 0, Y: 1}
)

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// axisComponent returns the x (axis 0) or y (axis 1) component of v.
func axisComponent(v vec.Vec2, axis int) float64 {
	if axis == 0 {
		return v.X
	}
	return v.Y
}

func axisVector(axis int) vec.Vec2 {
	if axis == 0 {
		return axisX
	}
	return axisY
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

func absVec(a vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: math.Abs(a.X), Y: math.Abs(a.Y)}
}

// project returns the interval covered by verts along axis.
func project(verts []vec.Vec2, axis vec.Vec2) (min, max float64) {
	min, max = infinity, -infinity
	for _, p := range verts {
		d := p.Dot(axis)
		min = math.Min(min, d)
		max = math.Max(max, d)
	}
	return min, max
}

func centroid(verts []vec.Vec2) vec.Vec2 {
	var sum vec.Vec2
	for _, p := range verts {
		sum = sum.Add(p)
	}
	if len(verts) == 0 {
		return sum
	}
	return sum.Scale(1 / float64(len(verts)))
}
