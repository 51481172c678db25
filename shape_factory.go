package collide

import (
	"fmt"
	"math"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/setanarut/vec"
)

// NewBoxCollider returns an enabled box collider of width w and height h
// centered on the entity. body may be nil for a static collider.
func NewBoxCollider(e *Entity, body *RigidBody, w, h float64) *Collider {
	return &Collider{
		Entity:   e,
		Body:     body,
		Shape:    BoxShape(),
		Size:     vec.Vec2{X: w, Y: h},
		Filter:   FilterAll,
		Material: DefaultMaterial,
		Enabled:  true,
	}
}

// NewBoxColliderBounds returns a box collider covering bb, given in the
// entity's local space.
func NewBoxColliderBounds(e *Entity, body *RigidBody, bb Bounds) *Collider {
	c := NewBoxCollider(e, body, bb.Max.X-bb.Min.X, bb.Max.Y-bb.Min.Y)
	c.CenterOffset = bb.Center()
	return c
}

// NewPolygonCollider returns an enabled collider for the convex hull of verts,
// given in the entity's local space.
func NewPolygonCollider(e *Entity, body *RigidBody, verts []vec.Vec2) (*Collider, error) {
	shape, err := NewPolygonShape(verts)
	if err != nil {
		return nil, err
	}
	return &Collider{
		Entity:   e,
		Body:     body,
		Shape:    shape,
		Filter:   FilterAll,
		Material: DefaultMaterial,
		Enabled:  true,
	}, nil
}

// NewPolygonShape returns the convex hull of verts, wound counter-clockwise.
// Concave input is wrapped by its hull. Fewer than three distinct corners,
// or a hull without area, is ErrDegenerateShape.
func NewPolygonShape(verts []vec.Vec2) (Shape, error) {
	if len(verts) < 3 {
		return Shape{}, fmt.Errorf("%w: polygon needs 3 vertices, got %d", ErrDegenerateShape, len(verts))
	}
	for _, v := range verts {
		if !isFinite(v.X) || !isFinite(v.Y) {
			return Shape{}, fmt.Errorf("%w: vertex %v is not finite", ErrDegenerateShape, v)
		}
	}
	hull := toCP(verts)
	count := cp.ConvexHull(len(hull), hull, nil, 0)
	hull = hull[:count]
	area := cp.AreaForPoly(count, hull, 0)
	if count < 3 || math.Abs(area) <= magicEpsilon {
		return Shape{}, fmt.Errorf("%w: polygon has no area", ErrDegenerateShape)
	}
	if area < 0 {
		slices.Reverse(hull)
	}
	out := make([]vec.Vec2, count)
	for i, v := range hull {
		out[i] = vec.Vec2{X: v.X, Y: v.Y}
	}
	return Shape{Kind: ShapePolygon, verts: out}, nil
}

// toCP copies verts into a new slice of cp vectors for the polygon helpers of cp.
func toCP(verts []vec.Vec2) []cp.Vector {
	out := make([]cp.Vector, len(verts))
	for i, v := range verts {
		out[i] = cp.Vector{X: v.X, Y: v.Y}
	}
	return out
}
