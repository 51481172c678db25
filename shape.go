package collide

import (
	"fmt"
	"math"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/setanarut/vec"
)

// ShapeKind tags the geometry of a collider.
type ShapeKind uint8

const (
	// ShapeBox is a rectangle of the collider's Size.
	ShapeBox ShapeKind = iota
	// ShapePolygon is a convex polygon with counter-clockwise vertices.
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapePolygon:
		return "polygon"
	}
	return fmt.Sprintf("ShapeKind(%d)", uint8(k))
}

// Shape is the local geometry of a collider. Build polygons with NewPolygonShape.
type Shape struct {
	Kind  ShapeKind
	verts []vec.Vec2
}

// BoxShape returns the box shape. Its extents come from Collider.Size.
func BoxShape() Shape {
	return Shape{Kind: ShapeBox}
}

// Count returns the number of vertices.
func (s Shape) Count() int {
	if s.Kind == ShapeBox {
		return 4
	}
	return len(s.verts)
}

// Vert returns a local polygon vertex relative to the collider's CenterOffset.
func (s Shape) Vert(i int) vec.Vec2 {
	return s.verts[i]
}

// NoGroup never rejects a pair on group alone.
const NoGroup uint = 0

// AllLayers is every layer bit set.
const AllLayers uint32 = ^uint32(0)

// Filter decides which colliders may touch.
//
// Two colliders with the same non-zero Group never touch. Otherwise each
// collider's Layer must share a bit with the other's Mask.
type Filter struct {
	Group uint
	Layer uint32
	Mask  uint32
}

// FilterAll touches everything.
var FilterAll = Filter{Group: NoGroup, Layer: AllLayers, Mask: AllLayers}

// FilterNone touches nothing.
var FilterNone = Filter{Group: NoGroup, Layer: 0, Mask: 0}

// Reject reports whether colliders with filters f and other never touch.
func (f Filter) Reject(other Filter) bool {
	return (f.Group != NoGroup && f.Group == other.Group) ||
		(f.Layer&other.Mask) == 0 ||
		(other.Layer&f.Mask) == 0
}

// Collider is a collision volume attached to an entity. A collider without a
// Body is static.
//
// Bounds and vertices are recomputed from the entity transform on every call.
type Collider struct {
	Entity *Entity
	Body   *RigidBody

	Shape Shape
	// CenterOffset is the shape center in the entity's local space.
	CenterOffset vec.Vec2
	// Size is the full width and height of a box, in local units.
	Size vec.Vec2

	// IsTrigger colliders report TriggerEnter, TriggerStay and TriggerExit
	// and are never resolved.
	IsTrigger bool
	Filter    Filter
	// IgnoreSelfCollisions skips pairs with another collider of the same entity.
	IgnoreSelfCollisions bool
	Material             Material
	Enabled              bool
	UserData             any

	id          uint64
	world       *World
	isColliding bool
}

func (c *Collider) String() string {
	return fmt.Sprintf("collider#%d(%v of %v)", c.id, c.Shape.Kind, c.Entity)
}

// ID returns the id assigned by the world, or 0 before the collider is added.
func (c *Collider) ID() uint64 {
	return c.id
}

// World returns the world the collider was added to.
func (c *Collider) World() *World {
	return c.world
}

// IsColliding reports whether the collider touched anything in the last step.
func (c *Collider) IsColliding() bool {
	return c.isColliding
}

// SetTrigger wakes up the body, then sets IsTrigger.
func (c *Collider) SetTrigger(trigger bool) {
	c.Body.Wake()
	c.IsTrigger = trigger
}

// SetFilter wakes up the body, then sets Filter.
func (c *Collider) SetFilter(filter Filter) {
	c.Body.Wake()
	c.Filter = filter
}

// SetMaterial wakes up the body, then sets Material. An invalid material
// is returned as an error and not set.
func (c *Collider) SetMaterial(m Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c.Body.Wake()
	c.Material = m
	return nil
}

// SetEnabled wakes up the body, then enables or disables the collider.
// Disabled colliders are left out of the broad phase.
func (c *Collider) SetEnabled(enabled bool) {
	c.Body.Wake()
	c.Enabled = enabled
}

func (c *Collider) transform() Transform {
	return c.Entity.Transform
}

// attached returns ErrDetached or ErrBodyMismatch for a collider that cannot
// take part in a step.
func (c *Collider) attached() error {
	switch {
	case c.Entity == nil, c.Body != nil && c.Body.Entity == nil:
		return ErrDetached
	case c.Body != nil && c.Body.Entity != c.Entity:
		return ErrBodyMismatch
	}
	return nil
}

// Area returns the area of the shape under the entity's scale.
func (c *Collider) Area() float64 {
	var buf [8]vec.Vec2
	t := Transform{Scale: c.transform().Scale}
	verts := toCP(c.verticesAt(t, buf[:0]))
	return math.Abs(cp.AreaForPoly(len(verts), verts, 0))
}

// Mass returns Material.Density times Area.
func (c *Collider) Mass() float64 {
	return c.Material.Density * c.Area()
}

// Center returns the world position of the shape center.
func (c *Collider) Center() vec.Vec2 {
	return c.centerAt(c.transform())
}

func (c *Collider) centerAt(t Transform) vec.Vec2 {
	if c.Shape.Kind == ShapePolygon {
		var sum vec.Vec2
		for _, v := range c.Shape.verts {
			sum = sum.Add(v)
		}
		n := float64(len(c.Shape.verts))
		if n > 0 {
			return t.Apply(c.CenterOffset.Add(sum.Scale(1 / n)))
		}
	}
	return t.Apply(c.CenterOffset)
}

// HalfExtents returns half the world size of a box collider.
func (c *Collider) HalfExtents() vec.Vec2 {
	return absVec(c.Size.Mult(c.transform().Scale)).Scale(0.5)
}

// isAxisAligned reports whether the collider is a box whose entity is unrotated.
func (c *Collider) isAxisAligned() bool {
	return c.Shape.Kind == ShapeBox && c.transform().IsAxisAligned()
}

// Bounds returns the world bounding box under the entity's current transform.
func (c *Collider) Bounds() Bounds {
	return c.boundsAt(c.transform())
}

func (c *Collider) boundsAt(t Transform) Bounds {
	if c.Shape.Kind == ShapeBox && t.IsAxisAligned() {
		half := absVec(c.Size.Mult(t.Scale)).Scale(0.5)
		return NewBoundsForExtents(t.Apply(c.CenterOffset), half.X, half.Y)
	}
	var buf [8]vec.Vec2
	return NewBoundsForPoints(c.verticesAt(t, buf[:0]))
}

// Vertices appends the world-space vertices, counter-clockwise, to dst and
// returns the result.
func (c *Collider) Vertices(dst []vec.Vec2) []vec.Vec2 {
	return c.verticesAt(c.transform(), dst)
}

func (c *Collider) verticesAt(t Transform, dst []vec.Vec2) []vec.Vec2 {
	start := len(dst)
	switch c.Shape.Kind {
	case ShapeBox:
		hw, hh := c.Size.X/2, c.Size.Y/2
		o := c.CenterOffset
		dst = append(dst,
			t.Apply(vec.Vec2{X: o.X + hw, Y: o.Y - hh}),
			t.Apply(vec.Vec2{X: o.X + hw, Y: o.Y + hh}),
			t.Apply(vec.Vec2{X: o.X - hw, Y: o.Y + hh}),
			t.Apply(vec.Vec2{X: o.X - hw, Y: o.Y - hh}),
		)
	case ShapePolygon:
		for _, v := range c.Shape.verts {
			dst = append(dst, t.Apply(c.CenterOffset.Add(v)))
		}
	}
	// a mirrored transform flips the winding
	if t.Scale.X*t.Scale.Y < 0 {
		slices.Reverse(dst[start:])
	}
	return dst
}

// immobile reports whether nothing can move the collider this step.
func (c *Collider) immobile() bool {
	b := c.Body
	return b == nil || b.Type == Static || b.sleeping
}

// fixed reports whether the collider can never move on its own.
func (c *Collider) fixed() bool {
	return c.Body == nil || c.Body.Type == Static
}

// ContainsPoint reports whether p lies inside the collider, edges included.
func (c *Collider) ContainsPoint(p vec.Vec2) bool {
	if c.isAxisAligned() {
		return c.Bounds().ContainsVect(p)
	}
	var buf [8]vec.Vec2
	return polygonContains(c.Vertices(buf[:0]), p)
}

// polygonContains tests p against every edge of a counter-clockwise polygon.
func polygonContains(verts []vec.Vec2, p vec.Vec2) bool {
	n := len(verts)
	if n < 3 {
		return false
	}
	a := verts[n-1]
	for _, b := range verts {
		if b.Sub(a).Cross(p.Sub(a)) < -magicEpsilon*math.Max(1, b.DistanceSq(a)) {
			return false
		}
		a = b
	}
	return true
}
