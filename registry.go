package collide

import (
	"iter"
	"slices"

	"github.com/setanarut/vec"
)

// Registry stores the colliders and bodies of a world in the order they
// were added, which is also id order.
type Registry struct {
	colliders      []*Collider
	bodies         []*RigidBody
	colliderIDs    uint64
	bodyIDs        uint64
	entityIDs      uint64
	entityRefCount map[*Entity]int
}

// NewRegistry returns an empty registry. Ids start at 1.
func NewRegistry() *Registry {
	return &Registry{entityRefCount: make(map[*Entity]int)}
}

func (r *Registry) addCollider(c *Collider) {
	r.colliderIDs++
	c.id = r.colliderIDs
	r.colliders = append(r.colliders, c)
	r.retainEntity(c.Entity)
}

func (r *Registry) removeCollider(c *Collider) bool {
	i := slices.Index(r.colliders, c)
	if i < 0 {
		return false
	}
	r.colliders = slices.Delete(r.colliders, i, i+1)
	r.releaseEntity(c.Entity)
	return true
}

func (r *Registry) addBody(b *RigidBody) {
	r.bodyIDs++
	b.id = r.bodyIDs
	r.bodies = append(r.bodies, b)
	r.retainEntity(b.Entity)
}

func (r *Registry) removeBody(b *RigidBody) bool {
	i := slices.Index(r.bodies, b)
	if i < 0 {
		return false
	}
	r.bodies = slices.Delete(r.bodies, i, i+1)
	r.releaseEntity(b.Entity)
	return true
}

// retainEntity hands out an id to entities that don't have one yet.
func (r *Registry) retainEntity(e *Entity) {
	if e == nil {
		return
	}
	if e.ID == 0 {
		r.entityIDs++
		e.ID = r.entityIDs
	} else if e.ID > r.entityIDs {
		r.entityIDs = e.ID
	}
	r.entityRefCount[e]++
}

func (r *Registry) releaseEntity(e *Entity) {
	if e == nil {
		return
	}
	if r.entityRefCount[e] <= 1 {
		delete(r.entityRefCount, e)
		return
	}
	r.entityRefCount[e]--
}

// ColliderCount returns the number of colliders.
func (r *Registry) ColliderCount() int {
	return len(r.colliders)
}

// BodyCount returns the number of bodies.
func (r *Registry) BodyCount() int {
	return len(r.bodies)
}

// EntityCount returns the number of entities with at least one collider or body.
func (r *Registry) EntityCount() int {
	return len(r.entityRefCount)
}

// Colliders yields every collider in id order.
func (r *Registry) Colliders() iter.Seq[*Collider] {
	return func(yield func(*Collider) bool) {
		for _, c := range r.colliders {
			if !yield(c) {
				return
			}
		}
	}
}

// Bodies yields every body in id order.
func (r *Registry) Bodies() iter.Seq[*RigidBody] {
	return func(yield func(*RigidBody) bool) {
		for _, b := range r.bodies {
			if !yield(b) {
				return
			}
		}
	}
}

// Collider returns the collider with the given id.
func (r *Registry) Collider(id uint64) (*Collider, bool) {
	i, ok := slices.BinarySearchFunc(r.colliders, id, func(c *Collider, id uint64) int {
		switch {
		case c.id < id:
			return -1
		case c.id > id:
			return 1
		}
		return 0
	})
	if !ok {
		return nil, false
	}
	return r.colliders[i], true
}

// CollidersOf returns the colliders attached to e.
func (r *Registry) CollidersOf(e *Entity) []*Collider {
	var out []*Collider
	for _, c := range r.colliders {
		if c.Entity == e {
			out = append(out, c)
		}
	}
	return out
}

// BodyOf returns the first body attached to e.
func (r *Registry) BodyOf(e *Entity) (*RigidBody, bool) {
	for _, b := range r.bodies {
		if b.Entity == e {
			return b, true
		}
	}
	return nil, false
}

// InGroup yields the colliders whose filter group is group.
func (r *Registry) InGroup(group uint) iter.Seq[*Collider] {
	return func(yield func(*Collider) bool) {
		for _, c := range r.colliders {
			if c.Filter.Group == group && !yield(c) {
				return
			}
		}
	}
}

// queryable reports whether c is visible to a query with filter.
func queryable(c *Collider, filter Filter) bool {
	return c.Enabled && c.Entity != nil && !c.Filter.Reject(filter)
}

// QueryPoint calls f for every enabled collider containing p that filter accepts.
func (r *Registry) QueryPoint(p vec.Vec2, filter Filter, f func(*Collider)) {
	for _, c := range r.colliders {
		if queryable(c, filter) && c.Bounds().ContainsVect(p) && c.ContainsPoint(p) {
			f(c)
		}
	}
}

// QueryBounds calls f for every enabled collider whose bounds touch bb and
// that filter accepts.
func (r *Registry) QueryBounds(bb Bounds, filter Filter, f func(*Collider)) {
	for _, c := range r.colliders {
		if queryable(c, filter) && c.Bounds().Intersects(bb) {
			f(c)
		}
	}
}

// RaycastHit describes where a segment first enters a collider.
type RaycastHit struct {
	Collider *Collider
	Point    vec.Vec2
	// Normal is the outward normal of the surface that was hit.
	Normal vec.Vec2
	// Fraction of the segment at the hit, in [0, 1].
	Fraction float64
	Distance float64
}

// RaycastAll calls f for every enabled, non-trigger collider that the
// segment start->end enters, in registry order.
func (r *Registry) RaycastAll(start, end vec.Vec2, filter Filter, f func(RaycastHit)) {
	length := start.Distance(end)
	var buf [8]vec.Vec2
	for _, c := range r.colliders {
		if !queryable(c, filter) || c.IsTrigger {
			continue
		}
		if !c.Bounds().IntersectsSegment(start, end) {
			continue
		}
		var alpha float64
		var normal vec.Vec2
		if c.isAxisAligned() {
			alpha, normal = c.Bounds().SegmentQuery(start, end)
			if alpha == 0 && normal == zeroVec {
				normal = start.Sub(end).Unit()
			}
		} else {
			alpha, normal = segmentQueryPolygon(c.Vertices(buf[:0]), start, end)
		}
		if alpha == infinity {
			continue
		}
		f(RaycastHit{
			Collider: c,
			Point:    start.Lerp(end, alpha),
			Normal:   normal,
			Fraction: alpha,
			Distance: alpha * length,
		})
	}
}

// Raycast returns the first collider hit by the segment start->end.
// Ties go to the collider with the smaller id.
func (r *Registry) Raycast(start, end vec.Vec2, filter Filter) (RaycastHit, bool) {
	best := RaycastHit{Fraction: infinity}
	r.RaycastAll(start, end, filter, func(hit RaycastHit) {
		if hit.Fraction < best.Fraction {
			best = hit
		}
	})
	return best, best.Collider != nil
}
