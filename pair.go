package collide

import (
	"fmt"

	"github.com/setanarut/vec"
)

// PairKey returns the key of the unordered pair {a, b}: PairKey(a, b) ==
// PairKey(b, a), and distinct unordered pairs map to distinct keys as long as
// ids stay below 2^32.
func PairKey(a, b uint64) uint64 {
	if a > b {
		a, b = b, a
	}
	return b*(b+1)/2 + a
}

// Contact describes the overlap of two colliders found in one tick.
//
// A is always the collider with the smaller id. Normal is a unit vector
// pointing from A toward B, and moving B by Penetration (or A by its
// negation) separates them.
type Contact struct {
	A, B *Collider
	Key  uint64

	Normal      vec.Vec2
	Depth       float64
	Penetration vec.Vec2

	// TimeOfImpact is the fraction of the tick at which the shapes first
	// touched. Rotated or polygonal pairs always report 1.
	TimeOfImpact float64

	// Points holds world-space contact points.
	Points []vec.Vec2

	// Trigger is set when either collider is a trigger. Trigger contacts are
	// reported but never resolved.
	Trigger bool

	stamp uint64
}

func (c *Contact) String() string {
	return fmt.Sprintf("contact{%d/%d n=%v d=%.4f t=%.4f trigger=%v}",
		c.A.id, c.B.id, c.Normal, c.Depth, c.TimeOfImpact, c.Trigger)
}

// Other returns the collider on the other side of the contact from c.
func (c *Contact) Other(col *Collider) *Collider {
	if c.A == col {
		return c.B
	}
	return c.A
}

// NormalFor returns the contact normal as seen from col: pointing from col
// toward the other collider.
func (c *Contact) NormalFor(col *Collider) vec.Vec2 {
	if c.B == col {
		return c.Normal.Neg()
	}
	return c.Normal
}

// Stamp returns the world step in which the contact was last detected.
func (c *Contact) Stamp() uint64 {
	return c.stamp
}

func (c *Contact) reset() {
	points := c.Points[:0]
	*c = Contact{Points: points}
}

func (c *Contact) copyFrom(other *Contact) {
	points := append(c.Points[:0], other.Points...)
	*c = *other
	c.Points = points
}

func (c *Contact) setPenetration(normal vec.Vec2, depth float64) {
	c.Normal = normal
	c.Depth = depth
	c.Penetration = normal.Scale(depth)
}
