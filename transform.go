package collide

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

// Transform places an entity in the world: a translation, a per-axis scale
// and a rotation in radians, applied in the order scale, rotate, translate.
type Transform struct {
	Position vec.Vec2
	Scale    vec.Vec2
	Angle    float64
}

// NewTransform returns an unrotated, unscaled transform at position.
func NewTransform(position vec.Vec2) Transform {
	return Transform{Position: position, Scale: vec.Vec2{X: 1, Y: 1}}
}

func (t Transform) String() string {
	return fmt.Sprintf("pos=%v scale=%v angle=%.4f", t.Position, t.Scale, t.Angle)
}

// Rotation returns the unit rotation vector of Angle.
func (t Transform) Rotation() vec.Vec2 {
	return vec.ForAngle(t.Angle)
}

// Apply maps a point from local space to world space.
func (t Transform) Apply(local vec.Vec2) vec.Vec2 {
	return t.Position.Add(t.ApplyVector(local))
}

// ApplyVector maps a direction from local space to world space, ignoring translation.
func (t Transform) ApplyVector(local vec.Vec2) vec.Vec2 {
	scaled := local.Mult(t.Scale)
	if t.Angle == 0 {
		return scaled
	}
	return scaled.RotateComplex(t.Rotation())
}

// Inverse maps a point from world space back to local space.
// A zero scale component maps to zero on that axis.
func (t Transform) Inverse(world vec.Vec2) vec.Vec2 {
	p := world.Sub(t.Position)
	if t.Angle != 0 {
		p = p.UnrotateComplex(t.Rotation())
	}
	if t.Scale.X != 0 {
		p.X /= t.Scale.X
	} else {
		p.X = 0
	}
	if t.Scale.Y != 0 {
		p.Y /= t.Scale.Y
	} else {
		p.Y = 0
	}
	return p
}

// IsAxisAligned reports whether the rotation is a whole number of turns.
func (t Transform) IsAxisAligned() bool {
	return math.Mod(t.Angle, 2*math.Pi) == 0
}

// Translate returns t moved by d.
func (t Transform) Translate(d vec.Vec2) Transform {
	t.Position = t.Position.Add(d)
	return t
}

// Entity owns colliders and rigid bodies. The physics core reads and writes
// only its Transform; everything else is for the game.
type Entity struct {
	ID        uint64
	Name      string
	Transform Transform
	UserData  any
}

// NewEntity returns an entity at position with identity scale and rotation.
func NewEntity(name string, position vec.Vec2) *Entity {
	return &Entity{Name: name, Transform: NewTransform(position)}
}

func (e *Entity) String() string {
	if e == nil {
		return "<nil entity>"
	}
	return fmt.Sprintf("%s#%d", e.Name, e.ID)
}
