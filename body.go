package collide

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

// BodyType for bodies; Dynamic, Kinematic or Static
type BodyType uint8

const (
	// Dynamic bodies are moved by forces, gravity and collision response.
	Dynamic BodyType = 0
	// Kinematic bodies move by their velocity only and push dynamic bodies
	// like an infinite mass would.
	Kinematic BodyType = 1
	// Static bodies never move.
	Static BodyType = 2
)

func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Kinematic:
		return "kinematic"
	case Static:
		return "static"
	}
	return fmt.Sprintf("BodyType(%d)", uint8(t))
}

// BodyVelocityFunc is rigid body velocity update function type.
type BodyVelocityFunc func(body *RigidBody, gravity vec.Vec2, dt float64)

// BodyPositionFunc is rigid body position update function type.
type BodyPositionFunc func(body *RigidBody, dt float64)

// RigidBody is the motion state of an entity. Position and angle live in the
// entity's Transform; the body integrates them every step.
type RigidBody struct {
	Entity *Entity
	Type   BodyType

	Velocity vec.Vec2
	// Acceleration is the acceleration applied in the last step.
	Acceleration    vec.Vec2
	AngularVelocity float64

	// Drag and AngularDrag damp velocity by 1/(1+drag*dt) per step.
	Drag         float64
	AngularDrag  float64
	GravityScale float64
	UseGravity   bool
	CanSleep     bool

	UserData any

	velocityFunc BodyVelocityFunc
	positionFunc BodyPositionFunc

	id          uint64
	world       *World
	mass        float64
	massInverse float64
	force       vec.Vec2
	sleeping    bool
	stillTime   float64

	startPosition vec.Vec2
	startAngle    float64
}

// NewRigidBody returns an awake body for e that uses gravity and may sleep.
// Dynamic bodies need a positive, finite mass; the mass of the other types
// is only kept for a later SetType.
func NewRigidBody(e *Entity, bodyType BodyType, mass float64) (*RigidBody, error) {
	body := &RigidBody{
		Entity:       e,
		Type:         bodyType,
		GravityScale: 1,
		UseGravity:   true,
		CanSleep:     true,
		velocityFunc: BodyUpdateVelocity,
		positionFunc: BodyUpdatePosition,
	}
	if bodyType == Dynamic || mass != 0 {
		if err := body.SetMass(mass); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// NewStaticBody returns a body that never moves.
func NewStaticBody(e *Entity) *RigidBody {
	body, _ := NewRigidBody(e, Static, 0)
	return body
}

// NewKinematicBody returns a body that only moves by its velocity.
func NewKinematicBody(e *Entity) *RigidBody {
	body, _ := NewRigidBody(e, Kinematic, 0)
	return body
}

func (b *RigidBody) String() string {
	return fmt.Sprintf("body#%d(%v of %v)", b.id, b.Type, b.Entity)
}

// ID returns the id assigned by the world, or 0 before the body is added.
func (b *RigidBody) ID() uint64 {
	return b.id
}

// Mass returns the body's mass.
func (b *RigidBody) Mass() float64 {
	return b.mass
}

// SetMass wakes the body and sets its mass.
func (b *RigidBody) SetMass(mass float64) error {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidMass, mass)
	}
	b.Wake()
	b.mass = mass
	b.massInverse = 1 / mass
	return nil
}

// InverseMass returns 1/mass for dynamic bodies and 0 for the rest.
func (b *RigidBody) InverseMass() float64 {
	if b == nil || b.Type != Dynamic {
		return 0
	}
	return b.massInverse
}

// SetType wakes the body and changes its type. Turning a body dynamic
// requires a valid mass.
func (b *RigidBody) SetType(t BodyType) error {
	if t == Dynamic && !(b.mass > 0) {
		return fmt.Errorf("%w: set a mass before making the body dynamic", ErrInvalidMass)
	}
	b.Wake()
	b.Type = t
	if t == Static {
		b.Velocity = vec.Vec2{}
		b.AngularVelocity = 0
		b.force = vec.Vec2{}
	}
	return nil
}

// Position returns the entity position.
func (b *RigidBody) Position() vec.Vec2 {
	return b.Entity.Transform.Position
}

// SetPosition wakes the body and teleports the entity.
func (b *RigidBody) SetPosition(p vec.Vec2) {
	b.Wake()
	b.Entity.Transform.Position = p
}

// Angle returns the entity rotation in radians.
func (b *RigidBody) Angle() float64 {
	return b.Entity.Transform.Angle
}

// SetAngle wakes the body and sets the entity rotation.
func (b *RigidBody) SetAngle(angle float64) {
	b.Wake()
	b.Entity.Transform.Angle = angle
}

// SetVelocity wakes the body and sets its velocity.
func (b *RigidBody) SetVelocity(v vec.Vec2) {
	b.Wake()
	b.Velocity = v
}

// SetAngularVelocity wakes the body and sets its spin in radians per second.
func (b *RigidBody) SetAngularVelocity(w float64) {
	b.Wake()
	b.AngularVelocity = w
}

// Force returns the force accumulated since the last step.
func (b *RigidBody) Force() vec.Vec2 {
	return b.force
}

// ApplyForce wakes the body and adds f to the force applied in the next step.
func (b *RigidBody) ApplyForce(f vec.Vec2) {
	if b.Type != Dynamic {
		return
	}
	b.Wake()
	b.force = b.force.Add(f)
}

// ApplyImpulse wakes the body and changes its velocity by j/mass at once.
func (b *RigidBody) ApplyImpulse(j vec.Vec2) {
	if b.Type != Dynamic {
		return
	}
	b.Wake()
	b.Velocity = b.Velocity.Add(j.Scale(b.massInverse))
}

// KineticEnergy returns m*v^2 of a dynamic body. Static and kinematic
// bodies report 0.
func (b *RigidBody) KineticEnergy() float64 {
	if b.Type != Dynamic {
		return 0
	}
	return b.mass * b.Velocity.LengthSq()
}

// SetVelocityUpdateFunc replaces the velocity integration of the body.
// A nil f restores BodyUpdateVelocity.
func (b *RigidBody) SetVelocityUpdateFunc(f BodyVelocityFunc) {
	if f == nil {
		f = BodyUpdateVelocity
	}
	b.velocityFunc = f
}

// SetPositionUpdateFunc replaces the position integration of the body.
// A nil f restores BodyUpdatePosition.
func (b *RigidBody) SetPositionUpdateFunc(f BodyPositionFunc) {
	if f == nil {
		f = BodyUpdatePosition
	}
	b.positionFunc = f
}

// Displacement returns how far the entity moved since the start of the
// current step. Static bodies never report a displacement.
func (b *RigidBody) Displacement() vec.Vec2 {
	if b == nil || b.Type == Static {
		return vec.Vec2{}
	}
	return b.Entity.Transform.Position.Sub(b.startPosition)
}

func (b *RigidBody) startTransform() Transform {
	t := b.Entity.Transform
	t.Position = b.startPosition
	t.Angle = b.startAngle
	return t
}

func (b *RigidBody) snapshot() {
	b.startPosition = b.Entity.Transform.Position
	b.startAngle = b.Entity.Transform.Angle
}

// isDynamic reports whether the body takes part in collision response.
// A sleeping body behaves like a static one until it wakes.
func (b *RigidBody) isDynamic() bool {
	return b != nil && b.Type == Dynamic && !b.sleeping
}

// integrateVelocity validates the mass before any force is turned into
// acceleration, then runs the velocity update func.
func (b *RigidBody) integrateVelocity(gravity vec.Vec2, dt float64) error {
	if !(b.mass > 0) || math.IsInf(b.mass, 0) {
		return fmt.Errorf("%w: body %d has mass %v", ErrInvalidMass, b.id, b.mass)
	}
	f := b.velocityFunc
	if f == nil {
		f = BodyUpdateVelocity
	}
	f(b, gravity, dt)
	b.force = vec.Vec2{}
	return nil
}

func (b *RigidBody) integratePosition(dt float64) {
	f := b.positionFunc
	if f == nil {
		f = BodyUpdatePosition
	}
	f(b, dt)
}

// BodyUpdateVelocity is the default velocity integration function:
// semi-implicit Euler with forces, scaled gravity and drag.
func BodyUpdateVelocity(body *RigidBody, gravity vec.Vec2, dt float64) {
	acc := body.force.Scale(body.massInverse)
	if body.UseGravity {
		acc = acc.Add(gravity.Scale(body.GravityScale))
	}
	body.Acceleration = acc
	body.Velocity = body.Velocity.Add(acc.Scale(dt))
	if body.Drag > 0 {
		body.Velocity = body.Velocity.Scale(1 / (1 + body.Drag*dt))
	}
	if body.AngularDrag > 0 {
		body.AngularVelocity *= 1 / (1 + body.AngularDrag*dt)
	}
}

// BodyUpdatePosition is the default position integration function.
func BodyUpdatePosition(body *RigidBody, dt float64) {
	t := &body.Entity.Transform
	t.Position = t.Position.Add(body.Velocity.Scale(dt))
	t.Angle += body.AngularVelocity * dt
}
