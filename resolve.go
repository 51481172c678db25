package collide

import (
	"github.com/setanarut/vec"
)

// CorrectionShares returns the fraction of the penetration depth each body
// is pushed by. Two dynamic bodies split it by mass, the lighter one moving
// further. A single dynamic body takes all of it. Static, kinematic,
// sleeping and missing bodies never move.
func CorrectionShares(a, b *RigidBody) (shareA, shareB float64) {
	dynA, dynB := a.isDynamic(), b.isDynamic()
	switch {
	case dynA && dynB:
		total := a.mass + b.mass
		return b.mass / total, a.mass / total
	case dynA:
		return 1, 0
	case dynB:
		return 0, 1
	}
	return 0, 0
}

// resolveContact pushes the bodies of c apart along the contact normal, then
// corrects their velocities for restitution and friction. Trigger contacts
// must not reach it.
func resolveContact(c *Contact, dt float64, rules combineRules) {
	bodyA, bodyB := c.A.Body, c.B.Body
	shareA, shareB := CorrectionShares(bodyA, bodyB)
	if shareA == 0 && shareB == 0 {
		return
	}

	correctPositions(c, c.Depth, shareA, shareB)
	n := c.Normal

	e := rules.restitutionOf(c.A, c.B)
	muS, muK := rules.frictionOf(c.A, c.B)
	if shareA > 0 {
		respond(bodyA, n.Neg(), c.Depth*shareA, e, muS, muK, dt, rules.tangentEpsilon)
	}
	if shareB > 0 {
		respond(bodyB, n, c.Depth*shareB, e, muS, muK, dt, rules.tangentEpsilon)
	}
}

// correctPositions moves the bodies of c apart along the normal, A by
// depth*shareA and B by depth*shareB.
func correctPositions(c *Contact, depth, shareA, shareB float64) {
	if shareA > 0 {
		moveBody(c.A.Body, c.Normal.Scale(-depth*shareA))
	}
	if shareB > 0 {
		moveBody(c.B.Body, c.Normal.Scale(depth*shareB))
	}
}

func moveBody(b *RigidBody, d vec.Vec2) {
	t := &b.Entity.Transform
	t.Position = t.Position.Add(d)
}

// respond corrects the velocity of one body. n points away from the other
// body, toward the side the body was pushed to; depth is the part of the
// penetration this body was moved by.
func respond(b *RigidBody, n vec.Vec2, depth, restitution, muS, muK, dt, tangentEpsilon float64) {
	vn := b.Velocity.Dot(n)
	if vn < 0 {
		b.Velocity = b.Velocity.Sub(n.Scale((1 + restitution) * vn))
	}

	if dt <= 0 {
		return
	}
	// the force that would have pushed the body out over one step
	normalForce := b.mass * depth / (dt * dt)
	if normalForce <= 0 {
		return
	}
	tangent := b.Velocity.Sub(n.Scale(b.Velocity.Dot(n)))
	speed := tangent.Mag()
	if speed < tangentEpsilon {
		return
	}

	required := b.mass * speed / dt
	var friction float64
	if required <= muS*normalForce {
		// static friction holds the body
		friction = required
	} else {
		friction = muK * normalForce
	}
	dv := friction * dt / b.mass
	if dv > speed {
		dv = speed
	}
	b.Velocity = b.Velocity.Sub(tangent.Scale(dv / speed))
}
