package collide_test

import (
	"testing"

	"github.com/setanarut/collide"
	"github.com/setanarut/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBody(t *testing.T, bodyType collide.BodyType, mass float64) *collide.RigidBody {
	t.Helper()
	b, err := collide.NewRigidBody(collide.NewEntity("body", vec.Vec2{}), bodyType, mass)
	require.NoError(t, err)
	return b
}

func TestCorrectionShares(t *testing.T) {
	light := newBody(t, collide.Dynamic, 1)
	heavy := newBody(t, collide.Dynamic, 3)
	wall := newBody(t, collide.Static, 0)
	lift := newBody(t, collide.Kinematic, 0)

	a, b := collide.CorrectionShares(light, heavy)
	assert.InDelta(t, 0.75, a, 1e-12)
	assert.InDelta(t, 0.25, b, 1e-12)
	assert.InDelta(t, 1.0, a+b, 1e-12)

	twin := newBody(t, collide.Dynamic, 1)
	a, b = collide.CorrectionShares(light, twin)
	assert.Equal(t, [2]float64{0.5, 0.5}, [2]float64{a, b})

	a, b = collide.CorrectionShares(light, wall)
	assert.Equal(t, [2]float64{1, 0}, [2]float64{a, b})

	a, b = collide.CorrectionShares(lift, heavy)
	assert.Equal(t, [2]float64{0, 1}, [2]float64{a, b})

	a, b = collide.CorrectionShares(nil, light)
	assert.Equal(t, [2]float64{0, 1}, [2]float64{a, b})

	a, b = collide.CorrectionShares(wall, lift)
	assert.Equal(t, [2]float64{0, 0}, [2]float64{a, b})

	heavy.Sleep()
	a, b = collide.CorrectionShares(light, heavy)
	assert.Equal(t, [2]float64{1, 0}, [2]float64{a, b}, "a sleeping body holds like a static one")
}

func TestRigidBodyMass(t *testing.T) {
	b := newBody(t, collide.Dynamic, 2)
	assert.Equal(t, 0.5, b.InverseMass())

	assert.ErrorIs(t, b.SetMass(-1), collide.ErrInvalidMass)
	assert.Equal(t, 2.0, b.Mass())

	static := newBody(t, collide.Static, 0)
	assert.Zero(t, static.InverseMass())
	assert.ErrorIs(t, static.SetType(collide.Dynamic), collide.ErrInvalidMass)
	require.NoError(t, static.SetMass(4))
	require.NoError(t, static.SetType(collide.Dynamic))
	assert.Equal(t, 0.25, static.InverseMass())
}

func TestRigidBodyIntegration(t *testing.T) {
	w, err := collide.NewWorld(noGravity())
	require.NoError(t, err)

	e := collide.NewEntity("rocket", vec.Vec2{})
	b, err := collide.NewRigidBody(e, collide.Dynamic, 2)
	require.NoError(t, err)
	require.NoError(t, w.AddBody(b))

	b.ApplyForce(vec.Vec2{X: 100})
	w.Step()
	// a = F/m, v += a*dt, x += v*dt
	assert.InDelta(t, 1.0, b.Velocity.X, 1e-12)
	assert.InDelta(t, 0.02, b.Position().X, 1e-12)
	assert.Equal(t, vec.Vec2{}, b.Force(), "forces are cleared after each step")

	b.Drag = 1
	w.Step()
	assert.InDelta(t, 1/1.02, b.Velocity.X, 1e-12)

	calls := 0
	b.SetVelocityUpdateFunc(func(body *collide.RigidBody, gravity vec.Vec2, dt float64) {
		calls++
		body.Velocity = vec.Vec2{Y: 3}
	})
	w.Step()
	assert.Equal(t, 1, calls)
	assert.InDelta(t, 3*0.02, b.Position().Y, 1e-12)
	assert.InDelta(t, 18.0, b.KineticEnergy(), 1e-9)
}

func TestBodySleepThresholds(t *testing.T) {
	cfg := collide.DefaultConfig()
	cfg.Gravity = vec.Vec2{}
	cfg.Sleep.TimeToSleep = 0.1
	w, err := collide.NewWorld(&cfg)
	require.NoError(t, err)

	b, err := collide.NewRigidBody(collide.NewEntity("drifter", vec.Vec2{}), collide.Dynamic, 1)
	require.NoError(t, err)
	require.NoError(t, w.AddBody(b))
	b.Velocity = vec.Vec2{X: 0.01}

	step(w, 10)
	assert.True(t, b.IsSleeping(), "a body slower than the threshold falls asleep")
	assert.Equal(t, vec.Vec2{}, b.Velocity)

	b.SetVelocity(vec.Vec2{X: 1})
	step(w, 10)
	assert.False(t, b.IsSleeping())
	assert.Zero(t, b.StillTime())

	b.CanSleep = false
	b.SetVelocity(vec.Vec2{})
	step(w, 20)
	assert.False(t, b.IsSleeping())
}
