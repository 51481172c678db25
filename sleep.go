package collide

import "math"

// SleepConfig controls when resting dynamic bodies are put to sleep.
type SleepConfig struct {
	Enabled bool `yaml:"enabled"`
	// LinearThreshold is the speed below which a body counts as still.
	LinearThreshold float64 `yaml:"linear_threshold"`
	// AngularThreshold is the spin, in radians per second, below which a
	// body counts as still.
	AngularThreshold float64 `yaml:"angular_threshold"`
	// TimeToSleep is how long a body must stay still before it sleeps.
	TimeToSleep float64 `yaml:"time_to_sleep"`
}

// IsSleeping returns true if the body is sleeping.
func (b *RigidBody) IsSleeping() bool {
	return b != nil && b.sleeping
}

// StillTime returns how long the body has stayed below the sleep thresholds.
func (b *RigidBody) StillTime() float64 {
	return b.stillTime
}

// Wake clears the sleeping flag and the still timer. It is safe on a nil body.
func (b *RigidBody) Wake() {
	if b == nil {
		return
	}
	b.stillTime = 0
	if !b.sleeping {
		return
	}
	b.sleeping = false
	if b.world != nil {
		b.world.queueBodyEvent(EventWake, b)
	}
}

// Sleep puts a dynamic body to sleep at once and zeroes its motion.
func (b *RigidBody) Sleep() {
	if b == nil || b.Type != Dynamic || b.sleeping {
		return
	}
	b.sleeping = true
	b.Velocity = zeroVec
	b.Acceleration = zeroVec
	b.AngularVelocity = 0
	b.force = zeroVec
	if b.world != nil {
		b.world.queueBodyEvent(EventSleep, b)
	}
}

// isStill compares the body's motion against the thresholds.
func (b *RigidBody) isStill(cfg SleepConfig) bool {
	lin := cfg.LinearThreshold
	return b.Velocity.LengthSq() < lin*lin && math.Abs(b.AngularVelocity) < cfg.AngularThreshold
}

// isMoving reports whether the body can disturb a sleeping body it touches.
func (b *RigidBody) isMoving(cfg SleepConfig) bool {
	if b == nil || b.sleeping || b.Type == Static {
		return false
	}
	return !b.isStill(cfg) || b.force != zeroVec
}

// updateSleep advances the still timer of one dynamic body by dt.
func (b *RigidBody) updateSleep(cfg SleepConfig, dt float64) {
	if b.Type != Dynamic {
		return
	}
	if !cfg.Enabled || !b.CanSleep {
		b.Wake()
		return
	}
	if b.isStill(cfg) && b.force == zeroVec {
		b.stillTime += dt
		if !b.sleeping && b.stillTime >= cfg.TimeToSleep {
			b.Sleep()
		}
		return
	}
	b.Wake()
}
