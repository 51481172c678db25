package collide

import "math"

// Stepper turns variable frame times into fixed world steps.
//
// Time is accumulated and spent in FixedDeltaTime slices, at most
// MaxStepsPerFrame per Advance. Time beyond that cap is dropped so a long
// stall does not cause a burst of catch-up steps.
type Stepper struct {
	World *World

	accumulator float64
	dropped     float64
}

// NewStepper returns a stepper driving w.
func NewStepper(w *World) *Stepper {
	return &Stepper{World: w}
}

// Advance adds elapsed seconds and runs as many fixed steps as fit.
// It returns the number of steps run. Negative or non-finite elapsed time is ignored.
func (s *Stepper) Advance(elapsed float64) int {
	if !(elapsed > 0) || math.IsInf(elapsed, 0) {
		return 0
	}
	cfg := s.World.Config()
	dt := cfg.FixedDeltaTime
	s.accumulator += elapsed

	steps := 0
	for s.accumulator >= dt && steps < cfg.MaxStepsPerFrame {
		s.World.Step()
		s.accumulator -= dt
		steps++
	}
	if s.accumulator >= dt {
		rest := math.Mod(s.accumulator, dt)
		s.dropped += s.accumulator - rest
		s.accumulator = rest
	}
	return steps
}

// Alpha returns how far the leftover time reaches into the next step, in
// [0, 1). Renderers interpolate between the last two states with it.
func (s *Stepper) Alpha() float64 {
	return s.accumulator / s.World.Config().FixedDeltaTime
}

// Accumulated returns the seconds waiting for the next step.
func (s *Stepper) Accumulated() float64 {
	return s.accumulator
}

// Dropped returns the total seconds discarded by the per-frame step cap.
func (s *Stepper) Dropped() float64 {
	return s.dropped
}

// Reset discards accumulated time.
func (s *Stepper) Reset() {
	s.accumulator = 0
}
