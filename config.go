package collide

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/setanarut/vec"
	"gopkg.in/yaml.v3"
)

// Config holds the world settings. Load it from YAML with LoadConfig or
// ParseConfig; keys left out keep their DefaultConfig values.
//
//	gravity: {x: 0, y: -9.8}
//	fixed_delta_time: 0.02
//	max_steps_per_frame: 5
//	cell_size: 64
//	sleep:
//	  enabled: true
//	  linear_threshold: 0.05
//	  angular_threshold: 0.05
//	  time_to_sleep: 0.5
//	restitution_combine: max
//	friction_combine: average
//	tangent_epsilon: 0.0001
//	position_iterations: 10
//	position_slop: 0.000001
type Config struct {
	Gravity            vec.Vec2    `yaml:"gravity"`
	FixedDeltaTime     float64     `yaml:"fixed_delta_time"`
	MaxStepsPerFrame   int         `yaml:"max_steps_per_frame"`
	CellSize           float64     `yaml:"cell_size"`
	Sleep              SleepConfig `yaml:"sleep"`
	RestitutionCombine CombineMode `yaml:"restitution_combine"`
	FrictionCombine    CombineMode `yaml:"friction_combine"`
	// TangentEpsilon is the sliding speed under which friction is skipped.
	TangentEpsilon float64 `yaml:"tangent_epsilon"`
	// PositionIterations caps the extra correction passes over the contacts
	// of a step; PositionSlop is the overlap they stop at.
	PositionIterations int     `yaml:"position_iterations"`
	PositionSlop       float64 `yaml:"position_slop"`
}

// DefaultConfig returns the settings of a world built with NewWorld(nil).
func DefaultConfig() Config {
	return Config{
		Gravity:          vec.Vec2{X: 0, Y: -9.8},
		FixedDeltaTime:   1.0 / 50.0,
		MaxStepsPerFrame: 5,
		CellSize:         DefaultCellSize,
		Sleep: SleepConfig{
			Enabled:          true,
			LinearThreshold:  0.05,
			AngularThreshold: 0.05,
			TimeToSleep:      0.5,
		},
		RestitutionCombine: CombineMax,
		FrictionCombine:    CombineAverage,
		TangentEpsilon:     1e-4,
		PositionIterations: 10,
		PositionSlop:       1e-6,
	}
}

// Validate returns every problem with c joined together, each wrapping
// ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}
	if !isFinite(c.Gravity.X) || !isFinite(c.Gravity.Y) {
		bad("gravity must be finite, got %v", c.Gravity)
	}
	if !(c.FixedDeltaTime > 0) || math.IsInf(c.FixedDeltaTime, 0) {
		bad("fixed_delta_time must be positive, got %v", c.FixedDeltaTime)
	}
	if c.MaxStepsPerFrame < 1 {
		bad("max_steps_per_frame must be at least 1, got %d", c.MaxStepsPerFrame)
	}
	if !(c.CellSize > 0) || math.IsInf(c.CellSize, 0) {
		bad("cell_size must be positive, got %v", c.CellSize)
	}
	if !(c.Sleep.LinearThreshold >= 0) || !(c.Sleep.AngularThreshold >= 0) {
		bad("sleep thresholds must not be negative, got %v and %v", c.Sleep.LinearThreshold, c.Sleep.AngularThreshold)
	}
	if !(c.Sleep.TimeToSleep >= 0) {
		bad("sleep.time_to_sleep must not be negative, got %v", c.Sleep.TimeToSleep)
	}
	if c.RestitutionCombine > CombineMultiply || c.FrictionCombine > CombineMultiply {
		bad("unknown combine mode")
	}
	if !(c.TangentEpsilon >= 0) {
		bad("tangent_epsilon must not be negative, got %v", c.TangentEpsilon)
	}
	if c.PositionIterations < 0 {
		bad("position_iterations must not be negative, got %d", c.PositionIterations)
	}
	if !(c.PositionSlop >= 0) || math.IsInf(c.PositionSlop, 0) {
		bad("position_slop must not be negative, got %v", c.PositionSlop)
	}
	return errors.Join(errs...)
}

func (c Config) rules() combineRules {
	return combineRules{
		restitution:    c.RestitutionCombine,
		friction:       c.FrictionCombine,
		tangentEpsilon: c.TangentEpsilon,
	}
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("collide: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("collide: read config %q: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// MarshalConfig encodes c as YAML.
func MarshalConfig(c Config) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("collide: marshal config: %w", err)
	}
	return data, nil
}
