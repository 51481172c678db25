package collide

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// Material holds the surface properties of a collider.
type Material struct {
	// Restitution is the bounciness. 0 absorbs all normal velocity, 1 keeps it.
	Restitution float64 `yaml:"restitution"`
	// StaticFriction bounds the friction force that can hold a body still.
	StaticFriction float64 `yaml:"static_friction"`
	// DynamicFriction scales the friction force on a sliding body.
	DynamicFriction float64 `yaml:"dynamic_friction"`
	Density         float64 `yaml:"density"`
}

// DefaultMaterial is assigned to colliders built by the constructors.
var DefaultMaterial = Material{
	Restitution:     0,
	StaticFriction:  0.6,
	DynamicFriction: 0.4,
	Density:         1,
}

// Validate rejects negative or non-finite coefficients.
func (m Material) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"restitution", m.Restitution},
		{"static_friction", m.StaticFriction},
		{"dynamic_friction", m.DynamicFriction},
		{"density", m.Density},
	} {
		if !isFinite(f.value) || f.value < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidMaterial, f.name, f.value)
		}
	}
	return nil
}

// CombineMode selects how the coefficients of two touching materials are
// merged into one.
type CombineMode uint8

const (
	CombineAverage CombineMode = iota
	CombineMin
	CombineMax
	CombineMultiply
)

// Combine merges a and b.
func (m CombineMode) Combine(a, b float64) float64 {
	switch m {
	case CombineMin:
		return math.Min(a, b)
	case CombineMax:
		return math.Max(a, b)
	case CombineMultiply:
		return a * b
	default:
		return (a + b) / 2
	}
}

func (m CombineMode) String() string {
	switch m {
	case CombineAverage:
		return "average"
	case CombineMin:
		return "min"
	case CombineMax:
		return "max"
	case CombineMultiply:
		return "multiply"
	}
	return fmt.Sprintf("CombineMode(%d)", uint8(m))
}

// ParseCombineMode accepts the names printed by CombineMode.String, in any case.
func ParseCombineMode(s string) (CombineMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "average", "avg":
		return CombineAverage, nil
	case "min", "minimum":
		return CombineMin, nil
	case "max", "maximum":
		return CombineMax, nil
	case "multiply", "mul":
		return CombineMultiply, nil
	}
	return CombineAverage, fmt.Errorf("%w: unknown combine mode %q", ErrInvalidConfig, s)
}

func (m *CombineMode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: combine mode must be a scalar (line %d)", ErrInvalidConfig, value.Line)
	}
	mode, err := ParseCombineMode(value.Value)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m CombineMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// combineRules are the material and contact settings the resolver needs.
type combineRules struct {
	restitution    CombineMode
	friction       CombineMode
	tangentEpsilon float64
}

func (r combineRules) restitutionOf(a, b *Collider) float64 {
	return r.restitution.Combine(a.Material.Restitution, b.Material.Restitution)
}

func (r combineRules) frictionOf(a, b *Collider) (static, dynamic float64) {
	static = r.friction.Combine(a.Material.StaticFriction, b.Material.StaticFriction)
	dynamic = r.friction.Combine(a.Material.DynamicFriction, b.Material.DynamicFriction)
	return static, dynamic
}
