package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/setanarut/collide"
	"github.com/setanarut/vec"
	"gopkg.in/yaml.v3"
)

// defaultScene drops a unit box from 5 m onto a wide static floor.
const defaultScene = `
entities:
  - name: box
    position: {x: 0, y: 5}
    body: {type: dynamic, mass: 1}
    collider: {shape: box, size: {x: 1, y: 1}}
  - name: floor
    position: {x: 0, y: 0}
    collider: {shape: box, size: {x: 10, y: 1}}
`

type SceneSpec struct {
	Entities []EntitySpec `yaml:"entities"`
}

type EntitySpec struct {
	Name     string        `yaml:"name"`
	Position vec.Vec2      `yaml:"position"`
	Angle    float64       `yaml:"angle"`
	Body     *BodySpec     `yaml:"body"`
	Collider *ColliderSpec `yaml:"collider"`
}

type BodySpec struct {
	Type            BodyTypeSpec `yaml:"type"`
	Mass            float64      `yaml:"mass"`
	Velocity        vec.Vec2     `yaml:"velocity"`
	AngularVelocity float64      `yaml:"angular_velocity"`
	Drag            float64      `yaml:"drag"`
	NoGravity       bool         `yaml:"no_gravity"`
	NoSleep         bool         `yaml:"no_sleep"`
}

type ColliderSpec struct {
	Shape    string            `yaml:"shape"`
	Size     vec.Vec2          `yaml:"size"`
	Offset   vec.Vec2          `yaml:"offset"`
	Vertices []vec.Vec2        `yaml:"vertices"`
	Trigger  bool              `yaml:"trigger"`
	Material *collide.Material `yaml:"material"`
	Group    uint              `yaml:"group"`
}

type BodyTypeSpec collide.BodyType

func (t *BodyTypeSpec) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(value.Value) {
	case "", "dynamic":
		*t = BodyTypeSpec(collide.Dynamic)
	case "kinematic":
		*t = BodyTypeSpec(collide.Kinematic)
	case "static":
		*t = BodyTypeSpec(collide.Static)
	default:
		return fmt.Errorf("boxdrop: unknown body type %q (line %d)", value.Value, value.Line)
	}
	return nil
}

func ParseScene(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("boxdrop: unmarshal scene: %w", err)
	}
	if len(spec.Entities) == 0 {
		return nil, fmt.Errorf("boxdrop: scene has no entities")
	}
	return &spec, nil
}

func LoadScene(filename string) (*SceneSpec, error) {
	if filename == "" {
		return ParseScene([]byte(defaultScene))
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("boxdrop: load %s: %w", filename, err)
	}
	return ParseScene(data)
}

// Build adds every entity of the scene to w and returns them in scene order.
func (s *SceneSpec) Build(w *collide.World) ([]*collide.Entity, error) {
	entities := make([]*collide.Entity, 0, len(s.Entities))
	for i, es := range s.Entities {
		name := es.Name
		if name == "" {
			name = fmt.Sprintf("entity%d", i)
		}
		e := collide.NewEntity(name, es.Position)
		e.Transform.Angle = es.Angle

		var c *collide.Collider
		if es.Collider != nil {
			var err error
			if c, err = es.Collider.build(e); err != nil {
				return nil, fmt.Errorf("boxdrop: %s: %w", name, err)
			}
		}

		var body *collide.RigidBody
		if es.Body != nil {
			mass := es.Body.Mass
			if mass == 0 && c != nil {
				mass = c.Mass()
			}
			b, err := collide.NewRigidBody(e, collide.BodyType(es.Body.Type), mass)
			if err != nil {
				return nil, fmt.Errorf("boxdrop: %s: %w", name, err)
			}
			b.Velocity = es.Body.Velocity
			b.AngularVelocity = es.Body.AngularVelocity
			b.Drag = es.Body.Drag
			b.UseGravity = !es.Body.NoGravity
			b.CanSleep = !es.Body.NoSleep
			body = b
		}

		var err error
		switch {
		case c != nil:
			c.Body = body
			err = w.AddCollider(c)
		case body != nil:
			err = w.AddBody(body)
		}
		if err != nil {
			return nil, fmt.Errorf("boxdrop: %s: %w", name, err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (cs *ColliderSpec) build(e *collide.Entity) (*collide.Collider, error) {
	var c *collide.Collider
	switch strings.ToLower(cs.Shape) {
	case "", "box":
		c = collide.NewBoxCollider(e, nil, cs.Size.X, cs.Size.Y)
	case "polygon":
		var err error
		c, err = collide.NewPolygonCollider(e, nil, cs.Vertices)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown shape %q", cs.Shape)
	}
	c.CenterOffset = cs.Offset
	c.IsTrigger = cs.Trigger
	c.Filter.Group = cs.Group
	if cs.Material != nil {
		c.Material = *cs.Material
	}
	return c, nil
}
