package collide

import (
	"fmt"
	"math"

	"github.com/setanarut/vec"
)

// Sweep is the result of a continuous box test.
type Sweep struct {
	// Normal points from the first box toward the second.
	Normal vec.Vec2
	Depth  float64
	// Time is the fraction of the step at which the boxes first touched,
	// 0 if they already overlapped at the start.
	Time float64
	// Point is the center of the shared region at Time.
	Point vec.Vec2
}

// SweepBounds tests two boxes that move by dispA and dispB during one step.
// It reports a contact when the boxes overlap at the end of the step, or
// when they passed through each other during it.
//
// Overlapping boxes are separated along the axis of least overlap, with X
// winning ties. Boxes that tunnelled are separated along the axis on which
// they entered, by the part of the relative motion left after the impact.
func SweepBounds(a, b Bounds, dispA, dispB vec.Vec2) (Sweep, bool) {
	rel := dispA.Sub(dispB)
	tEnter, tExit := -infinity, infinity
	enterAxis := -1

	for axis := 0; axis < 2; axis++ {
		d := axisComponent(rel, axis)
		aMin, aMax := axisComponent(a.Min, axis), axisComponent(a.Max, axis)
		bMin, bMax := axisComponent(b.Min, axis), axisComponent(b.Max, axis)
		if math.Abs(d) < magicEpsilon {
			if aMax <= bMin || bMax <= aMin {
				return Sweep{}, false
			}
			continue
		}
		t0 := (bMin - aMax) / d
		t1 := (bMax - aMin) / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tEnter {
			tEnter = t0
			enterAxis = axis
		}
		tExit = math.Min(tExit, t1)
	}

	if tEnter >= tExit || tEnter > 1 || tExit <= 0 {
		return Sweep{}, false
	}
	t := math.Max(tEnter, 0)

	endA := a.Offset(dispA)
	endB := b.Offset(dispB)
	overlap := endA.Overlap(endB)

	var sweep Sweep
	sweep.Time = t
	switch {
	case overlap.X > 0 && overlap.Y > 0:
		axis := 0
		if overlap.Y < overlap.X {
			axis = 1
		}
		n := axisVector(axis)
		if axisComponent(endB.Center(), axis) < axisComponent(endA.Center(), axis) {
			n = n.Neg()
		}
		sweep.Normal = n
		sweep.Depth = axisComponent(overlap, axis)
	case tEnter >= 0 && enterAxis >= 0:
		// passed through each other inside the step
		d := axisComponent(rel, enterAxis)
		sweep.Normal = axisVector(enterAxis).Scale(sign(d))
		sweep.Depth = math.Abs(d) * (1 - t)
		if sweep.Depth <= 0 {
			return Sweep{}, false
		}
	default:
		return Sweep{}, false
	}

	atA := a.Offset(dispA.Scale(t))
	atB := b.Offset(dispB.Scale(t))
	shared := Bounds{
		Min: vec.Vec2{X: math.Max(atA.Min.X, atB.Min.X), Y: math.Max(atA.Min.Y, atB.Min.Y)},
		Max: vec.Vec2{X: math.Min(atA.Max.X, atB.Max.X), Y: math.Min(atA.Max.Y, atB.Max.Y)},
	}
	sweep.Point = shared.Center()
	return sweep, true
}

// collide runs the narrow phase for a and b and fills c. Axis-aligned box
// pairs take the continuous path, every other pair the separating axis test.
func collide(c *Contact, a, b *Collider, scratch *satScratch) (bool, error) {
	if a.Entity == nil || b.Entity == nil {
		return false, fmt.Errorf("pair %d/%d: %w", a.id, b.id, ErrDetached)
	}
	for _, col := range [2]*Collider{a, b} {
		switch col.Shape.Kind {
		case ShapeBox, ShapePolygon:
		default:
			return false, fmt.Errorf("collider %d: %w %v", col.id, ErrUnknownShape, col.Shape.Kind)
		}
	}
	c.A, c.B = a, b

	if a.isAxisAligned() && b.isAxisAligned() {
		return collideBoxes(c, a, b), nil
	}
	return collidePolygons(c, a, b, scratch), nil
}

func collideBoxes(c *Contact, a, b *Collider) bool {
	dispA, dispB := a.Body.Displacement(), b.Body.Displacement()
	endA, endB := a.Bounds(), b.Bounds()
	sweep, ok := SweepBounds(endA.Offset(dispA.Neg()), endB.Offset(dispB.Neg()), dispA, dispB)
	if !ok {
		return false
	}
	c.setPenetration(sweep.Normal, sweep.Depth)
	c.TimeOfImpact = sweep.Time
	c.Points = append(c.Points[:0], sweep.Point)
	return true
}
