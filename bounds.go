package collide

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/setanarut/vec"
)

// Bounds is an axis-aligned 2D bounding box. Min holds the smallest
// coordinates on both axes and Max the largest.
//
// Bounds are derived values: colliders recompute them from the current
// transform on every query and never cache them across ticks.
type Bounds struct {
	Min, Max vec.Vec2
}

// NewBounds returns the box spanning the two corners, in any order.
func NewBounds(a, b vec.Vec2) Bounds {
	return Bounds{
		Min: vec.Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: vec.Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// NewBoundsForExtents constructs Bounds centered on a point with the given
// extents (half sizes).
func NewBoundsForExtents(c vec.Vec2, hw, hh float64) Bounds {
	hw, hh = math.Abs(hw), math.Abs(hh)
	return Bounds{
		Min: vec.Vec2{X: c.X - hw, Y: c.Y - hh},
		Max: vec.Vec2{X: c.X + hw, Y: c.Y + hh},
	}
}

// NewBoundsForPoints returns the smallest Bounds holding every point.
func NewBoundsForPoints(points []vec.Vec2) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	bb := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bb = bb.Expand(p)
	}
	return bb
}

func (bb Bounds) String() string {
	return fmt.Sprintf("[%v %v, %v %v]", bb.Min.X, bb.Min.Y, bb.Max.X, bb.Max.Y)
}

// Intersects returns true if bb and other overlap or touch.
func (bb Bounds) Intersects(other Bounds) bool {
	return bb.Min.X <= other.Max.X && other.Min.X <= bb.Max.X &&
		bb.Min.Y <= other.Max.Y && other.Min.Y <= bb.Max.Y
}

// Overlap returns the length of the shared interval on each axis.
// A component <= 0 means the boxes are separated (or only touching) on that axis.
func (bb Bounds) Overlap(other Bounds) vec.Vec2 {
	return vec.Vec2{
		X: math.Min(bb.Max.X, other.Max.X) - math.Max(bb.Min.X, other.Min.X),
		Y: math.Min(bb.Max.Y, other.Max.Y) - math.Max(bb.Min.Y, other.Min.Y),
	}
}

// Contains returns true if other lies completely within bb.
func (bb Bounds) Contains(other Bounds) bool {
	return bb.Min.X <= other.Min.X && bb.Max.X >= other.Max.X &&
		bb.Min.Y <= other.Min.Y && bb.Max.Y >= other.Max.Y
}

// ContainsVect returns true if bb contains p.
func (bb Bounds) ContainsVect(p vec.Vec2) bool {
	return bb.Min.X <= p.X && bb.Max.X >= p.X && bb.Min.Y <= p.Y && bb.Max.Y >= p.Y
}

// Merge returns a bounding box that holds both bounding boxes.
func (bb Bounds) Merge(other Bounds) Bounds {
	return Bounds{
		Min: vec.Vec2{X: math.Min(bb.Min.X, other.Min.X), Y: math.Min(bb.Min.Y, other.Min.Y)},
		Max: vec.Vec2{X: math.Max(bb.Max.X, other.Max.X), Y: math.Max(bb.Max.Y, other.Max.Y)},
	}
}

// Expand returns a bounding box that holds both bb and p.
func (bb Bounds) Expand(p vec.Vec2) Bounds {
	return Bounds{
		Min: vec.Vec2{X: math.Min(bb.Min.X, p.X), Y: math.Min(bb.Min.Y, p.Y)},
		Max: vec.Vec2{X: math.Max(bb.Max.X, p.X), Y: math.Max(bb.Max.Y, p.Y)},
	}
}

// Center returns the center of a bounding box.
func (bb Bounds) Center() vec.Vec2 {
	return bb.Min.Lerp(bb.Max, 0.5)
}

// Size returns the width and height of the box.
func (bb Bounds) Size() vec.Vec2 {
	return bb.Max.Sub(bb.Min)
}

// Area returns the area of the bounding box.
func (bb Bounds) Area() float64 {
	return (bb.Max.X - bb.Min.X) * (bb.Max.Y - bb.Min.Y)
}

// Offset returns a bounding box offseted by d.
func (bb Bounds) Offset(d vec.Vec2) Bounds {
	return Bounds{Min: bb.Min.Add(d), Max: bb.Max.Add(d)}
}

// SegmentQuery returns the fraction along the segment a->b at which the box
// is first hit, and the normal of the face that was hit. A segment starting
// inside the box hits at fraction 0 with a zero normal.
// Returns infinity if it doesn't hit.
func (bb Bounds) SegmentQuery(a, b vec.Vec2) (float64, vec.Vec2) {
	delta := b.Sub(a)
	tmin := -infinity
	tmax := infinity
	var normal vec.Vec2

	for axis := 0; axis < 2; axis++ {
		d := axisComponent(delta, axis)
		p := axisComponent(a, axis)
		lo := axisComponent(bb.Min, axis)
		hi := axisComponent(bb.Max, axis)
		if d == 0 {
			if p < lo || hi < p {
				return infinity, vec.Vec2{}
			}
			continue
		}
		t1 := (lo - p) / d
		t2 := (hi - p) / d
		n := axisVector(axis).Neg()
		if t1 > t2 {
			t1, t2 = t2, t1
			n = axisVector(axis)
		}
		if t1 > tmin {
			tmin = t1
			normal = n
		}
		tmax = math.Min(tmax, t2)
	}

	if tmin <= tmax && 0 <= tmax && tmin <= 1.0 {
		if tmin < 0 {
			return 0, vec.Vec2{}
		}
		return tmin, normal
	}
	return infinity, vec.Vec2{}
}

// IntersectsSegment returns true if the bounding box intersects the line segment with ends a and b.
func (bb Bounds) IntersectsSegment(a, b vec.Vec2) bool {
	t, _ := bb.SegmentQuery(a, b)
	return t != infinity
}

// ClampVect clamps a vector to bounding box.
func (bb Bounds) ClampVect(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: cp.Clamp(p.X, bb.Min.X, bb.Max.X), Y: cp.Clamp(p.Y, bb.Min.Y, bb.Max.Y)}
}
