package collide

import (
	"math"

	"github.com/setanarut/vec"
)

// satScratch holds reusable vertex and axis buffers for the separating axis test.
type satScratch struct {
	vertsA, vertsB []vec.Vec2
	axes           []vec.Vec2
}

// SAT runs the separating axis test on two convex, counter-clockwise
// polygons. The returned normal points from a toward b; depth is the
// smallest overlap over all edge normals of both polygons.
func SAT(a, b []vec.Vec2) (normal vec.Vec2, depth float64, ok bool) {
	var axes []vec.Vec2
	axes = appendAxes(axes, a)
	axes = appendAxes(axes, b)
	return separatingAxis(a, b, axes)
}

// appendAxes appends the unit edge normals of verts. A rectangle only
// contributes two, as opposite edges share an axis. Zero-length edges are skipped.
func appendAxes(axes []vec.Vec2, verts []vec.Vec2) []vec.Vec2 {
	n := len(verts)
	edges := n
	if n == 4 && isParallelogram(verts) {
		edges = 2
	}
	for i := range edges {
		edge := verts[(i+1)%n].Sub(verts[i])
		if edge.LengthSq() < magicEpsilon*magicEpsilon {
			continue
		}
		axes = append(axes, edge.ReversePerp().Unit())
	}
	return axes
}

func isParallelogram(v []vec.Vec2) bool {
	d := v[0].Add(v[2]).Sub(v[1].Add(v[3]))
	return d.LengthSq() < magicEpsilon
}

func separatingAxis(a, b, axes []vec.Vec2) (vec.Vec2, float64, bool) {
	if len(a) == 0 || len(b) == 0 || len(axes) == 0 {
		return vec.Vec2{}, 0, false
	}
	best := infinity
	var bestAxis vec.Vec2
	for _, axis := range axes {
		minA, maxA := project(a, axis)
		minB, maxB := project(b, axis)
		overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
		if overlap <= 0 {
			return vec.Vec2{}, 0, false
		}
		if overlap < best {
			best = overlap
			bestAxis = axis
		}
	}
	if centroid(b).Sub(centroid(a)).Dot(bestAxis) < 0 {
		bestAxis = bestAxis.Neg()
	}
	return bestAxis, best, true
}

// containedIn reports whether p lies within the projection of verts on every axis.
func containedIn(p vec.Vec2, verts, axes []vec.Vec2) bool {
	for _, axis := range axes {
		lo, hi := project(verts, axis)
		d := p.Dot(axis)
		if d < lo-magicEpsilon || d > hi+magicEpsilon {
			return false
		}
	}
	return true
}

// collidePolygons is the narrow phase for rotated boxes and polygons. It
// works on end-of-step positions only, so TimeOfImpact is always 1.
func collidePolygons(c *Contact, a, b *Collider, s *satScratch) bool {
	s.vertsA = a.Vertices(s.vertsA[:0])
	s.vertsB = b.Vertices(s.vertsB[:0])
	s.axes = appendAxes(s.axes[:0], s.vertsA)
	splitAt := len(s.axes)
	s.axes = appendAxes(s.axes, s.vertsB)

	normal, depth, ok := separatingAxis(s.vertsA, s.vertsB, s.axes)
	if !ok {
		return false
	}
	c.setPenetration(normal, depth)
	c.TimeOfImpact = 1

	axesA, axesB := s.axes[:splitAt], s.axes[splitAt:]
	c.Points = c.Points[:0]
	for _, p := range s.vertsA {
		if containedIn(p, s.vertsB, axesB) {
			c.Points = append(c.Points, p)
		}
	}
	for _, p := range s.vertsB {
		if containedIn(p, s.vertsA, axesA) {
			c.Points = append(c.Points, p)
		}
	}
	return true
}

// segmentQueryPolygon returns the fraction along a->b at which the segment
// enters the counter-clockwise polygon verts, and the outward normal of the
// edge it crossed. A segment starting inside hits at 0 with the normal
// pointing back along the segment.
func segmentQueryPolygon(verts []vec.Vec2, a, b vec.Vec2) (float64, vec.Vec2) {
	count := len(verts)
	if count < 3 {
		return infinity, vec.Vec2{}
	}
	if polygonContains(verts, a) {
		return 0, a.Sub(b).Unit()
	}

	alpha := infinity
	var normal vec.Vec2
	for i := range count {
		v0 := verts[(i-1+count)%count]
		v1 := verts[i]
		n := v1.Sub(v0).ReversePerp().Unit()
		an := a.Dot(n)
		d := an - v1.Dot(n)
		if d < 0 {
			continue
		}

		bn := b.Dot(n)
		if an == bn {
			continue
		}
		t := d / (an - bn)
		if t < 0 || 1 < t {
			continue
		}

		point := a.Lerp(b, t)
		dt := n.Cross(point)
		dtMin := n.Cross(v0)
		dtMax := n.Cross(v1)

		if dtMin <= dt && dt <= dtMax && t < alpha {
			alpha = t
			normal = n
		}
	}
	return alpha, normal
}
