package collide

import (
	"github.com/setanarut/vec"
)

// Draw flags
const (
	DrawShapes          = 1 << 0
	DrawBounds          = 1 << 1
	DrawCollisionPoints = 1 << 2
)

// FColor is an RGBA color with components in [0, 1].
type FColor struct {
	R, G, B, A float32
}

// Drawer renders debug geometry for a world.
type Drawer interface {
	DrawPolygon(verts []vec.Vec2, outline, fill FColor, data any)
	DrawSegment(a, b vec.Vec2, fill FColor, data any)
	DrawDot(size float64, pos vec.Vec2, fill FColor, data any)

	Flags() uint
	OutlineColor() FColor
	ColliderColor(c *Collider, data any) FColor
	BoundsColor() FColor
	CollisionPointColor() FColor
	Data() any
}

// DrawCollider draws the outline and fill of c.
func DrawCollider(c *Collider, drawer Drawer) {
	data := drawer.Data()
	verts := c.Vertices(make([]vec.Vec2, 0, c.Shape.Count()))
	drawer.DrawPolygon(verts, drawer.OutlineColor(), drawer.ColliderColor(c, data), data)
}

// DrawBoundsOf draws the bounding box of c.
func DrawBoundsOf(c *Collider, drawer Drawer) {
	bb := c.Bounds()
	verts := []vec.Vec2{
		{X: bb.Max.X, Y: bb.Min.Y},
		bb.Max,
		{X: bb.Min.X, Y: bb.Max.Y},
		bb.Min,
	}
	drawer.DrawPolygon(verts, drawer.BoundsColor(), FColor{}, drawer.Data())
}

// Draw draws the enabled colliders and the contacts of the last step,
// according to the drawer's flags.
func (w *World) Draw(drawer Drawer) {
	flags := drawer.Flags()
	for _, c := range w.registry.colliders {
		if !c.Enabled || c.Entity == nil {
			continue
		}
		if flags&DrawShapes != 0 {
			DrawCollider(c, drawer)
		}
		if flags&DrawBounds != 0 {
			DrawBoundsOf(c, drawer)
		}
	}

	if flags&DrawCollisionPoints == 0 {
		return
	}
	data := drawer.Data()
	color := drawer.CollisionPointColor()
	for _, contact := range w.Contacts() {
		n := contact.Normal
		for _, p := range contact.Points {
			drawer.DrawSegment(p, p.Add(n.Scale(contact.Depth)), color, data)
			drawer.DrawDot(3, p, color, data)
		}
	}
}
