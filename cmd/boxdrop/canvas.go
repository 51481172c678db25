package main

import (
	"bufio"
	"io"
	"math"

	"github.com/setanarut/collide"
	"github.com/setanarut/vec"
)

// Canvas is a collide.Drawer that rasterizes into a grid of characters.
type Canvas struct {
	cols, rows int
	cell       float64
	origin     vec.Vec2
	grid       [][]byte
}

// NewCanvas returns a blank canvas with cell world units per character.
func NewCanvas(cols, rows int, cell float64) *Canvas {
	grid := make([][]byte, rows)
	for i := range grid {
		grid[i] = make([]byte, cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}
	return &Canvas{cols: cols, rows: rows, cell: cell, grid: grid}
}

// Fit centers the canvas on the bounds of every collider in w, growing the
// cell size when they don't fit.
func (c *Canvas) Fit(w *collide.World) {
	first := true
	var bb collide.Bounds
	for col := range w.Registry().Colliders() {
		if first {
			bb = col.Bounds()
			first = false
			continue
		}
		bb = bb.Merge(col.Bounds())
	}
	if first {
		return
	}
	size := bb.Size()
	c.cell = math.Max(c.cell, math.Max(size.X/float64(c.cols-2), size.Y/float64(c.rows-2)))
	center := bb.Center()
	c.origin = vec.Vec2{
		X: center.X - c.cell*float64(c.cols)/2,
		Y: center.Y - c.cell*float64(c.rows)/2,
	}
}

func (c *Canvas) toCell(p vec.Vec2) (int, int) {
	col := int(math.Floor((p.X - c.origin.X) / c.cell))
	row := c.rows - 1 - int(math.Floor((p.Y-c.origin.Y)/c.cell))
	return col, row
}

func (c *Canvas) cellCenter(col, row int) vec.Vec2 {
	return vec.Vec2{
		X: c.origin.X + (float64(col)+0.5)*c.cell,
		Y: c.origin.Y + (float64(c.rows-1-row)+0.5)*c.cell,
	}
}

func (c *Canvas) plot(col, row int, ch byte) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.grid[row][col] = ch
}

func inside(verts []vec.Vec2, p vec.Vec2) bool {
	n := len(verts)
	if n < 3 {
		return false
	}
	a := verts[n-1]
	for _, b := range verts {
		if b.Sub(a).Cross(p.Sub(a)) < 0 {
			return false
		}
		a = b
	}
	return true
}

func (c *Canvas) DrawPolygon(verts []vec.Vec2, outline, fill collide.FColor, data any) {
	ch := byte('#')
	if fill.A == 0 {
		ch = '.'
	}
	bb := collide.NewBoundsForPoints(verts)
	c0, r1 := c.toCell(bb.Min)
	c1, r0 := c.toCell(bb.Max)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if inside(verts, c.cellCenter(col, row)) {
				c.plot(col, row, ch)
			}
		}
	}
}

func (c *Canvas) DrawSegment(a, b vec.Vec2, fill collide.FColor, data any) {
	steps := int(math.Ceil(a.Distance(b)/c.cell)) + 1
	for i := 0; i <= steps; i++ {
		col, row := c.toCell(a.Lerp(b, float64(i)/float64(steps)))
		c.plot(col, row, '|')
	}
}

func (c *Canvas) DrawDot(size float64, pos vec.Vec2, fill collide.FColor, data any) {
	col, row := c.toCell(pos)
	c.plot(col, row, '*')
}

func (c *Canvas) Flags() uint {
	return collide.DrawShapes | collide.DrawCollisionPoints
}

func (c *Canvas) OutlineColor() collide.FColor {
	return collide.FColor{R: 1, G: 1, B: 1, A: 1}
}

func (c *Canvas) ColliderColor(col *collide.Collider, data any) collide.FColor {
	if col.IsTrigger {
		return collide.FColor{}
	}
	return collide.FColor{R: 0.5, G: 0.5, B: 0.5, A: 1}
}

func (c *Canvas) BoundsColor() collide.FColor {
	return collide.FColor{R: 0, G: 1, B: 0, A: 1}
}

func (c *Canvas) CollisionPointColor() collide.FColor {
	return collide.FColor{R: 1, G: 0, B: 0, A: 1}
}

func (c *Canvas) Data() any {
	return nil
}

// WriteTo prints the grid, one line per row.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, line := range c.grid {
		k, err := bw.Write(append(line, '\n'))
		n += int64(k)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
