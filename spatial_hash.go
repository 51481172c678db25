package collide

import (
	"iter"
	"math"

	"github.com/setanarut/vec"
)

// DefaultCellSize is the spatial hash cell edge length used when a Config
// leaves it unset.
const DefaultCellSize = 64.0

// maxCellsPerItem bounds how many cells a single Insert may fill. Larger
// items are kept aside and paired against every bucket instead.
const maxCellsPerItem = 1 << 14

// SpatialHash is a uniform grid that buckets items by the cells their bounds
// cover. It is rebuilt every tick: Clear, then Insert every item, then walk
// Buckets for candidate pairs.
//
// Buckets are visited in the order their cells were first filled during the
// current build, so identical insert sequences yield identical walks.
type SpatialHash[T any] struct {
	cellSize float64
	buckets  map[int64][]T
	keys     []int64
	oversize []T
	scratch  []T
}

// NewSpatialHash returns an empty hash. A non-positive cellSize falls back to DefaultCellSize.
func NewSpatialHash[T any](cellSize float64) *SpatialHash[T] {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		cellSize = DefaultCellSize
	}
	return &SpatialHash[T]{
		cellSize: cellSize,
		buckets:  make(map[int64][]T),
	}
}

// CellSize returns the edge length of a cell.
func (h *SpatialHash[T]) CellSize() float64 {
	return h.cellSize
}

// SetCellSize changes the cell size and empties the hash.
func (h *SpatialHash[T]) SetCellSize(cellSize float64) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		cellSize = DefaultCellSize
	}
	h.cellSize = cellSize
	h.buckets = make(map[int64][]T)
	h.keys = h.keys[:0]
	clear(h.oversize)
	h.oversize = h.oversize[:0]
}

// cell converts one coordinate to a cell index. Coordinates beyond the int32
// range land in the outermost cell, NaN lands in cell 0.
func (h *SpatialHash[T]) cell(coord float64) int32 {
	c := math.Floor(coord / h.cellSize)
	switch {
	case math.IsNaN(c):
		return 0
	case c <= math.MinInt32:
		return math.MinInt32
	case c >= math.MaxInt32:
		return math.MaxInt32
	}
	return int32(c)
}

func cellKey(cx, cy int32) int64 {
	return int64(cx)<<32 | int64(uint32(cy))
}

// CellRange returns the inclusive cell index range covered by min..max.
func (h *SpatialHash[T]) CellRange(min, max vec.Vec2) (x0, y0, x1, y1 int32) {
	return h.cell(min.X), h.cell(min.Y), h.cell(max.X), h.cell(max.Y)
}

// Insert adds item to every cell touched by the box min..max, edges included.
func (h *SpatialHash[T]) Insert(min, max vec.Vec2, item T) {
	x0, y0, x1, y1 := h.CellRange(min, max)
	if (int64(x1)-int64(x0)+1)*(int64(y1)-int64(y0)+1) > maxCellsPerItem {
		h.oversize = append(h.oversize, item)
		return
	}
	for cx := int64(x0); cx <= int64(x1); cx++ {
		for cy := int64(y0); cy <= int64(y1); cy++ {
			key := cellKey(int32(cx), int32(cy))
			bucket := h.buckets[key]
			if len(bucket) == 0 {
				h.keys = append(h.keys, key)
			}
			h.buckets[key] = append(bucket, item)
		}
	}
}

// Buckets yields every non-empty bucket. Items too large for the grid are
// appended to every bucket and also yielded together as one last bucket.
// The slices are owned by the hash and are only valid until the next Clear.
func (h *SpatialHash[T]) Buckets() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for _, key := range h.keys {
			bucket := h.buckets[key]
			if len(h.oversize) > 0 {
				h.scratch = append(append(h.scratch[:0], bucket...), h.oversize...)
				bucket = h.scratch
			}
			if !yield(bucket) {
				return
			}
		}
		if len(h.oversize) > 0 {
			yield(h.oversize)
		}
	}
}

// Bucket returns the items in the cell holding p.
func (h *SpatialHash[T]) Bucket(p vec.Vec2) []T {
	return h.buckets[cellKey(h.cell(p.X), h.cell(p.Y))]
}

// Len returns the number of non-empty buckets, not counting oversized items.
func (h *SpatialHash[T]) Len() int {
	return len(h.keys)
}

// Clear empties every bucket, keeping storage for reuse.
func (h *SpatialHash[T]) Clear() {
	clear(h.oversize)
	h.oversize = h.oversize[:0]
	clear(h.scratch)
	// cells left behind by items that moved away would otherwise pile up
	if len(h.buckets) > 4*len(h.keys)+64 {
		h.buckets = make(map[int64][]T, len(h.keys))
		h.keys = h.keys[:0]
		return
	}
	for _, key := range h.keys {
		bucket := h.buckets[key]
		clear(bucket)
		h.buckets[key] = bucket[:0]
	}
	h.keys = h.keys[:0]
}
