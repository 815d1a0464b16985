// Package systems provides ECS systems for the simulation.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Neighbor holds a nearby swimmer with precomputed spatial data.
type Neighbor struct {
	Index int     // index into the snapshot the grid was built from
	Dist  float64 // Euclidean distance from the query origin
}

// SpatialGrid provides bounded-radius neighbor lookups using a cell-based grid.
// The playfield does not wrap: swimmers outside the screen are binned into
// the nearest edge cell, so queries reaching past an edge still see them.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int // flat grid of snapshot indices
	points   []r2.Vec
}

// NewSpatialGrid creates a spatial grid covering the given screen size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 128
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.points = g.points[:0]
}

// Insert adds a snapshot index at the given position.
// Indices must be inserted densely starting from zero.
func (g *SpatialGrid) Insert(index int, p r2.Vec) {
	for len(g.points) <= index {
		g.points = append(g.points, r2.Vec{})
	}
	g.points[index] = p
	idx := g.cellIndex(p)
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryRadiusInto finds entries strictly closer than radius and appends them to dst.
// Returns the updated slice. Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, p r2.Vec, radius float64, exclude int) []Neighbor {
	minCol, minRow := g.cellCoords(r2.Vec{X: p.X - radius, Y: p.Y - radius})
	maxCol, maxRow := g.cellCoords(r2.Vec{X: p.X + radius, Y: p.Y + radius})

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, i := range g.cells[row*g.cols+col] {
				if i == exclude {
					continue
				}
				d := distance(p, g.points[i])
				if d < radius {
					dst = append(dst, Neighbor{Index: i, Dist: d})
				}
			}
		}
	}

	return dst
}

// cellCoords returns the clamped column and row for a position.
func (g *SpatialGrid) cellCoords(p r2.Vec) (col, row int) {
	col = int(math.Floor(p.X / g.cellSize))
	row = int(math.Floor(p.Y / g.cellSize))

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat index for a position.
func (g *SpatialGrid) cellIndex(p r2.Vec) int {
	col, row := g.cellCoords(p)
	return row*g.cols + col
}
