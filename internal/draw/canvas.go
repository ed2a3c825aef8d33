// Package draw renders world-space entities onto a terminal character grid.
package draw

import (
	"math"

	"github.com/tomz197/laserfall/internal/physics"
)

// Canvas is a character grid covering a world-space rectangle.
// World y points up; terminal rows count down, so the top of the world is row 0.
// Only cells that changed since the previous Render are written out.
type Canvas struct {
	cols  int
	rows  int
	world physics.Rect
	cells []rune // Flat slice: [row*cols + col]
	prev  []rune // Cells as last rendered

	// Offset for centering the render area when the terminal is larger than
	// the max resolution. 0-based terminal columns/rows to skip.
	offsetCol int
	offsetRow int

	forceRedraw bool
}

// NewCanvas creates a canvas of cols x rows terminal cells mapped onto world.
func NewCanvas(cols, rows int, world physics.Rect) *Canvas {
	c := &Canvas{world: world}
	c.Resize(cols, rows)
	return c
}

// Resize updates the grid dimensions while keeping the world mapping.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols == c.cols && rows == c.rows {
		return
	}
	c.cols = cols
	c.rows = rows
	c.cells = make([]rune, cols*rows)
	c.prev = make([]rune, cols*rows)
	c.Clear()
	c.forceRedraw = true
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the current column offset.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the current row offset.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the canvas width in columns.
func (c *Canvas) TerminalWidth() int { return c.cols }

// TerminalHeight returns the canvas height in rows.
func (c *Canvas) TerminalHeight() int { return c.rows }

// ForceRedraw makes the next Render write every cell, not just changed ones.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// Clear blanks all cells for the next frame.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = ' '
	}
}

// WorldToCell maps a world position to 0-based column and row.
// ok is false when the position lies outside the canvas.
func (c *Canvas) WorldToCell(p physics.Vec2) (col, row int, ok bool) {
	w := c.world.Width()
	h := c.world.Height()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	col = int(math.Floor((p.X - c.world.Min.X) / w * float64(c.cols)))
	row = int(math.Floor((c.world.Max.Y - p.Y) / h * float64(c.rows)))

	// The top and right edges belong to the last cell.
	if p.X == c.world.Max.X {
		col = c.cols - 1
	}
	if p.Y == c.world.Min.Y {
		row = c.rows - 1
	}
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return 0, 0, false
	}
	return col, row, true
}

// cellCenter returns the world position of the middle of a cell.
func (c *Canvas) cellCenter(col, row int) physics.Vec2 {
	return physics.Vec2{
		X: c.world.Min.X + (float64(col)+0.5)/float64(c.cols)*c.world.Width(),
		Y: c.world.Max.Y - (float64(row)+0.5)/float64(c.rows)*c.world.Height(),
	}
}

// Set writes ch at a 0-based cell. Out-of-range cells are ignored.
func (c *Canvas) Set(col, row int, ch rune) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = ch
}

// Cell returns the rune at a 0-based cell, or ' ' when out of range.
func (c *Canvas) Cell(col, row int) rune {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return ' '
	}
	return c.cells[row*c.cols+col]
}

// Plot writes ch at the cell containing world position p.
func (c *Canvas) Plot(p physics.Vec2, ch rune) {
	if col, row, ok := c.WorldToCell(p); ok {
		c.Set(col, row, ch)
	}
}

// PlotDisc fills every cell whose center lies within radius of center.
// The cell containing center is always filled, so tiny discs stay visible.
func (c *Canvas) PlotDisc(center physics.Vec2, radius float64, ch rune) {
	c.Plot(center, ch)

	minCol, minRow, _ := c.clampedCell(physics.Vec2{X: center.X - radius, Y: center.Y + radius})
	maxCol, maxRow, _ := c.clampedCell(physics.Vec2{X: center.X + radius, Y: center.Y - radius})
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if physics.PointInCircle(c.cellCenter(col, row), center, radius) {
				c.Set(col, row, ch)
			}
		}
	}
}

// clampedCell is WorldToCell with the result clamped into the grid.
func (c *Canvas) clampedCell(p physics.Vec2) (col, row int, inside bool) {
	col, row, inside = c.WorldToCell(p)
	if inside {
		return col, row, true
	}
	w, h := c.world.Width(), c.world.Height()
	col = int(math.Floor((p.X - c.world.Min.X) / w * float64(c.cols)))
	row = int(math.Floor((c.world.Max.Y - p.Y) / h * float64(c.rows)))
	col = min(max(col, 0), c.cols-1)
	row = min(max(row, 0), c.rows-1)
	return col, row, false
}

// Render writes the changed cells to cw, grouping horizontal runs so each run
// costs a single cursor move.
func (c *Canvas) Render(cw *ChunkWriter) {
	for row := 0; row < c.rows; row++ {
		offset := row * c.cols
		col := 0
		for col < c.cols {
			if !c.forceRedraw && c.cells[offset+col] == c.prev[offset+col] {
				col++
				continue
			}
			cw.MoveCursor(col+1, row+1)
			for col < c.cols && (c.forceRedraw || c.cells[offset+col] != c.prev[offset+col]) {
				cw.WriteRune(c.cells[offset+col])
				col++
			}
		}
	}
	copy(c.prev, c.cells)
	c.forceRedraw = false
}
