package field

import (
	"fmt"
	"math"
)

// MaxCells bounds a single buffer allocation, border included.
const MaxCells = 1 << 24

// Grid is a padded row-major buffer of cell displacements. The one-cell ring
// around the interior is a fixed zero boundary, so stencil reads at
// (r±1, c±1) never leave the buffer for any interior (r, c).
type Grid struct {
	rows, cols int
	stride     int
	cells      []float64
}

// Allocate returns a zeroed grid with a rows×cols interior.
func Allocate(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrAllocation, rows, cols)
	}
	stride := cols + 2
	if rows+2 > MaxCells/stride {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrAllocation, rows, cols, MaxCells)
	}
	return &Grid{
		rows:   rows,
		cols:   cols,
		stride: stride,
		cells:  make([]float64, (rows+2)*stride),
	}, nil
}

func (g *Grid) Rows() int   { return g.rows }
func (g *Grid) Cols() int   { return g.cols }
func (g *Grid) Stride() int { return g.stride }

// Cells exposes the padded backing slice; index with r*Stride()+c.
func (g *Grid) Cells() []float64 { return g.cells }

// Interior reports whether (r, c) is a writable cell in padded coordinates.
func (g *Grid) Interior(r, c int) bool {
	return r >= 1 && r <= g.rows && c >= 1 && c <= g.cols
}

// At reads any cell in padded coordinates, border included.
func (g *Grid) At(r, c int) float64 {
	return g.cells[r*g.stride+c]
}

// Set writes an interior cell. Writes outside the interior are dropped so the
// border stays zero.
func (g *Grid) Set(r, c int, v float64) {
	if !g.Interior(r, c) {
		return
	}
	g.cells[r*g.stride+c] = v
}

func (g *Grid) Add(r, c int, dv float64) {
	if !g.Interior(r, c) {
		return
	}
	g.cells[r*g.stride+c] += dv
}

// Row returns padded row r, border columns included.
func (g *Grid) Row(r int) []float64 {
	return g.cells[r*g.stride : (r+1)*g.stride]
}

func (g *Grid) Clear() {
	clear(g.cells)
}

// Each visits interior cells in row-major order.
func (g *Grid) Each(fn func(r, c int, v float64)) {
	for r := 1; r <= g.rows; r++ {
		row := g.Row(r)
		for c := 1; c <= g.cols; c++ {
			fn(r, c, row[c])
		}
	}
}

// Resize returns a new grid of the given interior size holding the
// overlapping top-left region of g. Cells that no longer fit are discarded
// and newly exposed cells are zero.
func (g *Grid) Resize(rows, cols int) (*Grid, error) {
	ng, err := Allocate(rows, cols)
	if err != nil {
		return nil, err
	}
	overlapRows, overlapCols := min(g.rows, rows), min(g.cols, cols)
	for r := 1; r <= overlapRows; r++ {
		copy(ng.Row(r)[1:overlapCols+1], g.Row(r)[1:overlapCols+1])
	}
	return ng, nil
}

func (g *Grid) Clone() *Grid {
	c := &Grid{rows: g.rows, cols: g.cols, stride: g.stride, cells: make([]float64, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

func (g *Grid) SumAbs() float64 {
	sum := 0.0
	for _, v := range g.cells {
		sum += math.Abs(v)
	}
	return sum
}

func (g *Grid) SumSquares() float64 {
	sum := 0.0
	for _, v := range g.cells {
		sum += v * v
	}
	return sum
}

// BorderClean reports whether every border cell is exactly zero.
func (g *Grid) BorderClean() bool {
	last := g.rows + 1
	for c := 0; c < g.stride; c++ {
		if g.At(0, c) != 0 || g.At(last, c) != 0 {
			return false
		}
	}
	for r := 1; r <= g.rows; r++ {
		if g.At(r, 0) != 0 || g.At(r, g.cols+1) != 0 {
			return false
		}
	}
	return true
}

// IsValid reports whether no cell is NaN or Inf.
func (g *Grid) IsValid() bool {
	for _, v := range g.cells {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
