package tilemap

import (
	"math"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Reward marks a Solid cell that releases a power-up when bumped from below.
type Reward struct {
	Used bool
}

// Grid is a rectangular tile map. Row 0 is the top.
// Cells are stored in row-major order: index = row*W + col.
type Grid struct {
	W       int
	H       int
	cells   []Kind
	rewards map[int]*Reward
}

// NewGrid creates a grid of the given size filled with Empty.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:       w,
		H:       h,
		cells:   make([]Kind, w*h),
		rewards: make(map[int]*Reward),
	}
}

// FromRows builds a grid from ASCII rows using the Kind.Rune glyphs.
// Rows shorter than the first are padded with Empty.
func FromRows(rows []string) *Grid {
	if len(rows) == 0 {
		return NewGrid(0, 0)
	}
	g := NewGrid(len(rows[0]), len(rows))
	for row, line := range rows {
		for col, r := range line {
			if col >= g.W {
				break
			}
			g.Set(col, row, kindFromRune(r))
		}
	}
	return g
}

func kindFromRune(r rune) Kind {
	switch r {
	case '#':
		return Solid
	case 'L':
		return Hazard
	case 'F':
		return Goal
	case 'o':
		return Collectible
	case 'G':
		return SpawnMarker
	default:
		return Empty
	}
}

func (g *Grid) index(col, row int) int {
	return row*g.W + col
}

// InBounds returns true if the cell is within the grid boundaries.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.W && row >= 0 && row < g.H
}

// At returns the tile at (col, row), or None outside the grid.
func (g *Grid) At(col, row int) Kind {
	if !g.InBounds(col, row) {
		return None
	}
	return g.cells[g.index(col, row)]
}

// Set stores a tile kind. Out-of-bounds writes are ignored.
func (g *Grid) Set(col, row int, k Kind) {
	if g.InBounds(col, row) {
		g.cells[g.index(col, row)] = k
	}
}

// CellAt converts a pixel position to the tile coordinates containing it.
func CellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / TileSize)), int(math.Floor(y / TileSize))
}

// TileRect returns the pixel bounds of a cell.
func TileRect(col, row int) core.RectF {
	return core.NewRectF(float64(col*TileSize), float64(row*TileSize), TileSize, TileSize)
}

// AtPixel returns the tile containing the pixel position (x, y).
func (g *Grid) AtPixel(x, y float64) Kind {
	col, row := CellAt(x, y)
	return g.At(col, row)
}

// PixelWidth returns the level width in pixel units.
func (g *Grid) PixelWidth() float64 {
	return float64(g.W * TileSize)
}

// PixelHeight returns the level height in pixel units.
func (g *Grid) PixelHeight() float64 {
	return float64(g.H * TileSize)
}

// MarkReward turns a Solid cell into a reward block.
func (g *Grid) MarkReward(col, row int) {
	if g.At(col, row) != Solid {
		return
	}
	g.rewards[g.index(col, row)] = &Reward{}
}

// Reward returns the reward block at (col, row), if any.
func (g *Grid) Reward(col, row int) (*Reward, bool) {
	if !g.InBounds(col, row) {
		return nil, false
	}
	r, ok := g.rewards[g.index(col, row)]
	return r, ok
}

// UseReward consumes an unused reward block.
// Returns false when there is no reward there or it was already used.
func (g *Grid) UseReward(col, row int) bool {
	r, ok := g.Reward(col, row)
	if !ok || r.Used {
		return false
	}
	r.Used = true
	return true
}

// Count returns the number of cells of the given kind.
func (g *Grid) Count(k Kind) int {
	n := 0
	for _, c := range g.cells {
		if c == k {
			n++
		}
	}
	return n
}

// Window copies the rows of columns [first, first+n) clipped to the grid.
func (g *Grid) Window(first, n int) [][]Kind {
	if first < 0 {
		first = 0
	}
	if first+n > g.W {
		n = g.W - first
	}
	if n < 0 {
		n = 0
	}
	out := make([][]Kind, g.H)
	for row := 0; row < g.H; row++ {
		start := g.index(first, row)
		out[row] = append([]Kind(nil), g.cells[start:start+n]...)
	}
	return out
}

// Clone returns a deep copy of the grid, reward state included.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.W, g.H)
	copy(c.cells, g.cells)
	for idx, r := range g.rewards {
		rc := *r
		c.rewards[idx] = &rc
	}
	return c
}

// Equal returns true if two grids have the same dimensions and tiles.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, k := range g.cells {
		if k != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows renders the grid as ASCII, one string per row.
func (g *Grid) Rows() []string {
	rows := make([]string, g.H)
	for row := 0; row < g.H; row++ {
		var sb strings.Builder
		sb.Grow(g.W)
		for col := 0; col < g.W; col++ {
			if r, ok := g.Reward(col, row); ok {
				if r.Used {
					sb.WriteRune('u')
				} else {
					sb.WriteRune('?')
				}
				continue
			}
			sb.WriteRune(g.At(col, row).Rune())
		}
		rows[row] = sb.String()
	}
	return rows
}
