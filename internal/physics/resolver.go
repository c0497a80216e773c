package physics

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// DefaultInset keeps probes off exact tile boundaries.
const DefaultInset = 1.0

// HorizontalResult describes a horizontal sweep.
type HorizontalResult struct {
	Blocked bool
	Col     int // wall column when Blocked
}

// VerticalResult describes a vertical sweep.
type VerticalResult struct {
	Landed   bool
	Hazard   bool
	HeadBump bool
	BumpCol  int
	BumpRow  int
}

// Outcome is the combined result of one Step.
type Outcome struct {
	Horizontal  HorizontalResult
	Vertical    VerticalResult
	OutOfBounds bool
}

// Resolver sweeps bodies against a grid.
type Resolver struct {
	Grid  *tilemap.Grid
	Inset float64
}

// NewResolver creates a resolver with the default probe inset.
func NewResolver(g *tilemap.Grid) *Resolver {
	return &Resolver{Grid: g, Inset: DefaultInset}
}

func tileIndex(v float64) int {
	return int(math.Floor(v / tilemap.TileSize))
}

// probesAlong returns sample points from lo+inset to hi-inset spaced at most
// one tile apart, so tall bodies cannot slip past a single block.
func (r *Resolver) probesAlong(lo, hi float64) []float64 {
	first := lo + r.Inset
	last := hi - r.Inset
	points := []float64{first}
	for p := first + tilemap.TileSize; p < last; p += tilemap.TileSize {
		points = append(points, p)
	}
	if last > first {
		points = append(points, last)
	}
	return points
}

// MoveHorizontal applies VX and resolves walls. With bounce a blocked body
// reverses direction instead of stopping.
func (r *Resolver) MoveHorizontal(b *Body, bounce bool) HorizontalResult {
	if b.VX == 0 {
		return HorizontalResult{}
	}
	b.X += b.VX

	var front int
	if b.VX > 0 {
		front = tileIndex(b.X + b.W)
	} else {
		front = tileIndex(b.X)
	}

	for _, py := range r.probesAlong(b.Y, b.Y+b.H) {
		if !r.Grid.At(front, tileIndex(py)).Blocks() {
			continue
		}
		if b.VX > 0 {
			b.X = float64(front*tilemap.TileSize) - b.W
		} else {
			b.X = float64((front + 1) * tilemap.TileSize)
		}
		if bounce {
			b.VX = -b.VX
		} else {
			b.VX = 0
		}
		return HorizontalResult{Blocked: true, Col: front}
	}
	return HorizontalResult{}
}

// MoveVertical applies VY and resolves floors and ceilings. Hazard tiles
// hold the body like ground and are reported.
func (r *Resolver) MoveVertical(b *Body) VerticalResult {
	var res VerticalResult
	b.Y += b.VY
	b.Grounded = false

	xs := r.probesAlong(b.X, b.X+b.W)

	if b.VY >= 0 {
		row := tileIndex(b.Y + b.H)
		for _, px := range xs {
			k := r.Grid.At(tileIndex(px), row)
			if k != tilemap.Solid && k != tilemap.Hazard {
				continue
			}
			b.Y = float64(row*tilemap.TileSize) - b.H
			b.VY = 0
			b.Grounded = true
			res.Landed = true
			if k == tilemap.Hazard {
				res.Hazard = true
			}
		}
		return res
	}

	row := tileIndex(b.Y)
	for _, px := range xs {
		col := tileIndex(px)
		if !r.Grid.At(col, row).Blocks() {
			continue
		}
		b.Y = float64((row + 1) * tilemap.TileSize)
		b.VY = 0
		res.HeadBump = true
		res.BumpCol = col
		res.BumpRow = row
		// Prefer a reward block when the head straddles two cells.
		if _, ok := r.Grid.Reward(col, row); ok {
			break
		}
	}
	return res
}

// OutOfBounds reports whether the body has fallen below the grid.
func (r *Resolver) OutOfBounds(b *Body) bool {
	return b.Y > r.Grid.PixelHeight()
}

// Step runs the horizontal sweep, the vertical sweep and the bounds check in
// that order.
func (r *Resolver) Step(b *Body, bounce bool) Outcome {
	var out Outcome
	out.Horizontal = r.MoveHorizontal(b, bounce)
	out.Vertical = r.MoveVertical(b)
	out.OutOfBounds = r.OutOfBounds(b)
	return out
}
