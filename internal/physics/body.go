// Package physics moves axis-aligned bodies through a tile grid.
//
// Resolution is axis-separated: horizontal first, then vertical, then the
// out-of-bounds check. The order decides corner tie-breaks and must not change.
package physics

import "github.com/vovakirdan/tui-platformer/internal/core"

// Body is a kinematic rectangle in pixel units. Y grows downwards.
type Body struct {
	X, Y     float64
	VX, VY   float64
	W, H     float64
	Grounded bool
}

// Rect returns the body bounds.
func (b *Body) Rect() core.RectF {
	return core.NewRectF(b.X, b.Y, b.W, b.H)
}

// CenterX returns the horizontal centre.
func (b *Body) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical centre.
func (b *Body) CenterY() float64 { return b.Y + b.H/2 }

// Bottom returns the bottom edge.
func (b *Body) Bottom() float64 { return b.Y + b.H }

// ApplyGravity accumulates g onto VY, clamped to maxFall.
func (b *Body) ApplyGravity(g, maxFall float64) {
	b.VY += g
	if b.VY > maxFall {
		b.VY = maxFall
	}
}

// Resize changes the height keeping the bottom edge fixed.
func (b *Body) Resize(h float64) {
	bottom := b.Bottom()
	b.H = h
	b.Y = bottom - h
}

// Place moves the body to (x, y) and clears motion.
func (b *Body) Place(x, y float64) {
	b.X, b.Y = x, y
	b.VX, b.VY = 0, 0
	b.Grounded = false
}
