package game

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// EntityKind tags the concrete variant behind an Entity.
type EntityKind int

const (
	KindPlayer EntityKind = iota
	KindEnemy
	KindItem
)

// String returns a human-readable name for the entity kind.
func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// Entity is the capability shared by everything that moves through a level.
type Entity interface {
	Body() *physics.Body
	Kind() EntityKind
	Alive() bool
}

// Player is one playable character. Lives persist across levels of a session.
type Player struct {
	body physics.Body

	Name         string
	Color        core.Color
	Lives        int
	Big          bool
	Invulnerable int // Ticks left during which enemy hits are ignored
	Facing       int // -1 left, +1 right
	Coins        int
}

// NewPlayer creates a small player with no lives; the session assigns lives.
func NewPlayer(c config.Character, p config.PlatformerPlayer) *Player {
	color, _ := core.ParseColor(c.Color)
	return &Player{
		body:   physics.Body{W: p.Width, H: p.SmallHeight},
		Name:   c.Name,
		Color:  color,
		Facing: 1,
	}
}

func (p *Player) Body() *physics.Body { return &p.body }
func (p *Player) Kind() EntityKind    { return KindPlayer }
func (p *Player) Alive() bool         { return p.Lives > 0 }

// SetBig switches the power state, keeping the bottom edge in place.
func (p *Player) SetBig(big bool, cfg config.PlatformerPlayer) {
	p.Big = big
	if big {
		p.body.Resize(cfg.BigHeight)
	} else {
		p.body.Resize(cfg.SmallHeight)
	}
}

// Kill zeroes the remaining lives. The session decides what happens next.
func (p *Player) Kill() {
	p.Lives = 0
}

// Enemy walks in one direction and turns around at walls.
type Enemy struct {
	body  physics.Body
	alive bool
}

// NewEnemy creates a live enemy walking left at the given speed.
func NewEnemy(x, y float64, m config.PlatformerMover, speed float64) *Enemy {
	return &Enemy{
		body:  physics.Body{X: x, Y: y, W: m.Width, H: m.Height, VX: -speed},
		alive: true,
	}
}

func (e *Enemy) Body() *physics.Body { return &e.body }
func (e *Enemy) Kind() EntityKind    { return KindEnemy }
func (e *Enemy) Alive() bool         { return e.alive }

// Dir returns the walking direction sign.
func (e *Enemy) Dir() int {
	if e.body.VX < 0 {
		return -1
	}
	return 1
}

// Item is a power-up released from a reward block.
type Item struct {
	body  physics.Body
	alive bool
}

// NewItem creates a power-up resting on top of the tile at (col, row).
func NewItem(col, row int, m config.PlatformerMover) *Item {
	x := float64(col*tileSize) + (tileSize-m.Width)/2
	y := float64(row*tileSize) - m.Height
	return &Item{
		body:  physics.Body{X: x, Y: y, W: m.Width, H: m.Height, VX: m.Speed},
		alive: true,
	}
}

func (i *Item) Body() *physics.Body { return &i.body }
func (i *Item) Kind() EntityKind    { return KindItem }
func (i *Item) Alive() bool         { return i.alive }
