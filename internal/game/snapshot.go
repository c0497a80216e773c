package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levelgen"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// EntityView is the render-facing description of an enemy or item.
type EntityView struct {
	Kind  EntityKind
	Rect  core.RectF
	Alive bool
	Dir   int
}

// PlayerView describes the active character.
type PlayerView struct {
	Name         string
	Rect         core.RectF
	Color        core.Color
	Big          bool
	Invulnerable int
	Facing       int
}

// CharacterHUD is one character's entry in the status line.
type CharacterHUD struct {
	Name   string
	Color  core.Color
	Lives  int
	Active bool
}

// HUD is the status-line summary.
type HUD struct {
	WorldLevel string // "WORLD 1-1"
	Characters []CharacterHUD
	Coins      int
}

// RewardView marks a reward block inside the visible window.
type RewardView struct {
	Col  int // Relative to FirstCol
	Row  int
	Used bool
}

// SlotView is one menu line.
type SlotView struct {
	ID    string
	World int
	Label string // "World 3-1" or "Completed!"
}

// View is everything a renderer needs for one frame. The session does not draw.
type View struct {
	State  State
	Mode   Mode
	World  int
	Level  int
	Theme  levelgen.Theme
	Won    bool
	Paused bool
	Timer  int

	CameraX  float64
	FirstCol int
	Tiles    [][]tilemap.Kind // Visible window, [row][col - FirstCol]
	Rewards  []RewardView
	Enemies  []EntityView
	Items    []EntityView
	Player   PlayerView
	HUD      HUD
	Slots    []SlotView
}

// Camera centres a viewport on focusX, clamped to [0, max(0, levelW-viewportW)].
func Camera(focusX, levelW, viewportW float64) float64 {
	maxX := math.Max(0, levelW-viewportW)
	return core.ClampF(focusX-viewportW/2, 0, maxX)
}

// SlotLabel formats a saved world index for the menu.
func SlotLabel(world, maxWorld int) string {
	if world > maxWorld {
		return "Completed!"
	}
	if world < 1 {
		world = 1
	}
	return fmt.Sprintf("World %d-1", world)
}

// Snapshot captures the session for a viewport viewportTiles tiles wide.
func (s *Session) Snapshot(viewportTiles int) View {
	v := View{
		State:  s.state,
		Mode:   s.mode,
		World:  s.world,
		Level:  s.level,
		Won:    s.won,
		Paused: s.paused,
		Timer:  s.timer,
	}

	for _, id := range SlotIDs {
		w := s.progress[id]
		v.Slots = append(v.Slots, SlotView{ID: id, World: w, Label: SlotLabel(w, s.cfg.Session.MaxWorld)})
	}

	v.HUD = HUD{
		WorldLevel: fmt.Sprintf("WORLD %d-%d", s.world, s.level),
		Coins:      s.Coins(),
	}
	for i, p := range s.players {
		v.HUD.Characters = append(v.HUD.Characters, CharacterHUD{
			Name:   p.Name,
			Color:  p.Color,
			Lives:  p.Lives,
			Active: i == s.active,
		})
	}

	st := s.stage
	if st == nil {
		return v
	}
	v.Theme = st.Level.Theme

	p := st.Player
	b := p.Body()
	viewportW := float64(viewportTiles * tileSize)
	v.CameraX = Camera(b.CenterX(), st.Grid.PixelWidth(), viewportW)
	v.FirstCol = int(v.CameraX) / tileSize
	v.Tiles = st.Grid.Window(v.FirstCol, viewportTiles+1)

	for row := 0; row < st.Grid.H; row++ {
		for col := v.FirstCol; col <= v.FirstCol+viewportTiles && col < st.Grid.W; col++ {
			if r, ok := st.Grid.Reward(col, row); ok {
				v.Rewards = append(v.Rewards, RewardView{Col: col - v.FirstCol, Row: row, Used: r.Used})
			}
		}
	}

	v.Player = PlayerView{
		Name:         p.Name,
		Rect:         b.Rect(),
		Color:        p.Color,
		Big:          p.Big,
		Invulnerable: p.Invulnerable,
		Facing:       p.Facing,
	}
	for _, e := range st.Enemies {
		v.Enemies = append(v.Enemies, EntityView{Kind: KindEnemy, Rect: e.body.Rect(), Alive: e.alive, Dir: e.Dir()})
	}
	for _, it := range st.Items {
		v.Items = append(v.Items, EntityView{Kind: KindItem, Rect: it.body.Rect(), Alive: it.alive, Dir: 1})
	}
	return v
}

// Hash returns a simple hash of the simulation state for determinism testing.
func (s *Session) Hash() uint64 {
	h := s.tick
	h = h*31 + uint64(s.state)  //#nosec G115 -- hash computation
	h = h*31 + uint64(s.world)  //#nosec G115 -- hash computation
	h = h*31 + uint64(s.level)  //#nosec G115 -- hash computation
	h = h*31 + uint64(s.active) //#nosec G115 -- hash computation
	for _, p := range s.players {
		h = h*31 + uint64(p.Lives) //#nosec G115 -- hash computation
		h = h*31 + uint64(p.Coins) //#nosec G115 -- hash computation
	}
	if s.stage == nil {
		return h
	}
	for _, ent := range s.stage.Entities() {
		b := ent.Body()
		h = h*31 + math.Float64bits(b.X)
		h = h*31 + math.Float64bits(b.Y)
		h = h*31 + math.Float64bits(b.VY)
	}
	return h
}
