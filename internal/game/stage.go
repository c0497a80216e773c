package game

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levelgen"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

const tileSize = tilemap.TileSize

// Stage is one loaded level: the grid plus every body moving through it.
// Only the active player is present; the other character waits off-stage.
type Stage struct {
	Level   *levelgen.Level
	Grid    *tilemap.Grid
	Player  *Player
	Enemies []*Enemy
	Items   []*Item

	cfg      config.PlatformerConfig
	resolver *physics.Resolver
}

// StageOutcome summarizes the tick for the session.
type StageOutcome struct {
	Cleared bool // Player centre reached the goal
	Died    bool // Active player has no lives left
}

// NewStage loads a generated level, turns its spawn markers into enemies and
// places the player at the start.
func NewStage(lvl *levelgen.Level, player *Player, cfg config.PlatformerConfig, enemySpeed float64) *Stage {
	s := &Stage{
		Level:    lvl,
		Grid:     lvl.Grid,
		Player:   player,
		cfg:      cfg,
		resolver: &physics.Resolver{Grid: lvl.Grid, Inset: cfg.Physics.ProbeInset},
	}
	for _, sp := range lvl.ConsumeSpawns() {
		x := float64(sp.Col * tileSize)
		y := float64((sp.Row+1)*tileSize) - cfg.Enemy.Height
		s.Enemies = append(s.Enemies, NewEnemy(x, y, cfg.Enemy, enemySpeed))
	}
	s.SpawnPlayer()
	return s
}

// SpawnPlayer puts the player at the start column, standing on the floor.
func (s *Stage) SpawnPlayer() {
	b := s.Player.Body()
	b.W = s.cfg.Player.Width
	b.H = s.cfg.Player.SmallHeight
	if s.Player.Big {
		b.H = s.cfg.Player.BigHeight
	}
	floorTop := float64(s.Level.FloorRow() * tileSize)
	b.Place(s.cfg.Player.SpawnX, floorTop-b.H)
	s.Player.Facing = 1
	s.Player.Invulnerable = 0
}

// Step advances every body by one tick and resolves their interactions.
func (s *Stage) Step(in core.Intent, ev *core.Events) StageOutcome {
	s.updatePlayer(in, ev)
	s.updateEnemies()
	s.updateItems()
	return s.interact(ev)
}

func (s *Stage) event(kind core.EventKind) core.Event {
	return core.Event{
		Kind:  kind,
		World: s.Level.World,
		Level: s.Level.Slot,
		Actor: s.Player.Name,
	}
}

func (s *Stage) updatePlayer(in core.Intent, ev *core.Events) {
	p := s.Player
	b := p.Body()
	pc := s.cfg.Player

	// Horizontal velocity is set, not accumulated
	switch {
	case in.MoveLeft:
		b.VX = -pc.Speed
		p.Facing = -1
	case in.MoveRight:
		b.VX = pc.Speed
		p.Facing = 1
	default:
		b.VX = 0
	}

	if in.JumpPressed && b.Grounded {
		b.VY = pc.JumpVelocity
		b.Grounded = false
		ev.Emit(s.event(core.EventJump))
	}

	b.ApplyGravity(s.cfg.Physics.Gravity, s.cfg.Physics.MaxFallSpeed)
	out := s.resolver.Step(b, false)
	b.X = core.ClampF(b.X, 0, s.Grid.PixelWidth()-b.W)

	if out.Vertical.HeadBump {
		s.bump(out.Vertical.BumpCol, out.Vertical.BumpRow, ev)
	}
	if out.Vertical.Hazard && p.Alive() {
		ev.Emit(s.event(core.EventHazardContact))
		p.Kill()
	}
	if out.OutOfBounds && p.Alive() {
		ev.Emit(s.event(core.EventFellOutOfBounds))
		p.Kill()
	}

	if p.Invulnerable > 0 {
		p.Invulnerable--
	}
}

// bump handles a head hit from below. Reward blocks release one item.
func (s *Stage) bump(col, row int, ev *core.Events) {
	ev.Emit(s.event(core.EventBump))
	if s.Grid.UseReward(col, row) {
		s.Items = append(s.Items, NewItem(col, row, s.cfg.Item))
		ev.Emit(s.event(core.EventItemSpawned))
	}
}

func (s *Stage) updateEnemies() {
	live := s.Enemies[:0]
	for _, e := range s.Enemies {
		if !e.alive {
			continue
		}
		if !s.moveWalker(e.Body()) {
			e.alive = false
			continue
		}
		live = append(live, e)
	}
	s.Enemies = live
}

func (s *Stage) updateItems() {
	live := s.Items[:0]
	for _, it := range s.Items {
		if !it.alive {
			continue
		}
		if !s.moveWalker(it.Body()) {
			it.alive = false
			continue
		}
		live = append(live, it)
	}
	s.Items = live
}

// moveWalker steps a non-player body that turns around at walls.
// Returns false when the body landed on a hazard or fell out of the level.
func (s *Stage) moveWalker(b *physics.Body) bool {
	b.ApplyGravity(s.cfg.Physics.Gravity, s.cfg.Physics.MaxFallSpeed)
	out := s.resolver.Step(b, true)
	return !out.Vertical.Hazard && !out.OutOfBounds
}

// Entities returns every live body on the stage, player first.
func (s *Stage) Entities() []Entity {
	out := make([]Entity, 0, 1+len(s.Enemies)+len(s.Items))
	out = append(out, s.Player)
	for _, e := range s.Enemies {
		out = append(out, e)
	}
	for _, it := range s.Items {
		out = append(out, it)
	}
	return out
}
