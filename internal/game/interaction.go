package game

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// interact runs after every body has moved. Pairs are checked against the
// resolved positions of this tick.
func (s *Stage) interact(ev *core.Events) StageOutcome {
	p := s.Player
	if p.Alive() {
		s.interactEnemies(ev)
		s.interactItems(ev)
		s.collectCoins(ev)
	}

	b := p.Body()
	return StageOutcome{
		Cleared: s.Grid.AtPixel(b.CenterX(), b.CenterY()) == tilemap.Goal,
		Died:    !p.Alive(),
	}
}

func (s *Stage) interactEnemies(ev *core.Events) {
	p := s.Player
	pb := p.Body()
	for _, e := range s.Enemies {
		if !p.Alive() {
			break
		}
		if !e.alive || !pb.Rect().Intersects(e.body.Rect()) {
			continue
		}
		if Stomps(pb.VY, pb.Y, e.body.Y) {
			e.alive = false
			pb.VY = s.cfg.Player.StompBounce
			pb.Grounded = false
			ev.Emit(s.event(core.EventStomp))
			continue
		}
		s.hit(ev)
	}

	live := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.alive {
			live = append(live, e)
		}
	}
	s.Enemies = live
}

// Stomps decides a player-enemy contact: a falling player whose top edge is
// above the enemy's top edge stomps, anything else is a hit.
func Stomps(playerVY, playerY, enemyY float64) bool {
	return playerVY > 0 && playerY < enemyY
}

// hit applies enemy damage to the player.
func (s *Stage) hit(ev *core.Events) {
	p := s.Player
	if p.Invulnerable > 0 {
		return
	}
	if p.Big {
		p.SetBig(false, s.cfg.Player)
		p.Invulnerable = s.cfg.Player.InvulnerableTicks
		ev.Emit(s.event(core.EventPowerDown))
		return
	}
	p.Kill()
}

func (s *Stage) interactItems(ev *core.Events) {
	p := s.Player
	pb := p.Body()
	live := s.Items[:0]
	for _, it := range s.Items {
		if !pb.Rect().Intersects(it.body.Rect()) {
			live = append(live, it)
			continue
		}
		it.alive = false
		if !p.Big {
			p.SetBig(true, s.cfg.Player)
		}
		p.Invulnerable = s.cfg.Player.InvulnerableTicks
		ev.Emit(s.event(core.EventPowerUp))
	}
	s.Items = live
}

// collectCoins consumes every collectible tile the player overlaps.
func (s *Stage) collectCoins(ev *core.Events) {
	p := s.Player
	b := p.Body()
	c0, c1 := cellSpan(b.X, b.X+b.W)
	r0, r1 := cellSpan(b.Y, b.Y+b.H)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if s.Grid.At(col, row) != tilemap.Collectible {
				continue
			}
			s.Grid.Set(col, row, tilemap.Empty)
			p.Coins++
			ev.Emit(s.event(core.EventCoin))
		}
	}
}

// cellSpan returns the first and last tile index covered by [lo, hi).
func cellSpan(lo, hi float64) (int, int) {
	first := int(math.Floor(lo / tileSize))
	last := int(math.Ceil(hi/tileSize)) - 1
	if last < first {
		last = first
	}
	return first, last
}
