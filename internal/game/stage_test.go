package game

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levelgen"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

func testConfig() config.PlatformerConfig {
	cfg := config.DefaultPlatformerConfig()
	cfg.Session.IntermissionTicks = 0
	cfg.Session.GameOverHoldTicks = 0
	return cfg
}

// testStage builds a stage from ASCII rows. The player spawns at x=16 on the
// floor (the last row).
func testStage(t *testing.T, rows []string) *Stage {
	t.Helper()
	cfg := testConfig()
	lvl := &levelgen.Level{World: 1, Slot: 1, Grid: tilemap.FromRows(rows)}
	p := NewPlayer(cfg.Player.Characters[0], cfg.Player)
	p.Lives = 3
	return NewStage(lvl, p, cfg, cfg.Enemy.Speed)
}

var flatRows = []string{
	"..........",
	"..........",
	"..........",
	"..........",
	"..........",
	"##########",
}

func stepN(s *Stage, n int, in core.Intent) (core.Events, StageOutcome) {
	var ev core.Events
	var out StageOutcome
	for i := 0; i < n; i++ {
		out = s.Step(in, &ev)
	}
	return ev, out
}

func TestStomps(t *testing.T) {
	tests := []struct {
		name       string
		vy, py, ey float64
		want       bool
	}{
		{"falling from above", 2, 50, 64, true},
		{"falling but level", 2, 64, 64, false},
		{"rising from above", -3, 50, 64, false},
		{"standing beside", 0, 64, 64, false},
		{"falling from below", 2, 70, 64, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stomps(tt.vy, tt.py, tt.ey); got != tt.want {
				t.Errorf("Stomps(%v,%v,%v) = %v, want %v", tt.vy, tt.py, tt.ey, got, tt.want)
			}
		})
	}
}

func TestSpawnOnFloor(t *testing.T) {
	s := testStage(t, flatRows)
	b := s.Player.Body()
	if b.X != 16 || b.Bottom() != 80 {
		t.Errorf("spawn at (%v, bottom %v), want (16, 80)", b.X, b.Bottom())
	}
}

func TestEnemiesFromSpawnMarkers(t *testing.T) {
	rows := append([]string(nil), flatRows...)
	rows[4] = ".....G...."
	s := testStage(t, rows)
	if len(s.Enemies) != 1 {
		t.Fatalf("enemies = %d, want 1", len(s.Enemies))
	}
	e := s.Enemies[0]
	if e.body.X != 80 || e.body.Bottom() != 80 {
		t.Errorf("enemy at (%v, bottom %v), want (80, 80)", e.body.X, e.body.Bottom())
	}
	if e.body.VX != -1 || e.Dir() != -1 {
		t.Errorf("enemy VX = %v, want -1", e.body.VX)
	}
	if s.Grid.At(5, 4) != tilemap.Empty {
		t.Error("spawn marker should be cleared")
	}
}

func TestJumpEmitsEvent(t *testing.T) {
	s := testStage(t, flatRows)
	stepN(s, 2, core.Intent{}) // settle on the floor
	ev, _ := stepN(s, 1, core.Intent{JumpPressed: true})
	if !ev.Has(core.EventJump) {
		t.Error("expected Jump event")
	}
	if s.Player.Body().VY >= 0 {
		t.Errorf("VY = %v, want rising", s.Player.Body().VY)
	}
	// Airborne jump presses are ignored
	ev, _ = stepN(s, 1, core.Intent{JumpPressed: true})
	if ev.Has(core.EventJump) {
		t.Error("jump while airborne should be ignored")
	}
}

func TestStompRemovesEnemy(t *testing.T) {
	s := testStage(t, flatRows)
	s.Enemies = []*Enemy{NewEnemy(16, 64, s.cfg.Enemy, 0)}
	b := s.Player.Body()
	b.Place(16, 50)
	b.VY = 2

	ev, out := stepN(s, 1, core.Intent{})
	if !ev.Has(core.EventStomp) {
		t.Fatalf("expected Stomp, events = %v", ev)
	}
	if len(s.Enemies) != 0 {
		t.Error("stomped enemy should be removed")
	}
	if b.VY != -5 || b.Grounded {
		t.Errorf("VY=%v grounded=%v, want bounce -5 airborne", b.VY, b.Grounded)
	}
	if out.Died || s.Player.Lives != 3 {
		t.Error("stomp must not cost a life")
	}
}

func TestSideHitKillsSmallPlayer(t *testing.T) {
	s := testStage(t, flatRows)
	s.Enemies = []*Enemy{NewEnemy(40, 64, s.cfg.Enemy, 0)}
	s.Player.Body().Place(30, 64)

	_, out := stepN(s, 1, core.Intent{})
	if !out.Died || s.Player.Lives != 0 {
		t.Errorf("died=%v lives=%d, want death", out.Died, s.Player.Lives)
	}
}

func TestBigPlayerShrinksThenInvulnerable(t *testing.T) {
	s := testStage(t, flatRows)
	p := s.Player
	p.SetBig(true, s.cfg.Player)
	s.SpawnPlayer()
	s.Enemies = []*Enemy{NewEnemy(40, 64, s.cfg.Enemy, 0)}
	p.Body().Place(30, 48)

	ev, out := stepN(s, 1, core.Intent{})
	if !ev.Has(core.EventPowerDown) {
		t.Fatal("expected PowerDown")
	}
	if p.Big || p.Body().H != 16 || p.Body().Bottom() != 80 {
		t.Errorf("big=%v h=%v bottom=%v, want small on the floor", p.Big, p.Body().H, p.Body().Bottom())
	}
	if p.Invulnerable != 60 {
		t.Errorf("invulnerable = %d, want 60", p.Invulnerable)
	}

	// Still touching the enemy, but the hit is ignored
	ev, out = stepN(s, 1, core.Intent{})
	if out.Died || ev.Has(core.EventPowerDown) {
		t.Error("hits during invulnerability must be ignored")
	}
	if p.Invulnerable != 59 {
		t.Errorf("invulnerable = %d, want 59", p.Invulnerable)
	}
}

func TestRewardBlockSpawnsOnce(t *testing.T) {
	rows := []string{
		"..........",
		"..........",
		".#........",
		"..........",
		"..........",
		"##########",
	}
	s := testStage(t, rows)
	s.Grid.MarkReward(1, 2)

	var all core.Events
	for i := 0; i < 40; i++ {
		ev, _ := stepN(s, 1, core.Intent{JumpPressed: true})
		all = append(all, ev...)
	}
	if all.Count(core.EventItemSpawned) != 1 {
		t.Errorf("ItemSpawned = %d, want exactly 1", all.Count(core.EventItemSpawned))
	}
	if all.Count(core.EventBump) < 2 {
		t.Errorf("Bump = %d, want repeated bumps", all.Count(core.EventBump))
	}
	if r, _ := s.Grid.Reward(1, 2); !r.Used {
		t.Error("reward should be used")
	}
	if s.Grid.At(1, 2) != tilemap.Solid {
		t.Error("reward block stays solid")
	}
}

func TestItemPowersUp(t *testing.T) {
	s := testStage(t, flatRows)
	s.Items = []*Item{NewItem(1, 5, s.cfg.Item)}

	ev, _ := stepN(s, 1, core.Intent{})
	if !ev.Has(core.EventPowerUp) {
		t.Fatal("expected PowerUp")
	}
	p := s.Player
	if !p.Big || p.Body().H != 32 || p.Body().Bottom() != 80 {
		t.Errorf("big=%v h=%v bottom=%v", p.Big, p.Body().H, p.Body().Bottom())
	}
	if len(s.Items) != 0 {
		t.Error("item should be consumed")
	}
}

func TestItemBouncesOffWalls(t *testing.T) {
	rows := append([]string(nil), flatRows...)
	rows[4] = "......#..."
	s := testStage(t, rows)
	s.Player.Body().Place(0, 64)
	s.Items = []*Item{NewItem(4, 5, s.cfg.Item)}

	stepN(s, 40, core.Intent{})
	if len(s.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(s.Items))
	}
	if s.Items[0].body.VX >= 0 {
		t.Errorf("item VX = %v, want reversed", s.Items[0].body.VX)
	}
}

func TestCollectCoin(t *testing.T) {
	rows := append([]string(nil), flatRows...)
	rows[4] = "..o......."
	s := testStage(t, rows)

	ev, _ := stepN(s, 1, core.Intent{MoveRight: true})
	if ev.Count(core.EventCoin) != 1 {
		t.Fatalf("Coin events = %d, want 1", ev.Count(core.EventCoin))
	}
	if s.Grid.At(2, 4) != tilemap.Empty || s.Player.Coins != 1 {
		t.Errorf("tile=%s coins=%d", s.Grid.At(2, 4), s.Player.Coins)
	}
}

func TestHazardKillsPlayer(t *testing.T) {
	rows := append([]string(nil), flatRows...)
	rows[5] = "##LL######"
	s := testStage(t, rows)

	var ev core.Events
	var out StageOutcome
	for i := 0; i < 10 && !out.Died; i++ {
		out = s.Step(core.Intent{MoveRight: true}, &ev)
	}
	if !out.Died {
		t.Fatal("walking onto lava should kill")
	}
	if !ev.Has(core.EventHazardContact) {
		t.Error("expected HazardContact")
	}
	if !s.Player.Body().Grounded {
		t.Error("lava holds the body like ground")
	}
}

func TestEnemyDiesOnHazard(t *testing.T) {
	rows := append([]string(nil), flatRows...)
	rows[5] = "######LL##"
	s := testStage(t, rows)
	s.Enemies = []*Enemy{NewEnemy(128, 64, s.cfg.Enemy, 1)}

	stepN(s, 30, core.Intent{})
	if len(s.Enemies) != 0 {
		t.Error("enemy should die on lava")
	}
}

func TestWalkersRemovedBelowLevel(t *testing.T) {
	rows := append([]string(nil), flatRows...)
	rows[5] = "###...####"
	s := testStage(t, rows)
	enemy := NewEnemy(64, 64, s.cfg.Enemy, 0)
	item := NewItem(4, 5, s.cfg.Item)
	item.body.VX = 0
	s.Enemies = []*Enemy{enemy}
	s.Items = []*Item{item}

	for i := 0; i < 60 && (len(s.Enemies) > 0 || len(s.Items) > 0); i++ {
		stepN(s, 1, core.Intent{})
		if len(s.Enemies) > 0 && enemy.body.Y > s.Grid.PixelHeight() {
			t.Fatalf("tick %d: enemy at y=%v still on the roster", i, enemy.body.Y)
		}
	}
	if len(s.Enemies) != 0 || enemy.Alive() {
		t.Errorf("enemies = %d, alive = %v, want removed", len(s.Enemies), enemy.Alive())
	}
	if len(s.Items) != 0 || item.Alive() {
		t.Errorf("items = %d, alive = %v, want removed", len(s.Items), item.Alive())
	}
	if !s.Player.Alive() {
		t.Error("player standing on the floor should be unaffected")
	}
}

func TestFallOutOfBounds(t *testing.T) {
	rows := append([]string(nil), flatRows...)
	rows[5] = "###...####"
	s := testStage(t, rows)

	var ev core.Events
	var out StageOutcome
	for i := 0; i < 120 && !out.Died; i++ {
		out = s.Step(core.Intent{MoveRight: true}, &ev)
	}
	if !out.Died || !ev.Has(core.EventFellOutOfBounds) {
		t.Errorf("died=%v events=%v, want a fall", out.Died, ev)
	}
}

func TestWorldEdgeClamp(t *testing.T) {
	s := testStage(t, flatRows)
	stepN(s, 20, core.Intent{MoveLeft: true})
	if x := s.Player.Body().X; x != 0 {
		t.Errorf("X = %v, want clamp at 0", x)
	}
	stepN(s, 100, core.Intent{MoveRight: true})
	if x := s.Player.Body().X; x != 160-16 {
		t.Errorf("X = %v, want clamp at 144", x)
	}
}

func TestGoalAtCentre(t *testing.T) {
	rows := append([]string(nil), flatRows...)
	rows[4] = "....F....."
	s := testStage(t, rows)

	s.Player.Body().Place(50, 64) // centre x 58, column 3
	if _, out := stepN(s, 1, core.Intent{}); out.Cleared {
		t.Fatal("centre not on the goal yet")
	}
	s.Player.Body().Place(60, 64) // centre x 68, column 4
	if _, out := stepN(s, 1, core.Intent{}); !out.Cleared {
		t.Error("centre on the goal should clear")
	}
}
