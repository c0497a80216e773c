package game

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levelgen"
)

// State is the session state machine position.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateLevelCleared
	StatePlayerDied
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateLevelCleared:
		return "level_cleared"
	case StatePlayerDied:
		return "player_died"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Mode selects how a session starts and whether it saves.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModePractice Mode = "practice"
)

// SlotIDs are the save slots offered by the menu.
var SlotIDs = []string{"1", "2", "3"}

// Session owns all mutable gameplay state for one process: menu selection,
// campaign cursor, both characters and the loaded stage.
type Session struct {
	cfg        config.PlatformerConfig
	pending    *config.PlatformerConfig
	difficulty *config.DifficultyManager
	mode       Mode

	state    State
	timer    int // Ticks left in an intermission or game-over hold
	paused   bool
	won      bool
	tick     uint64
	progress map[string]int

	slot    string
	world   int
	level   int
	players [2]*Player
	active  int
	stage   *Stage

	practiceWorld int
	practiceLevel int
}

// NewSession creates a campaign session waiting in the menu. progress maps
// slot id to the persisted world index; missing slots default to 1.
func NewSession(cfg config.PlatformerConfig, progress map[string]int) *Session {
	s := &Session{
		mode:     ModeCampaign,
		state:    StateMenu,
		progress: make(map[string]int, len(SlotIDs)),
	}
	for _, id := range SlotIDs {
		s.progress[id] = 1
	}
	for id, w := range progress {
		s.progress[id] = w
	}
	s.applyConfig(cfg)
	return s
}

// NewPractice creates a session that starts playing (world, level) at once
// and never records progress.
func NewPractice(cfg config.PlatformerConfig, world, level int) (*Session, error) {
	if world < 1 || world > cfg.Session.MaxWorld {
		return nil, fmt.Errorf("practice: world %d out of range 1..%d", world, cfg.Session.MaxWorld)
	}
	if level < 1 || level > cfg.Session.LevelsPerWorld {
		return nil, fmt.Errorf("practice: level %d out of range 1..%d", level, cfg.Session.LevelsPerWorld)
	}
	s := &Session{
		mode:          ModePractice,
		state:         StateMenu,
		progress:      map[string]int{},
		practiceWorld: world,
		practiceLevel: level,
	}
	s.applyConfig(cfg)
	s.startRun(world, level)
	return s, nil
}

func (s *Session) applyConfig(cfg config.PlatformerConfig) {
	s.cfg = cfg
	s.difficulty = config.NewDifficultyManager(cfg.Difficulty, cfg.Session.LevelsPerWorld)
	for i := range s.players {
		p := NewPlayer(cfg.Player.Characters[i], cfg.Player)
		if s.players[i] != nil {
			p.Lives = s.players[i].Lives
			p.Coins = s.players[i].Coins
			p.Big = s.players[i].Big
		}
		s.players[i] = p
	}
}

// SetConfig schedules new tunables. They take effect at the next level entry.
func (s *Session) SetConfig(cfg config.PlatformerConfig) {
	s.pending = &cfg
}

// Step advances the session by one tick.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	var ev core.Events

	if in.Has(core.ActionQuit) {
		return core.StepResult{State: s.GameState(), Quit: true}
	}
	s.tick++

	switch s.state {
	case StateMenu:
		if slot := in.Slot(); slot != "" {
			_ = s.SelectSlot(slot)
		}

	case StatePlaying:
		if in.Has(core.ActionPause) {
			s.paused = !s.paused
		}
		if s.paused {
			break
		}
		out := s.stage.Step(in.Intent(), &ev)
		switch {
		case out.Cleared:
			// Reaching the goal wins over a death in the same tick
			ev.Emit(s.event(core.EventLevelClear))
			s.enter(StateLevelCleared, s.cfg.Session.IntermissionTicks)
		case out.Died:
			ev.Emit(s.event(core.EventDeath))
			s.enter(StatePlayerDied, s.cfg.Session.IntermissionTicks)
		}

	case StateLevelCleared:
		if s.countdown() {
			s.ResolveClear(&ev)
		}

	case StatePlayerDied:
		if s.countdown() {
			s.ResolveDeath(&ev)
		}

	case StateGameOver:
		if s.timer > 0 {
			s.timer--
			break
		}
		if in.Any() {
			s.Acknowledge()
		}
	}

	return core.StepResult{State: s.GameState(), Events: ev}
}

func (s *Session) enter(state State, ticks int) {
	s.state = state
	s.timer = ticks
}

// countdown ticks an intermission and reports whether it is over.
func (s *Session) countdown() bool {
	if s.timer > 0 {
		s.timer--
	}
	return s.timer <= 0
}

func (s *Session) event(kind core.EventKind) core.Event {
	return core.Event{
		Kind:  kind,
		Slot:  s.slot,
		World: s.world,
		Level: s.level,
		Actor: s.players[s.active].Name,
	}
}

// SelectSlot starts a campaign run from the menu using the slot's saved world.
func (s *Session) SelectSlot(slot string) error {
	if s.state != StateMenu {
		return fmt.Errorf("session: slot selection outside the menu (state %s)", s.state)
	}
	world, ok := s.progress[slot]
	if !ok {
		return fmt.Errorf("session: unknown slot %q", slot)
	}
	if world < 1 || world > s.cfg.Session.MaxWorld {
		world = 1
	}
	s.slot = slot
	s.startRun(world, 1)
	return nil
}

// startRun resets both characters and loads the first level of a run.
func (s *Session) startRun(world, level int) {
	for _, p := range s.players {
		p.Lives = s.cfg.Session.InitialLives
		p.Coins = 0
		p.SetBig(false, s.cfg.Player)
	}
	s.active = 0
	s.world = world
	s.level = level
	s.won = false
	s.paused = false
	s.loadLevel()
	s.enter(StatePlaying, 0)
}

// loadLevel regenerates the current level and places the active player.
func (s *Session) loadLevel() {
	if s.pending != nil {
		s.applyConfig(*s.pending)
		s.pending = nil
	}
	lvl, err := levelgen.Generate(s.world, s.level)
	if err != nil {
		// The session only produces valid cursors
		panic(fmt.Sprintf("session: generate world %d level %d: %v", s.world, s.level, err))
	}
	speed := s.difficulty.EnemySpeed(s.cfg.Enemy.Speed, s.world, s.level)
	s.stage = NewStage(lvl, s.players[s.active], s.cfg, speed)
}

// ResolveClear advances the campaign cursor after a level clear.
func (s *Session) ResolveClear(ev *core.Events) {
	if s.level >= s.cfg.Session.LevelsPerWorld {
		s.world++
		s.level = 1
		if s.mode == ModeCampaign && s.world <= s.cfg.Session.MaxWorld {
			s.progress[s.slot] = s.world
			ev.Emit(s.event(core.EventProgressSaved))
		}
	} else {
		s.level++
	}

	if s.world > s.cfg.Session.MaxWorld {
		s.gameOver(true, ev)
		return
	}

	next := 1 - s.active
	if !s.players[next].Alive() {
		next = s.active
	}
	s.active = next
	s.loadLevel()
	s.enter(StatePlaying, 0)
}

// ResolveDeath hands the level to the other character or ends the run.
func (s *Session) ResolveDeath(ev *core.Events) {
	other := 1 - s.active
	if !s.players[other].Alive() {
		s.gameOver(false, ev)
		return
	}
	s.active = other
	s.loadLevel()
	s.enter(StatePlaying, 0)
}

func (s *Session) gameOver(won bool, ev *core.Events) {
	s.won = won
	e := s.event(core.EventGameOver)
	e.Won = won
	e.Coins = s.Coins()
	ev.Emit(e)
	s.enter(StateGameOver, s.cfg.Session.GameOverHoldTicks)
}

// Acknowledge leaves the game-over screen. Campaigns return to the menu,
// practice restarts its level.
func (s *Session) Acknowledge() {
	if s.state != StateGameOver {
		return
	}
	s.won = false
	if s.mode == ModePractice {
		s.startRun(s.practiceWorld, s.practiceLevel)
		return
	}
	s.stage = nil
	s.enter(StateMenu, 0)
}

// GameState summarizes the session for the platform.
func (s *Session) GameState() core.GameState {
	return core.GameState{
		Score:    s.Coins(),
		GameOver: s.state == StateGameOver,
		Won:      s.won,
		Paused:   s.paused,
	}
}

// Coins returns the coins collected by both characters in this run.
func (s *Session) Coins() int {
	return s.players[0].Coins + s.players[1].Coins
}

func (s *Session) State() State        { return s.state }
func (s *Session) Mode() Mode          { return s.mode }
func (s *Session) Slot() string        { return s.slot }
func (s *Session) World() int          { return s.world }
func (s *Session) Level() int          { return s.level }
func (s *Session) Won() bool           { return s.won }
func (s *Session) Paused() bool        { return s.paused }
func (s *Session) Tick() uint64        { return s.tick }
func (s *Session) Stage() *Stage       { return s.stage }
func (s *Session) ActiveIndex() int    { return s.active }
func (s *Session) Active() *Player     { return s.players[s.active] }
func (s *Session) Players() [2]*Player { return s.players }

// Config returns the tunables in effect.
func (s *Session) Config() config.PlatformerConfig { return s.cfg }

// Progress returns a copy of the slot to world mapping.
func (s *Session) Progress() map[string]int {
	out := make(map[string]int, len(s.progress))
	for k, v := range s.progress {
		out[k] = v
	}
	return out
}
