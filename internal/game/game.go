// Package game implements the platformer simulation: entities, the per-tick
// interaction pass, the session state machine and a render-facing snapshot.
// It performs no I/O; side effects leave as core.Event records.
package game

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// Package-level settings applied on the next Reset, set from the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	savedProgress    map[string]int
	practiceWorld    = 1
	practiceLevel    = 1
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetProgress sets the slot progress a campaign starts from.
func SetProgress(progress map[string]int) {
	savedProgress = progress
}

// SetPracticeStart sets the level practice mode starts on.
func SetPracticeStart(world, level int) {
	practiceWorld = world
	practiceLevel = level
}

// LoadConfig resolves the configuration from the configured path and preset.
// On error the defaults (with the preset applied) are returned alongside it.
func LoadConfig() (config.PlatformerConfig, error) {
	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		cfg = config.DefaultPlatformerConfig()
	}
	config.ApplyPlatformerPreset(&cfg, difficultyPreset)
	return cfg, err
}

// Game adapts a Session to the registry interface.
type Game struct {
	mode    Mode
	session *Session
	cfg     config.PlatformerConfig
	runtime core.RuntimeConfig
	cfgErr  error
}

// New creates a campaign game that opens on the slot menu.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewPracticeGame creates a game that drops straight into a level.
func NewPracticeGame() *Game {
	return &Game{mode: ModePractice}
}

func init() {
	registry.Register("campaign", func() registry.Game {
		return New()
	})
	registry.Register("practice", func() registry.Game {
		return NewPracticeGame()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModePractice {
		return "Platformer (Practice)"
	}
	return "Platformer"
}

// Reset loads configuration and builds a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg, g.cfgErr = LoadConfig()

	if g.mode == ModePractice {
		s, err := NewPractice(g.cfg, practiceWorld, practiceLevel)
		if err != nil {
			g.cfgErr = err
			s, _ = NewPractice(g.cfg, 1, 1)
		}
		g.session = s
		return
	}
	g.session = NewSession(g.cfg, savedProgress)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	return g.session.Step(in)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	cfg := g.session.Config()
	Render(dst, g.session.Snapshot(cfg.Display.ViewportTiles), cfg.Display.CellsPerTile)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.session.GameState()
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// ConfigError returns the problem met while loading config on the last
// Reset, if any.
func (g *Game) ConfigError() error {
	return g.cfgErr
}
