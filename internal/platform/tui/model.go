package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Options carries the side-effect sinks of a running game. Every field is
// optional; a nil sink is skipped.
type Options struct {
	Store     *storage.Store
	Audio     *audio.Player
	Logger    *log.Logger
	Watcher   *config.Watcher
	HoldTicks int  // Ticks a movement key stays held after a press
	ShowHelp  bool // Draw the key help on the bottom row
}

// configMsg reports a changed config file.
type configMsg string

// configErrMsg reports a watcher failure.
type configErrMsg struct{ err error }

// sessionGame is implemented by games whose tunables can be swapped live.
type sessionGame interface {
	Session() *game.Session
}

// Model is the Bubble Tea model for running the platformer.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	opts      Options
	log       *log.Logger
	config    core.RuntimeConfig
	keys      KeyMap
	help      help.Model
	input     *HeldInput
	gameState core.GameState
	quitting  bool
	stop      chan struct{} // Closed when the program exits; releases the config wait
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(g registry.Game, opts Options, cfg core.RuntimeConfig) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   g,
		screen: core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH, opts.ShowHelp)),
		opts:   opts,
		log:    logger,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		input:  NewHeldInput(opts.HoldTicks),
		stop:   make(chan struct{}),
	}
}

// gameRows is the screen height left for the game view.
func gameRows(height int, showHelp bool) int {
	if showHelp && height > 1 {
		return height - 1
	}
	return height
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if ce, ok := m.game.(interface{ ConfigError() error }); ok && ce.ConfigError() != nil {
		m.log.Warn("config fallback", "error", ce.ConfigError())
	}
	m.log.Info("game started", "mode", m.game.ID(), "fps", m.config.TickRate)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.opts.Watcher != nil {
		cmds = append(cmds, waitForConfig(m.opts.Watcher, m.stop))
	}
	return tea.Batch(cmds...)
}

// waitForConfig blocks until the watcher reports a change or stop is closed.
// The watcher outlives a single program, so a finished program must let go of
// its channels for the next one to receive changes.
func waitForConfig(w *config.Watcher, stop <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-stop:
			return nil
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return configMsg(path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return configErrMsg{err: err}
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, gameRows(msg.Height, m.opts.ShowHelp))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case configMsg:
		m.reloadConfig(string(msg))
		return m, waitForConfig(m.opts.Watcher, m.stop)

	case configErrMsg:
		m.log.Warn("config watcher", "error", msg.err)
		return m, waitForConfig(m.opts.Watcher, m.stop)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.MapKey(msg)
	if action == core.ActionNone && m.gameState.GameOver {
		// Any key leaves the game-over screen
		action = core.ActionConfirm
	}
	m.input.Press(action)
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasPaused := m.gameState.Paused

	result := m.game.Step(m.input.Frame())
	m.input.Advance()
	m.gameState = result.State
	m.handleEvents(result.Events)

	if result.State.Paused != wasPaused && m.opts.Audio != nil {
		m.opts.Audio.SetMusicPaused(result.State.Paused)
	}
	if result.Quit {
		m.quitting = true
		m.log.Info("quit", "mode", m.game.ID())
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// handleEvents forwards simulation events to audio, storage and the log.
func (m Model) handleEvents(events []core.Event) {
	if len(events) == 0 {
		return
	}
	if m.opts.Audio != nil {
		m.opts.Audio.Handle(events)
	}

	for _, e := range events {
		switch e.Kind {
		case core.EventLevelClear:
			m.log.Info("level cleared", "world", e.World, "level", e.Level, "actor", e.Actor)
		case core.EventDeath:
			m.log.Info("character down", "world", e.World, "level", e.Level, "actor", e.Actor)
		case core.EventProgressSaved:
			m.saveProgress(e)
		case core.EventGameOver:
			m.recordRun(e)
		default:
			m.log.Debug("event", "kind", e.Kind, "actor", e.Actor)
		}
	}
}

func (m Model) saveProgress(e core.Event) {
	if m.opts.Store == nil {
		m.log.Debug("progress not persisted, no store", "slot", e.Slot, "world", e.World)
		return
	}
	if err := m.opts.Store.SaveSlot(e.Slot, e.World); err != nil {
		m.log.Error("save progress", "slot", e.Slot, "world", e.World, "error", err)
		return
	}
	m.log.Info("progress saved", "slot", e.Slot, "world", e.World)
}

func (m Model) recordRun(e core.Event) {
	m.log.Info("game over", "won", e.Won, "world", e.World, "level", e.Level, "coins", e.Coins)
	if m.opts.Store == nil {
		return
	}
	run := storage.Run{
		Mode:  m.game.ID(),
		Slot:  e.Slot,
		World: e.World,
		Level: e.Level,
		Won:   e.Won,
		Coins: e.Coins,
	}
	if _, err := m.opts.Store.RecordRun(run); err != nil {
		m.log.Error("record run", "error", err)
	}
}

// reloadConfig re-reads tunables after the config file changed. They apply
// from the next level entry.
func (m Model) reloadConfig(path string) {
	sg, ok := m.game.(sessionGame)
	if !ok || sg.Session() == nil {
		return
	}
	cfg, err := game.LoadConfig()
	if err != nil {
		m.log.Warn("config reload rejected", "path", path, "error", err)
		return
	}
	sg.Session().SetConfig(cfg)
	m.log.Info("config reloaded", "path", path)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".platformer", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot", "error", err)
		return
	}
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot", "error", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.opts.ShowHelp {
		helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		out += "\n" + helpStyle.Render(m.help.View(m.keys))
	}
	return out
}

// Stop releases background waits started by the model. Calling it again is
// a no-op.
func (m Model) Stop() {
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
}

// Run starts the Bubble Tea program for the given game.
func Run(g registry.Game, opts Options, cfg core.RuntimeConfig) error {
	m := NewModel(g, opts, cfg)
	defer m.Stop()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
