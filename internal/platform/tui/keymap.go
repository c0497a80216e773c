package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Confirm key.Binding
	Slot1   key.Binding
	Slot2   key.Binding
	Slot3   key.Binding
	Pause   key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump},
		{k.Slot1, k.Slot2, k.Slot3, k.Confirm},
		{k.Pause, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/↑", "jump"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Slot1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "file 1")),
		Slot2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "file 2")),
		Slot3: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "file 3")),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to an action. Unbound keys map to ActionNone.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Slot1):
		return core.ActionSlot1
	case key.Matches(msg, k.Slot2):
		return core.ActionSlot2
	case key.Matches(msg, k.Slot3):
		return core.ActionSlot3
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	}
	return core.ActionNone
}

// HeldInput turns key presses into per-tick frames. Terminals report presses
// and auto-repeats but no releases, so movement and jump stay held for a
// window of ticks after the last press. Everything else lasts one tick.
type HeldInput struct {
	window  int
	held    map[core.Action]int // Ticks left
	oneShot core.InputFrame
}

// NewHeldInput creates an input tracker. A window below 1 is treated as 1.
func NewHeldInput(window int) *HeldInput {
	return &HeldInput{
		window:  max(1, window),
		held:    make(map[core.Action]int),
		oneShot: core.NewInputFrame(),
	}
}

func isHeld(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight || a == core.ActionJump
}

// Press records an action for the coming ticks.
func (h *HeldInput) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if !isHeld(a) {
		h.oneShot.Set(a)
		return
	}
	// Opposite directions cancel each other
	switch a {
	case core.ActionLeft:
		delete(h.held, core.ActionRight)
	case core.ActionRight:
		delete(h.held, core.ActionLeft)
	}
	h.held[a] = h.window
}

// Frame returns the actions active for the current tick.
func (h *HeldInput) Frame() core.InputFrame {
	f := h.oneShot.Clone()
	for a, left := range h.held {
		if left > 0 {
			f.Set(a)
		}
	}
	return f
}

// Advance ends the current tick.
func (h *HeldInput) Advance() {
	h.oneShot.Clear()
	for a, left := range h.held {
		if left <= 1 {
			delete(h.held, a)
			continue
		}
		h.held[a] = left - 1
	}
}

// Release drops every held action.
func (h *HeldInput) Release() {
	h.oneShot.Clear()
	for a := range h.held {
		delete(h.held, a)
	}
}
