package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/levelgen"
)

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

// ChoiceKind is what the launcher was asked to start.
type ChoiceKind int

const (
	ChoiceCampaign ChoiceKind = iota
	ChoicePractice
	ChoiceRuns
)

// Choice is the launcher's result.
type Choice struct {
	Kind  ChoiceKind
	World int // Practice only
	Level int // Practice only
}

var launcherItems = []string{
	"Campaign",
	"Practice a level...",
	"Run history",
}

// LauncherModel is the start menu: campaign, practice level picker and
// run history.
type LauncherModel struct {
	cursor        int
	inLevelSelect bool
	world         int
	level         int
	maxWorld      int
	levels        int
	width         int
	height        int
	choice        *Choice
	quitting      bool
}

// NewLauncherModel creates the start menu for a campaign of maxWorld worlds
// with levels per world.
func NewLauncherModel(width, height, maxWorld, levels int) LauncherModel {
	return LauncherModel{
		world:    1,
		level:    1,
		maxWorld: max(1, maxWorld),
		levels:   max(1, levels),
		width:    width,
		height:   height,
	}
}

// Init initializes the model.
func (m LauncherModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LauncherModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := MapKeyToMenuAction(msg)
		if action == MenuActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
		if m.inLevelSelect {
			return m.handleLevelSelect(action)
		}
		return m.handleMain(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LauncherModel) handleMain(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(launcherItems)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			m.choice = &Choice{Kind: ChoiceCampaign}
			return m, tea.Quit
		case 1:
			m.inLevelSelect = true
		case 2:
			m.choice = &Choice{Kind: ChoiceRuns}
			return m, tea.Quit
		}
	case MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleLevelSelect moves through worlds with up/down and levels with left/right.
func (m LauncherModel) handleLevelSelect(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.world > 1 {
			m.world--
		}
	case MenuActionDown:
		if m.world < m.maxWorld {
			m.world++
		}
	case MenuActionLeft:
		if m.level > 1 {
			m.level--
		}
	case MenuActionRight:
		if m.level < m.levels {
			m.level++
		}
	case MenuActionSelect:
		m.choice = &Choice{Kind: ChoicePractice, World: m.world, Level: m.level}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// View renders the menu.
func (m LauncherModel) View() string {
	if m.quitting || m.choice != nil {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("P L A T F O R M E R", m.width))
	b.WriteString("\n\n")

	for i, item := range launcherItems {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width))
	b.WriteString("\n")
	return b.String()
}

func (m LauncherModel) viewLevelSelect() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for w := 1; w <= m.maxWorld; w++ {
		var cells []string
		for l := 1; l <= m.levels; l++ {
			label := fmt.Sprintf(" %d-%d ", w, l)
			if w == m.world && l == m.level {
				label = fmt.Sprintf("[%d-%d]", w, l)
			}
			cells = append(cells, label)
		}
		b.WriteString(centerText(strings.Join(cells, " "), m.width))
		b.WriteString("\n")
	}

	theme := levelgen.ThemeForSlot(m.level)
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("World %d-%d: %s", m.world, m.level, theme), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Arrows: Pick  |  Enter: Play  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Choice returns the selection, or nil if the user left.
func (m LauncherModel) Choice() *Choice {
	return m.choice
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// RunLauncher shows the start menu. It returns nil when the user quits.
func RunLauncher(cfg core.RuntimeConfig, maxWorld, levels int) (*Choice, error) {
	p := tea.NewProgram(
		NewLauncherModel(cfg.ScreenW, cfg.ScreenH, maxWorld, levels),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(LauncherModel)
	if !ok {
		return nil, nil
	}
	return m.Choice(), nil
}
