package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/swg/internal/engine"
)

// roundOptions are the round counts offered by the menu.
var roundOptions = []int{3, 5, 7, 10}

// Selection holds the user's choice from the mode menu.
type Selection struct {
	Mode   engine.Mode
	Rounds int
}

// menuStep is a page of the two-step menu: pick a mode, then a round count.
type menuStep int

const (
	stepMode menuStep = iota
	stepRounds
)

// ModeMenuModel lets users choose the engine mode and the round count.
type ModeMenuModel struct {
	title      string
	allowBoard bool
	keyMapper  *KeyMapper

	step    menuStep
	cursors [2]int // one cursor per step

	width, height int

	done        bool
	quitting    bool
	back        bool
	leaderboard bool
}

// NewModeMenuModel creates a mode selection model with the adaptive mode
// highlighted. defaultRounds preselects the matching round option when
// present. allowBoard enables the leaderboard shortcut.
func NewModeMenuModel(title string, width, height, defaultRounds int, allowBoard bool) ModeMenuModel {
	m := ModeMenuModel{
		title:      title,
		allowBoard: allowBoard,
		keyMapper:  NewKeyMapper(),
		width:      width,
		height:     height,
	}
	m.cursors[stepMode] = int(engine.ModeAdaptive)
	for i, n := range roundOptions {
		if n == defaultRounds {
			m.cursors[stepRounds] = i
		}
	}
	return m
}

// labels returns the entries shown on the current step.
func (m ModeMenuModel) labels() []string {
	if m.step == stepRounds {
		out := make([]string, len(roundOptions))
		for i, n := range roundOptions {
			out[i] = fmt.Sprintf("%2d rounds", n)
		}
		return out
	}
	out := make([]string, len(engine.Modes))
	for i, mode := range engine.Modes {
		out[i] = mode.Description()
	}
	return out
}

// Init initializes the model.
func (m ModeMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ModeMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		return m, nil
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	cur := &m.cursors[m.step]
	switch m.keyMapper.MapKeyToMenuAction(k) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		*cur = max(*cur-1, 0)
	case MenuActionDown:
		*cur = min(*cur+1, len(m.labels())-1)
	case MenuActionSelect:
		if m.step == stepMode {
			m.step = stepRounds
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	case MenuActionBack:
		if m.step == stepRounds {
			m.step = stepMode
			return m, nil
		}
		m.back = true
		return m, tea.Quit
	case MenuActionLeaderboard:
		if m.allowBoard && m.step == stepMode {
			m.leaderboard = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m ModeMenuModel) View() string {
	if m.quitting {
		return ""
	}

	prompt, help := "Choose AI mode:", "Enter: Select  |  Esc: Back  |  Q: Quit"
	if m.step == stepRounds {
		prompt = "How many rounds?"
	} else if m.allowBoard {
		help = "Enter: Select  |  Tab: Leaderboard  |  Q: Quit"
	}

	lines := []string{"", titleStyle.Render(m.title), "", prompt, ""}
	for i, label := range m.labels() {
		if i == m.cursors[m.step] {
			lines = append(lines, cursorStyle.Render("> "+label))
		} else {
			lines = append(lines, "  "+label)
		}
	}
	lines = append(lines, "", mutedStyle.Render(help))

	for i, l := range lines {
		lines[i] = centerText(l, m.width)
	}
	return strings.Join(lines, "\n")
}

// Selected returns the selection, or nil if still choosing.
func (m ModeMenuModel) Selected() *Selection {
	if !m.done {
		return nil
	}
	return &Selection{
		Mode:   engine.Modes[m.cursors[stepMode]],
		Rounds: roundOptions[m.cursors[stepRounds]],
	}
}

// IsQuitting returns true if user wants to quit.
func (m ModeMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back on the first screen.
func (m ModeMenuModel) WantsBack() bool {
	return m.back
}

// WantsLeaderboard returns true if user asked for the leaderboard.
func (m ModeMenuModel) WantsLeaderboard() bool {
	return m.leaderboard
}

// RunModeSelector runs the mode menu on its own and returns the selection,
// or nil if the user backed out.
func RunModeSelector(title string, width, height, defaultRounds int) (*Selection, error) {
	final, err := tea.NewProgram(
		NewModeMenuModel(title, width, height, defaultRounds, false),
		tea.WithAltScreen(),
	).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(ModeMenuModel)
	if !ok || m.quitting || m.back {
		return nil, nil
	}
	return m.Selected(), nil
}
