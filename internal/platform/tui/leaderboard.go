package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/swg/internal/stats"
)

// boardKeys are the leaderboard bindings. Scrolling is handled by the
// table's own key map and only borrowed here for the help line.
type boardKeys struct {
	scroll  table.KeyMap
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.scroll.LineUp, k.scroll.LineDown, k.Refresh, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		scroll:  table.DefaultKeyMap(),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		// tab mirrors the menu shortcut that opened the board.
		Back: key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc/tab", "menu")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardColumns lists the ranking columns. The player column takes up to
// 14 extra cells when the terminal is wide.
func boardColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 16},
		{Title: "W", Width: 5},
		{Title: "L", Width: 5},
		{Title: "D", Width: 5},
		{Title: "Games", Width: 6},
		{Title: "Win Rate", Width: 9},
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	if extra := width - 4 - used; extra > 0 {
		cols[1].Width += min(extra, 14)
	}
	return cols
}

func boardRow(rank int, p stats.PlayerStats) table.Row {
	s := p.Stats
	return table.Row{
		strconv.Itoa(rank),
		p.Player,
		strconv.Itoa(s.Wins),
		strconv.Itoa(s.Losses),
		strconv.Itoa(s.Draws),
		strconv.Itoa(s.Total),
		fmt.Sprintf("%.2f%%", s.WinRate()),
	}
}

// LeaderboardModel lists players ranked by wins.
type LeaderboardModel struct {
	lister  stats.Lister
	players []stats.PlayerStats
	loadErr error

	table table.Model
	help  help.Model
	keys  boardKeys

	width, height int

	standalone bool // back quits the program instead of returning to a parent
	quitting   bool
	goingBack  bool
}

// NewLeaderboardModel creates a leaderboard model. lister may be nil when
// the active store cannot enumerate players.
func NewLeaderboardModel(lister stats.Lister, width, height int) LeaderboardModel {
	m := LeaderboardModel{
		lister: lister,
		keys:   newBoardKeys(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = table.New(table.WithFocused(true), table.WithStyles(boardTableStyles()))
	m.resize()
	m.reload()
	return m
}

func (m *LeaderboardModel) resize() {
	m.table.SetColumns(boardColumns(m.width))
	m.table.SetHeight(max(m.height-8, 3))
	m.help.Width = m.width
}

// reload fetches the ranking again and moves the cursor to first place.
func (m *LeaderboardModel) reload() {
	m.players, m.loadErr = nil, nil
	if m.lister != nil {
		m.players, m.loadErr = m.lister.Players(context.Background())
	}

	rows := make([]table.Row, 0, len(m.players))
	for i, p := range m.players {
		rows = append(rows, boardRow(i+1, p))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the model.
func (m LeaderboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.resize()
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(k, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(k, m.keys.Refresh):
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch {
	case m.lister == nil:
		body = mutedStyle.Padding(1, 2).Render("This storage backend cannot list players.")
	case m.loadErr != nil:
		body = errorStyle.Render("Cannot load players: " + m.loadErr.Error())
	case len(m.players) == 0:
		body = mutedStyle.Padding(1, 2).Render("No games recorded yet.\nPlay a match to get on the board!")
	default:
		body = m.table.View()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("LEADERBOARD"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(panelStyle.Render(body), m.width))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// IsGoingBack reports whether the player left the board for the menu.
func (m LeaderboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to exit the program.
func (m LeaderboardModel) IsQuitting() bool {
	return m.quitting
}

// RunLeaderboard shows the board as a standalone program, as used by
// `swg stats --tui`.
func RunLeaderboard(lister stats.Lister, width, height int) error {
	model := NewLeaderboardModel(lister, width, height)
	model.standalone = true
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
