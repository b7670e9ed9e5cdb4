package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/swg/internal/engine"
	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/rules"
	"github.com/vovakirdan/swg/internal/stats"
)

// Deps are the collaborators shared by every TUI session.
type Deps struct {
	Rules         *rules.Ruleset
	Store         stats.Store
	Controller    *match.Controller
	EngineOptions []engine.Option
	DefaultRounds int
	Title         string
}

type screen int

const (
	screenMenu screen = iota
	screenMatch
	screenLeaderboard
)

// SessionModel manages one player's flow: menu -> match -> menu, with the
// leaderboard reachable from the menu. It is the top-level model for local
// TUI play and SSH sessions.
type SessionModel struct {
	deps     Deps
	profile  *match.Profile
	loadErr  error
	width    int
	height   int
	screen   screen
	menu     ModeMenuModel
	match    MatchModel
	board    LeaderboardModel
	quitting bool
}

// NewSessionModel creates a session for player. The profile is loaded
// once and shared by every match of the session.
func NewSessionModel(deps Deps, player string, width, height int) SessionModel {
	if deps.Title == "" {
		deps.Title = "Snake-Water-Gun"
	}
	if deps.Controller == nil {
		deps.Controller = match.NewController(deps.Store, nil)
	}

	p, err := deps.Controller.LoadProfile(context.Background(), match.NormalizeName(player))
	if err != nil {
		// Unknown stored stats must not be overwritten; play without saving.
		deps.Controller = match.NewController(nil, nil)
	}

	m := SessionModel{
		deps:    deps,
		profile: p,
		loadErr: err,
		width:   width,
		height:  height,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() ModeMenuModel {
	_, canList := m.deps.Store.(stats.Lister)
	return NewModeMenuModel(m.deps.Title+" - "+m.profile.Name, m.width, m.height, m.deps.DefaultRounds, canList)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenMatch:
		return m.updateMatch(msg)
	case screenLeaderboard:
		return m.updateBoard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(ModeMenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() || m.menu.WantsBack() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsLeaderboard() {
		lister, _ := m.deps.Store.(stats.Lister)
		m.board = NewLeaderboardModel(lister, m.width, m.height)
		m.screen = screenLeaderboard
		return m, m.board.Init()
	}

	if sel := m.menu.Selected(); sel != nil {
		eng := engine.New(m.deps.Rules, sel.Mode, m.deps.EngineOptions...)
		m.match = NewMatchModel(m.deps.Controller, m.profile, eng, sel.Rounds, m.width, m.height)
		m.screen = screenMatch
		return m, m.match.Init()
	}

	return m, cmd
}

func (m SessionModel) updateMatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.match.Update(msg)
	if matchModel, ok := newModel.(MatchModel); ok {
		m.match = matchModel
	}

	if m.match.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.match.WantsBack() {
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.board.Update(msg)
	if board, ok := newModel.(LeaderboardModel); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	var view string
	switch m.screen {
	case screenMatch:
		view = m.match.View()
	case screenLeaderboard:
		view = m.board.View()
	default:
		view = m.menu.View()
		view += "\n\n" + centerText(mutedStyle.Render(m.profile.Stats.Summary()), m.width)
	}

	if m.loadErr != nil {
		view += "\n" + centerText(errorStyle.Render("Stats unavailable: "+m.loadErr.Error()), m.width)
	}
	return view
}

// Profile returns the session's player profile.
func (m SessionModel) Profile() *match.Profile {
	return m.profile
}

// RunSession runs a full local TUI session for player.
func RunSession(deps Deps, player string, width, height int) error {
	p := tea.NewProgram(
		NewSessionModel(deps, player, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
