package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/swg/internal/engine"
	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/rules"
)

// maxLogLines bounds the round log shown under the input.
const maxLogLines = 8

// MatchModel plays one session inside Bubble Tea. Typed lines go through
// the same match.Session as the console loop.
type MatchModel struct {
	session    *match.Session
	controller *match.Controller
	profile    *match.Profile
	mode       engine.Mode
	rules      *rules.Ruleset

	input     textinput.Model
	keyMapper *KeyMapper
	log       []string
	notice    string
	saveErr   error
	saved     bool

	width    int
	height   int
	quitting bool
	back     bool
}

// NewMatchModel creates a match model. The profile's stats are updated as
// rounds resolve and persisted through the controller when the session
// ends or is abandoned.
func NewMatchModel(ctrl *match.Controller, p *match.Profile, eng *engine.Engine, rounds, width, height int) MatchModel {
	ti := textinput.New()
	ti.Placeholder = strings.Join(choiceNames(eng.Rules()), " / ")
	ti.Prompt = match.MovePrompt
	ti.CharLimit = 32
	ti.Width = 30
	ti.Focus()

	rs := eng.Rules()
	return MatchModel{
		session:    match.NewSession(rs, eng, rounds, &p.Stats),
		controller: ctrl,
		profile:    p,
		mode:       eng.Mode(),
		rules:      rs,
		input:      ti,
		keyMapper:  NewKeyMapper(),
		width:      width,
		height:     height,
	}
}

// Init initializes the model.
func (m MatchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m MatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMatchAction(msg) {
		case MatchActionQuit:
			m.persist()
			m.quitting = true
			return m, tea.Quit
		case MatchActionBack:
			m.persist()
			m.back = true
			return m, nil
		case MatchActionSubmit:
			if m.session.Done() {
				m.back = true
				return m, nil
			}
			m.submit()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if m.session.Done() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *MatchModel) submit() {
	line := m.input.Value()
	m.input.Reset()

	round, err := m.session.Play(line)
	if errors.Is(err, match.ErrInvalidChoice) {
		m.notice = "❌ Invalid input! Try again."
		return
	}
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.notice = ""

	entry := fmt.Sprintf("R%d  You %s  vs  %s  %s",
		round.Number,
		m.rules.Label(round.Human),
		m.rules.Label(round.Engine),
		renderOutcome(round.Outcome, outcomeText(round.Outcome)),
	)
	m.log = append(m.log, entry)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}

	if m.session.Done() {
		m.input.Blur()
		m.persist()
	}
}

// persist saves stats once, for finished or abandoned sessions with at
// least one resolved round.
func (m *MatchModel) persist() {
	if m.saved {
		return
	}
	res := m.session.Result()
	if res.Played() == 0 {
		return
	}
	m.saved = true
	m.saveErr = m.controller.Finish(context.Background(), m.profile, m.mode, m.rules, res)
}

// View renders the match screen.
func (m MatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	human, computer := m.session.Score()
	heading := fmt.Sprintf("Round %d of %d", min(m.session.Round(), m.session.Planned()), m.session.Planned())
	if m.session.Done() {
		heading = "🏁 Final Result"
	}
	b.WriteString(centerText(titleStyle.Render(heading), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(mutedStyle.Render(fmt.Sprintf("%s  |  %s", m.profile.Name, m.mode.Description())), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText("Choices: "+choiceLabels(m.rules), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(headerStyle.Render(fmt.Sprintf("🔢 Score: You %d - %d Computer", human, computer)), m.width))
	b.WriteString("\n\n")

	if len(m.log) > 0 {
		b.WriteString(centerText(panelStyle.Render(strings.Join(m.log, "\n")), m.width))
		b.WriteString("\n\n")
	}

	if m.session.Done() {
		res := m.session.Result()
		b.WriteString(centerText(renderOutcome(res.Outcome, finalText(res.Outcome)), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(mutedStyle.Render(m.profile.Stats.Summary()), m.width))
		b.WriteString("\n")
		if m.saveErr != nil {
			b.WriteString(centerText(errorStyle.Render("Stats not saved: "+m.saveErr.Error()), m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(centerText(mutedStyle.Render("Enter: Menu  |  Ctrl+C: Quit"), m.width))
		return b.String()
	}

	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(errorStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(mutedStyle.Render("Enter: Play  |  Esc: Menu  |  Ctrl+C: Quit"), m.width))

	return b.String()
}

// Finished reports whether every round has been played.
func (m MatchModel) Finished() bool {
	return m.session.Done()
}

// Result returns the session result so far.
func (m MatchModel) Result() match.Result {
	return m.session.Result()
}

// SaveErr returns the persistence error of the last save, if any.
func (m MatchModel) SaveErr() error {
	return m.saveErr
}

// IsQuitting returns true if user wants to quit.
func (m MatchModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user wants to return to the menu.
func (m MatchModel) WantsBack() bool {
	return m.back
}

func outcomeText(o rules.Outcome) string {
	switch o {
	case rules.Win:
		return "✅ Won"
	case rules.Loss:
		return "❌ Lost"
	default:
		return "⚖️ Draw"
	}
}

func finalText(o rules.Outcome) string {
	switch o {
	case rules.Win:
		return "🎉 You won the game!"
	case rules.Loss:
		return "💻 Computer won the game!"
	default:
		return "🤝 The game is a draw!"
	}
}

func choiceNames(rs *rules.Ruleset) []string {
	names := make([]string, 0, rs.Len())
	for _, c := range rs.Choices() {
		names = append(names, c.String())
	}
	return names
}

func choiceLabels(rs *rules.Ruleset) string {
	labels := make([]string, 0, rs.Len())
	for _, c := range rs.Choices() {
		labels = append(labels, rs.Label(c))
	}
	return strings.Join(labels, " | ")
}
