package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/swg/internal/engine"
	"github.com/vovakirdan/swg/internal/match"
	"github.com/vovakirdan/swg/internal/rules"
	"github.com/vovakirdan/swg/internal/stats"
)

// headerWidth is the width of the ==== banner lines.
const headerWidth = 40

// Options configures a Printer.
type Options struct {
	Title string        // banner shown by Welcome
	Color bool          // style output with ANSI colors
	Delay time.Duration // per-character typewriter delay, 0 prints at once
}

// Printer writes session progress as text. It implements match.Reporter.
type Printer struct {
	w     io.Writer
	delay time.Duration
	title string

	rule  lipgloss.Style
	head  lipgloss.Style
	win   lipgloss.Style
	loss  lipgloss.Style
	draw  lipgloss.Style
	muted lipgloss.Style
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, opts Options) *Printer {
	r := lipgloss.NewRenderer(w)
	p := &Printer{
		w:     w,
		delay: opts.Delay,
		title: opts.Title,
		rule:  r.NewStyle(),
		head:  r.NewStyle(),
		win:   r.NewStyle(),
		loss:  r.NewStyle(),
		draw:  r.NewStyle(),
		muted: r.NewStyle(),
	}
	if p.title == "" {
		p.title = "Snake-Water-Gun"
	}
	if opts.Color {
		p.rule = p.rule.Foreground(lipgloss.Color("245"))
		p.head = p.head.Bold(true).Foreground(lipgloss.Color("14"))
		p.win = p.win.Foreground(lipgloss.Color("10"))
		p.loss = p.loss.Foreground(lipgloss.Color("9"))
		p.draw = p.draw.Foreground(lipgloss.Color("11"))
		p.muted = p.muted.Foreground(lipgloss.Color("245"))
	}
	return p
}

// Welcome implements match.Reporter.
func (p *Printer) Welcome(player string, st stats.Stats) {
	p.header(p.title)
	if st.Total == 0 {
		p.say(fmt.Sprintf("Welcome, %s!", player))
	} else {
		p.say(fmt.Sprintf("Welcome back, %s!", player))
	}
	p.say(p.muted.Render(st.Summary()))
}

// ModeMenu implements match.Reporter.
func (p *Printer) ModeMenu(modes []engine.Mode) {
	p.say("")
	p.say("Choose AI mode:")
	for i, m := range modes {
		p.say(fmt.Sprintf("%d. %s", i+1, m.Description()))
	}
}

// RoundStart implements match.Reporter.
func (p *Printer) RoundStart(round, planned int, rs *rules.Ruleset) {
	p.header(fmt.Sprintf("Round %d of %d", round, planned))
	p.say("Choices: " + ChoiceList(rs))
}

// InvalidChoice implements match.Reporter.
func (p *Printer) InvalidChoice(input string, rs *rules.Ruleset) {
	p.say(p.loss.Render("❌ Invalid input! Try again."))
}

// RoundResolved implements match.Reporter.
func (p *Printer) RoundResolved(r match.Round, rs *rules.Ruleset) {
	p.say(fmt.Sprintf("🤖 Computer chose: %s", rs.Label(r.Engine)))
	switch r.Outcome {
	case rules.Draw:
		p.say(p.draw.Render("⚖️ It's a Draw!"))
	case rules.Win:
		p.say(p.win.Render("✅ You Won this round!"))
	case rules.Loss:
		p.say(p.loss.Render("❌ You Lost this round."))
	}
	p.say(fmt.Sprintf("🔢 Score: You %d - %d Computer", r.HumanScore, r.EngineScore))
}

// SessionComplete implements match.Reporter.
func (p *Printer) SessionComplete(res match.Result, st stats.Stats) {
	p.header("🏁 Final Result")
	switch res.Outcome {
	case rules.Win:
		p.say(p.win.Render("🎉 You won the game!"))
	case rules.Loss:
		p.say(p.loss.Render("💻 Computer won the game!"))
	default:
		p.say(p.draw.Render("🤝 The game is a draw!"))
	}
	p.say(p.muted.Render(st.Summary()))
}

// Farewell implements match.Reporter.
func (p *Printer) Farewell(player string) {
	p.say("")
	p.say(fmt.Sprintf("👋 Thanks for playing, %s!", player))
}

// ChoiceList renders "Snake 🐍 | Water 💧 | Gun 🔫".
func ChoiceList(rs *rules.Ruleset) string {
	labels := make([]string, 0, rs.Len())
	for _, c := range rs.Choices() {
		labels = append(labels, rs.Label(c))
	}
	return strings.Join(labels, " | ")
}

func (p *Printer) header(title string) {
	line := p.rule.Render(strings.Repeat("=", headerWidth))
	p.say("")
	p.say(line)
	p.say(p.head.Render(lipgloss.PlaceHorizontal(headerWidth, lipgloss.Center, title)))
	p.say(line)
}

// say writes one line, character by character when a delay is set.
func (p *Printer) say(s string) {
	if p.delay <= 0 {
		fmt.Fprintln(p.w, s)
		return
	}
	for _, r := range s {
		fmt.Fprint(p.w, string(r))
		time.Sleep(p.delay)
	}
	fmt.Fprintln(p.w)
}

var _ match.Reporter = (*Printer)(nil)
