package match

import (
	"context"
	"fmt"

	"github.com/vovakirdan/swg/internal/engine"
	"github.com/vovakirdan/swg/internal/rules"
)

// Prompts used by the interactive flow.
const (
	NamePrompt     = "Enter your name: "
	ModePrompt     = "Enter 1 or 2: "
	AgainPrompt    = "Play again? (y/n): "
	roundsTemplate = "How many rounds do you want to play? (Default: %d): "
)

// Game is the full interactive flow: identify the player, then play
// sessions until the player declines to continue.
//
// Zero-valued Player, Mode and Rounds fields are asked for interactively.
type Game struct {
	Rules         *rules.Ruleset
	Controller    *Controller
	EngineOptions []engine.Option
	DefaultRounds int

	Player string
	Mode   *engine.Mode
	Rounds int

	// Once plays a single session without the play-again prompt.
	Once bool
}

// Play runs the interactive flow until the player stops or input fails.
func (g *Game) Play(ctx context.Context, in Input, out Reporter) error {
	def := g.DefaultRounds
	if def <= 0 {
		def = DefaultRounds
	}

	name := g.Player
	if name == "" {
		line, err := in.ReadLine(ctx, NamePrompt)
		if err != nil {
			return err
		}
		name = line
	}
	name = NormalizeName(name)

	profile, err := g.Controller.LoadProfile(ctx, name)
	if err != nil {
		return err
	}
	out.Welcome(profile.Name, profile.Stats)

	for {
		mode, err := g.chooseMode(ctx, in, out)
		if err != nil {
			return err
		}

		rounds, err := g.chooseRounds(ctx, in, def)
		if err != nil {
			return err
		}

		eng := engine.New(g.Rules, mode, g.EngineOptions...)
		if _, err := g.Controller.RunSession(ctx, rounds, eng, in, out, profile); err != nil {
			return err
		}

		if g.Once {
			out.Farewell(profile.Name)
			return nil
		}

		answer, err := in.ReadLine(ctx, AgainPrompt)
		if err != nil || !ParseContinue(answer) {
			out.Farewell(profile.Name)
			return nil
		}
	}
}

func (g *Game) chooseMode(ctx context.Context, in Input, out Reporter) (engine.Mode, error) {
	if g.Mode != nil {
		return *g.Mode, nil
	}
	out.ModeMenu(engine.Modes)
	line, err := in.ReadLine(ctx, ModePrompt)
	if err != nil {
		return engine.ModeUniform, err
	}
	return ParseModeAnswer(line), nil
}

func (g *Game) chooseRounds(ctx context.Context, in Input, def int) (int, error) {
	if g.Rounds > 0 {
		return g.Rounds, nil
	}
	line, err := in.ReadLine(ctx, fmt.Sprintf(roundsTemplate, def))
	if err != nil {
		return 0, err
	}
	n, perr := ParseRounds(line, def)
	if perr != nil {
		g.Controller.logger.Debug("using default round count", "input", line, "rounds", def)
	}
	return n, nil
}
