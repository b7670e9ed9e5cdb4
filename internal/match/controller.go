package match

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/swg/internal/engine"
	"github.com/vovakirdan/swg/internal/rules"
	"github.com/vovakirdan/swg/internal/stats"
)

// MovePrompt is shown when asking for the human's move.
const MovePrompt = "Your move: "

// Input supplies one line of player text per prompt. ReadLine blocks
// until a line is available or ctx is done, in which case it returns
// ctx.Err().
type Input interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// Reporter receives human-readable progress of a session.
type Reporter interface {
	Welcome(player string, st stats.Stats)
	ModeMenu(modes []engine.Mode)
	RoundStart(round, planned int, rs *rules.Ruleset)
	InvalidChoice(input string, rs *rules.Ruleset)
	RoundResolved(r Round, rs *rules.Ruleset)
	SessionComplete(res Result, st stats.Stats)
	Farewell(player string)
}

// Profile is a player's identity and the stats loaded for it.
type Profile struct {
	Name  string
	Stats stats.Stats
}

// ResultData is the session summary handed to stores that keep history.
type ResultData struct {
	SessionID    string
	Player       string
	Ruleset      string
	Mode         string
	RoundsPlayed int
	RoundsPlan   int
	HumanWins    int
	EngineWins   int
	Draws        int
	Outcome      string
	DurationSecs int
}

// ResultSaver is implemented by stores that record per-session history.
type ResultSaver interface {
	SaveSessionResult(ctx context.Context, data ResultData) error
}

// PersistenceError reports a failed stats load or save. In-memory stats
// are left as they were.
type PersistenceError struct {
	Player string
	Op     string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("match: cannot %s stats for %q: %v", e.Op, e.Player, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, stats.ErrPersistence) hold for every PersistenceError.
func (e *PersistenceError) Is(target error) bool {
	return target == stats.ErrPersistence
}

// Controller runs sessions and persists their outcome.
type Controller struct {
	store  stats.Store
	logger *log.Logger
}

// NewController creates a controller. store may be nil, in which case
// stats live only in memory. A nil logger discards output.
func NewController(store stats.Store, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{store: store, logger: logger}
}

// LoadProfile loads a player's stats, zero-initialised when absent.
func (c *Controller) LoadProfile(ctx context.Context, name string) (*Profile, error) {
	p := &Profile{Name: name}
	if c.store == nil {
		return p, nil
	}

	st, found, err := c.store.Load(ctx, name)
	if err != nil {
		c.logger.Error("failed to load stats", "player", name, "err", err)
		return p, &PersistenceError{Player: name, Op: "load", Err: err}
	}
	if found {
		p.Stats = st
	}
	c.logger.Debug("profile loaded", "player", name, "found", found, "total", p.Stats.Total)
	return p, nil
}

// RunSession plays roundCount valid rounds between in and eng.
//
// Invalid moves are reported and the same round is asked again. After the
// last round the summary is reported and the profile's stats are saved.
// A failed save returns the result together with a *PersistenceError.
// If in fails (for example at EOF) or ctx is cancelled, the rounds played
// so far are saved and the input or context error is returned. A line read
// after cancellation is not played.
func (c *Controller) RunSession(ctx context.Context, roundCount int, eng *engine.Engine, in Input, out Reporter, p *Profile) (Result, error) {
	rs := eng.Rules()
	sess := NewSession(rs, eng, roundCount, &p.Stats)

	c.logger.Debug("session started",
		"player", p.Name,
		"mode", eng.Mode().String(),
		"rounds", sess.Planned(),
	)

	for !sess.Done() {
		if err := ctx.Err(); err != nil {
			return c.interrupt(ctx, p, eng.Mode(), rs, sess, err)
		}

		out.RoundStart(sess.Round(), sess.Planned(), rs)

		line, err := in.ReadLine(ctx, MovePrompt)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			return c.interrupt(ctx, p, eng.Mode(), rs, sess, err)
		}

		round, err := sess.Play(line)
		if errors.Is(err, ErrInvalidChoice) {
			c.logger.Debug("invalid move", "player", p.Name, "input", line)
			out.InvalidChoice(line, rs)
			continue
		}
		if err != nil {
			return sess.Result(), err
		}

		c.logger.Debug("round resolved",
			"round", round.Number,
			"human", round.Human,
			"engine", round.Engine,
			"outcome", round.Outcome.String(),
		)
		out.RoundResolved(round, rs)
	}

	res := sess.Result()
	out.SessionComplete(res, p.Stats)

	if err := c.Finish(ctx, p, eng.Mode(), rs, res); err != nil {
		return res, err
	}
	return res, nil
}

// Finish persists the profile's stats and, when the store supports it,
// the session summary.
func (c *Controller) Finish(ctx context.Context, p *Profile, mode engine.Mode, rs *rules.Ruleset, res Result) error {
	if c.store == nil {
		return nil
	}

	if err := c.store.Save(ctx, p.Name, p.Stats); err != nil {
		c.logger.Error("failed to save stats", "player", p.Name, "err", err)
		return &PersistenceError{Player: p.Name, Op: "save", Err: err}
	}

	saver, ok := c.store.(ResultSaver)
	if !ok || res.Played() == 0 {
		return nil
	}

	data := ResultData{
		SessionID:    uuid.NewString(),
		Player:       p.Name,
		Ruleset:      rs.Name(),
		Mode:         mode.String(),
		RoundsPlayed: res.Played(),
		RoundsPlan:   res.Planned,
		HumanWins:    res.HumanWins,
		EngineWins:   res.EngineWins,
		Draws:        res.Draws,
		Outcome:      res.Outcome.String(),
		DurationSecs: int(res.Duration.Seconds()),
	}
	if err := saver.SaveSessionResult(ctx, data); err != nil {
		c.logger.Error("failed to record session", "player", p.Name, "err", err)
		return &PersistenceError{Player: p.Name, Op: "record", Err: err}
	}
	return nil
}

func (c *Controller) interrupt(ctx context.Context, p *Profile, mode engine.Mode, rs *rules.Ruleset, sess *Session, cause error) (Result, error) {
	res := sess.Result()
	c.logger.Debug("session interrupted", "player", p.Name, "played", res.Played(), "err", cause)

	if res.Played() == 0 {
		return res, cause
	}
	// The caller's context may already be cancelled; the save must still run.
	if err := c.Finish(context.WithoutCancel(ctx), p, mode, rs, res); err != nil {
		return res, errors.Join(cause, err)
	}
	return res, cause
}
