// Package engine implements the computer opponent's move selection.
//
// An Engine observes the human player's move history and picks its own
// move either uniformly at random or by countering the human's most
// frequent move so far.
package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/vovakirdan/swg/internal/rules"
)

// Mode selects the engine's strategy. It is fixed for the engine's lifetime.
type Mode int

const (
	// ModeUniform picks a random choice every round and keeps no memory.
	ModeUniform Mode = iota

	// ModeAdaptive counters the opponent's most frequent historical move.
	ModeAdaptive
)

// Modes lists all modes in menu order.
var Modes = []Mode{ModeUniform, ModeAdaptive}

// String returns the mode's config name.
func (m Mode) String() string {
	switch m {
	case ModeUniform:
		return "uniform"
	case ModeAdaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

// Description returns the label shown in mode menus.
func (m Mode) Description() string {
	switch m {
	case ModeUniform:
		return "Random Mode"
	case ModeAdaptive:
		return "Smart AI (learns your pattern)"
	default:
		return "Unknown"
	}
}

// ParseMode converts a config value or menu answer into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uniform", "random", "1":
		return ModeUniform, nil
	case "adaptive", "smart", "2":
		return ModeAdaptive, nil
	}
	return ModeUniform, fmt.Errorf("engine: unknown mode %q", s)
}

// Source is the randomness used for uniform draws.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the randomness source.
func WithSource(src Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.rng = src
		}
	}
}

// WithSeed uses a deterministic PCG source seeded with seed.
// A zero seed keeps the time-based default.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = NewSource(seed)
		}
	}
}

// WithWindow limits frequency analysis to the last n opponent moves.
// n <= 0 analyses the whole session history.
func WithWindow(n int) Option {
	return func(e *Engine) {
		if n < 0 {
			n = 0
		}
		e.window = n
	}
}

// NewSource returns a seeded PCG-backed source.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Engine selects the computer's move for each round.
type Engine struct {
	rules   *rules.Ruleset
	mode    Mode
	rng     Source
	window  int
	history []int // opponent moves as declaration indices
}

// New creates an engine with an empty opponent history.
func New(rs *rules.Ruleset, mode Mode, opts ...Option) *Engine {
	e := &Engine{
		rules: rs,
		mode:  mode,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewSource(time.Now().UnixNano())
	}
	return e
}

// Mode returns the engine's strategy.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Window returns the analysis window (0 = whole history).
func (e *Engine) Window() int {
	return e.window
}

// Rules returns the ruleset the engine plays under.
func (e *Engine) Rules() *rules.Ruleset {
	return e.rules
}

// RecordOpponentMove appends the opponent's move to the history.
// Choices outside the ruleset are ignored.
func (e *Engine) RecordOpponentMove(c rules.Choice) {
	i := e.rules.Index(c)
	if i < 0 {
		return
	}
	e.history = append(e.history, i)
}

// SelectMove returns the engine's move for the current round.
// It only sees moves recorded before this call.
func (e *Engine) SelectMove() rules.Choice {
	if e.mode == ModeUniform || len(e.history) == 0 {
		return e.rules.At(e.rng.IntN(e.rules.Len()))
	}

	favorite, _ := e.Predict()
	return e.rules.CounterOf(favorite)
}

// Predict returns the opponent's most frequent move within the analysis
// window. Ties go to the choice declared first in the ruleset.
// Returns false when there is no history.
func (e *Engine) Predict() (rules.Choice, bool) {
	counts := e.counts()
	best, bestCount := -1, 0
	for i, n := range counts {
		if n > bestCount {
			best, bestCount = i, n
		}
	}
	if best < 0 {
		return "", false
	}
	return e.rules.At(best), true
}

// Frequencies returns how often each choice appears in the analysis
// window, in declaration order.
func (e *Engine) Frequencies() []int {
	return e.counts()
}

// History returns a copy of the recorded opponent moves.
func (e *Engine) History() []rules.Choice {
	out := make([]rules.Choice, len(e.history))
	for i, idx := range e.history {
		out[i] = e.rules.At(idx)
	}
	return out
}

// Reset clears the opponent history for a new session.
func (e *Engine) Reset() {
	e.history = e.history[:0]
}

func (e *Engine) counts() []int {
	counts := make([]int, e.rules.Len())
	moves := e.history
	if e.window > 0 && len(moves) > e.window {
		moves = moves[len(moves)-e.window:]
	}
	for _, idx := range moves {
		counts[idx]++
	}
	return counts
}
