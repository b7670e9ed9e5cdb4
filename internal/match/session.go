// Package match drives rounds between a human move source and the
// computer engine, scores them and persists the player's stats.
package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/swg/internal/engine"
	"github.com/vovakirdan/swg/internal/rules"
	"github.com/vovakirdan/swg/internal/stats"
)

var (
	// ErrInvalidChoice is returned for input that is not a member of the
	// choice set. The round is not consumed.
	ErrInvalidChoice = errors.New("match: invalid choice")

	// ErrSessionComplete is returned when playing past the final round.
	ErrSessionComplete = errors.New("match: session complete")
)

// State is the position of a session in its round loop.
type State int

const (
	StateAwaitingInput State = iota
	StateRoundResolved
	StateSessionComplete
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "AwaitingInput"
	case StateRoundResolved:
		return "RoundResolved"
	case StateSessionComplete:
		return "SessionComplete"
	default:
		return "Unknown"
	}
}

// Round is the record of one resolved exchange.
type Round struct {
	Number      int
	Human       rules.Choice
	Engine      rules.Choice
	Outcome     rules.Outcome
	HumanScore  int // running human wins after this round
	EngineScore int // running engine wins after this round
}

// Result summarises a finished (or interrupted) session.
type Result struct {
	Planned    int
	Rounds     []Round
	HumanWins  int
	EngineWins int
	Draws      int
	Outcome    rules.Outcome
	Duration   time.Duration
}

// Played returns the number of resolved rounds.
func (r Result) Played() int {
	return len(r.Rounds)
}

// Session is the round-by-round state machine of one match.
// It is not safe for concurrent use.
type Session struct {
	rules     *rules.Ruleset
	engine    *engine.Engine
	stats     *stats.Stats
	planned   int
	state     State
	rounds    []Round
	human     int
	computer  int
	draws     int
	startedAt time.Time
}

// roundsPrealloc bounds the initial round log capacity. Round counts are
// unbounded and the log grows only as rounds are played.
const roundsPrealloc = 64

// NewSession prepares a session of the given number of rounds.
// Non-positive round counts fall back to DefaultRounds.
// st receives one Record call per resolved round and may be nil.
func NewSession(rs *rules.Ruleset, eng *engine.Engine, rounds int, st *stats.Stats) *Session {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	if st == nil {
		st = &stats.Stats{}
	}
	return &Session{
		rules:     rs,
		engine:    eng,
		stats:     st,
		planned:   rounds,
		state:     StateAwaitingInput,
		rounds:    make([]Round, 0, min(rounds, roundsPrealloc)),
		startedAt: time.Now(),
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Done reports whether every round has been played.
func (s *Session) Done() bool {
	return s.state == StateSessionComplete
}

// Round returns the 1-based number of the round awaiting input.
func (s *Session) Round() int {
	return len(s.rounds) + 1
}

// Planned returns the total number of rounds in the session.
func (s *Session) Planned() int {
	return s.planned
}

// Rules returns the session's ruleset.
func (s *Session) Rules() *rules.Ruleset {
	return s.rules
}

// Score returns the running human and engine win counts.
func (s *Session) Score() (human, computer int) {
	return s.human, s.computer
}

// Play resolves the current round with the human's raw input.
//
// Invalid input returns an error wrapping ErrInvalidChoice and leaves the
// round counter, engine history and stats untouched. The engine picks its
// move before the human move is added to its history.
func (s *Session) Play(input string) (Round, error) {
	if s.state == StateSessionComplete {
		return Round{}, ErrSessionComplete
	}

	human, ok := s.rules.Parse(input)
	if !ok {
		return Round{}, fmt.Errorf("%w: %q", ErrInvalidChoice, input)
	}

	computer := s.engine.SelectMove()
	s.engine.RecordOpponentMove(human)

	outcome := s.rules.Resolve(human, computer)
	switch outcome {
	case rules.Win:
		s.human++
	case rules.Loss:
		s.computer++
	case rules.Draw:
		s.draws++
	}
	s.stats.Record(outcome)

	round := Round{
		Number:      len(s.rounds) + 1,
		Human:       human,
		Engine:      computer,
		Outcome:     outcome,
		HumanScore:  s.human,
		EngineScore: s.computer,
	}
	s.rounds = append(s.rounds, round)

	if len(s.rounds) >= s.planned {
		s.state = StateSessionComplete
	} else {
		s.state = StateRoundResolved
	}

	return round, nil
}

// Result summarises the rounds played so far.
func (s *Session) Result() Result {
	rounds := make([]Round, len(s.rounds))
	copy(rounds, s.rounds)

	outcome := rules.Draw
	switch {
	case s.human > s.computer:
		outcome = rules.Win
	case s.human < s.computer:
		outcome = rules.Loss
	}

	return Result{
		Planned:    s.planned,
		Rounds:     rounds,
		HumanWins:  s.human,
		EngineWins: s.computer,
		Draws:      s.draws,
		Outcome:    outcome,
		Duration:   time.Since(s.startedAt),
	}
}
