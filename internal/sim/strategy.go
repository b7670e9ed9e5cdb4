package sim

import (
	"fmt"

	"github.com/vovakirdan/swg/internal/engine"
	"github.com/vovakirdan/swg/internal/rules"
)

// Strategy is a scripted human player.
type Strategy interface {
	// Move returns the choice for the given 1-based round.
	Move(round int) rules.Choice
}

// Factory builds a fresh strategy for one session.
type Factory struct {
	Name string
	New  func(rs *rules.Ruleset, src engine.Source) Strategy
}

type constant struct{ c rules.Choice }

func (s constant) Move(int) rules.Choice { return s.c }

// Constant always plays the choice at declaration index i.
func Constant(i int) Factory {
	return Factory{
		Name: fmt.Sprintf("constant[%d]", i),
		New: func(rs *rules.Ruleset, _ engine.Source) Strategy {
			return constant{c: rs.At(i % rs.Len())}
		},
	}
}

type cycle struct{ rs *rules.Ruleset }

func (s cycle) Move(round int) rules.Choice { return s.rs.At((round - 1) % s.rs.Len()) }

// Cycle plays every choice in declaration order, repeating.
func Cycle() Factory {
	return Factory{
		Name: "cycle",
		New: func(rs *rules.Ruleset, _ engine.Source) Strategy {
			return cycle{rs: rs}
		},
	}
}

type biased struct {
	rs      *rules.Ruleset
	src     engine.Source
	favour  int
	percent int
}

func (s biased) Move(int) rules.Choice {
	if s.src.IntN(100) < s.percent {
		return s.rs.At(s.favour)
	}
	return s.rs.At(s.src.IntN(s.rs.Len()))
}

// Biased plays the choice at index i with the given percentage and a
// uniform choice otherwise.
func Biased(i, percent int) Factory {
	return Factory{
		Name: fmt.Sprintf("biased[%d]@%d%%", i, percent),
		New: func(rs *rules.Ruleset, src engine.Source) Strategy {
			return biased{rs: rs, src: src, favour: i % rs.Len(), percent: percent}
		},
	}
}

type uniform struct {
	rs  *rules.Ruleset
	src engine.Source
}

func (s uniform) Move(int) rules.Choice { return s.rs.At(s.src.IntN(s.rs.Len())) }

// Uniform plays uniformly at random.
func Uniform() Factory {
	return Factory{
		Name: "uniform",
		New: func(rs *rules.Ruleset, src engine.Source) Strategy {
			return uniform{rs: rs, src: src}
		},
	}
}

// DefaultStrategies returns the scripted players used by the sim command.
func DefaultStrategies() []Factory {
	return []Factory{
		Constant(0),
		Biased(0, 70),
		Cycle(),
		Uniform(),
	}
}
