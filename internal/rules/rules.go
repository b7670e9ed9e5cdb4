// Package rules defines the choice set and domination relation of a
// cyclic hand game such as Snake-Water-Gun or Rock-Paper-Scissors.
//
// A Ruleset is immutable once constructed. New validates that the
// domination relation is a fixed-point-free bijection forming a single
// cycle over every choice, so every choice beats exactly one other choice
// and is beaten by exactly one other choice.
package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRuleset is returned when a choice set or domination relation
// violates the single-cycle invariant.
var ErrInvalidRuleset = errors.New("rules: invalid ruleset")

// MinChoices is the smallest choice set that can form a domination cycle.
const MinChoices = 3

// Choice is a single value a player may throw in a round.
// The canonical form is trimmed and lower-case.
type Choice string

// String returns the choice name.
func (c Choice) String() string {
	return string(c)
}

// Title returns the choice name with its first letter upper-cased.
func (c Choice) Title() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Normalize converts raw text into canonical choice form.
func Normalize(s string) Choice {
	return Choice(strings.ToLower(strings.TrimSpace(s)))
}

// Outcome is the result of a round from the human player's perspective.
type Outcome int

const (
	Draw Outcome = iota
	Win
	Loss
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Draw:
		return "Draw"
	case Win:
		return "Win"
	case Loss:
		return "Loss"
	default:
		return "Unknown"
	}
}

// Ruleset is an ordered choice set plus the domination relation over it.
// Declaration order is significant: it is the tie-break order used by
// frequency analysis.
type Ruleset struct {
	name    string
	choices []Choice
	index   map[Choice]int
	beats   []int // beats[i] is the index of the choice that choices[i] defeats
	beaten  []int // beaten[i] is the index of the choice that defeats choices[i]
	symbols map[Choice]string
}

// New builds a validated ruleset.
// beats maps every choice to the single choice it defeats.
// symbols is optional and may be nil.
func New(name string, choices []string, beats map[string]string, symbols map[string]string) (*Ruleset, error) {
	if len(choices) < MinChoices {
		return nil, fmt.Errorf("%w: need at least %d choices, got %d", ErrInvalidRuleset, MinChoices, len(choices))
	}

	rs := &Ruleset{
		name:    strings.TrimSpace(name),
		choices: make([]Choice, 0, len(choices)),
		index:   make(map[Choice]int, len(choices)),
		beats:   make([]int, len(choices)),
		beaten:  make([]int, len(choices)),
		symbols: make(map[Choice]string, len(symbols)),
	}

	for _, raw := range choices {
		c := Normalize(raw)
		if c == "" {
			return nil, fmt.Errorf("%w: empty choice name", ErrInvalidRuleset)
		}
		if _, dup := rs.index[c]; dup {
			return nil, fmt.Errorf("%w: duplicate choice %q", ErrInvalidRuleset, c)
		}
		rs.index[c] = len(rs.choices)
		rs.choices = append(rs.choices, c)
	}

	normalized := make(map[Choice]Choice, len(beats))
	for k, v := range beats {
		from, to := Normalize(k), Normalize(v)
		if _, ok := rs.index[from]; !ok {
			return nil, fmt.Errorf("%w: rule for unknown choice %q", ErrInvalidRuleset, from)
		}
		if _, dup := normalized[from]; dup {
			return nil, fmt.Errorf("%w: duplicate rule for %q", ErrInvalidRuleset, from)
		}
		normalized[from] = to
	}

	for i := range rs.beaten {
		rs.beaten[i] = -1
	}

	for i, c := range rs.choices {
		target, ok := normalized[c]
		if !ok {
			return nil, fmt.Errorf("%w: %q does not beat anything", ErrInvalidRuleset, c)
		}
		j, ok := rs.index[target]
		if !ok {
			return nil, fmt.Errorf("%w: %q beats unknown choice %q", ErrInvalidRuleset, c, target)
		}
		if i == j {
			return nil, fmt.Errorf("%w: %q beats itself", ErrInvalidRuleset, c)
		}
		if rs.beaten[j] != -1 {
			return nil, fmt.Errorf("%w: %q is beaten by both %q and %q",
				ErrInvalidRuleset, target, rs.choices[rs.beaten[j]], c)
		}
		rs.beats[i] = j
		rs.beaten[j] = i
	}

	// A bijection may still split into several shorter cycles.
	steps, cur := 0, 0
	for {
		cur = rs.beats[cur]
		steps++
		if cur == 0 {
			break
		}
	}
	if steps != len(rs.choices) {
		return nil, fmt.Errorf("%w: domination cycle through %q has length %d, want %d",
			ErrInvalidRuleset, rs.choices[0], steps, len(rs.choices))
	}

	for k, v := range symbols {
		c := Normalize(k)
		if _, ok := rs.index[c]; !ok {
			return nil, fmt.Errorf("%w: symbol for unknown choice %q", ErrInvalidRuleset, c)
		}
		rs.symbols[c] = v
	}

	return rs, nil
}

// MustNew is like New but panics on error. Intended for built-in rulesets.
func MustNew(name string, choices []string, beats map[string]string, symbols map[string]string) *Ruleset {
	rs, err := New(name, choices, beats, symbols)
	if err != nil {
		panic(err)
	}
	return rs
}

// Name returns the ruleset's display name.
func (r *Ruleset) Name() string {
	return r.name
}

// Len returns the number of choices.
func (r *Ruleset) Len() int {
	return len(r.choices)
}

// Choices returns the choices in declaration order.
func (r *Ruleset) Choices() []Choice {
	out := make([]Choice, len(r.choices))
	copy(out, r.choices)
	return out
}

// At returns the choice at declaration index i.
func (r *Ruleset) At(i int) Choice {
	return r.choices[i]
}

// Index returns the declaration index of c, or -1 if c is not a member.
func (r *Ruleset) Index(c Choice) int {
	if i, ok := r.index[c]; ok {
		return i
	}
	return -1
}

// Contains reports whether c belongs to the choice set.
func (r *Ruleset) Contains(c Choice) bool {
	_, ok := r.index[c]
	return ok
}

// Parse validates raw player input against the choice set.
// Matching is trimmed and case-insensitive.
func (r *Ruleset) Parse(input string) (Choice, bool) {
	c := Normalize(input)
	if !r.Contains(c) {
		return "", false
	}
	return c, true
}

// Beats returns the choice that c defeats.
// Returns the empty choice if c is not a member.
func (r *Ruleset) Beats(c Choice) Choice {
	i, ok := r.index[c]
	if !ok {
		return ""
	}
	return r.choices[r.beats[i]]
}

// CounterOf returns the unique choice that defeats c.
// Returns the empty choice if c is not a member.
func (r *Ruleset) CounterOf(c Choice) Choice {
	i, ok := r.index[c]
	if !ok {
		return ""
	}
	return r.choices[r.beaten[i]]
}

// Resolve scores a round from the human's perspective.
func (r *Ruleset) Resolve(human, engine Choice) Outcome {
	switch {
	case human == engine:
		return Draw
	case r.Beats(human) == engine:
		return Win
	default:
		return Loss
	}
}

// Symbol returns the decorative symbol for c, or an empty string.
func (r *Ruleset) Symbol(c Choice) string {
	return r.symbols[c]
}

// Label returns the title-cased choice name followed by its symbol, if any.
func (r *Ruleset) Label(c Choice) string {
	if sym := r.symbols[c]; sym != "" {
		return c.Title() + " " + sym
	}
	return c.Title()
}
