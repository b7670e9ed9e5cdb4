package match

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/swg/internal/engine"
)

// DefaultRounds is used when the player gives no usable round count.
const DefaultRounds = 5

// DefaultPlayer is the profile name used when the player enters nothing.
const DefaultPlayer = "Player"

// ErrInvalidNumber is returned for round counts that are not positive integers.
var ErrInvalidNumber = errors.New("match: invalid number")

// ParseRounds parses a round count answer.
// Anything other than a positive decimal integer yields def together with
// an error wrapping ErrInvalidNumber, which callers may log and ignore.
func ParseRounds(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, fmt.Errorf("%w: empty", ErrInvalidNumber)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return def, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return n, nil
}

// ParseModeAnswer maps the mode menu answer to a mode.
// "1" (or a uniform mode name) selects random play; anything else selects
// the adaptive engine.
func ParseModeAnswer(s string) engine.Mode {
	if m, err := engine.ParseMode(s); err == nil {
		return m
	}
	return engine.ModeAdaptive
}

// ParseContinue reports whether a play-again answer is affirmative.
func ParseContinue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

// NormalizeName trims a player name and capitalises it (first letter upper,
// the rest lower). Path separators and control characters become '_', so
// every normalised name is usable as a file name. Empty input, or a name
// made only of dots, yields DefaultPlayer.
func NormalizeName(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	if strings.Trim(s, ".") == "" {
		return DefaultPlayer
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
