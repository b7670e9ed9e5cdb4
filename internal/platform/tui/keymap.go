package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMapper translates Bubble Tea key messages to menu and match actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionLeaderboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab", "l":
		return MenuActionLeaderboard
	}
	return MenuActionNone
}

// MatchAction represents an action on the match screen.
// Every other key is forwarded to the move input field.
type MatchAction int

const (
	MatchActionNone MatchAction = iota
	MatchActionSubmit
	MatchActionBack
	MatchActionQuit
)

// MapKeyToMatchAction translates a key on the match screen.
// Letters are never mapped so that choice names can be typed.
func (km *KeyMapper) MapKeyToMatchAction(msg tea.KeyMsg) MatchAction {
	switch msg.String() {
	case "ctrl+c":
		return MatchActionQuit
	case "enter":
		return MatchActionSubmit
	case "esc":
		return MatchActionBack
	}
	return MatchActionNone
}
