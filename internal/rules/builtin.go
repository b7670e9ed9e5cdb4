package rules

// Built-in ruleset identifiers.
const (
	SnakeWaterGunID     = "snake-water-gun"
	RockPaperScissorsID = "rock-paper-scissors"
	ElementsID          = "elements-5"
)

// SnakeWaterGun returns the classic ruleset: snake drinks water,
// water damages gun, gun kills snake.
func SnakeWaterGun() *Ruleset {
	return MustNew("Snake-Water-Gun",
		[]string{"snake", "water", "gun"},
		map[string]string{
			"snake": "water",
			"water": "gun",
			"gun":   "snake",
		},
		map[string]string{
			"snake": "🐍",
			"water": "💧",
			"gun":   "🔫",
		},
	)
}

// RockPaperScissors returns the familiar three-choice ruleset.
func RockPaperScissors() *Ruleset {
	return MustNew("Rock-Paper-Scissors",
		[]string{"rock", "paper", "scissors"},
		map[string]string{
			"rock":     "scissors",
			"scissors": "paper",
			"paper":    "rock",
		},
		map[string]string{
			"rock":     "🪨",
			"paper":    "📄",
			"scissors": "✂️",
		},
	)
}

// Elements returns a five-choice cycle: fire melts metal, metal cuts wood,
// wood parts earth, earth dams water and water quenches fire.
func Elements() *Ruleset {
	return MustNew("Five Elements",
		[]string{"fire", "metal", "wood", "earth", "water"},
		map[string]string{
			"fire":  "metal",
			"metal": "wood",
			"wood":  "earth",
			"earth": "water",
			"water": "fire",
		},
		map[string]string{
			"fire":  "🔥",
			"metal": "⚙️",
			"wood":  "🌳",
			"earth": "⛰️",
			"water": "🌊",
		},
	)
}
