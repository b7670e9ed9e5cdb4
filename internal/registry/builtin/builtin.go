// Package builtin registers the rulesets shipped with the game.
// Import it for side effects.
package builtin

import (
	"github.com/vovakirdan/swg/internal/registry"
	"github.com/vovakirdan/swg/internal/rules"
)

func init() {
	registry.Register(rules.SnakeWaterGunID, rules.SnakeWaterGun)
	registry.Register(rules.RockPaperScissorsID, rules.RockPaperScissors)
	registry.Register(rules.ElementsID, rules.Elements)
}
