package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/swg/internal/registry"
)

var rulesetsCmd = &cobra.Command{
	Use:   "rulesets",
	Short: "List all available rulesets",
	Long: `Shows the rulesets registered in the game. Each choice defeats the
one listed after it, and the last defeats the first.`,
	Args: cobra.NoArgs,
	Run:  runRulesets,
}

func runRulesets(_ *cobra.Command, _ []string) {
	infos := registry.List()

	if len(infos) == 0 {
		fmt.Println("No rulesets available.")
		return
	}

	fmt.Println("Available rulesets:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, info := range infos {
		if len(info.ID) > maxIDLen {
			maxIDLen = len(info.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Choices")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-------")

	for _, info := range infos {
		names := make([]string, len(info.Choices))
		for i, c := range info.Choices {
			names[i] = c.String()
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, info.ID, strings.Join(names, ", "))
	}

	fmt.Println()
	fmt.Println("Run 'swg play --ruleset <id>' to play one.")
}
