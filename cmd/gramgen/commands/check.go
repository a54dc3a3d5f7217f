/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Check command implementation for the Akaylee grammar generator.
Compiles a grammar without starting the generation loop, reports its shape, and
prints a handful of sample derivations for validation.
*/

package commands

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-gramgen/pkg/grammar"
)

// RunCheck compiles the configured grammar and prints sample derivations
func RunCheck(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path := viper.GetString("check_grammar_path")

	fmt.Println("🔍 Akaylee GramGen - Grammar Check")
	fmt.Println("==================================")
	fmt.Println()

	start := time.Now()
	g, err := grammar.LoadAndCompile(path)
	if err != nil {
		color.Red("✗ %s: %v", path, err)
		return fmt.Errorf("grammar check failed: %w", err)
	}
	color.Green("✓ %s compiled in %s", path, time.Since(start))

	names := g.RuleNames()
	sort.Strings(names)
	fmt.Printf("Rules:     %d\n", g.NumRules())
	fmt.Printf("Fragments: %d\n", g.NumFragments())
	for _, name := range names {
		id, _ := g.RuleID(name)
		fmt.Printf("  %-20s %d alternatives\n", name, len(g.Fragment(id).Children))
	}
	fmt.Println()

	samples := viper.GetInt("check_samples")
	seed := viper.GetUint64("check_seed")
	if seed == 0 {
		seed = 1
	}

	gen := grammar.NewGenerator(g, seed)
	fmt.Printf("Sample derivations (seed %d):\n", seed)
	for i := 0; i < samples; i++ {
		out := gen.Generate()
		line := strconv.Quote(string(out))
		if len(line) > 120 {
			line = line[:120] + "...\""
		}
		fmt.Printf("  %d: %s (%d bytes)\n", i+1, line, len(out))
	}

	return nil
}
