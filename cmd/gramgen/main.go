/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Akaylee grammar generator. Provides
command-line options and configuration management for compiling JSON grammars and
generating random derivations at high throughput.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kleascm/akaylee-gramgen/cmd/gramgen/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string

	// Grammar configuration
	grammarPath string

	// Generation configuration
	seed       uint64
	workers    int
	iterations int64

	// Reporting configuration
	reportInterval time.Duration
	logSamples     bool

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64
)

// newRootCmd builds the gramgen command tree and binds its flags to viper
func newRootCmd() *cobra.Command {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "gramgen",
		Short: "Akaylee GramGen - High-throughput grammar-based input generator",
		Long: `Akaylee GramGen compiles a JSON context-free grammar into a flat fragment
arena and derives syntactically valid random byte strings from it as fast as
possible. It is the generation core for grammar-based fuzzing: point it at a
grammar, and it will emit valid inputs continuously while reporting throughput.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")

	// Add logging-specific flags
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))

	// Add generate command
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random derivations from a grammar",
		Long: `Compile the given grammar and continuously generate random derivations from
its <start> rule, reporting throughput at a fixed interval. Runs until
interrupted, or until the configured iteration budget is exhausted.`,
		RunE: commands.RunGenerate,
	}

	// Add generate command flags
	generateCmd.Flags().StringVar(&grammarPath, "grammar", "", "Path to JSON grammar file (required)")
	generateCmd.Flags().Uint64Var(&seed, "seed", 0, "Base RNG seed (0 = derive from current time)")
	generateCmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel workers (0 = auto-detect)")
	generateCmd.Flags().Int64Var(&iterations, "iterations", 0, "Stop after this many derivations (0 = run forever)")
	generateCmd.Flags().DurationVar(&reportInterval, "interval", 5*time.Second, "Interval between throughput reports")
	generateCmd.Flags().BoolVar(&logSamples, "samples", true, "Show a sample derivation in throughput reports")

	// Mark required flags
	generateCmd.MarkFlagRequired("grammar")

	// Bind flags to viper
	viper.BindPFlag("grammar_path", generateCmd.Flags().Lookup("grammar"))
	viper.BindPFlag("seed", generateCmd.Flags().Lookup("seed"))
	viper.BindPFlag("workers", generateCmd.Flags().Lookup("workers"))
	viper.BindPFlag("max_iterations", generateCmd.Flags().Lookup("iterations"))
	viper.BindPFlag("report_interval", generateCmd.Flags().Lookup("interval"))
	viper.BindPFlag("log_samples", generateCmd.Flags().Lookup("samples"))

	rootCmd.AddCommand(generateCmd)

	// Add check command for grammar validation
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Compile a grammar and print a few sample derivations",
		Long: `Compile the given grammar without starting the generation loop. Reports rule
and fragment counts and prints a handful of sample derivations so the grammar
can be validated before a long fuzzing run. Very useful for CI integration.`,
		RunE: commands.RunCheck,
	}

	// Add check command flags
	checkCmd.Flags().String("grammar", "", "Path to JSON grammar file (required)")
	checkCmd.Flags().Int("samples", 5, "Number of sample derivations to print")
	checkCmd.Flags().Uint64("check-seed", 1, "RNG seed for the sample derivations")

	checkCmd.MarkFlagRequired("grammar")

	// A viper key keeps only its last binding, so the check command's
	// grammar flag must not reuse the generate command's key.
	viper.BindPFlag("check_grammar_path", checkCmd.Flags().Lookup("grammar"))
	viper.BindPFlag("check_samples", checkCmd.Flags().Lookup("samples"))
	viper.BindPFlag("check_seed", checkCmd.Flags().Lookup("check-seed"))

	rootCmd.AddCommand(checkCmd)

	return rootCmd
}

func main() {
	// Execute root command
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
