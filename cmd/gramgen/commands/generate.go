/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generate.go
Description: Generate command implementation for the Akaylee grammar generator.
Compiles the configured grammar, runs the parallel generation engine, and reports
throughput and sample derivations until interrupted.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-gramgen/pkg/core"
	"github.com/kleascm/akaylee-gramgen/pkg/grammar"
	"github.com/kleascm/akaylee-gramgen/pkg/logging"
	"github.com/kleascm/akaylee-gramgen/pkg/utils"
)

// RunGenerate executes the main generation loop
func RunGenerate(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Akaylee GramGen - Starting Generation Session")
	fmt.Println("================================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logging
	logger, err := SetupLogging()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logger.Close()

	// Create engine configuration
	config := &core.Config{
		GrammarPath:    viper.GetString("grammar_path"),
		Seed:           viper.GetUint64("seed"),
		Workers:        viper.GetInt("workers"),
		MaxIterations:  viper.GetInt64("max_iterations"),
		ReportInterval: viper.GetDuration("report_interval"),
		LogSamples:     viper.GetBool("log_samples"),
	}

	// Create and initialize the generation engine
	engine := core.NewEngine(logger)
	if err := engine.Initialize(config); err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}

	g := engine.Grammar()
	color.Cyan("Grammar: %s", config.GrammarPath)
	color.Cyan("Rules: %d | Fragments: %d | Workers: %d | Seed: %d",
		g.NumRules(), g.NumFragments(), config.Workers, config.Seed)
	fmt.Println()

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\n🛑 Received shutdown signal, stopping generator...")
		cancel()
	}()

	// Start throughput reporting
	go reportThroughput(ctx, engine, logger, config.ReportInterval, config.LogSamples)

	// Run the generation loop until canceled or the budget is spent
	if err := engine.Run(ctx); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	// Print final statistics
	printFinalStats(engine)

	fmt.Println("\n✨ Generation session completed!")
	return nil
}

// reportThroughput periodically prints and logs generation throughput
func reportThroughput(ctx context.Context, engine *core.Engine, logger *logging.Logger, interval time.Duration, samples bool) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	rate := color.New(color.FgGreen, color.Bold)
	sample := color.New(color.FgYellow)

	var lastTruncations int64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := engine.GetStats().Snapshot()
			fmt.Printf("Bytes per sec: %s | Derivations: %d",
				rate.Sprintf("%12.0f", snap.BytesPerSecond), snap.Iterations)
			if samples {
				// Lossy conversion: grammar terminals are raw bytes, not
				// guaranteed UTF-8.
				fmt.Printf(" | Example: %s", sample.Sprint(strconv.Quote(string(engine.Sample()))))
			}
			fmt.Println()

			logger.LogThroughput(snap.Iterations, snap.Bytes, snap.BytesPerSecond,
				map[string]interface{}{"session_id": engine.SessionID()})
			if snap.Truncations > lastTruncations {
				logger.LogTruncation(snap.Truncations, grammar.MaxOutput)
				lastTruncations = snap.Truncations
			}
		}
	}
}

// printFinalStats prints the end-of-session summary and writes it to the
// metrics directory
func printFinalStats(engine *core.Engine) {
	snap := engine.GetStats().Snapshot()

	fmt.Println()
	fmt.Println("📊 Final Statistics")
	fmt.Println("===================")
	fmt.Printf("Derivations:   %d\n", snap.Iterations)
	fmt.Printf("Bytes:         %d\n", snap.Bytes)
	fmt.Printf("Truncations:   %d (ceiling %d bytes)\n", snap.Truncations, grammar.MaxOutput)
	fmt.Printf("Elapsed:       %.2fs\n", snap.Elapsed)
	fmt.Printf("Throughput:    %.0f bytes/sec, %.0f derivations/sec\n",
		snap.BytesPerSecond, snap.IterationsPerSecond)

	if path, err := utils.WriteMetricsResult("generate", "1.0.0", snap); err == nil {
		fmt.Printf("Metrics:       %s\n", path)
	}
}
