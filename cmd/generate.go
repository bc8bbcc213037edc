// =============================================================================
// Fake Transaction Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which runs the full generation
// pipeline: baseline transactions, irregularity injection, and export.
//
// COMMAND USAGE:
//   fakegen generate [flags]
//
// FLAGS:
//   --format      : Output formats to write (csv, xlsx); repeatable
//   --config      : Path to the configuration file (persistent)
//   --seed        : Random seed override (persistent)
//   --output-dir  : Output directory override (persistent)
//
// GENERATION PIPELINE:
//   1. Load and validate the configuration
//   2. Apply command-line overrides
//   3. Run the generation pipeline:
//      a. Resolve the seed and create the RNG
//      b. Generate baseline transactions
//      c. Inject irregularities
//      d. Export CSV files (and the XLSX workbook when enabled)
//   4. Write a run summary to the output directory
//   5. Print per-kind outcomes and totals
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fake-transaction-generator/internal/config"
	"github.com/ginjaninja78/fake-transaction-generator/internal/generator"
	"github.com/ginjaninja78/fake-transaction-generator/internal/logger"
	"github.com/ginjaninja78/fake-transaction-generator/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// formats overrides the configured output format list when non-empty.
var formats []string

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a labeled synthetic transaction dataset",
	Long: `The generate command builds a synthetic transaction dataset from the
configuration: recurring monthly transactions from templates, random
transactions with Benford-distributed amounts, and the configured
irregularities injected on top. Every irregularity is recorded in a
provenance log alongside the dataset.

Two files are always produced in csv mode:
  - The transaction dataset (irregularities blended in, unlabeled)
  - The irregularity log (the labels: which rows were altered and how)

With a fixed seed the run is fully reproducible: the same configuration and
seed produce byte-identical CSV files.`,

	// RunE is like Run but returns an error. This is preferred for commands
	// that can fail, as it allows Cobra to handle the error gracefully.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the generate command with the root command and sets up flags.
func init() {
	// Add the generate command to the root command.
	rootCmd.AddCommand(generateCmd)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	// --format flag: Overrides the configured output formats.
	generateCmd.Flags().StringSliceVar(
		&formats,
		"format",
		nil,
		"Output formats to write (csv, xlsx); overrides the configured list",
	)
}

// =============================================================================
// MAIN GENERATION FUNCTION
// =============================================================================

// runGenerate is the main function that orchestrates the generation run.
func runGenerate() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== Fake Transaction Generator ===")
	fmt.Println("Loading configuration...")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// =========================================================================
	// STEP 2: APPLY COMMAND-LINE OVERRIDES
	// =========================================================================
	// Flags beat both the file and any environment overrides.

	if seedFlag != 0 {
		cfg.Seed = seedFlag
	}
	if outputDir != "" {
		cfg.Output.Directory = outputDir
	}
	if len(formats) > 0 {
		for _, f := range formats {
			if f != "csv" && f != "xlsx" {
				return fmt.Errorf("unknown output format %q (valid: csv, xlsx)", f)
			}
		}
		cfg.Output.Formats = formats
	}

	logLevel := cfg.LogLevel
	if verbose {
		logLevel = "debug"
	}
	log := logger.New(logLevel)

	// =========================================================================
	// STEP 3: RUN THE GENERATION PIPELINE
	// =========================================================================

	fmt.Printf("Generating %d random transactions (%s to %s)...\n",
		cfg.NumTransactions, cfg.StartDate, cfg.EndDate)

	result, err := generator.New(cfg, log).Run()
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 4: PRINT PER-KIND OUTCOMES
	// =========================================================================

	if len(result.Report.Outcomes) > 0 {
		fmt.Println("\nIrregularities:")
		for _, outcome := range result.Report.Outcomes {
			if outcome.Applied == outcome.Requested {
				fmt.Printf("  ✓ %s: applied %d\n", outcome.Kind, outcome.Applied)
			} else {
				fmt.Printf("  ✗ %s: applied %d of %d (not enough eligible transactions)\n",
					outcome.Kind, outcome.Applied, outcome.Requested)
			}
		}
	}

	// =========================================================================
	// STEP 5: PRINT OUTPUT FILES AND WRITE THE RUN SUMMARY
	// =========================================================================

	files := []string{}
	for _, path := range []string{result.TransactionsPath, result.IrregularitiesPath, result.WorkbookPath} {
		if path != "" {
			files = append(files, path)
		}
	}

	if len(files) > 0 {
		fmt.Println("\nOutput files:")
		for _, path := range files {
			if size, err := utils.GetFileSize(path); err == nil {
				fmt.Printf("  ✓ %s (%d bytes)\n", path, size)
			} else {
				fmt.Printf("  ✓ %s\n", path)
			}
		}
	}

	summary := utils.RunSummary{
		GeneratedAt:       startTime,
		Seed:              result.Stats.Seed,
		Duration:          time.Since(startTime),
		TotalTransactions: result.Stats.TotalTransactions,
		RecurringCount:    result.Stats.RecurringCount,
		RandomCount:       result.Stats.RandomCount,
		DuplicatesAdded:   result.Stats.DuplicatesAdded,
		IrregularityCount: result.Stats.IrregularitiesApplied,
		Files:             files,
	}
	for _, outcome := range result.Report.Outcomes {
		summary.Kinds = append(summary.Kinds, utils.KindBreakdown{
			Kind:      string(outcome.Kind),
			Requested: outcome.Requested,
			Applied:   outcome.Applied,
		})
	}

	summaryPath, err := utils.WriteRunSummary(summary, result.RunDir)
	if err != nil {
		// The dataset itself was written; a failed summary is not fatal.
		log.Warn().Err(err).Msg("failed to write run summary")
	} else {
		fmt.Printf("\nRun summary written to: %s\n", summaryPath)
	}

	// =========================================================================
	// STEP 6: PRINT SUMMARY
	// =========================================================================

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Generation Complete ===")
	fmt.Printf("Seed:            %d\n", result.Stats.Seed)
	fmt.Printf("Transactions:    %d (%d recurring, %d random, %d duplicates)\n",
		result.Stats.TotalTransactions, result.Stats.RecurringCount,
		result.Stats.RandomCount, result.Stats.DuplicatesAdded)
	fmt.Printf("Irregularities:  %d\n", result.Stats.IrregularitiesApplied)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	return nil
}
