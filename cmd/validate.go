// =============================================================================
// Fake Transaction Generator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which loads and validates the
// configuration without generating anything. It prints the effective run
// plan, including per-kind counts and thresholds with defaults resolved, so
// a configuration can be reviewed before a long run.
//
// COMMAND USAGE:
//   fakegen validate [--config path]
//
// EXIT STATUS:
//   0 if the configuration is valid, 1 otherwise.
//
// =============================================================================

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fake-transaction-generator/internal/config"
	"github.com/ginjaninja78/fake-transaction-generator/internal/irregularity"
)

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration without generating",
	Long: `The validate command loads the configuration file, applies environment
overrides and defaults, and runs the full validation pass. On success it
prints the effective run plan; on failure it reports what is wrong and exits
nonzero. No files are written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the validate command with the root command.
func init() {
	rootCmd.AddCommand(validateCmd)
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// runValidate loads the configuration and prints the effective run plan.
func runValidate() error {
	fmt.Println("=== Fake Transaction Generator ===")
	fmt.Printf("Validating %s...\n\n", cfgFile)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Printf("  ✗ %v\n", err)
		return fmt.Errorf("configuration is invalid")
	}

	fmt.Println("  ✓ configuration is valid")

	fmt.Println("\nRun plan:")
	fmt.Printf("  Random transactions: %d\n", cfg.NumTransactions)
	fmt.Printf("  Date range:          %s to %s\n", cfg.StartDate, cfg.EndDate)
	fmt.Printf("  Recurring templates: %d\n", len(cfg.RecurringTransactions))
	fmt.Printf("  Vendors:             %d\n", len(cfg.Vendors))
	fmt.Printf("  Output directory:    %s\n", cfg.Output.Directory)
	fmt.Printf("  Output formats:      %s\n", strings.Join(cfg.Output.Formats, ", "))
	if cfg.Seed != 0 {
		fmt.Printf("  Seed:                %d\n", cfg.Seed)
	} else {
		fmt.Println("  Seed:                derived per run")
	}

	if len(cfg.Irregularities) == 0 {
		fmt.Println("\nNo irregularities configured.")
		return nil
	}

	// Sort for stable output; the engine itself applies kinds in catalog
	// order, not this display order.
	names := make([]string, 0, len(cfg.Irregularities))
	for name := range cfg.Irregularities {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nIrregularity plan:")
	for _, name := range names {
		settings := cfg.Irregularities[name]
		if !settings.Enabled {
			fmt.Printf("  - %-28s disabled\n", name)
			continue
		}

		count := settings.Count
		if count == 0 {
			if def, ok := irregularity.KindDefaultCount(name); ok {
				count = def
			}
		}

		line := fmt.Sprintf("  - %-28s count %d", name, count)
		if def, ok := irregularity.KindDefaultThreshold(name); ok {
			threshold := settings.Threshold
			if threshold == 0 {
				threshold = def
			}
			line += fmt.Sprintf(", threshold %g", threshold)
		}
		fmt.Println(line)
	}

	return nil
}
