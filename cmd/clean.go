// =============================================================================
// Fake Transaction Generator - Clean Command
// =============================================================================
//
// This file defines the 'clean' command, which removes old timestamped run
// directories from the output directory. Only directories created by
// timestamped runs (run_ prefix) are candidates; flat-mode output files are
// never touched.
//
// COMMAND USAGE:
//   fakegen clean [--older-than 720h] [--output-dir path]
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/fake-transaction-generator/internal/config"
	"github.com/ginjaninja78/fake-transaction-generator/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// olderThan is the minimum age of run directories to remove.
var olderThan time.Duration

// =============================================================================
// CLEAN COMMAND DEFINITION
// =============================================================================

// cleanCmd represents the 'clean' command.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old timestamped run directories",
	Long: `The clean command removes timestamped run directories (run_*) older than
the --older-than duration from the output directory. The output directory is
taken from --output-dir when given, otherwise from the configuration file.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runClean()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the clean command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(cleanCmd)

	// --older-than flag: Retention cutoff. Default is 30 days.
	cleanCmd.Flags().DurationVar(
		&olderThan,
		"older-than",
		30*24*time.Hour,
		"Remove run directories older than this duration",
	)
}

// =============================================================================
// MAIN CLEAN FUNCTION
// =============================================================================

// runClean resolves the output directory and removes old run directories.
func runClean() error {
	dir := outputDir
	if dir == "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		dir = cfg.Output.Directory
	}

	removed, err := utils.CleanOldRuns(dir, olderThan)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d run directories older than %s from %s\n", removed, olderThan, dir)

	return nil
}
