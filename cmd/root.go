// =============================================================================
// Fake Transaction Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'generate', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (fakegen)
//   ├── generateCmd (fakegen generate)
//   ├── validateCmd (fakegen validate)
//   ├── cleanCmd    (fakegen clean)
//   └── versionCmd  (fakegen version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose, --seed)
//   2. Delegating configuration loading to the individual commands
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// seedFlag overrides the configured seed when nonzero.
var seedFlag int64

// outputDir overrides the configured output directory when set.
var outputDir string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
// This is the entry point for the CLI application.
var rootCmd = &cobra.Command{
	// Use is the one-line usage message.
	// This is what appears in help text and error messages.
	Use: "fakegen",

	// Short is a short description shown in the 'help' output.
	Short: "Fake Transaction Generator - Labeled synthetic financial data for anomaly detection",

	// Long is a longer description shown in the 'help <command>' output.
	Long: `Fake Transaction Generator produces synthetic financial transaction datasets
with deliberately injected irregularities, plus a provenance log recording
exactly which transactions were altered and how. The labeled output is suited
to testing anomaly detection pipelines and training audit staff.

Key Features:
  - Benford-distributed amounts so baseline data looks realistic
  - Recurring monthly templates plus uniformly random transactions
  - 13 irregularity kinds, from high amounts to cumulative skimming
  - Deterministic output: the same seed reproduces the dataset exactly
  - CSV output, with an optional XLSX workbook

Example Usage:
  fakegen generate                     # Generate using config.yaml
  fakegen generate --seed 42           # Reproducible run with a fixed seed
  fakegen validate                     # Validate configuration without generating
  fakegen clean --older-than 720h      # Remove old timestamped run directories`,

	// Run is the function that will be executed when the root command is called
	// without any subcommands. In this case, we just print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Execute the root command. If there's an error, print it and exit.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init is called automatically when the package is loaded.
// It sets up the global flags.
func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	// --config flag: Allows the user to specify a custom configuration file.
	// Default is "config.yaml" in the current directory.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	// --seed flag: Overrides the configured seed. 0 keeps the configured
	// value (and a configured 0 derives a seed from the clock).
	rootCmd.PersistentFlags().Int64Var(
		&seedFlag,
		"seed",
		0,
		"Random seed override; identical seeds reproduce identical datasets",
	)

	// --output-dir flag: Overrides the configured output directory.
	rootCmd.PersistentFlags().StringVar(
		&outputDir,
		"output-dir",
		"",
		"Output directory override",
	)
}
