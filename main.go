// =============================================================================
// Fake Transaction Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Fake Transaction Generator CLI. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   fakegen generate        - Generate a labeled synthetic transaction dataset
//   fakegen validate        - Validate the configuration without generating
//   fakegen clean           - Remove old timestamped run directories
//   fakegen version         - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/fake-transaction-generator/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
