// =============================================================================
// Fake Transaction Generator - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the generator, including:
//   - Output directory management
//   - Unique per-run subdirectories (timestamped mode)
//   - Run summary generation
//   - Retention cleanup for old runs
//
// OUTPUT LAYOUT:
//   Flat mode (timestamped: false):
//     output/fake_transactions.csv
//     output/irregularities.csv
//   Timestamped mode (timestamped: true):
//     output/run_20240115_143022/fake_transactions.csv
//     output/run_20240115_143022/irregularities.csv
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// runDirPrefix is the prefix of per-run subdirectories created in
// timestamped mode. CleanOldRuns only touches directories with this prefix.
const runDirPrefix = "run_"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles output directory operations for the generator.
type FileManager struct {
	// OutputDir is the directory where output files are placed.
	OutputDir string

	// Timestamped creates a unique run subdirectory per invocation.
	// Example: output/run_20240115_143022/
	Timestamped bool
}

// NewFileManager creates a new FileManager for the given output directory.
func NewFileManager(outputDir string, timestamped bool) *FileManager {
	return &FileManager{
		OutputDir:   outputDir,
		Timestamped: timestamped,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the output directory if it does not exist.
//
// RETURNS:
//   - An error if the directory cannot be created.
func (fm *FileManager) EnsureDirectories() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}

	return nil
}

// RunDir resolves the directory output files should be written to.
//
// In flat mode this is the output directory itself. In timestamped mode a
// fresh run subdirectory is created; if two runs start within the same
// second, a numeric suffix keeps them apart.
//
// RETURNS:
//   - The directory to write into.
//   - An error if the directory cannot be created.
func (fm *FileManager) RunDir() (string, error) {
	if err := fm.EnsureDirectories(); err != nil {
		return "", err
	}

	if !fm.Timestamped {
		return fm.OutputDir, nil
	}

	base := filepath.Join(fm.OutputDir, runDirPrefix+time.Now().Format("20060102_150405"))
	dir := base

	for n := 1; ; n++ {
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("failed to create run directory %s: %w", dir, err)
		}
		dir = fmt.Sprintf("%s_%d", base, n)
	}
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// RunSummary contains summary information about a single generation run.
type RunSummary struct {
	GeneratedAt time.Time
	Seed        int64
	Duration    time.Duration

	TotalTransactions int
	RecurringCount    int
	RandomCount       int
	DuplicatesAdded   int
	IrregularityCount int

	// Kinds lists the per-kind outcome in application order.
	Kinds []KindBreakdown

	// Files lists the output files written during the run.
	Files []string
}

// KindBreakdown is the requested versus applied count for one kind.
type KindBreakdown struct {
	Kind      string
	Requested int
	Applied   int
}

// WriteRunSummary writes a human-readable run summary to the run directory.
//
// PARAMETERS:
//   - summary: The run summary.
//   - dir: The directory to write the summary file into.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteRunSummary(summary RunSummary, dir string) (string, error) {
	fileName := fmt.Sprintf("run_summary_%s.txt", summary.GeneratedAt.Format("20060102_150405"))
	summaryPath := filepath.Join(dir, fileName)

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	header := fmt.Sprintf("Fake Transaction Generator - Run Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Generated:  %s\n"+
		"  Seed:       %d\n"+
		"  Duration:   %s\n\n"+
		"Dataset:\n"+
		"  Total Transactions: %d\n"+
		"  Recurring:          %d\n"+
		"  Random:             %d\n"+
		"  Duplicates Added:   %d\n"+
		"  Irregularities:     %d\n\n",
		summary.GeneratedAt.Format("2006-01-02 15:04:05"),
		summary.Seed,
		summary.Duration.String(),
		summary.TotalTransactions,
		summary.RecurringCount,
		summary.RandomCount,
		summary.DuplicatesAdded,
		summary.IrregularityCount)
	writer.WriteString(header)

	if len(summary.Kinds) > 0 {
		writer.WriteString("Irregularities by Kind:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, kind := range summary.Kinds {
			writer.WriteString(fmt.Sprintf("  %-28s requested %d, applied %d\n",
				kind.Kind, kind.Requested, kind.Applied))
		}
		writer.WriteString("\n")
	}

	if len(summary.Files) > 0 {
		writer.WriteString("Output Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, path := range summary.Files {
			writer.WriteString(fmt.Sprintf("  %s\n", path))
		}
		writer.WriteString("\n")
	}

	footer := "================================================================================\n" +
		"End of Summary\n"
	writer.WriteString(footer)

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// RETENTION
// =============================================================================

// CleanOldRuns removes timestamped run directories older than maxAge.
// Only directories created by RunDir (run_ prefix) are considered; files and
// other directories in the output directory are never touched.
//
// PARAMETERS:
//   - outputDir: The output directory containing run subdirectories.
//   - maxAge: The maximum age of run directories to keep.
//
// RETURNS:
//   - The number of run directories removed.
//   - An error if cleaning fails.
func CleanOldRuns(outputDir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read output directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), runDirPrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(filepath.Join(outputDir, entry.Name())); err != nil {
				return removed, fmt.Errorf("failed to remove run directory %s: %w", entry.Name(), err)
			}
			removed++
		}
	}

	return removed, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
