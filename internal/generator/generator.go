// =============================================================================
// Fake Transaction Generator - Generator Module
// =============================================================================
//
// This module contains the core generation pipeline. It orchestrates a full
// run: seeding the RNG, building the baseline dataset, injecting
// irregularities, and exporting the labeled output files.
//
// GENERATION PIPELINE:
//   1. Resolve the seed and create the deterministic RNG
//   2. Generate baseline transactions (recurring + random, sorted by date)
//   3. Inject irregularities per the configured plan
//   4. Resolve the output directory
//   5. Export CSV files (and the XLSX workbook when enabled)
//
// DETERMINISM:
//   The entire pipeline draws from a single seeded RNG. Given the same
//   configuration and seed, two runs produce byte-identical CSV files. The
//   XLSX workbook carries internal timestamps and is therefore reproducible
//   in content but not byte for byte.
//
// =============================================================================

package generator

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/fake-transaction-generator/internal/config"
	"github.com/ginjaninja78/fake-transaction-generator/internal/csvwriter"
	"github.com/ginjaninja78/fake-transaction-generator/internal/factory"
	"github.com/ginjaninja78/fake-transaction-generator/internal/irregularity"
	"github.com/ginjaninja78/fake-transaction-generator/internal/types"
	"github.com/ginjaninja78/fake-transaction-generator/internal/xlsxwriter"
	"github.com/ginjaninja78/fake-transaction-generator/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a single generation run.
type Result struct {
	// RunDir is the directory the run's files were written to. In
	// timestamped mode this is a fresh run subdirectory.
	RunDir string

	// TransactionsPath is the path to the generated transactions CSV.
	// Empty if the csv format is disabled.
	TransactionsPath string

	// IrregularitiesPath is the path to the irregularity log CSV.
	// Empty if the csv format is disabled.
	IrregularitiesPath string

	// WorkbookPath is the path to the XLSX workbook.
	// Empty unless the xlsx format is enabled.
	WorkbookPath string

	// Report is the per-kind injection report.
	Report *irregularity.Report

	// Stats contains run statistics.
	Stats RunStats
}

// RunStats contains statistics about a generation run.
type RunStats struct {
	// Seed is the resolved seed the run was generated with. When no seed is
	// configured this is the derived value, reported for replay.
	Seed int64

	// RecurringCount is the number of baseline rows from recurring templates.
	RecurringCount int

	// RandomCount is the number of baseline rows with random dates.
	RandomCount int

	// DuplicatesAdded is the number of rows appended during injection.
	DuplicatesAdded int

	// TotalTransactions is the final row count including duplicates.
	TotalTransactions int

	// IrregularitiesApplied is the number of provenance entries recorded.
	IrregularitiesApplied int

	// GenerationTime is the time taken for the full run.
	GenerationTime time.Duration
}

// =============================================================================
// GENERATOR STRUCTURE
// =============================================================================

// Generator runs the generation pipeline for one configuration.
type Generator struct {
	// cfg is the validated run configuration.
	cfg *config.Config

	// log receives progress and shortfall warnings.
	log zerolog.Logger
}

// New creates a new Generator instance.
//
// PARAMETERS:
//   - cfg: The validated configuration to generate from.
//   - log: The logger for progress and warnings.
//
// RETURNS:
//   - A new Generator instance.
func New(cfg *config.Config, log zerolog.Logger) *Generator {
	return &Generator{
		cfg: cfg,
		log: log,
	}
}

// =============================================================================
// MAIN PIPELINE FUNCTION
// =============================================================================

// Run executes the generation pipeline.
//
// RETURNS:
//   - A Result with output paths, the injection report, and run statistics.
//   - An error if any stage fails. Config-level errors are expected to have
//     been caught by config.Load before Run is called.
func (g *Generator) Run() (*Result, error) {
	startTime := time.Now()
	result := &Result{}

	// =========================================================================
	// STEP 1: RESOLVE SEED
	// =========================================================================
	// Seed 0 means derive one from the clock. The resolved seed is logged and
	// reported so any run, seeded or not, can be replayed exactly.

	seed := ResolveSeed(g.cfg.Seed)
	rng := NewSeededRNG(seed)
	result.Stats.Seed = seed

	if g.cfg.Seed == 0 {
		g.log.Info().Int64("seed", seed).Msg("no seed configured; derived one from the clock")
	} else {
		g.log.Debug().Int64("seed", seed).Msg("using configured seed")
	}

	// =========================================================================
	// STEP 2: GENERATE BASELINE TRANSACTIONS
	// =========================================================================
	// Recurring templates expand to one row per covered month; num_transactions
	// random rows carry Benford-distributed amounts. The factory returns the
	// baseline sorted by date.

	dataset := factory.New(g.cfg, rng).Generate()
	baseline := len(dataset.Transactions)

	for i := range dataset.Transactions {
		if dataset.Transactions[i].Type == types.TypeRecurring {
			result.Stats.RecurringCount++
		} else {
			result.Stats.RandomCount++
		}
	}

	g.log.Info().
		Int("total", baseline).
		Int("recurring", result.Stats.RecurringCount).
		Int("random", result.Stats.RandomCount).
		Msg("generated baseline transactions")

	// =========================================================================
	// STEP 3: INJECT IRREGULARITIES
	// =========================================================================
	// The engine mutates targeted rows in place and appends duplicates to the
	// sequence tail. Every application is recorded in the provenance log.

	engine := irregularity.NewEngine(irregularity.Default(), irregularity.Options{
		Plan:           g.cfg.Plan(),
		TotalRequested: g.cfg.TotalIrregularities,
		Params:         g.cfg.InjectionParams(),
		RNG:            rng,
	}, g.log)

	report, err := engine.Inject(dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to inject irregularities: %w", err)
	}

	result.Report = report
	result.Stats.DuplicatesAdded = len(dataset.Transactions) - baseline
	result.Stats.TotalTransactions = len(dataset.Transactions)
	result.Stats.IrregularitiesApplied = report.TotalApplied

	g.log.Info().
		Int("applied", report.TotalApplied).
		Int("duplicates", result.Stats.DuplicatesAdded).
		Msg("injected irregularities")

	// =========================================================================
	// STEP 4: RESOLVE OUTPUT DIRECTORY
	// =========================================================================

	fm := utils.NewFileManager(g.cfg.Output.Directory, g.cfg.Output.Timestamped)
	runDir, err := fm.RunDir()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare output directory: %w", err)
	}
	result.RunDir = runDir

	// =========================================================================
	// STEP 5: EXPORT
	// =========================================================================
	// Rows are exported in final sequence order; the writers never reorder.

	if g.cfg.WantsFormat("csv") {
		txPath := filepath.Join(runDir, g.cfg.Output.TransactionsFile)
		if err := csvwriter.WriteTransactions(txPath, dataset.Transactions); err != nil {
			return nil, err
		}
		result.TransactionsPath = txPath

		irrPath := filepath.Join(runDir, g.cfg.Output.IrregularitiesFile)
		if err := csvwriter.WriteIrregularities(irrPath, dataset.Irregularities); err != nil {
			return nil, err
		}
		result.IrregularitiesPath = irrPath

		g.log.Info().
			Str("transactions", txPath).
			Str("irregularities", irrPath).
			Msg("wrote csv files")
	}

	if g.cfg.WantsFormat("xlsx") {
		wbPath := filepath.Join(runDir, g.cfg.Output.WorkbookFile)
		if err := xlsxwriter.WriteWorkbook(wbPath, dataset); err != nil {
			return nil, err
		}
		result.WorkbookPath = wbPath

		g.log.Info().Str("workbook", wbPath).Msg("wrote xlsx workbook")
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Stats.GenerationTime = time.Since(startTime)

	return result, nil
}
