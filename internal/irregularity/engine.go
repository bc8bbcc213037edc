// =============================================================================
// Fake Transaction Generator - Irregularity Engine
// =============================================================================
//
// This module drives irregularity injection. The engine resolves the
// configured plan against the catalog, draws targets without replacement,
// invokes each entry's transform, and collects provenance into the dataset's
// ground-truth log.
//
// The engine is policy-only. It knows nothing about what any individual kind
// does to a transaction; all of that lives behind the Transform and Spread
// contracts. Adding a new kind to the catalog requires no engine changes.
//
// TARGETING RULES:
//   - Kinds run in catalog registration order.
//   - A transaction claimed by one kind is skipped by every later kind unless
//     that kind allows overlap.
//   - Rows appended during injection (double-spend duplicates) are skipped
//     unless a kind explicitly targets duplicates.
//   - When fewer eligible transactions remain than requested, the engine
//     applies what it can and logs the shortfall. This is never an error.
//
// =============================================================================

package irregularity

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/fake-transaction-generator/internal/types"
)

// =============================================================================
// PLAN TYPES
// =============================================================================

// PlanEntry is the per-kind slice of the configured injection plan.
type PlanEntry struct {
	// Count is the requested number of applications. Zero with Enabled set
	// means "use the catalog default".
	Count int

	// Threshold overrides the catalog default budget fraction for spread
	// kinds. Zero means "use the catalog default".
	Threshold float64

	// Enabled gates the kind. A disabled entry is skipped regardless of
	// its count.
	Enabled bool
}

// Plan maps each requested kind to its settings. Application order comes from
// the catalog, never from this map.
type Plan map[Kind]PlanEntry

// Options carries everything the engine needs for one injection run.
type Options struct {
	// Plan holds the per-kind settings.
	Plan Plan

	// TotalRequested is the configured total_irregularities value, used
	// only for a consistency warning. Per-kind counts take precedence.
	TotalRequested int

	// Params is handed to every transform invocation.
	Params Params

	// RNG is the deterministic random source shared with the rest of the
	// generation run.
	RNG *rand.Rand
}

// =============================================================================
// REPORT TYPES
// =============================================================================

// KindOutcome records how one kind fared during injection.
type KindOutcome struct {
	Kind      Kind
	Requested int
	Applied   int
}

// Shortfall reports how many requested applications could not be placed.
func (o KindOutcome) Shortfall() int {
	return o.Requested - o.Applied
}

// Report summarizes an injection run, with outcomes in application order.
type Report struct {
	Outcomes     []KindOutcome
	TotalApplied int
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine applies a resolved plan to a dataset.
type Engine struct {
	catalog *Catalog
	opts    Options
	log     zerolog.Logger
}

// NewEngine creates an engine over the given catalog.
func NewEngine(catalog *Catalog, opts Options, log zerolog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		opts:    opts,
		log:     log,
	}
}

// Inject runs the plan against the dataset, mutating transactions in place
// and appending provenance entries for every applied irregularity.
//
// PARAMETERS:
//   - d: the dataset to corrupt; its Irregularities log is appended to
//
// RETURNS:
//   - a report with per-kind outcomes in application order
//   - an error only for misconfiguration (unknown kind, missing RNG);
//     shortfalls are reported and logged, never returned as errors
func (e *Engine) Inject(d *types.Dataset) (*Report, error) {
	if e.opts.RNG == nil {
		return nil, fmt.Errorf("injection requires a random source")
	}

	// -------------------------------------------------------------------------
	// STEP 1: Validate the plan against the catalog
	// -------------------------------------------------------------------------
	unknown := make([]string, 0)
	for kind := range e.opts.Plan {
		if _, ok := e.catalog.Lookup(kind); !ok {
			unknown = append(unknown, string(kind))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown irregularity kind %q", unknown[0])
	}

	// -------------------------------------------------------------------------
	// STEP 2: Resolve counts and cross-check the configured total
	// -------------------------------------------------------------------------
	planned := 0
	for _, kind := range e.catalog.Kinds() {
		pe, ok := e.opts.Plan[kind]
		if !ok || !pe.Enabled {
			continue
		}
		planned += e.resolveCount(kind, pe)
	}
	if e.opts.TotalRequested > 0 && planned != e.opts.TotalRequested {
		e.log.Warn().
			Int("total_irregularities", e.opts.TotalRequested).
			Int("planned", planned).
			Msg("per-kind counts take precedence over total_irregularities")
	}

	// -------------------------------------------------------------------------
	// STEP 3: Apply each enabled kind in catalog order
	// -------------------------------------------------------------------------
	claimed := make(map[int]bool)
	duplicates := make(map[int]bool)
	report := &Report{}

	for _, kind := range e.catalog.Kinds() {
		pe, ok := e.opts.Plan[kind]
		if !ok || !pe.Enabled {
			continue
		}
		entry, _ := e.catalog.Lookup(kind)
		count := e.resolveCount(kind, pe)
		if count == 0 {
			continue
		}

		eligible := e.eligibleTargets(d, entry, claimed, duplicates)

		var applied int
		if entry.Spread != nil {
			applied = e.applySpread(d, entry, pe, eligible, count, claimed)
		} else {
			applied = e.applyPerTarget(d, entry, eligible, count, claimed, duplicates)
		}

		if applied < count {
			e.log.Warn().
				Str("kind", string(kind)).
				Int("requested", count).
				Int("applied", applied).
				Msg("not enough eligible transactions; applied what was feasible")
		}

		report.Outcomes = append(report.Outcomes, KindOutcome{
			Kind:      kind,
			Requested: count,
			Applied:   applied,
		})
		report.TotalApplied += applied
	}

	return report, nil
}

// resolveCount applies the catalog default when the plan leaves the count at
// zero for an enabled kind.
func (e *Engine) resolveCount(kind Kind, pe PlanEntry) int {
	if pe.Count > 0 {
		return pe.Count
	}
	entry, ok := e.catalog.Lookup(kind)
	if !ok {
		return 0
	}
	return entry.DefaultCount
}

// resolveThreshold applies the catalog default when the plan leaves the
// budget fraction at zero.
func (e *Engine) resolveThreshold(entry *Entry, pe PlanEntry) float64 {
	if pe.Threshold > 0 {
		return pe.Threshold
	}
	return entry.DefaultThreshold
}

// eligibleTargets collects the indices this entry may draw from, honoring
// claims, duplicate exclusion, and the recurring-only restriction.
func (e *Engine) eligibleTargets(d *types.Dataset, entry *Entry, claimed, duplicates map[int]bool) []int {
	eligible := make([]int, 0, len(d.Transactions))
	for i := range d.Transactions {
		if claimed[i] && !entry.AllowOverlap {
			continue
		}
		if duplicates[i] && !entry.TargetsDuplicates {
			continue
		}
		if entry.RecurringOnly && d.Transactions[i].Type != types.TypeRecurring {
			continue
		}
		eligible = append(eligible, i)
	}
	return eligible
}

// applyPerTarget draws one target at a time and invokes the entry's Apply
// transform, claiming each successful target. A transform error skips that
// target without mutation and moves on to the next draw.
func (e *Engine) applyPerTarget(d *types.Dataset, entry *Entry, eligible []int, count int, claimed, duplicates map[int]bool) int {
	applied := 0
	for applied < count && len(eligible) > 0 {
		j := e.opts.RNG.Intn(len(eligible))
		idx := eligible[j]
		eligible[j] = eligible[len(eligible)-1]
		eligible = eligible[:len(eligible)-1]

		before := len(d.Transactions)
		entries, err := entry.Apply(&Op{
			Dataset: d,
			Index:   idx,
			RNG:     e.opts.RNG,
			Params:  e.opts.Params,
		})
		if err != nil {
			e.log.Warn().
				Str("kind", string(entry.Kind)).
				Err(err).
				Msg("skipping ineligible target")
			continue
		}

		claimed[idx] = true
		applied++
		d.Irregularities = append(d.Irregularities, entries...)

		// Rows appended by the transform are duplicates; record them so
		// later kinds skip them by default.
		for k := before; k < len(d.Transactions); k++ {
			duplicates[k] = true
		}
	}
	return applied
}

// applySpread draws the full target set up front and hands it to the entry's
// Spread transform, claiming only the indices the transform reports as used.
func (e *Engine) applySpread(d *types.Dataset, entry *Entry, pe PlanEntry, eligible []int, count int, claimed map[int]bool) int {
	targets := make([]int, 0, count)
	for len(targets) < count && len(eligible) > 0 {
		j := e.opts.RNG.Intn(len(eligible))
		targets = append(targets, eligible[j])
		eligible[j] = eligible[len(eligible)-1]
		eligible = eligible[:len(eligible)-1]
	}

	threshold := e.resolveThreshold(entry, pe)
	entries, used, err := entry.Spread(d, targets, threshold, e.opts.RNG)
	if err != nil {
		e.log.Warn().
			Str("kind", string(entry.Kind)).
			Err(err).
			Msg("spread transform failed; nothing applied")
		return 0
	}

	for _, idx := range used {
		claimed[idx] = true
	}
	d.Irregularities = append(d.Irregularities, entries...)
	return len(used)
}
