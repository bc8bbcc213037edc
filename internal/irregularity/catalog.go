// =============================================================================
// Fake Transaction Generator - Irregularity Catalog
// =============================================================================
//
// This module defines the registry that maps an irregularity-kind identifier
// to its transformation function and policy. The catalog is declarative: the
// engine walks it in registration order and never special-cases a kind, so
// adding a new irregularity means registering one new entry here and nothing
// else.
//
// ENTRY CONTRACT:
//   Every entry carries exactly one of two functions.
//   - Apply:  mutates (or duplicates) a single drawn target atomically. The
//             engine calls it once per application, collecting one batch of
//             provenance entries each time.
//   - Spread: distributes a bounded aggregate distortion across a drawn set
//             of targets (the cumulative irregularity). It reports which
//             targets it actually touched so the engine can claim them.
//
//   A transform either fully succeeds or leaves its target untouched and
//   returns an error; the engine records no provenance for failed
//   applications.
//
// BUILT-IN KINDS (registration order):
//   high_amount, frequency_change, double_spend, missing_id, incorrect_date,
//   mismatched_description, wrong_account, personal_expense,
//   benford_violation, subtle_skimming, seasonal_anomaly, round_number_bias,
//   cumulative_irregularity
//
// =============================================================================

package irregularity

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ginjaninja78/fake-transaction-generator/internal/types"
)

// =============================================================================
// KIND IDENTIFIERS
// =============================================================================

// Kind identifies an irregularity kind in the catalog and in configuration.
type Kind string

const (
	// KindHighAmount multiplies one transaction's amount by a large factor.
	KindHighAmount Kind = "high_amount"

	// KindFrequencyChange shifts one recurring transaction's date by a
	// non-trivial number of days.
	KindFrequencyChange Kind = "frequency_change"

	// KindDoubleSpend appends a near-duplicate of one transaction, offset by
	// minutes and carrying a derived ID.
	KindDoubleSpend Kind = "double_spend"

	// KindMissingID clears one transaction's ID.
	KindMissingID Kind = "missing_id"

	// KindIncorrectDate moves one transaction's date beyond the configured
	// end date.
	KindIncorrectDate Kind = "incorrect_date"

	// KindMismatchedDescription replaces one transaction's description with
	// one inconsistent with its type and vendor.
	KindMismatchedDescription Kind = "mismatched_description"

	// KindWrongAccount replaces one transaction's account with an
	// invalid-format identifier.
	KindWrongAccount Kind = "wrong_account"

	// KindPersonalExpense swaps one transaction's vendor and description for
	// entries from the personal pools.
	KindPersonalExpense Kind = "personal_expense"

	// KindBenfordViolation replaces one transaction's amount with one whose
	// leading digit deliberately violates Benford's Law.
	KindBenfordViolation Kind = "benford_violation"

	// KindSubtleSkimming reduces each of several transactions' amounts by a
	// small percentage.
	KindSubtleSkimming Kind = "subtle_skimming"

	// KindSeasonalAnomaly moves one transaction's date into an out-of-season
	// month.
	KindSeasonalAnomaly Kind = "seasonal_anomaly"

	// KindRoundNumberBias replaces one transaction's amount with an exact
	// round value.
	KindRoundNumberBias Kind = "round_number_bias"

	// KindCumulative spreads a bounded aggregate deduction across many
	// transactions.
	KindCumulative Kind = "cumulative_irregularity"
)

// =============================================================================
// TRANSFORM CONTRACT
// =============================================================================

// Params carries the configuration-derived inputs a transform may need.
// The engine builds it once per run from the validated configuration.
type Params struct {
	// EndDate is the upper bound of the configured date range. The
	// incorrect-date transform places dates beyond it.
	EndDate time.Time

	// PersonalVendors and PersonalDescriptions are the pools used by the
	// personal-expense transform.
	PersonalVendors      []string
	PersonalDescriptions []string
}

// Op carries the state for one application of a single-target transform.
type Op struct {
	// Dataset is the sequence under injection. Transforms mutate the target
	// in place or append duplicates to the tail.
	Dataset *types.Dataset

	// Index is the drawn target's position in Dataset.Transactions.
	Index int

	// RNG is the run's deterministic random source.
	RNG *rand.Rand

	// Params holds the configuration-derived transform inputs.
	Params Params
}

// Target returns the transaction the operation was drawn for.
func (op *Op) Target() *types.Transaction {
	return &op.Dataset.Transactions[op.Index]
}

// Transform applies one irregularity to one drawn target. It returns the
// provenance entries produced by the application, or an error without having
// mutated anything.
type Transform func(op *Op) ([]types.ProvenanceEntry, error)

// Spread distributes a multi-target irregularity across the drawn targets,
// bounded by threshold. It returns the provenance entries produced and the
// indices it actually mutated.
type Spread func(d *types.Dataset, targets []int, threshold float64, rng *rand.Rand) ([]types.ProvenanceEntry, []int, error)

// =============================================================================
// CATALOG ENTRY
// =============================================================================

// Entry describes one registered irregularity kind.
type Entry struct {
	// Kind is the identifier the entry is registered under.
	Kind Kind

	// Apply is the single-target transform. Nil for spread-style kinds.
	Apply Transform

	// Spread is the multi-target transform. Nil for single-target kinds.
	Spread Spread

	// DefaultCount is used when the plan enables the kind without an
	// explicit count.
	DefaultCount int

	// DefaultThreshold is used when a threshold-bearing kind is enabled
	// without an explicit threshold. Zero for kinds without thresholds.
	DefaultThreshold float64

	// RecurringOnly restricts target selection to recurring transactions.
	RecurringOnly bool

	// AllowOverlap permits this kind to draw targets an earlier kind has
	// already claimed. All built-in kinds claim their targets exclusively.
	AllowOverlap bool

	// TargetsDuplicates permits this kind to target duplicates appended by
	// earlier duplication-style kinds. Disabled for all built-in kinds to
	// avoid cascading corruption.
	TargetsDuplicates bool
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is an ordered registry of irregularity kinds. Registration order is
// application order, which keeps runs reproducible for a fixed seed.
type Catalog struct {
	entries map[Kind]*Entry
	order   []Kind
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[Kind]*Entry)}
}

// Register adds an entry to the catalog. The entry must carry a kind and
// exactly one of Apply or Spread, and the kind must not already be registered.
func (c *Catalog) Register(e Entry) error {
	if e.Kind == "" {
		return fmt.Errorf("cannot register entry without a kind")
	}
	if (e.Apply == nil) == (e.Spread == nil) {
		return fmt.Errorf("kind %q must carry exactly one of Apply or Spread", e.Kind)
	}
	if _, exists := c.entries[e.Kind]; exists {
		return fmt.Errorf("kind %q is already registered", e.Kind)
	}

	entry := e
	c.entries[e.Kind] = &entry
	c.order = append(c.order, e.Kind)
	return nil
}

// Lookup returns the entry registered under the kind, if any.
func (c *Catalog) Lookup(k Kind) (*Entry, bool) {
	e, ok := c.entries[k]
	return e, ok
}

// Kinds returns the registered kinds in registration order.
func (c *Catalog) Kinds() []Kind {
	kinds := make([]Kind, len(c.order))
	copy(kinds, c.order)
	return kinds
}

// =============================================================================
// BUILT-IN CATALOG
// =============================================================================

// Default returns a catalog populated with every built-in irregularity kind
// in canonical order.
func Default() *Catalog {
	c := NewCatalog()

	builtins := []Entry{
		{Kind: KindHighAmount, Apply: applyHighAmount, DefaultCount: 1},
		{Kind: KindFrequencyChange, Apply: applyFrequencyChange, DefaultCount: 1, RecurringOnly: true},
		{Kind: KindDoubleSpend, Apply: applyDoubleSpend, DefaultCount: 1},
		{Kind: KindMissingID, Apply: applyMissingID, DefaultCount: 1},
		{Kind: KindIncorrectDate, Apply: applyIncorrectDate, DefaultCount: 1},
		{Kind: KindMismatchedDescription, Apply: applyMismatchedDescription, DefaultCount: 1},
		{Kind: KindWrongAccount, Apply: applyWrongAccount, DefaultCount: 1},
		{Kind: KindPersonalExpense, Apply: applyPersonalExpense, DefaultCount: 1},
		{Kind: KindBenfordViolation, Apply: applyBenfordViolation, DefaultCount: 1},
		{Kind: KindSubtleSkimming, Apply: applySubtleSkimming, DefaultCount: 10},
		{Kind: KindSeasonalAnomaly, Apply: applySeasonalAnomaly, DefaultCount: 1},
		{Kind: KindRoundNumberBias, Apply: applyRoundNumberBias, DefaultCount: 1},
		{Kind: KindCumulative, Spread: spreadCumulative, DefaultCount: 10, DefaultThreshold: 0.005},
	}

	for _, e := range builtins {
		// Registration of the built-in set cannot fail: kinds are unique and
		// every entry carries exactly one transform.
		if err := c.Register(e); err != nil {
			panic(fmt.Sprintf("irregularity: invalid built-in entry: %v", err))
		}
	}

	return c
}

// IsRegistered reports whether the name identifies a built-in kind. It backs
// configuration validation, which must reject unknown kinds before a run.
func IsRegistered(name string) bool {
	_, ok := Default().entries[Kind(name)]
	return ok
}

// KindDefaultThreshold returns the built-in default threshold for the named
// kind, if it is a threshold-bearing kind.
func KindDefaultThreshold(name string) (float64, bool) {
	e, ok := Default().entries[Kind(name)]
	if !ok || e.DefaultThreshold == 0 {
		return 0, false
	}
	return e.DefaultThreshold, true
}

// KindDefaultCount returns the count an enabled kind falls back to when the
// configuration leaves its count unset.
func KindDefaultCount(name string) (int, bool) {
	e, ok := Default().entries[Kind(name)]
	if !ok {
		return 0, false
	}
	return e.DefaultCount, true
}
