// =============================================================================
// Fake Transaction Generator - Cumulative Irregularity
// =============================================================================
//
// This module implements the one built-in spread transform: many small
// deductions that individually look like noise but together stay just under a
// materiality threshold. The budget is a fraction of the dataset's total
// value, and every deduction is capped at 2% of its own transaction so no
// single record stands out.
//
// All arithmetic happens in integer cents. The budget is floored to cents up
// front, so the running total can never exceed the threshold fraction of the
// dataset.
//
// =============================================================================

package irregularity

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/fake-transaction-generator/internal/types"
)

// perTransactionCapPercent bounds each deduction relative to its target.
const perTransactionCapPercent = 2

// spreadCumulative deducts small random amounts from the given targets until
// either every target has been visited or the shared budget runs out.
//
// PARAMETERS:
//   - d: dataset whose transactions are mutated in place
//   - targets: candidate indices, already drawn without replacement
//   - threshold: budget as a fraction of the dataset's total amount
//   - rng: deterministic random source
//
// RETURNS:
//   - provenance entries, one per deduction, each noting the running total
//   - the indices actually deducted (a prefix-subset of targets)
//   - an error, always nil for this implementation
func spreadCumulative(d *types.Dataset, targets []int, threshold float64, rng *rand.Rand) ([]types.ProvenanceEntry, []int, error) {
	if len(targets) == 0 {
		return nil, nil, nil
	}

	// Budget: threshold fraction of the dataset total, floored to cents.
	total := decimal.Zero
	for i := range d.Transactions {
		total = total.Add(d.Transactions[i].Amount)
	}
	budget := total.Mul(decimal.NewFromFloat(threshold)).RoundDown(2)
	budgetCents := budget.Shift(2).IntPart()
	if budgetCents < 1 {
		return nil, nil, nil
	}

	var (
		entries      []types.ProvenanceEntry
		used         []int
		runningCents int64
	)

	for _, idx := range targets {
		remaining := budgetCents - runningCents
		if remaining < 1 {
			break
		}

		tx := &d.Transactions[idx]
		amountCents := tx.Amount.Shift(2).IntPart()
		capCents := amountCents * perTransactionCapPercent / 100
		if capCents > remaining {
			capCents = remaining
		}
		if capCents < 1 {
			// Transaction too small to shave a cent from without
			// breaching its cap. Leave it and try the next target.
			continue
		}

		dedCents := 1 + rng.Int63n(capCents)
		deduction := decimal.New(dedCents, -2)
		tx.Amount = tx.Amount.Sub(deduction)
		runningCents += dedCents

		note := fmt.Sprintf("Deducted %s (running total %s of %s budget)",
			deduction.StringFixed(2),
			decimal.New(runningCents, -2).StringFixed(2),
			budget.StringFixed(2))
		entries = append(entries, types.ProvenanceEntry{
			TransactionID: tx.ID,
			Kind:          string(KindCumulative),
			Note:          note,
		})
		used = append(used, idx)
	}

	return entries, used, nil
}
