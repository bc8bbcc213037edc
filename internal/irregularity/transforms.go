// =============================================================================
// Fake Transaction Generator - Irregularity Transforms
// =============================================================================
//
// This module implements the single-target transforms behind the built-in
// catalog entries. Each transform receives one drawn target via an Op, applies
// its mutation (or appends a duplicate), and returns the provenance entries
// describing exactly what changed.
//
// ATOMICITY:
//   A transform validates everything it needs before touching the dataset.
//   On any error it returns with the target untouched, so the engine can skip
//   the application without leaving a partially-mutated record behind.
//
// PROVENANCE NOTES:
//   Notes always carry the old and new values so the ground-truth log can be
//   audited against the emitted dataset without re-deriving anything.
//
// =============================================================================

package irregularity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/fake-transaction-generator/internal/types"
)

// =============================================================================
// DESCRIPTION POOLS
// =============================================================================

// mismatchedDescriptions deliberately clash with the purchase-style
// descriptions the factory emits.
var mismatchedDescriptions = []string{
	"Lottery Tickets",
	"Pet Grooming",
	"Vacation Package",
	"Concert Tickets",
	"Golf Club Membership",
}

// provenance builds the single-entry result most transforms produce.
func provenance(txID string, kind Kind, note string) []types.ProvenanceEntry {
	return []types.ProvenanceEntry{{TransactionID: txID, Kind: string(kind), Note: note}}
}

// =============================================================================
// AMOUNT TRANSFORMS
// =============================================================================

// applyHighAmount multiplies the target's amount by a factor in (5, 20].
func applyHighAmount(op *Op) ([]types.ProvenanceEntry, error) {
	tx := op.Target()
	old := tx.Amount

	// Factor drawn in [5.05, 20.00] with four decimal places. The lower
	// bound stays clear of 5.0 so the mutated amount always exceeds five
	// times the original even after rounding to cents.
	factor := decimal.New(int64(50500+op.RNG.Intn(149501)), -4)
	tx.Amount = old.Mul(factor).Round(2)

	note := fmt.Sprintf("Amount changed from %s to %s", old.StringFixed(2), tx.Amount.StringFixed(2))
	return provenance(tx.ID, KindHighAmount, note), nil
}

// applyBenfordViolation replaces the amount with one of the same magnitude
// whose leading digit is 9, the least likely leading digit under Benford's
// Law.
func applyBenfordViolation(op *Op) ([]types.ProvenanceEntry, error) {
	tx := op.Target()
	old := tx.Amount

	// Keep the order of magnitude of the original so the violation hides in
	// plausible-looking values. Truncate rather than round so a mantissa
	// near the top cannot carry over into a leading 1.
	intDigits := len(old.Abs().Truncate(0).String())
	mantissa := 9_000_000 + op.RNG.Int63n(1_000_000)
	tx.Amount = decimal.New(mantissa, int32(intDigits-7)).Truncate(2)

	note := fmt.Sprintf("Amount changed from %s to %s (forced leading digit 9)",
		old.StringFixed(2), tx.Amount.StringFixed(2))
	return provenance(tx.ID, KindBenfordViolation, note), nil
}

// applySubtleSkimming reduces the amount by 1-5%.
func applySubtleSkimming(op *Op) ([]types.ProvenanceEntry, error) {
	tx := op.Target()
	old := tx.Amount

	// Skim rate in basis points: 100..500 is 1.00%..5.00%.
	rate := decimal.New(int64(100+op.RNG.Intn(401)), -4)
	deduction := old.Mul(rate).Round(2)
	if deduction.IsZero() {
		return nil, fmt.Errorf("amount %s is too small to skim", old.StringFixed(2))
	}
	tx.Amount = old.Sub(deduction)

	note := fmt.Sprintf("Amount skimmed from %s to %s (-%s)",
		old.StringFixed(2), tx.Amount.StringFixed(2), deduction.StringFixed(2))
	return provenance(tx.ID, KindSubtleSkimming, note), nil
}

// applyRoundNumberBias replaces the amount with an exact multiple of 100 or
// 1000. Fabricated figures cluster on round values far more often than
// organic ones do.
func applyRoundNumberBias(op *Op) ([]types.ProvenanceEntry, error) {
	tx := op.Target()
	old := tx.Amount

	places := int32(-2)
	if op.RNG.Intn(2) == 1 {
		places = -3
	}
	step := decimal.New(1, -places)

	rounded := old.Round(places)
	if rounded.IsZero() {
		rounded = step
	}
	if rounded.Equal(old) {
		// Already round: move to the next multiple so the record changes.
		rounded = rounded.Add(step)
	}
	tx.Amount = rounded

	note := fmt.Sprintf("Amount changed from %s to %s (rounded to multiple of %s)",
		old.StringFixed(2), tx.Amount.StringFixed(2), step.StringFixed(0))
	return provenance(tx.ID, KindRoundNumberBias, note), nil
}

// =============================================================================
// DATE TRANSFORMS
// =============================================================================

// applyFrequencyChange shifts a recurring transaction's date by 3-10 days in
// either direction, breaking its monthly cadence.
func applyFrequencyChange(op *Op) ([]types.ProvenanceEntry, error) {
	tx := op.Target()
	if tx.Type != types.TypeRecurring {
		return nil, fmt.Errorf("frequency change requires a recurring transaction, got %s", tx.Type)
	}

	old := tx.Date
	days := 3 + op.RNG.Intn(8)
	if op.RNG.Intn(2) == 0 {
		days = -days
	}
	tx.Date = old.AddDate(0, 0, days)

	note := fmt.Sprintf("Recurring date shifted from %s to %s",
		old.Format("2006-01-02"), tx.Date.Format("2006-01-02"))
	return provenance(tx.ID, KindFrequencyChange, note), nil
}

// applyIncorrectDate moves the date 1-30 days past the configured end date.
func applyIncorrectDate(op *Op) ([]types.ProvenanceEntry, error) {
	tx := op.Target()
	old := tx.Date

	days := 1 + op.RNG.Intn(30)
	tx.Date = op.Params.EndDate.AddDate(0, 0, days)

	note := fmt.Sprintf("Date changed from %s to %s (beyond configured range)",
		old.Format("2006-01-02"), tx.Date.Format("2006-01-02"))
	return provenance(tx.ID, KindIncorrectDate, note), nil
}

// applySeasonalAnomaly moves the date 5-7 months forward, landing it in the
// opposite season while keeping the day of month where the target month
// allows.
func applySeasonalAnomaly(op *Op) ([]types.ProvenanceEntry, error) {
	tx := op.Target()
	old := tx.Date

	shift := 5 + op.RNG.Intn(3)
	year, month, day := old.Date()
	targetYear := year + (int(month)+shift-1)/12
	targetMonth := time.Month((int(month)+shift-1)%12 + 1)
	if last := daysInMonth(targetYear, targetMonth); day > last {
		day = last
	}
	tx.Date = time.Date(targetYear, targetMonth, day, 0, 0, 0, 0, time.UTC)

	note := fmt.Sprintf("Date moved from %s to %s (out-of-season month)",
		old.Format("2006-01-02"), tx.Date.Format("2006-01-02"))
	return provenance(tx.ID, KindSeasonalAnomaly, note), nil
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// =============================================================================
// IDENTITY TRANSFORMS
// =============================================================================

// applyMissingID clears the target's ID. The provenance entry records the
// previous ID, since the dataset row can no longer be found by it.
func applyMissingID(op *Op) ([]types.ProvenanceEntry, error) {
	tx := op.Target()
	if tx.ID == "" {
		return nil, fmt.Errorf("transaction ID is already empty")
	}

	prev := tx.ID
	tx.ID = ""

	note := fmt.Sprintf("Transaction ID removed (was %s)", prev)
	return provenance(prev, KindMissingID, note), nil
}

// applyDoubleSpend appends a duplicate of the target: same vendor, amount,
// account, and description, dated 1-60 minutes later, carrying an ID derived
// from the original's.
func applyDoubleSpend(op *Op) ([]types.ProvenanceEntry, error) {
	orig := op.Dataset.Transactions[op.Index]
	if orig.ID == "" {
		return nil, fmt.Errorf("cannot duplicate a transaction without an ID")
	}

	dup := orig
	dup.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(orig.ID)).String()
	minutes := 1 + op.RNG.Intn(60)
	dup.Date = orig.Date.Add(time.Duration(minutes) * time.Minute)

	op.Dataset.Transactions = append(op.Dataset.Transactions, dup)

	note := fmt.Sprintf("Double spend of transaction %s: duplicate %s dated %s",
		orig.ID, dup.ID, dup.DateString())
	return provenance(dup.ID, KindDoubleSpend, note), nil
}

// =============================================================================
// FIELD CORRUPTION TRANSFORMS
// =============================================================================

// applyMismatchedDescription replaces the description with one inconsistent
// with the transaction's type and vendor.
func applyMismatchedDescription(op *Op) ([]types.ProvenanceEntry, error) {
	tx := op.Target()
	old := tx.Description

	pick := op.RNG.Intn(len(mismatchedDescriptions))
	if mismatchedDescriptions[pick] == old {
		pick = (pick + 1) % len(mismatchedDescriptions)
	}
	tx.Description = mismatchedDescriptions[pick]

	note := fmt.Sprintf("Description changed from %q to %q", old, tx.Description)
	return provenance(tx.ID, KindMismatchedDescription, note), nil
}

// applyWrongAccount replaces the account with an identifier outside the valid
// ACCT-#### format.
func applyWrongAccount(op *Op) ([]types.ProvenanceEntry, error) {
	tx := op.Target()
	old := tx.Account

	tx.Account = fmt.Sprintf("WRONG-%03d", 100+op.RNG.Intn(900))

	note := fmt.Sprintf("Account changed from %s to %s", old, tx.Account)
	return provenance(tx.ID, KindWrongAccount, note), nil
}

// applyPersonalExpense swaps the vendor and description for entries from the
// personal pools, making a business record look like a personal purchase.
func applyPersonalExpense(op *Op) ([]types.ProvenanceEntry, error) {
	if len(op.Params.PersonalVendors) == 0 || len(op.Params.PersonalDescriptions) == 0 {
		return nil, fmt.Errorf("personal expense pools are empty")
	}

	tx := op.Target()
	oldVendor, oldDesc := tx.Vendor, tx.Description

	tx.Vendor = op.Params.PersonalVendors[op.RNG.Intn(len(op.Params.PersonalVendors))]
	tx.Description = op.Params.PersonalDescriptions[op.RNG.Intn(len(op.Params.PersonalDescriptions))]

	note := fmt.Sprintf("Vendor changed from %q to %q, description changed from %q to %q",
		oldVendor, tx.Vendor, oldDesc, tx.Description)
	return provenance(tx.ID, KindPersonalExpense, note), nil
}
