package irregularity

import (
	"fmt"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/fake-transaction-generator/internal/types"
)

// testDataset builds a small deterministic dataset for transform tests.
func testDataset(n int) *types.Dataset {
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	txs := make([]types.Transaction, n)
	for i := range txs {
		txs[i] = types.Transaction{
			ID:          fmt.Sprintf("tx-%03d", i+1),
			Date:        base.AddDate(0, 0, i),
			Type:        types.TypeRandom,
			Amount:      decimal.New(int64(10000+i*137), -2),
			Account:     "ACCT-1042",
			Description: "Office Supplies",
			Vendor:      "Staples",
		}
	}
	return &types.Dataset{Transactions: txs}
}

// testParams carries the configuration-derived inputs transforms expect.
func testParams() Params {
	return Params{
		EndDate:              time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		PersonalVendors:      []string{"Steam", "Netflix"},
		PersonalDescriptions: []string{"Game Purchase", "Streaming Subscription"},
	}
}

// testOp wraps a dataset index with a seeded source and realistic params.
func testOp(d *types.Dataset, idx int, seed int64) *Op {
	return &Op{
		Dataset: d,
		Index:   idx,
		RNG:     rand.New(rand.NewSource(seed)),
		Params:  testParams(),
	}
}

func TestApplyHighAmount(t *testing.T) {
	five := decimal.NewFromInt(5)
	upper := decimal.RequireFromString("20.01")

	for seed := int64(1); seed <= 50; seed++ {
		d := testDataset(3)
		old := d.Transactions[1].Amount

		entries, err := applyHighAmount(testOp(d, 1, seed))
		require.NoError(t, err)

		got := d.Transactions[1].Amount
		assert.True(t, got.GreaterThan(old.Mul(five)),
			"seed %d: %s must exceed 5x %s", seed, got, old)
		assert.True(t, got.LessThanOrEqual(old.Mul(upper)),
			"seed %d: %s must stay within 20x %s", seed, got, old)

		require.Len(t, entries, 1)
		assert.Equal(t, "tx-002", entries[0].TransactionID)
		assert.Equal(t, string(KindHighAmount), entries[0].Kind)
		assert.Contains(t, entries[0].Note, old.StringFixed(2))
		assert.Contains(t, entries[0].Note, got.StringFixed(2))
	}
}

func TestApplyFrequencyChange(t *testing.T) {
	t.Run("shifts recurring date by 3 to 10 days", func(t *testing.T) {
		for seed := int64(1); seed <= 50; seed++ {
			d := testDataset(2)
			d.Transactions[0].Type = types.TypeRecurring
			old := d.Transactions[0].Date

			entries, err := applyFrequencyChange(testOp(d, 0, seed))
			require.NoError(t, err)

			days := int(d.Transactions[0].Date.Sub(old).Hours() / 24)
			if days < 0 {
				days = -days
			}
			assert.GreaterOrEqual(t, days, 3, "seed %d", seed)
			assert.LessOrEqual(t, days, 10, "seed %d", seed)
			require.Len(t, entries, 1)
			assert.Equal(t, string(KindFrequencyChange), entries[0].Kind)
		}
	})

	t.Run("rejects non-recurring targets without mutating", func(t *testing.T) {
		d := testDataset(1)
		old := d.Transactions[0].Date

		entries, err := applyFrequencyChange(testOp(d, 0, 1))
		assert.Error(t, err)
		assert.Nil(t, entries)
		assert.True(t, d.Transactions[0].Date.Equal(old), "failed transform must not mutate")
	})
}

func TestApplyDoubleSpend(t *testing.T) {
	t.Run("appends a near-identical duplicate", func(t *testing.T) {
		d := testDataset(3)
		orig := d.Transactions[1]

		entries, err := applyDoubleSpend(testOp(d, 1, 7))
		require.NoError(t, err)
		require.Len(t, d.Transactions, 4, "duplicate must be appended")

		dup := d.Transactions[3]
		assert.Equal(t, orig.Vendor, dup.Vendor)
		assert.Equal(t, orig.Account, dup.Account)
		assert.Equal(t, orig.Description, dup.Description)
		assert.True(t, orig.Amount.Equal(dup.Amount), "duplicate keeps the amount")

		assert.NotEmpty(t, dup.ID)
		assert.NotEqual(t, orig.ID, dup.ID)

		offset := dup.Date.Sub(orig.Date)
		assert.GreaterOrEqual(t, offset, time.Minute)
		assert.LessOrEqual(t, offset, 60*time.Minute)

		require.Len(t, entries, 1)
		assert.Equal(t, dup.ID, entries[0].TransactionID)
		assert.Contains(t, entries[0].Note, orig.ID)
	})

	t.Run("derived duplicate ID is stable", func(t *testing.T) {
		a := testDataset(1)
		b := testDataset(1)
		_, err := applyDoubleSpend(testOp(a, 0, 1))
		require.NoError(t, err)
		_, err = applyDoubleSpend(testOp(b, 0, 99))
		require.NoError(t, err)
		assert.Equal(t, a.Transactions[1].ID, b.Transactions[1].ID,
			"duplicate ID depends only on the original ID")
	})

	t.Run("refuses a target without an ID", func(t *testing.T) {
		d := testDataset(1)
		d.Transactions[0].ID = ""

		entries, err := applyDoubleSpend(testOp(d, 0, 1))
		assert.Error(t, err)
		assert.Nil(t, entries)
		assert.Len(t, d.Transactions, 1, "failed transform must not append")
	})
}

func TestApplyMissingID(t *testing.T) {
	d := testDataset(2)

	entries, err := applyMissingID(testOp(d, 1, 1))
	require.NoError(t, err)

	assert.Empty(t, d.Transactions[1].ID)
	require.Len(t, entries, 1)
	assert.Equal(t, "tx-002", entries[0].TransactionID,
		"provenance must carry the removed ID")
	assert.Contains(t, entries[0].Note, "tx-002")

	_, err = applyMissingID(testOp(d, 1, 2))
	assert.Error(t, err, "an already-empty ID cannot be removed again")
}

func TestApplyIncorrectDate(t *testing.T) {
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	for seed := int64(1); seed <= 30; seed++ {
		d := testDataset(1)

		entries, err := applyIncorrectDate(testOp(d, 0, seed))
		require.NoError(t, err)

		got := d.Transactions[0].Date
		assert.True(t, got.After(end), "seed %d: %s must pass the end date", seed, got)
		assert.False(t, got.After(end.AddDate(0, 0, 30)), "seed %d: %s at most 30 days out", seed, got)
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Note, "beyond configured range")
	}
}

func TestApplyMismatchedDescription(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		d := testDataset(1)
		old := d.Transactions[0].Description

		entries, err := applyMismatchedDescription(testOp(d, 0, seed))
		require.NoError(t, err)

		got := d.Transactions[0].Description
		assert.NotEqual(t, old, got)
		assert.Contains(t, mismatchedDescriptions, got)
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Note, old)
	}
}

func TestApplyWrongAccount(t *testing.T) {
	pattern := regexp.MustCompile(`^WRONG-[1-9]\d{2}$`)

	for seed := int64(1); seed <= 20; seed++ {
		d := testDataset(1)

		entries, err := applyWrongAccount(testOp(d, 0, seed))
		require.NoError(t, err)

		assert.Regexp(t, pattern, d.Transactions[0].Account)
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Note, "ACCT-1042")
	}
}

func TestApplyPersonalExpense(t *testing.T) {
	t.Run("draws vendor and description from the personal pools", func(t *testing.T) {
		for seed := int64(1); seed <= 20; seed++ {
			d := testDataset(1)
			op := testOp(d, 0, seed)

			entries, err := applyPersonalExpense(op)
			require.NoError(t, err)

			assert.Contains(t, op.Params.PersonalVendors, d.Transactions[0].Vendor)
			assert.Contains(t, op.Params.PersonalDescriptions, d.Transactions[0].Description)
			require.Len(t, entries, 1)
			assert.Contains(t, entries[0].Note, "Staples")
		}
	})

	t.Run("fails on empty pools without mutating", func(t *testing.T) {
		d := testDataset(1)
		op := testOp(d, 0, 1)
		op.Params.PersonalVendors = nil

		entries, err := applyPersonalExpense(op)
		assert.Error(t, err)
		assert.Nil(t, entries)
		assert.Equal(t, "Staples", d.Transactions[0].Vendor)
	})
}

func TestApplyBenfordViolation(t *testing.T) {
	tests := []struct {
		amount string
		lower  string
		upper  string
	}{
		{"4321.99", "9000.00", "10000.00"},
		{"100.00", "900.00", "1000.00"},
		{"45.50", "90.00", "100.00"},
		{"7.25", "9.00", "10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			lower := decimal.RequireFromString(tt.lower)
			upper := decimal.RequireFromString(tt.upper)

			for seed := int64(1); seed <= 20; seed++ {
				d := testDataset(1)
				d.Transactions[0].Amount = decimal.RequireFromString(tt.amount)

				entries, err := applyBenfordViolation(testOp(d, 0, seed))
				require.NoError(t, err)

				got := d.Transactions[0].Amount
				assert.True(t, got.GreaterThanOrEqual(lower),
					"seed %d: %s below magnitude floor %s", seed, got, lower)
				assert.True(t, got.LessThan(upper),
					"seed %d: %s must keep the original magnitude", seed, got)
				require.Len(t, entries, 1)
				assert.Contains(t, entries[0].Note, "leading digit 9")
			}
		})
	}
}

func TestApplySubtleSkimming(t *testing.T) {
	t.Run("deducts 1 to 5 percent", func(t *testing.T) {
		lower := decimal.RequireFromString("1.00")
		upper := decimal.RequireFromString("5.00")

		for seed := int64(1); seed <= 50; seed++ {
			d := testDataset(1)
			d.Transactions[0].Amount = decimal.RequireFromString("100.00")

			entries, err := applySubtleSkimming(testOp(d, 0, seed))
			require.NoError(t, err)

			deduction := decimal.RequireFromString("100.00").Sub(d.Transactions[0].Amount)
			assert.True(t, deduction.GreaterThanOrEqual(lower), "seed %d: deducted %s", seed, deduction)
			assert.True(t, deduction.LessThanOrEqual(upper), "seed %d: deducted %s", seed, deduction)
			require.Len(t, entries, 1)
			assert.Contains(t, entries[0].Note, deduction.StringFixed(2))
		}
	})

	t.Run("refuses amounts too small to skim", func(t *testing.T) {
		d := testDataset(1)
		d.Transactions[0].Amount = decimal.RequireFromString("0.04")

		entries, err := applySubtleSkimming(testOp(d, 0, 1))
		assert.Error(t, err)
		assert.Nil(t, entries)
		assert.Equal(t, "0.04", d.Transactions[0].Amount.StringFixed(2))
	})
}

func TestApplySeasonalAnomaly(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		d := testDataset(1)
		d.Transactions[0].Date = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

		entries, err := applySeasonalAnomaly(testOp(d, 0, seed))
		require.NoError(t, err)

		got := d.Transactions[0].Date
		months := (got.Year()-2024)*12 + int(got.Month()) - int(time.January)
		assert.GreaterOrEqual(t, months, 5, "seed %d: moved to %s", seed, got)
		assert.LessOrEqual(t, months, 7, "seed %d: moved to %s", seed, got)

		wantDay := 31
		if last := daysInMonth(got.Year(), got.Month()); last < wantDay {
			wantDay = last
		}
		assert.Equal(t, wantDay, got.Day(), "seed %d: day clamps to month length", seed)
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Note, "out-of-season")
	}
}

func TestApplyRoundNumberBias(t *testing.T) {
	hundred := decimal.New(1, 2)

	for seed := int64(1); seed <= 50; seed++ {
		d := testDataset(1)
		old := d.Transactions[0].Amount

		entries, err := applyRoundNumberBias(testOp(d, 0, seed))
		require.NoError(t, err)

		got := d.Transactions[0].Amount
		assert.True(t, got.Mod(hundred).IsZero(),
			"seed %d: %s must be a multiple of 100", seed, got)
		assert.False(t, got.IsZero(), "seed %d", seed)
		assert.False(t, got.Equal(old), "seed %d: amount must change", seed)
		require.Len(t, entries, 1)
		assert.Equal(t, string(KindRoundNumberBias), entries[0].Kind)
	}
}
