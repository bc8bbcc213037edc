package factory

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/fake-transaction-generator/internal/config"
	"github.com/ginjaninja78/fake-transaction-generator/internal/types"
)

// testConfig returns a validated config covering the given range.
func testConfig(t *testing.T, start, end string) *config.Config {
	t.Helper()
	cfg := &config.Config{
		StartDate:                   start,
		EndDate:                     end,
		Vendors:                     []string{"Acme Office Supply", "TechFlow Solutions"},
		PersonalVendors:             []string{"Luxury Resort & Spa"},
		PersonalExpenseDescriptions: []string{"Weekend Getaway"},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestGenerateRecurringOnePerMonth(t *testing.T) {
	cfg := testConfig(t, "2024-01-01", "2024-12-31")
	cfg.RecurringTransactions = []config.RecurringTemplate{
		{Vendor: "CloudHost Inc", Amount: 500, Day: 15, Description: "Monthly hosting"},
	}

	d := New(cfg, rand.New(rand.NewSource(1))).Generate()
	require.Len(t, d.Transactions, 12, "one occurrence per month")

	low := decimal.RequireFromString("475.00")
	high := decimal.RequireFromString("525.00")
	seen := map[time.Month]bool{}
	for _, tx := range d.Transactions {
		assert.Equal(t, types.TypeRecurring, tx.Type)
		assert.Equal(t, 15, tx.Date.Day())
		assert.Equal(t, "CloudHost Inc", tx.Vendor)
		assert.Equal(t, "Monthly hosting", tx.Description)
		assert.True(t, tx.Amount.GreaterThanOrEqual(low), "amount %s within -5%%", tx.Amount)
		assert.True(t, tx.Amount.LessThanOrEqual(high), "amount %s within +5%%", tx.Amount)
		assert.False(t, seen[tx.Date.Month()], "month %s emitted twice", tx.Date.Month())
		seen[tx.Date.Month()] = true
	}
}

func TestGenerateRecurringClampsShortMonths(t *testing.T) {
	cfg := testConfig(t, "2024-01-01", "2024-04-30")
	cfg.RecurringTransactions = []config.RecurringTemplate{
		{Vendor: "CloudHost Inc", Amount: 100, Day: 31, Description: "Monthly hosting"},
	}

	d := New(cfg, rand.New(rand.NewSource(2))).Generate()
	require.Len(t, d.Transactions, 4)

	days := map[time.Month]int{}
	for _, tx := range d.Transactions {
		days[tx.Date.Month()] = tx.Date.Day()
	}
	assert.Equal(t, 31, days[time.January])
	assert.Equal(t, 29, days[time.February], "2024 is a leap year")
	assert.Equal(t, 31, days[time.March])
	assert.Equal(t, 30, days[time.April])
}

func TestGenerateRecurringRespectsRangeBounds(t *testing.T) {
	cfg := testConfig(t, "2024-01-20", "2024-03-10")
	cfg.RecurringTransactions = []config.RecurringTemplate{
		{Vendor: "CloudHost Inc", Amount: 100, Day: 15, Description: "Monthly hosting"},
	}

	d := New(cfg, rand.New(rand.NewSource(3))).Generate()
	require.Len(t, d.Transactions, 1,
		"January's occurrence precedes the range, March's follows it")
	assert.Equal(t, time.February, d.Transactions[0].Date.Month())
}

func TestGenerateRandomTransactions(t *testing.T) {
	cfg := testConfig(t, "2024-01-01", "2024-12-31")
	cfg.NumTransactions = 200

	d := New(cfg, rand.New(rand.NewSource(4))).Generate()
	require.Len(t, d.Transactions, 200)

	accountPattern := regexp.MustCompile(`^ACCT-\d{4}$`)
	descPattern := regexp.MustCompile(
		`^(Purchase|Payment|Transfer|Deposit|Withdrawal) - (Office Supplies|Equipment|Services|Miscellaneous)$`)
	ids := map[string]bool{}

	for _, tx := range d.Transactions {
		assert.Equal(t, types.TypeRandom, tx.Type)
		assert.False(t, tx.Date.Before(cfg.Start), "date %s before range", tx.Date)
		assert.False(t, tx.Date.After(cfg.End), "date %s after range", tx.Date)
		assert.True(t, tx.Amount.IsPositive())
		assert.Regexp(t, accountPattern, tx.Account)
		assert.Regexp(t, descPattern, tx.Description)
		assert.Contains(t, cfg.Vendors, tx.Vendor)

		require.NotEmpty(t, tx.ID)
		assert.False(t, ids[tx.ID], "duplicate ID %s", tx.ID)
		ids[tx.ID] = true
	}
}

func TestGenerateSortsByDate(t *testing.T) {
	cfg := testConfig(t, "2024-01-01", "2024-12-31")
	cfg.NumTransactions = 100
	cfg.RecurringTransactions = []config.RecurringTemplate{
		{Vendor: "CloudHost Inc", Amount: 500, Day: 15, Description: "Monthly hosting"},
	}

	d := New(cfg, rand.New(rand.NewSource(5))).Generate()
	require.Len(t, d.Transactions, 112)

	for i := 1; i < len(d.Transactions); i++ {
		assert.False(t, d.Transactions[i].Date.Before(d.Transactions[i-1].Date),
			"sequence out of order at %d", i)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	build := func() *types.Dataset {
		cfg := testConfig(t, "2024-01-01", "2024-12-31")
		cfg.NumTransactions = 50
		cfg.RecurringTransactions = []config.RecurringTemplate{
			{Vendor: "CloudHost Inc", Amount: 500, Day: 15, Description: "Monthly hosting"},
		}
		return New(cfg, rand.New(rand.NewSource(42))).Generate()
	}

	first := build()
	second := build()

	require.Equal(t, len(first.Transactions), len(second.Transactions))
	for i := range first.Transactions {
		assert.Equal(t, first.Transactions[i].ID, second.Transactions[i].ID)
		assert.True(t, first.Transactions[i].Date.Equal(second.Transactions[i].Date))
		assert.True(t, first.Transactions[i].Amount.Equal(second.Transactions[i].Amount))
		assert.Equal(t, first.Transactions[i].Vendor, second.Transactions[i].Vendor)
	}
}

func TestGenerateEmptyConfig(t *testing.T) {
	cfg := testConfig(t, "2024-01-01", "2024-12-31")

	d := New(cfg, rand.New(rand.NewSource(6))).Generate()
	assert.Empty(t, d.Transactions)
	assert.Empty(t, d.Irregularities)
}
