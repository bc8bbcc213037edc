// =============================================================================
// Fake Transaction Generator - Transaction Factory
// =============================================================================
//
// This module builds the baseline transaction population before any
// irregularities are injected. Two sub-generators feed it:
//
//   1. Recurring: one transaction per calendar month for each configured
//      template, dated on the template's day (clamped in shorter months),
//      with a few percent of amount jitter so the series looks organic.
//   2. Random: uniformly dated transactions with Benford-distributed
//      amounts, drawn from the vendor pool.
//
// The combined population is stable-sorted by date, so the sequence handed
// to injection reads like a real ledger. Every generated transaction carries
// a UUID drawn from the run's random source, which keeps IDs reproducible
// for a fixed seed.
//
// =============================================================================

package factory

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/fake-transaction-generator/internal/benford"
	"github.com/ginjaninja78/fake-transaction-generator/internal/config"
	"github.com/ginjaninja78/fake-transaction-generator/internal/types"
)

// =============================================================================
// DESCRIPTION VOCABULARY
// =============================================================================

// paymentKinds and categories combine into the description of every random
// transaction, e.g. "Purchase - Office Supplies".
var (
	paymentKinds = []string{"Purchase", "Payment", "Transfer", "Deposit", "Withdrawal"}
	categories   = []string{"Office Supplies", "Equipment", "Services", "Miscellaneous"}
)

// =============================================================================
// FACTORY
// =============================================================================

// Factory produces the baseline dataset for one generation run.
type Factory struct {
	cfg *config.Config
	rng *rand.Rand
}

// New creates a factory over a validated configuration and the run's random
// source.
func New(cfg *config.Config, rng *rand.Rand) *Factory {
	return &Factory{cfg: cfg, rng: rng}
}

// Generate builds the baseline population: recurring occurrences first, then
// the random transactions, stable-sorted by date.
func (f *Factory) Generate() *types.Dataset {
	transactions := f.generateRecurring()
	transactions = append(transactions, f.generateRandom()...)

	// Stable sort keeps creation order among same-day transactions, so the
	// sequence is fully determined by the seed.
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})

	return &types.Dataset{Transactions: transactions}
}

// generateRecurring emits one occurrence per template per calendar month
// inside the configured range.
func (f *Factory) generateRecurring() []types.Transaction {
	var transactions []types.Transaction

	for _, template := range f.cfg.RecurringTransactions {
		base := decimal.NewFromFloat(template.Amount)

		month := time.Date(f.cfg.Start.Year(), f.cfg.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
		for !month.After(f.cfg.End) {
			day := template.Day
			if last := daysInMonth(month.Year(), month.Month()); day > last {
				day = last
			}
			date := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)
			month = month.AddDate(0, 1, 0)

			// Months whose occurrence lands outside the range produce
			// nothing, e.g. a day-10 template starting mid-January.
			if date.Before(f.cfg.Start) || date.After(f.cfg.End) {
				continue
			}

			// Jitter in [0.95, 1.05] with four decimal places.
			jitter := decimal.New(int64(9500+f.rng.Intn(1001)), -4)

			transactions = append(transactions, types.Transaction{
				ID:          f.newID(),
				Date:        date,
				Type:        types.TypeRecurring,
				Amount:      base.Mul(jitter).Round(2),
				Account:     f.newAccount(),
				Description: template.Description,
				Vendor:      template.Vendor,
			})
		}
	}

	return transactions
}

// generateRandom emits the configured number of uniformly dated transactions.
func (f *Factory) generateRandom() []types.Transaction {
	if f.cfg.NumTransactions <= 0 {
		return nil
	}

	rangeDays := int(f.cfg.End.Sub(f.cfg.Start).Hours() / 24)
	transactions := make([]types.Transaction, 0, f.cfg.NumTransactions)

	for i := 0; i < f.cfg.NumTransactions; i++ {
		date := f.cfg.Start.AddDate(0, 0, f.rng.Intn(rangeDays+1))
		kind := paymentKinds[f.rng.Intn(len(paymentKinds))]
		amount := benford.Sample(f.rng)
		account := f.newAccount()
		vendor := f.cfg.Vendors[f.rng.Intn(len(f.cfg.Vendors))]
		category := categories[f.rng.Intn(len(categories))]

		transactions = append(transactions, types.Transaction{
			ID:          f.newID(),
			Date:        date,
			Type:        types.TypeRandom,
			Amount:      amount,
			Account:     account,
			Description: fmt.Sprintf("%s - %s", kind, category),
			Vendor:      vendor,
		})
	}

	return transactions
}

// newID draws a UUID from the run's random source, keeping IDs reproducible
// under a fixed seed.
func (f *Factory) newID() string {
	return uuid.Must(uuid.NewRandomFromReader(f.rng)).String()
}

// newAccount draws a four-digit account in the valid ACCT-#### format.
func (f *Factory) newAccount() string {
	return fmt.Sprintf("ACCT-%04d", 1000+f.rng.Intn(9000))
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
