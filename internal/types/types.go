// =============================================================================
// Fake Transaction Generator - Shared Types
// =============================================================================
//
// This package contains the shared data model used across multiple modules to
// avoid import cycles. Types defined here are used by:
//   - factory
//   - irregularity
//   - generator
//   - csvwriter / xlsxwriter
//
// =============================================================================

package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// TransactionType identifies how a transaction was generated.
// It is set once at creation and never changed by irregularities; injected
// anomalies layer on top of the base type tag.
type TransactionType string

const (
	// TypeRecurring marks transactions emitted from a recurring template
	// (one per calendar month on the template's day).
	TypeRecurring TransactionType = "recurring"

	// TypeRandom marks transactions with uniformly random dates and
	// Benford-distributed amounts.
	TypeRandom TransactionType = "random"
)

// Transaction is the central mutable entity of the dataset.
// Transactions are created once by the factory, pushed into an ordered
// sequence, and then visited zero or more times by the irregularity engine.
type Transaction struct {
	// ID is a unique identifier assigned at creation.
	// An empty ID is itself a valid irregular state ("missing id"), and a
	// duplication-style irregularity may introduce a derived near-duplicate.
	ID string

	// Date is the transaction date. Baseline transactions fall within the
	// configured [start_date, end_date] range; irregularities may
	// intentionally violate this (future-dated, out-of-season).
	//
	// Baseline dates carry no time-of-day component. Duplicates created by
	// the double-spend irregularity are offset by minutes, so DateString
	// renders them with a time component.
	Date time.Time

	// Type is the generation type tag (recurring or random).
	Type TransactionType

	// Amount is the transaction amount. Baseline amounts are positive and
	// Benford-distributed; irregularities may scale, round, or perturb it.
	Amount decimal.Decimal

	// Account is the account identifier, normally in the valid ACCT-#### form.
	// The wrong-account irregularity corrupts it to an invalid format.
	Account string

	// Description is free text, normally consistent with the transaction's
	// type and vendor. It may be deliberately mismatched.
	Description string

	// Vendor is the counterparty, drawn from the normal vendor pool or, for
	// the personal-expense irregularity, from the personal vendor pool.
	Vendor string
}

// DateString renders the transaction date for tabular output.
// Dates at midnight render date-only; dates carrying a time-of-day component
// (double-spend duplicates) render with minutes.
func (t *Transaction) DateString() string {
	if t.Date.Hour() == 0 && t.Date.Minute() == 0 && t.Date.Second() == 0 {
		return t.Date.Format("2006-01-02")
	}
	return t.Date.Format("2006-01-02 15:04")
}

// =============================================================================
// PROVENANCE TYPES
// =============================================================================

// ProvenanceEntry is an append-only record of one irregularity application.
// Entries reference transactions by the ID value captured at logging time,
// not by live reference, since IDs may later be cleared or duplicated.
type ProvenanceEntry struct {
	// TransactionID is the ID of the affected transaction at the time of
	// logging. It tolerates empty and duplicate IDs.
	TransactionID string

	// Kind is the irregularity kind identifier from the catalog.
	Kind string

	// Note is a human-readable description of exactly what was changed,
	// including old and new values where applicable.
	Note string
}

// =============================================================================
// DATASET
// =============================================================================

// Dataset holds the ordered transaction sequence and its provenance log.
// The irregularity engine owns it exclusively during injection; afterwards it
// is frozen and handed to the exporters, which never reorder it.
type Dataset struct {
	// Transactions is the ordered, appendable transaction sequence.
	// Baseline transactions come first in date order; duplicates created
	// during injection are appended to the tail.
	Transactions []Transaction

	// Irregularities is the provenance log, one entry per irregularity
	// application, in application order.
	Irregularities []ProvenanceEntry
}
