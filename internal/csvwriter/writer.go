// =============================================================================
// Fake Transaction Generator - CSV Writer
// =============================================================================
//
// This module serializes the final dataset into the two tabular outputs:
//
//   1. Transactions: one row per transaction, in final sequence order.
//      Baseline rows keep their date order; duplicates appended during
//      injection stay at the position they were created.
//   2. Irregularities: the ground-truth log, one row per irregularity
//      application, in application order.
//
// The writers never reorder rows. Downstream consumers rely on row order to
// match the in-memory sequence the engine produced.
//
// =============================================================================

package csvwriter

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ginjaninja78/fake-transaction-generator/internal/types"
)

// Column layouts for the two outputs.
var (
	TransactionHeader  = []string{"Transaction ID", "Date", "Type", "Amount", "Account", "Description", "Vendor"}
	IrregularityHeader = []string{"Transaction ID", "Irregularity Type", "Description"}
)

// WriteTransactions writes the transaction rows to a CSV file at path.
//
// PARAMETERS:
//   - path: The output file path. An existing file is overwritten.
//   - transactions: The final sequence, written in order.
//
// RETURNS:
//   - An error if the file cannot be created or written.
func WriteTransactions(path string, transactions []types.Transaction) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create transactions file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(TransactionHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range transactions {
		tx := &transactions[i]
		record := []string{
			tx.ID,
			tx.DateString(),
			string(tx.Type),
			tx.Amount.StringFixed(2),
			tx.Account,
			tx.Description,
			tx.Vendor,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write transaction row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush transactions file: %w", err)
	}
	return nil
}

// WriteIrregularities writes the ground-truth log to a CSV file at path.
//
// PARAMETERS:
//   - path: The output file path. An existing file is overwritten.
//   - entries: Provenance entries in application order.
//
// RETURNS:
//   - An error if the file cannot be created or written.
func WriteIrregularities(path string, entries []types.ProvenanceEntry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create irregularities file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(IrregularityHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range entries {
		record := []string{
			entries[i].TransactionID,
			entries[i].Kind,
			entries[i].Note,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write irregularity row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush irregularities file: %w", err)
	}
	return nil
}
