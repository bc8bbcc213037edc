// =============================================================================
// Fake Transaction Generator - XLSX Writer Module
// =============================================================================
//
// This module writes the generated dataset to a single Excel workbook with two
// sheets: one for the transaction sequence and one for the irregularity log.
// Cell content mirrors the CSV exporter column for column, so either format
// can serve as the labeled dataset.
//
// WORKBOOK STRUCTURE:
//   Transactions sheet:
//     Transaction ID | Date | Type | Amount | Account | Description | Vendor
//   Irregularities sheet:
//     Transaction ID | Irregularity Type | Description
//
// Rows are written in the order given and never reordered. The header row of
// each sheet is bold, and columns are sized to their widest cell.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/fake-transaction-generator/internal/csvwriter"
	"github.com/ginjaninja78/fake-transaction-generator/internal/types"
)

// Sheet names in the generated workbook.
const (
	TransactionsSheet   = "Transactions"
	IrregularitiesSheet = "Irregularities"
)

// maxColumnWidth caps auto-sizing so a long irregularity note does not
// stretch its column across the whole screen.
const maxColumnWidth = 60

// WriteWorkbook writes the dataset to a single XLSX workbook at path.
//
// PARAMETERS:
//   - path: Destination file path. The parent directory must already exist.
//   - d: The dataset to export.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func WriteWorkbook(path string, d *types.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the transactions sheet.
	if err := f.SetSheetName("Sheet1", TransactionsSheet); err != nil {
		return fmt.Errorf("failed to name transactions sheet: %w", err)
	}
	if _, err := f.NewSheet(IrregularitiesSheet); err != nil {
		return fmt.Errorf("failed to create irregularities sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	txRows := make([][]string, 0, len(d.Transactions)+1)
	txRows = append(txRows, csvwriter.TransactionHeader)
	for i := range d.Transactions {
		tx := &d.Transactions[i]
		txRows = append(txRows, []string{
			tx.ID,
			tx.DateString(),
			string(tx.Type),
			tx.Amount.StringFixed(2),
			tx.Account,
			tx.Description,
			tx.Vendor,
		})
	}
	if err := writeSheet(f, TransactionsSheet, txRows, headerStyle); err != nil {
		return err
	}

	irrRows := make([][]string, 0, len(d.Irregularities)+1)
	irrRows = append(irrRows, csvwriter.IrregularityHeader)
	for _, entry := range d.Irregularities {
		irrRows = append(irrRows, []string{entry.TransactionID, entry.Kind, entry.Note})
	}
	if err := writeSheet(f, IrregularitiesSheet, irrRows, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// writeSheet fills one sheet with rows, bolds the header, and sizes each
// column to its widest cell. rows always contains at least the header row.
func writeSheet(f *excelize.File, sheet string, rows [][]string, headerStyle int) error {
	widths := make([]float64, len(rows[0]))

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, value := range row {
			cells[j] = value
			if w := float64(len([]rune(value))); w > widths[j] {
				widths[j] = w
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d of sheet %s: %w", i+1, sheet, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return fmt.Errorf("failed to compute column name: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header of sheet %s: %w", sheet, err)
	}

	for j, width := range widths {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return fmt.Errorf("failed to compute column name: %w", err)
		}
		if width+2 > maxColumnWidth {
			width = maxColumnWidth - 2
		}
		if err := f.SetColWidth(sheet, col, col, width+2); err != nil {
			return fmt.Errorf("failed to size column %s of sheet %s: %w", col, sheet, err)
		}
	}

	return nil
}
