package export

import (
	"bytes"
	"fmt"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

const transactionsSheet = "Transactions"

// TransactionsXLSX renders the same columns as TransactionsCSV into a workbook.
// Totals are written as numbers so spreadsheet sums work.
func TransactionsXLSX(txns []domain.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), transactionsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range TransactionColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(transactionsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header %s: %w", h, err)
		}
	}

	totalIdx := len(TransactionColumns) - 2 // "total"
	for r, t := range txns {
		row := r + 2
		for c, value := range TransactionRecord(t) {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			var v any = value
			if c == totalIdx {
				v = t.Total.InexactFloat64()
			}
			if err := f.SetCellValue(transactionsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
