package codec

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"thonex/internal/ledger"
	"thonex/internal/log"
)

const (
	sheetTransactions = "Transactions"
	sheetBudgets      = "Budgets"
)

// ExportXLSX writes the ledger as a spreadsheet workbook: one sheet of
// transactions, one of budgets. Category ids are resolved to display
// names, dangling references included as "Unknown".
func (c *Codec) ExportXLSX(l *ledger.Ledger, w io.Writer) error {
	names := make(map[string]string)
	for _, cat := range l.Categories() {
		names[cat.ID] = cat.Name
	}
	categoryName := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return "Unknown"
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetTransactions); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetBudgets); err != nil {
		return fmt.Errorf("create budgets sheet: %w", err)
	}

	txnHeaders := []string{"Date", "Type", "Category", "Amount", "Note"}
	for i, h := range txnHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheetTransactions, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for i, txn := range l.Transactions() {
		row := i + 2
		values := []any{txn.Date, string(txn.Type), categoryName(txn.CategoryID), txn.Amount, txn.Note}
		for col, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			if err := f.SetCellValue(sheetTransactions, cell, v); err != nil {
				return fmt.Errorf("write transaction row %d: %w", row, err)
			}
		}
	}

	budgetHeaders := []string{"Month", "Category", "Limit"}
	for i, h := range budgetHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheetBudgets, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for i, b := range l.Budgets() {
		row := i + 2
		values := []any{b.Month, categoryName(b.CategoryID), b.Limit}
		for col, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			if err := f.SetCellValue(sheetBudgets, cell, v); err != nil {
				return fmt.Errorf("write budget row %d: %w", row, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	c.log.Info("workbook exported", log.FieldOperation, log.OpExport)
	return nil
}
