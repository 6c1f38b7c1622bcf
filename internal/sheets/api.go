package sheets

import (
	"context"
)

// SheetsAPI is the subset of Google Sheets that RecordsSheet needs.
// Cell values cross it as [][]interface{}; wrap reads with CellAt for typed access.
type SheetsAPI interface {
	ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)
	UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
	ClearRange(ctx context.Context, spreadsheetID, range_ string) error
	CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error
	SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error)

	// EnsureSheetCapacity grows the grid to at least requiredRows x requiredCols
	EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error
}
