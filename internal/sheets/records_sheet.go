package sheets

import (
	"context"
	"fmt"
	"math"
	"strings"

	"pr_tracker/internal/app"
	"pr_tracker/internal/domain/record"

	"github.com/rs/zerolog/log"
)

// Column layout of a records sheet
const (
	colID = iota
	colDistance
	colTime
	colDate
	colPace
	colNotes
	recordColumns
)

// RecordsSheet exports personal records to, and reads them back from, a per-user sheet
type RecordsSheet struct {
	api SheetsAPI
}

// NewRecordsSheet creates a records sheet manager with the given API client
func NewRecordsSheet(api SheetsAPI) *RecordsSheet {
	return &RecordsSheet{
		api: api,
	}
}

// SheetName returns the standardized sheet name for a user
func (m *RecordsSheet) SheetName(user string) string {
	return fmt.Sprintf("Personal Records - %s", user)
}

// Headers returns the header row of a records sheet
func (m *RecordsSheet) Headers() [][]interface{} {
	return [][]interface{}{
		{"ID", "Distance (km)", "Time", "Date", "Pace (min/km)", "Notes"},
	}
}

// EnsureRecordsSheet creates the user's records sheet with headers if it doesn't exist
func (m *RecordsSheet) EnsureRecordsSheet(ctx context.Context, spreadsheetID, user string) (string, error) {
	sheetName := m.SheetName(user)

	exists, err := m.api.SheetExists(ctx, spreadsheetID, sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to check if records sheet exists: %w", err)
	}

	if !exists {
		log.Info().
			Str("sheet_name", sheetName).
			Str("user", user).
			Msg("Creating personal records sheet")

		if err := m.api.CreateSheet(ctx, spreadsheetID, sheetName); err != nil {
			return "", fmt.Errorf("failed to create records sheet: %w", err)
		}

		if err := m.api.UpdateRange(ctx, spreadsheetID, quoteRange(sheetName, "A1"), m.Headers()); err != nil {
			return "", fmt.Errorf("failed to write records headers: %w", err)
		}
	}

	return sheetName, nil
}

// WriteRecords replaces every data row of the sheet with records, in the given order
func (m *RecordsSheet) WriteRecords(ctx context.Context, spreadsheetID, sheetName string, records []app.PersonalRecord) error {
	if err := m.api.ClearRange(ctx, spreadsheetID, quoteRange(sheetName, "A2:F")); err != nil {
		return fmt.Errorf("failed to clear records data: %w", err)
	}

	if len(records) == 0 {
		log.Debug().
			Str("sheet_name", sheetName).
			Msg("No personal records to write")
		return nil
	}

	rows := m.ConvertRecordsToRows(records)

	if err := m.api.EnsureSheetCapacity(ctx, spreadsheetID, sheetName, len(rows)+1, recordColumns); err != nil {
		return fmt.Errorf("failed to ensure sheet capacity: %w", err)
	}

	if err := m.api.UpdateRange(ctx, spreadsheetID, quoteRange(sheetName, "A2"), rows); err != nil {
		return fmt.Errorf("failed to write records data: %w", err)
	}

	log.Info().
		Str("sheet_name", sheetName).
		Int("records", len(rows)).
		Msg("Wrote personal records to sheet")

	return nil
}

// ReadRecords parses the data rows of a records sheet.
// Blank rows are ignored; other rows without a numeric distance are skipped with a warning.
func (m *RecordsSheet) ReadRecords(ctx context.Context, spreadsheetID, sheetName string) ([]app.PersonalRecord, error) {
	values, err := m.api.ReadSheet(ctx, spreadsheetID, quoteRange(sheetName, "A2:F"))
	if err != nil {
		return nil, fmt.Errorf("failed to read records sheet: %w", err)
	}

	var records []app.PersonalRecord
	skipped := 0
	for _, row := range values {
		if isBlankRow(row) {
			continue
		}
		r, ok := m.ParseRecordRow(row)
		if !ok {
			skipped++
			continue
		}
		records = append(records, r)
	}

	if skipped > 0 {
		log.Warn().
			Str("sheet_name", sheetName).
			Int("skipped_rows", skipped).
			Msg("Skipped sheet rows without a usable distance")
	}

	return records, nil
}

// ConvertRecordsToRows converts records into sheet rows
func (m *RecordsSheet) ConvertRecordsToRows(records []app.PersonalRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.ID,
			r.Distance,
			// apostrophe keeps Sheets from turning durations into time-of-day values
			"'" + r.Time,
			r.Date,
			formatPace(record.Pace(r)),
			r.Notes,
		})
	}
	return rows
}

// ParseRecordRow converts a sheet row back into a record
func (m *RecordsSheet) ParseRecordRow(row []interface{}) (app.PersonalRecord, bool) {
	distance := CellAt(row, colDistance).Float64()
	if math.IsNaN(distance) {
		return app.PersonalRecord{}, false
	}

	return app.PersonalRecord{
		ID:       strings.TrimSpace(CellAt(row, colID).String()),
		Distance: distance,
		Time:     strings.TrimPrefix(CellAt(row, colTime).String(), "'"),
		Date:     CellAt(row, colDate).String(),
		Notes:    CellAt(row, colNotes).String(),
	}, true
}

func isBlankRow(row []interface{}) bool {
	for i := 0; i < recordColumns; i++ {
		if !CellAt(row, i).IsEmpty() {
			return false
		}
	}
	return true
}

func formatPace(secondsPerKm float64) string {
	if math.IsNaN(secondsPerKm) || math.IsInf(secondsPerKm, 0) {
		return ""
	}
	return "'" + record.FormatDuration(secondsPerKm)
}

func quoteRange(sheetName, cells string) string {
	return fmt.Sprintf("'%s'!%s", sheetName, cells)
}
