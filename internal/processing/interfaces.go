package processing

import (
	"context"

	"pr_tracker/internal/app"
)

// RecordSource is the personal record store the exports read from and imports write to
type RecordSource interface {
	Records() []app.PersonalRecord
	View() []app.PersonalRecord
	Filter() *string
	Sort() *app.SortConfig
	Import(records []app.PersonalRecord) int
}

// RecordsSheetWriter defines the sheets methods used by ExportService
type RecordsSheetWriter interface {
	EnsureRecordsSheet(ctx context.Context, spreadsheetID, user string) (string, error)
	WriteRecords(ctx context.Context, spreadsheetID, sheetName string, records []app.PersonalRecord) error
	ReadRecords(ctx context.Context, spreadsheetID, sheetName string) ([]app.PersonalRecord, error)
}

// RecordInserter defines the BigQuery methods used by ExportService
type RecordInserter interface {
	EnsureTable(ctx context.Context) error
	InsertRecords(ctx context.Context, user string, records []app.PersonalRecord) error
}

// SnapshotPublisher defines the publishing methods used by ExportService
type SnapshotPublisher interface {
	PublishJSON(filename string, payload any) error
	Disconnect() error
}
