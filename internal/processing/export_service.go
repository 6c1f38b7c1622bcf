package processing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pr_tracker/internal/app"
	"pr_tracker/internal/config"

	"github.com/rs/zerolog/log"
)

// Errors returned when an export runs without its collaborator
var (
	ErrSheetsNotConfigured     = errors.New("sheets export is not configured")
	ErrBigQueryNotConfigured   = errors.New("bigquery export is not configured")
	ErrPublishingNotConfigured = errors.New("snapshot publishing is not configured")
)

// ExportService moves personal records between the store and outward destinations
type ExportService struct {
	source     RecordSource
	user       string
	resilience config.ResilienceConfig
	now        func() time.Time

	sheets        RecordsSheetWriter
	spreadsheetID string
	inserter      RecordInserter
	publisher     SnapshotPublisher
}

// NewExportService creates an export service for one user's records
func NewExportService(source RecordSource, user string, resilience config.ResilienceConfig) *ExportService {
	return &ExportService{
		source:     source,
		user:       user,
		resilience: resilience,
		now:        time.Now,
	}
}

// WithSheets enables the Google Sheets export and import
func (s *ExportService) WithSheets(writer RecordsSheetWriter, spreadsheetID string) *ExportService {
	s.sheets = writer
	s.spreadsheetID = spreadsheetID
	return s
}

// WithInserter enables the BigQuery export
func (s *ExportService) WithInserter(inserter RecordInserter) *ExportService {
	s.inserter = inserter
	return s
}

// WithPublisher enables snapshot publishing
func (s *ExportService) WithPublisher(publisher SnapshotPublisher) *ExportService {
	s.publisher = publisher
	return s
}

// ExportToSheet writes the current derived view to the user's records sheet
func (s *ExportService) ExportToSheet(ctx context.Context) (int, error) {
	if s.sheets == nil {
		return 0, ErrSheetsNotConfigured
	}

	sheetName, err := s.ensureSheet(ctx)
	if err != nil {
		return 0, err
	}

	view := s.source.View()
	_, err = withRetry(ctx, "write_records_sheet", s.resilience.SheetWrite, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.sheets.WriteRecords(ctx, s.spreadsheetID, sheetName, view)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to write records sheet: %w", err)
	}

	log.Info().
		Str("user", s.user).
		Str("sheet_name", sheetName).
		Int("records", len(view)).
		Msg("Exported personal records to sheet")

	return len(view), nil
}

// ImportFromSheet reads the user's records sheet and imports every row into the store.
// Rows whose ID already exists are imported with a fresh ID.
func (s *ExportService) ImportFromSheet(ctx context.Context) (int, error) {
	if s.sheets == nil {
		return 0, ErrSheetsNotConfigured
	}

	sheetName, err := s.ensureSheet(ctx)
	if err != nil {
		return 0, err
	}

	rows, err := withRetry(ctx, "read_records_sheet", s.resilience.SheetRead, func(ctx context.Context) ([]app.PersonalRecord, error) {
		return s.sheets.ReadRecords(ctx, s.spreadsheetID, sheetName)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read records sheet: %w", err)
	}

	imported := s.source.Import(rows)

	log.Info().
		Str("user", s.user).
		Str("sheet_name", sheetName).
		Int("rows", len(rows)).
		Int("imported", imported).
		Msg("Imported personal records from sheet")

	return imported, nil
}

// ExportToBigQuery streams every stored record, regardless of filter, into BigQuery
func (s *ExportService) ExportToBigQuery(ctx context.Context) (int, error) {
	if s.inserter == nil {
		return 0, ErrBigQueryNotConfigured
	}

	_, err := withRetry(ctx, "ensure_bigquery_table", s.resilience.BigQueryInsert, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.inserter.EnsureTable(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to ensure bigquery table: %w", err)
	}

	all := s.source.Records()
	_, err = withRetry(ctx, "insert_bigquery_records", s.resilience.BigQueryInsert, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.inserter.InsertRecords(ctx, s.user, all)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert records into bigquery: %w", err)
	}

	return len(all), nil
}

// Snapshot builds the published document from the current derived view
func (s *ExportService) Snapshot() app.RecordsSnapshot {
	view := s.source.View()

	snapshot := app.RecordsSnapshot{
		User:    s.user,
		Updated: s.now().UTC().Format(time.RFC3339),
		Count:   len(view),
		Sort:    s.source.Sort(),
		Records: view,
	}
	if filter := s.source.Filter(); filter != nil {
		snapshot.Filter = *filter
	}
	return snapshot
}

// PublishSnapshot uploads the derived view as a JSON document named filename
func (s *ExportService) PublishSnapshot(ctx context.Context, filename string) (app.RecordsSnapshot, error) {
	if s.publisher == nil {
		return app.RecordsSnapshot{}, ErrPublishingNotConfigured
	}
	defer func() {
		if err := s.publisher.Disconnect(); err != nil {
			log.Warn().Err(err).Msg("Failed to close publish connection")
		}
	}()

	snapshot := s.Snapshot()
	_, err := withRetry(ctx, "publish_snapshot", s.resilience.Publish, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.publisher.PublishJSON(filename, snapshot)
	})
	if err != nil {
		return app.RecordsSnapshot{}, fmt.Errorf("failed to publish snapshot: %w", err)
	}

	log.Info().
		Str("user", s.user).
		Str("filename", filename).
		Int("records", snapshot.Count).
		Msg("Published personal records snapshot")

	return snapshot, nil
}

func (s *ExportService) ensureSheet(ctx context.Context) (string, error) {
	sheetName, err := withRetry(ctx, "ensure_records_sheet", s.resilience.SheetWrite, func(ctx context.Context) (string, error) {
		return s.sheets.EnsureRecordsSheet(ctx, s.spreadsheetID, s.user)
	})
	if err != nil {
		return "", fmt.Errorf("failed to ensure records sheet: %w", err)
	}
	return sheetName, nil
}
