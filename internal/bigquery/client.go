package bigquery

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"pr_tracker/internal/app"
	"pr_tracker/internal/domain/record"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Row is one exported personal record
type Row struct {
	User            string               `bigquery:"user"`
	RecordID        string               `bigquery:"record_id"`
	DistanceKm      float64              `bigquery:"distance_km"`
	Time            string               `bigquery:"time"`
	DurationSeconds bigquery.NullFloat64 `bigquery:"duration_seconds"`
	Date            string               `bigquery:"date"`
	Notes           string               `bigquery:"notes"`
	ExportedAt      time.Time            `bigquery:"exported_at"`
}

// NewRow converts a record into an export row.
// Unparsable times are exported as NULL durations rather than NaN.
func NewRow(user string, r app.PersonalRecord, exportedAt time.Time) Row {
	seconds := record.ParseDuration(r.Time)
	return Row{
		User:       user,
		RecordID:   r.ID,
		DistanceKm: r.Distance,
		Time:       r.Time,
		DurationSeconds: bigquery.NullFloat64{
			Float64: seconds,
			Valid:   !math.IsNaN(seconds),
		},
		Date:       r.Date,
		Notes:      r.Notes,
		ExportedAt: exportedAt.UTC(),
	}
}

// Client streams personal records into a BigQuery table
type Client struct {
	client  *bigquery.Client
	dataset string
	table   string
}

// NewClient creates a BigQuery client for the given project and destination table
func NewClient(ctx context.Context, projectID, credentialsFile, dataset, table string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bigquery client: %w", err)
	}

	return &Client{
		client:  client,
		dataset: dataset,
		table:   table,
	}, nil
}

// Close releases the underlying client
func (c *Client) Close() error {
	return c.client.Close()
}

// EnsureTable creates the destination table if it doesn't exist
func (c *Client) EnsureTable(ctx context.Context) error {
	table := c.client.Dataset(c.dataset).Table(c.table)

	_, err := table.Metadata(ctx)
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("failed to get table metadata: %w", err)
	}

	schema, err := bigquery.InferSchema(Row{})
	if err != nil {
		return fmt.Errorf("failed to infer row schema: %w", err)
	}

	log.Info().
		Str("dataset", c.dataset).
		Str("table", c.table).
		Msg("Creating personal records table")

	if err := table.Create(ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
		return fmt.Errorf("failed to create table %s.%s: %w", c.dataset, c.table, err)
	}
	return nil
}

// InsertRecords streams records into the table, using record IDs as insert IDs
func (c *Client) InsertRecords(ctx context.Context, user string, records []app.PersonalRecord) error {
	if len(records) == 0 {
		return nil
	}

	savers := Savers(user, records, time.Now())
	inserter := c.client.Dataset(c.dataset).Table(c.table).Inserter()
	if err := inserter.Put(ctx, savers); err != nil {
		return fmt.Errorf("failed to insert %d records: %w", len(savers), err)
	}

	log.Info().
		Str("table", c.dataset+"."+c.table).
		Int("records", len(savers)).
		Msg("Inserted personal records into BigQuery")
	return nil
}

// Savers builds the insert payload for records.
// Records without an ID get a blank insert ID, which disables de-duplication for that row.
func Savers(user string, records []app.PersonalRecord, exportedAt time.Time) []*bigquery.StructSaver {
	savers := make([]*bigquery.StructSaver, 0, len(records))
	for _, r := range records {
		row := NewRow(user, r, exportedAt)
		savers = append(savers, &bigquery.StructSaver{
			Struct:   row,
			InsertID: r.ID,
		})
	}
	return savers
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
