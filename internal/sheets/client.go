package sheets

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client is the SheetsAPI backed by the Google Sheets v4 service
type Client struct {
	service *sheets.Service
}

// NewClient authenticates with a service account credentials file
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// ReadSheet returns the values in an A1 range, e.g. 'Personal Records - bob'!A2:F
func (c *Client) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, range_).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	return resp.Values, nil
}

// UpdateRange writes values starting at range_. Values are USER_ENTERED so a
// leading apostrophe keeps durations as text.
func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, range_, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update range: %w", err)
	}

	return nil
}

// ClearRange blanks the values in range_ without touching formatting
func (c *Client) ClearRange(ctx context.Context, spreadsheetID, range_ string) error {
	_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, range_, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to clear range: %w", err)
	}

	return nil
}

// CreateSheet adds a tab to the spreadsheet
func (c *Client) CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	req := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: sheetName,
			},
		},
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{req},
	}

	_, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetName, err)
	}

	return nil
}

// SheetExists reports whether a tab titled sheetName exists
func (c *Client) SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error) {
	sheet, err := c.findSheet(ctx, spreadsheetID, sheetName)
	if err != nil {
		return false, err
	}
	return sheet != nil, nil
}

// EnsureSheetCapacity grows the tab so a records export of requiredRows x requiredCols fits
func (c *Client) EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error {
	targetSheet, err := c.findSheet(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	if targetSheet == nil {
		return fmt.Errorf("sheet %s not found", sheetName)
	}

	newRows, newCols, needsResize := planCapacity(
		int(targetSheet.Properties.GridProperties.RowCount),
		int(targetSheet.Properties.GridProperties.ColumnCount),
		requiredRows,
		requiredCols,
	)
	if !needsResize {
		return nil
	}

	log.Debug().
		Str("sheet_name", sheetName).
		Int("required_rows", requiredRows).
		Int("required_cols", requiredCols).
		Int("new_rows", newRows).
		Int("new_cols", newCols).
		Msg("Growing records sheet")

	req := &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId: targetSheet.Properties.SheetId,
				GridProperties: &sheets.GridProperties{
					RowCount:    int64(newRows),
					ColumnCount: int64(newCols),
				},
			},
			Fields: "gridProperties.rowCount,gridProperties.columnCount",
		},
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{req},
	}

	_, err = c.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to resize sheet %s: %w", sheetName, err)
	}

	log.Info().
		Str("sheet_name", sheetName).
		Int("new_rows", newRows).
		Int("new_cols", newCols).
		Msg("Grew records sheet")

	return nil
}

// findSheet returns the tab titled sheetName, or nil when there is none
func (c *Client) findSheet(ctx context.Context, spreadsheetID, sheetName string) (*sheets.Sheet, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == sheetName {
			return sheet, nil
		}
	}
	return nil, nil
}

// planCapacity returns the grid size for a resize. Growth overshoots by
// 100 rows and 10 columns so consecutive exports rarely resize again.
func planCapacity(currentRows, currentCols, requiredRows, requiredCols int) (rows, cols int, resize bool) {
	rows, cols = currentRows, currentCols

	if requiredRows > currentRows {
		rows = requiredRows + 100
		resize = true
	}
	if requiredCols > currentCols {
		cols = requiredCols + 10
		resize = true
	}
	return rows, cols, resize
}
