package mocks

import (
	"context"

	"pr_tracker/internal/app"
)

// MockRecordsSheet is a test double for sheets.RecordsSheet
type MockRecordsSheet struct {
	// Responses to return
	EnsureRecordsSheetResponse string
	ReadRecordsResponse        []app.PersonalRecord

	// Errors to return
	EnsureRecordsSheetError error
	WriteRecordsError       error
	ReadRecordsError        error

	// Call tracking
	EnsureRecordsSheetCalls int
	WriteRecordsCalls       int
	ReadRecordsCalls        int

	// Call parameters tracking
	EnsureRecordsSheetCalledWith struct {
		SpreadsheetID string
		User          string
	}
	WriteRecordsCalledWith struct {
		SpreadsheetID string
		SheetName     string
		Records       []app.PersonalRecord
	}
	ReadRecordsCalledWith struct {
		SpreadsheetID string
		SheetName     string
	}
}

// NewMockRecordsSheet creates a new mock records sheet
func NewMockRecordsSheet() *MockRecordsSheet {
	return &MockRecordsSheet{}
}

func (m *MockRecordsSheet) EnsureRecordsSheet(ctx context.Context, spreadsheetID, user string) (string, error) {
	m.EnsureRecordsSheetCalls++
	m.EnsureRecordsSheetCalledWith.SpreadsheetID = spreadsheetID
	m.EnsureRecordsSheetCalledWith.User = user
	if m.EnsureRecordsSheetError != nil {
		return "", m.EnsureRecordsSheetError
	}
	if m.EnsureRecordsSheetResponse == "" {
		return "Personal Records - " + user, nil
	}
	return m.EnsureRecordsSheetResponse, nil
}

func (m *MockRecordsSheet) WriteRecords(ctx context.Context, spreadsheetID, sheetName string, records []app.PersonalRecord) error {
	m.WriteRecordsCalls++
	m.WriteRecordsCalledWith.SpreadsheetID = spreadsheetID
	m.WriteRecordsCalledWith.SheetName = sheetName
	m.WriteRecordsCalledWith.Records = records
	return m.WriteRecordsError
}

func (m *MockRecordsSheet) ReadRecords(ctx context.Context, spreadsheetID, sheetName string) ([]app.PersonalRecord, error) {
	m.ReadRecordsCalls++
	m.ReadRecordsCalledWith.SpreadsheetID = spreadsheetID
	m.ReadRecordsCalledWith.SheetName = sheetName
	return m.ReadRecordsResponse, m.ReadRecordsError
}
