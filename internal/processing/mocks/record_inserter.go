package mocks

import (
	"context"

	"pr_tracker/internal/app"
)

// MockRecordInserter is a test double for bigquery.Client
type MockRecordInserter struct {
	// Errors to return
	EnsureTableError   error
	InsertRecordsError error

	// Call tracking
	EnsureTableCalls   int
	InsertRecordsCalls int

	InsertRecordsCalledWith struct {
		User    string
		Records []app.PersonalRecord
	}
}

// NewMockRecordInserter creates a new mock inserter
func NewMockRecordInserter() *MockRecordInserter {
	return &MockRecordInserter{}
}

func (m *MockRecordInserter) EnsureTable(ctx context.Context) error {
	m.EnsureTableCalls++
	return m.EnsureTableError
}

func (m *MockRecordInserter) InsertRecords(ctx context.Context, user string, records []app.PersonalRecord) error {
	m.InsertRecordsCalls++
	m.InsertRecordsCalledWith.User = user
	m.InsertRecordsCalledWith.Records = records
	return m.InsertRecordsError
}
