package sheets

import (
	"context"
	"strconv"
	"strings"
	"unicode"
)

// MockSheetsAPI implements SheetsAPI for testing.
// Each sheet is kept as a grid of rows starting at row 1.
type MockSheetsAPI struct {
	sheets          map[string]bool            // Track which sheets exist
	data            map[string][][]interface{} // Store sheet data
	shouldError     bool
	lastReadRange   string
	lastUpdateRange string
	lastUpdateData  [][]interface{}
	lastCapacity    [2]int
	clearCalls      int
}

func NewMockSheetsAPI() *MockSheetsAPI {
	return &MockSheetsAPI{
		sheets: make(map[string]bool),
		data:   make(map[string][][]interface{}),
	}
}

// splitRange returns the unquoted sheet name and the first row number of a range like 'Name'!A2:F
func splitRange(range_ string) (string, int) {
	sheetName, cells := range_, ""
	if exclamationIndex := strings.Index(range_, "!"); exclamationIndex != -1 {
		sheetName, cells = range_[:exclamationIndex], range_[exclamationIndex+1:]
	}
	sheetName = strings.Trim(sheetName, "'\"")

	if colon := strings.Index(cells, ":"); colon != -1 {
		cells = cells[:colon]
	}
	digits := strings.TrimLeftFunc(cells, unicode.IsLetter)
	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 {
		row = 1
	}
	return sheetName, row
}

func (m *MockSheetsAPI) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	if m.shouldError {
		return nil, &mockError{msg: "mock read error"}
	}
	m.lastReadRange = range_

	sheetName, row := splitRange(range_)
	grid := m.data[sheetName]
	if row-1 >= len(grid) {
		return [][]interface{}{}, nil
	}
	return grid[row-1:], nil
}

func (m *MockSheetsAPI) UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error {
	if m.shouldError {
		return &mockError{msg: "mock update error"}
	}
	m.lastUpdateRange = range_
	m.lastUpdateData = values

	sheetName, row := splitRange(range_)
	grid := m.data[sheetName]
	for len(grid) < row-1+len(values) {
		grid = append(grid, nil)
	}
	for i, v := range values {
		grid[row-1+i] = v
	}
	m.data[sheetName] = grid
	return nil
}

func (m *MockSheetsAPI) ClearRange(ctx context.Context, spreadsheetID, range_ string) error {
	if m.shouldError {
		return &mockError{msg: "mock clear error"}
	}
	m.clearCalls++

	sheetName, row := splitRange(range_)
	if grid, exists := m.data[sheetName]; exists && row-1 < len(grid) {
		m.data[sheetName] = grid[:row-1]
	}
	return nil
}

func (m *MockSheetsAPI) CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	if m.shouldError {
		return &mockError{msg: "mock create error"}
	}
	m.sheets[sheetName] = true
	return nil
}

func (m *MockSheetsAPI) SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error) {
	if m.shouldError {
		return false, &mockError{msg: "mock exists error"}
	}
	return m.sheets[sheetName], nil
}

func (m *MockSheetsAPI) EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error {
	if m.shouldError {
		return &mockError{msg: "mock capacity error"}
	}
	m.lastCapacity = [2]int{requiredRows, requiredCols}
	m.sheets[sheetName] = true
	return nil
}

func (m *MockSheetsAPI) SetError(shouldError bool) {
	m.shouldError = shouldError
}

func (m *MockSheetsAPI) GetSheetData(sheetName string) [][]interface{} {
	return m.data[sheetName]
}

func (m *MockSheetsAPI) SetSheetData(sheetName string, data [][]interface{}) {
	m.data[sheetName] = data
}

type mockError struct {
	msg string
}

func (e *mockError) Error() string {
	return e.msg
}
