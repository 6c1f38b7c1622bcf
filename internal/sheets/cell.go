package sheets

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cell wraps one value read back from a records sheet
type Cell struct {
	raw interface{}
}

// NewCell wraps a raw Sheets value
func NewCell(raw interface{}) Cell {
	return Cell{raw: raw}
}

// CellAt returns the cell at index i of a row, or an empty cell past the row's end.
// Sheets omits trailing empty cells, so short rows are normal.
func CellAt(row []interface{}, i int) Cell {
	if i < 0 || i >= len(row) {
		return Cell{}
	}
	return NewCell(row[i])
}

// String returns the cell value as a string
func (c Cell) String() string {
	if c.raw == nil {
		return ""
	}
	if s, ok := c.raw.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", c.raw)
}

// Float64 returns the cell value as a float64, or NaN when it is empty or not numeric
func (c Cell) Float64() float64 {
	switch v := c.raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		// USER_ENTERED values may come back formatted, e.g. "1,000.5"
		if f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", ""), 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

// IsEmpty returns true if the cell contains nil or empty string
func (c Cell) IsEmpty() bool {
	return c.raw == nil || c.raw == ""
}
