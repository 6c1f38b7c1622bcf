package main

import (
	"math"
	"strconv"

	"pr_tracker/internal/app"
	"pr_tracker/internal/domain/record"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderRecords formats records as a bordered table
func renderRecords(records []app.PersonalRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID,
			formatDistance(r.Distance),
			r.Time,
			r.Date,
			record.FormatDuration(record.Pace(r)),
			r.Notes,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "DISTANCE (KM)", "TIME", "DATE", "PACE (/KM)", "NOTES").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.Render()
}

func formatDistance(km float64) string {
	if math.IsNaN(km) {
		return "-"
	}
	return strconv.FormatFloat(km, 'f', -1, 64)
}
