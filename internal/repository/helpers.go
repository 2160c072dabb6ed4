package repository

import (
	"strings"

	"github.com/parisxmas/sitesurvey/internal/models"
)

// tableFromRows converts raw sheet rows (header first) into a table. Columns
// are matched by header text so a reordered sheet still reads correctly.
func tableFromRows(rows [][]string) *models.Table {
	t := &models.Table{Columns: []string{}, Rows: []models.Record{}}
	if len(rows) == 0 {
		return t
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	t.Columns = header

	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		var rec models.Record
		for i, col := range header {
			if i < len(row) {
				rec.Set(col, row[i])
			}
		}
		t.Rows = append(t.Rows, rec)
	}
	return t
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// page returns rows[skip:skip+limit] clamped to the slice bounds.
func page(rows []models.Record, skip, limit int) []models.Record {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(rows) {
		return []models.Record{}
	}
	end := len(rows)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return rows[skip:end]
}
