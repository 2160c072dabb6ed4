package models

import (
	"strconv"
	"strings"
)

// Column headers of the results sheet, in storage order.
const (
	ColProjectName        = "Project name"
	ColLocation           = "Location"
	ColWorkType           = "Work type"
	ColDuration           = "Duration (months)"
	ColMaterialQuality    = "Material quality"
	ColDeadlineCompliance = "Deadline compliance"
	ColSiteSafety         = "Site safety"
	ColSiteCleanliness    = "Site cleanliness"
	ColComments           = "Comments"
)

const (
	MinDuration = 1
	MaxDuration = 120
)

var (
	WorkTypes      = []string{"Construction", "Rehabilitation", "Bridges/Roads", "Industrial building"}
	QualityLevels  = []string{"Very satisfactory", "Satisfactory", "Average", "Unsatisfactory"}
	DeadlineLevels = []string{"Yes", "Partial", "No"}
	SiteRatings    = []string{"Very good", "Good", "Average", "Poor"}
)

// Columns returns the canonical header row. The slice is a fresh copy.
func Columns() []string {
	return []string{
		ColProjectName,
		ColLocation,
		ColWorkType,
		ColDuration,
		ColMaterialQuality,
		ColDeadlineCompliance,
		ColSiteSafety,
		ColSiteCleanliness,
		ColComments,
	}
}

// Record is one survey response, i.e. one row of the results sheet.
type Record struct {
	ProjectName        string `json:"projectName"`
	Location           string `json:"location"`
	WorkType           string `json:"workType"`
	DurationMonths     int    `json:"durationMonths"`
	MaterialQuality    string `json:"materialQuality"`
	DeadlineCompliance string `json:"deadlineCompliance"`
	SiteSafety         string `json:"siteSafety"`
	SiteCleanliness    string `json:"siteCleanliness"`
	Comments           string `json:"comments"`
}

// Row returns the record's cells in column order.
func (r Record) Row() []any {
	return []any{
		r.ProjectName,
		r.Location,
		r.WorkType,
		r.DurationMonths,
		r.MaterialQuality,
		r.DeadlineCompliance,
		r.SiteSafety,
		r.SiteCleanliness,
		r.Comments,
	}
}

// Value returns the text of the named column, or "" for an unknown column.
func (r Record) Value(column string) string {
	switch column {
	case ColProjectName:
		return r.ProjectName
	case ColLocation:
		return r.Location
	case ColWorkType:
		return r.WorkType
	case ColDuration:
		return strconv.Itoa(r.DurationMonths)
	case ColMaterialQuality:
		return r.MaterialQuality
	case ColDeadlineCompliance:
		return r.DeadlineCompliance
	case ColSiteSafety:
		return r.SiteSafety
	case ColSiteCleanliness:
		return r.SiteCleanliness
	case ColComments:
		return r.Comments
	}
	return ""
}

// Set assigns the named column from its stored text. Unknown columns are ignored
// and a duration that does not parse is stored as 0.
func (r *Record) Set(column, value string) {
	switch column {
	case ColProjectName:
		r.ProjectName = value
	case ColLocation:
		r.Location = value
	case ColWorkType:
		r.WorkType = value
	case ColDuration:
		r.DurationMonths = parseDuration(value)
	case ColMaterialQuality:
		r.MaterialQuality = value
	case ColDeadlineCompliance:
		r.DeadlineCompliance = value
	case ColSiteSafety:
		r.SiteSafety = value
	case ColSiteCleanliness:
		r.SiteCleanliness = value
	case ColComments:
		r.Comments = value
	}
}

func parseDuration(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Spreadsheet editors may save whole numbers as "6.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// Table is the in-memory view of the results sheet.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}

// EmptyTable returns a table with the canonical header and no rows.
func EmptyTable() *Table {
	return &Table{Columns: Columns(), Rows: []Record{}}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Last returns the most recently appended record.
func (t *Table) Last() (Record, bool) {
	if len(t.Rows) == 0 {
		return Record{}, false
	}
	return t.Rows[len(t.Rows)-1], true
}
