package models

import (
	"strings"
	"unicode/utf8"
)

// MaxTextLength is the most characters a spreadsheet cell holds.
const MaxTextLength = 32767

// ValidationError reports required fields that were left empty and text
// fields whose value cannot be stored in a spreadsheet cell unchanged.
type ValidationError struct {
	Fields  []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Fields) > 0 {
		parts = append(parts, "required field missing: "+strings.Join(e.Fields, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "text too long or contains unsupported characters: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

// Validate checks the presence of the required text fields and that every
// text value fits a cell as-is. The remaining fields always carry a value
// because their controls start on a valid option.
func Validate(r Record) error {
	var verr ValidationError
	if strings.TrimSpace(r.ProjectName) == "" {
		verr.Fields = append(verr.Fields, ColProjectName)
	}
	if strings.TrimSpace(r.Location) == "" {
		verr.Fields = append(verr.Fields, ColLocation)
	}
	for _, col := range Columns() {
		if col == ColDuration {
			continue
		}
		if !StorableText(r.Value(col)) {
			verr.Invalid = append(verr.Invalid, col)
		}
	}
	if len(verr.Fields) > 0 || len(verr.Invalid) > 0 {
		return &verr
	}
	return nil
}

// StorableText reports whether s survives a write to an xlsx cell: valid
// UTF-8, no characters XML 1.0 forbids, at most MaxTextLength characters.
func StorableText(s string) bool {
	if !utf8.ValidString(s) || utf8.RuneCountInString(s) > MaxTextLength {
		return false
	}
	for _, r := range s {
		if !xmlChar(r) {
			return false
		}
	}
	return true
}

func xmlChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}
