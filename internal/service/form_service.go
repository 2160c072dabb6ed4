package service

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/parisxmas/sitesurvey/internal/models"
)

type FormService struct {
	form models.Form
}

func NewFormService() *FormService {
	return &FormService{form: models.SurveyForm()}
}

func (s *FormService) Form() models.Form {
	return s.form
}

func (s *FormService) Fields() []models.FieldDefinition {
	return s.form.Fields
}

// Defaults returns the record an untouched form represents.
func (s *FormService) Defaults() models.Record {
	var rec models.Record
	for _, f := range s.form.Fields {
		rec.Set(f.Column, f.Default())
	}
	return rec
}

// Candidate builds a record from submitted control values. Select and number
// controls cannot hold an invalid value, so unknown options fall back to the
// field default and durations are clamped to the control's range.
func (s *FormService) Candidate(values url.Values) models.Record {
	var rec models.Record
	for _, f := range s.form.Fields {
		raw := values.Get(f.Name)
		switch f.Type {
		case models.ControlSelect:
			if !f.HasOption(raw) {
				raw = f.Default()
			}
		case models.ControlNumber:
			raw = strconv.Itoa(clampInt(raw, f))
		}
		rec.Set(f.Column, raw)
	}
	return rec
}

// Normalize applies the same control rules to a record received as JSON.
func (s *FormService) Normalize(rec models.Record) models.Record {
	values := url.Values{}
	for _, f := range s.form.Fields {
		values.Set(f.Name, rec.Value(f.Column))
	}
	return s.Candidate(values)
}

func clampInt(raw string, f models.FieldDefinition) int {
	lo, hi := models.MinDuration, models.MaxDuration
	if f.Min != nil {
		lo = *f.Min
	}
	if f.Max != nil {
		hi = *f.Max
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return lo
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
