package service

import (
	"context"
	"errors"

	"github.com/parisxmas/sitesurvey/internal/models"
)

var ErrUnknownField = errors.New("field cannot be summarised")

// SummaryColumns are the columns with a fixed option set.
var SummaryColumns = []string{
	models.ColWorkType,
	models.ColMaterialQuality,
	models.ColDeadlineCompliance,
	models.ColSiteSafety,
	models.ColSiteCleanliness,
}

type SummaryService struct {
	store ResponseStore
}

func NewSummaryService(store ResponseStore) *SummaryService {
	return &SummaryService{store: store}
}

// ResolveColumn maps a request parameter (column header or form field name)
// to a summarisable column. An empty name selects Material quality.
func ResolveColumn(name string) (string, error) {
	if name == "" {
		return models.ColMaterialQuality, nil
	}
	for _, f := range models.SurveyFields() {
		if name != f.Column && name != f.Name {
			continue
		}
		for _, c := range SummaryColumns {
			if c == f.Column {
				return c, nil
			}
		}
	}
	return "", ErrUnknownField
}

// Summarize reloads the store and counts responses per value of column.
func (s *SummaryService) Summarize(ctx context.Context, column string) (*models.Summary, error) {
	col, err := ResolveColumn(column)
	if err != nil {
		return nil, err
	}
	return models.CountBy(s.store.Load(ctx), col), nil
}

// Dashboard holds the grouped counts of every summarisable column.
type Dashboard struct {
	Total     int                        `json:"total"`
	Summaries map[string]*models.Summary `json:"summaries"`
}

func (s *SummaryService) Dashboard(ctx context.Context) *Dashboard {
	t := s.store.Load(ctx)
	d := &Dashboard{Total: t.Len(), Summaries: make(map[string]*models.Summary, len(SummaryColumns))}
	for _, c := range SummaryColumns {
		d.Summaries[c] = models.CountBy(t, c)
	}
	return d
}
