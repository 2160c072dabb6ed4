package models

// Control types understood by the page template.
const (
	ControlText     = "text"
	ControlTextarea = "textarea"
	ControlNumber   = "number"
	ControlSelect   = "select"
)

// FieldDefinition describes one form control bound to a results column.
type FieldDefinition struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Column      string   `json:"column"`
	Type        string   `json:"type"`
	Section     string   `json:"section"`
	Required    bool     `json:"required,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
	Min         *int     `json:"min,omitempty"`
	Max         *int     `json:"max,omitempty"`
	MaxLength   int      `json:"maxLength,omitempty"`
}

// Default is the value a fresh control shows.
func (f FieldDefinition) Default() string {
	switch {
	case len(f.Options) > 0:
		return f.Options[0]
	case f.Min != nil:
		return itoa(*f.Min)
	}
	return ""
}

// HasOption reports whether v is one of the select options.
func (f FieldDefinition) HasOption(v string) bool {
	for _, o := range f.Options {
		if o == v {
			return true
		}
	}
	return false
}

// Form is the survey as presented to respondents.
type Form struct {
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Fields      []FieldDefinition `json:"fields"`
}

const (
	SectionProject    = "Project information"
	SectionEvaluation = "Evaluation"
)

// SurveyFields returns the control definitions in column order.
func SurveyFields() []FieldDefinition {
	minD, maxD := MinDuration, MaxDuration
	return []FieldDefinition{
		{Name: "projectName", Label: "Project name", Column: ColProjectName, Type: ControlText, Section: SectionProject, Required: true, MaxLength: MaxTextLength},
		{Name: "location", Label: "Location / site", Column: ColLocation, Type: ControlText, Section: SectionProject, Required: true, MaxLength: MaxTextLength},
		{Name: "workType", Label: "Work type", Column: ColWorkType, Type: ControlSelect, Section: SectionProject, Options: clone(WorkTypes)},
		{Name: "durationMonths", Label: "Work duration (months)", Column: ColDuration, Type: ControlNumber, Section: SectionProject, Min: &minD, Max: &maxD},
		{Name: "materialQuality", Label: "Material quality", Column: ColMaterialQuality, Type: ControlSelect, Section: SectionEvaluation, Options: clone(QualityLevels)},
		{Name: "deadlineCompliance", Label: "Deadline compliance", Column: ColDeadlineCompliance, Type: ControlSelect, Section: SectionEvaluation, Options: clone(DeadlineLevels)},
		{Name: "siteSafety", Label: "Site safety", Column: ColSiteSafety, Type: ControlSelect, Section: SectionEvaluation, Options: clone(SiteRatings)},
		{Name: "siteCleanliness", Label: "Site cleanliness", Column: ColSiteCleanliness, Type: ControlSelect, Section: SectionEvaluation, Options: clone(SiteRatings)},
		{Name: "comments", Label: "Comments / suggestions", Column: ColComments, Type: ControlTextarea, Section: SectionEvaluation, MaxLength: MaxTextLength},
	}
}

// SurveyForm returns the complete survey definition.
func SurveyForm() Form {
	return Form{
		Name:        "site-survey",
		Title:       "Civil Engineering Survey",
		Description: "Thank you for filling in this form to help us improve our projects.",
		Fields:      SurveyFields(),
	}
}

// FieldByColumn looks up a definition by its results column.
func FieldByColumn(column string) (FieldDefinition, bool) {
	for _, f := range SurveyFields() {
		if f.Column == column {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
