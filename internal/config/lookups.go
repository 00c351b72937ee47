package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"gradecli/pkg/contracts/domain"
)

// SubjectMapping maps a qualification type to the subject names accepted for
// one category under that qualification.
type SubjectMapping map[string][]string

// SheetTitles names the workbook sheet holding each raw table kind.
type SheetTitles struct {
	Completed string `yaml:"completed" validate:"required"`
	Predicted string `yaml:"predicted" validate:"required"`
	Results   string `yaml:"results" validate:"required"`
}

// Lookups is the serialized form of the lookup tables.
type Lookups struct {
	CompletedExams   []string       `yaml:"completed_exams" validate:"required,min=1,dive,required"`
	ExamResultLevels []string       `yaml:"exam_result_levels" validate:"required,min=1,dive,required"`
	DetailMarkers    []string       `yaml:"detail_markers" validate:"dive,required"`
	Math             SubjectMapping `yaml:"math" validate:"required,min=1"`
	Physics          SubjectMapping `yaml:"physics" validate:"required,min=1"`
	FurtherMath      SubjectMapping `yaml:"further_math" validate:"required,min=1"`
	Sheets           SheetTitles    `yaml:"sheets"`
}

// LookupTables is the compiled, read-only form of Lookups. It is safe for
// concurrent use.
type LookupTables struct {
	completedExams   map[string]struct{}
	examResultLevels map[string]struct{}
	detailMarkers    map[string]struct{}
	mappings         map[domain.Category]map[string]map[string]struct{}
	sheets           SheetTitles
}

// Compile turns the lookup lists into set form.
func (l Lookups) Compile() (*LookupTables, error) {
	sheets := l.Sheets
	if sheets == (SheetTitles{}) {
		sheets = DefaultSheetTitles()
	}
	if err := sheets.validate(); err != nil {
		return nil, err
	}

	return &LookupTables{
		completedExams:   toSet(l.CompletedExams),
		examResultLevels: toSet(l.ExamResultLevels),
		detailMarkers:    toSet(l.DetailMarkers),
		mappings: map[domain.Category]map[string]map[string]struct{}{
			domain.CategoryMath:        compileMapping(l.Math),
			domain.CategoryPhysics:     compileMapping(l.Physics),
			domain.CategoryFurtherMath: compileMapping(l.FurtherMath),
		},
		sheets: sheets,
	}, nil
}

// MustCompile is like Compile but panics on error. Use it for tables known
// to be valid, such as DefaultLookups.
func (l Lookups) MustCompile() *LookupTables {
	tables, err := l.Compile()
	if err != nil {
		panic(fmt.Sprintf("invalid lookup tables: %v", err))
	}
	return tables
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func compileMapping(m SubjectMapping) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{}, len(m))
	for qualification, subjects := range m {
		out[qualification] = toSet(subjects)
	}
	return out
}

// IsCompletedExam reports whether exam is an accepted completed qualification.
func (t *LookupTables) IsCompletedExam(exam string) bool {
	_, ok := t.completedExams[exam]
	return ok
}

// IsExamResultLevel reports whether level is an accepted exam results level.
func (t *LookupTables) IsExamResultLevel(level string) bool {
	_, ok := t.examResultLevels[level]
	return ok
}

// IsDetailMarker reports whether a date cell marks a multi-module block.
func (t *LookupTables) IsDetailMarker(date string) bool {
	_, ok := t.detailMarkers[date]
	return ok
}

// Accepts reports whether subject belongs to category under qualification.
// The additional category accepts nothing; it is the fallback.
func (t *LookupTables) Accepts(category domain.Category, qualification, subject string) bool {
	subjects, ok := t.mappings[category][qualification]
	if !ok {
		return false
	}
	_, ok = subjects[subject]
	return ok
}

// Sheets returns the sheet titles for the three table kinds.
func (t *LookupTables) Sheets() SheetTitles {
	return t.sheets
}

// SheetTitle returns the sheet title for kind.
func (s SheetTitles) SheetTitle(kind domain.Kind) string {
	switch kind {
	case domain.KindCompleted:
		return s.Completed
	case domain.KindPredicted:
		return s.Predicted
	case domain.KindResults:
		return s.Results
	}
	return ""
}

// validate checks the titles against the workbook's sheet naming rules. Names
// compare case-insensitively, as they do in a workbook.
func (s SheetTitles) validate() error {
	titles := []string{s.Completed, s.Predicted, s.Results}
	for i, title := range titles {
		if err := checkSheetTitle(title); err != nil {
			return fmt.Errorf("sheet title %q: %w", title, err)
		}
		if strings.EqualFold(title, CompiledSheetTitle) {
			return fmt.Errorf("sheet title %q is reserved for the summary sheet", title)
		}
		for _, other := range titles[:i] {
			if strings.EqualFold(title, other) {
				return fmt.Errorf("sheet titles must be distinct: %+v", s)
			}
		}
	}
	return nil
}

func checkSheetTitle(title string) error {
	switch {
	case title == "":
		return excelize.ErrSheetNameBlank
	case utf8.RuneCountInString(title) > excelize.MaxSheetNameLength:
		return excelize.ErrSheetNameLength
	case strings.HasPrefix(title, "'") || strings.HasSuffix(title, "'"):
		return excelize.ErrSheetNameSingleQuote
	case strings.ContainsAny(title, `:\/?*[]`):
		return excelize.ErrSheetNameInvalid
	}
	return nil
}

// DefaultSheetTitles returns the table titles used on admissions transcripts.
func DefaultSheetTitles() SheetTitles {
	return SheetTitles{
		Completed: "Completed Qualifications",
		Predicted: "Predicted Grades",
		Results:   "Exam Results",
	}
}

// DefaultLookups returns the built-in lookup tables.
func DefaultLookups() Lookups {
	return Lookups{
		CompletedExams: []string{
			"A-Level",
			"GCE Advanced Level",
			"AS-Level",
			"GCE Advanced Subsidiary",
			"Scottish Advanced Higher",
			"International Baccalaureate Diploma",
			"Cambridge Pre-U",
		},
		ExamResultLevels: []string{
			"A-Level",
			"GCE Advanced Level",
			"AS-Level",
			"Advanced Higher",
			"IB Higher Level",
			"IB Standard Level",
		},
		DetailMarkers: []string{
			"See module details",
			"Module details",
			"Details of modules",
		},
		Math: SubjectMapping{
			"A-Level":                             {"Mathematics", "Maths", "Mathematics (MEI)"},
			"GCE Advanced Level":                  {"Mathematics", "Mathematics (MEI)"},
			"Scottish Advanced Higher":            {"Mathematics"},
			"Advanced Higher":                     {"Mathematics"},
			"International Baccalaureate Diploma": {"Mathematics: Analysis and Approaches", "Mathematics HL"},
			"IB Higher Level":                     {"Mathematics: Analysis and Approaches", "Mathematics"},
			"Cambridge Pre-U":                     {"Mathematics"},
		},
		Physics: SubjectMapping{
			"A-Level":                             {"Physics", "Physics A", "Physics B"},
			"GCE Advanced Level":                  {"Physics", "Physics A", "Physics B"},
			"Scottish Advanced Higher":            {"Physics"},
			"Advanced Higher":                     {"Physics"},
			"International Baccalaureate Diploma": {"Physics", "Physics HL"},
			"IB Higher Level":                     {"Physics"},
			"Cambridge Pre-U":                     {"Physics"},
		},
		FurtherMath: SubjectMapping{
			"A-Level":            {"Further Mathematics", "Further Maths", "Further Mathematics (MEI)"},
			"GCE Advanced Level": {"Further Mathematics", "Further Mathematics (MEI)"},
			"AS-Level":           {"Further Mathematics"},
			"Cambridge Pre-U":    {"Further Mathematics"},
		},
		Sheets: DefaultSheetTitles(),
	}
}
