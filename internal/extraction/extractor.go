package extraction

import (
	"fmt"
	"log/slog"
	"strings"

	"gradecli/internal/config"
	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

// unnamedPlaceholder marks a Grade cell that holds a spreadsheet column label
// rather than a grade.
const unnamedPlaceholder = "Unnamed"

// MalformedDatePolicy decides what happens to a row whose Date cannot yield a year.
type MalformedDatePolicy int

const (
	SkipMalformedDates MalformedDatePolicy = iota
	FailOnMalformedDates
)

// ParseMalformedDatePolicy maps a config value onto a policy.
func ParseMalformedDatePolicy(s string) (MalformedDatePolicy, error) {
	switch s {
	case "", config.MalformedDateSkip:
		return SkipMalformedDates, nil
	case config.MalformedDateFail:
		return FailOnMalformedDates, nil
	}
	return 0, fmt.Errorf("unknown malformed date policy %q", s)
}

// Extractor builds StudentRecords from raw tables. It holds no per-applicant
// state and is safe for concurrent use.
type Extractor struct {
	lookups *config.LookupTables
	policy  MalformedDatePolicy
	logger  *slog.Logger
}

// NewExtractor creates an extractor over the given lookup tables.
func NewExtractor(lookups *config.LookupTables, policy MalformedDatePolicy, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		lookups: lookups,
		policy:  policy,
		logger:  logger.With(slog.String("component", "extractor")),
	}
}

// Extract converts one applicant's tables into a record. A missing table
// yields an empty list. The only error is a malformed date under
// FailOnMalformedDates.
func (x *Extractor) Extract(tables domain.Tables) (*domain.StudentRecord, Diagnostics, error) {
	diag := newDiagnostics(tables.ApplicantID)

	completed, err := x.completedEntries(tables, &diag)
	if err != nil {
		return nil, diag, err
	}
	predicted, err := x.predictedEntries(tables, &diag)
	if err != nil {
		return nil, diag, err
	}
	results, err := x.resultEntries(tables, &diag)
	if err != nil {
		return nil, diag, err
	}

	record := domain.NewStudentRecord(tables.ApplicantID, completed, predicted, results)

	x.logger.Debug("Extracted applicant record",
		slog.String("applicant_id", tables.ApplicantID),
		slog.Int("completed", len(completed)),
		slog.Int("predicted", len(predicted)),
		slog.Int("results", len(results)),
		slog.Int("dropped", diag.DroppedCount()))

	return record, diag, nil
}

func (x *Extractor) completedEntries(tables domain.Tables, diag *Diagnostics) ([]domain.GradeEntry, error) {
	diag.RowsSeen[domain.KindCompleted] = len(tables.Completed)

	var entries []domain.GradeEntry
	for i, row := range tables.Completed {
		entry, ok, err := x.achievedEntry(tables.ApplicantID, domain.KindCompleted, i,
			row.Exam, x.lookups.IsCompletedExam, row.Subject, row.Grade, row.Date, diag)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (x *Extractor) resultEntries(tables domain.Tables, diag *Diagnostics) ([]domain.GradeEntry, error) {
	diag.RowsSeen[domain.KindResults] = len(tables.Results)

	var entries []domain.GradeEntry
	for i, row := range tables.Results {
		entry, ok, err := x.achievedEntry(tables.ApplicantID, domain.KindResults, i,
			row.ExamLevel, x.lookups.IsExamResultLevel, row.Subject, row.Grade, row.Date, diag)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// achievedEntry applies the shared rule for completed and exam-results rows.
func (x *Extractor) achievedEntry(applicantID string, kind domain.Kind, i int,
	exam domain.Cell, allowed func(string) bool, subject, grade, date domain.Cell,
	diag *Diagnostics) (domain.GradeEntry, bool, error) {

	if !exam.Present() {
		x.dropRow(diag, kind, i, ReasonMissingExam, "")
		return domain.GradeEntry{}, false, nil
	}
	if !allowed(exam.Value) {
		x.dropRow(diag, kind, i, ReasonExamNotAllowed, exam.Value)
		return domain.GradeEntry{}, false, nil
	}

	year, ok, err := x.year(applicantID, kind, i, date, diag)
	if err != nil || !ok {
		return domain.GradeEntry{}, false, err
	}

	return domain.NewGradeEntry(exam, subject.Value, grade, false, year), true, nil
}

func (x *Extractor) predictedEntries(tables domain.Tables, diag *Diagnostics) ([]domain.GradeEntry, error) {
	diag.RowsSeen[domain.KindPredicted] = len(tables.Predicted)

	var entries []domain.GradeEntry
	for i, row := range tables.Predicted {
		gradeAbsent := !row.Grade.Present()
		predictedAbsent := !row.PredictedGrade.Present()

		var grade domain.Cell
		switch {
		case gradeAbsent != predictedAbsent:
			grade = row.Grade
			if gradeAbsent {
				grade = row.PredictedGrade
			}
		case !gradeAbsent && !predictedAbsent:
			grade = row.Grade
			if strings.Contains(row.Grade.Value, unnamedPlaceholder) {
				grade = row.PredictedGrade
			}
		case row.Date.Present() && x.lookups.IsDetailMarker(row.Date.Value):
			modules := x.moduleEntries(row.Body)
			if len(modules) == 0 {
				x.dropRow(diag, domain.KindPredicted, i, ReasonNoModules, row.Date.Value)
			}
			entries = append(entries, modules...)
			continue
		default:
			x.dropRow(diag, domain.KindPredicted, i, ReasonNoGrade, "")
			continue
		}

		qualification := row.Exam
		if !qualification.Present() {
			qualification = row.Body
		}

		year, ok, err := x.year(tables.ApplicantID, domain.KindPredicted, i, row.Date, diag)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		entries = append(entries, domain.NewGradeEntry(qualification, row.Subject.Value, grade, true, year))
	}
	return entries, nil
}

// moduleEntries emits one predicted entry per module in a detailed-record
// Body cell. Module entries carry no qualification, grade or year.
func (x *Extractor) moduleEntries(body domain.Cell) []domain.GradeEntry {
	if !body.Present() {
		return nil
	}
	subjects := SplitModules(body.Value)
	entries := make([]domain.GradeEntry, 0, len(subjects))
	for _, subject := range subjects {
		entries = append(entries, domain.NewGradeEntry(domain.Absent(), subject, domain.Absent(), true, domain.Absent()))
	}
	return entries
}

// year extracts the text after the last "-" of date. ok is false when the
// row was dropped under SkipMalformedDates.
func (x *Extractor) year(applicantID string, kind domain.Kind, i int, date domain.Cell, diag *Diagnostics) (domain.Cell, bool, error) {
	idx := -1
	if date.Present() {
		idx = strings.LastIndex(date.Value, "-")
	}
	if idx >= 0 {
		return domain.Text(date.Value[idx+1:]), true, nil
	}

	if x.policy == FailOnMalformedDates {
		return domain.Cell{}, false, apperrors.NewMalformedDateError(applicantID, string(kind), i, date.Value)
	}
	x.dropRow(diag, kind, i, ReasonMalformedDate, date.Value)
	return domain.Cell{}, false, nil
}

func (x *Extractor) dropRow(diag *Diagnostics, kind domain.Kind, i int, reason Reason, detail string) {
	diag.drop(kind, i, reason, detail)
	x.logger.Debug("Dropped row",
		slog.String("applicant_id", diag.ApplicantID),
		slog.String("kind", string(kind)),
		slog.Int("row", i),
		slog.String("reason", string(reason)),
		slog.String("detail", detail))
}
