package domain

import (
	"fmt"
	"strings"
)

// GradeEntry is a normalized grade record. It is immutable once built.
type GradeEntry struct {
	qualification Cell
	subject       string
	grade         Cell
	predicted     bool
	year          Cell
}

// NewGradeEntry builds an entry, stripping embedded carriage returns from the
// qualification and subject.
func NewGradeEntry(qualification Cell, subject string, grade Cell, predicted bool, year Cell) GradeEntry {
	if qualification.Valid {
		qualification.Value = stripCarriageReturns(qualification.Value)
	}
	return GradeEntry{
		qualification: qualification,
		subject:       stripCarriageReturns(subject),
		grade:         grade,
		predicted:     predicted,
		year:          year,
	}
}

func stripCarriageReturns(s string) string {
	return strings.ReplaceAll(s, "\r", "")
}

// Qualification returns the qualification type, e.g. "A-Level".
func (e GradeEntry) Qualification() Cell { return e.qualification }

// Subject returns the subject name.
func (e GradeEntry) Subject() string { return e.subject }

// Grade returns the achieved or predicted grade.
func (e GradeEntry) Grade() Cell { return e.grade }

// IsPredicted reports whether the grade is a forecast.
func (e GradeEntry) IsPredicted() bool { return e.predicted }

// Year returns the award year.
func (e GradeEntry) Year() Cell { return e.year }

func (e GradeEntry) String() string {
	return fmt.Sprintf("Qualification: %s Subject: %s Grade: %s Year: %s Predicted %t",
		e.qualification.Or("None"), e.subject, e.grade.Or("None"), e.year.Or("None"), e.predicted)
}
