package extraction

import (
	"fmt"

	"gradecli/pkg/contracts/domain"
)

// Reason explains why a raw row produced no grade entry.
type Reason string

const (
	ReasonMissingExam    Reason = "missing-exam"
	ReasonExamNotAllowed Reason = "exam-not-allowed"
	ReasonNoGrade        Reason = "no-grade"
	ReasonMalformedDate  Reason = "malformed-date"
	ReasonNoModules      Reason = "no-modules"
)

// DroppedRow records one raw row that was discarded.
type DroppedRow struct {
	Kind   domain.Kind
	Row    int
	Reason Reason
	Detail string
}

func (d DroppedRow) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s row %d: %s", d.Kind, d.Row, d.Reason)
	}
	return fmt.Sprintf("%s row %d: %s (%s)", d.Kind, d.Row, d.Reason, d.Detail)
}

// Diagnostics describes how one applicant's tables were consumed.
type Diagnostics struct {
	ApplicantID string
	RowsSeen    map[domain.Kind]int
	Dropped     []DroppedRow
}

func newDiagnostics(applicantID string) Diagnostics {
	return Diagnostics{
		ApplicantID: applicantID,
		RowsSeen:    make(map[domain.Kind]int, len(domain.Kinds)),
	}
}

func (d *Diagnostics) drop(kind domain.Kind, row int, reason Reason, detail string) {
	d.Dropped = append(d.Dropped, DroppedRow{Kind: kind, Row: row, Reason: reason, Detail: detail})
}

// DroppedCount is the number of discarded rows.
func (d Diagnostics) DroppedCount() int {
	return len(d.Dropped)
}
