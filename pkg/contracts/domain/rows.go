package domain

// CompletedRow is one row of the completed qualifications table.
type CompletedRow struct {
	Exam    Cell
	Subject Cell
	Grade   Cell
	Date    Cell
}

// ExamResultRow is one row of the exam results table.
type ExamResultRow struct {
	ExamLevel Cell
	Subject   Cell
	Grade     Cell
	Date      Cell
}

// PredictedRow is one row of the uncompleted qualifications table. Either of
// Grade and PredictedGrade may carry the authoritative value.
type PredictedRow struct {
	Exam           Cell
	Body           Cell
	Subject        Cell
	Grade          Cell
	PredictedGrade Cell
	Date           Cell
}

// Tables holds the raw tables found for one applicant. A nil slice means the
// table was not present in the source document.
type Tables struct {
	ApplicantID string
	Completed   []CompletedRow
	Predicted   []PredictedRow
	Results     []ExamResultRow
}

// RowCount is the number of raw rows across all tables.
func (t Tables) RowCount() int {
	return len(t.Completed) + len(t.Predicted) + len(t.Results)
}
