package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a grade list is requested under a name that
// is not one of the three qualification kinds.
var ErrUnknownKind = errors.New("unknown qualification kind")

// Kind identifies one of the three raw table shapes.
type Kind string

const (
	KindCompleted Kind = "completed"
	KindPredicted Kind = "predicted"
	KindResults   Kind = "results"
)

// Kinds lists every qualification kind in report order.
var Kinds = []Kind{KindCompleted, KindPredicted, KindResults}

// ParseKind resolves a kind name.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(name); k {
	case KindCompleted, KindPredicted, KindResults:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// StudentRecord holds one applicant's extracted grade entries.
type StudentRecord struct {
	id        string
	completed []GradeEntry
	predicted []GradeEntry
	results   []GradeEntry
}

// NewStudentRecord copies the given lists so later changes by the caller do
// not leak into the record.
func NewStudentRecord(id string, completed, predicted, results []GradeEntry) *StudentRecord {
	return &StudentRecord{
		id:        id,
		completed: clone(completed),
		predicted: clone(predicted),
		results:   clone(results),
	}
}

func clone(entries []GradeEntry) []GradeEntry {
	out := make([]GradeEntry, len(entries))
	copy(out, entries)
	return out
}

// ID returns the applicant id.
func (r *StudentRecord) ID() string { return r.id }

// Completed returns the completed qualification entries.
func (r *StudentRecord) Completed() []GradeEntry { return clone(r.completed) }

// Predicted returns the predicted grade entries.
func (r *StudentRecord) Predicted() []GradeEntry { return clone(r.predicted) }

// Results returns the exam result entries.
func (r *StudentRecord) Results() []GradeEntry { return clone(r.results) }

// Entries returns the list for kind. Unknown kinds yield nil.
func (r *StudentRecord) Entries(kind Kind) []GradeEntry {
	switch kind {
	case KindCompleted:
		return r.Completed()
	case KindPredicted:
		return r.Predicted()
	case KindResults:
		return r.Results()
	}
	return nil
}

// EntriesByName looks a list up by its kind name.
func (r *StudentRecord) EntriesByName(name string) ([]GradeEntry, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return r.Entries(kind), nil
}

// All returns every entry: results, then completed, then predicted.
func (r *StudentRecord) All() []GradeEntry {
	out := make([]GradeEntry, 0, r.Len())
	out = append(out, r.results...)
	out = append(out, r.completed...)
	out = append(out, r.predicted...)
	return out
}

// Len is the total number of entries across the three lists.
func (r *StudentRecord) Len() int {
	return len(r.completed) + len(r.predicted) + len(r.results)
}
