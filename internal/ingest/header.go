package ingest

import "strings"

// Column names as they appear in transcript tables, after normalization.
const (
	colExam           = "exam"
	colExamLevel      = "exam level"
	colBody           = "body"
	colSubject        = "subject"
	colGrade          = "grade"
	colPredictedGrade = "predicted grade"
	colDate           = "date"
)

// NormalizeHeader folds line breaks and repeated spaces into single spaces and
// lower-cases the result.
func NormalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// columnMap holds header positions by normalized name.
type columnMap map[string]int

// findHeader returns the index of the first row with a Subject column, and
// the column positions of that row.
func findHeader(rows [][]string) (int, columnMap) {
	for i, row := range rows {
		cols := make(columnMap, len(row))
		for j, cell := range row {
			name := NormalizeHeader(cell)
			if name == "" {
				continue
			}
			if _, dup := cols[name]; !dup {
				cols[name] = j
			}
		}
		if _, ok := cols[colSubject]; ok {
			return i, cols
		}
	}
	return -1, nil
}

func (c columnMap) missing(required ...string) []string {
	var out []string
	for _, name := range required {
		if _, ok := c[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
