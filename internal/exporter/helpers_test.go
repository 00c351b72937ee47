package exporter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gradecli/internal/classifier"
	"gradecli/internal/config"
	"gradecli/internal/extraction"
	"gradecli/internal/pipeline"
	"gradecli/pkg/contracts/domain"
)

type memoryReader map[string]domain.Tables

func (m memoryReader) ReadWorkbook(path string) (domain.Tables, error) {
	return m[path], nil
}

func text(s string) domain.Cell { return domain.Text(s) }

// runFixture processes three applicants: a clean one, one with issues and
// dropped rows, and one with no workbook.
func runFixture(t *testing.T) *pipeline.Result {
	t.Helper()

	reader := memoryReader{
		"A.xlsx": {
			Completed: []domain.CompletedRow{
				{Exam: text("A-Level"), Subject: text("Mathematics"), Grade: text("A*"), Date: text("2019-09-2021")},
				{Exam: text("A-Level"), Subject: text("Chemistry"), Grade: text("A"), Date: text("2019-09-2021")},
			},
			Predicted: []domain.PredictedRow{
				{Exam: text("A-Level"), Subject: text("Further Mathematics"), Grade: text("A"), PredictedGrade: domain.Absent(), Date: text("06-2024")},
			},
			Results: []domain.ExamResultRow{
				{ExamLevel: text("A-Level"), Subject: text("Physics"), Grade: text("B"), Date: text("08-2021")},
			},
		},
		"B.xlsx": {
			Completed: []domain.CompletedRow{
				{Exam: text("A-Level"), Subject: text("Mathematics"), Grade: text("A"), Date: text("06-2021")},
				{Exam: text("A-Level"), Subject: text("Maths"), Grade: text("B"), Date: text("06-2020")},
				{Exam: text("GCSE"), Subject: text("Art"), Grade: text("9"), Date: text("06-2019")},
			},
			Predicted: []domain.PredictedRow{
				{Exam: text("A-Level"), Subject: text("Biology"), Grade: domain.Absent(), PredictedGrade: domain.Absent(), Date: text("06-2024")},
			},
		},
	}
	sources := []pipeline.Source{{ID: "A", Path: "A.xlsx"}, {ID: "B", Path: "B.xlsx"}, {ID: "C"}}

	lookups := config.DefaultLookups().MustCompile()
	runner := pipeline.NewRunner(reader,
		extraction.NewExtractor(lookups, extraction.SkipMalformedDates, nil),
		classifier.New(lookups), nil, 1, nil)

	result, err := runner.Run(context.Background(), sources)
	require.NoError(t, err)
	return result
}
