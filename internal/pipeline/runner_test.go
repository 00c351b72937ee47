package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradecli/internal/classifier"
	"gradecli/internal/config"
	apperrors "gradecli/internal/errors"
	"gradecli/internal/extraction"
	"gradecli/internal/files"
	"gradecli/internal/infrastructure"
	"gradecli/pkg/contracts/domain"
)

var errUnreadable = errors.New("unreadable workbook")

// fakeReader serves tables from memory keyed by path.
type fakeReader map[string]domain.Tables

func (f fakeReader) ReadWorkbook(path string) (domain.Tables, error) {
	tables, ok := f[path]
	if !ok {
		return domain.Tables{}, errUnreadable
	}
	return tables, nil
}

func text(s string) domain.Cell { return domain.Text(s) }

func completed(exam, subject, grade, date string) domain.CompletedRow {
	return domain.CompletedRow{Exam: text(exam), Subject: text(subject), Grade: text(grade), Date: text(date)}
}

func fixture() (fakeReader, []Source) {
	reader := fakeReader{
		"/in/A.xlsx": {
			ApplicantID: "A",
			Completed:   []domain.CompletedRow{completed("A-Level", "Mathematics", "A*", "2019-09-2021")},
		},
		"/in/B.xlsx": {
			ApplicantID: "B",
			Completed: []domain.CompletedRow{
				completed("A-Level", "Mathematics", "A", "06-2021"),
				completed("A-Level", "Maths", "B", "06-2020"),
				completed("GCSE", "Art", "9", "06-2019"),
			},
			Predicted: []domain.PredictedRow{
				{Exam: text("A-Level"), Subject: text("Further Mathematics"), Grade: domain.Absent(), PredictedGrade: text("A"), Date: text("06-2024")},
			},
		},
		"/in/D.xlsx": {
			ApplicantID: "D",
			Results: []domain.ExamResultRow{
				{ExamLevel: text("A-Level"), Subject: text("Physics"), Grade: text("B"), Date: text("08-2021")},
			},
		},
	}
	sources := []Source{
		{ID: "A", Path: "/in/A.xlsx"},
		{ID: "B", Path: "/in/B.xlsx"},
		{ID: "C"},
		{ID: "D", Path: "/in/D.xlsx"},
	}
	return reader, sources
}

func newRunner(reader TableReader, policy extraction.MalformedDatePolicy, workers int, metrics *infrastructure.Metrics) *Runner {
	lookups := config.DefaultLookups().MustCompile()
	return NewRunner(reader,
		extraction.NewExtractor(lookups, policy, nil),
		classifier.New(lookups),
		metrics, workers, nil)
}

func summarize(result *Result) []string {
	out := make([]string, 0, len(result.Applicants))
	for _, a := range result.Applicants {
		msg, _ := a.Issue()
		out = append(out, fmt.Sprintf("%s entries=%d fm=%t issue=%q", a.Record.ID(), a.Record.Len(), a.Categories.HasFurtherMath(), msg))
	}
	return out
}

func TestRun_Sequential(t *testing.T) {
	reader, sources := fixture()
	metrics := infrastructure.NewMetrics()

	result, err := newRunner(reader, extraction.SkipMalformedDates, 1, metrics).Run(context.Background(), sources)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`A entries=1 fm=false issue=""`,
		`B entries=3 fm=true issue="Multiple math Qual."`,
		`C entries=0 fm=false issue="No valid qual & subjects."`,
		`D entries=1 fm=false issue=""`,
	}, summarize(result))

	a := result.Applicants[0].Record.Completed()
	require.Len(t, a, 1)
	assert.Equal(t, domain.NewGradeEntry(text("A-Level"), "Mathematics", text("A*"), false, text("2021")), a[0])

	assert.Equal(t, 1, result.DroppedRows())
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.Applicants))
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.RowsProcessed.WithLabelValues("completed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RowsDropped.WithLabelValues("completed", "exam-not-allowed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.EntriesEmitted.WithLabelValues("predicted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.IssuesFlagged.WithLabelValues("Multiple math Qual.")))
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	reader, sources := fixture()

	seq, err := newRunner(reader, extraction.SkipMalformedDates, 1, nil).Run(context.Background(), sources)
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			par, err := newRunner(reader, extraction.SkipMalformedDates, workers, nil).Run(context.Background(), sources)
			require.NoError(t, err)
			assert.Equal(t, summarize(seq), summarize(par))
			assert.NoError(t, par.Collection.Complete())
		})
	}
}

func TestRun_Backward(t *testing.T) {
	reader, sources := fixture()

	result, err := newRunner(reader, extraction.SkipMalformedDates, 1, nil).Run(context.Background(), sources)
	require.NoError(t, err)

	var order []string
	for a := range result.Backward() {
		order = append(order, a.Record.ID())
	}
	assert.Equal(t, []string{"D", "C", "B", "A"}, order)
	assert.Len(t, slices.Collect(result.Backward()), 4)
}

func TestRun_ReaderError(t *testing.T) {
	reader, sources := fixture()
	sources[1].Path = "/in/missing.xlsx"

	for _, workers := range []int{1, 3} {
		_, err := newRunner(reader, extraction.SkipMalformedDates, workers, nil).Run(context.Background(), sources)
		require.Error(t, err)
		assert.ErrorIs(t, err, errUnreadable)
		assert.Contains(t, err.Error(), "applicant B")
	}
}

func TestRun_MalformedDateFails(t *testing.T) {
	reader, sources := fixture()
	reader["/in/D.xlsx"] = domain.Tables{
		ApplicantID: "D",
		Results: []domain.ExamResultRow{
			{ExamLevel: text("A-Level"), Subject: text("Physics"), Grade: text("B"), Date: text("2021")},
		},
	}

	_, err := newRunner(reader, extraction.FailOnMalformedDates, 1, nil).Run(context.Background(), sources)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformedDate)

	result, err := newRunner(reader, extraction.SkipMalformedDates, 1, nil).Run(context.Background(), sources)
	require.NoError(t, err)
	d := result.Applicants[3]
	assert.Zero(t, d.Record.Len())
	assert.Equal(t, extraction.ReasonMalformedDate, d.Diagnostics.Dropped[0].Reason)
}

func TestRun_Cancelled(t *testing.T) {
	reader, sources := fixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 2} {
		_, err := newRunner(reader, extraction.SkipMalformedDates, workers, nil).Run(ctx, sources)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestRun_DuplicateApplicantIDs(t *testing.T) {
	reader, sources := fixture()
	sources = append(sources, Source{ID: "A", Path: "/in/A.xlsx"})

	_, err := newRunner(reader, extraction.SkipMalformedDates, 1, nil).Run(context.Background(), sources)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	assert.Contains(t, err.Error(), `applicant id "A" listed at positions 0 and 4`)
}

func TestApplicant_IssueMatchesDetectedIssues(t *testing.T) {
	reader, sources := fixture()

	result, err := newRunner(reader, extraction.SkipMalformedDates, 1, nil).Run(context.Background(), sources)
	require.NoError(t, err)

	for _, a := range result.Applicants {
		msg, ok := a.Issue()
		assert.Equal(t, len(a.Issues) > 0, ok, a.Record.ID())
		assert.Equal(t, strings.Join(a.Issues, " "), msg, a.Record.ID())
	}
}

func TestRun_NoSources(t *testing.T) {
	result, err := newRunner(fakeReader{}, extraction.SkipMalformedDates, 4, nil).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Applicants)
}

func TestSources(t *testing.T) {
	transcripts := []files.Transcript{
		{ID: "A", Path: "/in/A.xlsx"},
		{ID: "C", Path: "/in/C.xlsx"},
	}

	got := Sources([]string{"C", "B", "A"}, transcripts)
	assert.Equal(t, []Source{
		{ID: "C", Path: "/in/C.xlsx"},
		{ID: "B"},
		{ID: "A", Path: "/in/A.xlsx"},
	}, got)
	assert.Equal(t, []string{"C", "B", "A"}, SourceIDs(got))
}
