package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gradecli/internal/config"
	apperrors "gradecli/internal/errors"
)

func openReport(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWorkbookWriter_Write(t *testing.T) {
	result := runFixture(t)
	dir := t.TempDir()

	path, err := NewWorkbookWriter(config.DefaultSheetTitles(), nil).Write(dir, result.Applicants)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "output.xlsx"), path)

	f := openReport(t, path)
	assert.Equal(t, []string{"Compiled", "Completed Qualifications", "Predicted Grades", "Exam Results"}, f.GetSheetList())

	compiled, err := f.GetRows("Compiled")
	require.NoError(t, err)
	require.Len(t, compiled, 4)
	assert.Equal(t, CompiledHeaders, compiled[0])
	assert.Equal(t, []string{"A", "A-Level", "", "A*", "B", "Chemistry", "A", "", "", "Yes"}, compiled[1])
	assert.Equal(t, []string{"B", "A-Level", "Multiple math Qual.", "A", "", "", "", "", "", "No"}, compiled[2])
	assert.Equal(t, []string{"C", "", "No valid qual & subjects.", "", "", "", "", "", "", "No"}, compiled[3])

	completed, err := f.GetRows("Completed Qualifications")
	require.NoError(t, err)
	require.Len(t, completed, 4)
	assert.Equal(t, KindHeaders(), completed[0])
	assert.Equal(t, []string{"A", "A-Level", "Mathematics", "A*", "Chemistry", "A"}, completed[1])
	assert.Equal(t, []string{"B", "A-Level", "Mathematics", "A", "Maths", "B"}, completed[2])
	assert.Equal(t, []string{"C"}, completed[3])

	predicted, err := f.GetRows("Predicted Grades")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A-Level", "Further Mathematics", "A"}, predicted[1])
	assert.Equal(t, []string{"B"}, predicted[2])

	results, err := f.GetRows("Exam Results")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A-Level", "Physics", "B"}, results[1])
}

func TestWorkbookWriter_RelativeDirRejected(t *testing.T) {
	_, err := NewWorkbookWriter(config.DefaultSheetTitles(), nil).Write("reports", runFixture(t).Applicants)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotAbsolute)
}

func TestWorkbookWriter_NoApplicants(t *testing.T) {
	path, err := NewWorkbookWriter(config.DefaultSheetTitles(), nil).Write(t.TempDir(), nil)
	require.NoError(t, err)

	rows, err := openReport(t, path).GetRows("Compiled")
	require.NoError(t, err)
	assert.Equal(t, [][]string{CompiledHeaders}, rows)
}

func TestKindHeaders(t *testing.T) {
	assert.Equal(t, []string{
		"UCAS ID", "Qualification Type",
		"Subject", "Grade", "Subject", "Grade", "Subject", "Grade", "Subject", "Grade",
	}, KindHeaders())
}
