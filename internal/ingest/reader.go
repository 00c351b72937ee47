package ingest

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"gradecli/internal/config"
	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

// Reader turns transcript workbooks into domain.Tables.
type Reader struct {
	sheets config.SheetTitles
	logger *slog.Logger
}

// NewReader creates a reader that looks for the given sheet titles.
func NewReader(sheets config.SheetTitles, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		sheets: sheets,
		logger: logger.With(slog.String("component", "ingest")),
	}
}

// ApplicantID derives the applicant id from a workbook path.
func ApplicantID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadWorkbook opens the workbook at path and reads its three tables. The
// applicant id is the file stem.
func (r *Reader) ReadWorkbook(path string) (domain.Tables, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Tables{}, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	return r.Read(f, ApplicantID(path))
}

// Read extracts the tables from an open workbook.
func (r *Reader) Read(f *excelize.File, applicantID string) (domain.Tables, error) {
	tables := domain.Tables{ApplicantID: applicantID}

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}

	for _, kind := range domain.Kinds {
		title := r.sheets.SheetTitle(kind)
		if !present[title] {
			r.logger.Debug("Table absent",
				slog.String("applicant_id", applicantID),
				slog.String("kind", string(kind)),
				slog.String("sheet", title))
			continue
		}

		rows, err := f.GetRows(title)
		if err != nil {
			return domain.Tables{}, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", title), err).
				WithContext("applicant_id", applicantID)
		}

		if err := fillTable(&tables, kind, rows); err != nil {
			return domain.Tables{}, apperrors.NewParsingError(fmt.Sprintf("sheet %q", title), err).
				WithContext("applicant_id", applicantID)
		}
	}

	r.logger.Debug("Read transcript workbook",
		slog.String("applicant_id", applicantID),
		slog.Int("completed_rows", len(tables.Completed)),
		slog.Int("predicted_rows", len(tables.Predicted)),
		slog.Int("results_rows", len(tables.Results)))

	return tables, nil
}

func fillTable(tables *domain.Tables, kind domain.Kind, rows [][]string) error {
	headerRow, cols := findHeader(rows)
	if headerRow < 0 {
		if len(rows) == 0 {
			// an empty sheet is an empty table
			setEmpty(tables, kind)
			return nil
		}
		return fmt.Errorf("no header row with a %q column", colSubject)
	}

	var required []string
	switch kind {
	case domain.KindCompleted, domain.KindPredicted:
		required = []string{colExam, colSubject, colGrade, colDate}
	case domain.KindResults:
		required = []string{colExamLevel, colSubject, colGrade, colDate}
	}
	if missing := cols.missing(required...); len(missing) > 0 {
		return fmt.Errorf("missing columns %s", strings.Join(missing, ", "))
	}

	// Blank rows stay in the table so row positions match the sheet.
	setEmpty(tables, kind)
	for _, row := range rows[headerRow+1:] {
		get := func(name string) domain.Cell { return cellAt(row, cols, name) }

		switch kind {
		case domain.KindCompleted:
			tables.Completed = append(tables.Completed, domain.CompletedRow{
				Exam:    get(colExam),
				Subject: get(colSubject),
				Grade:   get(colGrade),
				Date:    get(colDate),
			})
		case domain.KindPredicted:
			tables.Predicted = append(tables.Predicted, domain.PredictedRow{
				Exam:           get(colExam),
				Body:           get(colBody),
				Subject:        get(colSubject),
				Grade:          get(colGrade),
				PredictedGrade: get(colPredictedGrade),
				Date:           get(colDate),
			})
		case domain.KindResults:
			tables.Results = append(tables.Results, domain.ExamResultRow{
				ExamLevel: get(colExamLevel),
				Subject:   get(colSubject),
				Grade:     get(colGrade),
				Date:      get(colDate),
			})
		}
	}
	return nil
}

// setEmpty marks a table as present but without rows.
func setEmpty(tables *domain.Tables, kind domain.Kind) {
	switch kind {
	case domain.KindCompleted:
		tables.Completed = []domain.CompletedRow{}
	case domain.KindPredicted:
		tables.Predicted = []domain.PredictedRow{}
	case domain.KindResults:
		tables.Results = []domain.ExamResultRow{}
	}
}

// cellAt returns the named column of row. Missing columns, short rows and
// empty cells are absent.
func cellAt(row []string, cols columnMap, name string) domain.Cell {
	j, ok := cols[name]
	if !ok || j >= len(row) || row[j] == "" {
		return domain.Absent()
	}
	return domain.Text(row[j])
}
