package exporter

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"gradecli/internal/config"
	apperrors "gradecli/internal/errors"
	"gradecli/internal/pipeline"
	"gradecli/internal/validation"
	"gradecli/pkg/contracts/domain"
)

// CompiledSheet is the summary sheet placed first in the report.
const CompiledSheet = config.CompiledSheetTitle

// subjectGradePairs is the number of Subject/Grade header pairs on a kind sheet.
const subjectGradePairs = 4

// compiledAdditionalPairs is the number of additional subjects on the summary sheet.
const compiledAdditionalPairs = 2

// CompiledHeaders are the column titles of the summary sheet.
var CompiledHeaders = []string{
	"UCAS ID", "Qualification", "Issues Importing?", "Math Grade", "Physics Grade",
	"Subject", "Grade", "Subject", "Grade", "FM?",
}

// WorkbookWriter writes the admissions report workbook.
type WorkbookWriter struct {
	sheets config.SheetTitles
	logger *slog.Logger
}

// NewWorkbookWriter creates a writer that names the kind sheets with sheets.
func NewWorkbookWriter(sheets config.SheetTitles, logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{
		sheets: sheets,
		logger: logger.With(slog.String("component", "exporter")),
	}
}

// KindHeaders returns the column titles of a per-kind sheet.
func KindHeaders() []string {
	headers := []string{"UCAS ID", "Qualification Type"}
	for i := 0; i < subjectGradePairs; i++ {
		headers = append(headers, "Subject", "Grade")
	}
	return headers
}

// Write saves output.xlsx into outputDir, which must be absolute, and returns
// the file path. Applicants are written in the given order, one row each.
func (w *WorkbookWriter) Write(outputDir string, applicants []pipeline.Applicant) (string, error) {
	if err := validation.RequireAbsolute(outputDir); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), CompiledSheet); err != nil {
		return "", apperrors.NewStorageError("failed to name compiled sheet", err)
	}
	if err := w.writeCompiled(f, applicants); err != nil {
		return "", err
	}

	for _, kind := range domain.Kinds {
		if err := w.writeKind(f, kind, applicants); err != nil {
			return "", err
		}
	}
	f.SetActiveSheet(0)

	path := filepath.Join(outputDir, config.ReportWorkbookName)
	if err := f.SaveAs(path); err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to save %s", path), err)
	}

	w.logger.Info("Report workbook written",
		slog.String("path", path),
		slog.Int("applicants", len(applicants)))

	return path, nil
}

func (w *WorkbookWriter) writeCompiled(f *excelize.File, applicants []pipeline.Applicant) error {
	if err := writeHeader(f, CompiledSheet, CompiledHeaders); err != nil {
		return err
	}

	for i, a := range applicants {
		ce := a.Categories
		qualification := firstQualification(ce.Math)
		if qualification == "" {
			qualification = firstQualification(a.Record.All())
		}
		issue, _ := a.Issue()

		row := []interface{}{
			a.Record.ID(),
			qualification,
			issue,
			firstGrade(ce.Math),
			firstGrade(ce.Physics),
		}
		for j := 0; j < compiledAdditionalPairs; j++ {
			if j < len(ce.Additional) {
				row = append(row, ce.Additional[j].Subject(), formatCell(ce.Additional[j].Grade()))
			} else {
				row = append(row, "", "")
			}
		}
		row = append(row, formatYesNo(ce.HasFurtherMath()))

		if err := setRow(f, CompiledSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *WorkbookWriter) writeKind(f *excelize.File, kind domain.Kind, applicants []pipeline.Applicant) error {
	sheet := w.sheets.SheetTitle(kind)
	if _, err := f.NewSheet(sheet); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to create sheet %q", sheet), err)
	}
	if err := writeHeader(f, sheet, KindHeaders()); err != nil {
		return err
	}

	for i, a := range applicants {
		entries, err := a.Record.EntriesByName(string(kind))
		if err != nil {
			return apperrors.NewLookupKeyError(string(kind), err)
		}

		row := []interface{}{a.Record.ID()}
		if len(entries) > 0 {
			row = append(row, formatCell(entries[0].Qualification()))
			for _, e := range entries {
				row = append(row, e.Subject(), formatCell(e.Grade()))
			}
		}

		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func firstGrade(entries []domain.GradeEntry) string {
	if len(entries) == 0 {
		return ""
	}
	return formatCell(entries[0].Grade())
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := setRow(f, sheet, 1, row); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewStorageError("failed to create header style", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return apperrors.NewStorageError("invalid header range", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to style header of %q", sheet), err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return apperrors.NewStorageError("invalid row", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write row %d of %q", row, sheet), err)
	}
	return nil
}
