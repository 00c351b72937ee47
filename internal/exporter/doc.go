// Package exporter writes the admissions report for a completed run.
//
// This package contains four components:
//
// CSVWriter: Streaming CSV writing with a header row and a UTF-8 BOM for
// Excel compatibility.
//
// WorkbookWriter: Builds output.xlsx with a "Compiled" summary sheet followed by
// one sheet per qualification kind.
//
// DiagnosticsWriter: Lists every raw row that produced no grade entry.
//
// PrintSummary: Renders a terminal table of applicants and their issues.
//
// Example usage:
//
//	writer := exporter.NewWorkbookWriter(config.DefaultSheetTitles(), logger)
//	path, err := writer.Write("/abs/reports", result.Applicants)
//
//	diagnostics := exporter.NewDiagnosticsWriter(exporter.NewCSVWriter(paths), logger)
//	_, err = diagnostics.Write(config.DiagnosticsCSVName, result.Applicants)
package exporter
