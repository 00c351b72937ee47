package exporter

import (
	"fmt"
	"log/slog"
	"strconv"

	"gradecli/internal/pipeline"
)

// DiagnosticsHeaders are the columns of the dropped-row CSV.
var DiagnosticsHeaders = []string{"UCAS ID", "Table", "Row", "Reason", "Detail"}

// DiagnosticsWriter lists the raw rows that produced no grade entry. Row
// numbers count data rows from 1, below the header.
type DiagnosticsWriter struct {
	csv    *CSVWriter
	logger *slog.Logger
}

// NewDiagnosticsWriter creates a diagnostics writer on top of w.
func NewDiagnosticsWriter(w *CSVWriter, logger *slog.Logger) *DiagnosticsWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiagnosticsWriter{
		csv:    w,
		logger: logger.With(slog.String("component", "exporter")),
	}
}

// Write streams one line per dropped row to filePath and returns the
// resolved path.
func (d *DiagnosticsWriter) Write(filePath string, applicants []pipeline.Applicant) (string, error) {
	stream, err := d.csv.CreateStreamWriter(filePath, DiagnosticsHeaders)
	if err != nil {
		return "", err
	}

	count := 0
	for _, a := range applicants {
		for _, row := range a.Diagnostics.Dropped {
			record := []string{
				a.Record.ID(),
				string(row.Kind),
				strconv.Itoa(row.Row + 1),
				string(row.Reason),
				row.Detail,
			}
			if err := stream.WriteRecord(record); err != nil {
				stream.Close()
				return "", fmt.Errorf("failed to write diagnostics for %s: %w", a.Record.ID(), err)
			}
			count++
		}
	}

	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("failed to close diagnostics file: %w", err)
	}

	d.logger.Info("Diagnostics written",
		slog.String("path", stream.Path()),
		slog.Int("dropped_rows", count))

	return stream.Path(), nil
}
