package config

// Application constants
const (
	AppName    = "gradecli"
	AppVersion = "1.0.0"

	// Default directories (relative to executable)
	DefaultDataDir        = "data"
	DefaultLogsDir        = "logs"
	DefaultTranscriptsDir = "data/transcripts"
	DefaultReportsDir     = "data/reports"

	// Report files
	ReportWorkbookName = "output.xlsx"
	DiagnosticsCSVName = "dropped_rows.csv"

	// Summary sheet of the report workbook
	CompiledSheetTitle = "Compiled"

	// Workbook file extension for applicant transcripts
	TranscriptExtension = ".xlsx"
)
