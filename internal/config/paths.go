package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains the default application paths, all relative to the
// executable location.
type Paths struct {
	ExecutableDir  string
	DataDir        string
	TranscriptsDir string
	ReportsDir     string
	LogsDir        string
}

// GetPaths returns the application paths relative to the executable location
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return NewPaths(filepath.Dir(exe)), nil
}

// NewPaths lays out the directory tree under base:
//
//	base/
//	  ├── data/
//	  │   ├── transcripts/  (one workbook per applicant)
//	  │   └── reports/      (output.xlsx, dropped_rows.csv)
//	  └── logs/
func NewPaths(base string) *Paths {
	dataDir := filepath.Join(base, DefaultDataDir)
	return &Paths{
		ExecutableDir:  base,
		DataDir:        dataDir,
		TranscriptsDir: filepath.Join(base, DefaultTranscriptsDir),
		ReportsDir:     filepath.Join(base, DefaultReportsDir),
		LogsDir:        filepath.Join(base, DefaultLogsDir),
	}
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the path for a log file. Absolute names are kept as they
// are.
func (p *Paths) GetLogPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
