package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"gradecli/internal/classifier"
	"gradecli/internal/config"
	"gradecli/internal/exporter"
	"gradecli/internal/extraction"
	"gradecli/internal/files"
	"gradecli/internal/infrastructure"
	"gradecli/internal/ingest"
	"gradecli/internal/pipeline"
	"gradecli/internal/validation"
)

// options are the command line overrides for a run
type options struct {
	configPath     string
	inDir          string
	outDir         string
	idsFile        string
	workers        int
	malformedDates string
	quiet          bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Extract and classify applicant grades from transcript workbooks",
		Long:          "gradecli reads one transcript workbook per applicant, extracts normalized grade entries, classifies them by subject and writes the admissions report.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file (defaults to gradecli.yaml or configs/gradecli.yaml)")
	flags.StringVar(&opts.inDir, "in", "", "directory of applicant transcript workbooks (defaults to data/transcripts relative to executable)")
	flags.StringVar(&opts.outDir, "out", "", "absolute output directory for output.xlsx (defaults to data/reports relative to executable)")
	flags.StringVar(&opts.idsFile, "ids", "", "file listing applicant ids in report order, one per line")
	flags.IntVar(&opts.workers, "workers", 0, "number of applicants processed concurrently")
	flags.StringVar(&opts.malformedDates, "malformed-dates", "", "what to do with rows whose date has no year: skip or fail")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the summary table")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.AppName, config.AppVersion)
		},
	})

	return cmd
}

// applyOverrides copies explicit flags over the loaded configuration and
// fills unset paths from the executable layout.
func applyOverrides(cfg *config.Config, opts options, paths *config.Paths) error {
	if opts.inDir != "" {
		cfg.Paths.InputDir = opts.inDir
	}
	if opts.outDir != "" {
		cfg.Paths.OutputDir = opts.outDir
	}
	if opts.idsFile != "" {
		cfg.Paths.IDsFile = opts.idsFile
	}
	if opts.workers != 0 {
		cfg.Extraction.Workers = opts.workers
	}
	if opts.malformedDates != "" {
		cfg.Extraction.MalformedDates = opts.malformedDates
	}

	if cfg.Paths.InputDir == "" {
		cfg.Paths.InputDir = paths.TranscriptsDir
	}
	if cfg.Paths.OutputDir == "" {
		cfg.Paths.OutputDir = paths.ReportsDir
	}
	if cfg.Logging.FilePath != "" {
		cfg.Logging.FilePath = paths.GetLogPath(cfg.Logging.FilePath)
	}

	return cfg.Validate()
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	paths, err := config.GetPaths()
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, opts, paths); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	ctx = infrastructure.EnsureTraceID(ctx)
	logger.InfoContext(ctx, "Starting grade extraction",
		slog.String("version", config.AppVersion),
		slog.String("input_dir", cfg.Paths.InputDir),
		slog.String("output_dir", cfg.Paths.OutputDir),
		slog.String("ids_file", cfg.Paths.IDsFile),
		slog.Int("workers", cfg.Extraction.Workers),
		slog.String("malformed_dates", cfg.Extraction.MalformedDates))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(cfg.Paths.InputDir); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(cfg.Paths.OutputDir); err != nil {
		return err
	}

	sources, err := discoverSources(cfg.Paths, validator, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Found %d applicants\n", len(sources))

	lookups, err := cfg.Lookups.Compile()
	if err != nil {
		return fmt.Errorf("invalid lookup tables: %w", err)
	}
	policy, err := extraction.ParseMalformedDatePolicy(cfg.Extraction.MalformedDates)
	if err != nil {
		return err
	}

	metrics := infrastructure.NewMetrics()
	runner := pipeline.NewRunner(
		ingest.NewReader(lookups.Sheets(), logger),
		extraction.NewExtractor(lookups, policy, logger),
		classifier.New(lookups),
		metrics,
		cfg.Extraction.Workers,
		logger,
	)

	result, err := runner.Run(ctx, sources)
	if err != nil {
		return err
	}

	reportPath, err := exporter.NewWorkbookWriter(lookups.Sheets(), logger).Write(cfg.Paths.OutputDir, result.Applicants)
	if err != nil {
		return err
	}

	diagnostics := exporter.NewDiagnosticsWriter(exporter.NewCSVWriter(paths), logger)
	diagnosticsPath, err := diagnostics.Write(filepath.Join(cfg.Paths.OutputDir, config.DiagnosticsCSVName), result.Applicants)
	if err != nil {
		return err
	}

	if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
		logger.WarnContext(ctx, "Failed to write metrics textfile",
			slog.String("path", cfg.Metrics.TextfilePath),
			slog.String("error", err.Error()))
	}

	if !opts.quiet {
		exporter.PrintSummary(stdout, result)
	}

	logger.InfoContext(ctx, "Grade extraction completed",
		slog.String("report", reportPath),
		slog.String("diagnostics", diagnosticsPath),
		slog.Int("applicants", len(result.Applicants)),
		slog.Duration("duration", result.Duration))

	return nil
}

// discoverSources lists transcripts and orders them by the id file when one is
// configured, otherwise by applicant id.
func discoverSources(p config.PathsConfig, validator *validation.FileValidator, logger *slog.Logger) ([]pipeline.Source, error) {
	transcripts, err := files.NewDiscovery("").FindTranscripts(p.InputDir)
	if err != nil {
		return nil, err
	}

	ids := files.IDs(transcripts)
	if p.IDsFile != "" {
		if err := validator.ValidateFile(p.IDsFile); err != nil {
			return nil, err
		}
		if ids, err = files.ReadApplicantIDs(p.IDsFile); err != nil {
			return nil, err
		}
	}

	sources := pipeline.Sources(ids, transcripts)
	for _, src := range sources {
		if src.Path == "" {
			continue
		}
		if err := validator.ValidateTranscript(src.Path); err != nil {
			return nil, err
		}
	}

	logger.Info("Applicants discovered",
		slog.Int("transcripts", len(transcripts)),
		slog.Int("applicants", len(sources)))

	return sources, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("Grade extraction failed", "error", err)
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
	infrastructure.CloseLogFile()
}
