package pipeline

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"gradecli/internal/classifier"
	"gradecli/internal/collection"
	"gradecli/internal/extraction"
	"gradecli/internal/infrastructure"
	"gradecli/internal/issues"
	"gradecli/pkg/contracts/domain"
)

// TableReader loads the raw tables of one applicant workbook.
type TableReader interface {
	ReadWorkbook(path string) (domain.Tables, error)
}

// Applicant is the processed view of one applicant.
type Applicant struct {
	Record      *domain.StudentRecord
	Categories  domain.CategorizedEntries
	Issues      []string
	Diagnostics extraction.Diagnostics
}

// Issue returns the space-joined issue message. ok is false when the
// applicant has no issues.
func (a Applicant) Issue() (msg string, ok bool) {
	return issues.Message(a.Categories)
}

// Result holds everything a run produced.
type Result struct {
	Collection *collection.Collection
	Applicants []Applicant
	Duration   time.Duration
	byID       map[string]int
}

// Backward yields applicants from the last collection slot to the first.
func (r *Result) Backward() iter.Seq[Applicant] {
	return func(yield func(Applicant) bool) {
		for rec := range r.Collection.Backward() {
			if !yield(r.Applicants[r.byID[rec.ID()]]) {
				return
			}
		}
	}
}

// DroppedRows counts rows discarded across all applicants.
func (r *Result) DroppedRows() int {
	n := 0
	for _, a := range r.Applicants {
		n += a.Diagnostics.DroppedCount()
	}
	return n
}

// Runner wires the extraction engine together.
type Runner struct {
	reader     TableReader
	extractor  *extraction.Extractor
	classifier *classifier.Classifier
	metrics    *infrastructure.Metrics
	workers    int
	logger     *slog.Logger
}

// NewRunner creates a runner. workers below 1 are treated as 1. A nil
// metrics value gets a private registry.
func NewRunner(reader TableReader, extractor *extraction.Extractor, cls *classifier.Classifier,
	metrics *infrastructure.Metrics, workers int, logger *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if metrics == nil {
		metrics = infrastructure.NewMetrics()
	}
	return &Runner{
		reader:     reader,
		extractor:  extractor,
		classifier: cls,
		metrics:    metrics,
		workers:    workers,
		logger:     infrastructure.WithComponent(logger, "pipeline"),
	}
}

// Run processes sources in order and returns the filled collection with the
// classified applicants.
func (r *Runner) Run(ctx context.Context, sources []Source) (*Result, error) {
	if err := checkUnique(sources); err != nil {
		return nil, err
	}

	start := time.Now()
	r.logger.InfoContext(ctx, "Extraction started",
		slog.Int("applicants", len(sources)),
		slog.Int("workers", r.workers))

	coll := collection.New(SourceIDs(sources))
	diags := make([]extraction.Diagnostics, len(sources))

	var err error
	if r.workers == 1 {
		err = r.runSequential(ctx, coll, sources, diags)
	} else {
		err = r.runParallel(ctx, coll, sources, diags)
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Extraction failed", slog.String("error", err.Error()))
		return nil, err
	}

	result := &Result{
		Collection: coll,
		Applicants: make([]Applicant, 0, coll.Len()),
		byID:       make(map[string]int, coll.Len()),
	}
	for i, rec := range coll.Records() {
		categories := r.classifier.Classify(rec)
		found := issues.Detect(categories)
		for _, issue := range found {
			r.metrics.IssuesFlagged.WithLabelValues(issue).Inc()
		}
		result.byID[rec.ID()] = i
		result.Applicants = append(result.Applicants, Applicant{
			Record:      rec,
			Categories:  categories,
			Issues:      found,
			Diagnostics: diags[i],
		})
	}
	result.Duration = time.Since(start)

	r.logger.InfoContext(ctx, "Extraction completed",
		slog.Int("applicants", len(result.Applicants)),
		slog.Int("dropped_rows", result.DroppedRows()),
		slog.Duration("duration", result.Duration))

	return result, nil
}

func (r *Runner) runSequential(ctx context.Context, coll *collection.Collection, sources []Source, diags []extraction.Diagnostics) error {
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, diag, err := r.process(src)
		if err != nil {
			return err
		}
		if err := coll.Add(rec); err != nil {
			return err
		}
		diags[i] = diag
	}
	return nil
}

func (r *Runner) runParallel(ctx context.Context, coll *collection.Collection, sources []Source, diags []extraction.Diagnostics) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, diag, err := r.process(src)
			if err != nil {
				return err
			}
			diags[i] = diag
			return coll.Set(i, rec)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return coll.Complete()
}

// process reads and extracts one applicant.
func (r *Runner) process(src Source) (*domain.StudentRecord, extraction.Diagnostics, error) {
	tables := domain.Tables{ApplicantID: src.ID}
	if src.Path != "" {
		var err error
		tables, err = r.reader.ReadWorkbook(src.Path)
		if err != nil {
			return nil, extraction.Diagnostics{}, fmt.Errorf("applicant %s: %w", src.ID, err)
		}
		tables.ApplicantID = src.ID
	} else {
		r.logger.Warn("No transcript workbook for applicant", slog.String("applicant_id", src.ID))
	}

	rec, diag, err := r.extractor.Extract(tables)
	if err != nil {
		return nil, diag, fmt.Errorf("applicant %s: %w", src.ID, err)
	}

	r.record(rec, diag)
	return rec, diag, nil
}

func (r *Runner) record(rec *domain.StudentRecord, diag extraction.Diagnostics) {
	r.metrics.Applicants.Inc()
	for _, kind := range domain.Kinds {
		r.metrics.RowsProcessed.WithLabelValues(string(kind)).Add(float64(diag.RowsSeen[kind]))
		r.metrics.EntriesEmitted.WithLabelValues(string(kind)).Add(float64(len(rec.Entries(kind))))
	}
	for _, d := range diag.Dropped {
		r.metrics.RowsDropped.WithLabelValues(string(d.Kind), string(d.Reason)).Inc()
	}
}
