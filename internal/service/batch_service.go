package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"invex/internal/aggregator"
	"invex/internal/config"
	"invex/internal/csvexport"
	"invex/internal/domain"
	"invex/internal/port"
	"invex/internal/xlsxexport"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv"
)

// BatchInput is the DTO for an invoice-mode run.
type BatchInput struct {
	InputDir  string
	OutputDir string
	Workers   int
	Recursive bool
}

// BatchResult describes a finished run.
type BatchResult struct {
	Summary      domain.RunSummary
	WorkbookPath string
	FailuresPath string
	ReportURL    string
}

// Sinks are the optional destinations of a run besides the output directory.
// A nil field disables that sink.
type Sinks struct {
	Repository port.InvoiceRepository
	Storage    port.ObjectStorage
	Archive    config.S3Config
	Sender     port.SummarySender
}

// BatchService defines the invoice-mode run contract.
type BatchService interface {
	Run(ctx context.Context, input BatchInput) (*BatchResult, error)
}

type batchService struct {
	loader    port.TextLoader
	processor InvoiceProcessor
	cfg       config.BatchConfig
	sinks     Sinks
	now       func() time.Time
}

// NewBatchService creates a new BatchService implementation.
func NewBatchService(
	loader port.TextLoader,
	processor InvoiceProcessor,
	cfg config.BatchConfig,
	sinks Sinks,
) BatchService {
	return &batchService{
		loader:    loader,
		processor: processor,
		cfg:       cfg,
		sinks:     sinks,
		now:       time.Now,
	}
}

type outcome struct {
	record  *domain.InvoiceRecord
	failure *domain.Failure
}

// Run processes every PDF in the input directory and writes the workbook and failures
// report. Only setup problems are returned as errors; per-file problems become failures
// in the summary. Sink errors are logged and do not fail the run.
func (s *batchService) Run(ctx context.Context, input BatchInput) (*BatchResult, error) {
	startedAt := s.now().UTC()
	runID := uuid.New()
	log := logrus.WithField("run_id", runID)

	files, err := DiscoverPDFs(input.InputDir, input.Recursive)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(input.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", input.OutputDir, err)
	}

	workers := input.Workers
	if workers < 1 {
		workers = 1
	}
	log.WithFields(logrus.Fields{"files": len(files), "workers": workers}).Info("batch started")

	outcomes := make([]outcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			outcomes[i] = s.processFile(gctx, file)
			return nil
		})
	}
	_ = g.Wait()

	agg := aggregator.New()
	for _, o := range outcomes {
		if o.failure != nil {
			agg.AddFailure(*o.failure)
			continue
		}
		agg.AddRecord(o.record)
	}

	result := &BatchResult{
		WorkbookPath: filepath.Join(input.OutputDir, s.cfg.WorkbookName),
		FailuresPath: filepath.Join(input.OutputDir, s.cfg.FailuresName),
	}
	if err := xlsxexport.WriteFile(result.WorkbookPath, agg.Sheets(), agg.Failures()); err != nil {
		return nil, err
	}
	if err := csvexport.WriteFailuresFile(result.FailuresPath, agg.Failures()); err != nil {
		return nil, err
	}

	summary := agg.Summary()
	summary.RunID = runID
	summary.StartedAt = startedAt
	summary.FinishedAt = s.now().UTC()
	result.Summary = summary

	s.persist(ctx, &summary, agg)
	result.ReportURL = s.archive(ctx, runID, result)
	s.notify(ctx, &summary, result.ReportURL)

	log.WithFields(logrus.Fields{
		"succeeded":    summary.Succeeded,
		"flagged":      summary.Flagged,
		"unrecognized": summary.Unrecognized,
		"failed":       summary.Failed,
	}).Info("batch finished")
	return result, nil
}

// processFile never returns an error: every problem, a panic included, becomes a failure.
func (s *batchService) processFile(ctx context.Context, file string) (out outcome) {
	name := filepath.Base(file)
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{"file": name, "panic": r}).Error("recovered from panic")
			out = outcome{failure: panicFailure(name, r)}
		}
	}()

	doc, err := s.loader.Load(ctx, file)
	if err != nil {
		return outcome{failure: failure(name, domain.IssuerUnrecognized, domain.FailureFailed, err.Error())}
	}
	rec, f := s.processor.Process(ctx, doc)
	return outcome{record: rec, failure: f}
}

func (s *batchService) persist(ctx context.Context, summary *domain.RunSummary, agg *aggregator.Aggregator) {
	repo := s.sinks.Repository
	if repo == nil {
		return
	}
	log := logrus.WithField("run_id", summary.RunID)

	if err := repo.SaveRun(ctx, summary); err != nil {
		log.WithError(err).Warn("failed to save run")
		return
	}
	for _, rec := range agg.Records() {
		if err := repo.SaveRecord(ctx, summary.RunID, rec); err != nil {
			log.WithError(err).WithField("file", rec.FileName).Warn("failed to save record")
		}
	}
	failures := agg.Failures()
	for i := range failures {
		if err := repo.SaveFailure(ctx, summary.RunID, &failures[i]); err != nil {
			log.WithError(err).WithField("file", failures[i].FileName).Warn("failed to save failure")
		}
	}
}

// archive uploads both reports and returns a presigned URL for the workbook, or "" when
// archival is disabled or failed.
func (s *batchService) archive(ctx context.Context, runID uuid.UUID, result *BatchResult) string {
	if s.sinks.Storage == nil {
		return ""
	}
	cfg := s.sinks.Archive
	log := logrus.WithField("run_id", runID)

	workbookKey := archiveKey(cfg.Prefix, runID, filepath.Base(result.WorkbookPath))
	uploads := []struct {
		path, key, contentType string
	}{
		{result.WorkbookPath, workbookKey, xlsxContentType},
		{result.FailuresPath, archiveKey(cfg.Prefix, runID, filepath.Base(result.FailuresPath)), csvContentType},
	}
	for _, u := range uploads {
		if err := s.upload(ctx, cfg.Bucket, u.key, u.path, u.contentType); err != nil {
			log.WithError(err).WithField("key", u.key).Warn("archive upload failed")
			return ""
		}
	}

	url, err := s.sinks.Storage.GetPresignedURL(ctx, cfg.Bucket, workbookKey, cfg.PresignExpiry)
	if err != nil {
		log.WithError(err).Warn("presigning workbook failed")
		return ""
	}
	return url
}

func (s *batchService) upload(ctx context.Context, bucket, key, file, contentType string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", file, err)
	}
	_, err = s.sinks.Storage.Upload(ctx, port.UploadInput{
		Bucket:      bucket,
		Key:         key,
		Body:        f,
		ContentType: contentType,
		Size:        info.Size(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	return nil
}

func (s *batchService) notify(ctx context.Context, summary *domain.RunSummary, reportURL string) {
	if s.sinks.Sender == nil {
		return
	}
	if err := s.sinks.Sender.SendRunSummary(ctx, summary, reportURL); err != nil {
		logrus.WithError(err).WithField("run_id", summary.RunID).Warn("failed to send run summary")
	}
}

func archiveKey(prefix string, runID uuid.UUID, name string) string {
	if prefix == "" {
		prefix = "runs"
	}
	return path.Join(prefix, runID.String(), name)
}
