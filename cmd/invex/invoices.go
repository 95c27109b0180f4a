package main

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"invex/internal/classifier"
	"invex/internal/config"
	"invex/internal/domain"
	"invex/internal/email/noop"
	"invex/internal/email/ses"
	"invex/internal/extractor"
	"invex/internal/pdftext"
	"invex/internal/repository/postgres"
	"invex/internal/service"
	s3storage "invex/internal/storage/s3"
	"invex/internal/validator"
)

type invoicesOptions struct {
	inputDir  string
	outputDir string
	workers   int
	recursive bool
}

func newInvoicesCmd(root *rootOptions) *cobra.Command {
	opts := &invoicesOptions{}

	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Extract every invoice PDF in a directory into a workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := root.cfg
			if !cmd.Flags().Changed("workers") {
				opts.workers = cfg.Batch.Workers
			}
			if !cmd.Flags().Changed("recursive") {
				opts.recursive = cfg.Batch.Recursive
			}
			return runInvoices(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.inputDir, "input-dir", "i", "", "directory containing invoice PDFs")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "directory to write the workbook and failures report to")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "number of files processed in parallel")
	cmd.Flags().BoolVar(&opts.recursive, "recursive", false, "descend into subdirectories")
	_ = cmd.MarkFlagRequired("input-dir")
	_ = cmd.MarkFlagRequired("output-dir")
	return cmd
}

func runInvoices(ctx context.Context, out io.Writer, cfg *config.Config, opts *invoicesOptions) error {
	sinks, closeSinks, err := buildSinks(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSinks()

	processor := service.NewInvoiceProcessor(
		classifier.NewFromConfig(cfg.Issuers),
		extractor.NewDefaultRegistry(cfg.Issuers),
		validator.NewEngine(validator.NewBuiltinRegistry()),
	)
	batch := service.NewBatchService(pdftext.NewLoader(), processor, cfg.Batch, sinks)

	result, err := batch.Run(ctx, service.BatchInput{
		InputDir:  opts.inputDir,
		OutputDir: opts.outputDir,
		Workers:   opts.workers,
		Recursive: opts.recursive,
	})
	if err != nil {
		return err
	}

	printSummary(out, result)
	return nil
}

// buildSinks connects the optional run destinations enabled in cfg. The returned func
// releases them.
func buildSinks(ctx context.Context, cfg *config.Config) (service.Sinks, func(), error) {
	sinks := service.Sinks{Archive: cfg.S3}
	closers := []func(){}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.DB.Enabled {
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return sinks, closeAll, fmt.Errorf("failed to connect to database: %w", err)
		}
		closers = append(closers, func() { _ = db.Close() })
		sinks.Repository = postgres.NewInvoiceRepo(db)
	}

	if cfg.S3.Enabled {
		s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			closeAll()
			return sinks, closeAll, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		sinks.Storage = s3Client
	}

	switch cfg.Email.Provider {
	case "ses":
		sender, err := ses.NewSESSender(ctx, &cfg.Email)
		if err != nil {
			closeAll()
			return sinks, closeAll, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		sinks.Sender = sender
	case "noop", "":
		sinks.Sender = noop.NewNoopSender()
	default:
		logrus.WithField("provider", cfg.Email.Provider).Warn("unknown email provider, summaries will not be sent")
	}

	return sinks, closeAll, nil
}

func printSummary(out io.Writer, result *service.BatchResult) {
	s := result.Summary
	fmt.Fprintf(out, "Run %s\n", s.RunID)
	fmt.Fprintf(out, "  files:        %d\n", s.Files)
	fmt.Fprintf(out, "  succeeded:    %d (flagged %d)\n", s.Succeeded, s.Flagged)
	fmt.Fprintf(out, "  unrecognized: %d\n", s.Unrecognized)
	fmt.Fprintf(out, "  failed:       %d\n", s.Failed)
	for _, f := range s.Failures {
		marker := "skipped"
		if f.Kind == domain.FailureFailed {
			marker = "failed"
		}
		fmt.Fprintf(out, "  %-7s %s: %s\n", marker, f.FileName, f.Reason)
	}
	fmt.Fprintf(out, "workbook: %s\n", result.WorkbookPath)
	fmt.Fprintf(out, "failures: %s\n", result.FailuresPath)
	if result.ReportURL != "" {
		fmt.Fprintf(out, "archived: %s\n", result.ReportURL)
	}
}
