package noop

import (
	"context"

	"github.com/sirupsen/logrus"

	"invex/internal/domain"
	"invex/internal/port"
)

type noopSender struct {
	logger logrus.FieldLogger
}

// NewNoopSender creates a SummarySender that only logs the run summary.
func NewNoopSender() port.SummarySender {
	return &noopSender{logger: logrus.StandardLogger()}
}

func (s *noopSender) SendRunSummary(_ context.Context, summary *domain.RunSummary, reportURL string) error {
	s.logger.WithFields(logrus.Fields{
		"run_id":       summary.RunID,
		"files":        summary.Files,
		"succeeded":    summary.Succeeded,
		"flagged":      summary.Flagged,
		"unrecognized": summary.Unrecognized,
		"failed":       summary.Failed,
		"report_url":   reportURL,
	}).Info("[NOOP EMAIL] run summary")
	return nil
}
