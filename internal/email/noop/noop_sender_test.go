package noop

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invex/internal/domain"
)

func TestNoopSender_LogsSummary(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sender := &noopSender{logger: logger}
	runID := uuid.New()

	err := sender.SendRunSummary(context.Background(), &domain.RunSummary{RunID: runID, Files: 2, Succeeded: 2}, "https://x")
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, runID, entry.Data["run_id"])
	assert.Equal(t, 2, entry.Data["succeeded"])
	assert.Equal(t, "https://x", entry.Data["report_url"])
}
