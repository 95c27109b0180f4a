package ses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invex/internal/config"
	"invex/internal/domain"
)

type mockEmailAPI struct {
	mock.Mock
}

func (m *mockEmailAPI) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sesv2.SendEmailOutput), args.Error(1)
}

func summary() *domain.RunSummary {
	return &domain.RunSummary{
		RunID:        uuid.MustParse("6f1c2a9e-0000-4000-8000-000000000001"),
		FinishedAt:   time.Date(2024, 6, 30, 10, 0, 0, 0, time.UTC),
		Files:        3,
		Succeeded:    1,
		Flagged:      1,
		Unrecognized: 1,
		Failed:       1,
		Failures: []domain.Failure{
			{FileName: "x.pdf", Issuer: domain.IssuerUnrecognized, Kind: domain.FailureUnrecognized, Reason: "unrecognized issuer"},
			{FileName: "<y>.pdf", Issuer: domain.IssuerSDI, Kind: domain.FailureFailed, Reason: "line-item table not found"},
		},
	}
}

func emailConfig(to ...string) *config.EmailConfig {
	return &config.EmailConfig{FromAddress: "noreply@invex.local", FromName: "Invex", To: to}
}

func TestSendRunSummary(t *testing.T) {
	api := new(mockEmailAPI)
	sender := newSender(api, emailConfig("ops@example.com", "finance@example.com"))

	api.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *sesv2.SendEmailInput) bool {
		return *in.FromEmailAddress == "Invex <noreply@invex.local>" &&
			len(in.Destination.ToAddresses) == 2 &&
			*in.Content.Simple.Subject.Data == "Invoice run 6f1c2a9e: 1 of 3 extracted"
	})).Return(&sesv2.SendEmailOutput{}, nil)

	require.NoError(t, sender.SendRunSummary(context.Background(), summary(), "https://example.com/w.xlsx"))
	api.AssertExpectations(t)
}

func TestSendRunSummary_NoRecipients(t *testing.T) {
	api := new(mockEmailAPI)
	sender := newSender(api, emailConfig())

	require.NoError(t, sender.SendRunSummary(context.Background(), summary(), ""))
	api.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestSendRunSummary_Error(t *testing.T) {
	api := new(mockEmailAPI)
	sender := newSender(api, emailConfig("ops@example.com"))
	api.On("SendEmail", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	err := sender.SendRunSummary(context.Background(), summary(), "")
	assert.ErrorContains(t, err, "throttled")
}

func TestBuildSummaryText(t *testing.T) {
	text := buildSummaryText(summary(), "https://example.com/w.xlsx")

	assert.Contains(t, text, "Succeeded:    1")
	assert.Contains(t, text, "- x.pdf (unrecognized): unrecognized issuer")
	assert.Contains(t, text, "Workbook: https://example.com/w.xlsx")
	assert.NotContains(t, buildSummaryText(summary(), ""), "Workbook:")
}

func TestBuildSummaryHTML_Escapes(t *testing.T) {
	body := buildSummaryHTML(summary(), "")

	assert.Contains(t, body, "&lt;y&gt;.pdf")
	assert.NotContains(t, body, "Download workbook")
}
