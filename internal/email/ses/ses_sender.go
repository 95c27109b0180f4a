package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/sirupsen/logrus"

	"invex/internal/config"
	"invex/internal/domain"
	"invex/internal/port"
)

// emailAPI is the subset of the SES v2 client used by the sender.
type emailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesSender struct {
	client      emailAPI
	fromAddress string
	fromName    string
	to          []string
}

// NewSESSender creates a new SES-backed SummarySender.
func NewSESSender(ctx context.Context, cfg *config.EmailConfig) (port.SummarySender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return newSender(sesv2.NewFromConfig(awsCfg), cfg), nil
}

func newSender(client emailAPI, cfg *config.EmailConfig) *sesSender {
	return &sesSender{
		client:      client,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		to:          cfg.To,
	}
}

func (s *sesSender) SendRunSummary(ctx context.Context, summary *domain.RunSummary, reportURL string) error {
	if len(s.to) == 0 {
		logrus.WithField("run_id", summary.RunID).Warn("no summary recipients configured, skipping email")
		return nil
	}

	subject := buildSubject(summary)
	htmlBody := buildSummaryHTML(summary, reportURL)
	textBody := buildSummaryText(summary, reportURL)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: s.to,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildSubject(s *domain.RunSummary) string {
	return fmt.Sprintf("Invoice run %s: %d of %d extracted", shortID(s), s.Succeeded, s.Files)
}

func buildSummaryText(s *domain.RunSummary, reportURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s finished at %s.\n\n", s.RunID, s.FinishedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Files:        %d\n", s.Files)
	fmt.Fprintf(&b, "Succeeded:    %d\n", s.Succeeded)
	fmt.Fprintf(&b, "Flagged:      %d\n", s.Flagged)
	fmt.Fprintf(&b, "Unrecognized: %d\n", s.Unrecognized)
	fmt.Fprintf(&b, "Failed:       %d\n", s.Failed)
	if len(s.Failures) > 0 {
		b.WriteString("\nSkipped documents:\n")
		for _, f := range s.Failures {
			fmt.Fprintf(&b, "- %s (%s): %s\n", f.FileName, f.Kind, f.Reason)
		}
	}
	if reportURL != "" {
		fmt.Fprintf(&b, "\nWorkbook: %s\n", reportURL)
	}
	return b.String()
}

func buildSummaryHTML(s *domain.RunSummary, reportURL string) string {
	var rows strings.Builder
	for _, f := range s.Failures {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(f.FileName), html.EscapeString(string(f.Kind)), html.EscapeString(f.Reason))
	}

	link := ""
	if reportURL != "" {
		link = fmt.Sprintf(`<p><a href="%s">Download workbook</a></p>`, html.EscapeString(reportURL))
	}

	failures := ""
	if rows.Len() > 0 {
		failures = `<h3>Skipped documents</h3><table cellpadding="4"><tr><th>File</th><th>Kind</th><th>Reason</th></tr>` +
			rows.String() + `</table>`
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice run %s</h2>
  <p>%d files: %d succeeded (%d flagged), %d unrecognized, %d failed.</p>
  %s
  %s
</body>
</html>`, html.EscapeString(s.RunID.String()), s.Files, s.Succeeded, s.Flagged, s.Unrecognized, s.Failed, link, failures)
}

func shortID(s *domain.RunSummary) string {
	id := s.RunID.String()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
