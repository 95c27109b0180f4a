// Package s3 archives batch run reports (the workbook and failures report) in an S3 or
// S3-compatible bucket and hands out time-limited links to them.
package s3

import (
	"context"
	"fmt"
	"mime"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"invex/internal/config"
	"invex/internal/port"
)

const (
	// SigV4 presigned URLs are valid for at most seven days.
	maxPresignExpiry     = 7 * 24 * time.Hour
	defaultPresignExpiry = 24 * time.Hour
)

// reportArchive stores run reports. Objects are written with a download file name so
// a link opened from the summary email saves as invoices.xlsx rather than the key.
type reportArchive struct {
	presigner *s3.PresignClient
	uploader  *manager.Uploader
}

// NewS3Client connects the run-report archive. A custom endpoint (MinIO, LocalStack)
// switches to path-style addressing.
func NewS3Client(ctx context.Context, cfg *config.S3Config) (port.ObjectStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config for report archive: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &reportArchive{
		presigner: s3.NewPresignClient(client),
		uploader:  manager.NewUploader(client),
	}, nil
}

// Upload stores one report under input.Key.
func (a *reportArchive) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	result, err := a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(input.Bucket),
		Key:                aws.String(input.Key),
		Body:               input.Body,
		ContentType:        aws.String(input.ContentType),
		ContentDisposition: aws.String(attachment(input.Key)),
	})
	if err != nil {
		return nil, fmt.Errorf("archiving report %s: %w", input.Key, err)
	}

	return &port.UploadOutput{
		Location: result.Location,
		ETag:     aws.ToString(result.ETag),
	}, nil
}

// GetPresignedURL returns a download link for an archived report. Expiries outside
// (0, 7 days] fall back to one day or are capped at seven.
func (a *reportArchive) GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	result, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry(expirySeconds)))
	if err != nil {
		return "", fmt.Errorf("presigning report %s: %w", key, err)
	}
	return result.URL, nil
}

func presignExpiry(seconds int64) time.Duration {
	d := time.Duration(seconds) * time.Second
	switch {
	case d <= 0:
		return defaultPresignExpiry
	case d > maxPresignExpiry:
		return maxPresignExpiry
	}
	return d
}

func attachment(key string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": path.Base(key)})
}
