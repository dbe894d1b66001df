package s3

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"tradeflow/internal/config"
	"tradeflow/internal/port"
)

type reportArchive struct {
	bucket    string
	uploader  *manager.Uploader
	presigner *s3.PresignClient
}

// NewReportArchive creates a ReportArchive backed by the configured S3 bucket.
// A custom endpoint switches to path-style addressing for MinIO and LocalStack.
func NewReportArchive(ctx context.Context, cfg *config.S3Config) (port.ReportArchive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 report archive: bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &reportArchive{
		bucket:    cfg.Bucket,
		uploader:  manager.NewUploader(client),
		presigner: s3.NewPresignClient(client),
	}, nil
}

func (a *reportArchive) Put(ctx context.Context, obj port.ArchiveObject) (*port.StoredObject, error) {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(obj.Key),
		Body:        obj.Body,
		ContentType: aws.String(obj.ContentType),
		Metadata:    obj.Metadata,
	}
	if obj.ContentDisposition != "" {
		in.ContentDisposition = aws.String(obj.ContentDisposition)
	}

	result, err := a.uploader.Upload(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("s3 put %s: %w", obj.Key, err)
	}

	out := &port.StoredObject{Key: obj.Key, Location: result.Location}
	if result.ETag != nil {
		out.ETag = strings.Trim(*result.ETag, `"`)
	}
	return out, nil
}

func (a *reportArchive) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	result, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", key, err)
	}
	return result.URL, nil
}
