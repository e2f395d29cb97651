package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type config interface {
	Endpoint() string
	Region() string
	Bucket() string
	AccessKey() string
	SecretAccessKey() string
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver keeps a copy of every workbook sent to a user.
type Archiver struct {
	client objectPutter
	bucket string
	now    func() time.Time
}

func NewArchiver(ctx context.Context, config config) (*Archiver, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(config.Region())}
	if config.AccessKey() != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			config.AccessKey(),
			config.SecretAccessKey(),
			"",
		)))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if config.Endpoint() != "" {
			// MinIO and other S3 compatible stores
			o.BaseEndpoint = aws.String(config.Endpoint())
			o.UsePathStyle = true
		}
	})
	return newArchiver(client, config.Bucket()), nil
}

func newArchiver(client objectPutter, bucket string) *Archiver {
	return &Archiver{client: client, bucket: bucket, now: time.Now}
}

func (a *Archiver) Archive(ctx context.Context, userID int64, report reports.Report) error {
	key := objectKey(userID, a.now(), uuid.New())
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(report.Data),
		ContentLength: aws.Int64(int64(len(report.Data))),
		ContentType:   aws.String(xlsxContentType),
		Metadata: map[string]string{
			"total-uah": report.TotalLocal.StringFixed(2),
			"total-usd": report.TotalReference.StringFixed(2),
		},
	})
	if err != nil {
		return errors.Wrap(err, "archive report")
	}
	logger.Info("report archived", zap.Int64("userID", userID), zap.String("key", key))
	return nil
}

func objectKey(userID int64, at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("reports/%d/%04d/%02d/%s.xlsx", userID, at.Year(), int(at.Month()), id)
}
