package s3

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-tracker/internal/model/reports"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, f.err
}

func Test_ObjectKey_ShouldGroupByUserAndMonth(t *testing.T) {
	id := uuid.MustParse("8f14e45f-ceea-467f-a0a7-2f4b0c0e7e3a")
	at := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "reports/123/2024/03/8f14e45f-ceea-467f-a0a7-2f4b0c0e7e3a.xlsx", objectKey(123, at, id))
}

func Test_Archive_ShouldUploadWorkbook(t *testing.T) {
	putter := &fakePutter{}
	a := newArchiver(putter, "expense-reports")
	a.now = func() time.Time { return time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC) }

	err := a.Archive(context.Background(), 42, reports.Report{
		Data:           []byte("xlsx bytes"),
		TotalLocal:     decimal.RequireFromString("100"),
		TotalReference: decimal.RequireFromString("2.41"),
	})
	require.NoError(t, err)

	assert.Equal(t, "expense-reports", aws.ToString(putter.in.Bucket))
	assert.Regexp(t, `^reports/42/2024/01/[0-9a-f-]{36}\.xlsx$`, aws.ToString(putter.in.Key))
	assert.Equal(t, []byte("xlsx bytes"), putter.body)
	assert.Equal(t, "2.41", putter.in.Metadata["total-usd"])
}

func Test_Archive_ShouldWrapUploadErrors(t *testing.T) {
	a := newArchiver(&fakePutter{err: errors.New("NoSuchBucket")}, "missing")

	err := a.Archive(context.Background(), 1, reports.Report{Data: []byte("x")})

	assert.ErrorContains(t, err, "archive report")
}
