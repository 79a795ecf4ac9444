package awsclient

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archive stores console output in an S3 bucket.
type Archive struct {
	api     *s3.Client
	bucket  string
	timeout time.Duration
}

func NewArchive(cfg aws.Config, bucket string, timeout time.Duration) *Archive {
	return &Archive{
		api:     s3.NewFromConfig(cfg),
		bucket:  bucket,
		timeout: timeout,
	}
}

// Bucket returns the configured bucket name.
func (a *Archive) Bucket() string { return a.bucket }

// Put writes the payload under the key. Every write is a single complete
// object put; there is no multi-step transaction to leave half-done.
func (a *Archive) Put(ctx context.Context, key string, body []byte) error {
	ctx, cancel := opContext(ctx, a.timeout)
	defer cancel()

	_, err := a.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("put object %s to bucket %s: %w", key, a.bucket, err)
	}
	return nil
}
