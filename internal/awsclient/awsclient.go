// Package awsclient implements the monitor's collaborator contracts on top
// of the AWS SDK: instance enumeration and console retrieval against EC2,
// durable archiving against S3. Credentials come from the SDK's default
// chain (environment, shared config, instance role).
package awsclient

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// LoadConfig resolves the AWS configuration for the given region.
func LoadConfig(ctx context.Context, region string) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
}

// opContext derives a per-call context. A zero timeout keeps the parent
// context untouched, preserving the original no-timeout behavior.
func opContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
