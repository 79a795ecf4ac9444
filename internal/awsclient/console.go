package awsclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/fj604/ec2-console-log-monitor/internal/monitor"
)

// Console fetches serial console output from EC2.
type Console struct {
	api     *ec2.Client
	timeout time.Duration
}

func NewConsole(cfg aws.Config, timeout time.Duration) *Console {
	return &Console{
		api:     ec2.NewFromConfig(cfg),
		timeout: timeout,
	}
}

// GetSnapshot returns the latest console output for the instance. EC2
// delivers the output base64-encoded; the snapshot carries the decoded
// bytes. Output stays nil when the platform has not produced any console
// data for the instance yet.
func (c *Console) GetSnapshot(ctx context.Context, instanceID string) (monitor.ConsoleSnapshot, error) {
	ctx, cancel := opContext(ctx, c.timeout)
	defer cancel()

	out, err := c.api.GetConsoleOutput(ctx, &ec2.GetConsoleOutputInput{
		InstanceId: aws.String(instanceID),
	})
	if err != nil {
		return monitor.ConsoleSnapshot{}, fmt.Errorf("get console output for %s: %w", instanceID, err)
	}

	snap := monitor.ConsoleSnapshot{InstanceID: instanceID}
	if out.Timestamp != nil {
		snap.Timestamp = *out.Timestamp
	}
	if out.Output != nil {
		decoded, err := base64.StdEncoding.DecodeString(*out.Output)
		if err != nil {
			return monitor.ConsoleSnapshot{}, fmt.Errorf("decode console output for %s: %w", instanceID, err)
		}
		snap.Output = decoded
	}

	return snap, nil
}
