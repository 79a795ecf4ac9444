package monitor

import (
	"context"
	"time"
)

// ConsoleSnapshot is the result of one console fetch for one instance.
type ConsoleSnapshot struct {
	InstanceID string
	Timestamp  time.Time // when the platform last refreshed the console output
	Output     []byte    // nil when the platform has not produced console data yet
}

// HasOutput reports whether the platform returned console data for this fetch.
func (s ConsoleSnapshot) HasOutput() bool {
	return s.Output != nil
}

// InstanceDirectory enumerates the instances currently carrying a tag key.
type InstanceDirectory interface {
	ListInstances(ctx context.Context, tagKey string) ([]string, error)
}

// ConsoleSource fetches the latest console snapshot for an instance.
type ConsoleSource interface {
	GetSnapshot(ctx context.Context, instanceID string) (ConsoleSnapshot, error)
}

// ObjectArchive durably stores a payload under a key in the configured bucket.
type ObjectArchive interface {
	Put(ctx context.Context, key string, body []byte) error
}
