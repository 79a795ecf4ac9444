package sink

import (
	"context"
	"time"

	"github.com/fj604/ec2-console-log-monitor/internal/logger"
	"github.com/fj604/ec2-console-log-monitor/internal/monitor"
)

// Sink is one destination for a novel console snapshot.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, snap monitor.ConsoleSnapshot) error
}

// ArchiveKey is the object key a snapshot is archived under:
// "<instanceID>/<timestamp>" with the timestamp in RFC 3339 form.
func ArchiveKey(snap monitor.ConsoleSnapshot) string {
	return snap.InstanceID + "/" + snap.Timestamp.UTC().Format(time.RFC3339)
}

// FileName is the local file name a snapshot is mirrored to:
// "<instanceID>_<YYYY-MM-DDTHHMMSS>".
func FileName(snap monitor.ConsoleSnapshot) string {
	return snap.InstanceID + "_" + snap.Timestamp.UTC().Format("2006-01-02T150405")
}

// Fanout dispatches a snapshot to every configured sink. A failing sink is
// logged and never blocks the remaining sinks or the polling cycle.
type Fanout struct {
	sinks  []Sink
	logger logger.Logger
}

func NewFanout(log logger.Logger, sinks ...Sink) *Fanout {
	return &Fanout{
		sinks:  sinks,
		logger: log,
	}
}

// Deliver sends the snapshot to all sinks and returns how many failed.
func (f *Fanout) Deliver(ctx context.Context, snap monitor.ConsoleSnapshot) int {
	failed := 0
	for _, s := range f.sinks {
		if err := s.Deliver(ctx, snap); err != nil {
			f.logger.Error("sink delivery failed",
				logger.String("sink", s.Name()),
				logger.String("instance_id", snap.InstanceID),
				logger.Time("timestamp", snap.Timestamp),
				logger.Error(err))
			failed++
		}
	}
	return failed
}
