package sink

import (
	"context"

	"github.com/fj604/ec2-console-log-monitor/internal/logger"
	"github.com/fj604/ec2-console-log-monitor/internal/monitor"
)

// ArchiveSink writes snapshots to the object archive. It is always enabled;
// the archive is the system of record for collected console logs.
type ArchiveSink struct {
	archive monitor.ObjectArchive
	bucket  string
	logger  logger.Logger
}

func NewArchiveSink(archive monitor.ObjectArchive, bucket string, log logger.Logger) *ArchiveSink {
	return &ArchiveSink{
		archive: archive,
		bucket:  bucket,
		logger:  log,
	}
}

func (s *ArchiveSink) Name() string { return "archive" }

func (s *ArchiveSink) Deliver(ctx context.Context, snap monitor.ConsoleSnapshot) error {
	key := ArchiveKey(snap)
	s.logger.Info("writing console output to archive",
		logger.String("bucket", s.bucket),
		logger.String("key", key))
	return s.archive.Put(ctx, key, snap.Output)
}
