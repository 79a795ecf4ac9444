package sink

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fj604/ec2-console-log-monitor/internal/logger"
	"github.com/fj604/ec2-console-log-monitor/internal/monitor"
)

// FileSink mirrors snapshots to plain files, one per (instance, timestamp),
// overwriting any existing file of the same name.
type FileSink struct {
	dir    string // "" = current working directory
	logger logger.Logger
}

func NewFileSink(dir string, log logger.Logger) *FileSink {
	return &FileSink{
		dir:    dir,
		logger: log,
	}
}

func (s *FileSink) Name() string { return "file" }

func (s *FileSink) Deliver(ctx context.Context, snap monitor.ConsoleSnapshot) error {
	name := FileName(snap)
	if s.dir != "" {
		name = filepath.Join(s.dir, name)
	}
	s.logger.Info("writing console output to file",
		logger.String("file", name))
	return os.WriteFile(name, snap.Output, 0o644)
}
