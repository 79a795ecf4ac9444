package sink

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fj604/ec2-console-log-monitor/internal/monitor"
)

// StdoutSink prints snapshots as delimited blocks to a writer, normally
// standard output.
type StdoutSink struct {
	out io.Writer
}

func NewStdoutSink(out io.Writer) *StdoutSink {
	return &StdoutSink{out: out}
}

func (s *StdoutSink) Name() string { return "stdout" }

func (s *StdoutSink) Deliver(ctx context.Context, snap monitor.ConsoleSnapshot) error {
	_, err := fmt.Fprintf(s.out,
		"====================================\n"+
			"Instance ID: %s\n"+
			"Timestamp: %s\n"+
			"------------------------------------\n"+
			"%s\n",
		snap.InstanceID,
		snap.Timestamp.UTC().Format(time.RFC3339),
		snap.Output)
	return err
}
