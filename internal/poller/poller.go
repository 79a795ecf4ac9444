package poller

import (
	"context"
	"sync"
	"time"

	"github.com/fj604/ec2-console-log-monitor/internal/logger"
	"github.com/fj604/ec2-console-log-monitor/internal/monitor"
	"github.com/fj604/ec2-console-log-monitor/internal/sink"
	"github.com/fj604/ec2-console-log-monitor/internal/tracker"
)

// Stats are cumulative counters over the life of the process, exported for
// the status endpoint.
type Stats struct {
	Cycles              int       `json:"cycles"`
	EnumerationFailures int       `json:"enumeration_failures"`
	FetchFailures       int       `json:"fetch_failures"`
	SkippedNoOutput     int       `json:"skipped_no_output"`
	SnapshotsDelivered  int       `json:"snapshots_delivered"`
	SinkFailures        int       `json:"sink_failures"`
	LastCycle           time.Time `json:"last_cycle"`
}

// Poller runs the polling loop: enumerate tagged instances, fetch each
// console snapshot sequentially, deliver the novel ones, sleep, repeat.
// No failure inside a cycle stops the loop.
type Poller struct {
	directory monitor.InstanceDirectory
	console   monitor.ConsoleSource
	tracker   *tracker.Tracker
	fanout    *sink.Fanout
	logger    logger.Logger
	tagKey    string
	interval  time.Duration
	stopCh    chan struct{}

	mu    sync.Mutex
	stats Stats
}

func New(
	directory monitor.InstanceDirectory,
	console monitor.ConsoleSource,
	track *tracker.Tracker,
	fanout *sink.Fanout,
	log logger.Logger,
	tagKey string,
	interval time.Duration,
) *Poller {
	return &Poller{
		directory: directory,
		console:   console,
		tracker:   track,
		fanout:    fanout,
		logger:    log,
		tagKey:    tagKey,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start runs the loop in the background until Stop is called or the context
// is cancelled. The first cycle runs immediately; after each cycle the loop
// sleeps for exactly the configured interval.
func (p *Poller) Start(ctx context.Context) error {
	go func() {
		p.RunCycle(ctx)
		timer := time.NewTimer(p.interval)
		defer timer.Stop()
		for {
			p.logger.Info("sleeping until next cycle",
				logger.Duration("interval", p.interval))
			select {
			case <-timer.C:
				p.RunCycle(ctx)
				timer.Reset(p.interval)
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the loop.
func (p *Poller) Stop() {
	close(p.stopCh)
}

// RunCycle executes one full polling cycle. An enumeration failure skips the
// per-instance work entirely; the loop recovers on the next cycle.
func (p *Poller) RunCycle(ctx context.Context) {
	p.logger.Info("retrieving instances",
		logger.String("tag_key", p.tagKey))

	ids, err := p.directory.ListInstances(ctx, p.tagKey)
	if err != nil {
		p.logger.Error("cannot list instances",
			logger.Error(err))
		p.update(func(s *Stats) {
			s.EnumerationFailures++
			s.Cycles++
			s.LastCycle = time.Now()
		})
		return
	}

	for _, id := range ids {
		p.pollInstance(ctx, id)
	}

	p.update(func(s *Stats) {
		s.Cycles++
		s.LastCycle = time.Now()
	})
}

// pollInstance fetches one instance's console and delivers it when novel.
// Failures are logged and scoped to this instance only.
func (p *Poller) pollInstance(ctx context.Context, instanceID string) {
	p.logger.Info("retrieving console output",
		logger.String("instance_id", instanceID))

	snap, err := p.console.GetSnapshot(ctx, instanceID)
	if err != nil {
		p.logger.Error("cannot retrieve console output",
			logger.String("instance_id", instanceID),
			logger.Error(err))
		p.update(func(s *Stats) { s.FetchFailures++ })
		return
	}

	if !snap.HasOutput() {
		p.logger.Warn("no console output received",
			logger.String("instance_id", instanceID))
		p.update(func(s *Stats) { s.SkippedNoOutput++ })
		return
	}

	if !p.tracker.IsNovel(snap.InstanceID, snap.Timestamp) {
		p.logger.Info("no updates since last poll",
			logger.String("instance_id", instanceID),
			logger.Time("timestamp", snap.Timestamp))
		return
	}

	p.logger.Info("console updated",
		logger.String("instance_id", instanceID),
		logger.Time("timestamp", snap.Timestamp))

	// Recorded before delivery: a failed archive write is not retried
	// until the remote timestamp changes again.
	p.tracker.Record(snap.InstanceID, snap.Timestamp)

	failed := p.fanout.Deliver(ctx, snap)
	p.update(func(s *Stats) {
		s.SnapshotsDelivered++
		s.SinkFailures += failed
	})
}

// Stats returns a copy of the cumulative counters.
func (p *Poller) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stats
}

func (p *Poller) update(fn func(*Stats)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fn(&p.stats)
}
