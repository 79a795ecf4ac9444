package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fj604/ec2-console-log-monitor/internal/awsclient"
	"github.com/fj604/ec2-console-log-monitor/internal/config"
	"github.com/fj604/ec2-console-log-monitor/internal/httpserver"
	"github.com/fj604/ec2-console-log-monitor/internal/httpserver/deps"
	"github.com/fj604/ec2-console-log-monitor/internal/logger"
	"github.com/fj604/ec2-console-log-monitor/internal/poller"
	"github.com/fj604/ec2-console-log-monitor/internal/sink"
	"github.com/fj604/ec2-console-log-monitor/internal/tracker"
	"github.com/fj604/ec2-console-log-monitor/internal/version"
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	poller *poller.Poller
	server *httpserver.Server // nil when the status server is disabled
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loggerClient := logger.New(cfg.EffectiveLogLevel(), cfg.PrettyLog)

	awsCfg, err := awsclient.LoadConfig(ctx, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	directory := awsclient.NewDirectory(awsCfg, cfg.APITimeout)
	console := awsclient.NewConsole(awsCfg, cfg.APITimeout)
	archive := awsclient.NewArchive(awsCfg, cfg.Bucket, cfg.APITimeout)

	track := tracker.New()

	// Archive delivery is always on; file and stdout mirroring are opt-in.
	sinks := []sink.Sink{sink.NewArchiveSink(archive, cfg.Bucket, loggerClient)}
	if cfg.WriteFiles {
		sinks = append(sinks, sink.NewFileSink("", loggerClient))
	}
	if cfg.PrintLogs {
		sinks = append(sinks, sink.NewStdoutSink(os.Stdout))
	}
	fanout := sink.NewFanout(loggerClient, sinks...)

	p := poller.New(directory, console, track, fanout, loggerClient,
		cfg.TagKey, cfg.Interval)

	var server *httpserver.Server
	if cfg.ListenAddr != "" {
		d := deps.Deps{
			Logger:      loggerClient,
			StartTime:   time.Now(),
			Version:     version.Version,
			Commit:      version.Commit,
			BuildDate:   version.BuildDate,
			GoVersion:   version.GoVersion,
			Tracker:     track,
			PollerStats: p.Stats,
			TagKey:      cfg.TagKey,
			Region:      cfg.Region,
			Bucket:      cfg.Bucket,
			Interval:    cfg.Interval,
		}
		server = httpserver.New(cfg.ListenAddr, loggerClient, d)
	}

	return &App{
		cfg:    cfg,
		logger: loggerClient,
		poller: p,
		server: server,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("starting console log monitor v%s (tag=%s region=%s bucket=%s interval=%s)",
		version.Version, a.cfg.TagKey, a.cfg.Region, a.cfg.Bucket, a.cfg.Interval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.poller.Start(ctx); err != nil {
		return fmt.Errorf("failed to start poller: %w", err)
	}
	a.logger.Info("poller started",
		logger.Duration("interval", a.cfg.Interval))

	errCh := make(chan error, 1)
	if a.server != nil {
		go func() {
			if err := a.server.Start(); err != nil {
				errCh <- fmt.Errorf("status server error: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down...")
	case err := <-errCh:
		return err
	}

	a.poller.Stop()

	if a.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop status server: %w", err)
		}
	}

	a.logger.Info("console log monitor stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
