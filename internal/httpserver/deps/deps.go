package deps

import (
	"time"

	"github.com/fj604/ec2-console-log-monitor/internal/logger"
	"github.com/fj604/ec2-console-log-monitor/internal/poller"
	"github.com/fj604/ec2-console-log-monitor/internal/tracker"
)

// Deps carries everything the route handlers need.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Tracker     *tracker.Tracker
	PollerStats func() poller.Stats

	TagKey   string
	Region   string
	Bucket   string
	Interval time.Duration
}
