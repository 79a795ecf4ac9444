package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fj604/ec2-console-log-monitor/internal/httpserver/deps"
	"github.com/fj604/ec2-console-log-monitor/internal/poller"
)

type statuszResponse struct {
	TagKey          string            `json:"tag_key"`
	Region          string            `json:"region"`
	Bucket          string            `json:"bucket"`
	IntervalSeconds float64           `json:"interval_seconds"`
	Stats           poller.Stats      `json:"stats"`
	Instances       map[string]string `json:"instances"` // instance ID -> last seen timestamp
}

func Statusz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seen := d.Tracker.Snapshot()
		instances := make(map[string]string, len(seen))
		for id, ts := range seen {
			instances[id] = ts.UTC().Format(time.RFC3339)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(statuszResponse{
			TagKey:          d.TagKey,
			Region:          d.Region,
			Bucket:          d.Bucket,
			IntervalSeconds: d.Interval.Seconds(),
			Stats:           d.PollerStats(),
			Instances:       instances,
		})
	}
}
