package worker

import (
	"context"
	"fmt"
	"os"
	"time"

	config "github.com/insightfinder/arris-agent/configs"
	"github.com/insightfinder/arris-agent/hnap"
	"github.com/insightfinder/arris-agent/influx"
	"github.com/insightfinder/arris-agent/loki"
	"github.com/insightfinder/arris-agent/pkg/dedup"
	"github.com/insightfinder/arris-agent/pkg/models"
	"github.com/sirupsen/logrus"
)

// cycleTimeout bounds one poll cycle (modem calls plus sink writes).
const cycleTimeout = 60 * time.Second

type Worker struct {
	config        *config.Config
	modemService  *hnap.Service
	influxService *influx.Service
	lokiService   *loki.Service
	seenLogs      *dedup.Set[models.LogEntry]
}

func NewWorker(cfg *config.Config, modemService *hnap.Service, influxService *influx.Service, lokiService *loki.Service) *Worker {
	return &Worker{
		config:        cfg,
		modemService:  modemService,
		influxService: influxService,
		lokiService:   lokiService,
		seenLogs:      dedup.New[models.LogEntry](cfg.Worker.LogHistorySize),
	}
}

func (w *Worker) Start(quit <-chan os.Signal) {
	interval := time.Duration(w.config.Worker.PollIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logrus.Infof("Starting data collection with %d second intervals", w.config.Worker.PollIntervalSeconds)

	// Run initial collection
	w.collectAndSend()

	for {
		select {
		case <-ticker.C:
			w.collectAndSend()
		case <-quit:
			logrus.Info("Worker received shutdown signal")
			return
		}
	}
}

// collectAndSend runs one poll cycle. A failed cycle is logged and
// skipped; the session survives and the next tick retries.
func (w *Worker) collectAndSend() {
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()

	if err := w.collectMetrics(ctx); err != nil {
		logrus.Errorf("Metrics collection failed: %v", err)
	}
	if err := w.collectLogs(ctx); err != nil {
		logrus.Errorf("Log collection failed: %v", err)
	}
}

func (w *Worker) collectMetrics(ctx context.Context) error {
	metrics, err := w.modemService.Metrics(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	points := make([]influx.Point, 0,
		len(metrics.DownstreamChannelInfo.Channels)+len(metrics.UpstreamChannelInfo.Channels)+1)
	for _, channel := range metrics.DownstreamChannelInfo.Channels {
		points = append(points, channel.ToPoint(now))
	}
	for _, channel := range metrics.UpstreamChannelInfo.Channels {
		points = append(points, channel.ToPoint(now))
	}
	points = append(points, connectionPoint(metrics, now))

	if err := w.influxService.WritePoints(ctx, points); err != nil {
		return fmt.Errorf("failed to write metric points: %w", err)
	}

	logrus.Infof("Wrote %d points (%d downstream, %d upstream channels)",
		len(points), len(metrics.DownstreamChannelInfo.Channels), len(metrics.UpstreamChannelInfo.Channels))
	return nil
}

// connectionPoint summarizes the non-channel sub-reports as one gauge
// point per cycle.
func connectionPoint(metrics *hnap.MetricsResponse, ts time.Time) influx.Point {
	return influx.Point{
		Measurement: "modem_connection",
		Tags: map[string]string{
			"model":    metrics.RegisterInfo.ModelName,
			"firmware": metrics.DeviceStatus.FirmwareVersion,
		},
		Fields: map[string]interface{}{
			"uptime_seconds":      int64(metrics.ConnectionInfo.Uptime.Duration().Seconds()),
			"network_access":      metrics.ConnectionInfo.NetworkAccess,
			"internet_connection": metrics.DeviceStatus.InternetConnection,
			"boot_status":         metrics.StartupSequence.BootStatus,
			"security_status":     metrics.StartupSequence.SecurityStatus,
		},
		Timestamp: ts,
	}
}

func (w *Worker) collectLogs(ctx context.Context) error {
	logs, err := w.modemService.Logs(ctx)
	if err != nil {
		return err
	}

	fresh := filterNewEntries(w.seenLogs, logs.Log.Entries)
	if len(fresh) == 0 {
		logrus.Debug("No new log entries this cycle")
		return nil
	}

	if err := w.lokiService.Push(ctx, fresh); err != nil {
		return fmt.Errorf("failed to push log entries: %w", err)
	}

	logrus.Infof("Forwarded %d new log entries (%d total in reply)", len(fresh), len(logs.Log.Entries))
	return nil
}

// filterNewEntries returns the entries not yet in the dedup window and
// marks them seen. The window is capacity-bounded, so entries older than
// the retention horizon may be forwarded again after heavy log churn.
func filterNewEntries(seen *dedup.Set[models.LogEntry], entries []models.LogEntry) []models.LogEntry {
	var fresh []models.LogEntry
	for _, entry := range entries {
		if seen.Contains(entry) {
			continue
		}
		if evicted, ok := seen.Insert(entry); ok {
			logrus.Debugf("Dedup window full, dropped oldest entry: %s", evicted.Message)
		}
		fresh = append(fresh, entry)
	}
	return fresh
}
