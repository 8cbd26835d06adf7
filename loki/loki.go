package loki

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	config "github.com/insightfinder/arris-agent/configs"
	"github.com/insightfinder/arris-agent/pkg/models"
	"github.com/sirupsen/logrus"
)

const (
	PUSH_ENDPOINT   = "/loki/api/v1/push"
	HEALTH_ENDPOINT = "/ready"
)

// NewService creates a new Loki push client
func NewService(cfg config.LokiConfig) *Service {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Service{
		BaseURL:    cfg.URL,
		Tenant:     cfg.Tenant,
		Labels:     cfg.Labels,
		httpClient: client,
	}
}

// HealthCheck performs a health check against the Loki instance
func (s *Service) HealthCheck(ctx context.Context) error {
	var response string
	err := requests.URL(s.BaseURL + HEALTH_ENDPOINT).
		Client(s.httpClient).
		ToString(&response).
		Fetch(ctx)

	if err != nil {
		return fmt.Errorf("loki health check failed: %w", err)
	}

	// Loki returns "ready" when healthy
	if !strings.Contains(strings.ToLower(response), "ready") {
		return fmt.Errorf("loki not ready: %s", response)
	}

	return nil
}

// BuildStreams partitions the entries into one stream per severity. Each
// stream carries the configured base labels plus a level label, and
// values are [nanosecond epoch, message] pairs.
func (s *Service) BuildStreams(entries []models.LogEntry) PushRequest {
	buckets := make(map[models.Level][][2]string)
	for _, entry := range entries {
		value := [2]string{
			strconv.FormatInt(entry.Timestamp.UnixNano(), 10),
			entry.Message,
		}
		buckets[entry.Level] = append(buckets[entry.Level], value)
	}

	var payload PushRequest
	for _, level := range []models.Level{models.LevelError, models.LevelWarn, models.LevelInfo, models.LevelDebug} {
		values, ok := buckets[level]
		if !ok {
			continue
		}
		labels := make(map[string]string, len(s.Labels)+1)
		for key, value := range s.Labels {
			labels[key] = value
		}
		labels["level"] = level.String()
		payload.Streams = append(payload.Streams, Stream{Stream: labels, Values: values})
	}
	return payload
}

// Push sends the entries to Loki, one stream per severity level
func (s *Service) Push(ctx context.Context, entries []models.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	payload := s.BuildStreams(entries)

	builder := requests.URL(s.BaseURL + PUSH_ENDPOINT).
		Client(s.httpClient).
		BodyJSON(&payload)
	if s.Tenant != "" {
		builder = builder.Header("X-Scope-OrgID", s.Tenant)
	}

	if err := builder.Fetch(ctx); err != nil {
		return fmt.Errorf("loki push failed: %w", err)
	}

	logrus.Debugf("Pushed %d log entries to Loki in %d streams", len(entries), len(payload.Streams))
	return nil
}
