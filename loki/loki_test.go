package loki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	config "github.com/insightfinder/arris-agent/configs"
	"github.com/insightfinder/arris-agent/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []models.LogEntry {
	base := time.Date(2023, time.February, 1, 8, 9, 10, 0, time.UTC)
	return []models.LogEntry{
		{Timestamp: base, Level: models.LevelInfo, Message: "hello"},
		{Timestamp: base.Add(time.Minute), Level: models.LevelError, Message: "boom"},
		{Timestamp: base.Add(2 * time.Minute), Level: models.LevelInfo, Message: "world"},
	}
}

func TestBuildStreams(t *testing.T) {
	labels := map[string]string{"app": "arris_agent"}
	service := NewService(config.LokiConfig{URL: "http://localhost:3100", Labels: labels})

	payload := service.BuildStreams(testEntries())
	require.Len(t, payload.Streams, 2)

	// Severities are emitted in fixed order, error first
	errorStream := payload.Streams[0]
	assert.Equal(t, "error", errorStream.Stream["level"])
	assert.Equal(t, "arris_agent", errorStream.Stream["app"])
	require.Len(t, errorStream.Values, 1)
	assert.Equal(t, "boom", errorStream.Values[0][1])

	infoStream := payload.Streams[1]
	assert.Equal(t, "info", infoStream.Stream["level"])
	require.Len(t, infoStream.Values, 2)
	assert.Equal(t, "1675238950000000000", infoStream.Values[0][0])
	assert.Equal(t, "hello", infoStream.Values[0][1])

	// The configured base labels must not be mutated
	_, mutated := labels["level"]
	assert.False(t, mutated)
}

func TestPush(t *testing.T) {
	var gotPath, gotTenant string
	var gotPayload PushRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTenant = r.Header.Get("X-Scope-OrgID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	service := NewService(config.LokiConfig{
		URL:    ts.URL,
		Tenant: "home",
		Labels: map[string]string{"app": "arris_agent"},
	})

	require.NoError(t, service.Push(context.Background(), testEntries()))
	assert.Equal(t, PUSH_ENDPOINT, gotPath)
	assert.Equal(t, "home", gotTenant)
	require.Len(t, gotPayload.Streams, 2)
}

func TestPushEmpty(t *testing.T) {
	requestCount := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
	}))
	defer ts.Close()

	service := NewService(config.LokiConfig{URL: ts.URL})
	require.NoError(t, service.Push(context.Background(), nil))
	assert.Equal(t, 0, requestCount)
}

func TestHealthCheck(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, HEALTH_ENDPOINT, r.URL.Path)
		w.Write([]byte("ready\n"))
	}))
	defer ts.Close()

	service := NewService(config.LokiConfig{URL: ts.URL})
	assert.NoError(t, service.HealthCheck(context.Background()))
}
