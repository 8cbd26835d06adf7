package influx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	config "github.com/insightfinder/arris-agent/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointLine(t *testing.T) {
	point := Point{
		Measurement: "modem_downstream_channel",
		Tags: map[string]string{
			"channel_id": "4",
			"modulation": "QAM-256",
		},
		Fields: map[string]interface{}{
			"lock_status": true,
			"frequency":   int64(549000000),
			"power":       int64(7),
		},
		Timestamp: time.Unix(0, 1700000000000000000),
	}

	assert.Equal(t,
		"modem_downstream_channel,channel_id=4,modulation=QAM-256 frequency=549000000i,lock_status=true,power=7i 1700000000000000000",
		point.Line())
}

func TestPointLineValueTypes(t *testing.T) {
	point := Point{
		Measurement: "modem_upstream_channel",
		Fields: map[string]interface{}{
			"power":  43.5,
			"status": "Allowed",
		},
		Timestamp: time.Unix(0, 42),
	}

	assert.Equal(t, `modem_upstream_channel power=43.5,status="Allowed" 42`, point.Line())
}

func TestPointLineEscaping(t *testing.T) {
	point := Point{
		Measurement: "my measurement",
		Tags: map[string]string{
			"tag one": "a,b=c",
		},
		Fields: map[string]interface{}{
			"value": int64(1),
		},
		Timestamp: time.Unix(0, 1),
	}

	assert.Equal(t, `my\ measurement,tag\ one=a\,b\=c value=1i 1`, point.Line())
}

func TestWritePoints(t *testing.T) {
	var gotBody string
	var gotQuery map[string]string
	var gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotQuery = map[string]string{
			"org":       r.URL.Query().Get("org"),
			"bucket":    r.URL.Query().Get("bucket"),
			"precision": r.URL.Query().Get("precision"),
		}
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	service := NewService(config.InfluxConfig{
		URL:    ts.URL,
		Token:  "my-token",
		Org:    "home",
		Bucket: "modem",
	})

	points := []Point{
		{Measurement: "a", Fields: map[string]interface{}{"v": int64(1)}, Timestamp: time.Unix(0, 10)},
		{Measurement: "b", Fields: map[string]interface{}{"v": int64(2)}, Timestamp: time.Unix(0, 20)},
	}
	require.NoError(t, service.WritePoints(context.Background(), points))

	assert.Equal(t, "a v=1i 10\nb v=2i 20", gotBody)
	assert.Equal(t, "home", gotQuery["org"])
	assert.Equal(t, "modem", gotQuery["bucket"])
	assert.Equal(t, "ns", gotQuery["precision"])
	assert.Equal(t, "Token my-token", gotAuth)
}

func TestWritePointsEmpty(t *testing.T) {
	requestCount := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
	}))
	defer ts.Close()

	service := NewService(config.InfluxConfig{URL: ts.URL, Bucket: "modem"})
	require.NoError(t, service.WritePoints(context.Background(), nil))
	assert.Equal(t, 0, requestCount)
}

func TestHealthCheck(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, HEALTH_ENDPOINT, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"pass"}`))
	}))
	defer ts.Close()

	service := NewService(config.InfluxConfig{URL: ts.URL})
	assert.NoError(t, service.HealthCheck(context.Background()))
}

func TestHealthCheckUnhealthy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"fail"}`))
	}))
	defer ts.Close()

	service := NewService(config.InfluxConfig{URL: ts.URL})
	assert.Error(t, service.HealthCheck(context.Background()))
}
