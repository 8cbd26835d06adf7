package influx

import (
	"net/http"
	"time"
)

// Service is the InfluxDB v2 write client.
type Service struct {
	BaseURL string
	Token   string
	Org     string
	Bucket  string

	httpClient *http.Client
}

// Point is one time-series sample in line-protocol terms: a measurement
// name, indexed tags, and the sampled field values.
type Point struct {
	Measurement string
	Tags        map[string]string
	Fields      map[string]interface{}
	Timestamp   time.Time
}

// HealthResponse represents the InfluxDB /health reply.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
