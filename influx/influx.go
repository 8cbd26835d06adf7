package influx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	config "github.com/insightfinder/arris-agent/configs"
	"github.com/sirupsen/logrus"
)

const (
	WRITE_ENDPOINT  = "/api/v2/write"
	HEALTH_ENDPOINT = "/health"
)

// NewService creates a new InfluxDB write client
func NewService(cfg config.InfluxConfig) *Service {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Service{
		BaseURL:    cfg.URL,
		Token:      cfg.Token,
		Org:        cfg.Org,
		Bucket:     cfg.Bucket,
		httpClient: client,
	}
}

// HealthCheck verifies the InfluxDB instance is reachable and healthy
func (s *Service) HealthCheck(ctx context.Context) error {
	var response HealthResponse
	err := requests.URL(s.BaseURL + HEALTH_ENDPOINT).
		Client(s.httpClient).
		ToJSON(&response).
		Fetch(ctx)

	if err != nil {
		return fmt.Errorf("influxdb health check failed: %w", err)
	}

	if response.Status != "pass" {
		return fmt.Errorf("influxdb not healthy: %s", response.Status)
	}

	return nil
}

// WritePoints encodes the points as line protocol and writes them in one
// batch with nanosecond precision
func (s *Service) WritePoints(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	lines := make([]string, 0, len(points))
	for _, p := range points {
		lines = append(lines, p.Line())
	}

	params := url.Values{}
	params.Set("org", s.Org)
	params.Set("bucket", s.Bucket)
	params.Set("precision", "ns")

	err := requests.URL(s.BaseURL + WRITE_ENDPOINT).
		Client(s.httpClient).
		Header("Authorization", "Token "+s.Token).
		ContentType("text/plain; charset=utf-8").
		Params(params).
		BodyBytes([]byte(strings.Join(lines, "\n"))).
		Fetch(ctx)

	if err != nil {
		return fmt.Errorf("influxdb write failed: %w", err)
	}

	logrus.Debugf("Wrote %d points to InfluxDB bucket %s", len(points), s.Bucket)
	return nil
}

// Line renders the point in InfluxDB line protocol. Tags and fields are
// emitted in sorted key order so output is stable.
func (p Point) Line() string {
	var sb strings.Builder
	sb.WriteString(escapeIdentifier(p.Measurement))

	for _, key := range sortedKeys(p.Tags) {
		sb.WriteByte(',')
		sb.WriteString(escapeIdentifier(key))
		sb.WriteByte('=')
		sb.WriteString(escapeIdentifier(p.Tags[key]))
	}

	sep := byte(' ')
	for _, key := range sortedFieldKeys(p.Fields) {
		sb.WriteByte(sep)
		sep = ','
		sb.WriteString(escapeIdentifier(key))
		sb.WriteByte('=')
		sb.WriteString(formatFieldValue(p.Fields[key]))
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatInt(p.Timestamp.UnixNano(), 10))
	return sb.String()
}

func formatFieldValue(v interface{}) string {
	switch value := v.(type) {
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.FormatInt(int64(value), 10) + "i"
	case int64:
		return strconv.FormatInt(value, 10) + "i"
	case uint64:
		return strconv.FormatUint(value, 10) + "i"
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case string:
		return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value) + `"`
	default:
		return `"` + fmt.Sprint(value) + `"`
	}
}

var identifierEscaper = strings.NewReplacer(",", `\,`, " ", `\ `, "=", `\=`)

func escapeIdentifier(s string) string {
	return identifierEscaper.Replace(s)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedFieldKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
