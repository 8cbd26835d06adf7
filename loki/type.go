package loki

import "net/http"

// Service is the Loki push client.
type Service struct {
	BaseURL string
	Tenant  string
	Labels  map[string]string

	httpClient *http.Client
}

// Stream is one label set and its log values, per the Loki push API.
type Stream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

// PushRequest is the body of a push call.
type PushRequest struct {
	Streams []Stream `json:"streams"`
}
