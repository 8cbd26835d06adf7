package hnap

import (
	"context"
	"fmt"
)

// Metrics fetches all status sub-reports in one GetMultipleHNAPs call.
// An empty-string parameter value means "include this sub-report".
func (s *Service) Metrics(ctx context.Context) (*MetricsResponse, error) {
	if !s.authenticated {
		return nil, fmt.Errorf("metrics requested before login")
	}

	params := map[string]string{
		"GetArrisDeviceStatus":                   "",
		"GetArrisRegisterInfo":                   "",
		"GetCustomerStatusStartupSequence":       "",
		"GetCustomerStatusConnectionInfo":        "",
		"GetCustomerStatusDownstreamChannelInfo": "",
		"GetCustomerStatusUpstreamChannelInfo":   "",
	}

	response, err := sendAction[MetricsResponse](ctx, s, "GetMultipleHNAPs", params)
	if err != nil {
		return nil, fmt.Errorf("metrics collection failed: %w", err)
	}
	return &response, nil
}
