package hnap

import (
	"context"
	"fmt"
)

// Logs fetches the modem's event log through GetMultipleHNAPs.
func (s *Service) Logs(ctx context.Context) (*LogsResponse, error) {
	if !s.authenticated {
		return nil, fmt.Errorf("logs requested before login")
	}

	params := map[string]string{
		"GetCustomerStatusLog": "",
		// The firmware expects this companion sub-action even though its
		// reply is the literal string XXX.
		"GetCustomerStatusLogXXX": "",
	}

	response, err := sendAction[LogsResponse](ctx, s, "GetMultipleHNAPs", params)
	if err != nil {
		return nil, fmt.Errorf("log collection failed: %w", err)
	}
	return &response, nil
}
