package client

import (
	"context"

	"github.com/dharsanguruparan/strazak/internal/model"
)

// SystemService covers liveness and environment probes.
type SystemService struct{ c *Client }

func (s *SystemService) Health(ctx context.Context) (*model.Health, error) {
	var out model.Health
	if err := s.c.getJSON(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SystemService) Info(ctx context.Context) (*model.AppInfo, error) {
	var out model.AppInfo
	if err := s.c.getJSON(ctx, "/api", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Environment tells whether the backend runs inside the desktop shell, which
// is the only place the browse dialogs work.
func (s *SystemService) Environment(ctx context.Context) (*model.Environment, error) {
	var out model.Environment
	if err := s.c.getJSON(ctx, "/api/system/environment", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
