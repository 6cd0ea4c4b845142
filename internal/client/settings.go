package client

import (
	"context"
	"net/http"

	"github.com/dharsanguruparan/strazak/internal/model"
)

// SettingsService covers /api/settings: where the backend keeps its database.
type SettingsService struct{ c *Client }

func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	var out model.Settings
	if err := s.c.getJSON(ctx, "/api/settings/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update stores new settings. They take effect after the backend restarts.
func (s *SettingsService) Update(ctx context.Context, in model.Settings) (*model.SettingsUpdate, error) {
	var out model.SettingsUpdate
	if err := s.c.doJSON(ctx, http.MethodPost, "/api/settings/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentDatabase reports the database file the backend is using right now.
func (s *SettingsService) CurrentDatabase(ctx context.Context) (*model.CurrentDatabase, error) {
	var out model.CurrentDatabase
	if err := s.c.getJSON(ctx, "/api/settings/current-database", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BrowseDatabase opens the desktop file dialog on the backend host.
func (s *SettingsService) BrowseDatabase(ctx context.Context) (*model.BrowseResult, error) {
	return s.browse(ctx, "/api/settings/browse-database/")
}

// BrowseFolder opens the desktop folder dialog on the backend host.
func (s *SettingsService) BrowseFolder(ctx context.Context) (*model.BrowseResult, error) {
	return s.browse(ctx, "/api/settings/browse-folder/")
}

func (s *SettingsService) browse(ctx context.Context, path string) (*model.BrowseResult, error) {
	var out model.BrowseResult
	if err := s.c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
