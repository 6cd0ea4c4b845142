package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/dharsanguruparan/strazak/internal/model"
)

// FirefightersService covers /api/firefighters: the brigade roster.
type FirefightersService struct{ c *Client }

func (s *FirefightersService) List(ctx context.Context, q FirefighterQuery) (*model.FirefighterList, error) {
	var out model.FirefighterList
	if err := s.c.getJSON(ctx, "/api/firefighters/", q.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FirefightersService) Get(ctx context.Context, id int) (*model.Firefighter, error) {
	var out model.Firefighter
	if err := s.c.getJSON(ctx, fmt.Sprintf("/api/firefighters/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FirefightersService) Create(ctx context.Context, in model.FirefighterInput) (*model.FirefighterMutation, error) {
	var out model.FirefighterMutation
	if err := s.c.doJSON(ctx, http.MethodPost, "/api/firefighters/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FirefightersService) Update(ctx context.Context, id int, in model.FirefighterInput) (*model.FirefighterMutation, error) {
	var out model.FirefighterMutation
	if err := s.c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/firefighters/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FirefightersService) Delete(ctx context.Context, id int) error {
	return s.c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/firefighters/%d", id), nil, nil, nil)
}

func (s *FirefightersService) Statistics(ctx context.Context) (*model.FirefighterStatistics, error) {
	var out model.FirefighterStatistics
	if err := s.c.getJSON(ctx, "/api/firefighters/statistics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Template downloads the empty import workbook.
func (s *FirefightersService) Template(ctx context.Context) (*Download, error) {
	return s.c.download(ctx, "/api/firefighters/template/download", nil)
}

// Import bulk-creates firefighters from a workbook. Rows that already exist
// are skipped; per-row problems come back in Errors.
func (s *FirefightersService) Import(ctx context.Context, filename string, r io.Reader) (*model.ImportResult, error) {
	var out model.ImportResult
	if err := s.c.upload(ctx, "/api/firefighters/import", filename, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export downloads the roster, narrowed by the same filters as List.
func (s *FirefightersService) Export(ctx context.Context, format ExportFormat, f FirefighterFilter) (*Download, error) {
	if format != ExportExcel && format != ExportCSV {
		return nil, errors.Errorf("unsupported export format %q", format)
	}
	return s.c.download(ctx, "/api/firefighters/export/"+string(format), f.Values())
}
