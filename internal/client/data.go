package client

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/go-faster/errors"

	"github.com/dharsanguruparan/strazak/internal/model"
)

// DataService covers /api/data: departure records, statistics and the
// per-file export and document endpoints.
type DataService struct{ c *Client }

// Records lists departure records across files.
func (s *DataService) Records(ctx context.Context, q RecordsQuery) (*model.Page[model.DepartureRecord], error) {
	var out model.Page[model.DepartureRecord]
	if err := s.c.getJSON(ctx, "/api/data/records", q.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MeasurementRecords reads the same endpoint as Records, decoding rows in the
// legacy SWD shape. Older databases still hold these.
func (s *DataService) MeasurementRecords(ctx context.Context, q RecordsQuery) (*model.Page[model.MeasurementRecord], error) {
	var out model.Page[model.MeasurementRecord]
	if err := s.c.getJSON(ctx, "/api/data/records", q.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DataService) Record(ctx context.Context, id int) (*model.DepartureRecord, error) {
	var out model.DepartureRecord
	if err := s.c.getJSON(ctx, fmt.Sprintf("/api/data/records/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRecord replaces the editable fields of a record.
func (s *DataService) UpdateRecord(ctx context.Context, id int, in model.DepartureInput) (*model.RecordMutation, error) {
	var out model.RecordMutation
	if err := s.c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/data/records/%d", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DataService) DeleteRecord(ctx context.Context, id int) error {
	return s.c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/data/records/%d", id), nil, nil, nil)
}

func (s *DataService) Statistics(ctx context.Context) (*model.Statistics, error) {
	var out model.Statistics
	if err := s.c.getJSON(ctx, "/api/data/statistics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FileRecords lists the departures of one file with filters, sorting and
// paging. The response carries total_count.
func (s *DataService) FileRecords(ctx context.Context, fileID int, q FileRecordsQuery) (*model.Page[model.DepartureRecord], error) {
	var out model.Page[model.DepartureRecord]
	if err := s.c.getJSON(ctx, fmt.Sprintf("/api/data/files/%d/records", fileID), q.Values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRecord adds a departure to a file. A duplicate name and report number
// within the file is rejected with 409.
func (s *DataService) CreateRecord(ctx context.Context, fileID int, in model.DepartureInput) (*model.RecordMutation, error) {
	var out model.RecordMutation
	if err := s.c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/data/files/%d/records", fileID), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Firefighters lists the distinct names appearing in a file.
func (s *DataService) Firefighters(ctx context.Context, fileID int) ([]string, error) {
	var out model.FileFirefighters
	if err := s.c.getJSON(ctx, fmt.Sprintf("/api/data/files/%d/firefighters", fileID), nil, &out); err != nil {
		return nil, err
	}
	return out.Firefighters, nil
}

// Export downloads the departures of a file as a spreadsheet.
func (s *DataService) Export(ctx context.Context, fileID int, format ExportFormat, f ExportFilter) (*Download, error) {
	if format != ExportExcel && format != ExportCSV {
		return nil, errors.Errorf("unsupported export format %q", format)
	}
	return s.c.download(ctx, fmt.Sprintf("/api/data/files/%d/export/%s", fileID, format), f.Values())
}

// GenerateDocument renders the departures card of one firefighter. The
// backend refuses requests without a firefighter and a full date range;
// callers are expected to check that first.
func (s *DataService) GenerateDocument(ctx context.Context, fileID int, format DocumentFormat, f ExportFilter) (*Download, error) {
	if !slices.Contains(DocumentFormats, format) {
		return nil, errors.Errorf("unsupported document format %q", format)
	}
	return s.c.download(ctx, fmt.Sprintf("/api/data/files/%d/generate-document/%s", fileID, format), f.Values())
}
