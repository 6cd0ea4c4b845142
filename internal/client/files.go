package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dharsanguruparan/strazak/internal/model"
)

// FilesService covers /api/files: imported spreadsheets.
type FilesService struct{ c *Client }

// Upload imports a departures spreadsheet. filename is what the server sees;
// the extension decides how it parses the workbook.
func (s *FilesService) Upload(ctx context.Context, filename string, r io.Reader) (*model.UploadResult, error) {
	var out model.UploadResult
	if err := s.c.upload(ctx, "/api/files/upload", filename, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every imported file, newest first as the backend orders them.
func (s *FilesService) List(ctx context.Context) ([]model.ImportedFile, error) {
	var out model.FileList
	if err := s.c.getJSON(ctx, "/api/files/", nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

func (s *FilesService) Get(ctx context.Context, id int) (*model.ImportedFile, error) {
	var out model.ImportedFile
	if err := s.c.getJSON(ctx, fmt.Sprintf("/api/files/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a file together with all of its records.
func (s *FilesService) Delete(ctx context.Context, id int) error {
	return s.c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/files/%d", id), nil, nil, nil)
}

// Preview returns the first rows of a file.
func (s *FilesService) Preview(ctx context.Context, id int) (*model.FilePreview, error) {
	var out model.FilePreview
	if err := s.c.getJSON(ctx, fmt.Sprintf("/api/files/%d/preview", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
