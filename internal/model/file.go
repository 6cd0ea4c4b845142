// Package model contains the wire types exchanged with the records API. The
// backend owns every entity; these structs are transient, view-scoped copies.
package model

// FileStatus describes the import lifecycle reported by the backend. A named
// string type keeps status comparisons typed while still decoding straight
// from JSON.
type FileStatus string

const (
	StatusCompleted  FileStatus = "completed"
	StatusProcessing FileStatus = "processing"
	StatusPending    FileStatus = "pending"
	StatusError      FileStatus = "error"
)

// Done reports whether the import finished successfully.
func (s FileStatus) Done() bool {
	return s == StatusCompleted
}

// ImportedFile is a spreadsheet previously uploaded to the backend. Deleting
// it cascades to its records on the server side.
type ImportedFile struct {
	ID         int        `json:"id"`
	Filename   string     `json:"filename"`
	ImportedAt string     `json:"imported_at"`
	RowsCount  int        `json:"rows_count"`
	Status     FileStatus `json:"status"`
	// Notes is only present on the single-file endpoint.
	Notes string `json:"notes,omitempty"`
}

// FileList is the body of GET /api/files/.
type FileList struct {
	Files []ImportedFile `json:"files"`
}

// FilePreview is the body of GET /api/files/{id}/preview.
type FilePreview struct {
	FileID   int               `json:"file_id"`
	Filename string            `json:"filename"`
	Preview  []DepartureRecord `json:"preview"`
}

// UploadResult is returned after a departures spreadsheet import.
type UploadResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	FileID          int    `json:"file_id"`
	Filename        string `json:"filename"`
	RecordsImported int    `json:"records_imported"`
}
