package listing

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/model"
)

// RecordSource is the part of the data API the records table needs.
// *client.DataService implements it.
type RecordSource interface {
	Records(ctx context.Context, q client.RecordsQuery) (*model.Page[model.DepartureRecord], error)
	DeleteRecord(ctx context.Context, id int) error
}

// FileSource lists and deletes imported files. *client.FilesService
// implements it.
type FileSource interface {
	List(ctx context.Context) ([]model.ImportedFile, error)
	Delete(ctx context.Context, id int) error
}

const (
	promptDeleteRecord = "Czy na pewno chcesz usunąć ten rekord?"
	promptDeleteFile   = "Czy na pewno chcesz usunąć ten plik i wszystkie jego rekordy?"
)

// RecordsTable is the all-files records view: free text search, an optional
// file filter and the list of imported files shown above the table.
type RecordsTable struct {
	records RecordSource
	files   FileSource
	log     logrus.FieldLogger

	pager  *Pager
	search string
	fileID int

	rows     []model.DepartureRecord
	fileList []model.ImportedFile
}

// NewRecordsTable builds an empty table. Nothing is fetched until Refresh or
// Load is called.
func NewRecordsTable(records RecordSource, files FileSource, pageSize int, log logrus.FieldLogger) *RecordsTable {
	return &RecordsTable{
		records: records,
		files:   files,
		log:     orDiscard(log),
		pager:   NewPager(pageSize),
	}
}

// Refresh reloads the file list and the current page. A failing file list is
// logged and does not stop the records fetch.
func (t *RecordsTable) Refresh(ctx context.Context) error {
	t.loadFiles(ctx)
	return t.Load(ctx)
}

// Load fetches the current page with the current filters.
func (t *RecordsTable) Load(ctx context.Context) error {
	page, err := t.records.Records(ctx, client.RecordsQuery{
		Skip:   t.pager.Offset(),
		Limit:  t.pager.Size(),
		FileID: t.fileID,
		Search: t.search,
	})
	if err != nil {
		return errors.Wrap(err, "load records")
	}
	t.rows = page.Records
	t.pager.Observe(len(page.Records), nil)
	return nil
}

func (t *RecordsTable) loadFiles(ctx context.Context) {
	files, err := t.files.List(ctx)
	if err != nil {
		t.log.WithError(err).Warn("load files failed")
		return
	}
	t.fileList = files
}

// SetSearch changes the search text and reloads from the first page.
func (t *RecordsTable) SetSearch(ctx context.Context, q string) error {
	t.search = q
	t.pager.Reset()
	return t.Load(ctx)
}

// SetFile narrows the table to one file; 0 shows all files.
func (t *RecordsTable) SetFile(ctx context.Context, fileID int) error {
	t.fileID = fileID
	t.pager.Reset()
	return t.Load(ctx)
}

// Configure sets the filters and page without fetching; the next Load or
// Refresh uses them.
func (t *RecordsTable) Configure(fileID int, search string, page int) {
	t.fileID, t.search = fileID, search
	t.pager.Seek(page)
}

// NextPage loads the following page. It returns false without fetching when
// the current page was the last.
func (t *RecordsTable) NextPage(ctx context.Context) (bool, error) {
	if !t.pager.Next() {
		return false, nil
	}
	return true, t.Load(ctx)
}

// PrevPage loads the preceding page.
func (t *RecordsTable) PrevPage(ctx context.Context) (bool, error) {
	if !t.pager.Prev() {
		return false, nil
	}
	return true, t.Load(ctx)
}

// GoTo jumps to a zero-based page index and loads it.
func (t *RecordsTable) GoTo(ctx context.Context, page int) error {
	t.pager.Seek(page)
	return t.Load(ctx)
}

// DeleteRecord removes a record once the user confirms, then reloads. A
// declined prompt returns false and sends nothing.
func (t *RecordsTable) DeleteRecord(ctx context.Context, id int, c Confirmer) (bool, error) {
	if !confirmed(c, promptDeleteRecord) {
		return false, nil
	}
	if err := t.records.DeleteRecord(ctx, id); err != nil {
		return false, errors.Wrapf(err, "delete record %d", id)
	}
	return true, t.Load(ctx)
}

// DeleteFile removes a file with all its records once confirmed, then reloads
// both the file list and the records.
func (t *RecordsTable) DeleteFile(ctx context.Context, id int, c Confirmer) (bool, error) {
	if !confirmed(c, promptDeleteFile) {
		return false, nil
	}
	if err := t.files.Delete(ctx, id); err != nil {
		return false, errors.Wrapf(err, "delete file %d", id)
	}
	if id == t.fileID {
		t.fileID = 0
		t.pager.Reset()
	}
	return true, t.Refresh(ctx)
}

func (t *RecordsTable) Rows() []model.DepartureRecord { return t.rows }
func (t *RecordsTable) Files() []model.ImportedFile   { return t.fileList }
func (t *RecordsTable) Pager() *Pager                 { return t.pager }
func (t *RecordsTable) Search() string                { return t.search }
func (t *RecordsTable) FileID() int                   { return t.fileID }
