package shell

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/dharsanguruparan/strazak/internal/editor"
	"github.com/dharsanguruparan/strazak/internal/listing"
	"github.com/dharsanguruparan/strazak/internal/model"
	"github.com/dharsanguruparan/strazak/internal/storage"
)

// View is a screen of the departures flow.
type View string

const (
	ViewMenu           View = "menu"
	ViewImport         View = "import"
	ViewFileList       View = "file-list"
	ViewDeparturesList View = "departures-list"

	// viewListRefresh is an older name of the departures list still found
	// in saved state.
	viewListRefresh View = "departures-list-refresh"
)

// Keys under which the flow persists its state.
const (
	KeyView         = "departures_view"
	KeySelectedFile = "departures_selectedFile"
)

var (
	ErrUnknownView    = errors.New("unknown view")
	ErrNoFileSelected = errors.New("no file selected")
	ErrNotEditing     = errors.New("no record is being edited")
)

// FileLister is the files side of the API. *client.FilesService
// implements it.
type FileLister interface {
	List(ctx context.Context) ([]model.ImportedFile, error)
	Delete(ctx context.Context, id int) error
}

// RecordService reads and writes departures. *client.DataService
// implements it.
type RecordService interface {
	listing.DepartureSource
	editor.DepartureStore
}

// Departures is the departures flow: a menu, the import screen, the list of
// imported files and the departures of the open file. The current view and
// the open file are written to the store on every change and read back by
// NewDepartures.
type Departures struct {
	store    storage.Store
	files    FileLister
	records  RecordService
	pageSize int
	log      logrus.FieldLogger

	view     View
	selected *model.ImportedFile
	fileList []model.ImportedFile

	refreshKey int
	list       *listing.DeparturesList
	listKey    int
	editor     *editor.DepartureEditor
}

// NewDepartures restores the flow from store. A missing or unknown view
// starts at the menu; a departures list without a saved file falls back to
// the file list.
func NewDepartures(store storage.Store, files FileLister, records RecordService, pageSize int, log logrus.FieldLogger) (*Departures, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	d := &Departures{
		store:    store,
		files:    files,
		records:  records,
		pageSize: pageSize,
		log:      log,
		view:     ViewMenu,
	}
	if err := d.restore(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Departures) restore() error {
	raw, ok, err := d.store.Get(KeyView)
	if err != nil {
		return errors.Wrap(err, "restore view")
	}
	if ok {
		switch v := View(raw); v {
		case ViewMenu, ViewImport, ViewFileList, ViewDeparturesList:
			d.view = v
		case viewListRefresh:
			d.view = ViewDeparturesList
		default:
			d.log.WithField("view", raw).Warn("ignoring unknown saved view")
		}
	}

	raw, ok, err = d.store.Get(KeySelectedFile)
	if err != nil {
		return errors.Wrap(err, "restore selected file")
	}
	if ok && raw != "" && raw != "null" {
		var f model.ImportedFile
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			d.log.WithError(err).Warn("ignoring unreadable saved file")
		} else {
			d.selected = &f
		}
	}

	if d.view == ViewDeparturesList && d.selected == nil {
		d.view = ViewFileList
	}
	return nil
}

func (d *Departures) View() View { return d.view }

// Selected returns the open file, nil when none.
func (d *Departures) Selected() *model.ImportedFile { return d.selected }

// Files returns the file list loaded by the last LoadFiles.
func (d *Departures) Files() []model.ImportedFile { return d.fileList }

// RefreshKey grows by one after every saved record.
func (d *Departures) RefreshKey() int { return d.refreshKey }

// Open loads what the current view needs: the file list on the file-list
// screen, the departures on the list screen.
func (d *Departures) Open(ctx context.Context) error {
	switch d.view {
	case ViewFileList:
		return d.LoadFiles(ctx)
	case ViewDeparturesList:
		_, err := d.List(ctx)
		return err
	}
	return nil
}

// SetView switches screens by name. Opening the departures list goes
// through SelectFile.
func (d *Departures) SetView(ctx context.Context, v View) error {
	switch v {
	case ViewMenu:
		return d.BackToMenu()
	case ViewImport:
		return d.setView(ViewImport)
	case ViewFileList:
		if err := d.setView(ViewFileList); err != nil {
			return err
		}
		return d.LoadFiles(ctx)
	case ViewDeparturesList, viewListRefresh:
		if d.selected == nil {
			return ErrNoFileSelected
		}
		return d.setView(ViewDeparturesList)
	}
	return errors.Wrapf(ErrUnknownView, "%q", v)
}

// LoadFiles fetches the imported files.
func (d *Departures) LoadFiles(ctx context.Context) error {
	files, err := d.files.List(ctx)
	if err != nil {
		return errors.Wrap(err, "load files")
	}
	d.fileList = files
	return nil
}

// SelectFile opens f on the departures list.
func (d *Departures) SelectFile(f model.ImportedFile) error {
	if err := d.setSelected(&f); err != nil {
		return err
	}
	return d.setView(ViewDeparturesList)
}

// BackFromList closes the open file and returns to the file list.
func (d *Departures) BackFromList(ctx context.Context) error {
	if err := d.setSelected(nil); err != nil {
		return err
	}
	if err := d.setView(ViewFileList); err != nil {
		return err
	}
	return d.LoadFiles(ctx)
}

// BackToMenu closes the open file and shows the menu.
func (d *Departures) BackToMenu() error {
	if err := d.setSelected(nil); err != nil {
		return err
	}
	return d.setView(ViewMenu)
}

// UploadSucceeded returns to the menu after an import.
func (d *Departures) UploadSucceeded(model.UploadResult) error {
	return d.setView(ViewMenu)
}

// DeleteFile removes f and its records after confirmation, then reloads the
// file list.
func (d *Departures) DeleteFile(ctx context.Context, f model.ImportedFile, c listing.Confirmer) (bool, error) {
	prompt := fmt.Sprintf("Czy na pewno chcesz usunąć plik \"%s\" i wszystkie jego dane?", f.Filename)
	if c == nil || !c.Confirm(prompt) {
		return false, nil
	}
	if err := d.files.Delete(ctx, f.ID); err != nil {
		return false, errors.Wrapf(err, "delete file %d", f.ID)
	}
	if d.selected != nil && d.selected.ID == f.ID {
		if err := d.setSelected(nil); err != nil {
			return true, err
		}
	}
	return true, d.LoadFiles(ctx)
}

// List returns the departures of the open file, loading them when the file
// changed or a record was saved since the last call.
func (d *Departures) List(ctx context.Context) (*listing.DeparturesList, error) {
	if d.selected == nil {
		return nil, ErrNoFileSelected
	}
	if d.list != nil && d.list.File().ID == d.selected.ID && d.listKey == d.refreshKey {
		return d.list, nil
	}
	l := listing.NewDeparturesList(d.records, *d.selected, d.pageSize, d.log)
	if err := l.Open(ctx); err != nil {
		return nil, err
	}
	d.list, d.listKey = l, d.refreshKey
	return l, nil
}

// AddRecord opens an empty editor for the open file.
func (d *Departures) AddRecord() (*editor.DepartureEditor, error) {
	if d.selected == nil {
		return nil, ErrNoFileSelected
	}
	d.editor = editor.NewDepartureEditor(d.records, d.selected.ID, nil)
	return d.editor, nil
}

// EditRecord opens an editor on rec.
func (d *Departures) EditRecord(rec model.DepartureRecord) *editor.DepartureEditor {
	fileID := rec.FileID
	if d.selected != nil {
		fileID = d.selected.ID
	}
	d.editor = editor.NewDepartureEditor(d.records, fileID, &rec)
	return d.editor
}

// Editor returns the open editor, nil when none.
func (d *Departures) Editor() *editor.DepartureEditor { return d.editor }

// CloseEditor drops the editor without saving.
func (d *Departures) CloseEditor() { d.editor = nil }

// SaveRecord submits the open editor. On success the editor closes and the
// next List reloads.
func (d *Departures) SaveRecord(ctx context.Context) (string, error) {
	if d.editor == nil {
		return "", ErrNotEditing
	}
	msg, err := d.editor.Submit(ctx)
	if err != nil {
		return "", err
	}
	d.editor = nil
	d.refreshKey++
	return msg, nil
}

func (d *Departures) setView(v View) error {
	d.view = v
	if err := d.store.Set(KeyView, string(v)); err != nil {
		return errors.Wrap(err, "save view")
	}
	return nil
}

func (d *Departures) setSelected(f *model.ImportedFile) error {
	d.selected = f
	if f == nil {
		d.list = nil
		if err := d.store.Remove(KeySelectedFile); err != nil {
			return errors.Wrap(err, "clear selected file")
		}
		return nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return errors.Wrap(err, "encode selected file")
	}
	if err := d.store.Set(KeySelectedFile, string(data)); err != nil {
		return errors.Wrap(err, "save selected file")
	}
	return nil
}
