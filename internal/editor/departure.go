package editor

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/model"
)

// DepartureStore creates and updates departure records. *client.DataService
// implements it.
type DepartureStore interface {
	CreateRecord(ctx context.Context, fileID int, in model.DepartureInput) (*model.RecordMutation, error)
	UpdateRecord(ctx context.Context, id int, in model.DepartureInput) (*model.RecordMutation, error)
}

// ErrNoFile is returned when a new record has no file to belong to.
var ErrNoFile = errors.New("no file selected for the new record")

type departureForm struct {
	NazwiskoImie string `validate:"notblank"`
	NrMeldunku   string `validate:"notblank"`
}

var departureMessages = messages{
	"NazwiskoImie": "⚠️ Pole 'Nazwisko i Imię' jest wymagane",
	"NrMeldunku":   "⚠️ Pole 'Nr meldunku' jest wymagane",
}

// DepartureEditor edits one departure record, or drafts a new one in a file.
// When editing, the name and report number are locked to their stored values.
type DepartureEditor struct {
	store    DepartureStore
	fileID   int
	original *model.DepartureRecord
	onSave   func(model.DepartureRecord)

	Form model.DepartureInput
}

// NewDepartureEditor opens an editor. A nil record starts an empty form for a
// new record in fileID.
func NewDepartureEditor(store DepartureStore, fileID int, record *model.DepartureRecord) *DepartureEditor {
	e := &DepartureEditor{store: store, fileID: fileID}
	if record != nil {
		cp := *record
		e.original = &cp
		e.fileID = record.FileID
		e.Form = record.Input()
	}
	return e
}

// IsNew reports whether Submit will create rather than update.
func (e *DepartureEditor) IsNew() bool { return e.original == nil }

// Locked reports whether field (by JSON name) is read-only in this editor.
func (e *DepartureEditor) Locked(field string) bool {
	return !e.IsNew() && (field == "nazwisko_imie" || field == "nr_meldunku")
}

// OnSave registers the callback run after a successful submit, typically
// closing the editor and refreshing the list.
func (e *DepartureEditor) OnSave(fn func(model.DepartureRecord)) { e.onSave = fn }

// Validate runs the local required-field checks.
func (e *DepartureEditor) Validate() error {
	return check(departureForm{NazwiskoImie: e.Form.NazwiskoImie, NrMeldunku: e.Form.NrMeldunku}, departureMessages)
}

// Submit validates and then creates or updates the record. It returns the
// success message for the user.
func (e *DepartureEditor) Submit(ctx context.Context) (string, error) {
	if !e.IsNew() {
		e.Form.NazwiskoImie = e.original.NazwiskoImie
		e.Form.NrMeldunku = e.original.NrMeldunku
	}
	if err := e.Validate(); err != nil {
		return "", err
	}
	var (
		res *model.RecordMutation
		err error
		msg string
	)
	if e.IsNew() {
		if e.fileID <= 0 {
			return "", ErrNoFile
		}
		res, err = e.store.CreateRecord(ctx, e.fileID, e.Form)
		msg = "✅ Nowy rekord dodany pomyślnie"
	} else {
		res, err = e.store.UpdateRecord(ctx, e.original.ID, e.Form)
		msg = "✅ Rekord zaktualizowany pomyślnie"
	}
	if err != nil {
		return "", errors.Wrap(err, "save record")
	}
	if e.onSave != nil {
		e.onSave(res.Record)
	}
	return msg, nil
}

// Describe turns a Submit error into the message shown to the user.
// Duplicates get their own heading with the server's explanation.
func (e *DepartureEditor) Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err):
		return err.Error()
	case client.IsConflict(err):
		return "⚠️ Duplikat!\n\n" + client.Detail(err)
	default:
		return "❌ Błąd: " + client.Detail(err)
	}
}
