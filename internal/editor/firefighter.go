package editor

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/model"
)

// FirefighterStore creates and updates roster entries.
// *client.FirefightersService implements it.
type FirefighterStore interface {
	Create(ctx context.Context, in model.FirefighterInput) (*model.FirefighterMutation, error)
	Update(ctx context.Context, id int, in model.FirefighterInput) (*model.FirefighterMutation, error)
}

type firefighterForm struct {
	NazwiskoImie string `validate:"notblank"`
	Stopien      string `validate:"notblank"`
	Stanowisko   string `validate:"notblank"`
	Jednostka    string `validate:"notblank"`
}

var firefighterMessages = messages{
	"NazwiskoImie": "Podaj nazwisko i imię strażaka",
	"Stopien":      "Wybierz stopień",
	"Stanowisko":   "Wybierz stanowisko",
	"Jednostka":    "Podaj jednostkę",
}

// FirefighterEditor adds a firefighter or edits an existing one. Rank and
// position are offered from model.Ranks and model.Positions, but imported
// rosters may carry other values and those are saved as given.
type FirefighterEditor struct {
	store    FirefighterStore
	original *model.Firefighter
	onSave   func(model.Firefighter)

	Form model.FirefighterInput
}

func NewFirefighterEditor(store FirefighterStore, f *model.Firefighter) *FirefighterEditor {
	e := &FirefighterEditor{store: store}
	if f != nil {
		cp := *f
		e.original = &cp
		e.Form = f.Input()
	}
	return e
}

func (e *FirefighterEditor) IsNew() bool { return e.original == nil }

func (e *FirefighterEditor) OnSave(fn func(model.Firefighter)) { e.onSave = fn }

func (e *FirefighterEditor) Validate() error {
	return check(firefighterForm(e.Form), firefighterMessages)
}

// Unlisted describes rank or position values outside the standard lists.
// They never block Submit.
func (e *FirefighterEditor) Unlisted() []string {
	var out []string
	if v := e.Form.Stopien; v != "" && !model.IsRank(v) {
		out = append(out, fmt.Sprintf("Stopień %q spoza listy", v))
	}
	if v := e.Form.Stanowisko; v != "" && !model.IsPosition(v) {
		out = append(out, fmt.Sprintf("Stanowisko %q spoza listy", v))
	}
	return out
}

// Submit validates, then creates or updates, and returns the success message.
func (e *FirefighterEditor) Submit(ctx context.Context) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	var (
		res *model.FirefighterMutation
		err error
		msg string
	)
	if e.IsNew() {
		res, err = e.store.Create(ctx, e.Form)
		msg = "Strażak został dodany pomyślnie"
	} else {
		res, err = e.store.Update(ctx, e.original.ID, e.Form)
		msg = "Dane strażaka zaktualizowane pomyślnie"
	}
	if err != nil {
		return "", errors.Wrap(err, "save firefighter")
	}
	if e.onSave != nil {
		e.onSave(res.Firefighter)
	}
	return msg, nil
}

func (e *FirefighterEditor) Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err):
		return err.Error()
	case client.IsConflict(err):
		return "⚠️ Duplikat!\n\n" + client.Detail(err)
	default:
		return "Błąd: " + client.Detail(err)
	}
}
