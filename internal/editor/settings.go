package editor

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/model"
)

// SettingsStore reads and writes the backend settings.
// *client.SettingsService implements it.
type SettingsStore interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, in model.Settings) (*model.SettingsUpdate, error)
	CurrentDatabase(ctx context.Context) (*model.CurrentDatabase, error)
	BrowseDatabase(ctx context.Context) (*model.BrowseResult, error)
	BrowseFolder(ctx context.Context) (*model.BrowseResult, error)
}

// ErrNotDesktop is returned by Browse outside the desktop application.
var ErrNotDesktop = errors.New("Przeglądanie plików jest dostępne tylko w aplikacji desktopowej")

// RestartNotice is shown next to the form. Nothing enforces the restart.
const RestartNotice = "Zmiana ustawień wymaga ponownego uruchomienia aplikacji"

var settingsMessages = messages{
	"Path":     "Ścieżka do bazy nie może być pusta",
	"Database": "Ścieżka do bazy nie może być pusta",
	"Type":     "Wybierz typ bazy danych: local lub network",
}

// SettingsPanel edits the database location.
type SettingsPanel struct {
	store   SettingsStore
	desktop bool
	log     logrus.FieldLogger

	current *model.CurrentDatabase

	Form model.DatabaseConfig
}

// NewSettingsPanel builds a panel with the form defaulting to a local
// database. desktop enables the browse dialogs.
func NewSettingsPanel(store SettingsStore, desktop bool, log logrus.FieldLogger) *SettingsPanel {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SettingsPanel{
		store:   store,
		desktop: desktop,
		log:     log,
		Form:    model.DatabaseConfig{Type: model.DatabaseLocal},
	}
}

// Load fills the form from the stored settings and reads the database in
// use. Only the settings fetch can fail Load.
func (p *SettingsPanel) Load(ctx context.Context) error {
	s, err := p.store.Get(ctx)
	if err != nil {
		return errors.Wrap(err, "Nie udało się załadować ustawień")
	}
	p.Form = s.Database
	p.loadCurrent(ctx)
	return nil
}

func (p *SettingsPanel) loadCurrent(ctx context.Context) {
	cur, err := p.store.CurrentDatabase(ctx)
	if err != nil {
		p.log.WithError(err).Warn("load current database failed")
		return
	}
	p.current = cur
}

// Current returns the database the backend is using, or nil if unknown.
func (p *SettingsPanel) Current() *model.CurrentDatabase { return p.current }

func (p *SettingsPanel) Desktop() bool { return p.desktop }

func (p *SettingsPanel) Validate() error {
	return check(model.Settings{Database: p.Form}, settingsMessages)
}

// Save stores the form and returns the server's message, which tells the
// user to restart. The current database is re-read afterwards.
func (p *SettingsPanel) Save(ctx context.Context) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	res, err := p.store.Update(ctx, model.Settings{Database: p.Form})
	if err != nil {
		return "", errors.Wrap(err, "save settings")
	}
	p.loadCurrent(ctx)
	return res.Message, nil
}

// Browse opens the backend's file dialog: a database file for network
// storage, a folder for local storage. A cancelled dialog leaves the form
// unchanged and returns an empty message.
func (p *SettingsPanel) Browse(ctx context.Context) (string, error) {
	if !p.desktop {
		return "", ErrNotDesktop
	}
	var (
		res *model.BrowseResult
		err error
	)
	if p.Form.Type == model.DatabaseNetwork {
		res, err = p.store.BrowseDatabase(ctx)
	} else {
		res, err = p.store.BrowseFolder(ctx)
	}
	if err != nil {
		return "", errors.Wrap(err, "Nie udało się otworzyć dialogu wyboru pliku")
	}
	if res.Path == "" {
		return "", nil
	}
	p.Form.Path = res.Path
	return "Wybrano ścieżkę: " + res.Path, nil
}

// Describe turns a Save error into the message shown to the user.
func (p *SettingsPanel) Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err), errors.Is(err, ErrNotDesktop):
		return err.Error()
	}
	if client.StatusCode(err) != 0 {
		return client.Detail(err)
	}
	return "Błąd zapisywania ustawień"
}
