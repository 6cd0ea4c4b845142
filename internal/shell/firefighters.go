package shell

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dharsanguruparan/strazak/internal/editor"
	"github.com/dharsanguruparan/strazak/internal/listing"
	"github.com/dharsanguruparan/strazak/internal/model"
)

// Firefighters is the roster page: the list and at most one open editor.
type Firefighters struct {
	list   *listing.FirefightersList
	store  editor.FirefighterStore
	editor *editor.FirefighterEditor
	log    logrus.FieldLogger

	refresh int
}

func NewFirefighters(list *listing.FirefightersList, store editor.FirefighterStore, log logrus.FieldLogger) *Firefighters {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Firefighters{list: list, store: store, log: log}
}

func (f *Firefighters) List() *listing.FirefightersList { return f.list }

// RefreshTrigger grows by one after every saved firefighter.
func (f *Firefighters) RefreshTrigger() int { return f.refresh }

// Add opens an empty editor.
func (f *Firefighters) Add() *editor.FirefighterEditor {
	f.editor = editor.NewFirefighterEditor(f.store, nil)
	return f.editor
}

// Edit opens an editor on ff.
func (f *Firefighters) Edit(ff model.Firefighter) *editor.FirefighterEditor {
	f.editor = editor.NewFirefighterEditor(f.store, &ff)
	return f.editor
}

// Editor returns the open editor, nil when none.
func (f *Firefighters) Editor() *editor.FirefighterEditor { return f.editor }

func (f *Firefighters) CloseEditor() { f.editor = nil }

// Save submits the open editor, closes it and reloads the list. Once the
// submit succeeded a failed reload is only logged; the list keeps its rows.
func (f *Firefighters) Save(ctx context.Context) (string, error) {
	if f.editor == nil {
		return "", ErrNotEditing
	}
	msg, err := f.editor.Submit(ctx)
	if err != nil {
		return "", err
	}
	f.editor = nil
	f.refresh++
	if err := f.list.Refresh(ctx); err != nil {
		f.log.WithError(err).Warn("reload firefighters after save")
	}
	return msg, nil
}
