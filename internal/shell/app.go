// Package shell holds the navigation state of the application: which tab is
// active, which departures screen is shown and which file is open. List and
// editor controllers are created by the shell and refreshed through its
// refresh counters.
package shell

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/dharsanguruparan/strazak/internal/model"
)

// Tab is a top-level section.
type Tab string

const (
	TabUpload       Tab = "upload"
	TabData         Tab = "data"
	TabFirefighters Tab = "firefighters"
)

// Tabs lists the sections in menu order.
var Tabs = []Tab{TabData, TabFirefighters, TabUpload}

var ErrUnknownTab = errors.New("unknown tab")

// StatisticsSource reports the record totals. *client.DataService
// implements it.
type StatisticsSource interface {
	Statistics(ctx context.Context) (*model.Statistics, error)
}

// App is the top-level shell.
type App struct {
	stats StatisticsSource
	log   logrus.FieldLogger

	tab        Tab
	refresh    int
	statistics *model.Statistics
}

func NewApp(stats StatisticsSource, log logrus.FieldLogger) *App {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &App{stats: stats, log: log, tab: TabData}
}

func (a *App) Tab() Tab { return a.tab }

func (a *App) SetTab(t Tab) error {
	switch t {
	case TabUpload, TabData, TabFirefighters:
		a.tab = t
		return nil
	}
	return errors.Wrapf(ErrUnknownTab, "%q", t)
}

// RefreshTrigger grows by one whenever lists under the app must reload.
func (a *App) RefreshTrigger() int { return a.refresh }

// Statistics returns the last loaded totals, nil before the first success.
func (a *App) Statistics() *model.Statistics { return a.statistics }

// Load fetches the statistics. A failure is logged and the previous
// values stay.
func (a *App) Load(ctx context.Context) {
	stats, err := a.stats.Statistics(ctx)
	if err != nil {
		a.log.WithError(err).Warn("load statistics")
		return
	}
	a.statistics = stats
}

// Refresh bumps the refresh trigger and reloads the statistics.
func (a *App) Refresh(ctx context.Context) {
	a.refresh++
	a.Load(ctx)
}

// UploadSucceeded refreshes and switches to the data tab.
func (a *App) UploadSucceeded(ctx context.Context) {
	a.Refresh(ctx)
	a.tab = TabData
}

// RecordSaved refreshes after an edit.
func (a *App) RecordSaved(ctx context.Context) {
	a.Refresh(ctx)
}
