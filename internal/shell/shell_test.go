package shell_test

import (
	"context"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dharsanguruparan/strazak/internal/client/clienttest"
	"github.com/dharsanguruparan/strazak/internal/listing"
	"github.com/dharsanguruparan/strazak/internal/logging"
	"github.com/dharsanguruparan/strazak/internal/model"
	"github.com/dharsanguruparan/strazak/internal/shell"
	"github.com/dharsanguruparan/strazak/internal/storage"
)

var wyjazdy = model.ImportedFile{ID: 4, Filename: "wyjazdy_2024.xlsx", RowsCount: 12, Status: model.StatusCompleted}

func serveFiles(srv *clienttest.Server, files ...model.ImportedFile) {
	srv.JSON("GET /api/files/{$}", http.StatusOK, model.FileList{Files: files})
}

func serveDepartures(srv *clienttest.Server) {
	srv.JSON("GET /api/data/files/{id}/records", http.StatusOK, model.Page[model.DepartureRecord]{
		Records: []model.DepartureRecord{{ID: 1, FileID: 4, NazwiskoImie: "Kowalski Jan", NrMeldunku: "1/2024"}},
	})
	srv.JSON("GET /api/data/files/{id}/firefighters", http.StatusOK, model.FileFirefighters{Firefighters: []string{"Kowalski Jan"}})
}

func TestApp_TabsAndRefresh(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.JSON("GET /api/data/statistics", http.StatusOK, model.Statistics{TotalFiles: 2, TotalRecords: 40})
	c := srv.Client(t)
	ctx := context.Background()

	app := shell.NewApp(c.Data, nil)
	require.Equal(t, shell.TabData, app.Tab())
	require.Nil(t, app.Statistics())

	require.NoError(t, app.SetTab(shell.TabUpload))
	require.ErrorIs(t, app.SetTab("settings"), shell.ErrUnknownTab)
	require.Equal(t, shell.TabUpload, app.Tab())

	app.UploadSucceeded(ctx)
	require.Equal(t, shell.TabData, app.Tab())
	require.Equal(t, 1, app.RefreshTrigger())
	require.Equal(t, 40, app.Statistics().TotalRecords)
}

func TestApp_StatisticsFailureKeepsLastValues(t *testing.T) {
	srv := clienttest.NewServer(t)
	var failing atomic.Bool
	srv.Handle("GET /api/data/statistics", func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			clienttest.RespondDetail(w, http.StatusInternalServerError, "database locked")
			return
		}
		clienttest.RespondJSON(w, http.StatusOK, model.Statistics{TotalFiles: 1})
	})
	c := srv.Client(t)
	ctx := context.Background()

	app := shell.NewApp(c.Data, nil)
	app.Load(ctx)
	require.Equal(t, 1, app.Statistics().TotalFiles)

	failing.Store(true)
	app.RecordSaved(ctx)
	require.Equal(t, 1, app.RefreshTrigger())
	require.Equal(t, 1, app.Statistics().TotalFiles)
}

func TestDepartures_ReloadRestoresViewAndFile(t *testing.T) {
	srv := clienttest.NewServer(t)
	serveFiles(srv, wyjazdy)
	c := srv.Client(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	d, err := shell.NewDepartures(storage.NewFileStore(path), c.Files, c.Data, 50, nil)
	require.NoError(t, err)
	require.Equal(t, shell.ViewMenu, d.View())

	require.NoError(t, d.SelectFile(wyjazdy))
	require.Equal(t, shell.ViewDeparturesList, d.View())
	require.NoError(t, d.SetView(ctx, shell.ViewFileList))
	require.Len(t, d.Files(), 1)

	reloaded, err := shell.NewDepartures(storage.NewFileStore(path), c.Files, c.Data, 50, nil)
	require.NoError(t, err)
	require.Equal(t, shell.ViewFileList, reloaded.View())
	require.Equal(t, &wyjazdy, reloaded.Selected())
}

func TestDepartures_RestoreFallbacks(t *testing.T) {
	cases := []struct {
		name     string
		view     string
		file     string
		want     shell.View
		selected bool
	}{
		{"empty store", "", "", shell.ViewMenu, false},
		{"unknown view", "settings", "", shell.ViewMenu, false},
		{"list without file", "departures-list", "", shell.ViewFileList, false},
		{"legacy list name", "departures-list-refresh", `{"id":4,"filename":"a.xlsx"}`, shell.ViewDeparturesList, true},
		{"unreadable file", "import", "{", shell.ViewImport, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			if tc.view != "" {
				require.NoError(t, store.Set(shell.KeyView, tc.view))
			}
			if tc.file != "" {
				require.NoError(t, store.Set(shell.KeySelectedFile, tc.file))
			}
			d, err := shell.NewDepartures(store, nil, nil, 50, nil)
			require.NoError(t, err)
			require.Equal(t, tc.want, d.View())
			require.Equal(t, tc.selected, d.Selected() != nil)
		})
	}
}

func TestDepartures_BackClearsSelection(t *testing.T) {
	srv := clienttest.NewServer(t)
	serveFiles(srv, wyjazdy)
	c := srv.Client(t)
	ctx := context.Background()
	store := storage.NewMemoryStore()

	d, err := shell.NewDepartures(store, c.Files, c.Data, 50, nil)
	require.NoError(t, err)
	require.NoError(t, d.SelectFile(wyjazdy))
	_, ok, _ := store.Get(shell.KeySelectedFile)
	require.True(t, ok)

	require.NoError(t, d.BackFromList(ctx))
	require.Equal(t, shell.ViewFileList, d.View())
	require.Nil(t, d.Selected())
	_, ok, _ = store.Get(shell.KeySelectedFile)
	require.False(t, ok)

	require.NoError(t, d.SetView(ctx, shell.ViewImport))
	require.NoError(t, d.UploadSucceeded(model.UploadResult{FileID: 5}))
	require.Equal(t, shell.ViewMenu, d.View())
	v, _, _ := store.Get(shell.KeyView)
	require.Equal(t, "menu", v)

	require.ErrorIs(t, d.SetView(ctx, shell.ViewDeparturesList), shell.ErrNoFileSelected)
	require.ErrorIs(t, d.SetView(ctx, "settings"), shell.ErrUnknownView)
}

func TestDepartures_DeleteFileConfirms(t *testing.T) {
	srv := clienttest.NewServer(t)
	serveFiles(srv)
	srv.JSON("DELETE /api/files/{id}", http.StatusOK, model.Ack{Success: true})
	c := srv.Client(t)
	ctx := context.Background()

	d, err := shell.NewDepartures(storage.NewMemoryStore(), c.Files, c.Data, 50, nil)
	require.NoError(t, err)
	require.NoError(t, d.SelectFile(wyjazdy))

	var prompt string
	deleted, err := d.DeleteFile(ctx, wyjazdy, listing.ConfirmFunc(func(p string) bool {
		prompt = p
		return false
	}))
	require.NoError(t, err)
	require.False(t, deleted)
	require.Equal(t, `Czy na pewno chcesz usunąć plik "wyjazdy_2024.xlsx" i wszystkie jego dane?`, prompt)
	require.Empty(t, srv.Requests())

	deleted, err = d.DeleteFile(ctx, wyjazdy, listing.Always)
	require.NoError(t, err)
	require.True(t, deleted)
	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	require.Equal(t, http.MethodDelete, reqs[0].Method)
	require.Equal(t, "/api/files/4", reqs[0].Path)
	require.Equal(t, "/api/files/", reqs[1].Path)
	require.Nil(t, d.Selected())
}

func TestDepartures_SaveRecordReloadsList(t *testing.T) {
	srv := clienttest.NewServer(t)
	serveDepartures(srv)
	srv.JSON("POST /api/data/files/{id}/records", http.StatusOK, model.RecordMutation{Success: true})
	c := srv.Client(t)
	ctx := context.Background()

	d, err := shell.NewDepartures(storage.NewMemoryStore(), c.Files, c.Data, 50, nil)
	require.NoError(t, err)
	_, err = d.List(ctx)
	require.ErrorIs(t, err, shell.ErrNoFileSelected)
	_, err = d.SaveRecord(ctx)
	require.ErrorIs(t, err, shell.ErrNotEditing)

	require.NoError(t, d.SelectFile(wyjazdy))
	require.NoError(t, d.Open(ctx))
	list, err := d.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Rows(), 1)
	require.Equal(t, 1, srv.Count(http.MethodGet, "/api/data/files/4/records"))

	again, err := d.List(ctx)
	require.NoError(t, err)
	require.Same(t, list, again)

	e, err := d.AddRecord()
	require.NoError(t, err)
	e.Form.NazwiskoImie = "Nowak Anna"
	e.Form.NrMeldunku = "2/2024"
	msg, err := d.SaveRecord(ctx)
	require.NoError(t, err)
	require.Equal(t, "✅ Nowy rekord dodany pomyślnie", msg)
	require.Nil(t, d.Editor())
	require.Equal(t, "/api/data/files/4/records", srv.Last(t).Path)

	_, err = d.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, srv.Count(http.MethodGet, "/api/data/files/4/records"))
}

func TestFirefighters_SaveReloadsList(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.JSON("GET /api/firefighters/{$}", http.StatusOK, model.FirefighterList{})
	srv.JSON("GET /api/firefighters/statistics", http.StatusOK, model.FirefighterStatistics{})
	srv.JSON("POST /api/firefighters/{$}", http.StatusOK, model.FirefighterMutation{Success: true})
	c := srv.Client(t)
	ctx := context.Background()

	page := shell.NewFirefighters(listing.NewFirefightersList(c.Firefighters, 50, nil), c.Firefighters, nil)
	_, err := page.Save(ctx)
	require.ErrorIs(t, err, shell.ErrNotEditing)

	e := page.Add()
	e.Form = model.FirefighterInput{NazwiskoImie: "Kowalski Jan", Stopien: "Kapitan", Stanowisko: "Dowódca JRG", Jednostka: "JRG 1"}
	msg, err := page.Save(ctx)
	require.NoError(t, err)
	require.Equal(t, "Strażak został dodany pomyślnie", msg)
	require.Equal(t, 1, page.RefreshTrigger())
	require.Nil(t, page.Editor())
	require.Equal(t, 1, srv.Count(http.MethodGet, "/api/firefighters/"))
	require.Equal(t, 1, srv.Count(http.MethodGet, "/api/firefighters/statistics"))
}

func TestFirefighters_SaveSucceedsWhenReloadFails(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.JSON("POST /api/firefighters/{$}", http.StatusOK, model.FirefighterMutation{Success: true, Firefighter: model.Firefighter{ID: 12}})
	srv.Handle("GET /api/firefighters/{$}", func(w http.ResponseWriter, r *http.Request) {
		clienttest.RespondDetail(w, http.StatusInternalServerError, "boom")
	})
	srv.JSON("GET /api/firefighters/statistics", http.StatusOK, model.FirefighterStatistics{})
	c := srv.Client(t)
	log := logging.Discard()

	page := shell.NewFirefighters(listing.NewFirefightersList(c.Firefighters, 50, log), c.Firefighters, log)
	e := page.Add()
	e.Form = model.FirefighterInput{NazwiskoImie: "Nowak Anna", Stopien: "Aspirant", Stanowisko: "Ratownik", Jednostka: "JRG 2"}

	msg, err := page.Save(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Strażak został dodany pomyślnie", msg)
	require.Equal(t, 1, page.RefreshTrigger())
	require.Equal(t, 1, srv.Count(http.MethodPost, "/api/firefighters/"))
	require.Equal(t, 1, srv.Count(http.MethodGet, "/api/firefighters/"))
}
