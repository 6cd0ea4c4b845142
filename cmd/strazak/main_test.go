package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dharsanguruparan/strazak/internal/client/clienttest"
	"github.com/dharsanguruparan/strazak/internal/export"
	"github.com/dharsanguruparan/strazak/internal/model"
)

var wyjazdy = model.ImportedFile{ID: 4, Filename: "wyjazdy_2024.xlsx", RowsCount: 2, Status: model.StatusCompleted}

type harness struct {
	srv       *clienttest.Server
	downloads string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STRAZAK_STATE_FILE", filepath.Join(dir, "state.json"))
	t.Setenv("STRAZAK_DOWNLOAD_DIR", filepath.Join(dir, "downloads"))
	t.Setenv("STRAZAK_LOG_FILE", "")
	t.Setenv("STRAZAK_ARCHIVE_ENDPOINT", "")
	return &harness{srv: clienttest.NewServer(t), downloads: filepath.Join(dir, "downloads")}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(strings.NewReader(stdin), &out)
	cmd.SetArgs(append([]string{"--api-url", h.srv.URL, "--log-level", "silent"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDepartures_StatePersistsAcrossRuns(t *testing.T) {
	h := newHarness(t)
	h.srv.JSON("GET /api/files/{id}", http.StatusOK, wyjazdy)
	h.srv.JSON("GET /api/files/{$}", http.StatusOK, model.FileList{Files: []model.ImportedFile{wyjazdy}})
	h.srv.JSON("GET /api/data/files/{id}/records", http.StatusOK, model.Page[model.DepartureRecord]{
		Records: []model.DepartureRecord{{ID: 7, FileID: 4, NazwiskoImie: "Kowalski Jan", NrMeldunku: "1/2024"}},
	})
	h.srv.JSON("GET /api/data/files/{id}/firefighters", http.StatusOK, model.FileFirefighters{Firefighters: []string{"Kowalski Jan"}})

	out, err := h.run(t, "", "departures", "select", "4")
	require.NoError(t, err)
	require.Contains(t, out, "Otwarto plik wyjazdy_2024.xlsx")

	out, err = h.run(t, "", "departures", "state")
	require.NoError(t, err)
	require.Contains(t, out, "Widok: departures-list")
	require.Contains(t, out, "Plik: wyjazdy_2024.xlsx (ID 4)")

	h.srv.Reset()
	out, err = h.run(t, "", "departures", "list", "--sort", "czas_rozp_zdarzenia", "--desc", "--firefighter", "Kowalski Jan")
	require.NoError(t, err)
	require.Contains(t, out, "Kowalski Jan")
	require.Equal(t, 1, h.srv.Count(http.MethodGet, "/api/data/files/4/records"))
	q := h.srv.Last(t).Query
	require.Equal(t, "czas_rozp_zdarzenia", q.Get("sort_by"))
	require.Equal(t, "desc", q.Get("sort_order"))
	require.Equal(t, "Kowalski Jan", q.Get("firefighter"))

	_, err = h.run(t, "", "departures", "back")
	require.NoError(t, err)
	out, err = h.run(t, "", "departures", "state")
	require.NoError(t, err)
	require.Contains(t, out, "Widok: file-list")
	require.NotContains(t, out, "Plik:")
}

func TestDepartures_NeedsSelectedFile(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "", "departures", "list")
	require.EqualError(t, err, errNoSelection.Error())
	require.Empty(t, h.srv.Requests())
}

func TestDocument_RefusedWithoutFirefighter(t *testing.T) {
	h := newHarness(t)
	h.srv.JSON("GET /api/files/{id}", http.StatusOK, wyjazdy)
	_, err := h.run(t, "", "departures", "select", "4")
	require.NoError(t, err)

	h.srv.Reset()
	_, err = h.run(t, "", "departures", "document", "pdf", "--from", "2024-01-01", "--to", "2024-12-31")
	require.EqualError(t, err, export.ErrFirefighterRequired.Error())
	require.Empty(t, h.srv.Requests())
}

func TestFirefightersDelete_AsksFirst(t *testing.T) {
	h := newHarness(t)
	h.srv.JSON("GET /api/firefighters/{id}", http.StatusOK, model.Firefighter{ID: 2, NazwiskoImie: "Nowak Anna"})
	h.srv.JSON("DELETE /api/firefighters/{id}", http.StatusOK, model.Ack{Success: true})
	h.srv.JSON("GET /api/firefighters/{$}", http.StatusOK, model.FirefighterList{})
	h.srv.JSON("GET /api/firefighters/statistics", http.StatusOK, model.FirefighterStatistics{})

	out, err := h.run(t, "n\n", "firefighters", "delete", "2")
	require.NoError(t, err)
	require.Contains(t, out, "Czy na pewno chcesz usunąć strażaka: Nowak Anna?")
	require.Zero(t, h.srv.Count(http.MethodDelete, "/api/firefighters/2"))

	out, err = h.run(t, "tak\n", "firefighters", "delete", "2")
	require.NoError(t, err)
	require.Contains(t, out, "Strażak usunięty")
	require.Equal(t, 1, h.srv.Count(http.MethodDelete, "/api/firefighters/2"))

	_, err = h.run(t, "", "--yes", "firefighters", "delete", "2")
	require.NoError(t, err)
	require.Equal(t, 2, h.srv.Count(http.MethodDelete, "/api/firefighters/2"))
}

func TestFirefightersExport_SavesDownload(t *testing.T) {
	h := newHarness(t)
	h.srv.Handle("GET /api/firefighters/export/csv", func(w http.ResponseWriter, r *http.Request) {
		clienttest.RespondAttachment(w, "text/csv", "strazacy_jrg1.csv", []byte("a;b\n"))
	})

	out, err := h.run(t, "", "firefighters", "export", "csv", "--unit", "JRG 1")
	require.NoError(t, err)
	require.Contains(t, out, "Plik strazacy_jrg1.csv został pobrany pomyślnie!")
	require.Equal(t, "JRG 1", h.srv.Last(t).Query.Get("jednostka"))

	data, err := os.ReadFile(filepath.Join(h.downloads, "strazacy_jrg1.csv"))
	require.NoError(t, err)
	require.Equal(t, "a;b\n", string(data))

	_, err = h.run(t, "", "firefighters", "export", "pdf")
	require.Error(t, err)
}

func TestRecordEdit_ReportsConflict(t *testing.T) {
	h := newHarness(t)
	h.srv.JSON("GET /api/data/records/{id}", http.StatusOK, model.DepartureRecord{ID: 3, FileID: 4, NazwiskoImie: "Kowalski Jan", NrMeldunku: "1/2024"})
	h.srv.Handle("PUT /api/data/records/{id}", func(w http.ResponseWriter, r *http.Request) {
		clienttest.RespondDetail(w, http.StatusConflict, "Rekord o tym numerze meldunku już istnieje")
	})

	_, err := h.run(t, "", "records", "edit", "3", "--function", "Dowódca")
	require.EqualError(t, err, "⚠️ Duplikat!\n\nRekord o tym numerze meldunku już istnieje")
	require.Contains(t, string(h.srv.Last(t).Body), `"funkcja":"Dowódca"`)
}

func TestOpenerCommand(t *testing.T) {
	name, args := openerCommand("linux", "/tmp/a.pdf")
	require.Equal(t, "xdg-open", name)
	require.Equal(t, []string{"/tmp/a.pdf"}, args)

	name, _ = openerCommand("darwin", "/tmp/a.pdf")
	require.Equal(t, "open", name)

	name, args = openerCommand("windows", `C:\a.pdf`)
	require.Equal(t, "rundll32", name)
	require.Equal(t, []string{"url.dll,FileProtocolHandler", `C:\a.pdf`}, args)
}
