package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/client/clienttest"
	"github.com/dharsanguruparan/strazak/internal/model"
)

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := client.New("localhost:8000/api")
	require.Error(t, err)

	c, err := client.New("")
	require.NoError(t, err)
	require.Equal(t, client.DefaultBaseURL, c.BaseURL())
}

func TestFiles_ListAndUpload(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.JSON("GET /api/files/{$}", http.StatusOK, model.FileList{Files: []model.ImportedFile{
		{ID: 1, Filename: "wyjazdy.xlsx", RowsCount: 12, Status: model.StatusCompleted},
	}})
	srv.JSON("POST /api/files/upload", http.StatusOK, model.UploadResult{
		Success: true, FileID: 2, Filename: "nowy.xlsx", RecordsImported: 40,
	})
	c := srv.Client(t)
	ctx := context.Background()

	files, err := c.Files.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.True(t, files[0].Status.Done())

	res, err := c.Files.Upload(ctx, "/tmp/nowy.xlsx", strings.NewReader("PK\x03\x04"))
	require.NoError(t, err)
	require.Equal(t, 40, res.RecordsImported)

	req := srv.Last(t)
	require.Equal(t, "nowy.xlsx", req.Filename)
	require.Equal(t, []byte("PK\x03\x04"), req.File)
	require.NotEmpty(t, req.Header.Get("X-Request-ID"))
}

func TestData_FileRecordsQuery(t *testing.T) {
	srv := clienttest.NewServer(t)
	total := 3
	srv.JSON("GET /api/data/files/{id}/records", http.StatusOK, model.Page[model.DepartureRecord]{
		Records:    []model.DepartureRecord{{ID: 1}},
		TotalCount: &total,
	})
	c := srv.Client(t)

	page, err := c.Data.FileRecords(context.Background(), 5, client.FileRecordsQuery{
		Skip:        50,
		Limit:       50,
		Firefighter: "Kowalski Jan",
		DateFrom:    "2024-01-01",
		SortBy:      "czas_rozp_zdarzenia",
		SortOrder:   client.Descending,
	})
	require.NoError(t, err)
	require.Equal(t, 3, *page.TotalCount)

	req := srv.Last(t)
	require.Equal(t, "/api/data/files/5/records", req.Path)
	require.Equal(t, "50", req.Query.Get("skip"))
	require.Equal(t, "50", req.Query.Get("limit"))
	require.Equal(t, "Kowalski Jan", req.Query.Get("firefighter"))
	require.Equal(t, "2024-01-01", req.Query.Get("date_from"))
	require.False(t, req.Query.Has("date_to"))
	require.Equal(t, "desc", req.Query.Get("sort_order"))
}

func TestFileRecordsQuery_SortOrderNeedsSortBy(t *testing.T) {
	v := client.FileRecordsQuery{SortOrder: client.Descending}.Values()
	require.False(t, v.Has("sort_by"))
	require.False(t, v.Has("sort_order"))
	require.Equal(t, "0", v.Get("skip"))
}

func TestData_CreateRecordRoundTrip(t *testing.T) {
	srv := clienttest.NewServer(t)
	var stored model.DepartureRecord
	srv.Handle("POST /api/data/files/{id}/records", func(w http.ResponseWriter, r *http.Request) {
		var in model.DepartureInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		stored = model.DepartureRecord{
			ID: 9, FileID: 3, NazwiskoImie: in.NazwiskoImie, NrMeldunku: in.NrMeldunku,
			Funkcja: in.Funkcja, P: model.Flag(in.P),
		}
		clienttest.RespondJSON(w, http.StatusOK, model.RecordMutation{Success: true, Record: stored})
	})
	srv.Handle("GET /api/data/records/{id}", func(w http.ResponseWriter, r *http.Request) {
		clienttest.RespondJSON(w, http.StatusOK, stored)
	})
	c := srv.Client(t)
	ctx := context.Background()

	in := model.DepartureInput{NazwiskoImie: "Nowak Anna", NrMeldunku: "15/2024", Funkcja: "Kierowca", P: "1"}
	_, err := c.Data.CreateRecord(ctx, 3, in)
	require.NoError(t, err)

	got, err := c.Data.Record(ctx, 9)
	require.NoError(t, err)
	require.Equal(t, in.NazwiskoImie, got.NazwiskoImie)
	require.Equal(t, in.NrMeldunku, got.NrMeldunku)
	require.Equal(t, in.Funkcja, got.Funkcja)
	require.Equal(t, in.P, got.P.String())
}

func TestAPIError_Conflict(t *testing.T) {
	srv := clienttest.NewServer(t)
	detail := "Rekord dla 'Nowak Anna' z meldunkiem '15/2024' już istnieje w tym pliku"
	srv.Handle("POST /api/data/files/{id}/records", func(w http.ResponseWriter, r *http.Request) {
		clienttest.RespondDetail(w, http.StatusConflict, detail)
	})
	c := srv.Client(t)

	_, err := c.Data.CreateRecord(context.Background(), 1, model.DepartureInput{})
	require.Error(t, err)
	require.True(t, client.IsConflict(err))
	require.False(t, client.IsNotFound(err))
	require.Equal(t, detail, client.Detail(err))
	require.Equal(t, http.StatusConflict, client.StatusCode(err))
}

func TestDetail_TransportError(t *testing.T) {
	srv := clienttest.NewServer(t)
	c := srv.Client(t)
	srv.Close()

	_, err := c.System.Health(context.Background())
	require.Error(t, err)
	require.Equal(t, 0, client.StatusCode(err))
	require.Contains(t, client.Detail(err), "/health")
}

func TestData_ExportUsesDispositionFilename(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.Handle("GET /api/data/files/{id}/export/excel", func(w http.ResponseWriter, r *http.Request) {
		clienttest.RespondAttachment(w, "application/octet-stream", "wyjazdy_Kowalski_2024.xlsx", []byte("xlsx"))
	})
	c := srv.Client(t)

	dl, err := c.Data.Export(context.Background(), 4, client.ExportExcel, client.ExportFilter{Firefighter: "Kowalski"})
	require.NoError(t, err)
	require.Equal(t, "wyjazdy_Kowalski_2024.xlsx", dl.Filename)
	require.Equal(t, []byte("xlsx"), dl.Data)
	require.Equal(t, "Kowalski", srv.Last(t).Query.Get("firefighter"))

	_, err = c.Data.Export(context.Background(), 4, client.ExportFormat("pdf"), client.ExportFilter{})
	require.Error(t, err)
	require.Equal(t, 1, srv.Count(http.MethodGet, "/api/data/files/4/export/excel"))
}

func TestFirefighters_ListFiltersAndImport(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.JSON("GET /api/firefighters/{$}", http.StatusOK, model.FirefighterList{})
	srv.JSON("POST /api/firefighters/import", http.StatusOK, model.ImportResult{
		Success: true, CreatedCount: 2, SkippedCount: 1, Errors: []string{"Wiersz 4: brak stopnia"},
	})
	c := srv.Client(t)
	ctx := context.Background()

	_, err := c.Firefighters.List(ctx, client.FirefighterQuery{
		Limit:             50,
		FirefighterFilter: client.FirefighterFilter{Jednostka: "JRG 1", Stopien: "Kapitan"},
	})
	require.NoError(t, err)
	q := srv.Last(t).Query
	require.Equal(t, "JRG 1", q.Get("jednostka"))
	require.Equal(t, "Kapitan", q.Get("stopien"))
	require.False(t, q.Has("search"))

	res, err := c.Firefighters.Import(ctx, "strazacy.xlsx", bytes.NewReader([]byte("data")))
	require.NoError(t, err)
	require.Equal(t, 2, res.CreatedCount)
	require.Equal(t, "strazacy.xlsx", srv.Last(t).Filename)
}

func TestSettings_UpdateAndBrowse(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.Handle("POST /api/settings/{$}", func(w http.ResponseWriter, r *http.Request) {
		var in model.Settings
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		clienttest.RespondJSON(w, http.StatusOK, model.SettingsUpdate{
			Success: true, Message: "Ustawienia zapisane. Uruchom ponownie aplikację.", Settings: in,
		})
	})
	srv.JSON("GET /api/settings/browse-folder/", http.StatusOK, model.BrowseResult{Path: `C:\dane`})
	c := srv.Client(t)
	ctx := context.Background()

	upd, err := c.Settings.Update(ctx, model.Settings{Database: model.DatabaseConfig{Type: model.DatabaseNetwork, Path: `\\serwer\baza.db`}})
	require.NoError(t, err)
	require.Equal(t, model.DatabaseNetwork, upd.Settings.Database.Type)

	res, err := c.Settings.BrowseFolder(ctx)
	require.NoError(t, err)
	require.Equal(t, `C:\dane`, res.Path)
}

func TestWithRequestIDHeader_Disabled(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.JSON("GET /health", http.StatusOK, model.Health{Status: "healthy"})
	c, err := client.New(srv.URL, client.WithRequestIDHeader(""))
	require.NoError(t, err)

	h, err := c.System.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, "healthy", h.Status)
	require.Empty(t, srv.Last(t).Header.Get("X-Request-ID"))
}

func TestFiles_DetailPreviewDelete(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.JSON("GET /api/files/{id}", http.StatusOK, model.ImportedFile{ID: 7, Filename: "a.xlsx", Notes: "marzec"})
	srv.JSON("GET /api/files/{id}/preview", http.StatusOK, model.FilePreview{
		FileID: 7, Filename: "a.xlsx", Preview: []model.DepartureRecord{{ID: 1}, {ID: 2}},
	})
	srv.JSON("DELETE /api/files/{id}", http.StatusOK, map[string]any{"success": true})
	c := srv.Client(t)
	ctx := context.Background()

	f, err := c.Files.Get(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, "marzec", f.Notes)

	p, err := c.Files.Preview(ctx, 7)
	require.NoError(t, err)
	require.Len(t, p.Preview, 2)

	require.NoError(t, c.Files.Delete(ctx, 7))
	require.Equal(t, 1, srv.Count(http.MethodDelete, "/api/files/7"))
}

func TestData_FirefightersAndStatistics(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.JSON("GET /api/data/files/{id}/firefighters", http.StatusOK, model.FileFirefighters{
		Firefighters: []string{"Kowalski Jan", "Nowak Anna"},
	})
	srv.JSON("GET /api/data/statistics", http.StatusOK, model.Statistics{TotalFiles: 2, TotalRecords: 30, AvgRecordsPerFile: 15})
	c := srv.Client(t)
	ctx := context.Background()

	names, err := c.Data.Firefighters(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"Kowalski Jan", "Nowak Anna"}, names)
	require.Equal(t, "/api/data/files/3/firefighters", srv.Last(t).Path)

	st, err := c.Data.Statistics(ctx)
	require.NoError(t, err)
	require.InDelta(t, 15.0, st.AvgRecordsPerFile, 0.001)
}

func TestSystem_InfoAndEnvironment(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.JSON("GET /api", http.StatusOK, model.AppInfo{App: "Strażak", Version: "1.0.0", Status: "running"})
	srv.JSON("GET /api/system/environment", http.StatusOK, model.Environment{IsDesktop: true})
	c := srv.Client(t)
	ctx := context.Background()

	info, err := c.System.Info(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", info.Version)

	env, err := c.System.Environment(ctx)
	require.NoError(t, err)
	require.True(t, env.IsDesktop)
}
