package listing_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/client/clienttest"
	"github.com/dharsanguruparan/strazak/internal/listing"
	"github.com/dharsanguruparan/strazak/internal/model"
)

func departures(n int) []model.DepartureRecord {
	out := make([]model.DepartureRecord, n)
	for i := range out {
		out[i] = model.DepartureRecord{ID: i + 1, FileID: 1, NazwiskoImie: fmt.Sprintf("Strażak %03d", i+1)}
	}
	return out
}

func serveRecords(srv *clienttest.Server, all []model.DepartureRecord) {
	srv.Handle("GET /api/data/records", func(w http.ResponseWriter, r *http.Request) {
		page := clienttest.Paginate(r, all)
		clienttest.RespondJSON(w, http.StatusOK, model.Page[model.DepartureRecord]{Records: page, Count: len(page)})
	})
}

func TestRecordsTable_PagesThroughBackendOrder(t *testing.T) {
	srv := clienttest.NewServer(t)
	all := departures(120)
	serveRecords(srv, all)
	srv.JSON("GET /api/files/{$}", http.StatusOK, model.FileList{Files: []model.ImportedFile{{ID: 1}}})
	c := srv.Client(t)
	ctx := context.Background()

	table := listing.NewRecordsTable(c.Data, c.Files, 50, nil)
	require.NoError(t, table.Refresh(ctx))
	require.Len(t, table.Files(), 1)
	require.Equal(t, all[:50], table.Rows())

	for k, want := range [][]model.DepartureRecord{all[50:100], all[100:120]} {
		ok, err := table.NextPage(ctx)
		require.NoError(t, err)
		require.True(t, ok, "page %d", k+1)
		require.Equal(t, want, table.Rows())
	}
	require.False(t, table.Pager().HasNext())

	before := len(srv.Requests())
	ok, err := table.NextPage(ctx)
	require.NoError(t, err)
	require.False(t, ok)
	require.Len(t, srv.Requests(), before, "no fetch past the last page")
}

func TestRecordsTable_FilterChangeResetsPage(t *testing.T) {
	srv := clienttest.NewServer(t)
	serveRecords(srv, departures(120))
	c := srv.Client(t)
	ctx := context.Background()

	table := listing.NewRecordsTable(c.Data, c.Files, 50, nil)
	require.NoError(t, table.GoTo(ctx, 2))
	require.Equal(t, "100", srv.Last(t).Query.Get("skip"))

	srv.Reset()
	require.NoError(t, table.SetSearch(ctx, "Kowalski"))
	require.Len(t, srv.Requests(), 1)
	q := srv.Last(t).Query
	require.Equal(t, "0", q.Get("skip"))
	require.Equal(t, "Kowalski", q.Get("search"))

	require.NoError(t, table.SetFile(ctx, 7))
	require.Equal(t, "7", srv.Last(t).Query.Get("file_id"))
}

func TestRecordsTable_DeleteRequiresConfirmation(t *testing.T) {
	srv := clienttest.NewServer(t)
	serveRecords(srv, departures(3))
	srv.JSON("DELETE /api/data/records/{id}", http.StatusOK, model.Ack{Success: true})
	c := srv.Client(t)
	ctx := context.Background()
	table := listing.NewRecordsTable(c.Data, c.Files, 50, nil)

	var prompt string
	deleted, err := table.DeleteRecord(ctx, 2, listing.ConfirmFunc(func(p string) bool {
		prompt = p
		return false
	}))
	require.NoError(t, err)
	require.False(t, deleted)
	require.NotEmpty(t, prompt)
	require.Empty(t, srv.Requests())

	deleted, err = table.DeleteRecord(ctx, 2, listing.Always)
	require.NoError(t, err)
	require.True(t, deleted)
	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	require.Equal(t, http.MethodDelete, reqs[0].Method)
	require.Equal(t, "/api/data/records/2", reqs[0].Path)
	require.Equal(t, "/api/data/records", reqs[1].Path)

	srv.Reset()
	deleted, err = table.DeleteRecord(ctx, 2, nil)
	require.NoError(t, err)
	require.False(t, deleted, "no confirmer means no approval")
	require.Empty(t, srv.Requests())
}

func TestDeparturesList_TotalCountAndFilters(t *testing.T) {
	srv := clienttest.NewServer(t)
	all := departures(60)
	srv.Handle("GET /api/data/files/{id}/records", func(w http.ResponseWriter, r *http.Request) {
		total := len(all)
		page := clienttest.Paginate(r, all)
		clienttest.RespondJSON(w, http.StatusOK, model.Page[model.DepartureRecord]{Records: page, TotalCount: &total})
	})
	srv.JSON("GET /api/data/files/{id}/firefighters", http.StatusOK, model.FileFirefighters{Firefighters: []string{"Nowak Anna"}})
	c := srv.Client(t)
	ctx := context.Background()

	list := listing.NewDeparturesList(c.Data, model.ImportedFile{ID: 4}, 50, nil)
	require.NoError(t, list.Open(ctx))
	require.Equal(t, []string{"Nowak Anna"}, list.Firefighters())
	require.Len(t, list.Rows(), 50)
	require.True(t, list.Pager().HasNext())

	ok, err := list.NextPage(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, list.Rows(), 10)
	require.False(t, list.Pager().HasNext())

	require.NoError(t, list.SetFirefighter(ctx, "Nowak Anna"))
	require.NoError(t, list.SetDateRange(ctx, "2024-01-01", "2024-12-31"))
	require.NoError(t, list.ToggleSort(ctx, "czas_rozp_zdarzenia"))
	require.NoError(t, list.ToggleSort(ctx, "czas_rozp_zdarzenia"))

	q := srv.Last(t).Query
	require.Equal(t, "0", q.Get("skip"))
	require.Equal(t, "Nowak Anna", q.Get("firefighter"))
	require.Equal(t, "2024-01-01", q.Get("date_from"))
	require.Equal(t, "2024-12-31", q.Get("date_to"))
	require.Equal(t, "czas_rozp_zdarzenia", q.Get("sort_by"))
	require.Equal(t, "desc", q.Get("sort_order"))
	require.Equal(t, client.ExportFilter{Firefighter: "Nowak Anna", DateFrom: "2024-01-01", DateTo: "2024-12-31"}, list.Filter())

	srv.Reset()
	require.Error(t, list.SetDateRange(ctx, "01.01.2024", ""))
	require.Empty(t, srv.Requests())
}

func TestDeparturesList_FirefightersFailureIsNotFatal(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.JSON("GET /api/data/files/{id}/records", http.StatusOK, model.Page[model.DepartureRecord]{})
	srv.Handle("GET /api/data/files/{id}/firefighters", func(w http.ResponseWriter, r *http.Request) {
		clienttest.RespondDetail(w, http.StatusInternalServerError, "boom")
	})
	c := srv.Client(t)

	list := listing.NewDeparturesList(c.Data, model.ImportedFile{ID: 1}, 50, nil)
	require.NoError(t, list.Open(context.Background()))
	require.Empty(t, list.Firefighters())
	require.False(t, list.Pager().HasNext())
}

func TestFirefightersList_UniqueChoicesAndDelete(t *testing.T) {
	srv := clienttest.NewServer(t)
	roster := []model.Firefighter{
		{ID: 1, NazwiskoImie: "Kowalski Jan", Stopien: "Kapitan", Jednostka: "JRG 1"},
		{ID: 2, NazwiskoImie: "Nowak Anna", Stopien: "Aspirant", Jednostka: "JRG 2"},
		{ID: 3, NazwiskoImie: "Wiśniewski Piotr", Stopien: "Kapitan", Jednostka: "JRG 1"},
	}
	srv.Handle("GET /api/firefighters/{$}", func(w http.ResponseWriter, r *http.Request) {
		clienttest.RespondJSON(w, http.StatusOK, model.FirefighterList{Firefighters: clienttest.Paginate(r, roster)})
	})
	srv.JSON("GET /api/firefighters/statistics", http.StatusOK, model.FirefighterStatistics{TotalFirefighters: 3})
	srv.JSON("DELETE /api/firefighters/{id}", http.StatusOK, model.Ack{Success: true})
	c := srv.Client(t)
	ctx := context.Background()

	list := listing.NewFirefightersList(c.Firefighters, 50, nil)
	require.NoError(t, list.Refresh(ctx))
	require.Equal(t, []string{"JRG 1", "JRG 2"}, list.Units())
	require.Equal(t, []string{"Kapitan", "Aspirant"}, list.Ranks())
	require.Equal(t, 3, list.Statistics().TotalFirefighters)
	require.False(t, list.Pager().HasNext())

	srv.Reset()
	var prompt string
	deleted, err := list.Delete(ctx, roster[1], listing.ConfirmFunc(func(p string) bool {
		prompt = p
		return true
	}))
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, "Czy na pewno chcesz usunąć strażaka: Nowak Anna?", prompt)
	require.Equal(t, 1, srv.Count(http.MethodDelete, "/api/firefighters/2"))
	require.Equal(t, 1, srv.Count(http.MethodGet, "/api/firefighters/"))
	require.Equal(t, 1, srv.Count(http.MethodGet, "/api/firefighters/statistics"))
}

func TestFirefightersList_FiltersSentAsQuery(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.JSON("GET /api/firefighters/{$}", http.StatusOK, model.FirefighterList{})
	c := srv.Client(t)
	ctx := context.Background()

	list := listing.NewFirefightersList(c.Firefighters, 50, nil)
	require.NoError(t, list.SetUnit(ctx, "JRG 1"))
	require.NoError(t, list.SetRank(ctx, "Kapitan"))
	require.NoError(t, list.SetSearch(ctx, "Kow"))

	q := srv.Last(t).Query
	require.Equal(t, "JRG 1", q.Get("jednostka"))
	require.Equal(t, "Kapitan", q.Get("stopien"))
	require.Equal(t, "Kow", q.Get("search"))
	require.Equal(t, "50", q.Get("limit"))

	require.NoError(t, list.ClearFilters(ctx))
	q = srv.Last(t).Query
	require.False(t, q.Has("jednostka"))
	require.False(t, q.Has("search"))
}

func TestLists_PrevPageAndSetSort(t *testing.T) {
	srv := clienttest.NewServer(t)
	all := departures(70)
	serveRecords(srv, all)
	srv.Handle("GET /api/data/files/{id}/records", func(w http.ResponseWriter, r *http.Request) {
		clienttest.RespondJSON(w, http.StatusOK, model.Page[model.DepartureRecord]{Records: clienttest.Paginate(r, all)})
	})
	roster := make([]model.Firefighter, 70)
	for i := range roster {
		roster[i] = model.Firefighter{ID: i + 1}
	}
	srv.Handle("GET /api/firefighters/{$}", func(w http.ResponseWriter, r *http.Request) {
		clienttest.RespondJSON(w, http.StatusOK, model.FirefighterList{Firefighters: clienttest.Paginate(r, roster)})
	})
	c := srv.Client(t)
	ctx := context.Background()

	table := listing.NewRecordsTable(c.Data, c.Files, 50, nil)
	require.NoError(t, table.Load(ctx))
	ok, err := table.PrevPage(ctx)
	require.NoError(t, err)
	require.False(t, ok, "already on the first page")
	_, err = table.NextPage(ctx)
	require.NoError(t, err)
	ok, err = table.PrevPage(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, all[:50], table.Rows())

	list := listing.NewDeparturesList(c.Data, model.ImportedFile{ID: 4}, 50, nil)
	require.NoError(t, list.GoTo(ctx, 1))
	require.Len(t, list.Rows(), 20)
	require.NoError(t, list.SetSort(ctx, listing.Sort{Column: "nazwisko_imie", Order: client.Descending}))
	q := srv.Last(t).Query
	require.Equal(t, "0", q.Get("skip"), "new sort starts from the first page")
	require.Equal(t, "nazwisko_imie", q.Get("sort_by"))
	require.Equal(t, "desc", q.Get("sort_order"))
	_, err = list.NextPage(ctx)
	require.NoError(t, err)
	ok, err = list.PrevPage(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "0", srv.Last(t).Query.Get("skip"))
	require.Equal(t, listing.Sort{Column: "nazwisko_imie", Order: client.Descending}, list.Sort())

	rosterList := listing.NewFirefightersList(c.Firefighters, 50, nil)
	require.NoError(t, rosterList.GoTo(ctx, 1))
	require.Len(t, rosterList.Rows(), 20)
	ok, err = rosterList.PrevPage(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, roster[:50], rosterList.Rows())
	ok, err = rosterList.PrevPage(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}
