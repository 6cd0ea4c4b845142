package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/listing"
	"github.com/dharsanguruparan/strazak/internal/model"
)

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(w io.Writer, cells ...any) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(w, strings.Join(parts, "\t"))
}

func describeAPI(err error) string {
	return "Błąd: " + client.Detail(err)
}

func printFiles(w io.Writer, files []model.ImportedFile) error {
	if len(files) == 0 {
		fmt.Fprintln(w, "Brak zaimportowanych plików")
		return nil
	}
	tw := newTable(w, "ID", "PLIK", "ZAIMPORTOWANO", "REKORDY", "STATUS")
	for _, f := range files {
		status := "⏳"
		if f.Status.Done() {
			status = "✓"
		}
		row(tw, f.ID, f.Filename, f.ImportedAt, f.RowsCount, status)
	}
	return tw.Flush()
}

func printDepartures(w io.Writer, rows []model.DepartureRecord) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "Brak rekordów")
		return nil
	}
	tw := newTable(w, "ID", "NAZWISKO I IMIĘ", "STOPIEŃ", "FUNKCJA", "NR MELDUNKU", "CZAS ROZP.", "P", "MZ", "AF", "EMERYTURA")
	for _, r := range rows {
		row(tw, r.ID, r.NazwiskoImie, r.Stopien, r.Funkcja, r.NrMeldunku, r.CzasRozpZdarzenia, r.P, r.MZ, r.AF, r.ZaliczonoDoEmerytury)
	}
	return tw.Flush()
}

func printMeasurements(w io.Writer, rows []model.MeasurementRecord) error {
	tw := newTable(w, "ID", "NAZWA", "KOD", "KATEGORIA", "WARTOŚĆ", "JEDNOSTKA", "DATA")
	for _, r := range rows {
		value := ""
		if r.Wartosc != nil {
			value = strconv.FormatFloat(*r.Wartosc, 'f', -1, 64)
		}
		row(tw, r.ID, r.NazwaSWD, r.KodSWD, r.Kategoria, value, r.Jednostka, r.DataPomiaru)
	}
	return tw.Flush()
}

func printFirefighters(w io.Writer, rows []model.Firefighter) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "Brak strażaków")
		return nil
	}
	tw := newTable(w, "ID", "NAZWISKO I IMIĘ", "STOPIEŃ", "STANOWISKO", "JEDNOSTKA")
	for _, f := range rows {
		row(tw, f.ID, f.NazwiskoImie, f.Stopien, f.Stanowisko, f.Jednostka)
	}
	return tw.Flush()
}

func printRecord(w io.Writer, r *model.DepartureRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row(tw, "ID", r.ID)
	row(tw, "Plik", r.FileID)
	row(tw, "Nazwisko i imię", r.NazwiskoImie)
	row(tw, "Stopień", r.Stopien)
	row(tw, "Funkcja", r.Funkcja)
	row(tw, "Nr meldunku", r.NrMeldunku)
	row(tw, "Czas rozp. zdarzenia", r.CzasRozpZdarzenia)
	row(tw, "P / MZ / AF", fmt.Sprintf("%s / %s / %s", r.P, r.MZ, r.AF))
	row(tw, "Zaliczono do emerytury", r.ZaliczonoDoEmerytury)
	return tw.Flush()
}

// printPage shows the page position and, when known, the total.
func printPage(w io.Writer, p *listing.Pager, shown int) {
	from, to := p.Window()
	if shown == 0 {
		fmt.Fprintf(w, "Strona %d\n", p.Page()+1)
		return
	}
	if total, ok := p.Total(); ok {
		fmt.Fprintf(w, "Strona %d (%d-%d z %d)\n", p.Page()+1, from, to, total)
		return
	}
	more := ""
	if p.HasNext() {
		more = ", są kolejne"
	}
	fmt.Fprintf(w, "Strona %d (%d-%d%s)\n", p.Page()+1, from, to, more)
}
