package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/editor"
	"github.com/dharsanguruparan/strazak/internal/listing"
	"github.com/dharsanguruparan/strazak/internal/model"
)

// departureFlags are the editable fields of a departure. Only flags given
// on the command line change the form.
type departureFlags struct {
	name, rank, function, report, started string
	p, mz, af, retirement                 string
}

func (f *departureFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Nazwisko i imię")
	fs.StringVar(&f.rank, "rank", "", "Stopień")
	fs.StringVar(&f.function, "function", "", "Funkcja")
	fs.StringVar(&f.report, "report", "", "Nr meldunku")
	fs.StringVar(&f.started, "started", "", "Czas rozpoczęcia zdarzenia")
	fs.StringVar(&f.p, "p", "", "P")
	fs.StringVar(&f.mz, "mz", "", "MZ")
	fs.StringVar(&f.af, "af", "", "AF")
	fs.StringVar(&f.retirement, "retirement", "", "Zaliczono do emerytury")
}

func (f *departureFlags) apply(cmd *cobra.Command, in *model.DepartureInput) {
	fs := cmd.Flags()
	set := func(flag, value string, dst *string) {
		if fs.Changed(flag) {
			*dst = value
		}
	}
	set("name", f.name, &in.NazwiskoImie)
	set("rank", f.rank, &in.Stopien)
	set("function", f.function, &in.Funkcja)
	set("report", f.report, &in.NrMeldunku)
	set("started", f.started, &in.CzasRozpZdarzenia)
	set("p", f.p, &in.P)
	set("mz", f.mz, &in.MZ)
	set("af", f.af, &in.AF)
	set("retirement", f.retirement, &in.ZaliczonoDoEmerytury)
}

func newRecordsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Departure records across all files",
	}
	cmd.AddCommand(
		newRecordsListCmd(a),
		&cobra.Command{
			Use:   "show ID",
			Short: "Show one record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				rec, err := a.client.Data.Record(cmd.Context(), id)
				if err != nil {
					return described(err, describeAPI)
				}
				return printRecord(a.out, rec)
			},
		},
		newRecordEditCmd(a),
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete one record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				table := listing.NewRecordsTable(a.client.Data, a.client.Files, a.cfg.PageSize, a.log)
				deleted, err := table.DeleteRecord(cmd.Context(), id, a.confirmer())
				if err != nil {
					return described(err, describeAPI)
				}
				if deleted {
					fmt.Fprintln(a.out, "Rekord usunięty")
				}
				return nil
			},
		},
	)
	return cmd
}

func newRecordsListCmd(a *app) *cobra.Command {
	var (
		fileID int
		search string
		page   int
		swd    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, optionally narrowed to a file or a search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if swd {
				q := client.RecordsQuery{Skip: page * a.cfg.PageSize, Limit: a.cfg.PageSize, FileID: fileID, Search: search}
				res, err := a.client.Data.MeasurementRecords(ctx, q)
				if err != nil {
					return described(err, describeAPI)
				}
				return printMeasurements(a.out, res.Records)
			}

			table := listing.NewRecordsTable(a.client.Data, a.client.Files, a.cfg.PageSize, a.log)
			table.Configure(fileID, search, page)
			if err := table.Load(ctx); err != nil {
				return described(err, describeAPI)
			}
			if err := printDepartures(a.out, table.Rows()); err != nil {
				return err
			}
			printPage(a.out, table.Pager(), len(table.Rows()))
			return nil
		},
	}
	cmd.Flags().IntVar(&fileID, "file", 0, "Only records of this file")
	cmd.Flags().StringVar(&search, "search", "", "Search text")
	cmd.Flags().IntVar(&page, "page", 0, "Page number, counted from 0")
	cmd.Flags().BoolVar(&swd, "swd", false, "Read records in the legacy SWD measurement shape")
	return cmd
}

func newRecordEditCmd(a *app) *cobra.Command {
	var f departureFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a record; name and report number are fixed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rec, err := a.client.Data.Record(ctx, id)
			if err != nil {
				return described(err, describeAPI)
			}
			e := editor.NewDepartureEditor(a.client.Data, rec.FileID, rec)
			f.apply(cmd, &e.Form)
			msg, err := e.Submit(ctx)
			if err != nil {
				return described(err, e.Describe)
			}
			fmt.Fprintln(a.out, msg)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
