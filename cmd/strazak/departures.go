package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/export"
	"github.com/dharsanguruparan/strazak/internal/listing"
	"github.com/dharsanguruparan/strazak/internal/model"
	"github.com/dharsanguruparan/strazak/internal/s3storage"
	"github.com/dharsanguruparan/strazak/internal/shell"
	"github.com/dharsanguruparan/strazak/internal/upload"
)

func newDeparturesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "departures",
		Short: "Departures flow: import, open a file, browse, edit and export its departures",
		Long: `The departures flow remembers its screen and the open file between runs, in the state
file (STRAZAK_STATE_FILE).`,
	}
	cmd.AddCommand(
		newDeparturesStateCmd(a),
		&cobra.Command{
			Use:   "menu",
			Short: "Close the open file and return to the menu",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				d, err := a.departures()
				if err != nil {
					return err
				}
				if err := d.BackToMenu(); err != nil {
					return err
				}
				return printState(a, d)
			},
		},
		newDeparturesImportCmd(a),
		&cobra.Command{
			Use:   "open",
			Short: "Show the imported files",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				d, err := a.departures()
				if err != nil {
					return err
				}
				if err := d.SetView(cmd.Context(), shell.ViewFileList); err != nil {
					return described(err, describeAPI)
				}
				return printFiles(a.out, d.Files())
			},
		},
		&cobra.Command{
			Use:   "select FILE_ID",
			Short: "Open a file on the departures list",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				d, err := a.departures()
				if err != nil {
					return err
				}
				f, err := a.client.Files.Get(cmd.Context(), id)
				if err != nil {
					return described(err, describeAPI)
				}
				if err := d.SelectFile(*f); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Otwarto plik %s (%d rekordów)\n", f.Filename, f.RowsCount)
				return nil
			},
		},
		&cobra.Command{
			Use:   "back",
			Short: "Go back one screen",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				d, err := a.departures()
				if err != nil {
					return err
				}
				if d.View() == shell.ViewDeparturesList {
					if err := d.BackFromList(cmd.Context()); err != nil {
						return described(err, describeAPI)
					}
					return printFiles(a.out, d.Files())
				}
				if err := d.BackToMenu(); err != nil {
					return err
				}
				return printState(a, d)
			},
		},
		newDeparturesListCmd(a),
		newDepartureAddCmd(a),
		newDepartureEditCmd(a),
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a departure of the open file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				_, file, err := selectedFile(a)
				if err != nil {
					return err
				}
				l := listing.NewDeparturesList(a.client.Data, file, a.cfg.PageSize, a.log)
				deleted, err := l.Delete(cmd.Context(), id, a.confirmer())
				if err != nil {
					return described(err, describeAPI)
				}
				if deleted {
					fmt.Fprintln(a.out, "Wyjazd usunięty")
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "firefighters",
			Short: "List the firefighters named in the open file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, file, err := selectedFile(a)
				if err != nil {
					return err
				}
				names, err := a.client.Data.Firefighters(cmd.Context(), file.ID)
				if err != nil {
					return described(err, describeAPI)
				}
				for _, n := range names {
					fmt.Fprintln(a.out, n)
				}
				return nil
			},
		},
		newDeparturesExportCmd(a),
		newDocumentCmd(a),
	)
	return cmd
}

var errNoSelection = &userError{
	msg: "Nie wybrano pliku. Użyj: strazak departures select ID",
	err: shell.ErrNoFileSelected,
}

// selectedFile restores the flow and returns the open file.
func selectedFile(a *app) (*shell.Departures, model.ImportedFile, error) {
	d, err := a.departures()
	if err != nil {
		return nil, model.ImportedFile{}, err
	}
	sel := d.Selected()
	if sel == nil {
		return nil, model.ImportedFile{}, errNoSelection
	}
	return d, *sel, nil
}

func printState(a *app, d *shell.Departures) error {
	fmt.Fprintf(a.out, "Widok: %s\n", d.View())
	if sel := d.Selected(); sel != nil {
		fmt.Fprintf(a.out, "Plik: %s (ID %d)\n", sel.Filename, sel.ID)
	}
	return nil
}

func newDeparturesStateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the saved screen and open file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.departures()
			if err != nil {
				return err
			}
			return printState(a, d)
		},
	}
}

func newDeparturesImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import PATH",
		Short: "Import a departures spreadsheet and return to the menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := a.departures()
			if err != nil {
				return err
			}
			if err := d.SetView(ctx, shell.ViewImport); err != nil {
				return err
			}
			u := upload.NewDeparturesUpload(a.client.Files)
			var done model.UploadResult
			u.OnSuccess(func(r model.UploadResult) { done = r })
			msg, err := submitUpload(ctx, a, args[0], u.Select, u.Submit)
			if err != nil {
				return err
			}
			if err := d.UploadSucceeded(done); err != nil {
				return err
			}
			fmt.Fprintln(a.out, msg)
			return nil
		},
	}
}

func newDeparturesListCmd(a *app) *cobra.Command {
	var (
		filter client.ExportFilter
		column string
		desc   bool
		page   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List departures of the open file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, file, err := selectedFile(a)
			if err != nil {
				return err
			}
			if d.View() != shell.ViewDeparturesList {
				if err := d.SetView(ctx, shell.ViewDeparturesList); err != nil {
					return err
				}
			}
			var sort listing.Sort
			if column != "" {
				if !slices.Contains(listing.SortColumns, column) {
					return errors.Errorf("cannot sort by %q, choose one of %v", column, listing.SortColumns)
				}
				sort = listing.Sort{Column: column, Order: client.Ascending}
				if desc {
					sort.Order = client.Descending
				}
			}
			l := listing.NewDeparturesList(a.client.Data, file, a.cfg.PageSize, a.log)
			if err := l.Configure(filter, sort, page); err != nil {
				return err
			}
			if err := l.Open(ctx); err != nil {
				return described(err, describeAPI)
			}
			fmt.Fprintf(a.out, "%s\n\n", file.Filename)
			if err := printDepartures(a.out, l.Rows()); err != nil {
				return err
			}
			printPage(a.out, l.Pager(), len(l.Rows()))
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&filter.Firefighter, "firefighter", "", "Only departures of this firefighter")
	fs.StringVar(&filter.DateFrom, "from", "", "Incident date from (YYYY-MM-DD)")
	fs.StringVar(&filter.DateTo, "to", "", "Incident date to (YYYY-MM-DD)")
	fs.StringVar(&column, "sort", "", "Sort column")
	fs.BoolVar(&desc, "desc", false, "Sort descending")
	fs.IntVar(&page, "page", 0, "Page number, counted from 0")
	return cmd
}

func newDepartureAddCmd(a *app) *cobra.Command {
	var f departureFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a departure to the open file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := selectedFile(a)
			if err != nil {
				return err
			}
			e, err := d.AddRecord()
			if err != nil {
				return err
			}
			f.apply(cmd, &e.Form)
			return saveDeparture(cmd.Context(), a, d)
		},
	}
	f.register(cmd)
	return cmd
}

func newDepartureEditCmd(a *app) *cobra.Command {
	var f departureFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a departure of the open file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, _, err := selectedFile(a)
			if err != nil {
				return err
			}
			rec, err := a.client.Data.Record(cmd.Context(), id)
			if err != nil {
				return described(err, describeAPI)
			}
			e := d.EditRecord(*rec)
			f.apply(cmd, &e.Form)
			return saveDeparture(cmd.Context(), a, d)
		},
	}
	f.register(cmd)
	return cmd
}

func saveDeparture(ctx context.Context, a *app, d *shell.Departures) error {
	e := d.Editor()
	msg, err := d.SaveRecord(ctx)
	if err != nil {
		return described(err, e.Describe)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func newDeparturesExportCmd(a *app) *cobra.Command {
	var (
		filter client.ExportFilter
		open   bool
	)
	cmd := &cobra.Command{
		Use:       "export excel|csv",
		Short:     "Export departures of the open file",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(client.ExportExcel), string(client.ExportCSV)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, file, err := selectedFile(a)
			if err != nil {
				return err
			}
			res, err := a.exporter(ctx).Departures(ctx, file.ID, client.ExportFormat(args[0]), filter)
			if err != nil {
				return described(err, export.Describe)
			}
			return reportDownload(ctx, a, res, open)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&filter.Firefighter, "firefighter", "", "Only departures of this firefighter")
	fs.StringVar(&filter.DateFrom, "from", "", "Incident date from (YYYY-MM-DD)")
	fs.StringVar(&filter.DateTo, "to", "", "Incident date to (YYYY-MM-DD)")
	fs.BoolVar(&open, "open", false, "Open the file when saved")
	return cmd
}

func newDocumentCmd(a *app) *cobra.Command {
	var (
		filter client.ExportFilter
		open   bool
	)
	formats := make([]string, len(client.DocumentFormats))
	for i, f := range client.DocumentFormats {
		formats[i] = string(f)
	}
	cmd := &cobra.Command{
		Use:       "document docx|pdf|html",
		Short:     "Generate the departures card of one firefighter",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: formats,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, file, err := selectedFile(a)
			if err != nil {
				return err
			}
			if err := export.CheckDocument(filter); err != nil {
				return described(err, export.Describe)
			}
			res, err := a.exporter(ctx).Document(ctx, file.ID, client.DocumentFormat(args[0]), filter)
			if err != nil {
				return described(err, export.Describe)
			}
			return reportDownload(ctx, a, res, open)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&filter.Firefighter, "firefighter", "", "Firefighter (required)")
	fs.StringVar(&filter.DateFrom, "from", "", "Date from, YYYY-MM-DD (required)")
	fs.StringVar(&filter.DateTo, "to", "", "Date to, YYYY-MM-DD (required)")
	fs.BoolVar(&open, "open", false, "Open the document when saved")
	return cmd
}

func reportDownload(ctx context.Context, a *app, res *export.Result, open bool) error {
	fmt.Fprintln(a.out, res.Message)
	fmt.Fprintf(a.out, "Zapisano: %s\n", res.Location)
	if res.Archived != "" {
		fmt.Fprintf(a.out, "Archiwum: %s\n", res.Archived)
	}
	if res.ArchiveURL != "" {
		fmt.Fprintf(a.out, "Link (ważny %s): %s\n", s3storage.LinkExpiry, res.ArchiveURL)
	}
	if !open {
		return nil
	}
	if err := openFile(ctx, res.Location, a.out); err != nil {
		a.log.WithError(err).WithField("path", res.Location).Warn("open download")
	}
	return nil
}
