package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/dharsanguruparan/strazak/internal/listing"
	"github.com/dharsanguruparan/strazak/internal/model"
	"github.com/dharsanguruparan/strazak/internal/shell"
	"github.com/dharsanguruparan/strazak/internal/upload"
)

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid id %q", s)
	}
	return id, nil
}

func newFilesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Imported departure spreadsheets",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List imported files",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				files, err := a.client.Files.List(cmd.Context())
				if err != nil {
					return described(err, describeAPI)
				}
				return printFiles(a.out, files)
			},
		},
		&cobra.Command{
			Use:   "show ID",
			Short: "Show one file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				f, err := a.client.Files.Get(cmd.Context(), id)
				if err != nil {
					return described(err, describeAPI)
				}
				if err := printFiles(a.out, []model.ImportedFile{*f}); err != nil {
					return err
				}
				if f.Notes != "" {
					fmt.Fprintf(a.out, "\nUwagi: %s\n", f.Notes)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "preview ID",
			Short: "Show the first records of a file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				p, err := a.client.Files.Preview(cmd.Context(), id)
				if err != nil {
					return described(err, describeAPI)
				}
				fmt.Fprintf(a.out, "%s\n\n", p.Filename)
				return printDepartures(a.out, p.Preview)
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a file and all its records",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				table := listing.NewRecordsTable(a.client.Data, a.client.Files, a.cfg.PageSize, a.log)
				deleted, err := table.DeleteFile(cmd.Context(), id, a.confirmer())
				if err != nil {
					return described(err, describeAPI)
				}
				if deleted {
					fmt.Fprintln(a.out, "Plik usunięty pomyślnie")
				}
				return nil
			},
		},
		newUploadCmd(a),
	)
	return cmd
}

func newUploadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload PATH",
		Short: "Import a departures spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			shellApp := shell.NewApp(a.client.Data, a.log)
			if err := shellApp.SetTab(shell.TabUpload); err != nil {
				return err
			}
			u := upload.NewDeparturesUpload(a.client.Files)
			u.OnSuccess(func(model.UploadResult) { shellApp.UploadSucceeded(ctx) })
			msg, err := submitUpload(ctx, a, args[0], u.Select, u.Submit)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, msg)
			if s := shellApp.Statistics(); s != nil {
				fmt.Fprintf(a.out, "Razem: %d plików, %d rekordów\n", s.TotalFiles, s.TotalRecords)
			}
			return nil
		},
	}
}

// submitUpload selects path, prints a local summary of the workbook when one
// can be read and sends it.
func submitUpload(ctx context.Context, a *app, path string, sel func(string) error, submit func(context.Context) (string, error)) (string, error) {
	if err := sel(path); err != nil {
		return "", described(err, upload.Describe)
	}
	printSummary(a.out, path)
	msg, err := submit(ctx)
	if err != nil {
		return "", described(err, upload.Describe)
	}
	return msg, nil
}

func printSummary(w io.Writer, path string) {
	sum, err := upload.Summarize(path)
	if err != nil {
		return
	}
	for _, sh := range sum.Sheets {
		fmt.Fprintf(w, "Arkusz %s: %d wierszy\n", sh.Name, sh.Rows)
	}
}
