package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dharsanguruparan/strazak/internal/client"
	"github.com/dharsanguruparan/strazak/internal/export"
	"github.com/dharsanguruparan/strazak/internal/listing"
	"github.com/dharsanguruparan/strazak/internal/model"
	"github.com/dharsanguruparan/strazak/internal/shell"
	"github.com/dharsanguruparan/strazak/internal/upload"
)

func registerRosterFilter(cmd *cobra.Command, f *client.FirefighterFilter) {
	fs := cmd.Flags()
	fs.StringVar(&f.Search, "search", "", "Search text")
	fs.StringVar(&f.Jednostka, "unit", "", "Only this unit (jednostka)")
	fs.StringVar(&f.Stopien, "rank", "", "Only this rank (stopień)")
}

// firefighterFlags are the editable fields of a firefighter. Only flags
// given on the command line change the form.
type firefighterFlags struct {
	name, rank, position, unit string
}

func (f *firefighterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Nazwisko i imię")
	fs.StringVar(&f.rank, "rank", "", "Stopień (see: strazak firefighters ranks)")
	fs.StringVar(&f.position, "position", "", "Stanowisko")
	fs.StringVar(&f.unit, "unit", "", "Jednostka")
}

func (f *firefighterFlags) apply(cmd *cobra.Command, in *model.FirefighterInput) {
	fs := cmd.Flags()
	set := func(flag, value string, dst *string) {
		if fs.Changed(flag) {
			*dst = value
		}
	}
	set("name", f.name, &in.NazwiskoImie)
	set("rank", f.rank, &in.Stopien)
	set("position", f.position, &in.Stanowisko)
	set("unit", f.unit, &in.Jednostka)
}

func (a *app) roster() *shell.Firefighters {
	list := listing.NewFirefightersList(a.client.Firefighters, a.cfg.PageSize, a.log)
	return shell.NewFirefighters(list, a.client.Firefighters, a.log)
}

func newFirefightersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "firefighters",
		Aliases: []string{"ff"},
		Short:   "Brigade roster",
	}
	cmd.AddCommand(
		newRosterListCmd(a),
		&cobra.Command{
			Use:   "show ID",
			Short: "Show one firefighter",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				f, err := a.client.Firefighters.Get(cmd.Context(), id)
				if err != nil {
					return described(err, describeAPI)
				}
				return printFirefighters(a.out, []model.Firefighter{*f})
			},
		},
		newFirefighterAddCmd(a),
		newFirefighterEditCmd(a),
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a firefighter",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				f, err := a.client.Firefighters.Get(ctx, id)
				if err != nil {
					return described(err, describeAPI)
				}
				deleted, err := a.roster().List().Delete(ctx, *f, a.confirmer())
				if err != nil {
					return described(err, describeAPI)
				}
				if deleted {
					fmt.Fprintln(a.out, "Strażak usunięty")
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Roster totals by unit and rank",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.client.Firefighters.Statistics(cmd.Context())
				if err != nil {
					return described(err, describeAPI)
				}
				fmt.Fprintf(a.out, "Strażaków: %d\n\n", s.TotalFirefighters)
				tw := newTable(a.out, "JEDNOSTKA", "LICZBA")
				for _, g := range s.ByUnit {
					row(tw, g.Unit, g.Count)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintln(a.out)
				tw = newTable(a.out, "STOPIEŃ", "LICZBA")
				for _, g := range s.ByRank {
					row(tw, g.Rank, g.Count)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "ranks",
			Short: "List the accepted ranks and positions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(a.out, "Stopnie:")
				for _, r := range model.Ranks {
					fmt.Fprintf(a.out, "  %s\n", r)
				}
				fmt.Fprintln(a.out, "Stanowiska:")
				for _, p := range model.Positions {
					fmt.Fprintf(a.out, "  %s\n", p)
				}
				return nil
			},
		},
		newTemplateCmd(a),
		&cobra.Command{
			Use:   "import PATH",
			Short: "Import firefighters from a spreadsheet",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				u := upload.NewFirefightersImport(a.client.Firefighters)
				msg, err := submitUpload(cmd.Context(), a, args[0], u.Select, u.Submit)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, msg)
				return nil
			},
		},
		newRosterExportCmd(a),
	)
	return cmd
}

func newRosterListCmd(a *app) *cobra.Command {
	var (
		filter client.FirefighterFilter
		page   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List firefighters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := a.roster().List()
			l.Configure(filter, page)
			if err := l.Load(cmd.Context()); err != nil {
				return described(err, describeAPI)
			}
			if err := printFirefighters(a.out, l.Rows()); err != nil {
				return err
			}
			printPage(a.out, l.Pager(), len(l.Rows()))
			return nil
		},
	}
	registerRosterFilter(cmd, &filter)
	cmd.Flags().IntVar(&page, "page", 0, "Page number, counted from 0")
	return cmd
}

func newFirefighterAddCmd(a *app) *cobra.Command {
	var f firefighterFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a firefighter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page := a.roster()
			e := page.Add()
			f.apply(cmd, &e.Form)
			for _, note := range e.Unlisted() {
				fmt.Fprintln(a.out, "Uwaga: "+note)
			}
			msg, err := page.Save(cmd.Context())
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

func newFirefighterEditCmd(a *app) *cobra.Command {
	var f firefighterFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a firefighter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.client.Firefighters.Get(ctx, id)
			if err != nil {
				return described(err, describeAPI)
			}
			page := a.roster()
			e := page.Edit(*current)
			f.apply(cmd, &e.Form)
			for _, note := range e.Unlisted() {
				fmt.Fprintln(a.out, "Uwaga: "+note)
			}
			msg, err := page.Save(ctx)
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

func newTemplateCmd(a *app) *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Download the empty import workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := a.exporter(ctx).Template(ctx)
			if err != nil {
				return described(err, export.Describe)
			}
			return reportDownload(ctx, a, res, open)
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "Open the file when saved")
	return cmd
}

func newRosterExportCmd(a *app) *cobra.Command {
	var (
		filter client.FirefighterFilter
		open   bool
	)
	cmd := &cobra.Command{
		Use:       "export excel|csv",
		Short:     "Export the roster, narrowed by the list filters",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(client.ExportExcel), string(client.ExportCSV)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := a.exporter(ctx).Firefighters(ctx, client.ExportFormat(args[0]), filter)
			if err != nil {
				return described(err, export.Describe)
			}
			return reportDownload(ctx, a, res, open)
		},
	}
	registerRosterFilter(cmd, &filter)
	cmd.Flags().BoolVar(&open, "open", false, "Open the file when saved")
	return cmd
}
