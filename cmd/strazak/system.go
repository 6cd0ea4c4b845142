package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dharsanguruparan/strazak/internal/shell"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.client.System.Health(cmd.Context())
			if err != nil {
				return described(err, describeAPI)
			}
			fmt.Fprintf(a.out, "%s: %s\n", a.client.BaseURL(), h.Status)
			return nil
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show backend name, version and environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			info, err := a.client.System.Info(ctx)
			if err != nil {
				return described(err, describeAPI)
			}
			mode := "przeglądarka"
			if a.desktop(ctx) {
				mode = "desktop"
			}
			tw := newTable(a.out, "APLIKACJA", "WERSJA", "STATUS", "TRYB")
			row(tw, info.App, info.Version, info.Status, mode)
			return tw.Flush()
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show file and record totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shellApp := shell.NewApp(a.client.Data, a.log)
			shellApp.Load(cmd.Context())
			s := shellApp.Statistics()
			if s == nil {
				return &userError{msg: "Nie udało się pobrać statystyk"}
			}
			fmt.Fprintf(a.out, "Pliki: %d\nRekordy: %d\nŚrednio rekordów na plik: %.1f\n", s.TotalFiles, s.TotalRecords, s.AvgRecordsPerFile)
			return nil
		},
	}
}
