package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dharsanguruparan/strazak/internal/editor"
	"github.com/dharsanguruparan/strazak/internal/model"
)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Backend database location",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the configured and the current database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p := editor.NewSettingsPanel(a.client.Settings, false, a.log)
				if err := p.Load(cmd.Context()); err != nil {
					return described(err, p.Describe)
				}
				fmt.Fprintf(a.out, "Typ: %s\nŚcieżka: %s\n", p.Form.Type, p.Form.Path)
				printCurrent(a, p.Current())
				return nil
			},
		},
		newSettingsSetCmd(a),
		&cobra.Command{
			Use:   "current",
			Short: "Show the database the backend is using",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cur, err := a.client.Settings.CurrentDatabase(cmd.Context())
				if err != nil {
					return described(err, describeAPI)
				}
				printCurrent(a, cur)
				return nil
			},
		},
		newSettingsBrowseCmd(a),
	)
	return cmd
}

func printCurrent(a *app, cur *model.CurrentDatabase) {
	if cur == nil {
		return
	}
	exists := "nie istnieje"
	if cur.Exists {
		exists = "istnieje"
	}
	fmt.Fprintf(a.out, "Aktualna baza: %s (%s, %s)\n", cur.Path, cur.Type, exists)
}

func newSettingsSetCmd(a *app) *cobra.Command {
	var (
		dbType string
		path   string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the database location; takes effect after a restart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := editor.NewSettingsPanel(a.client.Settings, false, a.log)
			if err := p.Load(ctx); err != nil {
				return described(err, p.Describe)
			}
			if cmd.Flags().Changed("type") {
				p.Form.Type = model.DatabaseType(dbType)
			}
			if cmd.Flags().Changed("path") {
				p.Form.Path = path
			}
			msg, err := p.Save(ctx)
			if err != nil {
				return described(err, p.Describe)
			}
			fmt.Fprintln(a.out, msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbType, "type", "", "local or network")
	cmd.Flags().StringVar(&path, "path", "", "Database folder (local) or file (network)")
	return cmd
}

func newSettingsBrowseCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick the database path in the desktop dialog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := editor.NewSettingsPanel(a.client.Settings, a.desktop(ctx), a.log)
			if err := p.Load(ctx); err != nil {
				return described(err, p.Describe)
			}
			msg, err := p.Browse(ctx)
			if err != nil {
				return described(err, p.Describe)
			}
			if msg == "" {
				return nil
			}
			fmt.Fprintln(a.out, msg)
			if !save {
				return nil
			}
			msg, err = p.Save(ctx)
			if err != nil {
				return described(err, p.Describe)
			}
			fmt.Fprintln(a.out, msg)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Save the picked path")
	return cmd
}
