package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dharsanguruparan/strazak/internal/inspect"
)

func newInspectCmd(a *app) *cobra.Command {
	var rows int
	cmd := &cobra.Command{
		Use:   "inspect PATH",
		Short: "Preview a downloaded xlsx, csv or pdf file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := inspect.File(args[0], rows)
			if err != nil {
				return err
			}
			if p.Kind == inspect.KindPDF {
				fmt.Fprintf(a.out, "Stron: %d\n\n%s\n", p.Pages, p.Text)
				if n := p.Pages - p.Shown; n > 0 {
					fmt.Fprintf(a.out, "... i %d więcej stron\n", n)
				}
				return nil
			}
			for i, t := range p.Tables {
				if i > 0 {
					fmt.Fprintln(a.out)
				}
				fmt.Fprintf(a.out, "%s: %d wierszy\n", t.Name, t.Total)
				if len(t.Header) == 0 {
					continue
				}
				tw := newTable(a.out, t.Header...)
				for _, r := range t.Rows {
					fmt.Fprintln(tw, strings.Join(r, "\t"))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				if n := t.Total - len(t.Rows); n > 0 {
					fmt.Fprintf(a.out, "... i %d więcej\n", n)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&rows, "rows", inspect.DefaultRows, "Rows shown per sheet, pages for PDF")
	return cmd
}
