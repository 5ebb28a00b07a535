package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/swiftast/internal/driver"
	"github.com/you-not-fish/swiftast/internal/syntax"
)

func (a *app) parseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Print the syntax tree of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Format
			}
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}

			opts, err := a.driverOptions()
			if err != nil {
				return err
			}
			results, err := driver.ParseFiles(cmd.Context(), args, opts)
			if err != nil {
				return err
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			failed := false
			for _, r := range results {
				a.styles.result(errOut, r)
				if r.Failed() {
					failed = true
				}
				if r.Err != nil {
					continue
				}
				if len(results) > 1 && format == "text" {
					fmt.Fprintf(out, "==> %s <==\n", r.Path)
				}
				switch format {
				case "json":
					if err := syntax.FprintJSON(out, r.File); err != nil {
						return err
					}
				default:
					syntax.Fprint(out, r.File)
				}
			}

			if failed {
				return errDiagnostics
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text or json (default from config)")
	return cmd
}
