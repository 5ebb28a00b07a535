package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/swiftast/internal/driver"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check PATH...",
		Short: "Report syntax diagnostics",
		Long: `Check parses every file and reports its diagnostics. Directories are
searched recursively for files with one of the configured extensions.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := driver.Expand(args, a.cfg.HasExtension)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.New("no source files found")
			}

			opts, err := a.driverOptions()
			if err != nil {
				return err
			}
			a.log.Printf("checking %d files with %d workers", len(paths), opts.Jobs)

			results, err := driver.ParseFiles(cmd.Context(), paths, opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			var diags, failed int
			for _, r := range results {
				a.styles.result(w, r)
				diags += len(r.Diags)
				if r.Failed() {
					failed++
				}
			}
			a.styles.summary(w, len(results), diags, failed)

			if failed > 0 {
				return errDiagnostics
			}
			return nil
		},
	}
}
