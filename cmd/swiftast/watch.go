package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/swiftast/internal/driver"
)

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch PATH...",
		Short: "Re-check files whenever they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.driverOptions()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			w := cmd.OutOrStdout()
			return driver.Watch(ctx, args, a.cfg.HasExtension, opts, func(r driver.Result) {
				a.styles.result(w, r)
				failed := 0
				if r.Failed() {
					failed = 1
				}
				a.styles.summary(w, 1, len(r.Diags), failed)
			})
		},
	}
}
