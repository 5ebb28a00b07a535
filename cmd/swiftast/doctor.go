package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/swiftast/internal/config"
)

// minGoVersion is the oldest Go release swiftast is built and tested with.
const minGoVersion = ">= 1.24"

func (a *app) doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the toolchain and configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "swiftast Doctor")
			fmt.Fprintln(w, "===============")
			fmt.Fprintln(w)

			allOk := true
			check := func(label, value string, err error) {
				if err != nil {
					fmt.Fprintf(w, "%-8s %s %s (%v)\n", label+":", value, a.styles.render(a.styles.err, "✗"), err)
					allOk = false
					return
				}
				fmt.Fprintf(w, "%-8s %s %s\n", label+":", value, a.styles.render(a.styles.ok, "✓"))
			}

			goVersion := runtime.Version()
			check("Go", goVersion, checkGoVersion(goVersion))

			cfgPath := a.cfg.Path()
			if cfgPath == "" {
				cfgPath = "(defaults)"
			}
			check("Config", cfgPath, a.cfg.Validate(Version))

			fmt.Fprintln(w)
			if allOk {
				fmt.Fprintln(w, "Everything looks good!")
				return nil
			}
			fmt.Fprintln(w, "Some checks failed.")
			return errDiagnostics
		},
	}
}

// checkGoVersion checks a runtime version string such as "go1.23.3"
// against minGoVersion. Development builds are accepted.
func checkGoVersion(v string) error {
	if strings.HasPrefix(v, "devel") {
		return nil
	}
	if !strings.HasPrefix(v, "go") {
		return fmt.Errorf("unrecognized version %q", v)
	}
	v = strings.TrimPrefix(v, "go")
	// Pre-release toolchains look like 1.24rc1.
	if i := strings.IndexAny(v, "abcdefghijklmnopqrstuvwxyz "); i >= 0 {
		v = v[:i]
	}
	if err := config.CheckVersion(minGoVersion, v); err != nil {
		return fmt.Errorf("need Go %s: %w", minGoVersion, err)
	}
	return nil
}
