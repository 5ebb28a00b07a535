package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/swiftast/internal/config"
	"github.com/you-not-fish/swiftast/internal/driver"
)

// errDiagnostics is returned by commands that already printed the
// diagnostics that make them fail.
var errDiagnostics = errors.New("source has diagnostics")

// app is the state shared by all subcommands.
type app struct {
	cfgFile string
	verbose bool
	noColor bool

	cfg    *config.Config
	log    *log.Logger
	styles styles
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "swiftast",
		Short: "Swift lexer and parser",
		Long: `swiftast tokenizes and parses Swift source files.

It prints token streams and syntax trees, and reports syntax diagnostics
without type checking or compiling anything.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: nearest .swiftast.toml or .swiftast.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.tokensCmd(),
		a.parseCmd(),
		a.checkCmd(),
		a.watchCmd(),
		a.doctorCmd(),
		versionCmd(),
	)
	return root
}

// setup loads the configuration and prepares logging and styles.
func (a *app) setup(cmd *cobra.Command) error {
	a.log = log.New(io.Discard, "", 0)
	if a.verbose {
		a.log = log.New(cmd.ErrOrStderr(), "swiftast: ", log.Ltime)
	}

	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}
	if p := a.cfg.Path(); p != "" {
		a.log.Printf("using config %s", p)
	}

	a.styles = newStyles(a.cfg.Color && !a.noColor)
	return nil
}

// driverOptions returns the driver settings derived from the config.
func (a *app) driverOptions() (driver.Options, error) {
	opts, err := a.cfg.ParserOptions()
	if err != nil {
		return driver.Options{}, fmt.Errorf("invalid config: %w", err)
	}
	return driver.Options{
		Jobs:   a.cfg.Workers(),
		Parser: opts,
		Logger: a.log,
	}, nil
}
