package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/swiftast/internal/syntax"
)

func (a *app) tokensCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			src, err := os.ReadFile(filename)
			if err != nil {
				return err
			}

			toks := syntax.Tokenize(filename, src)
			if !all {
				toks = toks.Significant()
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-20s %-22s %s\n", "POSITION", "TOKEN", "TEXT")
			fmt.Fprintf(w, "%-20s %-22s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 22), strings.Repeat("-", 20))

			invalid := 0
			for _, t := range toks {
				fmt.Fprintf(w, "%-20s %-22s %s\n", lineCol(t.Range), tokenKind(t), formatLiteral(t.Text))
				if t.Kind == syntax.Invalid {
					invalid++
				}
			}
			a.log.Printf("%s: %d tokens", filename, len(toks))

			if invalid == 0 {
				return nil
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Errors:")
			for _, t := range toks {
				if t.Kind == syntax.Invalid {
					fmt.Fprintf(w, "  %s: %s\n", t.Range.Start, t.Err)
				}
			}
			return errDiagnostics
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include whitespace and comment tokens")
	return cmd
}

// tokenKind describes a token's kind, with the keyword category for
// keywords.
func tokenKind(t syntax.Token) string {
	if t.Kind == syntax.Keyword {
		return fmt.Sprintf("Keyword(%s)", t.Keyword)
	}
	return t.Kind.String()
}

func lineCol(r syntax.Range) string {
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.Line(), r.Start.Col(), r.End.Line(), r.End.Col())
}
