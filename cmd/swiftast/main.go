// Package main implements the swiftast command, a front end that tokenizes
// and parses Swift source files.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line args and returns the exit code.
func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
		return 1
	}
	return 0
}
