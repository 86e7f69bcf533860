// Command reqkit exercises the reqkit helpers from the command line: it
// renders query strings, merges header sets and turns error response bodies
// into RequestErrors.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
