// Command varexpand expands %-directive templates from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/randalmurphal/varexpand/cmd/varexpand/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
