// Command ppmtrans rotates, flips or transposes an image using a chosen
// array layout and traversal order, and optionally reports how long the
// transformation took.
package main

import (
	"fmt"
	"os"

	"github.com/ajroetker/go-locality/cmd/ppmtrans/commands"
)

// Build-time variables injected via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
