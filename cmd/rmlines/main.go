// Command rmlines converts reMarkable tablet notebooks to PDF, scans a
// device's notebook directory, streams its live framebuffer, and
// verifies the PDFs it produces.
package main

import (
	"fmt"
	"os"

	"github.com/platinummonkey/rmlines/shell"
)

func main() {
	ctx, err := shell.NewContext()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	if len(args) == 1 && args[0] == "shell" {
		shell.RunInteractive(ctx)
		return
	}

	if err := shell.RunCLI(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
