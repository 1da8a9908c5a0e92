package main

import (
	"fmt"
	"os"

	knxprojformat "github.com/Amaury/knxproj-format/internal/knxproj-format"
)

// main is the entrypoint. It delegates argument parsing and command handling
// to the knxprojformat package.
func main() {
	if err := knxprojformat.RunCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
