// Package main is the entry point for the loom CLI tool.
package main

import (
	"os"

	"github.com/loomctl/loom/internal/cli"
)

func main() {
	err := cli.Execute()
	os.Exit(cli.ExitCode(err))
}
