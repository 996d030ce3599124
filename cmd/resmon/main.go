// Package main is the entry point for the resmon tray monitor.
package main

import (
	"os"

	"github.com/watchfire-io/resmon/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
