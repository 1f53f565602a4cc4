// Package main provides the shopdash CLI and dashboard server.
package main

import (
	"os"

	"github.com/leapstack-labs/shopdash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
