// Package main provides the lookmlint CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/lookmlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
