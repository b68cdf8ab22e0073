// Package main provides the salarydash command.
package main

import (
	"os"

	"github.com/paveg/salarydash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
