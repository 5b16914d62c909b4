// Package main is the entry point of the boardcheck CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/boardcheck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
