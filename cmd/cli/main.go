// Package main is the entry point for the window-quote CLI.
package main

import (
	"os"

	"window-quote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
