// Package main is the entrypoint for the claspar CLI.
package main

import (
	"fmt"
	"os"

	"github.com/climb-tre/claspar/cmd"
	"github.com/climb-tre/claspar/internal/archive"
)

func main() {
	defer archive.CloseStore()
	if err := cmd.Execute(); err != nil {
		// The root command silences cobra's own error printing.
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
