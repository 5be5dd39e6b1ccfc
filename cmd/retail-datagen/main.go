// Package main is the entry point for retail-datagen.
package main

import (
	"fmt"
	"os"

	"github.com/lcv-analytics/retail-datagen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
