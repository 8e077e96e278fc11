package main

import (
	"os"

	"github.com/cortex-kb/cortex/internal/adapters/driving/cli"
)

func main() {
	// Cobra already prints the failing command's error and usage.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
