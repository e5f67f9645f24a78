package main

import (
	"os"

	"github.com/inamate/snapkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
