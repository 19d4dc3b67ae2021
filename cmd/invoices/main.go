package main

import (
	"os"

	"github.com/deppfellow/invoice-dashboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
