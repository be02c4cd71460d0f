package main

import (
	"os"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
