package main

import (
	"os"

	"github.com/weft-go/aspect/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
