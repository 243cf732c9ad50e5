package main

import (
	"os"

	"github.com/zonagamer/console/cmd/console/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
