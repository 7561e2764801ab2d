// Package main is the entry point for the datastore CLI.
package main

import (
	"context"
	"os"

	"github.com/satishbabariya/datastore/cmd/datastore/commands"
	"github.com/satishbabariya/datastore/internal/ui"
)

func main() {
	if err := commands.Execute(context.Background(), os.Args[1:]); err != nil {
		ui.PrintError("%v", err)
		os.Exit(1)
	}
}
