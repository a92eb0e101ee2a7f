// Package main is the entry point for seekscript.
package main

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/seekscript/seekscript/cmd"
	"github.com/seekscript/seekscript/config"
	"github.com/seekscript/seekscript/log"
)

func main() {
	if err := config.Setup(); err != nil {
		// The config commands stay usable so the file can be fixed.
		fmt.Fprintln(os.Stderr, err)
		if !cmd.Repairing(os.Args[1:]) {
			os.Exit(1)
		}
	}

	lo.Must0(log.Setup())

	cmd.Execute()
}
