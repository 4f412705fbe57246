package main

import (
	"os"

	"github.com/abhisek/mathcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
