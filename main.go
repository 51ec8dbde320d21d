package main

import (
	"os"

	"github.com/hpkotak/bootstrap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
