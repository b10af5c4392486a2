package main

import (
	"os"

	"github.com/jeeftor/nsiskit/cmd"
	"github.com/jeeftor/nsiskit/internal/utils"
)

func main() {
	// Execute the root command; errors are already reported
	if err := cmd.Execute(); err != nil {
		os.Exit(utils.ExitCodeFor(err))
	}
}
