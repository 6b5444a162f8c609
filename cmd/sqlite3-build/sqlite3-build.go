package main

import (
	"os"

	"github.com/poppolopoppo/sqlite3src/internal/cmd"
)

/***************************************
 * Launch Command (program entry point)
 ***************************************/

func main() {
	if err := cmd.LaunchCommand("sqlite3-build", os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
