package main

import (
	"os"

	"github.com/sqlsentry/sqlsentry/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
