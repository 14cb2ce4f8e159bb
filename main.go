package main

import (
	"os"

	"github.com/abhisek/socratiq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
