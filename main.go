package main

import (
	"os"

	"github.com/aita/csvfile/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
