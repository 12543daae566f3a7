package main

import (
	"os"

	"github.com/wordmap/wordmap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
