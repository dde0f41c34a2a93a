package main

import (
	"os"

	"github.com/hostctl/hostctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
