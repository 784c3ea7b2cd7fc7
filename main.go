package main

import (
	"os"

	"github.com/heathj/hbsyntax/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
