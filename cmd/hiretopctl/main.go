package main

import (
	"os"

	"hiretop/cmd/hiretopctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
