package main

import (
	"fmt"
	"os"
	"ttc-transform/cmd/ttc-transform/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
