package main

import (
	"os"

	"github.com/rustyeddy/moneyverse/cmd/moneyverse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
