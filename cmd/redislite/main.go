package main

import (
	"os"

	"redislite/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
