package main

import (
	"os"

	"github.com/tagsmith/tagsmith/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
