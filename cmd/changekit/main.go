package main

import (
	"os"

	"github.com/raveheart1/changekit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
