package main

import (
	"os"

	"compose-backup/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
