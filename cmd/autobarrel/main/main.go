package main

import (
	"os"

	"github.com/arthur-debert/autobarrel/cmd/autobarrel"
)

func main() {
	os.Exit(autobarrel.Execute())
}
