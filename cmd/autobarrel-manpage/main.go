package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/autobarrel/cmd/autobarrel"
	"github.com/arthur-debert/autobarrel/internal/version"
)

func main() {
	rootCmd := autobarrel.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "AUTOBARREL",
		Section: "1",
		Source:  "autobarrel " + version.Version,
		Manual:  "autobarrel manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
