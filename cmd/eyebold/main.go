// Package main provides the eyebold CLI application.
// eyebold curates DNA barcode records into a reference-quality export set.
package main

import (
	"os"

	"github.com/gnames/gn"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		gn.PrintErrorMessage(err)
		os.Exit(exitCode(err))
	}
}
