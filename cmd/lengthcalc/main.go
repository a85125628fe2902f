// Package main is the entry point for the lengthcalc CLI.
package main

import (
	"os"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
