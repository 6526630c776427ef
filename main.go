// Package main is the entry point for the quartainer CLI application.
package main

import (
	"log"

	"github.com/wellmaintained/quartainer/cmd"
)

var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
