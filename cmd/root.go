// Package cmd defines command-line interface commands for quartainer.
package cmd

import (
	"github.com/spf13/cobra"
)

var version string

var rootCmd = &cobra.Command{
	Use:   "quartainer",
	Short: "Devcontainer generator for Quarto projects",
	Long:  "quartainer inspects a Quarto project and generates a .devcontainer/devcontainer.json tuned to its engines and toolchain",
}

// Execute runs the root CLI command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
	rootCmd.Version = version
}

func init() {
	rootCmd.AddCommand(initCmd)
}
