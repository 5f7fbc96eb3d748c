// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the carrental client.
// Each subcommand parses its text arguments, calls the database gateway with
// the saved session and renders the result using pterm.
package cmd

import (
	"fmt"
	"os"

	"carrental/cli/internal/logging"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
	verbose     bool
	configPath  string
	plainOutput bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "carrental",
	Short: "Manage a car rental inventory stored in PostgreSQL",
	Long: `carrental manages a car rental inventory kept in PostgreSQL stored procedures.

Administrators provision tenant databases and edit the inventory; guests can
search and list the cars of the shared guest database. Log in first:

  carrental login --user alice --role admin`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion(cmd)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application. Errors are rendered with their kind
// specific hint and the process exits with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, logging.FormatError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default is $XDG_CONFIG_HOME/carrental/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Print cars as 'id | brand | model | year | price' lines")
}
