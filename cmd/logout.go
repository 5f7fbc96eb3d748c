// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"carrental/cli/internal/session"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd removes the saved session and password from the OS keychain.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved session and password",
	Long: `The logout command clears the session state and the stored database password
of the current user from the OS keychain. Databases are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := openKeychain()
		if err != nil {
			return err
		}
		sess, _ := session.Load(km)
		if err := km.ClearAll(sess.User); err != nil {
			return err
		}
		pterm.Success.Println("Session and password have been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
