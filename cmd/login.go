// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"strings"

	cerrors "carrental/cli/internal/errors"
	"carrental/cli/internal/gateway"
	"carrental/cli/internal/session"
	"carrental/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	loginUser     string
	loginRole     string
	loginCreateDB string
	loginScript   string
)

// loginCmd verifies database credentials and stores them for later commands.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the database server as admin or guest",
	Long: `The login command asks for a database password, verifies it by connecting
to the system database and stores it in the OS keychain together with the
session (user, role and active tenant database).

Admins can provision their first tenant database right away with --create-db.
When stdin is not a terminal the password is read from the first input line.`,
	Example: `  carrental login --user alice --role admin --create-db fleet
  echo "$PGPASSWORD" | carrental login -u bob`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		role, err := session.ParseRole(loginRole)
		if err != nil {
			return cerrors.Op("log in", err)
		}

		user := strings.TrimSpace(loginUser)
		if user == "" {
			if user, err = terminal.ReadLine("Username: "); err != nil {
				return cerrors.Wrap(cerrors.Input, "cannot read username", err).WithOp("log in")
			}
			user = strings.TrimSpace(user)
		}
		if user == "" {
			return cerrors.New(cerrors.Input, "username is required").WithOp("log in")
		}

		password, err := terminal.ReadSecret("Password: ")
		if err != nil {
			return cerrors.Wrap(cerrors.Input, "cannot read password", err).WithOp("log in")
		}

		gw, err := e.newGateway(user, password)
		if err != nil {
			return err
		}
		if loginCreateDB != "" {
			if err := gw.Authorize(session.New(user, role), gateway.OpCreateDatabase); err != nil {
				return err
			}
		}
		if err := withSpinner("verifying credentials", func() error { return gw.Verify(ctx) }); err != nil {
			return err
		}

		km, err := openKeychain()
		if err != nil {
			return err
		}
		if err := km.SavePassword(user, password); err != nil {
			return cerrors.Wrap(cerrors.Configuration, "cannot save password", err).WithOp("log in")
		}
		a := &app{env: e, keys: km, gw: gw}
		if err := a.setSession(session.New(user, role)); err != nil {
			return err
		}
		e.log.Info("logged in", e.log.Args("user", user, "role", role.String()))

		if loginCreateDB != "" {
			src, err := loadScript(loginScript)
			if err != nil {
				return err
			}
			if err := a.createDatabase(ctx, loginCreateDB, src, true); err != nil {
				return err
			}
		}

		pterm.Success.Printfln("Logged in as %s", a.sess)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "Database user name (prompted when empty)")
	loginCmd.Flags().StringVarP(&loginRole, "role", "r", string(session.Guest), "Session role: admin or guest")
	loginCmd.Flags().StringVar(&loginCreateDB, "create-db", "", "Admin only: create and initialize this tenant database after login")
	loginCmd.Flags().StringVar(&loginScript, "script", "", "Procedure script to install with --create-db (default is the bundled script)")
}
