// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"

	cerrors "carrental/cli/internal/errors"
	"carrental/cli/internal/gateway"
	"carrental/cli/internal/procedures"
	"carrental/cli/internal/session"
	"carrental/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	dbInitScript string
	dbCreateInit bool
	dbDropYes    bool
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Provision and select tenant databases",
}

var dbCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a tenant database and make it active",
	Long: `Creates a tenant database through the system database procedures and selects
it for the following commands. Unless --init=false is given, the stored
procedures are installed first on the system database and then in the new one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var src string
		if dbCreateInit {
			if src, err = loadScript(dbInitScript); err != nil {
				return err
			}
		}
		if err := a.createDatabase(cmd.Context(), args[0], src, dbCreateInit); err != nil {
			return err
		}
		pterm.Success.Printfln("Database %s created and selected", args[0])
		return nil
	},
}

var dbDropCmd = &cobra.Command{
	Use:   "drop NAME",
	Short: "Drop a tenant database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !dbDropYes {
			if !terminal.IsInteractive() {
				return cerrors.New(cerrors.Input, "refusing to drop without confirmation; pass --yes").WithOp(string(gateway.OpDropDatabase))
			}
			ok, err := pterm.DefaultInteractiveConfirm.
				WithDefaultText(fmt.Sprintf("Drop database %q and every car in it?", name)).
				Show()
			if err != nil {
				return err
			}
			if !ok {
				pterm.Info.Println("Nothing dropped")
				return nil
			}
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.gw.DropDatabase(cmd.Context(), a.sess, name)
		if err != nil {
			return err
		}
		if err := a.setSession(sess); err != nil {
			return err
		}
		pterm.Success.Printfln("Database %s dropped", name)
		if !sess.HasDatabase() {
			pterm.Info.Println("No tenant database is selected now")
		}
		return nil
	},
}

var dbUseCmd = &cobra.Command{
	Use:   "use NAME",
	Short: "Select an existing tenant database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.gw.UseDatabase(cmd.Context(), a.sess, args[0])
		if err != nil {
			return err
		}
		if err := a.setSession(sess); err != nil {
			return err
		}
		pterm.Success.Printfln("Using database %s", args[0])
		return nil
	},
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Install the stored procedures",
	Long: `Installs the stored procedures. Admin sessions install the system section on
the system database and, when a tenant database is selected, the tenant section
there. Guest sessions install the tenant section on the guest database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		src, err := loadScript(dbInitScript)
		if err != nil {
			return err
		}
		err = withSpinner("installing procedures", func() error {
			return a.gw.Initialize(cmd.Context(), a.sess, src)
		})
		if err != nil {
			return err
		}
		pterm.Success.Println("Stored procedures installed")
		return nil
	},
}

// loadScript returns the procedure script at path, or the bundled one.
func loadScript(path string) (string, error) {
	if path == "" {
		return procedures.Load(procedures.DefaultName)
	}
	return procedures.LoadFile(path)
}

// provision installs the system procedures, creates name and installs the
// tenant procedures into it. It returns the session with name selected once
// the database exists, even if the tenant procedures then fail. Nothing is
// sent to the store unless sess may create databases.
func provision(ctx context.Context, gw *gateway.Gateway, sess session.Session, name, src string) (session.Session, error) {
	if err := gw.Authorize(sess, gateway.OpCreateDatabase); err != nil {
		return sess, err
	}
	err := withSpinner("installing system procedures", func() error {
		return gw.Initialize(ctx, sess.WithDatabase(""), src)
	})
	if err != nil {
		return sess, err
	}
	next, err := gw.CreateDatabase(ctx, sess, name)
	if err != nil {
		return sess, err
	}
	err = withSpinner("installing tenant procedures", func() error {
		return gw.Initialize(ctx, next, src)
	})
	return next, err
}

// createDatabase creates name, installing the procedures when install is set,
// and saves it as the active database as soon as it exists.
func (a *app) createDatabase(ctx context.Context, name, src string, install bool) error {
	var (
		next session.Session
		err  error
	)
	if install {
		next, err = provision(ctx, a.gw, a.sess, name, src)
	} else {
		next, err = a.gw.CreateDatabase(ctx, a.sess, name)
	}
	if next != a.sess {
		if serr := a.setSession(next); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbCreateCmd, dbDropCmd, dbUseCmd, dbInitCmd)

	dbCreateCmd.Flags().BoolVar(&dbCreateInit, "init", true, "Install the stored procedures")
	dbCreateCmd.Flags().StringVar(&dbInitScript, "script", "", "Procedure script file (default is the bundled script)")
	dbInitCmd.Flags().StringVar(&dbInitScript, "script", "", "Procedure script file (default is the bundled script)")
	dbDropCmd.Flags().BoolVarP(&dbDropYes, "yes", "y", false, "Do not ask for confirmation")
}
