package cmd

import (
	"errors"

	"carrental/cli/internal/session"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// whoamiCmd shows the saved session.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user, role and active database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := openKeychain()
		if err != nil {
			return err
		}
		sess, err := session.Load(km)
		if errors.Is(err, session.ErrNotLoggedIn) {
			pterm.Println("🔒 You're not logged in yet!")
			pterm.Println("   Run 'carrental login' to get started.")
			return nil
		}
		if err != nil {
			return err
		}

		pterm.Printfln("👤 Current user: %s", sess.User)
		pterm.Printfln("   Role:         %s", sess.Role)
		switch {
		case sess.Role == session.Guest:
			pterm.Println("   Database:     shared guest database")
		case sess.HasDatabase():
			pterm.Printfln("   Database:     %s", sess.Database)
		default:
			pterm.Println("   Database:     none selected (run 'carrental db create' or 'carrental db use')")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
