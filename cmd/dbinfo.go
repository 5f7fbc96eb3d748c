// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"strings"

	"carrental/cli/internal/config"
	"carrental/cli/internal/dsn"
	cerrors "carrental/cli/internal/errors"
	"carrental/cli/internal/logging"
	"carrental/cli/internal/session"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// dbinfoCmd shows where the CLI connects, with the password masked.
var dbinfoCmd = &cobra.Command{
	Use:   "dbinfo",
	Short: "Show the database server and the databases this session uses",
	Long: `The dbinfo command displays the configured server DSN and the system and
tenant connection strings the current session would use. Passwords are
replaced with * so the output is safe to share.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		source := "config file"
		for _, key := range config.DSNEnvVars {
			if strings.TrimSpace(os.Getenv(key)) != "" {
				source = key + " environment variable"
				break
			}
		}
		pterm.Printfln("Using DSN from %s", source)
		pterm.Println()

		info, err := dsn.Parse(e.cfg.Server.DSN)
		if err != nil {
			return cerrors.Wrap(cerrors.Configuration, "invalid server DSN", err).WithOp("show connection")
		}

		lines := []string{"Server: " + logging.Mask(info.String())}
		km, kerr := openKeychain()
		if kerr == nil {
			if sess, err := session.Load(km); err == nil {
				base := info.WithCredentials(sess.User, "")
				lines = append(lines,
					"Session: "+sess.String(),
					"System: "+base.WithDatabase(e.cfg.Server.SystemDatabase).String(),
				)
				switch {
				case sess.Role == session.Guest:
					lines = append(lines, "Tenant: "+base.WithDatabase(e.cfg.Server.GuestDatabase).String())
				case sess.HasDatabase():
					lines = append(lines, "Tenant: "+base.WithDatabase(sess.Database).String())
				default:
					lines = append(lines, "Tenant: none selected")
				}
			}
		}

		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Database Connection")).
			WithPadding(1).
			Println(strings.Join(lines, "\n"))
		pterm.Println()
		pterm.Printfln("To change the server, edit %s or set %s", configLocation(), config.DSNEnvVars[0])
		return nil
	},
}

func configLocation() string {
	if configPath != "" {
		return configPath
	}
	if p, err := config.Path(); err == nil {
		return p
	}
	return config.FileName
}

func init() {
	rootCmd.AddCommand(dbinfoCmd)
}
