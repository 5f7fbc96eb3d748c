package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Create or clear the cars table of the active database",
}

var tableCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the cars table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.gw.CreateTable(cmd.Context(), a.sess); err != nil {
			return err
		}
		pterm.Success.Printfln("Table created in %s", a.sess.Database)
		return nil
	},
}

var tableClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every car",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cars, err := a.gw.ClearTable(cmd.Context(), a.sess)
		if err != nil {
			return err
		}
		pterm.Success.Println("Table cleared")
		return renderCars(cmd.OutOrStdout(), cars)
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.AddCommand(tableCreateCmd, tableClearCmd)
}
