// Copyright (c) 2025 Carrental
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"strconv"
	"strings"

	cerrors "carrental/cli/internal/errors"
	"carrental/cli/internal/gateway"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var carCmd = &cobra.Command{
	Use:   "car",
	Short: "Add, change, find and list cars",
}

var carAddCmd = &cobra.Command{
	Use:     "add BRAND MODEL YEAR PRICE",
	Short:   "Add a car",
	Example: `  carrental car add Toyota Camry 2020 15000.00`,
	Args:    cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := parseCarInput(args[0], args[1], args[2], args[3])
		if err != nil {
			return cerrors.Op(string(gateway.OpInsertCar), err)
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cars, err := a.gw.InsertCar(cmd.Context(), a.sess, in)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Added %s %s", in.Brand, in.Model)
		return renderCars(cmd.OutOrStdout(), cars)
	},
}

var carUpdateCmd = &cobra.Command{
	Use:     "update ID BRAND MODEL YEAR PRICE",
	Short:   "Overwrite every column of the car with the given id",
	Example: `  carrental car update 1 Toyota Camry 2021 14500`,
	Args:    cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return cerrors.Op(string(gateway.OpUpdateCar), err)
		}
		in, err := parseCarInput(args[1], args[2], args[3], args[4])
		if err != nil {
			return cerrors.Op(string(gateway.OpUpdateCar), err)
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cars, err := a.gw.UpdateCar(cmd.Context(), a.sess, id, in)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Updated car %d", id)
		return renderCars(cmd.OutOrStdout(), cars)
	},
}

var carDeleteCmd = &cobra.Command{
	Use:   "delete MODEL",
	Short: "Delete every car of a model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cars, err := a.gw.DeleteCarByModel(cmd.Context(), a.sess, args[0])
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Deleted cars of model %s", args[0])
		return renderCars(cmd.OutOrStdout(), cars)
	},
}

var carSearchCmd = &cobra.Command{
	Use:   "search MODEL",
	Short: "Find cars by exact model name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cars, err := a.gw.SearchCar(cmd.Context(), a.sess, args[0])
		if err != nil {
			return err
		}
		return renderCars(cmd.OutOrStdout(), cars)
	},
}

var carListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "view"},
	Short:   "List every car",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cars, err := a.gw.ViewCars(cmd.Context(), a.sess)
		if err != nil {
			return err
		}
		return renderCars(cmd.OutOrStdout(), cars)
	},
}

// parseCarInput converts raw text fields. Brand and model are taken verbatim.
var maxPrice = decimal.New(1, 10)

func parseCarInput(brand, model, year, price string) (gateway.CarInput, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return gateway.CarInput{}, cerrors.Newf(cerrors.Input, "year %q is not a whole number", year)
	}
	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return gateway.CarInput{}, cerrors.Newf(cerrors.Input, "price %q is not a decimal number", price)
	}
	// The price column is NUMERIC(12, 2).
	if !p.Equal(p.Round(2)) {
		return gateway.CarInput{}, cerrors.Newf(cerrors.Input, "price %q has more than two decimal places", price)
	}
	if p.Abs().GreaterThanOrEqual(maxPrice) {
		return gateway.CarInput{}, cerrors.Newf(cerrors.Input, "price %q is out of range", price)
	}
	return gateway.CarInput{Brand: brand, Model: model, Year: y, Price: p}, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, cerrors.Newf(cerrors.Input, "id %q is not a whole number", s)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(carCmd)
	carCmd.AddCommand(carAddCmd, carUpdateCmd, carDeleteCmd, carSearchCmd, carListCmd)
}
