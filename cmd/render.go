package cmd

import (
	"fmt"
	"io"
	"strconv"

	"carrental/cli/internal/gateway"
	"carrental/cli/internal/sqlexec"

	"github.com/pterm/pterm"
)

// renderCars writes cars in store order, as a table or as plain
// "id | brand | model | year | price" lines with --plain.
func renderCars(w io.Writer, cars []gateway.Car) error {
	if len(cars) == 0 {
		_, err := fmt.Fprintln(w, "No cars found")
		return err
	}
	if plainOutput {
		for _, c := range cars {
			if _, err := fmt.Fprintln(w, c.String()); err != nil {
				return err
			}
		}
		return nil
	}

	data := pterm.TableData{{"ID", "Brand", "Model", "Year", "Price"}}
	for _, c := range cars {
		data = append(data, []string{
			strconv.FormatInt(c.ID, 10),
			c.Brand,
			c.Model,
			strconv.Itoa(c.Year),
			sqlexec.PlainDecimal(c.Price),
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
