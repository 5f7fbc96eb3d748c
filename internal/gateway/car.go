package gateway

import (
	"fmt"

	"carrental/cli/internal/sqlexec"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Car is one inventory row.
type Car struct {
	ID    int64
	Brand string
	Model string
	Year  int
	Price decimal.Decimal
}

// CarInput carries the editable columns of a car.
type CarInput struct {
	Brand string
	Model string
	Year  int
	Price decimal.Decimal
}

// String renders c as "id | brand | model | year | price".
func (c Car) String() string {
	return fmt.Sprintf("%d | %s | %s | %d | %s", c.ID, c.Brand, c.Model, c.Year, sqlexec.PlainDecimal(c.Price))
}

// scanCars reads every row of rows in result order and closes it.
func scanCars(rows sqlexec.Rows) ([]Car, error) {
	defer rows.Close()

	cars := []Car{}
	for rows.Next() {
		var (
			c     Car
			price pgtype.Numeric
		)
		if err := rows.Scan(&c.ID, &c.Brand, &c.Model, &c.Year, &price); err != nil {
			return nil, err
		}
		c.Price = fromNumeric(price)
		cars = append(cars, c)
	}
	return cars, rows.Err()
}
