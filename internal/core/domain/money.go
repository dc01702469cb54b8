package domain

import (
	"fmt"
)

// Cents is a monetary amount in integer cents. Prices are stored and
// transported as cents and only rendered as decimals at the reporting edge.
type Cents int64

// String renders the amount as a plain decimal, e.g. 1250 -> "12.50".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MulQuantity returns the amount for qty units.
func (c Cents) MulQuantity(qty int) Cents {
	return c * Cents(qty)
}
