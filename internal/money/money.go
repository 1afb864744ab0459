package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/techhub/storefront/internal/models"
)

// Subtotal multiplies a unit price by a quantity with exact decimal
// arithmetic, so repeated float sums cannot drift the cart total.
func Subtotal(unitPrice float64, quantity int64) float64 {
	result, _ := decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(quantity)).
		Float64()

	return result
}

// Total sums price×quantity over the items.
func Total(items []models.CartItem) float64 {
	sum := decimal.Zero

	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Product.Price).Mul(decimal.NewFromInt(item.Quantity)))
	}

	result, _ := sum.Float64()

	return result
}

// FormatCOP renders a COP amount the way the store shows it: "$ 1.234.567",
// thousands separated with dots, a comma before at most two decimals, and no
// trailing ",00".
func FormatCOP(value float64) string {
	d := decimal.NewFromFloat(value)

	negative := d.IsNegative()
	if negative {
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped strings.Builder

	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}

		grouped.WriteRune(digit)
	}

	out := "$ " + grouped.String()

	if fracPart != "00" {
		out += "," + strings.TrimSuffix(fracPart, "0")
	}

	if negative {
		out = "-" + out
	}

	return out
}
