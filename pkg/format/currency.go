// Package format renders monetary amounts and rates for human-readable output.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if amount < 0 && math.Round(amount*100) != 0 {
		return "-$" + NumericCurrency(-amount)
	}
	return "$" + NumericCurrency(math.Abs(amount))
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	if math.Round(amount*100) == 0 {
		amount = 0
	}
	return printer.Sprintf("%.2f", amount)
}

// Percent renders a percentage with two decimals (e.g., "16.77%").
func Percent(pct float64) string {
	return printer.Sprintf("%.2f%%", pct)
}
