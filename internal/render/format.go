package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Prices are displayed the way the storefront does: es-MX digit
// grouping, leading "$".
var printer = message.NewPrinter(language.MustParse("es-MX"))

// FormatPrice renders an amount with exactly two decimals, e.g.
// "$12,999.00". The same format is used for every offer in a render.
func FormatPrice(value float64) string {
	return "$" + printer.Sprintf("%v", number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatPriceWhole renders an amount with no decimals, used on home
// cards where only the headline "lowest price" is shown.
func FormatPriceWhole(value float64) string {
	return "$" + printer.Sprintf("%v", number.Decimal(value,
		number.MaxFractionDigits(0),
	))
}
