package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// CurrencyPrecision returns the number of minor digits for an ISO currency
// code, or 2 when the code is unknown.
func CurrencyPrecision(currencyCode string) int {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}

// FormatWithPrecision formats an amount with the given precision.
// Example: 12.3456 with precision 2 returns "12.35".
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatMoney renders amount for display in currencyCode, e.g. "₹ 1,250.00".
// Unknown codes fall back to "<CODE> <amount>".
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return fmt.Sprintf("%s %s", strings.ToUpper(currencyCode), amount.StringFixed(2))
	}
	scale, _ := currency.Standard.Rounding(unit)
	value, _ := amount.Round(int32(scale)).Float64()
	return moneyPrinter.Sprint(currency.Symbol(unit.Amount(value)))
}
