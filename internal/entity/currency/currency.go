package currency

import "github.com/shopspring/decimal"

const (
	UAH = "UAH"
	USD = "USD"
)

// Local is the currency amounts are entered in, Reference is the derived one.
const (
	Local     = UAH
	Reference = USD
)

// FallbackRate is the UAH per USD rate used whenever the live rate cannot be resolved.
var FallbackRate = decimal.RequireFromString("41.50")

// ReferencePrecision is the number of decimal places kept for reference amounts.
const ReferencePrecision = 2

// ToReference converts a local amount with a UAH per USD rate.
func ToReference(amountLocal, rate decimal.Decimal) decimal.Decimal {
	return amountLocal.Div(rate).Round(ReferencePrecision)
}
