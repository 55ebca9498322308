package utils

import (
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.StringFixed(int32(currency.Precision))
}

// CurrencySymbol returns the display symbol for code, or the code itself when it is not in the table.
func CurrencySymbol(code string) string {
	if c, ok := domain.LookupCurrency(code); ok {
		return c.Symbol
	}
	return code
}

// FormatAmount renders amount with the symbol and precision of the currency code.
// Unknown codes use two decimal places.
func FormatAmount(amount decimal.Decimal, code string) string {
	c, ok := domain.LookupCurrency(code)
	if !ok {
		c = domain.Currency{CurrencyCode: code, Symbol: code, Precision: 2}
	}
	return c.Symbol + FormatWithCurrencyPrecision(amount, c)
}
