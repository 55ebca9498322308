package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g., "USD"
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // minor units, 2 for USD, 0 for JPY
}

// DefaultCurrencyCode is used for workspaces created without an explicit currency.
const DefaultCurrencyCode = "USD"

// SupportedCurrencies lists the currencies a workspace can be configured with.
var SupportedCurrencies = []Currency{
	{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2},
	{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2},
	{CurrencyCode: "GBP", Symbol: "£", Name: "British Pound", Precision: 2},
	{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0},
	{CurrencyCode: "INR", Symbol: "₹", Name: "Indian Rupee", Precision: 2},
	{CurrencyCode: "CAD", Symbol: "C$", Name: "Canadian Dollar", Precision: 2},
	{CurrencyCode: "AUD", Symbol: "A$", Name: "Australian Dollar", Precision: 2},
	{CurrencyCode: "CHF", Symbol: "Fr", Name: "Swiss Franc", Precision: 2},
	{CurrencyCode: "CNY", Symbol: "¥", Name: "Chinese Yuan", Precision: 2},
	{CurrencyCode: "BRL", Symbol: "R$", Name: "Brazilian Real", Precision: 2},
}

// LookupCurrency returns the currency with the given code.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range SupportedCurrencies {
		if c.CurrencyCode == code {
			return c, true
		}
	}
	return Currency{}, false
}
