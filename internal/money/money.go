// Package money converts and formats monetary amounts between the fixed set
// of supported display currencies. Rates are static and relative to the USD
// base; switching the display currency is a pure local operation.
package money

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is an ISO-4217-style currency code.
type Currency string

// Supported display currencies.
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	INR Currency = "INR"
	JPY Currency = "JPY"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
)

// Base is the currency all static rates are expressed against.
const Base = USD

type currencyInfo struct {
	Symbol string
	Name   string
	Rate   decimal.Decimal // units per one Base unit
}

var currencies = map[Currency]currencyInfo{
	USD: {Symbol: "$", Name: "US Dollar", Rate: decimal.NewFromInt(1)},
	EUR: {Symbol: "€", Name: "Euro", Rate: decimal.NewFromFloat(0.92)},
	GBP: {Symbol: "£", Name: "British Pound", Rate: decimal.NewFromFloat(0.79)},
	INR: {Symbol: "₹", Name: "Indian Rupee", Rate: decimal.NewFromFloat(83.12)},
	JPY: {Symbol: "¥", Name: "Japanese Yen", Rate: decimal.NewFromFloat(149.50)},
	CAD: {Symbol: "C$", Name: "Canadian Dollar", Rate: decimal.NewFromFloat(1.36)},
	AUD: {Symbol: "A$", Name: "Australian Dollar", Rate: decimal.NewFromFloat(1.53)},
}

// Supported reports whether code is one of the display currencies.
func Supported(code Currency) bool {
	_, ok := currencies[code]
	return ok
}

// Codes returns the supported currency codes in display order.
func Codes() []Currency {
	return []Currency{USD, EUR, GBP, INR, JPY, CAD, AUD}
}

// info falls back to the base currency's rate for unknown codes, mirroring
// the `rate || 1` behaviour prices were stored with historically.
func info(code Currency) currencyInfo {
	if ci, ok := currencies[code]; ok {
		return ci
	}
	base := currencies[Base]
	return currencyInfo{Symbol: base.Symbol, Name: string(code), Rate: base.Rate}
}

// Symbol returns the display symbol for code, falling back to the base
// currency's symbol for unknown codes.
func Symbol(code Currency) string {
	return info(code).Symbol
}

// Converter renders amounts in one selected display currency.
type Converter struct {
	selected Currency
}

// NewConverter returns a converter targeting the given display currency.
// Unknown codes fall back to the base currency.
func NewConverter(selected Currency) Converter {
	if !Supported(selected) {
		selected = Base
	}
	return Converter{selected: selected}
}

// Selected returns the display currency this converter targets.
func (c Converter) Selected() Currency {
	return c.selected
}

// Convert converts amount from its native currency into the display
// currency, rounded half-up to two decimal places. Non-finite or zero input
// yields 0; Convert never fails.
func (c Converter) Convert(amount float64, from Currency) float64 {
	if amount == 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	if from == "" {
		from = Base
	}

	d := decimal.NewFromFloat(amount)
	if from == c.selected {
		f, _ := d.Round(2).Float64()
		return f
	}

	// To the base currency first, then to the target.
	converted := d.Div(info(from).Rate).Mul(info(c.selected).Rate)
	f, _ := converted.Round(2).Float64()
	return f
}

// printer applies en-style thousands grouping.
var printer = message.NewPrinter(language.English)

// Format converts amount into the display currency and renders it with the
// currency symbol, thousands grouping and exactly two fraction digits.
// Format(0, x) renders the symbol with "0.00" and never fails.
func (c Converter) Format(amount float64, from Currency) string {
	converted := c.Convert(amount, from)
	return printer.Sprintf("%s%v",
		Symbol(c.selected),
		number.Decimal(converted, number.MinFractionDigits(2), number.MaxFractionDigits(2)),
	)
}
