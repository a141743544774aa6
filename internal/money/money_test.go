package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert_SameCurrency(t *testing.T) {
	c := NewConverter(INR)

	assert.Equal(t, 1000.0, c.Convert(1000, INR))
	assert.Equal(t, 19.99, c.Convert(19.991, INR))
}

func TestConvert_CrossCurrency(t *testing.T) {
	c := NewConverter(USD)

	// 2000 INR at 83.12 INR per USD
	assert.InDelta(t, 24.06, c.Convert(2000, INR), 0.001)

	c = NewConverter(INR)
	assert.InDelta(t, 83.12, c.Convert(1, USD), 0.001)
}

func TestConvert_RoundTripWithinOneCent(t *testing.T) {
	amounts := []float64{1, 19.99, 1234.56, 0.03}

	for _, amount := range amounts {
		toUSD := NewConverter(USD).Convert(amount, INR)
		back := NewConverter(INR).Convert(toUSD, USD)
		assert.InDelta(t, amount, back, 0.01, "round-trip of %v", amount)
	}
}

func TestConvert_NonFiniteAndZero(t *testing.T) {
	c := NewConverter(USD)

	assert.Equal(t, 0.0, c.Convert(0, INR))
	assert.Equal(t, 0.0, c.Convert(math.NaN(), INR))
	assert.Equal(t, 0.0, c.Convert(math.Inf(1), INR))
	assert.Equal(t, 0.0, c.Convert(math.Inf(-1), INR))
}

func TestConvert_UnknownCurrencyFallsBackToBase(t *testing.T) {
	c := NewConverter(USD)

	// Unknown native currency is treated as base, so the amount is unchanged.
	assert.Equal(t, 50.0, c.Convert(50, Currency("XXX")))
}

func TestFormat_ZeroAlwaysRendersSymbol(t *testing.T) {
	for _, code := range Codes() {
		got := NewConverter(code).Format(0, code)
		assert.Equal(t, Symbol(code)+"0.00", got)
	}
}

func TestFormat_GroupingAndFractionDigits(t *testing.T) {
	c := NewConverter(INR)

	assert.Equal(t, "₹2,000.00", c.Format(2000, INR))
	assert.Equal(t, "$1,234.56", NewConverter(USD).Format(1234.56, USD))
	assert.Equal(t, "$1,000,000.00", NewConverter(USD).Format(1000000, USD))
}

func TestNewConverter_UnknownSelectedFallsBackToBase(t *testing.T) {
	c := NewConverter(Currency("ZZZ"))
	assert.Equal(t, Base, c.Selected())
}
