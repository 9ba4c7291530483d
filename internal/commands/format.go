package commands

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const defaultCurrency = "USD"

// formatter renders amounts in one currency.
type formatter struct {
	currency *money.Currency
}

func newFormatter(code string) (*formatter, error) {
	if code == "" {
		code = defaultCurrency
	}
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", code)
	}
	return &formatter{currency: cur}, nil
}

// Format renders v rounded to the currency's minor unit, e.g. "$3.33".
func (f *formatter) Format(v float64) string {
	minor := decimal.NewFromFloat(v).Shift(int32(f.currency.Fraction)).Round(0)
	return money.New(minor.IntPart(), f.currency.Code).Display()
}

// Signed renders v with an explicit sign; zero renders as "-".
func (f *formatter) Signed(v float64) string {
	minor := decimal.NewFromFloat(v).Shift(int32(f.currency.Fraction)).Round(0)
	switch {
	case minor.IsZero():
		return "-"
	case minor.IsPositive():
		return "+" + f.Format(v)
	default:
		return f.Format(v)
	}
}
