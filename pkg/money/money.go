// Package money formats decimal prices for display.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts the way the storefront locale writes prices.
type Formatter struct {
	tag      language.Tag
	printer  *message.Printer
	fallback currency.Unit
}

func NewFormatter(locale, defaultCurrency string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	unit, err := currency.ParseISO(defaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", defaultCurrency, err)
	}

	return &Formatter{
		tag:      tag,
		printer:  message.NewPrinter(tag),
		fallback: unit,
	}, nil
}

// Parse reads a decimal price string as sent by the commerce API.
func Parse(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return d, nil
}

// Format renders amount in currencyCode. An empty or unknown code falls back to
// the default currency; an unparseable amount is returned unchanged.
func (f *Formatter) Format(amount, currencyCode string) string {
	d, err := Parse(amount)
	if err != nil {
		return amount
	}
	return f.FormatDecimal(d, currencyCode)
}

func (f *Formatter) FormatDecimal(d decimal.Decimal, currencyCode string) string {
	unit := f.fallback
	if currencyCode != "" {
		if u, err := currency.ParseISO(currencyCode); err == nil {
			unit = u
		}
	}

	scale, _ := currency.Standard.Rounding(unit)
	value := d.Round(int32(scale)).InexactFloat64()

	num := f.printer.Sprint(number.Decimal(value,
		number.MinFractionDigits(scale),
		number.MaxFractionDigits(scale),
	))
	sym := f.printer.Sprint(currency.NarrowSymbol(unit))

	if symbolFirst(f.tag) {
		return sym + num
	}
	return num + " " + sym
}

// symbolFirst reports whether the locale writes the currency sign before the amount.
func symbolFirst(tag language.Tag) bool {
	base, _ := tag.Base()
	switch base.String() {
	case "en", "ja", "zh", "ko", "he":
		return true
	default:
		return false
	}
}
