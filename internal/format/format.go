// Package format renders dashboard figures for display. Currency and numbers
// follow de-DE conventions, dates follow uk-UA. Stored values are never
// formatted in place; callers format at render time.
package format

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Code selects how a value is rendered in a tooltip or on an axis
type Code string

const (
	CodePlain           Code = "plain"
	CodeNumber          Code = "number"
	CodeCurrency        Code = "currency"
	CodeCurrencyCompact Code = "currency-compact"
	CodeDistance        Code = "distance"
)

const (
	// NoBreakSpace separates an amount from its currency sign
	NoBreakSpace = "\u00a0"
	euroSign     = "€"
	dateLayout   = "02.01.2006"
)

var currencyLocale = language.German

// printer returns a fresh de-DE message printer
func printer() *message.Printer {
	return message.NewPrinter(currencyLocale)
}

// Currency formats v as EUR with two decimals, e.g. "3.500,00 €"
func Currency(v float64) string {
	return printer().Sprint(number.Decimal(v, number.Scale(2))) + NoBreakSpace + euroSign
}

// CurrencyCompact formats v as EUR with at most three significant digits
func CurrencyCompact(v float64) string {
	return printer().Sprint(number.Decimal(v, number.Precision(3))) + NoBreakSpace + euroSign
}

// Number formats v with de-DE grouping and up to two decimals
func Number(v float64) string {
	return printer().Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Distance formats a kilometer figure, e.g. "45.230 km"
func Distance(km float64) string {
	return Number(km) + " km"
}

// Apply renders v according to code
func Apply(code Code, v float64) string {
	switch code {
	case CodeCurrency:
		return Currency(v)
	case CodeCurrencyCompact:
		return CurrencyCompact(v)
	case CodeNumber:
		return Number(v)
	case CodeDistance:
		return Distance(v)
	default:
		return printer().Sprint(number.Decimal(v, number.NoSeparator(), number.MaxFractionDigits(2)))
	}
}

// Date formats t as dd.mm.yyyy
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// DateOr formats t, or returns fallback when t is nil
func DateOr(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return Date(*t)
}

// DaysBetween returns the whole number of days between a and b, rounded up
func DaysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}
