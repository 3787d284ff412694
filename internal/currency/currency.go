// Package currency converts canonical backend amounts (THB) into the
// user's display currency. Conversion uses a static rate table; only
// display is affected, the backend never sees converted amounts.
package currency

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Code string

const (
	THB Code = "THB"
	USD Code = "USD"
)

// Canonical is the backend's unit of record.
const Canonical = THB

var rates = map[Code]float64{
	THB: 1,
	USD: 0.028,
}

var locales = map[Code]language.Tag{
	THB: language.Thai,
	USD: language.AmericanEnglish,
}

var canonicalUnit = currency.MustParseISO(string(Canonical))

// Supported reports whether code is in the rate table.
func Supported(code string) bool {
	_, ok := rates[Code(code)]
	return ok
}

// Convert turns a canonical amount into the target currency. Unknown codes
// fall back to the canonical rate.
func Convert(amountCanonical float64, to Code) float64 {
	rate, ok := rates[to]
	if !ok {
		rate = 1
	}
	return amountCanonical * rate
}

// Format renders an amount already in the given currency with that
// currency's locale conventions.
func Format(amount float64, code Code) string {
	unit, err := currency.ParseISO(string(code))
	if err != nil {
		unit = canonicalUnit
	}

	tag, ok := locales[code]
	if !ok {
		tag = locales[Canonical]
	}

	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.Symbol(unit.Amount(amount)))
}

// FormatFromCanonical converts and formats in one step; this is what the
// workflow uses for every displayed price.
func FormatFromCanonical(amountCanonical float64, code Code) string {
	return Format(Convert(amountCanonical, code), code)
}
