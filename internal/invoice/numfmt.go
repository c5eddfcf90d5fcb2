// Package invoice holds the presentation-independent invoice arithmetic:
// locale number formatting and the NBS IPS payment QR payload.
package invoice

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders monetary amounts with exactly two fraction digits and
// locale-specific grouping. It is pure: the same (amount, locale) pair always
// yields the same string.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter builds a formatter for a BCP 47 locale tag such as "sr-RS" or
// "en-US". Unparseable tags fall back to en-US rather than failing, since
// display formatting must never abort a render.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Format renders an amount, e.g. 1234.5 -> "1.234,50" (sr-RS) / "1,234.50" (en-US)
func (f *Formatter) Format(amount float64) string {
	return f.printer.Sprint(number.Decimal(amount, number.Scale(2)))
}
