package shared

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrencySymbol is used when no glyph is configured.
const DefaultCurrencySymbol = "₱"

// TimestampLayout renders backend instants for people.
const TimestampLayout = "Jan 2, 2006, 3:04:05 PM"

// Formatter renders money and instants the same way on every page.
type Formatter struct {
	symbol  string
	printer *message.Printer
	loc     *time.Location
}

// NewFormatter builds a formatter for the given glyph and display zone.
func NewFormatter(symbol string, loc *time.Location) *Formatter {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(language.English),
		loc:     loc,
	}
}

// DefaultFormatter uses the default glyph and UTC.
func DefaultFormatter() *Formatter {
	return NewFormatter(DefaultCurrencySymbol, time.UTC)
}

// Location returns the display time zone.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Currency renders an amount with grouped thousands and two decimals.
func (f *Formatter) Currency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	value, _ := rounded.Float64()
	return sign + f.symbol + f.printer.Sprintf("%.2f", value)
}

// CurrencyFloat is Currency for chart values that arrive as floats.
func (f *Formatter) CurrencyFloat(amount float64) string {
	return f.Currency(decimal.NewFromFloat(amount))
}

// Number renders a plain value with grouping and no forced decimals.
func (f *Formatter) Number(value float64) string {
	if value == float64(int64(value)) {
		return f.printer.Sprintf("%d", int64(value))
	}
	return strings.TrimRight(strings.TrimRight(f.printer.Sprintf("%.2f", value), "0"), ".")
}

// Timestamp renders an instant in the display time zone.
func (f *Formatter) Timestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(f.loc).Format(TimestampLayout)
}
