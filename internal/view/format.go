package view

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"saldo/internal/core"
)

// DefaultDateLayout is day/month/year with 24h time.
const DefaultDateLayout = "02/01/2006 15:04"

// Formatter renders amounts and dates for display. Amounts are printed from
// their integer cents, so no precision is lost for personal-finance values.
type Formatter struct {
	printer  *message.Printer
	symbol   string
	sep      string
	layout   string
	location *time.Location
}

// FormatterConfig selects locale, currency and date layout.
type FormatterConfig struct {
	Locale   string // BCP 47 tag, e.g. "it" or "en-US"
	Currency string // ISO 4217 code, e.g. "EUR"
	Layout   string
	Location *time.Location
}

// NewFormatter validates cfg and builds a Formatter.
func NewFormatter(cfg FormatterConfig) (*Formatter, error) {
	tag := language.English
	if cfg.Locale != "" {
		t, err := language.Parse(cfg.Locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", cfg.Locale, err)
		}
		tag = t
	}

	code := cfg.Currency
	if code == "" {
		code = "EUR"
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}

	printer := message.NewPrinter(tag)
	symbol := strings.TrimSpace(printer.Sprint(currency.Symbol(unit)))
	if symbol == "" {
		symbol = unit.String()
	}

	layout := cfg.Layout
	if layout == "" {
		layout = DefaultDateLayout
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	return &Formatter{
		printer:  printer,
		symbol:   symbol,
		sep:      decimalSeparator(printer),
		layout:   layout,
		location: loc,
	}, nil
}

// Symbol returns the currency symbol in use.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Amount formats m with locale grouping and two decimals, e.g. "€ 1.234,50".
func (f *Formatter) Amount(m core.Money) string {
	abs := m.Abs()
	units := abs.Cents / 100
	cents := abs.Cents % 100
	// Integer part through the locale printer for grouping; the fraction is
	// appended from cents so the value is never rounded through a float.
	s := f.printer.Sprintf("%d", units) + f.sep + fmt.Sprintf("%02d", cents)
	if m.Cents < 0 {
		return "-" + f.symbol + " " + s
	}
	return f.symbol + " " + s
}

// Signed formats a transaction amount with + for income and - for expense.
func (f *Formatter) Signed(tx core.Transaction) string {
	if tx.Type == core.Expense {
		return "-" + f.Amount(tx.Amount)
	}
	return "+" + f.Amount(tx.Amount)
}

// Date formats t in the configured location and layout.
func (f *Formatter) Date(t time.Time) string {
	return t.In(f.location).Format(f.layout)
}

func decimalSeparator(p *message.Printer) string {
	// 1.5 printed by the locale printer carries the separator between the digits
	s := p.Sprintf("%.1f", 1.5)
	if len(s) == 3 {
		return s[1:2]
	}
	return "."
}
