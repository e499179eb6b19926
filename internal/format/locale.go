// Package format renders money and dates for user-facing text. The locale
// is always passed explicitly; nothing here reads process-wide settings.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Locale struct {
	Currency     string
	DateFormat   string
	NumberFormat string
}

// Default mirrors the service defaults: Brazilian real, day-first dates.
var Default = Locale{Currency: "BRL", DateFormat: "DD/MM/YYYY", NumberFormat: "pt-BR"}

var currencySymbols = map[string]string{
	"BRL": "R$",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

var dateLayouts = map[string]string{
	"DD/MM/YYYY": "02/01/2006",
	"MM/DD/YYYY": "01/02/2006",
	"YYYY-MM-DD": "2006-01-02",
	"DD.MM.YYYY": "02.01.2006",
}

func (l Locale) printer() *message.Printer {
	tag, err := language.Parse(l.NumberFormat)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	return message.NewPrinter(tag)
}

// Symbol returns the currency symbol, falling back to the ISO code.
func (l Locale) Symbol() string {
	code := strings.ToUpper(l.Currency)
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code
}

// Money formats an amount with two decimals and locale grouping,
// e.g. "R$ 1.234,50" or "$ 1,234.50".
func (l Locale) Money(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	return sign + l.Symbol() + " " + l.printer().Sprintf("%.2f", f)
}

// Percent formats a percentage with one decimal.
func (l Locale) Percent(p decimal.Decimal) string {
	f, _ := p.Round(1).Float64()
	return l.printer().Sprintf("%.1f", f) + "%"
}

// Date formats t with the configured layout, defaulting to ISO dates.
func (l Locale) Date(t time.Time) string {
	layout, ok := dateLayouts[strings.ToUpper(l.DateFormat)]
	if !ok {
		layout = "2006-01-02"
	}
	return t.Format(layout)
}
