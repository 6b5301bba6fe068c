// Package format renders amounts, dates and snippets for French-language pages.
package format

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.French)

// Amount groups thousands the French way ("12 500", "1 250,5").
func Amount(d decimal.Decimal) string {
	if d.IsInteger() {
		return printer.Sprint(number.Decimal(d.IntPart()))
	}
	f, _ := d.Round(2).Float64()
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}

// FCFA formats an amount followed by the currency ("12 500 FCFA").
func FCFA(d decimal.Decimal) string {
	return Amount(d) + " FCFA"
}

// Count groups an integer counter the French way.
func Count(n int64) string {
	return printer.Sprint(number.Decimal(n))
}

var (
	weekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
	months   = [...]string{"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"}
)

// LongDateFR renders a date as "jeudi 16 octobre 2026".
func LongDateFR(t time.Time) string {
	var b strings.Builder
	b.WriteString(weekdays[t.Weekday()])
	b.WriteByte(' ')
	b.WriteString(itoa(t.Day()))
	b.WriteByte(' ')
	b.WriteString(months[t.Month()-1])
	b.WriteByte(' ')
	b.WriteString(itoa(t.Year()))
	return b.String()
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
