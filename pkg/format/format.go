// Package format renders amounts and dates the way the pages display them.
package format

import (
	"fmt"
	"strings"
	"time"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"IDR": "Rp",
}

// Currency renders an amount with a grouping separator and two decimals,
// e.g. Currency(1234.5, "USD") == "$1,234.50". Unknown currency codes are
// prefixed verbatim: "CHF 12.00".
func Currency(amount float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "USD"
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	grouped := b.String() + frac

	if sym, ok := currencySymbols[code]; ok {
		return sign + sym + grouped
	}
	return sign + code + " " + grouped
}

// parseWhen accepts the timestamp shapes the API sends: RFC3339 with or
// without sub-second precision, or a bare calendar date.
func parseWhen(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders a timestamp as e.g. "Mar 7, 2026". Unparseable input is
// passed through so a bad value is at least visible.
func Date(value string) string {
	t, ok := parseWhen(value)
	if !ok {
		return value
	}
	return t.UTC().Format("Jan 2, 2006")
}

// InputDate converts a timestamp to the YYYY-MM-DD form a date input wants.
func InputDate(value string) string {
	t, ok := parseWhen(value)
	if !ok {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
