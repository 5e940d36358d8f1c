package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency printed on tickets.
const Currency = "XAF"

// FormatAmount renders an amount with thousand separators, keeping cents only
// when present: 6000 -> "XAF 6,000", 3500.5 -> "XAF 3,500.50".
func FormatAmount(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	places := int32(0)
	if !amount.Equal(amount.Truncate(0)) {
		places = 2
	}
	str := amount.StringFixed(places)
	intPart, frac, _ := strings.Cut(str, ".")
	out := Currency + " " + sign + formatThousand(intPart)
	if frac != "" {
		out += "." + frac
	}
	return out
}

func formatThousand(digits string) string {
	var out strings.Builder
	for i, c := range digits {
		if i != 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
