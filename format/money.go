// Package format turns engine figures into display values. Rounding happens
// here and nowhere else.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundMoney rounds half away from zero to whole pence.
func RoundMoney(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// RoundRate rounds a fraction to six decimal places.
func RoundRate(rate float64) float64 {
	return decimal.NewFromFloat(rate).Round(6).InexactFloat64()
}

// GBP formats an amount as pounds sterling, e.g. £12,345.67.
func GBP(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	whole, pence, _ := strings.Cut(fixed, ".")
	return sign + "£" + groupThousands(whole) + "." + pence
}

// Percent formats a fraction as a percentage with two decimals, e.g. 7.30%.
func Percent(rate float64) string {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// Years formats a month count as years with one decimal.
func Years(months int) float64 {
	return decimal.NewFromInt(int64(months)).Div(decimal.NewFromInt(12)).Round(1).InexactFloat64()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
