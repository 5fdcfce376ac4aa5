package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundTo rounds amount to the given number of decimal places, half away
// from zero. Rounding goes through decimal because naive float math
// (math.Round(x*100)/100) lands on the wrong cent for inputs whose binary
// representation falls just under the half boundary, e.g. 2.675*100.
func RoundTo(amount float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(places).Float64()
	return f
}

// Round rounds to 2 decimal places, the currency default.
func Round(amount float64) float64 {
	return RoundTo(amount, 2)
}

// Format renders an amount as a display currency string, e.g. "RM 1,234.50".
func Format(amount float64) string {
	s := decimal.NewFromFloat(Round(amount)).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}

	out := "RM " + b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
