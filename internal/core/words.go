package core

import (
	"math"
	"strings"
)

var (
	wordOnes = []string{"", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE"}
	wordTeens = []string{"TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN",
		"SIXTEEN", "SEVENTEEN", "EIGHTEEN", "NINETEEN"}
	wordTens = []string{"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY", "SEVENTY", "EIGHTY", "NINETY"}
	// Scales through quintillion (10^18) cover every chunk an int64 amount
	// can produce, so the chunk loop can never outrun this table.
	wordThousands = []string{"", "THOUSAND", "MILLION", "BILLION", "TRILLION", "QUADRILLION", "QUINTILLION"}
)

func wordsBelowThousand(n int) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return wordOnes[n]
	case n < 20:
		return wordTeens[n-10]
	case n < 100:
		out := wordTens[n/10]
		if n%10 != 0 {
			out += " " + wordOnes[n%10]
		}
		return out
	default:
		out := wordOnes[n/100] + " HUNDRED"
		if n%100 != 0 {
			out += " AND " + wordsBelowThousand(n%100)
		}
		return out
	}
}

// AmountToWords spells a ringgit amount in the uppercase legal style
// printed under the grand total, e.g.
// "RINGGIT MALAYSIA: TWO HUNDRED AND SIXTEEN ONLY".
func AmountToWords(amount float64) string {
	if amount < 0 || amount >= math.MaxInt64 {
		// Outside any representable spelled amount; never crash the
		// print path over it.
		return "RINGGIT MALAYSIA: AMOUNT OUT OF RANGE ONLY"
	}
	integerPart := int64(math.Floor(amount))
	cents := int(math.Round((amount - math.Floor(amount)) * 100))

	var result string
	if integerPart == 0 {
		result = "ZERO"
	} else {
		var parts []string
		for i := 0; integerPart > 0 && i < len(wordThousands); i++ {
			if chunk := int(integerPart % 1000); chunk != 0 {
				piece := wordsBelowThousand(chunk)
				if wordThousands[i] != "" {
					piece += " " + wordThousands[i]
				}
				parts = append([]string{piece}, parts...)
			}
			integerPart /= 1000
		}
		result = strings.Join(parts, " ")
	}

	words := "RINGGIT MALAYSIA: " + result
	if cents > 0 {
		words += " AND CENTS " + wordsBelowThousand(cents)
	}
	return words + " ONLY"
}
