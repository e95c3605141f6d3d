package reconciliation

import (
	"strconv"
	"strings"
)

// Named fallbacks of the credit-term grammar. Malformed terms must never
// abort processing of an otherwise valid invoice, so every failure path
// resolves to one of these.
const (
	daysPerWeek = 7

	// singleWeekDays applies when a singular article token stands in for
	// the count ("una semana").
	singleWeekDays = 7

	// defaultWeekDays applies when a week unit is present but no usable
	// count is found.
	defaultWeekDays = 14

	// defaultTermDays applies to empty or unparseable terms.
	defaultTermDays = 0

	cashTerms = "contado"

	// weekUnitToken matches both "semana" and "semanas".
	weekUnitToken = "semana"
)

// CreditTermDays converts free-text payment terms into a day count.
//
// The grammar, applied in order:
//   - week unit present: first all-digit token × 7; else a singular article
//     token ("una"/"un") means one week; else two weeks.
//   - otherwise the first token is parsed as an integer day count; any
//     parse failure yields zero days.
func CreditTermDays(terms string) int {
	normalized := strings.ToLower(strings.TrimSpace(terms))

	if strings.Contains(normalized, weekUnitToken) {
		for _, token := range strings.Fields(normalized) {
			if allDigits(token) {
				n, _ := strconv.Atoi(token)
				return n * daysPerWeek
			}
			if token == "una" || token == "un" {
				return singleWeekDays
			}
		}
		return defaultWeekDays
	}

	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return defaultTermDays
	}
	days, err := strconv.Atoi(fields[0])
	if err != nil {
		return defaultTermDays
	}
	return days
}

// IsCashTerms reports whether the terms denote immediate payment
// ("contado"), which marks the invoice paid regardless of matching sets.
func IsCashTerms(terms string) bool {
	return strings.ToLower(strings.TrimSpace(terms)) == cashTerms
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
