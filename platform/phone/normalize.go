// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	defaultRegion = "PH"
	countryCode   = "63"
	// A PH mobile number in international digits form: 63 + 10 digits.
	internationalLen = 12
	mobileLen        = 10
	trunkLen         = 11
)

// Normalize converts loosely formatted Philippine mobile input to E.164
// (+63XXXXXXXXXX). It accepts international (63…), mobile-local (9…) and
// trunk-prefixed (0…) forms. Anything else yields the empty string; an
// unusable phone number is omitted from outgoing records, never an error.
func Normalize(raw string) string {
	digits := stripNonDigits(raw)

	var candidate string
	switch {
	case strings.HasPrefix(digits, countryCode) && len(digits) == internationalLen:
		candidate = "+" + digits
	case strings.HasPrefix(digits, "9") && len(digits) == mobileLen:
		candidate = "+" + countryCode + digits
	case strings.HasPrefix(digits, "0") && len(digits) == trunkLen:
		candidate = "+" + countryCode + digits[1:]
	default:
		return ""
	}

	// Parse is used for canonical E.164 rendering only. The prefix and
	// length rules above decide acceptance; a carrier-range verdict from
	// the metadata must not reject a structurally valid number.
	number, err := phonenumbers.Parse(candidate, defaultRegion)
	if err != nil {
		return candidate
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
