package geocoding

import (
	"regexp"
	"strings"
)

var (
	canadianPostal = regexp.MustCompile(`^[A-Z]\d[A-Z] ?\d[A-Z]\d$`)
	usZipcode      = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// IsPostalCode reports whether s looks like a Canadian postal code or a US zipcode
func IsPostalCode(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	return canadianPostal.MatchString(s) || usZipcode.MatchString(s)
}

// IsCanadianPostalCode reports whether s is a Canadian postal code in any spacing or case
func IsCanadianPostalCode(s string) bool {
	return canadianPostal.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// NormalizePostalCode upper-cases s and formats Canadian codes as "A1A 1A1".
// Anything else is returned trimmed and upper-cased.
func NormalizePostalCode(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !canadianPostal.MatchString(s) {
		return s
	}
	compact := strings.ReplaceAll(s, " ", "")
	return compact[:3] + " " + compact[3:]
}
