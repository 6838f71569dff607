// Package validate is the validation kernel shared by every tool: pure
// format, structural, referential and uniqueness predicates, plus the pinned
// clock and JSON-schema argument validation. Nothing here mutates the world.
package validate

import (
	"regexp"
	"time"
)

// Pre-compiled format patterns.
var (
	dateRe        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	usDateRe      = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
	datetimeRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)
	emailRe       = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	taxIDRe       = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	bankAccountRe = regexp.MustCompile(`^\d{8,17}$`)
	routingRe     = regexp.MustCompile(`^\d{9}$`)
	macRe         = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$`)
	phoneRe       = regexp.MustCompile(`^[\d\s\-+()]+$`)
)

// ValidDate reports whether s is a real calendar date in canonical
// YYYY-MM-DD form.
func ValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidDateTime reports whether s is a real instant in canonical
// YYYY-MM-DDTHH:MM:SS form.
func ValidDateTime(s string) bool {
	if !datetimeRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateTimeLayout, s)
	return err == nil
}

// CanonicalDate converts an MM-DD-YYYY date (used by a few domains) to the
// canonical YYYY-MM-DD form. Already-canonical dates pass through; anything
// else reports false.
func CanonicalDate(s string) (string, bool) {
	if ValidDate(s) {
		return s, true
	}
	m := usDateRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	canonical := m[3] + "-" + m[1] + "-" + m[2]
	if !ValidDate(canonical) {
		return "", false
	}
	return canonical, true
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool { return emailRe.MatchString(s) }

// ValidTaxID reports whether s is a US tax id (NNN-NN-NNNN).
func ValidTaxID(s string) bool { return taxIDRe.MatchString(s) }

// ValidBankAccount reports whether s is an 8-17 digit account number.
func ValidBankAccount(s string) bool { return bankAccountRe.MatchString(s) }

// ValidRoutingNumber reports whether s is a 9-digit routing number.
func ValidRoutingNumber(s string) bool { return routingRe.MatchString(s) }

// ValidMAC reports whether s is a colon- or dash-separated MAC address.
func ValidMAC(s string) bool { return macRe.MatchString(s) }

// ValidPhone reports whether s is a run of digits, spaces, dashes, plus
// signs and parentheses.
func ValidPhone(s string) bool { return s != "" && phoneRe.MatchString(s) }

// DateOrder reports whether a ≤ b for two canonical dates. Malformed input
// reports false.
func DateOrder(a, b string) bool {
	ta, err := time.Parse(DateLayout, a)
	if err != nil {
		return false
	}
	tb, err := time.Parse(DateLayout, b)
	if err != nil {
		return false
	}
	return !ta.After(tb)
}
