package sanitizer

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const phoneRegion = "PH"

var localMobileRegex = regexp.MustCompile(`^09\d{9}$`)

// NormalizePhone converts a Philippine mobile number entered in any
// common form ("+63 917 123 4567", "63917...", "0917 123 4567") to the
// local 09-prefixed 11-digit form the validators expect. Input that
// cannot be parsed is returned trimmed, so the validator rejects it
// with its own message instead of the number silently vanishing.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	if localMobileRegex.MatchString(phone) {
		return phone
	}

	parsed, err := phonenumbers.Parse(phone, phoneRegion)
	if err != nil {
		return phone
	}

	national := digitsOnly(phonenumbers.Format(parsed, phonenumbers.NATIONAL))
	if localMobileRegex.MatchString(national) {
		return national
	}

	return phone
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
