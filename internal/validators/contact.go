package validators

import (
	"net/mail"
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\- ]{5,18}[0-9]$`)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmail reports whether v is a bare address, without display name.
func IsEmail(v string) bool {
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v
}

func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// IsPhone accepts digits with optional leading + and inner dashes or spaces.
// Empty values are allowed; phone is optional on every record.
func IsPhone(v string) bool {
	if v == "" {
		return true
	}
	return phonePattern.MatchString(v)
}
