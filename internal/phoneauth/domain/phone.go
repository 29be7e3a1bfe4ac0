package domain

import (
	"regexp"
	"strings"
	"time"
)

// phonePattern is the accepted E.164 shape: a 1-4 digit country code
// followed by a 10 digit subscriber number.
var phonePattern = regexp.MustCompile(`^\+\d{1,4}\d{10}$`)

// PhoneRecord binds a normalized phone number to a user. At most one
// active record may exist per phone across all users.
type PhoneRecord struct {
	ID        string
	UserID    string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidPhone reports whether phone is a normalized E.164 number.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// NormalizePhone strips formatting from raw and makes sure the result
// carries a country code. Numbers that already start with "+" are kept as
// they are, numbers that start with the default code's digits get a "+"
// prefix and everything else gets the default code prepended.
func NormalizePhone(raw, defaultCountryCode string) string {
	phone := stripPhone(raw)
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}

	cc := stripPhone(defaultCountryCode)
	digits := strings.TrimPrefix(cc, "+")
	if digits != "" && strings.HasPrefix(phone, digits) {
		return "+" + phone
	}

	if !strings.HasPrefix(cc, "+") {
		cc = "+" + cc
	}
	return cc + phone
}

// PhoneDigits returns phone without its leading "+".
func PhoneDigits(phone string) string {
	return strings.TrimPrefix(phone, "+")
}

func stripPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
