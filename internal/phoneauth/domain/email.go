package domain

import "regexp"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-']+@[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?)+$`)

// ValidEmail reports whether email is syntactically acceptable.
func ValidEmail(email string) bool {
	return len(email) >= 6 && len(email) <= 254 && emailPattern.MatchString(email)
}
