package domain

import (
	"strings"
	"time"
)

// RoleAdministrator is the role whose logins are sent to the admin URL.
const RoleAdministrator = "administrator"

type User struct {
	ID        string
	Username  string
	Email     string // Legacy single-value attribute, empty if never collected
	Name      string // Display name as entered during onboarding
	FirstName string // First word of Name
	LastName  string // Remainder of Name after the first space
	Role      string
	Phone     string // Legacy single-value attribute, mirrors the primary phone
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SplitName splits a display name on its first space into first and last name.
func SplitName(name string) (first, last string) {
	first, last, _ = strings.Cut(strings.TrimSpace(name), " ")
	return first, strings.TrimSpace(last)
}
