package domain

import "time"

const (
	// MaxOTPAttempts is the number of wrong codes a record tolerates.
	MaxOTPAttempts = 3
)

// Onboarding holds the optional fields collected from a new user either
// before the code is sent or after it is verified.
type Onboarding struct {
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Name  string `json:"name,omitempty"  yaml:"name,omitempty"`
}

// IsZero reports whether no onboarding field was supplied.
func (o Onboarding) IsZero() bool {
	return o.Email == "" && o.Name == ""
}

// Merge returns o with every non-empty field of later applied on top.
func (o Onboarding) Merge(later Onboarding) Onboarding {
	if later.Email != "" {
		o.Email = later.Email
	}
	if later.Name != "" {
		o.Name = later.Name
	}
	return o
}

// OTPRecord is the single live code for a phone. Only a keyed digest of the
// code is kept.
type OTPRecord struct {
	Phone      string
	CodeHash   string
	ExpiresAt  time.Time
	Attempts   int        // Wrong guesses so far, never above MaxOTPAttempts
	Onboarding Onboarding // Fields supplied with the send request
}

// Expired reports whether the record is past its expiry at now.
func (r OTPRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// Exhausted reports whether the record has no attempts left.
func (r OTPRecord) Exhausted() bool {
	return r.Attempts >= MaxOTPAttempts
}

// OTPLogin is a durable copy of an issued code, consulted only while the
// ephemeral store is unreachable.
type OTPLogin struct {
	ID        string
	Phone     string
	CodeHash  string
	Attempts  int
	Verified  bool
	ExpiresAt time.Time
	CreatedAt time.Time
}
