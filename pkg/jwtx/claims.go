package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a login session token.
const DefaultSessionTTL = 14 * 24 * time.Hour

// AMROTP is the authentication method recorded for phone logins.
const AMROTP = "otp"

// Claims are the session-token claims handed to a client after it proves
// control of a phone number.
type Claims struct {
	jwt.RegisteredClaims

	SID      string   `json:"sid,omitempty"`
	AMR      []string `json:"amr,omitempty"`
	Username string   `json:"username,omitempty"`
	Role     string   `json:"role,omitempty"`
}

// NewSessionClaims fills the registered claims for a session that starts
// at now and lasts ttl.
func NewSessionClaims(
	subject, sid, username, role string,
	amr []string,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID:      sid,
		AMR:      amr,
		Username: username,
		Role:     role,
	}
}

// NewJTI returns a random token id.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
