package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks a session token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrIssuer   = errors.New("jwtx: issuer mismatch")
	ErrAudience = errors.New("jwtx: audience mismatch")
	ErrExpired  = errors.New("jwtx: token expired")
)

// clockSkew is tolerated on exp and nbf.
const clockSkew = 30 * time.Second

// EdDSAVerifier verifies tokens against the keys of a KeySet.
type EdDSAVerifier struct {
	keys   *KeySet
	parser *jwt.Parser
}

// NewVerifierEdDSA returns a verifier that requires issuer and, when aud
// is not empty, one of aud.
func NewVerifierEdDSA(keys *KeySet, issuer string, aud []string) *EdDSAVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if len(aud) > 0 {
		opts = append(opts, jwt.WithAudience(aud...))
	}
	return &EdDSAVerifier{keys: keys, parser: jwt.NewParser(opts...)}
}

func (v *EdDSAVerifier) Verify(tokenStr string) (Claims, error) {
	var claims Claims
	_, err := v.parser.ParseWithClaims(tokenStr, &claims, v.key)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return Claims{}, ErrIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return Claims{}, ErrAudience
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	default:
		return Claims{}, fmt.Errorf("jwtx: verify: %w", err)
	}
}

func (v *EdDSAVerifier) key(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, errors.New("jwtx: missing kid")
	}
	return v.keys.Lookup(kid)
}

var _ Verifier = (*EdDSAVerifier)(nil)
