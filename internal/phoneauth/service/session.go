package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/pkg/idx"
	"github.com/aussiebroadwan/phoneauth/pkg/jwtx"
)

// SessionIssuer mints the bearer token handed out after a phone login.
type SessionIssuer struct {
	Signer   jwtx.Signer
	Issuer   string
	Audience []string
	TTL      time.Duration
	Now      func() time.Time
}

func (s *SessionIssuer) Mint(o domain.LoginOutcome) (domain.Session, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(o.UserID, idx.NewAt(now).String(), o.Username, o.Role,
		[]string{jwtx.AMROTP}, ttl, s.Issuer, s.Audience, now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.Session{}, fmt.Errorf("sign session: %w", err)
	}
	return domain.Session{LoginOutcome: o, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}
