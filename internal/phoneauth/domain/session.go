package domain

import "time"

// LoginOutcome is what a successful verification hands back to the caller.
type LoginOutcome struct {
	UserID      string
	Username    string
	Role        string
	Created     bool   // True when the account was provisioned by this login
	RedirectURL string // Where the client should go next
}

// Session is a LoginOutcome with the bearer token minted for it.
type Session struct {
	LoginOutcome
	Token     string
	ExpiresAt time.Time
}
