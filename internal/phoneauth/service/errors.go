package service

import "errors"

// Every error below is terminal for the request that produced it.
var (
	ErrInvalidPhone         = errors.New("invalid phone number")
	ErrOnboardingIncomplete = errors.New("onboarding incomplete")
	ErrEmailRequired        = errors.New("email is required")
	ErrNameRequired         = errors.New("name is required")
	ErrRateLimited          = errors.New("please wait before requesting another code")
	ErrGateway              = errors.New("failed to send code")

	ErrCodeRequired      = errors.New("code is required")
	ErrNoActiveCode      = errors.New("code expired or not found")
	ErrAttemptsExhausted = errors.New("too many attempts")
	ErrInvalidCode       = errors.New("invalid code")
	ErrSourceLockedOut   = errors.New("too many failed attempts from this source")

	ErrPhoneConflict = errors.New("phone already registered with another account")
	// ErrRegistrationRejected never says which check failed.
	ErrRegistrationRejected = errors.New("registration failed")
	ErrUsernameExhausted    = errors.New("unable to create unique username")

	ErrUserNotFound = errors.New("user not found")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrEmailInUse   = errors.New("email already registered with another account")
)
