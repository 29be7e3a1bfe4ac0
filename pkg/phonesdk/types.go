package phonesdk

import (
	"time"

	"github.com/aussiebroadwan/phoneauth/pkg/jwtx"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Login
// ============================================================================

// CSRFResponse carries the double-submit token also set as a cookie.
type CSRFResponse struct {
	Token string `json:"csrf_token"`
}

// Onboarding holds the optional fields collected from a new user.
type Onboarding struct {
	Email string `json:"email,omitempty" example:"asha@example.com"`
	Name  string `json:"name,omitempty" example:"Asha Rao"`
}

type CheckPhoneRequest struct {
	Phone string `json:"phone" example:"9876543210"`
}

// CheckPhoneResponse is identical for registered and unknown phones.
type CheckPhoneResponse struct {
	Phone                 string `json:"phone" example:"+919876543210"`
	ValidPhone            bool   `json:"valid_phone"`
	UserExists            *bool  `json:"user_exists"` // always null
	RequireEmail          bool   `json:"require_email"`
	RequireName           bool   `json:"require_name"`
	OnboardingTiming      string `json:"onboarding_timing" enums:"after,both"`
	AllowCountrySelection bool   `json:"allow_country_selection"`
	CountryCode           string `json:"country_code" example:"+91"`
	Message               string `json:"message" example:"Continue to login or register."`
}

type SendOTPRequest struct {
	Phone  string      `json:"phone" example:"9876543210"`
	Before *Onboarding `json:"before,omitempty"`
}

type SendOTPResponse struct {
	Phone     string    `json:"phone" example:"+919876543210"`
	Length    int       `json:"otp_length" example:"5"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int       `json:"expires_in" example:"300"`
	Message   string    `json:"message" example:"OTP sent successfully! Check your phone."`
}

type VerifyOTPRequest struct {
	Phone string      `json:"phone" example:"9876543210"`
	OTP   string      `json:"otp" example:"12345"`
	After *Onboarding `json:"after,omitempty"`
}

// SessionResponse is returned by a successful verification.
type SessionResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int    `json:"expires_in" example:"1209600"`
	UserID      string `json:"user_id" example:"01J9Z3X4Q8R6T2V5W7Y9A1B3C5"`
	Username    string `json:"username" example:"user_3210_aB9x"`
	Role        string `json:"role" example:"subscriber"`
	Created     bool   `json:"created"`
	RedirectURL string `json:"redirect_url" example:"/"`
	Message     string `json:"message" example:"Login successful! Redirecting..."`
}

// ============================================================================
// Profiles
// ============================================================================

// ProfileResponse is a user with their active phones, primary first.
type ProfileResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Role      string    `json:"role"`
	Phones    []string  `json:"phones"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Message   string    `json:"message,omitempty" example:"User has 1 phone numbers registered."`
}

// UpdateProfileRequest changes only the fields that are set.
type UpdateProfileRequest struct {
	Phone *string `json:"phone,omitempty"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ============================================================================
// System
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
	Signer   string `json:"signer"`
}

// JWKSResponse holds the public keys that verify session tokens.
type JWKSResponse jwtx.JWKS
