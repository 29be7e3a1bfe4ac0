package phonesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in the "error" field.
const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeInvalidPhone         = "invalid_phone"
	ErrorCodeInvalidEmail         = "invalid_email"
	ErrorCodeOnboardingIncomplete = "onboarding_incomplete"
	ErrorCodeRateLimited          = "rate_limited"
	ErrorCodeGatewayError         = "gateway_error"
	ErrorCodeGatewayNotConfigured = "gateway_not_configured"
	ErrorCodeCodeRequired         = "code_required"
	ErrorCodeNoActiveCode         = "no_active_code"
	ErrorCodeAttemptsExhausted    = "attempts_exhausted"
	ErrorCodeInvalidCode          = "invalid_code"
	ErrorCodeSourceLockedOut      = "source_locked_out"
	ErrorCodePhoneConflict        = "phone_conflict"
	ErrorCodeEmailConflict        = "email_conflict"
	ErrorCodeRegistrationRejected = "registration_rejected"
	ErrorCodeUsernameExhausted    = "username_exhausted"
	ErrorCodeUserNotFound         = "user_not_found"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeCSRFFailed           = "csrf_failed"
	ErrorCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrorCodeUnavailable          = "temporarily_unavailable"
	ErrorCodeServerError          = "server_error"
)

// APIError is an error reply from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Code returns the error code of err if it is an *APIError, else "".
func Code(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// parseErrorResponse turns a non-2xx reply into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
