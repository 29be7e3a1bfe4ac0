package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/service"
	"github.com/aussiebroadwan/phoneauth/pkg/httpx"
	"github.com/aussiebroadwan/phoneauth/pkg/phonesdk"
	"github.com/aussiebroadwan/phoneauth/pkg/slogx"
)

// csrfTTL bounds how long a login page may sit open.
const csrfTTL = 2 * time.Hour

// LoginHandler serves the public login flow.
type LoginHandler struct {
	Login         *service.LoginService
	Source        httpx.KeyExtractor
	SecureCookies bool
}

// HandleCSRF handles GET /v1/login/csrf
//
//	@Summary		Issue CSRF token
//	@Description	Sets the double-submit CSRF cookie. Echo the returned token in the X-CSRF-Token header on every login POST.
//	@Tags			Login
//	@Produce		json
//	@Success		200	{object}	phonesdk.CSRFResponse	"csrf_token"
//	@Router			/v1/login/csrf [get].
func (h *LoginHandler) HandleCSRF(w http.ResponseWriter, r *http.Request) {
	token, err := httpx.IssueCSRFCookie(w, h.SecureCookies, csrfTTL)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, phonesdk.CSRFResponse{Token: token})
}

// HandleCheck handles POST /v1/login/check
//
//	@Summary		Check phone
//	@Description	Normalizes the phone and reports which onboarding fields to collect. The reply never reveals whether the phone is registered.
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			X-CSRF-Token	header		string						true	"CSRF token"
//	@Param			request			body		phonesdk.CheckPhoneRequest	true	"Phone to check"
//	@Success		200				{object}	phonesdk.CheckPhoneResponse
//	@Failure		400				{object}	phonesdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	phonesdk.ErrorResponse	"csrf_failed"
//	@Router			/v1/login/check [post].
func (h *LoginHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req phonesdk.CheckPhoneRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	res := h.Login.CheckPhone(r.Context(), req.Phone)
	httpx.WriteJSON(w, http.StatusOK, phonesdk.CheckPhoneResponse{
		Phone:                 res.Phone,
		ValidPhone:            res.ValidPhone,
		UserExists:            res.UserExists,
		RequireEmail:          res.RequireEmail,
		RequireName:           res.RequireName,
		OnboardingTiming:      string(res.OnboardingTiming),
		AllowCountrySelection: res.AllowCountrySelection,
		CountryCode:           res.CountryCode,
		Message:               res.Message,
	})
}

// HandleSendOTP handles POST /v1/login/otp
//
//	@Summary		Send OTP
//	@Description	Sends a one-time code to the phone. At most one send per phone per minute.
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			X-CSRF-Token	header		string					true	"CSRF token"
//	@Param			request			body		phonesdk.SendOTPRequest	true	"Phone and optional onboarding fields"
//	@Success		200				{object}	phonesdk.SendOTPResponse
//	@Failure		400				{object}	phonesdk.ErrorResponse	"invalid_phone, onboarding_incomplete"
//	@Failure		429				{object}	phonesdk.ErrorResponse	"rate_limited"
//	@Failure		502				{object}	phonesdk.ErrorResponse	"gateway_error"
//	@Failure		503				{object}	phonesdk.ErrorResponse	"gateway_not_configured"
//	@Router			/v1/login/otp [post].
func (h *LoginHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req phonesdk.SendOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := h.Login.SendOTP(r.Context(), req.Phone, onboarding(req.Before))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, phonesdk.SendOTPResponse{
		Phone:     res.Phone,
		Length:    res.Length,
		ExpiresAt: res.ExpiresAt,
		ExpiresIn: secondsUntil(res.ExpiresAt),
		Message:   "OTP sent successfully! Check your phone.",
	})
}

// HandleVerify handles POST /v1/login/verify
//
//	@Summary		Verify OTP
//	@Description	Checks the code and logs the phone's owner in, creating the account on first login.
//	@Description	Three failed attempts from one address lock it out for five minutes.
//	@Tags			Login
//	@Accept			json
//	@Produce		json
//	@Param			X-CSRF-Token	header		string						true	"CSRF token"
//	@Param			request			body		phonesdk.VerifyOTPRequest	true	"Phone, code and optional onboarding fields"
//	@Success		200				{object}	phonesdk.SessionResponse	"session token"
//	@Failure		400				{object}	phonesdk.ErrorResponse		"code_required, no_active_code, registration_rejected"
//	@Failure		401				{object}	phonesdk.ErrorResponse		"invalid_code"
//	@Failure		429				{object}	phonesdk.ErrorResponse		"attempts_exhausted, source_locked_out"
//	@Router			/v1/login/verify [post].
func (h *LoginHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req phonesdk.VerifyOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	sess, err := h.Login.VerifyOTP(ctx, req.Phone, req.OTP, onboarding(req.After), h.Source(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if sess.Created {
		slogx.FromContext(ctx).Info("account created on login", "user_id", sess.UserID)
	}

	httpx.WriteJSON(w, http.StatusOK, phonesdk.SessionResponse{
		AccessToken: sess.Token,
		TokenType:   "Bearer",
		ExpiresIn:   secondsUntil(sess.ExpiresAt),
		UserID:      sess.UserID,
		Username:    sess.Username,
		Role:        sess.Role,
		Created:     sess.Created,
		RedirectURL: sess.RedirectURL,
		Message:     "Login successful! Redirecting...",
	})
}

func onboarding(o *phonesdk.Onboarding) domain.Onboarding {
	if o == nil {
		return domain.Onboarding{}
	}
	return domain.Onboarding{Email: o.Email, Name: o.Name}
}

func secondsUntil(t time.Time) int {
	return max(0, int(time.Until(t).Round(time.Second).Seconds()))
}
