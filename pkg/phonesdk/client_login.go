package phonesdk

import (
	"context"
	"net/http"
	"time"
)

// CSRFHeaderName is the header the service compares with its CSRF cookie.
const CSRFHeaderName = "X-CSRF-Token"

// FetchCSRF asks for a new CSRF cookie and remembers its token.
func (c *Client) FetchCSRF(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/login/csrf", nil, nil)
	if err != nil {
		return "", err
	}

	var out CSRFResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}

	c.mu.Lock()
	c.csrf = out.Token
	c.mu.Unlock()
	return out.Token, nil
}

func (c *Client) csrfHeaders(ctx context.Context) (map[string]string, error) {
	c.mu.Lock()
	token := c.csrf
	c.mu.Unlock()

	if token == "" {
		var err error
		if token, err = c.FetchCSRF(ctx); err != nil {
			return nil, err
		}
	}
	return map[string]string{CSRFHeaderName: token}, nil
}

// postLogin sends a CSRF protected request to a login endpoint.
func (c *Client) postLogin(ctx context.Context, path string, body, target any) error {
	headers, err := c.csrfHeaders(ctx)
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, body, headers)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusOK)
}

// CheckPhone normalizes phone and reports which onboarding fields to collect.
func (c *Client) CheckPhone(ctx context.Context, phone string) (*CheckPhoneResponse, error) {
	var out CheckPhoneResponse
	if err := c.postLogin(ctx, "/v1/login/check", CheckPhoneRequest{Phone: phone}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendOTP asks for a code to be sent to req.Phone.
func (c *Client) SendOTP(ctx context.Context, req SendOTPRequest) (*SendOTPResponse, error) {
	var out SendOTPResponse
	if err := c.postLogin(ctx, "/v1/login/otp", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP submits a code and returns the logged in session.
func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*Session, error) {
	var out SessionResponse
	if err := c.postLogin(ctx, "/v1/login/verify", req, &out); err != nil {
		return nil, err
	}

	return &Session{
		client:          c,
		SessionResponse: out,
		ExpiresAt:       time.Now().Add(time.Duration(out.ExpiresIn) * time.Second),
	}, nil
}
