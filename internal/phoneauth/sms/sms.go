// Package sms delivers one-time codes through the 2Factor.in HTTP API.
package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
)

const (
	DefaultBaseURL = "https://2factor.in"
	DefaultTimeout = 15 * time.Second

	maxResponseBytes = 64 << 10
)

var (
	// ErrNotConfigured means no usable API key is set.
	ErrNotConfigured = errors.New("sms: api key not configured")
	// ErrRejected means the gateway answered but did not accept the message.
	ErrRejected = errors.New("sms: gateway rejected message")
)

// Gateway sends a code to a phone. Implementations make exactly one attempt.
type Gateway interface {
	SendOTP(ctx context.Context, apiKey, phone, code string) error
}

// TwoFactorGateway calls GET <base>/API/V1/<key>/SMS/<phone>/<code>/OTP.
type TwoFactorGateway struct {
	baseURL string
	client  *http.Client
}

// NewTwoFactorGateway returns a gateway bounded by timeout. Empty values
// fall back to DefaultBaseURL and DefaultTimeout.
func NewTwoFactorGateway(baseURL string, timeout time.Duration) *TwoFactorGateway {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TwoFactorGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type sendResponse struct {
	Status  string `json:"Status"`
	Details string `json:"Details"`
}

func (g *TwoFactorGateway) SendOTP(ctx context.Context, apiKey, phone, code string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" || apiKey == domain.PlaceholderAPIKey {
		return ErrNotConfigured
	}

	endpoint := g.baseURL + "/API/V1/" + url.QueryEscape(apiKey) +
		"/SMS/" + url.QueryEscape(phone) +
		"/" + url.QueryEscape(code) + "/OTP"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("sms: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		// The URL carries the API key, so only the cause is kept.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("sms: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: http status %d", ErrRejected, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("sms: read response: %w", err)
	}

	var out sendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("%w: undecodable response", ErrRejected)
	}
	if out.Status != "Success" {
		return fmt.Errorf("%w: status %q", ErrRejected, out.Status)
	}
	return nil
}

var _ Gateway = (*TwoFactorGateway)(nil)
