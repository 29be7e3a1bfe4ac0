package phonesdk

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"
)

// Client talks to the public login endpoints. It is safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu   sync.Mutex
	csrf string
}

// NewClient returns a Client with a cookie jar for the CSRF cookie.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // never fails with nil options
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// Session is a logged in user. It carries the token minted by VerifyOTP.
type Session struct {
	client *Client

	SessionResponse
	ExpiresAt time.Time
}

// NewSession wraps a token obtained elsewhere, e.g. from storage.
func (c *Client) NewSession(accessToken string) *Session {
	return &Session{client: c, SessionResponse: SessionResponse{AccessToken: accessToken, TokenType: "Bearer"}}
}

// AdminClient calls the operator endpoints with the static admin token.
type AdminClient struct {
	client *Client
	token  string
}

func (c *Client) Admin(token string) *AdminClient {
	return &AdminClient{client: c, token: token}
}
