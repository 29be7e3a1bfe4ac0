package phonesdk

import (
	"context"
	"net/http"
)

// Me returns the profile of the logged in user.
func (s *Session) Me(ctx context.Context) (*ProfileResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/v1/me", nil, bearer(s.AccessToken))
	if err != nil {
		return nil, err
	}

	var out ProfileResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
