package phonesdk

import (
	"context"
	"net/http"
	"net/url"
)

func userPath(id string) string {
	return "/v1/admin/users/" + url.PathEscape(id)
}

func (a *AdminClient) GetUser(ctx context.Context, id string) (*ProfileResponse, error) {
	resp, err := a.client.doRequest(ctx, http.MethodGet, userPath(id), nil, bearer(a.token))
	if err != nil {
		return nil, err
	}

	var out ProfileResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser changes the fields set in req and returns the new profile.
func (a *AdminClient) UpdateUser(ctx context.Context, id string, req UpdateProfileRequest) (*ProfileResponse, error) {
	resp, err := a.client.doRequest(ctx, http.MethodPut, userPath(id), req, bearer(a.token))
	if err != nil {
		return nil, err
	}

	var out ProfileResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes the account and frees its phones.
func (a *AdminClient) DeleteUser(ctx context.Context, id string) error {
	resp, err := a.client.doRequest(ctx, http.MethodDelete, userPath(id), nil, bearer(a.token))
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
