package http

import (
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/service"
	"github.com/aussiebroadwan/phoneauth/pkg/httpx"
	"github.com/aussiebroadwan/phoneauth/pkg/idx"
	"github.com/aussiebroadwan/phoneauth/pkg/phonesdk"
)

func profileResponse(p service.Profile) phonesdk.ProfileResponse {
	phones := p.Phones
	if phones == nil {
		phones = []string{}
	}

	return phonesdk.ProfileResponse{
		UserID:    p.User.ID,
		Username:  p.User.Username,
		Email:     p.User.Email,
		Name:      p.User.Name,
		FirstName: p.User.FirstName,
		LastName:  p.User.LastName,
		Role:      p.User.Role,
		Phones:    phones,
		CreatedAt: p.User.CreatedAt,
		UpdatedAt: p.User.UpdatedAt,
		Message:   fmt.Sprintf("User has %d phone numbers registered.", len(phones)),
	}
}

// MeHandler returns the profile behind a session token.
type MeHandler struct {
	Profiles *service.ProfileService
}

// ServeHTTP handles GET /v1/me
//
//	@Summary		Current user
//	@Description	Returns the logged in user's profile and phones.
//	@Tags			Session
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	phonesdk.ProfileResponse
//	@Failure		401	{object}	phonesdk.ErrorResponse	"invalid_token"
//	@Failure		404	{object}	phonesdk.ErrorResponse	"user_not_found"
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, err := h.Profiles.Get(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profileResponse(p))
}

// AdminUsersHandler serves the operator view of accounts.
type AdminUsersHandler struct {
	Profiles *service.ProfileService
}

// userID returns the {id} path value, or "" after replying 404 when it
// cannot be an account ID.
func userID(w http.ResponseWriter, r *http.Request) string {
	id := r.PathValue("id")
	if !idx.Valid(id) {
		httpx.WriteError(w, http.StatusNotFound, phonesdk.ErrorCodeUserNotFound, "User not found.")
		return ""
	}
	return id
}

// HandleGet handles GET /v1/admin/users/{id}
//
//	@Summary		Get user
//	@Tags			Admin
//	@Produce		json
//	@Security		AdminToken
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	phonesdk.ProfileResponse
//	@Failure		401	{object}	phonesdk.ErrorResponse	"invalid_token"
//	@Failure		404	{object}	phonesdk.ErrorResponse	"user_not_found"
//	@Failure		503	{object}	phonesdk.ErrorResponse	"admin endpoints disabled"
//	@Router			/v1/admin/users/{id} [get].
func (h *AdminUsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := userID(w, r)
	if id == "" {
		return
	}

	p, err := h.Profiles.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profileResponse(p))
}

// HandleUpdate handles PUT /v1/admin/users/{id}
//
//	@Summary		Update user
//	@Description	Changes the fields present in the body. A new phone becomes the user's only active phone.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		AdminToken
//	@Param			id		path		string							true	"User ID"
//	@Param			request	body		phonesdk.UpdateProfileRequest	true	"Fields to change"
//	@Success		200		{object}	phonesdk.ProfileResponse
//	@Failure		400		{object}	phonesdk.ErrorResponse	"invalid_phone, invalid_email"
//	@Failure		404		{object}	phonesdk.ErrorResponse	"user_not_found"
//	@Failure		409		{object}	phonesdk.ErrorResponse	"phone_conflict, email_conflict"
//	@Router			/v1/admin/users/{id} [put].
func (h *AdminUsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := userID(w, r)
	if id == "" {
		return
	}

	var req phonesdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	p, err := h.Profiles.Update(r.Context(), id, service.ProfileUpdate{
		Phone: req.Phone,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, profileResponse(p))
}

// HandleDelete handles DELETE /v1/admin/users/{id}
//
//	@Summary		Delete user
//	@Description	Removes the account and frees its phones.
//	@Tags			Admin
//	@Security		AdminToken
//	@Param			id	path	string	true	"User ID"
//	@Success		204
//	@Failure		404	{object}	phonesdk.ErrorResponse	"user_not_found"
//	@Router			/v1/admin/users/{id} [delete].
func (h *AdminUsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := userID(w, r)
	if id == "" {
		return
	}

	if err := h.Profiles.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
