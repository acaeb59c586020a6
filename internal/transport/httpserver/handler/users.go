package handler

import (
	"net/http"
	"strings"

	userdomain "foodgram-go/internal/domain/user"
	"foodgram-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type userResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func newUserResponse(profile userdomain.Profile, subscribed bool) userResponse {
	return userResponse{
		ID:           profile.ID,
		Email:        profile.Email,
		Username:     profile.Username,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		IsSubscribed: subscribed,
	}
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.writeDomainError(w, r, "users.list", err)
		return
	}

	profiles, total, err := h.Users.ListProfiles(r.Context(), page)
	if err != nil {
		h.writeDomainError(w, r, "users.list", err)
		return
	}

	viewerID := middleware.UserIDFromContext(r.Context())
	ids := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		ids = append(ids, profile.ID)
	}
	subscribed, err := h.Subscriptions.SubscribedAmong(r.Context(), viewerID, ids)
	if err != nil {
		h.writeDomainError(w, r, "users.list", err, "viewer_id", viewerID)
		return
	}

	results := make([]userResponse, 0, len(profiles))
	for _, profile := range profiles {
		results = append(results, newUserResponse(profile, subscribed[profile.ID]))
	}
	writeJSON(w, http.StatusOK, pageResponse[userResponse]{Count: total, Results: results})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	profile, err := h.Users.GetProfile(r.Context(), user.ID)
	if err != nil {
		h.writeDomainError(w, r, "users.me", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(*profile, false))
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	profile, err := h.Users.GetProfile(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, "users.get", err, "target_id", id)
		return
	}

	viewerID := middleware.UserIDFromContext(r.Context())
	subscribed, err := h.Subscriptions.IsSubscribed(r.Context(), viewerID, profile.ID)
	if err != nil {
		h.writeDomainError(w, r, "users.get", err, "target_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newUserResponse(*profile, subscribed))
}
