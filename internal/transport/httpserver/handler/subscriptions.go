package handler

import (
	"net/http"
	"strings"

	subscriptionsdomain "foodgram-go/internal/domain/subscriptions"
	"foodgram-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/multierr"
)

type authorResponse struct {
	userResponse
	RecipesCount int64                 `json:"recipes_count"`
	Recipes      []shortRecipeResponse `json:"recipes"`
}

func newAuthorResponse(view subscriptionsdomain.AuthorView) authorResponse {
	recipes := make([]shortRecipeResponse, 0, len(view.Recipes))
	for _, recipe := range view.Recipes {
		recipes = append(recipes, newShortRecipeResponse(recipe))
	}
	return authorResponse{
		userResponse: newUserResponse(view.Profile, view.IsSubscribed),
		RecipesCount: view.RecipesCount,
		Recipes:      recipes,
	}
}

func newAuthorPage(views []subscriptionsdomain.AuthorView, total int64) pageResponse[authorResponse] {
	results := make([]authorResponse, 0, len(views))
	for _, view := range views {
		results = append(results, newAuthorResponse(view))
	}
	return pageResponse[authorResponse]{Count: total, Results: results}
}

func parseListInput(r *http.Request) (subscriptionsdomain.ListInput, error) {
	page, err := parsePage(r)
	recipesLimit, limitErr := parseRecipesLimit(r)
	if err = multierr.Append(err, limitErr); err != nil {
		return subscriptionsdomain.ListInput{}, err
	}
	return subscriptionsdomain.ListInput{
		Page:         page,
		ViewerID:     middleware.UserIDFromContext(r.Context()),
		RecipesLimit: recipesLimit,
	}, nil
}

func (h *Handlers) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	input, err := parseListInput(r)
	if err != nil {
		h.writeDomainError(w, r, "subscriptions.list", err)
		return
	}
	input.UserID = user.ID

	views, total, err := h.Subscriptions.ListAuthors(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, r, "subscriptions.list", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusOK, newAuthorPage(views, total))
}

func (h *Handlers) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	input, err := parseListInput(r)
	if err != nil {
		h.writeDomainError(w, r, "subscribers.list", err)
		return
	}
	input.UserID = strings.TrimSpace(chi.URLParam(r, "id"))

	views, total, err := h.Subscriptions.ListFollowers(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, r, "subscribers.list", err, "author_id", input.UserID)
		return
	}
	writeJSON(w, http.StatusOK, newAuthorPage(views, total))
}

func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	recipesLimit, err := parseRecipesLimit(r)
	if err != nil {
		h.writeDomainError(w, r, "subscriptions.create", err)
		return
	}

	authorID := strings.TrimSpace(chi.URLParam(r, "id"))
	view, err := h.Subscriptions.Subscribe(r.Context(), user.ID, authorID, recipesLimit)
	if err != nil {
		h.writeDomainError(w, r, "subscriptions.create", err, "user_id", user.ID, "author_id", authorID)
		return
	}
	writeJSON(w, http.StatusCreated, newAuthorResponse(*view))
}

func (h *Handlers) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	authorID := strings.TrimSpace(chi.URLParam(r, "id"))
	if err := h.Subscriptions.Unsubscribe(r.Context(), user.ID, authorID); err != nil {
		h.writeDomainError(w, r, "subscriptions.delete", err, "user_id", user.ID, "author_id", authorID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
