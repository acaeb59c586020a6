package handler

import (
	"context"
	"net/http"

	recipesdomain "foodgram-go/internal/domain/recipes"
)

type addFunc func(ctx context.Context, userID string, recipeID int64) (*recipesdomain.Short, error)

type removeFunc func(ctx context.Context, userID string, recipeID int64) error

func (h *Handlers) AddFavorite(w http.ResponseWriter, r *http.Request) {
	h.addMembership(w, r, "favorites.add", h.Recipes.AddFavorite)
}

func (h *Handlers) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.removeMembership(w, r, "favorites.remove", h.Recipes.RemoveFavorite)
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	h.addMembership(w, r, "cart.add", h.Recipes.AddToCart)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.removeMembership(w, r, "cart.remove", h.Recipes.RemoveFromCart)
}

func (h *Handlers) addMembership(w http.ResponseWriter, r *http.Request, op string, add addFunc) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, op, err)
		return
	}

	short, err := add(r.Context(), user.ID, id)
	if err != nil {
		h.writeDomainError(w, r, op, err, "user_id", user.ID, "recipe_id", id)
		return
	}
	writeJSON(w, http.StatusCreated, newShortRecipeResponse(*short))
}

func (h *Handlers) removeMembership(w http.ResponseWriter, r *http.Request, op string, remove removeFunc) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, op, err)
		return
	}

	if err := remove(r.Context(), user.ID, id); err != nil {
		h.writeDomainError(w, r, op, err, "user_id", user.ID, "recipe_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
