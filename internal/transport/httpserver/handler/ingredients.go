package handler

import (
	"net/http"

	catalogdomain "foodgram-go/internal/domain/catalog"
)

type createIngredientRequest struct {
	Name            string `json:"name" validate:"required,max=64"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=16"`
}

type ingredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func (h *Handlers) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.Catalog.ListIngredients(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.writeDomainError(w, r, "ingredients.list", err)
		return
	}

	response := make([]ingredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		response = append(response, ingredientResponse{
			ID:              ingredient.ID,
			Name:            ingredient.Name,
			MeasurementUnit: ingredient.MeasurementUnit,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, "ingredients.get", err)
		return
	}

	ingredient, err := h.Catalog.GetIngredient(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, "ingredients.get", err, "ingredient_id", id)
		return
	}
	writeJSON(w, http.StatusOK, ingredientResponse{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	})
}

func (h *Handlers) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createIngredientRequest
	if !h.decodeRequest(w, r, "ingredients.create", &req) {
		return
	}

	created, err := h.Catalog.CreateIngredient(r.Context(), catalogdomain.IngredientInput{
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	})
	if err != nil {
		h.writeDomainError(w, r, "ingredients.create", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusCreated, ingredientResponse{
		ID:              created.ID,
		Name:            created.Name,
		MeasurementUnit: created.MeasurementUnit,
	})
}
