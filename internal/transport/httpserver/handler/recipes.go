package handler

import (
	"net/http"
	"time"

	"foodgram-go/internal/domain/errs"
	recipesdomain "foodgram-go/internal/domain/recipes"
	"foodgram-go/internal/transport/httpserver/middleware"
	"go.uber.org/multierr"
)

type ingredientAmountRequest struct {
	ID     int64 `json:"id" validate:"required,gt=0"`
	Amount int   `json:"amount" validate:"gte=1,lte=32767"`
}

type createRecipeRequest struct {
	Ingredients []ingredientAmountRequest `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []int64                   `json:"tags" validate:"dive,gt=0"`
	Image       string                    `json:"image"`
	Name        string                    `json:"name" validate:"required,max=64"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cooking_time" validate:"required,gte=1,lte=4320"`
}

// updateRecipeRequest leaves absent fields untouched. Field rules are checked
// by the recipes service.
type updateRecipeRequest struct {
	Ingredients *[]ingredientAmountRequest `json:"ingredients"`
	Tags        *[]int64                   `json:"tags"`
	Image       *string                    `json:"image"`
	Name        *string                    `json:"name"`
	Text        *string                    `json:"text"`
	CookingTime *int                       `json:"cooking_time"`
}

type recipeIngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type recipeResponse struct {
	ID               int64                      `json:"id"`
	Tags             []tagResponse              `json:"tags"`
	Author           userResponse               `json:"author"`
	Ingredients      []recipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
	CreatedAt        time.Time                  `json:"created_at"`
}

type shortRecipeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func newRecipeResponse(details recipesdomain.Details) recipeResponse {
	tags := make([]tagResponse, 0, len(details.Tags))
	for _, tag := range details.Tags {
		tags = append(tags, newTagResponse(tag))
	}
	ingredients := make([]recipeIngredientResponse, 0, len(details.Ingredients))
	for _, line := range details.Ingredients {
		ingredients = append(ingredients, recipeIngredientResponse{
			ID:              line.IngredientID,
			Name:            line.Name,
			MeasurementUnit: line.MeasurementUnit,
			Amount:          line.Amount,
		})
	}

	return recipeResponse{
		ID:               details.ID,
		Tags:             tags,
		Author:           newUserResponse(details.Author.Profile, details.Author.IsSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      details.IsFavorited,
		IsInShoppingCart: details.IsInShoppingCart,
		Name:             details.Name,
		Image:            details.Image,
		Text:             details.Text,
		CookingTime:      details.CookingTime,
		CreatedAt:        details.CreatedAt,
	}
}

func newShortRecipeResponse(short recipesdomain.Short) shortRecipeResponse {
	return shortRecipeResponse{ID: short.ID, Name: short.Name, Image: short.Image, CookingTime: short.CookingTime}
}

func toIngredientAmounts(items []ingredientAmountRequest) []recipesdomain.IngredientAmount {
	result := make([]recipesdomain.IngredientAmount, 0, len(items))
	for _, item := range items {
		result = append(result, recipesdomain.IngredientAmount{IngredientID: item.ID, Amount: item.Amount})
	}
	return result
}

func (h *Handlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.UserIDFromContext(r.Context())
	query := r.URL.Query()

	page, err := parsePage(r)
	isFavorited, flagErr := parseFlag(query.Get("is_favorited"))
	if flagErr != nil {
		err = multierr.Append(err, errs.Invalid("is_favorited", "must be 0 or 1"))
	}
	inCart, flagErr := parseFlag(query.Get("is_in_shopping_cart"))
	if flagErr != nil {
		err = multierr.Append(err, errs.Invalid("is_in_shopping_cart", "must be 0 or 1"))
	}
	if err != nil {
		h.writeDomainError(w, r, "recipes.list", err)
		return
	}

	// Personal filters select nothing for anonymous viewers.
	if (isFavorited || inCart) && viewerID == "" {
		writeJSON(w, http.StatusOK, pageResponse[recipeResponse]{Count: 0, Results: []recipeResponse{}})
		return
	}

	filter := recipesdomain.ListFilter{
		AuthorID: query.Get("author"),
		TagSlugs: parseMulti(query["tags"]),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	if isFavorited {
		filter.FavoritedBy = viewerID
	}
	if inCart {
		filter.InCartOf = viewerID
	}

	items, total, err := h.Recipes.ListRecipes(r.Context(), viewerID, filter)
	if err != nil {
		h.writeDomainError(w, r, "recipes.list", err, "viewer_id", viewerID)
		return
	}

	results := make([]recipeResponse, 0, len(items))
	for _, item := range items {
		results = append(results, newRecipeResponse(item))
	}
	writeJSON(w, http.StatusOK, pageResponse[recipeResponse]{Count: total, Results: results})
}

func (h *Handlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, "recipes.get", err)
		return
	}

	viewerID := middleware.UserIDFromContext(r.Context())
	details, err := h.Recipes.GetRecipe(r.Context(), viewerID, id)
	if err != nil {
		h.writeDomainError(w, r, "recipes.get", err, "recipe_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newRecipeResponse(*details))
}

func (h *Handlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createRecipeRequest
	if !h.decodeRequest(w, r, "recipes.create", &req) {
		return
	}

	details, err := h.Recipes.CreateRecipe(r.Context(), recipesdomain.CreateRecipeInput{
		AuthorID:    user.ID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       req.Image,
		Ingredients: toIngredientAmounts(req.Ingredients),
		TagIDs:      req.Tags,
	})
	if err != nil {
		h.writeDomainError(w, r, "recipes.create", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusCreated, newRecipeResponse(*details))
}

func (h *Handlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, "recipes.update", err)
		return
	}

	var req updateRecipeRequest
	if !h.decodeRequest(w, r, "recipes.update", &req) {
		return
	}

	input := recipesdomain.UpdateRecipeInput{
		ID:          id,
		ActorID:     user.ID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       req.Image,
		TagIDs:      req.Tags,
	}
	if req.Ingredients != nil {
		amounts := toIngredientAmounts(*req.Ingredients)
		input.Ingredients = &amounts
	}

	details, err := h.Recipes.UpdateRecipe(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, r, "recipes.update", err, "user_id", user.ID, "recipe_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newRecipeResponse(*details))
}

func (h *Handlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, "recipes.delete", err)
		return
	}

	if err := h.Recipes.DeleteRecipe(r.Context(), user.ID, id); err != nil {
		h.writeDomainError(w, r, "recipes.delete", err, "user_id", user.ID, "recipe_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
