package handler

import (
	"net/http"

	catalogdomain "foodgram-go/internal/domain/catalog"
)

type createTagRequest struct {
	Name  string `json:"name" validate:"required,max=64"`
	Color string `json:"color" validate:"required,hexcolor"`
	Slug  string `json:"slug" validate:"omitempty,max=64,slug"`
}

type updateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Slug  *string `json:"slug"`
}

type tagResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func newTagResponse(tag catalogdomain.Tag) tagResponse {
	return tagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color, Slug: tag.Slug}
}

func (h *Handlers) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Catalog.ListTags(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "tags.list", err)
		return
	}

	response := make([]tagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, newTagResponse(tag))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetTag(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, "tags.get", err)
		return
	}

	tag, err := h.Catalog.GetTag(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, "tags.get", err, "tag_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newTagResponse(*tag))
}

func (h *Handlers) CreateTag(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createTagRequest
	if !h.decodeRequest(w, r, "tags.create", &req) {
		return
	}

	created, err := h.Catalog.CreateTag(r.Context(), catalogdomain.CreateTagInput{
		Name:  req.Name,
		Color: req.Color,
		Slug:  req.Slug,
	})
	if err != nil {
		h.writeDomainError(w, r, "tags.create", err, "user_id", user.ID)
		return
	}
	writeJSON(w, http.StatusCreated, newTagResponse(*created))
}

func (h *Handlers) UpdateTag(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, "tags.update", err)
		return
	}

	var req updateTagRequest
	if !h.decodeRequest(w, r, "tags.update", &req) {
		return
	}

	updated, err := h.Catalog.UpdateTag(r.Context(), catalogdomain.UpdateTagInput{
		ID:    id,
		Name:  req.Name,
		Color: req.Color,
		Slug:  req.Slug,
	})
	if err != nil {
		h.writeDomainError(w, r, "tags.update", err, "user_id", user.ID, "tag_id", id)
		return
	}
	writeJSON(w, http.StatusOK, newTagResponse(*updated))
}

func (h *Handlers) DeleteTag(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, "tags.delete", err)
		return
	}

	if err := h.Catalog.DeleteTag(r.Context(), id); err != nil {
		h.writeDomainError(w, r, "tags.delete", err, "user_id", user.ID, "tag_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
