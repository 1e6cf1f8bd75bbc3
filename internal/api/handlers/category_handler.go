package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sfares/newsroom-be/internal/models"
	"github.com/sfares/newsroom-be/internal/services"
)

// CategoryHandler handles HTTP requests for article categories.
type CategoryHandler struct {
	service services.CategoryServiceProvider
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service services.CategoryServiceProvider) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CategoryPayload defines the writable fields of a category.
type CategoryPayload struct {
	Name        string `json:"name" validate:"required,max=100"`
	NameEn      string `json:"nameEn" validate:"omitempty,max=100"`
	Slug        string `json:"slug" validate:"required,max=100"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Order       int    `json:"order"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (p *CategoryPayload) toModel() models.Category {
	return models.Category{
		Name:        p.Name,
		NameEn:      p.NameEn,
		Slug:        p.Slug,
		Icon:        p.Icon,
		Description: p.Description,
		Color:       p.Color,
		Order:       p.Order,
		Status:      p.Status,
	}
}

// List handles listing categories, optionally filtered by status.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.URL.Query().Get("status"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "categories retrieved", categories)
}

// Get handles retrieving a category by slug.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategoryBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "category retrieved", category)
}

// Create handles adding a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CategoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	category, err := h.service.CreateCategory(payload.toModel())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "category created", category)
}

// Update handles partial updates to a category.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload CategoryPayload
	if err := decodeBody(r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	category, err := h.service.UpdateCategory(chi.URLParam(r, "slug"), payload.toModel())
	if err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "category updated", category)
}

// Delete handles removing a category.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(chi.URLParam(r, "slug")); err != nil {
		RespondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "category deleted", nil)
}
