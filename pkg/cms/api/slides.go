package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
)

// ReorderSlideRequest is the body of a reorder call.
type ReorderSlideRequest struct {
	DisplayOrder *int `json:"displayOrder"`
}

// SlideHandler serves the hero slide endpoints.
type SlideHandler struct {
	service cms.Service
}

// NewSlideHandler creates a new slide handler
func NewSlideHandler(service cms.Service) *SlideHandler {
	return &SlideHandler{service: service}
}

// Routes returns the routes for hero slides
func (h *SlideHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateSlide)
	r.Get("/", h.ListSlides)
	r.Get("/active", h.ListActiveSlides)

	r.Get("/{id}", h.GetSlide)
	r.Put("/{id}", h.UpdateSlide)
	r.Delete("/{id}", h.DeleteSlide)
	r.Patch("/{id}/reorder", h.ReorderSlide)
	r.Patch("/{id}/toggle", h.ToggleSlide)

	return r
}

// CreateSlide handles POST /hero-slides
func (h *SlideHandler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	var req cms.CreateSlideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	slide, err := h.service.CreateSlide(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusCreated, slide)
}

// ListSlides handles GET /hero-slides
func (h *SlideHandler) ListSlides(w http.ResponseWriter, r *http.Request) {
	page, limit, err := queryPaging(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var activeOnly bool
	if raw := r.URL.Query().Get("active"); raw != "" {
		activeOnly, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, cms.NewValidationError("active", "active must be true or false"))
			return
		}
	}

	result, err := h.service.ListSlides(r.Context(), cms.ListSlidesRequest{
		ActiveOnly: activeOnly,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writePage(w, r, result, result.Items)
}

// ListActiveSlides handles GET /hero-slides/active
func (h *SlideHandler) ListActiveSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.service.ListActiveSlides(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, CollectionResponse{Success: true, Count: len(slides), Data: slides})
}

// GetSlide handles GET /hero-slides/{id}
func (h *SlideHandler) GetSlide(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slide, err := h.service.GetSlide(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, slide)
}

// UpdateSlide handles PUT /hero-slides/{id}
func (h *SlideHandler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req cms.UpdateSlideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ID = id

	slide, err := h.service.UpdateSlide(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, slide)
}

// DeleteSlide handles DELETE /hero-slides/{id}
func (h *SlideHandler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.DeleteSlide(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeDeleted(w, r, "Hero slide")
}

// ReorderSlide handles PATCH /hero-slides/{id}/reorder
func (h *SlideHandler) ReorderSlide(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req ReorderSlideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.DisplayOrder == nil {
		writeError(w, r, cms.NewValidationError("displayOrder", "Display order is required"))
		return
	}

	slide, err := h.service.ReorderSlide(r.Context(), id, *req.DisplayOrder)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, slide)
}

// ToggleSlide handles PATCH /hero-slides/{id}/toggle
func (h *SlideHandler) ToggleSlide(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slide, err := h.service.ToggleSlide(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, slide)
}
