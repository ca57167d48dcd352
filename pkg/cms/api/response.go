package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
)

// Response is the envelope wrapping every single-entity reply.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ListResponse is the envelope of a paginated listing.
type ListResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	Data    interface{} `json:"data"`
}

// CollectionResponse is an unpaginated listing.
type CollectionResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error"`
	Details []cms.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	writeJSON(w, r, status, Response{Success: true, Data: data})
}

func writeDeleted(w http.ResponseWriter, r *http.Request, entity string) {
	writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Data:    struct{}{},
		Message: entity + " deleted successfully",
	})
}

func writePage[T any](w http.ResponseWriter, r *http.Request, page *cms.Page[T], data interface{}) {
	writeJSON(w, r, http.StatusOK, ListResponse{
		Success: true,
		Count:   len(page.Items),
		Total:   page.Total,
		Page:    page.Page,
		Pages:   page.Pages(),
		Data:    data,
	})
}

func writeErrorMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, ErrorResponse{Success: false, Error: message})
}

// writeError maps a service error onto a status code and envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *cms.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, r, http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   verr.Error(),
			Details: verr.Fields,
		})
		return
	}

	var hostErr *cms.HostError
	switch {
	case errors.Is(err, cms.ErrPostNotFound):
		writeErrorMessage(w, r, http.StatusNotFound, "Blog post not found")
	case errors.Is(err, cms.ErrSlideNotFound):
		writeErrorMessage(w, r, http.StatusNotFound, "Hero slide not found")
	case errors.Is(err, cms.ErrMediaNotFound):
		writeErrorMessage(w, r, http.StatusNotFound, "Media asset not found")
	case errors.Is(err, cms.ErrSlugConflict), errors.Is(err, cms.ErrSlugExhausted):
		writeErrorMessage(w, r, http.StatusConflict, "A blog post with this slug already exists")
	case errors.Is(err, cms.ErrUploadTooLarge):
		writeErrorMessage(w, r, http.StatusRequestEntityTooLarge, "File too large")
	case errors.Is(err, cms.ErrUnsupportedMedia):
		writeErrorMessage(w, r, http.StatusBadRequest, "Invalid file type. Only images (JPEG, PNG, GIF, WebP) and videos (MP4, MOV, WebM) are allowed.")
	case errors.Is(err, cms.ErrInvalidImage):
		writeErrorMessage(w, r, http.StatusBadRequest, "Uploaded image could not be processed")
	case errors.As(err, &hostErr):
		slog.Error("Asset host failure", "host", hostErr.Host, "op", hostErr.Op, "key", hostErr.Key, "error", hostErr.Err)
		writeErrorMessage(w, r, http.StatusBadGateway, "Failed to upload file")
	default:
		slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorMessage(w, r, http.StatusInternalServerError, "Server Error")
	}
}

// decodeJSON reads a required JSON body into v. Unknown fields are ignored.
func decodeJSON(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return cms.NewValidationError("body", "Request body is required")
	}
	if err != nil {
		return cms.NewValidationError("body", "Invalid request body")
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints where the body may be absent.
func decodeOptionalJSON(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return cms.NewValidationError("body", "Invalid request body")
	}
	return nil
}

// parseID reads the {id} URL parameter.
func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, cms.NewValidationError("id", "Invalid ID format")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter. Missing values yield
// zero so the service defaults apply.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, cms.NewValidationError(name, name+" must be a positive integer")
	}
	return n, nil
}

// queryPaging reads the page and limit query parameters.
func queryPaging(r *http.Request) (page, limit int, err error) {
	if page, err = queryInt(r, "page"); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(r, "limit"); err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}
