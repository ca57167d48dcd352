package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
)

// multipartOverhead is allowed on top of the file limit for form framing
// and the alt field.
const multipartOverhead = 1 << 20

// UploadMediaResponse is returned after a successful upload.
type UploadMediaResponse struct {
	ID       uuid.UUID    `json:"id"`
	URL      string       `json:"url"`
	PublicID string       `json:"publicId"`
	FileName string       `json:"fileName"`
	FileType cms.FileType `json:"fileType"`
	Width    *int         `json:"width,omitempty"`
	Height   *int         `json:"height,omitempty"`
}

// UpdateMediaRequest is the body of an alt text update.
type UpdateMediaRequest struct {
	Alt string `json:"alt"`
}

// MediaHandler serves the media library endpoints.
type MediaHandler struct {
	service        cms.Service
	maxUploadBytes int64
}

// NewMediaHandler creates a new media handler. maxUploadBytes bounds the
// request body; zero uses cms.DefaultMaxUploadBytes.
func NewMediaHandler(service cms.Service, maxUploadBytes int64) *MediaHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = cms.DefaultMaxUploadBytes
	}
	return &MediaHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// Routes returns the routes for media assets
func (h *MediaHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/upload", h.UploadMedia)
	r.Get("/", h.ListMedia)

	r.Get("/{id}", h.GetMedia)
	r.Put("/{id}", h.UpdateMedia)
	r.Delete("/{id}", h.DeleteMedia)

	return r
}

// UploadMedia handles POST /media/upload with a multipart "file" field and
// an optional "alt" field.
func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, cms.ErrUploadTooLarge)
			return
		}
		writeError(w, r, cms.NewValidationError("file", "No file uploaded"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, cms.NewValidationError("file", "No file uploaded"))
		return
	}
	defer file.Close()

	asset, err := h.service.UploadMedia(r.Context(), cms.UploadMediaRequest{
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Body:     file,
		Alt:      r.FormValue("alt"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusCreated, UploadMediaResponse{
		ID:       asset.ID,
		URL:      asset.FileURL,
		PublicID: asset.PublicID,
		FileName: asset.FileName,
		FileType: asset.FileType,
		Width:    asset.Width,
		Height:   asset.Height,
	})
}

// ListMedia handles GET /media
func (h *MediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	page, limit, err := queryPaging(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.service.ListMedia(r.Context(), cms.ListMediaRequest{
		FileType: cms.FileType(r.URL.Query().Get("type")),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writePage(w, r, result, result.Items)
}

// GetMedia handles GET /media/{id}
func (h *MediaHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	asset, err := h.service.GetMedia(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, asset)
}

// UpdateMedia handles PUT /media/{id}
func (h *MediaHandler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req UpdateMediaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	asset, err := h.service.UpdateMediaAlt(r.Context(), id, req.Alt)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, asset)
}

// DeleteMedia handles DELETE /media/{id}
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.DeleteMedia(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeDeleted(w, r, "Media asset")
}
