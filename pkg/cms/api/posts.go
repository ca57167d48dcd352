package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
)

// PostResponse is a blog post with its derived reading time.
type PostResponse struct {
	*cms.BlogPost
	ReadingTime int `json:"readingTime"`
}

func newPostResponse(p *cms.BlogPost) PostResponse {
	return PostResponse{BlogPost: p, ReadingTime: cms.ReadingTime(p.Content)}
}

func newPostResponses(posts []*cms.BlogPost) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResponse(p))
	}
	return out
}

// PublishPostRequest is the optional body of a publish call.
type PublishPostRequest struct {
	PublishedAt *time.Time `json:"publishedAt"`
}

// PostHandler serves the blog post endpoints.
type PostHandler struct {
	service cms.Service
}

// NewPostHandler creates a new post handler
func NewPostHandler(service cms.Service) *PostHandler {
	return &PostHandler{service: service}
}

// Routes returns the routes for blog posts
func (h *PostHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreatePost)
	r.Get("/", h.ListPosts)
	r.Get("/published", h.ListPublishedPosts)
	r.Get("/slug/{slug}", h.GetPostBySlug)
	r.Post("/search", h.SearchPosts)

	r.Get("/{id}", h.GetPost)
	r.Put("/{id}", h.UpdatePost)
	r.Delete("/{id}", h.DeletePost)
	r.Patch("/{id}/publish", h.PublishPost)
	r.Patch("/{id}/unpublish", h.UnpublishPost)

	return r
}

// CreatePost handles POST /blogs
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req cms.CreatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusCreated, newPostResponse(post))
}

// ListPosts handles GET /blogs
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, limit, err := queryPaging(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	result, err := h.service.ListPosts(r.Context(), cms.ListPostsRequest{
		Status: cms.PostStatus(q.Get("status")),
		Page:   page,
		Limit:  limit,
		Sort:   q.Get("sort"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writePage(w, r, result, newPostResponses(result.Items))
}

// ListPublishedPosts handles GET /blogs/published
func (h *PostHandler) ListPublishedPosts(w http.ResponseWriter, r *http.Request) {
	page, limit, err := queryPaging(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.service.ListPublishedPosts(r.Context(), page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writePage(w, r, result, newPostResponses(result.Items))
}

// GetPostBySlug handles GET /blogs/slug/{slug}. Each call counts as a view.
func (h *PostHandler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.ViewPublishedPost(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, newPostResponse(post))
}

// SearchPosts handles POST /blogs/search
func (h *PostHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	var req cms.SearchPostsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.service.SearchPosts(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writePage(w, r, result, newPostResponses(result.Items))
}

// GetPost handles GET /blogs/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, newPostResponse(post))
}

// UpdatePost handles PUT /blogs/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req cms.UpdatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ID = id

	post, err := h.service.UpdatePost(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, newPostResponse(post))
}

// DeletePost handles DELETE /blogs/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeDeleted(w, r, "Blog post")
}

// PublishPost handles PATCH /blogs/{id}/publish. The body is optional.
func (h *PostHandler) PublishPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req PublishPostRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.service.PublishPost(r.Context(), id, req.PublishedAt)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, newPostResponse(post))
}

// UnpublishPost handles PATCH /blogs/{id}/unpublish
func (h *PostHandler) UnpublishPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	post, err := h.service.UnpublishPost(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, http.StatusOK, newPostResponse(post))
}
