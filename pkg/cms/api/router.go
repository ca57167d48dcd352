// Package api exposes the CMS service over HTTP with chi.
//
// Every JSON reply uses the {success, data | error} envelope. Listings add
// count, total, page and pages.
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestTimeout bounds the handling time of a single request.
const RequestTimeout = 60 * time.Second

// RouterConfig configures the HTTP surface around a cms.Service.
type RouterConfig struct {
	// AllowedOrigins are the CORS origins besides *.vercel.app
	AllowedOrigins []string

	Feed           FeedConfig
	MaxUploadBytes int64

	// UploadsDir, when set, is served read-only under UploadsPrefix. Used
	// with the filesystem asset host.
	UploadsDir    string
	UploadsPrefix string

	Logger *slog.Logger
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// NewRouter builds the complete HTTP handler of the CMS.
func NewRouter(service cms.Service, config RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(config.Logger))
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(CORSMiddleware(config.AllowedOrigins))
	r.Use(middleware.Timeout(RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, r, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", handleHealth)
	r.Get("/api/health", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	feeds := NewFeedHandler(service, config.Feed)
	r.Get("/feed.xml", feeds.RSS)
	r.Get("/sitemap.xml", feeds.Sitemap)

	if config.UploadsDir != "" {
		prefix := "/" + strings.Trim(config.UploadsPrefix, "/")
		if prefix == "/" {
			prefix = "/uploads"
		}
		fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(config.UploadsDir)))
		r.Get(prefix+"/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/blogs", NewPostHandler(service).Routes())
		r.Mount("/hero-slides", NewSlideHandler(service).Routes())
		r.Mount("/media", NewMediaHandler(service, config.MaxUploadBytes).Routes())
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{
		Success:   true,
		Message:   "Antigravity CMS API is running",
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}
