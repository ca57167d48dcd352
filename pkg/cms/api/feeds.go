package api

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
)

const (
	feedItems       = 20
	sitemapPageSize = 100
	sitemapXMLNS    = "http://www.sitemaps.org/schemas/sitemap/0.9"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// FeedConfig describes the public site the feeds link to.
type FeedConfig struct {
	SiteURL     string
	Title       string
	Description string
}

// FeedHandler renders the RSS feed and sitemap of published posts.
type FeedHandler struct {
	service cms.Service
	config  FeedConfig
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(service cms.Service, config FeedConfig) *FeedHandler {
	if config.Title == "" {
		config.Title = "Antigravity Blog"
	}
	return &FeedHandler{service: service, config: config}
}

// RSS handles GET /feed.xml with the latest published posts.
func (h *FeedHandler) RSS(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListPublishedPosts(r.Context(), 1, feedItems)
	if err != nil {
		writeError(w, r, err)
		return
	}

	base := h.config.SiteURL
	items := make([]rssItem, 0, len(page.Items))
	for _, p := range page.Items {
		postURL := buildURL(base, "blog", p.Slug)
		item := rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			GUID:        postURL,
		}
		if p.PublishedAt != nil {
			item.PubDate = p.PublishedAt.Format(time.RFC1123Z)
		}
		items = append(items, item)
	}

	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       h.config.Title,
			Link:        base,
			Description: h.config.Description,
			Items:       items,
		},
	}
	writeXML(w, "application/rss+xml; charset=utf-8", feed)
}

// Sitemap handles GET /sitemap.xml listing the blog index and every
// published post.
func (h *FeedHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	base := h.config.SiteURL
	urls := []sitemapURL{
		{Loc: buildURL(base)},
		{Loc: buildURL(base, "blog")},
	}

	for n := 1; ; n++ {
		page, err := h.service.ListPublishedPosts(r.Context(), n, sitemapPageSize)
		if err != nil {
			writeError(w, r, err)
			return
		}
		for _, p := range page.Items {
			urls = append(urls, sitemapURL{
				Loc:     buildURL(base, "blog", p.Slug),
				LastMod: p.UpdatedAt.Format("2006-01-02"),
			})
		}
		if n >= page.Pages() {
			break
		}
	}

	writeXML(w, "application/xml; charset=utf-8", sitemapURLSet{XMLNS: sitemapXMLNS, URLs: urls})
}

func writeXML(w http.ResponseWriter, contentType string, v interface{}) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode XML", "error", err)
	}
}

// buildURL joins path segments onto base and keeps a trailing slash.
func buildURL(base string, segments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(segments...))
	if len(segments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}
