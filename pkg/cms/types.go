package cms

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// PostStatus is the lifecycle state of a blog post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// SlideMediaType is the kind of media shown on a hero slide.
type SlideMediaType string

const (
	SlideMediaImage SlideMediaType = "image"
	SlideMediaVideo SlideMediaType = "video"
)

// FileType classifies an uploaded media asset.
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeVideo    FileType = "video"
	FileTypeDocument FileType = "document"
)

// Field limits shared by validation and meta derivation.
const (
	MaxPostTitleLen       = 300
	MaxSlugLen            = 300
	MaxExcerptLen         = 500
	MaxMetaTitleLen       = 70
	MaxMetaDescriptionLen = 160
	MaxSlideTitleLen      = 255
	MaxCTATextLen         = 100
)

// BlogPost is an article on the marketing site.
type BlogPost struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content,omitempty"`
	Excerpt         string     `json:"excerpt"`
	FeaturedImage   string     `json:"featuredImage"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	Status          PostStatus `json:"status"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
	ViewCount       int64      `json:"viewCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// IsPublished reports whether the post is publicly visible.
func (p *BlogPost) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// HeroSlide is one entry of the landing page slider.
type HeroSlide struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Subtitle     string         `json:"subtitle"`
	Description  string         `json:"description"`
	MediaURL     string         `json:"mediaUrl"`
	MediaType    SlideMediaType `json:"mediaType"`
	CTAText      string         `json:"ctaText"`
	CTALink      string         `json:"ctaLink"`
	DisplayOrder int            `json:"displayOrder"`
	IsActive     bool           `json:"isActive"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// MediaAsset records a binary stored on an asset host.
type MediaAsset struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"fileName"`
	FileURL   string    `json:"fileUrl"`
	PublicID  string    `json:"publicId"`
	FileType  FileType  `json:"fileType"`
	MimeType  string    `json:"mimeType"`
	FileSize  int64     `json:"fileSize"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	Alt       string    `json:"alt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostFilter restricts post listings. The zero value matches all posts.
type PostFilter struct {
	Status PostStatus
}

// SlideFilter restricts slide listings.
type SlideFilter struct {
	ActiveOnly bool
}

// MediaFilter restricts media listings.
type MediaFilter struct {
	FileType FileType
}

// ListParams carries normalised pagination and ordering. A Limit of zero
// means no limit.
type ListParams struct {
	Page  int
	Limit int
	Sort  SortOrder
}

// Offset returns the number of records to skip.
func (p ListParams) Offset() int {
	if p.Limit <= 0 || p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Page is one page of a list query.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// Pages returns ceil(Total/Limit).
func (p *Page[T]) Pages() int {
	if p.Limit <= 0 {
		if p.Total > 0 {
			return 1
		}
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

// CreatePostRequest holds the fields accepted when creating a post.
type CreatePostRequest struct {
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	Excerpt         string     `json:"excerpt"`
	FeaturedImage   string     `json:"featuredImage"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	Status          PostStatus `json:"status"`
}

// UpdatePostRequest is a partial update; nil fields are left unchanged.
type UpdatePostRequest struct {
	ID              uuid.UUID   `json:"-"`
	Title           *string     `json:"title"`
	Slug            *string     `json:"slug"`
	Content         *string     `json:"content"`
	Excerpt         *string     `json:"excerpt"`
	FeaturedImage   *string     `json:"featuredImage"`
	MetaTitle       *string     `json:"metaTitle"`
	MetaDescription *string     `json:"metaDescription"`
	Status          *PostStatus `json:"status"`
}

// IsEmpty reports whether the update carries no fields.
func (r UpdatePostRequest) IsEmpty() bool {
	return r.Title == nil && r.Slug == nil && r.Content == nil && r.Excerpt == nil &&
		r.FeaturedImage == nil && r.MetaTitle == nil && r.MetaDescription == nil && r.Status == nil
}

// ListPostsRequest lists posts in any state.
type ListPostsRequest struct {
	Status PostStatus
	Page   int
	Limit  int
	Sort   string
}

// SearchPostsRequest is a full-text query over published posts.
type SearchPostsRequest struct {
	Query string `json:"query"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// CreateSlideRequest holds the fields accepted when creating a hero slide.
// A zero DisplayOrder is replaced by the next free position.
type CreateSlideRequest struct {
	Title        string         `json:"title"`
	Subtitle     string         `json:"subtitle"`
	Description  string         `json:"description"`
	MediaURL     string         `json:"mediaUrl"`
	MediaType    SlideMediaType `json:"mediaType"`
	CTAText      string         `json:"ctaText"`
	CTALink      string         `json:"ctaLink"`
	DisplayOrder int            `json:"displayOrder"`
	IsActive     *bool          `json:"isActive"`
}

// UpdateSlideRequest is a partial update; nil fields are left unchanged.
type UpdateSlideRequest struct {
	ID           uuid.UUID       `json:"-"`
	Title        *string         `json:"title"`
	Subtitle     *string         `json:"subtitle"`
	Description  *string         `json:"description"`
	MediaURL     *string         `json:"mediaUrl"`
	MediaType    *SlideMediaType `json:"mediaType"`
	CTAText      *string         `json:"ctaText"`
	CTALink      *string         `json:"ctaLink"`
	DisplayOrder *int            `json:"displayOrder"`
	IsActive     *bool           `json:"isActive"`
}

// IsEmpty reports whether the update carries no fields.
func (r UpdateSlideRequest) IsEmpty() bool {
	return r.Title == nil && r.Subtitle == nil && r.Description == nil && r.MediaURL == nil &&
		r.MediaType == nil && r.CTAText == nil && r.CTALink == nil && r.DisplayOrder == nil && r.IsActive == nil
}

// ListSlidesRequest lists hero slides ordered by display order.
type ListSlidesRequest struct {
	ActiveOnly bool
	Page       int
	Limit      int
}

// UploadMediaRequest is one file received for ingest.
type UploadMediaRequest struct {
	FileName string
	MimeType string
	Size     int64
	Body     io.Reader
	Alt      string
}

// ListMediaRequest lists media assets, newest first.
type ListMediaRequest struct {
	FileType FileType
	Page     int
	Limit    int
}

// UploadParams describes a binary handed to an asset host.
type UploadParams struct {
	ObjectKey    string
	MimeType     string
	ResourceType FileType
	Size         int64
}

// HostedAsset is what an asset host reports after a successful upload.
type HostedAsset struct {
	URL      string
	PublicID string
	Bytes    int64
}
