package cms

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Repository defines the persistence of posts, slides and media assets.
//
// List methods return the requested page together with the total number of
// matching records. Post listings leave Content empty.
type Repository interface {
	// Blog post operations
	CreatePost(ctx context.Context, post *BlogPost) error
	GetPost(ctx context.Context, id uuid.UUID) (*BlogPost, error)
	UpdatePost(ctx context.Context, post *BlogPost) error
	DeletePost(ctx context.Context, id uuid.UUID) error
	ListPosts(ctx context.Context, filter PostFilter, params ListParams) ([]*BlogPost, int64, error)

	// SearchPosts ranks published posts by weighted relevance
	// (title 10, excerpt 5, content 1).
	SearchPosts(ctx context.Context, query string, params ListParams) ([]*BlogPost, int64, error)

	// SlugExists reports whether a post other than excludeID uses slug.
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// RecordPostView atomically increments the view count of the published
	// post with the given slug and returns it. Drafts yield ErrPostNotFound.
	RecordPostView(ctx context.Context, slug string) (*BlogPost, error)

	// Hero slide operations
	CreateSlide(ctx context.Context, slide *HeroSlide) error
	GetSlide(ctx context.Context, id uuid.UUID) (*HeroSlide, error)
	UpdateSlide(ctx context.Context, slide *HeroSlide) error
	DeleteSlide(ctx context.Context, id uuid.UUID) error
	ListSlides(ctx context.Context, filter SlideFilter, params ListParams) ([]*HeroSlide, int64, error)
	// MaxDisplayOrder returns the highest display order, or 0 with no slides.
	MaxDisplayOrder(ctx context.Context) (int, error)

	// Media asset operations
	CreateMedia(ctx context.Context, asset *MediaAsset) error
	GetMedia(ctx context.Context, id uuid.UUID) (*MediaAsset, error)
	UpdateMedia(ctx context.Context, asset *MediaAsset) error
	DeleteMedia(ctx context.Context, id uuid.UUID) error
	ListMedia(ctx context.Context, filter MediaFilter, params ListParams) ([]*MediaAsset, int64, error)
}

// AssetHost stores uploaded binaries and serves them from a public URL.
type AssetHost interface {
	// Name identifies the host in logs and errors
	Name() string

	// Upload stores the reader under params.ObjectKey
	Upload(ctx context.Context, reader io.Reader, params UploadParams) (*HostedAsset, error)

	// Delete removes the binary referenced by publicID
	Delete(ctx context.Context, publicID string) error
}

// SlideCache holds the active slide list served to the public site.
type SlideCache interface {
	// GetActiveSlides returns the cached list and whether it was present
	GetActiveSlides(ctx context.Context) ([]*HeroSlide, bool, error)
	SetActiveSlides(ctx context.Context, slides []*HeroSlide) error
	InvalidateActiveSlides(ctx context.Context) error
}
