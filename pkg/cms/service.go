package cms

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service defines the main interface of the CMS
type Service interface {
	// Blog post operations
	CreatePost(ctx context.Context, req CreatePostRequest) (*BlogPost, error)
	GetPost(ctx context.Context, id uuid.UUID) (*BlogPost, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*BlogPost, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	ListPosts(ctx context.Context, req ListPostsRequest) (*Page[*BlogPost], error)
	ListPublishedPosts(ctx context.Context, page, limit int) (*Page[*BlogPost], error)
	SearchPosts(ctx context.Context, req SearchPostsRequest) (*Page[*BlogPost], error)

	// Publication workflow
	PublishPost(ctx context.Context, id uuid.UUID, at *time.Time) (*BlogPost, error)
	UnpublishPost(ctx context.Context, id uuid.UUID) (*BlogPost, error)
	ViewPublishedPost(ctx context.Context, slug string) (*BlogPost, error)

	// Hero slide operations
	CreateSlide(ctx context.Context, req CreateSlideRequest) (*HeroSlide, error)
	GetSlide(ctx context.Context, id uuid.UUID) (*HeroSlide, error)
	UpdateSlide(ctx context.Context, req UpdateSlideRequest) (*HeroSlide, error)
	DeleteSlide(ctx context.Context, id uuid.UUID) error
	ListSlides(ctx context.Context, req ListSlidesRequest) (*Page[*HeroSlide], error)
	ListActiveSlides(ctx context.Context) ([]*HeroSlide, error)
	ReorderSlide(ctx context.Context, id uuid.UUID, displayOrder int) (*HeroSlide, error)
	ToggleSlide(ctx context.Context, id uuid.UUID) (*HeroSlide, error)

	// Media operations
	UploadMedia(ctx context.Context, req UploadMediaRequest) (*MediaAsset, error)
	GetMedia(ctx context.Context, id uuid.UUID) (*MediaAsset, error)
	UpdateMediaAlt(ctx context.Context, id uuid.UUID, alt string) (*MediaAsset, error)
	DeleteMedia(ctx context.Context, id uuid.UUID) error
	ListMedia(ctx context.Context, req ListMediaRequest) (*Page[*MediaAsset], error)
}
