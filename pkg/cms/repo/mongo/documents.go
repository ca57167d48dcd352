package mongo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
)

// Documents keep ids as canonical uuid strings in _id.

type postDocument struct {
	ID              string     `bson:"_id"`
	Title           string     `bson:"title"`
	Slug            string     `bson:"slug"`
	Content         string     `bson:"content"`
	Excerpt         string     `bson:"excerpt"`
	FeaturedImage   string     `bson:"featured_image"`
	MetaTitle       string     `bson:"meta_title"`
	MetaDescription string     `bson:"meta_description"`
	Status          string     `bson:"status"`
	PublishedAt     *time.Time `bson:"published_at"`
	ViewCount       int64      `bson:"view_count"`
	CreatedAt       time.Time  `bson:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at"`
}

type slideDocument struct {
	ID           string    `bson:"_id"`
	Title        string    `bson:"title"`
	Subtitle     string    `bson:"subtitle"`
	Description  string    `bson:"description"`
	MediaURL     string    `bson:"media_url"`
	MediaType    string    `bson:"media_type"`
	CTAText      string    `bson:"cta_text"`
	CTALink      string    `bson:"cta_link"`
	DisplayOrder int       `bson:"display_order"`
	IsActive     bool      `bson:"is_active"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

type mediaDocument struct {
	ID        string    `bson:"_id"`
	FileName  string    `bson:"file_name"`
	FileURL   string    `bson:"file_url"`
	PublicID  string    `bson:"public_id"`
	FileType  string    `bson:"file_type"`
	MimeType  string    `bson:"mime_type"`
	FileSize  int64     `bson:"file_size"`
	Width     *int      `bson:"width,omitempty"`
	Height    *int      `bson:"height,omitempty"`
	Alt       string    `bson:"alt"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toPostDocument(p *cms.BlogPost) postDocument {
	return postDocument{
		ID:              p.ID.String(),
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		Excerpt:         p.Excerpt,
		FeaturedImage:   p.FeaturedImage,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		Status:          string(p.Status),
		PublishedAt:     utcPtr(p.PublishedAt),
		ViewCount:       p.ViewCount,
		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       p.UpdatedAt.UTC(),
	}
}

func (d postDocument) toPost() (*cms.BlogPost, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid post id %q: %w", d.ID, err)
	}
	return &cms.BlogPost{
		ID:              id,
		Title:           d.Title,
		Slug:            d.Slug,
		Content:         d.Content,
		Excerpt:         d.Excerpt,
		FeaturedImage:   d.FeaturedImage,
		MetaTitle:       d.MetaTitle,
		MetaDescription: d.MetaDescription,
		Status:          cms.PostStatus(d.Status),
		PublishedAt:     utcPtr(d.PublishedAt),
		ViewCount:       d.ViewCount,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}, nil
}

func toSlideDocument(s *cms.HeroSlide) slideDocument {
	return slideDocument{
		ID:           s.ID.String(),
		Title:        s.Title,
		Subtitle:     s.Subtitle,
		Description:  s.Description,
		MediaURL:     s.MediaURL,
		MediaType:    string(s.MediaType),
		CTAText:      s.CTAText,
		CTALink:      s.CTALink,
		DisplayOrder: s.DisplayOrder,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt.UTC(),
		UpdatedAt:    s.UpdatedAt.UTC(),
	}
}

func (d slideDocument) toSlide() (*cms.HeroSlide, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid slide id %q: %w", d.ID, err)
	}
	return &cms.HeroSlide{
		ID:           id,
		Title:        d.Title,
		Subtitle:     d.Subtitle,
		Description:  d.Description,
		MediaURL:     d.MediaURL,
		MediaType:    cms.SlideMediaType(d.MediaType),
		CTAText:      d.CTAText,
		CTALink:      d.CTALink,
		DisplayOrder: d.DisplayOrder,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}, nil
}

func toMediaDocument(a *cms.MediaAsset) mediaDocument {
	return mediaDocument{
		ID:        a.ID.String(),
		FileName:  a.FileName,
		FileURL:   a.FileURL,
		PublicID:  a.PublicID,
		FileType:  string(a.FileType),
		MimeType:  a.MimeType,
		FileSize:  a.FileSize,
		Width:     a.Width,
		Height:    a.Height,
		Alt:       a.Alt,
		CreatedAt: a.CreatedAt.UTC(),
		UpdatedAt: a.UpdatedAt.UTC(),
	}
}

func (d mediaDocument) toMedia() (*cms.MediaAsset, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid media id %q: %w", d.ID, err)
	}
	return &cms.MediaAsset{
		ID:        id,
		FileName:  d.FileName,
		FileURL:   d.FileURL,
		PublicID:  d.PublicID,
		FileType:  cms.FileType(d.FileType),
		MimeType:  d.MimeType,
		FileSize:  d.FileSize,
		Width:     d.Width,
		Height:    d.Height,
		Alt:       d.Alt,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
