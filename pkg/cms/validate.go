package cms

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	postStatusRule = validation.In(PostStatusDraft, PostStatusPublished).Error("Status must be either draft or published")
	mediaTypeRule  = validation.In(SlideMediaImage, SlideMediaVideo).Error("Media type must be either image or video")
)

// Validate checks the create request against the post field limits.
func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Title is required"),
			validation.RuneLength(0, MaxPostTitleLen).Error("Title cannot exceed 300 characters")),
		validation.Field(&r.Slug, validation.RuneLength(0, MaxSlugLen).Error("Slug cannot exceed 300 characters")),
		validation.Field(&r.Content, validation.Required.Error("Content is required")),
		validation.Field(&r.Excerpt, validation.RuneLength(0, MaxExcerptLen).Error("Excerpt cannot exceed 500 characters")),
		validation.Field(&r.FeaturedImage, is.URL.Error("Featured image must be a valid URL")),
		validation.Field(&r.MetaTitle, validation.RuneLength(0, MaxMetaTitleLen).Error("Meta title cannot exceed 70 characters")),
		validation.Field(&r.MetaDescription, validation.RuneLength(0, MaxMetaDescriptionLen).Error("Meta description cannot exceed 160 characters")),
		validation.Field(&r.Status, postStatusRule),
	)
}

// Validate checks the fields present in a partial post update.
func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("Title is required"),
			validation.RuneLength(0, MaxPostTitleLen).Error("Title cannot exceed 300 characters")),
		validation.Field(&r.Slug,
			validation.NilOrNotEmpty.Error("Slug cannot be empty"),
			validation.RuneLength(0, MaxSlugLen).Error("Slug cannot exceed 300 characters")),
		validation.Field(&r.Content, validation.NilOrNotEmpty.Error("Content is required")),
		validation.Field(&r.Excerpt, validation.RuneLength(0, MaxExcerptLen).Error("Excerpt cannot exceed 500 characters")),
		validation.Field(&r.FeaturedImage, is.URL.Error("Featured image must be a valid URL")),
		validation.Field(&r.MetaTitle, validation.RuneLength(0, MaxMetaTitleLen).Error("Meta title cannot exceed 70 characters")),
		validation.Field(&r.MetaDescription, validation.RuneLength(0, MaxMetaDescriptionLen).Error("Meta description cannot exceed 160 characters")),
		validation.Field(&r.Status, postStatusRule),
	)
}

// Validate checks the query and paging bounds of a search.
func (r SearchPostsRequest) Validate() error {
	q := strings.TrimSpace(r.Query)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query,
			validation.By(func(interface{}) error {
				switch n := len([]rune(q)); {
				case n < 2:
					return validation.NewError("validation_query_too_short", "Search query must be at least 2 characters")
				case n > 100:
					return validation.NewError("validation_query_too_long", "Search query cannot exceed 100 characters")
				}
				return nil
			})),
		validation.Field(&r.Page, validation.Min(1).Error("Page must be at least 1")),
		validation.Field(&r.Limit,
			validation.Min(1).Error("Limit must be at least 1"),
			validation.Max(MaxSearchLimit).Error("Limit cannot exceed 50")),
	)
}

// Validate checks the create request against the slide field limits.
func (r CreateSlideRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("Title is required"),
			validation.RuneLength(0, MaxSlideTitleLen).Error("Title cannot exceed 255 characters")),
		validation.Field(&r.MediaType, mediaTypeRule),
		validation.Field(&r.CTAText, validation.RuneLength(0, MaxCTATextLen).Error("CTA text cannot exceed 100 characters")),
		validation.Field(&r.DisplayOrder, validation.Min(0).Error("Display order must be at least 0")),
	)
}

// Validate checks the fields present in a partial slide update.
func (r UpdateSlideRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("Title is required"),
			validation.RuneLength(0, MaxSlideTitleLen).Error("Title cannot exceed 255 characters")),
		validation.Field(&r.MediaType, mediaTypeRule),
		validation.Field(&r.CTAText, validation.RuneLength(0, MaxCTATextLen).Error("CTA text cannot exceed 100 characters")),
		validation.Field(&r.DisplayOrder, validation.Min(0).Error("Display order must be at least 0")),
	)
}
