package cms

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/metrics"
)

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*BlogPost, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := validationErrorFrom(req.Validate()); err != nil {
		return nil, err
	}

	source := req.Slug
	if source == "" {
		source = req.Title
	}
	base := truncateSlug(GenerateSlug(source))
	if base == "" {
		return nil, NewValidationError("slug", "Slug could not be generated from the title")
	}

	now := s.now()
	post := &BlogPost{
		ID:              uuid.New(),
		Title:           req.Title,
		Content:         req.Content,
		Excerpt:         strings.TrimSpace(req.Excerpt),
		FeaturedImage:   strings.TrimSpace(req.FeaturedImage),
		MetaTitle:       strings.TrimSpace(req.MetaTitle),
		MetaDescription: strings.TrimSpace(req.MetaDescription),
		Status:          req.Status,
		CreatedAt:       now,
	}
	preparePost(post, now)

	if err := s.writeWithUniqueSlug(ctx, post, base, s.repository.CreatePost); err != nil {
		return nil, &PostError{PostID: post.ID, Op: "create", Err: err}
	}
	if post.IsPublished() {
		metrics.PostTransitionsTotal.WithLabelValues(string(PostStatusPublished)).Inc()
	}

	return post, nil
}

// writeWithUniqueSlug resolves a free slug from base and writes the post.
// When the store reports that another writer took the slug in between, the
// slug is resolved again, up to slugWriteRetries times.
func (s *service) writeWithUniqueSlug(ctx context.Context, post *BlogPost, base string, write func(context.Context, *BlogPost) error) error {
	for attempt := 0; ; attempt++ {
		slug, err := EnsureUniqueSlug(ctx, base, s.repository.SlugExists, post.ID)
		if err != nil {
			return err
		}
		post.Slug = slug

		err = write(ctx, post)
		if err == nil || !errors.Is(err, ErrSlugConflict) || attempt >= slugWriteRetries {
			return err
		}
		metrics.SlugRetriesTotal.Inc()
		slog.Warn("Slug taken by a concurrent write, resolving again", "slug", slug, "post_id", post.ID, "attempt", attempt+1)
	}
}

func (s *service) GetPost(ctx context.Context, id uuid.UUID) (*BlogPost, error) {
	post, err := s.repository.GetPost(ctx, id)
	if err != nil {
		return nil, &PostError{PostID: id, Op: "get", Err: err}
	}
	return post, nil
}

func (s *service) UpdatePost(ctx context.Context, req UpdatePostRequest) (*BlogPost, error) {
	if req.IsEmpty() {
		return nil, NewValidationError("", "Update must contain at least one field")
	}
	if req.Title != nil {
		*req.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		*req.Slug = strings.TrimSpace(*req.Slug)
	}
	if err := validationErrorFrom(req.Validate()); err != nil {
		return nil, err
	}

	post, err := s.repository.GetPost(ctx, req.ID)
	if err != nil {
		return nil, &PostError{PostID: req.ID, Op: "update", Err: err}
	}
	wasPublished := post.IsPublished()

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = strings.TrimSpace(*req.FeaturedImage)
	}
	if req.MetaTitle != nil {
		post.MetaTitle = strings.TrimSpace(*req.MetaTitle)
	}
	if req.MetaDescription != nil {
		post.MetaDescription = strings.TrimSpace(*req.MetaDescription)
	}
	if req.Status != nil {
		post.Status = *req.Status
	}
	preparePost(post, s.now())

	newBase := ""
	if req.Slug != nil {
		newBase = truncateSlug(GenerateSlug(*req.Slug))
		if newBase == "" {
			return nil, NewValidationError("slug", "Slug must contain at least one letter or digit")
		}
	}

	if newBase != "" && newBase != post.Slug {
		err = s.writeWithUniqueSlug(ctx, post, newBase, s.repository.UpdatePost)
	} else {
		err = s.repository.UpdatePost(ctx, post)
	}
	if err != nil {
		return nil, &PostError{PostID: post.ID, Op: "update", Err: err}
	}
	if wasPublished != post.IsPublished() {
		metrics.PostTransitionsTotal.WithLabelValues(string(post.Status)).Inc()
	}

	return post, nil
}

func (s *service) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.DeletePost(ctx, id); err != nil {
		return &PostError{PostID: id, Op: "delete", Err: err}
	}
	return nil
}

func (s *service) ListPosts(ctx context.Context, req ListPostsRequest) (*Page[*BlogPost], error) {
	if req.Status != "" && req.Status != PostStatusDraft && req.Status != PostStatusPublished {
		return nil, NewValidationError("status", "Status must be either draft or published")
	}
	order, err := ParseSort(req.Sort)
	if err != nil {
		return nil, err
	}

	params := normalizePage(req.Page, req.Limit, s.defaultLimit, s.maxLimit)
	params.Sort = order

	posts, total, err := s.repository.ListPosts(ctx, PostFilter{Status: req.Status}, params)
	if err != nil {
		return nil, err
	}
	return newPage(posts, total, params), nil
}

func (s *service) ListPublishedPosts(ctx context.Context, page, limit int) (*Page[*BlogPost], error) {
	params := normalizePage(page, limit, s.defaultLimit, s.maxLimit)
	params.Sort = sortLatestPublished

	posts, total, err := s.repository.ListPosts(ctx, PostFilter{Status: PostStatusPublished}, params)
	if err != nil {
		return nil, err
	}
	return newPage(posts, total, params), nil
}

func (s *service) SearchPosts(ctx context.Context, req SearchPostsRequest) (*Page[*BlogPost], error) {
	if err := validationErrorFrom(req.Validate()); err != nil {
		return nil, err
	}

	params := normalizePage(req.Page, req.Limit, DefaultLimit, MaxSearchLimit)
	posts, total, err := s.repository.SearchPosts(ctx, strings.TrimSpace(req.Query), params)
	if err != nil {
		return nil, err
	}
	return newPage(posts, total, params), nil
}

func (s *service) PublishPost(ctx context.Context, id uuid.UUID, at *time.Time) (*BlogPost, error) {
	post, err := s.repository.GetPost(ctx, id)
	if err != nil {
		return nil, &PostError{PostID: id, Op: "publish", Err: err}
	}

	publishPost(post, at, s.now())
	if err := s.repository.UpdatePost(ctx, post); err != nil {
		return nil, &PostError{PostID: id, Op: "publish", Err: err}
	}
	metrics.PostTransitionsTotal.WithLabelValues(string(PostStatusPublished)).Inc()

	return post, nil
}

func (s *service) UnpublishPost(ctx context.Context, id uuid.UUID) (*BlogPost, error) {
	post, err := s.repository.GetPost(ctx, id)
	if err != nil {
		return nil, &PostError{PostID: id, Op: "unpublish", Err: err}
	}

	unpublishPost(post, s.now())
	if err := s.repository.UpdatePost(ctx, post); err != nil {
		return nil, &PostError{PostID: id, Op: "unpublish", Err: err}
	}
	metrics.PostTransitionsTotal.WithLabelValues(string(PostStatusDraft)).Inc()

	return post, nil
}

// ViewPublishedPost returns the published post with the given slug and
// counts one view. Drafts are reported as not found.
func (s *service) ViewPublishedPost(ctx context.Context, slug string) (*BlogPost, error) {
	post, err := s.repository.RecordPostView(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	metrics.PostViewsTotal.Inc()
	return post, nil
}
