package cms

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/metrics"
)

func (s *service) CreateSlide(ctx context.Context, req CreateSlideRequest) (*HeroSlide, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validationErrorFrom(req.Validate()); err != nil {
		return nil, err
	}

	now := s.now()
	slide := &HeroSlide{
		ID:           uuid.New(),
		Title:        req.Title,
		Subtitle:     strings.TrimSpace(req.Subtitle),
		Description:  strings.TrimSpace(req.Description),
		MediaURL:     strings.TrimSpace(req.MediaURL),
		MediaType:    req.MediaType,
		CTAText:      strings.TrimSpace(req.CTAText),
		CTALink:      strings.TrimSpace(req.CTALink),
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if slide.MediaType == "" {
		slide.MediaType = SlideMediaImage
	}
	if req.IsActive != nil {
		slide.IsActive = *req.IsActive
	}

	// Zero means "append": place the slide after the current last one.
	if slide.DisplayOrder == 0 {
		last, err := s.repository.MaxDisplayOrder(ctx)
		if err != nil {
			return nil, &SlideError{SlideID: slide.ID, Op: "create", Err: err}
		}
		slide.DisplayOrder = last + 1
	}

	if err := s.repository.CreateSlide(ctx, slide); err != nil {
		return nil, &SlideError{SlideID: slide.ID, Op: "create", Err: err}
	}
	s.invalidateSlides(ctx)

	return slide, nil
}

func (s *service) GetSlide(ctx context.Context, id uuid.UUID) (*HeroSlide, error) {
	slide, err := s.repository.GetSlide(ctx, id)
	if err != nil {
		return nil, &SlideError{SlideID: id, Op: "get", Err: err}
	}
	return slide, nil
}

func (s *service) UpdateSlide(ctx context.Context, req UpdateSlideRequest) (*HeroSlide, error) {
	if req.IsEmpty() {
		return nil, NewValidationError("", "Update must contain at least one field")
	}
	if req.Title != nil {
		*req.Title = strings.TrimSpace(*req.Title)
	}
	if err := validationErrorFrom(req.Validate()); err != nil {
		return nil, err
	}

	slide, err := s.repository.GetSlide(ctx, req.ID)
	if err != nil {
		return nil, &SlideError{SlideID: req.ID, Op: "update", Err: err}
	}

	if req.Title != nil {
		slide.Title = *req.Title
	}
	if req.Subtitle != nil {
		slide.Subtitle = strings.TrimSpace(*req.Subtitle)
	}
	if req.Description != nil {
		slide.Description = strings.TrimSpace(*req.Description)
	}
	if req.MediaURL != nil {
		slide.MediaURL = strings.TrimSpace(*req.MediaURL)
	}
	if req.MediaType != nil {
		slide.MediaType = *req.MediaType
	}
	if req.CTAText != nil {
		slide.CTAText = strings.TrimSpace(*req.CTAText)
	}
	if req.CTALink != nil {
		slide.CTALink = strings.TrimSpace(*req.CTALink)
	}
	if req.DisplayOrder != nil {
		slide.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		slide.IsActive = *req.IsActive
	}

	return s.saveSlide(ctx, slide, "update")
}

func (s *service) DeleteSlide(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.DeleteSlide(ctx, id); err != nil {
		return &SlideError{SlideID: id, Op: "delete", Err: err}
	}
	s.invalidateSlides(ctx)
	return nil
}

func (s *service) ListSlides(ctx context.Context, req ListSlidesRequest) (*Page[*HeroSlide], error) {
	params := normalizePage(req.Page, req.Limit, s.defaultLimit, s.maxLimit)
	slides, total, err := s.repository.ListSlides(ctx, SlideFilter{ActiveOnly: req.ActiveOnly}, params)
	if err != nil {
		return nil, err
	}
	return newPage(slides, total, params), nil
}

// ListActiveSlides returns every active slide in display order. The list is
// served from the slide cache when one is configured.
func (s *service) ListActiveSlides(ctx context.Context) ([]*HeroSlide, error) {
	if s.slideCache != nil {
		slides, ok, err := s.slideCache.GetActiveSlides(ctx)
		switch {
		case err != nil:
			metrics.SlideCacheLookups.WithLabelValues("error").Inc()
			slog.Warn("Active slide cache lookup failed", "error", err)
		case ok:
			metrics.SlideCacheLookups.WithLabelValues("hit").Inc()
			return slides, nil
		default:
			metrics.SlideCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	gen := s.slideGen.Load()
	slides, _, err := s.repository.ListSlides(ctx, SlideFilter{ActiveOnly: true}, ListParams{})
	if err != nil {
		return nil, err
	}
	if slides == nil {
		slides = []*HeroSlide{}
	}

	if s.slideCache != nil {
		if err := s.slideCache.SetActiveSlides(ctx, slides); err != nil {
			slog.Warn("Failed to cache active slides", "error", err)
		}
		// A slide write landed while we were reading; drop what we just stored.
		if s.slideGen.Load() != gen {
			s.invalidateSlides(ctx)
		}
	}
	return slides, nil
}

func (s *service) ReorderSlide(ctx context.Context, id uuid.UUID, displayOrder int) (*HeroSlide, error) {
	if displayOrder < 0 {
		return nil, NewValidationError("displayOrder", "Display order must be at least 0")
	}

	slide, err := s.repository.GetSlide(ctx, id)
	if err != nil {
		return nil, &SlideError{SlideID: id, Op: "reorder", Err: err}
	}
	slide.DisplayOrder = displayOrder

	return s.saveSlide(ctx, slide, "reorder")
}

func (s *service) ToggleSlide(ctx context.Context, id uuid.UUID) (*HeroSlide, error) {
	slide, err := s.repository.GetSlide(ctx, id)
	if err != nil {
		return nil, &SlideError{SlideID: id, Op: "toggle", Err: err}
	}
	slide.IsActive = !slide.IsActive

	return s.saveSlide(ctx, slide, "toggle")
}

func (s *service) saveSlide(ctx context.Context, slide *HeroSlide, op string) (*HeroSlide, error) {
	slide.UpdatedAt = s.now()
	if err := s.repository.UpdateSlide(ctx, slide); err != nil {
		return nil, &SlideError{SlideID: slide.ID, Op: op, Err: err}
	}
	s.invalidateSlides(ctx)
	return slide, nil
}

func (s *service) invalidateSlides(ctx context.Context) {
	if s.slideCache == nil {
		return
	}
	s.slideGen.Add(1)
	if err := s.slideCache.InvalidateActiveSlides(ctx); err != nil {
		slog.Warn("Failed to invalidate active slide cache", "error", err)
	}
}
