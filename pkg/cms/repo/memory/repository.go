package memory

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
)

// Repository implements cms.Repository using in-memory storage
type Repository struct {
	mu     sync.RWMutex
	posts  map[uuid.UUID]*cms.BlogPost
	slugs  map[string]uuid.UUID // slug -> post id
	slides map[uuid.UUID]*cms.HeroSlide
	media  map[uuid.UUID]*cms.MediaAsset
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		posts:  make(map[uuid.UUID]*cms.BlogPost),
		slugs:  make(map[string]uuid.UUID),
		slides: make(map[uuid.UUID]*cms.HeroSlide),
		media:  make(map[uuid.UUID]*cms.MediaAsset),
	}
}

// Blog post operations

func (r *Repository) CreatePost(ctx context.Context, post *cms.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.slugs[post.Slug]; taken {
		return cms.ErrSlugConflict
	}

	postCopy := *post
	r.posts[post.ID] = &postCopy
	r.slugs[post.Slug] = post.ID
	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*cms.BlogPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, cms.ErrPostNotFound
	}
	postCopy := *post
	return &postCopy, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *cms.BlogPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.posts[post.ID]
	if !exists {
		return cms.ErrPostNotFound
	}
	if owner, taken := r.slugs[post.Slug]; taken && owner != post.ID {
		return cms.ErrSlugConflict
	}

	delete(r.slugs, current.Slug)
	postCopy := *post
	// only RecordPostView changes the counter
	postCopy.ViewCount = current.ViewCount
	r.posts[post.ID] = &postCopy
	r.slugs[post.Slug] = post.ID
	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, exists := r.posts[id]
	if !exists {
		return cms.ErrPostNotFound
	}
	delete(r.slugs, post.Slug)
	delete(r.posts, id)
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, filter cms.PostFilter, params cms.ListParams) ([]*cms.BlogPost, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*cms.BlogPost
	for _, post := range r.posts {
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		matched = append(matched, post)
	}

	sortPosts(matched, params.Sort)
	return summaries(paginate(matched, params)), int64(len(matched)), nil
}

// Search weights per field, matching the store text indexes.
const (
	titleWeight   = 10
	excerptWeight = 5
	contentWeight = 1
)

func (r *Repository) SearchPosts(ctx context.Context, query string, params cms.ListParams) ([]*cms.BlogPost, int64, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return []*cms.BlogPost{}, 0, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		post  *cms.BlogPost
		score int
	}
	var hits []scored
	for _, post := range r.posts {
		if post.Status != cms.PostStatusPublished {
			continue
		}
		title, excerpt, content := strings.ToLower(post.Title), strings.ToLower(post.Excerpt), strings.ToLower(post.Content)
		score := 0
		for _, term := range terms {
			score += titleWeight*strings.Count(title, term) +
				excerptWeight*strings.Count(excerpt, term) +
				contentWeight*strings.Count(content, term)
		}
		if score > 0 {
			hits = append(hits, scored{post: post, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		if c := timeOrZero(hits[i].post.PublishedAt).Compare(timeOrZero(hits[j].post.PublishedAt)); c != 0 {
			return c > 0
		}
		return compareID(hits[i].post.ID, hits[j].post.ID) < 0
	})

	posts := make([]*cms.BlogPost, len(hits))
	for i, h := range hits {
		posts[i] = h.post
	}
	return summaries(paginate(posts, params)), int64(len(posts)), nil
}

func (r *Repository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, taken := r.slugs[slug]
	return taken && owner != excludeID, nil
}

func (r *Repository) RecordPostView(ctx context.Context, slug string) (*cms.BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, exists := r.slugs[slug]
	if !exists {
		return nil, cms.ErrPostNotFound
	}
	post := r.posts[id]
	if post.Status != cms.PostStatusPublished {
		return nil, cms.ErrPostNotFound
	}
	post.ViewCount++
	postCopy := *post
	return &postCopy, nil
}

// Hero slide operations

func (r *Repository) CreateSlide(ctx context.Context, slide *cms.HeroSlide) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slideCopy := *slide
	r.slides[slide.ID] = &slideCopy
	return nil
}

func (r *Repository) GetSlide(ctx context.Context, id uuid.UUID) (*cms.HeroSlide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slide, exists := r.slides[id]
	if !exists {
		return nil, cms.ErrSlideNotFound
	}
	slideCopy := *slide
	return &slideCopy, nil
}

func (r *Repository) UpdateSlide(ctx context.Context, slide *cms.HeroSlide) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.slides[slide.ID]; !exists {
		return cms.ErrSlideNotFound
	}
	slideCopy := *slide
	r.slides[slide.ID] = &slideCopy
	return nil
}

func (r *Repository) DeleteSlide(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.slides[id]; !exists {
		return cms.ErrSlideNotFound
	}
	delete(r.slides, id)
	return nil
}

func (r *Repository) ListSlides(ctx context.Context, filter cms.SlideFilter, params cms.ListParams) ([]*cms.HeroSlide, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*cms.HeroSlide
	for _, slide := range r.slides {
		if filter.ActiveOnly && !slide.IsActive {
			continue
		}
		matched = append(matched, slide)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].DisplayOrder != matched[j].DisplayOrder {
			return matched[i].DisplayOrder < matched[j].DisplayOrder
		}
		if c := matched[i].CreatedAt.Compare(matched[j].CreatedAt); c != 0 {
			return c < 0
		}
		return compareID(matched[i].ID, matched[j].ID) < 0
	})

	page := paginate(matched, params)
	result := make([]*cms.HeroSlide, len(page))
	for i, slide := range page {
		slideCopy := *slide
		result[i] = &slideCopy
	}
	return result, int64(len(matched)), nil
}

func (r *Repository) MaxDisplayOrder(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	highest := 0
	for _, slide := range r.slides {
		if slide.DisplayOrder > highest {
			highest = slide.DisplayOrder
		}
	}
	return highest, nil
}

// Media asset operations

func (r *Repository) CreateMedia(ctx context.Context, asset *cms.MediaAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	assetCopy := *asset
	r.media[asset.ID] = &assetCopy
	return nil
}

func (r *Repository) GetMedia(ctx context.Context, id uuid.UUID) (*cms.MediaAsset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, exists := r.media[id]
	if !exists {
		return nil, cms.ErrMediaNotFound
	}
	assetCopy := *asset
	return &assetCopy, nil
}

func (r *Repository) UpdateMedia(ctx context.Context, asset *cms.MediaAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.media[asset.ID]; !exists {
		return cms.ErrMediaNotFound
	}
	assetCopy := *asset
	r.media[asset.ID] = &assetCopy
	return nil
}

func (r *Repository) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.media[id]; !exists {
		return cms.ErrMediaNotFound
	}
	delete(r.media, id)
	return nil
}

func (r *Repository) ListMedia(ctx context.Context, filter cms.MediaFilter, params cms.ListParams) ([]*cms.MediaAsset, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*cms.MediaAsset
	for _, asset := range r.media {
		if filter.FileType != "" && asset.FileType != filter.FileType {
			continue
		}
		matched = append(matched, asset)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if c := matched[i].CreatedAt.Compare(matched[j].CreatedAt); c != 0 {
			return c > 0
		}
		return compareID(matched[i].ID, matched[j].ID) < 0
	})

	page := paginate(matched, params)
	result := make([]*cms.MediaAsset, len(page))
	for i, asset := range page {
		assetCopy := *asset
		result[i] = &assetCopy
	}
	return result, int64(len(matched)), nil
}

// Helpers

func sortPosts(posts []*cms.BlogPost, order cms.SortOrder) {
	if order.Field == "" {
		order = cms.SortOrder{Field: cms.SortCreatedAt, Desc: true}
	}
	compare := func(a, b *cms.BlogPost) int {
		switch order.Field {
		case cms.SortUpdatedAt:
			return a.UpdatedAt.Compare(b.UpdatedAt)
		case cms.SortPublishedAt:
			return timeOrZero(a.PublishedAt).Compare(timeOrZero(b.PublishedAt))
		case cms.SortTitle:
			return strings.Compare(a.Title, b.Title)
		case cms.SortViewCount:
			return compareInt(a.ViewCount, b.ViewCount)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		c := compare(posts[i], posts[j])
		if c == 0 {
			return compareID(posts[i].ID, posts[j].ID) < 0
		}
		if order.Desc {
			return c > 0
		}
		return c < 0
	})
}

// compareID is the final tie-breaker of every listing, so pages never
// overlap when sort keys are equal.
func compareID(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func paginate[T any](items []T, params cms.ListParams) []T {
	if params.Limit <= 0 {
		return items
	}
	start := params.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + params.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// summaries copies posts without their content, as list views omit it.
func summaries(posts []*cms.BlogPost) []*cms.BlogPost {
	result := make([]*cms.BlogPost, len(posts))
	for i, post := range posts {
		postCopy := *post
		postCopy.Content = ""
		result[i] = &postCopy
	}
	return result
}
