package cms_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/cache"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/repo/memory"
	memorystorage "github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T, opts ...cms.Option) (cms.Service, *memory.Repository, *memorystorage.Backend) {
	t.Helper()
	repo := memory.New()
	host := memorystorage.New()

	options := append([]cms.Option{
		cms.WithRepository(repo),
		cms.WithAssetHost(host),
	}, opts...)
	svc, err := cms.New(options...)
	require.NoError(t, err)
	return svc, repo, host
}

func TestServiceCreation(t *testing.T) {
	_, err := cms.New()
	assert.Error(t, err)

	svc, err := cms.New(cms.WithRepository(memory.New()))
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func createPost(t *testing.T, svc cms.Service, title string) *cms.BlogPost {
	t.Helper()
	post, err := svc.CreatePost(context.Background(), cms.CreatePostRequest{
		Title:   title,
		Content: "<p>Some content about " + title + "</p>",
		Excerpt: "Excerpt for " + title,
	})
	require.NoError(t, err)
	return post
}

func TestService_CreatePost(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)

	t.Run("derives slug and meta", func(t *testing.T) {
		post := createPost(t, svc, "Hello World")
		assert.Equal(t, "hello-world", post.Slug)
		assert.Equal(t, cms.PostStatusDraft, post.Status)
		assert.Equal(t, "Hello World", post.MetaTitle)
		assert.Equal(t, "Excerpt for Hello World", post.MetaDescription)
		assert.Nil(t, post.PublishedAt)
		assert.Zero(t, post.ViewCount)
	})

	t.Run("duplicate titles get suffixes", func(t *testing.T) {
		second := createPost(t, svc, "Hello World")
		third := createPost(t, svc, "Hello, World!")
		assert.Equal(t, "hello-world-1", second.Slug)
		assert.Equal(t, "hello-world-2", third.Slug)
	})

	t.Run("explicit slug is normalised", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, cms.CreatePostRequest{Title: "Any", Slug: "My Custom Slug", Content: "x"})
		require.NoError(t, err)
		assert.Equal(t, "my-custom-slug", post.Slug)
	})

	t.Run("created as published", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, cms.CreatePostRequest{Title: "Live", Content: "x", Status: cms.PostStatusPublished})
		require.NoError(t, err)
		assert.Equal(t, cms.PostStatusPublished, post.Status)
		assert.NotNil(t, post.PublishedAt)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, cms.CreatePostRequest{Content: "x"})
		var ve *cms.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "title", ve.Fields[0].Field)

		_, err = svc.CreatePost(ctx, cms.CreatePostRequest{Title: strings.Repeat("a", 301), Content: "x", Status: "archived"})
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve.Fields, 2)

		_, err = svc.CreatePost(ctx, cms.CreatePostRequest{Title: "!!!", Content: "x"})
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "slug", ve.Fields[0].Field)
	})
}

func TestService_UpdatePost(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)

	first := createPost(t, svc, "First")
	second := createPost(t, svc, "Second")

	t.Run("resaving own slug does not collide", func(t *testing.T) {
		slug := first.Slug
		title := "First, edited"
		updated, err := svc.UpdatePost(ctx, cms.UpdatePostRequest{ID: first.ID, Title: &title, Slug: &slug})
		require.NoError(t, err)
		assert.Equal(t, "first", updated.Slug)
		assert.Equal(t, title, updated.Title)
	})

	t.Run("taking another post's slug adds a suffix", func(t *testing.T) {
		slug := "first"
		updated, err := svc.UpdatePost(ctx, cms.UpdatePostRequest{ID: second.ID, Slug: &slug})
		require.NoError(t, err)
		assert.Equal(t, "first-1", updated.Slug)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, cms.UpdatePostRequest{ID: first.ID})
		var ve *cms.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("unknown post", func(t *testing.T) {
		title := "x"
		_, err := svc.UpdatePost(ctx, cms.UpdatePostRequest{ID: uuid.New(), Title: &title})
		assert.ErrorIs(t, err, cms.ErrPostNotFound)
	})

	t.Run("status change through update stamps publish date", func(t *testing.T) {
		status := cms.PostStatusPublished
		updated, err := svc.UpdatePost(ctx, cms.UpdatePostRequest{ID: first.ID, Status: &status})
		require.NoError(t, err)
		assert.NotNil(t, updated.PublishedAt)
	})
}

func TestService_PublicationWorkflow(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc, _, _ := setupService(t, cms.WithClock(func() time.Time { return clock }))

	post := createPost(t, svc, "Workflow")

	_, err := svc.ViewPublishedPost(ctx, post.Slug)
	assert.ErrorIs(t, err, cms.ErrPostNotFound, "drafts are not visible by slug")

	published, err := svc.PublishPost(ctx, post.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, cms.PostStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, clock, *published.PublishedAt)

	for i := 1; i <= 3; i++ {
		viewed, err := svc.ViewPublishedPost(ctx, post.Slug)
		require.NoError(t, err)
		assert.Equal(t, int64(i), viewed.ViewCount)
	}

	clock = clock.Add(24 * time.Hour)
	draft, err := svc.UnpublishPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, cms.PostStatusDraft, draft.Status)
	require.NotNil(t, draft.PublishedAt)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), *draft.PublishedAt)

	_, err = svc.ViewPublishedPost(ctx, post.Slug)
	assert.ErrorIs(t, err, cms.ErrPostNotFound)

	republished, err := svc.PublishPost(ctx, post.ID, &clock)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), *republished.PublishedAt)

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ViewCount)

	_, err = svc.PublishPost(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, cms.ErrPostNotFound)
}

func TestService_ListPublishedPosts(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)

	for i := 0; i < 25; i++ {
		_, err := svc.CreatePost(ctx, cms.CreatePostRequest{Title: fmt.Sprintf("Post %d", i), Content: "x", Status: cms.PostStatusPublished})
		require.NoError(t, err)
	}
	createPost(t, svc, "A draft")

	page, err := svc.ListPublishedPosts(ctx, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.Pages())
	assert.Equal(t, 2, page.Page)

	all, err := svc.ListPosts(ctx, cms.ListPostsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(26), all.Total)
	assert.Len(t, all.Items, cms.DefaultLimit)

	drafts, err := svc.ListPosts(ctx, cms.ListPostsRequest{Status: cms.PostStatusDraft})
	require.NoError(t, err)
	assert.Equal(t, int64(1), drafts.Total)

	_, err = svc.ListPosts(ctx, cms.ListPostsRequest{Sort: "secret"})
	var ve *cms.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestService_SearchPosts(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)

	inContent, err := svc.CreatePost(ctx, cms.CreatePostRequest{Title: "Misc notes", Content: "a paragraph mentioning kubernetes", Status: cms.PostStatusPublished})
	require.NoError(t, err)
	inTitle, err := svc.CreatePost(ctx, cms.CreatePostRequest{Title: "Kubernetes basics", Content: "intro", Status: cms.PostStatusPublished})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, cms.CreatePostRequest{Title: "Kubernetes draft", Content: "wip"})
	require.NoError(t, err)

	t.Run("query too short", func(t *testing.T) {
		_, err := svc.SearchPosts(ctx, cms.SearchPostsRequest{Query: "k"})
		var ve *cms.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "query", ve.Fields[0].Field)
	})

	t.Run("limit above bound", func(t *testing.T) {
		_, err := svc.SearchPosts(ctx, cms.SearchPostsRequest{Query: "kubernetes", Limit: 51})
		var ve *cms.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("title matches rank first", func(t *testing.T) {
		page, err := svc.SearchPosts(ctx, cms.SearchPostsRequest{Query: "ku"})
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, inTitle.ID, page.Items[0].ID)
		assert.Equal(t, inContent.ID, page.Items[1].ID)
		assert.Equal(t, int64(2), page.Total)
		assert.Equal(t, cms.DefaultLimit, page.Limit)
	})
}

// conflictingRepo reports a slug conflict for the first n post writes, as a
// store with a unique index does when a concurrent writer wins the race.
type conflictingRepo struct {
	*memory.Repository
	mu        sync.Mutex
	conflicts int
}

func (r *conflictingRepo) CreatePost(ctx context.Context, post *cms.BlogPost) error {
	r.mu.Lock()
	if r.conflicts > 0 {
		r.conflicts--
		r.mu.Unlock()
		return cms.ErrSlugConflict
	}
	r.mu.Unlock()
	return r.Repository.CreatePost(ctx, post)
}

func TestService_SlugConflictRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("retries until the write succeeds", func(t *testing.T) {
		repo := &conflictingRepo{Repository: memory.New(), conflicts: 2}
		svc, err := cms.New(cms.WithRepository(repo))
		require.NoError(t, err)

		post, err := svc.CreatePost(ctx, cms.CreatePostRequest{Title: "Race", Content: "x"})
		require.NoError(t, err)
		assert.Equal(t, "race", post.Slug)
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		repo := &conflictingRepo{Repository: memory.New(), conflicts: 100}
		svc, err := cms.New(cms.WithRepository(repo))
		require.NoError(t, err)

		_, err = svc.CreatePost(ctx, cms.CreatePostRequest{Title: "Race", Content: "x"})
		assert.ErrorIs(t, err, cms.ErrSlugConflict)
	})
}

func TestService_Slides(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)

	first, err := svc.CreateSlide(ctx, cms.CreateSlideRequest{Title: "First"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.DisplayOrder)
	assert.True(t, first.IsActive)
	assert.Equal(t, cms.SlideMediaImage, first.MediaType)

	second, err := svc.CreateSlide(ctx, cms.CreateSlideRequest{Title: "Second", MediaType: cms.SlideMediaVideo})
	require.NoError(t, err)
	assert.Equal(t, 2, second.DisplayOrder)

	inactive := false
	hidden, err := svc.CreateSlide(ctx, cms.CreateSlideRequest{Title: "Hidden", DisplayOrder: 10, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, 10, hidden.DisplayOrder)
	assert.False(t, hidden.IsActive)

	_, err = svc.CreateSlide(ctx, cms.CreateSlideRequest{Title: "Bad", MediaType: "gif"})
	var ve *cms.ValidationError
	assert.ErrorAs(t, err, &ve)

	active, err := svc.ListActiveSlides(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	reordered, err := svc.ReorderSlide(ctx, second.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, reordered.DisplayOrder)

	_, err = svc.ReorderSlide(ctx, second.ID, -1)
	assert.ErrorAs(t, err, &ve)

	active, err = svc.ListActiveSlides(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, second.ID, active[0].ID)

	toggled, err := svc.ToggleSlide(ctx, hidden.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	page, err := svc.ListSlides(ctx, cms.ListSlidesRequest{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)

	require.NoError(t, svc.DeleteSlide(ctx, first.ID))
	_, err = svc.GetSlide(ctx, first.ID)
	assert.ErrorIs(t, err, cms.ErrSlideNotFound)

	title := "Renamed"
	updated, err := svc.UpdateSlide(ctx, cms.UpdateSlideRequest{ID: second.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, cms.SlideMediaVideo, updated.MediaType)
}

func TestService_ActiveSlidesCache(t *testing.T) {
	ctx := context.Background()
	slideCache := cache.NewMemory(time.Hour)
	svc, repo, _ := setupService(t, cms.WithSlideCache(slideCache))

	_, err := svc.CreateSlide(ctx, cms.CreateSlideRequest{Title: "One"})
	require.NoError(t, err)

	active, err := svc.ListActiveSlides(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	cached, ok, err := slideCache.GetActiveSlides(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, cached, 1)

	// A write behind the service's back is not seen until the entry is invalidated.
	require.NoError(t, repo.CreateSlide(ctx, &cms.HeroSlide{ID: uuid.New(), Title: "Direct", IsActive: true, DisplayOrder: 5}))
	active, err = svc.ListActiveSlides(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	_, err = svc.CreateSlide(ctx, cms.CreateSlideRequest{Title: "Two"})
	require.NoError(t, err)
	_, ok, _ = slideCache.GetActiveSlides(ctx)
	assert.False(t, ok, "slide writes invalidate the cache")

	active, err = svc.ListActiveSlides(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

// slideWriteDuringList runs onList once, after the active slides have been
// read but before the caller gets them back.
type slideWriteDuringList struct {
	*memory.Repository
	onList func()
}

func (r *slideWriteDuringList) ListSlides(ctx context.Context, filter cms.SlideFilter, params cms.ListParams) ([]*cms.HeroSlide, int64, error) {
	slides, total, err := r.Repository.ListSlides(ctx, filter, params)
	if r.onList != nil {
		fn := r.onList
		r.onList = nil
		fn()
	}
	return slides, total, err
}

func TestService_ActiveSlidesCacheWriteDuringList(t *testing.T) {
	ctx := context.Background()
	slideCache := cache.NewMemory(time.Hour)
	repo := &slideWriteDuringList{Repository: memory.New()}
	svc, err := cms.New(cms.WithRepository(repo), cms.WithSlideCache(slideCache))
	require.NoError(t, err)

	_, err = svc.CreateSlide(ctx, cms.CreateSlideRequest{Title: "One"})
	require.NoError(t, err)

	repo.onList = func() {
		_, err := svc.CreateSlide(ctx, cms.CreateSlideRequest{Title: "Two"})
		require.NoError(t, err)
	}

	// This read started before "Two" existed, so it may return the old list.
	active, err := svc.ListActiveSlides(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	_, ok, err := slideCache.GetActiveSlides(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "a list read before a write must not stay cached")

	active, err = svc.ListActiveSlides(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func upload(svc cms.Service, name, mime string, data []byte) (*cms.MediaAsset, error) {
	return svc.UploadMedia(context.Background(), cms.UploadMediaRequest{
		FileName: name,
		MimeType: mime,
		Size:     int64(len(data)),
		Body:     bytes.NewReader(data),
		Alt:      " alt text ",
	})
}

func TestService_UploadMedia(t *testing.T) {
	svc, _, host := setupService(t)

	t.Run("large image is downscaled", func(t *testing.T) {
		asset, err := upload(svc, "Big Photo.jpeg", "image/jpeg", jpegBytes(t, 3000, 2000))
		require.NoError(t, err)
		require.NotNil(t, asset.Width)
		require.NotNil(t, asset.Height)
		assert.Equal(t, 1620, *asset.Width)
		assert.Equal(t, 1080, *asset.Height)
		assert.Equal(t, cms.FileTypeImage, asset.FileType)
		assert.Equal(t, "image/jpeg", asset.MimeType)
		assert.Equal(t, "Big Photo.jpeg", asset.FileName)
		assert.Equal(t, "alt text", asset.Alt)
		assert.True(t, strings.HasPrefix(asset.PublicID, cms.DefaultFolder+"/"))
		assert.True(t, strings.HasSuffix(asset.PublicID, "_big-photo.jpg"))

		stored, mimeType, ok := host.Get(asset.PublicID)
		require.True(t, ok)
		assert.Equal(t, "image/jpeg", mimeType)
		assert.Equal(t, int64(len(stored)), asset.FileSize)
	})

	t.Run("small image keeps its size", func(t *testing.T) {
		asset, err := upload(svc, "small.jpg", "image/jpeg", jpegBytes(t, 800, 600))
		require.NoError(t, err)
		assert.Equal(t, 800, *asset.Width)
		assert.Equal(t, 600, *asset.Height)
	})

	t.Run("video is stored untouched", func(t *testing.T) {
		data := []byte("not really a video")
		asset, err := upload(svc, "clip.mp4", "video/mp4", data)
		require.NoError(t, err)
		assert.Equal(t, cms.FileTypeVideo, asset.FileType)
		assert.Nil(t, asset.Width)
		assert.Equal(t, int64(len(data)), asset.FileSize)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := upload(svc, "doc.pdf", "application/pdf", []byte("%PDF"))
		assert.ErrorIs(t, err, cms.ErrUnsupportedMedia)
	})

	t.Run("undecodable image", func(t *testing.T) {
		before := host.Len()
		_, err := upload(svc, "broken.jpg", "image/jpeg", []byte("garbage"))
		assert.ErrorIs(t, err, cms.ErrInvalidImage)
		assert.Equal(t, before, host.Len())
	})
}

func TestService_UploadMedia_TooLarge(t *testing.T) {
	svc, _, _ := setupService(t, cms.WithMaxUploadBytes(16))

	_, err := svc.UploadMedia(context.Background(), cms.UploadMediaRequest{
		FileName: "clip.mp4",
		MimeType: "video/mp4",
		Body:     bytes.NewReader(make([]byte, 17)),
	})
	assert.ErrorIs(t, err, cms.ErrUploadTooLarge)
}

// failingHost rejects uploads and deletes.
type failingHost struct{ uploads int }

func (h *failingHost) Name() string { return "failing" }

func (h *failingHost) Upload(ctx context.Context, r io.Reader, p cms.UploadParams) (*cms.HostedAsset, error) {
	h.uploads++
	return nil, errors.New("host unavailable")
}

func (h *failingHost) Delete(ctx context.Context, publicID string) error {
	return errors.New("host unavailable")
}

func TestService_UploadMedia_HostFailureWritesNothing(t *testing.T) {
	repo := memory.New()
	host := &failingHost{}
	svc, err := cms.New(cms.WithRepository(repo), cms.WithAssetHost(host))
	require.NoError(t, err)

	_, err = upload(svc, "clip.webm", "video/webm", []byte("data"))
	var he *cms.HostError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "failing", he.Host)
	assert.Equal(t, 1, host.uploads)

	page, err := svc.ListMedia(context.Background(), cms.ListMediaRequest{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestService_DeleteMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("removes hosted binary and record", func(t *testing.T) {
		svc, _, host := setupService(t)
		asset, err := upload(svc, "clip.mov", "video/quicktime", []byte("data"))
		require.NoError(t, err)

		require.NoError(t, svc.DeleteMedia(ctx, asset.ID))
		assert.Equal(t, 0, host.Len())
		_, err = svc.GetMedia(ctx, asset.ID)
		assert.ErrorIs(t, err, cms.ErrMediaNotFound)
	})

	t.Run("host failure does not block the record delete", func(t *testing.T) {
		repo := memory.New()
		svc, err := cms.New(cms.WithRepository(repo), cms.WithAssetHost(&failingHost{}))
		require.NoError(t, err)

		asset := &cms.MediaAsset{ID: uuid.New(), FileName: "orphan.jpg", PublicID: "antigravity-cms/orphan.jpg", FileType: cms.FileTypeImage}
		require.NoError(t, repo.CreateMedia(ctx, asset))

		require.NoError(t, svc.DeleteMedia(ctx, asset.ID))
		_, err = repo.GetMedia(ctx, asset.ID)
		assert.ErrorIs(t, err, cms.ErrMediaNotFound)
	})

	t.Run("unknown asset", func(t *testing.T) {
		svc, _, _ := setupService(t)
		assert.ErrorIs(t, svc.DeleteMedia(ctx, uuid.New()), cms.ErrMediaNotFound)
	})
}

func TestService_MediaListingAndAlt(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t)

	img, err := upload(svc, "a.jpg", "image/jpeg", jpegBytes(t, 10, 10))
	require.NoError(t, err)
	_, err = upload(svc, "b.webm", "video/webm", []byte("v"))
	require.NoError(t, err)

	images, err := svc.ListMedia(ctx, cms.ListMediaRequest{FileType: cms.FileTypeImage})
	require.NoError(t, err)
	assert.Equal(t, int64(1), images.Total)
	assert.Equal(t, cms.DefaultMediaLimit, images.Limit)

	_, err = svc.ListMedia(ctx, cms.ListMediaRequest{FileType: "audio"})
	var ve *cms.ValidationError
	assert.ErrorAs(t, err, &ve)

	updated, err := svc.UpdateMediaAlt(ctx, img.ID, "A red square")
	require.NoError(t, err)
	assert.Equal(t, "A red square", updated.Alt)
	assert.Equal(t, img.FileURL, updated.FileURL)
}
