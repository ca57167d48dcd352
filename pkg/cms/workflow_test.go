package cms

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime("<p>Just a few words</p>"))
	assert.Equal(t, 1, ReadingTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 2, ReadingTime("<p>"+strings.Repeat("word</p><p>", 300)+"</p>"))
}

func TestPreparePost(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("derives meta fields", func(t *testing.T) {
		p := &BlogPost{Title: strings.Repeat("t", 100), Excerpt: strings.Repeat("e", 300)}
		preparePost(p, now)

		assert.Len(t, p.MetaTitle, MaxMetaTitleLen)
		assert.Len(t, p.MetaDescription, MaxMetaDescriptionLen)
		assert.Equal(t, PostStatusDraft, p.Status)
		assert.Nil(t, p.PublishedAt)
	})

	t.Run("keeps explicit meta fields", func(t *testing.T) {
		p := &BlogPost{Title: "Title", Excerpt: "Excerpt", MetaTitle: "Custom", MetaDescription: "Desc"}
		preparePost(p, now)

		assert.Equal(t, "Custom", p.MetaTitle)
		assert.Equal(t, "Desc", p.MetaDescription)
	})

	t.Run("truncates by rune", func(t *testing.T) {
		p := &BlogPost{Title: strings.Repeat("é", 80)}
		preparePost(p, now)

		assert.Equal(t, strings.Repeat("é", MaxMetaTitleLen), p.MetaTitle)
	})

	t.Run("stamps published posts", func(t *testing.T) {
		p := &BlogPost{Title: "T", Status: PostStatusPublished}
		preparePost(p, now)

		require.NotNil(t, p.PublishedAt)
		assert.Equal(t, now, *p.PublishedAt)
	})
}

func TestPublishWorkflow(t *testing.T) {
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	p := &BlogPost{Status: PostStatusDraft}

	publishPost(p, nil, first)
	assert.Equal(t, PostStatusPublished, p.Status)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, first, *p.PublishedAt)

	unpublishPost(p, later)
	assert.Equal(t, PostStatusDraft, p.Status)
	require.NotNil(t, p.PublishedAt, "unpublish keeps the publish date")
	assert.Equal(t, first, *p.PublishedAt)

	requested := later.Add(time.Hour)
	publishPost(p, &requested, later)
	assert.Equal(t, PostStatusPublished, p.Status)
	assert.Equal(t, first, *p.PublishedAt, "republish keeps the original publish date")
}

func TestPublishWorkflow_RequestedTime(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	requested := time.Date(2023, 12, 24, 18, 0, 0, 0, time.FixedZone("CET", 3600))

	p := &BlogPost{}
	publishPost(p, &requested, now)

	require.NotNil(t, p.PublishedAt)
	assert.True(t, requested.Equal(*p.PublishedAt))
	assert.Equal(t, time.UTC, p.PublishedAt.Location())
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name             string
		page, limit      int
		wantPage, wantLn int
	}{
		{"defaults", 0, 0, 1, DefaultLimit},
		{"negative", -3, -1, 1, DefaultLimit},
		{"capped", 2, 1000, 2, DefaultMaxLimit},
		{"explicit", 3, 25, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := normalizePage(tt.page, tt.limit, DefaultLimit, DefaultMaxLimit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLn, p.Limit)
		})
	}
}

func TestPagePages(t *testing.T) {
	assert.Equal(t, 3, (&Page[int]{Total: 25, Limit: 10}).Pages())
	assert.Equal(t, 2, (&Page[int]{Total: 20, Limit: 10}).Pages())
	assert.Equal(t, 0, (&Page[int]{Total: 0, Limit: 10}).Pages())
	assert.Equal(t, 1, (&Page[int]{Total: 4}).Pages())
}

func TestParseSort(t *testing.T) {
	order, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortOrder{Field: SortCreatedAt, Desc: true}, order)

	order, err = ParseSort("-publishedAt")
	require.NoError(t, err)
	assert.Equal(t, SortOrder{Field: SortPublishedAt, Desc: true}, order)

	order, err = ParseSort("title")
	require.NoError(t, err)
	assert.Equal(t, SortOrder{Field: SortTitle}, order)

	_, err = ParseSort("password")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestClassifyUpload(t *testing.T) {
	tests := []struct {
		name, file, mime string
		want             FileType
		ok               bool
	}{
		{"jpeg", "photo.JPG", "image/jpeg", FileTypeImage, true},
		{"webp", "banner.webp", "image/webp", FileTypeImage, true},
		{"mov", "clip.mov", "video/quicktime", FileTypeVideo, true},
		{"webm", "clip.webm", "video/webm", FileTypeVideo, true},
		{"pdf", "doc.pdf", "application/pdf", "", false},
		{"svg", "logo.svg", "image/svg+xml", "", false},
		{"mismatched ext", "photo.mp4", "image/jpeg", "", false},
		{"no ext", "photo", "image/png", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyUpload(tt.file, tt.mime)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrUnsupportedMedia)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
