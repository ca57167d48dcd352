package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/repo/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupImporterTest(t *testing.T, opts ...Option) (*Importer, cms.Service) {
	t.Helper()
	svc, err := cms.New(cms.WithRepository(memory.New()))
	require.NoError(t, err)

	imp, err := New(svc, opts...)
	require.NoError(t, err)
	return imp, svc
}

const samplePost = `---
title: Shipping Faster with Go
slug: shipping-go
excerpt: How we cut build times.
status: published
featured_image: https://cdn.example.com/go.png
---
# Intro

We moved our **build** to Go.

- one
- two
`

func TestImporter_Parse(t *testing.T) {
	imp, _ := setupImporterTest(t)

	req, err := imp.Parse("ignored.md", strings.NewReader(samplePost))
	require.NoError(t, err)

	assert.Equal(t, "Shipping Faster with Go", req.Title)
	assert.Equal(t, "shipping-go", req.Slug)
	assert.Equal(t, "How we cut build times.", req.Excerpt)
	assert.Equal(t, "https://cdn.example.com/go.png", req.FeaturedImage)
	assert.Equal(t, cms.PostStatusPublished, req.Status)
	assert.Contains(t, req.Content, `<h1 id="intro">Intro</h1>`)
	assert.Contains(t, req.Content, "<strong>build</strong>")
	assert.Contains(t, req.Content, "<li>one</li>")
	assert.NotContains(t, req.Content, "title:")
}

func TestImporter_ParseDefaults(t *testing.T) {
	imp, _ := setupImporterTest(t)

	doc := "# Heading\n\nFirst paragraph\nwraps here.\n\nSecond paragraph.\n"
	req, err := imp.Parse("my-first_post.md", strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "My First Post", req.Title)
	assert.Equal(t, "First paragraph wraps here.", req.Excerpt)
	assert.Equal(t, cms.PostStatusDraft, req.Status)
}

func TestImporter_Status(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name  string
		fm    FrontMatter
		force bool
		want  cms.PostStatus
	}{
		{"Default", FrontMatter{}, false, cms.PostStatusDraft},
		{"Published", FrontMatter{Status: "Published"}, false, cms.PostStatusPublished},
		{"DraftFlag", FrontMatter{Status: "published", Draft: &yes}, false, cms.PostStatusDraft},
		{"NotDraft", FrontMatter{Draft: &no}, false, cms.PostStatusPublished},
		{"Forced", FrontMatter{Status: "published"}, true, cms.PostStatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := &Importer{forceDraft: tt.force}
			assert.Equal(t, tt.want, imp.status(tt.fm))
		})
	}
}

func TestFirstParagraph_Truncates(t *testing.T) {
	imp, _ := setupImporterTest(t)
	long := strings.Repeat("word ", 100)

	req, err := imp.Parse("long.md", strings.NewReader(long))
	require.NoError(t, err)

	assert.LessOrEqual(t, len([]rune(req.Excerpt)), excerptLen)
	assert.True(t, strings.HasSuffix(req.Excerpt, "word…"))
}

func TestImporter_ImportDir(t *testing.T) {
	imp, svc := setupImporterTest(t, WithForceDraft())
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte(samplePost), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.MD"), []byte("Just text."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))
	// an empty body fails content validation
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.md"), []byte("---\ntitle: Empty\n---\n"), 0o644))

	result, err := imp.ImportDir(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, result.Created, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, filepath.Join(dir, "empty.md"), result.Failed[0].Path)

	var verr *cms.ValidationError
	assert.ErrorAs(t, result.Failed[0], &verr)

	page, err := svc.ListPosts(context.Background(), cms.ListPostsRequest{Status: cms.PostStatusDraft})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}

func TestNew_RequiresService(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
