// Package importer turns Markdown files with front matter into blog posts.
//
// Front matter may be YAML, TOML or JSON. The body is rendered to HTML with
// GitHub flavoured Markdown. Posts are created as drafts unless the front
// matter sets status: published.
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// excerptLen is the length of an excerpt derived from the first paragraph.
const excerptLen = 200

// FrontMatter is the metadata block at the top of an imported file.
type FrontMatter struct {
	Title           string `yaml:"title" toml:"title" json:"title"`
	Slug            string `yaml:"slug" toml:"slug" json:"slug"`
	Excerpt         string `yaml:"excerpt" toml:"excerpt" json:"excerpt"`
	Summary         string `yaml:"summary" toml:"summary" json:"summary"`
	FeaturedImage   string `yaml:"featured_image" toml:"featured_image" json:"featuredImage"`
	MetaTitle       string `yaml:"meta_title" toml:"meta_title" json:"metaTitle"`
	MetaDescription string `yaml:"meta_description" toml:"meta_description" json:"metaDescription"`
	Status          string `yaml:"status" toml:"status" json:"status"`
	Draft           *bool  `yaml:"draft" toml:"draft" json:"draft"`
}

// FileError records a file that could not be imported.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("import %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Result summarises an import run.
type Result struct {
	Created []*cms.BlogPost
	Failed  []*FileError
}

// Importer converts Markdown documents into posts through a cms.Service.
type Importer struct {
	service    cms.Service
	md         goldmark.Markdown
	forceDraft bool
	logger     *slog.Logger
}

// Option configures an Importer
type Option func(*Importer)

// WithForceDraft ignores any published status in front matter.
func WithForceDraft() Option {
	return func(i *Importer) {
		i.forceDraft = true
	}
}

// WithLogger sets the logger used for per-file progress.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// New creates an importer writing to service.
func New(service cms.Service, opts ...Option) (*Importer, error) {
	if service == nil {
		return nil, errors.New("service is required")
	}

	i := &Importer{
		service: service,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Parse reads one Markdown document and returns the post it describes.
// name is used for the title when the front matter has none.
func (i *Importer) Parse(name string, r io.Reader) (cms.CreatePostRequest, error) {
	var fm FrontMatter
	body, err := frontmatter.Parse(r, &fm)
	if err != nil {
		return cms.CreatePostRequest{}, fmt.Errorf("parse front matter: %w", err)
	}

	source := body
	doc := i.md.Parser().Parse(text.NewReader(source))

	var html bytes.Buffer
	if err := i.md.Renderer().Render(&html, source, doc); err != nil {
		return cms.CreatePostRequest{}, fmt.Errorf("render markdown: %w", err)
	}

	req := cms.CreatePostRequest{
		Title:           strings.TrimSpace(fm.Title),
		Slug:            strings.TrimSpace(fm.Slug),
		Content:         strings.TrimSpace(html.String()),
		Excerpt:         strings.TrimSpace(fm.Excerpt),
		FeaturedImage:   strings.TrimSpace(fm.FeaturedImage),
		MetaTitle:       strings.TrimSpace(fm.MetaTitle),
		MetaDescription: strings.TrimSpace(fm.MetaDescription),
		Status:          i.status(fm),
	}
	if req.Title == "" {
		req.Title = titleFromName(name)
	}
	if req.Excerpt == "" {
		req.Excerpt = strings.TrimSpace(fm.Summary)
	}
	if req.Excerpt == "" {
		req.Excerpt = firstParagraph(doc, source, excerptLen)
	}
	return req, nil
}

func (i *Importer) status(fm FrontMatter) cms.PostStatus {
	if i.forceDraft || (fm.Draft != nil && *fm.Draft) {
		return cms.PostStatusDraft
	}
	if strings.EqualFold(strings.TrimSpace(fm.Status), string(cms.PostStatusPublished)) {
		return cms.PostStatusPublished
	}
	if fm.Draft != nil && !*fm.Draft {
		return cms.PostStatusPublished
	}
	return cms.PostStatusDraft
}

// ImportFile creates one post from the Markdown file at path.
func (i *Importer) ImportFile(ctx context.Context, path string) (*cms.BlogPost, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	req, err := i.Parse(filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	return i.service.CreatePost(ctx, req)
}

// ImportDir imports every .md file below dir. A failing file is recorded
// in the result and does not stop the run.
func (i *Importer) ImportDir(ctx context.Context, dir string) (*Result, error) {
	result := &Result{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		post, err := i.ImportFile(ctx, path)
		if err != nil {
			i.logger.Warn("Failed to import file", "path", path, "error", err)
			result.Failed = append(result.Failed, &FileError{Path: path, Err: err})
			return nil
		}
		i.logger.Info("Imported post", "path", path, "id", post.ID, "slug", post.Slug, "status", post.Status)
		result.Created = append(result.Created, post)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("walk %s: %w", dir, err)
	}
	return result, nil
}

// titleFromName turns "my-first_post.md" into "My First Post".
func titleFromName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(strings.Join(strings.Fields(base), " "))
}

// firstParagraph returns the plain text of the first paragraph, cut to at
// most n runes on a word boundary.
func firstParagraph(doc ast.Node, source []byte, n int) string {
	var b strings.Builder
	inParagraph := false
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if node.Kind() == ast.KindParagraph {
			if !entering && b.Len() > 0 {
				return ast.WalkStop, nil
			}
			inParagraph = entering
			return ast.WalkContinue, nil
		}
		if !entering || !inParagraph {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	s := strings.Join(strings.Fields(b.String()), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	cut := string([]rune(s)[:n-1])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
