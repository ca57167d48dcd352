package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements cms.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// NewPool opens a connection pool whose sessions use schema as search_path.
func NewPool(ctx context.Context, databaseURL, schema string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, errors.New("database_url is required for postgres")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		cfg.ConnConfig.RuntimeParams["search_path"] = schema
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return pool, nil
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return cms.ErrSlugConflict
			}
			return fmt.Errorf("duplicate entry in %s: %s", operation, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "23514": // check_violation
			return fmt.Errorf("value rejected by constraint %s", pgErr.ConstraintName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Blog post operations

const postColumns = `id, title, slug, content, excerpt, featured_image, meta_title,
	meta_description, status, published_at, view_count, created_at, updated_at`

// Lists return posts without content.
const postSummaryColumns = `id, title, slug, '' AS content, excerpt, featured_image, meta_title,
	meta_description, status, published_at, view_count, created_at, updated_at`

func scanPost(row pgx.Row) (*cms.BlogPost, error) {
	var post cms.BlogPost
	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.Excerpt,
		&post.FeaturedImage, &post.MetaTitle, &post.MetaDescription, &post.Status,
		&post.PublishedAt, &post.ViewCount, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *Repository) CreatePost(ctx context.Context, post *cms.BlogPost) error {
	query := `
		INSERT INTO blog_posts (
			id, title, slug, content, excerpt, featured_image, meta_title,
			meta_description, status, published_at, view_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, post.Excerpt,
		post.FeaturedImage, post.MetaTitle, post.MetaDescription, post.Status,
		post.PublishedAt, post.ViewCount, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create post", err)
	}
	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*cms.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrPostNotFound
		}
		return nil, r.handlePostgresError("get post", err)
	}
	return post, nil
}

// UpdatePost writes every mutable column. view_count is left alone so that
// concurrent view increments are never overwritten.
func (r *Repository) UpdatePost(ctx context.Context, post *cms.BlogPost) error {
	query := `
		UPDATE blog_posts SET
			title = $2, slug = $3, content = $4, excerpt = $5, featured_image = $6,
			meta_title = $7, meta_description = $8, status = $9, published_at = $10,
			updated_at = $11
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, post.Excerpt, post.FeaturedImage,
		post.MetaTitle, post.MetaDescription, post.Status, post.PublishedAt, post.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update post", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrPostNotFound
	}
	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrPostNotFound
	}
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, filter cms.PostFilter, params cms.ListParams) ([]*cms.BlogPost, int64, error) {
	where := ""
	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = " WHERE status = $1"
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts`+where, args...).Scan(&total); err != nil {
		return nil, 0, r.handlePostgresError("count posts", err)
	}

	query := `SELECT ` + postSummaryColumns + ` FROM blog_posts` + where +
		` ORDER BY ` + postOrderBy(params.Sort) + pageClause(params, len(args))
	posts, err := r.queryPosts(ctx, "list posts", query, append(args, pageArgs(params)...)...)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// SearchPosts ranks published posts with the weighted tsvector and adds
// substring boosts, so short queries that the parser drops still match.
// The boosts follow the title/excerpt/content weights 10/5/1.
func (r *Repository) SearchPosts(ctx context.Context, query string, params cms.ListParams) ([]*cms.BlogPost, int64, error) {
	pattern := "%" + escapeLike(query) + "%"
	match := `
		FROM blog_posts p, websearch_to_tsquery('simple', $1) q
		WHERE p.status = 'published'
		  AND (p.search_vector @@ q OR p.title ILIKE $2 OR p.excerpt ILIKE $2 OR p.content ILIKE $2)`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+match, query, pattern).Scan(&total); err != nil {
		return nil, 0, r.handlePostgresError("count search results", err)
	}

	sql := `
		SELECT p.id, p.title, p.slug, '' AS content, p.excerpt, p.featured_image, p.meta_title,
			p.meta_description, p.status, p.published_at, p.view_count, p.created_at, p.updated_at` +
		match + `
		ORDER BY ts_rank('{0.1, 0.2, 0.5, 1.0}', p.search_vector, q)
			+ CASE WHEN p.title ILIKE $2 THEN 10 ELSE 0 END
			+ CASE WHEN p.excerpt ILIKE $2 THEN 5 ELSE 0 END
			+ CASE WHEN p.content ILIKE $2 THEN 1 ELSE 0 END DESC,
			p.published_at DESC NULLS LAST, p.id` + pageClause(params, 2)

	posts, err := r.queryPosts(ctx, "search posts", sql, append([]interface{}{query, pattern}, pageArgs(params)...)...)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *Repository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)`,
		slug, excludeID).Scan(&exists)
	if err != nil {
		return false, r.handlePostgresError("check slug", err)
	}
	return exists, nil
}

// RecordPostView increments the view counter of a published post in one
// statement and returns the updated row.
func (r *Repository) RecordPostView(ctx context.Context, slug string) (*cms.BlogPost, error) {
	query := `
		UPDATE blog_posts SET view_count = view_count + 1
		WHERE slug = $1 AND status = 'published'
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrPostNotFound
		}
		return nil, r.handlePostgresError("record view", err)
	}
	return post, nil
}

func (r *Repository) queryPosts(ctx context.Context, operation, query string, args ...interface{}) ([]*cms.BlogPost, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError(operation, err)
	}
	defer rows.Close()

	posts := []*cms.BlogPost{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, r.handlePostgresError(operation, err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError(operation, err)
	}
	return posts, nil
}

// Hero slide operations

const slideColumns = `id, title, subtitle, description, media_url, media_type, cta_text,
	cta_link, display_order, is_active, created_at, updated_at`

func scanSlide(row pgx.Row) (*cms.HeroSlide, error) {
	var slide cms.HeroSlide
	err := row.Scan(
		&slide.ID, &slide.Title, &slide.Subtitle, &slide.Description, &slide.MediaURL,
		&slide.MediaType, &slide.CTAText, &slide.CTALink, &slide.DisplayOrder,
		&slide.IsActive, &slide.CreatedAt, &slide.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &slide, nil
}

func (r *Repository) CreateSlide(ctx context.Context, slide *cms.HeroSlide) error {
	query := `
		INSERT INTO hero_slides (` + slideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		slide.ID, slide.Title, slide.Subtitle, slide.Description, slide.MediaURL,
		slide.MediaType, slide.CTAText, slide.CTALink, slide.DisplayOrder,
		slide.IsActive, slide.CreatedAt, slide.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create slide", err)
	}
	return nil
}

func (r *Repository) GetSlide(ctx context.Context, id uuid.UUID) (*cms.HeroSlide, error) {
	slide, err := scanSlide(r.db.QueryRow(ctx, `SELECT `+slideColumns+` FROM hero_slides WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrSlideNotFound
		}
		return nil, r.handlePostgresError("get slide", err)
	}
	return slide, nil
}

func (r *Repository) UpdateSlide(ctx context.Context, slide *cms.HeroSlide) error {
	query := `
		UPDATE hero_slides SET
			title = $2, subtitle = $3, description = $4, media_url = $5, media_type = $6,
			cta_text = $7, cta_link = $8, display_order = $9, is_active = $10, updated_at = $11
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		slide.ID, slide.Title, slide.Subtitle, slide.Description, slide.MediaURL,
		slide.MediaType, slide.CTAText, slide.CTALink, slide.DisplayOrder,
		slide.IsActive, slide.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update slide", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrSlideNotFound
	}
	return nil
}

func (r *Repository) DeleteSlide(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM hero_slides WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete slide", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrSlideNotFound
	}
	return nil
}

func (r *Repository) ListSlides(ctx context.Context, filter cms.SlideFilter, params cms.ListParams) ([]*cms.HeroSlide, int64, error) {
	where := ""
	if filter.ActiveOnly {
		where = " WHERE is_active"
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM hero_slides`+where).Scan(&total); err != nil {
		return nil, 0, r.handlePostgresError("count slides", err)
	}

	query := `SELECT ` + slideColumns + ` FROM hero_slides` + where +
		` ORDER BY display_order ASC, created_at ASC, id` + pageClause(params, 0)
	rows, err := r.db.Query(ctx, query, pageArgs(params)...)
	if err != nil {
		return nil, 0, r.handlePostgresError("list slides", err)
	}
	defer rows.Close()

	slides := []*cms.HeroSlide{}
	for rows.Next() {
		slide, err := scanSlide(rows)
		if err != nil {
			return nil, 0, r.handlePostgresError("list slides", err)
		}
		slides = append(slides, slide)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.handlePostgresError("list slides", err)
	}
	return slides, total, nil
}

func (r *Repository) MaxDisplayOrder(ctx context.Context) (int, error) {
	var highest int
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(display_order), 0) FROM hero_slides`).Scan(&highest); err != nil {
		return 0, r.handlePostgresError("max display order", err)
	}
	return highest, nil
}

// Media asset operations

const mediaColumns = `id, file_name, file_url, public_id, file_type, mime_type, file_size,
	width, height, alt, created_at, updated_at`

func scanMedia(row pgx.Row) (*cms.MediaAsset, error) {
	var asset cms.MediaAsset
	err := row.Scan(
		&asset.ID, &asset.FileName, &asset.FileURL, &asset.PublicID, &asset.FileType,
		&asset.MimeType, &asset.FileSize, &asset.Width, &asset.Height, &asset.Alt,
		&asset.CreatedAt, &asset.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *Repository) CreateMedia(ctx context.Context, asset *cms.MediaAsset) error {
	query := `
		INSERT INTO media_assets (` + mediaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		asset.ID, asset.FileName, asset.FileURL, asset.PublicID, asset.FileType,
		asset.MimeType, asset.FileSize, asset.Width, asset.Height, asset.Alt,
		asset.CreatedAt, asset.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create media", err)
	}
	return nil
}

func (r *Repository) GetMedia(ctx context.Context, id uuid.UUID) (*cms.MediaAsset, error) {
	asset, err := scanMedia(r.db.QueryRow(ctx, `SELECT `+mediaColumns+` FROM media_assets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrMediaNotFound
		}
		return nil, r.handlePostgresError("get media", err)
	}
	return asset, nil
}

func (r *Repository) UpdateMedia(ctx context.Context, asset *cms.MediaAsset) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE media_assets SET alt = $2, updated_at = $3 WHERE id = $1`,
		asset.ID, asset.Alt, asset.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update media", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrMediaNotFound
	}
	return nil
}

func (r *Repository) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM media_assets WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete media", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrMediaNotFound
	}
	return nil
}

func (r *Repository) ListMedia(ctx context.Context, filter cms.MediaFilter, params cms.ListParams) ([]*cms.MediaAsset, int64, error) {
	where := ""
	args := []interface{}{}
	if filter.FileType != "" {
		args = append(args, filter.FileType)
		where = " WHERE file_type = $1"
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM media_assets`+where, args...).Scan(&total); err != nil {
		return nil, 0, r.handlePostgresError("count media", err)
	}

	query := `SELECT ` + mediaColumns + ` FROM media_assets` + where +
		` ORDER BY created_at DESC, id` + pageClause(params, len(args))
	rows, err := r.db.Query(ctx, query, append(args, pageArgs(params)...)...)
	if err != nil {
		return nil, 0, r.handlePostgresError("list media", err)
	}
	defer rows.Close()

	assets := []*cms.MediaAsset{}
	for rows.Next() {
		asset, err := scanMedia(rows)
		if err != nil {
			return nil, 0, r.handlePostgresError("list media", err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.handlePostgresError("list media", err)
	}
	return assets, total, nil
}

// Helpers

var postSortColumns = map[cms.SortField]string{
	cms.SortCreatedAt:   "created_at",
	cms.SortUpdatedAt:   "updated_at",
	cms.SortPublishedAt: "published_at",
	cms.SortTitle:       "title",
	cms.SortViewCount:   "view_count",
}

// postOrderBy renders a whitelisted ORDER BY expression.
func postOrderBy(order cms.SortOrder) string {
	column, ok := postSortColumns[order.Field]
	if !ok {
		return "created_at DESC, id"
	}
	if order.Desc {
		return column + " DESC NULLS LAST, id"
	}
	return column + " ASC NULLS LAST, id"
}

// pageClause returns the LIMIT/OFFSET placeholders that follow n existing
// arguments, or nothing when the listing is unbounded.
func pageClause(params cms.ListParams, n int) string {
	if params.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
}

func pageArgs(params cms.ListParams) []interface{} {
	if params.Limit <= 0 {
		return nil
	}
	return []interface{}{params.Limit, params.Offset()}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
