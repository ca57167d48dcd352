package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	PostsCollection  = "blogposts"
	SlidesCollection = "heroslides"
	MediaCollection  = "mediaassets"
)

// TextIndexName names the weighted text index over posts.
const TextIndexName = "blog_text_search"

// Repository implements cms.Repository on MongoDB
type Repository struct {
	posts  *mongo.Collection
	slides *mongo.Collection
	media  *mongo.Collection
}

// New creates a repository on the given database. Call EnsureIndexes once
// before use so slug uniqueness and text search are enforced.
func New(db *mongo.Database) *Repository {
	return &Repository{
		posts:  db.Collection(PostsCollection),
		slides: db.Collection(SlidesCollection),
		media:  db.Collection(MediaCollection),
	}
}

// Connect dials uri, verifies the connection and prepares the indexes.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *Repository, error) {
	if uri == "" {
		return nil, nil, errors.New("mongodb_uri is required for mongo")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := New(client.Database(database))
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}
	return client, repo, nil
}

// EnsureIndexes creates the unique slug index, the weighted text index and
// the listing indexes. It is idempotent.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	postIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("slug_unique"),
		},
		{
			Keys: bson.D{{Key: "title", Value: "text"}, {Key: "excerpt", Value: "text"}, {Key: "content", Value: "text"}},
			Options: options.Index().SetName(TextIndexName).SetWeights(bson.D{
				{Key: "title", Value: 10},
				{Key: "excerpt", Value: 5},
				{Key: "content", Value: 1},
			}),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "published_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.posts.Indexes().CreateMany(ctx, postIndexes); err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}

	slideIndex := mongo.IndexModel{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "display_order", Value: 1}}}
	if _, err := r.slides.Indexes().CreateOne(ctx, slideIndex); err != nil {
		return fmt.Errorf("failed to create slide indexes: %w", err)
	}

	mediaIndex := mongo.IndexModel{Keys: bson.D{{Key: "file_type", Value: 1}, {Key: "created_at", Value: -1}}}
	if _, err := r.media.Indexes().CreateOne(ctx, mediaIndex); err != nil {
		return fmt.Errorf("failed to create media indexes: %w", err)
	}
	return nil
}

func handleMongoError(operation string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return cms.ErrSlugConflict
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Blog post operations

var summaryProjection = bson.D{{Key: "content", Value: 0}}

func (r *Repository) CreatePost(ctx context.Context, post *cms.BlogPost) error {
	if _, err := r.posts.InsertOne(ctx, toPostDocument(post)); err != nil {
		return handleMongoError("create post", err)
	}
	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*cms.BlogPost, error) {
	var doc postDocument
	err := r.posts.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cms.ErrPostNotFound
		}
		return nil, handleMongoError("get post", err)
	}
	return doc.toPost()
}

// UpdatePost replaces every field except view_count, which only
// RecordPostView changes.
func (r *Repository) UpdatePost(ctx context.Context, post *cms.BlogPost) error {
	doc := toPostDocument(post)
	update := bson.M{"$set": bson.M{
		"title":            doc.Title,
		"slug":             doc.Slug,
		"content":          doc.Content,
		"excerpt":          doc.Excerpt,
		"featured_image":   doc.FeaturedImage,
		"meta_title":       doc.MetaTitle,
		"meta_description": doc.MetaDescription,
		"status":           doc.Status,
		"published_at":     doc.PublishedAt,
		"updated_at":       doc.UpdatedAt,
	}}

	res, err := r.posts.UpdateByID(ctx, doc.ID, update)
	if err != nil {
		return handleMongoError("update post", err)
	}
	if res.MatchedCount == 0 {
		return cms.ErrPostNotFound
	}
	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return handleMongoError("delete post", err)
	}
	if res.DeletedCount == 0 {
		return cms.ErrPostNotFound
	}
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, filter cms.PostFilter, params cms.ListParams) ([]*cms.BlogPost, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	total, err := r.posts.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, handleMongoError("count posts", err)
	}

	opts := pageOptions(params).SetSort(postSort(params.Sort)).SetProjection(summaryProjection)
	posts, err := r.findPosts(ctx, "list posts", query, opts)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// SearchPosts uses the weighted text index and orders by text score, then
// by publish date.
func (r *Repository) SearchPosts(ctx context.Context, query string, params cms.ListParams) ([]*cms.BlogPost, int64, error) {
	filter := bson.M{
		"$text":  bson.M{"$search": query},
		"status": string(cms.PostStatusPublished),
	}

	total, err := r.posts.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, handleMongoError("count search results", err)
	}

	score := bson.M{"$meta": "textScore"}
	opts := pageOptions(params).
		SetProjection(bson.D{{Key: "content", Value: 0}, {Key: "score", Value: score}}).
		SetSort(bson.D{{Key: "score", Value: score}, {Key: "published_at", Value: -1}, {Key: "_id", Value: 1}})

	posts, err := r.findPosts(ctx, "search posts", filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *Repository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	filter := bson.M{"slug": slug, "_id": bson.M{"$ne": excludeID.String()}}
	n, err := r.posts.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, handleMongoError("check slug", err)
	}
	return n > 0, nil
}

// RecordPostView increments view_count of a published post atomically and
// returns the updated document.
func (r *Repository) RecordPostView(ctx context.Context, slug string) (*cms.BlogPost, error) {
	filter := bson.M{"slug": slug, "status": string(cms.PostStatusPublished)}
	update := bson.M{"$inc": bson.M{"view_count": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc postDocument
	err := r.posts.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cms.ErrPostNotFound
		}
		return nil, handleMongoError("record view", err)
	}
	return doc.toPost()
}

func (r *Repository) findPosts(ctx context.Context, operation string, filter interface{}, opts *options.FindOptions) ([]*cms.BlogPost, error) {
	cursor, err := r.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, handleMongoError(operation, err)
	}
	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, handleMongoError(operation, err)
	}

	posts := make([]*cms.BlogPost, 0, len(docs))
	for _, doc := range docs {
		post, err := doc.toPost()
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// Hero slide operations

func (r *Repository) CreateSlide(ctx context.Context, slide *cms.HeroSlide) error {
	if _, err := r.slides.InsertOne(ctx, toSlideDocument(slide)); err != nil {
		return handleMongoError("create slide", err)
	}
	return nil
}

func (r *Repository) GetSlide(ctx context.Context, id uuid.UUID) (*cms.HeroSlide, error) {
	var doc slideDocument
	err := r.slides.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cms.ErrSlideNotFound
		}
		return nil, handleMongoError("get slide", err)
	}
	return doc.toSlide()
}

func (r *Repository) UpdateSlide(ctx context.Context, slide *cms.HeroSlide) error {
	doc := toSlideDocument(slide)
	res, err := r.slides.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return handleMongoError("update slide", err)
	}
	if res.MatchedCount == 0 {
		return cms.ErrSlideNotFound
	}
	return nil
}

func (r *Repository) DeleteSlide(ctx context.Context, id uuid.UUID) error {
	res, err := r.slides.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return handleMongoError("delete slide", err)
	}
	if res.DeletedCount == 0 {
		return cms.ErrSlideNotFound
	}
	return nil
}

func (r *Repository) ListSlides(ctx context.Context, filter cms.SlideFilter, params cms.ListParams) ([]*cms.HeroSlide, int64, error) {
	query := bson.M{}
	if filter.ActiveOnly {
		query["is_active"] = true
	}

	total, err := r.slides.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, handleMongoError("count slides", err)
	}

	opts := pageOptions(params).SetSort(bson.D{
		{Key: "display_order", Value: 1},
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.slides.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, handleMongoError("list slides", err)
	}
	var docs []slideDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, handleMongoError("list slides", err)
	}

	slides := make([]*cms.HeroSlide, 0, len(docs))
	for _, doc := range docs {
		slide, err := doc.toSlide()
		if err != nil {
			return nil, 0, err
		}
		slides = append(slides, slide)
	}
	return slides, total, nil
}

func (r *Repository) MaxDisplayOrder(ctx context.Context) (int, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "display_order", Value: -1}}).
		SetProjection(bson.D{{Key: "display_order", Value: 1}})

	var doc slideDocument
	err := r.slides.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, handleMongoError("max display order", err)
	}
	return doc.DisplayOrder, nil
}

// Media asset operations

func (r *Repository) CreateMedia(ctx context.Context, asset *cms.MediaAsset) error {
	if _, err := r.media.InsertOne(ctx, toMediaDocument(asset)); err != nil {
		return handleMongoError("create media", err)
	}
	return nil
}

func (r *Repository) GetMedia(ctx context.Context, id uuid.UUID) (*cms.MediaAsset, error) {
	var doc mediaDocument
	err := r.media.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cms.ErrMediaNotFound
		}
		return nil, handleMongoError("get media", err)
	}
	return doc.toMedia()
}

func (r *Repository) UpdateMedia(ctx context.Context, asset *cms.MediaAsset) error {
	update := bson.M{"$set": bson.M{"alt": asset.Alt, "updated_at": asset.UpdatedAt.UTC()}}
	res, err := r.media.UpdateByID(ctx, asset.ID.String(), update)
	if err != nil {
		return handleMongoError("update media", err)
	}
	if res.MatchedCount == 0 {
		return cms.ErrMediaNotFound
	}
	return nil
}

func (r *Repository) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	res, err := r.media.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return handleMongoError("delete media", err)
	}
	if res.DeletedCount == 0 {
		return cms.ErrMediaNotFound
	}
	return nil
}

func (r *Repository) ListMedia(ctx context.Context, filter cms.MediaFilter, params cms.ListParams) ([]*cms.MediaAsset, int64, error) {
	query := bson.M{}
	if filter.FileType != "" {
		query["file_type"] = string(filter.FileType)
	}

	total, err := r.media.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, handleMongoError("count media", err)
	}

	opts := pageOptions(params).SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.media.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, handleMongoError("list media", err)
	}
	var docs []mediaDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, handleMongoError("list media", err)
	}

	assets := make([]*cms.MediaAsset, 0, len(docs))
	for _, doc := range docs {
		asset, err := doc.toMedia()
		if err != nil {
			return nil, 0, err
		}
		assets = append(assets, asset)
	}
	return assets, total, nil
}

// Helpers

var postSortFields = map[cms.SortField]string{
	cms.SortCreatedAt:   "created_at",
	cms.SortUpdatedAt:   "updated_at",
	cms.SortPublishedAt: "published_at",
	cms.SortTitle:       "title",
	cms.SortViewCount:   "view_count",
}

func postSort(order cms.SortOrder) bson.D {
	field, ok := postSortFields[order.Field]
	if !ok {
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	}
	dir := 1
	if order.Desc {
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: 1}}
}

func pageOptions(params cms.ListParams) *options.FindOptions {
	opts := options.Find()
	if params.Limit > 0 {
		opts.SetSkip(int64(params.Offset())).SetLimit(int64(params.Limit))
	}
	return opts
}
