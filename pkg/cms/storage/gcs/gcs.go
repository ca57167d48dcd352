package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
	"google.golang.org/api/option"
)

const (
	uploadTimeout = 2 * time.Minute
	deleteTimeout = 30 * time.Second
)

// Config options for the Google Cloud Storage backend
type Config struct {
	Bucket          string // Bucket name
	CredentialsFile string // Service account JSON; empty uses application default credentials
	CDNDomain       string // Optional domain fronting the bucket
}

// Backend is a Google Cloud Storage implementation of the cms.AssetHost interface
type Backend struct {
	client    *storage.Client
	bucket    string
	cdnDomain string
}

// New creates a storage client and the asset host around it
func New(ctx context.Context, config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return NewWithClient(client, config), nil
}

// NewWithClient wraps an existing storage client
func NewWithClient(client *storage.Client, config Config) *Backend {
	return &Backend{
		client:    client,
		bucket:    config.Bucket,
		cdnDomain: strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(config.CDNDomain, "https://"), "http://"), "/"),
	}
}

func (b *Backend) Name() string {
	return "gcs"
}

// Upload streams the content into the bucket under params.ObjectKey
func (b *Backend) Upload(ctx context.Context, reader io.Reader, params cms.UploadParams) (*cms.HostedAsset, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := b.client.Bucket(b.bucket).Object(params.ObjectKey).NewWriter(ctx)
	w.ContentType = params.MimeType
	w.CacheControl = "public, max-age=31536000, immutable"

	n, err := io.Copy(w, reader)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize GCS object: %w", err)
	}

	return &cms.HostedAsset{
		URL:      b.publicURL(params.ObjectKey),
		PublicID: params.ObjectKey,
		Bytes:    n,
	}, nil
}

// Delete removes the object stored under publicID
func (b *Backend) Delete(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	if err := b.client.Bucket(b.bucket).Object(publicID).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return cms.ErrAssetNotFound
		}
		return fmt.Errorf("failed to delete GCS object %q: %w", publicID, err)
	}
	return nil
}

// Close releases the storage client.
func (b *Backend) Close() error {
	return b.client.Close()
}

func (b *Backend) publicURL(key string) string {
	if b.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", b.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.bucket, key)
}
