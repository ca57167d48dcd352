package memory

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
)

// DefaultURLPrefix prefixes the URLs handed out for stored assets.
const DefaultURLPrefix = "memory://assets/"

// Backend is an in-memory implementation of the cms.AssetHost interface
type Backend struct {
	mu        sync.RWMutex
	objects   map[string][]byte
	mimeTypes map[string]string
	urlPrefix string
}

// New creates a new in-memory asset host
func New() *Backend {
	return NewWithURLPrefix(DefaultURLPrefix)
}

// NewWithURLPrefix creates an in-memory asset host whose URLs start with prefix
func NewWithURLPrefix(prefix string) *Backend {
	return &Backend{
		objects:   make(map[string][]byte),
		mimeTypes: make(map[string]string),
		urlPrefix: prefix,
	}
}

func (b *Backend) Name() string {
	return "memory"
}

// Upload stores the content under params.ObjectKey
func (b *Backend) Upload(ctx context.Context, reader io.Reader, params cms.UploadParams) (*cms.HostedAsset, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[params.ObjectKey] = data
	mimeType := params.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	b.mimeTypes[params.ObjectKey] = mimeType

	return &cms.HostedAsset{
		URL:      strings.TrimSuffix(b.urlPrefix, "/") + "/" + params.ObjectKey,
		PublicID: params.ObjectKey,
		Bytes:    int64(len(data)),
	}, nil
}

// Delete removes the object stored under publicID
func (b *Backend) Delete(ctx context.Context, publicID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[publicID]; !exists {
		return cms.ErrAssetNotFound
	}
	delete(b.objects, publicID)
	delete(b.mimeTypes, publicID)
	return nil
}

// Get returns a copy of a stored object and its mime type
func (b *Backend) Get(publicID string) ([]byte, string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[publicID]
	if !exists {
		return nil, "", false
	}
	return append([]byte(nil), data...), b.mimeTypes[publicID], true
}

// Len returns the number of stored objects
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}
