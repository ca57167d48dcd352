package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
)

// DefaultURLPrefix is where the API serves the files of this backend.
const DefaultURLPrefix = "/uploads"

// Backend is a filesystem implementation of the cms.AssetHost interface
type Backend struct {
	baseDir   string
	urlPrefix string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir   string // Base directory for storing files
	URLPrefix string // Public URL prefix the files are served under
}

// New creates a new filesystem asset host
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if config.URLPrefix == "" {
		config.URLPrefix = DefaultURLPrefix
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir:   config.BaseDir,
		urlPrefix: strings.TrimSuffix(config.URLPrefix, "/"),
	}, nil
}

func (b *Backend) Name() string {
	return "fs"
}

// BaseDir returns the directory files are written to.
func (b *Backend) BaseDir() string {
	return b.baseDir
}

// Upload writes the content to <baseDir>/<key>. The file appears under its
// final name only once fully written.
func (b *Backend) Upload(ctx context.Context, reader io.Reader, params cms.UploadParams) (*cms.HostedAsset, error) {
	filePath, err := b.path(params.ObjectKey)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, reader)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	return &cms.HostedAsset{
		URL:      b.urlPrefix + "/" + params.ObjectKey,
		PublicID: params.ObjectKey,
		Bytes:    n,
	}, nil
}

// Delete removes the file stored under publicID
func (b *Backend) Delete(ctx context.Context, publicID string) error {
	filePath, err := b.path(publicID)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return cms.ErrAssetNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// path resolves a key inside the base directory, rejecting keys that
// would escape it.
func (b *Backend) path(key string) (string, error) {
	if key == "" {
		return "", errors.New("object key is required")
	}
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(b.baseDir, clean), nil
}
