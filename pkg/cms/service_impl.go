package cms

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/imaging"
)

// slugWriteRetries bounds how often a write is retried after the store
// reports a concurrent slug conflict.
const slugWriteRetries = 3

// service implements the Service interface
type service struct {
	repository     Repository
	assetHost      AssetHost
	slideCache     SlideCache
	// slideGen counts slide writes so a list read before a write is not
	// left in the cache after it.
	slideGen       atomic.Uint64
	folder         string
	defaultLimit   int
	maxLimit       int
	maxUploadBytes int64
	imageOptions   imaging.Options
	now            func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the entity store
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithAssetHost sets where uploaded media is stored
func WithAssetHost(host AssetHost) Option {
	return func(s *service) {
		s.assetHost = host
	}
}

// WithSlideCache caches the active slide list
func WithSlideCache(cache SlideCache) Option {
	return func(s *service) {
		s.slideCache = cache
	}
}

// WithFolder sets the asset host folder for uploads
func WithFolder(folder string) Option {
	return func(s *service) {
		s.folder = folder
	}
}

// WithPagination overrides the default and maximum page sizes
func WithPagination(defaultLimit, maxLimit int) Option {
	return func(s *service) {
		if defaultLimit > 0 {
			s.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
	}
}

// WithMaxUploadBytes sets the upload size limit
func WithMaxUploadBytes(n int64) Option {
	return func(s *service) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithImageOptions overrides the image optimisation bounds
func WithImageOptions(opts imaging.Options) Option {
	return func(s *service) {
		s.imageOptions = opts
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		folder:         DefaultFolder,
		defaultLimit:   DefaultLimit,
		maxLimit:       DefaultMaxLimit,
		maxUploadBytes: DefaultMaxUploadBytes,
		imageOptions:   imaging.DefaultOptions(),
		now:            func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return s, nil
}
