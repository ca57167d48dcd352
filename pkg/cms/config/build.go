package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/cache"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/repo/memory"
	repomongo "github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/repo/mongo"
	repopg "github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/repo/postgres"
	fsstorage "github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/storage/fs"
	gcsstorage "github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/storage/gcs"
	memorystorage "github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/storage/memory"
	s3storage "github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/storage/s3"
)

// closers releases whatever BuildService opened, last opened first.
type closers []func() error

func (c *closers) add(fn func() error) {
	*c = append(*c, fn)
}

func (c closers) close() error {
	var errs []error
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BuildService assembles a cms.Service from the configuration. The returned
// cleanup function closes database pools, clients and caches.
func (c *Config) BuildService(ctx context.Context) (cms.Service, func() error, error) {
	var cl closers
	fail := func(err error) (cms.Service, func() error, error) {
		_ = cl.close()
		return nil, nil, err
	}

	repo, err := c.buildRepository(ctx, &cl)
	if err != nil {
		return fail(fmt.Errorf("failed to build repository: %w", err))
	}

	host, err := c.buildAssetHost(ctx, &cl)
	if err != nil {
		return fail(fmt.Errorf("failed to build asset host: %w", err))
	}

	options := []cms.Option{
		cms.WithRepository(repo),
		cms.WithAssetHost(host),
		cms.WithFolder(c.Storage.Folder),
		cms.WithPagination(c.Pagination.DefaultLimit, c.Pagination.MaxLimit),
		cms.WithMaxUploadBytes(c.Upload.MaxBytes),
	}

	slideCache, err := c.buildCache(ctx, &cl)
	if err != nil {
		return fail(fmt.Errorf("failed to build cache: %w", err))
	}
	if slideCache != nil {
		options = append(options, cms.WithSlideCache(slideCache))
	}

	svc, err := cms.New(options...)
	if err != nil {
		return fail(err)
	}
	return svc, cl.close, nil
}

func (c *Config) buildRepository(ctx context.Context, cl *closers) (cms.Repository, error) {
	switch c.Database.Type {
	case DatabaseMemory:
		return memory.New(), nil
	case DatabasePostgres:
		if c.Database.AutoMigrate {
			if err := repopg.Migrate(ctx, c.Database.URL, c.Database.Schema); err != nil {
				return nil, err
			}
			slog.Info("Applied database migrations", "schema", c.Database.Schema)
		}
		pool, err := repopg.NewPool(ctx, c.Database.URL, c.Database.Schema)
		if err != nil {
			return nil, err
		}
		cl.add(func() error {
			pool.Close()
			return nil
		})
		return repopg.NewWithPool(pool), nil
	case DatabaseMongo:
		client, repo, err := repomongo.Connect(ctx, c.Database.MongoURI, c.Database.MongoDatabase)
		if err != nil {
			return nil, err
		}
		cl.add(func() error {
			return client.Disconnect(context.Background())
		})
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}
}

func (c *Config) buildAssetHost(ctx context.Context, cl *closers) (cms.AssetHost, error) {
	switch c.Storage.Type {
	case StorageMemory:
		return memorystorage.New(), nil
	case StorageFS:
		return fsstorage.New(fsstorage.Config{
			BaseDir:   c.Storage.FSBaseDir,
			URLPrefix: c.Storage.FSURLPrefix,
		})
	case StorageS3:
		return s3storage.New(ctx, s3storage.Config{
			Region:                 c.Storage.S3.Region,
			Bucket:                 c.Storage.S3.Bucket,
			AccessKeyID:            c.Storage.S3.AccessKeyID,
			SecretAccessKey:        c.Storage.S3.SecretAccessKey,
			Endpoint:               c.Storage.S3.Endpoint,
			UsePathStyle:           c.Storage.S3.UsePathStyle,
			PublicBaseURL:          c.Storage.S3.PublicBaseURL,
			CreateBucketIfNotExist: c.Storage.S3.CreateBucket,
		})
	case StorageGCS:
		backend, err := gcsstorage.New(ctx, gcsstorage.Config{
			Bucket:          c.Storage.GCS.Bucket,
			CredentialsFile: c.Storage.GCS.CredentialsFile,
			CDNDomain:       c.Storage.GCS.CDNDomain,
		})
		if err != nil {
			return nil, err
		}
		cl.add(backend.Close)
		return backend, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
}

// buildCache returns nil when caching is disabled.
func (c *Config) buildCache(ctx context.Context, cl *closers) (cms.SlideCache, error) {
	switch c.Cache.Type {
	case CacheNone, "":
		return nil, nil
	case CacheMemory:
		return cache.NewMemory(c.Cache.TTL), nil
	case CacheRedis:
		rc, err := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
			TTL:      c.Cache.TTL,
		})
		if err != nil {
			return nil, err
		}
		cl.add(rc.Close)
		return rc, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", c.Cache.Type)
	}
}
