// Package config loads the CMS server configuration from defaults, an
// optional YAML file and environment variables, and assembles a cms.Service
// from it.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store types
const (
	DatabaseMemory   = "memory"
	DatabasePostgres = "postgres"
	DatabaseMongo    = "mongo"
)

// Asset host types
const (
	StorageMemory = "memory"
	StorageFS     = "fs"
	StorageS3     = "s3"
	StorageGCS    = "gcs"
)

// Cache types
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Option applies configuration to a Config instance.
type Option func(*Config) error

// Config is the complete server configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Storage    StorageConfig    `yaml:"storage"`
	Cache      CacheConfig      `yaml:"cache"`
	Pagination PaginationConfig `yaml:"pagination"`
	Upload     UploadConfig     `yaml:"upload"`
}

// ServerConfig holds HTTP and site settings.
type ServerConfig struct {
	Port            string `yaml:"port" env:"PORT" env-default:"5000" env-description:"HTTP listen port"`
	Environment     string `yaml:"environment" env:"ENVIRONMENT" env-default:"development" env-description:"development, production or testing"`
	LogLevel        string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	FrontendURL     string `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:3000" env-description:"Origin allowed by CORS"`
	SiteURL         string `yaml:"site_url" env:"SITE_URL" env-default:"http://localhost:3000" env-description:"Public site base URL used in the RSS feed and sitemap"`
	SiteTitle       string `yaml:"site_title" env:"SITE_TITLE" env-default:"Antigravity Blog" env-description:"RSS channel title"`
	SiteDescription string `yaml:"site_description" env:"SITE_DESCRIPTION" env-description:"RSS channel description"`
}

// DatabaseConfig selects and configures the entity store.
type DatabaseConfig struct {
	Type          string `yaml:"type" env:"DATABASE_TYPE" env-default:"memory" env-description:"memory, postgres or mongo"`
	URL           string `yaml:"url" env:"DATABASE_URL" env-description:"Postgres connection string; a mongodb:// URL selects MongoDB"`
	Schema        string `yaml:"schema" env:"DB_SCHEMA" env-default:"cms" env-description:"Postgres schema holding the CMS tables"`
	AutoMigrate   bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"false" env-description:"Apply pending Postgres migrations on startup"`
	MongoURI      string `yaml:"mongo_uri" env:"MONGODB_URI" env-description:"MongoDB connection string"`
	MongoDatabase string `yaml:"mongo_database" env:"MONGODB_DATABASE" env-default:"antigravity_cms" env-description:"MongoDB database name"`
}

// StorageConfig selects and configures the asset host.
type StorageConfig struct {
	Type        string    `yaml:"type" env:"STORAGE_TYPE" env-default:"memory" env-description:"memory, fs, s3 or gcs"`
	Folder      string    `yaml:"folder" env:"STORAGE_FOLDER" env-default:"antigravity-cms" env-description:"Folder prefix of uploaded object keys"`
	FSBaseDir   string    `yaml:"fs_base_dir" env:"FS_BASE_DIR" env-default:"./uploads" env-description:"Directory of the filesystem asset host"`
	FSURLPrefix string    `yaml:"fs_url_prefix" env:"FS_URL_PREFIX" env-default:"/uploads" env-description:"URL prefix the filesystem assets are served under"`
	S3          S3Config  `yaml:"s3"`
	GCS         GCSConfig `yaml:"gcs"`
}

// S3Config configures the S3 compatible asset host.
type S3Config struct {
	Bucket          string `yaml:"bucket" env:"S3_BUCKET" env-description:"Bucket name"`
	Region          string `yaml:"region" env:"S3_REGION" env-default:"us-east-1" env-description:"Bucket region"`
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT" env-description:"Custom endpoint for MinIO and other S3 compatible services"`
	AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID" env-description:"Access key; empty uses the default credential chain"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY" env-description:"Secret key"`
	UsePathStyle    bool   `yaml:"use_path_style" env:"S3_USE_PATH_STYLE" env-default:"false" env-description:"Use path-style addressing"`
	PublicBaseURL   string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL" env-description:"CDN or website base for public asset URLs"`
	CreateBucket    bool   `yaml:"create_bucket" env:"S3_CREATE_BUCKET" env-default:"false" env-description:"Create the bucket when missing"`
}

// GCSConfig configures the Google Cloud Storage asset host.
type GCSConfig struct {
	Bucket          string `yaml:"bucket" env:"GCS_BUCKET" env-description:"Bucket name"`
	CredentialsFile string `yaml:"credentials_file" env:"GCS_CREDENTIALS_FILE" env-description:"Service account JSON; empty uses application default credentials"`
	CDNDomain       string `yaml:"cdn_domain" env:"GCS_CDN_DOMAIN" env-description:"Domain fronting the bucket"`
}

// CacheConfig configures the active slide cache.
type CacheConfig struct {
	Type          string        `yaml:"type" env:"CACHE_TYPE" env-default:"none" env-description:"none, memory or redis"`
	TTL           time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"60s" env-description:"Lifetime of the cached active slide list"`
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR" env-description:"Redis host:port"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD" env-description:"Redis password"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB" env-default:"0" env-description:"Redis database number"`
}

// PaginationConfig bounds list page sizes.
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit" env:"PAGINATION_DEFAULT_LIMIT" env-default:"10" env-description:"Page size when none is requested"`
	MaxLimit     int `yaml:"max_limit" env:"PAGINATION_MAX_LIMIT" env-default:"100" env-description:"Largest page size a client may request"`
}

// UploadConfig bounds media uploads.
type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes" env:"UPLOAD_MAX_BYTES" env-default:"10485760" env-description:"Largest accepted upload in bytes"`
}

// Load constructs a Config by applying the supplied options on top of defaults.
func Load(opts ...Option) (*Config, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:        "5000",
			Environment: "development",
			LogLevel:    "info",
			FrontendURL: "http://localhost:3000",
			SiteURL:     "http://localhost:3000",
			SiteTitle:   "Antigravity Blog",
		},
		Database: DatabaseConfig{
			Type:          DatabaseMemory,
			Schema:        "cms",
			MongoDatabase: "antigravity_cms",
		},
		Storage: StorageConfig{
			Type:        StorageMemory,
			Folder:      "antigravity-cms",
			FSBaseDir:   "./uploads",
			FSURLPrefix: "/uploads",
			S3:          S3Config{Region: "us-east-1"},
		},
		Cache: CacheConfig{
			Type: CacheNone,
			TTL:  time.Minute,
		},
		Pagination: PaginationConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
		Upload: UploadConfig{
			MaxBytes: 10 << 20,
		},
	}
}

// WithFile reads a YAML configuration file. Environment variables still
// take precedence over file values.
func WithFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		if err := cleanenv.ReadConfig(path, c); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv applies environment variable overrides. When DATABASE_TYPE is
// unset the store is inferred from DATABASE_URL or MONGODB_URI.
func WithEnv() Option {
	return func(c *Config) error {
		if err := cleanenv.ReadEnv(c); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		if _, ok := os.LookupEnv("DATABASE_TYPE"); !ok {
			c.Database.Type = inferDatabaseType(c.Database)
		}
		if c.Database.Type == DatabaseMongo && c.Database.MongoURI == "" && isMongoURL(c.Database.URL) {
			c.Database.MongoURI = c.Database.URL
		}
		return nil
	}
}

func isMongoURL(s string) bool {
	return strings.HasPrefix(s, "mongodb://") || strings.HasPrefix(s, "mongodb+srv://")
}

func inferDatabaseType(db DatabaseConfig) string {
	switch {
	case isMongoURL(db.URL):
		return DatabaseMongo
	case db.URL != "":
		return DatabasePostgres
	case db.MongoURI != "":
		return DatabaseMongo
	default:
		return db.Type
	}
}

// WithDatabase selects the entity store.
func WithDatabase(dbType, url string) Option {
	return func(c *Config) error {
		c.Database.Type = dbType
		switch dbType {
		case DatabasePostgres:
			c.Database.URL = url
		case DatabaseMongo:
			c.Database.MongoURI = url
		}
		return nil
	}
}

// WithStorage selects the asset host type.
func WithStorage(storageType string) Option {
	return func(c *Config) error {
		c.Storage.Type = storageType
		return nil
	}
}

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *Config) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Server.Port = port
		return nil
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}

	switch c.Database.Type {
	case DatabaseMemory:
	case DatabasePostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when using postgres"))
		}
	case DatabaseMongo:
		if c.Database.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required when using mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported database type %q (use memory, postgres or mongo)", c.Database.Type))
	}

	switch c.Storage.Type {
	case StorageMemory:
	case StorageFS:
		if c.Storage.FSBaseDir == "" {
			errs = append(errs, errors.New("FS_BASE_DIR is required when using fs storage"))
		}
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required when using s3 storage"))
		}
	case StorageGCS:
		if c.Storage.GCS.Bucket == "" {
			errs = append(errs, errors.New("GCS_BUCKET is required when using gcs storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage type %q (use memory, fs, s3 or gcs)", c.Storage.Type))
	}

	switch c.Cache.Type {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when using redis cache"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported cache type %q (use none, memory or redis)", c.Cache.Type))
	}

	if c.Pagination.DefaultLimit < 1 || c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		errs = append(errs, errors.New("pagination limits must satisfy 1 <= default <= max"))
	}
	if c.Upload.MaxBytes < 1 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// AllowedOrigins returns the CORS origins besides *.vercel.app.
func (c *Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:3000"}
	if c.Server.FrontendURL != "" && c.Server.FrontendURL != origins[0] {
		origins = append(origins, c.Server.FrontendURL)
	}
	return origins
}

// WriteUsage prints every supported environment variable with its
// description and default.
func WriteUsage(w io.Writer) error {
	var cfg Config
	header := "Environment variables:"
	usage, err := cleanenv.GetDescription(&cfg, &header)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, usage)
	return err
}
