package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is where the active slide list is stored.
const DefaultRedisKey = "cms:hero-slides:active"

// Redis is a SlideCache shared by every API instance.
type Redis struct {
	rdb redis.UniversalClient
	key string
	ttl time.Duration
}

// RedisConfig options for the redis cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
}

// NewRedis connects to redis and verifies the connection.
func NewRedis(ctx context.Context, config RedisConfig) (*Redis, error) {
	if config.Addr == "" {
		return nil, errors.New("redis address is required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        config.Addr,
		Password:    config.Password,
		DB:          config.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisWithClient(rdb, config.Key, config.TTL), nil
}

// NewRedisWithClient wraps an existing client. Empty key and non-positive
// ttl fall back to the defaults.
func NewRedisWithClient(rdb redis.UniversalClient, key string, ttl time.Duration) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{rdb: rdb, key: key, ttl: ttl}
}

func (c *Redis) GetActiveSlides(ctx context.Context) ([]*cms.HeroSlide, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", c.key, err)
	}

	slides, err := decodeSlides(raw)
	if err != nil {
		return nil, false, err
	}
	return slides, true, nil
}

func (c *Redis) SetActiveSlides(ctx context.Context, slides []*cms.HeroSlide) error {
	raw, err := json.Marshal(slides)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", c.key, err)
	}
	return nil
}

func (c *Redis) InvalidateActiveSlides(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", c.key, err)
	}
	return nil
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}

func decodeSlides(raw []byte) ([]*cms.HeroSlide, error) {
	var slides []*cms.HeroSlide
	if err := json.Unmarshal(raw, &slides); err != nil {
		return nil, fmt.Errorf("decode cached slides: %w", err)
	}
	if slides == nil {
		slides = []*cms.HeroSlide{}
	}
	return slides, nil
}
