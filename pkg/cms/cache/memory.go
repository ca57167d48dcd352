// Package cache holds SlideCache implementations for the active hero slide
// list, which every page view of the marketing site reads.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
)

// DefaultTTL bounds how long a cached slide list is served.
const DefaultTTL = time.Minute

// Memory is an in-process SlideCache with a TTL.
type Memory struct {
	mu      sync.RWMutex
	slides  []*cms.HeroSlide
	fetched time.Time
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates an in-process cache. A non-positive ttl uses DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{ttl: ttl, now: time.Now}
}

func (c *Memory) valid() bool {
	return c.slides != nil && c.now().Sub(c.fetched) < c.ttl
}

func (c *Memory) GetActiveSlides(ctx context.Context) ([]*cms.HeroSlide, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid() {
		return nil, false, nil
	}
	return copySlides(c.slides), true, nil
}

func (c *Memory) SetActiveSlides(ctx context.Context, slides []*cms.HeroSlide) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slides = copySlides(slides)
	c.fetched = c.now()
	return nil
}

// InvalidateActiveSlides clears the cache so the next read loads from the store.
func (c *Memory) InvalidateActiveSlides(ctx context.Context) error {
	c.mu.Lock()
	c.slides = nil
	c.mu.Unlock()
	return nil
}

func copySlides(slides []*cms.HeroSlide) []*cms.HeroSlide {
	out := make([]*cms.HeroSlide, len(slides))
	for i, s := range slides {
		slideCopy := *s
		out[i] = &slideCopy
	}
	return out
}
