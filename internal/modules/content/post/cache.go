package post

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saima-salar/blog-website-with-sanity-schema/internal/models"
)

// DefaultRevalidate matches the page regeneration window of the site.
const DefaultRevalidate = 60 * time.Second

const refreshTimeout = 10 * time.Second

type cacheEntry struct {
	post       *models.Post
	notFound   bool
	fetchedAt  time.Time
	refreshing bool
}

// Cache is the stale-while-revalidate policy for resolved article documents.
//
// A fresh entry is served as-is. A stale entry is still served immediately,
// and the hit kicks off a background re-resolve; the refresh flag keeps one
// flight per slug in the common case but concurrent duplicate reads are
// harmless since resolution is idempotent. A miss resolves synchronously, so
// an unknown slug gets an on-demand attempt before the page 404s, and the
// not-found outcome is cached for the same window.
type Cache struct {
	ttl     time.Duration
	resolve func(ctx context.Context, slug string) (*models.Post, error)
	log     *zap.Logger

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

// NewCache builds a cache around a resolve function. A non-positive ttl falls
// back to DefaultRevalidate.
func NewCache(ttl time.Duration, resolve func(ctx context.Context, slug string) (*models.Post, error), log *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultRevalidate
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		ttl:     ttl,
		resolve: resolve,
		log:     log,
		entries: make(map[string]*cacheEntry),
	}
}

// Get returns the cached document for slug, resolving on demand on a miss.
// Not-found is reported as ErrPostNotFound, both fresh and cached.
func (c *Cache) Get(ctx context.Context, slug string) (*models.Post, error) {
	c.mu.Lock()
	if e, ok := c.entries[slug]; ok {
		post, notFound := e.post, e.notFound
		if time.Since(e.fetchedAt) >= c.ttl && !e.refreshing {
			e.refreshing = true
			go c.refresh(slug)
		}
		c.mu.Unlock()
		if notFound {
			return nil, ErrPostNotFound
		}
		return post, nil
	}
	c.mu.Unlock()

	post, err := c.resolve(ctx, slug)
	switch {
	case errors.Is(err, ErrPostNotFound):
		c.put(slug, nil, true)
		return nil, err
	case err != nil:
		// Resolution failures are not cached; the next request retries.
		return nil, err
	}
	c.put(slug, post, false)
	return post, nil
}

// refresh re-resolves one slug in the background. On a backend failure the
// stale entry stays in place and keeps being served.
func (c *Cache) refresh(slug string) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	post, err := c.resolve(ctx, slug)
	switch {
	case errors.Is(err, ErrPostNotFound):
		c.put(slug, nil, true)
	case err != nil:
		c.log.Warn("background revalidation failed",
			zap.String("slug", slug), zap.Error(err))
		c.clearRefreshing(slug)
	default:
		c.put(slug, post, false)
	}
}

func (c *Cache) put(slug string, post *models.Post, notFound bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[slug] = &cacheEntry{post: post, notFound: notFound, fetchedAt: time.Now()}
}

func (c *Cache) clearRefreshing(slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[slug]; ok {
		e.refreshing = false
	}
}
