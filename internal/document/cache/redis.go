package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/innovatelu/docstore/internal/document"
	"github.com/innovatelu/docstore/internal/document/repository"
	"github.com/innovatelu/docstore/pkg/metrics"
)

// RedisCache decorates a Repository with a per-document JSON cache under
// key "doc:<id>". Saves write through; lookups consult Redis first and
// populate it on a miss. Search and List always hit the inner repository
// since their results depend on the whole store. The inner repository stays
// authoritative: Redis failures degrade to plain repository access.
type RedisCache struct {
	inner  repository.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func New(inner repository.Repository, client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{inner: inner, client: client, prefix: "doc:", ttl: ttl}
}

func (c *RedisCache) key(id string) string { return c.prefix + id }

func (c *RedisCache) Save(ctx context.Context, doc *document.Document) (*document.Document, error) {
	saved, err := c.inner.Save(ctx, doc)
	if err != nil {
		return nil, err
	}
	c.put(ctx, saved)
	return saved, nil
}

func (c *RedisCache) FindByID(ctx context.Context, id string) (*document.Document, error) {
	if b, err := c.client.Get(ctx, c.key(id)).Bytes(); err == nil {
		var d document.Document
		if err := json.Unmarshal(b, &d); err == nil {
			metrics.CacheHits.Inc()
			return &d, nil
		}
	}
	metrics.CacheMisses.Inc()
	d, err := c.inner.FindByID(ctx, id)
	if err != nil || d == nil {
		return d, err
	}
	c.put(ctx, d)
	return d, nil
}

func (c *RedisCache) Search(ctx context.Context, req *document.SearchRequest) ([]*document.Document, error) {
	return c.inner.Search(ctx, req)
}

func (c *RedisCache) List(ctx context.Context) ([]*document.Document, error) {
	return c.inner.List(ctx)
}

func (c *RedisCache) put(ctx context.Context, d *document.Document) {
	b, err := json.Marshal(d)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(d.ID), b, c.ttl).Err()
}
