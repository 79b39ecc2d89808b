package articles

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/neuroeducatimo/landing/pkg/locale"
	"github.com/neuroeducatimo/landing/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	slugKeyPrefix = "articles:slug:"
	listKeyPrefix = "articles:list:"
)

// RedisCache caches article lookups in Redis as JSON
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

func listKey(lang *locale.Code) string {
	if lang == nil {
		return listKeyPrefix + "all"
	}
	return listKeyPrefix + string(*lang)
}

func allListKeys() []string {
	keys := []string{listKey(nil)}
	for _, c := range locale.Supported() {
		c := c
		keys = append(keys, listKey(&c))
	}
	return keys
}

// GetArticle returns a cached article
func (c *RedisCache) GetArticle(ctx context.Context, slug string) (*Article, bool) {
	var a Article
	if !c.get(ctx, slugKeyPrefix+slug, &a) {
		return nil, false
	}
	return &a, true
}

// SetArticle caches an article under its slug
func (c *RedisCache) SetArticle(ctx context.Context, a *Article) {
	c.set(ctx, slugKeyPrefix+a.Slug, a)
}

// GetList returns a cached article list
func (c *RedisCache) GetList(ctx context.Context, lang *locale.Code) ([]*Article, bool) {
	var list []*Article
	if !c.get(ctx, listKey(lang), &list) {
		return nil, false
	}
	return list, true
}

// SetList caches an article list
func (c *RedisCache) SetList(ctx context.Context, lang *locale.Code, list []*Article) {
	c.set(ctx, listKey(lang), list)
}

// Invalidate drops the given slugs and every cached list
func (c *RedisCache) Invalidate(ctx context.Context, slugs ...string) {
	keys := allListKeys()
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, slugKeyPrefix+s)
		}
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.WithContext(ctx).Warn("Failed to invalidate article cache", zap.Error(err))
	}
}

func (c *RedisCache) get(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithContext(ctx).Warn("Article cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.WithContext(ctx).Warn("Article cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *RedisCache) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.WithContext(ctx).Warn("Article cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// NoopCache never stores anything
type NoopCache struct{}

func (NoopCache) GetArticle(context.Context, string) (*Article, bool) { return nil, false }
func (NoopCache) SetArticle(context.Context, *Article) {}
func (NoopCache) GetList(context.Context, *locale.Code) ([]*Article, bool) { return nil, false }
func (NoopCache) SetList(context.Context, *locale.Code, []*Article) {}
func (NoopCache) Invalidate(context.Context, ...string) {}
