package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCategoryTTL = 10 * time.Minute
	categoriesKey      = "trivia:categories"
)

// CategoryCache stores the category list between requests.
type CategoryCache interface {
	Get(ctx context.Context) ([]Category, error)
	Set(ctx context.Context, categories []Category) error
}

// RedisCategoryCache keeps the category list in Redis. Categories are seeded
// data, so a short TTL is the only invalidation.
type RedisCategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ CategoryCache = (*RedisCategoryCache)(nil)

func NewRedisCategoryCache(client *redis.Client, ttl time.Duration) *RedisCategoryCache {
	if ttl <= 0 {
		ttl = defaultCategoryTTL
	}
	return &RedisCategoryCache{client: client, ttl: ttl}
}

// Get returns nil, nil on a cache miss.
func (c *RedisCategoryCache) Get(ctx context.Context) ([]Category, error) {
	data, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *RedisCategoryCache) Set(ctx context.Context, categories []Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoriesKey, data, c.ttl).Err()
}

// CachedRepository serves category reads from a CategoryCache and delegates
// everything else to the wrapped Repository. Cache failures fall back to the
// store.
type CachedRepository struct {
	Repository
	cache CategoryCache
}

var _ Repository = (*CachedRepository)(nil)

func NewCachedRepository(repo Repository, cache CategoryCache) *CachedRepository {
	return &CachedRepository{Repository: repo, cache: cache}
}

func (r *CachedRepository) ListCategories(ctx context.Context) ([]Category, error) {
	if cached, err := r.cache.Get(ctx); err == nil && cached != nil {
		return cached, nil
	}
	categories, err := r.Repository.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	_ = r.cache.Set(ctx, categories)
	return categories, nil
}

func (r *CachedRepository) GetCategory(ctx context.Context, id int64) (Category, error) {
	categories, err := r.ListCategories(ctx)
	if err != nil {
		return Category{}, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w: category %d", ErrNotFound, id)
}
