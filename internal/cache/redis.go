package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/metrics"
)

const (
	defaultTTL = 10 * time.Minute

	cacheTypeRecommendations = "recommendations"
	cacheTypeCatalog         = "catalog"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func recommendationsKey(userID int64) string {
	return fmt.Sprintf("rec:user:%d:%s", userID, domain.TypeGeneral)
}

func movieKey(title string) string {
	return "catalog:title:" + strings.ToLower(strings.TrimSpace(title))
}

// Get general recommendations from cache, nil on miss
func (c *Cache) GetRecommendations(ctx context.Context, userID int64) (*domain.RecommendationResult, error) {
	var result domain.RecommendationResult
	ok, err := c.get(ctx, recommendationsKey(userID), cacheTypeRecommendations, &result)
	if err != nil || !ok {
		return nil, err
	}
	return &result, nil
}

// Store general recommendations in cache
func (c *Cache) SetRecommendations(ctx context.Context, userID int64, result *domain.RecommendationResult) error {
	return c.set(ctx, recommendationsKey(userID), result)
}

// Clear user cache: used when ratings change
func (c *Cache) ClearUserCache(ctx context.Context, userID int64) error {
	pattern := fmt.Sprintf("rec:user:%d:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Get a catalogue lookup from cache, nil on miss
func (c *Cache) GetMovie(ctx context.Context, title string) (*domain.Movie, error) {
	var movie domain.Movie
	ok, err := c.get(ctx, movieKey(title), cacheTypeCatalog, &movie)
	if err != nil || !ok {
		return nil, err
	}
	return &movie, nil
}

func (c *Cache) SetMovie(ctx context.Context, title string, movie *domain.Movie) error {
	return c.set(ctx, movieKey(title), movie)
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) get(ctx context.Context, key, cacheType string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.WithLabelValues(cacheType).Inc()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	metrics.CacheHits.WithLabelValues(cacheType).Inc()
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, value any) error {
	val, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}
	return nil
}
