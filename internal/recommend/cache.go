package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/question-bank/backend/internal/models"
)

// Cache holds recommendation lists in Redis so repeated requests within
// the TTL skip the scoring pipeline. A nil *Cache is valid and disables
// caching entirely.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheFromEnv connects to Redis using REDIS_ADDR. When REDIS_ADDR is
// unset it returns (nil, nil) and the service runs without a cache.
func NewCacheFromEnv() (*Cache, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := 3600
	if v := os.Getenv("RECOMMENDATION_CACHE_TTL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}

	return &Cache{client: client, ttl: time.Duration(ttl) * time.Second}, nil
}

func cacheKey(userID int64, count int) string {
	return fmt.Sprintf("recommendations:%d:%d", userID, count)
}

func (c *Cache) Get(ctx context.Context, userID int64, count int) ([]models.Question, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, cacheKey(userID, count)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[cache] get failed for user %d: %v", userID, err)
		return nil, false
	}
	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		log.Printf("[cache] decode failed for user %d: %v", userID, err)
		return nil, false
	}
	return questions, true
}

func (c *Cache) Set(ctx context.Context, userID int64, count int, questions []models.Question) {
	if c == nil {
		return
	}
	data, err := json.Marshal(questions)
	if err != nil {
		log.Printf("[cache] encode failed for user %d: %v", userID, err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(userID, count), data, c.ttl).Err(); err != nil {
		log.Printf("[cache] set failed for user %d: %v", userID, err)
	}
}

// Invalidate drops every cached recommendation list for the user. Called
// after each answer submission since new history changes the profile.
func (c *Cache) Invalidate(ctx context.Context, userID int64) {
	if c == nil {
		return
	}
	pattern := fmt.Sprintf("recommendations:%d:*", userID)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		log.Printf("[cache] invalidate scan failed for user %d: %v", userID, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[cache] invalidate delete failed for user %d: %v", userID, err)
	}
}
