package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// ExploreCache amortizes the two expensive read paths: random-explore pages
// and the derived tag list. It is never a source of truth; a miss or a redis
// restart only means recompute.
type ExploreCache struct {
	client        *redisv9.Client
	randomPinsTTL time.Duration
	tagsTTL       time.Duration
}

func NewExploreCache(client *redisv9.Client, randomPinsTTL, tagsTTL time.Duration) *ExploreCache {
	if randomPinsTTL <= 0 {
		randomPinsTTL = 100 * time.Second
	}
	if tagsTTL <= 0 {
		tagsTTL = 600 * time.Second
	}
	return &ExploreCache{
		client:        client,
		randomPinsTTL: randomPinsTTL,
		tagsTTL:       tagsTTL,
	}
}

// GetRandomPins returns the cached page payload. The key deliberately
// carries only (page, limit); random-explore is unfiltered.
func (c *ExploreCache) GetRandomPins(ctx context.Context, page, limit int) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, c.randomPinsKey(page, limit)).Bytes()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get random pins failed: %w", err)
	}
	return raw, true, nil
}

func (c *ExploreCache) SetRandomPins(ctx context.Context, page, limit int, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal random pins cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.randomPinsKey(page, limit), raw, c.randomPinsTTL).Err(); err != nil {
		return fmt.Errorf("redis set random pins failed: %w", err)
	}
	return nil
}

func (c *ExploreCache) GetTags(ctx context.Context) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, c.tagsKey()).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get tags failed: %w", err)
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached tags failed: %w", err)
	}
	return tags, true, nil
}

func (c *ExploreCache) SetTags(ctx context.Context, tags []string) error {
	raw, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tags cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.tagsKey(), raw, c.tagsTTL).Err(); err != nil {
		return fmt.Errorf("redis set tags failed: %w", err)
	}
	return nil
}

func (c *ExploreCache) randomPinsKey(page, limit int) string {
	return fmt.Sprintf("explore:random:%d:%d", page, limit)
}

func (c *ExploreCache) tagsKey() string {
	return "explore:tags"
}
