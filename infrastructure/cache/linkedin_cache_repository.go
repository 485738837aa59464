package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"creedava-api/domain/model"
	"creedava-api/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

const postsKeyPrefix = "posts-"

// LinkedInCacheRepository keeps one posts snapshot per organization.
// Expiry is enforced by the store TTL; a missing key is a cache miss.
type LinkedInCacheRepository struct {
	client *redis.Client
}

func NewLinkedInCacheRepository(client *redis.Client) *LinkedInCacheRepository {
	return &LinkedInCacheRepository{client: client}
}

// Get returns (nil, nil) on a miss, including when the cache is not wired.
func (r *LinkedInCacheRepository) Get(ctx context.Context, organizationID string) (*model.PostsSnapshot, error) {
	if r.client == nil {
		return nil, nil
	}
	raw, err := r.client.Get(ctx, postsKeyPrefix+organizationID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var snapshot model.PostsSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		logger.GetLogger().WithField("error", err).Warn("discarding undecodable posts snapshot")
		return nil, nil
	}
	return &snapshot, nil
}

func (r *LinkedInCacheRepository) Upsert(ctx context.Context, organizationID string, snapshot *model.PostsSnapshot, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, postsKeyPrefix+organizationID, raw, ttl).Err()
}
