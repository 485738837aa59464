package repository

import (
	"context"
	"time"

	"creedava-api/domain/model"
)

// ISocialPost persists scheduled organization posts.
type ISocialPost interface {
	Create(ctx context.Context, post *model.SocialPost) error
	List(ctx context.Context, limit, offset int) ([]model.SocialPost, int64, error)
	// FetchDue returns scheduled posts whose scheduled_at is at or before now.
	FetchDue(ctx context.Context, now time.Time, limit int) ([]model.SocialPost, error)
	MarkPublished(ctx context.Context, id int64, externalRef string, publishedAt time.Time) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
}
