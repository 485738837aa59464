package usecase

import (
	"context"
	"time"

	"creedava-api/domain/dto"
	"creedava-api/domain/model"
	"creedava-api/domain/repository"
	"creedava-api/infrastructure/logger"
)

type ISocialPostUsecase interface {
	// Schedule stores a post for publication at its scheduled time.
	Schedule(ctx context.Context, req dto.SocialPostRequest) (*model.SocialPost, error)
	List(ctx context.Context, page, pageSize int) ([]model.SocialPost, int64, error)
	// ProcessDue publishes all due posts and returns how many it attempted.
	ProcessDue(ctx context.Context) (int, error)
}

type SocialPostUsecase struct {
	posts    repository.ISocialPost
	linkedIn ILinkedInUsecase
	now      func() time.Time
}

func NewSocialPostUsecase(posts repository.ISocialPost, linkedIn ILinkedInUsecase) ISocialPostUsecase {
	return &SocialPostUsecase{posts: posts, linkedIn: linkedIn, now: time.Now}
}

func (u *SocialPostUsecase) Schedule(ctx context.Context, req dto.SocialPostRequest) (*model.SocialPost, error) {
	post := &model.SocialPost{
		OrganizationID: req.OrganizationID,
		Body:           req.Body,
		Status:         model.SocialPostStatusScheduled,
	}
	if post.OrganizationID == "" {
		post.OrganizationID = defaultOrganizationID
	}
	if req.ScheduledAt != nil {
		post.ScheduledAt = req.ScheduledAt.UTC()
	} else {
		post.ScheduledAt = u.now().UTC()
	}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (u *SocialPostUsecase) List(ctx context.Context, page, pageSize int) ([]model.SocialPost, int64, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 25
	}
	if page < 1 {
		page = 1
	}
	return u.posts.List(ctx, pageSize, (page-1)*pageSize)
}

func (u *SocialPostUsecase) ProcessDue(ctx context.Context) (int, error) {
	due, err := u.posts.FetchDue(ctx, u.now(), 10)
	if err != nil {
		return 0, err
	}

	for _, post := range due {
		urn, err := u.linkedIn.PublishPost(ctx, post.OrganizationID, post.Body)
		if err != nil {
			logger.GetLogger().
				WithField("post", post.ID).
				WithField("error", err).
				Error("scheduled post failed to publish")
			if markErr := u.posts.MarkFailed(ctx, post.ID, err.Error()); markErr != nil {
				logger.GetLogger().WithField("error", markErr).Error("failed to mark post failed")
			}
			continue
		}
		if err := u.posts.MarkPublished(ctx, post.ID, urn, u.now().UTC()); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed to mark post published")
		}
	}
	return len(due), nil
}
