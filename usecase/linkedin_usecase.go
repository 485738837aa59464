package usecase

import (
	"context"
	"errors"
	"time"

	"creedava-api/domain/model"
	"creedava-api/domain/repository"
	"creedava-api/infrastructure/logger"
)

const (
	// postsCacheTTL bounds how stale the served posts may be.
	postsCacheTTL = time.Hour

	defaultOrganizationID = "default"

	authorDisplayName  = "CreedaVA"
	authorDisplayTitle = "Virtual Assistant Services"

	postURLPrefix = "https://www.linkedin.com/feed/update/"
)

// ErrNotConnected means the organization never completed the OAuth flow.
var ErrNotConnected = errors.New("linkedin is not connected for this organization")

// ErrReauthorizationRequired means the stored access token expired and no
// refresh token exists; an admin must run the consent flow again.
var ErrReauthorizationRequired = errors.New("linkedin authorization expired, reconnect required")

type ILinkedInUsecase interface {
	// BuildAuthURL returns the consent-screen URL; state round-trips verbatim.
	BuildAuthURL(state string) (string, error)
	// HandleCallback redeems the authorization code and stores the credential
	// for the organization carried in state ("default" when state is empty).
	HandleCallback(ctx context.Context, code, state string) error
	// GetOrganizationPosts serves the organization's posts, from cache when a
	// fresh snapshot exists, refreshing the access token when needed.
	GetOrganizationPosts(ctx context.Context, organizationID string, force bool) ([]model.LinkedInPost, bool, error)
	// PublishPost publishes text on the organization's page and returns the post urn.
	PublishPost(ctx context.Context, organizationID, text string) (string, error)
}

type LinkedInUsecase struct {
	tokens   repository.ILinkedInToken
	cache    repository.ILinkedInCache
	provider repository.ILinkedIn
	clientID string
	now      func() time.Time
}

func NewLinkedInUsecase(tokens repository.ILinkedInToken, cache repository.ILinkedInCache, provider repository.ILinkedIn, clientID string) ILinkedInUsecase {
	return &LinkedInUsecase{
		tokens:   tokens,
		cache:    cache,
		provider: provider,
		clientID: clientID,
		now:      time.Now,
	}
}

func (u *LinkedInUsecase) BuildAuthURL(state string) (string, error) {
	return u.provider.AuthorizationURL(state)
}

func (u *LinkedInUsecase) HandleCallback(ctx context.Context, code, state string) error {
	grant, err := u.provider.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	organizationID := state
	if organizationID == "" {
		organizationID = defaultOrganizationID
	}

	token := &model.LinkedInToken{
		OrganizationID: organizationID,
		AccessToken:    grant.AccessToken,
		RefreshToken:   grant.RefreshToken,
		ExpiresAt:      grant.ExpiresAt,
		ClientID:       u.clientID,
	}
	if err := u.tokens.Upsert(ctx, token); err != nil {
		return err
	}
	logger.GetLogger().WithField("organization", organizationID).Info("LinkedIn connected")
	return nil
}

func (u *LinkedInUsecase) GetOrganizationPosts(ctx context.Context, organizationID string, force bool) ([]model.LinkedInPost, bool, error) {
	if organizationID == "" {
		organizationID = defaultOrganizationID
	}

	now := u.now()
	if !force {
		snapshot, err := u.cache.Get(ctx, organizationID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("posts cache read failed")
		} else if snapshot != nil && snapshot.Fresh(now, postsCacheTTL) {
			return snapshot.Posts, true, nil
		}
	}

	token, err := u.tokens.Get(ctx, organizationID)
	if err != nil {
		return nil, false, err
	}
	if token == nil {
		return nil, false, ErrNotConnected
	}
	token, err = u.ensureFresh(ctx, token)
	if err != nil {
		return nil, false, err
	}

	raw, err := u.provider.ListOrganizationPosts(ctx, token.AccessToken, organizationID)
	if err != nil {
		return nil, false, err
	}

	posts := make([]model.LinkedInPost, 0, len(raw))
	for _, r := range raw {
		posts = append(posts, u.transformPost(ctx, token.AccessToken, r))
	}

	snapshot := &model.PostsSnapshot{Posts: posts, CapturedAt: u.now()}
	if err := u.cache.Upsert(ctx, organizationID, snapshot, postsCacheTTL); err != nil {
		// Serving fresh data matters more than caching it.
		logger.GetLogger().WithField("error", err).Warn("posts cache write failed")
	}
	return posts, false, nil
}

// transformPost enriches one raw post with its engagement counters. A failed
// statistics call degrades to zeroed counters rather than failing the page.
func (u *LinkedInUsecase) transformPost(ctx context.Context, accessToken string, r model.RawOrganizationPost) model.LinkedInPost {
	post := model.LinkedInPost{
		ID:          r.ID,
		Text:        r.Commentary,
		PublishedAt: time.UnixMilli(r.PublishedAt).UTC().Format(time.RFC3339),
		AuthorName:  authorDisplayName,
		AuthorTitle: authorDisplayTitle,
		URL:         postURLPrefix + r.ID,
	}
	stats, err := u.provider.GetPostStatistics(ctx, accessToken, r.ID)
	if err != nil {
		logger.GetLogger().
			WithField("post", r.ID).
			WithField("error", err).
			Warn("post statistics unavailable")
		return post
	}
	post.Engagement = model.Engagement{Likes: stats.Likes, Comments: stats.Comments, Shares: stats.Shares}
	post.Impressions = stats.Impressions
	return post
}

// ensureFresh returns a usable token, refreshing it when expired. Concurrent
// refreshes race on the stored updatedAt; the loser adopts the winner's record.
func (u *LinkedInUsecase) ensureFresh(ctx context.Context, token *model.LinkedInToken) (*model.LinkedInToken, error) {
	if !token.Expired(u.now()) {
		return token, nil
	}
	if token.RefreshToken == "" {
		return nil, ErrReauthorizationRequired
	}

	grant, err := u.provider.Refresh(ctx, token.RefreshToken)
	if err != nil {
		return nil, err
	}

	refreshed := &model.LinkedInToken{
		OrganizationID: token.OrganizationID,
		AccessToken:    grant.AccessToken,
		RefreshToken:   grant.RefreshToken,
		ExpiresAt:      grant.ExpiresAt,
		ClientID:       token.ClientID,
	}
	if refreshed.RefreshToken == "" {
		// Provider did not rotate the refresh token; keep the current one.
		refreshed.RefreshToken = token.RefreshToken
	}

	replaced, err := u.tokens.ReplaceIf(ctx, refreshed, token.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if !replaced {
		// Another request refreshed first; use its result.
		winner, err := u.tokens.Get(ctx, token.OrganizationID)
		if err != nil {
			return nil, err
		}
		if winner == nil {
			return nil, ErrNotConnected
		}
		return winner, nil
	}
	return refreshed, nil
}

func (u *LinkedInUsecase) PublishPost(ctx context.Context, organizationID, text string) (string, error) {
	if organizationID == "" {
		organizationID = defaultOrganizationID
	}
	token, err := u.tokens.Get(ctx, organizationID)
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", ErrNotConnected
	}
	token, err = u.ensureFresh(ctx, token)
	if err != nil {
		return "", err
	}
	return u.provider.CreateOrganizationPost(ctx, token.AccessToken, organizationID, text)
}
