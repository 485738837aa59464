package repository

import (
	"context"
	"time"

	"creedava-api/domain/model"
)

// ILinkedInToken persists per-organization OAuth credentials.
type ILinkedInToken interface {
	// Upsert stores the token, replacing any prior record for the organization in full.
	Upsert(ctx context.Context, token *model.LinkedInToken) error
	// Get returns the stored token, or (nil, nil) when no record exists.
	Get(ctx context.Context, organizationID string) (*model.LinkedInToken, error)
	// ReplaceIf replaces the record only when its stored updatedAt still equals
	// prevUpdatedAt. Returns false when another writer got there first.
	ReplaceIf(ctx context.Context, token *model.LinkedInToken, prevUpdatedAt time.Time) (bool, error)
}

// ILinkedInCache stores time-boxed post snapshots per organization.
type ILinkedInCache interface {
	// Get returns the snapshot for the organization, or (nil, nil) on a miss.
	// Callers must still apply the freshness check; store-level TTL is an
	// additional safety net, not the source of truth.
	Get(ctx context.Context, organizationID string) (*model.PostsSnapshot, error)
	// Upsert replaces the snapshot for the organization with the given TTL.
	Upsert(ctx context.Context, organizationID string, snapshot *model.PostsSnapshot, ttl time.Duration) error
}

// ILinkedIn is the outbound LinkedIn API surface.
type ILinkedIn interface {
	// AuthorizationURL builds the consent-screen URL with the fixed scopes,
	// echoing state verbatim.
	AuthorizationURL(state string) (string, error)
	// ExchangeCode performs the authorization_code grant.
	ExchangeCode(ctx context.Context, code string) (*model.TokenGrant, error)
	// Refresh performs the refresh_token grant.
	Refresh(ctx context.Context, refreshToken string) (*model.TokenGrant, error)
	// ListOrganizationPosts fetches the organization's posts, newest first.
	ListOrganizationPosts(ctx context.Context, accessToken, organizationID string) ([]model.RawOrganizationPost, error)
	// GetPostStatistics fetches engagement counters for one post.
	GetPostStatistics(ctx context.Context, accessToken, postID string) (*model.PostStatistics, error)
	// CreateOrganizationPost publishes a post and returns its provider id.
	CreateOrganizationPost(ctx context.Context, accessToken, organizationID, text string) (string, error)
}
