package model

import (
	"fmt"
	"time"
)

// TokenDocType is the discriminator value for stored LinkedIn credentials.
const TokenDocType = "linkedin-config"

// LinkedInToken stores the OAuth credential for one LinkedIn organization.
// Exactly one live record exists per organization id; every write replaces
// the record in full.
type LinkedInToken struct {
	OrganizationID string    `json:"organization_id" bson:"_id"`
	Type           string    `json:"type" bson:"type"`
	AccessToken    string    `json:"-" bson:"accessToken"`
	RefreshToken   string    `json:"-" bson:"refreshToken,omitempty"`
	ExpiresAt      time.Time `json:"expires_at" bson:"expiresAt"`
	ClientID       string    `json:"client_id" bson:"clientId"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updatedAt"`
}

// Expired reports whether the access token is past its expiry at the given instant.
func (t *LinkedInToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// TokenGrant is the normalized result of a token-endpoint exchange
// (authorization_code or refresh_token grant).
type TokenGrant struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Engagement holds per-post interaction counters.
type Engagement struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

// LinkedInPost is the internal shape of one organization post served to clients.
type LinkedInPost struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	PublishedAt string     `json:"publishedAt"` // ISO-8601
	AuthorName  string     `json:"authorName"`
	AuthorTitle string     `json:"authorTitle"`
	Engagement  Engagement `json:"engagement"`
	URL         string     `json:"url"`
	Impressions int64      `json:"impressions"`
}

// RawOrganizationPost is one post as returned by the LinkedIn listing endpoint,
// before enrichment and transformation.
type RawOrganizationPost struct {
	ID          string `json:"id"`
	Commentary  string `json:"commentary"`
	PublishedAt int64  `json:"publishedAt"` // epoch milliseconds
}

// PostStatistics is the per-post engagement read from the statistics endpoint.
type PostStatistics struct {
	Likes       int64
	Comments    int64
	Shares      int64
	Impressions int64
}

// PostsSnapshot is one time-boxed capture of an organization's posts.
type PostsSnapshot struct {
	Posts      []LinkedInPost `json:"posts"`
	CapturedAt time.Time      `json:"capturedAt"`
}

// Fresh reports whether the snapshot is still servable under the given TTL.
// A stale snapshot must be treated as a cache miss.
func (s *PostsSnapshot) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CapturedAt) < ttl
}

// ProviderError is a tagged error carrying the machine-readable code and
// description LinkedIn returned for a failed token or content call.
type ProviderError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Status      int    `json:"status"`
}

func (e *ProviderError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("linkedin: %s (%s)", e.Description, e.Code)
	}
	if e.Code != "" {
		return fmt.Sprintf("linkedin: %s", e.Code)
	}
	return fmt.Sprintf("linkedin: request failed with status %d", e.Status)
}
