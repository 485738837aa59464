package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostsSnapshot_Fresh(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	fresh := &PostsSnapshot{CapturedAt: now.Add(-59 * time.Minute)}
	assert.True(t, fresh.Fresh(now, time.Hour))

	// Exactly at the TTL boundary counts as stale.
	boundary := &PostsSnapshot{CapturedAt: now.Add(-time.Hour)}
	assert.False(t, boundary.Fresh(now, time.Hour))

	stale := &PostsSnapshot{CapturedAt: now.Add(-61 * time.Minute)}
	assert.False(t, stale.Fresh(now, time.Hour))
}

func TestLinkedInToken_Expired(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	live := &LinkedInToken{ExpiresAt: now.Add(time.Second)}
	assert.False(t, live.Expired(now))

	// Expiry instant itself is expired.
	onTheDot := &LinkedInToken{ExpiresAt: now}
	assert.True(t, onTheDot.Expired(now))

	past := &LinkedInToken{ExpiresAt: now.Add(-time.Second)}
	assert.True(t, past.Expired(now))
}

func TestProviderError_Error(t *testing.T) {
	withDescription := &ProviderError{Code: "invalid_grant", Description: "authorization code expired"}
	assert.Equal(t, "linkedin: authorization code expired (invalid_grant)", withDescription.Error())

	codeOnly := &ProviderError{Code: "invalid_grant"}
	assert.Equal(t, "linkedin: invalid_grant", codeOnly.Error())

	statusOnly := &ProviderError{Status: 502}
	assert.Equal(t, "linkedin: request failed with status 502", statusOnly.Error())
}
